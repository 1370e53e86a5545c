// =============================================================================
// Pricing Data Generator - Ordered JSON Objects
// =============================================================================
//
// The document model keeps member order: categories in registry order, fields
// in rank order, price keys and quantities in first-seen order. The types in
// this package encode themselves through marshalObject.
//
// =============================================================================

package pricing

import (
	"bytes"
	"encoding/json"
)

// member is one key/value pair of an ordered JSON object.
type member struct {
	key   string
	value any
}

// marshalObject encodes members as a JSON object, preserving their order.
// encoding/json sorts map keys, which would lose registry and first-seen order.
func marshalObject(members []member) ([]byte, error) {
	var buf bytes.Buffer
	buf.WriteByte('{')
	for i, m := range members {
		if i > 0 {
			buf.WriteByte(',')
		}
		k, err := marshalValue(m.key)
		if err != nil {
			return nil, err
		}
		buf.Write(k)
		buf.WriteByte(':')

		v, err := marshalValue(m.value)
		if err != nil {
			return nil, err
		}
		buf.Write(v)
	}
	buf.WriteByte('}')
	return buf.Bytes(), nil
}

func marshalValue(v any) ([]byte, error) {
	var buf bytes.Buffer
	enc := json.NewEncoder(&buf)
	enc.SetEscapeHTML(false)
	if err := enc.Encode(v); err != nil {
		return nil, err
	}
	return bytes.TrimSuffix(buf.Bytes(), []byte("\n")), nil
}
