package csvparser

import (
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/google/go-cmp/cmp"
	"golang.org/x/text/encoding/charmap"
	"golang.org/x/text/encoding/unicode"

	"github.com/ginjaninja78/pricing-data-generator/internal/config"
	"github.com/ginjaninja78/pricing-data-generator/internal/types"
)

func defaults() config.CSVSettings {
	return config.Default().CSVSettings
}

func writeFile(t *testing.T, name, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), name)
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		t.Fatal(err)
	}
	return path
}

func TestParseFile(t *testing.T) {
	path := writeFile(t, "01-business-cards.csv",
		"Size,Parts,Quantity,Price\n"+
			" 4x6 , 1 ,100,12.5\n"+
			"\n"+
			",,,\n"+
			"\"5x7, matte\",2,500,45\n")

	table, err := FileSource{Path: path, Settings: defaults()}.ReadTable()
	if err != nil {
		t.Fatalf("ReadTable error: %v", err)
	}
	if table.SourceFile != path {
		t.Errorf("SourceFile = %q", table.SourceFile)
	}

	want := &types.Table{
		SourceFile: path,
		Headers:    []string{"Size", "Parts", "Quantity", "Price"},
		Rows: []types.Row{
			{"Size": "4x6", "Parts": "1", "Quantity": "100", "Price": "12.5"},
			{"Size": "5x7, matte", "Parts": "2", "Quantity": "500", "Price": "45"},
		},
	}
	if diff := cmp.Diff(want, table); diff != "" {
		t.Errorf("table mismatch (-want +got):\n%s", diff)
	}
}

func TestParseRaggedRows(t *testing.T) {
	table, err := ParseReader(strings.NewReader("Size,Sides,Quantity,Price\nA,Single\nB,Double,1,2,extra\n"), defaults())
	if err != nil {
		t.Fatalf("ParseReader error: %v", err)
	}

	short := table.Rows[0]
	if _, ok := short["Quantity"]; ok {
		t.Errorf("missing trailing cell should be absent, row = %v", short)
	}
	if diff := cmp.Diff(types.Row{"Size": "B", "Sides": "Double", "Quantity": "1", "Price": "2"}, table.Rows[1]); diff != "" {
		t.Errorf("long row mismatch (-want +got):\n%s", diff)
	}
}

func TestParseHeaders(t *testing.T) {
	table, err := ParseReader(strings.NewReader("Size, ,Size,Price\n1,2,3,4\n"), defaults())
	if err != nil {
		t.Fatalf("ParseReader error: %v", err)
	}
	if diff := cmp.Diff([]string{"Size", "Column_2", "Size", "Price"}, table.Headers); diff != "" {
		t.Errorf("headers mismatch (-want +got):\n%s", diff)
	}
	if table.Rows[0]["Size"] != "3" {
		t.Errorf("rightmost duplicate should win, got %q", table.Rows[0]["Size"])
	}
}

func TestParseDelimiterAndTrim(t *testing.T) {
	settings := defaults()
	settings.Delimiter = "semicolon"
	off := false
	settings.TrimSpace = &off

	table, err := ParseReader(strings.NewReader("Size;Price\n 4x6 ;10\n"), settings)
	if err != nil {
		t.Fatalf("ParseReader error: %v", err)
	}
	if got := table.Rows[0]["Size"]; got != " 4x6 " {
		t.Errorf("Size = %q, want untrimmed value", got)
	}
}

func TestParseEncodings(t *testing.T) {
	const content = "Paper Type,Quantity,Price\nCafé Crème,100,5\n"

	latin1, err := charmap.Windows1252.NewEncoder().String(content)
	if err != nil {
		t.Fatal(err)
	}
	utf16, err := unicode.UTF16(unicode.LittleEndian, unicode.UseBOM).NewEncoder().String(content)
	if err != nil {
		t.Fatal(err)
	}

	tests := []struct {
		name     string
		encoding string
		raw      string
	}{
		{"utf-8", "UTF-8", content},
		{"utf-8 bom", "UTF-8", "\ufeff" + content},
		{"windows-1252", "Windows-1252", latin1},
		{"latin1", "ISO-8859-1", latin1},
		{"utf-16", "UTF-16", utf16},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			settings := defaults()
			settings.Encoding = tt.encoding

			table, err := ParseReader(strings.NewReader(tt.raw), settings)
			if err != nil {
				t.Fatalf("ParseReader error: %v", err)
			}
			if table.Headers[0] != "Paper Type" {
				t.Errorf("first header = %q", table.Headers[0])
			}
			if got := table.Rows[0]["Paper Type"]; got != "Café Crème" {
				t.Errorf("value = %q", got)
			}
		})
	}
}

func TestParseErrors(t *testing.T) {
	if _, err := ParseReader(strings.NewReader(""), defaults()); !errors.Is(err, ErrEmptyFile) {
		t.Errorf("empty input: err = %v", err)
	}

	bad := defaults()
	bad.Encoding = "EBCDIC"
	if _, err := ParseReader(strings.NewReader("a\n"), bad); err == nil {
		t.Error("unsupported encoding should fail")
	}

	if _, err := Parse(filepath.Join(t.TempDir(), "missing.csv"), defaults()); err == nil {
		t.Error("missing file should fail")
	}
}
