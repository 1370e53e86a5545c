package pricing

import (
	"encoding/json"
	"testing"

	"github.com/google/go-cmp/cmp"

	"github.com/ginjaninja78/pricing-data-generator/internal/types"
)

func TestAggregateExample(t *testing.T) {
	rows := []types.Row{
		{"Size": "4x6", "Parts": "1", "Quantity": "100", "Price": "12.5"},
		{"Parts": "1", "Size": "4x6", "Quantity": "500", "Price": "45"},
	}

	product, stats := Aggregate(rows, "business cards")
	if product.Name != "business cards" {
		t.Errorf("name = %q", product.Name)
	}
	if stats.RowsPriced != 2 || stats.RowsSkipped() != 0 {
		t.Errorf("stats = %+v", stats)
	}

	breaks, ok := product.Prices.Get("Size=4x6|Parts=1")
	if !ok {
		t.Fatalf("price key missing, have %v", product.Prices.Keys())
	}
	got, err := json.Marshal(breaks)
	if err != nil {
		t.Fatalf("marshal: %v", err)
	}
	if string(got) != `{"100":12.5,"500":45}` {
		t.Errorf("prices = %s", got)
	}

	stock, _ := product.Categories.Get(CategoryStock)
	size, _ := stock.Field("Size")
	if diff := cmp.Diff([]string{"4x6"}, size.Values); diff != "" {
		t.Errorf("Size values mismatch (-want +got):\n%s", diff)
	}
}

func TestAggregateSkipsBadRowsButKeepsTheirValues(t *testing.T) {
	rows := []types.Row{
		{"Size": "4x6", "Quantity": "100", "Price": "10"},
		{"Size": "5x7", "Quantity": "", "Price": "10"},
		{"Size": "6x9", "Quantity": "100", "Price": "abc"},
		{"Size": "8x10", "Quantity": "0", "Price": "10"},
		{"Size": "8x10", "Quantity": "100", "Price": "0.0"},
		{"Quantity": "100", "Price": "10"},
	}

	product, stats := Aggregate(rows, "postcards")

	if diff := cmp.Diff([]string{"Size=4x6"}, product.Prices.Keys()); diff != "" {
		t.Errorf("price keys mismatch (-want +got):\n%s", diff)
	}

	size, _ := product.Categories.Field("Size")
	if diff := cmp.Diff([]string{"4x6", "5x7", "6x9", "8x10"}, size.Values); diff != "" {
		t.Errorf("Size values mismatch (-want +got):\n%s", diff)
	}

	want := AggregateStats{
		RowsRead:        6,
		RowsPriced:      1,
		SkippedNoKey:    1,
		SkippedQuantity: 2,
		SkippedPrice:    2,
	}
	if diff := cmp.Diff(want, stats); diff != "" {
		t.Errorf("stats mismatch (-want +got):\n%s", diff)
	}
}

func TestAggregateLastWriteWins(t *testing.T) {
	rows := []types.Row{
		{"Sides": "Single", "Quantity": "250", "Price": "20"},
		{"Sides": "Single", "Quantity": "500", "Price": "35"},
		{"Sides": "Single", "Quantity": "250.0", "Price": "18.75"},
		{"Sides": "Single", "Quantity": "250", "Price": "19"},
	}

	product, _ := Aggregate(rows, "flyers")
	breaks, _ := product.Prices.Get("Sides=Single")

	// "250.0" is a decimal quantity and keys separately from "250".
	if diff := cmp.Diff([]string{"250", "500", "250.0"}, breaks.Quantities()); diff != "" {
		t.Errorf("quantities mismatch (-want +got):\n%s", diff)
	}
	if price, _ := breaks.Get("250"); price.String() != "19" {
		t.Errorf("price for 250 = %s, want 19", price)
	}
}

func TestAggregateAllRowsSkipped(t *testing.T) {
	product, stats := Aggregate([]types.Row{{"Notes": "n/a", "Quantity": "x", "Price": ""}}, "empty")
	if product.HasData() {
		t.Error("product without categories or prices reported data")
	}
	if stats.RowsPriced != 0 {
		t.Errorf("stats = %+v", stats)
	}

	got, err := json.Marshal(product)
	if err != nil {
		t.Fatalf("marshal: %v", err)
	}
	if string(got) != `{"name":"empty","categories":{},"prices":{}}` {
		t.Errorf("json = %s", got)
	}
}
