package xlsxparser

import (
	"path/filepath"
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/xuri/excelize/v2"

	"github.com/ginjaninja78/pricing-data-generator/internal/types"
)

func saveWorkbook(t *testing.T, build func(f *excelize.File)) string {
	t.Helper()
	f := excelize.NewFile()
	defer f.Close()

	build(f)

	path := filepath.Join(t.TempDir(), "02-flyers.xlsx")
	if err := f.SaveAs(path); err != nil {
		t.Fatalf("SaveAs: %v", err)
	}
	return path
}

func setRow(t *testing.T, f *excelize.File, sheet, cell string, values ...interface{}) {
	t.Helper()
	if err := f.SetSheetRow(sheet, cell, &values); err != nil {
		t.Fatalf("SetSheetRow %s: %v", cell, err)
	}
}

func TestParseFirstSheet(t *testing.T) {
	path := saveWorkbook(t, func(f *excelize.File) {
		setRow(t, f, "Sheet1", "A1", " Size ", "Sides", "Quantity", "Price")
		setRow(t, f, "Sheet1", "A2", "4x6", "Single", "100", "12.5")
		setRow(t, f, "Sheet1", "A4", "4x6", " Double ", "100", "18")

		if _, err := f.NewSheet("Other"); err != nil {
			t.Fatal(err)
		}
		setRow(t, f, "Other", "A1", "Parts", "Quantity", "Price")
	})

	table, err := WorkbookSource{Path: path}.ReadTable()
	if err != nil {
		t.Fatalf("ReadTable error: %v", err)
	}

	want := &types.Table{
		SourceFile: path,
		Headers:    []string{"Size", "Sides", "Quantity", "Price"},
		Rows: []types.Row{
			{"Size": "4x6", "Sides": "Single", "Quantity": "100", "Price": "12.5"},
			{"Size": "4x6", "Sides": "Double", "Quantity": "100", "Price": "18"},
		},
	}
	if diff := cmp.Diff(want, table); diff != "" {
		t.Errorf("table mismatch (-want +got):\n%s", diff)
	}
}

func TestParseSkipsHiddenSheet(t *testing.T) {
	path := saveWorkbook(t, func(f *excelize.File) {
		setRow(t, f, "Sheet1", "A1", "Notes")
		if _, err := f.NewSheet("Prices"); err != nil {
			t.Fatal(err)
		}
		setRow(t, f, "Prices", "A3", "Size", "Quantity", "Price")
		setRow(t, f, "Prices", "A4", "A5", "50", "3")
		f.SetActiveSheet(1)
		if err := f.SetSheetVisible("Sheet1", false); err != nil {
			t.Fatal(err)
		}
	})

	table, err := Parse(path)
	if err != nil {
		t.Fatalf("Parse error: %v", err)
	}
	if diff := cmp.Diff([]string{"Size", "Quantity", "Price"}, table.Headers); diff != "" {
		t.Errorf("headers mismatch (-want +got):\n%s", diff)
	}
	if len(table.Rows) != 1 || table.Rows[0]["Size"] != "A5" {
		t.Errorf("rows = %v", table.Rows)
	}
}

func TestParseFormattedNumbers(t *testing.T) {
	path := saveWorkbook(t, func(f *excelize.File) {
		setRow(t, f, "Sheet1", "A1", "Size", "Quantity", "Price")
		setRow(t, f, "Sheet1", "A2", "4x6", 1000, 12.5)

		currency := "$#,##0.00"
		style, err := f.NewStyle(&excelize.Style{CustomNumFmt: &currency})
		if err != nil {
			t.Fatal(err)
		}
		if err := f.SetCellStyle("Sheet1", "B2", "C2", style); err != nil {
			t.Fatal(err)
		}
	})

	table, err := Parse(path)
	if err != nil {
		t.Fatalf("Parse error: %v", err)
	}
	want := []types.Row{{"Size": "4x6", "Quantity": "1000", "Price": "12.5"}}
	if diff := cmp.Diff(want, table.Rows); diff != "" {
		t.Errorf("rows mismatch (-want +got):\n%s", diff)
	}
}

func TestBuildTable(t *testing.T) {
	table, err := buildTable([][]string{{}, {"Size", "", "Price"}, {"4x6"}, {" ", ""}})
	if err != nil {
		t.Fatalf("buildTable error: %v", err)
	}
	if diff := cmp.Diff([]string{"Size", "Column_2", "Price"}, table.Headers); diff != "" {
		t.Errorf("headers mismatch (-want +got):\n%s", diff)
	}
	if diff := cmp.Diff([]types.Row{{"Size": "4x6"}}, table.Rows); diff != "" {
		t.Errorf("rows mismatch (-want +got):\n%s", diff)
	}

	if _, err := buildTable(nil); err == nil {
		t.Error("empty sheet should fail")
	}
}

func TestParseErrors(t *testing.T) {
	if _, err := Parse(filepath.Join(t.TempDir(), "missing.xlsx")); err == nil {
		t.Error("missing workbook should fail")
	}
}
