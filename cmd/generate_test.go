package cmd

import (
	"bytes"
	"encoding/json"
	"errors"
	"io"
	"log/slog"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/xuri/excelize/v2"

	"github.com/ginjaninja78/pricing-data-generator/internal/config"
	"github.com/ginjaninja78/pricing-data-generator/internal/pricing"
)

func writeLists(t *testing.T, dir string, files map[string]string) {
	t.Helper()
	for name, content := range files {
		if err := os.WriteFile(filepath.Join(dir, name), []byte(content), 0o644); err != nil {
			t.Fatal(err)
		}
	}
}

func testConfig(dir string) *config.MainConfig {
	cfg := config.Default()
	cfg.InputDir = dir
	cfg.OutputFile = filepath.Join(dir, "out", "pricing_data.json")
	return cfg
}

func discard() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

func TestRunGenerate(t *testing.T) {
	dir := t.TempDir()
	writeLists(t, dir, map[string]string{
		"02-flyers.csv":         "Sides,Quantity,Price\nSingle,250,20\nDouble,250,30.5\n",
		"01-business-cards.csv": "Size,Parts,Quantity,Price\n4x6,1,100,12.5\n4x6,1,500,45\n",
		"03-empty.csv":          "Notes,Quantity,Price\nnone,100,5\n",
		"04-broken.csv":         "Size,Quantity\n4x6,100\n",
		"flyers.csv":            "Sides,Quantity,Price\nSingle,1,1\n",
	})
	cfg := testConfig(dir)

	var out bytes.Buffer
	if err := runGenerate(cfg, false, discard(), &out); err != nil {
		t.Fatalf("runGenerate error: %v", err)
	}

	data, err := os.ReadFile(cfg.OutputFile)
	if err != nil {
		t.Fatalf("output not written: %v", err)
	}
	if !strings.HasPrefix(string(data), "{\n  \"version\": \"1.0\",\n  \"products\": {\n    \"business cards\": {") {
		t.Errorf("unexpected document head:\n%s", data)
	}

	var doc struct {
		Version  string `json:"version"`
		Products map[string]struct {
			Prices map[string]map[string]float64 `json:"prices"`
		} `json:"products"`
	}
	if err := json.Unmarshal(data, &doc); err != nil {
		t.Fatalf("invalid JSON: %v", err)
	}
	if len(doc.Products) != 2 {
		t.Errorf("products = %v", doc.Products)
	}
	want := map[string]map[string]float64{"Sides=Single": {"250": 20}, "Sides=Double": {"250": 30.5}}
	if diff := cmp.Diff(want, doc.Products["flyers"].Prices); diff != "" {
		t.Errorf("flyers prices mismatch (-want +got):\n%s", diff)
	}

	summary := out.String()
	for _, want := range []string{"Files:        5 (included 2, dropped 1, failed 2)", "missing required column", "file name has no product name"} {
		if !strings.Contains(summary, want) {
			t.Errorf("summary missing %q:\n%s", want, summary)
		}
	}
}

func TestRunGenerateNoValidData(t *testing.T) {
	dir := t.TempDir()
	writeLists(t, dir, map[string]string{
		"01-empty.csv": "Size,Quantity,Price\n4x6,0,10\n",
		"broken.csv":   "Size,Quantity,Price\n4x6,1,1\n",
	})
	cfg := testConfig(dir)

	err := runGenerate(cfg, false, discard(), &bytes.Buffer{})
	if !errors.Is(err, pricing.ErrNoValidData) {
		t.Fatalf("err = %v, want ErrNoValidData", err)
	}
	if _, err := os.Stat(cfg.OutputFile); !os.IsNotExist(err) {
		t.Error("output written despite failure")
	}

	if err := runGenerate(testConfig(t.TempDir()), false, discard(), &bytes.Buffer{}); !errors.Is(err, pricing.ErrNoValidData) {
		t.Errorf("empty directory: err = %v", err)
	}
}

func TestRunGenerateDryRun(t *testing.T) {
	dir := t.TempDir()
	writeLists(t, dir, map[string]string{"01-cards.csv": "Size,Quantity,Price\nA,1,1\n"})
	cfg := testConfig(dir)

	var out bytes.Buffer
	if err := runGenerate(cfg, true, discard(), &out); err != nil {
		t.Fatalf("runGenerate error: %v", err)
	}
	if _, err := os.Stat(cfg.OutputFile); !os.IsNotExist(err) {
		t.Error("dry run wrote the document")
	}
	if !strings.Contains(out.String(), "dry run, not written") {
		t.Errorf("summary does not mention the dry run:\n%s", out.String())
	}
}

func TestRunGenerateWorkbooksAndWorkers(t *testing.T) {
	dir := t.TempDir()
	writeLists(t, dir, map[string]string{"01-cards.csv": "Size,Quantity,Price\nA,1,1\n"})

	f := excelize.NewFile()
	rows := [][]interface{}{{"Parts", "Quantity", "Price"}, {"2", "100", "7.25"}}
	for i, row := range rows {
		cell, _ := excelize.CoordinatesToCellName(1, i+1)
		if err := f.SetSheetRow("Sheet1", cell, &row); err != nil {
			t.Fatal(err)
		}
	}
	if err := f.SaveAs(filepath.Join(dir, "02-carbonless-forms.xlsx")); err != nil {
		t.Fatal(err)
	}
	f.Close()

	cfg := testConfig(dir)
	cfg.IncludeWorkbooks = true
	cfg.MaxConcurrency = 4

	if err := runGenerate(cfg, false, discard(), &bytes.Buffer{}); err != nil {
		t.Fatalf("runGenerate error: %v", err)
	}
	data, _ := os.ReadFile(cfg.OutputFile)
	if !strings.Contains(string(data), `"Parts=2": {`) || !strings.Contains(string(data), `"carbonless forms"`) {
		t.Errorf("workbook product missing:\n%s", data)
	}
}

func TestRunGenerateSeparatorInValue(t *testing.T) {
	dir := t.TempDir()
	writeLists(t, dir, map[string]string{
		"01-cards.csv": "Paper Type,Parts,Quantity,Price\n\"Gloss|Parts=2\",1,100,10\n",
	})
	cfg := testConfig(dir)

	if err := runGenerate(cfg, false, discard(), &bytes.Buffer{}); err != nil {
		t.Fatalf("runGenerate error: %v", err)
	}
	data, err := os.ReadFile(cfg.OutputFile)
	if err != nil {
		t.Fatalf("output not written: %v", err)
	}
	if !strings.Contains(string(data), `"Paper Type=Gloss|Parts=2|Parts=1": {`) {
		t.Errorf("price key missing:\n%s", data)
	}
}

func TestRunValidate(t *testing.T) {
	dir := t.TempDir()
	writeLists(t, dir, map[string]string{"01-cards.csv": "Size,Quantity,Price\nA,1,1\n"})
	cfg := testConfig(dir)
	if err := runGenerate(cfg, false, discard(), &bytes.Buffer{}); err != nil {
		t.Fatal(err)
	}

	var out bytes.Buffer
	if err := runValidate(cfg.OutputFile, false, &out); err != nil {
		t.Fatalf("runValidate error: %v", err)
	}
	if !strings.Contains(out.String(), "OK (1 product(s), 1 price key(s))") {
		t.Errorf("output = %q", out.String())
	}

	bad := filepath.Join(dir, "bad.json")
	writeLists(t, dir, map[string]string{"bad.json": `{"version":"0.9","products":{}}`})
	if err := runValidate(bad, false, &bytes.Buffer{}); err == nil {
		t.Error("invalid document accepted")
	}
}

func TestRootCommandGenerate(t *testing.T) {
	dir := t.TempDir()
	writeLists(t, dir, map[string]string{
		"01-cards.csv": "Size;Quantity;Price\nA;1;2\n",
		"config.yaml":  "csv_settings:\n  delimiter: semicolon\nlog_format: json\n",
	})
	output := filepath.Join(dir, "pricing.json")

	var stdout, stderr bytes.Buffer
	rootCmd.SetOut(&stdout)
	rootCmd.SetErr(&stderr)
	rootCmd.SetArgs([]string{"generate",
		"--config", filepath.Join(dir, "config.yaml"),
		"--input-dir", dir,
		"--output", output,
	})
	t.Cleanup(func() {
		rootCmd.SetArgs(nil)
		rootCmd.SetOut(nil)
		rootCmd.SetErr(nil)
	})

	if err := rootCmd.Execute(); err != nil {
		t.Fatalf("Execute error: %v\n%s", err, stderr.String())
	}
	if _, err := os.Stat(output); err != nil {
		t.Fatalf("output not written: %v", err)
	}
	if !strings.Contains(stderr.String(), `"msg":"pricing data has been generated successfully"`) {
		t.Errorf("expected JSON log record, got:\n%s", stderr.String())
	}
	if !strings.Contains(stderr.String(), `"run_id":"`) {
		t.Errorf("log records lack run_id:\n%s", stderr.String())
	}
}

func TestNewLogger(t *testing.T) {
	var buf bytes.Buffer
	cfg := config.Default()
	cfg.LogLevel = "warn"

	log := newLogger(&buf, cfg, false)
	log.Info("hidden")
	log.Warn("shown")
	if strings.Contains(buf.String(), "hidden") || !strings.Contains(buf.String(), "shown") {
		t.Errorf("level not applied:\n%s", buf.String())
	}

	buf.Reset()
	newLogger(&buf, cfg, true).Debug("debug record")
	if !strings.Contains(buf.String(), "debug record") {
		t.Error("--verbose should enable debug records")
	}
}
