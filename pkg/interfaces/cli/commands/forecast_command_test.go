package commands

import (
	"context"
	"encoding/csv"
	"os"
	"path/filepath"
	"testing"
)

func writeForecastInputs(t *testing.T) (history, params string) {
	t.Helper()
	dir := t.TempDir()
	history = filepath.Join(dir, "history.csv")
	historyContent := "product,region,week,sales\n" +
		"Superman,AMR,wk1,100\n" +
		"Superman,AMR,wk2,80\n"
	if err := os.WriteFile(history, []byte(historyContent), 0o644); err != nil {
		t.Fatalf("writing history: %v", err)
	}

	params = filepath.Join(dir, "params.yaml")
	paramsContent := `
product: Superman Plus
target_price: 100
references:
  - name: Superman
    price: 100
    weight: 1
`
	if err := os.WriteFile(params, []byte(paramsContent), 0o644); err != nil {
		t.Fatalf("writing params: %v", err)
	}
	return history, params
}

func TestForecastCommand_WritesForecastCSV(t *testing.T) {
	history, params := writeForecastInputs(t)
	outPath := filepath.Join(t.TempDir(), "forecast.csv")

	cmd := NewForecastCommand(ForecastConfig{
		HistoryFile: history,
		ParamsFile:  params,
		OutputFile:  outPath,
	})
	if err := cmd.Execute(context.Background()); err != nil {
		t.Fatalf("Execute failed: %v", err)
	}

	file, err := os.Open(outPath)
	if err != nil {
		t.Fatalf("opening forecast.csv: %v", err)
	}
	defer file.Close()

	records, err := csv.NewReader(file).ReadAll()
	if err != nil {
		t.Fatalf("reading forecast.csv: %v", err)
	}
	if len(records) != 2 {
		t.Fatalf("forecast.csv has %d records, want 2", len(records))
	}
	if records[0][0] != "product" || records[1][0] != "Superman Plus" {
		t.Errorf("records = %v", records)
	}
	// Same price, single reference: the forecast echoes the history.
	if records[1][1] != "100" || records[1][2] != "80" {
		t.Errorf("forecast row = %v, want [Superman Plus 100 80]", records[1])
	}
}

func TestForecastCommand_RequiresInputs(t *testing.T) {
	cmd := NewForecastCommand(ForecastConfig{})
	if err := cmd.Execute(context.Background()); err == nil {
		t.Error("expected error without history and params")
	}
}

func TestLoadForecastParams_RejectsMissingReferences(t *testing.T) {
	path := writeConfig(t, "product: X\ntarget_price: 100\n")

	if _, err := LoadForecastParams(path); err == nil {
		t.Error("expected validation error for empty references")
	}
}

func TestLoadForecastParams_RejectsZeroPrice(t *testing.T) {
	path := writeConfig(t, `
product: X
target_price: 100
references:
  - name: Superman
    price: 0
    weight: 1
`)

	if _, err := LoadForecastParams(path); err == nil {
		t.Error("expected validation error for zero reference price")
	}
}
