package csv

import (
	"encoding/csv"
	"fmt"
	"os"
	"strings"

	"github.com/planwise/allocator/pkg/domain/entities"
)

// Loader handles loading planning tables from CSV files
type Loader struct{}

// NewLoader creates a new CSV loader
func NewLoader() *Loader {
	return &Loader{}
}

// LoadSupply loads the per-period supply table. The file must carry
// exactly the week and total_supply columns.
func (l *Loader) LoadSupply(filename string) (entities.Table, error) {
	return l.loadFixed(filename, "total_supply", []string{"week", "total_supply"})
}

// LoadBuilds loads the recorded production table.
func (l *Loader) LoadBuilds(filename string) (entities.Table, error) {
	return l.loadFixed(filename, "actual_build", []string{"week", "product", "actual_build"})
}

// LoadSales loads historical sales observations for the forecast
// producer.
func (l *Loader) LoadSales(filename string) (entities.Table, error) {
	return l.loadFixed(filename, "sales_history", []string{"product", "region", "week", "sales"})
}

// LoadForecast loads the wide demand-forecast table: a product column
// followed by one column per period.
func (l *Loader) LoadForecast(filename string) (entities.Table, error) {
	return l.loadWide(filename, "demand_forecast", []string{"product"})
}

// LoadDemand loads the wide customer-demand table: product, channel and
// region columns followed by one column per period.
func (l *Loader) LoadDemand(filename string) (entities.Table, error) {
	return l.loadWide(filename, "customer_demand", []string{"product", "channel", "region"})
}

// loadFixed reads a table whose header must match expectedHeader exactly.
func (l *Loader) loadFixed(filename, name string, expectedHeader []string) (entities.Table, error) {
	header, rows, err := readRecords(filename, name)
	if err != nil {
		return entities.Table{}, err
	}

	if !headerMatches(header, expectedHeader) {
		return entities.Table{}, fmt.Errorf("%s CSV header mismatch. Expected: %v, Got: %v", name, expectedHeader, header)
	}

	for i, row := range rows {
		if len(row) != len(expectedHeader) {
			return entities.Table{}, fmt.Errorf("%s CSV row %d: expected %d columns, got %d", name, i+2, len(expectedHeader), len(row))
		}
	}

	return entities.Table{Name: name, Columns: normalizeHeader(header), Rows: rows}, nil
}

// loadWide reads a table whose header starts with idColumns and carries
// at least one period column after them.
func (l *Loader) loadWide(filename, name string, idColumns []string) (entities.Table, error) {
	header, rows, err := readRecords(filename, name)
	if err != nil {
		return entities.Table{}, err
	}

	if len(header) < len(idColumns)+1 {
		return entities.Table{}, fmt.Errorf("%s CSV must have columns %v plus at least one period column, got %v", name, idColumns, header)
	}
	if !headerMatches(header[:len(idColumns)], idColumns) {
		return entities.Table{}, fmt.Errorf("%s CSV must start with columns %v, got %v", name, idColumns, header)
	}

	for i, row := range rows {
		if len(row) != len(header) {
			return entities.Table{}, fmt.Errorf("%s CSV row %d: expected %d columns, got %d", name, i+2, len(header), len(row))
		}
	}

	// Identifier columns are normalized; period labels keep their case.
	columns := make([]string, len(header))
	copy(columns, normalizeHeader(header[:len(idColumns)]))
	for i := len(idColumns); i < len(header); i++ {
		columns[i] = strings.TrimSpace(header[i])
	}

	return entities.Table{Name: name, Columns: columns, Rows: rows}, nil
}

func readRecords(filename, name string) ([]string, [][]string, error) {
	file, err := os.Open(filename)
	if err != nil {
		return nil, nil, fmt.Errorf("failed to open %s file %s: %w", name, filename, err)
	}
	defer file.Close()

	reader := csv.NewReader(file)
	records, err := reader.ReadAll()
	if err != nil {
		return nil, nil, fmt.Errorf("failed to read %s CSV: %w", name, err)
	}

	if len(records) < 2 {
		return nil, nil, fmt.Errorf("%s CSV must have header and at least one data row", name)
	}

	return records[0], records[1:], nil
}

func headerMatches(actual, expected []string) bool {
	if len(actual) != len(expected) {
		return false
	}
	for i, col := range expected {
		if strings.ToLower(strings.TrimSpace(actual[i])) != col {
			return false
		}
	}
	return true
}

func normalizeHeader(header []string) []string {
	out := make([]string, len(header))
	for i, col := range header {
		out[i] = strings.ToLower(strings.TrimSpace(col))
	}
	return out
}
