package commands

import (
	"context"
	"encoding/csv"
	"fmt"
	"os"
	"strconv"

	"github.com/planwise/allocator/pkg/domain/entities"
	"github.com/planwise/allocator/pkg/forecast"
	csvrepo "github.com/planwise/allocator/pkg/infrastructure/repositories/csv"
)

// ForecastConfig holds configuration for the forecast command
type ForecastConfig struct {
	HistoryFile string
	ParamsFile  string
	OutputFile  string
	Verbose     bool
	Help        bool
}

// ForecastCommand produces a demand-forecast CSV from historical sales
// and a YAML params file, ready to feed back into the allocator.
type ForecastCommand struct {
	config ForecastConfig
}

// NewForecastCommand creates a new forecast command with the given configuration
func NewForecastCommand(config ForecastConfig) *ForecastCommand {
	return &ForecastCommand{
		config: config,
	}
}

// Execute runs the forecast command
func (c *ForecastCommand) Execute(ctx context.Context) error {
	if c.config.Help {
		c.showHelp()
		return nil
	}

	if c.config.HistoryFile == "" || c.config.ParamsFile == "" {
		return fmt.Errorf("validation error: both -history and -params are required")
	}

	params, err := LoadForecastParams(c.config.ParamsFile)
	if err != nil {
		return err
	}

	table, err := csvrepo.NewLoader().LoadSales(c.config.HistoryFile)
	if err != nil {
		return fmt.Errorf("error loading sales history: %w", err)
	}
	history, err := salesRecords(table)
	if err != nil {
		return err
	}

	if c.config.Verbose {
		fmt.Printf("Forecasting %s from %d sales observations and %d references\n",
			params.Product, len(history), len(params.References))
	}

	predictions := forecast.Generate(history, params.Params())
	forecastTable := forecast.Table(entities.Product(params.Product), predictions)

	outputFile := c.config.OutputFile
	if outputFile == "" {
		outputFile = "forecast.csv"
	}
	if err := writeTableCSV(outputFile, forecastTable); err != nil {
		return err
	}

	if c.config.Verbose {
		fmt.Printf("Forecast written to %s (%d periods)\n", outputFile, len(forecastTable.Columns)-1)
	}

	return nil
}

// salesRecords converts the raw sales table into forecast input.
func salesRecords(table entities.Table) ([]forecast.SalesRecord, error) {
	productIdx := table.ColumnIndex("product")
	regionIdx := table.ColumnIndex("region")
	periodIdx := table.ColumnIndex("week")
	salesIdx := table.ColumnIndex("sales")

	records := make([]forecast.SalesRecord, 0, len(table.Rows))
	for i, row := range table.Rows {
		sales, err := strconv.ParseFloat(row[salesIdx], 64)
		if err != nil {
			return nil, fmt.Errorf("sales_history CSV row %d: invalid sales value %q", i+2, row[salesIdx])
		}
		records = append(records, forecast.SalesRecord{
			Product: entities.Product(row[productIdx]),
			Region:  entities.Region(row[regionIdx]),
			Period:  entities.Period(row[periodIdx]),
			Sales:   sales,
		})
	}
	return records, nil
}

func writeTableCSV(filename string, table entities.Table) error {
	file, err := os.Create(filename)
	if err != nil {
		return fmt.Errorf("failed to create %s: %w", filename, err)
	}
	defer file.Close()

	writer := csv.NewWriter(file)
	if err := writer.Write(table.Columns); err != nil {
		return fmt.Errorf("failed to write CSV header: %w", err)
	}
	for _, row := range table.Rows {
		if err := writer.Write(row); err != nil {
			return fmt.Errorf("failed to write CSV row: %w", err)
		}
	}
	writer.Flush()
	return writer.Error()
}

// showHelp displays the help message
func (c *ForecastCommand) showHelp() {
	fmt.Printf(`Demand Forecast CLI - Reference-Curve Sales Forecasting

USAGE:
    forecast -history <file> -params <file> [-out <file>]

OPTIONS:
    -history <file>     Path to historical sales CSV file
    -params <file>      Path to YAML forecast params file
    -out <file>         Output forecast CSV file (default: forecast.csv)
    -verbose            Enable verbose output
    -help               Show this help message

CSV FILE FORMAT:

history.csv:
    product,region,week,sales
    Superman,AMR,wk1,400

FORECAST PARAMS (YAML):
    product: Superman Plus
    target_price: 1099
    references:
      - name: Superman
        price: 999
        weight: 3
      - name: Dwarf
        price: 899
        weight: 1
    elasticity:
      AMR: -0.5
    launch_impact:
      AMR: 0.3
    launch_periods: 2
    feature_uplift: 0.05

EXAMPLES:
    # Forecast a new product and feed it to the allocator
    forecast -history data/history.csv -params launch.yaml -out forecast.csv
    allocator -supply data/supply.csv -forecast forecast.csv
`)
}
