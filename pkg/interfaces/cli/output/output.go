package output

import (
	"encoding/csv"
	"encoding/json"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strconv"

	"github.com/planwise/allocator/pkg/application/dto"
	"github.com/planwise/allocator/pkg/domain/entities"
)

// Config holds configuration for output generation
type Config struct {
	Format    string
	OutputDir string
	Verbose   bool
}

// Generate creates output in the specified format
func Generate(report *dto.RunReport, config Config) error {
	switch config.Format {
	case "text":
		return generateTextOutput(report, config)
	case "json":
		return generateJSONOutput(report, config)
	case "csv":
		return generateCSVOutput(report, config)
	default:
		return fmt.Errorf("unsupported output format: %s", config.Format)
	}
}

// generateTextOutput creates human-readable text output
func generateTextOutput(report *dto.RunReport, config Config) error {
	fmt.Printf("Allocation Run %s\n", report.RunID)
	fmt.Printf("========================\n\n")

	fmt.Printf("Scenario: %s\n", report.Scenario)
	fmt.Printf("Status: %s\n", report.Status)
	fmt.Printf("Objective: %.4f\n", report.Objective)
	fmt.Printf("Solve Time: %v\n", report.SolveTime)
	fmt.Printf("Allocated: %.2f of %.2f demanded\n\n", report.TotalAllocation(), report.TotalDemand())

	if len(report.Warnings) > 0 {
		fmt.Printf("Conversion Warnings:\n")
		for _, w := range report.Warnings {
			fmt.Printf("  %s\n", w.String())
		}
		fmt.Println()
	}

	if len(report.Summaries.ByProduct) > 0 {
		fmt.Printf("By Product:\n")
		fmt.Printf("%-20s %-12s %-12s %-12s\n", "Product", "Demand", "Allocated", "Fill Rate")
		fmt.Printf("%-20s %-12s %-12s %-12s\n", "--------------------", "------------", "------------", "------------")
		for _, g := range report.Summaries.ByProduct {
			fmt.Printf("%-20s %-12.2f %-12.2f %-12.4f\n", g.Product, g.Demand, g.Allocation, g.Satisfaction)
		}
		fmt.Println()
	}

	if config.Verbose && len(report.Rows) > 0 {
		fmt.Printf("Allocations:\n")
		fmt.Printf("%-20s %-18s %-10s %-8s %-10s %-10s %-10s\n",
			"Product", "Channel", "Region", "Period", "Demand", "Allocated", "Fill Rate")
		for _, row := range report.Rows {
			fmt.Printf("%-20s %-18s %-10s %-8s %-10.2f %-10.2f %-10.4f\n",
				row.Product, row.Channel, row.Region, row.Period,
				row.Demand, row.Allocation, row.Satisfaction)
		}
		fmt.Println()
	}

	return nil
}

// generateJSONOutput creates JSON output
func generateJSONOutput(report *dto.RunReport, config Config) error {
	jsonData, err := json.MarshalIndent(report, "", "  ")
	if err != nil {
		return fmt.Errorf("failed to marshal JSON: %w", err)
	}

	if config.OutputDir == "" {
		fmt.Println(string(jsonData))
		return nil
	}

	if err := os.MkdirAll(config.OutputDir, 0755); err != nil {
		return fmt.Errorf("failed to create output directory: %w", err)
	}
	filename := filepath.Join(config.OutputDir, "allocation_results.json")
	if err := os.WriteFile(filename, jsonData, 0644); err != nil {
		return fmt.Errorf("failed to write JSON file: %w", err)
	}
	if config.Verbose {
		fmt.Printf("Results saved to: %s\n", filename)
	}
	return nil
}

// generateCSVOutput creates CSV output: the allocation plan plus the
// per-product summary when an output directory is given, the plan alone
// on stdout otherwise.
func generateCSVOutput(report *dto.RunReport, config Config) error {
	if config.OutputDir == "" {
		return writeAllocationsCSV(os.Stdout, report.Rows)
	}

	if err := os.MkdirAll(config.OutputDir, 0755); err != nil {
		return fmt.Errorf("failed to create output directory: %w", err)
	}

	allocPath := filepath.Join(config.OutputDir, "allocations.csv")
	allocFile, err := os.Create(allocPath)
	if err != nil {
		return fmt.Errorf("failed to create %s: %w", allocPath, err)
	}
	defer allocFile.Close()
	if err := writeAllocationsCSV(allocFile, report.Rows); err != nil {
		return err
	}

	summaryPath := filepath.Join(config.OutputDir, "product_summary.csv")
	summaryFile, err := os.Create(summaryPath)
	if err != nil {
		return fmt.Errorf("failed to create %s: %w", summaryPath, err)
	}
	defer summaryFile.Close()
	if err := writeSummaryCSV(summaryFile, report.Summaries.ByProduct); err != nil {
		return err
	}

	if config.Verbose {
		fmt.Printf("Results saved to: %s, %s\n", allocPath, summaryPath)
	}
	return nil
}

func writeAllocationsCSV(w io.Writer, rows []entities.AllocationRow) error {
	writer := csv.NewWriter(w)

	header := []string{"product", "channel", "region", "period", "demand", "allocation", "satisfaction"}
	if err := writer.Write(header); err != nil {
		return fmt.Errorf("failed to write CSV header: %w", err)
	}
	for _, row := range rows {
		record := []string{
			string(row.Product),
			string(row.Channel),
			string(row.Region),
			string(row.Period),
			formatFloat(row.Demand),
			formatFloat(row.Allocation),
			formatFloat(row.Satisfaction),
		}
		if err := writer.Write(record); err != nil {
			return fmt.Errorf("failed to write CSV row: %w", err)
		}
	}
	writer.Flush()
	return writer.Error()
}

func writeSummaryCSV(w io.Writer, groups []entities.GroupSummary) error {
	writer := csv.NewWriter(w)

	header := []string{"product", "demand", "allocation", "satisfaction"}
	if err := writer.Write(header); err != nil {
		return fmt.Errorf("failed to write CSV header: %w", err)
	}
	for _, g := range groups {
		record := []string{
			string(g.Product),
			formatFloat(g.Demand),
			formatFloat(g.Allocation),
			formatFloat(g.Satisfaction),
		}
		if err := writer.Write(record); err != nil {
			return fmt.Errorf("failed to write CSV row: %w", err)
		}
	}
	writer.Flush()
	return writer.Error()
}

func formatFloat(v float64) string {
	return strconv.FormatFloat(v, 'f', -1, 64)
}
