package main

import (
	"context"
	"flag"
	"fmt"
	"os"

	"github.com/joho/godotenv"

	"github.com/planwise/allocator/pkg/interfaces/cli/commands"
)

func main() {
	// Optional .env for defaults like ALLOCATOR_OUTPUT_DIR.
	_ = godotenv.Load()

	// Command line flags
	var (
		scenarioDir = flag.String(
			"scenario",
			"",
			"Path to scenario directory containing CSV files",
		)
		supplyFile   = flag.String("supply", "", "Path to per-period supply CSV file")
		buildsFile   = flag.String("builds", "", "Path to recorded production CSV file")
		forecastFile = flag.String("forecast", "", "Path to demand forecast CSV file")
		demandFile   = flag.String("demand", "", "Path to customer demand CSV file")
		configFile   = flag.String("config", "", "Path to YAML scenario config")
		outputDir    = flag.String("output", os.Getenv("ALLOCATOR_OUTPUT_DIR"), "Output directory for results (optional)")
		format       = flag.String("format", "text", "Output format: text, json, csv")
		integral     = flag.Bool("integral", false, "Force whole-unit allocations")
		timeout      = flag.Duration("timeout", 0, "Solve timeout, e.g. 30s (default: none)")
		verbose      = flag.Bool("verbose", false, "Enable verbose output")
		help         = flag.Bool("help", false, "Show help message")
	)

	flag.Parse()

	// Create command configuration
	config := commands.Config{
		ScenarioDir:  *scenarioDir,
		SupplyFile:   *supplyFile,
		BuildsFile:   *buildsFile,
		ForecastFile: *forecastFile,
		DemandFile:   *demandFile,
		ConfigFile:   *configFile,
		OutputDir:    *outputDir,
		Format:       *format,
		Integral:     *integral,
		Timeout:      *timeout,
		Verbose:      *verbose,
		Help:         *help,
	}

	// Create and execute command
	cmd := commands.NewAllocateCommand(config)
	ctx := context.Background()

	if err := cmd.Execute(ctx); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}
