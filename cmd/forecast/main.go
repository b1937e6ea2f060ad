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
	_ = godotenv.Load()

	// Command line flags
	var (
		historyFile = flag.String("history", "", "Path to historical sales CSV file")
		paramsFile  = flag.String("params", "", "Path to YAML forecast params file")
		outputFile  = flag.String("out", "forecast.csv", "Output forecast CSV file")
		verbose     = flag.Bool("verbose", false, "Enable verbose output")
		help        = flag.Bool("help", false, "Show help message")
	)

	flag.Parse()

	config := commands.ForecastConfig{
		HistoryFile: *historyFile,
		ParamsFile:  *paramsFile,
		OutputFile:  *outputFile,
		Verbose:     *verbose,
		Help:        *help,
	}

	cmd := commands.NewForecastCommand(config)
	ctx := context.Background()

	if err := cmd.Execute(ctx); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}
