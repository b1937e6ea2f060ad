package commands

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/planwise/allocator/pkg/alloc"
	"github.com/planwise/allocator/pkg/application/services"
	"github.com/planwise/allocator/pkg/domain/entities"
	"github.com/planwise/allocator/pkg/infrastructure/events"
	"github.com/planwise/allocator/pkg/infrastructure/repositories/csv"
	"github.com/planwise/allocator/pkg/interfaces/cli/output"
)

// Config holds configuration for the allocate command
type Config struct {
	ScenarioDir  string
	SupplyFile   string
	BuildsFile   string
	ForecastFile string
	DemandFile   string
	ConfigFile   string
	OutputDir    string
	Format       string
	Integral     bool
	Timeout      time.Duration
	Verbose      bool
	Help         bool
}

// AllocateCommand handles the main allocation execution logic
type AllocateCommand struct {
	config Config
}

// NewAllocateCommand creates a new allocate command with the given configuration
func NewAllocateCommand(config Config) *AllocateCommand {
	return &AllocateCommand{
		config: config,
	}
}

// Execute runs the allocate command
func (c *AllocateCommand) Execute(ctx context.Context) error {
	if c.config.Help {
		c.showHelp()
		return nil
	}

	if err := c.validateInputs(); err != nil {
		return fmt.Errorf("validation error: %w", err)
	}

	files, err := c.resolveInputFiles()
	if err != nil {
		return fmt.Errorf("failed to resolve input files: %w", err)
	}

	if c.config.Verbose {
		c.printHeader(files)
	}

	tables, err := c.loadTables(files)
	if err != nil {
		return err
	}

	scenario := &entities.Scenario{
		Name:    "cli",
		Tables:  tables,
		Weights: entities.NewPriorityWeights(),
	}
	solverConfig := alloc.Config{
		Integral: c.config.Integral,
		Timeout:  c.config.Timeout,
	}

	if c.config.ConfigFile != "" {
		scenarioConfig, err := LoadScenarioConfig(c.config.ConfigFile)
		if err != nil {
			return err
		}
		if scenarioConfig.Name != "" {
			scenario.Name = scenarioConfig.Name
		}
		scenario.Weights = scenarioConfig.PriorityWeights()
		scenario.Overrides, err = scenarioConfig.OverrideConstraints()
		if err != nil {
			return err
		}
		if scenarioConfig.Solver.Integral {
			solverConfig.Integral = true
		}
		timeout, err := scenarioConfig.SolveTimeout()
		if err != nil {
			return err
		}
		if timeout > 0 && solverConfig.Timeout == 0 {
			solverConfig.Timeout = timeout
		}
	}

	if c.config.Verbose {
		fmt.Println("Running allocation...")
	}

	service := services.NewPlanningService(solverConfig, events.NewInMemoryEventStore())
	report, err := service.Run(ctx, scenario)
	if err != nil {
		return fmt.Errorf("error running allocation: %w", err)
	}

	if c.config.Verbose {
		fmt.Printf("Allocation completed in %v\n\n", report.SolveTime)
	}

	outputConfig := output.Config{
		Format:    c.config.Format,
		OutputDir: c.config.OutputDir,
		Verbose:   c.config.Verbose,
	}
	if err := output.Generate(report, outputConfig); err != nil {
		return fmt.Errorf("error generating output: %w", err)
	}

	return nil
}

// validateInputs validates the command configuration
func (c *AllocateCommand) validateInputs() error {
	if c.config.ScenarioDir == "" && c.config.SupplyFile == "" {
		return fmt.Errorf("must specify either -scenario directory or -supply file")
	}
	return nil
}

// resolveInputFiles determines the actual file paths to use. Supply is
// required; builds, forecast and demand are optional and skipped when
// the file does not exist.
func (c *AllocateCommand) resolveInputFiles() (map[string]string, error) {
	var supplyPath, buildsPath, forecastPath, demandPath string

	if c.config.ScenarioDir != "" {
		supplyPath = filepath.Join(c.config.ScenarioDir, "supply.csv")
		buildsPath = filepath.Join(c.config.ScenarioDir, "builds.csv")
		forecastPath = filepath.Join(c.config.ScenarioDir, "forecast.csv")
		demandPath = filepath.Join(c.config.ScenarioDir, "demand.csv")
	} else {
		supplyPath = c.config.SupplyFile
		buildsPath = c.config.BuildsFile
		forecastPath = c.config.ForecastFile
		demandPath = c.config.DemandFile
	}

	if _, err := os.Stat(supplyPath); os.IsNotExist(err) {
		return nil, fmt.Errorf("supply file not found: %s", supplyPath)
	}

	files := map[string]string{"Supply": supplyPath}
	for name, path := range map[string]string{
		"Builds":   buildsPath,
		"Forecast": forecastPath,
		"Demand":   demandPath,
	} {
		if path == "" {
			continue
		}
		if _, err := os.Stat(path); err == nil {
			files[name] = path
		} else if c.config.ScenarioDir == "" {
			// Explicitly named files must exist.
			return nil, fmt.Errorf("%s file not found: %s", name, path)
		}
	}

	return files, nil
}

// loadTables loads the resolved CSV files into a table set
func (c *AllocateCommand) loadTables(files map[string]string) (entities.TableSet, error) {
	loader := csv.NewLoader()
	var tables entities.TableSet
	var err error

	if tables.Supply, err = loader.LoadSupply(files["Supply"]); err != nil {
		return entities.TableSet{}, fmt.Errorf("error loading supply: %w", err)
	}
	if path, ok := files["Builds"]; ok {
		if tables.Builds, err = loader.LoadBuilds(path); err != nil {
			return entities.TableSet{}, fmt.Errorf("error loading builds: %w", err)
		}
	}
	if path, ok := files["Forecast"]; ok {
		if tables.Forecast, err = loader.LoadForecast(path); err != nil {
			return entities.TableSet{}, fmt.Errorf("error loading forecast: %w", err)
		}
	}
	if path, ok := files["Demand"]; ok {
		if tables.Demand, err = loader.LoadDemand(path); err != nil {
			return entities.TableSet{}, fmt.Errorf("error loading demand: %w", err)
		}
	}

	if c.config.Verbose {
		fmt.Printf("Data loaded successfully:\n")
		fmt.Printf("  Supply rows: %d\n", len(tables.Supply.Rows))
		fmt.Printf("  Build rows: %d\n", len(tables.Builds.Rows))
		fmt.Printf("  Forecast rows: %d\n", len(tables.Forecast.Rows))
		fmt.Printf("  Demand rows: %d\n", len(tables.Demand.Rows))
		fmt.Println()
	}

	return tables, nil
}

// printHeader prints the command header information
func (c *AllocateCommand) printHeader(files map[string]string) {
	fmt.Printf("Supply Allocation CLI\n")
	fmt.Printf("Input files:\n")
	for _, name := range []string{"Supply", "Builds", "Forecast", "Demand"} {
		if path, ok := files[name]; ok {
			fmt.Printf("  %s: %s\n", name, path)
		}
	}
	if c.config.ConfigFile != "" {
		fmt.Printf("  Scenario config: %s\n", c.config.ConfigFile)
	}
	fmt.Printf("Output format: %s\n", c.config.Format)
	if c.config.OutputDir != "" {
		fmt.Printf("Output directory: %s\n", c.config.OutputDir)
	}
	fmt.Println()
}

// showHelp displays the help message
func (c *AllocateCommand) showHelp() {
	fmt.Printf(`Supply Allocation CLI - Demand-Constrained Supply Planning

USAGE:
    allocator -scenario <directory>            # Use scenario directory with CSV files
    allocator -supply <file> -demand <file>    # Use individual CSV files

OPTIONS:
    -scenario <dir>     Path to scenario directory containing CSV files
    -supply <file>      Path to per-period supply CSV file
    -builds <file>      Path to recorded production CSV file (optional)
    -forecast <file>    Path to demand forecast CSV file (optional)
    -demand <file>      Path to customer demand CSV file (optional)
    -config <file>      Path to YAML scenario config (weights, overrides, solver)
    -output <dir>       Output directory for results (optional)
    -format <fmt>       Output format: text, json, csv (default: text)
    -integral           Force whole-unit allocations via branch and bound
    -timeout <dur>      Solve timeout, e.g. 30s (default: none)
    -verbose            Enable verbose output
    -help               Show this help message

SCENARIO DIRECTORY STRUCTURE:
    scenario_name/
    ├── supply.csv      # Per-period available supply
    ├── builds.csv      # Recorded production (optional)
    ├── forecast.csv    # Demand forecast (optional)
    └── demand.csv      # Customer demand by product/channel/region

CSV FILE FORMATS:

supply.csv:
    week,total_supply
    wk1,1000

builds.csv:
    week,product,actual_build
    wk1,Superman Plus,400

forecast.csv:
    product,wk1,wk2
    Princess Plus,120,140

demand.csv:
    product,channel,region,wk1,wk2
    Superman Plus,Online Store,AMR,60,50

SCENARIO CONFIG (YAML):
    name: launch
    weights:
      products:
        Superman Plus: 10
      regions:
        AMR: 2
    overrides:
      - product: Dwarf Plus
        channel: Online Store
        region: AMR
        period: wk1
        min_satisfaction: 0.9
    solver:
      integral: false
      timeout: 30s

EXAMPLES:
    # Run a scenario directory
    allocator -scenario examples/launch -verbose

    # Individual files with a scenario config
    allocator -supply data/supply.csv -demand data/demand.csv -config launch.yaml

    # Whole-unit allocations as JSON
    allocator -scenario examples/launch -integral -format json -output results/
`)
}
