package commands

import (
	"context"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/vsinha/partcounter/pkg/application/services/catalog"
	"github.com/vsinha/partcounter/pkg/domain/entities"
	"github.com/vsinha/partcounter/pkg/domain/services"
	"github.com/vsinha/partcounter/pkg/infrastructure/logger"
	"github.com/vsinha/partcounter/pkg/infrastructure/repositories/csv"
	"github.com/vsinha/partcounter/pkg/infrastructure/repositories/memory"
	"github.com/vsinha/partcounter/pkg/interfaces/cli/output"
)

// Config holds configuration for the count command
type Config struct {
	ScenarioDir     string
	PartsFile       string
	ComplexesFile   string
	CompositionFile string
	SelectionsFile  string
	OutputFile      string
	Format          string
	HideZero        bool
	Verbose         bool
	Help            bool

	// Stdout receives results and progress; defaults to os.Stdout
	Stdout io.Writer
}

// CountCommand loads a CSV scenario and prints the part totals it requires
type CountCommand struct {
	config Config
	out    io.Writer
}

// NewCountCommand creates a new count command with the given configuration
func NewCountCommand(config Config) *CountCommand {
	out := config.Stdout
	if out == nil {
		out = os.Stdout
	}
	return &CountCommand{
		config: config,
		out:    out,
	}
}

// Execute runs the count command
func (c *CountCommand) Execute(ctx context.Context) error {
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
		fmt.Fprintln(c.out, "📂 Loading data from CSV files...")
	}

	csvLoader := csv.NewLoader()

	parts, err := csvLoader.LoadParts(files["Parts"])
	if err != nil {
		return fmt.Errorf("error loading parts: %w", err)
	}

	complexes, err := csvLoader.LoadComplexes(files["Complexes"])
	if err != nil {
		return fmt.Errorf("error loading complexes: %w", err)
	}

	partSlice := make([]entities.Part, len(parts))
	for i, part := range parts {
		partSlice[i] = *part
	}

	err = csvLoader.LoadComposition(files["Composition"], complexes, services.NewPartSet(partSlice))
	if err != nil {
		return fmt.Errorf("error loading composition: %w", err)
	}

	selections, err := csvLoader.LoadSelections(files["Selections"])
	if err != nil {
		return fmt.Errorf("error loading selections: %w", err)
	}

	if c.config.Verbose {
		fmt.Fprintf(c.out, "✅ Data loaded successfully:\n")
		fmt.Fprintf(c.out, "  Parts: %d\n", len(parts))
		fmt.Fprintf(c.out, "  Complexes: %d\n", len(complexes))
		fmt.Fprintf(c.out, "  Selections: %d\n", len(selections))
		fmt.Fprintln(c.out)
		fmt.Fprintln(c.out, "🔍 Validating catalog consistency...")
	}

	complexSlice := make([]entities.Complex, len(complexes))
	for i, cx := range complexes {
		complexSlice[i] = *cx
	}

	validation := services.NewCatalogValidator().ValidateCatalog(partSlice, complexSlice)
	if !validation.Valid() {
		return fmt.Errorf("catalog validation failed: %s", strings.Join(validation.Errors, "; "))
	}

	if c.config.Verbose {
		fmt.Fprintln(c.out, "✅ Catalog validation passed")
	}

	repo := memory.NewCatalogRepository(len(parts), len(complexes))
	if err := repo.LoadParts(parts); err != nil {
		return fmt.Errorf("failed to load parts into repository: %w", err)
	}
	if err := repo.LoadComplexes(complexes); err != nil {
		return fmt.Errorf("failed to load complexes into repository: %w", err)
	}

	log := logger.Nop()
	if c.config.Verbose {
		if log, err = logger.New("development"); err != nil {
			return fmt.Errorf("failed to create logger: %w", err)
		}
		defer log.Sync()
	}
	svc := catalog.NewService(repo, nil, log)

	if c.config.Verbose {
		fmt.Fprintln(c.out, "🔄 Aggregating part totals...")
	}

	startTime := time.Now()
	result, err := svc.Count(ctx, selections)
	computeTime := time.Since(startTime)
	if err != nil {
		return fmt.Errorf("error computing totals: %w", err)
	}

	if c.config.Verbose {
		fmt.Fprintf(c.out, "✅ Aggregation completed in %v\n\n", computeTime)
	}

	outputConfig := output.Config{
		Format:      c.config.Format,
		OutputFile:  c.config.OutputFile,
		Verbose:     c.config.Verbose,
		HideZero:    c.config.HideZero,
		ComputeTime: computeTime,
		Stdout:      c.out,
	}

	if err := output.Generate(result, outputConfig); err != nil {
		return fmt.Errorf("error generating output: %w", err)
	}

	if c.config.Verbose {
		fmt.Fprintln(c.out, "🏁 Count complete!")
	}

	return nil
}

// validateInputs validates the command configuration
func (c *CountCommand) validateInputs() error {
	switch c.config.Format {
	case "text", "json", "csv":
	default:
		return fmt.Errorf("unsupported output format: %s", c.config.Format)
	}
	if c.config.ScenarioDir == "" &&
		(c.config.PartsFile == "" || c.config.ComplexesFile == "" ||
			c.config.CompositionFile == "" || c.config.SelectionsFile == "") {
		return fmt.Errorf("must specify either -scenario directory or individual CSV files")
	}
	return nil
}

// resolveInputFiles determines the actual file paths to use.
// Individual file flags override the matching file in the scenario directory.
func (c *CountCommand) resolveInputFiles() (map[string]string, error) {
	files := map[string]string{
		"Parts":       c.config.PartsFile,
		"Complexes":   c.config.ComplexesFile,
		"Composition": c.config.CompositionFile,
		"Selections":  c.config.SelectionsFile,
	}
	defaults := map[string]string{
		"Parts":       "parts.csv",
		"Complexes":   "complexes.csv",
		"Composition": "composition.csv",
		"Selections":  "selections.csv",
	}

	for name, path := range files {
		if path == "" {
			files[name] = filepath.Join(c.config.ScenarioDir, defaults[name])
		}
	}

	for name, path := range files {
		if _, err := os.Stat(path); os.IsNotExist(err) {
			return nil, fmt.Errorf("%s file not found: %s", name, path)
		}
	}

	return files, nil
}

// printHeader prints the command header information
func (c *CountCommand) printHeader(files map[string]string) {
	fmt.Fprintf(c.out, "🚀 Part Counter CLI\n")
	fmt.Fprintf(c.out, "Input files:\n")
	fmt.Fprintf(c.out, "  Parts: %s\n", files["Parts"])
	fmt.Fprintf(c.out, "  Complexes: %s\n", files["Complexes"])
	fmt.Fprintf(c.out, "  Composition: %s\n", files["Composition"])
	fmt.Fprintf(c.out, "  Selections: %s\n", files["Selections"])
	fmt.Fprintf(c.out, "Output format: %s\n", c.config.Format)
	if c.config.OutputFile != "" {
		fmt.Fprintf(c.out, "Output file: %s\n", c.config.OutputFile)
	}
	fmt.Fprintln(c.out)
}

// showHelp displays the help message
func (c *CountCommand) showHelp() {
	fmt.Fprintf(c.out, `Part Counter CLI - total part quantities for a set of kits

USAGE:
    partcounter -scenario <directory>                # Use scenario directory with CSV files
    partcounter -parts <file> -complexes <file> ...  # Use individual CSV files
    partcounter generate [options]                   # Generate a random scenario

OPTIONS:
    -scenario <dir>       Path to scenario directory containing CSV files
    -parts <file>         Path to parts CSV file
    -complexes <file>     Path to complexes CSV file
    -composition <file>   Path to composition CSV file
    -selections <file>    Path to selections CSV file
    -output <file>        Write results to a file instead of stdout
    -format <fmt>         Output format: text, json, csv (default: text)
    -hide-zero            Leave out parts whose total is zero
    -verbose              Enable verbose output
    -help                 Show this help message

SCENARIO DIRECTORY STRUCTURE:
    scenario_name/
    ├── parts.csv         # Part catalog
    ├── complexes.csv     # Kits
    ├── composition.csv   # Part quantities per kit
    └── selections.csv    # Kits to count and how many of each

CSV FILE FORMATS:

parts.csv:
    id,name,unit
    1,Bolt,pcs
    4,Rope,m

complexes.csv:
    id,name,description
    1,Playground A,Basic kit

composition.csv:
    complex_id,part_id,quantity
    1,1,40

selections.csv:
    complex_id,count
    1,3

EXAMPLES:
    # Count a scenario
    partcounter -scenario examples/playgrounds -verbose

    # JSON totals without zero lines
    partcounter -scenario examples/playgrounds -format json -hide-zero

    # CSV totals to a file
    partcounter -scenario examples/playgrounds -format csv -output results/totals.csv
`)
}
