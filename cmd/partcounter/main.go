package main

import (
	"context"
	"flag"
	"fmt"
	"os"

	"github.com/vsinha/partcounter/pkg/interfaces/cli/commands"
)

func main() {
	ctx := context.Background()

	if len(os.Args) > 1 && os.Args[1] == "generate" {
		if err := runGenerate(ctx, os.Args[2:]); err != nil {
			fmt.Fprintf(os.Stderr, "Error: %v\n", err)
			os.Exit(1)
		}
		return
	}

	// Command line flags
	var (
		scenarioDir = flag.String(
			"scenario",
			"",
			"Path to scenario directory containing CSV files",
		)
		partsFile       = flag.String("parts", "", "Path to parts CSV file")
		complexesFile   = flag.String("complexes", "", "Path to complexes CSV file")
		compositionFile = flag.String("composition", "", "Path to composition CSV file")
		selectionsFile  = flag.String("selections", "", "Path to selections CSV file")
		outputFile      = flag.String("output", "", "Output file for results (optional)")
		format          = flag.String("format", "text", "Output format: text, json, csv")
		hideZero        = flag.Bool("hide-zero", false, "Leave out parts whose total is zero")
		verbose         = flag.Bool("verbose", false, "Enable verbose output")
		help            = flag.Bool("help", false, "Show help message")
	)

	flag.Parse()

	// Create command configuration
	config := commands.Config{
		ScenarioDir:     *scenarioDir,
		PartsFile:       *partsFile,
		ComplexesFile:   *complexesFile,
		CompositionFile: *compositionFile,
		SelectionsFile:  *selectionsFile,
		OutputFile:      *outputFile,
		Format:          *format,
		HideZero:        *hideZero,
		Verbose:         *verbose,
		Help:            *help,
	}

	// Create and execute command
	cmd := commands.NewCountCommand(config)

	if err := cmd.Execute(ctx); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

func runGenerate(ctx context.Context, args []string) error {
	fs := flag.NewFlagSet("generate", flag.ExitOnError)
	var (
		parts      = fs.Int("parts", 100, "Number of parts in the catalog")
		complexes  = fs.Int("complexes", 10, "Number of complexes")
		maxEntries = fs.Int("max-entries", 8, "Maximum composition entries per complex")
		selections = fs.Int("selections", 5, "Number of selection lines")
		maxCount   = fs.Int("max-count", 10, "Maximum count per selection")
		outputDir  = fs.String("output", "", "Output directory for generated files")
		seed       = fs.Int64("seed", 0, "Random seed for reproducible generation")
		verbose    = fs.Bool("verbose", false, "Enable verbose output")
		help       = fs.Bool("help", false, "Show help message")
	)
	if err := fs.Parse(args); err != nil {
		return err
	}

	cmd := commands.NewGenerateCommand(commands.GenerateConfig{
		Parts:      *parts,
		Complexes:  *complexes,
		MaxEntries: *maxEntries,
		Selections: *selections,
		MaxCount:   *maxCount,
		OutputDir:  *outputDir,
		Seed:       *seed,
		Verbose:    *verbose,
		Help:       *help,
	})
	return cmd.Execute(ctx)
}
