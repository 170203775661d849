package commands

import (
	"context"
	encodingcsv "encoding/csv"
	"fmt"
	"io"
	"math/rand"
	"os"
	"path/filepath"
	"strconv"
	"time"
)

// GenerateConfig holds configuration for scenario generation
type GenerateConfig struct {
	Parts      int    // Total number of parts in the catalog
	Complexes  int    // Number of complexes (kits)
	MaxEntries int    // Maximum composition entries per complex
	Selections int    // Number of selection lines
	MaxCount   int    // Maximum requested count per selection
	OutputDir  string // Output directory for generated files
	Seed       int64  // Random seed for reproducible generation
	Help       bool   // Show help
	Verbose    bool   // Verbose output

	Stdout io.Writer
}

// GenerateCommand writes a random but internally consistent CSV scenario
type GenerateCommand struct {
	config GenerateConfig
	rand   *rand.Rand
	out    io.Writer
}

// NewGenerateCommand creates a new generate command
func NewGenerateCommand(config GenerateConfig) *GenerateCommand {
	seed := config.Seed
	if seed == 0 {
		seed = time.Now().UnixNano()
	}
	out := config.Stdout
	if out == nil {
		out = os.Stdout
	}

	return &GenerateCommand{
		config: config,
		rand:   rand.New(rand.NewSource(seed)),
		out:    out,
	}
}

type generatedPart struct {
	id       int64
	name     string
	unit     string
	isShared bool // common hardware that most kits use
}

type generatedComplex struct {
	id      int64
	name    string
	entries []generatedEntry
}

type generatedEntry struct {
	partID   int64
	quantity int64
}

// Execute runs the generate command
func (cmd *GenerateCommand) Execute(ctx context.Context) error {
	if cmd.config.Help {
		cmd.printHelp()
		return nil
	}

	if err := cmd.validate(); err != nil {
		return fmt.Errorf("validation error: %w", err)
	}

	if cmd.config.Verbose {
		fmt.Fprintf(cmd.out,
			"🔧 Generating scenario with %d parts, %d complexes (≤%d entries each), %d selections\n",
			cmd.config.Parts,
			cmd.config.Complexes,
			cmd.config.MaxEntries,
			cmd.config.Selections,
		)
		fmt.Fprintf(cmd.out, "📁 Output directory: %s\n", cmd.config.OutputDir)
	}

	if err := os.MkdirAll(cmd.config.OutputDir, 0755); err != nil {
		return fmt.Errorf("failed to create output directory: %w", err)
	}

	parts := cmd.generateParts()
	complexes := cmd.generateComplexes(parts)

	steps := []struct {
		file  string
		write func(w *encodingcsv.Writer) error
	}{
		{"parts.csv", func(w *encodingcsv.Writer) error { return writeParts(w, parts) }},
		{"complexes.csv", func(w *encodingcsv.Writer) error { return writeComplexes(w, complexes) }},
		{"composition.csv", func(w *encodingcsv.Writer) error { return writeComposition(w, complexes) }},
		{"selections.csv", func(w *encodingcsv.Writer) error { return cmd.writeSelections(w, complexes) }},
	}

	for _, step := range steps {
		if err := ctx.Err(); err != nil {
			return err
		}
		if cmd.config.Verbose {
			fmt.Fprintf(cmd.out, "📦 Generating %s...\n", step.file)
		}
		if err := writeCSVFile(filepath.Join(cmd.config.OutputDir, step.file), step.write); err != nil {
			return fmt.Errorf("failed to generate %s: %w", step.file, err)
		}
	}

	if cmd.config.Verbose {
		fmt.Fprintf(cmd.out, "✅ Scenario generated successfully in %s\n", cmd.config.OutputDir)
	}

	return nil
}

func (cmd *GenerateCommand) validate() error {
	switch {
	case cmd.config.OutputDir == "":
		return fmt.Errorf("output directory is required")
	case cmd.config.Parts < 1:
		return fmt.Errorf("parts must be at least 1, got %d", cmd.config.Parts)
	case cmd.config.Complexes < 1:
		return fmt.Errorf("complexes must be at least 1, got %d", cmd.config.Complexes)
	case cmd.config.MaxEntries < 1:
		return fmt.Errorf("max entries must be at least 1, got %d", cmd.config.MaxEntries)
	case cmd.config.Selections < 0:
		return fmt.Errorf("selections cannot be negative, got %d", cmd.config.Selections)
	case cmd.config.MaxCount < 1:
		return fmt.Errorf("max count must be at least 1, got %d", cmd.config.MaxCount)
	}
	return nil
}

// generateParts creates the catalog; roughly one part in ten is shared hardware
func (cmd *GenerateCommand) generateParts() []generatedPart {
	units := []string{"pcs", "pcs", "pcs", "m", "kg", ""}
	parts := make([]generatedPart, cmd.config.Parts)

	for i := range parts {
		shared := cmd.rand.Float64() < 0.1
		prefix := "PART"
		if shared {
			prefix = "HARDWARE"
		}
		parts[i] = generatedPart{
			id:       int64(i + 1),
			name:     fmt.Sprintf("%s_%05d", prefix, i+1),
			unit:     units[cmd.rand.Intn(len(units))],
			isShared: shared,
		}
	}
	return parts
}

// generateComplexes picks distinct parts for each complex, preferring shared hardware
func (cmd *GenerateCommand) generateComplexes(parts []generatedPart) []generatedComplex {
	var shared []int
	for i, p := range parts {
		if p.isShared {
			shared = append(shared, i)
		}
	}

	complexes := make([]generatedComplex, cmd.config.Complexes)
	for i := range complexes {
		numEntries := 1 + cmd.rand.Intn(min(cmd.config.MaxEntries, len(parts)))
		used := make(map[int]bool, numEntries)
		entries := make([]generatedEntry, 0, numEntries)

		for len(entries) < numEntries {
			var idx int
			if len(shared) > 0 && cmd.rand.Float64() < 0.3 {
				idx = shared[cmd.rand.Intn(len(shared))]
			} else {
				idx = cmd.rand.Intn(len(parts))
			}
			if used[idx] {
				if len(used) == len(parts) {
					break
				}
				continue
			}
			used[idx] = true

			// Hardware comes in larger quantities; a few entries are placeholders with zero
			qty := int64(1 + cmd.rand.Intn(10))
			if parts[idx].isShared {
				qty *= int64(4 + cmd.rand.Intn(8))
			}
			if cmd.rand.Float64() < 0.05 {
				qty = 0
			}
			entries = append(entries, generatedEntry{partID: parts[idx].id, quantity: qty})
		}

		complexes[i] = generatedComplex{
			id:      int64(i + 1),
			name:    fmt.Sprintf("KIT_%04d", i+1),
			entries: entries,
		}
	}
	return complexes
}

func (cmd *GenerateCommand) writeSelections(w *encodingcsv.Writer, complexes []generatedComplex) error {
	if err := w.Write([]string{"complex_id", "count"}); err != nil {
		return err
	}
	for i := 0; i < cmd.config.Selections; i++ {
		c := complexes[cmd.rand.Intn(len(complexes))]
		count := 1 + cmd.rand.Intn(cmd.config.MaxCount)
		if err := w.Write([]string{strconv.FormatInt(c.id, 10), strconv.Itoa(count)}); err != nil {
			return err
		}
	}
	return nil
}

func writeParts(w *encodingcsv.Writer, parts []generatedPart) error {
	if err := w.Write([]string{"id", "name", "unit"}); err != nil {
		return err
	}
	for _, p := range parts {
		if err := w.Write([]string{strconv.FormatInt(p.id, 10), p.name, p.unit}); err != nil {
			return err
		}
	}
	return nil
}

func writeComplexes(w *encodingcsv.Writer, complexes []generatedComplex) error {
	if err := w.Write([]string{"id", "name", "description"}); err != nil {
		return err
	}
	for _, c := range complexes {
		desc := fmt.Sprintf("Generated kit with %d parts", len(c.entries))
		if err := w.Write([]string{strconv.FormatInt(c.id, 10), c.name, desc}); err != nil {
			return err
		}
	}
	return nil
}

func writeComposition(w *encodingcsv.Writer, complexes []generatedComplex) error {
	if err := w.Write([]string{"complex_id", "part_id", "quantity"}); err != nil {
		return err
	}
	for _, c := range complexes {
		for _, e := range c.entries {
			record := []string{
				strconv.FormatInt(c.id, 10),
				strconv.FormatInt(e.partID, 10),
				strconv.FormatInt(e.quantity, 10),
			}
			if err := w.Write(record); err != nil {
				return err
			}
		}
	}
	return nil
}

func writeCSVFile(path string, write func(w *encodingcsv.Writer) error) error {
	file, err := os.Create(path)
	if err != nil {
		return err
	}
	defer file.Close()

	w := encodingcsv.NewWriter(file)
	if err := write(w); err != nil {
		return err
	}
	w.Flush()
	if err := w.Error(); err != nil {
		return err
	}
	return file.Close()
}

// printHelp shows usage information
func (cmd *GenerateCommand) printHelp() {
	fmt.Fprintln(cmd.out, `Part Counter Scenario Generator

USAGE:
    partcounter generate [OPTIONS]

OPTIONS:
    -parts <N>          Number of parts in the catalog (default: 100)
    -complexes <N>      Number of complexes (default: 10)
    -max-entries <N>    Maximum composition entries per complex (default: 8)
    -selections <N>     Number of selection lines (default: 5)
    -max-count <N>      Maximum count per selection (default: 10)
    -output <DIR>       Output directory for generated files (required)
    -seed <N>           Random seed for reproducible generation (optional)
    -verbose            Enable verbose output
    -help               Show this help message

EXAMPLES:
    # Generate a small scenario
    partcounter generate -parts 50 -complexes 5 -output ./small_scenario

    # Generate a large performance scenario
    partcounter generate -parts 20000 -complexes 2000 -max-entries 40 -selections 500 -output ./large_scenario -verbose

    # Generate a reproducible scenario
    partcounter generate -parts 1000 -complexes 100 -output ./repro_scenario -seed 12345`)
}
