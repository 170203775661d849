package output

import (
	"bytes"
	"encoding/csv"
	"encoding/json"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strconv"
	"time"

	"github.com/vsinha/partcounter/pkg/application/dto"
	"github.com/vsinha/partcounter/pkg/domain/entities"
)

// Config holds configuration for output generation
type Config struct {
	Format      string
	OutputFile  string // empty writes to Stdout
	Verbose     bool
	HideZero    bool
	ComputeTime time.Duration
	Stdout      io.Writer
}

// Generate writes the totals in the configured format
func Generate(result *dto.CountResult, config Config) error {
	if config.Stdout == nil {
		config.Stdout = os.Stdout
	}

	lines := result.Items
	if config.HideZero {
		lines = withoutZeroLines(lines)
	}

	var buf bytes.Buffer
	var err error
	switch config.Format {
	case "text":
		err = writeText(&buf, lines, config)
	case "json":
		err = writeJSON(&buf, lines)
	case "csv":
		err = writeCSV(&buf, lines)
	default:
		return fmt.Errorf("unsupported output format: %s", config.Format)
	}
	if err != nil {
		return err
	}

	if config.OutputFile == "" {
		_, err = config.Stdout.Write(buf.Bytes())
		return err
	}

	if dir := filepath.Dir(config.OutputFile); dir != "." {
		if err := os.MkdirAll(dir, 0755); err != nil {
			return fmt.Errorf("failed to create output directory: %w", err)
		}
	}
	if err := os.WriteFile(config.OutputFile, buf.Bytes(), 0644); err != nil {
		return fmt.Errorf("failed to write %s output: %w", config.Format, err)
	}
	if config.Verbose {
		fmt.Fprintf(config.Stdout, "💾 Results saved to: %s\n", config.OutputFile)
	}
	return nil
}

// withoutZeroLines drops lines with a zero total; it only affects presentation
func withoutZeroLines(lines []entities.TotalLine) []entities.TotalLine {
	out := make([]entities.TotalLine, 0, len(lines))
	for _, line := range lines {
		if line.TotalQuantity != 0 {
			out = append(out, line)
		}
	}
	return out
}

func writeText(w io.Writer, lines []entities.TotalLine, config Config) error {
	fmt.Fprintf(w, "📊 Part Totals\n")
	fmt.Fprintf(w, "==============\n\n")
	fmt.Fprintf(w, "Lines: %d\n", len(lines))
	if config.Verbose {
		fmt.Fprintf(w, "Compute Time: %v\n", config.ComputeTime)
	}
	fmt.Fprintln(w)

	if len(lines) == 0 {
		fmt.Fprintf(w, "No parts required.\n")
		return nil
	}

	fmt.Fprintf(w, "%-8s %-30s %-8s %14s\n", "Part ID", "Name", "Unit", "Total")
	fmt.Fprintf(w, "%-8s %-30s %-8s %14s\n", "--------", "------------------------------", "--------", "--------------")
	for _, line := range lines {
		unit := ""
		if line.Unit != nil {
			unit = *line.Unit
		}
		fmt.Fprintf(w, "%-8d %-30s %-8s %14d\n", line.PartID, line.Name, unit, line.TotalQuantity)
	}
	return nil
}

func writeJSON(w io.Writer, lines []entities.TotalLine) error {
	jsonData, err := json.MarshalIndent(dto.CountResult{Items: lines}, "", "  ")
	if err != nil {
		return fmt.Errorf("failed to marshal JSON: %w", err)
	}
	_, err = fmt.Fprintln(w, string(jsonData))
	return err
}

func writeCSV(w io.Writer, lines []entities.TotalLine) error {
	writer := csv.NewWriter(w)
	if err := writer.Write([]string{"part_id", "name", "unit", "total_quantity"}); err != nil {
		return fmt.Errorf("failed to write CSV header: %w", err)
	}
	for _, line := range lines {
		unit := ""
		if line.Unit != nil {
			unit = *line.Unit
		}
		record := []string{
			strconv.FormatInt(int64(line.PartID), 10),
			line.Name,
			unit,
			strconv.FormatInt(int64(line.TotalQuantity), 10),
		}
		if err := writer.Write(record); err != nil {
			return fmt.Errorf("failed to write CSV row: %w", err)
		}
	}
	writer.Flush()
	return writer.Error()
}
