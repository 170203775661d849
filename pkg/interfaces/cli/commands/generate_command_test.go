package commands

import (
	"bytes"
	"context"
	"encoding/json"
	"os"
	"path/filepath"
	"testing"

	"github.com/vsinha/partcounter/pkg/application/dto"
)

func TestGenerateCommand_ProducesCountableScenario(t *testing.T) {
	dir := filepath.Join(t.TempDir(), "scenario")

	gen := NewGenerateCommand(GenerateConfig{
		Parts:      40,
		Complexes:  6,
		MaxEntries: 5,
		Selections: 8,
		MaxCount:   4,
		OutputDir:  dir,
		Seed:       42,
		Stdout:     &bytes.Buffer{},
	})
	if err := gen.Execute(context.Background()); err != nil {
		t.Fatalf("Generate failed: %v", err)
	}

	for _, name := range []string{"parts.csv", "complexes.csv", "composition.csv", "selections.csv"} {
		if _, err := os.Stat(filepath.Join(dir, name)); err != nil {
			t.Fatalf("Expected %s: %v", name, err)
		}
	}

	var out bytes.Buffer
	if err := NewCountCommand(Config{ScenarioDir: dir, Format: "json", Stdout: &out}).Execute(context.Background()); err != nil {
		t.Fatalf("Count over generated scenario failed: %v", err)
	}

	var result dto.CountResult
	if err := json.Unmarshal(out.Bytes(), &result); err != nil {
		t.Fatalf("Invalid JSON: %v", err)
	}
	if len(result.Items) == 0 {
		t.Error("Expected at least one total line")
	}
}

func TestGenerateCommand_SeedIsReproducible(t *testing.T) {
	read := func(dir string) string {
		data, err := os.ReadFile(filepath.Join(dir, "composition.csv"))
		if err != nil {
			t.Fatalf("Failed to read composition: %v", err)
		}
		return string(data)
	}

	var dirs []string
	for i := 0; i < 2; i++ {
		dir := t.TempDir()
		cfg := GenerateConfig{Parts: 30, Complexes: 4, MaxEntries: 6, Selections: 3, MaxCount: 2, OutputDir: dir, Seed: 7}
		cfg.Stdout = &bytes.Buffer{}
		if err := NewGenerateCommand(cfg).Execute(context.Background()); err != nil {
			t.Fatalf("Generate failed: %v", err)
		}
		dirs = append(dirs, dir)
	}

	if read(dirs[0]) != read(dirs[1]) {
		t.Error("Expected identical composition for identical seeds")
	}
}

func TestGenerateCommand_Validation(t *testing.T) {
	cfg := GenerateConfig{Parts: 0, Complexes: 1, MaxEntries: 1, MaxCount: 1, OutputDir: t.TempDir(), Stdout: &bytes.Buffer{}}
	if err := NewGenerateCommand(cfg).Execute(context.Background()); err == nil {
		t.Error("Expected validation error for zero parts")
	}
}
