// Package seed populates an empty catalog from a YAML description.
package seed

import (
	"context"
	"embed"
	"fmt"
	"os"
	"strings"

	"gopkg.in/yaml.v3"

	"github.com/vsinha/partcounter/pkg/application/dto"
	"github.com/vsinha/partcounter/pkg/domain/entities"
	"github.com/vsinha/partcounter/pkg/infrastructure/logger"
)

//go:embed default.yaml
var defaultFS embed.FS

// File is the YAML seed document
type File struct {
	Parts     []PartSpec    `yaml:"parts"`
	Complexes []ComplexSpec `yaml:"complexes"`
}

type PartSpec struct {
	Name string `yaml:"name"`
	Unit string `yaml:"unit"`
}

type ComplexSpec struct {
	Name        string      `yaml:"name"`
	Description string      `yaml:"description"`
	Parts       []EntrySpec `yaml:"parts"`
}

// EntrySpec references a part by name
type EntrySpec struct {
	Part     string `yaml:"part"`
	Quantity int64  `yaml:"quantity"`
}

// Catalog is the subset of the catalog service seeding needs
type Catalog interface {
	IsEmpty(ctx context.Context) (bool, error)
	CreatePart(ctx context.Context, name string, unit *string) (*dto.PartView, error)
	CreateComplex(ctx context.Context, name string, description *string) (*dto.ComplexDetail, error)
	AssignPart(
		ctx context.Context,
		complexID entities.ComplexID,
		partID entities.PartID,
		quantity entities.Quantity,
	) (*dto.ComplexDetail, error)
}

// Default returns the built-in seed
func Default() (*File, error) {
	data, err := defaultFS.ReadFile("default.yaml")
	if err != nil {
		return nil, fmt.Errorf("failed to read default seed: %w", err)
	}
	return Parse(data)
}

// Load reads a seed file, falling back to the built-in seed when path is empty
func Load(path string) (*File, error) {
	if strings.TrimSpace(path) == "" {
		return Default()
	}
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read seed file %s: %w", path, err)
	}
	f, err := Parse(data)
	if err != nil {
		return nil, fmt.Errorf("seed file %s: %w", path, err)
	}
	return f, nil
}

// Parse decodes and validates a seed document
func Parse(data []byte) (*File, error) {
	var f File
	if err := yaml.Unmarshal(data, &f); err != nil {
		return nil, fmt.Errorf("failed to parse seed: %w", err)
	}
	if err := f.validate(); err != nil {
		return nil, err
	}
	return &f, nil
}

func (f *File) validate() error {
	names := make(map[string]bool, len(f.Parts))
	for i, p := range f.Parts {
		name := strings.TrimSpace(p.Name)
		if name == "" {
			return entities.NewError(entities.InvalidInput, fmt.Sprintf("seed part %d has no name", i+1))
		}
		if names[name] {
			return entities.NewError(entities.Conflict, fmt.Sprintf("seed part %q is listed twice", name))
		}
		names[name] = true
	}

	for i, c := range f.Complexes {
		if strings.TrimSpace(c.Name) == "" {
			return entities.NewError(entities.InvalidInput, fmt.Sprintf("seed complex %d has no name", i+1))
		}
		for _, e := range c.Parts {
			if !names[strings.TrimSpace(e.Part)] {
				return entities.NewError(
					entities.InvalidReference,
					fmt.Sprintf("seed complex %q references unknown part %q", c.Name, e.Part),
				)
			}
			if e.Quantity < 0 {
				return entities.NewError(
					entities.InvalidQuantity,
					fmt.Sprintf("seed complex %q has negative quantity %d for %q", c.Name, e.Quantity, e.Part),
				)
			}
		}
	}
	return nil
}

// Apply loads f into catalog when the catalog is empty.
// It reports whether anything was written.
//
// Writes go through the catalog one at a time. If one fails, the records
// created before it stay, the catalog is no longer empty and later calls
// skip seeding; clear the store before retrying.
func Apply(ctx context.Context, catalog Catalog, f *File, log *logger.Logger) (bool, error) {
	if log == nil {
		log = logger.Nop()
	}

	empty, err := catalog.IsEmpty(ctx)
	if err != nil {
		return false, fmt.Errorf("failed to inspect catalog: %w", err)
	}
	if !empty {
		log.Info("catalog already populated, skipping seed")
		return false, nil
	}

	partIDs := make(map[string]entities.PartID, len(f.Parts))
	for _, p := range f.Parts {
		created, err := catalog.CreatePart(ctx, p.Name, entities.Text(p.Unit))
		if err != nil {
			return false, fmt.Errorf("failed to seed part %q: %w", p.Name, err)
		}
		partIDs[created.Name] = created.ID
	}

	for _, c := range f.Complexes {
		created, err := catalog.CreateComplex(ctx, c.Name, entities.Text(c.Description))
		if err != nil {
			return false, fmt.Errorf("failed to seed complex %q: %w", c.Name, err)
		}
		for _, e := range c.Parts {
			partID := partIDs[strings.TrimSpace(e.Part)]
			if _, err := catalog.AssignPart(ctx, created.ID, partID, entities.Quantity(e.Quantity)); err != nil {
				return false, fmt.Errorf("failed to seed %q into complex %q: %w", e.Part, c.Name, err)
			}
		}
	}

	log.Info("catalog seeded", "parts", len(f.Parts), "complexes", len(f.Complexes))
	return true, nil
}
