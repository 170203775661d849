package memory

import (
	"context"
	"fmt"
	"strings"
	"sync"

	"github.com/vsinha/partcounter/pkg/domain/entities"
	"github.com/vsinha/partcounter/pkg/domain/repositories"
)

// CatalogRepository provides in-memory part and complex storage
type CatalogRepository struct {
	mu            sync.RWMutex
	parts         []entities.Part
	partsMap      map[entities.PartID]int
	complexes     []entities.Complex
	complexesMap  map[entities.ComplexID]int
	nextPartID    entities.PartID
	nextComplexID entities.ComplexID
}

// NewCatalogRepository creates a new in-memory catalog repository
func NewCatalogRepository(expectedParts, expectedComplexes int) *CatalogRepository {
	return &CatalogRepository{
		parts:         make([]entities.Part, 0, expectedParts),
		partsMap:      make(map[entities.PartID]int, expectedParts),
		complexes:     make([]entities.Complex, 0, expectedComplexes),
		complexesMap:  make(map[entities.ComplexID]int, expectedComplexes),
		nextPartID:    1,
		nextComplexID: 1,
	}
}

// Verify interface compliance
var _ repositories.CatalogRepository = (*CatalogRepository)(nil)

// LoadParts loads parts with their existing ids, e.g. from a CSV scenario
func (r *CatalogRepository) LoadParts(parts []*entities.Part) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	for _, part := range parts {
		if _, exists := r.partsMap[part.ID]; exists {
			return entities.NewError(entities.Conflict, fmt.Sprintf("duplicate part id %d", part.ID))
		}
		r.addPart(*part)
	}
	return nil
}

// LoadComplexes loads complexes with their existing ids and compositions
func (r *CatalogRepository) LoadComplexes(complexes []*entities.Complex) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	for _, c := range complexes {
		if _, exists := r.complexesMap[c.ID]; exists {
			return entities.NewError(entities.Conflict, fmt.Sprintf("duplicate complex id %d", c.ID))
		}
		r.addComplex(c.Clone())
	}
	return nil
}

func (r *CatalogRepository) addPart(part entities.Part) {
	r.partsMap[part.ID] = len(r.parts)
	r.parts = append(r.parts, part)
	if part.ID >= r.nextPartID {
		r.nextPartID = part.ID + 1
	}
}

func (r *CatalogRepository) addComplex(c entities.Complex) {
	r.complexesMap[c.ID] = len(r.complexes)
	r.complexes = append(r.complexes, c)
	if c.ID >= r.nextComplexID {
		r.nextComplexID = c.ID + 1
	}
}

// ListParts returns all parts in insertion order
func (r *CatalogRepository) ListParts(ctx context.Context) ([]entities.Part, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	r.mu.RLock()
	defer r.mu.RUnlock()

	parts := make([]entities.Part, len(r.parts))
	copy(parts, r.parts)
	return parts, nil
}

// GetPart returns the part with the given id
func (r *CatalogRepository) GetPart(ctx context.Context, id entities.PartID) (*entities.Part, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	r.mu.RLock()
	defer r.mu.RUnlock()

	index, exists := r.partsMap[id]
	if !exists {
		return nil, entities.NewError(entities.NotFound, fmt.Sprintf("part not found: %d", id))
	}
	part := r.parts[index]
	return &part, nil
}

// FindPartByName returns the part with exactly this (trimmed) name
func (r *CatalogRepository) FindPartByName(ctx context.Context, name string) (*entities.Part, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	r.mu.RLock()
	defer r.mu.RUnlock()

	name = strings.TrimSpace(name)
	for _, part := range r.parts {
		if part.Name == name {
			found := part
			return &found, nil
		}
	}
	return nil, entities.NewError(entities.NotFound, fmt.Sprintf("part not found: %q", name))
}

// CreatePart stores a new part under the next free id
func (r *CatalogRepository) CreatePart(ctx context.Context, name string, unit *string) (*entities.Part, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	r.mu.Lock()
	defer r.mu.Unlock()

	part, err := entities.NewPart(r.nextPartID, name, unit)
	if err != nil {
		return nil, err
	}
	r.addPart(*part)
	return part, nil
}

// ListComplexes returns all complexes in insertion order
func (r *CatalogRepository) ListComplexes(ctx context.Context) ([]entities.Complex, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	r.mu.RLock()
	defer r.mu.RUnlock()

	complexes := make([]entities.Complex, len(r.complexes))
	for i, c := range r.complexes {
		complexes[i] = c.Clone()
	}
	return complexes, nil
}

// GetComplex returns the complex with the given id
func (r *CatalogRepository) GetComplex(ctx context.Context, id entities.ComplexID) (*entities.Complex, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	r.mu.RLock()
	defer r.mu.RUnlock()

	index, exists := r.complexesMap[id]
	if !exists {
		return nil, entities.NewError(entities.NotFound, fmt.Sprintf("complex not found: %d", id))
	}
	c := r.complexes[index].Clone()
	return &c, nil
}

// CreateComplex stores a new complex with an empty composition
func (r *CatalogRepository) CreateComplex(ctx context.Context, name string, description *string) (*entities.Complex, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	r.mu.Lock()
	defer r.mu.Unlock()

	c, err := entities.NewComplex(r.nextComplexID, name, description)
	if err != nil {
		return nil, err
	}
	r.addComplex(c.Clone())
	return c, nil
}

// UpdateComposition applies fn to the stored complex under the write lock
func (r *CatalogRepository) UpdateComposition(
	ctx context.Context,
	id entities.ComplexID,
	fn repositories.CompositionUpdate,
) (*entities.Complex, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	r.mu.Lock()
	defer r.mu.Unlock()

	index, exists := r.complexesMap[id]
	if !exists {
		return nil, entities.NewError(entities.NotFound, fmt.Sprintf("complex not found: %d", id))
	}

	updated, err := fn(r.complexes[index].Clone())
	if err != nil {
		return nil, err
	}
	updated.ID = id
	r.complexes[index] = updated.Clone()
	return &updated, nil
}

// Snapshot returns a consistent copy of the catalog
func (r *CatalogRepository) Snapshot(ctx context.Context) (entities.Snapshot, error) {
	if err := ctx.Err(); err != nil {
		return entities.Snapshot{}, err
	}
	r.mu.RLock()
	defer r.mu.RUnlock()

	return entities.NewSnapshot(r.parts, r.complexes), nil
}
