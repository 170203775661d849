package repositories

import (
	"context"

	"github.com/vsinha/partcounter/pkg/domain/entities"
)

// CompositionUpdate transforms a complex inside an atomic read-modify-write.
// Returning an error aborts the update and leaves the stored complex unchanged.
type CompositionUpdate func(current entities.Complex) (entities.Complex, error)

// PartRepository provides access to part master data
type PartRepository interface {
	ListParts(ctx context.Context) ([]entities.Part, error)
	GetPart(ctx context.Context, id entities.PartID) (*entities.Part, error)
	FindPartByName(ctx context.Context, name string) (*entities.Part, error)
	// CreatePart assigns the next id and stores the part
	CreatePart(ctx context.Context, name string, unit *string) (*entities.Part, error)
}

// ComplexRepository provides access to complexes and their compositions
type ComplexRepository interface {
	ListComplexes(ctx context.Context) ([]entities.Complex, error)
	GetComplex(ctx context.Context, id entities.ComplexID) (*entities.Complex, error)
	CreateComplex(ctx context.Context, name string, description *string) (*entities.Complex, error)

	// UpdateComposition serializes concurrent updates of the same complex.
	// The stored composition is replaced by the one returned from fn, preserving its order.
	UpdateComposition(ctx context.Context, id entities.ComplexID, fn CompositionUpdate) (*entities.Complex, error)
}

// CatalogRepository is the full catalog store
type CatalogRepository interface {
	PartRepository
	ComplexRepository

	// Snapshot returns a consistent view of all parts and complexes
	Snapshot(ctx context.Context) (entities.Snapshot, error)
}
