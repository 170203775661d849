// Package catalogtest holds shared fixtures and the behavioral contract every
// repositories.CatalogRepository implementation must satisfy.
package catalogtest

import (
	"context"
	"errors"
	"sync"
	"testing"

	"github.com/vsinha/partcounter/pkg/domain/entities"
	"github.com/vsinha/partcounter/pkg/domain/repositories"
	"github.com/vsinha/partcounter/pkg/domain/services"
)

// Factory returns a fresh, empty repository for one subtest
type Factory func(t *testing.T) repositories.CatalogRepository

// assign is the read-modify-write used by the catalog service, reproduced here so
// the contract does not depend on the application layer
func assign(ctx context.Context, repo repositories.CatalogRepository, complexID entities.ComplexID, partID entities.PartID, qty entities.Quantity) (*entities.Complex, error) {
	part, err := repo.GetPart(ctx, partID)
	if err != nil {
		return nil, err
	}
	known := services.NewPartSet([]entities.Part{*part})
	return repo.UpdateComposition(ctx, complexID, func(current entities.Complex) (entities.Complex, error) {
		return services.AssignPart(current, partID, qty, known)
	})
}

// RunRepositoryContract exercises a CatalogRepository implementation
func RunRepositoryContract(t *testing.T, newRepo Factory) {
	t.Run("parts get sequential ids", func(t *testing.T) {
		ctx := context.Background()
		repo := newRepo(t)

		bolt, err := repo.CreatePart(ctx, " Bolt ", entities.Text("pcs"))
		if err != nil {
			t.Fatalf("CreatePart failed: %v", err)
		}
		rope, err := repo.CreatePart(ctx, "Rope", nil)
		if err != nil {
			t.Fatalf("CreatePart failed: %v", err)
		}

		if bolt.ID != 1 || rope.ID != 2 {
			t.Errorf("Expected ids 1 and 2, got %d and %d", bolt.ID, rope.ID)
		}
		if bolt.Name != "Bolt" {
			t.Errorf("Expected trimmed name Bolt, got %q", bolt.Name)
		}

		got, err := repo.GetPart(ctx, rope.ID)
		if err != nil {
			t.Fatalf("GetPart failed: %v", err)
		}
		if got.Name != "Rope" || got.Unit != nil {
			t.Errorf("Unexpected part: %+v", got)
		}

		byName, err := repo.FindPartByName(ctx, "Bolt")
		if err != nil {
			t.Fatalf("FindPartByName failed: %v", err)
		}
		if byName.ID != bolt.ID || byName.UnitOrEmpty() != "pcs" {
			t.Errorf("Unexpected part by name: %+v", byName)
		}

		parts, err := repo.ListParts(ctx)
		if err != nil {
			t.Fatalf("ListParts failed: %v", err)
		}
		if len(parts) != 2 {
			t.Errorf("Expected 2 parts, got %d", len(parts))
		}
	})

	t.Run("missing records are NotFound", func(t *testing.T) {
		ctx := context.Background()
		repo := newRepo(t)

		if _, err := repo.GetPart(ctx, 42); !errors.Is(err, entities.ErrNotFound) {
			t.Errorf("Expected NotFound for part, got %v", err)
		}
		if _, err := repo.FindPartByName(ctx, "ghost"); !errors.Is(err, entities.ErrNotFound) {
			t.Errorf("Expected NotFound for part name, got %v", err)
		}
		if _, err := repo.GetComplex(ctx, 42); !errors.Is(err, entities.ErrNotFound) {
			t.Errorf("Expected NotFound for complex, got %v", err)
		}
		_, err := repo.UpdateComposition(ctx, 42, func(c entities.Complex) (entities.Complex, error) { return c, nil })
		if !errors.Is(err, entities.ErrNotFound) {
			t.Errorf("Expected NotFound on update, got %v", err)
		}
	})

	t.Run("invalid names are rejected", func(t *testing.T) {
		ctx := context.Background()
		repo := newRepo(t)

		if _, err := repo.CreatePart(ctx, "  ", nil); !errors.Is(err, entities.ErrInvalidInput) {
			t.Errorf("Expected InvalidInput for part, got %v", err)
		}
		if _, err := repo.CreateComplex(ctx, "", nil); !errors.Is(err, entities.ErrInvalidInput) {
			t.Errorf("Expected InvalidInput for complex, got %v", err)
		}
	})

	t.Run("composition keeps order and overwrites", func(t *testing.T) {
		ctx := context.Background()
		repo := newRepo(t)
		ids := SeedBoltNut(t, repo)

		// re-assign Bolt in A: must overwrite in place
		if _, err := assign(ctx, repo, ids.ComplexA, ids.Bolt, 2); err != nil {
			t.Fatalf("assign failed: %v", err)
		}
		if _, err := assign(ctx, repo, ids.ComplexA, ids.Panel, 1); err != nil {
			t.Fatalf("assign failed: %v", err)
		}

		a, err := repo.GetComplex(ctx, ids.ComplexA)
		if err != nil {
			t.Fatalf("GetComplex failed: %v", err)
		}
		expected := []entities.CompositionEntry{
			{PartID: ids.Bolt, Quantity: 2},
			{PartID: ids.Nut, Quantity: 4},
			{PartID: ids.Panel, Quantity: 1},
		}
		assertComposition(t, a.Composition, expected)
	})

	t.Run("failed update leaves composition unchanged", func(t *testing.T) {
		ctx := context.Background()
		repo := newRepo(t)
		ids := SeedBoltNut(t, repo)

		boom := errors.New("boom")
		_, err := repo.UpdateComposition(ctx, ids.ComplexA, func(c entities.Complex) (entities.Complex, error) {
			c.Composition = nil
			return c, boom
		})
		if !errors.Is(err, boom) {
			t.Fatalf("Expected update error to propagate, got %v", err)
		}

		a, _ := repo.GetComplex(ctx, ids.ComplexA)
		if len(a.Composition) != 2 {
			t.Errorf("Expected composition unchanged, got %+v", a.Composition)
		}
	})

	t.Run("concurrent assigns keep one entry per part", func(t *testing.T) {
		ctx := context.Background()
		repo := newRepo(t)
		ids := SeedBoltNut(t, repo)

		var wg sync.WaitGroup
		errs := make(chan error, 40)
		for i := 0; i < 40; i++ {
			wg.Add(1)
			go func(i int) {
				defer wg.Done()
				partID := ids.Panel
				if i%2 == 0 {
					partID = ids.Rope
				}
				if _, err := assign(ctx, repo, ids.ComplexB, partID, entities.Quantity(i)); err != nil {
					errs <- err
				}
			}(i)
		}
		wg.Wait()
		close(errs)
		for err := range errs {
			t.Fatalf("concurrent assign failed: %v", err)
		}

		b, err := repo.GetComplex(ctx, ids.ComplexB)
		if err != nil {
			t.Fatalf("GetComplex failed: %v", err)
		}
		seen := make(map[entities.PartID]int)
		for _, entry := range b.Composition {
			seen[entry.PartID]++
		}
		for partID, n := range seen {
			if n != 1 {
				t.Errorf("part %d appears %d times in composition", partID, n)
			}
		}
		if len(b.Composition) != 3 {
			t.Errorf("Expected 3 entries (Nut, Panel, Rope), got %+v", b.Composition)
		}
	})

	t.Run("snapshot is isolated from later writes", func(t *testing.T) {
		ctx := context.Background()
		repo := newRepo(t)
		ids := SeedBoltNut(t, repo)

		snap, err := repo.Snapshot(ctx)
		if err != nil {
			t.Fatalf("Snapshot failed: %v", err)
		}
		if _, err := assign(ctx, repo, ids.ComplexA, ids.Bolt, 99); err != nil {
			t.Fatalf("assign failed: %v", err)
		}

		a, ok := snap.LookupComplex(ids.ComplexA)
		if !ok {
			t.Fatal("Expected complex A in snapshot")
		}
		if a.Composition[0].Quantity != 4 {
			t.Errorf("Snapshot observed later write: %+v", a.Composition)
		}
		if len(snap.Parts()) != 4 || len(snap.Complexes()) != 2 {
			t.Errorf("Unexpected snapshot size: %d parts, %d complexes", len(snap.Parts()), len(snap.Complexes()))
		}
	})

	t.Run("canceled context is rejected", func(t *testing.T) {
		repo := newRepo(t)
		ctx, cancel := context.WithCancel(context.Background())
		cancel()

		if _, err := repo.ListParts(ctx); !errors.Is(err, context.Canceled) {
			t.Errorf("Expected context.Canceled, got %v", err)
		}
	})
}

func assertComposition(t *testing.T, got, want []entities.CompositionEntry) {
	t.Helper()
	if len(got) != len(want) {
		t.Fatalf("Expected %d entries, got %d: %+v", len(want), len(got), got)
	}
	for i := range want {
		if got[i] != want[i] {
			t.Errorf("entry %d: expected %+v, got %+v", i, want[i], got[i])
		}
	}
}

// BoltNutIDs are the ids assigned by SeedBoltNut
type BoltNutIDs struct {
	Bolt, Nut, Panel, Rope entities.PartID
	ComplexA, ComplexB     entities.ComplexID
}

// SeedBoltNut creates Bolt, Nut, Panel, Rope and two complexes:
// A = [(Bolt,4),(Nut,4)] and B = [(Nut,2)]
func SeedBoltNut(t *testing.T, repo repositories.CatalogRepository) BoltNutIDs {
	t.Helper()
	ctx := context.Background()

	mustPart := func(name string, unit *string) entities.PartID {
		p, err := repo.CreatePart(ctx, name, unit)
		if err != nil {
			t.Fatalf("CreatePart(%s) failed: %v", name, err)
		}
		return p.ID
	}
	mustComplex := func(name string) entities.ComplexID {
		c, err := repo.CreateComplex(ctx, name, nil)
		if err != nil {
			t.Fatalf("CreateComplex(%s) failed: %v", name, err)
		}
		return c.ID
	}

	ids := BoltNutIDs{
		Bolt:  mustPart("Bolt", entities.Text("pcs")),
		Nut:   mustPart("Nut", entities.Text("pcs")),
		Panel: mustPart("Panel", entities.Text("pcs")),
		Rope:  mustPart("Rope", entities.Text("m")),
	}
	ids.ComplexA = mustComplex("A")
	ids.ComplexB = mustComplex("B")

	steps := []struct {
		complexID entities.ComplexID
		partID    entities.PartID
		qty       entities.Quantity
	}{
		{ids.ComplexA, ids.Bolt, 4},
		{ids.ComplexA, ids.Nut, 4},
		{ids.ComplexB, ids.Nut, 2},
	}
	for _, step := range steps {
		if _, err := assign(ctx, repo, step.complexID, step.partID, step.qty); err != nil {
			t.Fatalf("assign(%d, %d, %d) failed: %v", step.complexID, step.partID, step.qty, err)
		}
	}

	return ids
}
