package sqlite

import (
	"context"
	"errors"
	"path/filepath"
	"testing"
	"time"

	"gorm.io/gorm"

	"github.com/vsinha/partcounter/pkg/domain/entities"
	"github.com/vsinha/partcounter/pkg/domain/repositories"
	"github.com/vsinha/partcounter/pkg/infrastructure/catalogtest"
)

func openTestRepo(t *testing.T) *CatalogRepository {
	t.Helper()
	repo, err := Open(filepath.Join(t.TempDir(), "catalog.db"), nil)
	if err != nil {
		t.Fatalf("Open failed: %v", err)
	}
	t.Cleanup(func() { _ = repo.Close() })
	return repo
}

func TestCatalogRepository_Contract(t *testing.T) {
	catalogtest.RunRepositoryContract(t, func(t *testing.T) repositories.CatalogRepository {
		return openTestRepo(t)
	})
}

func TestCatalogRepository_DuplicatePartNameIsConflict(t *testing.T) {
	ctx := context.Background()
	repo := openTestRepo(t)

	if _, err := repo.CreatePart(ctx, "Bolt", nil); err != nil {
		t.Fatalf("CreatePart failed: %v", err)
	}
	_, err := repo.CreatePart(ctx, "Bolt", nil)
	if !errors.Is(err, entities.ErrConflict) {
		t.Fatalf("Expected Conflict, got %v", err)
	}
}

func TestCatalogRepository_PersistsAcrossReopen(t *testing.T) {
	ctx := context.Background()
	path := filepath.Join(t.TempDir(), "catalog.db")

	repo, err := Open(path, nil)
	if err != nil {
		t.Fatalf("Open failed: %v", err)
	}
	ids := catalogtest.SeedBoltNut(t, repo)
	if err := repo.Close(); err != nil {
		t.Fatalf("Close failed: %v", err)
	}

	reopened, err := Open(path, nil)
	if err != nil {
		t.Fatalf("reopen failed: %v", err)
	}
	defer reopened.Close()

	a, err := reopened.GetComplex(ctx, ids.ComplexA)
	if err != nil {
		t.Fatalf("GetComplex failed: %v", err)
	}
	if len(a.Composition) != 2 || a.Composition[0].PartID != ids.Bolt || a.Composition[1].PartID != ids.Nut {
		t.Errorf("Composition not restored in order: %+v", a.Composition)
	}

	rope, err := reopened.GetPart(ctx, ids.Rope)
	if err != nil {
		t.Fatalf("GetPart failed: %v", err)
	}
	if rope.UnitOrEmpty() != "m" {
		t.Errorf("Expected unit m, got %q", rope.UnitOrEmpty())
	}
}

func TestOpen_InMemory(t *testing.T) {
	repo, err := Open(":memory:", nil)
	if err != nil {
		t.Fatalf("Open failed: %v", err)
	}
	defer repo.Close()

	if _, err := repo.CreatePart(context.Background(), "Bolt", nil); err != nil {
		t.Fatalf("CreatePart failed: %v", err)
	}
	parts, err := repo.ListParts(context.Background())
	if err != nil {
		t.Fatalf("ListParts failed: %v", err)
	}
	if len(parts) != 1 {
		t.Errorf("Expected 1 part, got %d", len(parts))
	}
}

func TestOpen_RequiresPath(t *testing.T) {
	if _, err := Open("  ", nil); err == nil {
		t.Fatal("Expected error for empty path")
	}
}

func TestCatalogRepository_UpdateCompositionHonorsCanceledContextWhileLocked(t *testing.T) {
	repo := openTestRepo(t)
	ids := catalogtest.SeedBoltNut(t, repo)

	unlock := repo.lockComplex(ids.ComplexA)
	defer unlock()

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	called := false
	done := make(chan error, 1)
	go func() {
		_, err := repo.UpdateComposition(ctx, ids.ComplexA, func(c entities.Complex) (entities.Complex, error) {
			called = true
			return c, nil
		})
		done <- err
	}()

	select {
	case err := <-done:
		if !errors.Is(err, context.Canceled) {
			t.Errorf("Expected context.Canceled, got %v", err)
		}
		if called {
			t.Error("Update function ran for a canceled request")
		}
	case <-time.After(2 * time.Second):
		t.Fatal("canceled update waited on the complex lock")
	}
}

func TestCatalogRepository_DanglingPartIsInvalidReference(t *testing.T) {
	ctx := context.Background()
	repo := openTestRepo(t)
	ids := catalogtest.SeedBoltNut(t, repo)

	_, err := repo.UpdateComposition(ctx, ids.ComplexB, func(c entities.Complex) (entities.Complex, error) {
		c.Composition = append(c.Composition, entities.CompositionEntry{PartID: 999, Quantity: 1})
		return c, nil
	})
	if !errors.Is(err, entities.ErrInvalidReference) {
		t.Fatalf("Expected InvalidReference, got %v", err)
	}

	b, err := repo.GetComplex(ctx, ids.ComplexB)
	if err != nil {
		t.Fatalf("GetComplex failed: %v", err)
	}
	if len(b.Composition) != 1 || b.Composition[0].PartID != ids.Nut {
		t.Errorf("Expected composition rolled back, got %+v", b.Composition)
	}
}

func TestCatalogRepository_PartInUseCannotBeDeleted(t *testing.T) {
	repo := openTestRepo(t)
	ids := catalogtest.SeedBoltNut(t, repo)

	err := repo.db.Delete(&partRow{}, int64(ids.Bolt)).Error
	if !errors.Is(err, gorm.ErrForeignKeyViolated) {
		t.Fatalf("Expected foreign key violation, got %v", err)
	}
	if err := repo.db.Delete(&partRow{}, int64(ids.Rope)).Error; err != nil {
		t.Errorf("Unused part should be deletable, got %v", err)
	}
}
