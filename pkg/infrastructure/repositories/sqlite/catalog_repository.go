// Package sqlite provides a SQLite-backed catalog store built on gorm.
package sqlite

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"sync"

	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
	gormLogger "gorm.io/gorm/logger"

	"github.com/vsinha/partcounter/pkg/domain/entities"
	"github.com/vsinha/partcounter/pkg/domain/repositories"
	"github.com/vsinha/partcounter/pkg/infrastructure/logger"
)

// CatalogRepository persists parts, complexes and compositions in SQLite
type CatalogRepository struct {
	db  *gorm.DB
	log *logger.Logger

	// complexLocks serializes UpdateComposition per complex id
	complexLocks sync.Map
}

// Verify interface compliance
var _ repositories.CatalogRepository = (*CatalogRepository)(nil)

// Open opens (or creates) the database at path and migrates the schema.
// Use ":memory:" for a throwaway database.
func Open(path string, baseLog *logger.Logger) (*CatalogRepository, error) {
	path = strings.TrimSpace(path)
	if path == "" {
		return nil, fmt.Errorf("storage path is required")
	}
	if baseLog == nil {
		baseLog = logger.Nop()
	}

	dsn := path + "?_foreign_keys=on&_busy_timeout=5000"
	if path == ":memory:" {
		dsn = "file::memory:?_foreign_keys=on"
	}

	db, err := gorm.Open(sqlite.Open(dsn), &gorm.Config{
		Logger:         gormLogger.Default.LogMode(gormLogger.Silent),
		TranslateError: true,
	})
	if err != nil {
		return nil, fmt.Errorf("open sqlite db: %w", err)
	}

	sqlDB, err := db.DB()
	if err != nil {
		return nil, fmt.Errorf("get sqlite handle: %w", err)
	}
	// one connection: keeps :memory: databases alive and serializes writers
	sqlDB.SetMaxOpenConns(1)

	if err := db.AutoMigrate(&partRow{}, &complexRow{}, &complexPartRow{}); err != nil {
		_ = sqlDB.Close()
		return nil, fmt.Errorf("run migrations: %w", err)
	}

	return &CatalogRepository{
		db:  db,
		log: baseLog.With("repo", "SQLiteCatalogRepository"),
	}, nil
}

// Close closes the underlying database handle
func (r *CatalogRepository) Close() error {
	sqlDB, err := r.db.DB()
	if err != nil {
		return err
	}
	return sqlDB.Close()
}

// ListParts returns all parts ordered by id
func (r *CatalogRepository) ListParts(ctx context.Context) ([]entities.Part, error) {
	var rows []partRow
	if err := r.db.WithContext(ctx).Order("id").Find(&rows).Error; err != nil {
		return nil, fmt.Errorf("list parts: %w", err)
	}
	parts := make([]entities.Part, len(rows))
	for i, row := range rows {
		parts[i] = row.toEntity()
	}
	return parts, nil
}

// GetPart returns the part with the given id
func (r *CatalogRepository) GetPart(ctx context.Context, id entities.PartID) (*entities.Part, error) {
	var row partRow
	err := r.db.WithContext(ctx).First(&row, int64(id)).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, entities.NewError(entities.NotFound, fmt.Sprintf("part not found: %d", id))
	}
	if err != nil {
		return nil, fmt.Errorf("get part %d: %w", id, err)
	}
	part := row.toEntity()
	return &part, nil
}

// FindPartByName returns the part with exactly this (trimmed) name
func (r *CatalogRepository) FindPartByName(ctx context.Context, name string) (*entities.Part, error) {
	name = strings.TrimSpace(name)
	var row partRow
	err := r.db.WithContext(ctx).Where("name = ?", name).First(&row).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, entities.NewError(entities.NotFound, fmt.Sprintf("part not found: %q", name))
	}
	if err != nil {
		return nil, fmt.Errorf("find part %q: %w", name, err)
	}
	part := row.toEntity()
	return &part, nil
}

// CreatePart inserts a part; the database assigns its id
func (r *CatalogRepository) CreatePart(ctx context.Context, name string, unit *string) (*entities.Part, error) {
	valid, err := entities.NewPart(0, name, unit)
	if err != nil {
		return nil, err
	}

	row := partRow{Name: valid.Name, Unit: valid.Unit}
	if err := r.db.WithContext(ctx).Create(&row).Error; err != nil {
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			return nil, entities.NewError(entities.Conflict, fmt.Sprintf("part %q already exists", valid.Name))
		}
		return nil, fmt.Errorf("create part: %w", err)
	}

	part := row.toEntity()
	return &part, nil
}

// ListComplexes returns all complexes with their compositions, ordered by id
func (r *CatalogRepository) ListComplexes(ctx context.Context) ([]entities.Complex, error) {
	return r.loadComplexes(r.db.WithContext(ctx))
}

func (r *CatalogRepository) loadComplexes(tx *gorm.DB) ([]entities.Complex, error) {
	var rows []complexRow
	if err := tx.Order("id").Find(&rows).Error; err != nil {
		return nil, fmt.Errorf("list complexes: %w", err)
	}
	var entries []complexPartRow
	if err := tx.Order("complex_id").Order("position").Find(&entries).Error; err != nil {
		return nil, fmt.Errorf("list compositions: %w", err)
	}
	return assembleComplexes(rows, entries), nil
}

// GetComplex returns the complex with the given id
func (r *CatalogRepository) GetComplex(ctx context.Context, id entities.ComplexID) (*entities.Complex, error) {
	return r.getComplex(r.db.WithContext(ctx), id)
}

func (r *CatalogRepository) getComplex(tx *gorm.DB, id entities.ComplexID) (*entities.Complex, error) {
	var row complexRow
	err := tx.First(&row, int64(id)).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, entities.NewError(entities.NotFound, fmt.Sprintf("complex not found: %d", id))
	}
	if err != nil {
		return nil, fmt.Errorf("get complex %d: %w", id, err)
	}

	var entries []complexPartRow
	if err := tx.Where("complex_id = ?", row.ID).Order("position").Find(&entries).Error; err != nil {
		return nil, fmt.Errorf("get composition of complex %d: %w", id, err)
	}

	c := assembleComplexes([]complexRow{row}, entries)[0]
	return &c, nil
}

// CreateComplex inserts a complex with an empty composition
func (r *CatalogRepository) CreateComplex(ctx context.Context, name string, description *string) (*entities.Complex, error) {
	valid, err := entities.NewComplex(0, name, description)
	if err != nil {
		return nil, err
	}

	row := complexRow{Name: valid.Name, Description: valid.Description}
	if err := r.db.WithContext(ctx).Create(&row).Error; err != nil {
		return nil, fmt.Errorf("create complex: %w", err)
	}

	valid.ID = entities.ComplexID(row.ID)
	return valid, nil
}

func (r *CatalogRepository) lockComplex(id entities.ComplexID) func() {
	mu, _ := r.complexLocks.LoadOrStore(id, &sync.Mutex{})
	m := mu.(*sync.Mutex)
	m.Lock()
	return m.Unlock
}

// UpdateComposition rewrites the complex's composition inside one transaction
func (r *CatalogRepository) UpdateComposition(
	ctx context.Context,
	id entities.ComplexID,
	fn repositories.CompositionUpdate,
) (*entities.Complex, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	unlock := r.lockComplex(id)
	defer unlock()

	var updated entities.Complex
	err := r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		current, err := r.getComplex(tx, id)
		if err != nil {
			return err
		}

		updated, err = fn(*current)
		if err != nil {
			return err
		}
		updated.ID = id

		if err := tx.Where("complex_id = ?", int64(id)).Delete(&complexPartRow{}).Error; err != nil {
			return fmt.Errorf("clear composition of complex %d: %w", id, err)
		}
		if len(updated.Composition) == 0 {
			return nil
		}

		rows := make([]complexPartRow, len(updated.Composition))
		for i, entry := range updated.Composition {
			rows[i] = complexPartRow{
				ComplexID: int64(id),
				PartID:    int64(entry.PartID),
				Quantity:  int64(entry.Quantity),
				Position:  i,
			}
		}
		if err := tx.Omit(clause.Associations).Create(&rows).Error; err != nil {
			if errors.Is(err, gorm.ErrDuplicatedKey) {
				return entities.NewError(entities.Conflict, fmt.Sprintf("complex %d lists a part more than once", id))
			}
			if errors.Is(err, gorm.ErrForeignKeyViolated) {
				return entities.NewError(entities.InvalidReference, fmt.Sprintf("complex %d references a missing part", id))
			}
			return fmt.Errorf("write composition of complex %d: %w", id, err)
		}
		return nil
	})
	if err != nil {
		return nil, err
	}

	r.log.Debug("composition updated", "complex_id", id, "entries", len(updated.Composition))
	return &updated, nil
}

// Snapshot reads parts and complexes inside one transaction
func (r *CatalogRepository) Snapshot(ctx context.Context) (entities.Snapshot, error) {
	var snap entities.Snapshot
	err := r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		var rows []partRow
		if err := tx.Order("id").Find(&rows).Error; err != nil {
			return fmt.Errorf("list parts: %w", err)
		}
		parts := make([]entities.Part, len(rows))
		for i, row := range rows {
			parts[i] = row.toEntity()
		}

		complexes, err := r.loadComplexes(tx)
		if err != nil {
			return err
		}

		snap = entities.NewSnapshot(parts, complexes)
		return nil
	})
	if err != nil {
		return entities.Snapshot{}, err
	}
	return snap, nil
}
