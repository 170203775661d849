// Package catalog implements the part/complex catalog use cases on top of a repository.
package catalog

import (
	"context"
	"errors"
	"fmt"
	"sort"
	"strings"
	"sync"
	"time"

	"github.com/vsinha/partcounter/pkg/application/dto"
	"github.com/vsinha/partcounter/pkg/application/services/aggregation"
	"github.com/vsinha/partcounter/pkg/domain/entities"
	"github.com/vsinha/partcounter/pkg/domain/repositories"
	"github.com/vsinha/partcounter/pkg/domain/services"
	"github.com/vsinha/partcounter/pkg/infrastructure/events"
	"github.com/vsinha/partcounter/pkg/infrastructure/logger"
	"github.com/vsinha/partcounter/pkg/infrastructure/metrics"
)

// Service coordinates catalog mutations, composition edits and aggregation runs
type Service struct {
	repo       repositories.CatalogRepository
	eventStore events.EventStore
	log        *logger.Logger

	// createPartMu makes the name-uniqueness check and insert atomic
	createPartMu sync.Mutex
}

// NewService creates a catalog service. eventStore may be nil.
func NewService(repo repositories.CatalogRepository, eventStore events.EventStore, baseLog *logger.Logger) *Service {
	if baseLog == nil {
		baseLog = logger.Nop()
	}
	return &Service{
		repo:       repo,
		eventStore: eventStore,
		log:        baseLog.With("service", "CatalogService"),
	}
}

// ListParts returns all parts ordered by name
func (s *Service) ListParts(ctx context.Context) ([]dto.PartView, error) {
	parts, err := s.repo.ListParts(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to list parts: %w", err)
	}

	sort.SliceStable(parts, func(i, j int) bool {
		if parts[i].Name != parts[j].Name {
			return parts[i].Name < parts[j].Name
		}
		return parts[i].ID < parts[j].ID
	})

	views := make([]dto.PartView, len(parts))
	for i, p := range parts {
		views[i] = dto.NewPartView(p)
	}
	return views, nil
}

// CreatePart adds a part. Part names are unique.
func (s *Service) CreatePart(ctx context.Context, name string, unit *string) (*dto.PartView, error) {
	name = strings.TrimSpace(name)
	if name == "" {
		return nil, entities.NewError(entities.InvalidInput, "part name cannot be empty")
	}

	s.createPartMu.Lock()
	defer s.createPartMu.Unlock()

	existing, err := s.repo.FindPartByName(ctx, name)
	if err == nil && existing != nil {
		return nil, entities.NewError(entities.Conflict, fmt.Sprintf("part %q already exists", name))
	}
	if err != nil && !errors.Is(err, entities.ErrNotFound) {
		return nil, fmt.Errorf("failed to check part name: %w", err)
	}

	part, err := s.repo.CreatePart(ctx, name, unit)
	if err != nil {
		return nil, err
	}

	s.publish(events.PartStream(part.ID), events.PartCreatedEvent, events.PartCreated{
		PartID: part.ID,
		Name:   part.Name,
		Unit:   part.Unit,
	})
	metrics.RecordMutation("part_created")
	s.log.Info("part created", "part_id", part.ID, "name", part.Name)

	view := dto.NewPartView(*part)
	return &view, nil
}

// ListComplexes returns all complexes with resolved compositions, ordered by name
func (s *Service) ListComplexes(ctx context.Context) ([]dto.ComplexDetail, error) {
	snap, err := s.repo.Snapshot(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to read catalog: %w", err)
	}

	complexes := snap.Complexes()
	sort.SliceStable(complexes, func(i, j int) bool {
		if complexes[i].Name != complexes[j].Name {
			return complexes[i].Name < complexes[j].Name
		}
		return complexes[i].ID < complexes[j].ID
	})

	details := make([]dto.ComplexDetail, len(complexes))
	for i, c := range complexes {
		details[i] = dto.NewComplexDetail(c, snap.LookupPart)
	}
	return details, nil
}

// GetComplex returns one complex with its resolved composition
func (s *Service) GetComplex(ctx context.Context, id entities.ComplexID) (*dto.ComplexDetail, error) {
	snap, err := s.repo.Snapshot(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to read catalog: %w", err)
	}

	c, ok := snap.LookupComplex(id)
	if !ok {
		return nil, entities.NewError(entities.NotFound, fmt.Sprintf("complex %d not found", id))
	}
	detail := dto.NewComplexDetail(c, snap.LookupPart)
	return &detail, nil
}

// CreateComplex adds a complex with an empty composition
func (s *Service) CreateComplex(ctx context.Context, name string, description *string) (*dto.ComplexDetail, error) {
	c, err := s.repo.CreateComplex(ctx, name, description)
	if err != nil {
		return nil, err
	}

	s.publish(events.ComplexStream(c.ID), events.ComplexCreatedEvent, events.ComplexCreated{
		ComplexID:   c.ID,
		Name:        c.Name,
		Description: c.Description,
	})
	metrics.RecordMutation("complex_created")
	s.log.Info("complex created", "complex_id", c.ID, "name", c.Name)

	detail := dto.NewComplexDetail(*c, entities.Snapshot{}.LookupPart)
	return &detail, nil
}

// AssignPart sets the quantity of a part in a complex, overwriting any previous quantity
func (s *Service) AssignPart(
	ctx context.Context,
	complexID entities.ComplexID,
	partID entities.PartID,
	quantity entities.Quantity,
) (*dto.ComplexDetail, error) {
	if _, err := s.repo.GetComplex(ctx, complexID); err != nil {
		if errors.Is(err, entities.ErrNotFound) {
			return nil, entities.NewError(entities.NotFound, fmt.Sprintf("complex %d not found", complexID))
		}
		return nil, fmt.Errorf("failed to load complex %d: %w", complexID, err)
	}

	known := services.PartSet{}
	part, err := s.repo.GetPart(ctx, partID)
	switch {
	case err == nil:
		known[part.ID] = *part
	case !errors.Is(err, entities.ErrNotFound):
		return nil, fmt.Errorf("failed to load part %d: %w", partID, err)
	}

	var previous *entities.Quantity
	updated, err := s.repo.UpdateComposition(ctx, complexID, func(current entities.Complex) (entities.Complex, error) {
		if idx := current.EntryIndex(partID); idx >= 0 {
			prev := current.Composition[idx].Quantity
			previous = &prev
		}
		return services.AssignPart(current, partID, quantity, known)
	})
	if err != nil {
		return nil, err
	}

	s.publish(events.ComplexStream(complexID), events.ComplexPartAssignedEvent, events.ComplexPartAssigned{
		ComplexID: complexID,
		PartID:    partID,
		Quantity:  quantity,
		Previous:  previous,
	})
	metrics.RecordMutation("part_assigned")
	s.log.Info("part assigned", "complex_id", complexID, "part_id", partID, "quantity", quantity)

	return s.GetComplex(ctx, updated.ID)
}

// Snapshot returns a consistent view of the catalog
func (s *Service) Snapshot(ctx context.Context) (entities.Snapshot, error) {
	snap, err := s.repo.Snapshot(ctx)
	if err != nil {
		return entities.Snapshot{}, fmt.Errorf("failed to read catalog: %w", err)
	}
	return snap, nil
}

// Count aggregates the part totals needed for selections against the current catalog
func (s *Service) Count(ctx context.Context, selections []entities.Selection) (*dto.CountResult, error) {
	start := time.Now()

	snap, err := s.Snapshot(ctx)
	if err != nil {
		metrics.RecordCount("internal", len(selections), time.Since(start))
		return nil, err
	}

	lines, err := aggregation.Compute(selections, snap, snap)
	if err != nil {
		metrics.RecordCount(entities.KindOf(err).Code(), len(selections), time.Since(start))
		s.log.Warn("count rejected", "selections", len(selections), "error", err)
		return nil, err
	}

	metrics.RecordCount("ok", len(selections), time.Since(start))
	s.log.Debug("count computed", "selections", len(selections), "lines", len(lines))
	return &dto.CountResult{Items: lines}, nil
}

// IsEmpty reports whether the catalog has neither parts nor complexes
func (s *Service) IsEmpty(ctx context.Context) (bool, error) {
	snap, err := s.Snapshot(ctx)
	if err != nil {
		return false, err
	}
	return len(snap.Parts()) == 0 && len(snap.Complexes()) == 0, nil
}

func (s *Service) publish(streamID, eventType string, data interface{}) {
	if s.eventStore == nil {
		return
	}
	if err := s.eventStore.AppendEvent(streamID, events.NewEvent(eventType, streamID, data)); err != nil {
		s.log.Warn("failed to publish catalog event", "event_type", eventType, "stream", streamID, "error", err)
	}
}
