package events

import (
	"fmt"

	"github.com/vsinha/partcounter/pkg/domain/entities"
	"github.com/vsinha/partcounter/pkg/infrastructure/logger"
)

const (
	PartCreatedEvent         = "part.created"
	ComplexCreatedEvent      = "complex.created"
	ComplexPartAssignedEvent = "complex.part_assigned"
)

// CatalogEventTypes lists every event type the catalog publishes
var CatalogEventTypes = []string{PartCreatedEvent, ComplexCreatedEvent, ComplexPartAssignedEvent}

type PartCreated struct {
	PartID entities.PartID `json:"part_id"`
	Name   string          `json:"name"`
	Unit   *string         `json:"unit"`
}

type ComplexCreated struct {
	ComplexID   entities.ComplexID `json:"complex_id"`
	Name        string             `json:"name"`
	Description *string            `json:"description"`
}

type ComplexPartAssigned struct {
	ComplexID entities.ComplexID `json:"complex_id"`
	PartID    entities.PartID    `json:"part_id"`
	Quantity  entities.Quantity  `json:"quantity"`
	// Previous is nil when the part was newly added to the composition
	Previous *entities.Quantity `json:"previous_quantity"`
}

// PartStream returns the stream id for a part
func PartStream(id entities.PartID) string {
	return fmt.Sprintf("part-%d", id)
}

// ComplexStream returns the stream id for a complex
func ComplexStream(id entities.ComplexID) string {
	return fmt.Sprintf("complex-%d", id)
}

// LoggingHandler writes every catalog event to the log at debug level
type LoggingHandler struct {
	log *logger.Logger
}

func NewLoggingHandler(log *logger.Logger) *LoggingHandler {
	if log == nil {
		log = logger.Nop()
	}
	return &LoggingHandler{log: log}
}

func (h *LoggingHandler) Handle(event Event) error {
	h.log.Debug("catalog event",
		"event_id", event.ID(),
		"type", event.Type(),
		"stream", event.StreamID(),
		"version", event.Version(),
	)
	return nil
}

func (h *LoggingHandler) CanHandle(eventType string) bool {
	for _, t := range CatalogEventTypes {
		if t == eventType {
			return true
		}
	}
	return false
}
