package entities

import (
	"fmt"
	"strings"
)

// PartID is the catalog-assigned identifier of a part
type PartID int64

// Quantity represents an integer quantity of discrete units
type Quantity int64

// Part represents a single catalogued item type
type Part struct {
	ID   PartID
	Name string
	Unit *string // nil when the part has no unit of measure
}

// NewPart creates a validated Part. A blank unit is treated as absent.
func NewPart(id PartID, name string, unit *string) (*Part, error) {
	name = strings.TrimSpace(name)
	if name == "" {
		return nil, NewError(InvalidInput, "part name cannot be empty")
	}
	if id < 0 {
		return nil, NewError(InvalidInput, fmt.Sprintf("part id cannot be negative, got %d", id))
	}

	return &Part{
		ID:   id,
		Name: name,
		Unit: NormalizeText(unit),
	}, nil
}

// UnitOrEmpty returns the unit of measure or an empty string
func (p Part) UnitOrEmpty() string {
	if p.Unit == nil {
		return ""
	}
	return *p.Unit
}

// NormalizeText trims an optional text field, mapping blank values to nil
func NormalizeText(s *string) *string {
	if s == nil {
		return nil
	}
	trimmed := strings.TrimSpace(*s)
	if trimmed == "" {
		return nil
	}
	return &trimmed
}

// Text returns a pointer to s, or nil when s is blank
func Text(s string) *string {
	return NormalizeText(&s)
}
