package entities

import (
	"fmt"
	"strings"
)

// ComplexID is the catalog-assigned identifier of a complex
type ComplexID int64

// CompositionEntry is one (part, quantity) pair of a complex
type CompositionEntry struct {
	PartID   PartID
	Quantity Quantity
}

// NewCompositionEntry creates a validated CompositionEntry. Zero quantity is allowed.
func NewCompositionEntry(partID PartID, quantity Quantity) (*CompositionEntry, error) {
	if quantity < 0 {
		return nil, NewError(InvalidQuantity, fmt.Sprintf("quantity cannot be negative, got %d", quantity))
	}
	return &CompositionEntry{PartID: partID, Quantity: quantity}, nil
}

// Complex represents a named kit composed of a fixed quantity of each of several parts.
// Composition keeps insertion order and holds at most one entry per part.
type Complex struct {
	ID          ComplexID
	Name        string
	Description *string
	Composition []CompositionEntry
}

// NewComplex creates a validated Complex with an empty composition
func NewComplex(id ComplexID, name string, description *string) (*Complex, error) {
	name = strings.TrimSpace(name)
	if name == "" {
		return nil, NewError(InvalidInput, "complex name cannot be empty")
	}
	if id < 0 {
		return nil, NewError(InvalidInput, fmt.Sprintf("complex id cannot be negative, got %d", id))
	}

	return &Complex{
		ID:          id,
		Name:        name,
		Description: NormalizeText(description),
		Composition: []CompositionEntry{},
	}, nil
}

// EntryIndex returns the position of the entry for partID, or -1
func (c Complex) EntryIndex(partID PartID) int {
	for i, entry := range c.Composition {
		if entry.PartID == partID {
			return i
		}
	}
	return -1
}

// Clone returns a deep copy so callers never share the composition slice
func (c Complex) Clone() Complex {
	out := c
	if c.Description != nil {
		desc := *c.Description
		out.Description = &desc
	}
	out.Composition = make([]CompositionEntry, len(c.Composition))
	copy(out.Composition, c.Composition)
	return out
}
