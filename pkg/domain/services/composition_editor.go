package services

import (
	"fmt"

	"github.com/vsinha/partcounter/pkg/domain/entities"
)

// PartLookup resolves parts by id
type PartLookup interface {
	LookupPart(id entities.PartID) (entities.Part, bool)
}

// AssignPart sets the quantity of partID in the complex's composition.
// An existing entry is overwritten in place; a new part is appended at the end.
// The input complex is not modified.
func AssignPart(
	complex entities.Complex,
	partID entities.PartID,
	quantity entities.Quantity,
	parts PartLookup,
) (entities.Complex, error) {
	if _, exists := parts.LookupPart(partID); !exists {
		return entities.Complex{}, entities.NewError(entities.UnknownPart, fmt.Sprintf("part %d not found", partID))
	}
	if quantity < 0 {
		return entities.Complex{}, entities.NewError(
			entities.InvalidQuantity,
			fmt.Sprintf("quantity cannot be negative, got %d", quantity),
		)
	}

	updated := complex.Clone()
	if idx := updated.EntryIndex(partID); idx >= 0 {
		updated.Composition[idx].Quantity = quantity
		return updated, nil
	}

	updated.Composition = append(updated.Composition, entities.CompositionEntry{
		PartID:   partID,
		Quantity: quantity,
	})
	return updated, nil
}

// PartSet is a PartLookup over a fixed set of parts
type PartSet map[entities.PartID]entities.Part

// NewPartSet indexes parts by id
func NewPartSet(parts []entities.Part) PartSet {
	set := make(PartSet, len(parts))
	for _, p := range parts {
		set[p.ID] = p
	}
	return set
}

// LookupPart implements PartLookup
func (s PartSet) LookupPart(id entities.PartID) (entities.Part, bool) {
	p, ok := s[id]
	return p, ok
}
