package dto

import "github.com/vsinha/partcounter/pkg/domain/entities"

// PartView is the external representation of a part
type PartView struct {
	ID   entities.PartID `json:"id"`
	Name string          `json:"name"`
	Unit *string         `json:"unit"`
}

// ComplexPartLine is one composition entry joined with its part
type ComplexPartLine struct {
	PartID   entities.PartID   `json:"part_id"`
	Name     string            `json:"name"`
	Unit     *string           `json:"unit"`
	Quantity entities.Quantity `json:"quantity"`
}

// ComplexDetail is a complex with its composition resolved to part names
type ComplexDetail struct {
	ID          entities.ComplexID `json:"id"`
	Name        string             `json:"name"`
	Description *string            `json:"description"`
	Parts       []ComplexPartLine  `json:"parts"`
}

// CountResult is the response of an aggregation run
type CountResult struct {
	Items []entities.TotalLine `json:"items"`
}

// NewPartView converts a part
func NewPartView(p entities.Part) PartView {
	return PartView{ID: p.ID, Name: p.Name, Unit: p.Unit}
}

// NewComplexDetail joins a complex with the given parts.
// Entries whose part is missing from parts are left out.
func NewComplexDetail(c entities.Complex, parts func(entities.PartID) (entities.Part, bool)) ComplexDetail {
	lines := make([]ComplexPartLine, 0, len(c.Composition))
	for _, entry := range c.Composition {
		part, ok := parts(entry.PartID)
		if !ok {
			continue
		}
		lines = append(lines, ComplexPartLine{
			PartID:   part.ID,
			Name:     part.Name,
			Unit:     part.Unit,
			Quantity: entry.Quantity,
		})
	}
	return ComplexDetail{
		ID:          c.ID,
		Name:        c.Name,
		Description: c.Description,
		Parts:       lines,
	}
}
