package sqlite

import "github.com/vsinha/partcounter/pkg/domain/entities"

type partRow struct {
	ID   int64   `gorm:"primaryKey;autoIncrement"`
	Name string  `gorm:"not null;uniqueIndex"`
	Unit *string
}

func (partRow) TableName() string { return "parts" }

func (r partRow) toEntity() entities.Part {
	return entities.Part{ID: entities.PartID(r.ID), Name: r.Name, Unit: r.Unit}
}

type complexRow struct {
	ID          int64  `gorm:"primaryKey;autoIncrement"`
	Name        string `gorm:"not null;index"`
	Description *string
}

func (complexRow) TableName() string { return "complexes" }

// complexPartRow is one composition entry; Position preserves append order.
// Both ids are foreign keys: a part in use cannot be removed and deleting a
// complex removes its composition.
type complexPartRow struct {
	ComplexID int64 `gorm:"primaryKey;autoIncrement:false"`
	PartID    int64 `gorm:"primaryKey;autoIncrement:false;index"`
	Quantity  int64 `gorm:"not null;default:0;check:quantity >= 0"`
	Position  int   `gorm:"not null"`

	Complex complexRow `gorm:"foreignKey:ComplexID;constraint:OnDelete:CASCADE"`
	Part    partRow    `gorm:"foreignKey:PartID;constraint:OnDelete:RESTRICT"`
}

func (complexPartRow) TableName() string { return "complex_parts" }

// assembleComplexes joins complex rows with their composition rows, which must be
// sorted by (complex_id, position)
func assembleComplexes(rows []complexRow, entries []complexPartRow) []entities.Complex {
	byComplex := make(map[int64][]entities.CompositionEntry, len(rows))
	for _, e := range entries {
		byComplex[e.ComplexID] = append(byComplex[e.ComplexID], entities.CompositionEntry{
			PartID:   entities.PartID(e.PartID),
			Quantity: entities.Quantity(e.Quantity),
		})
	}

	out := make([]entities.Complex, 0, len(rows))
	for _, r := range rows {
		composition := byComplex[r.ID]
		if composition == nil {
			composition = []entities.CompositionEntry{}
		}
		out = append(out, entities.Complex{
			ID:          entities.ComplexID(r.ID),
			Name:        r.Name,
			Description: r.Description,
			Composition: composition,
		})
	}
	return out
}
