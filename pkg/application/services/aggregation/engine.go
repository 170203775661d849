// Package aggregation computes total part requirements for a set of complex selections.
package aggregation

import (
	"fmt"
	"math"

	"github.com/shopspring/decimal"

	"github.com/vsinha/partcounter/pkg/domain/entities"
)

// ComplexLookup resolves complexes by id
type ComplexLookup interface {
	LookupComplex(id entities.ComplexID) (entities.Complex, bool)
}

// PartLookup resolves parts by id
type PartLookup interface {
	LookupPart(id entities.PartID) (entities.Part, bool)
}

var maxQuantity = decimal.NewFromInt(math.MaxInt64)

// Compute folds selections into one TotalLine per distinct part.
//
// Lines are emitted in order of first appearance across selections and their compositions.
// Zero totals are kept. All selections are validated before anything is accumulated, so a
// failure never yields partial totals. Compute has no side effects and is safe for concurrent use.
func Compute(selections []entities.Selection, complexes ComplexLookup, parts PartLookup) ([]entities.TotalLine, error) {
	resolved, err := validate(selections, complexes, parts)
	if err != nil {
		return nil, err
	}

	ledger := newLedger()
	for i, sel := range selections {
		count := decimal.NewFromInt(sel.Count)
		for _, entry := range resolved[i].Composition {
			ledger.add(entry.PartID, decimal.NewFromInt(int64(entry.Quantity)).Mul(count))
		}
	}

	return ledger.lines(parts)
}

// validate checks selections in input order and returns the resolved complex for each one
func validate(selections []entities.Selection, complexes ComplexLookup, parts PartLookup) ([]entities.Complex, error) {
	resolved := make([]entities.Complex, len(selections))

	for i, sel := range selections {
		if sel.Count < 1 {
			return nil, entities.NewError(
				entities.InvalidQuantity,
				fmt.Sprintf("selection %d: count must be at least 1, got %d", i, sel.Count),
			)
		}

		c, exists := complexes.LookupComplex(sel.ComplexID)
		if !exists {
			return nil, entities.NewError(
				entities.InvalidReference,
				fmt.Sprintf("selection %d: complex %d not found", i, sel.ComplexID),
			)
		}

		for _, entry := range c.Composition {
			if _, exists := parts.LookupPart(entry.PartID); !exists {
				return nil, entities.NewError(
					entities.InvalidReference,
					fmt.Sprintf("complex %d references unknown part %d", c.ID, entry.PartID),
				)
			}
			if entry.Quantity < 0 {
				return nil, entities.NewError(
					entities.InvalidQuantity,
					fmt.Sprintf("complex %d has negative quantity %d for part %d", c.ID, entry.Quantity, entry.PartID),
				)
			}
		}

		resolved[i] = c
	}

	return resolved, nil
}

// ledger is an accumulator keyed by part id that remembers first-appearance order
type ledger struct {
	order  []entities.PartID
	totals map[entities.PartID]decimal.Decimal
}

func newLedger() *ledger {
	return &ledger{
		order:  make([]entities.PartID, 0),
		totals: make(map[entities.PartID]decimal.Decimal),
	}
}

func (l *ledger) add(partID entities.PartID, qty decimal.Decimal) {
	current, seen := l.totals[partID]
	if !seen {
		l.order = append(l.order, partID)
		current = decimal.Zero
	}
	l.totals[partID] = current.Add(qty)
}

// lines narrows totals to Quantity and attaches current part name and unit
func (l *ledger) lines(parts PartLookup) ([]entities.TotalLine, error) {
	out := make([]entities.TotalLine, 0, len(l.order))

	for _, partID := range l.order {
		total := l.totals[partID]
		if total.GreaterThan(maxQuantity) {
			return nil, entities.NewError(
				entities.Overflow,
				fmt.Sprintf("total quantity for part %d exceeds %d", partID, int64(math.MaxInt64)),
			)
		}

		part, _ := parts.LookupPart(partID)
		line := entities.TotalLine{
			PartID:        partID,
			Name:          part.Name,
			TotalQuantity: entities.Quantity(total.IntPart()),
		}
		if part.Unit != nil {
			unit := *part.Unit
			line.Unit = &unit
		}
		out = append(out, line)
	}

	return out, nil
}
