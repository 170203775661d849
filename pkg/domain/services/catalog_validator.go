package services

import (
	"fmt"
	"strings"

	"github.com/vsinha/partcounter/pkg/domain/entities"
)

// CatalogValidator checks the integrity of a catalog loaded from outside the service,
// e.g. a CSV scenario, before it is handed to the aggregation engine
type CatalogValidator struct{}

// NewCatalogValidator creates a new catalog validator
func NewCatalogValidator() *CatalogValidator {
	return &CatalogValidator{}
}

// EntryRef identifies one composition entry
type EntryRef struct {
	ComplexID entities.ComplexID
	PartID    entities.PartID
}

// ValidationResult contains the results of catalog validation
type ValidationResult struct {
	DuplicatePartIDs    []entities.PartID
	DuplicatePartNames  []string
	DuplicateComplexIDs []entities.ComplexID
	DuplicateEntries    []EntryRef
	DanglingReferences  []EntryRef
	NegativeQuantities  []EntryRef
	Errors              []string
}

// Valid reports whether no errors were found
func (r *ValidationResult) Valid() bool {
	return len(r.Errors) == 0
}

// ValidateCatalog performs comprehensive validation on parts and complexes
func (v *CatalogValidator) ValidateCatalog(parts []entities.Part, complexes []entities.Complex) *ValidationResult {
	result := &ValidationResult{
		DuplicatePartIDs:    make([]entities.PartID, 0),
		DuplicatePartNames:  make([]string, 0),
		DuplicateComplexIDs: make([]entities.ComplexID, 0),
		DuplicateEntries:    make([]EntryRef, 0),
		DanglingReferences:  make([]EntryRef, 0),
		NegativeQuantities:  make([]EntryRef, 0),
		Errors:              make([]string, 0),
	}

	v.detectDuplicateParts(parts, result)

	seenComplexes := make(map[entities.ComplexID]bool)
	for _, c := range complexes {
		if seenComplexes[c.ID] {
			result.DuplicateComplexIDs = append(result.DuplicateComplexIDs, c.ID)
		}
		seenComplexes[c.ID] = true
	}

	known := NewPartSet(parts)
	for _, c := range complexes {
		v.validateComposition(c, known, result)
	}

	if len(result.DuplicatePartIDs) > 0 {
		result.Errors = append(result.Errors, fmt.Sprintf("Duplicate part ids found: %v", result.DuplicatePartIDs))
	}
	if len(result.DuplicatePartNames) > 0 {
		result.Errors = append(result.Errors,
			fmt.Sprintf("Duplicate part names found: %s", strings.Join(result.DuplicatePartNames, ", ")))
	}
	if len(result.DuplicateComplexIDs) > 0 {
		result.Errors = append(result.Errors, fmt.Sprintf("Duplicate complex ids found: %v", result.DuplicateComplexIDs))
	}
	for _, ref := range result.DuplicateEntries {
		result.Errors = append(result.Errors,
			fmt.Sprintf("complex %d lists part %d more than once", ref.ComplexID, ref.PartID))
	}
	for _, ref := range result.DanglingReferences {
		result.Errors = append(result.Errors,
			fmt.Sprintf("complex %d references unknown part %d", ref.ComplexID, ref.PartID))
	}
	for _, ref := range result.NegativeQuantities {
		result.Errors = append(result.Errors,
			fmt.Sprintf("complex %d has negative quantity for part %d", ref.ComplexID, ref.PartID))
	}

	return result
}

// detectDuplicateParts finds repeated part ids and names
func (v *CatalogValidator) detectDuplicateParts(parts []entities.Part, result *ValidationResult) {
	seenIDs := make(map[entities.PartID]bool)
	seenNames := make(map[string]bool)

	for _, p := range parts {
		if seenIDs[p.ID] {
			result.DuplicatePartIDs = append(result.DuplicatePartIDs, p.ID)
		}
		seenIDs[p.ID] = true

		key := strings.TrimSpace(p.Name)
		if seenNames[key] {
			result.DuplicatePartNames = append(result.DuplicatePartNames, p.Name)
		}
		seenNames[key] = true
	}
}

// validateComposition checks one complex's entries for uniqueness, references and quantities
func (v *CatalogValidator) validateComposition(c entities.Complex, known PartSet, result *ValidationResult) {
	seen := make(map[entities.PartID]bool)

	for _, entry := range c.Composition {
		ref := EntryRef{ComplexID: c.ID, PartID: entry.PartID}

		if seen[entry.PartID] {
			result.DuplicateEntries = append(result.DuplicateEntries, ref)
		}
		seen[entry.PartID] = true

		if _, exists := known.LookupPart(entry.PartID); !exists {
			result.DanglingReferences = append(result.DanglingReferences, ref)
		}
		if entry.Quantity < 0 {
			result.NegativeQuantities = append(result.NegativeQuantities, ref)
		}
	}
}
