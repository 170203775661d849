package services

import (
	"errors"
	"testing"

	"github.com/vsinha/partcounter/pkg/domain/entities"
)

func testParts() PartSet {
	return NewPartSet([]entities.Part{
		{ID: 1, Name: "Bolt"},
		{ID: 2, Name: "Nut"},
		{ID: 3, Name: "Panel"},
	})
}

func TestAssignPart_AppendsNewEntry(t *testing.T) {
	c := entities.Complex{ID: 1, Name: "A", Composition: []entities.CompositionEntry{{PartID: 2, Quantity: 4}}}

	updated, err := AssignPart(c, 1, 3, testParts())
	if err != nil {
		t.Fatalf("AssignPart failed: %v", err)
	}

	if len(updated.Composition) != 2 {
		t.Fatalf("Expected 2 entries, got %d", len(updated.Composition))
	}
	if updated.Composition[1] != (entities.CompositionEntry{PartID: 1, Quantity: 3}) {
		t.Errorf("Expected new entry appended at end, got %+v", updated.Composition)
	}
	if len(c.Composition) != 1 {
		t.Errorf("Input complex was modified: %+v", c.Composition)
	}
}

func TestAssignPart_ReassignmentOverwrites(t *testing.T) {
	c := entities.Complex{ID: 1, Name: "A"}
	parts := testParts()

	c, err := AssignPart(c, 3, 5, parts)
	if err != nil {
		t.Fatalf("first assign failed: %v", err)
	}
	c, err = AssignPart(c, 1, 1, parts)
	if err != nil {
		t.Fatalf("second assign failed: %v", err)
	}
	c, err = AssignPart(c, 3, 2, parts)
	if err != nil {
		t.Fatalf("reassign failed: %v", err)
	}

	expected := []entities.CompositionEntry{
		{PartID: 3, Quantity: 2},
		{PartID: 1, Quantity: 1},
	}
	if len(c.Composition) != len(expected) {
		t.Fatalf("Expected %d entries, got %d: %+v", len(expected), len(c.Composition), c.Composition)
	}
	for i := range expected {
		if c.Composition[i] != expected[i] {
			t.Errorf("entry %d: expected %+v, got %+v", i, expected[i], c.Composition[i])
		}
	}
}

func TestAssignPart_Errors(t *testing.T) {
	c := entities.Complex{ID: 1, Name: "A"}

	testCases := []struct {
		name     string
		partID   entities.PartID
		quantity entities.Quantity
		expected error
		message  string
	}{
		{"unknown part", 42, 1, entities.ErrUnknownPart, "part 42 not found"},
		{"negative quantity", 1, -1, entities.ErrInvalidQuantity, "quantity cannot be negative, got -1"},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			_, err := AssignPart(c, tc.partID, tc.quantity, testParts())
			if !errors.Is(err, tc.expected) {
				t.Fatalf("Expected %v, got %v", tc.expected, err)
			}
			if err.Error() != tc.message {
				t.Errorf("Expected message '%s', got '%s'", tc.message, err.Error())
			}
		})
	}
}

func TestAssignPart_ZeroQuantityAllowed(t *testing.T) {
	updated, err := AssignPart(entities.Complex{ID: 1, Name: "A"}, 2, 0, testParts())
	if err != nil {
		t.Fatalf("Expected zero quantity to be accepted: %v", err)
	}
	if len(updated.Composition) != 1 || updated.Composition[0].Quantity != 0 {
		t.Errorf("Unexpected composition: %+v", updated.Composition)
	}
}
