package entities

import (
	"errors"
	"testing"
)

func TestComplex_Validation(t *testing.T) {
	c, err := NewComplex(7, "Playground A", Text("Base kit"))
	if err != nil {
		t.Fatalf("Expected valid complex creation to succeed: %v", err)
	}
	if c.Description == nil || *c.Description != "Base kit" {
		t.Errorf("Expected description 'Base kit', got %v", c.Description)
	}
	if len(c.Composition) != 0 {
		t.Errorf("Expected empty composition, got %d entries", len(c.Composition))
	}

	_, err = NewComplex(1, " ", nil)
	if !errors.Is(err, ErrInvalidInput) {
		t.Fatalf("Expected InvalidInput for blank name, got %v", err)
	}
	if err.Error() != "complex name cannot be empty" {
		t.Errorf("Expected 'complex name cannot be empty', got '%s'", err.Error())
	}
}

func TestCompositionEntry_Validation(t *testing.T) {
	entry, err := NewCompositionEntry(3, 0)
	if err != nil {
		t.Fatalf("Expected zero quantity to be valid: %v", err)
	}
	if entry.Quantity != 0 {
		t.Errorf("Expected quantity 0, got %d", entry.Quantity)
	}

	_, err = NewCompositionEntry(3, -1)
	if !errors.Is(err, ErrInvalidQuantity) {
		t.Fatalf("Expected InvalidQuantity, got %v", err)
	}
	if err.Error() != "quantity cannot be negative, got -1" {
		t.Errorf("Unexpected message: %s", err.Error())
	}
}

func TestComplex_EntryIndexAndClone(t *testing.T) {
	c := Complex{
		ID:   1,
		Name: "A",
		Composition: []CompositionEntry{
			{PartID: 1, Quantity: 4},
			{PartID: 2, Quantity: 4},
		},
	}

	if idx := c.EntryIndex(2); idx != 1 {
		t.Errorf("Expected index 1 for part 2, got %d", idx)
	}
	if idx := c.EntryIndex(99); idx != -1 {
		t.Errorf("Expected index -1 for missing part, got %d", idx)
	}

	clone := c.Clone()
	clone.Composition[0].Quantity = 100
	if c.Composition[0].Quantity != 4 {
		t.Errorf("Clone shares composition with original")
	}
}
