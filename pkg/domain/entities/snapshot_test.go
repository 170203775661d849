package entities

import "testing"

func TestSnapshot_LookupAndIsolation(t *testing.T) {
	parts := []Part{
		{ID: 1, Name: "Bolt", Unit: Text("pcs")},
		{ID: 2, Name: "Nut"},
	}
	complexes := []Complex{
		{ID: 10, Name: "A", Composition: []CompositionEntry{{PartID: 1, Quantity: 4}}},
	}

	snap := NewSnapshot(parts, complexes)

	// Mutating the inputs must not leak into the snapshot
	parts[0].Name = "Changed"
	*parts[0].Unit = "kg"
	complexes[0].Composition[0].Quantity = 99

	p, ok := snap.LookupPart(1)
	if !ok {
		t.Fatal("Expected part 1 in snapshot")
	}
	if p.Name != "Bolt" || p.UnitOrEmpty() != "pcs" {
		t.Errorf("Snapshot part changed with input: %+v", p)
	}

	c, ok := snap.LookupComplex(10)
	if !ok {
		t.Fatal("Expected complex 10 in snapshot")
	}
	if c.Composition[0].Quantity != 4 {
		t.Errorf("Snapshot composition changed with input: %d", c.Composition[0].Quantity)
	}

	if _, ok := snap.LookupPart(3); ok {
		t.Error("Expected part 3 to be missing")
	}
	if _, ok := snap.LookupComplex(11); ok {
		t.Error("Expected complex 11 to be missing")
	}

	if len(snap.Parts()) != 2 || len(snap.Complexes()) != 1 {
		t.Errorf("Unexpected snapshot sizes: %d parts, %d complexes", len(snap.Parts()), len(snap.Complexes()))
	}
}

func TestSnapshot_LastRecordWins(t *testing.T) {
	snap := NewSnapshot(
		[]Part{{ID: 1, Name: "Old"}, {ID: 1, Name: "New"}},
		nil,
	)

	p, _ := snap.LookupPart(1)
	if p.Name != "New" {
		t.Errorf("Expected last record to win, got %s", p.Name)
	}
	if len(snap.Parts()) != 1 {
		t.Errorf("Expected 1 part, got %d", len(snap.Parts()))
	}
}
