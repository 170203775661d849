package entities

// Snapshot is an immutable, point-in-time view of the catalog.
// It is passed by value into the aggregation engine; nothing in it is shared with the store.
type Snapshot struct {
	parts        []Part
	complexes    []Complex
	partIndex    map[PartID]int
	complexIndex map[ComplexID]int
}

// NewSnapshot copies parts and complexes into a new Snapshot.
// When ids repeat, the last record wins.
func NewSnapshot(parts []Part, complexes []Complex) Snapshot {
	s := Snapshot{
		parts:        make([]Part, 0, len(parts)),
		complexes:    make([]Complex, 0, len(complexes)),
		partIndex:    make(map[PartID]int, len(parts)),
		complexIndex: make(map[ComplexID]int, len(complexes)),
	}

	for _, p := range parts {
		if p.Unit != nil {
			unit := *p.Unit
			p.Unit = &unit
		}
		if i, exists := s.partIndex[p.ID]; exists {
			s.parts[i] = p
			continue
		}
		s.partIndex[p.ID] = len(s.parts)
		s.parts = append(s.parts, p)
	}

	for _, c := range complexes {
		c = c.Clone()
		if i, exists := s.complexIndex[c.ID]; exists {
			s.complexes[i] = c
			continue
		}
		s.complexIndex[c.ID] = len(s.complexes)
		s.complexes = append(s.complexes, c)
	}

	return s
}

// LookupPart returns the part with the given id
func (s Snapshot) LookupPart(id PartID) (Part, bool) {
	i, exists := s.partIndex[id]
	if !exists {
		return Part{}, false
	}
	return s.parts[i], true
}

// LookupComplex returns the complex with the given id
func (s Snapshot) LookupComplex(id ComplexID) (Complex, bool) {
	i, exists := s.complexIndex[id]
	if !exists {
		return Complex{}, false
	}
	return s.complexes[i], true
}

// Parts returns the snapshot's parts in load order
func (s Snapshot) Parts() []Part {
	out := make([]Part, len(s.parts))
	copy(out, s.parts)
	return out
}

// Complexes returns the snapshot's complexes in load order
func (s Snapshot) Complexes() []Complex {
	out := make([]Complex, len(s.complexes))
	for i, c := range s.complexes {
		out[i] = c.Clone()
	}
	return out
}
