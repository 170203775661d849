package events

import (
	"testing"
	"time"

	"github.com/vsinha/partcounter/pkg/domain/entities"
)

type recordingHandler struct {
	types []string
	seen  chan Event
}

func (h *recordingHandler) Handle(event Event) error {
	h.seen <- event
	return nil
}

func (h *recordingHandler) CanHandle(eventType string) bool {
	for _, t := range h.types {
		if t == eventType {
			return true
		}
	}
	return false
}

func TestInMemoryEventStore_AppendAndRead(t *testing.T) {
	store := NewInMemoryEventStore(nil)

	stream := ComplexStream(1)
	if err := store.AppendEvent(stream, NewEvent(ComplexCreatedEvent, stream, ComplexCreated{ComplexID: 1, Name: "A"})); err != nil {
		t.Fatalf("AppendEvent failed: %v", err)
	}
	if err := store.AppendEvent(stream, NewEvent(ComplexPartAssignedEvent, stream, ComplexPartAssigned{ComplexID: 1, PartID: 2, Quantity: 4})); err != nil {
		t.Fatalf("AppendEvent failed: %v", err)
	}
	other := PartStream(2)
	if err := store.AppendEvent(other, NewEvent(PartCreatedEvent, other, PartCreated{PartID: 2, Name: "Nut"})); err != nil {
		t.Fatalf("AppendEvent failed: %v", err)
	}

	events, err := store.ReadEvents(stream, 1)
	if err != nil {
		t.Fatalf("ReadEvents failed: %v", err)
	}
	if len(events) != 2 {
		t.Fatalf("Expected 2 events in stream, got %d", len(events))
	}
	if events[0].Version() != 1 || events[1].Version() != 2 {
		t.Errorf("Expected versions 1,2 got %d,%d", events[0].Version(), events[1].Version())
	}
	if events[0].ID() == "" || events[0].ID() == events[1].ID() {
		t.Errorf("Expected unique event ids, got %q and %q", events[0].ID(), events[1].ID())
	}

	fromSecond, _ := store.ReadEvents(stream, 2)
	if len(fromSecond) != 1 || fromSecond[0].Type() != ComplexPartAssignedEvent {
		t.Errorf("Unexpected events from version 2: %v", fromSecond)
	}

	all, _ := store.ReadAllEvents(0)
	if len(all) != 3 {
		t.Fatalf("Expected 3 events overall, got %d", len(all))
	}
	if all[2].StreamID() != "part-2" {
		t.Errorf("Expected last event on part-2, got %s", all[2].StreamID())
	}

	tail, _ := store.ReadAllEvents(3)
	if len(tail) != 0 {
		t.Errorf("Expected no events past the end, got %d", len(tail))
	}

	missing, _ := store.ReadEvents("complex-99", 1)
	if len(missing) != 0 {
		t.Errorf("Expected no events for unknown stream, got %d", len(missing))
	}
}

func TestInMemoryEventStore_NotifiesSubscribers(t *testing.T) {
	store := NewInMemoryEventStore(nil)
	handler := &recordingHandler{types: []string{PartCreatedEvent}, seen: make(chan Event, 4)}

	if err := store.Subscribe([]string{PartCreatedEvent}, handler); err != nil {
		t.Fatalf("Subscribe failed: %v", err)
	}

	stream := PartStream(5)
	_ = store.AppendEvent(stream, NewEvent(PartCreatedEvent, stream, PartCreated{PartID: 5, Name: "Rope", Unit: entities.Text("m")}))

	select {
	case got := <-handler.seen:
		data, ok := got.Data().(PartCreated)
		if !ok || data.PartID != 5 {
			t.Errorf("Unexpected event payload: %#v", got.Data())
		}
	case <-time.After(2 * time.Second):
		t.Fatal("Timed out waiting for subscriber notification")
	}

	if err := store.Unsubscribe(handler); err != nil {
		t.Fatalf("Unsubscribe failed: %v", err)
	}
	_ = store.AppendEvent(stream, NewEvent(PartCreatedEvent, stream, PartCreated{PartID: 5}))

	select {
	case got := <-handler.seen:
		t.Errorf("Unsubscribed handler received %s", got.Type())
	case <-time.After(100 * time.Millisecond):
	}
}
