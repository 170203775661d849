package events

import "testing"

func TestStreamIDs(t *testing.T) {
	if got := PartStream(7); got != "part-7" {
		t.Errorf("PartStream(7) = %q", got)
	}
	if got := ComplexStream(12); got != "complex-12" {
		t.Errorf("ComplexStream(12) = %q", got)
	}
}

func TestLoggingHandler(t *testing.T) {
	h := NewLoggingHandler(nil)

	for _, eventType := range CatalogEventTypes {
		if !h.CanHandle(eventType) {
			t.Errorf("Expected handler to accept %s", eventType)
		}
	}
	if h.CanHandle("order.created") {
		t.Error("Expected handler to reject unrelated event types")
	}

	event := NewEvent(PartCreatedEvent, PartStream(1), PartCreated{PartID: 1, Name: "Bolt"})
	if err := h.Handle(event); err != nil {
		t.Errorf("Handle failed: %v", err)
	}
}
