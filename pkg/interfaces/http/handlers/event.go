package handlers

import (
	"fmt"
	"strconv"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/vsinha/partcounter/pkg/infrastructure/events"
	"github.com/vsinha/partcounter/pkg/interfaces/http/response"
)

type EventHandler struct {
	store events.EventStore
}

func NewEventHandler(store events.EventStore) *EventHandler {
	return &EventHandler{store: store}
}

type eventView struct {
	ID        string      `json:"id"`
	Type      string      `json:"type"`
	StreamID  string      `json:"stream_id"`
	Version   int         `json:"version"`
	Timestamp time.Time   `json:"timestamp"`
	Data      interface{} `json:"data"`
}

// GET /api/events?from=N
func (h *EventHandler) ListEvents(c *gin.Context) {
	from := 0
	if raw := c.Query("from"); raw != "" {
		n, err := strconv.Atoi(raw)
		if err != nil || n < 0 {
			response.RespondBadRequest(c, fmt.Errorf("invalid from position %q", raw))
			return
		}
		from = n
	}

	all, err := h.store.ReadAllEvents(from)
	if err != nil {
		response.RespondDomainError(c, err)
		return
	}

	views := make([]eventView, len(all))
	for i, e := range all {
		views[i] = eventView{
			ID:        e.ID(),
			Type:      e.Type(),
			StreamID:  e.StreamID(),
			Version:   e.Version(),
			Timestamp: e.Timestamp(),
			Data:      e.Data(),
		}
	}
	response.RespondOK(c, views)
}
