package handler

import (
	"encoding/json"
	"net/http"
	"time"

	"github.com/partyroom/partyroom/internal/api/middleware"
	"github.com/partyroom/partyroom/internal/model"
	"github.com/partyroom/partyroom/internal/services/registry"
	"github.com/partyroom/partyroom/internal/services/room"
)

// keepalivePeriod is the interval between SSE keepalive comments
const keepalivePeriod = 30 * time.Second

// EventsHandler streams room events over SSE
type EventsHandler struct {
	registry       *registry.Service
	roomController *room.Controller
}

// NewEventsHandler creates a new events handler
func NewEventsHandler(registry *registry.Service, roomController *room.Controller) *EventsHandler {
	return &EventsHandler{
		registry:       registry,
		roomController: roomController,
	}
}

// Stream handles GET /api/v1/rooms/{room}/events.
// The stream delivers every event published after the subscription, in
// publication order, and ends immediately after room-closed or when the
// client disconnects.
func (h *EventsHandler) Stream(w http.ResponseWriter, r *http.Request) {
	player := middleware.MustGetPlayer(r.Context())

	rm, err := resolveRoom(h.registry, r)
	if err != nil {
		WriteError(w, err)
		return
	}

	if !rm.HasMember(player.ID) {
		WriteError(w, model.ErrNotAMember)
		return
	}

	flusher, ok := w.(http.Flusher)
	if !ok {
		http.Error(w, "Streaming unsupported", http.StatusInternalServerError)
		return
	}

	w.Header().Set("Content-Type", "text/event-stream")
	w.Header().Set("Cache-Control", "no-cache")
	w.Header().Set("Connection", "keep-alive")
	w.Header().Set("X-Accel-Buffering", "no") // disable nginx buffering

	sub := h.roomController.Subscribe(rm.ID)
	defer h.roomController.Unsubscribe(rm.ID, sub)

	// Initial comment so the client sees the stream is live
	_, _ = w.Write([]byte(": connected\n\n"))
	flusher.Flush()

	ticker := time.NewTicker(keepalivePeriod)
	defer ticker.Stop()

	for {
		select {
		case evt, ok := <-sub.Events():
			if !ok {
				// Room closed; room-closed was the last event
				return
			}
			if _, err := w.Write(formatEvent(evt)); err != nil {
				return
			}
			flusher.Flush()

		case <-ticker.C:
			if _, err := w.Write([]byte(": keepalive\n\n")); err != nil {
				return
			}
			flusher.Flush()

		case <-r.Context().Done():
			return
		}
	}
}

// eventPayload is the wire payload for events that carry a player
type eventPayload struct {
	Player string `json:"player"`
}

// formatEvent renders an event as an SSE message. start and room-closed
// have empty payloads; the rest carry the affected player's name.
func formatEvent(evt model.Event) []byte {
	data := ""
	switch evt.Type {
	case model.EventPlayerJoin, model.EventPlayerLeft, model.EventGameStopped:
		encoded, _ := json.Marshal(eventPayload{Player: evt.Player})
		data = string(encoded)
	}

	msg := "event: " + string(evt.Type) + "\n"
	msg += "data: " + data + "\n\n"
	return []byte(msg)
}
