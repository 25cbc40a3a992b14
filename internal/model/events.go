package model

import "time"

// EventType identifies the type of a room event. The values are the SSE
// event names delivered to subscriber streams.
type EventType string

const (
	EventPlayerJoin  EventType = "player-join"
	EventPlayerLeft  EventType = "player-left"
	EventGameStopped EventType = "game-stopped" // non-owner left a started game
	EventStart       EventType = "start"
	EventRoomClosed  EventType = "room-closed" // last event a subscriber ever receives
)

// Event is a room lifecycle notification published to subscribers.
// Player carries the display name of the affected player for
// player-join, player-left and game-stopped; it is empty for start
// and room-closed, which have empty payloads on the wire.
type Event struct {
	Type      EventType
	RoomID    RoomID
	Player    string
	Timestamp time.Time
}
