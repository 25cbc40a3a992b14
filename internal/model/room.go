package model

import "time"

// RoomID is the opaque token identifying a room
type RoomID string

// RoomPhase represents the current position of a room in its lifecycle
type RoomPhase string

const (
	RoomPhaseLobby   RoomPhase = "lobby"   // Accepting players, game not started
	RoomPhaseStarted RoomPhase = "started" // Game in progress
	RoomPhaseClosed  RoomPhase = "closed"  // Terminal; no further mutation
)

// Room represents a party game session
type Room struct {
	ID        RoomID
	Name      string
	OwnerID   PlayerID   // the creator; always a member until the room closes
	Members   []PlayerID // unique, insertion order preserved
	Phase     RoomPhase
	CreatedAt time.Time
	UpdatedAt time.Time
}

// HasMember reports whether the player is currently in the room
func (r *Room) HasMember(id PlayerID) bool {
	for _, m := range r.Members {
		if m == id {
			return true
		}
	}
	return false
}

// RemoveMember removes the player from the member set, if present
func (r *Room) RemoveMember(id PlayerID) {
	for i, m := range r.Members {
		if m == id {
			r.Members = append(r.Members[:i], r.Members[i+1:]...)
			return
		}
	}
}

// IsOwner reports whether the player owns the room
func (r *Room) IsOwner(id PlayerID) bool {
	return r.OwnerID == id
}
