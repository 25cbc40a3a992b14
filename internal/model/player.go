package model

import "time"

// PlayerID is the opaque token identifying a player across the system
type PlayerID string

// Player represents a registered participant
type Player struct {
	ID        PlayerID
	Name      string // display name, immutable after registration
	CreatedAt time.Time
}
