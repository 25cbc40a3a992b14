package model

import "errors"

// Common errors used across the application
var (
	// Token resolution errors
	ErrPlayerNotFound = errors.New("player not found")
	ErrRoomNotFound   = errors.New("room not found")
	ErrMalformedToken = errors.New("malformed token")

	// Registry errors
	ErrNameTaken        = errors.New("name is already taken")
	ErrCapacityExceeded = errors.New("max rooms limit reached")

	// Room state machine errors
	ErrAlreadyMember      = errors.New("player is already in this room")
	ErrNotAMember         = errors.New("player is not in this room")
	ErrGameAlreadyStarted = errors.New("game already started, cannot join")
	ErrNotOwner           = errors.New("player is not the owner of this room")
	ErrUnevenPlayers      = errors.New("cannot start with an uneven amount of players")
	ErrAlreadyStarted     = errors.New("game has already started")
)
