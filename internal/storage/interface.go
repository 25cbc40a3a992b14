package storage

import (
	"context"

	"github.com/partyroom/partyroom/internal/model"
)

// Storage defines the interface for the player and room directories.
// Records live for the process lifetime (or until the backend's TTL
// expires them); rooms are retained after closing, never deleted.
type Storage interface {
	// Player operations
	SavePlayer(ctx context.Context, player *model.Player) error
	GetPlayer(ctx context.Context, id model.PlayerID) (*model.Player, error)
	ListPlayers(ctx context.Context) ([]*model.Player, error)
	PlayerNameExists(ctx context.Context, name string) (bool, error)

	// Room operations
	SaveRoom(ctx context.Context, room *model.Room) error
	GetRoom(ctx context.Context, id model.RoomID) (*model.Room, error)
	ListRooms(ctx context.Context) ([]*model.Room, error)
	CountOpenRooms(ctx context.Context) (int, error)
}
