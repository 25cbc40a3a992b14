package response

import (
	"time"

	"github.com/partyroom/partyroom/internal/model"
)

// Player represents a player in API responses
type Player struct {
	ID   string `json:"id"`
	Name string `json:"name"`
}

// PlayerFromModel converts a model.Player to a response Player
func PlayerFromModel(p *model.Player) Player {
	return Player{
		ID:   string(p.ID),
		Name: p.Name,
	}
}

// Room represents a room in API responses
type Room struct {
	ID        string    `json:"id"`
	Name      string    `json:"name"`
	Owner     string    `json:"owner"`
	Phase     string    `json:"phase"`
	Players   []Player  `json:"players"`
	CreatedAt time.Time `json:"created_at"`
}

// RoomFromModel converts a model.Room and its resolved members
func RoomFromModel(r *model.Room, members []*model.Player) Room {
	players := make([]Player, 0, len(members))
	for _, m := range members {
		players = append(players, PlayerFromModel(m))
	}
	return Room{
		ID:        string(r.ID),
		Name:      r.Name,
		Owner:     string(r.OwnerID),
		Phase:     string(r.Phase),
		Players:   players,
		CreatedAt: r.CreatedAt,
	}
}

// RoomSummary is a compact room listing entry
type RoomSummary struct {
	ID          string `json:"id"`
	Name        string `json:"name"`
	Phase       string `json:"phase"`
	PlayerCount int    `json:"player_count"`
}

// RoomSummaryFromModel converts a model.Room to a listing entry
func RoomSummaryFromModel(r *model.Room) RoomSummary {
	return RoomSummary{
		ID:          string(r.ID),
		Name:        r.Name,
		Phase:       string(r.Phase),
		PlayerCount: len(r.Members),
	}
}

// JoinResponse is the response for joining a room
type JoinResponse struct {
	Room string `json:"room"`
}

// HealthResponse is the response for the health endpoint
type HealthResponse struct {
	Status string `json:"status"`
}
