package registry

import (
	"context"
	"log/slog"
	"sync"

	"github.com/partyroom/partyroom/internal/dependencies/clock"
	"github.com/partyroom/partyroom/internal/dependencies/random"
	"github.com/partyroom/partyroom/internal/model"
	"github.com/partyroom/partyroom/internal/storage"
)

// Config holds registry policy knobs, injected rather than hardcoded
type Config struct {
	// MaxRooms caps the number of concurrently open rooms.
	// Zero means unrestricted; production policy is 4.
	MaxRooms int
	// UniqueNames rejects registration when the display name is taken
	UniqueNames bool
}

// Service is the process-wide player and room directory. It owns token
// allocation and resolution; room lifecycle mutations live in the room
// controller.
type Service struct {
	storage storage.Storage
	clock   clock.Clock
	random  random.Random
	cfg     Config
	logger  *slog.Logger

	// serializes capacity and name-uniqueness checks against inserts
	mu sync.Mutex
}

// New creates a new registry Service
func New(storage storage.Storage, clock clock.Clock, random random.Random, cfg Config, logger *slog.Logger) *Service {
	return &Service{
		storage: storage,
		clock:   clock,
		random:  random,
		cfg:     cfg,
		logger:  logger.With(slog.String("component", "registry")),
	}
}

// newToken allocates a fresh opaque token
func (s *Service) newToken() string {
	return s.random.String(TokenLength, TokenAlphabet)
}

// RegisterPlayer allocates a new player with a fresh token. When
// UniqueNames is enabled, a taken display name is rejected with
// ErrNameTaken.
func (s *Service) RegisterPlayer(ctx context.Context, name string) (*model.Player, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.cfg.UniqueNames {
		taken, err := s.storage.PlayerNameExists(ctx, name)
		if err != nil {
			return nil, err
		}
		if taken {
			return nil, model.ErrNameTaken
		}
	}

	player := &model.Player{
		ID:        model.PlayerID(s.newToken()),
		Name:      name,
		CreatedAt: s.clock.Now(),
	}

	if err := s.storage.SavePlayer(ctx, player); err != nil {
		return nil, err
	}

	s.logger.Info("player registered", slog.String("player", string(player.ID)))
	return player, nil
}

// CreateRoom allocates a new room owned by the given player, with the
// owner as its only member. Fails with ErrCapacityExceeded when the
// configured maximum number of open rooms is reached.
func (s *Service) CreateRoom(ctx context.Context, name string, owner *model.Player) (*model.Room, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.cfg.MaxRooms > 0 {
		open, err := s.storage.CountOpenRooms(ctx)
		if err != nil {
			return nil, err
		}
		if open >= s.cfg.MaxRooms {
			return nil, model.ErrCapacityExceeded
		}
	}

	now := s.clock.Now()
	room := &model.Room{
		ID:        model.RoomID(s.newToken()),
		Name:      name,
		OwnerID:   owner.ID,
		Members:   []model.PlayerID{owner.ID},
		Phase:     model.RoomPhaseLobby,
		CreatedAt: now,
		UpdatedAt: now,
	}

	if err := s.storage.SaveRoom(ctx, room); err != nil {
		return nil, err
	}

	s.logger.Info("room created",
		slog.String("room", string(room.ID)),
		slog.String("owner", string(owner.ID)))
	return room, nil
}

// ResolvePlayer translates an inbound token into a player. It fails with
// ErrMalformedToken before any lookup when the token is not well-formed,
// and with ErrPlayerNotFound for a well-formed token with no record.
func (s *Service) ResolvePlayer(ctx context.Context, token string) (*model.Player, error) {
	if !ValidToken(token) {
		return nil, model.ErrMalformedToken
	}
	return s.storage.GetPlayer(ctx, model.PlayerID(token))
}

// ResolveRoom translates an inbound token into a room, distinguishing
// malformed tokens from absent ones like ResolvePlayer.
func (s *Service) ResolveRoom(ctx context.Context, token string) (*model.Room, error) {
	if !ValidToken(token) {
		return nil, model.ErrMalformedToken
	}
	return s.storage.GetRoom(ctx, model.RoomID(token))
}

// ListPlayers returns every registered player
func (s *Service) ListPlayers(ctx context.Context) ([]*model.Player, error) {
	return s.storage.ListPlayers(ctx)
}

// ListRooms returns every room, open or closed
func (s *Service) ListRooms(ctx context.Context) ([]*model.Room, error) {
	return s.storage.ListRooms(ctx)
}

// MemberPlayers resolves a room's member ids to player records,
// preserving membership order
func (s *Service) MemberPlayers(ctx context.Context, room *model.Room) ([]*model.Player, error) {
	players := make([]*model.Player, 0, len(room.Members))
	for _, id := range room.Members {
		player, err := s.storage.GetPlayer(ctx, id)
		if err != nil {
			return nil, err
		}
		players = append(players, player)
	}
	return players, nil
}
