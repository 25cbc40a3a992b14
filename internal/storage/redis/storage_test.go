package redis

import (
	"context"
	"testing"
	"time"

	"github.com/alicebob/miniredis/v2"
	"github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/suite"

	"github.com/partyroom/partyroom/internal/model"
)

type StorageSuite struct {
	suite.Suite
	mini    *miniredis.Miniredis
	storage *Storage
	ctx     context.Context
}

func TestStorageSuite(t *testing.T) {
	suite.Run(t, new(StorageSuite))
}

func (s *StorageSuite) SetupTest() {
	s.mini = miniredis.RunT(s.T())

	client := redis.NewClient(&redis.Options{
		Addr: s.mini.Addr(),
	})

	cfg := DefaultConfig()
	cfg.PlayerTTL = time.Hour
	cfg.RoomTTL = time.Hour

	s.storage = NewWithClient(client, cfg)
	s.ctx = context.Background()
}

func (s *StorageSuite) TearDownTest() {
	if s.storage != nil {
		_ = s.storage.Close()
	}
	if s.mini != nil {
		s.mini.Close()
	}
}

// Player tests

func (s *StorageSuite) TestSaveAndGetPlayer() {
	player := &model.Player{
		ID:        "player-1",
		Name:      "Alice",
		CreatedAt: time.Date(2024, 1, 1, 12, 0, 0, 0, time.UTC),
	}

	err := s.storage.SavePlayer(s.ctx, player)
	s.Require().NoError(err)

	retrieved, err := s.storage.GetPlayer(s.ctx, "player-1")
	s.Require().NoError(err)
	s.Equal(player.ID, retrieved.ID)
	s.Equal(player.Name, retrieved.Name)
	s.True(player.CreatedAt.Equal(retrieved.CreatedAt))
}

func (s *StorageSuite) TestGetPlayerNotFound() {
	_, err := s.storage.GetPlayer(s.ctx, "nonexistent")
	s.ErrorIs(err, model.ErrPlayerNotFound)
}

func (s *StorageSuite) TestListPlayers() {
	_ = s.storage.SavePlayer(s.ctx, &model.Player{ID: "player-1", Name: "Alice"})
	_ = s.storage.SavePlayer(s.ctx, &model.Player{ID: "player-2", Name: "Bob"})

	players, err := s.storage.ListPlayers(s.ctx)
	s.Require().NoError(err)
	s.Len(players, 2)
}

func (s *StorageSuite) TestListPlayersSkipsExpiredRecords() {
	_ = s.storage.SavePlayer(s.ctx, &model.Player{ID: "player-1", Name: "Alice"})
	_ = s.storage.SavePlayer(s.ctx, &model.Player{ID: "player-2", Name: "Bob"})

	// Expire one record while its index entry survives
	s.mini.FastForward(2 * time.Hour)
	_ = s.storage.SavePlayer(s.ctx, &model.Player{ID: "player-2", Name: "Bob"})

	players, err := s.storage.ListPlayers(s.ctx)
	s.Require().NoError(err)
	s.Len(players, 1)
	s.Equal("Bob", players[0].Name)
}

func (s *StorageSuite) TestPlayerNameExists() {
	_ = s.storage.SavePlayer(s.ctx, &model.Player{ID: "player-1", Name: "Alice"})

	exists, err := s.storage.PlayerNameExists(s.ctx, "Alice")
	s.Require().NoError(err)
	s.True(exists)

	exists, err = s.storage.PlayerNameExists(s.ctx, "Bob")
	s.Require().NoError(err)
	s.False(exists)
}

func (s *StorageSuite) TestPlayerRecordsExpire() {
	_ = s.storage.SavePlayer(s.ctx, &model.Player{ID: "player-1", Name: "Alice"})

	s.mini.FastForward(2 * time.Hour)

	_, err := s.storage.GetPlayer(s.ctx, "player-1")
	s.ErrorIs(err, model.ErrPlayerNotFound)
}

// Room tests

func (s *StorageSuite) TestSaveAndGetRoom() {
	room := &model.Room{
		ID:      "room-1",
		Name:    "Games Night",
		OwnerID: "player-1",
		Members: []model.PlayerID{"player-1", "player-2"},
		Phase:   model.RoomPhaseLobby,
	}

	err := s.storage.SaveRoom(s.ctx, room)
	s.Require().NoError(err)

	retrieved, err := s.storage.GetRoom(s.ctx, "room-1")
	s.Require().NoError(err)
	s.Equal(room.Name, retrieved.Name)
	s.Equal(room.OwnerID, retrieved.OwnerID)
	s.Equal(room.Members, retrieved.Members)
	s.Equal(model.RoomPhaseLobby, retrieved.Phase)
}

func (s *StorageSuite) TestGetRoomNotFound() {
	_, err := s.storage.GetRoom(s.ctx, "nonexistent")
	s.ErrorIs(err, model.ErrRoomNotFound)
}

func (s *StorageSuite) TestListRooms() {
	_ = s.storage.SaveRoom(s.ctx, &model.Room{ID: "room-1", Phase: model.RoomPhaseLobby})
	_ = s.storage.SaveRoom(s.ctx, &model.Room{ID: "room-2", Phase: model.RoomPhaseClosed})

	rooms, err := s.storage.ListRooms(s.ctx)
	s.Require().NoError(err)
	s.Len(rooms, 2)
}

func (s *StorageSuite) TestCountOpenRooms() {
	_ = s.storage.SaveRoom(s.ctx, &model.Room{ID: "room-1", Phase: model.RoomPhaseLobby})
	_ = s.storage.SaveRoom(s.ctx, &model.Room{ID: "room-2", Phase: model.RoomPhaseStarted})

	count, err := s.storage.CountOpenRooms(s.ctx)
	s.Require().NoError(err)
	s.Equal(2, count)
}

func (s *StorageSuite) TestClosingRoomLeavesOpenIndex() {
	room := &model.Room{ID: "room-1", Phase: model.RoomPhaseLobby}
	_ = s.storage.SaveRoom(s.ctx, room)

	room.Phase = model.RoomPhaseClosed
	_ = s.storage.SaveRoom(s.ctx, room)

	count, err := s.storage.CountOpenRooms(s.ctx)
	s.Require().NoError(err)
	s.Equal(0, count)

	// The closed record itself is retained
	retrieved, err := s.storage.GetRoom(s.ctx, "room-1")
	s.Require().NoError(err)
	s.Equal(model.RoomPhaseClosed, retrieved.Phase)
}
