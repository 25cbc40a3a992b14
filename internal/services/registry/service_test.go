package registry

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/suite"

	"github.com/partyroom/partyroom/internal/dependencies/mocks"
	"github.com/partyroom/partyroom/internal/model"
	"github.com/partyroom/partyroom/internal/storage/memory"
	"github.com/partyroom/partyroom/internal/testutil"
)

// 21-character tokens matching the token alphabet
const (
	tokenAlice = "alice_tok_0123456789A"
	tokenBob   = "bob___tok_0123456789B"
	tokenRoom1 = "room1_tok_0123456789C"
	tokenRoom2 = "room2_tok_0123456789D"
)

type ServiceSuite struct {
	suite.Suite
	storage *memory.Storage
	clock   *mocks.MockClock
	random  *mocks.MockRandom
	ctx     context.Context
}

func TestServiceSuite(t *testing.T) {
	suite.Run(t, new(ServiceSuite))
}

func (s *ServiceSuite) SetupTest() {
	s.storage = memory.New()
	s.clock = mocks.NewMockClock(time.Date(2024, 1, 1, 12, 0, 0, 0, time.UTC))
	s.random = mocks.NewMockRandom()
	s.ctx = context.Background()
}

func (s *ServiceSuite) newService(cfg Config) *Service {
	return New(s.storage, s.clock, s.random, cfg, testutil.NopLogger())
}

// RegisterPlayer tests

func (s *ServiceSuite) TestRegisterPlayerSucceeds() {
	s.random.QueueString(tokenAlice)
	svc := s.newService(Config{})

	player, err := svc.RegisterPlayer(s.ctx, "Alice")
	s.Require().NoError(err)

	s.Equal(model.PlayerID(tokenAlice), player.ID)
	s.Equal("Alice", player.Name)
	s.Equal(s.clock.Now(), player.CreatedAt)
}

func (s *ServiceSuite) TestRegisterPlayerIsPersisted() {
	s.random.QueueString(tokenAlice)
	svc := s.newService(Config{})

	player, err := svc.RegisterPlayer(s.ctx, "Alice")
	s.Require().NoError(err)

	retrieved, err := svc.ResolvePlayer(s.ctx, string(player.ID))
	s.Require().NoError(err)
	s.Equal(player.Name, retrieved.Name)
}

func (s *ServiceSuite) TestRegisterDuplicateNameAllowedByDefault() {
	s.random.QueueString(tokenAlice, tokenBob)
	svc := s.newService(Config{})

	_, err := svc.RegisterPlayer(s.ctx, "Alice")
	s.Require().NoError(err)

	second, err := svc.RegisterPlayer(s.ctx, "Alice")
	s.Require().NoError(err)
	s.Equal(model.PlayerID(tokenBob), second.ID)
}

func (s *ServiceSuite) TestRegisterDuplicateNameRejectedWhenUnique() {
	s.random.QueueString(tokenAlice, tokenBob)
	svc := s.newService(Config{UniqueNames: true})

	_, err := svc.RegisterPlayer(s.ctx, "Alice")
	s.Require().NoError(err)

	_, err = svc.RegisterPlayer(s.ctx, "Alice")
	s.ErrorIs(err, model.ErrNameTaken)
}

func (s *ServiceSuite) TestRegisterDistinctNamesWhenUnique() {
	s.random.QueueString(tokenAlice, tokenBob)
	svc := s.newService(Config{UniqueNames: true})

	_, err := svc.RegisterPlayer(s.ctx, "Alice")
	s.Require().NoError(err)

	_, err = svc.RegisterPlayer(s.ctx, "Bob")
	s.NoError(err)
}

// CreateRoom tests

func (s *ServiceSuite) registerOwner(svc *Service) *model.Player {
	s.random.QueueString(tokenAlice)
	owner, err := svc.RegisterPlayer(s.ctx, "Alice")
	s.Require().NoError(err)
	return owner
}

func (s *ServiceSuite) TestCreateRoomSucceeds() {
	svc := s.newService(Config{})
	owner := s.registerOwner(svc)
	s.random.QueueString(tokenRoom1)

	room, err := svc.CreateRoom(s.ctx, "Games Night", owner)
	s.Require().NoError(err)

	s.Equal(model.RoomID(tokenRoom1), room.ID)
	s.Equal("Games Night", room.Name)
	s.Equal(owner.ID, room.OwnerID)
	s.Equal([]model.PlayerID{owner.ID}, room.Members)
	s.Equal(model.RoomPhaseLobby, room.Phase)
	s.Equal(s.clock.Now(), room.CreatedAt)
}

func (s *ServiceSuite) TestCreateRoomUnlimitedByDefault() {
	svc := s.newService(Config{})
	owner := s.registerOwner(svc)

	for i := 0; i < 10; i++ {
		s.random.QueueString(tokenRoom1[:20] + string(rune('a'+i)))
		_, err := svc.CreateRoom(s.ctx, "Room", owner)
		s.Require().NoError(err)
	}
}

func (s *ServiceSuite) TestCreateRoomRejectedAtCapacity() {
	svc := s.newService(Config{MaxRooms: 2})
	owner := s.registerOwner(svc)

	s.random.QueueString(tokenRoom1, tokenRoom2)
	_, err := svc.CreateRoom(s.ctx, "Room 1", owner)
	s.Require().NoError(err)
	_, err = svc.CreateRoom(s.ctx, "Room 2", owner)
	s.Require().NoError(err)

	_, err = svc.CreateRoom(s.ctx, "Room 3", owner)
	s.ErrorIs(err, model.ErrCapacityExceeded)
}

func (s *ServiceSuite) TestClosedRoomsFreeCapacity() {
	svc := s.newService(Config{MaxRooms: 1})
	owner := s.registerOwner(svc)

	s.random.QueueString(tokenRoom1)
	room, err := svc.CreateRoom(s.ctx, "Room 1", owner)
	s.Require().NoError(err)

	// Close the first room; capacity counts open rooms only
	room.Phase = model.RoomPhaseClosed
	room.Members = nil
	s.Require().NoError(s.storage.SaveRoom(s.ctx, room))

	s.random.QueueString(tokenRoom2)
	_, err = svc.CreateRoom(s.ctx, "Room 2", owner)
	s.NoError(err)
}

// Resolution tests

func (s *ServiceSuite) TestResolvePlayerMalformedToken() {
	svc := s.newService(Config{})

	_, err := svc.ResolvePlayer(s.ctx, "not-a-valid-token")
	s.ErrorIs(err, model.ErrMalformedToken)
}

func (s *ServiceSuite) TestResolvePlayerWellFormedButUnknown() {
	svc := s.newService(Config{})

	_, err := svc.ResolvePlayer(s.ctx, tokenBob)
	s.ErrorIs(err, model.ErrPlayerNotFound)
}

func (s *ServiceSuite) TestResolveRoomMalformedToken() {
	svc := s.newService(Config{})

	_, err := svc.ResolveRoom(s.ctx, "short")
	s.ErrorIs(err, model.ErrMalformedToken)
}

func (s *ServiceSuite) TestResolveRoomWellFormedButUnknown() {
	svc := s.newService(Config{})

	_, err := svc.ResolveRoom(s.ctx, tokenRoom1)
	s.ErrorIs(err, model.ErrRoomNotFound)
}

// MemberPlayers tests

func (s *ServiceSuite) TestMemberPlayersPreservesOrder() {
	svc := s.newService(Config{})

	s.random.QueueString(tokenAlice, tokenBob)
	alice, err := svc.RegisterPlayer(s.ctx, "Alice")
	s.Require().NoError(err)
	bob, err := svc.RegisterPlayer(s.ctx, "Bob")
	s.Require().NoError(err)

	room := &model.Room{
		ID:      model.RoomID(tokenRoom1),
		OwnerID: alice.ID,
		Members: []model.PlayerID{alice.ID, bob.ID},
		Phase:   model.RoomPhaseLobby,
	}

	players, err := svc.MemberPlayers(s.ctx, room)
	s.Require().NoError(err)
	s.Require().Len(players, 2)
	s.Equal("Alice", players[0].Name)
	s.Equal("Bob", players[1].Name)
}
