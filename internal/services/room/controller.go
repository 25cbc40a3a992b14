package room

import (
	"context"
	"log/slog"
	"sync"

	"github.com/partyroom/partyroom/internal/dependencies/clock"
	"github.com/partyroom/partyroom/internal/events"
	"github.com/partyroom/partyroom/internal/model"
	"github.com/partyroom/partyroom/internal/storage"
)

// Controller enforces the room lifecycle state machine. Every operation
// on the same room is serialized by a per-room lock, so guard checks,
// effects and event emission are atomic: either all preconditions hold
// and the full effect plus event happens, or nothing changes and a
// single named rejection is returned.
type Controller struct {
	storage storage.Storage
	events  *events.Manager
	clock   clock.Clock
	logger  *slog.Logger

	mu    sync.Mutex
	locks map[model.RoomID]*sync.Mutex
}

// NewController creates a new room Controller
func NewController(storage storage.Storage, events *events.Manager, clock clock.Clock, logger *slog.Logger) *Controller {
	return &Controller{
		storage: storage,
		events:  events,
		clock:   clock,
		logger:  logger.With(slog.String("component", "room")),
		locks:   make(map[model.RoomID]*sync.Mutex),
	}
}

// lockRoom acquires the room's mutation lock and returns its unlock func
func (c *Controller) lockRoom(id model.RoomID) func() {
	c.mu.Lock()
	lock, ok := c.locks[id]
	if !ok {
		lock = &sync.Mutex{}
		c.locks[id] = lock
	}
	c.mu.Unlock()

	lock.Lock()
	return lock.Unlock
}

// dropLock discards a closed room's lock entry
func (c *Controller) dropLock(id model.RoomID) {
	c.mu.Lock()
	delete(c.locks, id)
	c.mu.Unlock()
}

// GetRoom retrieves a room by id
func (c *Controller) GetRoom(ctx context.Context, id model.RoomID) (*model.Room, error) {
	return c.storage.GetRoom(ctx, id)
}

// Subscribe attaches a new observer to the room's event stream
func (c *Controller) Subscribe(roomID model.RoomID) *events.Subscription {
	return c.events.GetOrCreate(roomID).Subscribe()
}

// Unsubscribe detaches an observer; idempotent, safe after close
func (c *Controller) Unsubscribe(roomID model.RoomID, sub *events.Subscription) {
	if b := c.events.Get(roomID); b != nil {
		b.Unsubscribe(sub)
	}
}

// publish emits a room event to all current subscribers
func (c *Controller) publish(roomID model.RoomID, eventType model.EventType, playerName string) {
	c.events.GetOrCreate(roomID).Publish(model.Event{
		Type:      eventType,
		RoomID:    roomID,
		Player:    playerName,
		Timestamp: c.clock.Now(),
	})
}

// Join adds a player to a room still in the lobby phase
func (c *Controller) Join(ctx context.Context, roomID model.RoomID, player *model.Player) error {
	unlock := c.lockRoom(roomID)
	defer unlock()

	room, err := c.storage.GetRoom(ctx, roomID)
	if err != nil {
		return err
	}

	if room.Phase != model.RoomPhaseLobby {
		return model.ErrGameAlreadyStarted
	}
	if room.HasMember(player.ID) {
		return model.ErrAlreadyMember
	}

	room.Members = append(room.Members, player.ID)
	room.UpdatedAt = c.clock.Now()
	if err := c.storage.SaveRoom(ctx, room); err != nil {
		return err
	}

	c.publish(roomID, model.EventPlayerJoin, player.Name)
	return nil
}

// Start transitions the room from lobby to started. Only the owner may
// start, and only with an even, non-zero number of members.
func (c *Controller) Start(ctx context.Context, roomID model.RoomID, callerID model.PlayerID) error {
	unlock := c.lockRoom(roomID)
	defer unlock()

	room, err := c.storage.GetRoom(ctx, roomID)
	if err != nil {
		return err
	}

	if !room.IsOwner(callerID) {
		return model.ErrNotOwner
	}
	if room.Phase != model.RoomPhaseLobby {
		return model.ErrAlreadyStarted
	}
	if len(room.Members) == 0 || len(room.Members)%2 != 0 {
		return model.ErrUnevenPlayers
	}

	room.Phase = model.RoomPhaseStarted
	room.UpdatedAt = c.clock.Now()
	if err := c.storage.SaveRoom(ctx, room); err != nil {
		return err
	}

	c.logger.Info("game started",
		slog.String("room", string(roomID)),
		slog.Int("players", len(room.Members)))
	c.publish(roomID, model.EventStart, "")
	return nil
}

// Leave removes a player from a room. The owner leaving closes the room
// in any phase; a non-owner leaving a started game stops the game for
// the remaining players without closing the room.
func (c *Controller) Leave(ctx context.Context, roomID model.RoomID, player *model.Player) error {
	unlock := c.lockRoom(roomID)
	defer unlock()

	room, err := c.storage.GetRoom(ctx, roomID)
	if err != nil {
		return err
	}

	// A closed room has no members, so this also rejects any leave
	// after closure.
	if !room.HasMember(player.ID) {
		return model.ErrNotAMember
	}

	if room.IsOwner(player.ID) {
		return c.close(ctx, room)
	}

	room.RemoveMember(player.ID)
	room.UpdatedAt = c.clock.Now()
	if err := c.storage.SaveRoom(ctx, room); err != nil {
		return err
	}

	if room.Phase == model.RoomPhaseStarted {
		c.publish(roomID, model.EventGameStopped, player.Name)
	} else {
		c.publish(roomID, model.EventPlayerLeft, player.Name)
	}
	return nil
}

// close empties the room, marks it terminally closed, delivers
// room-closed to every subscriber and ends the event stream. The
// broadcaster is left behind closed so anyone subscribing afterwards
// sees immediate end-of-stream. Caller holds the room lock.
func (c *Controller) close(ctx context.Context, room *model.Room) error {
	room.Members = nil
	room.Phase = model.RoomPhaseClosed
	room.UpdatedAt = c.clock.Now()
	if err := c.storage.SaveRoom(ctx, room); err != nil {
		return err
	}

	c.publish(room.ID, model.EventRoomClosed, "")
	c.events.Close(room.ID)
	c.dropLock(room.ID)

	c.logger.Info("room closed", slog.String("room", string(room.ID)))
	return nil
}
