package events

import (
	"log/slog"
	"sync"

	"github.com/partyroom/partyroom/internal/model"
)

// Manager owns the broadcasters for all live rooms
type Manager struct {
	mu           sync.RWMutex
	broadcasters map[model.RoomID]*Broadcaster
	logger       *slog.Logger
}

// NewManager creates a new Manager
func NewManager(logger *slog.Logger) *Manager {
	return &Manager{
		broadcasters: make(map[model.RoomID]*Broadcaster),
		logger:       logger.With(slog.String("component", "events")),
	}
}

// GetOrCreate returns the broadcaster for a room, creating one if it
// doesn't exist
func (m *Manager) GetOrCreate(roomID model.RoomID) *Broadcaster {
	m.mu.Lock()
	defer m.mu.Unlock()

	if b, ok := m.broadcasters[roomID]; ok {
		return b
	}

	b := NewBroadcaster(roomID, m.logger)
	m.broadcasters[roomID] = b
	return b
}

// Get returns the broadcaster for a room, or nil if it doesn't exist
func (m *Manager) Get(roomID model.RoomID) *Broadcaster {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return m.broadcasters[roomID]
}

// Close ends a room's event stream, closing every subscription. The
// broadcaster stays registered as a closed tombstone, so a late
// subscriber gets a pre-closed channel instead of a fresh stream
// nothing will ever close. Tombstones are retained like closed room
// records are.
func (m *Manager) Close(roomID model.RoomID) {
	m.mu.Lock()
	defer m.mu.Unlock()

	b, ok := m.broadcasters[roomID]
	if !ok {
		b = NewBroadcaster(roomID, m.logger)
		m.broadcasters[roomID] = b
	}
	b.Close()
	m.logger.Info("broadcaster closed", slog.String("room", string(roomID)))
}
