package handler

import (
	"encoding/json"
	"net/http"

	"github.com/gorilla/mux"

	"github.com/partyroom/partyroom/internal/api/middleware"
	"github.com/partyroom/partyroom/internal/api/request"
	"github.com/partyroom/partyroom/internal/api/response"
	"github.com/partyroom/partyroom/internal/model"
	"github.com/partyroom/partyroom/internal/services/registry"
	"github.com/partyroom/partyroom/internal/services/room"
)

// RoomHandler handles room-related endpoints
type RoomHandler struct {
	registry       *registry.Service
	roomController *room.Controller
}

// NewRoomHandler creates a new room handler
func NewRoomHandler(registry *registry.Service, roomController *room.Controller) *RoomHandler {
	return &RoomHandler{
		registry:       registry,
		roomController: roomController,
	}
}

// resolveRoom resolves the {room} path variable
func resolveRoom(reg *registry.Service, r *http.Request) (*model.Room, error) {
	return reg.ResolveRoom(r.Context(), mux.Vars(r)["room"])
}

// Create handles POST /api/v1/rooms
func (h *RoomHandler) Create(w http.ResponseWriter, r *http.Request) {
	player := middleware.MustGetPlayer(r.Context())

	var req request.CreateRoomRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		WriteError(w, NewInvalidRequestError("invalid request body"))
		return
	}

	if len(req.RoomName) < minNameLength {
		WriteError(w, NewInvalidRequestError("roomName must be at least 2 characters"))
		return
	}

	created, err := h.registry.CreateRoom(r.Context(), req.RoomName, player)
	if err != nil {
		WriteError(w, err)
		return
	}

	http.SetCookie(w, &http.Cookie{
		Name:     "room",
		Value:    string(created.ID),
		Path:     "/",
		HttpOnly: true,
		SameSite: http.SameSiteStrictMode,
	})

	response.JSON(w, http.StatusCreated, response.RoomFromModel(created, []*model.Player{player}))
}

// List handles GET /api/v1/rooms
func (h *RoomHandler) List(w http.ResponseWriter, r *http.Request) {
	rooms, err := h.registry.ListRooms(r.Context())
	if err != nil {
		WriteError(w, err)
		return
	}

	out := make([]response.RoomSummary, 0, len(rooms))
	for _, rm := range rooms {
		out = append(out, response.RoomSummaryFromModel(rm))
	}
	response.JSON(w, http.StatusOK, out)
}

// Get handles GET /api/v1/rooms/{room}
func (h *RoomHandler) Get(w http.ResponseWriter, r *http.Request) {
	rm, err := resolveRoom(h.registry, r)
	if err != nil {
		WriteError(w, err)
		return
	}

	members, err := h.registry.MemberPlayers(r.Context(), rm)
	if err != nil {
		WriteError(w, err)
		return
	}

	response.JSON(w, http.StatusOK, response.RoomFromModel(rm, members))
}

// Join handles POST /api/v1/rooms/{room}/join
func (h *RoomHandler) Join(w http.ResponseWriter, r *http.Request) {
	player := middleware.MustGetPlayer(r.Context())

	rm, err := resolveRoom(h.registry, r)
	if err != nil {
		WriteError(w, err)
		return
	}

	if err := h.roomController.Join(r.Context(), rm.ID, player); err != nil {
		WriteError(w, err)
		return
	}

	response.JSON(w, http.StatusOK, response.JoinResponse{Room: rm.Name})
}

// Leave handles POST /api/v1/rooms/{room}/leave
func (h *RoomHandler) Leave(w http.ResponseWriter, r *http.Request) {
	player := middleware.MustGetPlayer(r.Context())

	rm, err := resolveRoom(h.registry, r)
	if err != nil {
		WriteError(w, err)
		return
	}

	if err := h.roomController.Leave(r.Context(), rm.ID, player); err != nil {
		WriteError(w, err)
		return
	}

	response.NoContent(w)
}

// Start handles POST /api/v1/rooms/{room}/start
func (h *RoomHandler) Start(w http.ResponseWriter, r *http.Request) {
	player := middleware.MustGetPlayer(r.Context())

	rm, err := resolveRoom(h.registry, r)
	if err != nil {
		WriteError(w, err)
		return
	}

	if err := h.roomController.Start(r.Context(), rm.ID, player.ID); err != nil {
		WriteError(w, err)
		return
	}

	response.NoContent(w)
}
