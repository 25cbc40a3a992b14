package handler

import (
	"crypto/subtle"
	"encoding/json"
	"net/http"
	"strings"

	"github.com/partyroom/partyroom/internal/api/middleware"
	"github.com/partyroom/partyroom/internal/api/request"
	"github.com/partyroom/partyroom/internal/api/response"
	"github.com/partyroom/partyroom/internal/services/registry"
)

// minNameLength is the validation policy for display and room names
const minNameLength = 2

// PlayerHandler handles player-related endpoints
type PlayerHandler struct {
	registry   *registry.Service
	adminToken string
}

// NewPlayerHandler creates a new player handler. adminToken guards the
// player directory endpoint; empty disables it.
func NewPlayerHandler(registry *registry.Service, adminToken string) *PlayerHandler {
	return &PlayerHandler{
		registry:   registry,
		adminToken: adminToken,
	}
}

// Register handles POST /api/v1/players/register
func (h *PlayerHandler) Register(w http.ResponseWriter, r *http.Request) {
	var req request.RegisterRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		WriteError(w, NewInvalidRequestError("invalid request body"))
		return
	}

	if len(req.Name) < minNameLength {
		WriteError(w, NewInvalidRequestError("name must be at least 2 characters"))
		return
	}

	player, err := h.registry.RegisterPlayer(r.Context(), req.Name)
	if err != nil {
		WriteError(w, err)
		return
	}

	// Cookie for browser clients; API clients use the X-Player header
	http.SetCookie(w, &http.Cookie{
		Name:     middleware.PlayerCookie,
		Value:    string(player.ID),
		Path:     "/",
		HttpOnly: true,
		SameSite: http.SameSiteStrictMode,
	})

	response.JSON(w, http.StatusCreated, response.PlayerFromModel(player))
}

// Me handles GET /api/v1/players/me
func (h *PlayerHandler) Me(w http.ResponseWriter, r *http.Request) {
	player := middleware.MustGetPlayer(r.Context())
	response.JSON(w, http.StatusOK, response.PlayerFromModel(player))
}

// List handles GET /api/v1/players
func (h *PlayerHandler) List(w http.ResponseWriter, r *http.Request) {
	if !h.authorizeAdmin(r) {
		WriteError(w, NewUnauthorizedError())
		return
	}

	players, err := h.registry.ListPlayers(r.Context())
	if err != nil {
		WriteError(w, err)
		return
	}

	out := make([]response.Player, 0, len(players))
	for _, p := range players {
		out = append(out, response.PlayerFromModel(p))
	}
	response.JSON(w, http.StatusOK, out)
}

// authorizeAdmin checks the bearer token guarding the player directory
func (h *PlayerHandler) authorizeAdmin(r *http.Request) bool {
	if h.adminToken == "" {
		return false
	}
	auth := r.Header.Get("Authorization")
	if !strings.HasPrefix(auth, "Bearer ") {
		return false
	}
	token := strings.TrimPrefix(auth, "Bearer ")
	return subtle.ConstantTimeCompare([]byte(token), []byte(h.adminToken)) == 1
}
