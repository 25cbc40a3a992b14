package middleware

import (
	"context"
	"errors"
	"net/http"

	"github.com/partyroom/partyroom/internal/api/apierr"
	"github.com/partyroom/partyroom/internal/model"
	"github.com/partyroom/partyroom/internal/services/registry"
)

type contextKey string

const playerContextKey contextKey = "player"

// PlayerHeader carries the player token; a "player" cookie is accepted
// as a fallback for browser clients.
const (
	PlayerHeader = "X-Player"
	PlayerCookie = "player"
)

// Identity resolves the caller's player token into a Player and puts it
// on the request context. Malformed tokens are rejected before lookup;
// well-formed tokens with no live record are rejected as unauthorized.
func Identity(reg *registry.Service) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			token := extractPlayerToken(r)
			if token == "" {
				apierr.WriteError(w, apierr.NewUnauthorizedError())
				return
			}

			player, err := reg.ResolvePlayer(r.Context(), token)
			if err != nil {
				if errors.Is(err, model.ErrPlayerNotFound) {
					apierr.WriteError(w, apierr.NewUnauthorizedError())
					return
				}
				apierr.WriteError(w, err)
				return
			}

			ctx := context.WithValue(r.Context(), playerContextKey, player)
			next.ServeHTTP(w, r.WithContext(ctx))
		})
	}
}

// extractPlayerToken extracts the player token from the request
func extractPlayerToken(r *http.Request) string {
	if token := r.Header.Get(PlayerHeader); token != "" {
		return token
	}
	if cookie, err := r.Cookie(PlayerCookie); err == nil {
		return cookie.Value
	}
	return ""
}

// GetPlayer returns the resolved player from the request context
func GetPlayer(ctx context.Context) *model.Player {
	player, _ := ctx.Value(playerContextKey).(*model.Player)
	return player
}

// MustGetPlayer returns the resolved player or panics
func MustGetPlayer(ctx context.Context) *model.Player {
	player := GetPlayer(ctx)
	if player == nil {
		panic("no player in context - identity middleware not applied?")
	}
	return player
}
