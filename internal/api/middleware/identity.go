package middleware

import (
	"context"
	"net/http"
	"strings"

	"github.com/hurlingham/leaguesync/internal/identity"
	"github.com/hurlingham/leaguesync/internal/model"
	"github.com/hurlingham/leaguesync/internal/reconcile"
)

type contextKey string

const playerContextKey contextKey = "player"

// Identity resolves the share token carried in the request against the
// current snapshot and, when it matches a player, adds that player to
// the request context. An absent or unknown token is not an error: the
// request proceeds anonymously and mutation handlers reject it
// themselves. Resolution runs per request, so a token that failed
// before the roster was fetched resolves as soon as a snapshot
// containing its player lands.
func Identity(reconciler *reconcile.Reconciler) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			token := extractToken(r)
			if token != "" {
				if player, ok := identity.ResolveSnapshot(token, reconciler.Snapshot()); ok {
					ctx := context.WithValue(r.Context(), playerContextKey, player)
					r = r.WithContext(ctx)
				}
			}
			next.ServeHTTP(w, r)
		})
	}
}

// extractToken extracts the share token from the request. The `t`
// query parameter is the personal-link form; a Bearer header is
// accepted for API clients.
func extractToken(r *http.Request) string {
	if token := r.URL.Query().Get("t"); token != "" {
		return token
	}

	authHeader := r.Header.Get("Authorization")
	if strings.HasPrefix(authHeader, "Bearer ") {
		return strings.TrimPrefix(authHeader, "Bearer ")
	}

	return ""
}

// GetPlayer returns the resolved player from the request context
func GetPlayer(ctx context.Context) (model.Player, bool) {
	player, ok := ctx.Value(playerContextKey).(model.Player)
	return player, ok
}
