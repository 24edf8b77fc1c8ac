// Package identity resolves a share token carried in a player's
// personal link to their Player record. Resolution is a pure lookup
// over the current snapshot: it is re-run after every snapshot
// replacement, because a token that failed to resolve against an
// earlier snapshot may resolve once the roster has been fetched.
package identity

import (
	"github.com/hurlingham/leaguesync/internal/model"
)

// Resolve returns the player whose share token equals token, compared
// as strings. An empty token or a token with no match is a normal
// "unresolved" outcome, not an error.
func Resolve(token string, players []model.Player) (model.Player, bool) {
	if token == "" {
		return model.Player{}, false
	}
	for _, p := range players {
		if p.ShareToken != "" && p.ShareToken == token {
			return p, true
		}
	}
	return model.Player{}, false
}

// ResolveSnapshot resolves a token against the snapshot's player collection
func ResolveSnapshot(token string, snap *model.Snapshot) (model.Player, bool) {
	if snap == nil {
		return model.Player{}, false
	}
	return Resolve(token, snap.Players)
}
