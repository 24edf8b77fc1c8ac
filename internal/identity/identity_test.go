package identity

import (
	"testing"

	"github.com/stretchr/testify/suite"

	"github.com/hurlingham/leaguesync/internal/model"
)

type IdentitySuite struct {
	suite.Suite
	players []model.Player
}

func TestIdentitySuite(t *testing.T) {
	suite.Run(t, new(IdentitySuite))
}

func (s *IdentitySuite) SetupTest() {
	s.players = []model.Player{
		{ID: "p1", Name: "Alice", ShareToken: "tok1"},
		{ID: "p2", Name: "Bob", ShareToken: "tok2"},
	}
}

func (s *IdentitySuite) TestResolveMatchingToken() {
	player, ok := Resolve("tok1", s.players)
	s.True(ok)
	s.Equal(model.PlayerID("p1"), player.ID)
	s.Equal("Alice", player.Name)
}

func (s *IdentitySuite) TestResolveUnknownToken() {
	_, ok := Resolve("nope", s.players)
	s.False(ok)
}

func (s *IdentitySuite) TestResolveEmptyToken() {
	_, ok := Resolve("", s.players)
	s.False(ok)
}

func (s *IdentitySuite) TestResolveEmptyTokenNeverMatchesEmptyShareToken() {
	players := []model.Player{{ID: "p3", Name: "No Token"}}
	_, ok := Resolve("", players)
	s.False(ok)
}

func (s *IdentitySuite) TestResolveAgainstEmptyCollection() {
	_, ok := Resolve("tok1", nil)
	s.False(ok)
}

func (s *IdentitySuite) TestResolveIsDeterministic() {
	first, ok1 := Resolve("tok2", s.players)
	second, ok2 := Resolve("tok2", s.players)
	s.True(ok1)
	s.True(ok2)
	s.Equal(first, second)
}

func (s *IdentitySuite) TestResolveSnapshot() {
	snap := &model.Snapshot{Players: s.players}
	player, ok := ResolveSnapshot("tok2", snap)
	s.True(ok)
	s.Equal(model.PlayerID("p2"), player.ID)
}

func (s *IdentitySuite) TestResolveSnapshotNil() {
	_, ok := ResolveSnapshot("tok1", nil)
	s.False(ok)
}
