package views

import (
	"testing"

	"github.com/stretchr/testify/suite"

	"github.com/hurlingham/leaguesync/internal/model"
)

type ViewsSuite struct {
	suite.Suite
	snap *model.Snapshot
}

func TestViewsSuite(t *testing.T) {
	suite.Run(t, new(ViewsSuite))
}

func (s *ViewsSuite) SetupTest() {
	s.snap = &model.Snapshot{
		Players: []model.Player{
			{ID: "p1", Name: "Alice", ShareToken: "tok1"},
			{ID: "p2", Name: "Bob", ShareToken: "tok2"},
			{ID: "p3", Name: "Carol", ShareToken: "tok3"},
		},
		Timeslots: []model.Timeslot{
			{ID: "t1", SlotDate: "2024-05-01", Period: "AM"},
			{ID: "t2", SlotDate: "2024-05-01", Period: "PM"},
			{ID: "t3", SlotDate: "2024-05-08", Period: "AM"},
		},
		Availability: []model.Availability{
			{ID: "a1", PlayerID: "p1", TimeslotID: "t1"},
			{ID: "a2", PlayerID: "p1", TimeslotID: "t3"},
			{ID: "a3", PlayerID: "p2", TimeslotID: "t1"},
		},
		Matches: []model.Match{
			{ID: "m1", TimeslotID: "t2", Player1ID: "p1", Player2ID: "p2"},
		},
	}
}

// GroupedTimeslots

func (s *ViewsSuite) TestGroupedTimeslotsPartitionsCollection() {
	groups := GroupedTimeslots(s.snap)

	s.Len(groups, 2)
	total := 0
	seen := map[model.TimeslotID]int{}
	for _, g := range groups {
		for _, ts := range g.Timeslots {
			s.Equal(g.Date, ts.SlotDate)
			seen[ts.ID]++
			total++
		}
	}
	s.Equal(len(s.snap.Timeslots), total)
	for id, count := range seen {
		s.Equal(1, count, "timeslot %s appears in exactly one bucket", id)
	}
}

func (s *ViewsSuite) TestGroupedTimeslotsOrdering() {
	groups := GroupedTimeslots(s.snap)

	s.Equal("2024-05-01", groups[0].Date)
	s.Equal("2024-05-08", groups[1].Date)
	s.Equal(model.TimeslotID("t1"), groups[0].Timeslots[0].ID)
	s.Equal(model.TimeslotID("t2"), groups[0].Timeslots[1].ID)
}

func (s *ViewsSuite) TestGroupedTimeslotsSortsUnorderedInput() {
	s.snap.Timeslots = []model.Timeslot{
		{ID: "t3", SlotDate: "2024-05-08", Period: "AM"},
		{ID: "t2", SlotDate: "2024-05-01", Period: "PM"},
		{ID: "t1", SlotDate: "2024-05-01", Period: "AM"},
	}

	groups := GroupedTimeslots(s.snap)
	s.Equal("2024-05-01", groups[0].Date)
	s.Equal(model.TimeslotID("t1"), groups[0].Timeslots[0].ID)
	s.Equal(model.TimeslotID("t2"), groups[0].Timeslots[1].ID)
}

func (s *ViewsSuite) TestGroupedTimeslotsEmptySnapshot() {
	groups := GroupedTimeslots(&model.Snapshot{})
	s.Empty(groups)
}

// MatchForTimeslot

func (s *ViewsSuite) TestMatchForTimeslotFound() {
	match, ok := MatchForTimeslot(s.snap, "t2")
	s.True(ok)
	s.Equal(model.MatchID("m1"), match.ID)
}

func (s *ViewsSuite) TestMatchForTimeslotNotFound() {
	_, ok := MatchForTimeslot(s.snap, "t1")
	s.False(ok)
}

func (s *ViewsSuite) TestMatchForTimeslotInvariantBreachReturnsOne() {
	// An upstream breach (two matches for one timeslot) must not make
	// the view unusable
	s.snap.Matches = append(s.snap.Matches, model.Match{ID: "m2", TimeslotID: "t2", Player1ID: "p2", Player2ID: "p3"})

	match, ok := MatchForTimeslot(s.snap, "t2")
	s.True(ok)
	s.Equal(model.MatchID("m1"), match.ID)
}

// MyAvailabilityIndex

func (s *ViewsSuite) TestMyAvailabilityIndex() {
	index := MyAvailabilityIndex(s.snap, "p1")
	s.Len(index, 2)
	s.Equal(model.AvailabilityID("a1"), index["t1"])
	s.Equal(model.AvailabilityID("a2"), index["t3"])
}

func (s *ViewsSuite) TestMyAvailabilityIndexUnresolvedIdentity() {
	index := MyAvailabilityIndex(s.snap, "")
	s.Empty(index)
}

func (s *ViewsSuite) TestMyAvailabilityIndexOtherPlayersExcluded() {
	index := MyAvailabilityIndex(s.snap, "p3")
	s.Empty(index)
}

// MyConfirmedMatches

func (s *ViewsSuite) TestMyConfirmedMatches() {
	matches := MyConfirmedMatches(s.snap, "p1")

	s.Require().Len(matches, 1)
	s.Equal(model.MatchID("m1"), matches[0].Match.ID)
	s.Equal("Bob", matches[0].OpponentName)
	s.Require().NotNil(matches[0].Timeslot)
	s.Equal(model.TimeslotID("t2"), matches[0].Timeslot.ID)
}

func (s *ViewsSuite) TestMyConfirmedMatchesAsPlayer2() {
	matches := MyConfirmedMatches(s.snap, "p2")
	s.Require().Len(matches, 1)
	s.Equal("Alice", matches[0].OpponentName)
}

func (s *ViewsSuite) TestMyConfirmedMatchesNoneForUninvolved() {
	s.Empty(MyConfirmedMatches(s.snap, "p3"))
}

func (s *ViewsSuite) TestMyConfirmedMatchesUnresolvedIdentity() {
	s.Empty(MyConfirmedMatches(s.snap, ""))
}

func (s *ViewsSuite) TestMyConfirmedMatchesDanglingOpponent() {
	s.snap.Matches = []model.Match{
		{ID: "m9", TimeslotID: "t1", Player1ID: "p1", Player2ID: "ghost"},
	}

	matches := MyConfirmedMatches(s.snap, "p1")
	s.Require().Len(matches, 1)
	s.Empty(matches[0].OpponentName)
}

func (s *ViewsSuite) TestMyConfirmedMatchesDanglingTimeslot() {
	s.snap.Matches = []model.Match{
		{ID: "m9", TimeslotID: "missing", Player1ID: "p1", Player2ID: "p2"},
	}

	matches := MyConfirmedMatches(s.snap, "p1")
	s.Require().Len(matches, 1)
	s.Nil(matches[0].Timeslot)
	s.Equal("Bob", matches[0].OpponentName)
}

func (s *ViewsSuite) TestMyConfirmedMatchesOrderedByTimeslot() {
	s.snap.Matches = []model.Match{
		{ID: "m-late", TimeslotID: "t3", Player1ID: "p1", Player2ID: "p2"},
		{ID: "m-early", TimeslotID: "t1", Player1ID: "p3", Player2ID: "p1"},
	}

	matches := MyConfirmedMatches(s.snap, "p1")
	s.Require().Len(matches, 2)
	s.Equal(model.MatchID("m-early"), matches[0].Match.ID)
	s.Equal(model.MatchID("m-late"), matches[1].Match.ID)
}

// TimeslotStatus

func (s *ViewsSuite) TestTimeslotStatusOpen() {
	s.Equal(SlotOpen, TimeslotStatus(s.snap, "p3", "t1"))
}

func (s *ViewsSuite) TestTimeslotStatusMine() {
	s.Equal(SlotMine, TimeslotStatus(s.snap, "p1", "t1"))
}

func (s *ViewsSuite) TestTimeslotStatusLocked() {
	s.Equal(SlotLocked, TimeslotStatus(s.snap, "p3", "t2"))
}

func (s *ViewsSuite) TestTimeslotStatusLockedMine() {
	s.Equal(SlotLockedMine, TimeslotStatus(s.snap, "p1", "t2"))
}

func (s *ViewsSuite) TestTimeslotStatusLockWinsOverAvailability() {
	// p1 has an availability row on t1; a match arriving for t1 must
	// report locked, not mine
	s.snap.Matches = append(s.snap.Matches, model.Match{ID: "m2", TimeslotID: "t1", Player1ID: "p2", Player2ID: "p3"})
	s.Equal(SlotLocked, TimeslotStatus(s.snap, "p1", "t1"))
}

func (s *ViewsSuite) TestTimeslotStatusAnonymousViewer() {
	s.Equal(SlotOpen, TimeslotStatus(s.snap, "", "t1"))
	s.Equal(SlotLocked, TimeslotStatus(s.snap, "", "t2"))
}
