package schedule

import (
	"context"
	"fmt"
	"testing"
	"time"

	"github.com/stretchr/testify/suite"

	"github.com/hurlingham/leaguesync/internal/dependencies/mocks"
	"github.com/hurlingham/leaguesync/internal/model"
	"github.com/hurlingham/leaguesync/internal/notify"
	"github.com/hurlingham/leaguesync/internal/storage/memory"
	"github.com/hurlingham/leaguesync/internal/testutil"
)

type ServiceSuite struct {
	suite.Suite
	ctx     context.Context
	storage *memory.Storage
	service *Service
	availN  int
}

func TestServiceSuite(t *testing.T) {
	suite.Run(t, new(ServiceSuite))
}

func (s *ServiceSuite) SetupTest() {
	s.ctx = context.Background()
	s.storage = memory.New()
	s.availN = 0
	clk := mocks.NewMockClock(time.Date(2024, 5, 1, 9, 0, 0, 0, time.UTC))
	s.service = New(s.storage, clk, notify.NewBroker(testutil.NopLogger()), testutil.NopLogger())

	s.Require().NoError(s.storage.SaveTimeslot(s.ctx, &model.Timeslot{ID: "t1", SlotDate: "2024-05-01", Period: "AM"}))
	s.Require().NoError(s.storage.SaveTimeslot(s.ctx, &model.Timeslot{ID: "t2", SlotDate: "2024-05-01", Period: "PM"}))
}

func (s *ServiceSuite) markAvailable(playerID model.PlayerID, timeslotID model.TimeslotID) {
	s.availN++
	s.Require().NoError(s.storage.InsertAvailability(s.ctx, model.Availability{
		ID:         model.AvailabilityID(fmt.Sprintf("a%d", s.availN)),
		PlayerID:   playerID,
		TimeslotID: timeslotID,
	}))
}

func (s *ServiceSuite) TestPairTimeslot() {
	s.markAvailable("p1", "t1")
	s.markAvailable("p2", "t1")

	match, err := s.service.PairTimeslot(s.ctx, "t1")
	s.Require().NoError(err)
	s.Equal(model.TimeslotID("t1"), match.TimeslotID)
	s.True(match.Involves("p1"))
	s.True(match.Involves("p2"))
	s.NotEqual(match.Player1ID, match.Player2ID)
}

func (s *ServiceSuite) TestPairTimeslotRejectsAlreadyLocked() {
	s.markAvailable("p1", "t1")
	s.markAvailable("p2", "t1")
	_, err := s.service.PairTimeslot(s.ctx, "t1")
	s.Require().NoError(err)

	_, err = s.service.PairTimeslot(s.ctx, "t1")
	s.ErrorIs(err, model.ErrMatchExists)
}

func (s *ServiceSuite) TestPairTimeslotInsufficientPlayers() {
	_, err := s.service.PairTimeslot(s.ctx, "t1")
	s.ErrorIs(err, model.ErrInsufficientPlayers)

	s.markAvailable("p1", "t1")
	_, err = s.service.PairTimeslot(s.ctx, "t1")
	s.ErrorIs(err, model.ErrInsufficientPlayers)
}

func (s *ServiceSuite) TestPairTimeslotIgnoresOtherSlotsAvailability() {
	s.markAvailable("p1", "t1")
	s.markAvailable("p2", "t2")

	_, err := s.service.PairTimeslot(s.ctx, "t1")
	s.ErrorIs(err, model.ErrInsufficientPlayers)
}

func (s *ServiceSuite) TestPairPrefersLeastMatchedPlayers() {
	// p1 and p2 already played once; p3 and p4 have no matches
	s.Require().NoError(s.storage.SaveTimeslot(s.ctx, &model.Timeslot{ID: "t0", SlotDate: "2024-04-24", Period: "AM"}))
	s.Require().NoError(s.storage.SaveMatch(s.ctx, &model.Match{ID: "m0", TimeslotID: "t0", Player1ID: "p1", Player2ID: "p2"}))

	s.markAvailable("p1", "t1")
	s.markAvailable("p2", "t1")
	s.markAvailable("p3", "t1")
	s.markAvailable("p4", "t1")

	match, err := s.service.PairTimeslot(s.ctx, "t1")
	s.Require().NoError(err)
	s.True(match.Involves("p3"))
	s.True(match.Involves("p4"))
}

func (s *ServiceSuite) TestPairAvoidsRematchWhenPossible() {
	s.Require().NoError(s.storage.SaveTimeslot(s.ctx, &model.Timeslot{ID: "t0", SlotDate: "2024-04-24", Period: "AM"}))
	s.Require().NoError(s.storage.SaveMatch(s.ctx, &model.Match{ID: "m0", TimeslotID: "t0", Player1ID: "p1", Player2ID: "p2"}))

	s.markAvailable("p1", "t1")
	s.markAvailable("p2", "t1")
	s.markAvailable("p3", "t1")

	match, err := s.service.PairTimeslot(s.ctx, "t1")
	s.Require().NoError(err)
	s.True(match.Involves("p3"))
}

func (s *ServiceSuite) TestPairAllowsRematchWhenNoAlternative() {
	s.Require().NoError(s.storage.SaveTimeslot(s.ctx, &model.Timeslot{ID: "t0", SlotDate: "2024-04-24", Period: "AM"}))
	s.Require().NoError(s.storage.SaveMatch(s.ctx, &model.Match{ID: "m0", TimeslotID: "t0", Player1ID: "p1", Player2ID: "p2"}))

	s.markAvailable("p1", "t1")
	s.markAvailable("p2", "t1")

	match, err := s.service.PairTimeslot(s.ctx, "t1")
	s.Require().NoError(err)
	s.True(match.Involves("p1"))
	s.True(match.Involves("p2"))
}

func (s *ServiceSuite) TestPairAll() {
	s.markAvailable("p1", "t1")
	s.markAvailable("p2", "t1")
	s.markAvailable("p3", "t2")

	paired, err := s.service.PairAll(s.ctx)
	s.Require().NoError(err)
	s.Require().Len(paired, 1)
	s.Equal(model.TimeslotID("t1"), paired[0].TimeslotID)

	// The sweep is idempotent once a slot is locked
	paired, err = s.service.PairAll(s.ctx)
	s.Require().NoError(err)
	s.Empty(paired)
}

func (s *ServiceSuite) TestUnpairTimeslot() {
	s.markAvailable("p1", "t1")
	s.markAvailable("p2", "t1")
	_, err := s.service.PairTimeslot(s.ctx, "t1")
	s.Require().NoError(err)

	s.Require().NoError(s.service.UnpairTimeslot(s.ctx, "t1"))

	// Unlocked: a fresh pairing succeeds again
	_, err = s.service.PairTimeslot(s.ctx, "t1")
	s.NoError(err)
}

func (s *ServiceSuite) TestUnpairTimeslotNotFound() {
	err := s.service.UnpairTimeslot(s.ctx, "t1")
	s.ErrorIs(err, model.ErrMatchNotFound)
}
