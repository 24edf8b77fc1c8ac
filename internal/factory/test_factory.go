package factory

import (
	"time"

	"github.com/hurlingham/leaguesync/internal/dependencies/mocks"
	"github.com/hurlingham/leaguesync/internal/notify"
	"github.com/hurlingham/leaguesync/internal/reconcile"
	"github.com/hurlingham/leaguesync/internal/storage/memory"
	"github.com/hurlingham/leaguesync/internal/testutil"
)

// TestApp extends App with test-specific helpers
type TestApp struct {
	*App

	// Mocks for test control
	MockClock  *mocks.MockClock
	MockRandom *mocks.MockRandom
}

// NewTestApp creates an App configured for testing with mocked dependencies
func NewTestApp() *TestApp {
	store := memory.New()
	broker := notify.NewBroker(testutil.NopLogger())
	mockClock := mocks.NewMockClock(time.Date(2024, 5, 1, 12, 0, 0, 0, time.UTC))
	mockRandom := mocks.NewMockRandom()

	app := newWithDependencies(store, broker, mockClock, mockRandom, reconcile.Config{}, testutil.NopLogger())

	return &TestApp{
		App:        app,
		MockClock:  mockClock,
		MockRandom: mockRandom,
	}
}
