package factory

import (
	"time"

	"github.com/jterhune/watchvault/internal/dependencies/mocks"
	"github.com/jterhune/watchvault/internal/services/auth"
	"github.com/jterhune/watchvault/internal/storage/memory"
	"github.com/jterhune/watchvault/internal/testutil"
)

// TestApp extends App with test-specific helpers
type TestApp struct {
	*App

	// Mocks for test control
	MockClock *mocks.MockClock
}

// NewTestApp creates an App configured for testing with mocked dependencies
func NewTestApp() *TestApp {
	store := memory.New()
	mockClock := mocks.NewMockClock(time.Date(2024, 1, 1, 12, 0, 0, 0, time.UTC))

	authCfg := auth.Config{TokenSecret: "test-secret"}
	app := newWithDependencies(store, mockClock, authCfg, testutil.NopLogger())

	return &TestApp{
		App:       app,
		MockClock: mockClock,
	}
}
