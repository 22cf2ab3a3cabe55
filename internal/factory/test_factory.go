package factory

import (
	"time"

	"github.com/transferhub/transferhub-go/internal/dependencies/mocks"
	"github.com/transferhub/transferhub-go/internal/services/auth"
	"github.com/transferhub/transferhub-go/internal/storage/memory"
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
	mockClock := mocks.NewMockClock(time.Date(2024, 6, 1, 12, 0, 0, 0, time.UTC))

	authCfg := auth.Config{
		TokenSecret: []byte("test-secret"),
		TokenTTL:    30 * time.Minute,
	}

	app := newWithDependencies(store, mockClock, authCfg)

	return &TestApp{
		App:       app,
		MockClock: mockClock,
	}
}
