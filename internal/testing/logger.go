// Package testutil holds helpers shared by settingsync tests.
package testutil

import (
	"context"
	"io"
	"strings"
	"sync"
	"testing"

	"github.com/rs/zerolog" //nolint:depguard // test utilities build loggers directly
	"github.com/rs/zerolog/log"
)

var loggerInitOnce sync.Once

// InitTestLogger silences the global logger once per test binary.
func InitTestLogger(t *testing.T) {
	t.Helper()
	loggerInitOnce.Do(func() {
		log.Logger = zerolog.New(io.Discard)
	})
}

// NewTestContext returns a context carrying a debug-level logger and a
// function that returns everything logged so far.
func NewTestContext(t *testing.T) (ctx context.Context, getLogOutput func() string) {
	t.Helper()

	var (
		mu        sync.Mutex
		logOutput strings.Builder
	)
	writer := writerFunc(func(p []byte) (int, error) {
		mu.Lock()
		defer mu.Unlock()
		return logOutput.Write(p) //nolint:wrapcheck // strings.Builder never fails
	})

	logger := zerolog.New(writer).With().
		Timestamp().
		Str("project_id", "test-project").
		Logger().
		Level(zerolog.DebugLevel)

	return logger.WithContext(context.Background()), func() string {
		mu.Lock()
		defer mu.Unlock()
		return logOutput.String()
	}
}

type writerFunc func(p []byte) (int, error)

func (f writerFunc) Write(p []byte) (int, error) {
	return f(p)
}
