package cli

import (
	"bytes"
	"context"
	"sync"
	"testing"

	"github.com/spf13/afero"
	"github.com/stretchr/testify/require"
	"github.com/wizzomafizzo/settingsync/internal/config"
	"github.com/wizzomafizzo/settingsync/internal/storage"
	testutil "github.com/wizzomafizzo/settingsync/internal/testing"
)

const toolDir = "/tool/.vscode"

// memoryJournal is an in-memory Recorder
type memoryJournal struct {
	err     error
	entries []storage.Entry
	mu      sync.Mutex
}

func (m *memoryJournal) Record(
	_ context.Context, settingsPath, operation string, state storage.State,
) (*storage.Entry, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.err != nil {
		return nil, m.err
	}
	entry := storage.Entry{SettingsPath: settingsPath, Operation: operation, State: state}
	m.entries = append(m.entries, entry)
	return &entry, nil
}

func (m *memoryJournal) Last(_ context.Context, _ string) (storage.State, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.err != nil {
		return storage.StateUnmodified, m.err
	}
	if len(m.entries) == 0 {
		return storage.StateUnmodified, nil
	}
	return m.entries[len(m.entries)-1].State, nil
}

func (m *memoryJournal) states() []storage.State {
	m.mu.Lock()
	defer m.mu.Unlock()
	states := make([]storage.State, 0, len(m.entries))
	for _, entry := range m.entries {
		states = append(states, entry.State)
	}
	return states
}

type testEnv struct {
	app     *App
	dir     *testutil.SettingsDir
	out     *bytes.Buffer
	journal *memoryJournal
	ctx     context.Context
	logs    func() string
}

func newTestEnv(t *testing.T, mutate ...func(*config.Config)) *testEnv {
	t.Helper()

	fs := afero.NewMemMapFs()
	cfg := config.Default(toolDir)
	for _, m := range mutate {
		m(cfg)
	}

	out := &bytes.Buffer{}
	journal := &memoryJournal{}
	app, err := NewApp(Options{Config: cfg, Fs: fs, Out: out, Journal: journal})
	require.NoError(t, err)

	ctx, logs := testutil.NewTestContext(t)

	return &testEnv{
		app:     app,
		dir:     testutil.NewSettingsDir(t, fs, toolDir),
		out:     out,
		journal: journal,
		ctx:     ctx,
		logs:    logs,
	}
}
