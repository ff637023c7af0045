// Package storage provides XDG-compliant storage paths and the operation
// journal for settingsync.
package storage

import (
	"fmt"
	"path/filepath"

	"github.com/adrg/xdg"
	"github.com/spf13/afero"
	"github.com/wizzomafizzo/settingsync/internal/constants"
)

// Manager handles storage operations with filesystem abstraction
type Manager struct {
	fs      afero.Fs
	dataDir string
}

// NewWithDataDir creates a storage manager rooted in dataDir. An empty
// dataDir selects the XDG data directory.
func NewWithDataDir(fs afero.Fs, dataDir string) *Manager {
	return &Manager{fs: fs, dataDir: dataDir}
}

// GetDataDir returns the data directory for settingsync, creating it if necessary
func (m *Manager) GetDataDir() (string, error) {
	dataDir := m.dataDir
	if dataDir == "" {
		dataDir = filepath.Join(xdg.DataHome, constants.AppName)
	}
	err := m.fs.MkdirAll(dataDir, 0o750)
	if err != nil {
		return "", fmt.Errorf("failed to create data directory %s: %w", dataDir, err)
	}
	return dataDir, nil
}

// GetLogPath returns the full path to the settingsync log file
func (m *Manager) GetLogPath() (string, error) {
	dataDir, err := m.GetDataDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(dataDir, constants.LogFilename), nil
}

// GetJournalPath returns the full path to the journal database
func (m *Manager) GetJournalPath() (string, error) {
	dataDir, err := m.GetDataDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(dataDir, constants.JournalFilename), nil
}
