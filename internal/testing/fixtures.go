package testutil

import (
	"path/filepath"
	"testing"

	"github.com/spf13/afero"
)

// SettingsDir describes a directory holding the three settings files.
type SettingsDir struct {
	Fs  afero.Fs
	Dir string
}

// NewSettingsDir creates dir on fs.
func NewSettingsDir(t *testing.T, fs afero.Fs, dir string) *SettingsDir {
	t.Helper()
	if err := fs.MkdirAll(dir, 0o750); err != nil {
		t.Fatalf("Failed to create %s: %v", dir, err)
	}
	return &SettingsDir{Fs: fs, Dir: dir}
}

// Path joins name onto the directory.
func (s *SettingsDir) Path(name string) string {
	return filepath.Join(s.Dir, name)
}

// Write stores content under name, creating parent directories.
func (s *SettingsDir) Write(t *testing.T, name, content string) string {
	t.Helper()
	path := s.Path(name)
	if err := s.Fs.MkdirAll(filepath.Dir(path), 0o750); err != nil {
		t.Fatalf("Failed to create directory for %s: %v", path, err)
	}
	if err := afero.WriteFile(s.Fs, path, []byte(content), 0o600); err != nil {
		t.Fatalf("Failed to write %s: %v", path, err)
	}
	return path
}

// Read returns the content stored under name.
func (s *SettingsDir) Read(t *testing.T, name string) string {
	t.Helper()
	data, err := afero.ReadFile(s.Fs, s.Path(name))
	if err != nil {
		t.Fatalf("Failed to read %s: %v", name, err)
	}
	return string(data)
}

// Exists reports whether name exists.
func (s *SettingsDir) Exists(t *testing.T, name string) bool {
	t.Helper()
	exists, err := afero.Exists(s.Fs, s.Path(name))
	if err != nil {
		t.Fatalf("Failed to stat %s: %v", name, err)
	}
	return exists
}
