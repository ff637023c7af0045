package project

import (
	"path/filepath"
	"testing"

	"github.com/spf13/afero"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func writeCustom(t *testing.T, fs afero.Fs, dir string) string {
	t.Helper()
	path := filepath.Join(dir, ".vscode", "settings.json")
	require.NoError(t, afero.WriteFile(fs, path, []byte(`{"tasks":{}}`), 0o600))
	return path
}

func TestAncestorResolver(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name     string
		custom   string
		startDir string
		want     string
	}{
		{
			name:     "found in start directory",
			custom:   "/work/proj",
			startDir: "/work/proj",
			want:     "/work/proj/.vscode/settings.json",
		},
		{
			name:     "found in ancestor",
			custom:   "/work/proj",
			startDir: "/work/proj/src/lib",
			want:     "/work/proj/.vscode/settings.json",
		},
		{
			name:     "nearest wins",
			custom:   "/work/proj/src",
			startDir: "/work/proj/src/lib",
			want:     "/work/proj/src/.vscode/settings.json",
		},
	}

	for _, tt := range tests {
		tt := tt
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			fs := afero.NewMemMapFs()
			writeCustom(t, fs, tt.custom)
			if tt.name == "nearest wins" {
				writeCustom(t, fs, "/work/proj")
			}

			path, err := NewAncestorResolver(fs).Resolve(tt.startDir)
			require.NoError(t, err)
			assert.Equal(t, tt.want, path)
		})
	}
}

func TestAncestorResolver_NotFound(t *testing.T) {
	t.Parallel()

	fs := afero.NewMemMapFs()
	require.NoError(t, fs.MkdirAll("/work/proj/src", 0o750))

	_, err := NewAncestorResolver(fs).Resolve("/work/proj/src")
	assert.ErrorIs(t, err, ErrCustomNotFound)
}

func TestAncestorResolver_SkipsFilesystemRoot(t *testing.T) {
	t.Parallel()

	fs := afero.NewMemMapFs()
	writeCustom(t, fs, "/")

	_, err := NewAncestorResolver(fs).Resolve("/work")
	assert.ErrorIs(t, err, ErrCustomNotFound)
}

func TestSiblingResolver(t *testing.T) {
	t.Parallel()

	fs := afero.NewMemMapFs()
	writeCustom(t, fs, "/work/proj")

	path, err := NewSiblingResolver(fs).Resolve("/work/proj")
	require.NoError(t, err)
	assert.Equal(t, "/work/proj/.vscode/settings.json", path)

	_, err = NewSiblingResolver(fs).Resolve("/work/proj/src")
	assert.ErrorIs(t, err, ErrCustomNotFound, "sibling resolver never walks upwards")
}

func TestNewResolver(t *testing.T) {
	t.Parallel()

	fs := afero.NewMemMapFs()

	resolver, err := NewResolver(fs, StrategyAncestors)
	require.NoError(t, err)
	assert.IsType(t, &AncestorResolver{}, resolver)

	resolver, err = NewResolver(fs, StrategySibling)
	require.NoError(t, err)
	assert.IsType(t, &SiblingResolver{}, resolver)

	_, err = NewResolver(fs, "nearest")
	assert.ErrorContains(t, err, "unknown resolve strategy")
}
