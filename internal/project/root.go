// Package project locates a project's custom editor settings file.
package project

import (
	"errors"
	"fmt"
	"path/filepath"

	"github.com/spf13/afero"
	"github.com/wizzomafizzo/settingsync/internal/constants"
	"github.com/wizzomafizzo/settingsync/internal/filesystem"
)

// ErrCustomNotFound is returned when no custom settings file can be located.
var ErrCustomNotFound = errors.New("custom settings file not found")

// Strategy names accepted by NewResolver.
const (
	StrategyAncestors = "ancestors"
	StrategySibling   = "sibling"
)

// Resolver finds the custom settings file for a starting directory.
type Resolver interface {
	Resolve(startDir string) (string, error)
}

// NewResolver returns the resolver registered under strategy.
func NewResolver(fs afero.Fs, strategy string) (Resolver, error) {
	switch strategy {
	case StrategyAncestors:
		return &AncestorResolver{fs: fs}, nil
	case StrategySibling:
		return &SiblingResolver{fs: fs}, nil
	default:
		return nil, fmt.Errorf("unknown resolve strategy %q: must be one of: %s, %s",
			strategy, StrategyAncestors, StrategySibling)
	}
}

// AncestorResolver walks from the start directory towards the filesystem
// root looking for .vscode/settings.json. The root directory itself is not
// searched.
type AncestorResolver struct {
	fs afero.Fs
}

// NewAncestorResolver creates an AncestorResolver.
func NewAncestorResolver(fs afero.Fs) *AncestorResolver {
	return &AncestorResolver{fs: fs}
}

// Resolve implements Resolver.
func (r *AncestorResolver) Resolve(startDir string) (string, error) {
	currentDir, err := filepath.Abs(startDir)
	if err != nil {
		return "", fmt.Errorf("failed to resolve %s: %w", startDir, err)
	}

	for {
		parentDir := filepath.Dir(currentDir)

		// Stop if we've reached the filesystem root
		if parentDir == currentDir {
			break
		}

		if path, found := customSettingsIn(r.fs, currentDir); found {
			return path, nil
		}

		currentDir = parentDir
	}

	return "", fmt.Errorf("%w above %s", ErrCustomNotFound, startDir)
}

// SiblingResolver only looks in <startDir>/.vscode.
type SiblingResolver struct {
	fs afero.Fs
}

// NewSiblingResolver creates a SiblingResolver.
func NewSiblingResolver(fs afero.Fs) *SiblingResolver {
	return &SiblingResolver{fs: fs}
}

// Resolve implements Resolver.
func (r *SiblingResolver) Resolve(startDir string) (string, error) {
	dir, err := filepath.Abs(startDir)
	if err != nil {
		return "", fmt.Errorf("failed to resolve %s: %w", startDir, err)
	}

	if path, found := customSettingsIn(r.fs, dir); found {
		return path, nil
	}
	return "", fmt.Errorf("%w in %s", ErrCustomNotFound, startDir)
}

// customSettingsIn checks dir/.vscode/settings.json
func customSettingsIn(fs afero.Fs, dir string) (string, bool) {
	path := filepath.Join(dir, constants.VSCodeDir, constants.SettingsFilename)
	return path, filesystem.Exists(fs, path)
}
