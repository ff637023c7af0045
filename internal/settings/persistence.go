package settings

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"strings"

	"github.com/spf13/afero"
	"github.com/wizzomafizzo/settingsync/internal/filesystem"
)

// DefaultIndent is the number of spaces used when writing settings files.
const DefaultIndent = 2

// LoadFromFileWithFS loads a settings document from a JSON file using the provided filesystem.
func LoadFromFileWithFS(fs afero.Fs, filename string) (*Document, error) {
	data, err := afero.ReadFile(fs, filename)
	if err != nil {
		if filesystem.IsNotExist(err) {
			return nil, fmt.Errorf("%w: %s: %w", ErrMissingFile, filename, err)
		}
		return nil, fmt.Errorf("failed to read settings file %s: %w", filename, err)
	}

	return Parse(filename, data)
}

// Parse decodes data as a settings document. Numbers keep their original text.
func Parse(filename string, data []byte) (*Document, error) {
	decoder := json.NewDecoder(bytes.NewReader(data))
	decoder.UseNumber()

	var values map[string]any
	if err := decoder.Decode(&values); err != nil {
		return nil, &MalformedJSONError{Path: filename, Err: err}
	}
	if values == nil {
		return nil, &MalformedJSONError{Path: filename, Err: errors.New("root is not a JSON object")}
	}
	if decoder.More() {
		return nil, &MalformedJSONError{Path: filename, Err: errors.New("unexpected data after top-level object")}
	}

	return NewDocument(values), nil
}

// Marshal pretty-prints a document with indent spaces and a trailing newline.
func Marshal(doc *Document, indent int) ([]byte, error) {
	var buf bytes.Buffer
	encoder := json.NewEncoder(&buf)
	encoder.SetEscapeHTML(false)
	encoder.SetIndent("", strings.Repeat(" ", indent))

	if err := encoder.Encode(doc.values); err != nil {
		return nil, fmt.Errorf("failed to marshal settings to JSON: %w", err)
	}
	return buf.Bytes(), nil
}

// SaveToFileWithFS saves a settings document to a JSON file using the provided filesystem.
func SaveToFileWithFS(fs afero.Fs, doc *Document, filename string, indent int) error {
	data, err := Marshal(doc, indent)
	if err != nil {
		return err
	}

	err = afero.WriteFile(fs, filename, data, 0o600)
	if err != nil {
		return fmt.Errorf("failed to write settings to file %s: %w", filename, err)
	}
	return nil
}

// CreateBackupWithFS copies the settings file to backupPath, replacing any earlier backup.
func CreateBackupWithFS(fs afero.Fs, filename, backupPath string) error {
	if err := copySettings(fs, filename, backupPath); err != nil {
		return fmt.Errorf("failed to create backup: %w", err)
	}
	return nil
}

// HasBackupWithFS checks if a backup exists at backupPath.
func HasBackupWithFS(fs afero.Fs, backupPath string) bool {
	return filesystem.Exists(fs, backupPath)
}

// RestoreFromBackupWithFS copies backupPath over targetPath. The backup is left in place.
func RestoreFromBackupWithFS(fs afero.Fs, backupPath, targetPath string) error {
	if err := copySettings(fs, backupPath, targetPath); err != nil {
		return fmt.Errorf("failed to restore %s: %w", targetPath, err)
	}
	return nil
}

func copySettings(fs afero.Fs, src, dst string) error {
	err := filesystem.CopyFile(fs, src, dst)
	if filesystem.IsNotExist(err) {
		if _, statErr := fs.Stat(src); statErr != nil && errors.Is(statErr, os.ErrNotExist) {
			return fmt.Errorf("%w: %s: %w", ErrMissingFile, src, err)
		}
	}
	return err //nolint:wrapcheck // filesystem errors carry both paths
}
