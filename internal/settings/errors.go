package settings

import (
	"errors"
	"fmt"
)

// ErrMissingFile marks a settings file that does not exist.
var ErrMissingFile = errors.New("settings file not found")

// MalformedJSONError is returned when a settings file is not a JSON object.
type MalformedJSONError struct {
	Err  error
	Path string
}

func (e *MalformedJSONError) Error() string {
	return fmt.Sprintf("failed to parse settings JSON from %s: %v", e.Path, e.Err)
}

func (e *MalformedJSONError) Unwrap() error {
	return e.Err
}
