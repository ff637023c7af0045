// Package settings provides programmatic access to editor settings.json files.
package settings

import (
	"errors"
	"fmt"

	"github.com/wizzomafizzo/settingsync/internal/constants"
)

// ErrMissingTasks is returned when a document has no "tasks" object.
var ErrMissingTasks = errors.New("settings document has no tasks object")

// Document is a decoded settings.json. Unknown keys are carried through untouched.
type Document struct {
	values map[string]any
}

// NewDocument wraps an already decoded JSON object. A nil map yields an empty document.
func NewDocument(values map[string]any) *Document {
	if values == nil {
		values = make(map[string]any)
	}
	return &Document{values: values}
}

// Get returns a top-level value.
func (d *Document) Get(key string) (any, bool) {
	v, ok := d.values[key]
	return v, ok
}

// Tasks returns the "tasks" object. The returned map is live: writes to it
// change the document.
func (d *Document) Tasks() (map[string]any, error) {
	raw, ok := d.Get(constants.FieldTasks)
	if !ok {
		return nil, ErrMissingTasks
	}
	tasks, ok := raw.(map[string]any)
	if !ok {
		return nil, fmt.Errorf("%w: %q is %T", ErrMissingTasks, constants.FieldTasks, raw)
	}
	return tasks, nil
}
