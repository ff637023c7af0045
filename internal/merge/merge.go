// Package merge copies the compiler argument fields of a custom settings
// document into the target settings document.
package merge

import (
	"context"
	"fmt"
	"strings"

	"github.com/wizzomafizzo/settingsync/internal/constants"
	"github.com/wizzomafizzo/settingsync/internal/logging"
	"github.com/wizzomafizzo/settingsync/internal/settings"
)

// DefaultSeparator joins argument lists into their flattened form.
const DefaultSeparator = " "

// InvalidFieldError is returned when an argument field is not a list of strings.
type InvalidFieldError struct {
	Value any
	Key   string
}

func (e *InvalidFieldError) Error() string {
	return fmt.Sprintf("tasks.%s must be a list of strings, got %T", e.Key, e.Value)
}

// Report describes what a merge changed.
type Report struct {
	// Merged holds the keys copied from the custom document.
	Merged []string
	// Skipped holds the keys the custom document does not define.
	Skipped []string
	// Backfilled holds flattened keys that were missing and have been added.
	Backfilled []string
}

// Merger merges argument fields using a fixed separator.
type Merger struct {
	Separator string
}

// New creates a Merger. An empty separator falls back to DefaultSeparator.
func New(separator string) *Merger {
	if separator == "" {
		separator = DefaultSeparator
	}
	return &Merger{Separator: separator}
}

// Merge copies every argument field defined under custom's tasks into
// target's tasks, along with its flattened string. target and custom may be
// the same document.
func (m *Merger) Merge(ctx context.Context, target, custom *settings.Document) (*Report, error) {
	logger := logging.Get(ctx)

	customTasks, err := custom.Tasks()
	if err != nil {
		return nil, fmt.Errorf("custom settings: %w", err)
	}
	targetTasks, err := target.Tasks()
	if err != nil {
		return nil, fmt.Errorf("target settings: %w", err)
	}

	// Validate everything up front so a bad field leaves target untouched.
	lists := make(map[string][]string, len(constants.ArgFields))
	for _, field := range constants.ArgFields {
		raw, ok := customTasks[field.Key]
		if !ok {
			continue
		}
		list, err := toStrings(field.Key, raw)
		if err != nil {
			return nil, err
		}
		lists[field.Key] = list
	}

	report := &Report{}
	for _, field := range constants.ArgFields {
		list, ok := lists[field.Key]
		if !ok {
			logger.Warn().Str("key", field.Key).Msg("field not defined in custom settings, skipping")
			report.Skipped = append(report.Skipped, field.Key)
			continue
		}

		targetTasks[field.Key] = toAny(list)
		targetTasks[field.Flattened] = Join(list, m.Separator)
		report.Merged = append(report.Merged, field.Key)

		logger.Debug().
			Str("key", field.Key).
			Int("count", len(list)).
			Msg("merged argument field")
	}

	m.backfill(ctx, targetTasks, report)

	return report, nil
}

// backfill adds any flattened key still missing from the target's tasks. The
// value comes from the target's own tasks[KEY] list, or is empty when the
// target has none. The custom document is not consulted.
func (m *Merger) backfill(ctx context.Context, targetTasks map[string]any, report *Report) {
	for _, field := range constants.ArgFields {
		if _, ok := targetTasks[field.Flattened]; ok {
			continue
		}

		var list []string
		if raw, ok := targetTasks[field.Key]; ok {
			if existing, err := toStrings(field.Key, raw); err == nil {
				list = existing
			} else {
				logging.Get(ctx).Debug().Err(err).Msg("ignoring unusable list while back-filling")
			}
		}

		targetTasks[field.Flattened] = Join(list, m.Separator)
		report.Backfilled = append(report.Backfilled, field.Flattened)
	}
}

// Join flattens an argument list.
func Join(list []string, separator string) string {
	return strings.Join(list, separator)
}

// Split reverses Join. It is exact when no element contains the separator.
// An empty string yields an empty list.
func Split(flattened, separator string) []string {
	if flattened == "" {
		return []string{}
	}
	return strings.Split(flattened, separator)
}

func toStrings(key string, raw any) ([]string, error) {
	switch value := raw.(type) {
	case []string:
		return value, nil
	case []any:
		list := make([]string, 0, len(value))
		for _, item := range value {
			s, ok := item.(string)
			if !ok {
				return nil, &InvalidFieldError{Key: key, Value: raw}
			}
			list = append(list, s)
		}
		return list, nil
	default:
		return nil, &InvalidFieldError{Key: key, Value: raw}
	}
}

func toAny(list []string) []any {
	out := make([]any, len(list))
	for i, s := range list {
		out[i] = s
	}
	return out
}
