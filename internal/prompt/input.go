// Package prompt reads answers from an interactive terminal.
package prompt

import (
	"errors"
	"fmt"
	"io"
	"strings"

	"github.com/fatih/color"
	"github.com/peterh/liner"
)

// ErrCancelled is returned when the user aborts a prompt.
var ErrCancelled = errors.New("cancelled by user")

// Prompter wraps basic prompting functionality for testability
type Prompter interface {
	Prompt(string) (string, error)
	Close() error
}

// LinerPrompter wraps liner.State to implement Prompter
type LinerPrompter struct {
	*liner.State
}

// NewLinerPrompter creates a new liner-based prompter
func NewLinerPrompter() Prompter {
	line := liner.NewLiner()
	line.SetCtrlCAborts(true)
	return &LinerPrompter{State: line}
}

// Directory asks for a directory, offering fallback when the answer is empty.
func Directory(p Prompter, question, fallback string) (string, error) {
	label := question
	if fallback != "" {
		label = fmt.Sprintf("%s [%s]", question, fallback)
	}

	answer, err := p.Prompt(color.CyanString(label + ": "))
	if err != nil {
		if errors.Is(err, liner.ErrPromptAborted) || errors.Is(err, io.EOF) {
			return "", ErrCancelled
		}
		return "", fmt.Errorf("text input failed: %w", err)
	}

	answer = strings.TrimSpace(answer)
	if answer == "" {
		if fallback == "" {
			return "", errors.New("a directory is required")
		}
		return fallback, nil
	}
	return answer, nil
}
