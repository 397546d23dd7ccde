// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package yad

import (
	"errors"
	"fmt"
	"io/fs"
)

// Exit codes yad uses for non-affirmative outcomes.
const (
	exitCancel  = 1
	exitTimeout = 70
	exitEscape  = 252
)

var (
	// ErrCancelled is returned when the user dismisses a dialog with Cancel,
	// Escape, or the window close button.
	ErrCancelled = errors.New("dialog cancelled")

	// ErrTimeout is returned when a dialog closes because its --timeout
	// elapsed.
	ErrTimeout = fmt.Errorf("dialog timed out: %w", ErrCancelled)

	// ErrNotListening is returned by Client.Listen for dialogs that do not
	// read updates from stdin.
	ErrNotListening = errors.New("dialog does not accept updates")
)

// IsCancelled reports whether err means the user did not complete the
// dialog, by cancelling or by letting it time out.
func IsCancelled(err error) bool {
	return errors.Is(err, ErrCancelled)
}

// MissingFileError is returned when an option refers to a file that does not
// exist.
type MissingFileError struct {
	Option string
	Path   string
}

func (e *MissingFileError) Error() string {
	return fmt.Sprintf("invalid file for %s: %s does not exist", e.Option, e.Path)
}

func (e *MissingFileError) Unwrap() error { return fs.ErrNotExist }

// statusError maps a dialog exit code to ErrCancelled or ErrTimeout. Other
// codes are not errors at this level.
func statusError(code int) error {
	switch code {
	case exitCancel, exitEscape:
		return ErrCancelled
	case exitTimeout:
		return ErrTimeout
	}
	return nil
}
