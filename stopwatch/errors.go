package stopwatch

import (
	"errors"
	"fmt"
)

var (
	// ErrEmptyID is returned by Registry.Create when the identifier is empty.
	ErrEmptyID = errors.New("stopwatch id must not be empty")

	// ErrDuplicateID is returned by Registry.Create when the identifier is
	// already in use.
	ErrDuplicateID = errors.New("stopwatch id already in use")

	// ErrInvalidState is the category error for illegal state transitions.
	// ErrAlreadyRunning and ErrNotRunning wrap it, so callers can match the
	// whole family with errors.Is(err, ErrInvalidState).
	ErrInvalidState = errors.New("invalid stopwatch state")

	// ErrAlreadyRunning is returned by Start on a running stopwatch.
	ErrAlreadyRunning = fmt.Errorf("%w: already running", ErrInvalidState)

	// ErrNotRunning is returned by Lap and Stop on an idle stopwatch.
	ErrNotRunning = fmt.Errorf("%w: not running", ErrInvalidState)
)
