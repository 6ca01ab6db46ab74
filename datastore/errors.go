package datastore

import (
	"errors"
	"fmt"
)

// Sentinels for errors.Is checks at the presentation boundary.
var (
	ErrDataLoad      = errors.New("data load failed")
	ErrTeamNotFound  = errors.New("team not found")
	ErrRoundNotFound = errors.New("round not found")
)

// DataLoadError reports a source that is missing, not tabular or lacks the
// required columns after normalization. It is fatal for rendering.
type DataLoadError struct {
	Source string
	Reason string
	Err    error
}

func (e *DataLoadError) Error() string {
	msg := fmt.Sprintf("loading %s: %s", e.Source, e.Reason)
	if e.Err != nil {
		msg += ": " + e.Err.Error()
	}
	return msg
}

func (e *DataLoadError) Unwrap() error { return e.Err }

func (e *DataLoadError) Is(target error) bool { return target == ErrDataLoad }

// TeamNotFoundError is returned by per-team queries for an unknown team.
type TeamNotFoundError struct {
	Team string
}

func (e *TeamNotFoundError) Error() string {
	return fmt.Sprintf("team not found: %q", e.Team)
}

func (e *TeamNotFoundError) Is(target error) bool { return target == ErrTeamNotFound }

// RoundNotFoundError is returned by RoundSlice for a round that is not a
// column of the advancement table.
type RoundNotFoundError struct {
	Round string
}

func (e *RoundNotFoundError) Error() string {
	return fmt.Sprintf("round not found: %q", e.Round)
}

func (e *RoundNotFoundError) Is(target error) bool { return target == ErrRoundNotFound }

func loadErr(source, reason string, err error) error {
	return &DataLoadError{Source: source, Reason: reason, Err: err}
}
