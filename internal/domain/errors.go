package domain

import "errors"

var (
	// ErrFormat marks user input that is not a valid "latitude, longitude" pair.
	ErrFormat = errors.New("invalid coordinates")
	// ErrUpstream marks failures of the remote open-data catalog.
	ErrUpstream = errors.New("rink catalog unavailable")
	// ErrEmptyDataset is returned when a fetch succeeds but yields no rinks.
	ErrEmptyDataset = errors.New("rink dataset is empty")
	// ErrInvalidRecord marks a rink record that breaks the field contract.
	ErrInvalidRecord = errors.New("invalid rink record")
)

// FormatError describes why coordinate text was rejected.
// Input is the offending substring (or the whole text for separator errors).
type FormatError struct {
	Input  string
	Reason string
}

func (e *FormatError) Error() string {
	return ErrFormat.Error() + ": " + e.Reason
}

func (e *FormatError) Is(target error) bool { return target == ErrFormat }
