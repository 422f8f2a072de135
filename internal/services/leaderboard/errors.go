package leaderboard

import "errors"

// Errors
var (
	// ErrNameRequired is the only validation failure; it never reaches the store
	ErrNameRequired = errors.New("player name is required")
	// ErrSubmitInProgress is returned while a form's insert is still in flight
	ErrSubmitInProgress = errors.New("a submission is already in progress")
	// ErrDeactivated is returned by refreshes on a view that has been torn down
	ErrDeactivated = errors.New("leaderboard view is deactivated")
)

// Store operations named in StoreError
const (
	OpListPlayers  = "list players"
	OpInsertPlayer = "insert player"
)

// StoreError wraps any failure reported by the store, network errors included
type StoreError struct {
	Op  string
	Err error
}

func (e *StoreError) Error() string {
	return e.Op + ": " + e.Err.Error()
}

func (e *StoreError) Unwrap() error {
	return e.Err
}
