package tally

import "errors"

// Sentinel errors for the ledger operations. Callers are expected to match
// them with errors.Is; the message attached by each operation carries the
// offending name or value.
var (
	// ErrBadCommand reports a command with missing, empty or unparsable arguments.
	ErrBadCommand = errors.New("command formatted incorrectly")
	// ErrUnknownCommand reports a verb that is not part of the command set.
	ErrUnknownCommand = errors.New("not a command")
	// ErrNameConflict reports a name already in use, or a reserved token.
	ErrNameConflict = errors.New("name conflict")
	// ErrNotFound reports a name that denotes neither a participant nor a task.
	ErrNotFound = errors.New("not found")
	// ErrUnknownParticipant reports a participant name absent from the ledger.
	ErrUnknownParticipant = errors.New("unknown participant")
	// ErrUnknownTask reports a task name absent from the ledger.
	ErrUnknownTask = errors.New("unknown task")
	// ErrInvalidAmount reports a price or payment that is not a valid
	// non-negative decimal number.
	ErrInvalidAmount = errors.New("invalid amount")
	// ErrCorruptSnapshot reports a persisted snapshot that violates the ledger
	// invariants and cannot be loaded.
	ErrCorruptSnapshot = errors.New("corrupt snapshot")
)
