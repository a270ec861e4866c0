package session

import (
	"errors"
	"fmt"

	"github.com/abhisek/quizbank/internal/history"
)

// ErrEmptyPool is returned by Start when there are no questions to serve.
var ErrEmptyPool = errors.New("session: empty question pool")

// ErrInvalidTransition is wrapped by every TransitionError.
var ErrInvalidTransition = errors.New("session: invalid transition")

// TransitionError reports an operation called in a state that forbids it.
// It signals a caller bug, not a user-facing failure.
type TransitionError struct {
	Op    string
	State State
}

func (e *TransitionError) Error() string {
	return fmt.Sprintf("session: %s not allowed in state %s", e.Op, e.State)
}

func (e *TransitionError) Unwrap() error { return ErrInvalidTransition }

// RecordError reports that a completed session could not be written to
// the history ledger. The session itself stays completed.
type RecordError struct {
	Entry history.Entry
	Err   error
}

func (e *RecordError) Error() string {
	return fmt.Sprintf("session %s completed but not recorded: %v", e.Entry.SessionID, e.Err)
}

func (e *RecordError) Unwrap() error { return e.Err }
