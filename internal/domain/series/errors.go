package series

import "errors"

var (
	// ErrUnknownScope indicates a scope value outside this/following/all.
	ErrUnknownScope = errors.New("unknown scope")
	// ErrScopeRequired indicates the target belongs to a series and an
	// explicit scope choice is needed before applying the edit.
	ErrScopeRequired = errors.New("scope choice required")
	// ErrChoiceInProgress indicates a scope choice is already pending.
	ErrChoiceInProgress = errors.New("another scope choice is already pending")
	// ErrNoPendingChoice indicates no edit is waiting on a scope choice.
	ErrNoPendingChoice = errors.New("no pending scope choice")
)
