package core

import "errors"

// Error kinds reported by the engine. Callers match them with errors.Is;
// the returned errors wrap these with detail about the offending input.
var (
	// ErrInvalidShape is returned for an empty shape or one outside its bounds.
	ErrInvalidShape = errors.New("invalid board shape")

	// ErrDegenerateLayout is returned when the requested mines do not fit
	// into the cells eligible to receive them.
	ErrDegenerateLayout = errors.New("degenerate mine layout")

	// ErrIllegalAction is returned for an action on a coordinate outside the
	// shape, on a finished game, or on a cell whose state forbids it.
	// The session is left unchanged.
	ErrIllegalAction = errors.New("illegal action")

	// ErrFlagless is returned when flagging while flagless mode is on.
	// It is a no-op, not a failure of the session.
	ErrFlagless = errors.New("flags are disabled in flagless mode")
)
