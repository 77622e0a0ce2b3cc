package domain

import "errors"

// Recoverable input errors. All four are raised while a schedule is being
// assembled; callers re-prompt or reject the request, the session survives.
var (
	ErrInvalidTimeFormat = errors.New("invalid time format")
	ErrInvalidDayToken   = errors.New("unrecognized day token")
	ErrInvalidTimeOrder  = errors.New("start hour must be before end hour")
	ErrIndexOutOfRange   = errors.New("no schedule entry at that index")
)
