package engine

import "errors"

// Validation errors are rejected synchronously with no state mutated.
// Consistency conflicts (double-taps, stale ids on already-drained queues)
// are deliberately not errors; those operations no-op instead.
var (
	ErrProfileNotFound  = errors.New("profile not found")
	ErrChoreNotFound    = errors.New("chore not found")
	ErrRecordNotFound   = errors.New("earnings record not found")
	ErrNothingToCashOut = errors.New("nothing to cash out")
	ErrInvalidAmount    = errors.New("amount must be positive")
	ErrInvalidDate      = errors.New("date must be YYYY-MM-DD")
	ErrInvalidPayDay    = errors.New("invalid pay day configuration")
	ErrNameRequired     = errors.New("name is required")
	ErrBonusChore       = errors.New("bonus chores cannot be edited")
	ErrInvalidPasscode  = errors.New("passcode must be 4 to 8 digits")
	ErrPasscodeMismatch = errors.New("incorrect passcode")
)
