package shared

import "fmt"

var (
	// Configuration errors
	ErrMissingConfig = fmt.Errorf("configuration not found")
	ErrInvalidConfig = fmt.Errorf("invalid configuration")

	// Timer errors
	ErrInvalidDuration = fmt.Errorf("duration is not one of the configured options")
	ErrDurationLocked  = fmt.Errorf("duration can only change while the timer is idle")

	// Quote errors
	ErrEmptyQuotePool = fmt.Errorf("quote pool is empty")

	// Side effect errors
	ErrToneUnavailable  = fmt.Errorf("tone playback unavailable")
	ErrStoreUnavailable = fmt.Errorf("store unavailable")

	// Input validation errors
	ErrInvalidInput    = fmt.Errorf("invalid input")
	ErrMissingArgument = fmt.Errorf("missing required argument")
	ErrInvalidArgument = fmt.Errorf("invalid argument")
	ErrInvalidFlag     = fmt.Errorf("invalid flag value")
)
