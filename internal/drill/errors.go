package drill

import (
	"errors"
	"fmt"
)

// ErrAlreadyStarted is returned by Player.Run on reuse. Players are
// single-use; the trainer constructs a fresh one per run.
var ErrAlreadyStarted = errors.New("player already started")

// ErrInvalidInterval is returned by Player.Run when the command
// interval is not positive and the sequence is non-empty.
var ErrInvalidInterval = errors.New("command interval must be positive")

// InfeasibleConfigError reports a generation config that no sequence
// can ever satisfy: a non-positive bound, an empty click value set, or
// a click value outside (0, bound]. Generation rejects it before
// consuming any ordering attempt.
type InfeasibleConfigError struct {
	// ClickValue is the offending click value when the set is non-empty.
	ClickValue int
	// Bound is the configured axis bound.
	Bound int
	// Empty is set when the click value set has no entries.
	Empty bool
}

func (e *InfeasibleConfigError) Error() string {
	switch {
	case e.Bound <= 0:
		return fmt.Sprintf("bound %d is not positive", e.Bound)
	case e.Empty:
		return "click value set is empty"
	case e.ClickValue <= 0:
		return fmt.Sprintf("click value %d is not positive", e.ClickValue)
	default:
		return fmt.Sprintf("click value %d exceeds bound %d", e.ClickValue, e.Bound)
	}
}

// ExhaustedError reports that every ordering attempt got stuck. The
// config itself was feasible; callers may retry, relax the settings,
// or enable the paired ordering fallback.
type ExhaustedError struct {
	Attempts int
}

func (e *ExhaustedError) Error() string {
	return fmt.Sprintf("no valid ordering found in %d attempts", e.Attempts)
}
