package drill

import "fmt"

// Position is the simulated sight position in clicks from mechanical
// zero. Traverse is positive to the right, elevation positive up.
type Position struct {
	Traverse  int
	Elevation int
}

// Apply returns the position after executing cmd. The receiver is not
// modified.
func (p Position) Apply(cmd Command) Position {
	dt, de := cmd.Direction.Vector()
	return Position{
		Traverse:  p.Traverse + dt*cmd.Clicks,
		Elevation: p.Elevation + de*cmd.Clicks,
	}
}

// Clamp returns the position with both axes limited to [-bound, bound].
func (p Position) Clamp(bound int) Position {
	return Position{
		Traverse:  clampAxis(p.Traverse, bound),
		Elevation: clampAxis(p.Elevation, bound),
	}
}

func clampAxis(v, bound int) int {
	if v > bound {
		return bound
	}
	if v < -bound {
		return -bound
	}
	return v
}

// IsZero reports whether the sight is back at mechanical zero.
func (p Position) IsZero() bool {
	return p.Traverse == 0 && p.Elevation == 0
}

// String renders the readout form, e.g. "T+3 E-2".
func (p Position) String() string {
	return fmt.Sprintf("T%+d E%+d", p.Traverse, p.Elevation)
}
