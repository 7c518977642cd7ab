package drill

import "fmt"

// Sequence is an ordered list of commands forming one drill run.
type Sequence []Command

// Net returns the signed net displacement of the whole sequence applied
// from mechanical zero. A balanced sequence nets to the zero position.
func (s Sequence) Net() Position {
	var p Position
	for _, cmd := range s {
		p = p.Apply(cmd)
	}
	return p
}

// Check verifies the generator output invariants: the sequence nets to
// zero and every prefix applied from zero stays within [-bound, bound]
// on both axes. Used by tests and as a guard on preset-supplied data.
func (s Sequence) Check(bound int) error {
	var p Position
	for i, cmd := range s {
		if cmd.Clicks <= 0 {
			return fmt.Errorf("command %d: click count %d is not positive", i, cmd.Clicks)
		}
		if !CanApply(p, cmd, bound) {
			return fmt.Errorf("command %d (%s) leaves bound %d from %s", i, cmd, bound, p)
		}
		p = p.Apply(cmd)
	}
	if !p.IsZero() {
		return fmt.Errorf("sequence nets to %s, want zero", p)
	}
	return nil
}

// MaxClicks returns the largest click count in the sequence, 0 if empty.
func (s Sequence) MaxClicks() int {
	max := 0
	for _, cmd := range s {
		if cmd.Clicks > max {
			max = cmd.Clicks
		}
	}
	return max
}
