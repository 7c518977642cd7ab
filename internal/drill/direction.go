// Package drill implements the traverse and elevation drill engine:
// balanced command sequence generation, bound validation, and timed
// playback of a sequence against a simulated sight position.
package drill

import "fmt"

// Direction is one of the four T&E adjustment directions. Up and Down
// move the elevation axis, Left and Right move the traverse axis.
type Direction int

const (
	Up Direction = iota
	Down
	Left
	Right
)

// String returns the display form used in the command readout.
func (d Direction) String() string {
	switch d {
	case Up:
		return "UP"
	case Down:
		return "DOWN"
	case Left:
		return "LEFT"
	case Right:
		return "RIGHT"
	default:
		return fmt.Sprintf("Direction(%d)", int(d))
	}
}

// Word returns the lowercase spoken form used for speech cues.
func (d Direction) Word() string {
	switch d {
	case Up:
		return "up"
	case Down:
		return "down"
	case Left:
		return "left"
	case Right:
		return "right"
	default:
		return "unknown"
	}
}

// Opposite returns the direction that exactly undoes d.
func (d Direction) Opposite() Direction {
	switch d {
	case Up:
		return Down
	case Down:
		return Up
	case Left:
		return Right
	default:
		return Left
	}
}

// Horizontal reports whether d moves the traverse axis.
func (d Direction) Horizontal() bool {
	return d == Left || d == Right
}

// Vector returns the per-click deltas d applies to (traverse, elevation).
func (d Direction) Vector() (dt, de int) {
	switch d {
	case Up:
		return 0, 1
	case Down:
		return 0, -1
	case Left:
		return -1, 0
	case Right:
		return 1, 0
	default:
		return 0, 0
	}
}
