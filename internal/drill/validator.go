package drill

// CanApply reports whether executing cmd from pos keeps the moved axis
// within [-bound, bound]. It is a pure function of its arguments: no
// state is read or written, so the generator may probe candidate moves
// freely while ordering a sequence.
func CanApply(pos Position, cmd Command, bound int) bool {
	switch cmd.Direction {
	case Up:
		return pos.Elevation+cmd.Clicks <= bound
	case Down:
		return pos.Elevation-cmd.Clicks >= -bound
	case Left:
		return pos.Traverse-cmd.Clicks >= -bound
	case Right:
		return pos.Traverse+cmd.Clicks <= bound
	default:
		return false
	}
}
