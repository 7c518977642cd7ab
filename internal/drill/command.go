package drill

import (
	"fmt"
	"strconv"
)

// Command is a single sight adjustment: a direction and a positive click
// count. Commands are immutable values.
type Command struct {
	Direction Direction
	Clicks    int
}

// Opposite returns the command that exactly undoes c.
func (c Command) Opposite() Command {
	return Command{Direction: c.Direction.Opposite(), Clicks: c.Clicks}
}

// String renders the drill readout form, e.g. "LEFT 5".
func (c Command) String() string {
	return c.Direction.String() + " " + strconv.Itoa(c.Clicks)
}

// Words renders the spoken form passed to the speech engine, e.g. "left 5".
func (c Command) Words() string {
	return fmt.Sprintf("%s %d", c.Direction.Word(), c.Clicks)
}
