package drill

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSequence_Net(t *testing.T) {
	seq := Sequence{
		{Direction: Up, Clicks: 5},
		{Direction: Right, Clicks: 3},
		{Direction: Down, Clicks: 2},
	}
	assert.Equal(t, Position{Traverse: 3, Elevation: 3}, seq.Net())
	assert.True(t, Sequence{}.Net().IsZero())
}

func TestSequence_Check(t *testing.T) {
	t.Run("balanced within bound", func(t *testing.T) {
		seq := Sequence{
			{Direction: Up, Clicks: 5},
			{Direction: Right, Clicks: 5},
			{Direction: Down, Clicks: 5},
			{Direction: Left, Clicks: 5},
		}
		require.NoError(t, seq.Check(25))
	})

	t.Run("unbalanced", func(t *testing.T) {
		seq := Sequence{
			{Direction: Up, Clicks: 5},
			{Direction: Down, Clicks: 3},
		}
		err := seq.Check(25)
		require.Error(t, err)
		assert.Contains(t, err.Error(), "nets to")
	})

	t.Run("prefix escapes bound", func(t *testing.T) {
		// Nets to zero but the first move already leaves a bound of 4.
		seq := Sequence{
			{Direction: Right, Clicks: 5},
			{Direction: Left, Clicks: 5},
		}
		err := seq.Check(4)
		require.Error(t, err)
		assert.Contains(t, err.Error(), "leaves bound")
	})

	t.Run("non-positive clicks", func(t *testing.T) {
		seq := Sequence{{Direction: Up, Clicks: 0}}
		require.Error(t, seq.Check(25))
	})

	t.Run("empty is valid", func(t *testing.T) {
		require.NoError(t, Sequence{}.Check(1))
	})
}

func TestSequence_MaxClicks(t *testing.T) {
	seq := Sequence{
		{Direction: Up, Clicks: 2},
		{Direction: Down, Clicks: 9},
		{Direction: Left, Clicks: 4},
	}
	assert.Equal(t, 9, seq.MaxClicks())
	assert.Equal(t, 0, Sequence{}.MaxClicks())
}
