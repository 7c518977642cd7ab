package drill

import (
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// manualClock is a hand-advanced clock. Timers fire when Advance moves
// the clock past their deadline, so playback tests are deterministic.
type manualClock struct {
	mu     sync.Mutex
	now    time.Time
	timers []*manualTimer
}

type manualTimer struct {
	clock    *manualClock
	ch       chan time.Time
	deadline time.Time
	fired    bool
	stopped  bool
}

func newManualClock() *manualClock {
	return &manualClock{now: time.Unix(0, 0)}
}

func (c *manualClock) NewTimer(d time.Duration) Timer {
	c.mu.Lock()
	defer c.mu.Unlock()
	t := &manualTimer{clock: c, ch: make(chan time.Time, 1), deadline: c.now.Add(d)}
	c.timers = append(c.timers, t)
	return t
}

func (c *manualClock) Advance(d time.Duration) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.now = c.now.Add(d)
	for _, t := range c.timers {
		if !t.fired && !t.stopped && !t.deadline.After(c.now) {
			t.fired = true
			t.ch <- c.now
		}
	}
}

func (c *manualClock) pending() int {
	c.mu.Lock()
	defer c.mu.Unlock()
	n := 0
	for _, t := range c.timers {
		if !t.fired && !t.stopped {
			n++
		}
	}
	return n
}

func (t *manualTimer) C() <-chan time.Time { return t.ch }

func (t *manualTimer) Stop() bool {
	t.clock.mu.Lock()
	defer t.clock.mu.Unlock()
	if t.fired || t.stopped {
		return false
	}
	t.stopped = true
	return true
}

// waitForTimer blocks until the run loop has armed its next timer.
func waitForTimer(t *testing.T, c *manualClock) {
	t.Helper()
	deadline := time.Now().Add(2 * time.Second)
	for time.Now().Before(deadline) {
		if c.pending() > 0 {
			return
		}
		time.Sleep(time.Millisecond)
	}
	t.Fatal("timed out waiting for the player to arm a timer")
}

// recvEvent reads the next event or fails the test.
func recvEvent(t *testing.T, ch <-chan Event) Event {
	t.Helper()
	select {
	case e, ok := <-ch:
		require.True(t, ok, "event channel closed early")
		return e
	case <-time.After(2 * time.Second):
		t.Fatal("timed out waiting for an event")
		return nil
	}
}

// recvClosed asserts the channel closes without further events.
func recvClosed(t *testing.T, ch <-chan Event) {
	t.Helper()
	select {
	case e, ok := <-ch:
		require.False(t, ok, "expected channel close, got %#v", e)
	case <-time.After(2 * time.Second):
		t.Fatal("timed out waiting for the event channel to close")
	}
}

type fakeCue struct {
	mu    sync.Mutex
	spoke []Command
	stops int
	err   error
}

func (f *fakeCue) Speak(cmd Command, _ time.Duration) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.err != nil {
		return f.err
	}
	f.spoke = append(f.spoke, cmd)
	return nil
}

func (f *fakeCue) Stop() {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.stops++
}

func (f *fakeCue) spoken() []Command {
	f.mu.Lock()
	defer f.mu.Unlock()
	return append([]Command(nil), f.spoke...)
}

func TestPlayer_ThreeCommandRun(t *testing.T) {
	clock := newManualClock()
	seq := Sequence{
		{Direction: Up, Clicks: 5},
		{Direction: Right, Clicks: 3},
		{Direction: Down, Clicks: 5},
	}
	p := NewPlayer(PlayerConfig{Interval: time.Second, Bound: 25, Clock: clock})

	events, err := p.Run(seq)
	require.NoError(t, err)

	wantPositions := []Position{
		{Elevation: 5},
		{Traverse: 3, Elevation: 5},
		{Traverse: 3},
	}
	for i, cmd := range seq {
		started := recvEvent(t, events)
		require.Equal(t, CommandStarted{Index: i, Command: cmd}, started)

		waitForTimer(t, clock)
		clock.Advance(500 * time.Millisecond)

		updated := recvEvent(t, events)
		require.Equal(t, PositionUpdated{Index: i, Position: wantPositions[i]}, updated)

		waitForTimer(t, clock)
		clock.Advance(500 * time.Millisecond)
	}

	finished := recvEvent(t, events)
	fin, ok := finished.(RunFinished)
	require.True(t, ok, "expected RunFinished, got %#v", finished)
	assert.Equal(t, Position{Traverse: 3}, fin.Final)

	recvClosed(t, events)
	assert.Equal(t, PlayerDone, p.State())
}

func TestPlayer_EmptySequenceFinishesImmediately(t *testing.T) {
	p := NewPlayer(PlayerConfig{Bound: 25, Clock: newManualClock()})
	events, err := p.Run(Sequence{})
	require.NoError(t, err)

	fin, ok := recvEvent(t, events).(RunFinished)
	require.True(t, ok)
	assert.True(t, fin.Final.IsZero())
	recvClosed(t, events)
}

func TestPlayer_StopAfterMidpointPreventsFurtherMutation(t *testing.T) {
	clock := newManualClock()
	seq := Sequence{
		{Direction: Up, Clicks: 2},
		{Direction: Down, Clicks: 2},
	}
	p := NewPlayer(PlayerConfig{Interval: time.Second, Bound: 25, Clock: clock})

	events, err := p.Run(seq)
	require.NoError(t, err)

	recvEvent(t, events) // CommandStarted 0
	waitForTimer(t, clock)
	clock.Advance(500 * time.Millisecond)
	updated := recvEvent(t, events)
	require.Equal(t, PositionUpdated{Index: 0, Position: Position{Elevation: 2}}, updated)

	p.Stop()

	// No RunFinished, no second command, both timers released.
	recvClosed(t, events)
	assert.Equal(t, PlayerIdle, p.State(), "a stopped run resets to idle")
	assert.Zero(t, clock.pending(), "stop must release the pending timer")
}

func TestPlayer_StopBeforeRun(t *testing.T) {
	p := NewPlayer(PlayerConfig{Interval: time.Second, Bound: 25, Clock: newManualClock()})
	p.Stop()

	events, err := p.Run(Sequence{{Direction: Up, Clicks: 1}, {Direction: Down, Clicks: 1}})
	require.NoError(t, err)
	recvClosed(t, events)
}

func TestPlayer_StopIdempotent(t *testing.T) {
	cue := &fakeCue{}
	p := NewPlayer(PlayerConfig{Interval: time.Second, Bound: 25, Cue: cue, Clock: newManualClock()})
	p.Stop()
	p.Stop()
	p.Stop()
	assert.Equal(t, 1, cue.stops, "repeated stops must not re-halt the cue")
}

func TestPlayer_RunTwice(t *testing.T) {
	clock := newManualClock()
	p := NewPlayer(PlayerConfig{Interval: time.Second, Bound: 25, Clock: clock})
	_, err := p.Run(Sequence{{Direction: Up, Clicks: 1}})
	require.NoError(t, err)

	_, err = p.Run(Sequence{{Direction: Up, Clicks: 1}})
	assert.ErrorIs(t, err, ErrAlreadyStarted)
	p.Stop()
}

func TestPlayer_InvalidInterval(t *testing.T) {
	p := NewPlayer(PlayerConfig{Interval: 0, Bound: 25, Clock: newManualClock()})
	_, err := p.Run(Sequence{{Direction: Up, Clicks: 1}})
	assert.ErrorIs(t, err, ErrInvalidInterval)
}

func TestPlayer_MidpointClampsRunawaySequence(t *testing.T) {
	// Hand-built sequence that violates the bound; the midpoint update
	// clamps rather than trusting the input.
	clock := newManualClock()
	p := NewPlayer(PlayerConfig{Interval: time.Second, Bound: 25, Clock: clock})
	events, err := p.Run(Sequence{{Direction: Up, Clicks: 40}})
	require.NoError(t, err)

	recvEvent(t, events) // CommandStarted
	waitForTimer(t, clock)
	clock.Advance(500 * time.Millisecond)

	updated := recvEvent(t, events)
	require.Equal(t, PositionUpdated{Index: 0, Position: Position{Elevation: 25}}, updated)
	p.Stop()
	recvClosed(t, events)
}

func TestPlayer_CueDispatch(t *testing.T) {
	clock := newManualClock()
	cue := &fakeCue{}
	seq := Sequence{
		{Direction: Left, Clicks: 2},
		{Direction: Right, Clicks: 2},
	}
	p := NewPlayer(PlayerConfig{Interval: time.Second, Bound: 25, Cue: cue, Clock: clock})
	events, err := p.Run(seq)
	require.NoError(t, err)

	for i := range seq {
		started := recvEvent(t, events).(CommandStarted)
		assert.True(t, started.Cued, "command %d should be cued at a 1s interval", i)
		waitForTimer(t, clock)
		clock.Advance(500 * time.Millisecond)
		recvEvent(t, events)
		waitForTimer(t, clock)
		clock.Advance(500 * time.Millisecond)
	}
	recvEvent(t, events) // RunFinished
	recvClosed(t, events)

	assert.Equal(t, []Command(seq), cue.spoken())
}

func TestPlayer_CueSkippedBelowMinInterval(t *testing.T) {
	clock := newManualClock()
	cue := &fakeCue{}
	p := NewPlayer(PlayerConfig{Interval: 200 * time.Millisecond, Bound: 25, Cue: cue, Clock: clock})
	events, err := p.Run(Sequence{{Direction: Up, Clicks: 1}})
	require.NoError(t, err)

	started := recvEvent(t, events).(CommandStarted)
	assert.False(t, started.Cued, "no cue below the minimum interval")
	assert.Empty(t, cue.spoken())
	p.Stop()
	recvClosed(t, events)
}

func TestPlayer_CueFailureDoesNotBlockRun(t *testing.T) {
	clock := newManualClock()
	cue := &fakeCue{err: assert.AnError}
	p := NewPlayer(PlayerConfig{Interval: time.Second, Bound: 25, Cue: cue, Clock: clock})
	events, err := p.Run(Sequence{{Direction: Up, Clicks: 1}})
	require.NoError(t, err)

	started := recvEvent(t, events).(CommandStarted)
	assert.False(t, started.Cued)

	waitForTimer(t, clock)
	clock.Advance(500 * time.Millisecond)
	recvEvent(t, events) // PositionUpdated still arrives
	waitForTimer(t, clock)
	clock.Advance(500 * time.Millisecond)
	recvEvent(t, events) // RunFinished
	recvClosed(t, events)
}

func TestRace_StopDuringRealClockRun(t *testing.T) {
	seq := make(Sequence, 100)
	for i := range seq {
		dir := Up
		if i%2 == 1 {
			dir = Down
		}
		seq[i] = Command{Direction: dir, Clicks: 1}
	}
	p := NewPlayer(PlayerConfig{Interval: 2 * time.Millisecond, Bound: 25})
	events, err := p.Run(seq)
	require.NoError(t, err)

	done := make(chan struct{})
	go func() {
		defer close(done)
		for range events {
		}
	}()

	time.Sleep(10 * time.Millisecond)
	p.Stop()

	select {
	case <-done:
	case <-time.After(2 * time.Second):
		t.Fatal("event channel did not close after stop")
	}
}
