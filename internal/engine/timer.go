package engine

import (
	"time"

	"timedeck/internal/models"
)

// TimerQuantum is the countdown decrement applied per tick while running.
const TimerQuantum = 100 * time.Millisecond

// CompletionHold is how long the completion banner stays up; RepeatDelay is
// the additional wait before an auto-restart in repeat mode.
const (
	CompletionHold = 3 * time.Second
	RepeatDelay    = 2 * time.Second
)

// Timer counts down from a configured duration. While running it carries an
// anchor, the wall-clock instant the current segment effectively started at,
// so the true remaining time is always duration - (now - anchor) no matter
// how long the process was suspended in between.
type Timer struct {
	state models.TimerState
}

func NewTimer() *Timer {
	return &Timer{}
}

// NewTimerFromState rehydrates a persisted timer. If it was running when
// persisted, the wall-clock gap since the anchor is charged against the
// remaining time; a gap that exhausts it lands the timer in Completed
// rather than Running.
func NewTimerFromState(state models.TimerState, now time.Time) *Timer {
	t := &Timer{state: state}
	if state.Running && !state.Anchor.IsZero() {
		remaining := state.DurationMs - now.Sub(state.Anchor).Milliseconds()
		if remaining <= 0 {
			t.state.RemainingMs = 0
			t.state.Running = false
			t.state.Completed = true
			t.state.Anchor = time.Time{}
		} else {
			t.state.RemainingMs = remaining
		}
	}
	return t
}

func (t *Timer) State() models.TimerState { return t.state }
func (t *Timer) DurationMs() int64        { return t.state.DurationMs }
func (t *Timer) RemainingMs() int64       { return t.state.RemainingMs }
func (t *Timer) Running() bool            { return t.state.Running }
func (t *Timer) Completed() bool          { return t.state.Completed }

// SetDuration configures a fresh countdown. Non-positive durations are
// ignored.
func (t *Timer) SetDuration(ms int64) {
	if ms <= 0 {
		return
	}
	t.state = models.TimerState{
		DurationMs:  ms,
		RemainingMs: ms,
	}
}

// Start begins or resumes the countdown. A timer with nothing remaining
// stays put.
func (t *Timer) Start(now time.Time) {
	if t.state.RemainingMs <= 0 {
		return
	}
	t.state.Running = true
	t.state.Completed = false
	t.state.Anchor = now.Add(-time.Duration(t.state.DurationMs-t.state.RemainingMs) * time.Millisecond)
}

func (t *Timer) Pause() {
	t.state.Running = false
	t.state.Anchor = time.Time{}
}

// Tick decrements remaining time by one quantum. Reaching zero clamps and
// completes; the caller decides what a completion looks like.
func (t *Timer) Tick() {
	if !t.state.Running {
		return
	}
	t.state.RemainingMs -= TimerQuantum.Milliseconds()
	if t.state.RemainingMs <= 0 {
		t.state.RemainingMs = 0
		t.state.Running = false
		t.state.Completed = true
		t.state.Anchor = time.Time{}
	}
}

// Reset rewinds to the full duration without starting.
func (t *Timer) Reset() {
	t.state.RemainingMs = t.state.DurationMs
	t.state.Running = false
	t.state.Completed = false
	t.state.Anchor = time.Time{}
}

// Restart rewinds to the full duration and starts immediately.
func (t *Timer) Restart(now time.Time) {
	t.state.RemainingMs = t.state.DurationMs
	t.state.Completed = false
	t.state.Running = t.state.DurationMs > 0
	if t.state.Running {
		t.state.Anchor = now
	} else {
		t.state.Anchor = time.Time{}
	}
}

// Clear wipes the configured duration entirely.
func (t *Timer) Clear() {
	t.state = models.TimerState{}
}

// Progress reports completion as a fraction in [0, 1].
func (t *Timer) Progress() float64 {
	if t.state.DurationMs == 0 {
		return 0
	}
	return float64(t.state.DurationMs-t.state.RemainingMs) / float64(t.state.DurationMs)
}
