package engine

import (
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"timedeck/internal/models"
)

func TestTimerSetDuration(t *testing.T) {
	tm := NewTimer()

	tm.SetDuration(90_000)
	require.EqualValues(t, 90_000, tm.DurationMs())
	require.EqualValues(t, 90_000, tm.RemainingMs())
	require.False(t, tm.Running())
	require.False(t, tm.Completed())

	tm.SetDuration(0)
	require.EqualValues(t, 90_000, tm.DurationMs(), "non-positive duration is ignored")

	tm.SetDuration(-5)
	require.EqualValues(t, 90_000, tm.DurationMs())
}

func TestTimerCountdownAndPauseResume(t *testing.T) {
	tm := NewTimer()
	tm.SetDuration(10_000)
	now := time.Now()

	tm.Start(now)
	require.True(t, tm.Running())

	// 15 quanta at 100ms each.
	for i := 0; i < 15; i++ {
		tm.Tick()
	}
	require.EqualValues(t, 8_500, tm.RemainingMs())

	tm.Pause()
	require.False(t, tm.Running())
	require.True(t, tm.State().Anchor.IsZero())
	tm.Tick()
	require.EqualValues(t, 8_500, tm.RemainingMs(), "paused timers do not tick")

	tm.Start(now)
	require.True(t, tm.Running())
	tm.Tick()
	require.EqualValues(t, 8_400, tm.RemainingMs(), "resume continues from where it paused")
}

func TestTimerStartAnchorReflectsElapsed(t *testing.T) {
	tm := NewTimer()
	tm.SetDuration(60_000)
	now := time.Now()

	for i := 0; i < 100; i++ {
		tm.Tick()
	}
	require.EqualValues(t, 60_000, tm.RemainingMs(), "ticks before start are ignored")

	tm.Start(now)
	require.Equal(t, now, tm.State().Anchor, "fresh start anchors at now")

	for i := 0; i < 100; i++ {
		tm.Tick()
	}
	tm.Pause()
	tm.Start(now)
	want := now.Add(-10 * time.Second)
	require.Equal(t, want, tm.State().Anchor, "anchor is backdated by consumed time")
}

func TestTimerCompletion(t *testing.T) {
	tm := NewTimer()
	tm.SetDuration(300)
	tm.Start(time.Now())

	tm.Tick()
	tm.Tick()
	require.False(t, tm.Completed())

	tm.Tick()
	require.True(t, tm.Completed())
	require.False(t, tm.Running())
	require.EqualValues(t, 0, tm.RemainingMs())
	require.True(t, tm.State().Anchor.IsZero())

	tm.Tick()
	require.EqualValues(t, 0, tm.RemainingMs(), "remaining never goes negative")
}

func TestTimerStartWithNothingRemaining(t *testing.T) {
	tm := NewTimer()
	tm.Start(time.Now())
	require.False(t, tm.Running())

	tm.SetDuration(100)
	tm.Start(time.Now())
	tm.Tick()
	require.True(t, tm.Completed())

	tm.Start(time.Now())
	require.False(t, tm.Running(), "a completed timer does not start without a reset")
}

func TestTimerResetRestartClear(t *testing.T) {
	tm := NewTimer()
	tm.SetDuration(5_000)
	now := time.Now()
	tm.Start(now)
	for i := 0; i < 10; i++ {
		tm.Tick()
	}

	tm.Reset()
	require.EqualValues(t, 5_000, tm.RemainingMs())
	require.False(t, tm.Running())

	tm.Restart(now)
	require.EqualValues(t, 5_000, tm.RemainingMs())
	require.True(t, tm.Running())
	require.Equal(t, now, tm.State().Anchor)

	tm.Clear()
	require.EqualValues(t, 0, tm.DurationMs())
	require.EqualValues(t, 0, tm.RemainingMs())
	require.False(t, tm.Running())

	tm.Restart(now)
	require.False(t, tm.Running(), "restart without a duration stays idle")
}

func TestTimerRehydrateAfterSuspend(t *testing.T) {
	now := time.Now()

	tests := []struct {
		name          string
		gap           time.Duration
		wantRemaining int64
		wantCompleted bool
	}{
		{"short gap", 10 * time.Second, 50_000, false},
		{"exact exhaustion", 60 * time.Second, 0, true},
		{"long gap", 5 * time.Minute, 0, true},
	}

	for _, test := range tests {
		t.Run(test.name, func(t *testing.T) {
			state := models.TimerState{
				DurationMs:  60_000,
				RemainingMs: 60_000,
				Running:     true,
				Anchor:      now,
			}
			tm := NewTimerFromState(state, now.Add(test.gap))
			require.EqualValues(t, test.wantRemaining, tm.RemainingMs())
			require.Equal(t, test.wantCompleted, tm.Completed())
			require.Equal(t, !test.wantCompleted, tm.Running())
		})
	}
}

func TestTimerRehydratePartiallyElapsed(t *testing.T) {
	now := time.Now()

	// Persisted mid-run: 60s duration, 40s remaining when saved, so the
	// anchor sits 20s in the past. Resume 30s later.
	state := models.TimerState{
		DurationMs:  60_000,
		RemainingMs: 40_000,
		Running:     true,
		Anchor:      now.Add(-20 * time.Second),
	}
	tm := NewTimerFromState(state, now.Add(30*time.Second))
	require.EqualValues(t, 10_000, tm.RemainingMs())
	require.True(t, tm.Running())
}

func TestTimerRehydrateIdleStateUntouched(t *testing.T) {
	state := models.TimerState{
		DurationMs:  60_000,
		RemainingMs: 45_000,
		Running:     false,
	}
	tm := NewTimerFromState(state, time.Now())
	require.EqualValues(t, 45_000, tm.RemainingMs())
	require.False(t, tm.Running())
}

func TestTimerProgress(t *testing.T) {
	tm := NewTimer()
	require.Zero(t, tm.Progress(), "no duration means no progress")

	tm.SetDuration(1_000)
	tm.Start(time.Now())
	for i := 0; i < 5; i++ {
		tm.Tick()
	}
	require.InDelta(t, 0.5, tm.Progress(), 1e-9)
}
