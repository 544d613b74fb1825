package engine

import (
	"testing"
	"time"

	"github.com/stretchr/testify/require"
)

func tickN(sw *Stopwatch, n int) {
	for i := 0; i < n; i++ {
		sw.Tick()
	}
}

func TestStopwatchTickOnlyWhileRunning(t *testing.T) {
	sw := NewStopwatch()

	sw.Tick()
	require.EqualValues(t, 0, sw.ElapsedMs(), "tick while idle should not accumulate")

	sw.Start()
	tickN(sw, 5)
	require.EqualValues(t, 50, sw.ElapsedMs())

	sw.Pause()
	tickN(sw, 5)
	require.EqualValues(t, 50, sw.ElapsedMs(), "tick while paused should not accumulate")

	sw.Start()
	tickN(sw, 1)
	require.EqualValues(t, 60, sw.ElapsedMs(), "resume continues from the frozen value")
}

func TestStopwatchLapAtZeroIsNoOp(t *testing.T) {
	sw := NewStopwatch()
	sw.Lap(time.Now())
	require.Empty(t, sw.Laps())

	sw.Start()
	sw.Lap(time.Now())
	require.Empty(t, sw.Laps(), "running but still at zero elapsed")
}

func TestStopwatchLapPrependsWithIncreasingNumbers(t *testing.T) {
	sw := NewStopwatch()
	sw.Start()

	tickN(sw, 10)
	sw.Lap(time.Now())
	tickN(sw, 10)
	sw.Lap(time.Now())

	laps := sw.Laps()
	require.Len(t, laps, 2)
	require.Equal(t, 2, laps[0].Number, "newest lap first")
	require.Equal(t, 1, laps[1].Number)
	require.EqualValues(t, 200, laps[0].TimeMs)
	require.EqualValues(t, 100, laps[1].TimeMs)
	require.Equal(t, "Lap 2", laps[0].Label)
}

func TestStopwatchResetKeepsLaps(t *testing.T) {
	sw := NewStopwatch()
	sw.Start()
	tickN(sw, 3)
	sw.Lap(time.Now())

	sw.Reset()
	require.False(t, sw.Running())
	require.EqualValues(t, 0, sw.ElapsedMs())
	require.Len(t, sw.Laps(), 1)
}

func TestStopwatchNumbersNotReusedAfterDelete(t *testing.T) {
	sw := NewStopwatch()
	sw.Start()

	tickN(sw, 1)
	sw.Lap(time.Now())
	sw.Lap(time.Now())

	sw.ToggleSelection(sw.Laps()[0].ID)
	sw.DeleteSelected()
	require.Len(t, sw.Laps(), 1)
	require.Zero(t, sw.SelectedCount())

	sw.Lap(time.Now())
	require.Equal(t, 3, sw.Laps()[0].Number, "deleted numbers are not handed out again")
}

func TestStopwatchDeleteAllResetsCounter(t *testing.T) {
	sw := NewStopwatch()
	sw.Start()
	tickN(sw, 1)
	sw.Lap(time.Now())
	sw.Lap(time.Now())
	sw.Lap(time.Now())

	sw.DeleteAll()
	require.Empty(t, sw.Laps())

	sw.Lap(time.Now())
	require.Equal(t, 1, sw.Laps()[0].Number)
}

func TestStopwatchDeleteSelectedWithoutSelection(t *testing.T) {
	sw := NewStopwatch()
	sw.Start()
	tickN(sw, 1)
	sw.Lap(time.Now())

	sw.DeleteSelected()
	require.Len(t, sw.Laps(), 1)
}

func TestStopwatchToggleSelection(t *testing.T) {
	sw := NewStopwatch()
	sw.Start()
	tickN(sw, 1)
	sw.Lap(time.Now())
	id := sw.Laps()[0].ID

	sw.ToggleSelection(id)
	require.True(t, sw.IsSelected(id))

	sw.ToggleSelection(id)
	require.False(t, sw.IsSelected(id))
}

func TestStopwatchRename(t *testing.T) {
	sw := NewStopwatch()
	sw.Start()
	tickN(sw, 1)
	sw.Lap(time.Now())
	id := sw.Laps()[0].ID

	sw.Rename(id, "  warmup  ")
	require.Equal(t, "warmup", sw.Laps()[0].Label)

	sw.Rename(id, "   ")
	require.Equal(t, "warmup", sw.Laps()[0].Label, "blank label is ignored")

	sw.Rename("no-such-id", "ghost")
	require.Equal(t, "warmup", sw.Laps()[0].Label)
}
