package storage

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"timedeck/internal/models"
)

func newTestStorage(t *testing.T) *Storage {
	t.Helper()
	s, err := New(t.TempDir())
	require.NoError(t, err)
	return s
}

func TestTimerStateRoundTrip(t *testing.T) {
	s := newTestStorage(t)

	anchor := time.Date(2025, 8, 31, 10, 30, 0, 0, time.UTC)
	state := models.TimerState{
		DurationMs:  60_000,
		RemainingMs: 42_000,
		Running:     true,
		Anchor:      anchor,
	}
	require.NoError(t, s.SaveTimerState(state))

	loaded, err := s.GetTimerState()
	require.NoError(t, err)
	require.Equal(t, state.DurationMs, loaded.DurationMs)
	require.Equal(t, state.RemainingMs, loaded.RemainingMs)
	require.True(t, loaded.Running)
	require.True(t, loaded.Anchor.Equal(anchor))
}

func TestMissingFilesYieldDefaults(t *testing.T) {
	s := newTestStorage(t)

	state, err := s.GetTimerState()
	require.NoError(t, err)
	require.Equal(t, models.TimerState{}, state)

	settings, err := s.GetSettings()
	require.NoError(t, err)
	require.Equal(t, models.TimerSettings{}, settings)

	presets, err := s.GetPresets()
	require.NoError(t, err)
	require.Empty(t, presets)
	require.NotNil(t, presets)

	reminders, err := s.GetReminders()
	require.NoError(t, err)
	require.Empty(t, reminders)

	ranges, err := s.GetHolidayRanges()
	require.NoError(t, err)
	require.Empty(t, ranges)
}

func TestCorruptFilesFallBackToDefaults(t *testing.T) {
	dir := t.TempDir()
	s, err := New(dir)
	require.NoError(t, err)

	for _, name := range []string{"timer.json", "settings.json", "presets.json", "reminders.json", "holidays.json"} {
		require.NoError(t, os.WriteFile(filepath.Join(dir, name), []byte("{not json"), 0644))
	}

	state, err := s.GetTimerState()
	require.NoError(t, err)
	require.Equal(t, models.TimerState{}, state)

	reminders, err := s.GetReminders()
	require.NoError(t, err)
	require.Empty(t, reminders)

	ranges, err := s.GetHolidayRanges()
	require.NoError(t, err)
	require.Empty(t, ranges)
}

func TestSettingsRoundTrip(t *testing.T) {
	s := newTestStorage(t)

	require.NoError(t, s.SaveSettings(models.TimerSettings{Muted: true, Repeat: true}))

	settings, err := s.GetSettings()
	require.NoError(t, err)
	require.True(t, settings.Muted)
	require.True(t, settings.Repeat)
}

func TestPresetsRoundTrip(t *testing.T) {
	s := newTestStorage(t)

	presets := []models.Preset{
		{ID: "a", Name: "Tea", DurationMs: 3 * 60 * 1000, Color: "#22D3EE"},
		{ID: "b", Name: "Deep Work", DurationMs: 90 * 60 * 1000, Color: "#818CF8"},
	}
	require.NoError(t, s.SavePresets(presets))

	loaded, err := s.GetPresets()
	require.NoError(t, err)
	require.Equal(t, presets, loaded)
}

func TestRemindersAndHolidaysRoundTrip(t *testing.T) {
	s := newTestStorage(t)

	reminders := []models.Reminder{
		{ID: "1", Date: "2025-09-01", Title: "dentist", Note: "9am"},
	}
	require.NoError(t, s.SaveReminders(reminders))

	ranges := []models.HolidayRange{
		{ID: "2", Name: "Break", Start: "2025-03-01", End: "2025-03-05"},
	}
	require.NoError(t, s.SaveHolidayRanges(ranges))

	loadedReminders, err := s.GetReminders()
	require.NoError(t, err)
	require.Equal(t, reminders, loadedReminders)

	loadedRanges, err := s.GetHolidayRanges()
	require.NoError(t, err)
	require.Equal(t, ranges, loadedRanges)
}

func TestResetAllData(t *testing.T) {
	s := newTestStorage(t)

	require.NoError(t, s.SaveSettings(models.TimerSettings{Muted: true}))
	require.NoError(t, s.SaveReminders([]models.Reminder{{ID: "1", Date: "2025-09-01", Title: "x"}}))

	require.NoError(t, s.ResetAllData())

	settings, err := s.GetSettings()
	require.NoError(t, err)
	require.Equal(t, models.TimerSettings{}, settings)

	reminders, err := s.GetReminders()
	require.NoError(t, err)
	require.Empty(t, reminders)

	// Removing again is fine when nothing is there.
	require.NoError(t, s.ResetAllData())
}
