package calendar

import (
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"timedeck/internal/models"
)

func mustDate(t *testing.T, s string) time.Time {
	t.Helper()
	d, err := time.Parse("2006-01-02", s)
	require.NoError(t, err)
	return d
}

func TestResolveHolidayFixedWinsOverCustom(t *testing.T) {
	store := NewStore(nil, []models.HolidayRange{
		{ID: "1", Name: "Company Shutdown", Start: "2024-10-28", End: "2024-11-03"},
	})

	// 2024-11-01 is Diwali in the fixed dataset and inside the custom range.
	resolved, ok := store.ResolveHoliday(mustDate(t, "2024-11-01"))
	require.True(t, ok)
	require.Equal(t, "Diwali", resolved.Name)
	require.Equal(t, HolidayFixed, resolved.Kind)

	resolved, ok = store.ResolveHoliday(mustDate(t, "2024-10-29"))
	require.True(t, ok)
	require.Equal(t, "Company Shutdown", resolved.Name)
	require.Equal(t, HolidayCustom, resolved.Kind)
}

func TestResolveHolidayInclusiveBoundaries(t *testing.T) {
	store := NewStore(nil, []models.HolidayRange{
		{ID: "1", Name: "Spring Break", Start: "2025-03-01", End: "2025-03-05"},
	})

	for _, date := range []string{"2025-03-01", "2025-03-03", "2025-03-05"} {
		resolved, ok := store.ResolveHoliday(mustDate(t, date))
		require.True(t, ok, date)
		require.Equal(t, "Spring Break", resolved.Name, date)
	}

	for _, date := range []string{"2025-02-28", "2025-03-06"} {
		_, ok := store.ResolveHoliday(mustDate(t, date))
		require.False(t, ok, date)
	}
}

func TestResolveHolidayOverlapStorageOrderWins(t *testing.T) {
	store := NewStore(nil, []models.HolidayRange{
		{ID: "1", Name: "First", Start: "2025-06-01", End: "2025-06-10"},
		{ID: "2", Name: "Second", Start: "2025-06-05", End: "2025-06-15"},
	})

	resolved, ok := store.ResolveHoliday(mustDate(t, "2025-06-07"))
	require.True(t, ok)
	require.Equal(t, "First", resolved.Name)
}

func TestRemindersForDate(t *testing.T) {
	store := NewStore([]models.Reminder{
		{ID: "1", Date: "2025-09-01", Title: "dentist"},
		{ID: "2", Date: "2025-09-02", Title: "rent"},
		{ID: "3", Date: "2025-09-01", Title: "call mom"},
	}, nil)

	matches := store.RemindersForDate(mustDate(t, "2025-09-01"))
	require.Len(t, matches, 2)
	require.Equal(t, "dentist", matches[0].Title, "storage order preserved")
	require.Equal(t, "call mom", matches[1].Title)

	require.Empty(t, store.RemindersForDate(mustDate(t, "2025-09-03")))
	require.NotNil(t, store.RemindersForDate(mustDate(t, "2025-09-03")))
}

func TestNextUpcomingReminder(t *testing.T) {
	store := NewStore([]models.Reminder{
		{ID: "1", Date: "2099-01-01", Title: "far future"},
		{ID: "2", Date: "2001-01-01", Title: "long past"},
		{ID: "3", Date: "2099-06-01", Title: "farther future"},
	}, nil)

	next, ok := store.NextUpcomingReminder(mustDate(t, "2025-08-31"))
	require.True(t, ok)
	require.Equal(t, "2099-01-01", next.Date)

	_, ok = store.NextUpcomingReminder(mustDate(t, "2100-01-01"))
	require.False(t, ok)
}

func TestNextUpcomingReminderIncludesToday(t *testing.T) {
	store := NewStore([]models.Reminder{
		{ID: "1", Date: "2025-08-31", Title: "today"},
	}, nil)

	next, ok := store.NextUpcomingReminder(mustDate(t, "2025-08-31"))
	require.True(t, ok)
	require.Equal(t, "today", next.Title)
}

func TestDaysUntil(t *testing.T) {
	noon := time.Date(2025, 8, 31, 12, 0, 0, 0, time.UTC)

	tests := []struct {
		date string
		want int
	}{
		{"2025-08-31", 0}, // later today
		{"2025-09-01", 1},
		{"2025-09-10", 10},
	}

	for _, test := range tests {
		require.Equal(t, test.want, DaysUntil(noon, test.date), test.date)
	}

	require.Equal(t, 0, DaysUntil(noon, "not-a-date"))
}

func TestAddReminder(t *testing.T) {
	store := NewStore(nil, nil)

	_, ok := store.AddReminder(mustDate(t, "2025-09-01"), "   ", "note")
	require.False(t, ok, "blank title is rejected")
	require.Empty(t, store.Reminders())

	r, ok := store.AddReminder(mustDate(t, "2025-09-01"), "  dentist ", " 9am ")
	require.True(t, ok)
	require.NotEmpty(t, r.ID)
	require.Equal(t, "dentist", r.Title)
	require.Equal(t, "9am", r.Note)
	require.Equal(t, "2025-09-01", r.Date)
	require.Len(t, store.Reminders(), 1)
}

func TestUpdateAndDeleteReminder(t *testing.T) {
	store := NewStore(nil, nil)
	r, _ := store.AddReminder(mustDate(t, "2025-09-01"), "dentist", "")

	require.False(t, store.UpdateReminder(r.ID, "  ", "x"), "blank title leaves it untouched")
	require.Equal(t, "dentist", store.Reminders()[0].Title)

	require.True(t, store.UpdateReminder(r.ID, "dentist (moved)", "now 10am"))
	require.Equal(t, "dentist (moved)", store.Reminders()[0].Title)
	require.Equal(t, "now 10am", store.Reminders()[0].Note)

	require.False(t, store.UpdateReminder("missing", "x", ""))

	store.DeleteReminder(r.ID)
	require.Empty(t, store.Reminders())
}

func TestAddHolidayRangeValidation(t *testing.T) {
	store := NewStore(nil, nil)

	tests := []struct {
		name    string
		start   string
		end     string
		holiday string
		wantErr bool
	}{
		{"valid", "2025-03-01", "2025-03-05", "Spring Break", false},
		{"single day", "2025-04-01", "2025-04-01", "April Fools", false},
		{"inverted", "2025-03-05", "2025-03-01", "Backwards", true},
		{"bad start", "03/01/2025", "2025-03-05", "Slashes", true},
		{"bad end", "2025-03-01", "tomorrow", "Vague", true},
		{"blank name", "2025-03-01", "2025-03-05", "   ", true},
	}

	for _, test := range tests {
		t.Run(test.name, func(t *testing.T) {
			_, err := store.AddHolidayRange(test.holiday, test.start, test.end)
			if test.wantErr {
				require.Error(t, err)
			} else {
				require.NoError(t, err)
			}
		})
	}

	require.Len(t, store.Ranges(), 2)
}

func TestDeleteHolidayRange(t *testing.T) {
	store := NewStore(nil, nil)
	r, err := store.AddHolidayRange("Break", "2025-03-01", "2025-03-05")
	require.NoError(t, err)

	store.DeleteHolidayRange(r.ID)
	require.Empty(t, store.Ranges())

	_, ok := store.ResolveHoliday(mustDate(t, "2025-03-03"))
	require.False(t, ok)
}

func TestDateKey(t *testing.T) {
	d := time.Date(2025, 8, 31, 23, 59, 59, 0, time.UTC)
	require.Equal(t, "2025-08-31", DateKey(d))
}
