// Package calendar resolves holidays and reminders for calendar dates.
// Dates are handled as YYYY-MM-DD strings throughout, which makes inclusive
// range checks a pair of lexicographic comparisons.
package calendar

import (
	"fmt"
	"math"
	"sort"
	"strings"
	"time"

	"github.com/google/uuid"

	"timedeck/internal/models"
)

const dateLayout = "2006-01-02"

// HolidayKind tells whether a resolved holiday came from the built-in
// dataset or a user-defined range.
type HolidayKind string

const (
	HolidayFixed  HolidayKind = "fixed"
	HolidayCustom HolidayKind = "custom"
)

// Resolved is a holiday match for a single date.
type Resolved struct {
	Name string
	Kind HolidayKind
}

// Store holds the user's reminders and custom holiday ranges. It is not
// safe for concurrent use; the UI drives it from a single goroutine.
type Store struct {
	reminders []models.Reminder
	ranges    []models.HolidayRange
}

func NewStore(reminders []models.Reminder, ranges []models.HolidayRange) *Store {
	return &Store{reminders: reminders, ranges: ranges}
}

func (s *Store) Reminders() []models.Reminder  { return s.reminders }
func (s *Store) Ranges() []models.HolidayRange { return s.ranges }

// DateKey normalizes a time to its date-only key.
func DateKey(t time.Time) string {
	return t.Format(dateLayout)
}

// ResolveHoliday returns at most one holiday for the given date. The fixed
// dataset is checked first and short-circuits; otherwise the first stored
// custom range containing the date wins. Overlapping ranges resolve in
// storage order, oldest first.
func (s *Store) ResolveHoliday(date time.Time) (Resolved, bool) {
	key := DateKey(date)
	for _, h := range fixedHolidays {
		if h.Date == key {
			return Resolved{Name: h.Name, Kind: HolidayFixed}, true
		}
	}
	for _, r := range s.ranges {
		if r.Start <= key && key <= r.End {
			return Resolved{Name: r.Name, Kind: HolidayCustom}, true
		}
	}
	return Resolved{}, false
}

// RemindersForDate returns every reminder on the given date in storage
// order. A date with none yields an empty slice.
func (s *Store) RemindersForDate(date time.Time) []models.Reminder {
	key := DateKey(date)
	matches := []models.Reminder{}
	for _, r := range s.reminders {
		if r.Date == key {
			matches = append(matches, r)
		}
	}
	return matches
}

// NextUpcomingReminder returns the earliest reminder dated today or later.
func (s *Store) NextUpcomingReminder(now time.Time) (models.Reminder, bool) {
	today := DateKey(now)
	var future []models.Reminder
	for _, r := range s.reminders {
		if r.Date >= today {
			future = append(future, r)
		}
	}
	if len(future) == 0 {
		return models.Reminder{}, false
	}
	sort.SliceStable(future, func(i, j int) bool {
		return future[i].Date < future[j].Date
	})
	return future[0], true
}

// DaysUntil returns the calendar-day distance from now to the given date,
// rounded up. A reminder later today counts as 0.
func DaysUntil(now time.Time, date string) int {
	target, err := time.ParseInLocation(dateLayout, date, now.Location())
	if err != nil {
		return 0
	}
	diff := target.Sub(now)
	return int(math.Ceil(diff.Hours() / 24))
}

// AddReminder stores a new reminder and returns it. A title that trims to
// empty is ignored.
func (s *Store) AddReminder(date time.Time, title, note string) (models.Reminder, bool) {
	title = strings.TrimSpace(title)
	if title == "" {
		return models.Reminder{}, false
	}
	r := models.Reminder{
		ID:    uuid.New().String(),
		Date:  DateKey(date),
		Title: title,
		Note:  strings.TrimSpace(note),
	}
	s.reminders = append(s.reminders, r)
	return r, true
}

// UpdateReminder edits a reminder's title and note in place. An empty
// trimmed title leaves the reminder untouched.
func (s *Store) UpdateReminder(id, title, note string) bool {
	title = strings.TrimSpace(title)
	if title == "" {
		return false
	}
	for i := range s.reminders {
		if s.reminders[i].ID == id {
			s.reminders[i].Title = title
			s.reminders[i].Note = strings.TrimSpace(note)
			return true
		}
	}
	return false
}

func (s *Store) DeleteReminder(id string) {
	kept := s.reminders[:0]
	for _, r := range s.reminders {
		if r.ID != id {
			kept = append(kept, r)
		}
	}
	s.reminders = kept
}

// AddHolidayRange stores a new custom range. Malformed dates and inverted
// ranges (start after end) are rejected outright rather than stored as
// ranges that can never match.
func (s *Store) AddHolidayRange(name, start, end string) (models.HolidayRange, error) {
	name = strings.TrimSpace(name)
	if name == "" {
		return models.HolidayRange{}, fmt.Errorf("holiday name is required")
	}
	if _, err := time.Parse(dateLayout, start); err != nil {
		return models.HolidayRange{}, fmt.Errorf("invalid start date %q: %w", start, err)
	}
	if _, err := time.Parse(dateLayout, end); err != nil {
		return models.HolidayRange{}, fmt.Errorf("invalid end date %q: %w", end, err)
	}
	if start > end {
		return models.HolidayRange{}, fmt.Errorf("start date %s is after end date %s", start, end)
	}
	r := models.HolidayRange{
		ID:    uuid.New().String(),
		Name:  name,
		Start: start,
		End:   end,
	}
	s.ranges = append(s.ranges, r)
	return r, nil
}

func (s *Store) DeleteHolidayRange(id string) {
	kept := s.ranges[:0]
	for _, r := range s.ranges {
		if r.ID != id {
			kept = append(kept, r)
		}
	}
	s.ranges = kept
}
