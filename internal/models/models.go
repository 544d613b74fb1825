package models

import (
	"time"
)

// Lap is an immutable snapshot of the stopwatch at the moment it was taken.
// Only the label may change afterwards.
type Lap struct {
	ID        string    `json:"id"`
	Number    int       `json:"number"`    // Sequence number, never reused within a session
	TimeMs    int64     `json:"time_ms"`   // Elapsed stopwatch time at capture
	Timestamp time.Time `json:"timestamp"` // Wall clock at capture
	Label     string    `json:"label"`
}

// TimerState is the persisted countdown state. Anchor marks when the current
// run segment started, so true remaining time can be recomputed after a
// process suspend as duration - (now - anchor).
type TimerState struct {
	DurationMs  int64     `json:"duration_ms"`
	RemainingMs int64     `json:"remaining_ms"`
	Running     bool      `json:"running"`
	Completed   bool      `json:"completed"`
	Anchor      time.Time `json:"anchor,omitempty"` // Zero when not running
}

// TimerSettings is persisted separately from TimerState.
type TimerSettings struct {
	Muted  bool `json:"muted"`
	Repeat bool `json:"repeat"`
}

// Preset is a named timer duration. Built-in presets live in code; custom
// ones are persisted.
type Preset struct {
	ID         string `json:"id"`
	Name       string `json:"name"`
	DurationMs int64  `json:"duration_ms"`
	Color      string `json:"color"` // Hex color for the preset button
}

// Reminder is a dated note. One date may hold any number of reminders.
type Reminder struct {
	ID    string `json:"id"`
	Date  string `json:"date"` // YYYY-MM-DD
	Title string `json:"title"`
	Note  string `json:"note,omitempty"`
}

// HolidayRange is a user-defined inclusive date interval.
type HolidayRange struct {
	ID    string `json:"id"`
	Name  string `json:"name"`
	Start string `json:"start"` // YYYY-MM-DD, inclusive
	End   string `json:"end"`   // YYYY-MM-DD, inclusive
}

// Holiday is a single resolved holiday for a calendar date.
type Holiday struct {
	Date string `json:"date"` // YYYY-MM-DD
	Name string `json:"name"`
}

func DefaultPresets() []Preset {
	return []Preset{
		{Name: "5 min", DurationMs: 5 * 60 * 1000, Color: "#4ADE80"},
		{Name: "10 min", DurationMs: 10 * 60 * 1000, Color: "#60A5FA"},
		{Name: "25 min", DurationMs: 25 * 60 * 1000, Color: "#C084FC"},
		{Name: "30 min", DurationMs: 30 * 60 * 1000, Color: "#F472B6"},
		{Name: "45 min", DurationMs: 45 * 60 * 1000, Color: "#FB923C"},
		{Name: "60 min", DurationMs: 60 * 60 * 1000, Color: "#F87171"},
	}
}

// PresetPalette is the pool of colors handed out to custom presets.
var PresetPalette = []string{
	"#22D3EE",
	"#818CF8",
	"#34D399",
	"#FACC15",
	"#FB7185",
	"#A78BFA",
	"#2DD4BF",
	"#FBBF24",
}
