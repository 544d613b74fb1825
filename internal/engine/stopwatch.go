package engine

import (
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"

	"timedeck/internal/models"
)

// StopwatchQuantum is the fixed increment added to elapsed time per tick.
// Elapsed time is accumulated in quanta rather than measured against wall
// clock, so long sessions can drift if the host throttles timers.
const StopwatchQuantum = 10 * time.Millisecond

// Stopwatch accumulates elapsed running time and keeps a lap history.
// Every operation is total; invalid transitions are silent no-ops.
type Stopwatch struct {
	elapsedMs  int64
	running    bool
	laps       []models.Lap
	selected   map[string]bool
	lapCounter int
}

func NewStopwatch() *Stopwatch {
	return &Stopwatch{
		selected:   make(map[string]bool),
		lapCounter: 1,
	}
}

func (s *Stopwatch) ElapsedMs() int64 { return s.elapsedMs }
func (s *Stopwatch) Running() bool    { return s.running }

// Laps returns the lap history, newest first.
func (s *Stopwatch) Laps() []models.Lap { return s.laps }

func (s *Stopwatch) Start() {
	s.running = true
}

func (s *Stopwatch) Pause() {
	s.running = false
}

// Reset zeroes elapsed time and stops the stopwatch. Laps are kept.
func (s *Stopwatch) Reset() {
	s.running = false
	s.elapsedMs = 0
}

// Tick advances elapsed time by one quantum. Only effective while running.
func (s *Stopwatch) Tick() {
	if s.running {
		s.elapsedMs += StopwatchQuantum.Milliseconds()
	}
}

// Lap records the current elapsed time as a new lap, newest first. Taking a
// lap at zero elapsed time does nothing. Sequence numbers keep increasing
// even when laps are deleted individually.
func (s *Stopwatch) Lap(now time.Time) {
	if s.elapsedMs == 0 {
		return
	}
	lap := models.Lap{
		ID:        uuid.New().String(),
		Number:    s.lapCounter,
		TimeMs:    s.elapsedMs,
		Timestamp: now,
		Label:     fmt.Sprintf("Lap %d", s.lapCounter),
	}
	s.laps = append([]models.Lap{lap}, s.laps...)
	s.lapCounter++
}

func (s *Stopwatch) ToggleSelection(id string) {
	if s.selected[id] {
		delete(s.selected, id)
	} else {
		s.selected[id] = true
	}
}

func (s *Stopwatch) IsSelected(id string) bool { return s.selected[id] }

func (s *Stopwatch) SelectedCount() int { return len(s.selected) }

// DeleteSelected removes every selected lap and clears the selection.
func (s *Stopwatch) DeleteSelected() {
	if len(s.selected) == 0 {
		return
	}
	kept := s.laps[:0]
	for _, lap := range s.laps {
		if !s.selected[lap.ID] {
			kept = append(kept, lap)
		}
	}
	s.laps = kept
	s.selected = make(map[string]bool)
}

// DeleteAll clears the lap history and restarts lap numbering at 1.
func (s *Stopwatch) DeleteAll() {
	s.laps = nil
	s.selected = make(map[string]bool)
	s.lapCounter = 1
}

// Rename updates a lap's display label in place. An empty label after
// trimming is ignored.
func (s *Stopwatch) Rename(id, label string) {
	label = strings.TrimSpace(label)
	if label == "" {
		return
	}
	for i := range s.laps {
		if s.laps[i].ID == id {
			s.laps[i].Label = label
			return
		}
	}
}
