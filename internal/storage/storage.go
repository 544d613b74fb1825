package storage

import (
	"encoding/json"
	"os"
	"path/filepath"

	"timedeck/internal/models"
)

// Storage persists each concern to its own JSON file under the data
// directory. Reads fall back to the zero value when the file is missing or
// unreadable as JSON; a corrupted slice is indistinguishable from an empty
// one, which is the intended recovery.
type Storage struct {
	dataDir string
}

// New creates a Storage rooted at dir, defaulting to ~/.timedeck when dir
// is empty.
func New(dir string) (*Storage, error) {
	if dir == "" {
		homeDir, err := os.UserHomeDir()
		if err != nil {
			return nil, err
		}
		dir = filepath.Join(homeDir, ".timedeck")
	}
	if err := os.MkdirAll(dir, 0755); err != nil {
		return nil, err
	}
	return &Storage{dataDir: dir}, nil
}

func (s *Storage) timerFile() string     { return filepath.Join(s.dataDir, "timer.json") }
func (s *Storage) settingsFile() string  { return filepath.Join(s.dataDir, "settings.json") }
func (s *Storage) presetsFile() string   { return filepath.Join(s.dataDir, "presets.json") }
func (s *Storage) remindersFile() string { return filepath.Join(s.dataDir, "reminders.json") }
func (s *Storage) holidaysFile() string  { return filepath.Join(s.dataDir, "holidays.json") }

func writeJSON(path string, v any) error {
	data, err := json.MarshalIndent(v, "", "  ")
	if err != nil {
		return err
	}
	return os.WriteFile(path, data, 0644)
}

// readJSON loads path into v. Missing and malformed files both leave v at
// its zero value and report success.
func readJSON(path string, v any) error {
	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return nil
		}
		return err
	}
	if err := json.Unmarshal(data, v); err != nil {
		return nil
	}
	return nil
}

func (s *Storage) SaveTimerState(state models.TimerState) error {
	return writeJSON(s.timerFile(), state)
}

func (s *Storage) GetTimerState() (models.TimerState, error) {
	var state models.TimerState
	err := readJSON(s.timerFile(), &state)
	return state, err
}

func (s *Storage) SaveSettings(settings models.TimerSettings) error {
	return writeJSON(s.settingsFile(), settings)
}

func (s *Storage) GetSettings() (models.TimerSettings, error) {
	var settings models.TimerSettings
	err := readJSON(s.settingsFile(), &settings)
	return settings, err
}

func (s *Storage) SavePresets(presets []models.Preset) error {
	return writeJSON(s.presetsFile(), presets)
}

func (s *Storage) GetPresets() ([]models.Preset, error) {
	var presets []models.Preset
	if err := readJSON(s.presetsFile(), &presets); err != nil {
		return nil, err
	}
	if presets == nil {
		presets = []models.Preset{}
	}
	return presets, nil
}

func (s *Storage) SaveReminders(reminders []models.Reminder) error {
	return writeJSON(s.remindersFile(), reminders)
}

func (s *Storage) GetReminders() ([]models.Reminder, error) {
	var reminders []models.Reminder
	if err := readJSON(s.remindersFile(), &reminders); err != nil {
		return nil, err
	}
	if reminders == nil {
		reminders = []models.Reminder{}
	}
	return reminders, nil
}

func (s *Storage) SaveHolidayRanges(ranges []models.HolidayRange) error {
	return writeJSON(s.holidaysFile(), ranges)
}

func (s *Storage) GetHolidayRanges() ([]models.HolidayRange, error) {
	var ranges []models.HolidayRange
	if err := readJSON(s.holidaysFile(), &ranges); err != nil {
		return nil, err
	}
	if ranges == nil {
		ranges = []models.HolidayRange{}
	}
	return ranges, nil
}

// ResetAllData removes every persisted slice.
func (s *Storage) ResetAllData() error {
	files := []string{
		s.timerFile(),
		s.settingsFile(),
		s.presetsFile(),
		s.remindersFile(),
		s.holidaysFile(),
	}
	for _, f := range files {
		if err := os.Remove(f); err != nil && !os.IsNotExist(err) {
			return err
		}
	}
	return nil
}
