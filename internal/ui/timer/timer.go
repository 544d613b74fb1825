package timer

import (
	"fmt"
	"math/rand"
	"os"
	"strconv"
	"time"

	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/progress"
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/google/uuid"

	"timedeck/internal/config"
	"timedeck/internal/engine"
	"timedeck/internal/models"
	"timedeck/internal/storage"
)

// tickMsg and the completion messages carry the sequence they were
// scheduled under; a stale message from before a pause, reset, or manual
// restart is dropped so two countdown chains can never overlap.
type tickMsg struct {
	seq int
}

type bannerDoneMsg struct {
	seq int
}

type repeatFireMsg struct {
	seq int
}

type viewMode int

const (
	viewMain viewMode = iota
	viewPresets
	viewInput
	viewAddPreset
)

type presetEntry struct {
	preset models.Preset
	custom bool
	quick  bool
}

type Model struct {
	timer   *engine.Timer
	storage *storage.Storage
	cfg     config.Config

	settings      models.TimerSettings
	customPresets []models.Preset

	mode          viewMode
	tickSeq       int
	completionSeq int
	sinceSave     int
	banner        bool

	progress     progress.Model
	presetCursor int

	nameInput    textinput.Model
	minutesInput textinput.Model
	hmsInputs    []textinput.Model
	focusIndex   int
	errorMsg     string

	width      int
	height     int
	exitToMenu bool
	shouldQuit bool
}

// New loads persisted timer state and rehydrates it against the current
// wall clock: a countdown that ran out while the process was away comes
// back Completed, not Running.
func New(store *storage.Storage, cfg config.Config) (Model, error) {
	state, err := store.GetTimerState()
	if err != nil {
		return Model{}, err
	}
	settings, err := store.GetSettings()
	if err != nil {
		return Model{}, err
	}
	customPresets, err := store.GetPresets()
	if err != nil {
		return Model{}, err
	}

	prog := progress.New(progress.WithScaledGradient("#60A5FA", "#C084FC"))
	prog.Width = 60

	nameInput := textinput.New()
	nameInput.Placeholder = "Preset name"
	nameInput.CharLimit = 30
	nameInput.Width = 20

	minutesInput := textinput.New()
	minutesInput.Placeholder = "Minutes"
	minutesInput.CharLimit = 4
	minutesInput.Width = 10

	hmsInputs := make([]textinput.Model, 3)
	for i, placeholder := range []string{"HH", "MM", "SS"} {
		hmsInputs[i] = textinput.New()
		hmsInputs[i].Placeholder = placeholder
		hmsInputs[i].CharLimit = 2
		hmsInputs[i].Width = 4
	}

	return Model{
		timer:         engine.NewTimerFromState(state, time.Now()),
		storage:       store,
		cfg:           cfg,
		settings:      settings,
		customPresets: customPresets,
		progress:      prog,
		nameInput:     nameInput,
		minutesInput:  minutesInput,
		hmsInputs:     hmsInputs,
	}, nil
}

func (m Model) Init() tea.Cmd {
	if m.timer.Running() {
		return tickCmd(m.tickSeq)
	}
	return nil
}

func tickCmd(seq int) tea.Cmd {
	return tea.Tick(engine.TimerQuantum, func(time.Time) tea.Msg {
		return tickMsg{seq: seq}
	})
}

// bellCmd rings the terminal bell. BEL does not move the cursor, so it is
// safe to emit from inside the alt screen.
func bellCmd() tea.Cmd {
	return func() tea.Msg {
		os.Stdout.WriteString("\a")
		return nil
	}
}

func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		m.progress.Width = min(msg.Width-20, 80)
		return m, nil

	case tickMsg:
		return m.handleTick(msg)

	case bannerDoneMsg:
		if msg.seq != m.completionSeq {
			return m, nil
		}
		m.banner = false
		if m.settings.Repeat {
			seq := m.completionSeq
			return m, tea.Tick(engine.RepeatDelay, func(time.Time) tea.Msg {
				return repeatFireMsg{seq: seq}
			})
		}
		return m, nil

	case repeatFireMsg:
		if msg.seq != m.completionSeq {
			return m, nil
		}
		m.timer.Restart(time.Now())
		m.persistTimer()
		if m.timer.Running() {
			m.tickSeq++
			return m, tickCmd(m.tickSeq)
		}
		return m, nil

	case progress.FrameMsg:
		progressModel, cmd := m.progress.Update(msg)
		m.progress = progressModel.(progress.Model)
		return m, cmd

	case tea.KeyMsg:
		switch m.mode {
		case viewMain:
			return m.updateMain(msg)
		case viewPresets:
			return m.updatePresets(msg)
		case viewInput:
			return m.updateInput(msg)
		case viewAddPreset:
			return m.updateAddPreset(msg)
		}
	}

	return m, nil
}

func (m Model) handleTick(msg tickMsg) (tea.Model, tea.Cmd) {
	if msg.seq != m.tickSeq || !m.timer.Running() {
		return m, nil
	}
	m.timer.Tick()
	if m.timer.Completed() {
		m.persistTimer()
		m.banner = true
		seq := m.completionSeq
		cmds := []tea.Cmd{
			tea.Tick(engine.CompletionHold, func(time.Time) tea.Msg {
				return bannerDoneMsg{seq: seq}
			}),
		}
		if !m.settings.Muted {
			cmds = append(cmds, bellCmd())
		}
		return m, tea.Batch(cmds...)
	}

	// Snapshot state once a second; remaining time is reconstructed from
	// the anchor on reload anyway.
	m.sinceSave++
	if m.sinceSave >= 10 {
		m.sinceSave = 0
		m.persistTimer()
	}
	return m, tickCmd(m.tickSeq)
}

func (m Model) updateMain(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch {
	case key.Matches(msg, keys.Start):
		if !m.timer.Running() && m.timer.RemainingMs() > 0 {
			m.banner = false
			m.completionSeq++
			m.timer.Start(time.Now())
			m.persistTimer()
			m.tickSeq++
			return m, tickCmd(m.tickSeq)
		}

	case key.Matches(msg, keys.Pause):
		if m.timer.Running() {
			m.timer.Pause()
			m.persistTimer()
			m.tickSeq++
		}

	case key.Matches(msg, keys.Reset):
		m.banner = false
		m.completionSeq++
		m.timer.Reset()
		m.persistTimer()
		m.tickSeq++

	case key.Matches(msg, keys.Restart):
		if m.timer.DurationMs() > 0 {
			m.banner = false
			m.completionSeq++
			m.timer.Restart(time.Now())
			m.persistTimer()
			m.tickSeq++
			return m, tickCmd(m.tickSeq)
		}

	case key.Matches(msg, keys.Clear):
		m.banner = false
		m.completionSeq++
		m.timer.Clear()
		m.persistTimer()
		m.tickSeq++

	case key.Matches(msg, keys.Mute):
		m.settings.Muted = !m.settings.Muted
		m.storage.SaveSettings(m.settings)

	case key.Matches(msg, keys.Repeat):
		m.settings.Repeat = !m.settings.Repeat
		m.storage.SaveSettings(m.settings)

	case key.Matches(msg, keys.Presets):
		m.mode = viewPresets
		m.presetCursor = 0

	case key.Matches(msg, keys.Input):
		m.mode = viewInput
		m.focusIndex = 0
		return m.focusHMS(), textinput.Blink

	case key.Matches(msg, keys.Home):
		m.persistTimer()
		m.exitToMenu = true
		return m, tea.Quit

	case key.Matches(msg, keys.Quit):
		m.persistTimer()
		m.shouldQuit = true
		return m, tea.Quit
	}

	return m, nil
}

func (m Model) presetEntries() []presetEntry {
	entries := []presetEntry{}
	for _, p := range models.DefaultPresets() {
		entries = append(entries, presetEntry{preset: p})
	}
	for _, p := range m.customPresets {
		entries = append(entries, presetEntry{preset: p, custom: true})
	}
	for _, minutes := range m.cfg.QuickSetMin {
		entries = append(entries, presetEntry{
			preset: models.Preset{
				Name:       fmt.Sprintf("%d min", minutes),
				DurationMs: int64(minutes) * 60 * 1000,
				Color:      "#94A3B8",
			},
			quick: true,
		})
	}
	return entries
}

func (m Model) updatePresets(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	entries := m.presetEntries()

	switch {
	case key.Matches(msg, keys.Up):
		if m.presetCursor > 0 {
			m.presetCursor--
		}

	case key.Matches(msg, keys.Down):
		if m.presetCursor < len(entries)-1 {
			m.presetCursor++
		}

	case key.Matches(msg, keys.Confirm):
		if len(entries) > 0 {
			m.banner = false
			m.completionSeq++
			m.timer.SetDuration(entries[m.presetCursor].preset.DurationMs)
			m.persistTimer()
			m.tickSeq++
			m.mode = viewMain
		}

	case key.Matches(msg, keys.Add):
		m.mode = viewAddPreset
		m.errorMsg = ""
		m.nameInput.SetValue("")
		m.minutesInput.SetValue("")
		m.focusIndex = 0
		m.nameInput.Focus()
		m.minutesInput.Blur()
		return m, textinput.Blink

	case key.Matches(msg, keys.Delete):
		if len(entries) > 0 && entries[m.presetCursor].custom {
			m.deletePreset(entries[m.presetCursor].preset.ID)
			if m.presetCursor >= len(m.presetEntries()) {
				m.presetCursor--
			}
		}

	case key.Matches(msg, keys.Input):
		m.mode = viewInput
		m.focusIndex = 0
		return m.focusHMS(), textinput.Blink

	case key.Matches(msg, keys.CancelEdit), key.Matches(msg, keys.Back):
		m.mode = viewMain

	case key.Matches(msg, keys.Quit):
		m.persistTimer()
		m.shouldQuit = true
		return m, tea.Quit
	}

	return m, nil
}

func (m *Model) deletePreset(id string) {
	kept := m.customPresets[:0]
	for _, p := range m.customPresets {
		if p.ID != id {
			kept = append(kept, p)
		}
	}
	m.customPresets = kept
	m.storage.SavePresets(m.customPresets)
}

// nextPresetColor picks a palette color not yet used by a custom preset,
// at random among the remaining ones.
func (m Model) nextPresetColor() string {
	used := make(map[string]bool, len(m.customPresets))
	for _, p := range m.customPresets {
		used[p.Color] = true
	}
	var available []string
	for _, c := range models.PresetPalette {
		if !used[c] {
			available = append(available, c)
		}
	}
	if len(available) == 0 {
		return models.PresetPalette[0]
	}
	return available[rand.Intn(len(available))]
}

func (m Model) updateAddPreset(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch {
	case key.Matches(msg, keys.Tab):
		m.focusIndex = (m.focusIndex + 1) % 2
		if m.focusIndex == 0 {
			m.nameInput.Focus()
			m.minutesInput.Blur()
		} else {
			m.nameInput.Blur()
			m.minutesInput.Focus()
		}
		return m, textinput.Blink

	case key.Matches(msg, keys.Confirm):
		name := m.nameInput.Value()
		minutes, err := strconv.Atoi(m.minutesInput.Value())
		if name == "" || err != nil || minutes <= 0 {
			m.errorMsg = "Preset needs a name and a positive number of minutes"
			return m, nil
		}
		m.customPresets = append(m.customPresets, models.Preset{
			ID:         uuid.New().String(),
			Name:       name,
			DurationMs: int64(minutes) * 60 * 1000,
			Color:      m.nextPresetColor(),
		})
		m.storage.SavePresets(m.customPresets)
		m.errorMsg = ""
		m.mode = viewPresets
		return m, nil

	case key.Matches(msg, keys.CancelEdit):
		m.errorMsg = ""
		m.mode = viewPresets
		return m, nil
	}

	var cmd tea.Cmd
	if m.focusIndex == 0 {
		m.nameInput, cmd = m.nameInput.Update(msg)
	} else {
		m.minutesInput, cmd = m.minutesInput.Update(msg)
	}
	return m, cmd
}

func (m Model) focusHMS() Model {
	for i := range m.hmsInputs {
		if i == m.focusIndex {
			m.hmsInputs[i].Focus()
		} else {
			m.hmsInputs[i].Blur()
		}
	}
	return m
}

func (m Model) updateInput(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch {
	case key.Matches(msg, keys.Tab):
		m.focusIndex = (m.focusIndex + 1) % len(m.hmsInputs)
		return m.focusHMS(), textinput.Blink

	case key.Matches(msg, keys.ShiftTab):
		m.focusIndex--
		if m.focusIndex < 0 {
			m.focusIndex = len(m.hmsInputs) - 1
		}
		return m.focusHMS(), textinput.Blink

	case key.Matches(msg, keys.Confirm):
		h := atoiOrZero(m.hmsInputs[0].Value())
		mins := atoiOrZero(m.hmsInputs[1].Value())
		s := atoiOrZero(m.hmsInputs[2].Value())
		if h > 23 || mins > 59 || s > 59 {
			m.errorMsg = "Hours up to 23, minutes and seconds up to 59"
			return m, nil
		}
		totalMs := int64(h*3600+mins*60+s) * 1000
		if totalMs == 0 {
			m.errorMsg = "Duration must be greater than zero"
			return m, nil
		}
		m.banner = false
		m.completionSeq++
		m.timer.SetDuration(totalMs)
		m.persistTimer()
		m.tickSeq++
		m.errorMsg = ""
		m.mode = viewMain
		return m, nil

	case key.Matches(msg, keys.CancelEdit):
		m.errorMsg = ""
		m.mode = viewMain
		return m, nil
	}

	var cmd tea.Cmd
	m.hmsInputs[m.focusIndex], cmd = m.hmsInputs[m.focusIndex].Update(msg)
	return m, cmd
}

func atoiOrZero(s string) int {
	n, err := strconv.Atoi(s)
	if err != nil {
		return 0
	}
	return n
}

func (m Model) persistTimer() {
	m.storage.SaveTimerState(m.timer.State())
}

func formatRemaining(ms int64) string {
	hours := ms / 3600000
	minutes := (ms % 3600000) / 60000
	seconds := (ms % 60000) / 1000
	if hours > 0 {
		return fmt.Sprintf("%02d:%02d:%02d", hours, minutes, seconds)
	}
	return fmt.Sprintf("%02d:%02d", minutes, seconds)
}

func (m Model) View() string {
	if m.width == 0 {
		return "Loading..."
	}

	containerStyle := lipgloss.NewStyle().
		Width(m.width).
		Height(m.height).
		Align(lipgloss.Center, lipgloss.Center).
		Padding(2)

	switch m.mode {
	case viewPresets:
		return containerStyle.Render(m.renderPresets())
	case viewAddPreset:
		return containerStyle.Render(m.renderAddPreset())
	case viewInput:
		return containerStyle.Render(m.renderInput())
	}
	return containerStyle.Render(m.renderMain())
}

func (m Model) renderMain() string {
	timeColor := "#888888"
	switch {
	case m.timer.Completed():
		timeColor = "#4ADE80"
	case m.timer.Running():
		timeColor = "#60A5FA"
	case m.timer.RemainingMs() > 0:
		timeColor = "#FB923C"
	}

	timeStyle := lipgloss.NewStyle().
		Bold(true).
		Foreground(lipgloss.Color(timeColor)).
		Padding(1, 4).
		MarginBottom(1)

	statusStyle := lipgloss.NewStyle().
		Foreground(lipgloss.Color("#888")).
		MarginBottom(1)

	var status string
	switch {
	case m.banner:
		status = "🔔 Timer complete!"
		if m.settings.Repeat {
			status = "🔔 Timer complete! Restarting shortly..."
		}
	case m.timer.Running():
		status = "Counting down..."
	case m.timer.Completed():
		status = "Done. Press 'R' to run it again."
	case m.timer.RemainingMs() > 0:
		status = "Paused. Press 's' to start."
	default:
		status = "No duration set. Press 'd' for presets or 'i' to type one."
	}

	var bar string
	if m.timer.DurationMs() > 0 {
		bar = m.progress.ViewAs(m.timer.Progress())
	}

	toggleStyle := lipgloss.NewStyle().
		Foreground(lipgloss.Color("#666")).
		MarginTop(1)

	mute := "🔊 sound on"
	if m.settings.Muted {
		mute = "🔇 muted"
	}
	repeat := "repeat off"
	if m.settings.Repeat {
		repeat = "🔁 repeat on"
	}

	helpStyle := lipgloss.NewStyle().
		Foreground(lipgloss.Color("#666")).
		MarginTop(2)

	var controls string
	if m.timer.Running() {
		controls = "p: pause • r: reset • R: restart • c: clear • m: mute • o: repeat • h: home • q: quit"
	} else {
		controls = "s: start • d: presets • i: set duration • r: reset • R: restart • c: clear • m: mute • o: repeat • h: home • q: quit"
	}

	return lipgloss.JoinVertical(
		lipgloss.Center,
		timeStyle.Render(formatRemaining(m.timer.RemainingMs())),
		bar,
		statusStyle.Render(status),
		toggleStyle.Render(mute+" • "+repeat),
		helpStyle.Render(controls),
	)
}

func (m Model) renderPresets() string {
	titleStyle := lipgloss.NewStyle().
		Bold(true).
		Foreground(lipgloss.Color("#FDFF8C")).
		MarginBottom(1)

	normalStyle := lipgloss.NewStyle().
		Foreground(lipgloss.Color("#CCCCCC"))

	helpStyle := lipgloss.NewStyle().
		Foreground(lipgloss.Color("#666")).
		MarginTop(2)

	rows := titleStyle.Render("Timer Presets") + "\n"
	for i, entry := range m.presetEntries() {
		label := fmt.Sprintf("%-14s %s", entry.preset.Name, formatDuration(entry.preset.DurationMs))
		if entry.custom {
			label += "  (custom)"
		} else if entry.quick {
			label += "  (quick)"
		}
		style := normalStyle
		cursor := "  "
		if i == m.presetCursor {
			cursor = "▶ "
			style = lipgloss.NewStyle().Foreground(lipgloss.Color(entry.preset.Color)).Bold(true)
		}
		rows += style.Render(cursor+label) + "\n"
	}

	return lipgloss.JoinVertical(
		lipgloss.Center,
		rows,
		helpStyle.Render("enter: select • a: add custom • x: delete custom • i: type duration • esc: back"),
	)
}

func (m Model) renderAddPreset() string {
	titleStyle := lipgloss.NewStyle().
		Bold(true).
		Foreground(lipgloss.Color("#FDFF8C")).
		MarginBottom(1)

	errStyle := lipgloss.NewStyle().
		Foreground(lipgloss.Color("#F87171")).
		MarginTop(1)

	helpStyle := lipgloss.NewStyle().
		Foreground(lipgloss.Color("#666")).
		MarginTop(2)

	form := fmt.Sprintf("Name:    %s\nMinutes: %s", m.nameInput.View(), m.minutesInput.View())

	parts := []string{
		titleStyle.Render("New Custom Preset"),
		form,
	}
	if m.errorMsg != "" {
		parts = append(parts, errStyle.Render(m.errorMsg))
	}
	parts = append(parts, helpStyle.Render("tab: next field • enter: save • esc: cancel"))

	return lipgloss.JoinVertical(lipgloss.Center, parts...)
}

func (m Model) renderInput() string {
	titleStyle := lipgloss.NewStyle().
		Bold(true).
		Foreground(lipgloss.Color("#FDFF8C")).
		MarginBottom(1)

	errStyle := lipgloss.NewStyle().
		Foreground(lipgloss.Color("#F87171")).
		MarginTop(1)

	helpStyle := lipgloss.NewStyle().
		Foreground(lipgloss.Color("#666")).
		MarginTop(2)

	form := fmt.Sprintf("%s : %s : %s",
		m.hmsInputs[0].View(),
		m.hmsInputs[1].View(),
		m.hmsInputs[2].View(),
	)

	parts := []string{
		titleStyle.Render("Set Custom Timer"),
		form,
	}
	if m.errorMsg != "" {
		parts = append(parts, errStyle.Render(m.errorMsg))
	}
	parts = append(parts, helpStyle.Render("tab: next field • enter: set • esc: back"))

	return lipgloss.JoinVertical(lipgloss.Center, parts...)
}

func formatDuration(ms int64) string {
	minutes := ms / 60000
	hours := minutes / 60
	if hours > 0 {
		return fmt.Sprintf("%dh %dm", hours, minutes%60)
	}
	return fmt.Sprintf("%dm", minutes)
}

func (m Model) ExitedToMenu() bool {
	return m.exitToMenu
}

func (m Model) ShouldQuit() bool {
	return m.shouldQuit
}

func min(a, b int) int {
	if a < b {
		return a
	}
	return b
}

type keyMap struct {
	Start      key.Binding
	Pause      key.Binding
	Reset      key.Binding
	Restart    key.Binding
	Clear      key.Binding
	Mute       key.Binding
	Repeat     key.Binding
	Presets    key.Binding
	Input      key.Binding
	Add        key.Binding
	Delete     key.Binding
	Up         key.Binding
	Down       key.Binding
	Tab        key.Binding
	ShiftTab   key.Binding
	Confirm    key.Binding
	CancelEdit key.Binding
	Home       key.Binding
	Back       key.Binding
	Quit       key.Binding
}

var keys = keyMap{
	Start: key.NewBinding(
		key.WithKeys("s"),
		key.WithHelp("s", "start"),
	),
	Pause: key.NewBinding(
		key.WithKeys("p"),
		key.WithHelp("p", "pause"),
	),
	Reset: key.NewBinding(
		key.WithKeys("r"),
		key.WithHelp("r", "reset"),
	),
	Restart: key.NewBinding(
		key.WithKeys("R"),
		key.WithHelp("R", "restart"),
	),
	Clear: key.NewBinding(
		key.WithKeys("c"),
		key.WithHelp("c", "clear"),
	),
	Mute: key.NewBinding(
		key.WithKeys("m"),
		key.WithHelp("m", "mute"),
	),
	Repeat: key.NewBinding(
		key.WithKeys("o"),
		key.WithHelp("o", "repeat mode"),
	),
	Presets: key.NewBinding(
		key.WithKeys("d"),
		key.WithHelp("d", "presets"),
	),
	Input: key.NewBinding(
		key.WithKeys("i"),
		key.WithHelp("i", "type duration"),
	),
	Add: key.NewBinding(
		key.WithKeys("a"),
		key.WithHelp("a", "add preset"),
	),
	Delete: key.NewBinding(
		key.WithKeys("x"),
		key.WithHelp("x", "delete preset"),
	),
	Up: key.NewBinding(
		key.WithKeys("up", "k"),
		key.WithHelp("↑/k", "up"),
	),
	Down: key.NewBinding(
		key.WithKeys("down", "j"),
		key.WithHelp("↓/j", "down"),
	),
	Tab: key.NewBinding(
		key.WithKeys("tab"),
		key.WithHelp("tab", "next field"),
	),
	ShiftTab: key.NewBinding(
		key.WithKeys("shift+tab"),
		key.WithHelp("shift+tab", "previous field"),
	),
	Confirm: key.NewBinding(
		key.WithKeys("enter"),
		key.WithHelp("enter", "confirm"),
	),
	CancelEdit: key.NewBinding(
		key.WithKeys("esc"),
		key.WithHelp("esc", "cancel"),
	),
	Home: key.NewBinding(
		key.WithKeys("h"),
		key.WithHelp("h", "home"),
	),
	Back: key.NewBinding(
		key.WithKeys("b"),
		key.WithHelp("b", "back"),
	),
	Quit: key.NewBinding(
		key.WithKeys("q", "ctrl+c"),
		key.WithHelp("q", "quit"),
	),
}
