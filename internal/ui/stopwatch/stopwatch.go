package stopwatch

import (
	"fmt"
	"time"

	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"timedeck/internal/engine"
)

// tickMsg carries the sequence it was scheduled under so that a tick left
// over from before a pause can never run alongside a fresh tick chain.
type tickMsg struct {
	seq int
}

type Model struct {
	sw      *engine.Stopwatch
	tickSeq int

	cursor     int
	editing    bool
	editID     string
	editInput  textinput.Model
	width      int
	height     int
	exitToMenu bool
	shouldQuit bool
}

func New() Model {
	input := textinput.New()
	input.Placeholder = "Lap label"
	input.CharLimit = 40
	input.Width = 30

	return Model{
		sw:        engine.NewStopwatch(),
		editInput: input,
	}
}

func (m Model) Init() tea.Cmd {
	return nil
}

func tickCmd(seq int) tea.Cmd {
	return tea.Tick(engine.StopwatchQuantum, func(time.Time) tea.Msg {
		return tickMsg{seq: seq}
	})
}

func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		return m, nil

	case tickMsg:
		if msg.seq != m.tickSeq || !m.sw.Running() {
			return m, nil
		}
		m.sw.Tick()
		return m, tickCmd(m.tickSeq)

	case tea.KeyMsg:
		if m.editing {
			return m.updateEditing(msg)
		}
		return m.updateBrowsing(msg)
	}

	return m, nil
}

func (m Model) updateEditing(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch {
	case key.Matches(msg, keys.Confirm):
		m.sw.Rename(m.editID, m.editInput.Value())
		m.editing = false
		m.editInput.Blur()
		return m, nil

	case key.Matches(msg, keys.CancelEdit):
		m.editing = false
		m.editInput.Blur()
		return m, nil
	}

	var cmd tea.Cmd
	m.editInput, cmd = m.editInput.Update(msg)
	return m, cmd
}

func (m Model) updateBrowsing(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch {
	case key.Matches(msg, keys.Start):
		if !m.sw.Running() {
			m.sw.Start()
			m.tickSeq++
			return m, tickCmd(m.tickSeq)
		}

	case key.Matches(msg, keys.Pause):
		m.sw.Pause()
		m.tickSeq++
		return m, nil

	case key.Matches(msg, keys.Reset):
		m.sw.Reset()
		m.tickSeq++
		return m, nil

	case key.Matches(msg, keys.Lap):
		m.sw.Lap(time.Now())
		m.cursor = 0
		return m, nil

	case key.Matches(msg, keys.Up):
		if m.cursor > 0 {
			m.cursor--
		}

	case key.Matches(msg, keys.Down):
		if m.cursor < len(m.sw.Laps())-1 {
			m.cursor++
		}

	case key.Matches(msg, keys.Toggle):
		if laps := m.sw.Laps(); len(laps) > 0 {
			m.sw.ToggleSelection(laps[m.cursor].ID)
		}

	case key.Matches(msg, keys.DeleteSel):
		m.sw.DeleteSelected()
		m.clampCursor()

	case key.Matches(msg, keys.DeleteAll):
		m.sw.DeleteAll()
		m.cursor = 0

	case key.Matches(msg, keys.Edit):
		if laps := m.sw.Laps(); len(laps) > 0 {
			m.editing = true
			m.editID = laps[m.cursor].ID
			m.editInput.SetValue(laps[m.cursor].Label)
			m.editInput.Focus()
			return m, textinput.Blink
		}

	case key.Matches(msg, keys.Home), key.Matches(msg, keys.Back):
		m.exitToMenu = true
		return m, tea.Quit

	case key.Matches(msg, keys.Quit):
		m.shouldQuit = true
		return m, tea.Quit
	}

	return m, nil
}

func (m *Model) clampCursor() {
	if n := len(m.sw.Laps()); m.cursor >= n {
		m.cursor = n - 1
	}
	if m.cursor < 0 {
		m.cursor = 0
	}
}

func formatElapsed(ms int64) string {
	minutes := ms / 60000
	seconds := (ms % 60000) / 1000
	centis := (ms % 1000) / 10
	return fmt.Sprintf("%02d:%02d.%02d", minutes, seconds, centis)
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

	timeColor := "#888888"
	if m.sw.Running() {
		timeColor = "#22D3EE"
	} else if m.sw.ElapsedMs() > 0 {
		timeColor = "#FB923C"
	}

	timeStyle := lipgloss.NewStyle().
		Bold(true).
		Foreground(lipgloss.Color(timeColor)).
		Padding(1, 4).
		MarginBottom(1)

	content := lipgloss.JoinVertical(
		lipgloss.Center,
		timeStyle.Render(formatElapsed(m.sw.ElapsedMs())),
		m.renderLaps(),
		m.renderFooter(),
	)

	return containerStyle.Render(content)
}

func (m Model) renderLaps() string {
	laps := m.sw.Laps()
	if len(laps) == 0 {
		return lipgloss.NewStyle().
			Foreground(lipgloss.Color("#666")).
			Render("No laps yet. Press 'l' while running to record one.")
	}

	headerStyle := lipgloss.NewStyle().
		Bold(true).
		Foreground(lipgloss.Color("#FDFF8C")).
		MarginBottom(1)

	cursorStyle := lipgloss.NewStyle().
		Foreground(lipgloss.Color("#22D3EE")).
		Bold(true)

	selectedStyle := lipgloss.NewStyle().
		Foreground(lipgloss.Color("#C084FC"))

	normalStyle := lipgloss.NewStyle().
		Foreground(lipgloss.Color("#CCCCCC"))

	header := "Laps"
	if n := m.sw.SelectedCount(); n > 0 {
		header = fmt.Sprintf("Laps (%d selected)", n)
	}

	rows := headerStyle.Render(header) + "\n"
	// Show at most 10 laps around the cursor to keep the screen stable.
	start := 0
	if m.cursor > 9 {
		start = m.cursor - 9
	}
	end := start + 10
	if end > len(laps) {
		end = len(laps)
	}
	for i := start; i < end; i++ {
		lap := laps[i]
		marker := "  "
		style := normalStyle
		if m.sw.IsSelected(lap.ID) {
			marker = "✓ "
			style = selectedStyle
		}
		line := fmt.Sprintf("%s#%02d  %s  %-20s %s",
			marker,
			lap.Number,
			formatElapsed(lap.TimeMs),
			lap.Label,
			lap.Timestamp.Format("3:04:05 PM"),
		)
		if i == m.cursor {
			line = "▶ " + line
			style = cursorStyle
		} else {
			line = "  " + line
		}
		rows += style.Render(line) + "\n"
	}

	if m.editing {
		editStyle := lipgloss.NewStyle().
			Foreground(lipgloss.Color("#FDFF8C")).
			MarginTop(1)
		rows += editStyle.Render("Rename: "+m.editInput.View()) + "\n"
	}

	return rows
}

func (m Model) renderFooter() string {
	helpStyle := lipgloss.NewStyle().
		Foreground(lipgloss.Color("#666")).
		MarginTop(2)

	if m.editing {
		return helpStyle.Render("enter: save label • esc: cancel")
	}
	if m.sw.Running() {
		return helpStyle.Render("p: pause • l: lap • r: reset • h: home • q: quit")
	}
	return helpStyle.Render("s: start • r: reset • ↑/↓: laps • space: select • d: delete selected • D: clear all • e: rename • h: home • q: quit")
}

func (m Model) ExitedToMenu() bool {
	return m.exitToMenu
}

func (m Model) ShouldQuit() bool {
	return m.shouldQuit
}

type keyMap struct {
	Start      key.Binding
	Pause      key.Binding
	Reset      key.Binding
	Lap        key.Binding
	Up         key.Binding
	Down       key.Binding
	Toggle     key.Binding
	DeleteSel  key.Binding
	DeleteAll  key.Binding
	Edit       key.Binding
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
	Lap: key.NewBinding(
		key.WithKeys("l"),
		key.WithHelp("l", "lap"),
	),
	Up: key.NewBinding(
		key.WithKeys("up", "k"),
		key.WithHelp("↑/k", "up"),
	),
	Down: key.NewBinding(
		key.WithKeys("down", "j"),
		key.WithHelp("↓/j", "down"),
	),
	Toggle: key.NewBinding(
		key.WithKeys(" ", "x"),
		key.WithHelp("space", "select lap"),
	),
	DeleteSel: key.NewBinding(
		key.WithKeys("d"),
		key.WithHelp("d", "delete selected"),
	),
	DeleteAll: key.NewBinding(
		key.WithKeys("D"),
		key.WithHelp("D", "clear all laps"),
	),
	Edit: key.NewBinding(
		key.WithKeys("e"),
		key.WithHelp("e", "rename lap"),
	),
	Confirm: key.NewBinding(
		key.WithKeys("enter"),
		key.WithHelp("enter", "save"),
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
