package help

import (
	"fmt"
	"time"

	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
)

type Model struct {
	width  int
	height int
	quit   bool
}

func New() Model {
	return Model{}
}

func (m Model) Init() tea.Cmd {
	return nil
}

func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		return m, nil

	case tea.KeyMsg:
		switch {
		case key.Matches(msg, keys.Back), key.Matches(msg, keys.Quit), key.Matches(msg, keys.Home):
			m.quit = true
			return m, tea.Quit
		}
	}

	return m, nil
}

func (m Model) View() string {
	// Use reasonable defaults if dimensions aren't set
	width := m.width
	height := m.height
	if width == 0 {
		width = 100
	}
	if height == 0 {
		height = 30
	}

	containerStyle := lipgloss.NewStyle().
		Width(width).
		Height(height).
		Padding(2)

	titleStyle := lipgloss.NewStyle().
		Bold(true).
		Foreground(lipgloss.Color("#22D3EE")).
		Align(lipgloss.Center).
		MarginBottom(1)

	dateStyle := lipgloss.NewStyle().
		Foreground(lipgloss.Color("#888")).
		Align(lipgloss.Center).
		MarginBottom(2)

	sectionTitleStyle := lipgloss.NewStyle().
		Bold(true).
		Foreground(lipgloss.Color("#FDFF8C")).
		MarginBottom(1).
		MarginTop(1)

	keyStyle := lipgloss.NewStyle().
		Foreground(lipgloss.Color("#4CAF50")).
		Bold(true)

	descStyle := lipgloss.NewStyle().
		Foreground(lipgloss.Color("#CCCCCC"))

	footerStyle := lipgloss.NewStyle().
		Foreground(lipgloss.Color("#666")).
		MarginTop(2).
		Align(lipgloss.Center)

	title := titleStyle.Render("🆘 Timedeck Help")
	dateInfo := dateStyle.Render(time.Now().Format("Monday, January 2, 2006"))

	stopwatchSection := sectionTitleStyle.Render("⏱️  Stopwatch")
	stopwatchContent := fmt.Sprintf("%s - %s\n%s - %s\n%s - %s\n%s - %s\n%s - %s\n%s - %s\n%s - %s",
		keyStyle.Render("s / p"), descStyle.Render("Start / pause"),
		keyStyle.Render("l"), descStyle.Render("Record a lap (needs elapsed time)"),
		keyStyle.Render("r"), descStyle.Render("Reset elapsed time, laps are kept"),
		keyStyle.Render("space"), descStyle.Render("Select the lap under the cursor"),
		keyStyle.Render("d / D"), descStyle.Render("Delete selected laps / clear all (restarts numbering)"),
		keyStyle.Render("e"), descStyle.Render("Rename the lap under the cursor"),
		keyStyle.Render("↑ / ↓"), descStyle.Render("Move the lap cursor"))

	timerSection := sectionTitleStyle.Render("⏳ Timer")
	timerContent := fmt.Sprintf("%s - %s\n%s - %s\n%s - %s\n%s - %s\n%s - %s\n%s - %s",
		keyStyle.Render("d / i"), descStyle.Render("Pick a preset / type a duration"),
		keyStyle.Render("s / p"), descStyle.Render("Start / pause the countdown"),
		keyStyle.Render("r / R"), descStyle.Render("Reset to full duration / restart immediately"),
		keyStyle.Render("c"), descStyle.Render("Clear the configured duration"),
		keyStyle.Render("m"), descStyle.Render("Mute the completion bell"),
		keyStyle.Render("o"), descStyle.Render("Repeat mode: auto-restart after completion"))

	calendarSection := sectionTitleStyle.Render("📅 Calendar")
	calendarContent := fmt.Sprintf("%s - %s\n%s - %s\n%s - %s\n%s - %s\n%s - %s",
		keyStyle.Render("arrows, [ ]"), descStyle.Render("Move by day, week, or month"),
		keyStyle.Render("a / e / x"), descStyle.Render("Add / edit / delete a reminder"),
		keyStyle.Render("tab"), descStyle.Render("Cycle reminders on the selected date"),
		keyStyle.Render("A"), descStyle.Render("Add a custom holiday range (start ≤ end)"),
		keyStyle.Render("V"), descStyle.Render("List and delete custom holiday ranges"))

	appSection := sectionTitleStyle.Render("⚙️  Everywhere")
	appContent := fmt.Sprintf("%s - %s\n%s - %s",
		keyStyle.Render("h"), descStyle.Render("Return to the main menu"),
		keyStyle.Render("q / Ctrl+C"), descStyle.Render("Quit the application"))

	dataSection := sectionTitleStyle.Render("💾 Your Data")
	dataContent := descStyle.Render(
		"A running countdown survives quitting: its state is saved and the\n" +
			"remaining time is recomputed from the wall clock when you come back.\n" +
			"Reminders, holiday ranges, custom presets, and timer settings are\n" +
			"stored locally in ~/.timedeck/ as JSON files.")

	footer := footerStyle.Render("Press 'h' for home • 'b/esc' to go back • 'q' to quit")

	content := lipgloss.JoinVertical(
		lipgloss.Left,
		title,
		dateInfo,
		stopwatchSection,
		stopwatchContent,
		timerSection,
		timerContent,
		calendarSection,
		calendarContent,
		appSection,
		appContent,
		dataSection,
		dataContent,
		footer,
	)

	return containerStyle.Render(content)
}

func (m Model) ShouldQuit() bool {
	return m.quit
}

type keyMap struct {
	Back key.Binding
	Quit key.Binding
	Home key.Binding
}

var keys = keyMap{
	Back: key.NewBinding(
		key.WithKeys("b", "esc"),
		key.WithHelp("b/esc", "back"),
	),
	Quit: key.NewBinding(
		key.WithKeys("q", "ctrl+c"),
		key.WithHelp("q", "quit"),
	),
	Home: key.NewBinding(
		key.WithKeys("h"),
		key.WithHelp("h", "home"),
	),
}
