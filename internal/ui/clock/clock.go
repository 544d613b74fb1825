package clock

import (
	"time"

	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"timedeck/internal/config"
)

type tickMsg time.Time

// Model is the full-screen clock. It re-reads wall-clock time once per
// second; the tick chain ends with the program, so teardown releases it.
type Model struct {
	cfg        config.Config
	now        time.Time
	width      int
	height     int
	exitToMenu bool
	shouldQuit bool
}

func New(cfg config.Config) Model {
	return Model{
		cfg: cfg,
		now: time.Now(),
	}
}

func (m Model) Init() tea.Cmd {
	return tickCmd()
}

func tickCmd() tea.Cmd {
	return tea.Tick(time.Second, func(t time.Time) tea.Msg {
		return tickMsg(t)
	})
}

func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		return m, nil

	case tickMsg:
		m.now = time.Time(msg)
		return m, tickCmd()

	case tea.KeyMsg:
		switch {
		case key.Matches(msg, keys.Home), key.Matches(msg, keys.Back):
			m.exitToMenu = true
			return m, tea.Quit

		case key.Matches(msg, keys.Quit):
			m.shouldQuit = true
			return m, tea.Quit
		}
	}

	return m, nil
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

	timeLayout := "15:04:05"
	if m.cfg.TwelveHour {
		timeLayout = "3:04:05 PM"
	}

	timeStyle := lipgloss.NewStyle().
		Bold(true).
		Foreground(lipgloss.Color("#FAFAFA")).
		Background(lipgloss.Color("#1E293B")).
		Padding(2, 6).
		MarginBottom(2)

	dateStyle := lipgloss.NewStyle().
		Foreground(lipgloss.Color("#888")).
		MarginBottom(2)

	helpStyle := lipgloss.NewStyle().
		Foreground(lipgloss.Color("#666")).
		MarginTop(2)

	content := lipgloss.JoinVertical(
		lipgloss.Center,
		timeStyle.Render(m.now.Format(timeLayout)),
		dateStyle.Render(m.now.Format("Monday, January 2, 2006")),
		helpStyle.Render("h: home • q: quit"),
	)

	return containerStyle.Render(content)
}

func (m Model) ExitedToMenu() bool {
	return m.exitToMenu
}

func (m Model) ShouldQuit() bool {
	return m.shouldQuit
}

type keyMap struct {
	Home key.Binding
	Back key.Binding
	Quit key.Binding
}

var keys = keyMap{
	Home: key.NewBinding(
		key.WithKeys("h"),
		key.WithHelp("h", "home"),
	),
	Back: key.NewBinding(
		key.WithKeys("b", "esc"),
		key.WithHelp("b/esc", "back"),
	),
	Quit: key.NewBinding(
		key.WithKeys("q", "ctrl+c"),
		key.WithHelp("q", "quit"),
	),
}
