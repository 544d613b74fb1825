package menu

import (
	"fmt"
	"time"

	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"timedeck/internal/calendar"
	"timedeck/internal/config"
	"timedeck/internal/storage"
)

type Choice int

const (
	OpenClock Choice = iota
	OpenStopwatch
	OpenTimer
	OpenCalendar
	OpenHelp
	Exit
)

type tickMsg time.Time

type Model struct {
	choices    []string
	cursor     int
	selected   Choice
	storage    *storage.Storage
	cfg        config.Config
	store      *calendar.Store
	now        time.Time
	width      int
	height     int
	shouldQuit bool
}

func New(store *storage.Storage, cfg config.Config) (Model, error) {
	reminders, err := store.GetReminders()
	if err != nil {
		return Model{}, err
	}
	ranges, err := store.GetHolidayRanges()
	if err != nil {
		return Model{}, err
	}

	choices := []string{
		"🕐 Clock",
		"⏱️  Stopwatch",
		"⏳ Timer",
		"📅 Calendar",
		"🆘 Help",
		"👋 Exit",
	}

	return Model{
		choices: choices,
		storage: store,
		cfg:     cfg,
		store:   calendar.NewStore(reminders, ranges),
		now:     time.Now(),
	}, nil
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
		case key.Matches(msg, keys.Up):
			if m.cursor > 0 {
				m.cursor--
			} else {
				m.cursor = len(m.choices) - 1
			}

		case key.Matches(msg, keys.Down):
			if m.cursor < len(m.choices)-1 {
				m.cursor++
			} else {
				m.cursor = 0
			}

		case key.Matches(msg, keys.Enter):
			m.selected = Choice(m.cursor)
			if m.selected == Exit {
				m.shouldQuit = true
			}
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
		Padding(2)

	titleStyle := lipgloss.NewStyle().
		Bold(true).
		Foreground(lipgloss.Color("#22D3EE")).
		MarginBottom(1).
		Align(lipgloss.Center)

	clockStyle := lipgloss.NewStyle().
		Bold(true).
		Foreground(lipgloss.Color("#FAFAFA")).
		Align(lipgloss.Center)

	dateStyle := lipgloss.NewStyle().
		Foreground(lipgloss.Color("#888")).
		MarginBottom(1).
		Align(lipgloss.Center)

	holidayStyle := lipgloss.NewStyle().
		Foreground(lipgloss.Color("#FB923C")).
		MarginBottom(1).
		Align(lipgloss.Center)

	upcomingStyle := lipgloss.NewStyle().
		Foreground(lipgloss.Color("#4CAF50")).
		MarginBottom(1).
		Align(lipgloss.Center)

	menuStyle := lipgloss.NewStyle().
		Padding(1, 2).
		MarginTop(1)

	selectedStyle := lipgloss.NewStyle().
		Foreground(lipgloss.Color("#22D3EE")).
		Bold(true)

	normalStyle := lipgloss.NewStyle().
		Foreground(lipgloss.Color("#888"))

	timeLayout := "15:04:05"
	if m.cfg.TwelveHour {
		timeLayout = "3:04:05 PM"
	}

	title := titleStyle.Render("✨ Timedeck ✨")
	clock := clockStyle.Render(m.now.Format(timeLayout))
	dateInfo := dateStyle.Render(m.now.Format("Monday, January 2, 2006"))

	var holidayInfo string
	if resolved, ok := m.store.ResolveHoliday(m.now); ok {
		holidayInfo = holidayStyle.Render("🎊 Today: " + resolved.Name)
	}

	var upcomingInfo string
	if next, ok := m.store.NextUpcomingReminder(m.now); ok {
		days := calendar.DaysUntil(m.now, next.Date)
		switch days {
		case 0:
			upcomingInfo = upcomingStyle.Render(fmt.Sprintf("🔔 Today: %s", next.Title))
		case 1:
			upcomingInfo = upcomingStyle.Render(fmt.Sprintf("🔔 Tomorrow: %s", next.Title))
		default:
			upcomingInfo = upcomingStyle.Render(fmt.Sprintf("🔔 In %d days: %s", days, next.Title))
		}
	}

	var menu string
	for i, choice := range m.choices {
		cursor := "  "
		style := normalStyle
		if m.cursor == i {
			cursor = "▶ "
			style = selectedStyle
		}
		menu += style.Render(cursor+choice) + "\n"
	}

	helpStyle := lipgloss.NewStyle().
		Foreground(lipgloss.Color("#666")).
		MarginTop(2)

	content := lipgloss.JoinVertical(
		lipgloss.Center,
		title,
		clock,
		dateInfo,
		holidayInfo,
		upcomingInfo,
		menuStyle.Render(menu),
		helpStyle.Render("↑/↓: navigate • enter: select • q: quit"),
	)

	return containerStyle.Render(content)
}

func (m Model) ShouldQuit() bool {
	return m.shouldQuit
}

func (m Model) GetSelected() Choice {
	return m.selected
}

type keyMap struct {
	Up    key.Binding
	Down  key.Binding
	Enter key.Binding
	Quit  key.Binding
}

var keys = keyMap{
	Up: key.NewBinding(
		key.WithKeys("up", "k"),
		key.WithHelp("↑/k", "up"),
	),
	Down: key.NewBinding(
		key.WithKeys("down", "j"),
		key.WithHelp("↓/j", "down"),
	),
	Enter: key.NewBinding(
		key.WithKeys("enter", " "),
		key.WithHelp("enter", "select"),
	),
	Quit: key.NewBinding(
		key.WithKeys("q", "ctrl+c"),
		key.WithHelp("q", "quit"),
	),
}
