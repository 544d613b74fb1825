package calendar

import (
	"fmt"
	"strings"
	"time"

	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	cal "timedeck/internal/calendar"
	"timedeck/internal/storage"
)

type viewMode int

const (
	viewBrowse viewMode = iota
	viewAddReminder
	viewEditReminder
	viewAddRange
	viewRanges
)

type Model struct {
	store   *cal.Store
	storage *storage.Storage

	selected time.Time
	mode     viewMode

	reminderCursor int
	rangeCursor    int
	editID         string

	titleInput textinput.Model
	noteInput  textinput.Model
	nameInput  textinput.Model
	startInput textinput.Model
	endInput   textinput.Model
	focusIndex int
	errorMsg   string

	width      int
	height     int
	exitToMenu bool
	shouldQuit bool
}

func New(store *storage.Storage) (Model, error) {
	reminders, err := store.GetReminders()
	if err != nil {
		return Model{}, err
	}
	ranges, err := store.GetHolidayRanges()
	if err != nil {
		return Model{}, err
	}

	titleInput := textinput.New()
	titleInput.Placeholder = "Reminder title"
	titleInput.CharLimit = 60
	titleInput.Width = 30

	noteInput := textinput.New()
	noteInput.Placeholder = "Note (optional)"
	noteInput.CharLimit = 120
	noteInput.Width = 40

	nameInput := textinput.New()
	nameInput.Placeholder = "Holiday name"
	nameInput.CharLimit = 40
	nameInput.Width = 25

	startInput := textinput.New()
	startInput.Placeholder = "YYYY-MM-DD"
	startInput.CharLimit = 10
	startInput.Width = 12

	endInput := textinput.New()
	endInput.Placeholder = "YYYY-MM-DD"
	endInput.CharLimit = 10
	endInput.Width = 12

	now := time.Now()
	return Model{
		store:      cal.NewStore(reminders, ranges),
		storage:    store,
		selected:   time.Date(now.Year(), now.Month(), now.Day(), 0, 0, 0, 0, now.Location()),
		titleInput: titleInput,
		noteInput:  noteInput,
		nameInput:  nameInput,
		startInput: startInput,
		endInput:   endInput,
	}, nil
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
		switch m.mode {
		case viewBrowse:
			return m.updateBrowse(msg)
		case viewAddReminder, viewEditReminder:
			return m.updateReminderForm(msg)
		case viewAddRange:
			return m.updateRangeForm(msg)
		case viewRanges:
			return m.updateRanges(msg)
		}
	}

	return m, nil
}

func (m Model) updateBrowse(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch {
	case key.Matches(msg, keys.Left):
		m.selected = m.selected.AddDate(0, 0, -1)
		m.reminderCursor = 0

	case key.Matches(msg, keys.Right):
		m.selected = m.selected.AddDate(0, 0, 1)
		m.reminderCursor = 0

	case key.Matches(msg, keys.Up):
		m.selected = m.selected.AddDate(0, 0, -7)
		m.reminderCursor = 0

	case key.Matches(msg, keys.Down):
		m.selected = m.selected.AddDate(0, 0, 7)
		m.reminderCursor = 0

	case key.Matches(msg, keys.PrevMonth):
		m.selected = m.selected.AddDate(0, -1, 0)
		m.reminderCursor = 0

	case key.Matches(msg, keys.NextMonth):
		m.selected = m.selected.AddDate(0, 1, 0)
		m.reminderCursor = 0

	case key.Matches(msg, keys.Today):
		now := time.Now()
		m.selected = time.Date(now.Year(), now.Month(), now.Day(), 0, 0, 0, 0, now.Location())
		m.reminderCursor = 0

	case key.Matches(msg, keys.CycleRem):
		if n := len(m.store.RemindersForDate(m.selected)); n > 0 {
			m.reminderCursor = (m.reminderCursor + 1) % n
		}

	case key.Matches(msg, keys.Add):
		m.mode = viewAddReminder
		m.errorMsg = ""
		m.titleInput.SetValue("")
		m.noteInput.SetValue("")
		m.focusIndex = 0
		m.titleInput.Focus()
		m.noteInput.Blur()
		return m, textinput.Blink

	case key.Matches(msg, keys.Edit):
		reminders := m.store.RemindersForDate(m.selected)
		if len(reminders) > 0 {
			r := reminders[m.reminderCursor]
			m.mode = viewEditReminder
			m.editID = r.ID
			m.errorMsg = ""
			m.titleInput.SetValue(r.Title)
			m.noteInput.SetValue(r.Note)
			m.focusIndex = 0
			m.titleInput.Focus()
			m.noteInput.Blur()
			return m, textinput.Blink
		}

	case key.Matches(msg, keys.Delete):
		reminders := m.store.RemindersForDate(m.selected)
		if len(reminders) > 0 {
			m.store.DeleteReminder(reminders[m.reminderCursor].ID)
			m.storage.SaveReminders(m.store.Reminders())
			m.reminderCursor = 0
		}

	case key.Matches(msg, keys.AddRange):
		m.mode = viewAddRange
		m.errorMsg = ""
		m.nameInput.SetValue("")
		m.startInput.SetValue(cal.DateKey(m.selected))
		m.endInput.SetValue(cal.DateKey(m.selected))
		m.focusIndex = 0
		m.nameInput.Focus()
		m.startInput.Blur()
		m.endInput.Blur()
		return m, textinput.Blink

	case key.Matches(msg, keys.Ranges):
		m.mode = viewRanges
		m.rangeCursor = 0

	case key.Matches(msg, keys.Home), key.Matches(msg, keys.Back):
		m.exitToMenu = true
		return m, tea.Quit

	case key.Matches(msg, keys.Quit):
		m.shouldQuit = true
		return m, tea.Quit
	}

	return m, nil
}

func (m Model) updateReminderForm(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch {
	case key.Matches(msg, keys.Tab):
		m.focusIndex = (m.focusIndex + 1) % 2
		if m.focusIndex == 0 {
			m.titleInput.Focus()
			m.noteInput.Blur()
		} else {
			m.titleInput.Blur()
			m.noteInput.Focus()
		}
		return m, textinput.Blink

	case key.Matches(msg, keys.Confirm):
		if m.mode == viewEditReminder {
			if !m.store.UpdateReminder(m.editID, m.titleInput.Value(), m.noteInput.Value()) {
				m.errorMsg = "Title is required"
				return m, nil
			}
		} else {
			if _, ok := m.store.AddReminder(m.selected, m.titleInput.Value(), m.noteInput.Value()); !ok {
				m.errorMsg = "Title is required"
				return m, nil
			}
		}
		m.storage.SaveReminders(m.store.Reminders())
		m.errorMsg = ""
		m.mode = viewBrowse
		return m, nil

	case key.Matches(msg, keys.CancelEdit):
		m.errorMsg = ""
		m.mode = viewBrowse
		return m, nil
	}

	var cmd tea.Cmd
	if m.focusIndex == 0 {
		m.titleInput, cmd = m.titleInput.Update(msg)
	} else {
		m.noteInput, cmd = m.noteInput.Update(msg)
	}
	return m, cmd
}

func (m Model) updateRangeForm(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	inputs := []*textinput.Model{&m.nameInput, &m.startInput, &m.endInput}

	switch {
	case key.Matches(msg, keys.Tab):
		m.focusIndex = (m.focusIndex + 1) % len(inputs)
		for i, input := range inputs {
			if i == m.focusIndex {
				input.Focus()
			} else {
				input.Blur()
			}
		}
		return m, textinput.Blink

	case key.Matches(msg, keys.Confirm):
		_, err := m.store.AddHolidayRange(m.nameInput.Value(), m.startInput.Value(), m.endInput.Value())
		if err != nil {
			m.errorMsg = err.Error()
			return m, nil
		}
		m.storage.SaveHolidayRanges(m.store.Ranges())
		m.errorMsg = ""
		m.mode = viewBrowse
		return m, nil

	case key.Matches(msg, keys.CancelEdit):
		m.errorMsg = ""
		m.mode = viewBrowse
		return m, nil
	}

	var cmd tea.Cmd
	*inputs[m.focusIndex], cmd = inputs[m.focusIndex].Update(msg)
	return m, cmd
}

func (m Model) updateRanges(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	ranges := m.store.Ranges()

	switch {
	case key.Matches(msg, keys.Up):
		if m.rangeCursor > 0 {
			m.rangeCursor--
		}

	case key.Matches(msg, keys.Down):
		if m.rangeCursor < len(ranges)-1 {
			m.rangeCursor++
		}

	case key.Matches(msg, keys.Delete):
		if len(ranges) > 0 {
			m.store.DeleteHolidayRange(ranges[m.rangeCursor].ID)
			m.storage.SaveHolidayRanges(m.store.Ranges())
			if m.rangeCursor >= len(m.store.Ranges()) && m.rangeCursor > 0 {
				m.rangeCursor--
			}
		}

	case key.Matches(msg, keys.CancelEdit), key.Matches(msg, keys.Back):
		m.mode = viewBrowse

	case key.Matches(msg, keys.Quit):
		m.shouldQuit = true
		return m, tea.Quit
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
		Padding(1)

	switch m.mode {
	case viewAddReminder, viewEditReminder:
		return containerStyle.Render(m.renderReminderForm())
	case viewAddRange:
		return containerStyle.Render(m.renderRangeForm())
	case viewRanges:
		return containerStyle.Render(m.renderRanges())
	}

	return containerStyle.Render(lipgloss.JoinVertical(
		lipgloss.Center,
		m.renderGrid(),
		m.renderDayInfo(),
		m.renderUpcoming(),
		m.renderFooter(),
	))
}

// renderGrid draws the selected date's month with today, the selection,
// holidays, and reminder-bearing days highlighted.
func (m Model) renderGrid() string {
	titleStyle := lipgloss.NewStyle().
		Bold(true).
		Foreground(lipgloss.Color("#22D3EE")).
		Align(lipgloss.Center).
		MarginBottom(1)

	headStyle := lipgloss.NewStyle().
		Foreground(lipgloss.Color("#888"))

	selectedStyle := lipgloss.NewStyle().
		Foreground(lipgloss.Color("#0F172A")).
		Background(lipgloss.Color("#22D3EE")).
		Bold(true)

	todayStyle := lipgloss.NewStyle().
		Foreground(lipgloss.Color("#22D3EE")).
		Bold(true)

	holidayStyle := lipgloss.NewStyle().
		Foreground(lipgloss.Color("#FB923C"))

	reminderStyle := lipgloss.NewStyle().
		Foreground(lipgloss.Color("#4ADE80"))

	normalStyle := lipgloss.NewStyle().
		Foreground(lipgloss.Color("#CCCCCC"))

	now := time.Now()
	first := time.Date(m.selected.Year(), m.selected.Month(), 1, 0, 0, 0, 0, m.selected.Location())
	daysInMonth := first.AddDate(0, 1, -1).Day()

	var b strings.Builder
	b.WriteString(headStyle.Render("Su Mo Tu We Th Fr Sa"))
	b.WriteString("\n")

	col := int(first.Weekday())
	b.WriteString(strings.Repeat("   ", col))

	for day := 1; day <= daysInMonth; day++ {
		date := time.Date(m.selected.Year(), m.selected.Month(), day, 0, 0, 0, 0, m.selected.Location())
		cell := fmt.Sprintf("%2d", day)

		style := normalStyle
		if _, ok := m.store.ResolveHoliday(date); ok {
			style = holidayStyle
		}
		if len(m.store.RemindersForDate(date)) > 0 {
			style = reminderStyle
		}
		if date.Year() == now.Year() && date.YearDay() == now.YearDay() {
			style = todayStyle
		}
		if day == m.selected.Day() {
			style = selectedStyle
		}

		b.WriteString(style.Render(cell))
		b.WriteString(" ")
		col++
		if col == 7 {
			b.WriteString("\n")
			col = 0
		}
	}

	return lipgloss.JoinVertical(
		lipgloss.Center,
		titleStyle.Render(m.selected.Format("January 2006")),
		b.String(),
	)
}

func (m Model) renderDayInfo() string {
	dateStyle := lipgloss.NewStyle().
		Bold(true).
		Foreground(lipgloss.Color("#FAFAFA")).
		MarginTop(1)

	holidayStyle := lipgloss.NewStyle().
		Foreground(lipgloss.Color("#FB923C"))

	cursorStyle := lipgloss.NewStyle().
		Foreground(lipgloss.Color("#22D3EE")).
		Bold(true)

	reminderStyle := lipgloss.NewStyle().
		Foreground(lipgloss.Color("#CCCCCC"))

	noteStyle := lipgloss.NewStyle().
		Foreground(lipgloss.Color("#888"))

	parts := []string{
		dateStyle.Render(m.selected.Format("Monday, January 2, 2006")),
	}

	if resolved, ok := m.store.ResolveHoliday(m.selected); ok {
		tag := "official"
		if resolved.Kind == cal.HolidayCustom {
			tag = "custom"
		}
		parts = append(parts, holidayStyle.Render(fmt.Sprintf("🎊 %s (%s)", resolved.Name, tag)))
	}

	reminders := m.store.RemindersForDate(m.selected)
	if len(reminders) == 0 {
		parts = append(parts, noteStyle.Render("No reminders."))
	}
	for i, r := range reminders {
		line := "• " + r.Title
		if r.Note != "" {
			line += "  " + noteStyle.Render(r.Note)
		}
		if i == m.reminderCursor && len(reminders) > 1 {
			parts = append(parts, cursorStyle.Render(line))
		} else {
			parts = append(parts, reminderStyle.Render(line))
		}
	}

	return lipgloss.JoinVertical(lipgloss.Center, parts...)
}

func (m Model) renderUpcoming() string {
	next, ok := m.store.NextUpcomingReminder(time.Now())
	if !ok {
		return ""
	}

	style := lipgloss.NewStyle().
		Foreground(lipgloss.Color("#4CAF50")).
		MarginTop(1)

	days := cal.DaysUntil(time.Now(), next.Date)
	return style.Render(fmt.Sprintf("🔔 Next: %s in %d day(s) (%s)", next.Title, days, next.Date))
}

func (m Model) renderFooter() string {
	helpStyle := lipgloss.NewStyle().
		Foreground(lipgloss.Color("#666")).
		MarginTop(1)

	return helpStyle.Render(
		"←/→/↑/↓: move • [/]: month • t: today • a: add reminder • e: edit • x: delete • tab: next reminder\n" +
			"A: add holiday range • V: holiday ranges • h: home • q: quit")
}

func (m Model) renderReminderForm() string {
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

	heading := "New Reminder"
	if m.mode == viewEditReminder {
		heading = "Edit Reminder"
	}

	parts := []string{
		titleStyle.Render(fmt.Sprintf("%s — %s", heading, m.selected.Format("Jan 2, 2006"))),
		fmt.Sprintf("Title: %s\nNote:  %s", m.titleInput.View(), m.noteInput.View()),
	}
	if m.errorMsg != "" {
		parts = append(parts, errStyle.Render(m.errorMsg))
	}
	parts = append(parts, helpStyle.Render("tab: next field • enter: save • esc: cancel"))

	return lipgloss.JoinVertical(lipgloss.Center, parts...)
}

func (m Model) renderRangeForm() string {
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

	form := fmt.Sprintf("Name:  %s\nStart: %s\nEnd:   %s",
		m.nameInput.View(),
		m.startInput.View(),
		m.endInput.View(),
	)

	parts := []string{
		titleStyle.Render("New Holiday Range"),
		form,
	}
	if m.errorMsg != "" {
		parts = append(parts, errStyle.Render(m.errorMsg))
	}
	parts = append(parts, helpStyle.Render("tab: next field • enter: save • esc: cancel"))

	return lipgloss.JoinVertical(lipgloss.Center, parts...)
}

func (m Model) renderRanges() string {
	titleStyle := lipgloss.NewStyle().
		Bold(true).
		Foreground(lipgloss.Color("#FDFF8C")).
		MarginBottom(1)

	cursorStyle := lipgloss.NewStyle().
		Foreground(lipgloss.Color("#22D3EE")).
		Bold(true)

	normalStyle := lipgloss.NewStyle().
		Foreground(lipgloss.Color("#CCCCCC"))

	helpStyle := lipgloss.NewStyle().
		Foreground(lipgloss.Color("#666")).
		MarginTop(2)

	ranges := m.store.Ranges()
	rows := titleStyle.Render("Custom Holiday Ranges") + "\n"
	if len(ranges) == 0 {
		rows += normalStyle.Render("None yet. Press 'A' from the calendar to add one.") + "\n"
	}
	for i, r := range ranges {
		line := fmt.Sprintf("%-20s %s → %s", r.Name, r.Start, r.End)
		if i == m.rangeCursor {
			rows += cursorStyle.Render("▶ "+line) + "\n"
		} else {
			rows += normalStyle.Render("  "+line) + "\n"
		}
	}

	return lipgloss.JoinVertical(
		lipgloss.Center,
		rows,
		helpStyle.Render("↑/↓: navigate • x: delete • esc: back"),
	)
}

func (m Model) ExitedToMenu() bool {
	return m.exitToMenu
}

func (m Model) ShouldQuit() bool {
	return m.shouldQuit
}

type keyMap struct {
	Left       key.Binding
	Right      key.Binding
	Up         key.Binding
	Down       key.Binding
	PrevMonth  key.Binding
	NextMonth  key.Binding
	Today      key.Binding
	CycleRem   key.Binding
	Add        key.Binding
	Edit       key.Binding
	Delete     key.Binding
	AddRange   key.Binding
	Ranges     key.Binding
	Tab        key.Binding
	Confirm    key.Binding
	CancelEdit key.Binding
	Home       key.Binding
	Back       key.Binding
	Quit       key.Binding
}

var keys = keyMap{
	Left: key.NewBinding(
		key.WithKeys("left"),
		key.WithHelp("←", "previous day"),
	),
	Right: key.NewBinding(
		key.WithKeys("right"),
		key.WithHelp("→", "next day"),
	),
	Up: key.NewBinding(
		key.WithKeys("up", "k"),
		key.WithHelp("↑", "previous week"),
	),
	Down: key.NewBinding(
		key.WithKeys("down", "j"),
		key.WithHelp("↓", "next week"),
	),
	PrevMonth: key.NewBinding(
		key.WithKeys("["),
		key.WithHelp("[", "previous month"),
	),
	NextMonth: key.NewBinding(
		key.WithKeys("]"),
		key.WithHelp("]", "next month"),
	),
	Today: key.NewBinding(
		key.WithKeys("t"),
		key.WithHelp("t", "today"),
	),
	CycleRem: key.NewBinding(
		key.WithKeys("tab"),
		key.WithHelp("tab", "next reminder"),
	),
	Add: key.NewBinding(
		key.WithKeys("a"),
		key.WithHelp("a", "add reminder"),
	),
	Edit: key.NewBinding(
		key.WithKeys("e"),
		key.WithHelp("e", "edit reminder"),
	),
	Delete: key.NewBinding(
		key.WithKeys("x"),
		key.WithHelp("x", "delete"),
	),
	AddRange: key.NewBinding(
		key.WithKeys("A"),
		key.WithHelp("A", "add holiday range"),
	),
	Ranges: key.NewBinding(
		key.WithKeys("V"),
		key.WithHelp("V", "holiday ranges"),
	),
	Tab: key.NewBinding(
		key.WithKeys("tab"),
		key.WithHelp("tab", "next field"),
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
