// Package tui is the full-screen terminal front-end: an optional login
// screen followed by the week table with a detail pane.
package tui

import (
	"context"
	"fmt"
	"frsmenu/lib/menu"
	"frsmenu/lib/scrapers/frs"
	"strings"

	"github.com/charmbracelet/bubbles/table"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
)

type screen int

const (
	screenLogin screen = iota
	screenWeek
)

type weekLoadedMsg struct {
	days []frs.Day
}

type weekFailedMsg struct {
	err error
}

type Options struct {
	Navigator *menu.Navigator
	// when nil the session is assumed to be logged in already
	Login LoginFunc
	// prefilled on the login screen
	Username string
}

type Model struct {
	ctx       context.Context
	nav       *menu.Navigator
	loginFunc LoginFunc

	screen screen
	login  loginForm

	table   table.Model
	days    []frs.Day
	details string
	loading bool
	status  string
	failed  bool

	exitMessage string
}

func New(ctx context.Context, opts Options) Model {
	m := Model{
		ctx:       ctx,
		nav:       opts.Navigator,
		loginFunc: opts.Login,
		screen:    screenWeek,
		table:     newWeekTable(),
	}
	if opts.Login != nil {
		m.screen = screenLogin
		m.login = newLoginForm(opts.Username)
		return m
	}
	// Init starts the first load
	m, _ = m.startLoading()
	return m
}

func newWeekTable() table.Model {
	columns := []table.Column{
		{Title: "روز", Width: 14},
		{Title: "تاریخ", Width: 12},
	}
	for _, slot := range menu.Slots {
		columns = append(columns, table.Column{Title: slot, Width: 36})
	}

	t := table.New(
		table.WithColumns(columns),
		table.WithFocused(true),
		table.WithHeight(8),
	)
	styles := table.DefaultStyles()
	styles.Header = styles.Header.
		BorderStyle(lipgloss.NormalBorder()).
		BorderForeground(colorMuted).
		BorderBottom(true).
		Bold(true)
	styles.Selected = styles.Selected.
		Foreground(lipgloss.Color("#FFFFFF")).
		Background(colorAccent).
		Bold(false)
	t.SetStyles(styles)
	return t
}

// ExitMessage is set when the program quit because of a failure the user
// should see after the alt screen is gone.
func (m Model) ExitMessage() string {
	return m.exitMessage
}

func (m Model) loadWeek() tea.Cmd {
	ctx, nav := m.ctx, m.nav
	return func() tea.Msg {
		days, err := nav.Load(ctx)
		if err != nil {
			return weekFailedMsg{err: err}
		}
		return weekLoadedMsg{days: days}
	}
}

const loadingStatus = "در حال دریافت منو..."

func (m Model) startLoading() (Model, tea.Cmd) {
	m.loading = true
	m.failed = false
	m.details = ""
	m.status = loadingStatus
	return m, m.loadWeek()
}

func (m Model) Init() tea.Cmd {
	if m.screen == screenLogin {
		return nil
	}
	return m.loadWeek()
}

func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		height := msg.Height - 12
		if height < 3 {
			height = 3
		}
		m.table.SetHeight(height)
		return m, nil
	case loginResultMsg:
		m.login.pending = false
		if msg.err != nil {
			m.exitMessage = LoginFailedMessage
			if !frs.IsLoginFailure(msg.err) {
				m.exitMessage = fmt.Sprintf("%s (%v)", LoginFailedMessage, msg.err)
			}
			return m, tea.Quit
		}
		m.screen = screenWeek
		return m.startLoading()
	case weekLoadedMsg:
		m.loading = false
		m.days = msg.days
		m.status = ""
		m.table.SetRows(tableRows(msg.days))
		m.table.SetCursor(0)
		return m, nil
	case weekFailedMsg:
		m.loading = false
		m.failed = true
		m.status = fmt.Sprintf("خطا در دریافت داده: %v", msg.err)
		return m, nil
	}

	if m.screen == screenLogin {
		return m.updateLogin(msg)
	}
	return m.updateWeek(msg)
}

func (m Model) updateWeek(msg tea.Msg) (tea.Model, tea.Cmd) {
	if key, ok := msg.(tea.KeyMsg); ok {
		switch key.String() {
		case "q", "ctrl+c":
			return m, tea.Quit
		case "n":
			if m.loading {
				return m, nil
			}
			m.nav.Next()
			return m.startLoading()
		case "p":
			if m.loading {
				return m, nil
			}
			m.nav.Prev()
			return m.startLoading()
		case "c":
			if m.loading {
				return m, nil
			}
			m.nav.Current()
			return m.startLoading()
		case "enter":
			cursor := m.table.Cursor()
			if cursor >= 0 && cursor < len(m.days) {
				m.details = renderDetails(m.days[cursor])
			}
			return m, nil
		case "esc":
			m.details = ""
			return m, nil
		}
	}

	var cmd tea.Cmd
	m.table, cmd = m.table.Update(msg)
	return m, cmd
}

func tableRows(days []frs.Day) []table.Row {
	rows := make([]table.Row, len(days))
	for i, row := range menu.Rows(days) {
		title := row.Title
		if row.Cells[0].Inactive {
			title += " (تعطیل)"
		}
		r := table.Row{title, row.Date}
		for _, c := range row.Cells {
			r = append(r, c.Text)
		}
		rows[i] = r
	}
	return rows
}

func renderDetails(day frs.Day) string {
	var b strings.Builder
	b.WriteString(titleStyle.Render(menu.DetailTitle(day)))
	b.WriteString("\n")

	details := menu.Details(day)
	if len(details) == 0 {
		b.WriteString(statusStyle.Render("برای این روز غذایی تعریف نشده است"))
	}
	for i, d := range details {
		status := openStyle.Render(d.Status)
		if d.Reserved {
			status = reservedStyle.Render(d.Status)
		}
		b.WriteString(mealStyle.Render(d.Meal))
		b.WriteString(" ")
		b.WriteString(status)
		b.WriteString("\n")
		for _, line := range d.Lines {
			b.WriteString("   ")
			b.WriteString(line)
			b.WriteString("\n")
		}
		if i < len(details)-1 {
			b.WriteString("\n")
		}
	}
	return detailsStyle.Render(strings.TrimRight(b.String(), "\n"))
}

func (m Model) View() string {
	if m.screen == screenLogin {
		return m.viewLogin()
	}

	var b strings.Builder
	b.WriteString(titleStyle.Render(m.nav.Title()))
	b.WriteString("\n")
	b.WriteString(m.table.View())
	b.WriteString("\n")
	if m.details != "" {
		b.WriteString(m.details)
		b.WriteString("\n")
	}
	switch {
	case m.failed:
		b.WriteString(errorStyle.Render(m.status))
	case m.status != "":
		b.WriteString(statusStyle.Render(m.status))
	}
	b.WriteString(helpStyle.Render("[p] قبلی • [c] جاری • [n] بعدی • [enter] جزئیات • [q] خروج"))
	return b.String()
}

// Run starts the program on the alt screen and blocks until it exits. The
// returned message should be printed to the user when non-empty.
func Run(ctx context.Context, opts Options) (string, error) {
	program := tea.NewProgram(
		New(ctx, opts),
		tea.WithAltScreen(),
		tea.WithContext(ctx),
	)
	final, err := program.Run()
	if err != nil {
		return "", err
	}
	if m, ok := final.(Model); ok {
		return m.ExitMessage(), nil
	}
	return "", nil
}
