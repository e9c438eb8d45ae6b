package tui

import (
	"context"
	"strings"

	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
)

const LoginFailedMessage = "ورود ناموفق!"

// LoginFunc authenticates the session the week is going to be loaded with.
type LoginFunc func(ctx context.Context, username, password string) error

type loginResultMsg struct {
	err error
}

type loginForm struct {
	username textinput.Model
	password textinput.Model
	focus    int
	pending  bool
}

func newLoginForm(username string) loginForm {
	u := textinput.New()
	u.Placeholder = "شماره دانشجویی"
	u.Prompt = "نام کاربری: "
	u.CharLimit = 64
	u.Width = 32
	u.SetValue(username)

	p := textinput.New()
	p.Placeholder = "••••••"
	p.Prompt = "رمز عبور:   "
	p.CharLimit = 128
	p.Width = 32
	p.EchoMode = textinput.EchoPassword
	p.EchoCharacter = '•'

	form := loginForm{username: u, password: p}
	if username != "" {
		form.focus = 1
	}
	form.applyFocus()
	return form
}

func (f *loginForm) applyFocus() {
	if f.focus == 0 {
		f.username.Focus()
		f.password.Blur()
		return
	}
	f.username.Blur()
	f.password.Focus()
}

func (f loginForm) credentials() (string, string) {
	return strings.TrimSpace(f.username.Value()), f.password.Value()
}

func (f loginForm) complete() bool {
	username, password := f.credentials()
	return username != "" && password != ""
}

func submitLogin(ctx context.Context, login LoginFunc, username, password string) tea.Cmd {
	return func() tea.Msg {
		return loginResultMsg{err: login(ctx, username, password)}
	}
}

func (m Model) updateLogin(msg tea.Msg) (tea.Model, tea.Cmd) {
	if m.login.pending {
		if key, ok := msg.(tea.KeyMsg); ok && key.String() == "ctrl+c" {
			return m, tea.Quit
		}
		return m, nil
	}

	if key, ok := msg.(tea.KeyMsg); ok {
		switch key.String() {
		case "ctrl+c", "esc":
			return m, tea.Quit
		case "tab", "shift+tab", "up", "down":
			m.login.focus = 1 - m.login.focus
			m.login.applyFocus()
			return m, nil
		case "enter":
			if !m.login.complete() {
				m.login.focus = 1
				if strings.TrimSpace(m.login.username.Value()) == "" {
					m.login.focus = 0
				}
				m.login.applyFocus()
				return m, nil
			}
			m.login.pending = true
			m.status = "در حال ورود..."
			username, password := m.login.credentials()
			return m, submitLogin(m.ctx, m.loginFunc, username, password)
		}
	}

	var cmd tea.Cmd
	if m.login.focus == 0 {
		m.login.username, cmd = m.login.username.Update(msg)
	} else {
		m.login.password, cmd = m.login.password.Update(msg)
	}
	return m, cmd
}

func (m Model) viewLogin() string {
	var b strings.Builder
	b.WriteString(titleStyle.Render("ورود به سامانه رزرو غذا"))
	b.WriteString("\n")
	b.WriteString(m.login.username.View())
	b.WriteString("\n")
	b.WriteString(m.login.password.View())
	b.WriteString("\n")
	if m.status != "" {
		b.WriteString("\n")
		b.WriteString(statusStyle.Render(m.status))
	}
	b.WriteString(helpStyle.Render("enter ورود • tab جابجایی • esc خروج"))
	return loginBoxStyle.Render(b.String())
}
