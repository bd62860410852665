package ui

import (
	"context"
	"strings"

	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/spinner"
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
)

type loginModel struct {
	app *App

	email    textinput.Model
	password textinput.Model
	focus    int

	busy    bool
	spinner spinner.Model
	errText string
}

func newLoginModel(app *App) *loginModel {
	email := textinput.New()
	email.Placeholder = "email"
	email.CharLimit = 120
	email.Focus()

	password := textinput.New()
	password.Placeholder = "senha"
	password.CharLimit = 120
	password.EchoMode = textinput.EchoPassword
	password.EchoCharacter = '•'

	spin := spinner.New()
	spin.Spinner = spinner.Dot

	return &loginModel{
		app:      app,
		email:    email,
		password: password,
		spinner:  spin,
	}
}

func (m *loginModel) Init() tea.Cmd {
	return textinput.Blink
}

func (m *loginModel) submit() tea.Cmd {
	email := strings.TrimSpace(m.email.Value())
	password := m.password.Value()
	if email == "" || password == "" {
		m.errText = "informe email e senha"
		return nil
	}

	m.busy = true
	m.errText = ""
	client := m.app.deps.API
	return tea.Batch(
		m.spinner.Tick,
		func() tea.Msg {
			result, err := client.Login(context.Background(), email, password)
			return loginResultMsg{result: result, err: err}
		},
	)
}

func (m *loginModel) Update(msg tea.Msg) tea.Cmd {
	switch msg := msg.(type) {
	case loginResultMsg:
		m.busy = false
		if msg.err != nil {
			// The original app shows a fixed message for any login
			// failure.
			m.errText = "Credenciais inválidas"
			return nil
		}
		if err := m.app.deps.Sessions.Login(context.Background(), *msg.result); err != nil {
			m.errText = "Credenciais inválidas"
			return nil
		}
		return m.app.onLogin()

	case spinner.TickMsg:
		if !m.busy {
			return nil
		}
		var cmd tea.Cmd
		m.spinner, cmd = m.spinner.Update(msg)
		return cmd

	case tea.KeyMsg:
		if m.busy {
			return nil
		}
		keys := m.app.keys
		switch {
		case key.Matches(msg, keys.Confirm):
			if m.focus == 0 {
				m.setFocus(1)
				return nil
			}
			return m.submit()
		case key.Matches(msg, keys.NextField), key.Matches(msg, keys.Down):
			m.setFocus((m.focus + 1) % 2)
			return nil
		case key.Matches(msg, keys.PrevField), key.Matches(msg, keys.Up):
			m.setFocus((m.focus + 1) % 2)
			return nil
		}
	}

	var cmd tea.Cmd
	if m.focus == 0 {
		m.email, cmd = m.email.Update(msg)
	} else {
		m.password, cmd = m.password.Update(msg)
	}
	return cmd
}

func (m *loginModel) setFocus(index int) {
	m.focus = index
	if index == 0 {
		m.email.Focus()
		m.password.Blur()
	} else {
		m.email.Blur()
		m.password.Focus()
	}
}

func (m *loginModel) View() string {
	styles := m.app.styles
	var b strings.Builder

	b.WriteString(styles.Label.Render("Email"))
	b.WriteString("\n")
	b.WriteString(m.email.View())
	b.WriteString("\n\n")
	b.WriteString(styles.Label.Render("Senha"))
	b.WriteString("\n")
	b.WriteString(m.password.View())
	b.WriteString("\n\n")

	if m.busy {
		b.WriteString(m.spinner.View())
		b.WriteString(styles.Faint.Render(" entrando..."))
	} else if m.errText != "" {
		b.WriteString(styles.Error.Render(m.errText))
	}

	return styles.Box.Render(b.String())
}
