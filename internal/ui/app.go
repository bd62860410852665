package ui

import (
	"context"
	"fmt"
	"strings"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/lipgloss"

	"github.com/SalisMR/fuscao-frontend/internal/api"
	"github.com/SalisMR/fuscao-frontend/internal/localstate"
	"github.com/SalisMR/fuscao-frontend/internal/session"
	"github.com/SalisMR/fuscao-frontend/pkg/config"
	pkgerrors "github.com/SalisMR/fuscao-frontend/pkg/errors"
	"github.com/SalisMR/fuscao-frontend/pkg/logger"
)

// Screen identifies the active view.
type Screen int

const (
	ScreenLogin Screen = iota
	ScreenTicket
	ScreenDashboard
	ScreenInventory
	ScreenEmployees
	ScreenReports
)

func (s Screen) title() string {
	switch s {
	case ScreenLogin:
		return "Login"
	case ScreenTicket:
		return "Nova Comanda"
	case ScreenDashboard:
		return "Painel"
	case ScreenInventory:
		return "Estoque"
	case ScreenEmployees:
		return "Funcionários"
	case ScreenReports:
		return "Relatórios"
	default:
		return ""
	}
}

// Deps are the collaborators every screen shares.
type Deps struct {
	Config   *config.Config
	Logger   *logger.Logger
	API      *api.Client
	Sessions *session.Manager
	State    *localstate.Store
}

func (d Deps) validate() error {
	if d.Config == nil {
		return pkgerrors.New(pkgerrors.CodeInternal, "config is required")
	}
	if d.Logger == nil {
		return pkgerrors.New(pkgerrors.CodeInternal, "logger is required")
	}
	if d.API == nil {
		return pkgerrors.New(pkgerrors.CodeInternal, "api client is required")
	}
	if d.Sessions == nil {
		return pkgerrors.New(pkgerrors.CodeInternal, "session manager is required")
	}
	if d.State == nil {
		return pkgerrors.New(pkgerrors.CodeInternal, "state store is required")
	}
	return nil
}

// App is the top-level bubbletea model. It owns the shared chrome
// (header, status bar, screen switching) and routes everything else to
// the active screen.
type App struct {
	deps   Deps
	theme  Theme
	styles Styles
	keys   KeyMap

	width  int
	height int

	screen    Screen
	login     *loginModel
	ticket    *ticketModel
	dashboard *dashboardModel
	inventory *inventoryModel
	employees *employeesModel
	reports   *reportsModel

	statusText string
	statusErr  bool
	statusSeq  int64
}

func NewApp(deps Deps) (*App, error) {
	if err := deps.validate(); err != nil {
		return nil, err
	}

	app := &App{
		deps:   deps,
		theme:  DefaultTheme,
		styles: NewStyles(DefaultTheme),
		keys:   DefaultKeyMap(),
		screen: ScreenLogin,
	}
	app.login = newLoginModel(app)
	return app, nil
}

func (a *App) Init() tea.Cmd {
	if a.deps.Sessions.Active() {
		return a.switchTo(ScreenTicket)
	}
	return a.login.Init()
}

// switchTo activates a screen, constructing its model lazily, and
// returns its load command. Admin screens bounce non-admin roles back
// with a status message.
func (a *App) switchTo(screen Screen) tea.Cmd {
	current := a.deps.Sessions.Current()
	if screen != ScreenLogin && current == nil {
		a.screen = ScreenLogin
		a.login = newLoginModel(a)
		return a.login.Init()
	}

	if screen.adminOnly() && !current.Identity.Role.IsAdmin() {
		return status("acesso negado", true)
	}

	a.screen = screen
	switch screen {
	case ScreenLogin:
		a.login = newLoginModel(a)
		return a.login.Init()
	case ScreenTicket:
		if a.ticket == nil {
			a.ticket = newTicketModel(a, current.Identity)
		}
		return a.ticket.Init()
	case ScreenDashboard:
		if a.dashboard == nil {
			a.dashboard = newDashboardModel(a)
		}
		return a.dashboard.Init()
	case ScreenInventory:
		if a.inventory == nil {
			a.inventory = newInventoryModel(a)
		}
		return a.inventory.Init()
	case ScreenEmployees:
		if a.employees == nil {
			a.employees = newEmployeesModel(a)
		}
		return a.employees.Init()
	case ScreenReports:
		if a.reports == nil {
			a.reports = newReportsModel(a)
		}
		return a.reports.Init()
	}
	return nil
}

func (s Screen) adminOnly() bool {
	switch s {
	case ScreenDashboard, ScreenInventory, ScreenEmployees, ScreenReports:
		return true
	default:
		return false
	}
}

// onLogin is called by the login screen after the session manager has
// accepted the credentials.
func (a *App) onLogin() tea.Cmd {
	a.ticket = nil
	a.dashboard = nil
	a.inventory = nil
	a.employees = nil
	a.reports = nil

	current := a.deps.Sessions.Current()
	if current != nil && current.Identity.Role.IsAdmin() {
		return a.switchTo(ScreenDashboard)
	}
	return a.switchTo(ScreenTicket)
}

func (a *App) logout() tea.Cmd {
	if err := a.deps.Sessions.Logout(context.Background()); err != nil {
		a.deps.Logger.Error(context.Background(), "logout", err)
	}
	a.ticket = nil
	a.dashboard = nil
	a.inventory = nil
	a.employees = nil
	a.reports = nil
	return a.switchTo(ScreenLogin)
}

func (a *App) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		a.width = msg.Width
		a.height = msg.Height
		return a, nil

	case statusMsg:
		a.statusText = msg.text
		a.statusErr = msg.isError
		a.statusSeq = msg.seq
		return a, nil

	case statusFadeMsg:
		if msg.seq == a.statusSeq {
			a.statusText = ""
		}
		return a, nil

	case tea.KeyMsg:
		switch {
		case key.Matches(msg, a.keys.Quit):
			return a, tea.Quit
		case key.Matches(msg, a.keys.Logout) && a.screen != ScreenLogin:
			return a, a.logout()
		case key.Matches(msg, a.keys.GoTicket) && a.screen != ScreenLogin:
			return a, a.switchTo(ScreenTicket)
		case key.Matches(msg, a.keys.GoDashboard) && a.screen != ScreenLogin:
			return a, a.switchTo(ScreenDashboard)
		case key.Matches(msg, a.keys.GoInventory) && a.screen != ScreenLogin:
			return a, a.switchTo(ScreenInventory)
		case key.Matches(msg, a.keys.GoEmployees) && a.screen != ScreenLogin:
			return a, a.switchTo(ScreenEmployees)
		case key.Matches(msg, a.keys.GoReports) && a.screen != ScreenLogin:
			return a, a.switchTo(ScreenReports)
		}
	}

	return a, a.routeToScreen(msg)
}

func (a *App) routeToScreen(msg tea.Msg) tea.Cmd {
	switch a.screen {
	case ScreenLogin:
		return a.login.Update(msg)
	case ScreenTicket:
		return a.ticket.Update(msg)
	case ScreenDashboard:
		return a.dashboard.Update(msg)
	case ScreenInventory:
		return a.inventory.Update(msg)
	case ScreenEmployees:
		return a.employees.Update(msg)
	case ScreenReports:
		return a.reports.Update(msg)
	}
	return nil
}

func (a *App) View() string {
	var b strings.Builder
	b.WriteString(a.header())
	b.WriteString("\n\n")

	switch a.screen {
	case ScreenLogin:
		b.WriteString(a.login.View())
	case ScreenTicket:
		b.WriteString(a.ticket.View())
	case ScreenDashboard:
		b.WriteString(a.dashboard.View())
	case ScreenInventory:
		b.WriteString(a.inventory.View())
	case ScreenEmployees:
		b.WriteString(a.employees.View())
	case ScreenReports:
		b.WriteString(a.reports.View())
	}

	b.WriteString("\n")
	b.WriteString(a.statusBar())
	return b.String()
}

func (a *App) header() string {
	title := a.styles.Title.Render("FUSCÃO STOP CAR")
	screen := a.styles.Value.Render(a.screen.title())

	right := ""
	if current := a.deps.Sessions.Current(); current != nil {
		right = a.styles.Faint.Render(fmt.Sprintf("%s (%s)", current.Identity.Name, current.Identity.Role))
	}

	line := lipgloss.JoinHorizontal(lipgloss.Top, title, "  ", screen)
	if right == "" {
		return line
	}
	gap := a.width - lipgloss.Width(line) - lipgloss.Width(right)
	if gap < 1 {
		gap = 1
	}
	return line + strings.Repeat(" ", gap) + right
}

func (a *App) statusBar() string {
	if a.statusText != "" {
		if a.statusErr {
			return a.styles.Error.Render(a.statusText)
		}
		return a.styles.Success.Render(a.statusText)
	}

	if a.screen == ScreenLogin {
		return a.styles.Help.Render("enter entrar · ctrl+c sair")
	}

	help := "F1 comanda"
	if current := a.deps.Sessions.Current(); current != nil && current.Identity.Role.IsAdmin() {
		help += " · F2 painel · F3 estoque · F4 funcionários · F5 relatórios"
	}
	help += " · ctrl+o sair da conta · ctrl+c sair"
	return a.styles.Help.Render(help)
}
