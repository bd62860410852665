package ui

import (
	"context"
	"fmt"
	"strconv"
	"strings"

	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/table"
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/SalisMR/fuscao-frontend/internal/api"
	"github.com/SalisMR/fuscao-frontend/pkg/enums"
)

var staffRoleOrder = []enums.StaffRole{
	enums.StaffRoleEmployee,
	enums.StaffRoleReception,
	enums.StaffRoleManager,
	enums.StaffRoleAdmin,
}

type employeesModel struct {
	app *App

	users   []api.User
	table   table.Model
	loading bool

	confirmDelete *api.User

	editing   bool
	editingID string
	formRole  enums.StaffRole
	nome      textinput.Model
	email     textinput.Model
	senha     textinput.Model
	comProd   textinput.Model
	comServ   textinput.Model
	formFocus int
}

func newEmployeesModel(app *App) *employeesModel {
	columns := []table.Column{
		{Title: "Nome", Width: 24},
		{Title: "Email", Width: 28},
		{Title: "Tipo", Width: 12},
		{Title: "Com. Prod", Width: 10},
		{Title: "Com. Serv", Width: 10},
	}
	tbl := table.New(table.WithColumns(columns), table.WithHeight(12), table.WithFocused(true))

	newInput := func(placeholder string, limit int) textinput.Model {
		input := textinput.New()
		input.Placeholder = placeholder
		input.CharLimit = limit
		return input
	}
	senha := newInput("senha", 80)
	senha.EchoMode = textinput.EchoPassword
	senha.EchoCharacter = '•'

	return &employeesModel{
		app:      app,
		table:    tbl,
		formRole: enums.StaffRoleEmployee,
		nome:     newInput("nome", 80),
		email:    newInput("email", 120),
		senha:    senha,
		comProd:  newInput("% produto", 6),
		comServ:  newInput("% serviço", 6),
	}
}

func (m *employeesModel) Init() tea.Cmd {
	return m.load()
}

func (m *employeesModel) load() tea.Cmd {
	m.loading = true
	client := m.app.deps.API
	return func() tea.Msg {
		users, err := client.ListUsers(context.Background())
		return usersMsg{users: users, err: err}
	}
}

func (m *employeesModel) refreshTable() {
	rows := make([]table.Row, 0, len(m.users))
	for _, user := range m.users {
		rows = append(rows, table.Row{
			user.Nome,
			user.Email,
			user.Tipo,
			strconv.FormatFloat(user.ComissaoProduto, 'f', 1, 64),
			strconv.FormatFloat(user.ComissaoServico, 'f', 1, 64),
		})
	}
	m.table.SetRows(rows)
}

func (m *employeesModel) selected() *api.User {
	cursor := m.table.Cursor()
	if cursor < 0 || cursor >= len(m.users) {
		return nil
	}
	return &m.users[cursor]
}

func (m *employeesModel) startEdit(user *api.User) tea.Cmd {
	m.editing = true
	if user == nil {
		m.editingID = ""
		m.formRole = enums.StaffRoleEmployee
		m.nome.SetValue("")
		m.email.SetValue("")
		m.senha.SetValue("")
		m.comProd.SetValue("")
		m.comServ.SetValue("")
	} else {
		m.editingID = user.ID
		if role, err := enums.ParseStaffRole(user.Tipo); err == nil {
			m.formRole = role
		}
		m.nome.SetValue(user.Nome)
		m.email.SetValue(user.Email)
		m.senha.SetValue("")
		m.comProd.SetValue(strconv.FormatFloat(user.ComissaoProduto, 'f', -1, 64))
		m.comServ.SetValue(strconv.FormatFloat(user.ComissaoServico, 'f', -1, 64))
	}
	m.setFormFocus(0)
	return textinput.Blink
}

func (m *employeesModel) setFormFocus(index int) {
	inputs := []*textinput.Model{&m.nome, &m.email, &m.senha, &m.comProd, &m.comServ}
	count := len(inputs)
	m.formFocus = ((index % count) + count) % count
	for i, input := range inputs {
		if i == m.formFocus {
			input.Focus()
		} else {
			input.Blur()
		}
	}
}

func (m *employeesModel) cycleRole() {
	for i, role := range staffRoleOrder {
		if role == m.formRole {
			m.formRole = staffRoleOrder[(i+1)%len(staffRoleOrder)]
			return
		}
	}
	m.formRole = enums.StaffRoleEmployee
}

func parseCommission(raw string) float64 {
	value, err := strconv.ParseFloat(strings.TrimSpace(raw), 64)
	if err != nil || value < 0 {
		return 0
	}
	return value
}

func (m *employeesModel) saveForm() tea.Cmd {
	nome := strings.TrimSpace(m.nome.Value())
	email := strings.TrimSpace(m.email.Value())
	if nome == "" || email == "" {
		return status("informe nome e email", true)
	}
	if m.editingID == "" && m.senha.Value() == "" {
		return status("informe a senha do novo usuário", true)
	}

	payload := api.UserPayload{
		Nome:            nome,
		Email:           email,
		Senha:           m.senha.Value(),
		Tipo:            m.formRole.String(),
		ComissaoProduto: parseCommission(m.comProd.Value()),
		ComissaoServico: parseCommission(m.comServ.Value()),
	}

	m.editing = false
	client := m.app.deps.API
	id := m.editingID
	return func() tea.Msg {
		var err error
		if id == "" {
			err = client.RegisterUser(context.Background(), payload)
		} else {
			err = client.UpdateUser(context.Background(), id, payload)
		}
		return userSavedMsg{err: err}
	}
}

func (m *employeesModel) askDelete() tea.Cmd {
	user := m.selected()
	if user == nil {
		return nil
	}
	// Deleting yourself would orphan the active session.
	if current := m.app.deps.Sessions.Current(); current != nil && current.Identity.ID == user.ID {
		return status("não é possível excluir o próprio usuário", true)
	}
	m.confirmDelete = user
	return nil
}

func (m *employeesModel) deleteUser(id string) tea.Cmd {
	client := m.app.deps.API
	return func() tea.Msg {
		return userSavedMsg{err: client.DeleteUser(context.Background(), id)}
	}
}

func (m *employeesModel) Update(msg tea.Msg) tea.Cmd {
	switch msg := msg.(type) {
	case usersMsg:
		m.loading = false
		m.confirmDelete = nil
		if msg.err != nil {
			return statusFromError(msg.err)
		}
		m.users = msg.users
		m.refreshTable()
		return nil

	case userSavedMsg:
		if msg.err != nil {
			return statusFromError(msg.err)
		}
		return tea.Batch(status("funcionários atualizados", false), m.load())

	case tea.KeyMsg:
		keys := m.app.keys

		if m.editing {
			switch {
			case key.Matches(msg, keys.Cancel):
				m.editing = false
				return nil
			case key.Matches(msg, keys.Confirm):
				return m.saveForm()
			case key.Matches(msg, keys.NextField), key.Matches(msg, keys.Down):
				m.setFormFocus(m.formFocus + 1)
				return nil
			case key.Matches(msg, keys.PrevField), key.Matches(msg, keys.Up):
				m.setFormFocus(m.formFocus - 1)
				return nil
			case key.Matches(msg, keys.Cycle):
				m.cycleRole()
				return nil
			}
			var cmd tea.Cmd
			switch m.formFocus {
			case 0:
				m.nome, cmd = m.nome.Update(msg)
			case 1:
				m.email, cmd = m.email.Update(msg)
			case 2:
				m.senha, cmd = m.senha.Update(msg)
			case 3:
				m.comProd, cmd = m.comProd.Update(msg)
			case 4:
				m.comServ, cmd = m.comServ.Update(msg)
			}
			return cmd
		}

		if m.confirmDelete != nil {
			switch {
			case key.Matches(msg, keys.Confirm):
				user := m.confirmDelete
				m.confirmDelete = nil
				return m.deleteUser(user.ID)
			case key.Matches(msg, keys.Cancel):
				m.confirmDelete = nil
			}
			return nil
		}

		switch {
		case key.Matches(msg, keys.New):
			return m.startEdit(nil)
		case key.Matches(msg, keys.Edit):
			return m.startEdit(m.selected())
		case key.Matches(msg, keys.Remove):
			return m.askDelete()
		case key.Matches(msg, keys.Refresh):
			return m.load()
		}

		var cmd tea.Cmd
		m.table, cmd = m.table.Update(msg)
		return cmd
	}
	return nil
}

func (m *employeesModel) View() string {
	styles := m.app.styles
	var b strings.Builder

	if m.editing {
		title := "Novo Funcionário"
		if m.editingID != "" {
			title = "Editar Funcionário"
		}
		b.WriteString(styles.Title.Render(title))
		b.WriteString("\n\n")
		field := func(label string, input textinput.Model) {
			b.WriteString(styles.Label.Render(label))
			b.WriteString(input.View())
			b.WriteString("\n")
		}
		field("Nome           ", m.nome)
		field("Email          ", m.email)
		field("Senha          ", m.senha)
		b.WriteString(styles.Label.Render("Tipo           "))
		b.WriteString(styles.Value.Render(m.formRole.String()))
		b.WriteString(styles.Faint.Render("  (ctrl+p alterna)"))
		b.WriteString("\n")
		field("Comissão prod. ", m.comProd)
		field("Comissão serv. ", m.comServ)
		b.WriteString("\n")
		b.WriteString(styles.Help.Render("enter salvar · esc cancelar"))
		return b.String()
	}

	if m.loading {
		b.WriteString(styles.Faint.Render("carregando..."))
		b.WriteString("\n")
	}
	b.WriteString(m.table.View())
	b.WriteString("\n\n")
	if m.confirmDelete != nil {
		b.WriteString(styles.Error.Render(fmt.Sprintf("Tem certeza que deseja excluir %q? enter confirma · esc cancela", m.confirmDelete.Nome)))
	} else {
		b.WriteString(styles.Help.Render("ctrl+n novo · ctrl+t editar · ctrl+x excluir · ctrl+r recarregar"))
	}
	return b.String()
}
