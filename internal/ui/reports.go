package ui

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strings"

	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/table"
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/SalisMR/fuscao-frontend/internal/api"
	"github.com/SalisMR/fuscao-frontend/pkg/money"
)

const reportFocusCount = 3

type reportsModel struct {
	app *App

	inicio textinput.Model
	fim    textinput.Model
	busca  textinput.Model
	focus  int

	employees     []api.User
	employeeIndex int // 0 == all

	report  *api.DetailedReport
	table   table.Model
	loading bool

	confirmDelete *api.Comanda

	export api.ExportOptions
}

func newReportsModel(app *App) *reportsModel {
	newInput := func(placeholder string, limit int) textinput.Model {
		input := textinput.New()
		input.Placeholder = placeholder
		input.CharLimit = limit
		return input
	}

	columns := []table.Column{
		{Title: "Data", Width: 10},
		{Title: "Cliente", Width: 22},
		{Title: "Veículo", Width: 16},
		{Title: "Funcionário", Width: 18},
		{Title: "Total", Width: 14},
	}
	tbl := table.New(table.WithColumns(columns), table.WithHeight(10), table.WithFocused(true))

	m := &reportsModel{
		app:    app,
		inicio: newInput("início (AAAA-MM-DD)", 10),
		fim:    newInput("fim (AAAA-MM-DD)", 10),
		busca:  newInput("cliente ou veículo", 80),
		table:  tbl,
		export: api.ExportOptions{Resumo: true, Produtos: true, Servicos: true, Comandas: true},
	}
	m.setFocus(0)
	return m
}

func (m *reportsModel) Init() tea.Cmd {
	return m.load()
}

func (m *reportsModel) filters() api.ReportFilters {
	filters := api.ReportFilters{
		Inicio: strings.TrimSpace(m.inicio.Value()),
		Fim:    strings.TrimSpace(m.fim.Value()),
		Busca:  strings.TrimSpace(m.busca.Value()),
	}
	if m.employeeIndex > 0 && m.employeeIndex <= len(m.employees) {
		filters.Funcionario = m.employees[m.employeeIndex-1].ID
	}
	return filters
}

func (m *reportsModel) load() tea.Cmd {
	m.loading = true
	client := m.app.deps.API
	filters := m.filters()
	needEmployees := m.employees == nil
	employees := m.employees
	return func() tea.Msg {
		if needEmployees {
			list, err := client.ListEmployees(context.Background())
			if err != nil {
				return reportMsg{err: err}
			}
			employees = list
		}
		report, err := client.GetDetailedReport(context.Background(), filters)
		return reportMsg{report: report, employees: employees, err: err}
	}
}

func (m *reportsModel) setFocus(index int) {
	inputs := []*textinput.Model{&m.inicio, &m.fim, &m.busca}
	m.focus = ((index % reportFocusCount) + reportFocusCount) % reportFocusCount
	for i, input := range inputs {
		if i == m.focus {
			input.Focus()
		} else {
			input.Blur()
		}
	}
}

func (m *reportsModel) cycleEmployee() {
	m.employeeIndex = (m.employeeIndex + 1) % (len(m.employees) + 1)
}

func (m *reportsModel) employeeLabel() string {
	if m.employeeIndex == 0 || m.employeeIndex > len(m.employees) {
		return "todos"
	}
	return m.employees[m.employeeIndex-1].Nome
}

func (m *reportsModel) refreshTable() {
	if m.report == nil {
		m.table.SetRows(nil)
		return
	}
	rows := make([]table.Row, 0, len(m.report.Comandas))
	for _, comanda := range m.report.Comandas {
		rows = append(rows, table.Row{
			comanda.CreatedAt.Format("02/01/2006"),
			comanda.Cliente,
			comanda.Veiculo,
			comanda.Funcionario.Nome,
			money.FormatBRL(money.FromFloat(comanda.ValorFinal)),
		})
	}
	m.table.SetRows(rows)
	if cursor := m.table.Cursor(); cursor >= len(rows) && len(rows) > 0 {
		m.table.SetCursor(len(rows) - 1)
	}
}

func (m *reportsModel) selectedComanda() *api.Comanda {
	if m.report == nil {
		return nil
	}
	cursor := m.table.Cursor()
	if cursor < 0 || cursor >= len(m.report.Comandas) {
		return nil
	}
	return &m.report.Comandas[cursor]
}

func (m *reportsModel) downloadPDF() tea.Cmd {
	comanda := m.selectedComanda()
	if comanda == nil {
		return nil
	}
	client := m.app.deps.API
	dir := m.app.deps.Config.PDF.DownloadDir
	id := comanda.ID
	return func() tea.Msg {
		data, err := client.ComandaPDF(context.Background(), id)
		if err != nil {
			return pdfSavedMsg{err: err}
		}
		path := filepath.Join(dir, fmt.Sprintf("comanda-%s.pdf", id))
		if err := os.WriteFile(path, data, 0o644); err != nil {
			return pdfSavedMsg{err: err}
		}
		return pdfSavedMsg{path: path}
	}
}

func (m *reportsModel) exportPDF() tea.Cmd {
	client := m.app.deps.API
	dir := m.app.deps.Config.PDF.DownloadDir
	filters := m.filters()
	opts := m.export
	return func() tea.Msg {
		data, err := client.ExportReportPDF(context.Background(), filters, opts)
		if err != nil {
			return pdfSavedMsg{err: err}
		}
		path := filepath.Join(dir, "relatorio.pdf")
		if err := os.WriteFile(path, data, 0o644); err != nil {
			return pdfSavedMsg{err: err}
		}
		return pdfSavedMsg{path: path}
	}
}

func (m *reportsModel) deleteComanda(id string) tea.Cmd {
	client := m.app.deps.API
	return func() tea.Msg {
		return comandaDeletedMsg{id: id, err: client.DeleteComanda(context.Background(), id)}
	}
}

func (m *reportsModel) toggleExport(section string) bool {
	switch section {
	case "alt+1":
		m.export.Resumo = !m.export.Resumo
	case "alt+2":
		m.export.Produtos = !m.export.Produtos
	case "alt+3":
		m.export.Servicos = !m.export.Servicos
	case "alt+4":
		m.export.Comandas = !m.export.Comandas
	default:
		return false
	}
	return true
}

func (m *reportsModel) Update(msg tea.Msg) tea.Cmd {
	switch msg := msg.(type) {
	case reportMsg:
		m.loading = false
		m.confirmDelete = nil
		if msg.err != nil {
			return statusFromError(msg.err)
		}
		m.report = msg.report
		if msg.employees != nil {
			m.employees = msg.employees
		}
		m.refreshTable()
		return nil

	case comandaDeletedMsg:
		if msg.err != nil {
			return statusFromError(msg.err)
		}
		return tea.Batch(status("comanda excluída", false), m.load())

	case pdfSavedMsg:
		if msg.err != nil {
			return statusFromError(msg.err)
		}
		return status("PDF salvo em "+msg.path, false)

	case tea.KeyMsg:
		keys := m.app.keys

		if m.confirmDelete != nil {
			switch {
			case key.Matches(msg, keys.Confirm):
				comanda := m.confirmDelete
				m.confirmDelete = nil
				return m.deleteComanda(comanda.ID)
			case key.Matches(msg, keys.Cancel):
				m.confirmDelete = nil
			}
			return nil
		}

		switch {
		case key.Matches(msg, keys.Confirm), key.Matches(msg, keys.Refresh):
			return m.load()
		case key.Matches(msg, keys.NextField):
			m.setFocus(m.focus + 1)
			return nil
		case key.Matches(msg, keys.PrevField):
			m.setFocus(m.focus - 1)
			return nil
		case key.Matches(msg, keys.Cycle):
			m.cycleEmployee()
			return m.load()
		case key.Matches(msg, keys.Export):
			return m.exportPDF()
		case key.Matches(msg, keys.PDF):
			return m.downloadPDF()
		case key.Matches(msg, keys.Remove):
			m.confirmDelete = m.selectedComanda()
			return nil
		case key.Matches(msg, keys.Up), key.Matches(msg, keys.Down):
			var cmd tea.Cmd
			m.table, cmd = m.table.Update(msg)
			return cmd
		}

		if m.toggleExport(msg.String()) {
			return nil
		}

		var cmd tea.Cmd
		switch m.focus {
		case 0:
			m.inicio, cmd = m.inicio.Update(msg)
		case 1:
			m.fim, cmd = m.fim.Update(msg)
		case 2:
			m.busca, cmd = m.busca.Update(msg)
		}
		return cmd
	}
	return nil
}

// sortedGroups flattens a name→total map in descending quantity order
// for display.
func sortedGroups(groups map[string]api.GroupTotal) []string {
	names := make([]string, 0, len(groups))
	for name := range groups {
		names = append(names, name)
	}
	sort.SliceStable(names, func(i, j int) bool {
		if groups[names[i]].Quantidade != groups[names[j]].Quantidade {
			return groups[names[i]].Quantidade > groups[names[j]].Quantidade
		}
		return names[i] < names[j]
	})
	return names
}

func (m *reportsModel) View() string {
	styles := m.app.styles
	var b strings.Builder

	b.WriteString(styles.Label.Render("Início "))
	b.WriteString(m.inicio.View())
	b.WriteString(styles.Label.Render("   Fim "))
	b.WriteString(m.fim.View())
	b.WriteString("\n")
	b.WriteString(styles.Label.Render("Busca  "))
	b.WriteString(m.busca.View())
	b.WriteString(styles.Label.Render("   Funcionário "))
	b.WriteString(styles.Value.Render(m.employeeLabel()))
	b.WriteString("\n\n")

	if m.loading {
		b.WriteString(styles.Faint.Render("carregando..."))
		b.WriteString("\n\n")
	}

	if m.report != nil {
		resumo := m.report.Resumo
		cards := []string{
			fmt.Sprintf("Comandas: %s", styles.Value.Render(fmt.Sprintf("%d", resumo.Comandas))),
			fmt.Sprintf("Faturamento: %s", styles.Value.Render(money.FormatBRL(money.FromFloat(resumo.Faturamento)))),
		}
		b.WriteString(strings.Join(cards, "    "))
		b.WriteString("\n\n")

		writeGroups := func(title string, groups map[string]api.GroupTotal) {
			if len(groups) == 0 {
				return
			}
			b.WriteString(styles.Title.Render(title))
			b.WriteString("\n")
			for _, name := range sortedGroups(groups) {
				group := groups[name]
				b.WriteString(fmt.Sprintf("  %-30s %3dx  %s\n",
					name, group.Quantidade, money.FormatBRL(money.FromFloat(group.Total))))
			}
			b.WriteString("\n")
		}
		writeGroups("Serviços Realizados", resumo.ServicosRealizados)
		writeGroups("Produtos Vendidos", resumo.ProdutosVendidos)
	}

	b.WriteString(m.table.View())
	b.WriteString("\n\n")

	exportMark := func(on bool) string {
		if on {
			return "[x]"
		}
		return "[ ]"
	}
	b.WriteString(styles.Faint.Render(fmt.Sprintf("Exportar (alt+1..4): %s resumo  %s produtos  %s serviços  %s comandas",
		exportMark(m.export.Resumo), exportMark(m.export.Produtos), exportMark(m.export.Servicos), exportMark(m.export.Comandas))))
	b.WriteString("\n")
	if m.confirmDelete != nil {
		b.WriteString(styles.Error.Render(fmt.Sprintf("Tem certeza que deseja excluir a comanda de %q? enter confirma · esc cancela", m.confirmDelete.Cliente)))
	} else {
		b.WriteString(styles.Help.Render("enter filtrar · ctrl+p funcionário · ctrl+e exportar PDF · ctrl+d PDF da comanda · ctrl+x excluir"))
	}
	return b.String()
}
