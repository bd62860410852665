package ui

import (
	"context"
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/progress"
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/SalisMR/fuscao-frontend/internal/api"
	"github.com/SalisMR/fuscao-frontend/pkg/enums"
	"github.com/SalisMR/fuscao-frontend/pkg/money"
)

type dashboardModel struct {
	app *App

	period    enums.Period
	dashboard *api.Dashboard
	loading   bool

	metaBar     progress.Model
	editingMeta bool
	metaInput   textinput.Model
}

func newDashboardModel(app *App) *dashboardModel {
	metaInput := textinput.New()
	metaInput.Placeholder = "nova meta"
	metaInput.CharLimit = 12

	return &dashboardModel{
		app:       app,
		period:    enums.PeriodMonth,
		metaBar:   progress.New(progress.WithDefaultGradient()),
		metaInput: metaInput,
	}
}

func (m *dashboardModel) Init() tea.Cmd {
	return m.load()
}

func (m *dashboardModel) load() tea.Cmd {
	m.loading = true
	client := m.app.deps.API
	period := m.period
	return func() tea.Msg {
		dashboard, err := client.GetDashboard(context.Background(), period)
		return dashboardMsg{dashboard: dashboard, err: err}
	}
}

func (m *dashboardModel) saveMeta() tea.Cmd {
	value, ok := money.Parse(m.metaInput.Value())
	if !ok || !value.IsPositive() {
		return status("digite um valor válido", true)
	}

	m.editingMeta = false
	m.metaInput.SetValue("")
	client := m.app.deps.API
	valor := value.InexactFloat64()
	period := m.period
	return func() tea.Msg {
		if err := client.UpdateMeta(context.Background(), valor); err != nil {
			return dashboardMsg{err: err}
		}
		dashboard, err := client.GetDashboard(context.Background(), period)
		return dashboardMsg{dashboard: dashboard, err: err}
	}
}

func (m *dashboardModel) Update(msg tea.Msg) tea.Cmd {
	switch msg := msg.(type) {
	case dashboardMsg:
		m.loading = false
		if msg.err != nil {
			return statusFromError(msg.err)
		}
		if msg.dashboard != nil {
			m.dashboard = msg.dashboard
		}
		return nil

	case tea.KeyMsg:
		keys := m.app.keys

		if m.editingMeta {
			switch {
			case key.Matches(msg, keys.Confirm):
				return m.saveMeta()
			case key.Matches(msg, keys.Cancel):
				m.editingMeta = false
				m.metaInput.SetValue("")
				return nil
			}
			var cmd tea.Cmd
			m.metaInput, cmd = m.metaInput.Update(msg)
			return cmd
		}

		switch {
		case key.Matches(msg, keys.Cycle):
			m.period = m.period.Next()
			return m.load()
		case key.Matches(msg, keys.Refresh):
			return m.load()
		case key.Matches(msg, keys.Edit):
			m.editingMeta = true
			m.metaInput.Focus()
			return textinput.Blink
		}
	}
	return nil
}

func (m *dashboardModel) View() string {
	styles := m.app.styles
	var b strings.Builder

	b.WriteString(styles.Label.Render("Período: "))
	b.WriteString(styles.Value.Render(m.period.String()))
	if m.loading {
		b.WriteString(styles.Faint.Render("  carregando..."))
	}
	b.WriteString("\n\n")

	dashboard := m.dashboard
	if dashboard == nil {
		b.WriteString(styles.Faint.Render("Sem dados."))
		return b.String()
	}

	card := func(label, value string) string {
		return styles.Box.Render(styles.Label.Render(label) + "\n" + styles.Value.Render(value))
	}
	cards := []string{
		card("Comandas", fmt.Sprintf("%d", dashboard.TotalComandas)),
		card("Faturamento", money.FormatBRL(money.FromFloat(dashboard.Faturamento))),
		card("Clientes únicos", fmt.Sprintf("%d", dashboard.ClientesUnicos)),
		card("Estoque crítico", fmt.Sprintf("%d", len(dashboard.EstoqueCritico))),
	}
	b.WriteString(strings.Join(cards, " "))
	b.WriteString("\n\n")

	if dashboard.Meta != nil {
		b.WriteString(styles.Title.Render("Meta do Mês"))
		b.WriteString("\n")
		if dashboard.Meta.Progresso >= 100 {
			b.WriteString(styles.Success.Render("Parabéns! A meta do mês foi atingida!"))
			b.WriteString("\n")
		}
		b.WriteString(styles.Label.Render(fmt.Sprintf(
			"Meta: %s · Progresso: %.1f%%",
			money.FormatBRL(money.FromFloat(dashboard.Meta.Valor)),
			dashboard.Meta.Progresso,
		)))
		b.WriteString("\n")
		ratio := dashboard.Meta.Progresso / 100
		if ratio > 1 {
			ratio = 1
		}
		b.WriteString(m.metaBar.ViewAs(ratio))
		b.WriteString("\n")
		if m.editingMeta {
			b.WriteString(styles.Label.Render("Nova meta: "))
			b.WriteString(m.metaInput.View())
			b.WriteString("\n")
		}
		b.WriteString("\n")
	}

	if len(dashboard.EstoqueCritico) > 0 {
		b.WriteString(styles.Title.Render("Estoque Crítico"))
		b.WriteString("\n")
		for _, item := range dashboard.EstoqueCritico {
			b.WriteString(styles.Error.Render(fmt.Sprintf("%s · %d unidades", item.Nome, item.Quantidade)))
			b.WriteString("\n")
		}
		b.WriteString("\n")
	}

	b.WriteString(styles.Title.Render("Faturamento por Dia"))
	b.WriteString("\n")
	rows := make([]barRow, 0, len(dashboard.ComandasPorDia))
	for _, day := range dashboard.ComandasPorDia {
		rows = append(rows, barRow{
			label: fmt.Sprintf("%02d/%02d", day.Dia.Dia, day.Dia.Mes),
			value: day.TotalFaturado,
			text:  money.FormatBRL(money.FromFloat(day.TotalFaturado)),
		})
	}
	b.WriteString(renderBarChart(styles, m.app.theme, rows, 40))
	b.WriteString("\n\n")

	b.WriteString(styles.Title.Render("Últimas Comandas"))
	b.WriteString("\n")
	if len(dashboard.UltimasComandas) == 0 {
		b.WriteString(styles.Faint.Render("Nenhuma comanda recente."))
	}
	for _, comanda := range dashboard.UltimasComandas {
		b.WriteString(styles.Value.Render(fmt.Sprintf(
			"%s · %s · %s · %s",
			comanda.CreatedAt.Format("02/01/2006"),
			comanda.Cliente,
			comanda.Funcionario.Nome,
			money.FormatBRL(money.FromFloat(comanda.ValorFinal)),
		)))
		b.WriteString("\n")
	}

	b.WriteString("\n")
	b.WriteString(styles.Help.Render("ctrl+p período · ctrl+t editar meta · ctrl+r recarregar"))
	return b.String()
}
