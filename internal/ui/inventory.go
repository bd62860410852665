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
	"github.com/SalisMR/fuscao-frontend/internal/report"
	"github.com/SalisMR/fuscao-frontend/pkg/enums"
	"github.com/SalisMR/fuscao-frontend/pkg/money"
)

type inventoryModel struct {
	app *App

	items   []api.Item
	topSold []report.SoldItem
	table   table.Model
	loading bool

	confirmDelete *api.Item

	chartKind enums.ItemKind

	editing   bool
	editingID string
	formKind  enums.ItemKind
	nome      textinput.Model
	qtd       textinput.Model
	valor     textinput.Model
	formFocus int
}

func newInventoryModel(app *App) *inventoryModel {
	columns := []table.Column{
		{Title: "Nome", Width: 30},
		{Title: "Tipo", Width: 10},
		{Title: "Qtd", Width: 6},
		{Title: "Valor", Width: 14},
	}
	tbl := table.New(table.WithColumns(columns), table.WithHeight(10), table.WithFocused(true))

	nome := textinput.New()
	nome.Placeholder = "nome"
	nome.CharLimit = 80
	qtd := textinput.New()
	qtd.Placeholder = "quantidade"
	qtd.CharLimit = 8
	valor := textinput.New()
	valor.Placeholder = "valor"
	valor.CharLimit = 12

	return &inventoryModel{
		app:       app,
		table:     tbl,
		chartKind: enums.ItemKindProduct,
		formKind:  enums.ItemKindProduct,
		nome:      nome,
		qtd:       qtd,
		valor:     valor,
	}
}

func (m *inventoryModel) Init() tea.Cmd {
	return m.load()
}

// load fetches the inventory and the ticket history that feeds the
// best-sellers chart.
func (m *inventoryModel) load() tea.Cmd {
	m.loading = true
	client := m.app.deps.API
	return func() tea.Msg {
		items, err := client.ListItems(context.Background())
		if err != nil {
			return inventoryMsg{err: err}
		}
		comandas, err := client.ListComandas(context.Background())
		if err != nil {
			return inventoryMsg{err: err}
		}
		return inventoryMsg{items: items, topSold: report.TopSold(comandas)}
	}
}

func (m *inventoryModel) refreshTable() {
	rows := make([]table.Row, 0, len(m.items))
	for _, item := range m.items {
		qtd := "-"
		if enums.ParseItemKind(item.Tipo) == enums.ItemKindProduct {
			qtd = strconv.Itoa(item.Quantidade)
		}
		rows = append(rows, table.Row{
			item.Nome,
			item.Tipo,
			qtd,
			money.FormatBRL(money.FromFloat(item.Valor)),
		})
	}
	m.table.SetRows(rows)
}

func (m *inventoryModel) selected() *api.Item {
	cursor := m.table.Cursor()
	if cursor < 0 || cursor >= len(m.items) {
		return nil
	}
	return &m.items[cursor]
}

func (m *inventoryModel) startEdit(item *api.Item) tea.Cmd {
	m.editing = true
	m.formFocus = 0
	if item == nil {
		m.editingID = ""
		m.formKind = enums.ItemKindProduct
		m.nome.SetValue("")
		m.qtd.SetValue("0")
		m.valor.SetValue("0")
	} else {
		m.editingID = item.ID
		m.formKind = enums.ParseItemKind(item.Tipo)
		m.nome.SetValue(item.Nome)
		m.qtd.SetValue(strconv.Itoa(item.Quantidade))
		m.valor.SetValue(strconv.FormatFloat(item.Valor, 'f', 2, 64))
	}
	m.setFormFocus(0)
	return textinput.Blink
}

func (m *inventoryModel) setFormFocus(index int) {
	m.formFocus = ((index % 3) + 3) % 3
	inputs := []*textinput.Model{&m.nome, &m.qtd, &m.valor}
	for i, input := range inputs {
		if i == m.formFocus {
			input.Focus()
		} else {
			input.Blur()
		}
	}
}

func (m *inventoryModel) saveForm() tea.Cmd {
	nome := strings.TrimSpace(m.nome.Value())
	if nome == "" {
		return status("informe o nome do item", true)
	}
	qtd, err := strconv.Atoi(strings.TrimSpace(m.qtd.Value()))
	if err != nil || qtd < 0 {
		qtd = 0
	}
	valor, ok := money.Parse(m.valor.Value())
	if !ok || valor.IsNegative() {
		return status("informe um valor válido", true)
	}

	payload := api.ItemPayload{
		Nome:       nome,
		Tipo:       m.formKind.String(),
		Quantidade: qtd,
		Valor:      valor.InexactFloat64(),
	}

	m.editing = false
	client := m.app.deps.API
	id := m.editingID
	return func() tea.Msg {
		var err error
		if id == "" {
			err = client.CreateItem(context.Background(), payload)
		} else {
			err = client.UpdateItem(context.Background(), id, payload)
		}
		return itemSavedMsg{err: err}
	}
}

func (m *inventoryModel) deleteItem(id string) tea.Cmd {
	client := m.app.deps.API
	return func() tea.Msg {
		return itemSavedMsg{err: client.DeleteItem(context.Background(), id)}
	}
}

func (m *inventoryModel) Update(msg tea.Msg) tea.Cmd {
	switch msg := msg.(type) {
	case inventoryMsg:
		m.loading = false
		m.confirmDelete = nil
		if msg.err != nil {
			return statusFromError(msg.err)
		}
		m.items = msg.items
		m.topSold = msg.topSold
		m.refreshTable()
		return nil

	case itemSavedMsg:
		if msg.err != nil {
			return statusFromError(msg.err)
		}
		return tea.Batch(status("estoque atualizado", false), m.load())

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
				if m.formKind == enums.ItemKindProduct {
					m.formKind = enums.ItemKindService
				} else {
					m.formKind = enums.ItemKindProduct
				}
				return nil
			}
			var cmd tea.Cmd
			switch m.formFocus {
			case 0:
				m.nome, cmd = m.nome.Update(msg)
			case 1:
				m.qtd, cmd = m.qtd.Update(msg)
			case 2:
				m.valor, cmd = m.valor.Update(msg)
			}
			return cmd
		}

		if m.confirmDelete != nil {
			switch {
			case key.Matches(msg, keys.Confirm):
				item := m.confirmDelete
				m.confirmDelete = nil
				return m.deleteItem(item.ID)
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
			m.confirmDelete = m.selected()
			return nil
		case key.Matches(msg, keys.Refresh):
			return m.load()
		case key.Matches(msg, keys.Cycle):
			if m.chartKind == enums.ItemKindProduct {
				m.chartKind = enums.ItemKindService
			} else {
				m.chartKind = enums.ItemKindProduct
			}
			return nil
		}

		var cmd tea.Cmd
		m.table, cmd = m.table.Update(msg)
		return cmd
	}
	return nil
}

func (m *inventoryModel) View() string {
	styles := m.app.styles
	var b strings.Builder

	if m.editing {
		title := "Novo Item"
		if m.editingID != "" {
			title = "Editar Item"
		}
		b.WriteString(styles.Title.Render(title))
		b.WriteString("\n\n")
		b.WriteString(styles.Label.Render("Nome       "))
		b.WriteString(m.nome.View())
		b.WriteString("\n")
		b.WriteString(styles.Label.Render("Tipo       "))
		b.WriteString(styles.Value.Render(m.formKind.String()))
		b.WriteString(styles.Faint.Render("  (ctrl+p alterna)"))
		b.WriteString("\n")
		b.WriteString(styles.Label.Render("Quantidade "))
		b.WriteString(m.qtd.View())
		b.WriteString("\n")
		b.WriteString(styles.Label.Render("Valor      "))
		b.WriteString(m.valor.View())
		b.WriteString("\n\n")
		b.WriteString(styles.Help.Render("enter salvar · esc cancelar"))
		return b.String()
	}

	if m.loading {
		b.WriteString(styles.Faint.Render("carregando..."))
		b.WriteString("\n")
	}
	b.WriteString(m.table.View())
	b.WriteString("\n\n")

	b.WriteString(styles.Title.Render(fmt.Sprintf("Mais Vendidos (%s)", m.chartKind)))
	b.WriteString("\n")
	top := report.FilterTop(m.topSold, m.chartKind)
	rows := make([]barRow, 0, len(top))
	for _, item := range top {
		rows = append(rows, barRow{
			label: item.Name,
			value: float64(item.Quantity),
			text:  fmt.Sprintf("%dx", item.Quantity),
		})
	}
	b.WriteString(renderBarChart(styles, m.app.theme, rows, 30))
	b.WriteString("\n\n")

	if m.confirmDelete != nil {
		b.WriteString(styles.Error.Render(fmt.Sprintf("Tem certeza que deseja excluir %q? enter confirma · esc cancela", m.confirmDelete.Nome)))
	} else {
		b.WriteString(styles.Help.Render("ctrl+n novo · ctrl+t editar · ctrl+x remover · ctrl+p gráfico · ctrl+r recarregar"))
	}
	return b.String()
}
