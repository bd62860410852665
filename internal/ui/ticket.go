package ui

import (
	"context"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/SalisMR/fuscao-frontend/internal/api"
	"github.com/SalisMR/fuscao-frontend/internal/composer"
	"github.com/SalisMR/fuscao-frontend/internal/session"
	"github.com/SalisMR/fuscao-frontend/pkg/enums"
	"github.com/SalisMR/fuscao-frontend/pkg/money"
)

// Focus slots before the per-line quantity fields begin.
const (
	focusCliente = iota
	focusWhatzapp
	focusVeiculo
	focusObs
	focusBusca
	fixedFieldCount
)

type ticketModel struct {
	app      *App
	composer *composer.Composer

	cliente  textinput.Model
	whatzapp textinput.Model
	veiculo  textinput.Model
	obs      textinput.Model
	busca    textinput.Model
	qty      textinput.Model
	desconto textinput.Model

	focus      int
	suggestion int
}

func newTicketModel(app *App, identity session.Identity) *ticketModel {
	newInput := func(placeholder string) textinput.Model {
		input := textinput.New()
		input.Placeholder = placeholder
		input.CharLimit = 120
		return input
	}

	m := &ticketModel{
		app:      app,
		composer: composer.New(identity.ID, identity.Name),
		cliente:  newInput("nome do cliente"),
		whatzapp: newInput("(XX) XXXXX-XXXX"),
		veiculo:  newInput("veículo"),
		obs:      newInput("observações"),
		busca:    newInput("buscar produto ou serviço"),
		qty:      newInput("qtd"),
		desconto: newInput("0"),
	}
	m.qty.CharLimit = 6
	m.desconto.CharLimit = 12
	m.desconto.SetValue("0")
	m.composer.SetDiscountText("0")
	m.cliente.Focus()

	m.restoreDraft()
	return m
}

func (m *ticketModel) Init() tea.Cmd {
	return textinput.Blink
}

// draftState is the persisted shape of an unfinished ticket.
type draftState struct {
	Cliente     string      `json:"cliente"`
	Whatzapp    string      `json:"whatzapp"`
	Veiculo     string      `json:"veiculo"`
	Observacoes string      `json:"observacoes"`
	Desconto    string      `json:"desconto"`
	Itens       []draftLine `json:"itens"`
}

type draftLine struct {
	ItemID        string  `json:"itemId"`
	Nome          string  `json:"nome"`
	Tipo          string  `json:"tipo"`
	Quantidade    string  `json:"quantidade"`
	ValorUnitario float64 `json:"valorUnitario"`
	Estoque       int     `json:"estoque"`
}

func (m *ticketModel) restoreDraft() {
	raw, err := m.app.deps.State.LoadDraft(context.Background())
	if err != nil || raw == nil {
		return
	}
	var draft draftState
	if err := json.Unmarshal(raw, &draft); err != nil {
		return
	}

	m.cliente.SetValue(draft.Cliente)
	m.whatzapp.SetValue(draft.Whatzapp)
	m.veiculo.SetValue(draft.Veiculo)
	m.obs.SetValue(draft.Observacoes)
	if draft.Desconto != "" {
		m.desconto.SetValue(draft.Desconto)
	}

	m.composer.Customer = draft.Cliente
	m.composer.Contact = draft.Whatzapp
	m.composer.Vehicle = draft.Veiculo
	m.composer.Notes = draft.Observacoes
	m.composer.SetDiscountText(m.desconto.Value())
	for _, line := range draft.Itens {
		m.composer.AddLine(composer.CatalogItem{
			ID:        line.ItemID,
			Name:      line.Nome,
			Kind:      enums.ParseItemKind(line.Tipo),
			UnitPrice: money.FromFloat(line.ValorUnitario),
			Stock:     line.Estoque,
		})
		m.composer.SetQuantityText(line.ItemID, line.Quantidade)
	}
}

func (m *ticketModel) persistDraft() tea.Cmd {
	draft := draftState{
		Cliente:     m.composer.Customer,
		Whatzapp:    m.composer.Contact,
		Veiculo:     m.composer.Vehicle,
		Observacoes: m.composer.Notes,
		Desconto:    m.composer.DiscountText(),
	}
	for _, line := range m.composer.Lines() {
		draft.Itens = append(draft.Itens, draftLine{
			ItemID:        line.ItemID,
			Nome:          line.Name,
			Tipo:          line.Kind.String(),
			Quantidade:    line.QuantityText,
			ValorUnitario: line.UnitPrice.InexactFloat64(),
			Estoque:       line.StockSnapshot,
		})
	}

	store := m.app.deps.State
	log := m.app.deps.Logger
	return func() tea.Msg {
		raw, err := json.Marshal(draft)
		if err != nil {
			return nil
		}
		if err := store.SaveDraft(context.Background(), raw); err != nil {
			log.Error(context.Background(), "persist draft", err)
		}
		return nil
	}
}

func (m *ticketModel) fieldCount() int {
	// Fixed fields, one quantity slot per line, then the discount.
	return fixedFieldCount + len(m.composer.Lines()) + 1
}

func (m *ticketModel) lineIndex() int {
	index := m.focus - fixedFieldCount
	if index < 0 || index >= len(m.composer.Lines()) {
		return -1
	}
	return index
}

func (m *ticketModel) onDiscount() bool {
	return m.focus == m.fieldCount()-1
}

// blurFocused commits the numeric field being left, matching the
// browser blur events the normalization is keyed on.
func (m *ticketModel) blurFocused() tea.Cmd {
	if index := m.lineIndex(); index >= 0 {
		line := m.composer.Lines()[index]
		m.composer.CommitQuantity(line.ItemID)
		return m.persistDraft()
	}
	if m.onDiscount() {
		m.composer.CommitDiscount()
		m.desconto.SetValue(m.composer.DiscountText())
		return m.persistDraft()
	}
	return nil
}

func (m *ticketModel) setFocus(next int) tea.Cmd {
	cmd := m.blurFocused()

	total := m.fieldCount()
	if next < 0 {
		next = total - 1
	}
	m.focus = next % total

	for _, input := range []*textinput.Model{&m.cliente, &m.whatzapp, &m.veiculo, &m.obs, &m.busca, &m.qty, &m.desconto} {
		input.Blur()
	}

	switch {
	case m.focus == focusCliente:
		m.cliente.Focus()
	case m.focus == focusWhatzapp:
		m.whatzapp.Focus()
	case m.focus == focusVeiculo:
		m.veiculo.Focus()
	case m.focus == focusObs:
		m.obs.Focus()
	case m.focus == focusBusca:
		m.busca.Focus()
	case m.onDiscount():
		m.desconto.SetValue(m.composer.DiscountText())
		m.desconto.Focus()
	default:
		line := m.composer.Lines()[m.lineIndex()]
		m.qty.SetValue(line.QuantityText)
		m.qty.Focus()
	}
	return cmd
}

func (m *ticketModel) searchCmd(query string) tea.Cmd {
	client := m.app.deps.API
	log := m.app.deps.Logger
	return func() tea.Msg {
		items, err := client.SearchItems(context.Background(), query)
		if err != nil {
			log.Error(context.Background(), "catalog search", err)
		}
		return searchResultMsg{query: query, items: items, err: err}
	}
}

func toCatalogItem(item api.Item) composer.CatalogItem {
	return composer.CatalogItem{
		ID:        item.ID,
		Name:      item.Nome,
		Kind:      enums.ParseItemKind(item.Tipo),
		UnitPrice: money.FromFloat(item.Valor),
		Stock:     item.Quantidade,
	}
}

func (m *ticketModel) submitCmd() tea.Cmd {
	payload, err := m.composer.BeginSubmit()
	if err != nil {
		return statusFromError(err)
	}

	req := api.CreateComandaRequest{
		Cliente:     payload.Customer,
		Whatzapp:    payload.Contact,
		Veiculo:     payload.Vehicle,
		Observacoes: payload.Notes,
		Total:       payload.Gross.InexactFloat64(),
		Desconto:    payload.Discount.InexactFloat64(),
		ValorFinal:  payload.Net.InexactFloat64(),
	}
	for _, line := range payload.Lines {
		req.Itens = append(req.Itens, api.ComandaItem{
			ItemID:        line.ItemID,
			Nome:          line.Name,
			Tipo:          line.Kind.String(),
			Quantidade:    line.Quantity,
			ValorUnitario: line.UnitPrice.InexactFloat64(),
		})
	}

	client := m.app.deps.API
	return func() tea.Msg {
		comanda, err := client.CreateComanda(context.Background(), req)
		return submitResultMsg{comanda: comanda, err: err}
	}
}

func (m *ticketModel) downloadPDFCmd() tea.Cmd {
	summary := m.composer.Summary()
	if summary == nil {
		return status("comanda ainda não disponível", true)
	}

	client := m.app.deps.API
	dir := m.app.deps.Config.PDF.DownloadDir
	id := summary.ID
	return func() tea.Msg {
		raw, err := client.ComandaPDF(context.Background(), id)
		if err != nil {
			return pdfSavedMsg{err: err}
		}
		path := filepath.Join(dir, fmt.Sprintf("comanda-%s.pdf", id))
		if err := os.WriteFile(path, raw, 0o644); err != nil {
			return pdfSavedMsg{err: err}
		}
		return pdfSavedMsg{path: path}
	}
}

func (m *ticketModel) resetInputs() {
	m.cliente.SetValue("")
	m.whatzapp.SetValue("")
	m.veiculo.SetValue("")
	m.obs.SetValue("")
	m.busca.SetValue("")
	m.desconto.SetValue("0")
	m.composer.SetDiscountText("0")
	m.suggestion = 0
	m.focus = focusCliente
	m.setFocus(focusCliente)
}

func (m *ticketModel) Update(msg tea.Msg) tea.Cmd {
	switch msg := msg.(type) {
	case searchResultMsg:
		if msg.err != nil {
			// Treated as no results; the draft stays usable.
			return nil
		}
		items := make([]composer.CatalogItem, 0, len(msg.items))
		for _, item := range msg.items {
			items = append(items, toCatalogItem(item))
		}
		m.composer.ApplyResults(msg.query, items)
		if max := len(m.composer.Suggestions()); m.suggestion >= max && max > 0 {
			m.suggestion = max - 1
		}
		return nil

	case submitResultMsg:
		if msg.err != nil {
			m.composer.FailSubmit()
			return statusFromError(msg.err)
		}
		m.composer.FinishSubmit(summaryFromComanda(msg.comanda))
		m.resetInputs()
		store := m.app.deps.State
		return tea.Batch(
			status("Comanda salva com sucesso!", false),
			func() tea.Msg {
				_ = store.ClearDraft(context.Background())
				return nil
			},
		)

	case pdfSavedMsg:
		if msg.err != nil {
			return statusFromError(msg.err)
		}
		return status(fmt.Sprintf("PDF salvo em %s", msg.path), false)

	case tea.KeyMsg:
		return m.handleKey(msg)
	}

	return nil
}

func (m *ticketModel) handleKey(msg tea.KeyMsg) tea.Cmd {
	keys := m.app.keys

	if m.composer.Phase() == composer.PhaseSubmitted {
		switch {
		case key.Matches(msg, keys.New):
			m.composer.NewDraft()
			m.resetInputs()
			return textinput.Blink
		case key.Matches(msg, keys.PDF):
			return m.downloadPDFCmd()
		}
		return nil
	}

	switch {
	case key.Matches(msg, keys.Submit):
		return m.submitCmd()

	case key.Matches(msg, keys.NextField):
		return m.setFocus(m.focus + 1)

	case key.Matches(msg, keys.PrevField):
		return m.setFocus(m.focus - 1)

	case key.Matches(msg, keys.Remove):
		if index := m.lineIndex(); index >= 0 {
			line := m.composer.Lines()[index]
			m.composer.RemoveLine(line.ItemID)
			return tea.Batch(m.setFocus(focusBusca), m.persistDraft())
		}
		return nil

	case key.Matches(msg, keys.Up):
		if m.focus == focusBusca && m.suggestion > 0 {
			m.suggestion--
			return nil
		}
		return m.setFocus(m.focus - 1)

	case key.Matches(msg, keys.Down):
		if m.focus == focusBusca && m.suggestion < len(m.composer.Suggestions())-1 {
			m.suggestion++
			return nil
		}
		return m.setFocus(m.focus + 1)

	case key.Matches(msg, keys.Confirm):
		if m.focus == focusBusca {
			suggestions := m.composer.Suggestions()
			if len(suggestions) == 0 {
				return nil
			}
			if m.suggestion >= len(suggestions) {
				m.suggestion = len(suggestions) - 1
			}
			m.composer.AddLine(suggestions[m.suggestion])
			m.busca.SetValue("")
			m.suggestion = 0
			return m.persistDraft()
		}
		return m.setFocus(m.focus + 1)
	}

	return m.updateFocusedInput(msg)
}

// updateFocusedInput forwards the keystroke to the focused text field
// and mirrors the new value into the composer.
func (m *ticketModel) updateFocusedInput(msg tea.Msg) tea.Cmd {
	var cmd tea.Cmd
	switch {
	case m.focus == focusCliente:
		m.cliente, cmd = m.cliente.Update(msg)
		m.composer.Customer = m.cliente.Value()
	case m.focus == focusWhatzapp:
		m.whatzapp, cmd = m.whatzapp.Update(msg)
		m.composer.Contact = m.whatzapp.Value()
	case m.focus == focusVeiculo:
		m.veiculo, cmd = m.veiculo.Update(msg)
		m.composer.Vehicle = m.veiculo.Value()
	case m.focus == focusObs:
		m.obs, cmd = m.obs.Update(msg)
		m.composer.Notes = m.obs.Value()
	case m.focus == focusBusca:
		m.busca, cmd = m.busca.Update(msg)
		query := m.busca.Value()
		if query != m.composer.Query() {
			m.suggestion = 0
			if m.composer.SetQuery(query) {
				return tea.Batch(cmd, m.searchCmd(query))
			}
		}
	case m.onDiscount():
		m.desconto, cmd = m.desconto.Update(msg)
		m.composer.SetDiscountText(m.desconto.Value())
	default:
		if index := m.lineIndex(); index >= 0 {
			m.qty, cmd = m.qty.Update(msg)
			line := m.composer.Lines()[index]
			m.composer.SetQuantityText(line.ItemID, m.qty.Value())
		}
	}
	return cmd
}

func summaryFromComanda(comanda *api.Comanda) composer.Summary {
	summary := composer.Summary{
		NetTotal:  money.FromFloat(0),
		CreatedAt: time.Now(),
	}
	if comanda == nil {
		return summary
	}
	summary.ID = comanda.ID
	summary.Customer = comanda.Cliente
	summary.Vehicle = comanda.Veiculo
	summary.NetTotal = money.FromFloat(comanda.ValorFinal)
	if !comanda.CreatedAt.IsZero() {
		summary.CreatedAt = comanda.CreatedAt
	}
	return summary
}

func (m *ticketModel) View() string {
	if m.composer.Phase() == composer.PhaseSubmitted {
		return m.summaryView()
	}
	return m.draftView()
}

func (m *ticketModel) draftView() string {
	styles := m.app.styles
	var b strings.Builder

	if m.composer.StaffName != "" {
		b.WriteString(styles.Faint.Render("Funcionário: " + m.composer.StaffName))
		b.WriteString("\n\n")
	}

	field := func(label string, input textinput.Model) {
		b.WriteString(styles.Label.Render(label))
		b.WriteString(" ")
		b.WriteString(input.View())
		b.WriteString("\n")
	}
	field("Cliente    ", m.cliente)
	field("WhatsApp   ", m.whatzapp)
	field("Veículo    ", m.veiculo)
	field("Observações", m.obs)
	b.WriteString("\n")
	field("Buscar item", m.busca)

	if m.focus == focusBusca {
		for i, suggestion := range m.composer.Suggestions() {
			label := fmt.Sprintf("%s · %s", suggestion.Name, money.FormatBRL(suggestion.UnitPrice))
			if suggestion.Kind == enums.ItemKindProduct {
				label += fmt.Sprintf(" · estoque %d", suggestion.Stock)
			}
			if i == m.suggestion {
				b.WriteString(styles.Selected.Render("> " + label))
			} else {
				b.WriteString(styles.Faint.Render("  " + label))
			}
			b.WriteString("\n")
		}
	}

	b.WriteString("\n")
	lines := m.composer.Lines()
	if len(lines) == 0 {
		b.WriteString(styles.Faint.Render("Nenhum item adicionado."))
		b.WriteString("\n")
	}
	for i, line := range lines {
		qtyText := line.QuantityText
		if m.lineIndex() == i {
			qtyText = m.qty.View()
		}
		row := fmt.Sprintf("%-30s %-8s qtd %-8s %s", line.Name, line.Kind, qtyText, money.FormatBRL(line.Subtotal()))
		if m.lineIndex() == i {
			b.WriteString(styles.Selected.Render(row))
		} else {
			b.WriteString(styles.Value.Render(row))
		}
		b.WriteString("\n")
	}

	b.WriteString("\n")
	b.WriteString(styles.Label.Render("Desconto "))
	if m.onDiscount() {
		b.WriteString(m.desconto.View())
	} else {
		b.WriteString(styles.Value.Render(m.composer.DiscountText()))
	}
	b.WriteString("\n\n")

	b.WriteString(styles.Value.Render("Subtotal: " + money.FormatBRL(m.composer.GrossTotal())))
	b.WriteString("\n")
	b.WriteString(styles.Title.Render("Total:    " + money.FormatBRL(m.composer.NetTotal())))
	b.WriteString("\n\n")

	if m.composer.Submitting() {
		b.WriteString(styles.Faint.Render("Enviando comanda..."))
	} else {
		b.WriteString(styles.Help.Render("tab campos · enter adicionar item · ctrl+x remover · ctrl+s salvar"))
	}
	return b.String()
}

func (m *ticketModel) summaryView() string {
	styles := m.app.styles
	summary := m.composer.Summary()
	var b strings.Builder

	b.WriteString(styles.Success.Render("Comanda salva com sucesso!"))
	b.WriteString("\n\n")
	if summary != nil {
		b.WriteString(styles.Label.Render("Comanda  "))
		b.WriteString(styles.Value.Render(summary.ID))
		b.WriteString("\n")
		b.WriteString(styles.Label.Render("Cliente  "))
		b.WriteString(styles.Value.Render(summary.Customer))
		b.WriteString("\n")
		b.WriteString(styles.Label.Render("Veículo  "))
		b.WriteString(styles.Value.Render(summary.Vehicle))
		b.WriteString("\n")
		b.WriteString(styles.Label.Render("Total    "))
		b.WriteString(styles.Title.Render(money.FormatBRL(summary.NetTotal)))
		b.WriteString("\n")
		b.WriteString(styles.Label.Render("Data     "))
		b.WriteString(styles.Value.Render(summary.CreatedAt.Format("02/01/2006 15:04")))
		b.WriteString("\n")
	}
	b.WriteString("\n")
	b.WriteString(styles.Help.Render("ctrl+d baixar PDF · ctrl+n nova comanda"))
	return b.String()
}
