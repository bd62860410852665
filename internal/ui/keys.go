package ui

import "github.com/charmbracelet/bubbles/key"

// KeyMap holds every binding the UI responds to. Screen switching is
// global; the rest is interpreted by the active screen.
type KeyMap struct {
	Quit   key.Binding
	Logout key.Binding

	GoTicket    key.Binding
	GoDashboard key.Binding
	GoInventory key.Binding
	GoEmployees key.Binding
	GoReports   key.Binding

	NextField key.Binding
	PrevField key.Binding
	Up        key.Binding
	Down      key.Binding
	Confirm   key.Binding
	Cancel    key.Binding
	Submit    key.Binding
	Remove    key.Binding
	Refresh   key.Binding
	Cycle     key.Binding
	Export    key.Binding
	PDF       key.Binding
	New       key.Binding
	Edit      key.Binding
}

func DefaultKeyMap() KeyMap {
	return KeyMap{
		Quit:   key.NewBinding(key.WithKeys("ctrl+c"), key.WithHelp("ctrl+c", "sair")),
		Logout: key.NewBinding(key.WithKeys("ctrl+o"), key.WithHelp("ctrl+o", "sair da conta")),

		GoTicket:    key.NewBinding(key.WithKeys("f1"), key.WithHelp("F1", "comanda")),
		GoDashboard: key.NewBinding(key.WithKeys("f2"), key.WithHelp("F2", "painel")),
		GoInventory: key.NewBinding(key.WithKeys("f3"), key.WithHelp("F3", "estoque")),
		GoEmployees: key.NewBinding(key.WithKeys("f4"), key.WithHelp("F4", "funcionários")),
		GoReports:   key.NewBinding(key.WithKeys("f5"), key.WithHelp("F5", "relatórios")),

		NextField: key.NewBinding(key.WithKeys("tab"), key.WithHelp("tab", "próximo campo")),
		PrevField: key.NewBinding(key.WithKeys("shift+tab"), key.WithHelp("shift+tab", "campo anterior")),
		Up:        key.NewBinding(key.WithKeys("up"), key.WithHelp("↑", "subir")),
		Down:      key.NewBinding(key.WithKeys("down"), key.WithHelp("↓", "descer")),
		Confirm:   key.NewBinding(key.WithKeys("enter"), key.WithHelp("enter", "confirmar")),
		Cancel:    key.NewBinding(key.WithKeys("esc"), key.WithHelp("esc", "cancelar")),
		Submit:    key.NewBinding(key.WithKeys("ctrl+s"), key.WithHelp("ctrl+s", "salvar comanda")),
		Remove:    key.NewBinding(key.WithKeys("ctrl+x"), key.WithHelp("ctrl+x", "remover")),
		Refresh:   key.NewBinding(key.WithKeys("ctrl+r"), key.WithHelp("ctrl+r", "recarregar")),
		Cycle:     key.NewBinding(key.WithKeys("ctrl+p"), key.WithHelp("ctrl+p", "alternar período")),
		Export:    key.NewBinding(key.WithKeys("ctrl+e"), key.WithHelp("ctrl+e", "exportar PDF")),
		PDF:       key.NewBinding(key.WithKeys("ctrl+d"), key.WithHelp("ctrl+d", "baixar PDF")),
		New:       key.NewBinding(key.WithKeys("ctrl+n"), key.WithHelp("ctrl+n", "novo")),
		Edit:      key.NewBinding(key.WithKeys("ctrl+t"), key.WithHelp("ctrl+t", "editar")),
	}
}
