package ui

import (
	"testing"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/SalisMR/fuscao-frontend/internal/api"
)

func TestInventoryDeleteRequiresConfirmation(t *testing.T) {
	m := newInventoryModel(testApp(t))
	m.items = []api.Item{{ID: "i1", Nome: "Óleo 5W30", Tipo: "produto"}}
	m.refreshTable()

	if cmd := m.Update(keyMsg(tea.KeyCtrlX)); cmd != nil {
		t.Fatal("ctrl+x must only ask for confirmation, not delete")
	}
	if m.confirmDelete == nil || m.confirmDelete.ID != "i1" {
		t.Fatalf("expected pending delete for i1, got %+v", m.confirmDelete)
	}

	m.Update(keyMsg(tea.KeyEsc))
	if m.confirmDelete != nil {
		t.Fatal("esc must cancel the pending delete")
	}

	m.Update(keyMsg(tea.KeyCtrlX))
	cmd := m.Update(keyMsg(tea.KeyEnter))
	if cmd == nil {
		t.Fatal("confirmed delete must issue the request")
	}
	if m.confirmDelete != nil {
		t.Fatal("confirmation must clear the pending delete")
	}
}

func TestInventoryDeleteWithoutSelectionDoesNothing(t *testing.T) {
	m := newInventoryModel(testApp(t))

	m.Update(keyMsg(tea.KeyCtrlX))
	if m.confirmDelete != nil {
		t.Fatalf("no selection must not arm a delete, got %+v", m.confirmDelete)
	}
}
