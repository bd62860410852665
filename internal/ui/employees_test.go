package ui

import (
	"context"
	"testing"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/SalisMR/fuscao-frontend/internal/api"
	"github.com/SalisMR/fuscao-frontend/internal/localstate"
	"github.com/SalisMR/fuscao-frontend/internal/session"
)

type stubSessionStore struct {
	record *localstate.SessionRecord
}

func (s *stubSessionStore) SaveSession(_ context.Context, record localstate.SessionRecord) error {
	s.record = &record
	return nil
}

func (s *stubSessionStore) LoadSession(context.Context) (*localstate.SessionRecord, error) {
	return s.record, nil
}

func (s *stubSessionStore) ClearSession(context.Context) error {
	s.record = nil
	return nil
}

func TestEmployeesDeleteConfirmsAndGuardsSelf(t *testing.T) {
	app := testApp(t)
	sessions, err := session.NewManager(&stubSessionStore{})
	if err != nil {
		t.Fatalf("NewManager: %v", err)
	}
	err = sessions.Login(context.Background(), api.LoginResult{
		Token: "tok",
		User:  api.User{ID: "me", Nome: "Eu", Tipo: "admin"},
	})
	if err != nil {
		t.Fatalf("Login: %v", err)
	}
	app.deps.Sessions = sessions

	m := newEmployeesModel(app)
	m.users = []api.User{
		{ID: "me", Nome: "Eu"},
		{ID: "u2", Nome: "Outra Pessoa"},
	}
	m.refreshTable()

	// Cursor starts on the logged-in account.
	cmd := m.Update(keyMsg(tea.KeyCtrlX))
	if m.confirmDelete != nil {
		t.Fatal("self-deletion must never be armed")
	}
	if cmd == nil {
		t.Fatal("refusing self-deletion should surface a warning")
	}

	m.table.SetCursor(1)
	if cmd := m.Update(keyMsg(tea.KeyCtrlX)); cmd != nil {
		t.Fatal("ctrl+x must only ask for confirmation, not delete")
	}
	if m.confirmDelete == nil || m.confirmDelete.ID != "u2" {
		t.Fatalf("expected pending delete for u2, got %+v", m.confirmDelete)
	}

	m.Update(keyMsg(tea.KeyEsc))
	if m.confirmDelete != nil {
		t.Fatal("esc must cancel the pending delete")
	}

	m.Update(keyMsg(tea.KeyCtrlX))
	if cmd := m.Update(keyMsg(tea.KeyEnter)); cmd == nil {
		t.Fatal("confirmed delete must issue the request")
	}
	if m.confirmDelete != nil {
		t.Fatal("confirmation must clear the pending delete")
	}
}
