package session

import (
	"context"
	"testing"
	"time"

	"github.com/SalisMR/fuscao-frontend/internal/api"
	"github.com/SalisMR/fuscao-frontend/internal/localstate"
	"github.com/SalisMR/fuscao-frontend/pkg/enums"
	"github.com/golang-jwt/jwt/v5"
)

type stubStore struct {
	saved   *localstate.SessionRecord
	cleared int
}

func (s *stubStore) SaveSession(_ context.Context, record localstate.SessionRecord) error {
	s.saved = &record
	return nil
}

func (s *stubStore) LoadSession(context.Context) (*localstate.SessionRecord, error) {
	if s.saved == nil {
		return nil, nil
	}
	record := *s.saved
	return &record, nil
}

func (s *stubStore) ClearSession(context.Context) error {
	s.saved = nil
	s.cleared++
	return nil
}

func signedToken(t *testing.T, exp time.Time) string {
	t.Helper()
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, jwt.MapClaims{
		"sub": "u1",
		"exp": exp.Unix(),
	})
	signed, err := token.SignedString([]byte("test-key"))
	if err != nil {
		t.Fatalf("sign token: %v", err)
	}
	return signed
}

func TestLoginPersistsAndActivatesSession(t *testing.T) {
	store := &stubStore{}
	manager, err := NewManager(store)
	if err != nil {
		t.Fatalf("NewManager: %v", err)
	}

	token := signedToken(t, time.Now().Add(time.Hour))
	err = manager.Login(context.Background(), api.LoginResult{
		Token: token,
		User:  api.User{ID: "u1", Nome: "Maria", Tipo: "admin", ComissaoProduto: 5},
	})
	if err != nil {
		t.Fatalf("Login: %v", err)
	}

	if !manager.Active() {
		t.Fatalf("expected active session")
	}
	current := manager.Current()
	if current == nil || current.Identity.Role != enums.StaffRoleAdmin {
		t.Fatalf("unexpected state %+v", current)
	}
	if manager.Token() != token {
		t.Fatalf("token not exposed")
	}
	if store.saved == nil || store.saved.Nome != "Maria" {
		t.Fatalf("session not persisted: %+v", store.saved)
	}
}

func TestLoginRejectsUnknownRole(t *testing.T) {
	manager, _ := NewManager(&stubStore{})

	err := manager.Login(context.Background(), api.LoginResult{
		Token: signedToken(t, time.Now().Add(time.Hour)),
		User:  api.User{ID: "u1", Tipo: "estagiario"},
	})
	if err == nil {
		t.Fatalf("expected error for unknown role")
	}
	if manager.Active() {
		t.Fatalf("failed login must not activate a session")
	}
}

func TestRestoreDiscardsExpiredToken(t *testing.T) {
	store := &stubStore{saved: &localstate.SessionRecord{
		Token:  "",
		UserID: "u1",
		Nome:   "Maria",
		Tipo:   "admin",
	}}
	store.saved.Token = signedToken(t, time.Now().Add(-time.Minute))

	manager, _ := NewManager(store)
	if err := manager.Restore(context.Background()); err != nil {
		t.Fatalf("Restore: %v", err)
	}

	if manager.Active() {
		t.Fatalf("expired token must not restore a session")
	}
	if store.cleared != 1 {
		t.Fatalf("expired session should be cleared from disk")
	}
}

func TestRestoreLoadsValidSession(t *testing.T) {
	store := &stubStore{saved: &localstate.SessionRecord{
		Token:  "",
		UserID: "u1",
		Nome:   "Maria",
		Tipo:   "recepcao",
	}}
	store.saved.Token = signedToken(t, time.Now().Add(time.Hour))

	manager, _ := NewManager(store)
	if err := manager.Restore(context.Background()); err != nil {
		t.Fatalf("Restore: %v", err)
	}

	current := manager.Current()
	if current == nil {
		t.Fatalf("expected restored session")
	}
	if current.Identity.Role != enums.StaffRoleReception || current.Identity.Name != "Maria" {
		t.Fatalf("unexpected identity %+v", current.Identity)
	}
}

func TestRestoreDiscardsUnknownRole(t *testing.T) {
	store := &stubStore{saved: &localstate.SessionRecord{
		Tipo: "estagiario",
	}}
	store.saved.Token = signedToken(t, time.Now().Add(time.Hour))

	manager, _ := NewManager(store)
	if err := manager.Restore(context.Background()); err != nil {
		t.Fatalf("Restore: %v", err)
	}
	if manager.Active() {
		t.Fatalf("unknown role must not restore a session")
	}
}

func TestSessionExpiresWhileActive(t *testing.T) {
	store := &stubStore{}
	manager, _ := NewManager(store)

	err := manager.Login(context.Background(), api.LoginResult{
		Token: signedToken(t, time.Now().Add(time.Second)),
		User:  api.User{ID: "u1", Tipo: "funcionario"},
	})
	if err != nil {
		t.Fatalf("Login: %v", err)
	}

	manager.now = func() time.Time { return time.Now().Add(time.Minute) }

	if manager.Active() {
		t.Fatalf("expected session to expire")
	}
	if manager.Token() != "" {
		t.Fatalf("expired session must not expose a token")
	}
}

// Token is wired into the API client as its credential source and runs
// on command goroutines while Login/Logout mutate the session on the
// event loop; the race detector flags any unguarded access.
func TestTokenSafeForConcurrentUse(t *testing.T) {
	store := &stubStore{}
	manager, err := NewManager(store)
	if err != nil {
		t.Fatalf("NewManager: %v", err)
	}
	token := signedToken(t, time.Now().Add(time.Hour))

	done := make(chan struct{})
	go func() {
		defer close(done)
		for i := 0; i < 500; i++ {
			_ = manager.Token()
			_ = manager.Active()
			_ = manager.Current()
		}
	}()

	for i := 0; i < 500; i++ {
		err := manager.Login(context.Background(), api.LoginResult{
			Token: token,
			User:  api.User{ID: "u1", Tipo: "funcionario"},
		})
		if err != nil {
			t.Fatalf("Login: %v", err)
		}
		if err := manager.Logout(context.Background()); err != nil {
			t.Fatalf("Logout: %v", err)
		}
	}
	<-done
}

func TestLogoutClearsEverything(t *testing.T) {
	store := &stubStore{}
	manager, _ := NewManager(store)

	_ = manager.Login(context.Background(), api.LoginResult{
		Token: signedToken(t, time.Now().Add(time.Hour)),
		User:  api.User{ID: "u1", Tipo: "gerente"},
	})

	if err := manager.Logout(context.Background()); err != nil {
		t.Fatalf("Logout: %v", err)
	}
	if manager.Active() || store.saved != nil {
		t.Fatalf("logout must clear memory and disk")
	}
}
