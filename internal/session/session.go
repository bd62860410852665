package session

import (
	"context"
	"sync"
	"time"

	"github.com/SalisMR/fuscao-frontend/internal/api"
	"github.com/SalisMR/fuscao-frontend/internal/localstate"
	"github.com/SalisMR/fuscao-frontend/pkg/enums"
	pkgerrors "github.com/SalisMR/fuscao-frontend/pkg/errors"
	"github.com/golang-jwt/jwt/v5"
)

// Identity is the authenticated staff member.
type Identity struct {
	ID                string
	Name              string
	Email             string
	Role              enums.StaffRole
	CommissionProduct float64
	CommissionService float64
}

// State is an active login: the bearer token plus who it belongs to.
type State struct {
	Token    string
	Identity Identity
}

// Store persists the login across restarts. *localstate.Store is the
// production implementation.
type Store interface {
	SaveSession(ctx context.Context, record localstate.SessionRecord) error
	LoadSession(ctx context.Context) (*localstate.SessionRecord, error)
	ClearSession(ctx context.Context) error
}

// Manager owns the session lifecycle: populated at login, restored at
// startup, cleared at logout or expiry. Mutations happen on the event
// loop, but Token is handed to the API client as its credential source
// and runs on command goroutines, so current is guarded by a lock.
type Manager struct {
	store Store
	now   func() time.Time

	mu      sync.RWMutex
	current *State
}

func NewManager(store Store) (*Manager, error) {
	if store == nil {
		return nil, pkgerrors.New(pkgerrors.CodeInternal, "session store is required")
	}
	return &Manager{store: store, now: time.Now}, nil
}

// Restore loads a persisted login. Expired or malformed tokens are
// discarded so the app lands on the login screen instead of failing
// every call with a 401.
func (m *Manager) Restore(ctx context.Context) error {
	record, err := m.store.LoadSession(ctx)
	if err != nil {
		return err
	}
	if record == nil {
		return nil
	}
	if expired(record.Token, m.now()) {
		return m.store.ClearSession(ctx)
	}

	role, err := enums.ParseStaffRole(record.Tipo)
	if err != nil {
		return m.store.ClearSession(ctx)
	}

	m.setCurrent(&State{
		Token: record.Token,
		Identity: Identity{
			ID:                record.UserID,
			Name:              record.Nome,
			Email:             record.Email,
			Role:              role,
			CommissionProduct: record.ComissaoProduto,
			CommissionService: record.ComissaoServico,
		},
	})
	return nil
}

// Login records a fresh authentication result and persists it.
func (m *Manager) Login(ctx context.Context, result api.LoginResult) error {
	role, err := enums.ParseStaffRole(result.User.Tipo)
	if err != nil {
		return pkgerrors.Wrap(pkgerrors.CodeUnauthorized, err, "perfil de acesso desconhecido")
	}

	m.setCurrent(&State{
		Token: result.Token,
		Identity: Identity{
			ID:                result.User.ID,
			Name:              result.User.Nome,
			Email:             result.User.Email,
			Role:              role,
			CommissionProduct: result.User.ComissaoProduto,
			CommissionService: result.User.ComissaoServico,
		},
	})

	return m.store.SaveSession(ctx, localstate.SessionRecord{
		Token:           result.Token,
		UserID:          result.User.ID,
		Nome:            result.User.Nome,
		Email:           result.User.Email,
		Tipo:            result.User.Tipo,
		ComissaoProduto: result.User.ComissaoProduto,
		ComissaoServico: result.User.ComissaoServico,
	})
}

// Logout drops the session in memory and on disk.
func (m *Manager) Logout(ctx context.Context) error {
	m.setCurrent(nil)
	return m.store.ClearSession(ctx)
}

func (m *Manager) setCurrent(state *State) {
	m.mu.Lock()
	m.current = state
	m.mu.Unlock()
}

// snapshot returns the current state pointer. States are replaced
// wholesale and never mutated in place, so the pointer is safe to
// share.
func (m *Manager) snapshot() *State {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return m.current
}

// Active reports whether a usable credential is present. A token past
// its expiry claim counts as absent.
func (m *Manager) Active() bool {
	state := m.snapshot()
	return state != nil && !expired(state.Token, m.now())
}

// Current returns the active login, or nil.
func (m *Manager) Current() *State {
	state := m.snapshot()
	if state == nil || expired(state.Token, m.now()) {
		return nil
	}
	return state
}

// Token exposes the bearer credential for the API client; "" when no
// session is active.
func (m *Manager) Token() string {
	state := m.snapshot()
	if state == nil || expired(state.Token, m.now()) {
		return ""
	}
	return state.Token
}

// expired inspects the token's exp claim without verifying the
// signature; only the backend holds the signing key. Tokens without a
// readable exp claim are treated as still valid and left for the
// backend to reject.
func expired(token string, now time.Time) bool {
	parsed, _, err := jwt.NewParser().ParseUnverified(token, jwt.MapClaims{})
	if err != nil {
		return false
	}
	exp, err := parsed.Claims.GetExpirationTime()
	if err != nil || exp == nil {
		return false
	}
	return exp.Before(now)
}
