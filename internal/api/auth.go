package api

import (
	"context"
	"fmt"
	"net/http"
	"net/url"
	"strings"

	pkgerrors "github.com/SalisMR/fuscao-frontend/pkg/errors"
)

// User is a staff account as the backend reports it.
type User struct {
	ID              string  `json:"_id"`
	Nome            string  `json:"nome"`
	Email           string  `json:"email"`
	Tipo            string  `json:"tipo"`
	ComissaoProduto float64 `json:"comissaoProduto"`
	ComissaoServico float64 `json:"comissaoServico"`
}

// LoginResult carries the bearer token and the authenticated account.
type LoginResult struct {
	Token string `json:"token"`
	User  User   `json:"user"`
}

// Login authenticates with email and password.
func (c *Client) Login(ctx context.Context, email, senha string) (*LoginResult, error) {
	if strings.TrimSpace(email) == "" || senha == "" {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "informe email e senha")
	}

	body := map[string]string{"email": email, "senha": senha}
	var result LoginResult
	if err := c.doJSON(ctx, http.MethodPost, "/auth/login", nil, body, &result); err != nil {
		return nil, err
	}
	if result.Token == "" {
		return nil, pkgerrors.New(pkgerrors.CodeDependency, "resposta de login sem token")
	}
	return &result, nil
}

// UserPayload is the create/update body for staff accounts. Senha is
// left blank on updates that keep the current password.
type UserPayload struct {
	Nome            string  `json:"nome"`
	Email           string  `json:"email"`
	Senha           string  `json:"senha"`
	Tipo            string  `json:"tipo"`
	ComissaoProduto float64 `json:"comissaoProduto"`
	ComissaoServico float64 `json:"comissaoServico"`
}

// ListUsers returns every staff account. Admin only.
func (c *Client) ListUsers(ctx context.Context) ([]User, error) {
	var users []User
	if err := c.doJSON(ctx, http.MethodGet, "/auth/usuarios", nil, nil, &users); err != nil {
		return nil, err
	}
	return users, nil
}

// ListEmployees returns the staff list used by the report filters.
func (c *Client) ListEmployees(ctx context.Context) ([]User, error) {
	var users []User
	if err := c.doJSON(ctx, http.MethodGet, "/auth/funcionarios", nil, nil, &users); err != nil {
		return nil, err
	}
	return users, nil
}

// RegisterUser creates a staff account.
func (c *Client) RegisterUser(ctx context.Context, payload UserPayload) error {
	return c.doJSON(ctx, http.MethodPost, "/auth/register", nil, payload, nil)
}

// UpdateUser edits a staff account.
func (c *Client) UpdateUser(ctx context.Context, id string, payload UserPayload) error {
	return c.doJSON(ctx, http.MethodPut, fmt.Sprintf("/auth/usuarios/%s", url.PathEscape(id)), nil, payload, nil)
}

// DeleteUser removes a staff account.
func (c *Client) DeleteUser(ctx context.Context, id string) error {
	return c.doJSON(ctx, http.MethodDelete, fmt.Sprintf("/auth/usuarios/%s", url.PathEscape(id)), nil, nil, nil)
}
