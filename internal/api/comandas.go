package api

import (
	"context"
	"fmt"
	"net/http"
	"net/url"
	"time"
)

// ComandaItem is one priced line of a ticket.
type ComandaItem struct {
	ItemID        string  `json:"itemId"`
	Nome          string  `json:"nome"`
	Tipo          string  `json:"tipo"`
	Quantidade    int     `json:"quantidade"`
	ValorUnitario float64 `json:"valorUnitario"`
}

// ComandaFuncionario is the populated staff reference on persisted
// tickets.
type ComandaFuncionario struct {
	ID   string `json:"_id"`
	Nome string `json:"nome"`
}

// Comanda is a persisted ticket as the backend returns it.
type Comanda struct {
	ID          string             `json:"_id"`
	Cliente     string             `json:"cliente"`
	Whatzapp    string             `json:"whatzapp"`
	Veiculo     string             `json:"veiculo"`
	Observacoes string             `json:"observacoes"`
	Itens       []ComandaItem      `json:"itens"`
	Total       float64            `json:"total"`
	Desconto    float64            `json:"desconto"`
	ValorFinal  float64            `json:"valorFinal"`
	Funcionario ComandaFuncionario `json:"funcionarioId"`
	CreatedAt   time.Time          `json:"createdAt"`
}

// CreateComandaRequest is the submission payload. Total is the gross
// sum before the discount; ValorFinal is what the customer pays.
type CreateComandaRequest struct {
	Cliente     string        `json:"cliente"`
	Whatzapp    string        `json:"whatzapp"`
	Veiculo     string        `json:"veiculo"`
	Itens       []ComandaItem `json:"itens"`
	Total       float64       `json:"total"`
	Desconto    float64       `json:"desconto"`
	ValorFinal  float64       `json:"valorFinal"`
	Observacoes string        `json:"observacoes"`
}

// CreateComanda persists a ticket and returns the stored record.
func (c *Client) CreateComanda(ctx context.Context, req CreateComandaRequest) (*Comanda, error) {
	var resp struct {
		Comanda Comanda `json:"comanda"`
	}
	if err := c.doJSON(ctx, http.MethodPost, "/comandas", nil, req, &resp); err != nil {
		return nil, err
	}
	return &resp.Comanda, nil
}

// ListComandas returns every persisted ticket.
func (c *Client) ListComandas(ctx context.Context) ([]Comanda, error) {
	var comandas []Comanda
	if err := c.doJSON(ctx, http.MethodGet, "/comandas", nil, nil, &comandas); err != nil {
		return nil, err
	}
	return comandas, nil
}

// DeleteComanda removes a persisted ticket.
func (c *Client) DeleteComanda(ctx context.Context, id string) error {
	return c.doJSON(ctx, http.MethodDelete, fmt.Sprintf("/comandas/%s", url.PathEscape(id)), nil, nil, nil)
}

// ComandaPDF downloads the rendered PDF for one ticket.
func (c *Client) ComandaPDF(ctx context.Context, id string) ([]byte, error) {
	return c.doBinary(ctx, http.MethodGet, fmt.Sprintf("/comandas/%s/pdf", url.PathEscape(id)), nil)
}
