package api

import (
	"context"
	"fmt"
	"net/http"
	"net/url"
	"strings"
)

// Item is an inventory entry. Quantidade is the available stock for
// products and unused for services.
type Item struct {
	ID         string  `json:"_id"`
	Nome       string  `json:"nome"`
	Tipo       string  `json:"tipo"`
	Valor      float64 `json:"valor"`
	Quantidade int     `json:"quantidade"`
}

// ItemPayload is the create/update body for inventory entries.
type ItemPayload struct {
	Nome       string  `json:"nome"`
	Tipo       string  `json:"tipo"`
	Quantidade int     `json:"quantidade"`
	Valor      float64 `json:"valor"`
}

// SearchItems looks up catalog entries whose name matches the query.
// Blank queries short-circuit to an empty result without a request.
func (c *Client) SearchItems(ctx context.Context, nome string) ([]Item, error) {
	if strings.TrimSpace(nome) == "" {
		return nil, nil
	}
	query := url.Values{"nome": {nome}}
	var items []Item
	if err := c.doJSON(ctx, http.MethodGet, "/itens/quantidade", query, nil, &items); err != nil {
		return nil, err
	}
	return items, nil
}

// ListItems returns the whole inventory.
func (c *Client) ListItems(ctx context.Context) ([]Item, error) {
	var items []Item
	if err := c.doJSON(ctx, http.MethodGet, "/itens", nil, nil, &items); err != nil {
		return nil, err
	}
	return items, nil
}

// CreateItem adds an inventory entry.
func (c *Client) CreateItem(ctx context.Context, payload ItemPayload) error {
	return c.doJSON(ctx, http.MethodPost, "/itens", nil, payload, nil)
}

// UpdateItem edits an inventory entry.
func (c *Client) UpdateItem(ctx context.Context, id string, payload ItemPayload) error {
	return c.doJSON(ctx, http.MethodPut, fmt.Sprintf("/itens/%s", url.PathEscape(id)), nil, payload, nil)
}

// DeleteItem removes an inventory entry.
func (c *Client) DeleteItem(ctx context.Context, id string) error {
	return c.doJSON(ctx, http.MethodDelete, fmt.Sprintf("/itens/%s", url.PathEscape(id)), nil, nil, nil)
}
