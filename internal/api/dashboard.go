package api

import (
	"context"
	"net/http"
	"net/url"

	"github.com/SalisMR/fuscao-frontend/pkg/enums"
	pkgerrors "github.com/SalisMR/fuscao-frontend/pkg/errors"
)

// MetaProgress is the monthly revenue goal and how far along it is,
// as a percentage.
type MetaProgress struct {
	Valor     float64 `json:"valor"`
	Progresso float64 `json:"progresso"`
}

// DailyRevenue is one bar of the revenue-per-day chart.
type DailyRevenue struct {
	Dia struct {
		Dia int `json:"dia"`
		Mes int `json:"mes"`
	} `json:"_id"`
	TotalFaturado float64 `json:"totalFaturado"`
}

// Dashboard is the admin overview for one period.
type Dashboard struct {
	TotalComandas   int            `json:"totalComandas"`
	Faturamento     float64        `json:"faturamento"`
	ClientesUnicos  int            `json:"clientesUnicos"`
	EstoqueCritico  []Item         `json:"estoqueCritico"`
	Meta            *MetaProgress  `json:"meta"`
	ComandasPorDia  []DailyRevenue `json:"comandasPorDia"`
	UltimasComandas []Comanda      `json:"ultimasComandas"`
}

// GetDashboard fetches the admin overview for the given period.
func (c *Client) GetDashboard(ctx context.Context, period enums.Period) (*Dashboard, error) {
	if !period.IsValid() {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "período inválido")
	}
	query := url.Values{"periodo": {period.String()}}
	var dashboard Dashboard
	if err := c.doJSON(ctx, http.MethodGet, "/admin/dashboard", query, nil, &dashboard); err != nil {
		return nil, err
	}
	return &dashboard, nil
}

// UpdateMeta sets the monthly revenue goal.
func (c *Client) UpdateMeta(ctx context.Context, valor float64) error {
	if valor <= 0 {
		return pkgerrors.New(pkgerrors.CodeValidation, "digite um valor válido")
	}
	body := map[string]float64{"valor": valor}
	return c.doJSON(ctx, http.MethodPut, "/admin/meta", nil, body, nil)
}
