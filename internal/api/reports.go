package api

import (
	"context"
	"net/http"
	"net/url"
)

// ReportFilters narrows the detailed report. Zero values mean "all";
// dates are YYYY-MM-DD and Funcionario is a staff identity.
type ReportFilters struct {
	Inicio      string `json:"inicio"`
	Fim         string `json:"fim"`
	Funcionario string `json:"funcionario"`
	Busca       string `json:"busca"`
}

func (f ReportFilters) query() url.Values {
	query := url.Values{}
	if f.Inicio != "" {
		query.Set("inicio", f.Inicio)
	}
	if f.Fim != "" {
		query.Set("fim", f.Fim)
	}
	if f.Funcionario != "" {
		query.Set("funcionario", f.Funcionario)
	}
	if f.Busca != "" {
		query.Set("busca", f.Busca)
	}
	return query
}

// GroupTotal aggregates one item name across the filtered tickets.
type GroupTotal struct {
	Quantidade int     `json:"quantidade"`
	Total      float64 `json:"total"`
}

// ReportSummary is the aggregate block of the detailed report.
type ReportSummary struct {
	Comandas           int                   `json:"comandas"`
	Faturamento        float64               `json:"faturamento"`
	ServicosRealizados map[string]GroupTotal `json:"servicosRealizados"`
	ProdutosVendidos   map[string]GroupTotal `json:"produtosVendidos"`
}

// DetailedReport holds the summary plus the matching tickets.
type DetailedReport struct {
	Resumo   ReportSummary `json:"resumo"`
	Comandas []Comanda     `json:"comandas"`
}

// GetDetailedReport fetches the filtered report. Admin only.
func (c *Client) GetDetailedReport(ctx context.Context, filters ReportFilters) (*DetailedReport, error) {
	var report DetailedReport
	if err := c.doJSON(ctx, http.MethodGet, "/relatorios/comandas/relatorio/detalhado", filters.query(), nil, &report); err != nil {
		return nil, err
	}
	return &report, nil
}

// ExportOptions toggles which sections the exported PDF includes.
type ExportOptions struct {
	Resumo   bool `json:"resumo"`
	Produtos bool `json:"produtos"`
	Servicos bool `json:"servicos"`
	Comandas bool `json:"comandas"`
}

// ExportReportPDF renders the filtered report as a PDF.
func (c *Client) ExportReportPDF(ctx context.Context, filters ReportFilters, opts ExportOptions) ([]byte, error) {
	payload := struct {
		Filtros ReportFilters `json:"filtros"`
		Opcoes  ExportOptions `json:"opcoes"`
	}{Filtros: filters, Opcoes: opts}
	return c.doBinary(ctx, http.MethodPost, "/relatorios/exportar-pdf", payload)
}
