package api

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"sync/atomic"
	"testing"
	"time"

	pkgerrors "github.com/SalisMR/fuscao-frontend/pkg/errors"
)

func newTestClient(t *testing.T, handler http.Handler, opts ...Option) *Client {
	t.Helper()
	server := httptest.NewServer(handler)
	t.Cleanup(server.Close)

	client, err := NewClient(server.URL, opts...)
	if err != nil {
		t.Fatalf("NewClient: %v", err)
	}
	return client
}

func TestLoginSendsCredentialsAndParsesToken(t *testing.T) {
	client := newTestClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.Method != http.MethodPost || r.URL.Path != "/auth/login" {
			t.Fatalf("unexpected request %s %s", r.Method, r.URL.Path)
		}
		if r.Header.Get("X-Request-ID") == "" {
			t.Fatalf("missing request correlation header")
		}
		var body map[string]string
		if err := json.NewDecoder(r.Body).Decode(&body); err != nil {
			t.Fatalf("decode body: %v", err)
		}
		if body["email"] != "maria@fuscao.com" || body["senha"] != "s3nh4" {
			t.Fatalf("unexpected credentials %v", body)
		}
		_ = json.NewEncoder(w).Encode(map[string]any{
			"token": "tok-1",
			"user":  map[string]any{"_id": "u1", "nome": "Maria", "tipo": "admin"},
		})
	}))

	result, err := client.Login(context.Background(), "maria@fuscao.com", "s3nh4")
	if err != nil {
		t.Fatalf("Login: %v", err)
	}
	if result.Token != "tok-1" || result.User.Nome != "Maria" {
		t.Fatalf("unexpected result %+v", result)
	}
}

func TestLoginRejectsBlankCredentialsWithoutRequest(t *testing.T) {
	called := false
	client := newTestClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		called = true
	}))

	_, err := client.Login(context.Background(), " ", "")
	if typed := pkgerrors.As(err); typed == nil || typed.Code() != pkgerrors.CodeValidation {
		t.Fatalf("expected validation error, got %v", err)
	}
	if called {
		t.Fatalf("blank credentials must not reach the network")
	}
}

func TestSearchItemsBlankQueryShortCircuits(t *testing.T) {
	called := false
	client := newTestClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		called = true
	}))

	items, err := client.SearchItems(context.Background(), "   ")
	if err != nil || items != nil {
		t.Fatalf("expected empty result, got %v %v", items, err)
	}
	if called {
		t.Fatalf("blank query must not reach the network")
	}
}

func TestSearchItemsSendsBearerToken(t *testing.T) {
	client := newTestClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if got := r.Header.Get("Authorization"); got != "Bearer tok-9" {
			t.Fatalf("authorization = %q", got)
		}
		if got := r.URL.Query().Get("nome"); got != "óleo" {
			t.Fatalf("nome = %q", got)
		}
		_ = json.NewEncoder(w).Encode([]Item{{ID: "p1", Nome: "Óleo 5W30", Tipo: "produto", Valor: 45, Quantidade: 10}})
	}), WithTokenSource(func() string { return "tok-9" }))

	items, err := client.SearchItems(context.Background(), "óleo")
	if err != nil {
		t.Fatalf("SearchItems: %v", err)
	}
	if len(items) != 1 || items[0].Quantidade != 10 {
		t.Fatalf("unexpected items %+v", items)
	}
}

func TestErrorEnvelopeMessageSurfaced(t *testing.T) {
	client := newTestClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusBadRequest)
		_ = json.NewEncoder(w).Encode(map[string]string{"msg": "Estoque insuficiente"})
	}))

	err := client.CreateItem(context.Background(), ItemPayload{Nome: "Vela", Tipo: "produto"})
	typed := pkgerrors.As(err)
	if typed == nil {
		t.Fatalf("expected typed error, got %v", err)
	}
	if typed.Code() != pkgerrors.CodeValidation {
		t.Fatalf("code = %s", typed.Code())
	}
	if typed.UserMessage() != "Estoque insuficiente" {
		t.Fatalf("user message = %q", typed.UserMessage())
	}
}

func TestStatusCodeMapping(t *testing.T) {
	cases := []struct {
		status int
		code   pkgerrors.Code
	}{
		{http.StatusUnauthorized, pkgerrors.CodeUnauthorized},
		{http.StatusForbidden, pkgerrors.CodeForbidden},
		{http.StatusNotFound, pkgerrors.CodeNotFound},
		{http.StatusConflict, pkgerrors.CodeConflict},
		{http.StatusTooManyRequests, pkgerrors.CodeRateLimit},
		{http.StatusUnprocessableEntity, pkgerrors.CodeValidation},
		{http.StatusBadGateway, pkgerrors.CodeDependency},
	}

	for _, tc := range cases {
		if got := domainCodeForStatus(tc.status); got != tc.code {
			t.Fatalf("status %d mapped to %s, want %s", tc.status, got, tc.code)
		}
	}
}

func TestGetRetriesOnServerError(t *testing.T) {
	var calls int32
	client := newTestClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if atomic.AddInt32(&calls, 1) < 3 {
			w.WriteHeader(http.StatusBadGateway)
			return
		}
		_ = json.NewEncoder(w).Encode([]Item{})
	}), WithRetry(3, time.Millisecond))

	if _, err := client.ListItems(context.Background()); err != nil {
		t.Fatalf("ListItems after retries: %v", err)
	}
	if got := atomic.LoadInt32(&calls); got != 3 {
		t.Fatalf("expected 3 attempts, got %d", got)
	}
}

func TestGetDoesNotRetryValidationErrors(t *testing.T) {
	var calls int32
	client := newTestClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		atomic.AddInt32(&calls, 1)
		w.WriteHeader(http.StatusBadRequest)
	}), WithRetry(3, time.Millisecond))

	if _, err := client.ListItems(context.Background()); err == nil {
		t.Fatalf("expected error")
	}
	if got := atomic.LoadInt32(&calls); got != 1 {
		t.Fatalf("validation failure retried %d times", got)
	}
}

func TestPostIsNeverRetried(t *testing.T) {
	var calls int32
	client := newTestClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		atomic.AddInt32(&calls, 1)
		w.WriteHeader(http.StatusInternalServerError)
	}), WithRetry(3, time.Millisecond))

	_, err := client.CreateComanda(context.Background(), CreateComandaRequest{Cliente: "João"})
	if err == nil {
		t.Fatalf("expected error")
	}
	if got := atomic.LoadInt32(&calls); got != 1 {
		t.Fatalf("non-idempotent POST retried %d times", got)
	}
}

func TestCreateComandaUnwrapsEnvelope(t *testing.T) {
	client := newTestClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		var req CreateComandaRequest
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			t.Fatalf("decode request: %v", err)
		}
		if req.ValorFinal != 22 || len(req.Itens) != 1 {
			t.Fatalf("unexpected payload %+v", req)
		}
		_ = json.NewEncoder(w).Encode(map[string]any{
			"comanda": map[string]any{"_id": "c42", "cliente": req.Cliente, "valorFinal": req.ValorFinal},
		})
	}))

	comanda, err := client.CreateComanda(context.Background(), CreateComandaRequest{
		Cliente:    "João",
		Itens:      []ComandaItem{{ItemID: "p1", Nome: "Óleo", Tipo: "produto", Quantidade: 3, ValorUnitario: 10}},
		Total:      30,
		Desconto:   8,
		ValorFinal: 22,
	})
	if err != nil {
		t.Fatalf("CreateComanda: %v", err)
	}
	if comanda.ID != "c42" || comanda.ValorFinal != 22 {
		t.Fatalf("unexpected comanda %+v", comanda)
	}
}

func TestComandaPDFReturnsRawBytes(t *testing.T) {
	pdf := []byte("%PDF-1.4 fake")
	client := newTestClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/comandas/c42/pdf" {
			t.Fatalf("unexpected path %s", r.URL.Path)
		}
		w.Header().Set("Content-Type", "application/pdf")
		_, _ = w.Write(pdf)
	}))

	raw, err := client.ComandaPDF(context.Background(), "c42")
	if err != nil {
		t.Fatalf("ComandaPDF: %v", err)
	}
	if string(raw) != string(pdf) {
		t.Fatalf("unexpected body %q", raw)
	}
}

func TestGetDetailedReportEncodesFilters(t *testing.T) {
	client := newTestClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		q := r.URL.Query()
		if q.Get("inicio") != "2026-08-01" || q.Get("funcionario") != "f1" {
			t.Fatalf("unexpected query %v", q)
		}
		if q.Has("fim") || q.Has("busca") {
			t.Fatalf("zero filters must be omitted: %v", q)
		}
		_ = json.NewEncoder(w).Encode(DetailedReport{
			Resumo: ReportSummary{Comandas: 2, Faturamento: 120},
		})
	}))

	report, err := client.GetDetailedReport(context.Background(), ReportFilters{Inicio: "2026-08-01", Funcionario: "f1"})
	if err != nil {
		t.Fatalf("GetDetailedReport: %v", err)
	}
	if report.Resumo.Comandas != 2 {
		t.Fatalf("unexpected report %+v", report)
	}
}

func TestGetDashboardValidatesPeriod(t *testing.T) {
	called := false
	client := newTestClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		called = true
	}))

	if _, err := client.GetDashboard(context.Background(), "ano"); err == nil {
		t.Fatalf("expected validation error")
	}
	if called {
		t.Fatalf("invalid period must not reach the network")
	}
}
