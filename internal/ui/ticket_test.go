package ui

import (
	"testing"
	"time"

	"github.com/SalisMR/fuscao-frontend/internal/api"
	"github.com/SalisMR/fuscao-frontend/pkg/enums"
)

func TestSummaryFromComanda(t *testing.T) {
	created := time.Date(2026, 3, 14, 10, 30, 0, 0, time.UTC)
	summary := summaryFromComanda(&api.Comanda{
		ID:         "c42",
		Cliente:    "João",
		Veiculo:    "Fusca 78",
		ValorFinal: 150.5,
		CreatedAt:  created,
	})

	if summary.ID != "c42" || summary.Customer != "João" || summary.Vehicle != "Fusca 78" {
		t.Fatalf("unexpected summary %+v", summary)
	}
	if !summary.CreatedAt.Equal(created) {
		t.Fatalf("expected createdAt %v, got %v", created, summary.CreatedAt)
	}
	if summary.NetTotal.InexactFloat64() != 150.5 {
		t.Fatalf("expected net 150.5, got %s", summary.NetTotal)
	}
}

func TestSummaryFromComandaNilFallsBackToNow(t *testing.T) {
	before := time.Now()
	summary := summaryFromComanda(nil)
	if summary.ID != "" {
		t.Fatalf("expected empty id, got %q", summary.ID)
	}
	if summary.CreatedAt.Before(before) {
		t.Fatalf("expected createdAt to default to now, got %v", summary.CreatedAt)
	}
}

func TestToCatalogItemNormalizesKind(t *testing.T) {
	item := toCatalogItem(api.Item{
		ID:         "i1",
		Nome:       "Óleo 5W30",
		Tipo:       "produto",
		Valor:      49.9,
		Quantidade: 12,
	})
	if item.Kind != enums.ItemKindProduct || item.Stock != 12 {
		t.Fatalf("unexpected catalog item %+v", item)
	}

	legacy := toCatalogItem(api.Item{ID: "i2", Nome: "Alinhamento", Tipo: "outro"})
	if legacy.Kind != enums.ItemKindService {
		t.Fatalf("expected unknown kind to normalize to service, got %s", legacy.Kind)
	}
}
