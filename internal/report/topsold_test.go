package report

import (
	"fmt"
	"testing"

	"github.com/SalisMR/fuscao-frontend/internal/api"
	"github.com/SalisMR/fuscao-frontend/pkg/enums"
)

func comandaWith(items ...api.ComandaItem) api.Comanda {
	return api.Comanda{Itens: items}
}

func TestTopSoldGroupsByTrimmedName(t *testing.T) {
	t.Parallel()

	comandas := []api.Comanda{
		comandaWith(
			api.ComandaItem{Nome: "Óleo 5W30", Tipo: "produto", Quantidade: 2},
			api.ComandaItem{Nome: "Alinhamento", Tipo: "servico", Quantidade: 1},
		),
		comandaWith(
			api.ComandaItem{Nome: "  Óleo 5W30 ", Tipo: "produto", Quantidade: 3},
			api.ComandaItem{Nome: "", Tipo: "produto", Quantidade: 4},
			api.ComandaItem{Nome: "Filtro", Tipo: "produto", Quantidade: 0},
		),
	}

	got := TopSold(comandas)
	if len(got) != 2 {
		t.Fatalf("expected 2 groups, got %d: %+v", len(got), got)
	}
	if got[0].Name != "Óleo 5W30" || got[0].Quantity != 5 {
		t.Fatalf("unexpected first group %+v", got[0])
	}
	if got[1].Name != "Alinhamento" || got[1].Kind != enums.ItemKindService {
		t.Fatalf("unexpected second group %+v", got[1])
	}
}

func TestTopSoldNormalizesUnknownKindToService(t *testing.T) {
	t.Parallel()

	got := TopSold([]api.Comanda{
		comandaWith(api.ComandaItem{Nome: "Revisão", Tipo: "outro", Quantidade: 1}),
	})
	if len(got) != 1 || got[0].Kind != enums.ItemKindService {
		t.Fatalf("unexpected groups %+v", got)
	}
}

func TestFilterTopSortsAndTruncates(t *testing.T) {
	t.Parallel()

	items := make([]SoldItem, 0, 13)
	for i := 1; i <= 12; i++ {
		items = append(items, SoldItem{
			Name:     fmt.Sprintf("Produto %d", i),
			Kind:     enums.ItemKindProduct,
			Quantity: i,
		})
	}
	items = append(items, SoldItem{Name: "Lavagem", Kind: enums.ItemKindService, Quantity: 99})

	got := FilterTop(items, enums.ItemKindProduct)
	if len(got) != 10 {
		t.Fatalf("expected 10 rows, got %d", len(got))
	}
	if got[0].Quantity != 12 || got[9].Quantity != 3 {
		t.Fatalf("unexpected ordering: first %+v last %+v", got[0], got[9])
	}
	for _, item := range got {
		if item.Kind != enums.ItemKindProduct {
			t.Fatalf("service row leaked into product chart: %+v", item)
		}
	}
}
