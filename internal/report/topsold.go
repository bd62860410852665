package report

import (
	"sort"
	"strings"

	"github.com/SalisMR/fuscao-frontend/internal/api"
	"github.com/SalisMR/fuscao-frontend/pkg/enums"
)

// SoldItem is one aggregated row of the best-sellers chart.
type SoldItem struct {
	Name     string
	Kind     enums.ItemKind
	Quantity int
}

// TopSold groups ticket lines by trimmed item name, summing the sold
// quantities. Lines with a blank name or zero quantity are skipped and
// unknown kinds normalize to service. The first occurrence of a name
// wins its kind.
func TopSold(comandas []api.Comanda) []SoldItem {
	grouped := map[string]*SoldItem{}
	order := make([]string, 0)

	for _, comanda := range comandas {
		for _, item := range comanda.Itens {
			name := strings.TrimSpace(item.Nome)
			if name == "" || item.Quantidade == 0 {
				continue
			}
			if existing, ok := grouped[name]; ok {
				existing.Quantity += item.Quantidade
				continue
			}
			grouped[name] = &SoldItem{
				Name:     name,
				Kind:     enums.ParseItemKind(item.Tipo),
				Quantity: item.Quantidade,
			}
			order = append(order, name)
		}
	}

	out := make([]SoldItem, 0, len(order))
	for _, name := range order {
		out = append(out, *grouped[name])
	}
	return out
}

// FilterTop keeps the rows of one kind, ordered by quantity sold, and
// truncates to the chart's ten bars.
func FilterTop(items []SoldItem, kind enums.ItemKind) []SoldItem {
	filtered := make([]SoldItem, 0, len(items))
	for _, item := range items {
		if item.Kind == kind {
			filtered = append(filtered, item)
		}
	}
	sort.SliceStable(filtered, func(i, j int) bool {
		return filtered[i].Quantity > filtered[j].Quantity
	})
	if len(filtered) > 10 {
		filtered = filtered[:10]
	}
	return filtered
}
