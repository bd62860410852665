package enums

// ItemKind distinguishes stocked products from billable services.
type ItemKind string

const (
	ItemKindProduct ItemKind = "produto"
	ItemKindService ItemKind = "servico"
)

var validItemKinds = []ItemKind{
	ItemKindProduct,
	ItemKindService,
}

// String implements fmt.Stringer.
func (k ItemKind) String() string {
	return string(k)
}

// IsValid reports whether the value is a known ItemKind.
func (k ItemKind) IsValid() bool {
	for _, candidate := range validItemKinds {
		if candidate == k {
			return true
		}
	}
	return false
}

// ParseItemKind converts raw input into an ItemKind. Anything that is
// not a product is treated as a service, matching how the backend
// normalizes legacy records.
func ParseItemKind(value string) ItemKind {
	if ItemKind(value) == ItemKindProduct {
		return ItemKindProduct
	}
	return ItemKindService
}
