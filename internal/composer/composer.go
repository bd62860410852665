package composer

import (
	"strconv"
	"strings"
	"time"

	"github.com/SalisMR/fuscao-frontend/pkg/enums"
	"github.com/SalisMR/fuscao-frontend/pkg/money"
	"github.com/shopspring/decimal"
)

// CatalogItem is a product or service fetched from the inventory search.
// Never mutated here; lines copy what they need at selection time.
type CatalogItem struct {
	ID        string
	Name      string
	Kind      enums.ItemKind
	UnitPrice decimal.Decimal
	Stock     int
}

// Line is a catalog item placed into the draft. QuantityText holds
// whatever the user typed, including transient garbage; commits
// normalize it back into a valid integer.
type Line struct {
	ItemID        string
	Name          string
	Kind          enums.ItemKind
	UnitPrice     decimal.Decimal
	QuantityText  string
	StockSnapshot int
}

// Quantity is the effective quantity used for pricing: unparsable or
// sub-1 text counts as 1 so a half-typed field never zeroes a total.
func (l Line) Quantity() int {
	n, err := strconv.Atoi(strings.TrimSpace(l.QuantityText))
	if err != nil || n < 1 {
		return 1
	}
	return n
}

// Subtotal prices the line at its effective quantity.
func (l Line) Subtotal() decimal.Decimal {
	return l.UnitPrice.Mul(decimal.NewFromInt(int64(l.Quantity())))
}

// Phase tracks the two externally visible composer states.
type Phase int

const (
	PhaseDrafting Phase = iota
	PhaseSubmitted
)

// Summary is the persisted ticket echoed back by the backend after a
// successful submission.
type Summary struct {
	ID        string
	Customer  string
	Vehicle   string
	NetTotal  decimal.Decimal
	CreatedAt time.Time
}

// Composer holds the ticket draft being assembled. All mutation happens
// on the event loop; nothing here is safe for concurrent use and
// nothing here talks to the network.
type Composer struct {
	Customer string
	Contact  string
	Vehicle  string
	Notes    string

	StaffID   string
	StaffName string

	discountText string
	lines        []Line

	query      string
	resultsFor string
	results    []CatalogItem

	phase      Phase
	submitting bool
	summary    *Summary
}

func New(staffID, staffName string) *Composer {
	return &Composer{
		StaffID:   staffID,
		StaffName: staffName,
		phase:     PhaseDrafting,
	}
}

// SetQuery records the active search text. It reports whether the
// caller should fetch results: blank queries and queries whose results
// are already cached need no network call.
func (c *Composer) SetQuery(query string) (needsFetch bool) {
	c.query = query
	trimmed := strings.TrimSpace(query)
	if trimmed == "" {
		return false
	}
	return c.resultsFor != query
}

func (c *Composer) Query() string {
	return c.query
}

// ApplyResults caches search results. Responses for a query other than
// the current one are stale and dropped.
func (c *Composer) ApplyResults(query string, items []CatalogItem) {
	if query != c.query {
		return
	}
	c.resultsFor = query
	c.results = items
}

// Suggestions filters the cached results by case-insensitive substring
// match against the current query, capped at 8 entries.
func (c *Composer) Suggestions() []CatalogItem {
	trimmed := strings.TrimSpace(c.query)
	if trimmed == "" {
		return nil
	}
	needle := strings.ToLower(trimmed)
	out := make([]CatalogItem, 0, 8)
	for _, item := range c.results {
		if !strings.Contains(strings.ToLower(item.Name), needle) {
			continue
		}
		out = append(out, item)
		if len(out) == 8 {
			break
		}
	}
	return out
}

// AddLine appends the item as a new line with quantity "1". Adding an
// item already present is a no-op. Clears the active search query.
func (c *Composer) AddLine(item CatalogItem) {
	for _, line := range c.lines {
		if line.ItemID == item.ID {
			c.query = ""
			return
		}
	}

	snapshot := 0
	if item.Kind == enums.ItemKindProduct {
		snapshot = item.Stock
		if snapshot < 0 {
			snapshot = 0
		}
	}

	c.lines = append(c.lines, Line{
		ItemID:        item.ID,
		Name:          item.Name,
		Kind:          item.Kind,
		UnitPrice:     item.UnitPrice,
		QuantityText:  "1",
		StockSnapshot: snapshot,
	})
	c.query = ""
}

// RemoveLine drops the line with the given item identity; absent
// identities are a no-op.
func (c *Composer) RemoveLine(itemID string) {
	for i, line := range c.lines {
		if line.ItemID == itemID {
			c.lines = append(c.lines[:i], c.lines[i+1:]...)
			return
		}
	}
}

// SetQuantityText stores the typed quantity verbatim so the field can
// pass through empty or non-numeric states while the user edits.
func (c *Composer) SetQuantityText(itemID, text string) {
	for i := range c.lines {
		if c.lines[i].ItemID == itemID {
			c.lines[i].QuantityText = text
			return
		}
	}
}

// CommitQuantity normalizes the typed quantity on blur: unparsable or
// sub-1 becomes 1, and product lines are clamped to the stock snapshot
// captured when the line was added.
func (c *Composer) CommitQuantity(itemID string) {
	for i := range c.lines {
		line := &c.lines[i]
		if line.ItemID != itemID {
			continue
		}

		n, err := strconv.Atoi(strings.TrimSpace(line.QuantityText))
		if err != nil || n < 1 {
			n = 1
		}
		if line.Kind == enums.ItemKindProduct && n > line.StockSnapshot {
			n = line.StockSnapshot
		}
		line.QuantityText = strconv.Itoa(n)
		return
	}
}

func (c *Composer) SetDiscountText(text string) {
	c.discountText = text
}

// CommitDiscount normalizes the discount on blur: unparsable becomes 0
// and negatives are floored at 0.
func (c *Composer) CommitDiscount() {
	c.discountText = c.discount().StringFixed(2)
}

func (c *Composer) DiscountText() string {
	return c.discountText
}

func (c *Composer) discount() decimal.Decimal {
	value, ok := money.Parse(c.discountText)
	if !ok || value.IsNegative() {
		return decimal.Zero
	}
	return value
}

func (c *Composer) Lines() []Line {
	return c.lines
}

// GrossTotal sums every line at its effective quantity. Always
// recomputed; there is no cached total to go stale.
func (c *Composer) GrossTotal() decimal.Decimal {
	total := decimal.Zero
	for _, line := range c.lines {
		total = total.Add(line.Subtotal())
	}
	return total
}

// NetTotal is the gross total minus the normalized discount, never
// below zero.
func (c *Composer) NetTotal() decimal.Decimal {
	net := c.GrossTotal().Sub(c.discount())
	if net.IsNegative() {
		return decimal.Zero
	}
	return net
}

func (c *Composer) Phase() Phase {
	return c.phase
}

func (c *Composer) Submitting() bool {
	return c.submitting
}

func (c *Composer) Summary() *Summary {
	return c.summary
}

// NewDraft returns to drafting after a submitted summary was shown.
// The staff identity survives; everything else starts blank.
func (c *Composer) NewDraft() {
	staffID, staffName := c.StaffID, c.StaffName
	*c = Composer{
		StaffID:   staffID,
		StaffName: staffName,
		phase:     PhaseDrafting,
	}
}
