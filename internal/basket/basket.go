package basket

import (
	"errors"
	"math"

	"github.com/chitranshagrawalstco-ops/streetbite/internal/domain"
)

var (
	ErrItemNotFound = errors.New("item not found in the current catalog")
	ErrLineNotFound = errors.New("item not found in the basket")
)

// Line is one basket entry. Item is a snapshot captured at add time:
// later catalog price edits never change an in-progress order.
type Line struct {
	Item     domain.MenuItem `json:"item"`
	Quantity int             `json:"quantity"`
}

// Basket is the in-progress order for one storefront session. It is a
// pure in-memory reducer over catalog snapshots and never touches the
// store. Not safe for concurrent use; the owning session serializes
// access. Invariants: at most one line per item ID, every quantity >= 1.
type Basket struct {
	snapshot map[int64]domain.MenuItem
	lines    []Line
}

func New() *Basket {
	return &Basket{snapshot: make(map[int64]domain.MenuItem)}
}

// Refresh installs the catalog snapshot used by AddItem lookups.
// Existing lines keep their add-time item snapshots.
func (b *Basket) Refresh(items []domain.MenuItem) {
	b.snapshot = make(map[int64]domain.MenuItem, len(items))
	for _, item := range items {
		b.snapshot[item.ID] = item
	}
}

// AddItem adds one unit of the item to the basket. The item must exist
// in the current catalog snapshot; an item deleted since the menu was
// loaded yields ErrItemNotFound so the caller can tell the customer,
// never a silent no-op.
func (b *Basket) AddItem(itemID int64) error {
	item, ok := b.snapshot[itemID]
	if !ok {
		return ErrItemNotFound
	}

	for i := range b.lines {
		if b.lines[i].Item.ID == itemID {
			b.lines[i].Quantity++
			return nil
		}
	}

	b.lines = append(b.lines, Line{Item: item, Quantity: 1})
	return nil
}

// ChangeQuantity applies delta to the line's quantity. A result of zero
// or below removes the line entirely; a quantity of zero is never kept.
func (b *Basket) ChangeQuantity(itemID int64, delta int) error {
	for i := range b.lines {
		if b.lines[i].Item.ID != itemID {
			continue
		}
		b.lines[i].Quantity += delta
		if b.lines[i].Quantity <= 0 {
			b.lines = append(b.lines[:i], b.lines[i+1:]...)
		}
		return nil
	}
	return ErrLineNotFound
}

// Lines returns a copy of the basket lines in insertion order.
func (b *Basket) Lines() []Line {
	lines := make([]Line, len(b.lines))
	copy(lines, b.lines)
	return lines
}

// LineCount is the number of distinct items in the basket.
func (b *Basket) LineCount() int {
	return len(b.lines)
}

// ItemCount is the sum of quantities across all lines. Displayed next
// to LineCount; the two are different numbers.
func (b *Basket) ItemCount() int {
	count := 0
	for _, line := range b.lines {
		count += line.Quantity
	}
	return count
}

// Total is the basket total at snapshot prices, rounded to two decimal
// places for display.
func (b *Basket) Total() float64 {
	total := 0.0
	for _, line := range b.lines {
		total += float64(line.Quantity) * line.Item.Price
	}
	return math.Round(total*100) / 100
}

// Snapshot returns the lines and their total as one pair, for callers
// that must render or dispatch a basket without a torn read.
func (b *Basket) Snapshot() ([]Line, float64) {
	return b.Lines(), b.Total()
}

// Clear empties the basket, keeping the catalog snapshot.
func (b *Basket) Clear() {
	b.lines = nil
}
