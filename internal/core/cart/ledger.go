// Package cart holds the cart ledger: a product id to quantity mapping that
// never stores a non-positive quantity.
package cart

import (
	"slices"

	"github.com/niksmo/storefront/internal/core/domain"
)

// ProductFinder resolves product ids at read time.
type ProductFinder interface {
	Find(id string) (domain.Product, bool)
}

// Entry is a single ledger row.
type Entry struct {
	ProductID string
	Quantity  int
}

// Ledger keeps entries in insertion order. The zero value is an empty
// ledger ready to use.
type Ledger struct {
	qty   map[string]int
	order []string
}

func New() *Ledger {
	return &Ledger{qty: make(map[string]int)}
}

// FromEntries restores a ledger, skipping entries with a non-positive
// quantity or empty id. Repeated ids keep their first position and the
// last quantity.
func FromEntries(es []Entry) *Ledger {
	l := New()
	for _, e := range es {
		if e.ProductID == "" {
			continue
		}
		l.SetQuantity(e.ProductID, e.Quantity)
	}
	return l
}

// Add increments the quantity of id by qty, inserting it when absent.
// Ids are not checked against the catalog.
func (l *Ledger) Add(id string, qty int) {
	l.SetQuantity(id, l.Quantity(id)+qty)
}

// SetQuantity overwrites the quantity of id. qty <= 0 removes the entry.
func (l *Ledger) SetQuantity(id string, qty int) {
	if qty <= 0 {
		l.Remove(id)
		return
	}
	if l.qty == nil {
		l.qty = make(map[string]int)
	}
	if _, ok := l.qty[id]; !ok {
		l.order = append(l.order, id)
	}
	l.qty[id] = qty
}

// Remove deletes id. Removing an absent id is a no-op.
func (l *Ledger) Remove(id string) {
	if _, ok := l.qty[id]; !ok {
		return
	}
	delete(l.qty, id)
	l.order = slices.DeleteFunc(l.order, func(v string) bool {
		return v == id
	})
}

func (l *Ledger) Clear() {
	l.qty = make(map[string]int)
	l.order = nil
}

func (l *Ledger) Quantity(id string) int {
	return l.qty[id]
}

func (l *Ledger) Len() int {
	return len(l.order)
}

// TotalQuantity sums every stored quantity, resolvable or not.
func (l *Ledger) TotalQuantity() int {
	var n int
	for _, q := range l.qty {
		n += q
	}
	return n
}

// Subtotal sums price*quantity over entries found in products. Dangling
// entries contribute zero.
func (l *Ledger) Subtotal(products ProductFinder) float64 {
	var sum float64
	for _, id := range l.order {
		p, ok := products.Find(id)
		if !ok {
			continue
		}
		sum += p.Price * float64(l.qty[id])
	}
	return sum
}

// Entries returns a copy of the ledger rows in insertion order.
func (l *Ledger) Entries() []Entry {
	es := make([]Entry, len(l.order))
	for i, id := range l.order {
		es[i] = Entry{ProductID: id, Quantity: l.qty[id]}
	}
	return es
}

// Lines returns the resolvable rows with their line totals, in insertion
// order.
func (l *Ledger) Lines(products ProductFinder) []domain.CartLine {
	lines := make([]domain.CartLine, 0, len(l.order))
	for _, id := range l.order {
		p, ok := products.Find(id)
		if !ok {
			continue
		}
		q := l.qty[id]
		lines = append(lines, domain.CartLine{
			Product:   p,
			Quantity:  q,
			LineTotal: p.Price * float64(q),
		})
	}
	return lines
}

// Clone returns an independent copy.
func (l *Ledger) Clone() *Ledger {
	return FromEntries(l.Entries())
}
