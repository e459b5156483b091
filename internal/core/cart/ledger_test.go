package cart_test

import (
	"testing"

	"github.com/niksmo/storefront/internal/core/cart"
	"github.com/niksmo/storefront/internal/core/catalog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLedgerAdd(t *testing.T) {
	t.Run("InsertAndIncrement", func(t *testing.T) {
		l := cart.New()
		l.Add("p1", 1)
		l.Add("p1", 2)
		assert.Equal(t, 3, l.Quantity("p1"))
		assert.Equal(t, 1, l.Len())
	})

	t.Run("NegativeRemoves", func(t *testing.T) {
		l := cart.New()
		l.Add("p1", 2)
		l.Add("p1", -5)
		assert.Zero(t, l.Quantity("p1"))
		assert.Zero(t, l.Len())
	})

	t.Run("UnknownIDAccepted", func(t *testing.T) {
		l := cart.New()
		l.Add("ghost", 1)
		assert.Equal(t, 1, l.Quantity("ghost"))
	})

	t.Run("ZeroValueLedger", func(t *testing.T) {
		var l cart.Ledger
		l.Add("p2", 1)
		assert.Equal(t, 1, l.Quantity("p2"))
	})
}

func TestLedgerSetQuantity(t *testing.T) {
	l := cart.New()
	l.Add("p2", 1)

	l.SetQuantity("p2", 3)
	assert.Equal(t, 3, l.Quantity("p2"))

	l.SetQuantity("p2", 0)
	assert.Zero(t, l.Len())

	l.SetQuantity("p3", -1)
	assert.Zero(t, l.Len())
}

func TestLedgerRemove(t *testing.T) {
	l := cart.New()
	l.Add("p1", 1)
	l.Add("p2", 1)

	l.Remove("p1")
	l.Remove("p1")
	l.Remove("never")

	assert.Equal(t, []cart.Entry{{ProductID: "p2", Quantity: 1}}, l.Entries())
}

func TestLedgerTotals(t *testing.T) {
	products := catalog.Default()

	l := cart.New()
	l.Add("p1", 2)
	l.Add("p8", 1)
	assert.Equal(t, 3, l.TotalQuantity())
	assert.InDelta(t, 498.0, l.Subtotal(products), 1e-9)

	t.Run("DanglingIgnoredInSubtotal", func(t *testing.T) {
		l := cart.New()
		l.Add("p1", 2)
		l.Add("gone", 5)
		assert.Equal(t, 7, l.TotalQuantity())
		assert.InDelta(t, 78.0, l.Subtotal(products), 1e-9)
		assert.Equal(t, 2, l.Len())
	})

	t.Run("Empty", func(t *testing.T) {
		l := cart.New()
		assert.Zero(t, l.TotalQuantity())
		assert.Zero(t, l.Subtotal(products))
	})
}

func TestLedgerLines(t *testing.T) {
	products := catalog.Default()

	l := cart.New()
	l.Add("p5", 2)
	l.Add("gone", 1)
	l.Add("p1", 3)

	lines := l.Lines(products)
	require.Len(t, lines, 2)
	assert.Equal(t, "p5", lines[0].Product.ID)
	assert.Equal(t, 2, lines[0].Quantity)
	assert.InDelta(t, 120.0, lines[0].LineTotal, 1e-9)
	assert.Equal(t, "p1", lines[1].Product.ID)
	assert.InDelta(t, 117.0, lines[1].LineTotal, 1e-9)
}

func TestLedgerOrder(t *testing.T) {
	l := cart.New()
	l.Add("p3", 1)
	l.Add("p1", 1)
	l.Add("p2", 1)
	l.Add("p3", 1)
	l.Remove("p1")
	l.Add("p1", 1)

	assert.Equal(t, []cart.Entry{
		{ProductID: "p3", Quantity: 2},
		{ProductID: "p2", Quantity: 1},
		{ProductID: "p1", Quantity: 1},
	}, l.Entries())
}

func TestFromEntries(t *testing.T) {
	l := cart.FromEntries([]cart.Entry{
		{ProductID: "p1", Quantity: 2},
		{ProductID: "", Quantity: 4},
		{ProductID: "p2", Quantity: 0},
		{ProductID: "p3", Quantity: -1},
		{ProductID: "p4", Quantity: 1},
		{ProductID: "p1", Quantity: 5},
	})
	assert.Equal(t, []cart.Entry{
		{ProductID: "p1", Quantity: 5},
		{ProductID: "p4", Quantity: 1},
	}, l.Entries())
}

func TestLedgerClearAndClone(t *testing.T) {
	l := cart.New()
	l.Add("p1", 1)

	c := l.Clone()
	l.Clear()

	assert.Zero(t, l.Len())
	assert.Zero(t, l.TotalQuantity())
	assert.Equal(t, 1, c.Quantity("p1"))
}

func TestLedgerNeverStoresNonPositive(t *testing.T) {
	l := cart.New()
	ops := []func(){
		func() { l.Add("a", 1) },
		func() { l.Add("a", -1) },
		func() { l.SetQuantity("b", 2) },
		func() { l.Add("b", -3) },
		func() { l.Add("c", 0) },
		func() { l.SetQuantity("d", 1) },
	}
	for _, op := range ops {
		op()
		for _, e := range l.Entries() {
			assert.Positive(t, e.Quantity)
		}
	}
	assert.Equal(t, []cart.Entry{{ProductID: "d", Quantity: 1}}, l.Entries())
}
