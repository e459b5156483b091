// Package render draws the storefront view.
package render

import (
	"context"
	"fmt"
	"io"
	"strings"
	"text/tabwriter"

	"github.com/niksmo/storefront/internal/core/domain"
	"github.com/niksmo/storefront/internal/core/port"
)

const (
	noProductsText = "No products found"
	emptyCartText  = "Your cart is empty. Add items to get started."
	checkoutText   = "Confirm your demo order? (confirm / cancel)"
)

var (
	_ port.Renderer = (*Text)(nil)
	_ port.Renderer = Discard{}
)

// Discard drops every frame. Used where the caller serializes the view
// itself.
type Discard struct{}

func (Discard) Render(context.Context, domain.View) error {
	return nil
}

// Text draws a plain text frame to w.
type Text struct {
	w        io.Writer
	currency string
}

func NewText(w io.Writer, currencySymbol string) *Text {
	return &Text{w: w, currency: currencySymbol}
}

func (r *Text) Render(ctx context.Context, v domain.View) error {
	const op = "Text.Render"

	if err := ctx.Err(); err != nil {
		return fmt.Errorf("%s: %w", op, err)
	}

	var b strings.Builder
	r.writeFilters(&b, v)
	r.writeProducts(&b, v)
	r.writeCart(&b, v)
	if v.CheckoutOpen {
		fmt.Fprintf(&b, "\n%s\n", checkoutText)
	}
	if v.Notice != "" {
		fmt.Fprintf(&b, "\n* %s\n", v.Notice)
	}

	if _, err := io.WriteString(r.w, b.String()); err != nil {
		return fmt.Errorf("%s: %w", op, err)
	}
	return nil
}

func (r *Text) writeFilters(b *strings.Builder, v domain.View) {
	b.WriteString("Categories:")
	writeCategory(b, "All", v.Criteria.Category == domain.CategoryAll)
	for _, c := range v.Categories {
		writeCategory(b, c.Label, v.Criteria.Category == c.Value)
	}
	b.WriteByte('\n')

	fmt.Fprintf(b, "Search: %q  Sort: %s  Cart: %d\n\n",
		v.Criteria.Search, v.Criteria.Sort, v.Cart.TotalQuantity)
}

func writeCategory(b *strings.Builder, label string, active bool) {
	if active {
		fmt.Fprintf(b, " [%s]", label)
		return
	}
	fmt.Fprintf(b, " %s", label)
}

func (r *Text) writeProducts(b *strings.Builder, v domain.View) {
	if v.NoMatches {
		fmt.Fprintf(b, "%s\n", noProductsText)
		return
	}
	_ = Products(b, v.Products, r.currency)
}

func (r *Text) writeCart(b *strings.Builder, v domain.View) {
	if !v.CartOpen {
		return
	}
	b.WriteByte('\n')
	_ = Cart(b, v.Cart, r.currency)
}

// Products writes one aligned row per product.
func Products(w io.Writer, ps []domain.Product, currency string) error {
	tw := tabwriter.NewWriter(w, 0, 0, 2, ' ', 0)
	for _, p := range ps {
		fmt.Fprintf(tw, "%s\t%s\t%s\t%s\t%s\n",
			p.ID, p.Name, p.Category, domain.FormatPrice(currency, p.Price),
			p.Description)
	}
	return tw.Flush()
}

// Cart writes the cart panel: count badge, lines and subtotal.
func Cart(w io.Writer, c domain.CartView, currency string) error {
	fmt.Fprintf(w, "Your cart (%d)\n", c.TotalQuantity)
	if c.Empty {
		fmt.Fprintf(w, "%s\n", emptyCartText)
	} else {
		tw := tabwriter.NewWriter(w, 0, 0, 2, ' ', 0)
		for _, l := range c.Lines {
			fmt.Fprintf(tw, "%s\t%s\t%s each\tx%d\t%s\n",
				l.Product.ID, l.Product.Name,
				domain.FormatPrice(currency, l.Product.Price),
				l.Quantity, domain.FormatPrice(currency, l.LineTotal))
		}
		if err := tw.Flush(); err != nil {
			return err
		}
	}
	_, err := fmt.Fprintf(w, "Subtotal: %s\n", c.SubtotalLabel)
	return err
}
