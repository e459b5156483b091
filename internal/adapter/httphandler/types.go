package httphandler

import "github.com/niksmo/storefront/internal/core/domain"

type (
	Product struct {
		ID          string  `json:"id"`
		Name        string  `json:"name"`
		Description string  `json:"description"`
		Category    string  `json:"category"`
		Price       float64 `json:"price"`
		PriceLabel  string  `json:"price_label"`
		Image       string  `json:"image"`
	}

	Category struct {
		Value string `json:"value"`
		Label string `json:"label"`
	}

	Criteria struct {
		Category string `json:"category"`
		Search   string `json:"search"`
		Sort     string `json:"sort"`
	}

	CartLine struct {
		Product   Product `json:"product"`
		Quantity  int     `json:"quantity"`
		LineTotal float64 `json:"line_total"`
	}

	Cart struct {
		Lines         []CartLine `json:"lines"`
		TotalQuantity int        `json:"total_quantity"`
		Subtotal      float64    `json:"subtotal"`
		SubtotalLabel string     `json:"subtotal_label"`
		Empty         bool       `json:"empty"`
	}

	View struct {
		Products     []Product  `json:"products"`
		NoMatches    bool       `json:"no_matches"`
		Categories   []Category `json:"categories"`
		Criteria     Criteria   `json:"criteria"`
		Cart         Cart       `json:"cart"`
		CartOpen     bool       `json:"cart_open"`
		CheckoutOpen bool       `json:"checkout_open"`
		Notice       string     `json:"notice,omitempty"`
	}

	Command struct {
		Type      string `json:"type"`
		ProductID string `json:"product_id"`
		Quantity  int    `json:"quantity"`
		Value     string `json:"value"`
	}

	Error struct {
		Error string `json:"error"`
	}
)

func (c Command) toDomain() domain.Command {
	return domain.Command{
		Type:      domain.CommandType(c.Type),
		ProductID: c.ProductID,
		Quantity:  c.Quantity,
		Value:     c.Value,
	}
}

func productFromDomain(p domain.Product, currency string) Product {
	return Product{
		ID:          p.ID,
		Name:        p.Name,
		Description: p.Description,
		Category:    p.Category,
		Price:       p.Price,
		PriceLabel:  domain.FormatPrice(currency, p.Price),
		Image:       p.ImageRef,
	}
}

func productsFromDomain(ps []domain.Product, currency string) []Product {
	res := make([]Product, len(ps))
	for i, p := range ps {
		res[i] = productFromDomain(p, currency)
	}
	return res
}

func categoriesFromDomain(cs []domain.Category) []Category {
	res := make([]Category, len(cs))
	for i, c := range cs {
		res[i] = Category{Value: c.Value, Label: c.Label}
	}
	return res
}

func viewFromDomain(v domain.View, currency string) View {
	lines := make([]CartLine, len(v.Cart.Lines))
	for i, l := range v.Cart.Lines {
		lines[i] = CartLine{
			Product:   productFromDomain(l.Product, currency),
			Quantity:  l.Quantity,
			LineTotal: l.LineTotal,
		}
	}

	return View{
		Products:   productsFromDomain(v.Products, currency),
		NoMatches:  v.NoMatches,
		Categories: categoriesFromDomain(v.Categories),
		Criteria: Criteria{
			Category: v.Criteria.Category,
			Search:   v.Criteria.Search,
			Sort:     string(v.Criteria.Sort),
		},
		Cart: Cart{
			Lines:         lines,
			TotalQuantity: v.Cart.TotalQuantity,
			Subtotal:      v.Cart.Subtotal,
			SubtotalLabel: v.Cart.SubtotalLabel,
			Empty:         v.Cart.Empty,
		},
		CartOpen:     v.CartOpen,
		CheckoutOpen: v.CheckoutOpen,
		Notice:       v.Notice,
	}
}
