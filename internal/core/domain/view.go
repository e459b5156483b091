package domain

type (
	// View is everything a renderer needs to redraw the storefront.
	View struct {
		Products     []Product
		NoMatches    bool
		Categories   []Category
		Criteria     FilterCriteria
		Cart         CartView
		CartOpen     bool
		CheckoutOpen bool
		Notice       string
	}

	CartView struct {
		Lines         []CartLine
		TotalQuantity int
		Subtotal      float64
		SubtotalLabel string
		Empty         bool
	}

	CartLine struct {
		Product   Product
		Quantity  int
		LineTotal float64
	}
)
