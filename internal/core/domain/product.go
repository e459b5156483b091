package domain

import (
	"errors"
	"fmt"
)

var (
	ErrNotFound       = errors.New("not found")
	ErrInvalidSort    = errors.New("invalid sort order")
	ErrInvalidProduct = errors.New("invalid product")
)

type Product struct {
	ID          string
	Name        string
	Description string
	Category    string
	Price       float64
	ImageRef    string
}

// Category is a selectable catalog category. Value is the lowercase form
// used in FilterCriteria, Label is the form shown to the user.
type Category struct {
	Value string
	Label string
}

// FormatPrice renders amount with a fixed symbol prefix and two decimals.
func FormatPrice(symbol string, amount float64) string {
	return fmt.Sprintf("%s%.2f", symbol, amount)
}
