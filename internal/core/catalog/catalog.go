package catalog

import (
	"fmt"
	"math"
	"os"
	"strings"

	"github.com/niksmo/storefront/internal/core/domain"
	"gopkg.in/yaml.v3"
)

// Catalog is the immutable product list the storefront works against.
type Catalog struct {
	products   []domain.Product
	index      map[string]int
	categories []domain.Category
}

// New validates ps and builds a Catalog. Product ids must be unique and
// non-empty, prices must be non-negative.
func New(ps []domain.Product) (Catalog, error) {
	const op = "catalog.New"

	c := Catalog{
		products: make([]domain.Product, len(ps)),
		index:    make(map[string]int, len(ps)),
	}
	copy(c.products, ps)

	seen := make(map[string]struct{})
	for i, p := range c.products {
		if strings.TrimSpace(p.ID) == "" {
			return Catalog{}, fmt.Errorf(
				"%s: product at %d has empty id: %w", op, i, domain.ErrInvalidProduct,
			)
		}
		if _, dup := c.index[p.ID]; dup {
			return Catalog{}, fmt.Errorf(
				"%s: duplicate product id %q: %w", op, p.ID, domain.ErrInvalidProduct,
			)
		}
		if p.Price < 0 || math.IsNaN(p.Price) || math.IsInf(p.Price, 0) {
			return Catalog{}, fmt.Errorf(
				"%s: product %q has invalid price %v: %w", op, p.ID, p.Price, domain.ErrInvalidProduct,
			)
		}
		c.index[p.ID] = i

		value := strings.ToLower(p.Category)
		if _, ok := seen[value]; ok {
			continue
		}
		seen[value] = struct{}{}
		c.categories = append(c.categories, domain.Category{
			Value: value, Label: p.Category,
		})
	}
	return c, nil
}

// Products returns a copy of the products in catalog order.
func (c Catalog) Products() []domain.Product {
	ps := make([]domain.Product, len(c.products))
	copy(ps, c.products)
	return ps
}

func (c Catalog) Find(id string) (domain.Product, bool) {
	i, ok := c.index[id]
	if !ok {
		return domain.Product{}, false
	}
	return c.products[i], true
}

// Categories lists distinct categories in order of first appearance.
// The implicit "all" choice is not included.
func (c Catalog) Categories() []domain.Category {
	cs := make([]domain.Category, len(c.categories))
	copy(cs, c.categories)
	return cs
}

func (c Catalog) Len() int {
	return len(c.products)
}

type (
	fileCatalog struct {
		Products []fileProduct `yaml:"products"`
	}

	fileProduct struct {
		ID          string  `yaml:"id"`
		Name        string  `yaml:"name"`
		Description string  `yaml:"description"`
		Category    string  `yaml:"category"`
		Price       float64 `yaml:"price"`
		Image       string  `yaml:"image"`
	}
)

// LoadFile reads a YAML catalog from path.
func LoadFile(path string) (Catalog, error) {
	const op = "catalog.LoadFile"

	data, err := os.ReadFile(path)
	if err != nil {
		return Catalog{}, fmt.Errorf("%s: %w", op, err)
	}

	var fc fileCatalog
	if err := yaml.Unmarshal(data, &fc); err != nil {
		return Catalog{}, fmt.Errorf("%s: %w", op, err)
	}

	ps := make([]domain.Product, len(fc.Products))
	for i, p := range fc.Products {
		ps[i] = domain.Product{
			ID:          p.ID,
			Name:        p.Name,
			Description: p.Description,
			Category:    p.Category,
			Price:       p.Price,
			ImageRef:    p.Image,
		}
	}

	c, err := New(ps)
	if err != nil {
		return Catalog{}, fmt.Errorf("%s: %w", op, err)
	}
	return c, nil
}
