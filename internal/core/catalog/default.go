package catalog

import "github.com/niksmo/storefront/internal/core/domain"

var defaultProducts = []domain.Product{
	{ID: "p1", Name: "Bananas (6 pcs)", Category: "Fruits", Price: 39, Description: "Fresh yellow bananas", ImageRef: "images/bananas.jpg"},
	{ID: "p2", Name: "Milk 1L", Category: "Dairy", Price: 50, Description: "Toned milk 1 litre", ImageRef: "images/milk.jpg"},
	{ID: "p3", Name: "Brown Bread", Category: "Bakery", Price: 45, Description: "Whole wheat bread", ImageRef: "images/bread.jpg"},
	{ID: "p4", Name: "Tomatoes (500g)", Category: "Vegetables", Price: 30, Description: "Fresh tomatoes", ImageRef: "images/tomatoes.jpg"},
	{ID: "p5", Name: "Eggs (6)", Category: "Dairy", Price: 60, Description: "Farm fresh eggs", ImageRef: "images/eggs.jpg"},
	{ID: "p6", Name: "Apples (4 pcs)", Category: "Fruits", Price: 120, Description: "Crisp apples", ImageRef: "images/apples.jpg"},
	{ID: "p7", Name: "Paneer 200g", Category: "Dairy", Price: 90, Description: "Cottage cheese", ImageRef: "images/paneer.jpg"},
	{ID: "p8", Name: "Rice 5kg", Category: "Staples", Price: 420, Description: "Daily staple rice", ImageRef: "images/rice.jpg"},
	{ID: "p9", Name: "Potatoes (1kg)", Category: "Vegetables", Price: 28, Description: "Farm potatoes", ImageRef: "images/potatoes.jpg"},
	{ID: "p10", Name: "Chicken 500g", Category: "Meat", Price: 220, Description: "Fresh chicken", ImageRef: "images/chicken.jpg"},
}

// Default returns the built-in grocery catalog.
func Default() Catalog {
	c, err := New(defaultProducts)
	if err != nil {
		panic(err) // develop mistake
	}
	return c
}
