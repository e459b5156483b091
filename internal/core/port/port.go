package port

import (
	"context"

	"github.com/niksmo/storefront/internal/core/cart"
	"github.com/niksmo/storefront/internal/core/domain"
)

// KVStore is a durable local key-value slot store. Get returns an error
// wrapping domain.ErrNotFound for a missing key.
type KVStore interface {
	Get(ctx context.Context, key string) ([]byte, error)
	Set(ctx context.Context, key string, value []byte) error
}

type CartLoader interface {
	Load(context.Context) *cart.Ledger
}

type CartSaver interface {
	Save(context.Context, *cart.Ledger) error
}

type CartStore interface {
	CartLoader
	CartSaver
}

type Renderer interface {
	Render(context.Context, domain.View) error
}

type EventPublisher interface {
	Publish(context.Context, domain.Event) error
}

type CommandDispatcher interface {
	Dispatch(context.Context, domain.Command) (domain.View, error)
}

type ViewReader interface {
	View() domain.View
}

type ProductBrowser interface {
	Browse(domain.FilterCriteria) []domain.Product
	Categories() []domain.Category
}

type Storefront interface {
	CommandDispatcher
	ViewReader
	ProductBrowser
}
