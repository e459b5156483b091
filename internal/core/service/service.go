// Package service holds the storefront controller. It owns the application
// state and turns each command into one state transition followed by one
// render.
package service

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strings"
	"sync"
	"time"

	"github.com/niksmo/storefront/internal/core/cart"
	"github.com/niksmo/storefront/internal/core/catalog"
	"github.com/niksmo/storefront/internal/core/domain"
	"github.com/niksmo/storefront/internal/core/filter"
	"github.com/niksmo/storefront/internal/core/port"
)

const (
	DefaultCurrencySymbol = "₹"
	CheckoutNotice        = "Thank you! Your demo order is placed."
)

var (
	ErrUnknownCommand     = errors.New("unknown command")
	ErrProductIDRequired  = errors.New("product id required")
	ErrControllerNotReady = errors.New("controller is not started")
)

var _ port.Storefront = (*Storefront)(nil)

type Opt func(*Storefront)

// WithPublisher reports activity events. Without it events are dropped.
func WithPublisher(p port.EventPublisher) Opt {
	return func(s *Storefront) {
		if p != nil {
			s.publisher = p
		}
	}
}

func WithCurrencySymbol(symbol string) Opt {
	return func(s *Storefront) {
		s.currency = symbol
	}
}

func WithClock(now func() time.Time) Opt {
	return func(s *Storefront) {
		if now != nil {
			s.now = now
		}
	}
}

type Storefront struct {
	catalog   catalog.Catalog
	store     port.CartStore
	renderer  port.Renderer
	publisher port.EventPublisher
	currency  string
	now       func() time.Time

	mu           sync.Mutex
	started      bool
	criteria     domain.FilterCriteria
	ledger       *cart.Ledger
	cartOpen     bool
	checkoutOpen bool
	notice       string
}

func New(
	c catalog.Catalog,
	store port.CartStore,
	renderer port.Renderer,
	opts ...Opt,
) *Storefront {
	s := &Storefront{
		catalog:   c,
		store:     store,
		renderer:  renderer,
		publisher: noopPublisher{},
		currency:  DefaultCurrencySymbol,
		now:       time.Now,
		criteria:  domain.DefaultCriteria(),
		ledger:    cart.New(),
	}
	for _, o := range opts {
		o(s)
	}
	return s
}

// Start restores the persisted cart and draws the first frame.
func (s *Storefront) Start(ctx context.Context) domain.View {
	const op = "Storefront.Start"
	log := slog.With("op", op)

	s.mu.Lock()
	defer s.mu.Unlock()

	s.ledger = s.store.Load(ctx)
	s.started = true
	log.Info("storefront started",
		"products", s.catalog.Len(), "cart_entries", s.ledger.Len())

	v := s.view()
	s.render(ctx, v)
	return v
}

// Dispatch applies cmd. A rejected command leaves the state untouched and
// renders nothing.
func (s *Storefront) Dispatch(
	ctx context.Context, cmd domain.Command,
) (domain.View, error) {
	const op = "Storefront.Dispatch"

	s.mu.Lock()
	defer s.mu.Unlock()

	if !s.started {
		return domain.View{}, fmt.Errorf("%s: %w", op, ErrControllerNotReady)
	}

	t, err := s.transition(cmd)
	if err != nil {
		return domain.View{}, fmt.Errorf("%s: %s: %w", op, cmd.Type, err)
	}

	s.notice = ""
	t.apply(s)

	if t.persist {
		s.save(ctx)
	}

	v := s.view()
	s.render(ctx, v)

	if t.event != nil {
		s.publish(ctx, *t.event)
	}
	return v, nil
}

// View returns the current state without rendering.
func (s *Storefront) View() domain.View {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.view()
}

// Browse filters the catalog with c, leaving the controller state alone.
func (s *Storefront) Browse(c domain.FilterCriteria) []domain.Product {
	return filter.Apply(s.catalog.Products(), c)
}

func (s *Storefront) Categories() []domain.Category {
	return s.catalog.Categories()
}

// transition is a validated command ready to be applied. The notice is
// one-shot: every accepted command clears it before apply runs.
type transition struct {
	apply   func(*Storefront)
	persist bool
	event   *domain.Event
}

func (s *Storefront) transition(cmd domain.Command) (transition, error) {
	id := strings.TrimSpace(cmd.ProductID)

	switch cmd.Type {
	case domain.CmdAddToCart:
		if id == "" {
			return transition{}, ErrProductIDRequired
		}
		qty := cmd.Quantity
		if qty == 0 {
			qty = 1
		}
		return s.cartTransition(id, func(l *cart.Ledger) {
			l.Add(id, qty)
		}, func(s *Storefront) {
			s.cartOpen = true
		}), nil

	case domain.CmdSetQuantity:
		if id == "" {
			return transition{}, ErrProductIDRequired
		}
		return s.cartTransition(id, func(l *cart.Ledger) {
			l.SetQuantity(id, cmd.Quantity)
		}, nil), nil

	case domain.CmdIncrement:
		if id == "" {
			return transition{}, ErrProductIDRequired
		}
		return s.cartTransition(id, func(l *cart.Ledger) {
			l.Add(id, 1)
		}, nil), nil

	case domain.CmdDecrement:
		if id == "" {
			return transition{}, ErrProductIDRequired
		}
		return s.cartTransition(id, func(l *cart.Ledger) {
			l.Add(id, -1)
		}, nil), nil

	case domain.CmdRemoveFromCart:
		if id == "" {
			return transition{}, ErrProductIDRequired
		}
		return s.cartTransition(id, func(l *cart.Ledger) {
			l.Remove(id)
		}, nil), nil

	case domain.CmdSetCategory:
		category := domain.NormalizeCategory(cmd.Value)
		return transition{apply: func(s *Storefront) {
			s.criteria.Category = category
		}}, nil

	case domain.CmdSetSearch:
		search := cmd.Value
		return transition{
			apply: func(s *Storefront) {
				s.criteria.Search = search
			},
			event: &domain.Event{
				Type:       domain.EventSearch,
				Search:     strings.TrimSpace(search),
				Category:   s.criteria.Category,
				OccurredAt: s.now(),
			},
		}, nil

	case domain.CmdSetSort:
		order, err := domain.ParseSortOrder(cmd.Value)
		if err != nil {
			return transition{}, err
		}
		return transition{apply: func(s *Storefront) {
			s.criteria.Sort = order
		}}, nil

	case domain.CmdClearFilters:
		return transition{apply: func(s *Storefront) {
			s.criteria = domain.DefaultCriteria()
		}}, nil

	case domain.CmdOpenCart:
		return transition{apply: func(s *Storefront) {
			s.cartOpen = true
		}}, nil

	case domain.CmdCloseCart:
		return transition{apply: func(s *Storefront) {
			s.cartOpen = false
		}}, nil

	case domain.CmdToggleCart:
		return transition{apply: func(s *Storefront) {
			s.cartOpen = !s.cartOpen
		}}, nil

	case domain.CmdBeginCheckout:
		return transition{apply: func(s *Storefront) {
			s.checkoutOpen = true
		}}, nil

	case domain.CmdConfirmCheckout:
		return transition{
			apply: func(s *Storefront) {
				s.ledger.Clear()
				s.checkoutOpen = false
				s.cartOpen = false
				s.notice = CheckoutNotice
			},
			persist: true,
			event: &domain.Event{
				Type:          domain.EventCheckoutConfirmed,
				TotalQuantity: s.ledger.TotalQuantity(),
				Subtotal:      s.ledger.Subtotal(s.catalog),
				OccurredAt:    s.now(),
			},
		}, nil

	case domain.CmdCancelCheckout:
		return transition{apply: func(s *Storefront) {
			s.checkoutOpen = false
		}}, nil

	case domain.CmdEscape:
		return transition{apply: func(s *Storefront) {
			s.checkoutOpen = false
			s.cartOpen = false
		}}, nil

	default:
		return transition{}, fmt.Errorf("%q: %w", cmd.Type, ErrUnknownCommand)
	}
}

// cartTransition mutates the ledger, persists it and reports the change of
// the affected entry.
func (s *Storefront) cartTransition(
	id string, mutate func(*cart.Ledger), after func(*Storefront),
) transition {
	ev := &domain.Event{
		Type:      domain.EventCartChanged,
		ProductID: id,
	}
	return transition{
		apply: func(s *Storefront) {
			mutate(s.ledger)
			if after != nil {
				after(s)
			}
			ev.Quantity = s.ledger.Quantity(id)
			ev.TotalQuantity = s.ledger.TotalQuantity()
			ev.Subtotal = s.ledger.Subtotal(s.catalog)
			ev.OccurredAt = s.now()
		},
		persist: true,
		event:   ev,
	}
}

func (s *Storefront) save(ctx context.Context) {
	const op = "Storefront.save"

	if err := s.store.Save(ctx, s.ledger); err != nil {
		slog.With("op", op).Error("failed to persist cart", "err", err)
	}
}

func (s *Storefront) render(ctx context.Context, v domain.View) {
	const op = "Storefront.render"

	if err := s.renderer.Render(ctx, v); err != nil {
		slog.With("op", op).Error("failed to render", "err", err)
	}
}

func (s *Storefront) publish(ctx context.Context, ev domain.Event) {
	const op = "Storefront.publish"

	if err := s.publisher.Publish(ctx, ev); err != nil {
		slog.With("op", op).Warn(
			"failed to publish event", "type", ev.Type, "err", err,
		)
	}
}

func (s *Storefront) view() domain.View {
	products := filter.Apply(s.catalog.Products(), s.criteria)
	subtotal := s.ledger.Subtotal(s.catalog)
	lines := s.ledger.Lines(s.catalog)

	return domain.View{
		Products:   products,
		NoMatches:  len(products) == 0,
		Categories: s.catalog.Categories(),
		Criteria:   s.criteria,
		Cart: domain.CartView{
			Lines:         lines,
			TotalQuantity: s.ledger.TotalQuantity(),
			Subtotal:      subtotal,
			SubtotalLabel: domain.FormatPrice(s.currency, subtotal),
			Empty:         s.ledger.Len() == 0,
		},
		CartOpen:     s.cartOpen,
		CheckoutOpen: s.checkoutOpen,
		Notice:       s.notice,
	}
}

type noopPublisher struct{}

func (noopPublisher) Publish(context.Context, domain.Event) error {
	return nil
}
