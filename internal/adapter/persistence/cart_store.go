package persistence

import (
	"context"
	"errors"
	"fmt"
	"log/slog"

	"github.com/niksmo/storefront/internal/core/cart"
	"github.com/niksmo/storefront/internal/core/domain"
	"github.com/niksmo/storefront/internal/core/port"
)

const (
	// SchemaVersion is embedded in the storage key. Bumping it leaves old
	// snapshots unread.
	SchemaVersion = "v1"
	SnapshotKey   = "storefront_cart_" + SchemaVersion
)

var _ port.CartStore = (*CartStore)(nil)

type CartStore struct {
	kv    port.KVStore
	codec Codec
}

func NewCartStore(kv port.KVStore, codec Codec) CartStore {
	if codec == nil {
		codec = JSONCodec{}
	}
	return CartStore{kv, codec}
}

// Load restores the ledger saved under SnapshotKey. Any failure is logged
// and yields an empty ledger.
func (s CartStore) Load(ctx context.Context) *cart.Ledger {
	const op = "CartStore.Load"
	log := slog.With("op", op, "key", SnapshotKey)

	data, err := s.kv.Get(ctx, SnapshotKey)
	if err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			log.Debug("no saved cart")
			return cart.New()
		}
		log.Warn("failed to read saved cart", "err", err)
		return cart.New()
	}

	es, err := s.codec.Decode(data)
	if err != nil {
		log.Warn("failed to decode saved cart", "err", err)
		return cart.New()
	}

	l := cart.FromEntries(es)
	log.Debug("cart restored", "entries", l.Len())
	return l
}

// Save writes the ledger under SnapshotKey. The caller keeps its in-memory
// ledger whatever the outcome.
func (s CartStore) Save(ctx context.Context, l *cart.Ledger) error {
	const op = "CartStore.Save"

	data, err := s.codec.Encode(l.Entries())
	if err != nil {
		return fmt.Errorf("%s: %w", op, err)
	}

	if err := s.kv.Set(ctx, SnapshotKey, data); err != nil {
		return fmt.Errorf("%s: %w", op, err)
	}
	return nil
}
