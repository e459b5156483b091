package persistence_test

import (
	"context"
	"errors"
	"fmt"
	"testing"

	"github.com/niksmo/storefront/internal/adapter/persistence"
	"github.com/niksmo/storefront/internal/core/cart"
	"github.com/niksmo/storefront/internal/core/domain"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

type MockKVStore struct {
	mock.Mock
}

func (s *MockKVStore) Get(ctx context.Context, key string) ([]byte, error) {
	args := s.Called(ctx, key)
	data, _ := args.Get(0).([]byte)
	return data, args.Error(1)
}

func (s *MockKVStore) Set(ctx context.Context, key string, value []byte) error {
	args := s.Called(ctx, key, value)
	return args.Error(0)
}

func TestSnapshotKey(t *testing.T) {
	assert.Equal(t, "storefront_cart_v1", persistence.SnapshotKey)
}

func TestCartStoreLoad(t *testing.T) {
	t.Run("Saved", func(t *testing.T) {
		kv := new(MockKVStore)
		kv.On("Get", t.Context(), persistence.SnapshotKey).
			Return([]byte(`{"cart":{"p2":3,"p1":1}}`), nil)

		l := persistence.NewCartStore(kv, nil).Load(t.Context())
		assert.Equal(t, []cart.Entry{
			{ProductID: "p2", Quantity: 3},
			{ProductID: "p1", Quantity: 1},
		}, l.Entries())
		kv.AssertExpectations(t)
	})

	t.Run("Absent", func(t *testing.T) {
		kv := new(MockKVStore)
		kv.On("Get", t.Context(), persistence.SnapshotKey).
			Return(nil, fmt.Errorf("get: %w", domain.ErrNotFound))

		l := persistence.NewCartStore(kv, nil).Load(t.Context())
		assert.Zero(t, l.Len())
	})

	t.Run("ReadFails", func(t *testing.T) {
		kv := new(MockKVStore)
		kv.On("Get", t.Context(), persistence.SnapshotKey).
			Return(nil, errors.New("disk on fire"))

		l := persistence.NewCartStore(kv, nil).Load(t.Context())
		assert.Zero(t, l.Len())
	})

	t.Run("Corrupt", func(t *testing.T) {
		kv := new(MockKVStore)
		kv.On("Get", t.Context(), persistence.SnapshotKey).
			Return([]byte(`{"cart":`), nil)

		l := persistence.NewCartStore(kv, nil).Load(t.Context())
		assert.Zero(t, l.Len())
	})

	t.Run("DropsNonPositive", func(t *testing.T) {
		kv := new(MockKVStore)
		kv.On("Get", t.Context(), persistence.SnapshotKey).
			Return([]byte(`{"cart":{"p1":0,"p2":-4,"p3":2}}`), nil)

		l := persistence.NewCartStore(kv, nil).Load(t.Context())
		assert.Equal(t, []cart.Entry{{ProductID: "p3", Quantity: 2}}, l.Entries())
	})

	t.Run("CodecMismatch", func(t *testing.T) {
		kv := new(MockKVStore)
		kv.On("Get", t.Context(), persistence.SnapshotKey).
			Return([]byte(`{"cart":{"p1":1}}`), nil)

		l := persistence.NewCartStore(kv, newAvroCodec(t)).Load(t.Context())
		assert.Zero(t, l.Len())
	})
}

func TestCartStoreSave(t *testing.T) {
	t.Run("Ok", func(t *testing.T) {
		l := cart.New()
		l.Add("p4", 2)
		l.Add("p1", 1)

		kv := new(MockKVStore)
		kv.On("Set", t.Context(), persistence.SnapshotKey,
			[]byte(`{"cart":{"p4":2,"p1":1}}`)).Return(nil)

		err := persistence.NewCartStore(kv, nil).Save(t.Context(), l)
		require.NoError(t, err)
		kv.AssertExpectations(t)
	})

	t.Run("EmptyLedger", func(t *testing.T) {
		kv := new(MockKVStore)
		kv.On("Set", t.Context(), persistence.SnapshotKey,
			[]byte(`{"cart":{}}`)).Return(nil)

		err := persistence.NewCartStore(kv, nil).Save(t.Context(), cart.New())
		require.NoError(t, err)
		kv.AssertExpectations(t)
	})

	t.Run("WriteFails", func(t *testing.T) {
		setErr := errors.New("quota")
		kv := new(MockKVStore)
		kv.On("Set", t.Context(), persistence.SnapshotKey, mock.Anything).
			Return(setErr)

		l := cart.New()
		l.Add("p1", 1)
		err := persistence.NewCartStore(kv, nil).Save(t.Context(), l)
		require.ErrorIs(t, err, setErr)
		assert.Equal(t, 1, l.Quantity("p1"))
	})

	t.Run("AvroRoundTrip", func(t *testing.T) {
		var stored []byte
		kv := new(MockKVStore)
		kv.On("Set", t.Context(), persistence.SnapshotKey, mock.Anything).
			Run(func(args mock.Arguments) {
				stored = args.Get(2).([]byte)
			}).Return(nil)

		store := persistence.NewCartStore(kv, newAvroCodec(t))
		l := cart.New()
		l.Add("p7", 2)
		l.Add("p3", 5)
		require.NoError(t, store.Save(t.Context(), l))

		kv.On("Get", t.Context(), persistence.SnapshotKey).Return(stored, nil)
		got := store.Load(t.Context())
		assert.Equal(t, l.Entries(), got.Entries())
	})
}
