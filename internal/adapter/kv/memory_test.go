package kv_test

import (
	"context"
	"testing"

	"github.com/niksmo/storefront/internal/adapter/kv"
	"github.com/niksmo/storefront/internal/core/domain"
	"github.com/niksmo/storefront/internal/core/port"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// testKVStore runs the behaviour every slot store shares.
func testKVStore(t *testing.T, s port.KVStore) {
	t.Helper()

	t.Run("Missing", func(t *testing.T) {
		_, err := s.Get(t.Context(), "absent")
		assert.ErrorIs(t, err, domain.ErrNotFound)
	})

	t.Run("SetGet", func(t *testing.T) {
		require.NoError(t, s.Set(t.Context(), "slot", []byte(`{"cart":{}}`)))
		v, err := s.Get(t.Context(), "slot")
		require.NoError(t, err)
		assert.Equal(t, []byte(`{"cart":{}}`), v)
	})

	t.Run("Overwrite", func(t *testing.T) {
		require.NoError(t, s.Set(t.Context(), "slot2", []byte("one")))
		require.NoError(t, s.Set(t.Context(), "slot2", []byte("two")))
		v, err := s.Get(t.Context(), "slot2")
		require.NoError(t, err)
		assert.Equal(t, []byte("two"), v)
	})

	t.Run("Binary", func(t *testing.T) {
		bin := []byte{0, 0, 0, 0, 1, 0xff, 0xfe, '\n'}
		require.NoError(t, s.Set(t.Context(), "bin", bin))
		v, err := s.Get(t.Context(), "bin")
		require.NoError(t, err)
		assert.Equal(t, bin, v)
	})
}

func TestMemory(t *testing.T) {
	testKVStore(t, kv.NewMemory())

	t.Run("IsolatedCopies", func(t *testing.T) {
		s := kv.NewMemory()
		v := []byte("abc")
		require.NoError(t, s.Set(t.Context(), "k", v))
		v[0] = 'x'

		got, err := s.Get(t.Context(), "k")
		require.NoError(t, err)
		assert.Equal(t, []byte("abc"), got)
	})

	t.Run("CanceledContext", func(t *testing.T) {
		ctx, cancel := context.WithCancel(t.Context())
		cancel()
		err := kv.NewMemory().Set(ctx, "k", nil)
		assert.ErrorIs(t, err, context.Canceled)
	})
}
