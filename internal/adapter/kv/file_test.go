package kv_test

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/niksmo/storefront/internal/adapter/kv"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestFile(t *testing.T) {
	s, err := kv.NewFile(t.TempDir())
	require.NoError(t, err)
	testKVStore(t, s)

	t.Run("CreatesDir", func(t *testing.T) {
		dir := filepath.Join(t.TempDir(), "nested", "state")
		_, err := kv.NewFile(dir)
		require.NoError(t, err)
		assert.DirExists(t, dir)
	})

	t.Run("SurvivesReopen", func(t *testing.T) {
		dir := t.TempDir()
		s1, err := kv.NewFile(dir)
		require.NoError(t, err)
		require.NoError(t, s1.Set(t.Context(), "storefront_cart_v1", []byte("saved")))

		s2, err := kv.NewFile(dir)
		require.NoError(t, err)
		v, err := s2.Get(t.Context(), "storefront_cart_v1")
		require.NoError(t, err)
		assert.Equal(t, []byte("saved"), v)
	})

	t.Run("InvalidKey", func(t *testing.T) {
		s, err := kv.NewFile(t.TempDir())
		require.NoError(t, err)

		err = s.Set(t.Context(), "../escape", []byte("x"))
		assert.ErrorIs(t, err, kv.ErrInvalidKey)
		_, err = s.Get(t.Context(), "a/b")
		assert.ErrorIs(t, err, kv.ErrInvalidKey)
	})

	t.Run("Quota", func(t *testing.T) {
		dir := t.TempDir()
		s, err := kv.NewFile(dir, kv.WithQuota(10))
		require.NoError(t, err)

		require.NoError(t, s.Set(t.Context(), "a", []byte("123456")))

		err = s.Set(t.Context(), "b", []byte("12345"))
		require.ErrorIs(t, err, kv.ErrQuotaExceeded)
		assert.NoFileExists(t, filepath.Join(dir, "b"))

		require.NoError(t, s.Set(t.Context(), "a", []byte("1234567890")),
			"replacing a slot only counts its new size")

		v, err := s.Get(t.Context(), "a")
		require.NoError(t, err)
		assert.Equal(t, []byte("1234567890"), v)
	})

	t.Run("QuotaKeepsOldValue", func(t *testing.T) {
		s, err := kv.NewFile(t.TempDir(), kv.WithQuota(4))
		require.NoError(t, err)
		require.NoError(t, s.Set(t.Context(), "a", []byte("old")))

		err = s.Set(t.Context(), "a", []byte("too long"))
		require.ErrorIs(t, err, kv.ErrQuotaExceeded)

		v, err := s.Get(t.Context(), "a")
		require.NoError(t, err)
		assert.Equal(t, []byte("old"), v)
	})

	t.Run("NoQuota", func(t *testing.T) {
		s, err := kv.NewFile(t.TempDir(), kv.WithQuota(0))
		require.NoError(t, err)
		require.NoError(t, s.Set(t.Context(), "a", make([]byte, kv.DefaultFileQuota+1)))
	})

	t.Run("ReadError", func(t *testing.T) {
		dir := t.TempDir()
		s, err := kv.NewFile(dir)
		require.NoError(t, err)
		require.NoError(t, os.Mkdir(filepath.Join(dir, "slot"), 0o755))

		_, err = s.Get(t.Context(), "slot")
		require.Error(t, err)
		assert.NotErrorIs(t, err, kv.ErrQuotaExceeded)
	})
}
