package kv_test

import (
	"os"
	"testing"

	"github.com/niksmo/storefront/internal/adapter/kv"
	"github.com/stretchr/testify/require"
)

// Runs against a database migrated with cmd/migrator.
func TestPostgres(t *testing.T) {
	dsn := os.Getenv("STOREFRONT_TEST_POSTGRES_DSN")
	if dsn == "" {
		t.Skip("STOREFRONT_TEST_POSTGRES_DSN is not set")
	}

	s, err := kv.OpenPostgres(t.Context(), dsn)
	require.NoError(t, err)
	defer s.Close()

	testKVStore(t, s)
}
