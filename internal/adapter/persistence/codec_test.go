package persistence_test

import (
	"testing"

	"github.com/niksmo/storefront/internal/adapter/persistence"
	"github.com/niksmo/storefront/internal/core/cart"
	"github.com/niksmo/storefront/pkg/schema"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newAvroCodec(t *testing.T) persistence.AvroCodec {
	t.Helper()
	serde, err := schema.NewSerdeCartSnapshotV1(
		t.Context(),
		schema.SubjectOpt(persistence.SnapshotKey),
		schema.SchemaIdentifierOpt(schema.StaticIdentifier(1)),
	)
	require.NoError(t, err)
	return persistence.NewAvroCodec(serde)
}

func TestJSONCodec(t *testing.T) {
	codec := persistence.JSONCodec{}

	t.Run("Encode", func(t *testing.T) {
		data, err := codec.Encode([]cart.Entry{
			{ProductID: "p3", Quantity: 2},
			{ProductID: "p1", Quantity: 1},
		})
		require.NoError(t, err)
		assert.JSONEq(t, `{"cart":{"p3":2,"p1":1}}`, string(data))
	})

	t.Run("EncodeEmpty", func(t *testing.T) {
		data, err := codec.Encode(nil)
		require.NoError(t, err)
		assert.Equal(t, `{"cart":{}}`, string(data))
	})

	t.Run("RoundTripKeepsOrder", func(t *testing.T) {
		es := []cart.Entry{
			{ProductID: "p9", Quantity: 4},
			{ProductID: "p2", Quantity: 1},
			{ProductID: "p10", Quantity: 3},
		}
		data, err := codec.Encode(es)
		require.NoError(t, err)

		got, err := codec.Decode(data)
		require.NoError(t, err)
		assert.Equal(t, es, got)
	})

	t.Run("DecodeMissingCart", func(t *testing.T) {
		got, err := codec.Decode([]byte(`{}`))
		require.NoError(t, err)
		assert.Empty(t, got)
	})

	t.Run("DecodeNullCart", func(t *testing.T) {
		got, err := codec.Decode([]byte(`{"cart":null}`))
		require.NoError(t, err)
		assert.Empty(t, got)
	})

	tests := []struct {
		name string
		data string
	}{
		{"NotJSON", `not json`},
		{"CartIsArray", `{"cart":[1,2]}`},
		{"QuantityIsString", `{"cart":{"p1":"two"}}`},
		{"QuantityIsFraction", `{"cart":{"p1":1.5}}`},
		{"Truncated", `{"cart":{"p1":1`},
	}
	for _, tt := range tests {
		t.Run("Malformed"+tt.name, func(t *testing.T) {
			_, err := codec.Decode([]byte(tt.data))
			assert.ErrorIs(t, err, persistence.ErrMalformedSnapshot)
		})
	}
}

func TestAvroCodec(t *testing.T) {
	codec := newAvroCodec(t)

	t.Run("RoundTripKeepsOrder", func(t *testing.T) {
		es := []cart.Entry{
			{ProductID: "p5", Quantity: 2},
			{ProductID: "p1", Quantity: 7},
		}
		data, err := codec.Encode(es)
		require.NoError(t, err)

		got, err := codec.Decode(data)
		require.NoError(t, err)
		assert.Equal(t, es, got)
	})

	t.Run("Garbage", func(t *testing.T) {
		_, err := codec.Decode([]byte(`{"cart":{}}`))
		assert.ErrorIs(t, err, persistence.ErrMalformedSnapshot)
	})
}
