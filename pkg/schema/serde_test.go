package schema_test

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/niksmo/storefront/pkg/schema"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

type MockSchemaIdentifier struct {
	mock.Mock
}

func (c *MockSchemaIdentifier) DetermineID(
	ctx context.Context, subject string, avroSchemaText string,
) (id int, err error) {
	args := c.Called(ctx, subject, avroSchemaText)
	return args.Int(0), args.Error(1)
}

func TestSerdeCartSnapshotV1(t *testing.T) {

	t.Run("NoOpts", func(t *testing.T) {
		_, err := schema.NewSerdeCartSnapshotV1(t.Context())
		require.Error(t, err)
		assert.ErrorIs(t, err, schema.ErrTooFewOpts)
	})

	t.Run("OneOpt", func(t *testing.T) {
		_, err := schema.NewSerdeCartSnapshotV1(
			t.Context(),
			schema.SchemaIdentifierOpt(new(MockSchemaIdentifier)),
		)
		require.Error(t, err)
		assert.ErrorIs(t, err, schema.ErrTooFewOpts)
	})

	t.Run("IdentifierFails", func(t *testing.T) {
		schemaIdentifier := new(MockSchemaIdentifier)
		subject := "storefront_cart-value"
		identErr := errors.New("registry unavailable")

		schemaIdentifier.On(
			"DetermineID", t.Context(), subject, schema.CartSnapshotSchemaTextV1,
		).Return(0, identErr)

		_, err := schema.NewSerdeCartSnapshotV1(
			t.Context(),
			schema.SubjectOpt(subject),
			schema.SchemaIdentifierOpt(schemaIdentifier),
		)
		require.ErrorIs(t, err, identErr)
		schemaIdentifier.AssertExpectations(t)
	})

	t.Run("EncodeDecode", func(t *testing.T) {
		schemaIdentifier := new(MockSchemaIdentifier)
		subject := "storefront_cart-value"

		schemaIdentifier.On(
			"DetermineID", t.Context(), subject, schema.CartSnapshotSchemaTextV1,
		).Return(7, nil)

		serde, err := schema.NewSerdeCartSnapshotV1(
			t.Context(),
			schema.SubjectOpt(subject),
			schema.SchemaIdentifierOpt(schemaIdentifier),
		)
		require.NoError(t, err)

		snapshot1 := schema.CartSnapshotV1{
			Cart: []schema.CartEntryV1{
				{ProductID: "p7", Quantity: 1},
				{ProductID: "p1", Quantity: 3},
			},
		}

		data, err := serde.Encode(snapshot1)
		require.NoError(t, err)
		require.Greater(t, len(data), 5)
		assert.Equal(t, byte(0), data[0], "magic byte")

		var snapshot2 schema.CartSnapshotV1
		err = serde.Decode(data, &snapshot2)
		require.NoError(t, err)
		assert.Equal(t, snapshot1, snapshot2)
	})

	t.Run("DecodeGarbage", func(t *testing.T) {
		serde, err := schema.NewSerdeCartSnapshotV1(
			t.Context(),
			schema.SubjectOpt("storefront_cart-value"),
			schema.SchemaIdentifierOpt(schema.StaticIdentifier(1)),
		)
		require.NoError(t, err)

		var v schema.CartSnapshotV1
		err = serde.Decode([]byte(`{"cart":{}}`), &v)
		assert.Error(t, err)
	})
}

func TestSerdeStorefrontEventV1(t *testing.T) {
	serde, err := schema.NewSerdeStorefrontEventV1(
		t.Context(),
		schema.SubjectOpt("storefront-events-value"),
		schema.SchemaIdentifierOpt(schema.StaticIdentifier(2)),
	)
	require.NoError(t, err)

	evt1 := schema.StorefrontEventV1{
		Type:          "cart_changed",
		ProductID:     "p2",
		Quantity:      2,
		TotalQuantity: 2,
		Subtotal:      100,
		OccurredAt:    time.UnixMilli(1700000000000).UTC(),
	}

	data, err := serde.Encode(evt1)
	require.NoError(t, err)

	var evt2 schema.StorefrontEventV1
	require.NoError(t, serde.Decode(data, &evt2))
	assert.Equal(t, evt1.Type, evt2.Type)
	assert.Equal(t, evt1.ProductID, evt2.ProductID)
	assert.Equal(t, evt1.Quantity, evt2.Quantity)
	assert.Equal(t, evt1.Subtotal, evt2.Subtotal)
	assert.True(t, evt1.OccurredAt.Equal(evt2.OccurredAt))
}
