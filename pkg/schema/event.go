package schema

import (
	"time"

	"github.com/hamba/avro/v2"
)

const StorefrontEventSchemaTextV1 = `{
	"type": "record",
	"namespace": "storefront",
	"name": "storefront_event",
	"fields" : [
		{"name": "type", "type": "string"},
		{"name": "product_id", "type": "string"},
		{"name": "quantity", "type": "long"},
		{"name": "search", "type": "string"},
		{"name": "category", "type": "string"},
		{"name": "total_quantity", "type": "long"},
		{"name": "subtotal", "type": "double"},
		{"name": "occurred_at", "type": {"type": "long", "logicalType": "timestamp-millis"}}
	]
}`

type StorefrontEventV1 struct {
	Type          string    `avro:"type"`
	ProductID     string    `avro:"product_id"`
	Quantity      int64     `avro:"quantity"`
	Search        string    `avro:"search"`
	Category      string    `avro:"category"`
	TotalQuantity int64     `avro:"total_quantity"`
	Subtotal      float64   `avro:"subtotal"`
	OccurredAt    time.Time `avro:"occurred_at"`
}

func StorefrontEventV1Avro() avro.Schema {
	return avro.MustParse(StorefrontEventSchemaTextV1)
}
