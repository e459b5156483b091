package schema

import "github.com/hamba/avro/v2"

const CartSnapshotSchemaTextV1 = `{
	"type": "record",
	"namespace": "storefront",
	"name": "cart_snapshot",
	"fields" : [
		{"name": "cart", "type": {
			"type": "array",
			"items": {
				"type": "record",
				"name": "cart_entry",
				"fields": [
					{"name": "product_id", "type": "string"},
					{"name": "quantity", "type": "long"}
				]
			}
		}}
	]
}`

type (
	CartSnapshotV1 struct {
		Cart []CartEntryV1 `avro:"cart"`
	}

	CartEntryV1 struct {
		ProductID string `avro:"product_id"`
		Quantity  int64  `avro:"quantity"`
	}
)

func CartSnapshotV1Avro() avro.Schema {
	return avro.MustParse(CartSnapshotSchemaTextV1)
}
