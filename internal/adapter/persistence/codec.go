package persistence

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"strconv"

	"github.com/niksmo/storefront/internal/core/cart"
	"github.com/niksmo/storefront/pkg/schema"
)

var ErrMalformedSnapshot = errors.New("malformed snapshot")

// Codec converts ledger entries to and from the stored snapshot bytes.
type Codec interface {
	Encode([]cart.Entry) ([]byte, error)
	Decode([]byte) ([]cart.Entry, error)
}

// JSONCodec stores {"cart": {"<id>": <qty>, ...}} keeping ledger order.
type JSONCodec struct{}

func (JSONCodec) Encode(es []cart.Entry) ([]byte, error) {
	const op = "JSONCodec.Encode"

	var buf bytes.Buffer
	buf.WriteString(`{"cart":{`)
	for i, e := range es {
		if i != 0 {
			buf.WriteByte(',')
		}
		k, err := json.Marshal(e.ProductID)
		if err != nil {
			return nil, fmt.Errorf("%s: %w", op, err)
		}
		buf.Write(k)
		buf.WriteByte(':')
		buf.WriteString(strconv.Itoa(e.Quantity))
	}
	buf.WriteString(`}}`)
	return buf.Bytes(), nil
}

func (JSONCodec) Decode(data []byte) ([]cart.Entry, error) {
	const op = "JSONCodec.Decode"

	var snapshot struct {
		Cart json.RawMessage `json:"cart"`
	}
	if err := json.Unmarshal(data, &snapshot); err != nil {
		return nil, fmt.Errorf("%s: %w: %w", op, ErrMalformedSnapshot, err)
	}
	if len(snapshot.Cart) == 0 || string(snapshot.Cart) == "null" {
		return nil, nil
	}

	es, err := decodeOrderedCart(snapshot.Cart)
	if err != nil {
		return nil, fmt.Errorf("%s: %w: %w", op, ErrMalformedSnapshot, err)
	}
	return es, nil
}

// decodeOrderedCart walks the cart object token by token so the entry
// order written by Encode is kept.
func decodeOrderedCart(data []byte) ([]cart.Entry, error) {
	dec := json.NewDecoder(bytes.NewReader(data))
	dec.UseNumber()

	tok, err := dec.Token()
	if err != nil {
		return nil, err
	}
	if d, ok := tok.(json.Delim); !ok || d != '{' {
		return nil, fmt.Errorf("cart is not an object")
	}

	var es []cart.Entry
	for dec.More() {
		tok, err := dec.Token()
		if err != nil {
			return nil, err
		}
		id, ok := tok.(string)
		if !ok {
			return nil, fmt.Errorf("unexpected key %v", tok)
		}

		var n json.Number
		if err := dec.Decode(&n); err != nil {
			return nil, fmt.Errorf("quantity of %q: %w", id, err)
		}
		q, err := n.Int64()
		if err != nil {
			return nil, fmt.Errorf("quantity of %q: %w", id, err)
		}
		es = append(es, cart.Entry{ProductID: id, Quantity: int(q)})
	}

	if _, err := dec.Token(); err != nil {
		return nil, err
	}
	return es, nil
}

// AvroCodec stores the snapshot as registry-framed Avro.
type AvroCodec struct {
	serde schema.Serde
}

func NewAvroCodec(serde schema.Serde) AvroCodec {
	return AvroCodec{serde}
}

func (c AvroCodec) Encode(es []cart.Entry) ([]byte, error) {
	const op = "AvroCodec.Encode"

	v := schema.CartSnapshotV1{Cart: make([]schema.CartEntryV1, len(es))}
	for i, e := range es {
		v.Cart[i] = schema.CartEntryV1{
			ProductID: e.ProductID,
			Quantity:  int64(e.Quantity),
		}
	}

	data, err := c.serde.Encode(v)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	return data, nil
}

func (c AvroCodec) Decode(data []byte) ([]cart.Entry, error) {
	const op = "AvroCodec.Decode"

	var v schema.CartSnapshotV1
	if err := c.serde.Decode(data, &v); err != nil {
		return nil, fmt.Errorf("%s: %w: %w", op, ErrMalformedSnapshot, err)
	}

	es := make([]cart.Entry, len(v.Cart))
	for i, e := range v.Cart {
		es[i] = cart.Entry{ProductID: e.ProductID, Quantity: int(e.Quantity)}
	}
	return es, nil
}
