package cart

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"strconv"

	"boutique/catalog/internal/domain"
	"boutique/catalog/internal/storage"

	log "github.com/sirupsen/logrus"
)

// LineItem is a resolved cart entry ready for display or messaging.
type LineItem struct {
	Product domain.Product
	Qty     int
}

// Cart maps product ids to positive quantities, in insertion order.
// Every mutation persists the mapping; persistence failures are
// swallowed and the in-memory cart stays authoritative for the session.
type Cart struct {
	store  storage.Store
	key    string
	lookup *domain.Lookup

	qty   map[string]int
	order []string
}

// New restores the cart saved under key, or starts empty when nothing
// usable is stored.
func New(store storage.Store, key string, lookup *domain.Lookup) *Cart {
	c := &Cart{
		store:  store,
		key:    key,
		lookup: lookup,
		qty:    make(map[string]int),
	}
	c.load()
	return c
}

// ChangeQuantity adjusts the quantity of id by delta, clamped at zero.
// Zero removes the entry; decrementing an absent id does nothing.
func (c *Cart) ChangeQuantity(id string, delta int) {
	next := c.qty[id] + delta
	if next <= 0 {
		if _, ok := c.qty[id]; !ok {
			return
		}
		delete(c.qty, id)
		c.dropFromOrder(id)
		c.persist()
		return
	}
	if _, ok := c.qty[id]; !ok {
		c.order = append(c.order, id)
	}
	c.qty[id] = next
	c.persist()
}

// Remove deletes the entry for id, whatever its quantity.
func (c *Cart) Remove(id string) {
	if _, ok := c.qty[id]; !ok {
		return
	}
	delete(c.qty, id)
	c.dropFromOrder(id)
	c.persist()
}

// Clear empties the cart.
func (c *Cart) Clear() {
	c.qty = make(map[string]int)
	c.order = nil
	c.persist()
}

// Quantity returns the stored quantity for id, 0 when absent.
func (c *Cart) Quantity(id string) int {
	return c.qty[id]
}

// Len returns the number of distinct cart entries.
func (c *Cart) Len() int {
	return len(c.qty)
}

// TotalCount sums every stored quantity.
func (c *Cart) TotalCount() int {
	total := 0
	for _, q := range c.qty {
		total += q
	}
	return total
}

// LineItems resolves every entry against the lookup table, in insertion
// order. Unresolvable ids get a placeholder product so the cart is
// always renderable.
func (c *Cart) LineItems() []LineItem {
	items := make([]LineItem, 0, len(c.order))
	for _, id := range c.order {
		p, ok := c.lookup.Get(id)
		if !ok {
			p = domain.Placeholder(id)
		}
		items = append(items, LineItem{Product: p, Qty: c.qty[id]})
	}
	return items
}

// TotalPrice sums price*qty over line items with a known price.
// Inquire-priced items are excluded, not treated as zero.
func (c *Cart) TotalPrice() float64 {
	total := 0.0
	for _, it := range c.LineItems() {
		if it.Product.Price != nil {
			total += *it.Product.Price * float64(it.Qty)
		}
	}
	return total
}

// HasPriced reports whether at least one line item has a known price.
func (c *Cart) HasPriced() bool {
	for _, it := range c.LineItems() {
		if it.Product.Price != nil {
			return true
		}
	}
	return false
}

func (c *Cart) dropFromOrder(id string) {
	for i, v := range c.order {
		if v == id {
			c.order = append(c.order[:i], c.order[i+1:]...)
			return
		}
	}
}

func (c *Cart) load() {
	raw, err := c.store.Get(c.key)
	if err != nil {
		if !errors.Is(err, storage.ErrNotFound) {
			log.Debugf("Could not read saved cart, starting empty: %v", err)
		}
		return
	}

	order, qty, err := decodeOrdered(raw)
	if err != nil {
		log.Debugf("Saved cart is malformed, starting empty: %v", err)
		return
	}
	c.order = order
	c.qty = qty
}

func (c *Cart) persist() {
	if err := c.store.Set(c.key, c.encodeOrdered()); err != nil {
		log.Debugf("Could not persist cart, keeping it in memory: %v", err)
	}
}

// encodeOrdered writes the mapping as a JSON object whose keys appear
// in insertion order. json.Marshal on a map would sort them.
func (c *Cart) encodeOrdered() []byte {
	var buf bytes.Buffer
	buf.WriteByte('{')
	for i, id := range c.order {
		if i > 0 {
			buf.WriteByte(',')
		}
		k, _ := json.Marshal(id)
		buf.Write(k)
		buf.WriteByte(':')
		buf.WriteString(strconv.Itoa(c.qty[id]))
	}
	buf.WriteByte('}')
	return buf.Bytes()
}

// decodeOrdered walks the object token by token so key order survives
// the round trip. Entries that violate the qty >= 1 invariant are
// dropped.
func decodeOrdered(data []byte) ([]string, map[string]int, error) {
	dec := json.NewDecoder(bytes.NewReader(data))

	tok, err := dec.Token()
	if err != nil {
		return nil, nil, err
	}
	if d, ok := tok.(json.Delim); !ok || d != '{' {
		return nil, nil, fmt.Errorf("cart payload is not an object")
	}

	var order []string
	qty := make(map[string]int)
	for dec.More() {
		keyTok, err := dec.Token()
		if err != nil {
			return nil, nil, err
		}
		key, ok := keyTok.(string)
		if !ok {
			return nil, nil, fmt.Errorf("cart payload has a non-string key")
		}

		var n float64
		if err := dec.Decode(&n); err != nil {
			return nil, nil, fmt.Errorf("cart entry %s has a non-numeric quantity: %w", key, err)
		}
		if q := int(n); q >= 1 {
			if _, seen := qty[key]; !seen {
				order = append(order, key)
			}
			qty[key] = q
		}
	}
	return order, qty, nil
}
