package trade

import (
	"strings"

	"github.com/fintrak/backend/internal/domain/shared"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// PoolSize is the number of order tickets on the counter
const PoolSize = 10

// ComandaItem is one line on an order ticket
type ComandaItem struct {
	ID       string
	Name     string
	Price    decimal.Decimal
	Quantity int
}

// Identity implements shared.Identified
func (i ComandaItem) Identity() string { return i.ID }

// Subtotal is price times quantity
func (i ComandaItem) Subtotal() decimal.Decimal {
	return i.Price.Mul(decimal.NewFromInt(int64(i.Quantity)))
}

// Comanda is a reusable order ticket identified by its number
type Comanda struct {
	ID         int
	ClientName string
	Items      []ComandaItem
}

// NewPool returns tickets 1..PoolSize, all empty
func NewPool() []Comanda {
	pool := make([]Comanda, PoolSize)
	for i := range pool {
		pool[i] = Comanda{ID: i + 1, Items: []ComandaItem{}}
	}
	return pool
}

// Total sums every line of the ticket
func (c Comanda) Total() decimal.Decimal {
	total := decimal.Zero
	for _, item := range c.Items {
		total = total.Add(item.Subtotal())
	}
	return total
}

// IsOpen reports whether the ticket has a client or any items
func (c Comanda) IsOpen() bool {
	return c.ClientName != "" || len(c.Items) > 0
}

// ItemCount sums quantities across lines
func (c Comanda) ItemCount() int {
	n := 0
	for _, item := range c.Items {
		n += item.Quantity
	}
	return n
}

func (c Comanda) clone() Comanda {
	c.Items = append([]ComandaItem{}, c.Items...)
	return c
}

// WithClient returns a copy with the client name set
func (c Comanda) WithClient(name string) Comanda {
	c = c.clone()
	c.ClientName = strings.TrimSpace(name)
	return c
}

// AddItem returns a copy with one more unit of name. A line whose name matches
// case-insensitively is incremented; otherwise a new line is appended.
func (c Comanda) AddItem(name string, price decimal.Decimal) (Comanda, error) {
	name = strings.TrimSpace(name)
	if name == "" {
		return c, shared.InvalidInput("item name is required")
	}
	c = c.clone()
	for i := range c.Items {
		if strings.EqualFold(c.Items[i].Name, name) {
			c.Items[i].Quantity++
			return c, nil
		}
	}
	c.Items = append(c.Items, ComandaItem{
		ID:       uuid.NewString(),
		Name:     name,
		Price:    price,
		Quantity: 1,
	})
	return c, nil
}

// ModifyQuantity returns a copy with delta applied to the item. Quantities
// floor at zero and lines that reach zero are dropped.
func (c Comanda) ModifyQuantity(itemID string, delta int) (Comanda, error) {
	i := shared.IndexOf(c.Items, itemID)
	if i < 0 {
		return c, shared.NotFound("item not found")
	}
	c = c.clone()
	c.Items[i].Quantity = max(0, c.Items[i].Quantity+delta)
	kept := c.Items[:0]
	for _, item := range c.Items {
		if item.Quantity > 0 {
			kept = append(kept, item)
		}
	}
	c.Items = kept
	return c, nil
}

// Cleared returns an empty ticket with the same number
func (c Comanda) Cleared() Comanda {
	return Comanda{ID: c.ID, Items: []ComandaItem{}}
}

// FindComanda returns the index of ticket id in pool
func FindComanda(pool []Comanda, id int) (int, error) {
	for i, c := range pool {
		if c.ID == id {
			return i, nil
		}
	}
	return -1, shared.NotFound("comanda not found")
}
