package models

import (
	"errors"

	"github.com/shopspring/decimal"
)

var ErrItemNotInCart = errors.New("item not found in cart")

// CartItem is a single line in the user's cart. Price is the unit price
// captured when the item was first added.
type CartItem struct {
	GrainID  string  `json:"grainId" bson:"grainId"`
	Quantity int     `json:"quantity" bson:"quantity"`
	Price    float64 `json:"price" bson:"price"`
}

// Cart is embedded in the user document. TotalQuantity and TotalAmount are
// always recomputed from Items after a mutation, never patched in place.
type Cart struct {
	Items         []CartItem `json:"items" bson:"items"`
	TotalQuantity int        `json:"totalQuantity" bson:"totalQuantity"`
	TotalAmount   float64    `json:"totalAmount" bson:"totalAmount"`
}

// Add merges into an existing line for the same grain, or appends a new one.
func (c *Cart) Add(grainID string, quantity int, price float64) {
	for i := range c.Items {
		if c.Items[i].GrainID == grainID {
			c.Items[i].Quantity += quantity
			c.recompute()
			return
		}
	}
	c.Items = append(c.Items, CartItem{GrainID: grainID, Quantity: quantity, Price: price})
	c.recompute()
}

// SetQuantity replaces the quantity of an existing line. A quantity of zero
// or less removes the line.
func (c *Cart) SetQuantity(grainID string, quantity int) error {
	for i := range c.Items {
		if c.Items[i].GrainID == grainID {
			if quantity <= 0 {
				c.Items = append(c.Items[:i], c.Items[i+1:]...)
			} else {
				c.Items[i].Quantity = quantity
			}
			c.recompute()
			return nil
		}
	}
	return ErrItemNotInCart
}

// Remove deletes the line for grainID.
func (c *Cart) Remove(grainID string) error {
	for i := range c.Items {
		if c.Items[i].GrainID == grainID {
			c.Items = append(c.Items[:i], c.Items[i+1:]...)
			c.recompute()
			return nil
		}
	}
	return ErrItemNotInCart
}

// Clear resets the cart to its empty state.
func (c *Cart) Clear() {
	c.Items = []CartItem{}
	c.TotalQuantity = 0
	c.TotalAmount = 0
}

// Snapshot returns a copy of the item list detached from the live cart.
func (c *Cart) Snapshot() []CartItem {
	items := make([]CartItem, len(c.Items))
	copy(items, c.Items)
	return items
}

// recompute folds over the whole item list. The amount sum runs through
// decimal so a long mutation sequence cannot accumulate float error.
func (c *Cart) recompute() {
	qty := 0
	amount := decimal.Zero
	for _, item := range c.Items {
		qty += item.Quantity
		line := decimal.NewFromFloat(item.Price).Mul(decimal.NewFromInt(int64(item.Quantity)))
		amount = amount.Add(line)
	}
	c.TotalQuantity = qty
	c.TotalAmount, _ = amount.Float64()
}
