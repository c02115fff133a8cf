package domain

import "github.com/shopspring/decimal"

// CartLineItem is a product snapshot plus the quantity held in the cart.
type CartLineItem struct {
	Product
	Quantity int `json:"quantity"`
}

// Subtotal is price × quantity for the line.
func (l CartLineItem) Subtotal() decimal.Decimal {
	return l.Price.Mul(decimal.NewFromInt(int64(l.Quantity)))
}

// Cart is ordered by first add. Product ids are unique and every quantity is >= 1.
type Cart []CartLineItem

// Total sums price × quantity over every line.
func (c Cart) Total() decimal.Decimal {
	total := decimal.Zero
	for _, line := range c {
		total = total.Add(line.Subtotal())
	}
	return total
}

// TotalQuantity sums the quantities of every line.
func (c Cart) TotalQuantity() int {
	n := 0
	for _, line := range c {
		n += line.Quantity
	}
	return n
}

// Find returns the index of the line for id, or -1.
func (c Cart) Find(id int) int {
	for i, line := range c {
		if line.ID == id {
			return i
		}
	}
	return -1
}

// Clone returns a copy that shares no backing array with c.
func (c Cart) Clone() Cart {
	out := make(Cart, len(c))
	copy(out, c)
	return out
}
