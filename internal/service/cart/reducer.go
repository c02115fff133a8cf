package cart

import (
	"math"

	"storefront/internal/domain"
)

// Outcome describes what a mutation did to the cart.
type Outcome int

const (
	Unchanged Outcome = iota
	Added
	Updated
	Removed
	// Rejected means the merged quantity would not fit in an int.
	Rejected
)

func (o Outcome) String() string {
	switch o {
	case Added:
		return "added"
	case Updated:
		return "updated"
	case Removed:
		return "removed"
	case Rejected:
		return "rejected"
	default:
		return "unchanged"
	}
}

// The reducers below never modify their input cart; a changed cart is always
// a fresh slice.

// addLine appends p or, when p.ID is already present, increases that line's
// quantity in place. The existing line keeps its product snapshot. A merge
// past math.MaxInt is Rejected and leaves c as is.
func addLine(c domain.Cart, p domain.Product, qty int) (domain.Cart, Outcome) {
	if qty < 1 {
		return c, Unchanged
	}
	if idx := c.Find(p.ID); idx >= 0 {
		if qty > math.MaxInt-c[idx].Quantity {
			return c, Rejected
		}
		out := c.Clone()
		out[idx].Quantity += qty
		return out, Updated
	}
	out := make(domain.Cart, len(c), len(c)+1)
	copy(out, c)
	return append(out, domain.CartLineItem{Product: p, Quantity: qty}), Added
}

// setQuantity replaces the quantity of an existing line; qty <= 0 removes it.
// Unknown ids leave the cart as is.
func setQuantity(c domain.Cart, id, qty int) (domain.Cart, Outcome) {
	if qty <= 0 {
		return removeLine(c, id)
	}
	idx := c.Find(id)
	if idx < 0 || c[idx].Quantity == qty {
		return c, Unchanged
	}
	out := c.Clone()
	out[idx].Quantity = qty
	return out, Updated
}

func removeLine(c domain.Cart, id int) (domain.Cart, Outcome) {
	idx := c.Find(id)
	if idx < 0 {
		return c, Unchanged
	}
	out := make(domain.Cart, 0, len(c)-1)
	out = append(out, c[:idx]...)
	out = append(out, c[idx+1:]...)
	return out, Removed
}
