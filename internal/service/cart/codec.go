package cart

import (
	"encoding/json"
	"fmt"

	"storefront/internal/domain"
)

// encodeCart serializes the cart as a JSON array of line items.
func encodeCart(c domain.Cart) ([]byte, error) {
	if c == nil {
		c = domain.Cart{}
	}
	return json.Marshal(c)
}

// decodeCart parses a persisted cart and folds it through addLine, so lines
// with quantity < 1 are dropped and repeated ids merge into the first one.
// Lines with a negative price are dropped.
func decodeCart(data []byte) (domain.Cart, error) {
	var lines []domain.CartLineItem
	if err := json.Unmarshal(data, &lines); err != nil {
		return nil, fmt.Errorf("decode cart: %w", err)
	}
	c := domain.Cart{}
	for _, line := range lines {
		if line.Price.IsNegative() {
			continue
		}
		c, _ = addLine(c, line.Product, line.Quantity)
	}
	return c, nil
}
