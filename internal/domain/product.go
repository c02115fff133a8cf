package domain

import "github.com/shopspring/decimal"

func init() {
	// Catalog and persisted carts carry prices as JSON numbers.
	decimal.MarshalJSONWithoutQuotes = true
}

// Product is a catalog record. It is read-only on this side of the API.
type Product struct {
	ID          int             `json:"id"`
	Title       string          `json:"title"`
	Price       decimal.Decimal `json:"price"`
	Description string          `json:"description,omitempty"`
	Category    string          `json:"category"`
	Image       string          `json:"image"`
	Rating      Rating          `json:"rating"`
}

type Rating struct {
	Rate  decimal.Decimal `json:"rate"`
	Count int             `json:"count"`
}
