package domain

import (
	"strings"

	"github.com/shopspring/decimal"
)

type ShippingOption struct {
	Key   string          `json:"key"`
	Label string          `json:"label"`
	Price decimal.Decimal `json:"price"`
}

// ShippingOptions lists the choices offered on the cart page, cheapest first.
var ShippingOptions = []ShippingOption{
	{Key: "free", Label: "Free shipping", Price: decimal.Zero},
	{Key: "express", Label: "Express shipping", Price: decimal.NewFromInt(15)},
	{Key: "pickup", Label: "Pick Up", Price: decimal.NewFromInt(21)},
}

// LookupShipping resolves a shipping key; an empty key means free shipping.
func LookupShipping(key string) (ShippingOption, error) {
	key = strings.ToLower(strings.TrimSpace(key))
	if key == "" {
		return ShippingOptions[0], nil
	}
	for _, opt := range ShippingOptions {
		if opt.Key == key {
			return opt, nil
		}
	}
	return ShippingOption{}, ErrUnknownShipping
}
