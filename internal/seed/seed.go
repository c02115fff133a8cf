package seed

import (
	"context"

	"github.com/shopspring/decimal"
	"storefront/internal/domain"
	cartsvc "storefront/internal/service/cart"
)

type lineSeed struct {
	Product  domain.Product
	Quantity int
}

// DemoCart is a small cart built from catalog entries that exist on the public demo API.
var DemoCart = []lineSeed{
	{
		Product: domain.Product{
			ID:       1,
			Title:    "Fjallraven - Foldsack No. 1 Backpack, Fits 15 Laptops",
			Price:    decimal.RequireFromString("109.95"),
			Category: "men's clothing",
			Image:    "https://fakestoreapi.com/img/81fPKd-2AYL._AC_SL1500_.jpg",
			Rating:   domain.Rating{Rate: decimal.RequireFromString("3.9"), Count: 120},
		},
		Quantity: 1,
	},
	{
		Product: domain.Product{
			ID:       2,
			Title:    "Mens Casual Premium Slim Fit T-Shirts",
			Price:    decimal.RequireFromString("22.3"),
			Category: "men's clothing",
			Image:    "https://fakestoreapi.com/img/71-3HjGNDUL._AC_SY879._SX._UX._SY._UY_.jpg",
			Rating:   domain.Rating{Rate: decimal.RequireFromString("4.1"), Count: 259},
		},
		Quantity: 2,
	},
}

// Apply hydrates store from its slot and adds the demo lines when the cart is
// empty. Running it twice leaves the cart as the first run did.
func Apply(ctx context.Context, store *cartsvc.Store) (bool, error) {
	store.Hydrate(ctx)
	if len(store.Cart()) > 0 {
		return false, ctx.Err()
	}
	for _, line := range DemoCart {
		if err := ctx.Err(); err != nil {
			return false, err
		}
		store.AddToCart(ctx, line.Product, line.Quantity)
	}
	return true, nil
}
