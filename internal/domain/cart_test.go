package domain

import (
	"errors"
	"testing"

	"github.com/shopspring/decimal"
)

func TestCartTotals(t *testing.T) {
	c := Cart{
		{Product: Product{ID: 1, Price: decimal.RequireFromString("10.10")}, Quantity: 3},
		{Product: Product{ID: 4, Price: decimal.RequireFromString("0.20")}, Quantity: 1},
	}
	if !c.Total().Equal(decimal.RequireFromString("30.50")) {
		t.Fatalf("unexpected total %s", c.Total())
	}
	if c.TotalQuantity() != 4 {
		t.Fatalf("unexpected quantity %d", c.TotalQuantity())
	}
	if c.Find(4) != 1 || c.Find(2) != -1 {
		t.Fatalf("unexpected find results")
	}
	if !(Cart{}).Total().Equal(decimal.Zero) {
		t.Fatalf("expected empty cart total zero")
	}
}

func TestLookupShipping(t *testing.T) {
	opt, err := LookupShipping(" Express ")
	if err != nil || !opt.Price.Equal(decimal.NewFromInt(15)) {
		t.Fatalf("unexpected express option %+v %v", opt, err)
	}
	opt, err = LookupShipping("")
	if err != nil || opt.Key != "free" {
		t.Fatalf("expected free default, got %+v %v", opt, err)
	}
	if _, err := LookupShipping("teleport"); !errors.Is(err, ErrUnknownShipping) {
		t.Fatalf("expected ErrUnknownShipping, got %v", err)
	}
}
