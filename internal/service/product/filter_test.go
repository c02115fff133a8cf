package product

import (
	"errors"
	"math"
	"testing"

	"github.com/shopspring/decimal"
	"storefront/internal/domain"
)

func price(s string) decimal.Decimal {
	return decimal.RequireFromString(s)
}

func sampleProducts() []domain.Product {
	return []domain.Product{
		{ID: 1, Title: "Backpack", Price: price("109.95"), Category: "men's clothing", Rating: domain.Rating{Rate: price("3.9")}},
		{ID: 2, Title: "T-Shirt", Price: price("22.3"), Category: "men's clothing", Rating: domain.Rating{Rate: price("4.1")}},
		{ID: 3, Title: "Jacket", Price: price("55.99"), Category: "men's clothing", Rating: domain.Rating{Rate: price("4.7")}},
		{ID: 4, Title: "Bracelet", Price: price("695"), Category: "jewelery", Rating: domain.Rating{Rate: price("4.6")}},
		{ID: 5, Title: "Monitor", Price: price("999.99"), Category: "electronics", Rating: domain.Rating{Rate: price("2.2")}},
	}
}

func ids(products []domain.Product) []int {
	out := make([]int, 0, len(products))
	for _, p := range products {
		out = append(out, p.ID)
	}
	return out
}

func equalIDs(a, b []int) bool {
	if len(a) != len(b) {
		return false
	}
	for i := range a {
		if a[i] != b[i] {
			return false
		}
	}
	return true
}

func TestFilter_DefaultKeepsCatalogOrder(t *testing.T) {
	page, err := Filter(sampleProducts(), Query{})
	if err != nil {
		t.Fatalf("Filter: %v", err)
	}
	if page.Total != 5 || !equalIDs(ids(page.Results), []int{1, 2, 3, 4, 5}) {
		t.Fatalf("unexpected page %+v", page)
	}
}

func TestFilter_CategoryAndPrice(t *testing.T) {
	lo, hi := price("50"), price("110")
	page, err := Filter(sampleProducts(), Query{Category: "MEN'S CLOTHING", MinPrice: &lo, MaxPrice: &hi})
	if err != nil {
		t.Fatalf("Filter: %v", err)
	}
	if !equalIDs(ids(page.Results), []int{1, 3}) {
		t.Fatalf("unexpected results %v", ids(page.Results))
	}
}

func TestFilter_PriceRangeBucket(t *testing.T) {
	page, err := Filter(sampleProducts(), Query{PriceRange: "400+", Sort: SortPriceAsc})
	if err != nil {
		t.Fatalf("Filter: %v", err)
	}
	if !equalIDs(ids(page.Results), []int{4, 5}) {
		t.Fatalf("unexpected results %v", ids(page.Results))
	}

	page, err = Filter(sampleProducts(), Query{PriceRange: "0-99.99"})
	if err != nil {
		t.Fatalf("Filter: %v", err)
	}
	if !equalIDs(ids(page.Results), []int{2, 3}) {
		t.Fatalf("unexpected results %v", ids(page.Results))
	}
}

func TestFilter_Sorts(t *testing.T) {
	cases := map[string][]int{
		SortPriceAsc:  {2, 3, 1, 4, 5},
		SortPriceDesc: {5, 4, 1, 3, 2},
		SortTitle:     {1, 4, 3, 5, 2},
		SortRating:    {3, 4, 2, 1, 5},
	}
	for order, want := range cases {
		page, err := Filter(sampleProducts(), Query{Sort: order})
		if err != nil {
			t.Fatalf("%s: %v", order, err)
		}
		if got := ids(page.Results); !equalIDs(got, want) {
			t.Fatalf("%s: expected %v, got %v", order, want, got)
		}
	}
}

func TestFilter_DoesNotReorderInput(t *testing.T) {
	products := sampleProducts()
	if _, err := Filter(products, Query{Sort: SortPriceDesc}); err != nil {
		t.Fatalf("Filter: %v", err)
	}
	if !equalIDs(ids(products), []int{1, 2, 3, 4, 5}) {
		t.Fatalf("input reordered: %v", ids(products))
	}
}

func TestFilter_SearchAndPaging(t *testing.T) {
	page, err := Filter(sampleProducts(), Query{Search: "t", Limit: 2, Offset: 1})
	if err != nil {
		t.Fatalf("Filter: %v", err)
	}
	// Titles containing "t": T-Shirt, Jacket, Bracelet, Monitor.
	if page.Total != 4 || !equalIDs(ids(page.Results), []int{3, 4}) {
		t.Fatalf("unexpected page total=%d results=%v", page.Total, ids(page.Results))
	}

	page, err = Filter(sampleProducts(), Query{Offset: 10})
	if err != nil {
		t.Fatalf("Filter: %v", err)
	}
	if page.Total != 5 || len(page.Results) != 0 {
		t.Fatalf("expected empty window past the end, got %+v", page)
	}

	page, err = Filter(sampleProducts(), Query{Limit: math.MaxInt, Offset: 1})
	if err != nil {
		t.Fatalf("Filter: %v", err)
	}
	if !equalIDs(ids(page.Results), []int{2, 3, 4, 5}) {
		t.Fatalf("expected every product after the offset, got %v", ids(page.Results))
	}
}

func TestFilter_RejectsBadQueries(t *testing.T) {
	lo, hi := price("10"), price("5")
	bad := []Query{
		{Sort: "newest"},
		{PriceRange: "1-2"},
		{MinPrice: &lo, MaxPrice: &hi},
		{Limit: -1},
	}
	for _, q := range bad {
		if _, err := Filter(sampleProducts(), q); !errors.Is(err, ErrInvalidQuery) {
			t.Fatalf("expected invalid query for %+v, got %v", q, err)
		}
	}
}
