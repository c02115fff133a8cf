package importer

import (
	"context"
	"errors"
	"fmt"
	"math"
	"strings"
	"testing"

	"github.com/shopspring/decimal"
	"storefront/internal/domain"
	cartrepo "storefront/internal/repository/cart"
	cartsvc "storefront/internal/service/cart"
)

type stubCatalog struct {
	products map[int]domain.Product
	calls    int
	err      error
}

func (s *stubCatalog) Get(_ context.Context, id int) (*domain.Product, error) {
	s.calls++
	if s.err != nil {
		return nil, s.err
	}
	p, ok := s.products[id]
	if !ok {
		return nil, domain.ErrNotFound
	}
	return &p, nil
}

func newCatalog() *stubCatalog {
	return &stubCatalog{products: map[int]domain.Product{
		1: {ID: 1, Title: "Backpack", Price: decimal.RequireFromString("109.95")},
		3: {ID: 3, Title: "Jacket", Price: decimal.RequireFromString("55.99")},
	}}
}

func newStore(t *testing.T) *cartsvc.Store {
	t.Helper()
	return cartsvc.New(cartrepo.NewFile(t.TempDir()), nil, nil, nil, cartsvc.Options{})
}

func TestCSVImporter_Run(t *testing.T) {
	csvData := `id,quantity
1,2
3,
1,1

42,5
`
	catalog := newCatalog()
	store := newStore(t)

	res, err := NewCSVImporter(strings.NewReader(csvData), catalog, store).Run(context.Background())
	if err != nil {
		t.Fatalf("import run: %v", err)
	}
	if res.Rows != 4 || res.Added != 2 || res.Merged != 1 {
		t.Fatalf("unexpected result %+v", res)
	}
	if len(res.Skipped) != 1 || res.Skipped[0] != 42 {
		t.Fatalf("expected id 42 skipped, got %v", res.Skipped)
	}
	if catalog.calls != 3 {
		t.Fatalf("expected each id resolved once, got %d lookups", catalog.calls)
	}

	c := store.Cart()
	if len(c) != 2 || c[0].ID != 1 || c[0].Quantity != 3 || c[1].Quantity != 1 {
		t.Fatalf("unexpected cart %+v", c)
	}
}

func TestCSVImporter_HeaderAliases(t *testing.T) {
	csvData := "productId, qty\n3,4\n"
	store := newStore(t)

	if _, err := NewCSVImporter(strings.NewReader(csvData), newCatalog(), store).Run(context.Background()); err != nil {
		t.Fatalf("import run: %v", err)
	}
	if c := store.Cart(); len(c) != 1 || c[0].Quantity != 4 {
		t.Fatalf("unexpected cart %+v", c)
	}
}

func TestCSVImporter_InvalidRows(t *testing.T) {
	cases := []string{
		"name\nfoo\n",
		"id,quantity\nabc,1\n",
		"id,quantity\n1,0\n",
		"id,quantity\n1,-3\n",
	}
	for _, data := range cases {
		_, err := NewCSVImporter(strings.NewReader(data), newCatalog(), newStore(t)).Run(context.Background())
		if err == nil {
			t.Fatalf("expected error for %q", data)
		}
	}
}

func TestCSVImporter_CatalogFailure(t *testing.T) {
	catalog := newCatalog()
	catalog.err = errors.New("upstream down")
	store := newStore(t)

	_, err := NewCSVImporter(strings.NewReader("id\n1\n"), catalog, store).Run(context.Background())
	if err == nil || !strings.Contains(err.Error(), "upstream down") {
		t.Fatalf("expected wrapped catalog error, got %v", err)
	}
	if len(store.Cart()) != 0 {
		t.Fatalf("expected empty cart, got %+v", store.Cart())
	}
}

func TestCSVImporter_QuantityOverflow(t *testing.T) {
	csvData := fmt.Sprintf("id,quantity\n1,%d\n1,1\n", math.MaxInt)
	store := newStore(t)

	_, err := NewCSVImporter(strings.NewReader(csvData), newCatalog(), store).Run(context.Background())
	if err == nil || !strings.Contains(err.Error(), "line 3") {
		t.Fatalf("expected overflow error on line 3, got %v", err)
	}
	if c := store.Cart(); len(c) != 1 || c[0].Quantity != math.MaxInt {
		t.Fatalf("expected first row kept, got %+v", c)
	}
}
