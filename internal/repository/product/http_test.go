package product

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/shopspring/decimal"
	"storefront/internal/domain"
)

const catalogJSON = `[
 {"id":1,"title":"Backpack","price":109.95,"description":"Fits laptops","category":"men's clothing","image":"https://img.test/1.jpg","rating":{"rate":3.9,"count":120}},
 {"id":2,"title":"Slim Fit T-Shirt","price":22.3,"category":"men's clothing","image":"https://img.test/2.jpg","rating":{"rate":4.1,"count":259}}
]`

func newCatalogServer(t *testing.T) *httptest.Server {
	t.Helper()
	mux := http.NewServeMux()
	mux.HandleFunc("/products", func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		w.Write([]byte(catalogJSON))
	})
	mux.HandleFunc("/products/1", func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(`{"id":1,"title":"Backpack","price":109.95,"category":"men's clothing","image":"https://img.test/1.jpg","rating":{"rate":3.9,"count":120}}`))
	})
	mux.HandleFunc("/products/99", func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
	})
	mux.HandleFunc("/products/500", func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusInternalServerError)
	})
	mux.HandleFunc("/products/categories", func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(`["electronics","jewelery"]`))
	})
	srv := httptest.NewServer(mux)
	t.Cleanup(srv.Close)
	return srv
}

func TestHTTP_List(t *testing.T) {
	srv := newCatalogServer(t)
	repo := NewHTTP(srv.URL, srv.Client(), nil)

	products, err := repo.List(context.Background())
	if err != nil {
		t.Fatalf("List: %v", err)
	}
	if len(products) != 2 {
		t.Fatalf("expected 2 products, got %d", len(products))
	}
	if !products[0].Price.Equal(decimal.RequireFromString("109.95")) {
		t.Fatalf("unexpected price %s", products[0].Price)
	}
	if products[1].Rating.Count != 259 || products[0].Description != "Fits laptops" {
		t.Fatalf("unexpected product data %+v", products)
	}
}

func TestHTTP_GetByID(t *testing.T) {
	srv := newCatalogServer(t)
	repo := NewHTTP(srv.URL, srv.Client(), nil)

	p, err := repo.GetByID(context.Background(), 1)
	if err != nil {
		t.Fatalf("GetByID: %v", err)
	}
	if p.ID != 1 || p.Title != "Backpack" {
		t.Fatalf("unexpected product %+v", p)
	}

	if _, err := repo.GetByID(context.Background(), 99); !errors.Is(err, domain.ErrNotFound) {
		t.Fatalf("expected not found for empty body, got %v", err)
	}
	if _, err := repo.GetByID(context.Background(), 12345); !errors.Is(err, domain.ErrNotFound) {
		t.Fatalf("expected not found for 404, got %v", err)
	}
}

func TestHTTP_StatusError(t *testing.T) {
	srv := newCatalogServer(t)
	repo := NewHTTP(srv.URL, srv.Client(), nil)

	_, err := repo.GetByID(context.Background(), 500)
	var statusErr *StatusError
	if !errors.As(err, &statusErr) || statusErr.Code != http.StatusInternalServerError {
		t.Fatalf("expected status error, got %v", err)
	}
}

func TestHTTP_Categories(t *testing.T) {
	srv := newCatalogServer(t)
	repo := NewHTTP(srv.URL, srv.Client(), nil)

	categories, err := repo.Categories(context.Background())
	if err != nil {
		t.Fatalf("Categories: %v", err)
	}
	if len(categories) != 2 || categories[0] != "electronics" {
		t.Fatalf("unexpected categories %v", categories)
	}
}

func TestHTTP_Unreachable(t *testing.T) {
	srv := newCatalogServer(t)
	url := srv.URL
	srv.Close()

	repo := NewHTTP(url, nil, nil)
	if _, err := repo.List(context.Background()); err == nil {
		t.Fatalf("expected error from closed server")
	}
}
