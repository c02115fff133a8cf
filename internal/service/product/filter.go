package product

import (
	"errors"
	"fmt"
	"sort"
	"strings"

	"github.com/shopspring/decimal"
	"storefront/internal/domain"
)

// ErrInvalidQuery wraps every rejected listing parameter.
var ErrInvalidQuery = errors.New("invalid product query")

// Sort orders accepted by Filter. The zero value keeps catalog order.
const (
	SortPriceAsc  = "price_asc"
	SortPriceDesc = "price_desc"
	SortTitle     = "title"
	SortRating    = "rating"
)

// PriceRange is an inclusive price bucket; a nil Max is open-ended.
type PriceRange struct {
	Key string
	Min decimal.Decimal
	Max *decimal.Decimal
}

func upTo(s string) *decimal.Decimal {
	d := decimal.RequireFromString(s)
	return &d
}

// PriceRanges are the buckets offered by the listing sidebar.
var PriceRanges = []PriceRange{
	{Key: "0-99.99", Min: decimal.Zero, Max: upTo("99.99")},
	{Key: "100-199.99", Min: decimal.NewFromInt(100), Max: upTo("199.99")},
	{Key: "200-299.99", Min: decimal.NewFromInt(200), Max: upTo("299.99")},
	{Key: "300-399.99", Min: decimal.NewFromInt(300), Max: upTo("399.99")},
	{Key: "400+", Min: decimal.NewFromInt(400)},
}

// Query narrows and orders a product listing.
type Query struct {
	Category   string
	MinPrice   *decimal.Decimal
	MaxPrice   *decimal.Decimal
	PriceRange string
	Search     string
	Sort       string
	Limit      int
	Offset     int
}

// Page is one window of a filtered listing. Total counts every match before paging.
type Page struct {
	Total   int              `json:"total"`
	Limit   int              `json:"limit"`
	Offset  int              `json:"offset"`
	Results []domain.Product `json:"results"`
}

// Filter applies q to products without modifying the input slice.
func Filter(products []domain.Product, q Query) (Page, error) {
	lo, hi := q.MinPrice, q.MaxPrice
	if q.PriceRange != "" {
		r, ok := lookupRange(q.PriceRange)
		if !ok {
			return Page{}, fmt.Errorf("%w: unknown price range %q", ErrInvalidQuery, q.PriceRange)
		}
		lo, hi = &r.Min, r.Max
	}
	if lo != nil && hi != nil && lo.GreaterThan(*hi) {
		return Page{}, fmt.Errorf("%w: minPrice greater than maxPrice", ErrInvalidQuery)
	}
	if q.Limit < 0 || q.Offset < 0 {
		return Page{}, fmt.Errorf("%w: negative limit or offset", ErrInvalidQuery)
	}

	category := strings.TrimSpace(q.Category)
	search := strings.ToLower(strings.TrimSpace(q.Search))

	matched := make([]domain.Product, 0, len(products))
	for _, p := range products {
		if category != "" && !strings.EqualFold(p.Category, category) {
			continue
		}
		if lo != nil && p.Price.LessThan(*lo) {
			continue
		}
		if hi != nil && p.Price.GreaterThan(*hi) {
			continue
		}
		if search != "" && !strings.Contains(strings.ToLower(p.Title), search) {
			continue
		}
		matched = append(matched, p)
	}

	if err := sortProducts(matched, q.Sort); err != nil {
		return Page{}, err
	}

	page := Page{Total: len(matched), Limit: q.Limit, Offset: q.Offset}
	start := q.Offset
	if start > len(matched) {
		start = len(matched)
	}
	end := len(matched)
	if q.Limit > 0 && q.Limit < end-start {
		end = start + q.Limit
	}
	page.Results = matched[start:end]
	return page, nil
}

func lookupRange(key string) (PriceRange, bool) {
	for _, r := range PriceRanges {
		if r.Key == key {
			return r, true
		}
	}
	return PriceRange{}, false
}

func sortProducts(products []domain.Product, order string) error {
	switch strings.ToLower(strings.TrimSpace(order)) {
	case "":
	case SortPriceAsc:
		sort.SliceStable(products, func(i, j int) bool { return products[i].Price.LessThan(products[j].Price) })
	case SortPriceDesc:
		sort.SliceStable(products, func(i, j int) bool { return products[i].Price.GreaterThan(products[j].Price) })
	case SortTitle:
		sort.SliceStable(products, func(i, j int) bool {
			return strings.ToLower(products[i].Title) < strings.ToLower(products[j].Title)
		})
	case SortRating:
		sort.SliceStable(products, func(i, j int) bool { return products[i].Rating.Rate.GreaterThan(products[j].Rating.Rate) })
	default:
		return fmt.Errorf("%w: unknown sort %q", ErrInvalidQuery, order)
	}
	return nil
}
