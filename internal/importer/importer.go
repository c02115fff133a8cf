package importer

import (
	"context"
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"strconv"
	"strings"

	"storefront/internal/domain"
	cartsvc "storefront/internal/service/cart"
)

type ProductGetter interface {
	Get(ctx context.Context, id int) (*domain.Product, error)
}

type CartWriter interface {
	AddToCart(ctx context.Context, p domain.Product, qty int) (domain.Cart, cartsvc.Outcome)
}

// Result counts what a run did. Skipped rows name products the catalog does not know.
type Result struct {
	Rows    int
	Added   int
	Merged  int
	Skipped []int
}

// CSVImporter reads id,quantity rows and adds each product to the cart.
type CSVImporter struct {
	reader   *csv.Reader
	products ProductGetter
	cart     CartWriter
}

func NewCSVImporter(r io.Reader, products ProductGetter, cart CartWriter) *CSVImporter {
	csvr := csv.NewReader(r)
	csvr.FieldsPerRecord = -1 // rows may have trailing commas
	csvr.TrimLeadingSpace = true
	return &CSVImporter{
		reader:   csvr,
		products: products,
		cart:     cart,
	}
}

// Run applies every row in file order. Repeated ids merge into one line.
func (i *CSVImporter) Run(ctx context.Context) (Result, error) {
	var res Result

	headers, err := i.reader.Read()
	if err != nil {
		return res, fmt.Errorf("read headers: %w", err)
	}
	index := headerIndex(headers)
	idCol, ok := column(index, "id", "productid", "product_id")
	if !ok {
		return res, fmt.Errorf("missing id column")
	}
	qtyCol, hasQty := column(index, "quantity", "qty")

	resolved := map[int]domain.Product{}
	for {
		record, err := i.reader.Read()
		if errors.Is(err, io.EOF) {
			break
		}
		if err != nil {
			return res, fmt.Errorf("read row: %w", err)
		}
		if blank(record) {
			continue
		}
		line, _ := i.reader.FieldPos(0)

		id, err := strconv.Atoi(pick(record, idCol))
		if err != nil || id <= 0 {
			return res, fmt.Errorf("line %d: invalid product id %q", line, pick(record, idCol))
		}
		qty := 1
		if hasQty && pick(record, qtyCol) != "" {
			qty, err = strconv.Atoi(pick(record, qtyCol))
			if err != nil || qty < 1 {
				return res, fmt.Errorf("line %d: invalid quantity %q", line, pick(record, qtyCol))
			}
		}
		res.Rows++

		p, ok := resolved[id]
		if !ok {
			found, err := i.products.Get(ctx, id)
			if errors.Is(err, domain.ErrNotFound) {
				res.Skipped = append(res.Skipped, id)
				continue
			}
			if err != nil {
				return res, fmt.Errorf("line %d: resolve product %d: %w", line, id, err)
			}
			p = *found
			resolved[id] = p
		}

		switch _, outcome := i.cart.AddToCart(ctx, p, qty); outcome {
		case cartsvc.Rejected:
			return res, fmt.Errorf("line %d: quantity for product %d overflows the cart line", line, id)
		case cartsvc.Added:
			res.Added++
		case cartsvc.Updated:
			res.Merged++
		}
	}

	return res, nil
}

func headerIndex(headers []string) map[string]int {
	idx := make(map[string]int, len(headers))
	for i, h := range headers {
		idx[strings.ToLower(strings.TrimSpace(h))] = i
	}
	return idx
}

func column(index map[string]int, names ...string) (int, bool) {
	for _, n := range names {
		if pos, ok := index[n]; ok {
			return pos, true
		}
	}
	return 0, false
}

func pick(record []string, pos int) string {
	if pos >= len(record) {
		return ""
	}
	return strings.TrimSpace(record[pos])
}

func blank(record []string) bool {
	for _, f := range record {
		if strings.TrimSpace(f) != "" {
			return false
		}
	}
	return true
}
