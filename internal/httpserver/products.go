package httpserver

import (
	"context"
	"errors"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
	"github.com/shopspring/decimal"
	"storefront/internal/domain"
	productsvc "storefront/internal/service/product"
)

type productListResponse struct {
	Loading bool `json:"loading"`
	productsvc.Page
}

func (h *handlers) listProducts(c *gin.Context) {
	q, err := parseProductQuery(c)
	if err != nil {
		writeError(c, http.StatusBadRequest, err.Error())
		return
	}
	page, err := productsvc.Filter(h.deps.Store.Products(), q)
	if err != nil {
		writeError(c, http.StatusBadRequest, err.Error())
		return
	}
	c.JSON(http.StatusOK, productListResponse{Loading: h.deps.Store.Loading(), Page: page})
}

func parseProductQuery(c *gin.Context) (productsvc.Query, error) {
	q := productsvc.Query{
		Category:   c.Query("category"),
		PriceRange: c.Query("priceRange"),
		Search:     c.Query("q"),
		Sort:       c.Query("sort"),
	}
	var err error
	if q.MinPrice, err = decimalParam(c, "minPrice"); err != nil {
		return q, err
	}
	if q.MaxPrice, err = decimalParam(c, "maxPrice"); err != nil {
		return q, err
	}
	if q.Limit, err = intParam(c, "limit"); err != nil {
		return q, err
	}
	if q.Offset, err = intParam(c, "offset"); err != nil {
		return q, err
	}
	return q, nil
}

func decimalParam(c *gin.Context, name string) (*decimal.Decimal, error) {
	raw := c.Query(name)
	if raw == "" {
		return nil, nil
	}
	d, err := decimal.NewFromString(raw)
	if err != nil {
		return nil, errors.New("invalid " + name)
	}
	return &d, nil
}

func intParam(c *gin.Context, name string) (int, error) {
	raw := c.Query(name)
	if raw == "" {
		return 0, nil
	}
	n, err := strconv.Atoi(raw)
	if err != nil {
		return 0, errors.New("invalid " + name)
	}
	return n, nil
}

// refreshProducts reloads the catalog without holding the request open.
func (h *handlers) refreshProducts(c *gin.Context) {
	h.deps.Store.RefreshCatalog(context.WithoutCancel(c.Request.Context()))
	c.JSON(http.StatusAccepted, gin.H{"status": "loading", "loading": h.deps.Store.Loading()})
}

func (h *handlers) getProduct(c *gin.Context) {
	id, ok := idParam(c)
	if !ok {
		return
	}
	p, err := h.deps.Catalog.Get(c.Request.Context(), id)
	if err != nil {
		h.catalogError(c, err)
		return
	}
	c.JSON(http.StatusOK, p)
}

func (h *handlers) listCategories(c *gin.Context) {
	categories, err := h.deps.Catalog.Categories(c.Request.Context())
	if err != nil {
		h.catalogError(c, err)
		return
	}
	if categories == nil {
		categories = []string{}
	}
	c.JSON(http.StatusOK, categories)
}

func (h *handlers) catalogError(c *gin.Context, err error) {
	if errors.Is(err, domain.ErrNotFound) {
		writeError(c, http.StatusNotFound, "product not found")
		return
	}
	h.logger.Printf("catalog request failed: %v", err)
	writeError(c, http.StatusBadGateway, "catalog unavailable")
}

func idParam(c *gin.Context) (int, bool) {
	id, err := strconv.Atoi(c.Param("id"))
	if err != nil || id <= 0 {
		writeError(c, http.StatusBadRequest, "invalid product id")
		return 0, false
	}
	return id, true
}
