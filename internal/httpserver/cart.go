package httpserver

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/shopspring/decimal"
	"storefront/internal/domain"
	cartsvc "storefront/internal/service/cart"
)

type cartResponse struct {
	Items         domain.Cart     `json:"items"`
	TotalPrice    decimal.Decimal `json:"totalPrice"`
	TotalQuantity int             `json:"totalQuantity"`
}

func toCartResponse(c domain.Cart) cartResponse {
	if c == nil {
		c = domain.Cart{}
	}
	return cartResponse{Items: c, TotalPrice: c.Total(), TotalQuantity: c.TotalQuantity()}
}

type addItemRequest struct {
	ProductID int  `json:"productId"`
	Quantity  *int `json:"quantity"`
}

type updateItemRequest struct {
	Quantity *int `json:"quantity"`
}

func (h *handlers) getCart(c *gin.Context) {
	c.JSON(http.StatusOK, toCartResponse(h.deps.Store.Cart()))
}

func (h *handlers) addItem(c *gin.Context) {
	var req addItemRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		writeError(c, http.StatusBadRequest, "invalid request body")
		return
	}
	if req.ProductID <= 0 {
		writeError(c, http.StatusBadRequest, "productId is required")
		return
	}
	qty := 1
	if req.Quantity != nil {
		qty = *req.Quantity
	}
	if qty < 1 {
		writeError(c, http.StatusBadRequest, "quantity must be positive")
		return
	}

	p, ok := h.deps.Store.Product(req.ProductID)
	if !ok {
		if h.deps.Catalog == nil {
			writeError(c, http.StatusNotFound, "product not found")
			return
		}
		found, err := h.deps.Catalog.Get(c.Request.Context(), req.ProductID)
		if err != nil {
			h.catalogError(c, err)
			return
		}
		p = *found
	}

	cart, outcome := h.deps.Store.AddToCart(c.Request.Context(), p, qty)
	switch outcome {
	case cartsvc.Rejected:
		writeError(c, http.StatusBadRequest, "quantity too large")
	case cartsvc.Added:
		c.JSON(http.StatusCreated, toCartResponse(cart))
	default:
		c.JSON(http.StatusOK, toCartResponse(cart))
	}
}

func (h *handlers) updateItem(c *gin.Context) {
	id, ok := idParam(c)
	if !ok {
		return
	}
	var req updateItemRequest
	if err := c.ShouldBindJSON(&req); err != nil || req.Quantity == nil {
		writeError(c, http.StatusBadRequest, "quantity is required")
		return
	}
	cart, _ := h.deps.Store.UpdateQuantity(c.Request.Context(), id, *req.Quantity)
	c.JSON(http.StatusOK, toCartResponse(cart))
}

func (h *handlers) removeItem(c *gin.Context) {
	id, ok := idParam(c)
	if !ok {
		return
	}
	cart, _ := h.deps.Store.RemoveFromCart(c.Request.Context(), id)
	c.JSON(http.StatusOK, toCartResponse(cart))
}

func (h *handlers) cartSummary(c *gin.Context) {
	summary, err := h.deps.Store.Summary(c.Query("shipping"))
	if err != nil {
		writeError(c, http.StatusBadRequest, err.Error())
		return
	}
	c.JSON(http.StatusOK, summary)
}

func (h *handlers) shippingOptions(c *gin.Context) {
	c.JSON(http.StatusOK, domain.ShippingOptions)
}
