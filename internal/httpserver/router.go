package httpserver

import (
	"context"
	"log"
	"net/http"
	"time"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"storefront/internal/domain"
	cartsvc "storefront/internal/service/cart"
)

// Catalog resolves products and categories that are not in the loaded list.
type Catalog interface {
	Get(ctx context.Context, id int) (*domain.Product, error)
	Categories(ctx context.Context) ([]string, error)
}

type NoticeFeed interface {
	Since(after int64) []domain.Notice
}

// Deps groups what the handlers need.
type Deps struct {
	Store       *cartsvc.Store
	Catalog     Catalog
	Notices     NoticeFeed
	Ready       Pinger
	CORSOrigins []string
}

// buildRouter wires routes for the API.
func buildRouter(logger *log.Logger, deps Deps) *gin.Engine {
	if gin.Mode() != gin.TestMode {
		gin.SetMode(gin.ReleaseMode)
	}
	router := gin.New()
	router.Use(gin.LoggerWithWriter(logger.Writer()), gin.Recovery(), corsMiddleware(deps.CORSOrigins))

	router.GET("/healthz", healthHandler)
	router.GET("/readyz", readyHandler(deps.Ready))

	h := &handlers{deps: deps, logger: logger}

	router.GET("/products", h.listProducts)
	router.POST("/products/refresh", h.refreshProducts)
	router.GET("/products/:id", h.getProduct)
	router.GET("/categories", h.listCategories)

	router.GET("/cart", h.getCart)
	router.POST("/cart/items", h.addItem)
	router.PATCH("/cart/items/:id", h.updateItem)
	router.DELETE("/cart/items/:id", h.removeItem)
	router.GET("/cart/summary", h.cartSummary)
	router.GET("/shipping-options", h.shippingOptions)

	router.GET("/notices", h.listNotices)

	return router
}

func corsMiddleware(origins []string) gin.HandlerFunc {
	cfg := cors.Config{
		AllowMethods:  []string{http.MethodGet, http.MethodPost, http.MethodPatch, http.MethodDelete, http.MethodOptions},
		AllowHeaders:  []string{"Origin", "Content-Type", "Accept"},
		ExposeHeaders: []string{"Content-Length"},
		MaxAge:        12 * time.Hour,
	}
	for _, o := range origins {
		if o == "*" {
			cfg.AllowAllOrigins = true
		}
	}
	if !cfg.AllowAllOrigins {
		if len(origins) == 0 {
			cfg.AllowAllOrigins = true
		} else {
			cfg.AllowOrigins = origins
		}
	}
	return cors.New(cfg)
}

type handlers struct {
	deps   Deps
	logger *log.Logger
}

func writeError(c *gin.Context, status int, msg string) {
	c.JSON(status, gin.H{"error": msg})
}
