package httpserver

import (
	"context"
	"log"
	"time"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"github.com/shopspring/decimal"

	"storefront/internal/cart"
	"storefront/internal/domain"
)

type sessionManager interface {
	Login(ctx context.Context, username, password string) error
	Register(ctx context.Context, username, email, password string) error
	Logout()
	Current() (domain.User, bool)
}

type cartEngine interface {
	Add(product domain.Product) error
	UpdateQuantity(productID string, quantity int) error
	Remove(productID string)
	Items() []cart.Item
	Total() decimal.Decimal
	Checkout(ctx context.Context) (*domain.OrderConfirmation, error)
}

type catalogStore interface {
	Reload(ctx context.Context) error
	Loaded() bool
	Products() []domain.Product
	Get(id string) (domain.Product, bool)
}

type adminBackend interface {
	CreateProduct(ctx context.Context, in domain.ProductInput) (*domain.Product, error)
	UpdateProduct(ctx context.Context, id string, in domain.ProductInput) (*domain.Product, error)
	DeleteProduct(ctx context.Context, id string) error
}

type backendPinger interface {
	Ping(ctx context.Context) error
}

// Deps carries the gateway's collaborators, injected by the entry point.
type Deps struct {
	Session sessionManager
	Cart    cartEngine
	Catalog catalogStore
	Backend adminBackend
	Pinger  backendPinger
}

// buildRouter wires the gateway routes.
func buildRouter(logger *log.Logger, deps Deps, corsOrigins []string) *gin.Engine {
	gin.SetMode(gin.ReleaseMode)
	router := gin.New()
	router.Use(gin.LoggerWithWriter(logger.Writer()), gin.Recovery())

	if len(corsOrigins) > 0 {
		router.Use(cors.New(cors.Config{
			AllowOrigins:     corsOrigins,
			AllowMethods:     []string{"GET", "POST", "PUT", "DELETE", "OPTIONS"},
			AllowHeaders:     []string{"Content-Type"},
			AllowCredentials: true,
			MaxAge:           12 * time.Hour,
		}))
	}

	router.GET("/healthz", healthHandler)
	router.GET("/readyz", readyHandler(deps.Pinger))

	h := &handlers{logger: logger, deps: deps}

	router.POST("/session/login", h.login)
	router.POST("/session/register", h.register)
	router.DELETE("/session", h.logout)
	router.GET("/session", h.currentSession)

	router.GET("/catalog", h.listCatalog)
	router.POST("/catalog/products", h.createProduct)
	router.PUT("/catalog/products/:id", h.updateProduct)
	router.DELETE("/catalog/products/:id", h.deleteProduct)

	router.GET("/cart", h.showCart)
	router.POST("/cart/items", h.addCartItem)
	router.PUT("/cart/items/:id", h.updateCartItem)
	router.DELETE("/cart/items/:id", h.removeCartItem)
	router.POST("/cart/checkout", h.checkout)

	return router
}

type handlers struct {
	logger *log.Logger
	deps   Deps
}
