package httpserver

import (
	"context"
	"errors"
	"io"
	"log"
	"time"

	"bosko-storefront/internal/api"
	"bosko-storefront/internal/domain"
	"bosko-storefront/internal/guard"
	cartsvc "bosko-storefront/internal/service/cart"
	"bosko-storefront/internal/session"
	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
)

type productService interface {
	List(ctx context.Context, categoryID *int64) ([]domain.Product, error)
	Get(ctx context.Context, id int64) (*domain.Product, error)
}

type categoryService interface {
	List(ctx context.Context) ([]domain.Category, error)
	Get(ctx context.Context, id int64) (*domain.Category, error)
}

type deviceIssuer interface {
	Issue() (string, error)
	Validate(id string) (string, error)
	CookieTTLSeconds() int
}

// Deps carries everything the handlers need.
type Deps struct {
	Storage      pinger
	Devices      *session.Registry
	Backend      *api.Backend
	Guard        *guard.Guard
	AnonymousSvc deviceIssuer
	ProductSvc   productService
	CategorySvc  categoryService
	CartSvc      *cartsvc.Service
	CORSOrigins  []string
	SecureCookie bool
	Now          func() time.Time
}

type handlers struct {
	logger *log.Logger
	deps   Deps
}

// buildRouter wires routes for the API.
func buildRouter(logger *log.Logger, deps Deps) (*gin.Engine, error) {
	if logger == nil {
		logger = log.New(io.Discard, "", 0)
	}
	if deps.Devices == nil || deps.Backend == nil || deps.AnonymousSvc == nil {
		return nil, errors.New("devices, backend and anonymous service are required")
	}
	if deps.ProductSvc == nil || deps.CategorySvc == nil || deps.CartSvc == nil {
		return nil, errors.New("catalog and cart services are required")
	}
	if deps.Guard == nil {
		deps.Guard = guard.New(nil)
	}
	if deps.Now == nil {
		deps.Now = time.Now
	}
	h := &handlers{logger: logger, deps: deps}

	gin.SetMode(gin.ReleaseMode)
	router := gin.New()
	router.Use(gin.LoggerWithWriter(logger.Writer()), gin.Recovery())
	if len(deps.CORSOrigins) > 0 {
		router.Use(cors.New(cors.Config{
			AllowOrigins:     deps.CORSOrigins,
			AllowMethods:     []string{"GET", "POST", "PUT", "PATCH", "DELETE", "OPTIONS"},
			AllowHeaders:     []string{"Origin", "Content-Type", "Accept", "X-Request-ID"},
			ExposeHeaders:    []string{"X-Request-ID"},
			AllowCredentials: true,
			MaxAge:           12 * time.Hour,
		}))
	}

	router.GET("/healthz", healthHandler)
	router.GET("/readyz", readyHandler(deps.Storage))

	apiGroup := router.Group("/api")
	apiGroup.Use(requestIDMiddleware(), deviceMiddleware(deps.AnonymousSvc, deps.Devices, deps.SecureCookie, logger), guardMiddleware(deps.Guard, deps.Now))

	apiGroup.GET("/navigation", h.navigate)
	apiGroup.GET("/session", h.sessionState)

	apiGroup.GET("/products", h.listProducts)
	apiGroup.GET("/products/:id", h.getProduct)
	apiGroup.GET("/categories", h.listCategories)
	apiGroup.GET("/categories/:id", h.getCategory)

	apiGroup.GET("/cart", h.getCart)
	apiGroup.POST("/cart/items", h.addCartItem)
	apiGroup.PUT("/cart/items/:productId", h.setCartItemQuantity)
	apiGroup.DELETE("/cart/items/:productId", h.removeCartItem)
	apiGroup.DELETE("/cart", h.clearCart)

	auth := apiGroup.Group("/auth")
	auth.POST("/login", h.login)
	auth.POST("/register", h.register)
	auth.POST("/google-login", h.googleLogin)
	auth.POST("/forgot-password", h.forgotPassword)
	auth.POST("/reset-password", h.resetPassword)
	auth.POST("/logout", h.logout)

	apiGroup.GET("/preferences", h.getPreferences)
	apiGroup.PUT("/preferences", h.updatePreferences)

	apiGroup.GET("/me", h.getProfile)
	apiGroup.PUT("/me", h.updateProfile)
	apiGroup.GET("/addresses", h.listAddresses)
	apiGroup.POST("/addresses", h.createAddress)
	apiGroup.PUT("/addresses/:id", h.updateAddress)
	apiGroup.DELETE("/addresses/:id", h.deleteAddress)
	apiGroup.POST("/addresses/:id/default", h.setDefaultAddress)

	apiGroup.POST("/checkout", h.checkout)
	apiGroup.GET("/orders", h.listOrders)
	apiGroup.GET("/orders/:id", h.getOrder)

	admin := apiGroup.Group("/admin")
	admin.GET("/stats", h.adminStats)
	admin.GET("/products", h.adminListProducts)
	admin.GET("/products/:id", h.adminGetProduct)
	admin.POST("/products", h.adminCreateProduct)
	admin.PUT("/products/:id", h.adminUpdateProduct)
	admin.DELETE("/products/:id", h.adminDeleteProduct)
	admin.GET("/categories", h.adminListCategories)
	admin.POST("/categories", h.adminCreateCategory)
	admin.PUT("/categories/:id", h.adminUpdateCategory)
	admin.DELETE("/categories/:id", h.adminDeleteCategory)
	admin.GET("/users", h.adminListUsers)
	admin.GET("/users/:id", h.adminGetUser)
	admin.PUT("/users/:id", h.adminUpdateUser)
	admin.PATCH("/users/:id/role", h.adminChangeUserRole)
	admin.PATCH("/users/:id/toggle-status", h.adminToggleUserStatus)
	admin.DELETE("/users/:id", h.adminDeleteUser)
	admin.GET("/orders", h.adminListOrders)
	admin.GET("/orders/:id", h.adminGetOrder)
	admin.PUT("/orders/:id/status", h.adminUpdateOrderStatus)

	return router, nil
}
