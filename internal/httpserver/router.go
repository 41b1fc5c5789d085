package httpserver

import (
	"context"
	"errors"

	"storefront/internal/domain"
	authsvc "storefront/internal/service/auth"
	catalogsvc "storefront/internal/service/catalog"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/rs/zerolog"
)

type authService interface {
	Register(ctx context.Context, username, password string) (*domain.User, error)
	Login(ctx context.Context, username, password string) (*authsvc.LoginResult, error)
}

type catalogService interface {
	List(ctx context.Context) ([]domain.Product, error)
	Create(ctx context.Context, in catalogsvc.ProductInput) (*domain.Product, error)
	Update(ctx context.Context, id string, in catalogsvc.ProductInput) (*domain.Product, error)
	Delete(ctx context.Context, id string) error
}

type orderService interface {
	SaveOpenOrder(ctx context.Context, userID string, cart []domain.CartItem) (*domain.Order, error)
	CompleteOrder(ctx context.Context, userID string, cart []domain.CartItem) (*domain.Order, error)
	ListUserOrders(ctx context.Context, userID string) ([]domain.Order, error)
	ListAllOrders(ctx context.Context) ([]domain.Order, error)
	DeleteAllOrders(ctx context.Context) (int64, error)
}

type tokenVerifier interface {
	Verify(token string) (authsvc.Claims, error)
}

// Deps carries the wired services into the router.
type Deps struct {
	AuthSvc    authService
	CatalogSvc catalogService
	OrderSvc   orderService
	Tokens     tokenVerifier

	// StaticImageDir, when non-empty, is served under /images (disk store).
	StaticImageDir string
}

// buildRouter wires routes for the API.
func buildRouter(logger zerolog.Logger, db *pgxpool.Pool, deps Deps) (*gin.Engine, error) {
	if deps.AuthSvc == nil || deps.CatalogSvc == nil || deps.OrderSvc == nil || deps.Tokens == nil {
		return nil, errors.New("httpserver: missing dependencies")
	}

	gin.SetMode(gin.ReleaseMode)
	router := gin.New()
	router.Use(requestLogger(logger), gin.Recovery())

	corsCfg := cors.DefaultConfig()
	corsCfg.AllowAllOrigins = true
	corsCfg.AllowHeaders = append(corsCfg.AllowHeaders, "Authorization")
	router.Use(cors.New(corsCfg))

	router.GET("/healthz", healthHandler)
	router.GET("/readyz", readyHandler(db))

	if deps.StaticImageDir != "" {
		router.Static("/images", deps.StaticImageDir)
	}

	router.POST("/register", registerHandler(deps.AuthSvc))
	router.POST("/login", loginHandler(deps.AuthSvc))

	protected := router.Group("", authMiddleware(deps.Tokens))
	protected.GET("/products", listProductsHandler(deps.CatalogSvc))
	protected.POST("/save-cart", saveCartHandler(deps.OrderSvc))
	protected.POST("/complete-order", completeOrderHandler(deps.OrderSvc))
	protected.GET("/user-orders", userOrdersHandler(deps.OrderSvc))

	admin := protected.Group("", adminOnly())
	admin.POST("/products", createProductHandler(deps.CatalogSvc))
	admin.PUT("/products/:id", updateProductHandler(deps.CatalogSvc))
	admin.DELETE("/products/:id", deleteProductHandler(deps.CatalogSvc))
	admin.GET("/admin-orders", adminOrdersHandler(deps.OrderSvc))
	admin.DELETE("/delete-orders", deleteOrdersHandler(deps.OrderSvc))

	return router, nil
}
