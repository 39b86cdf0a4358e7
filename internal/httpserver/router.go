package httpserver

import (
	"context"
	"log"
	"net/http"
	"time"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"github.com/jackc/pgx/v5/pgxpool"

	"bookshop/internal/domain"
	"bookshop/internal/metrics"
	checkoutsvc "bookshop/internal/service/checkout"
	"bookshop/internal/session"
)

type catalogService interface {
	Search(ctx context.Context, query string) ([]domain.Book, error)
}

type userService interface {
	Register(ctx context.Context, username, password string) (*domain.User, error)
	Authenticate(ctx context.Context, username, password string) (*domain.User, error)
	Get(ctx context.Context, id int64) (*domain.User, error)
}

type cartService interface {
	Add(sessionID string, bookID int64) error
	Remove(sessionID string, bookID int64) error
	Clear(sessionID string) error
	Resolve(ctx context.Context, sessionID string) ([]domain.Book, float64, error)
}

type checkoutService interface {
	Present(ctx context.Context, bookID int64) (*domain.Book, error)
	Complete(ctx context.Context, bookID int64, in checkoutsvc.CompleteInput) (string, error)
}

// Deps carries everything buildRouter wires into the handlers.
type Deps struct {
	Sessions    *session.Store
	CatalogSvc  catalogService
	UserSvc     userService
	CartSvc     cartService
	CheckoutSvc checkoutService

	Metrics        *metrics.Collector
	MetricsHandler http.Handler

	SessionTTL   time.Duration
	CookieSecure bool
	CORSOrigin   string
}

// buildRouter wires routes for the API.
func buildRouter(logger *log.Logger, db *pgxpool.Pool, deps Deps) *gin.Engine {
	gin.SetMode(gin.ReleaseMode)
	router := gin.New()
	router.Use(gin.LoggerWithWriter(logger.Writer()), gin.Recovery())

	if deps.CORSOrigin != "" {
		// Credentialed requests, so no wildcard origin.
		router.Use(cors.New(cors.Config{
			AllowOrigins:     []string{deps.CORSOrigin},
			AllowMethods:     []string{"GET", "POST", "PUT", "PATCH", "DELETE", "OPTIONS"},
			AllowHeaders:     []string{"Content-Type"},
			AllowCredentials: true,
			MaxAge:           24 * time.Hour,
		}))
	}
	if deps.Metrics != nil {
		router.Use(metricsMiddleware(deps.Metrics))
	}

	// Probe and metrics routes are registered above the session middleware
	// so scrapes do not mint sessions.
	router.GET("/healthz", healthHandler)
	router.GET("/readyz", readyHandler(db))
	if deps.MetricsHandler != nil {
		router.GET("/metrics", gin.WrapH(deps.MetricsHandler))
	}

	router.Use(sessionMiddleware(deps.Sessions, deps.SessionTTL, deps.CookieSecure))

	router.GET("/", listBooksHandler(deps))
	router.GET("/about", aboutHandler(deps))

	router.GET("/login", loginPageHandler(deps))
	router.POST("/login", loginHandler(deps))
	router.GET("/signup", signupPageHandler(deps))
	router.POST("/signup", signupHandler(deps))
	router.GET("/logout", requireAuth(deps.Sessions), logoutHandler(deps))
	router.GET("/account", requireAuth(deps.Sessions), accountHandler(deps))

	router.GET("/checkout/:book_id", checkoutHandler(deps))
	router.POST("/complete_checkout/:book_id", completeCheckoutHandler(deps))

	router.GET("/cart", requireAuth(deps.Sessions), cartHandler(deps))
	router.GET("/add_to_cart/:book_id", addToCartHandler(deps))
	router.POST("/remove_from_cart/:book_id", removeFromCartHandler(deps))
	router.GET("/clear_cart", clearCartHandler(deps))

	return router
}
