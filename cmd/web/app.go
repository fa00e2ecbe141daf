package main

import (
	"net/http"
	"os"
	"time"

	"nestview-web/internal/handlers"
	"nestview-web/internal/middleware"
	"nestview-web/internal/session"
	"nestview-web/internal/uploads"
	"nestview-web/pkg/backend"
	"nestview-web/pkg/cache"
	"nestview-web/pkg/config"
	"nestview-web/pkg/logger"
	"nestview-web/pkg/metrics"

	"github.com/gin-gonic/gin"
	"golang.org/x/time/rate"
)

// App represents the application structure
type App struct {
	Config            *config.Config
	Router            *gin.Engine
	RecoveryHandler   *handlers.RecoveryHandler
	VerifyHandler     *handlers.VerifyHandler
	ListingsHandler   *handlers.ListingsHandler
	WishlistHandler   *handlers.WishlistHandler
	PropertiesHandler *handlers.PropertiesHandler
	AccountHandler    *handlers.AccountHandler
	AdminHandler      *handlers.AdminHandler
	SessionGateway    session.Gateway
	SessionCodec      *session.CookieCodec
	RateLimiter       *middleware.RateLimiter
	Server            *http.Server
}

// Create and initialize a new App instance
func NewApp(cfg *config.Config) *App {
	app := &App{Config: cfg}

	// Initialize infrastructure
	app.initializeCache()
	app.initializeMetrics()
	app.initializeRateLimiter()

	// Initialize business logic
	app.initializeDependencies()

	// Initialize web layer
	app.initializeRouter()

	return app
}

// initialize the Redis cache
func (a *App) initializeCache() {
	if err := cache.InitRedis(&cache.RedisConfig{
		Host:     a.Config.Redis.Host,
		Port:     a.Config.Redis.Port,
		Password: a.Config.Redis.Password,
		DB:       a.Config.Redis.DB,
	}); err != nil {
		logger.GlobalLogger.Errorf("Failed to initialize Redis: %v", err)
		os.Exit(1)
	}
}

// initialize Prometheus metrics
func (a *App) initializeMetrics() {
	metrics.Init()
}

// initialize the rate limiter
func (a *App) initializeRateLimiter() {
	a.RateLimiter = middleware.NewRateLimiter(rate.Limit(100/60.0), 10)
	go a.RateLimiter.Cleanup()
}

// initialize all dependencies
func (a *App) initializeDependencies() {
	store := cache.NewRedisStore(cache.RedisClient)

	// sessions
	provider := session.NewProvider(a.Config.Identity.BaseURL)
	sessionStore := session.NewStore(store, time.Duration(a.Config.Session.TTLHours)*time.Hour)
	a.SessionGateway = session.NewGateway(provider, sessionStore)
	a.SessionCodec = session.NewCookieCodec(a.Config.Session.Secret)

	// backend client; the bearer token rides on the request context so a
	// single shared client serves every session
	api := backend.NewClient(a.Config.Backend.BaseURL, backend.TokenSourceFunc(session.TokenFromContext))

	// caches
	listingPages := cache.NewKeyed(store)
	wishlists := cache.NewKeyed(store)

	// preview staging
	previews := uploads.NewTempPreviewStore(os.TempDir())

	// handlers
	a.RecoveryHandler = handlers.NewRecoveryHandler(api)
	a.VerifyHandler = handlers.NewVerifyHandler(api)
	a.ListingsHandler = handlers.NewListingsHandler(api, listingPages)
	a.WishlistHandler = handlers.NewWishlistHandler(api, wishlists)
	a.PropertiesHandler = handlers.NewPropertiesHandler(api, previews)
	a.AccountHandler = handlers.NewAccountHandler(api, a.SessionGateway, provider, a.SessionCodec)
	a.AdminHandler = handlers.NewAdminHandler(api)
}

// set up the Gin router with middleware and routes
func (a *App) initializeRouter() {
	a.Router = gin.New()
	a.setupMiddleware()
	a.setupRoutes()
}

// cleanup operations
func (a *App) cleanup() {
	cache.CloseRedis()
}
