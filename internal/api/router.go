package api

import (
	"fmt"

	"github.com/labstack/echo-contrib/echoprometheus"
	"github.com/labstack/echo/v4"
	echomiddleware "github.com/labstack/echo/v4/middleware"
	"github.com/redis/go-redis/v9"
	"github.com/rs/zerolog"
	echoSwagger "github.com/swaggo/echo-swagger"
	"go.mongodb.org/mongo-driver/mongo"

	_ "github.com/chojuninengu/amega-ai/docs"
	"github.com/chojuninengu/amega-ai/internal/api/handler"
	"github.com/chojuninengu/amega-ai/internal/api/middleware"
	"github.com/chojuninengu/amega-ai/internal/core/domain"
	"github.com/chojuninengu/amega-ai/internal/core/ports"
	"github.com/chojuninengu/amega-ai/internal/core/service"
	"github.com/chojuninengu/amega-ai/internal/infrastructure/db/memory"
	mongoauth "github.com/chojuninengu/amega-ai/internal/infrastructure/db/mongo"
	redisdb "github.com/chojuninengu/amega-ai/internal/infrastructure/db/redis"
	"github.com/chojuninengu/amega-ai/internal/infrastructure/llm"
	"github.com/chojuninengu/amega-ai/internal/pkg/config"
)

// NewRouter builds the Echo instance with the full gatekeeping chain wired
// around every route. The middleware order is load-bearing and must not be
// reordered: security headers wrap everything, request validation runs
// before any auth cost, authentication precedes authorization, and rate
// limiting is the last gate before the business handler.
func NewRouter(cfg *config.Config, db *mongo.Database, rdb *redis.Client, log zerolog.Logger) (*echo.Echo, error) {
	e := echo.New()
	e.HideBanner = true
	e.Validator = handler.NewValidator()
	e.HTTPErrorHandler = NewHTTPErrorHandler(log)

	// --- Dependencies ---
	authRepo := mongoauth.NewAuthRepository(db)
	tokenService := service.NewTokenService(authRepo, cfg.Auth.JWTSecret, cfg.Auth.TokenTTL)
	authService := service.NewAuthService(authRepo, tokenService)
	chatService := service.NewChatService(newModelBackend(cfg.LLM, log))
	limiter := service.NewRateLimitService(newCounterStore(rdb), []domain.RateLimitTier{
		{Name: domain.TierDefault, Requests: cfg.RateLimit.DefaultRPM, WindowSeconds: 60},
		{Name: domain.TierAuthenticated, Requests: cfg.RateLimit.AuthRPM, WindowSeconds: 60},
		{Name: domain.TierChat, Requests: cfg.RateLimit.ChatRPM, WindowSeconds: 60},
	})

	// --- Route policy table ---
	policies := &middleware.Policies{
		Routes: map[string]middleware.RoutePolicy{
			"/api/v1/auth/register": {Tier: domain.TierDefault},
			"/api/v1/auth/token":    {Tier: domain.TierDefault},
			"/api/v1/users/me":      {RequiredRole: domain.RoleUser, Tier: domain.TierAuthenticated},
			"/api/v1/users":         {RequiredRole: domain.RoleAdmin, Tier: domain.TierAuthenticated},
			"/api/v1/chat":          {RequiredRole: domain.RoleUser, Tier: domain.TierChat},
		},
		PublicPrefixes: []string{
			"/api/v1/auth/",
			"/health",
			"/metrics",
			"/swagger",
		},
		DefaultDeny: cfg.Gate.DefaultDeny,
	}

	// --- Gatekeeping chain (fixed order) ---
	e.Use(middleware.SecurityHeaders())
	e.Use(echomiddleware.Recover())
	e.Use(echomiddleware.RequestID())
	e.Use(echoprometheus.NewMiddleware("amega"))
	e.Use(middleware.RequestValidation(cfg.Gate.MaxBodyBytes))
	e.Use(middleware.Auth(tokenService, policies))
	e.Use(middleware.RBAC(policies))
	e.Use(middleware.RateLimit(limiter, policies, cfg.RateLimit.FailOpen, log))

	// --- Handlers ---
	authHandler := handler.NewAuthHandler(authService)
	userHandler := handler.NewUserHandler(authService)
	chatHandler := handler.NewChatHandler(chatService)
	healthHandler := handler.NewHealthHandler()
	healthDepsHandler := handler.NewHealthDependenciesHandler(db, rdb)

	// --- Routes ---
	e.POST("/api/v1/auth/register", authHandler.Register)
	e.POST("/api/v1/auth/token", authHandler.Token)
	e.GET("/api/v1/users/me", userHandler.Me)
	e.GET("/api/v1/users", userHandler.List)
	e.POST("/api/v1/chat", chatHandler.Chat)

	e.GET("/health", healthHandler.Liveness)
	e.GET("/health/ready", healthDepsHandler.Readiness)
	e.GET("/metrics", echoprometheus.NewHandler())
	e.GET("/swagger/*", echoSwagger.WrapHandler)

	if err := auditRoutes(e, policies, log); err != nil {
		return nil, err
	}

	return e, nil
}

// auditRoutes verifies every registered route appears in the policy table or
// on the public allow-list. Under default-deny an unlisted route is a
// configuration error; in legacy permissive mode it is only logged, since
// unlisted routes silently become authenticated-public.
func auditRoutes(e *echo.Echo, policies *middleware.Policies, log zerolog.Logger) error {
	for _, route := range e.Routes() {
		if policies.IsPublic(route.Path) {
			continue
		}
		if _, ok := policies.Lookup(route.Path); ok {
			continue
		}
		if policies.DefaultDeny {
			return fmt.Errorf("route %s %s is neither declared nor public; add it to the policy table", route.Method, route.Path)
		}
		log.Warn().
			Str("method", route.Method).
			Str("path", route.Path).
			Msg("route has no declared policy; permissive mode exposes it to any authenticated user")
	}
	return nil
}

// newCounterStore picks the shared Redis counter store when a client is
// configured, otherwise the per-process in-memory store.
func newCounterStore(rdb *redis.Client) ports.CounterStore {
	if rdb != nil {
		return redisdb.NewCounterStore(rdb)
	}
	return memory.NewCounterStore()
}

// newModelBackend selects the chat backend from configuration.
func newModelBackend(cfg config.LLMConfig, log zerolog.Logger) ports.ModelBackend {
	if cfg.BaseURL == "" {
		log.Warn().Msg("LLM_BASE_URL not set; chat uses the static placeholder backend")
		return llm.NewStaticBackend("")
	}
	return llm.NewHTTPBackend(llm.Config{
		BaseURL: cfg.BaseURL,
		Model:   cfg.Model,
		APIKey:  cfg.APIKey,
		Timeout: cfg.Timeout,
	})
}
