package api

import (
	"time"

	"github.com/gin-gonic/gin"
	swaggerFiles "github.com/swaggo/files"
	ginSwagger "github.com/swaggo/gin-swagger"

	"github.com/investimentigrugno/fluxxo/internal/metrics"
	"github.com/investimentigrugno/fluxxo/internal/middleware"
)

// RouterConfig carries the HTTP-surface settings of NewRouter.
type RouterConfig struct {
	CORSOrigin     string
	RequestTimeout time.Duration
	RateLimitRPM   int
	RateLimitBurst int
}

// NewRouter creates a Gin engine with routes configured.
// It receives a Handler instance with all business logic already injected.
//
// Responsibilities:
//   - Registers global middlewares (RequestID, Logger, Recovery, ErrorHandler, metrics, CORS, RateLimiter).
//   - Bounds every request context with cfg.RequestTimeout.
//   - Mounts Swagger docs (/swagger/*any) and Prometheus (/metrics).
//   - Configures the screener routes under /api.
//
// Note:
//   - Health and readiness endpoints (/health, /healthz, /readyz) are registered in app.InitializeApp().
func NewRouter(handler *Handler, cfg RouterConfig) *gin.Engine {
	router := gin.New()

	// ─── Middlewares ───────────────────────────────
	router.Use(
		middleware.RequestID(),
		middleware.RequestLogger(),
		middleware.RecoveryMiddleware(),
		middleware.ErrorHandler,
		metrics.Middleware(),
		middleware.CORSMiddleware(cfg.CORSOrigin),
		middleware.RateLimitMiddleware(cfg.RateLimitRPM, cfg.RateLimitBurst),
		middleware.Timeout(cfg.RequestTimeout),
	)

	// ─── Swagger / metrics ────────────────────────
	router.GET("/swagger/*any", ginSwagger.WrapHandler(swaggerFiles.Handler))
	router.GET("/metrics", gin.WrapH(metrics.Handler()))

	// ─── API ──────────────────────────────────────
	api := router.Group("/api")
	{
		api.POST("/scan", handler.Scan)
		api.GET("/scan/history", handler.History)
		api.POST("/fundamental", handler.Fundamental)
		api.POST("/ticker/info", handler.TickerInfo)

		scr := api.Group("/screener")
		scr.POST("", handler.Scan)
		scr.POST("/multi-scan", handler.MultiScan)
		scr.POST("/fundamental", handler.Fundamental)
		scr.POST("/analyze-fundamental", handler.Analyze)
		scr.POST("/analyze-fundamental/fundamental", handler.BasicFundamental)
	}

	return router
}
