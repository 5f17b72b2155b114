package app

import (
	"database/sql"
	"fmt"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/investimentigrugno/fluxxo/config"
	"github.com/investimentigrugno/fluxxo/internal/api"
	"github.com/investimentigrugno/fluxxo/internal/fixture"
	"github.com/investimentigrugno/fluxxo/internal/logger"
	"github.com/investimentigrugno/fluxxo/internal/marketdata"
	"github.com/investimentigrugno/fluxxo/internal/middleware"
	"github.com/investimentigrugno/fluxxo/internal/screener"
	"github.com/investimentigrugno/fluxxo/internal/service"
	"github.com/investimentigrugno/fluxxo/internal/storage"
	"github.com/investimentigrugno/fluxxo/internal/tradingview"
)

const defaultQuoteTimeout = 10 * time.Second

// Components are the wired dependencies shared by the HTTP server and the
// one-shot CLI commands.
type Components struct {
	Service service.ScreenerService
	DB      *sql.DB // nil when the audit log is disabled
}

// Close releases the database connection, if any.
func (c *Components) Close() {
	if c.DB != nil {
		_ = c.DB.Close()
	}
}

// Build wires the screener service from cfg.
//
// Responsibilities:
//   - Selects the query executor (remote scanner or fixture table).
//   - Loads the optional YAML profile overrides.
//   - Selects the market-data quote provider.
//   - Connects to PostgreSQL when the audit log is enabled.
func Build(cfg config.Config) (*Components, error) {
	exec, source, err := newExecutor(cfg)
	if err != nil {
		return nil, err
	}

	profiles := screener.DefaultProfiles()
	if cfg.Screener.ProfilesPath != "" {
		profiles, err = screener.LoadProfiles(cfg.Screener.ProfilesPath, profiles)
		if err != nil {
			return nil, err
		}
	}

	quotes, err := newQuoteProvider(cfg.MarketData)
	if err != nil {
		return nil, err
	}

	comp := &Components{}
	var runs storage.ScanRunRepository = storage.NopRepository{}
	if cfg.Postgres.Enabled {
		comp.DB, err = postgresOpener(cfg)
		if err != nil {
			return nil, fmt.Errorf("failed to initialize postgres: %w", err)
		}
		runs = storage.NewScanRunRepository(comp.DB)
	}

	comp.Service = service.NewScreenerService(service.Deps{
		Executor: exec,
		Quotes:   quotes,
		Runs:     runs,
		Profiles: profiles,
		Source:   source,
	})

	log := logger.With("app")
	log.Info().
		Str("screener", source).
		Str("marketdata", quotes.Name()).
		Bool("audit_log", comp.DB != nil).
		Msg("components ready")

	return comp, nil
}

// InitializeApp sets up all application dependencies and returns
// a fully configured Gin router, a cleanup function for graceful shutdown,
// and any error encountered during initialization.
//
// Returns:
//   - *gin.Engine: the configured Gin HTTP router.
//   - func(): cleanup function to be executed on shutdown.
//   - error: any initialization error that occurred.
func InitializeApp() (*gin.Engine, func(), error) {
	// Load global configuration
	cfg := config.AppConfig

	comp, err := Build(cfg)
	if err != nil {
		return nil, nil, err
	}

	middleware.ExposeErrorDetails(cfg.Server.ExposeErrorDetails)

	handler := api.NewHandler(comp.Service, cfg.Server.DefaultLang)
	router := api.NewRouter(handler, api.RouterConfig{
		CORSOrigin:     cfg.Server.CORSOrigin,
		RequestTimeout: cfg.Server.RequestTimeout,
		RateLimitRPM:   cfg.Server.RateLimitRPM,
		RateLimitBurst: cfg.Server.RateLimitBurst,
	})

	// Register health and readiness probes
	var ping func() error
	if comp.DB != nil {
		ping = comp.DB.Ping
	}
	api.NewHealthHandler(ping).Register(router)

	return router, comp.Close, nil
}

func newExecutor(cfg config.Config) (screener.Executor, string, error) {
	switch cfg.Screener.Backend {
	case config.BackendFixture:
		ex, err := fixture.Load(cfg.Screener.FixturePath)
		if err != nil {
			return nil, "", err
		}
		return ex, config.BackendFixture, nil
	case config.BackendTradingView, "":
		opts := []tradingview.ClientOption{}
		if cfg.Screener.Timeout > 0 {
			opts = append(opts, tradingview.WithTimeout(cfg.Screener.Timeout))
		}
		if cfg.Server.DefaultLang != "" {
			opts = append(opts, tradingview.WithLanguage(cfg.Server.DefaultLang))
		}
		return tradingview.NewClient(cfg.Screener.URL, opts...), tradingview.ProviderName, nil
	}
	return nil, "", fmt.Errorf("unknown screener backend %q", cfg.Screener.Backend)
}

func newQuoteProvider(cfg config.MarketDataConfig) (marketdata.Provider, error) {
	timeout := cfg.Timeout
	if timeout <= 0 {
		timeout = defaultQuoteTimeout
	}
	switch cfg.Backend {
	case config.MarketDataYahoo, "":
		return marketdata.NewYahooProvider(timeout), nil
	case config.MarketDataFinanceGo:
		return marketdata.NewFinanceGoProvider(timeout), nil
	}
	return nil, fmt.Errorf("unknown market data backend %q", cfg.Backend)
}
