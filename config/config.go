package config

import (
	"fmt"
	"log"
	"strings"
	"time"

	"github.com/spf13/viper"
)

// Config holds the full application configuration loaded from environment variables or .env file.
//
// It is composed of smaller structs that represent different concerns of the system:
// the HTTP server, the screener backend, the market-data backend and the optional
// Postgres audit log.
//
// Example ENV equivalent:
//
//	PORT=5000
//	SCREENER_BACKEND=tradingview
//	SCREENER_URL=https://scanner.tradingview.com
//	MARKETDATA_BACKEND=yahoo
//	POSTGRES_ENABLED=false
type Config struct {
	Server     ServerConfig     // HTTP server configuration
	Screener   ScreenerConfig   // Stock screener query service
	MarketData MarketDataConfig // Quote provider used by /api/ticker/info
	Postgres   PostgresConfig   // Optional scan-run audit log
}

// ServerConfig holds HTTP server settings.
type ServerConfig struct {
	Port               string        // TCP port the HTTP server listens on (e.g., "5000")
	CORSOrigin         string        // Value of Access-Control-Allow-Origin
	RequestTimeout     time.Duration // Deadline attached to every request context
	RateLimitRPM       int           // Sustained requests per minute per client IP, 0 disables limiting
	RateLimitBurst     int           // Burst size per client IP
	ExposeErrorDetails bool          // Echo raw internal error text in the "details" field
	DefaultLang        string        // Language used when Accept-Language does not match
}

// ScreenerConfig selects and configures the query executor.
//
// Fields:
//   - Backend: "tradingview" (remote scanner) or "fixture" (offline table).
//   - URL: scanner base URL, the market path and "/scan" are appended per query.
//   - Timeout: HTTP client timeout for one scanner call.
//   - FixturePath: JSON or CSV table used by the fixture backend.
//   - ProfilesPath: optional YAML file overriding market/field tables.
type ScreenerConfig struct {
	Backend      string
	URL          string
	Timeout      time.Duration
	FixturePath  string
	ProfilesPath string
}

// MarketDataConfig selects the quote provider ("yahoo" or "financego").
type MarketDataConfig struct {
	Backend string
	Timeout time.Duration
}

// PostgresConfig defines connection details for PostgreSQL.
//
// Fields:
//   - Enabled: when false the audit log is a no-op and no connection is opened.
//   - Host: hostname of the database server.
//   - Port: port number of the database server (default 5432).
//   - User: username for authentication.
//   - Password: password for authentication.
//   - DBName: target database name.
//   - SSLMode: SSL mode (e.g., "disable", "require").
//   - Migrate: apply the embedded goose migrations on startup.
//   - URL: computed DSN used by database/sql to connect.
type PostgresConfig struct {
	Enabled  bool
	Migrate  bool
	Host     string
	Port     int
	User     string
	Password string
	DBName   string
	SSLMode  string
	URL      string
}

const (
	BackendTradingView = "tradingview"
	BackendFixture     = "fixture"

	MarketDataYahoo     = "yahoo"
	MarketDataFinanceGo = "financego"
)

// AppConfig is the globally accessible configuration instance.
//
// It is populated once via LoadConfig() and used throughout the application.
var AppConfig Config

// LoadConfig initializes the global AppConfig by reading from .env file
// or directly from environment variables.
//
// Precedence (from lowest to highest):
//  1. Defaults set in this function.
//  2. Values from .env file (if present).
//  3. Environment variables.
//
// Fatal exit:
//   - If required variables are missing or invalid, validateConfig() terminates the app
//     with a descriptive log message.
func LoadConfig() {
	setDefaults()

	// Optionally read from .env if present (common in local dev)
	viper.SetConfigFile(".env")
	_ = viper.ReadInConfig() // ignore error if no .env

	viper.AutomaticEnv()

	AppConfig = fromViper()

	validateConfig()
}

func setDefaults() {
	viper.SetDefault("PORT", "5000")
	viper.SetDefault("CORS_ORIGIN", "*")
	viper.SetDefault("REQUEST_TIMEOUT", "30s")
	viper.SetDefault("RATE_LIMIT_RPM", 120)
	viper.SetDefault("RATE_LIMIT_BURST", 30)
	viper.SetDefault("EXPOSE_ERROR_DETAILS", false)
	viper.SetDefault("DEFAULT_LANG", "en")

	viper.SetDefault("SCREENER_BACKEND", BackendTradingView)
	viper.SetDefault("SCREENER_URL", "https://scanner.tradingview.com")
	viper.SetDefault("SCREENER_TIMEOUT", "30s")
	viper.SetDefault("SCREENER_FIXTURE", "")
	viper.SetDefault("SCREENER_PROFILES", "")

	viper.SetDefault("MARKETDATA_BACKEND", MarketDataYahoo)
	viper.SetDefault("MARKETDATA_TIMEOUT", "10s")

	viper.SetDefault("POSTGRES_ENABLED", false)
	viper.SetDefault("POSTGRES_MIGRATE", true)
	viper.SetDefault("POSTGRES_HOST", "localhost")
	viper.SetDefault("POSTGRES_PORT", 5432)
	viper.SetDefault("POSTGRES_USER", "postgres")
	viper.SetDefault("POSTGRES_PASSWORD", "postgres")
	viper.SetDefault("POSTGRES_DB", "fluxxo")
	viper.SetDefault("POSTGRES_SSLMODE", "disable")
}

func fromViper() Config {
	cfg := Config{
		Server: ServerConfig{
			Port:               viper.GetString("PORT"),
			CORSOrigin:         viper.GetString("CORS_ORIGIN"),
			RequestTimeout:     viper.GetDuration("REQUEST_TIMEOUT"),
			RateLimitRPM:       viper.GetInt("RATE_LIMIT_RPM"),
			RateLimitBurst:     viper.GetInt("RATE_LIMIT_BURST"),
			ExposeErrorDetails: viper.GetBool("EXPOSE_ERROR_DETAILS"),
			DefaultLang:        strings.ToLower(viper.GetString("DEFAULT_LANG")),
		},
		Screener: ScreenerConfig{
			Backend:      strings.ToLower(viper.GetString("SCREENER_BACKEND")),
			URL:          strings.TrimRight(viper.GetString("SCREENER_URL"), "/"),
			Timeout:      viper.GetDuration("SCREENER_TIMEOUT"),
			FixturePath:  viper.GetString("SCREENER_FIXTURE"),
			ProfilesPath: viper.GetString("SCREENER_PROFILES"),
		},
		MarketData: MarketDataConfig{
			Backend: strings.ToLower(viper.GetString("MARKETDATA_BACKEND")),
			Timeout: viper.GetDuration("MARKETDATA_TIMEOUT"),
		},
		Postgres: PostgresConfig{
			Enabled:  viper.GetBool("POSTGRES_ENABLED"),
			Migrate:  viper.GetBool("POSTGRES_MIGRATE"),
			Host:     viper.GetString("POSTGRES_HOST"),
			Port:     viper.GetInt("POSTGRES_PORT"),
			User:     viper.GetString("POSTGRES_USER"),
			Password: viper.GetString("POSTGRES_PASSWORD"),
			DBName:   viper.GetString("POSTGRES_DB"),
			SSLMode:  viper.GetString("POSTGRES_SSLMODE"),
		},
	}
	cfg.Postgres.URL = cfg.Postgres.DSN()
	return cfg
}

// DSN builds the Postgres connection string used by database/sql.
func (p PostgresConfig) DSN() string {
	return fmt.Sprintf(
		"postgres://%s:%s@%s:%d/%s?sslmode=%s",
		p.User,
		p.Password,
		p.Host,
		p.Port,
		p.DBName,
		p.SSLMode,
	)
}

// validateConfig ensures required variables are present and terminates
// the application if they are missing.
func validateConfig() {
	if problems := AppConfig.problems(); len(problems) > 0 {
		log.Fatalf("invalid configuration: %v\n", problems)
	}
}

// problems lists every missing or invalid key. Postgres keys are only
// checked when the audit log is enabled.
func (c Config) problems() []string {
	var out []string

	if c.Server.Port == "" {
		out = append(out, "PORT")
	}
	// RATE_LIMIT_RPM=0 turns limiting off; the burst only matters when it is on.
	if c.Server.RateLimitRPM < 0 {
		out = append(out, "RATE_LIMIT_RPM")
	}
	if c.Server.RateLimitRPM > 0 && c.Server.RateLimitBurst < 1 {
		out = append(out, "RATE_LIMIT_BURST")
	}

	switch c.Screener.Backend {
	case BackendTradingView:
		if c.Screener.URL == "" {
			out = append(out, "SCREENER_URL")
		}
	case BackendFixture:
		if c.Screener.FixturePath == "" {
			out = append(out, "SCREENER_FIXTURE")
		}
	default:
		out = append(out, "SCREENER_BACKEND")
	}

	switch c.MarketData.Backend {
	case MarketDataYahoo, MarketDataFinanceGo:
	default:
		out = append(out, "MARKETDATA_BACKEND")
	}

	if c.Postgres.Enabled {
		if c.Postgres.Host == "" {
			out = append(out, "POSTGRES_HOST")
		}
		if c.Postgres.Port == 0 {
			out = append(out, "POSTGRES_PORT")
		}
		if c.Postgres.User == "" {
			out = append(out, "POSTGRES_USER")
		}
		if c.Postgres.DBName == "" {
			out = append(out, "POSTGRES_DB")
		}
	}

	return out
}
