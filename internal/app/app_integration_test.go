//go:build integration
// +build integration

package app_test

import (
	"context"
	"fmt"
	"net/http"
	"net/http/httptest"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/docker/go-connections/nat"
	tc "github.com/testcontainers/testcontainers-go"
	"github.com/testcontainers/testcontainers-go/wait"

	"github.com/investimentigrugno/fluxxo/config"
	"github.com/investimentigrugno/fluxxo/internal/app"
)

func startPG(t *testing.T) (host string, port nat.Port, terminate func()) {
	t.Helper()
	ctx := context.Background()
	req := tc.ContainerRequest{
		Image:        "postgres:15-alpine",
		ExposedPorts: []string{"5432/tcp"},
		Env: map[string]string{
			"POSTGRES_DB":       "fluxxo",
			"POSTGRES_USER":     "postgres",
			"POSTGRES_PASSWORD": "postgres",
		},
		WaitingFor: wait.ForSQL("5432/tcp", "postgres", func(h string, p nat.Port) string {
			return fmt.Sprintf("host=%s port=%s user=postgres password=postgres dbname=fluxxo sslmode=disable", h, p.Port())
		}).WithStartupTimeout(60 * time.Second),
	}
	c, err := tc.GenericContainer(ctx, tc.GenericContainerRequest{ContainerRequest: req, Started: true})
	if err != nil {
		t.Fatalf("container: %v", err)
	}
	h, err := c.Host(ctx)
	if err != nil {
		t.Fatalf("host: %v", err)
	}
	mp, err := c.MappedPort(ctx, "5432/tcp")
	if err != nil {
		t.Fatalf("port: %v", err)
	}
	return h, mp, func() { _ = c.Terminate(context.Background()) }
}

// TestAPI_E2E_ScanIsAudited migrates a fresh database on startup, runs a
// fixture-backed scan and reads it back from the history endpoint.
func TestAPI_E2E_ScanIsAudited(t *testing.T) {
	host, port, term := startPG(t)
	defer term()

	old := config.AppConfig
	t.Cleanup(func() { config.AppConfig = old })
	config.AppConfig = config.Config{
		Server: config.ServerConfig{Port: "0", CORSOrigin: "*", RequestTimeout: 10 * time.Second, RateLimitRPM: 600, RateLimitBurst: 100, DefaultLang: "en"},
		Screener: config.ScreenerConfig{
			Backend:     config.BackendFixture,
			FixturePath: filepath.Join("..", "fixture", "testdata", "universe.json"),
		},
		MarketData: config.MarketDataConfig{Backend: config.MarketDataYahoo, Timeout: time.Second},
		Postgres: config.PostgresConfig{
			Enabled:  true,
			Migrate:  true,
			Host:     host,
			Port:     port.Int(),
			User:     "postgres",
			Password: "postgres",
			DBName:   "fluxxo",
			SSLMode:  "disable",
		},
	}

	router, cleanup, err := app.InitializeApp()
	if err != nil {
		t.Fatalf("init app: %v", err)
	}
	defer cleanup()

	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodPost, "/api/scan", strings.NewReader(`{"filterType":"value"}`))
	req.Header.Set("X-Request-ID", "e2e-scan")
	router.ServeHTTP(w, req)
	if w.Code != http.StatusOK {
		t.Fatalf("scan status: %d body=%s", w.Code, w.Body.String())
	}

	w = httptest.NewRecorder()
	router.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/api/scan/history?limit=5", nil))
	if w.Code != http.StatusOK {
		t.Fatalf("history status: %d body=%s", w.Code, w.Body.String())
	}
	body := w.Body.String()
	if !strings.Contains(body, `"request_id":"e2e-scan"`) || !strings.Contains(body, `"filter_type":"value"`) || !strings.Contains(body, `"row_count":2`) {
		t.Fatalf("scan run not audited: %s", body)
	}

	w = httptest.NewRecorder()
	router.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/readyz", nil))
	if w.Code != http.StatusOK {
		t.Fatalf("readyz status: %d", w.Code)
	}
}
