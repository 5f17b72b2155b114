package main

import (
	"bytes"
	"context"
	"net/http"
	"os"
	"path/filepath"
	"strings"
	"syscall"
	"testing"
	"time"

	"github.com/investimentigrugno/fluxxo/internal/fixture"
	"github.com/investimentigrugno/fluxxo/internal/service"
)

type dummyHandler struct{}

func (d dummyHandler) ServeHTTP(w http.ResponseWriter, r *http.Request) { w.WriteHeader(http.StatusOK) }

func TestStartServerAndShutdown(t *testing.T) {
	srv := startServer(dummyHandler{}, "0") // random port
	if srv == nil {
		t.Fatalf("expected server")
	}

	// Give server a moment to start
	time.Sleep(50 * time.Millisecond)

	shutdownCtx, c := context.WithTimeout(context.Background(), 100*time.Millisecond)
	defer c()
	if err := srv.Shutdown(shutdownCtx); err != nil && err != http.ErrServerClosed {
		t.Fatalf("shutdown err: %v", err)
	}
}

func TestGracefulShutdown_SignalPath(t *testing.T) {
	srv := startServer(dummyHandler{}, "0")

	cleaned := make(chan struct{}, 1)
	go func() {
		gracefulShutdown(context.Background(), srv, func() { close(cleaned) })
	}()

	// Give the goroutine time to set up signal notifications
	time.Sleep(50 * time.Millisecond)

	p, _ := os.FindProcess(os.Getpid())
	_ = p.Signal(syscall.SIGTERM)

	select {
	case <-cleaned:
	case <-time.After(2 * time.Second):
		t.Fatalf("cleanup not called after SIGTERM")
	}
}

func useFixtureService(t *testing.T) {
	t.Helper()
	ex, err := fixture.Load(filepath.Join("..", "internal", "fixture", "testdata", "universe.json"))
	if err != nil {
		t.Fatalf("load fixture: %v", err)
	}
	old := buildService
	buildService = func() (service.ScreenerService, func(), error) {
		return service.NewScreenerService(service.Deps{Executor: ex, Source: "fixture"}), func() {}, nil
	}
	t.Cleanup(func() { buildService = old })
}

func runCLI(t *testing.T, args ...string) (string, error) {
	t.Helper()
	var out bytes.Buffer
	cmd := newRootCmd()
	cmd.SetOut(&out)
	cmd.SetErr(&out)
	cmd.SetArgs(args)
	err := cmd.Execute()
	return out.String(), err
}

func TestScanCommand(t *testing.T) {
	useFixtureService(t)

	cases := []struct {
		name string
		args []string
		want []string
		skip []string
	}{
		{name: "json", args: []string{"scan", "--filter", "value", "--json"}, want: []string{`"ticker": "LSE:SHEL"`, `"ticker": "MIL:ENI"`}, skip: []string{"NASDAQ:AAPL"}},
		{name: "table", args: []string{"scan", "--filter", "growth"}, want: []string{"NASDAQ:AAPL", "AMEX:SPY"}, skip: []string{"MIL:ENI"}},
		{name: "ranked", args: []string{"scan", "--rank"}, want: []string{"INVESTMENTSCORE", "NASDAQ:MSFT"}},
		{name: "custom columns", args: []string{"scan", "--columns", "ticker,sector"}, want: []string{"SECTOR", "Energy Minerals"}},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			out, err := runCLI(t, tc.args...)
			if err != nil {
				t.Fatalf("scan: %v\n%s", err, out)
			}
			upper := strings.ToUpper(out)
			for _, w := range tc.want {
				if !strings.Contains(upper, strings.ToUpper(w)) {
					t.Fatalf("output missing %q:\n%s", w, out)
				}
			}
			for _, s := range tc.skip {
				if strings.Contains(out, s) {
					t.Fatalf("output should not contain %q:\n%s", s, out)
				}
			}
		})
	}
}

func TestScanCommand_Top(t *testing.T) {
	useFixtureService(t)

	out, err := runCLI(t, "scan", "--rank", "--top", "2", "--json")
	if err != nil {
		t.Fatalf("scan: %v", err)
	}
	if n := strings.Count(out, `"ticker":`); n != 2 {
		t.Fatalf("expected 2 rows, got %d:\n%s", n, out)
	}
	if !strings.Contains(out, `"InvestmentScore"`) {
		t.Fatalf("rows not scored:\n%s", out)
	}
}

func TestInfoCommand(t *testing.T) {
	useFixtureService(t)

	out, err := runCLI(t, "info", "nasdaq:aapl", "--json")
	if err != nil {
		t.Fatalf("info: %v", err)
	}
	if !strings.Contains(out, `"name": "Apple Inc."`) || !strings.Contains(out, `"sector": "Electronic Technology"`) {
		t.Fatalf("unexpected output:\n%s", out)
	}

	if _, err := runCLI(t, "info", "NYSE:NOPE"); err == nil {
		t.Fatalf("expected not-found error")
	}
	if _, err := runCLI(t, "info"); err == nil {
		t.Fatalf("expected argument error")
	}
}
