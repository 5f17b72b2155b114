package main

//
//  @title           fluxxo API
//  @version         1.0
//  @description     Stock screener: market scans, fundamentals, quotes and rule-based analysis.
//  @termsOfService  https://github.com/investimentigrugno/fluxxo
//  @contact.name    API Support
//  @contact.url     https://github.com/investimentigrugno/fluxxo
//  @license.name    MIT
//  @license.url     https://opensource.org/licenses/MIT
//  @host            localhost:5000
//  @BasePath        /
//  @schemes         http
//
//  @tag.name        screener
//  @tag.description Market scans and single-ticker lookups
//
//  @tag.name        ticker
//  @tag.description Quotes merged with the screener profile
//
//  @tag.name        health
//  @tag.description Liveness and readiness probes

import (
	"context"
	"errors"
	"fmt"
	"io"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	jsoniter "github.com/json-iterator/go"
	"github.com/spf13/cobra"

	"github.com/investimentigrugno/fluxxo/config"
	_ "github.com/investimentigrugno/fluxxo/docs" // swagger docs
	"github.com/investimentigrugno/fluxxo/internal/app"
	"github.com/investimentigrugno/fluxxo/internal/domain/models"
	"github.com/investimentigrugno/fluxxo/internal/logger"
	"github.com/investimentigrugno/fluxxo/internal/render"
	"github.com/investimentigrugno/fluxxo/internal/scoring"
	"github.com/investimentigrugno/fluxxo/internal/service"
)

var json = jsoniter.ConfigCompatibleWithStandardLibrary

// startServer initializes and starts the HTTP server in a separate goroutine.
//
// Parameters:
//   - router (http.Handler): The HTTP router (Gin Engine) configured with all routes.
//   - port (string): The port where the server will listen for incoming requests.
//
// Returns:
//   - *http.Server: The initialized HTTP server instance.
func startServer(router http.Handler, port string) *http.Server {
	server := &http.Server{
		Addr:              ":" + port,
		Handler:           router,
		ReadTimeout:       15 * time.Second,
		ReadHeaderTimeout: 10 * time.Second,
		WriteTimeout:      60 * time.Second,
		IdleTimeout:       60 * time.Second,
	}

	go func() {
		logger.L().Info().Str("port", port).Msg("server starting")
		if err := server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			logger.L().Fatal().Err(err).Msg("server failed to start")
		}
	}()

	return server
}

// gracefulShutdown gracefully terminates the HTTP server and cleans up resources
// when an OS interrupt signal (SIGINT, SIGTERM) is received.
//
// Parameters:
//   - ctx (context.Context): A context with timeout for graceful shutdown.
//   - server (*http.Server): The HTTP server instance to shut down.
//   - cleanup (func()): Cleanup callback to release resources (e.g., DB connections).
func gracefulShutdown(ctx context.Context, server *http.Server, cleanup func()) {
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, os.Interrupt, syscall.SIGTERM)

	<-quit
	logger.L().Info().Msg("shutting down server")

	shutdownCtx, cancel := context.WithTimeout(ctx, 10*time.Second)
	defer cancel()

	if err := server.Shutdown(shutdownCtx); err != nil {
		logger.L().Fatal().Err(err).Msg("server forced to shutdown")
	}

	cleanup()
	logger.L().Info().Msg("server exited gracefully")
}

// newRootCmd builds the fluxxo command tree.
//
// Commands:
//   - serve (default): Starts the REST API. --port overrides PORT.
//   - scan: Runs one scan and prints it as a table, or JSON with --json.
//   - info TICKER: Prints the merged quote and profile of one ticker.
func newRootCmd() *cobra.Command {
	root := &cobra.Command{
		Use:           "fluxxo",
		Short:         "Stock screener API and CLI",
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRun: func(cmd *cobra.Command, args []string) {
			// Load configuration from environment or .env file
			config.LoadConfig()
			// Initialize JSON logger
			logger.Init()
		},
	}

	serve := newServeCmd()
	root.AddCommand(serve, newScanCmd(), newInfoCmd())
	root.RunE = serve.RunE
	root.Flags().AddFlagSet(serve.Flags())

	return root
}

func newServeCmd() *cobra.Command {
	var port string
	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Start the HTTP API",
		RunE: func(cmd *cobra.Command, args []string) error {
			if port == "" {
				port = config.AppConfig.Server.Port
			}
			logger.L().Info().Msg("starting API server")

			router, cleanup, err := app.InitializeApp()
			if err != nil {
				return fmt.Errorf("app init: %w", err)
			}

			server := startServer(router, port)
			gracefulShutdown(cmd.Context(), server, cleanup)
			return nil
		},
	}
	cmd.Flags().StringVar(&port, "port", "", "Port for the API server (default from PORT)")
	return cmd
}

func newScanCmd() *cobra.Command {
	var (
		filter  string
		asJSON  bool
		ranked  bool
		top     int
		columns []string
	)
	cmd := &cobra.Command{
		Use:   "scan",
		Short: "Run one market scan",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			svc, closeFn, err := buildService()
			if err != nil {
				return err
			}
			defer closeFn()

			p := models.QueryParameters{FilterType: models.ParseFilterType(filter)}
			run := svc.Scan
			if ranked {
				run = svc.MultiScan
			}
			res, err := run(cmd.Context(), p)
			if err != nil {
				return err
			}
			if top > 0 {
				res.Stocks = scoring.Top(res.Stocks, top)
			}

			if asJSON {
				return writeJSON(cmd.OutOrStdout(), res.Stocks)
			}
			cols := columns
			if len(cols) == 0 && ranked {
				cols = append([]string{"InvestmentScore"}, render.DefaultScanColumns...)
			}
			render.Scan(cmd.OutOrStdout(), res.Stocks, render.Options{Columns: cols, Color: isTerminal(cmd.OutOrStdout())})
			return nil
		},
	}
	cmd.Flags().StringVar(&filter, "filter", string(models.FilterAll), "Filter overlay: all, top_score, value, growth, dividend, momentum")
	cmd.Flags().BoolVar(&asJSON, "json", false, "Print rows as JSON")
	cmd.Flags().BoolVar(&ranked, "rank", false, "Score and rank rows by investment score")
	cmd.Flags().IntVar(&top, "top", 0, "Keep only the first N rows (0 keeps all)")
	cmd.Flags().StringSliceVar(&columns, "columns", nil, "Columns to print (table output only)")
	return cmd
}

func newInfoCmd() *cobra.Command {
	var asJSON bool
	cmd := &cobra.Command{
		Use:   "info TICKER",
		Short: "Show price, currency, name and sector of one ticker",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			ticker := models.NormalizeTicker(args[0])
			if ticker == "" {
				return errors.New("ticker required")
			}
			svc, closeFn, err := buildService()
			if err != nil {
				return err
			}
			defer closeFn()

			info, err := svc.TickerInfo(cmd.Context(), ticker)
			if err != nil {
				return err
			}
			if asJSON {
				return writeJSON(cmd.OutOrStdout(), info)
			}
			render.TickerInfo(cmd.OutOrStdout(), info)
			return nil
		},
	}
	cmd.Flags().BoolVar(&asJSON, "json", false, "Print as JSON")
	return cmd
}

// buildService is an indirection for tests.
var buildService = func() (service.ScreenerService, func(), error) {
	comp, err := app.Build(config.AppConfig)
	if err != nil {
		return nil, nil, err
	}
	return comp.Service, comp.Close, nil
}

func writeJSON(w io.Writer, v any) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(v)
}

func isTerminal(w io.Writer) bool {
	f, ok := w.(*os.File)
	if !ok {
		return false
	}
	st, err := f.Stat()
	return err == nil && st.Mode()&os.ModeCharDevice != 0
}

// main is the entry point of the fluxxo application.
func main() {
	if err := newRootCmd().Execute(); err != nil {
		fmt.Fprintln(os.Stderr, "error:", err)
		os.Exit(1)
	}
}
