package main

import (
	"context"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/clothsy/storefront/internal/api"
	"github.com/clothsy/storefront/internal/config"
	"github.com/clothsy/storefront/internal/health"
	"github.com/clothsy/storefront/internal/metrics"
	"github.com/clothsy/storefront/internal/notify"
	service "github.com/clothsy/storefront/internal/services"
	"github.com/clothsy/storefront/internal/token"
	"github.com/clothsy/storefront/internal/views"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/exporters/otlp/otlptrace/otlptracehttp"
	"go.opentelemetry.io/otel/sdk/resource"
	sdktrace "go.opentelemetry.io/otel/sdk/trace"
)

func main() {

	// Logger setup
	logger := slog.New(slog.NewJSONHandler(os.Stderr, nil))
	slog.SetDefault(logger)

	// Load config
	cfg := config.MustLoad()

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	// Tracing setup
	if cfg.Tracing.Enabled {
		shutdown, err := setupTracing(ctx, cfg)
		if err != nil {
			slog.Error("❌ Error setting up tracing", "error", err.Error())
			os.Exit(1)
		}

		defer func() {
			if err := shutdown(context.Background()); err != nil {
				slog.Error("⚠️ Error shutting down tracer provider", slog.String("error", err.Error()))
			}
		}()
	}

	// Token store + API client
	tokens := token.NewStore(cfg.Session.TokenPath(), cfg.Session.TokenTTL)

	apiClient, err := api.New(&cfg.API, tokens)
	if err != nil {
		slog.Error("❌ Error creating API client", "error", err.Error())
		os.Exit(1)
	}

	notifier := &notify.WriterNotifier{W: os.Stdout}

	sessionService := service.NewSessionService(apiClient, tokens, notifier)
	cartService := service.NewCartService(apiClient, sessionService, notifier)
	wishlistService := service.NewWishlistService(apiClient, sessionService, notifier)
	catalogService := service.NewCatalogService(apiClient)
	sellerService := service.NewSellerService(apiClient, sessionService, notifier)
	header := views.NewHeader(sessionService, cartService)

	slog.Info("storefront initialized", slog.String("env", cfg.Env), slog.String("api", cfg.API.BaseURL))

	// Optional local ops listener (/metrics, /healthz)
	var opsServer *http.Server

	if cfg.Ops.Addr != "" {
		healthHandler, err := health.NewHealthHandler(cfg)
		if err != nil {
			slog.Error("❌ Error creating health handler", "error", err.Error())
			os.Exit(1)
		}

		opsMux := http.NewServeMux()
		opsMux.Handle("GET /metrics", metrics.Handler())
		opsMux.Handle("GET /healthz", healthHandler.Handler())

		opsServer = &http.Server{
			Addr:    cfg.Ops.Addr,
			Handler: opsMux,
		}

		go func() {
			slog.Info("🚀 Ops listener starting", slog.String("address", cfg.Ops.Addr))

			if err := opsServer.ListenAndServe(); err != http.ErrServerClosed {
				slog.Error("❌ Ops listener failed", slog.Any("error", err.Error()))
			}
		}()
	}

	// Hydrate the session from a previously persisted token
	sessionService.CheckSession(ctx)

	done := make(chan os.Signal, 1)
	signal.Notify(done, os.Interrupt, syscall.SIGINT, syscall.SIGTERM)

	repl := &repl{
		session:  sessionService,
		cart:     cartService,
		wishlist: wishlistService,
		catalog:  catalogService,
		seller:   sellerService,
		header:   header,
		out:      os.Stdout,
	}

	finished := make(chan struct{})

	go func() {
		repl.run(ctx, os.Stdin)
		close(finished)
	}()

	select {
	case <-done:
		slog.Warn("🛑 Shutdown signal received.")
		cancel()
	case <-finished:
	}

	if opsServer != nil {
		shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer shutdownCancel()

		if err := opsServer.Shutdown(shutdownCtx); err != nil {
			slog.Error("⚠️ Ops listener shutdown encountered an issue", slog.String("error", err.Error()))
		}
	}

	slog.Info("✅ Storefront closed.")
}

func setupTracing(ctx context.Context, cfg *config.Config) (func(context.Context) error, error) {

	exporter, err := otlptracehttp.New(ctx,
		otlptracehttp.WithEndpoint(cfg.Tracing.Endpoint),
		otlptracehttp.WithInsecure(),
	)
	if err != nil {
		return nil, err
	}

	provider := sdktrace.NewTracerProvider(
		sdktrace.WithBatcher(exporter),
		sdktrace.WithResource(resource.NewSchemaless(
			attribute.String("service.name", "storefront"),
			attribute.String("deployment.environment", cfg.Env),
		)),
	)

	otel.SetTracerProvider(provider)

	return provider.Shutdown, nil
}
