package main

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gorilla/mux"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/igorsal/api-console/api/handlers"
	"github.com/igorsal/api-console/api/middleware"
	"github.com/igorsal/api-console/internal/activity"
	"github.com/igorsal/api-console/internal/config"
	"github.com/igorsal/api-console/internal/executor"
	"github.com/igorsal/api-console/internal/interfaces"
	internalmw "github.com/igorsal/api-console/internal/middleware"
	"github.com/igorsal/api-console/internal/services"
	"github.com/igorsal/api-console/io/upstream"
	"github.com/igorsal/api-console/io/vendor"
	"github.com/igorsal/api-console/pkg/logger"
	"github.com/igorsal/api-console/pkg/metrics"
)

const (
	DefaultVersion  = "1.0.0"
	ShutdownTimeout = 30 * time.Second
	IdleTimeout     = 120 * time.Second
)

// Application holds all dependencies
type Application struct {
	config     *config.Config
	logger     interfaces.Logger
	metrics    interfaces.MetricsCollector
	dispatcher interfaces.Dispatcher
	importer   interfaces.Importer
	server     *http.Server
}

func main() {
	app, err := initializeApplication()
	if err != nil {
		fmt.Printf("Failed to initialize application: %v\n", err)
		os.Exit(1)
	}

	app.logger.Info("Starting API console service",
		"version", DefaultVersion,
		"environment", os.Getenv("ENVIRONMENT"),
	)

	if err := app.run(); err != nil {
		app.logger.Fatal("Application failed to run", err)
	}
}

// initializeApplication wires every dependency from configuration
func initializeApplication() (*Application, error) {
	cfg, err := config.Load()
	if err != nil {
		return nil, fmt.Errorf("failed to load configuration: %w", err)
	}

	log := logger.NewAdapter(cfg.Logging.Level, cfg.Logging.Format)
	collector := metrics.NewPrometheusCollector(prometheus.DefaultRegisterer)

	sender := upstream.NewClient(cfg.Upstream, log, collector)
	vendorClient := vendor.NewClient(sender, cfg.Vendor, log)

	app := &Application{
		config:     cfg,
		logger:     log,
		metrics:    collector,
		dispatcher: executor.NewDispatcher(sender, activity.New(), log),
		importer: services.NewImporterService(vendorClient, cfg.Vendor.ReasonID, log, collector,
			services.WithRateLimit(cfg.Bulk.RateLimit),
		),
	}

	app.setupServer()

	return app, nil
}

// setupServer configures the HTTP server with all routes and middleware
func (app *Application) setupServer() {
	limit := app.config.Server.MaxBodyBytes

	healthHandler := handlers.NewHealthHandler(app.logger, DefaultVersion)
	requestHandler := handlers.NewRequestHandler(app.dispatcher, app.logger, limit)
	vendorHandler := handlers.NewVendorHandler(app.importer, app.logger, limit)
	rowsHandler := handlers.NewRowsHandler(app.logger, limit)

	router := mux.NewRouter()

	// Apply global middleware in order
	router.Use(middleware.PanicRecoveryMiddleware(app.logger))
	router.Use(middleware.MetricsMiddleware(app.metrics))
	router.Use(internalmw.LoggingMiddleware(app.logger))
	router.Use(internalmw.CORSMiddleware())

	router.HandleFunc("/health", healthHandler.Handle).Methods(http.MethodGet)
	router.Handle("/metrics", promhttp.Handler()).Methods(http.MethodGet)

	api := router.PathPrefix("/api").Subrouter()
	api.HandleFunc("/request", requestHandler.Handle).Methods(http.MethodPost, http.MethodOptions)
	api.HandleFunc("/sendRequest", vendorHandler.SendProduct).Methods(http.MethodPost, http.MethodOptions)
	api.HandleFunc("/bulkImport", vendorHandler.BulkImport).Methods(http.MethodPost, http.MethodOptions)
	api.HandleFunc("/inventory/sendInventoryAdjustment", vendorHandler.SendInventoryAdjustment).Methods(http.MethodPost, http.MethodOptions)
	api.HandleFunc("/inventory/bulkInventoryAdjustment", vendorHandler.BulkInventoryAdjustment).Methods(http.MethodPost, http.MethodOptions)
	api.HandleFunc("/rows/parse", rowsHandler.Parse).Methods(http.MethodPost, http.MethodOptions)

	app.server = &http.Server{
		Addr:         fmt.Sprintf("%s:%s", app.config.Server.Host, app.config.Server.Port),
		Handler:      router,
		ReadTimeout:  app.config.Server.ReadTimeout,
		WriteTimeout: app.config.Server.WriteTimeout,
		IdleTimeout:  IdleTimeout,
	}
}

// run starts the application and handles graceful shutdown
func (app *Application) run() error {
	serverErrors := make(chan error, 1)

	go func() {
		app.logger.Info("Starting HTTP server",
			"host", app.config.Server.Host,
			"port", app.config.Server.Port,
		)

		if err := app.server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			serverErrors <- err
		}
	}()

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	select {
	case err := <-serverErrors:
		return fmt.Errorf("server failed to start: %w", err)

	case <-ctx.Done():
		app.logger.Info("Shutdown signal received")
		return app.gracefulShutdown()
	}
}

// gracefulShutdown waits for in-flight requests, bulk runs included, up to
// ShutdownTimeout and then forces the listener closed.
func (app *Application) gracefulShutdown() error {
	app.logger.Info("Starting graceful shutdown")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), ShutdownTimeout)
	defer cancel()

	if err := app.server.Shutdown(shutdownCtx); err != nil {
		app.logger.Error("Graceful shutdown failed", err)
		if closeErr := app.server.Close(); closeErr != nil {
			app.logger.Error("Force shutdown also failed", closeErr)
		}
		return fmt.Errorf("server shutdown failed: %w", err)
	}

	app.logger.Info("Graceful shutdown completed successfully")
	return nil
}
