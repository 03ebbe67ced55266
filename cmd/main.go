package main

import (
	"context"
	"flag"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"comanda-system/internal/config"
	"comanda-system/internal/database"
	"comanda-system/internal/logger"
	"comanda-system/internal/messaging"
	"comanda-system/internal/models"
	"comanda-system/internal/services/catalog"
	"comanda-system/internal/services/notification"
	"comanda-system/internal/services/ordering"
	"comanda-system/internal/services/tab"
)

func main() {
	// Parse command line flags
	var (
		mode       = flag.String("mode", "", "Service mode (tab-service, notification-subscriber, seed-demo)")
		configPath = flag.String("config", "config.yaml", "Path to the configuration file")
		port       = flag.Int("port", 0, "HTTP port (tab-service, overrides config)")
		tenantID   = flag.Int64("cid", 1, "Tenant id to seed (seed-demo mode)")
		prefetch   = flag.Int("prefetch", 1, "RabbitMQ prefetch count")
	)
	flag.Parse()

	// Validate required mode flag
	if *mode == "" {
		fmt.Fprintf(os.Stderr, "Error: --mode flag is required\n")
		flag.Usage()
		os.Exit(1)
	}

	// Load configuration
	cfg, err := config.Load(*configPath)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error loading config: %v\n", err)
		os.Exit(1)
	}

	// Create logger
	log := logger.New(*mode)
	requestID := logger.GenerateRequestID()

	log.Info("service_started", fmt.Sprintf("Starting %s", *mode), requestID, map[string]interface{}{
		"mode": *mode,
	})

	// Set up graceful shutdown
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	sigChan := make(chan os.Signal, 1)
	signal.Notify(sigChan, syscall.SIGINT, syscall.SIGTERM)

	go func() {
		<-sigChan
		log.Info("graceful_shutdown", "Received shutdown signal", requestID, nil)
		cancel()
	}()

	// Route to appropriate service
	switch *mode {
	case "tab-service":
		if err := runTabService(ctx, cfg, log, *port); err != nil {
			log.Error("service_failed", "Tab service failed", requestID, err, nil)
			os.Exit(1)
		}
	case "notification-subscriber":
		if err := runNotificationSubscriber(ctx, cfg, log, *prefetch); err != nil {
			log.Error("service_failed", "Notification subscriber failed", requestID, err, nil)
			os.Exit(1)
		}
	case "seed-demo":
		if err := runSeedDemo(ctx, cfg, log, *tenantID); err != nil {
			log.Error("service_failed", "Demo seed failed", requestID, err, nil)
			os.Exit(1)
		}
	default:
		log.Error("validation_failed", fmt.Sprintf("Unknown mode: %s", *mode), requestID, nil, nil)
		os.Exit(1)
	}

	log.Info("service_stopped", "Service stopped gracefully", requestID, nil)
}

// runTabService runs the customer and staff HTTP API
func runTabService(ctx context.Context, cfg *config.Config, log *logger.Logger, port int) error {
	requestID := logger.GenerateRequestID()

	if port == 0 {
		port = cfg.App.Port
	}
	if port == 0 {
		port = 3000
	}

	// Initialize database
	db, err := database.New(cfg, log)
	if err != nil {
		return fmt.Errorf("failed to initialize database: %w", err)
	}
	defer db.Close()

	log.Info("db_connected", "Connected to PostgreSQL database", requestID, nil)

	// Run database migrations
	if err := db.RunMigrations(ctx, "migrations"); err != nil {
		return fmt.Errorf("failed to run migrations: %w", err)
	}

	// Initialize messaging
	conn, err := messaging.New(cfg, log)
	if err != nil {
		return fmt.Errorf("failed to initialize messaging: %w", err)
	}
	defer conn.Close()

	log.Info("rabbitmq_connected", "Connected to RabbitMQ", requestID, nil)

	publisher := messaging.NewPublisher(conn, log)

	// Wire up services and handler
	orderingSvc := ordering.NewService(ordering.NewRepository(db), publisher, log)
	catalogSvc := catalog.NewService(catalog.NewRepository(db), log)

	health := func(ctx context.Context) bool {
		return db.Ping(ctx) == nil && !conn.IsClosed()
	}
	handler := tab.NewHandler(orderingSvc, catalogSvc, cfg.App.BaseURL, health, log)

	server := &http.Server{
		Addr:    fmt.Sprintf(":%d", port),
		Handler: handler.Routes(),
	}

	// Start HTTP server in goroutine
	go func() {
		log.Info("service_started", fmt.Sprintf("Tab service started on port %d", port), requestID, map[string]interface{}{
			"port":     port,
			"base_url": cfg.App.BaseURL,
		})
		if err := server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Error("server_failed", "HTTP server failed", requestID, err, nil)
		}
	}()

	// Wait for shutdown signal
	<-ctx.Done()

	// Graceful shutdown
	shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer shutdownCancel()

	return server.Shutdown(shutdownCtx)
}

// runNotificationSubscriber consumes tab events and prints staff notifications
func runNotificationSubscriber(ctx context.Context, cfg *config.Config, log *logger.Logger, prefetch int) error {
	conn, err := messaging.New(cfg, log)
	if err != nil {
		return fmt.Errorf("failed to initialize messaging: %w", err)
	}
	defer conn.Close()

	consumer := messaging.NewConsumer(conn, log, messaging.StaffNotificationsQueue, "staff-notifier", prefetch)
	subscriber := notification.NewSubscriber(consumer, log)

	if err := subscriber.Start(ctx); err != nil && err != context.Canceled {
		return err
	}
	return nil
}

// runSeedDemo bootstraps the demo tenant and its sample catalog
func runSeedDemo(ctx context.Context, cfg *config.Config, log *logger.Logger, tenantID int64) error {
	requestID := logger.GenerateRequestID()

	db, err := database.New(cfg, log)
	if err != nil {
		return fmt.Errorf("failed to initialize database: %w", err)
	}
	defer db.Close()

	if err := db.RunMigrations(ctx, "migrations"); err != nil {
		return fmt.Errorf("failed to run migrations: %w", err)
	}

	catalogSvc := catalog.NewService(catalog.NewRepository(db), log)
	if err := catalogSvc.ResetDemoData(ctx, tenantID, models.DemoTenantName, models.DefaultDemoSeed(), requestID); err != nil {
		return fmt.Errorf("failed to seed demo data: %w", err)
	}

	log.Info("demo_seeded", fmt.Sprintf("Demo data created for company %d", tenantID), requestID, nil)
	return nil
}
