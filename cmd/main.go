package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"pizzeria-system/internal/cart"
	"pizzeria-system/internal/catalog"
	"pizzeria-system/internal/config"
	"pizzeria-system/internal/database"
	"pizzeria-system/internal/logger"
	"pizzeria-system/internal/messaging"
	"pizzeria-system/internal/models"
	"pizzeria-system/internal/pricing"
	"pizzeria-system/internal/services/kitchen"
	"pizzeria-system/internal/services/notification"
	"pizzeria-system/internal/services/ordering"
	"pizzeria-system/internal/services/pos"
)

func main() {
	var (
		mode              = flag.String("mode", "", "Service mode (ordering-service, pos-service, kitchen-subscriber, notification-subscriber)")
		port              = flag.Int("port", 3000, "HTTP port")
		workerName        = flag.String("worker-name", "", "Worker name (required for kitchen-subscriber mode)")
		station           = flag.String("station", "", "Kitchen station (pizza, wings, other; empty consumes all)")
		heartbeatInterval = flag.Int("heartbeat-interval", 30, "Heartbeat interval in seconds")
		prefetch          = flag.Int("prefetch", 1, "RabbitMQ prefetch count")
	)
	flag.Parse()

	if *mode == "" {
		fmt.Fprintf(os.Stderr, "Error: --mode flag is required\n")
		flag.Usage()
		os.Exit(1)
	}

	cfg, err := config.Load("config.yaml")
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error loading config: %v\n", err)
		os.Exit(1)
	}

	log := logger.New(*mode)
	requestID := logger.GenerateRequestID()

	log.Info("service_started", fmt.Sprintf("Starting %s", *mode), requestID, map[string]interface{}{
		"mode": *mode,
		"port": *port,
	})

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	sigChan := make(chan os.Signal, 1)
	signal.Notify(sigChan, syscall.SIGINT, syscall.SIGTERM)

	go func() {
		<-sigChan
		log.Info("graceful_shutdown", "Received shutdown signal", requestID, nil)
		cancel()
	}()

	switch *mode {
	case "ordering-service":
		err = runOrderingService(ctx, cfg, log, *port)
	case "pos-service":
		err = runPOSService(ctx, cfg, log, *port)
	case "kitchen-subscriber":
		if *workerName == "" {
			log.Error("validation_failed", "worker-name is required for kitchen-subscriber mode", requestID, nil, nil)
			os.Exit(1)
		}
		err = runKitchenSubscriber(ctx, cfg, log, *workerName, *station, *heartbeatInterval, *prefetch)
	case "notification-subscriber":
		err = runNotificationSubscriber(ctx, cfg, log, *prefetch)
	default:
		log.Error("validation_failed", fmt.Sprintf("Unknown mode: %s", *mode), requestID, nil, nil)
		os.Exit(1)
	}

	if err != nil {
		log.Error("service_failed", fmt.Sprintf("%s failed", *mode), requestID, err, nil)
		os.Exit(1)
	}

	log.Info("service_stopped", "Service stopped gracefully", requestID, nil)
}

// runOrderingService runs the customer-facing ordering HTTP service
func runOrderingService(ctx context.Context, cfg *config.Config, log *logger.Logger, port int) error {
	return runHTTPService(ctx, cfg, log, port, "ordering-service",
		func(db *database.DB, cat *catalog.Repository, publisher *messaging.Publisher, calc *cart.Calculator) http.Handler {
			service := ordering.NewService(db, cat, publisher, calc, pricing.ModeCustomer, log)
			handler := ordering.NewHandler(service, models.SourceOnline, "ordering-service", log)
			return handler.SetupRoutes()
		})
}

// runPOSService runs the tablet POS HTTP service
func runPOSService(ctx context.Context, cfg *config.Config, log *logger.Logger, port int) error {
	return runHTTPService(ctx, cfg, log, port, "pos-service",
		func(db *database.DB, cat *catalog.Repository, publisher *messaging.Publisher, calc *cart.Calculator) http.Handler {
			shared := ordering.NewService(db, cat, publisher, calc, pricing.ModePOS, log)
			service := pos.NewService(shared, db, cat, calc, log)
			handler := pos.NewHandler(service, "pos-service", log)
			return handler.SetupRoutes()
		})
}

// runHTTPService wires the shared infrastructure and serves HTTP until
// the context is cancelled
func runHTTPService(ctx context.Context, cfg *config.Config, log *logger.Logger, port int, name string,
	build func(*database.DB, *catalog.Repository, *messaging.Publisher, *cart.Calculator) http.Handler) error {

	requestID := logger.GenerateRequestID()

	db, err := database.New(cfg, log)
	if err != nil {
		return fmt.Errorf("failed to initialize database: %w", err)
	}
	defer db.Close()

	log.Info("db_connected", "Connected to PostgreSQL database", requestID, nil)

	if err := db.RunMigrations(ctx, "migrations"); err != nil {
		return fmt.Errorf("failed to run migrations: %w", err)
	}

	cat, err := catalog.NewRepository(ctx, db, log)
	if err != nil {
		return fmt.Errorf("failed to load catalog: %w", err)
	}

	conn, err := messaging.New(cfg, log)
	if err != nil {
		return fmt.Errorf("failed to initialize messaging: %w", err)
	}
	defer conn.Close()

	log.Info("rabbitmq_connected", "Connected to RabbitMQ", requestID, nil)

	publisher := messaging.NewPublisher(conn, log)
	calc := cart.NewCalculator(cfg.Pricing.TaxRate, cfg.Pricing.DeliveryFee)

	server := &http.Server{
		Addr:    fmt.Sprintf(":%d", port),
		Handler: build(db, cat, publisher, calc),
	}

	go func() {
		log.Info("service_started", fmt.Sprintf("%s listening on port %d", name, port), requestID, map[string]interface{}{
			"port": port,
		})
		if err := server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			log.Error("server_failed", "HTTP server failed", requestID, err, nil)
		}
	}()

	<-ctx.Done()

	shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer shutdownCancel()

	return server.Shutdown(shutdownCtx)
}

// runKitchenSubscriber runs a kitchen station worker
func runKitchenSubscriber(ctx context.Context, cfg *config.Config, log *logger.Logger,
	workerName, station string, heartbeatInterval, prefetch int) error {

	db, err := database.New(cfg, log)
	if err != nil {
		return fmt.Errorf("failed to initialize database: %w", err)
	}
	defer db.Close()

	conn, err := messaging.New(cfg, log)
	if err != nil {
		return fmt.Errorf("failed to initialize messaging: %w", err)
	}
	defer conn.Close()

	consumer := messaging.NewConsumer(conn, log, prefetch)
	publisher := messaging.NewPublisher(conn, log)

	worker, err := kitchen.NewWorker(workerName, station,
		time.Duration(heartbeatInterval)*time.Second, db, consumer, publisher, log)
	if err != nil {
		return err
	}

	return worker.Start(ctx)
}

// runNotificationSubscriber runs the notification display subscriber
func runNotificationSubscriber(ctx context.Context, cfg *config.Config, log *logger.Logger, prefetch int) error {
	conn, err := messaging.New(cfg, log)
	if err != nil {
		return fmt.Errorf("failed to initialize messaging: %w", err)
	}
	defer conn.Close()

	consumer := messaging.NewConsumer(conn, log, prefetch)
	subscriber := notification.NewSubscriber(consumer, log)

	return subscriber.Start(ctx)
}
