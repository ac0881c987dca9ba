package main

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"storefront/cmd"
	httpadapter "storefront/internal/adapters/in/http"
	"storefront/internal/adapters/out/memory"
	"storefront/internal/adapters/out/notify"
	"storefront/internal/adapters/out/postgres"
	"storefront/internal/adapters/out/rediscache"
	"storefront/internal/core/domain/model/catalog"
	"storefront/internal/core/domain/model/customer"
	"storefront/internal/core/domain/model/kernel"
	"storefront/internal/core/ports"
	"storefront/internal/metrics"

	"github.com/joho/godotenv"
	"github.com/labstack/echo/v4"
	"github.com/labstack/echo/v4/middleware"
	"github.com/labstack/gommon/log"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/redis/go-redis/v9"
	gormpostgres "gorm.io/driver/postgres"
	"gorm.io/gorm"
	gormlogger "gorm.io/gorm/logger"
)

const shutdownTimeout = 10 * time.Second

func main() {
	if err := godotenv.Load(".env"); err != nil {
		log.Info("No .env file loaded, using the process environment")
	}

	config, err := cmd.LoadConfig(os.Getenv)
	if err != nil {
		log.Fatalf("Invalid configuration: %v", err)
	}

	logger := slog.New(slog.NewJSONHandler(os.Stdout, nil))

	registry := prometheus.NewRegistry()
	registry.MustRegister(
		collectors.NewGoCollector(),
		collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}),
	)

	uowFactory, closeStorage, err := openStorage(config, logger)
	if err != nil {
		log.Fatalf("Failed to open storage: %v", err)
	}
	defer closeStorage()

	cache, closeCache := openCartCache(config, logger)
	defer closeCache()

	sink, closeSink := openNotificationSink(config, logger)
	defer closeSink()

	app := cmd.NewCompositionRoot(config, uowFactory, cache, sink, registry, logger)

	jobManager := app.CreateJobManager()
	if err = jobManager.StartAll(); err != nil {
		log.Fatalf("Failed to start jobs: %v", err)
	}
	defer jobManager.StopAll()

	runWebServer(app, config, registry, logger)
}

// openStorage returns the unit of work factory for the configured STORAGE backend.
func openStorage(config cmd.Config, logger *slog.Logger) (ports.UnitOfWorkFactory, func(), error) {
	if config.Storage == cmd.StorageMemory {
		store := memory.NewStore()
		seedDemoData(store, logger)
		return memory.NewUnitOfWorkFactory(store), func() {}, nil
	}

	db, err := gorm.Open(gormpostgres.Open(config.DSN()), &gorm.Config{
		Logger: gormlogger.Default.LogMode(gormlogger.Warn),
	})
	if err != nil {
		return nil, nil, fmt.Errorf("connect to postgres: %w", err)
	}
	if err = postgres.Migrate(db); err != nil {
		return nil, nil, err
	}

	closeDB := func() {
		if sqlDB, sqlErr := db.DB(); sqlErr == nil {
			_ = sqlDB.Close()
		}
	}
	return postgres.NewGormUnitOfWorkFactory(db), closeDB, nil
}

func openCartCache(config cmd.Config, logger *slog.Logger) (ports.CartCache, func()) {
	if config.RedisAddr == "" {
		logger.Info("REDIS_ADDR not set, cart views are not cached")
		return rediscache.NopCartCache{}, func() {}
	}

	client := redis.NewClient(&redis.Options{
		Addr:     config.RedisAddr,
		Password: config.RedisPassword,
	})
	ctx, cancel := context.WithTimeout(context.Background(), 3*time.Second)
	defer cancel()
	if err := client.Ping(ctx).Err(); err != nil {
		logger.Warn("redis is not reachable, cart cache requests will fail over to storage",
			"addr", config.RedisAddr, "error", err)
	}
	return rediscache.NewCartCache(client), func() { _ = client.Close() }
}

func openNotificationSink(config cmd.Config, logger *slog.Logger) (notify.Sink, func()) {
	if len(config.KafkaBrokers) == 0 {
		logger.Info("KAFKA_BROKERS not set, order notifications are written to the log")
		return notify.NewLogSink(logger), func() {}
	}

	sink := notify.NewKafkaSink(config.KafkaBrokers, config.KafkaOrderEventsTopic)
	return sink, func() {
		if err := sink.Close(); err != nil {
			logger.Error("failed to close kafka writer", "error", err)
		}
	}
}

func runWebServer(app *cmd.CompositionRoot, config cmd.Config, registry *prometheus.Registry, logger *slog.Logger) {
	serverMetrics := metrics.NewServerMetrics(registry)

	e := echo.New()
	e.HideBanner = true
	e.Use(middleware.Recover())
	e.Use(serverMetrics.Middleware())

	httpadapter.RegisterHandlers(e, app.CreateHTTPServer(), config.StaffToken)
	e.GET("/metrics", echo.WrapHandler(metrics.Handler(registry)))

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	go func() {
		address := fmt.Sprintf("0.0.0.0:%s", config.HTTPPort)
		logger.Info("HTTP server starting", "address", address, "storage", config.Storage)
		if err := e.Start(address); err != nil && !errors.Is(err, http.ErrServerClosed) {
			logger.Error("HTTP server error", "error", err)
			stop()
		}
	}()

	<-ctx.Done()
	logger.Info("Shutting down")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()
	if err := e.Shutdown(shutdownCtx); err != nil {
		e.Logger.Error(err)
	}
}

// seedDemoData gives the in-memory backend a customer and a few products to play with.
func seedDemoData(store *memory.Store, logger *slog.Logger) {
	user := customer.User{
		ID:     kernel.NewUUID(),
		Name:   "Demo Customer",
		Email:  "demo@example.com",
		Phone:  "0901234567",
		Active: true,
	}
	store.SaveUser(user)
	store.SaveAddress(customer.Address{
		ID:            kernel.NewUUID(),
		UserID:        user.ID,
		RecipientName: user.Name,
		Phone:         user.Phone,
		Line:          "12 Le Loi, District 1, Ho Chi Minh City",
	})

	products := []struct {
		name  string
		price int64
		stock int
	}{
		{"Desk Lamp", 250000, 25},
		{"Notebook", 45000, 200},
		{"Fountain Pen", 180000, 10},
	}
	for _, p := range products {
		price, err := kernel.MoneyFromInt(p.price)
		if err != nil {
			log.Fatalf("Invalid demo price: %v", err)
		}
		product := catalog.Product{ID: kernel.NewUUID(), Name: p.name, Price: price, Stock: p.stock, Active: true}
		store.SaveProduct(product)
		logger.Info("Demo product", "id", product.ID.String(), "name", product.Name, "stock", product.Stock)
	}
	logger.Info("Demo customer", "id", user.ID.String(), "header", httpadapter.UserIDHeader)
}
