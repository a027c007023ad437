package main

import (
	"context"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/go-redis/redis/v8"

	"cr-records/internal/admin"
	"cr-records/internal/cart"
	"cr-records/internal/checkout"
	"cr-records/internal/config"
	"cr-records/internal/contact"
	"cr-records/internal/events"
	applogger "cr-records/internal/logger"
	"cr-records/internal/ratelimit"
	"cr-records/internal/store"
	"cr-records/internal/web"
)

func main() {
	cfg := config.Load()

	logger := applogger.NewLogger()
	defer logger.Close()
	logger.Info("APP", "Starting Cyrus Reigns Records storefront")

	ctx := context.Background()

	logger.Info("DB", fmt.Sprintf("Opening %s store", cfg.Store.Driver))
	var (
		backing *store.BunStore
		err     error
	)
	switch cfg.Store.Driver {
	case "postgres":
		backing, err = store.OpenPostgres(cfg.Store.PostgresDSN)
	default:
		backing, err = store.OpenSQLite(cfg.Store.SQLitePath)
	}
	if err != nil {
		logger.Fatal("DB", fmt.Sprintf("Store open failed: %v", err))
	}
	defer backing.Close()

	if err := backing.Migrate(ctx); err != nil {
		logger.Fatal("DB", fmt.Sprintf("Migration failed: %v", err))
	}
	if err := backing.HealthCheck(ctx); err != nil {
		logger.Fatal("DB", fmt.Sprintf("Store health check failed: %v", err))
	}
	logger.Info("DB", "Store ready")

	data := store.NewCollections(backing, logger)

	var producer *events.Producer
	if cfg.Kafka.Enabled || cfg.Kafka.MockMode {
		if cfg.Kafka.Enabled && !cfg.Kafka.MockMode {
			if err := events.EnsureTopic(cfg.Kafka.Brokers, cfg.Kafka.Topic); err != nil {
				logger.Warn("KAFKA", fmt.Sprintf("Topic creation might have failed: %v", err))
			}
		}
		producer = events.NewProducer(cfg.Kafka.Brokers, cfg.Kafka.Topic, logger, cfg.Kafka.MockMode)
		defer producer.Close()
		logger.Info("KAFKA", fmt.Sprintf("Order event producer ready (topic %s)", cfg.Kafka.Topic))
	} else {
		logger.Info("KAFKA", "Order event publishing disabled")
	}

	var limiter ratelimit.Limiter
	if cfg.Redis.Enabled {
		redisClient := redis.NewClient(&redis.Options{Addr: cfg.Redis.Addr})
		if err := redisClient.Ping(ctx).Err(); err != nil {
			logger.Fatal("REDIS", fmt.Sprintf("Redis connection failed: %v", err))
		}
		defer redisClient.Close()
		limiter = ratelimit.NewRedisLimiter(redisClient, "contact", cfg.Contact.RateLimitMax, cfg.Contact.RateLimitWindow)
		logger.Info("REDIS", "Contact rate limiter backed by Redis")
	} else {
		limiter = ratelimit.NewMemoryLimiter(cfg.Contact.RateLimitMax, cfg.Contact.RateLimitWindow)
		logger.Info("APP", "Contact rate limiter running in-process")
	}

	// Assigning a nil *Producer straight into the interface params would make
	// them non-nil and break the services' publisher checks.
	var checkoutPub checkout.Publisher
	var adminPub admin.Publisher
	if producer != nil {
		checkoutPub = producer
		adminPub = producer
	}

	cartService := cart.NewService(data, logger)
	checkoutService := checkout.NewService(cartService, data, checkoutPub, logger, cfg.Payment)
	adminService := admin.NewService(data, adminPub, logger, cfg.Admin)
	relay := contact.NewRelay(&http.Client{Timeout: 10 * time.Second}, logger, cfg.Contact)
	if !relay.Configured() {
		logger.Warn("CONTACT", "Telegram relay not configured, contact form will fail")
	}

	logger.Info("HTTP", "Setting up router and middleware")
	router := web.NewRouter(web.RouterDeps{
		Cart:          &web.CartHandler{Cart: cartService},
		Checkout:      &web.CheckoutHandler{Checkout: checkoutService},
		Admin:         &web.AdminHandler{Admin: adminService, Logger: logger},
		Contact:       &web.ContactHandler{Relay: relay, Limiter: limiter, Logger: logger},
		Static:        &web.StaticHandler{Dir: cfg.Server.StaticDir},
		BasicAuthUser: cfg.Admin.BasicAuthUser,
		BasicAuthPass: cfg.Admin.BasicAuthPass,
		Logger:        logger,
	})

	server := &http.Server{
		Addr:         cfg.Server.Port,
		Handler:      router,
		ReadTimeout:  cfg.Server.ReadTimeout,
		WriteTimeout: cfg.Server.WriteTimeout,
		IdleTimeout:  cfg.Server.IdleTimeout,
	}

	go func() {
		logger.Info("HTTP", fmt.Sprintf("🚀 Storefront running on %s", cfg.Server.Port))
		if err := server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			logger.Fatal("HTTP", fmt.Sprintf("HTTP server error: %v", err))
		}
	}()

	stop := make(chan os.Signal, 1)
	signal.Notify(stop, syscall.SIGINT, syscall.SIGTERM)
	logger.Info("APP", "Storefront started successfully, waiting for shutdown signal")
	<-stop

	logger.Info("APP", "Shutdown signal received, initiating graceful shutdown")
	ctxShutdown, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()

	if err := server.Shutdown(ctxShutdown); err != nil {
		logger.Error("HTTP", fmt.Sprintf("Server shutdown failed: %v", err))
	} else {
		logger.Info("HTTP", "✅ Storefront shutdown complete")
	}
}
