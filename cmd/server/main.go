package main

import (
	"context"   // Lifecycle and Redis ping
	"errors"    // Error inspection
	"net/http"  // HTTP server
	"os"        // Signals
	"os/signal" // Graceful shutdown
	"syscall"   // SIGTERM

	"finance_tracker/internal/api"     // HTTP handlers and router
	"finance_tracker/internal/config"  // Configuration
	"finance_tracker/internal/db"      // Database connection and migration
	"finance_tracker/internal/service" // Credential service
	"finance_tracker/internal/store"   // Persistence
	"finance_tracker/internal/utils"   // Cache

	"github.com/gin-gonic/gin"     // Gin web framework
	"github.com/redis/go-redis/v9" // Redis client
	"github.com/sirupsen/logrus"   // Logrus for structured logging
	"golang.org/x/sync/errgroup"   // Server and shutdown goroutines
)

// Main function to set up and run the server
func main() {
	log := logrus.New()
	log.SetFormatter(&logrus.TextFormatter{FullTimestamp: true})

	cfg := config.LoadConfig() // Load configuration
	if err := cfg.Validate(); err != nil {
		log.Fatalf("invalid configuration: %v", err)
	}
	if cfg.IsProd {
		log.SetFormatter(&logrus.JSONFormatter{})
		gin.SetMode(gin.ReleaseMode) // Set Mode to Release if in production
	}

	if err := run(cfg, log); err != nil {
		log.Fatalf("server stopped: %v", err)
	}
	log.Info("bye")
}

// run owns every resource from startup to shutdown
func run(cfg *config.Config, log *logrus.Logger) error {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	gdb, err := db.Open(cfg, log)
	if err != nil {
		return err
	}
	defer db.Close(gdb)
	if cfg.DBDriver == config.DriverSQLite {
		// No separate migrate step for the embedded store
		if err := db.Migrate(gdb); err != nil {
			return err
		}
	}

	var rdb *redis.Client // Stays nil when caching is disabled
	if cfg.RedisAddr != "" {
		rdb = redis.NewClient(&redis.Options{
			Addr:     cfg.RedisAddr, // Redis server address
			Password: cfg.RedisPass, // Redis password
			DB:       cfg.RedisDB,   // Redis database number
		})
		defer rdb.Close()
		if err := rdb.Ping(ctx).Err(); err != nil {
			log.Warnf("redis unreachable, reads will hit the database: %v", err)
		}
	}

	creds := service.NewCredentialService(store.NewUserStore(gdb), cfg.JWTSecret)
	router := api.NewRouter(api.Deps{
		Credentials:    creds,
		Transactions:   store.NewTransactionStore(gdb),
		Cache:          utils.NewCache(rdb, cfg.CacheTTL),
		JWTSecret:      cfg.JWTSecret,
		RequestTimeout: cfg.RequestTimeout,
		Log:            log,
	})
	if err := router.SetTrustedProxies([]string{"127.0.0.1"}); err != nil {
		return err
	}

	srv := &http.Server{
		Addr:              ":" + cfg.AppPort,
		Handler:           router,
		ReadHeaderTimeout: cfg.RequestTimeout,
	}

	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		log.Infof("Server running on %s", cfg.AppPort)
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			return err
		}
		return nil
	})
	g.Go(func() error {
		<-gctx.Done()
		log.Info("shutting down...")
		shutdownCtx, cancel := context.WithTimeout(context.Background(), cfg.ShutdownTimeout)
		defer cancel()
		return srv.Shutdown(shutdownCtx)
	})
	return g.Wait()
}
