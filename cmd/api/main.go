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

	"marketplace_backend/internal/adapters"
	"marketplace_backend/internal/credits"
	"marketplace_backend/internal/credits/repository"
	"marketplace_backend/internal/email"
	"marketplace_backend/internal/events"
	apphttp "marketplace_backend/internal/http"
	"marketplace_backend/internal/http/router"
	"marketplace_backend/internal/marketplace"
	"marketplace_backend/internal/marketplace/catalog"
	"marketplace_backend/internal/notification"
	"marketplace_backend/internal/notification/sse"
	"marketplace_backend/internal/rfp"
	"marketplace_backend/internal/scheduler"
	"marketplace_backend/platform/config"
	"marketplace_backend/platform/db"
	"marketplace_backend/platform/httpkit"
	"marketplace_backend/platform/logger"
	"marketplace_backend/platform/validator"

	"github.com/gin-gonic/gin"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/redis/go-redis/v9"
	"golang.org/x/sync/errgroup"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		panic("failed to load config: " + err.Error())
	}

	// Initialize structured logger
	log := logger.New(cfg.Env)
	log.Info("starting server", "env", cfg.Env, "addr", cfg.HTTPAddr, "creditsStore", cfg.CreditsStore)

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	// ========================================================================
	// Infrastructure Layer
	// ========================================================================

	store, health, closeStore := initCreditsStore(ctx, cfg, log)
	defer closeStore()

	// Event bus for decoupled communication between modules
	eventBus := events.NewInMemoryBus(log)

	sender, err := email.NewSender(cfg)
	if err != nil {
		log.Error("failed to initialize email sender", "error", err)
		panic("failed to initialize email sender: " + err.Error())
	}

	// Shared validator instance for dependency injection
	val := validator.New()

	cat, err := catalog.Load()
	if err != nil {
		log.Error("failed to load marketplace catalog", "error", err)
		panic("failed to load marketplace catalog: " + err.Error())
	}
	log.Info("marketplace catalog loaded",
		"listings", len(cat.Listings),
		"proposals", len(cat.Proposals),
		"requests", len(cat.Requests),
	)

	// ========================================================================
	// Domain Modules (Composition Root)
	// ========================================================================

	stream := sse.New(log)
	defer stream.Close()

	// Notification module subscribes to domain events (not HTTP-facing)
	notificationModule := notification.New(sender, log)
	notificationModule.SetSSE(stream)
	notificationModule.RegisterHandlers(eventBus)

	closeAudit := initLedgerAudit(cfg, eventBus, log)
	defer closeAudit()

	marketplaceModule := marketplace.NewModule(cat, cfg, val, log)

	creditsModule := credits.NewModule(store, eventBus, val, log)
	creditsModule.SetPackageReader(adapters.NewCreditPackageReader(marketplaceModule.Service()))
	creditsModule.SetStream(stream.Handler(func(c *gin.Context) (string, bool) {
		id := httpkit.GetIdentity(c)
		return id.AccountID(), id.IsAuthenticated()
	}))

	// Anti-Corruption Layer: rfp depends on its own ports, not on credits or marketplace
	rfpModule := rfp.NewModule(
		marketplaceModule.Service(),
		adapters.NewRFPCreditLedger(creditsModule.Service()),
		eventBus,
		cfg,
		val,
		log,
	)

	// ========================================================================
	// HTTP Layer
	// ========================================================================

	app := &apphttp.App{
		Config:   cfg,
		Logger:   log,
		Health:   health,
		EventBus: eventBus,
		Modules: []apphttp.Module{
			marketplaceModule,
			creditsModule,
			rfpModule,
		},
	}

	srv := &http.Server{
		Addr:              cfg.HTTPAddr,
		Handler:           router.New(app),
		ReadHeaderTimeout: 10 * time.Second,
	}

	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		log.Info("server listening", "addr", cfg.HTTPAddr)
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			return err
		}
		return nil
	})
	g.Go(func() error {
		<-gctx.Done()
		log.Info("shutdown signal received, gracefully shutting down")
		// Streams hold connections open; close them before draining.
		stream.Close()
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer cancel()
		return srv.Shutdown(shutdownCtx)
	})

	if err := g.Wait(); err != nil {
		log.Error("server error", "error", err)
	}
	eventBus.Wait()
	log.Info("server stopped")
}

// initCreditsStore picks the ledger backend named by CREDITS_STORE.
func initCreditsStore(ctx context.Context, cfg *config.Config, log *logger.Logger) (repository.Store, []apphttp.HealthChecker, func()) {
	switch cfg.GetCreditsStore() {
	case config.CreditsStoreRedis:
		opt, err := redis.ParseURL(cfg.GetRedisURL())
		if err != nil {
			panic("invalid REDIS_URL: " + err.Error())
		}
		client := redis.NewClient(opt)
		if err := withRetry(ctx, log, "redis connection", 5, 2*time.Second, func() error {
			return client.Ping(ctx).Err()
		}); err != nil {
			log.Error("failed to connect to redis", "error", err)
			panic("failed to connect to redis: " + err.Error())
		}
		log.Info("credits store ready", "store", "redis", "ttl", cfg.GetCreditsSessionTTL())
		store := repository.NewRedisStore(client, cfg.GetCreditsInitialBalance(), cfg.GetCreditsSessionTTL())
		return store, []apphttp.HealthChecker{redisPinger{client}}, func() { _ = client.Close() }

	case config.CreditsStorePostgres:
		if err := withRetry(ctx, log, "database migrations", 5, 2*time.Second, func() error {
			return db.RunMigrations(ctx, cfg)
		}); err != nil {
			log.Error("failed to run database migrations", "error", err)
			panic("failed to run database migrations: " + err.Error())
		}
		log.Info("database migrations complete")

		var pool *pgxpool.Pool
		if err := withRetry(ctx, log, "database connection", 5, 2*time.Second, func() error {
			p, err := db.NewPool(ctx, cfg)
			if err != nil {
				return err
			}
			pool = p
			return nil
		}); err != nil {
			log.Error("failed to connect to database", "error", err)
			panic("failed to connect to database: " + err.Error())
		}
		log.Info("credits store ready", "store", "postgres")
		store := repository.NewPostgresStore(pool, cfg.GetCreditsInitialBalance())
		return store, []apphttp.HealthChecker{db.NewPoolAdapter(pool)}, pool.Close

	default:
		log.Info("credits store ready", "store", "memory")
		return repository.NewMemoryStore(cfg.GetCreditsInitialBalance()), nil, func() {}
	}
}

// initLedgerAudit queues an audit entry for every balance change when Redis is available.
func initLedgerAudit(cfg config.SchedulerConfig, bus events.Bus, log *logger.Logger) func() {
	if cfg.GetRedisURL() == "" {
		log.Warn("REDIS_URL not configured; credits ledger audit disabled")
		return func() {}
	}

	client, err := scheduler.NewClient(cfg)
	if err != nil {
		log.Error("failed to initialize ledger audit client", "error", err)
		return func() {}
	}

	scheduler.NewLedgerAudit(client, log).RegisterHandlers(bus)
	return func() {
		_ = client.Close()
	}
}

type redisPinger struct {
	client *redis.Client
}

func (p redisPinger) Ping(ctx context.Context) error {
	return p.client.Ping(ctx).Err()
}

func withRetry(ctx context.Context, log *logger.Logger, name string, attempts int, baseDelay time.Duration, fn func() error) error {
	if attempts < 1 {
		return fmt.Errorf("%s: invalid retry attempts", name)
	}

	var lastErr error
	for attempt := 1; attempt <= attempts; attempt++ {
		if ctx.Err() != nil {
			return ctx.Err()
		}
		if err := fn(); err == nil {
			return nil
		} else {
			lastErr = err
			log.Warn("retryable operation failed", "operation", name, "attempt", attempt, "error", err)
		}

		if attempt < attempts {
			delay := time.Duration(attempt*attempt) * baseDelay
			select {
			case <-ctx.Done():
				return ctx.Err()
			case <-time.After(delay):
			}
		}
	}

	return errors.New(name + ": " + lastErr.Error())
}
