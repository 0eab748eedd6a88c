// Command api serves the registry office accounts and cash items over HTTP.
//
// @title                       Cartorio API
// @version                     1.0
// @description                 Accounts and cash register items of the registry office.
// @BasePath                    /api/v1
// @securityDefinitions.apikey  BearerAuth
// @in                          header
// @name                        Authorization
// @description                 Type "Bearer" followed by a space and the access token.
package main

import (
	"context"
	"errors"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"
	_ "time/tzdata"

	"github.com/joho/godotenv"
	"github.com/rs/zerolog"

	"github.com/orius/cartorio-api/internal/api"
	"github.com/orius/cartorio-api/internal/core/ports"
	"github.com/orius/cartorio-api/internal/core/service"
	"github.com/orius/cartorio-api/internal/infrastructure/audit"
	"github.com/orius/cartorio-api/internal/infrastructure/db/mongo"
	"github.com/orius/cartorio-api/internal/infrastructure/db/postgres"
	"github.com/orius/cartorio-api/internal/infrastructure/db/redis"
	"github.com/orius/cartorio-api/internal/infrastructure/http/handlers"
	"github.com/orius/cartorio-api/internal/infrastructure/queue"
	"github.com/orius/cartorio-api/internal/infrastructure/ratelimit"
	"github.com/orius/cartorio-api/internal/infrastructure/security"
	"github.com/orius/cartorio-api/internal/pkg/config"
	"github.com/orius/cartorio-api/pkg/logger"
)

const (
	shutdownTimeout = 15 * time.Second
	pruneInterval   = time.Minute
)

func main() {
	// A missing .env is fine; the environment may already be set.
	_ = godotenv.Load()

	cfg := config.Load()
	log := logger.Init(logger.Options{
		Level:   cfg.LogLevel,
		Pretty:  cfg.IsDevelopment(),
		Service: "cartorio-api",
	})

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	if err := run(ctx, cfg, log); err != nil {
		log.Fatal().Err(err).Msg("api stopped")
	}
}

func run(ctx context.Context, cfg *config.Config, log zerolog.Logger) error {
	// --- PostgreSQL ---
	db, err := postgres.Connect(ctx, postgres.Config{
		DSN:             cfg.Database.URL,
		MaxOpenConns:    cfg.Database.MaxOpenConns,
		MaxIdleConns:    cfg.Database.MaxIdleConns,
		ConnMaxLifetime: 30 * time.Minute,
	})
	if err != nil {
		return err
	}
	defer db.Close()

	if err := postgres.Migrate(ctx, db); err != nil {
		return err
	}
	log.Info().Msg("database migrations applied")

	checks := map[string]handlers.Check{"postgres": handlers.PostgresCheck(db)}

	// --- Security ---
	loc, err := cfg.Auth.Location()
	if err != nil {
		return err
	}
	tokens, err := security.NewJWTService(security.JWTConfig{
		Secret:         cfg.Auth.JWTSecret,
		Algorithm:      cfg.Auth.JWTAlgorithm,
		AccessTokenTTL: cfg.Auth.AccessTokenTTL(),
		Location:       loc,
	})
	if err != nil {
		return err
	}
	hasher := security.NewBcryptHasher(cfg.Auth.BcryptCost)

	// --- Login throttle: Redis when configured, otherwise per process ---
	var throttle ports.LoginThrottle
	if cfg.Redis.Addr != "" {
		rdb, err := redis.Connect(ctx, redis.Config{
			Addr:     cfg.Redis.Addr,
			Password: cfg.Redis.Password,
			DB:       cfg.Redis.DB,
		})
		if err != nil {
			return err
		}
		defer rdb.Close()

		throttle = redis.NewLoginThrottle(rdb, cfg.Auth.LoginMaxAttempts, cfg.Auth.LoginWindow)
		checks["redis"] = handlers.RedisCheck(rdb)
		log.Info().Str("addr", cfg.Redis.Addr).Msg("login throttle backed by redis")
	} else {
		mem := ratelimit.NewLoginThrottle(cfg.Auth.LoginMaxAttempts, cfg.Auth.LoginWindow)
		mem.StartPruning(ctx, pruneInterval)
		throttle = mem
	}

	// --- Audit trail: MongoDB when configured, otherwise the log ---
	var sink ports.AuditRepository
	if cfg.Mongo.URI != "" {
		client, mdb, err := mongo.Connect(ctx, mongo.Config{
			URI:      cfg.Mongo.URI,
			Database: cfg.Mongo.Database,
		})
		if err != nil {
			return err
		}
		defer func() {
			if err := client.Disconnect(context.Background()); err != nil {
				log.Warn().Err(err).Msg("mongo disconnect")
			}
		}()

		repo := mongo.NewAuditRepository(mdb)
		if err := repo.EnsureIndexes(ctx); err != nil {
			return err
		}
		sink = repo
		checks["mongodb"] = handlers.MongoCheck(mdb)
	} else {
		sink = audit.NewLogSink(log)
	}

	// Workers outlive the signal so Close can drain what is queued.
	dispatcher := queue.NewDispatcher(cfg.Audit.Workers, sink, log)
	dispatcher.Start(context.WithoutCancel(ctx))
	defer dispatcher.Close()

	// --- Services ---
	accountRepo := postgres.NewAccountRepository(db)
	accounts := service.NewAccountService(accountRepo, hasher, tokens, throttle, dispatcher, log)
	cashItems := service.NewCashItemService(postgres.NewCashItemRepository(db))
	identity := service.NewIdentityService(tokens, accountRepo)

	e := api.NewRouter(api.Deps{
		Log:       log,
		APIPrefix: cfg.APIPrefix,
		Accounts:  accounts,
		CashItems: cashItems,
		Identity:  identity,
		Checks:    checks,
	})

	errCh := make(chan error, 1)
	go func() {
		log.Info().Str("port", cfg.Port).Str("env", cfg.Env).Msg("http server listening")
		if err := e.Start(":" + cfg.Port); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- err
		}
		close(errCh)
	}()

	select {
	case err := <-errCh:
		if err != nil {
			return err
		}
	case <-ctx.Done():
		log.Info().Msg("shutting down")
	}

	shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()
	return e.Shutdown(shutdownCtx)
}
