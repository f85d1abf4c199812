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

	"github.com/rs/zerolog"

	"github.com/ownergate/gatekeeper/internal/api"
	"github.com/ownergate/gatekeeper/internal/api/middleware"
	"github.com/ownergate/gatekeeper/internal/core/ports"
	"github.com/ownergate/gatekeeper/internal/core/service"
	"github.com/ownergate/gatekeeper/internal/infrastructure/config"
	"github.com/ownergate/gatekeeper/internal/infrastructure/db/memory"
	mongostore "github.com/ownergate/gatekeeper/internal/infrastructure/db/mongo"
	"github.com/ownergate/gatekeeper/internal/infrastructure/db/postgres"
	redisstore "github.com/ownergate/gatekeeper/internal/infrastructure/db/redis"
	"github.com/ownergate/gatekeeper/pkg/logger"
)

const shutdownTimeout = 10 * time.Second

// @title           Gatekeeper API
// @version         1.0
// @description     First-run bootstrap, OAuth login and session authorization.
// @BasePath        /
func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	if err := run(ctx); err != nil {
		fmt.Fprintf(os.Stderr, "gatekeeper: %v\n", err)
		os.Exit(1)
	}
}

func run(ctx context.Context) error {
	cfg, err := config.Load(ctx)
	if err != nil {
		return err
	}

	log := logger.Init(logger.Options{
		Level:   cfg.LogLevel,
		Pretty:  !cfg.IsProduction(),
		Service: "gatekeeper",
		Env:     cfg.Env,
	})

	st, err := openStores(ctx, cfg, log)
	if err != nil {
		return err
	}
	defer st.close()

	lock := service.NewSetupLock(st.config, log)
	enricher := service.NewSessionEnricher(st.admin, log)
	reset := service.NewResetAuthority(st.config, log)

	e := api.NewRouter(api.Deps{
		Log:       log,
		Enricher:  enricher,
		Lock:      lock,
		Setup:     lock,
		Bootstrap: service.NewBootstrapService(st.config, lock, log),
		Login:     service.NewLoginService(lock, enricher, log),
		State:     service.NewStateIssuer(cfg.OAuth.StateSecret, cfg.OAuth.StateTTL),
		Reset:     reset,
		Cookies:   middleware.Cookies{Secure: cfg.Session.CookieSecure},
		PublicURL: cfg.PublicURL,
		StateTTL:  cfg.OAuth.StateTTL,
		Pingers:   st.pingers,
	})

	errCh := make(chan error, 1)
	go func() {
		log.Info().Str("port", cfg.Port).Str("config_store", cfg.ConfigStore).Str("admin_store", cfg.AdminStore).Msg("http server starting")
		if err := e.Start(":" + cfg.Port); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- err
		}
		close(errCh)
	}()

	select {
	case err, ok := <-errCh:
		if ok {
			return fmt.Errorf("http server: %w", err)
		}
		return nil
	case <-ctx.Done():
	}

	log.Info().Msg("shutting down")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()
	if err := e.Shutdown(shutdownCtx); err != nil {
		return fmt.Errorf("http shutdown: %w", err)
	}
	return nil
}

type stores struct {
	config  ports.ConfigStore
	admin   ports.AdminLookup
	pingers map[string]ports.Pinger
	closers []func()
}

func (s *stores) close() {
	for i := len(s.closers) - 1; i >= 0; i-- {
		s.closers[i]()
	}
}

// openStores connects the configuration store and the optional admin-flag
// store selected by cfg. On error every connection opened so far is closed.
func openStores(ctx context.Context, cfg *config.Config, log zerolog.Logger) (st *stores, err error) {
	st = &stores{pingers: map[string]ports.Pinger{}}
	defer func() {
		if err != nil {
			st.close()
		}
	}()

	switch cfg.ConfigStore {
	case config.DriverRedis:
		cs, err := redisstore.Connect(ctx, redisstore.Config{
			Addr:     cfg.Redis.Addr,
			Password: cfg.Redis.Password,
			DB:       cfg.Redis.DB,
			Timeout:  cfg.Redis.Timeout,
			PoolSize: cfg.Redis.PoolSize,
		})
		if err != nil {
			return st, err
		}
		st.closers = append(st.closers, func() { _ = cs.Close() })
		st.config, st.pingers["redis"] = cs, cs
	case config.DriverMemory:
		log.Warn().Msg("using in-memory configuration store; state is lost on restart")
		cs := memory.NewConfigStore()
		st.config, st.pingers["memory"] = cs, cs
	}

	switch cfg.AdminStore {
	case config.DriverPostgres:
		db, err := postgres.Connect(ctx, postgres.Config{DSN: cfg.Postgres.DSN, Migrate: cfg.Postgres.Migrate})
		if err != nil {
			return st, err
		}
		st.closers = append(st.closers, func() { _ = db.Close() })
		repo := postgres.NewAdminRepository(db)
		st.admin, st.pingers["postgres"] = repo, repo
	case config.DriverMongo:
		db, err := mongostore.Connect(ctx, mongostore.Config{URI: cfg.Mongo.URI, Database: cfg.Mongo.Database})
		if err != nil {
			return st, err
		}
		st.closers = append(st.closers, func() {
			dctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
			defer cancel()
			_ = db.Client().Disconnect(dctx)
		})
		repo := mongostore.NewAdminRepository(db)
		st.admin, st.pingers["mongodb"] = repo, repo
	case config.DriverMemory:
		lookup := memory.NewAdminLookup()
		st.admin, st.pingers["admin-memory"] = lookup, lookup
	case config.DriverNone:
		log.Info().Msg("no admin store configured; admin flags come from the session cookie")
	}

	return st, nil
}
