// @title        Task API
// @version      1.0
// @description  Session-authenticated personal task list.
// @BasePath     /
package main

import (
	"context"
	"errors"
	"net"
	"net/http"
	"os"
	"os/signal"
	"syscall"

	"github.com/gorilla/securecookie"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/rs/zerolog"

	"github.com/tasktracker/task-api/internal/api"
	"github.com/tasktracker/task-api/internal/api/handler"
	"github.com/tasktracker/task-api/internal/api/metrics"
	"github.com/tasktracker/task-api/internal/core/service"
	"github.com/tasktracker/task-api/internal/infrastructure/config"
	"github.com/tasktracker/task-api/internal/infrastructure/db/gormdb"
	"github.com/tasktracker/task-api/internal/infrastructure/session"
	"github.com/tasktracker/task-api/internal/pkg/hasher"
	"github.com/tasktracker/task-api/pkg/logger"
)

func main() {
	if err := run(); err != nil {
		l := logger.Init(logger.Options{})
		l.Fatal().Err(err).Msg("task-api stopped")
	}
}

func run() error {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	cfg, err := config.Load(ctx)
	if err != nil {
		return err
	}

	log := logger.Init(logger.Options{
		Level:   cfg.LogLevel,
		Pretty:  !cfg.IsProduction(),
		Service: "task-api",
	})

	db, err := gormdb.Connect(ctx, gormdb.Config{
		Driver:  cfg.Database.Driver,
		DSN:     cfg.Database.URL,
		Timeout: cfg.Database.QueryTimeout,
	})
	if err != nil {
		return err
	}
	defer func() {
		if err := gormdb.Close(db); err != nil {
			log.Warn().Err(err).Msg("closing database")
		}
	}()
	if err := gormdb.Migrate(db); err != nil {
		return err
	}
	log.Info().Str("driver", cfg.Database.Driver).Msg("database ready")

	pw, err := hasher.New(cfg.Security.Salt, cfg.Security.SaltRounds, hasher.Scheme(cfg.Security.Scheme))
	if err != nil {
		return err
	}

	store := session.NewMemoryStore(cfg.Session.IdleTimeout)
	store.Start(ctx, cfg.Session.SweepInterval, func(removed int) {
		metrics.SessionsExpiredTotal.Add(float64(removed))
		log.Debug().Int("removed", removed).Msg("expired sessions swept")
	})

	cookies := session.NewCookieCodec(
		cfg.Session.CookieName,
		sessionHashKey(cfg, log),
		blockKey(cfg.Session.BlockKey),
		cfg.IsProduction(),
	)

	reg := prometheus.NewRegistry()
	reg.MustRegister(collectors.NewGoCollector(), collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}))
	if err := metrics.Register(reg, store.Len); err != nil {
		return err
	}

	e := api.NewRouter(api.Deps{
		AuthService: service.NewAuthService(
			gormdb.NewUserRepository(db, cfg.Database.QueryTimeout),
			pw,
			store,
			logger.Component("auth"),
		),
		TaskService: service.NewTaskService(
			gormdb.NewTaskRepository(db, cfg.Database.QueryTimeout),
			logger.Component("tasks"),
		),
		Sessions: store,
		Cookies:  cookies,
		Checks: map[string]handler.Check{
			"database": func(ctx context.Context) error {
				return gormdb.Ping(ctx, db, cfg.Database.QueryTimeout)
			},
		},
		Registry:       reg,
		AllowedOrigins: cfg.AllowedOrigins,
		Logger:         logger.Component("http"),
	})

	srv := api.NewServer(net.JoinHostPort("", cfg.Port), e)
	errCh := make(chan error, 1)
	go func() {
		log.Info().Str("addr", srv.Addr).Str("env", cfg.Env).Msg("listening")
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- err
		}
		close(errCh)
	}()

	select {
	case err := <-errCh:
		return err
	case <-ctx.Done():
	}

	log.Info().Msg("shutting down")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), cfg.ShutdownTimeout)
	defer cancel()
	return srv.Shutdown(shutdownCtx)
}

// sessionHashKey returns the configured cookie signing key. Outside
// production a missing key is replaced by a random one.
func sessionHashKey(cfg *config.Config, log zerolog.Logger) []byte {
	if cfg.Session.HashKey != "" {
		return []byte(cfg.Session.HashKey)
	}
	log.Warn().Msg("SESSION_HASH_KEY not set; using a random key")
	return securecookie.GenerateRandomKey(32)
}

func blockKey(k string) []byte {
	if k == "" {
		return nil
	}
	return []byte(k)
}
