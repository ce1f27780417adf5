package main

import (
	"context"
	"net/http"
	"os/signal"
	"syscall"
	"time"

	"github.com/rs/zerolog"

	"github.com/carlosbarreraacuna/helpdesk-frontend/internal/config"
	"github.com/carlosbarreraacuna/helpdesk-frontend/internal/database"
	"github.com/carlosbarreraacuna/helpdesk-frontend/internal/repository"
	"github.com/carlosbarreraacuna/helpdesk-frontend/internal/repository/memory"
	"github.com/carlosbarreraacuna/helpdesk-frontend/internal/repository/postgres"
	"github.com/carlosbarreraacuna/helpdesk-frontend/internal/repository/redis"
	"github.com/carlosbarreraacuna/helpdesk-frontend/internal/router"
	"github.com/carlosbarreraacuna/helpdesk-frontend/pkg/logger"
)

func main() {
	// config + logger
	cfg, err := config.Load()
	if err != nil {
		bootLog := logger.New("prod")
		bootLog.Fatal().Err(err).Msg("invalid config")
	}
	l := logger.New(cfg.Env)

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	// sessions
	sessions, closeStore, err := openSessions(ctx, l, cfg)
	if err != nil {
		l.Fatal().Err(err).Str("store", cfg.SessionStore).Msg("session store unavailable")
	}
	defer closeStore()

	// http
	r, err := router.New(l, sessions, cfg)
	if err != nil {
		l.Fatal().Err(err).Msg("router setup failed")
	}

	srv := &http.Server{
		Addr:              ":" + cfg.Port,
		Handler:           r,
		ReadTimeout:       15 * time.Second,
		WriteTimeout:      cfg.UpstreamTimeout + 15*time.Second,
		ReadHeaderTimeout: 5 * time.Second,
	}
	go func() {
		l.Info().Str("addr", srv.Addr).Str("upstream", cfg.APIBase()).Msg("web listening")
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			l.Fatal().Err(err).Msg("server error")
		}
	}()

	// graceful shutdown
	<-ctx.Done()
	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	_ = srv.Shutdown(shutdownCtx)
	l.Info().Msg("shutdown complete")
}

// openSessions builds the store named by SESSION_STORE.
func openSessions(ctx context.Context, l zerolog.Logger, cfg config.Config) (repository.SessionRepository, func(), error) {
	switch cfg.SessionStore {
	case "postgres":
		pool, err := database.Open(ctx, cfg)
		if err != nil {
			return nil, nil, err
		}
		repo := postgres.NewSessionRepo(pool)
		if err := repo.Migrate(ctx); err != nil {
			pool.Close()
			return nil, nil, err
		}
		go purgeSessions(ctx, l, repo)
		return repo, pool.Close, nil
	case "redis":
		rdb, err := database.OpenRedis(ctx, cfg)
		if err != nil {
			return nil, nil, err
		}
		return redis.NewSessionRepo(rdb), func() { _ = rdb.Close() }, nil
	default:
		repo := memory.NewSessionRepo()
		go purgeSessions(ctx, l, repo)
		return repo, func() {}, nil
	}
}

// purgeSessions drops expired sessions once an hour; redis expires keys itself.
func purgeSessions(ctx context.Context, l zerolog.Logger, repo repository.ExpiredPurger) {
	t := time.NewTicker(time.Hour)
	defer t.Stop()
	for {
		select {
		case <-ctx.Done():
			return
		case <-t.C:
			n, err := repo.PurgeExpired(ctx)
			if err != nil {
				l.Warn().Err(err).Msg("purge expired sessions")
				continue
			}
			l.Debug().Int64("purged", n).Msg("expired sessions purged")
		}
	}
}
