// Package server assembles the emulator: store backend selection, account
// manager, HTTP surface, and graceful shutdown.
package server

import (
	"context"
	"errors"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"golang.org/x/time/rate"

	"github.com/ymiyake/enquete/internal/logging"
	"github.com/ymiyake/enquete/internal/server/accounts"
	"github.com/ymiyake/enquete/internal/server/config"
	"github.com/ymiyake/enquete/internal/server/httpapi"
	"github.com/ymiyake/enquete/internal/server/metrics"
	"github.com/ymiyake/enquete/internal/server/store"
)

type App struct {
	cfg   *config.Config
	log   logging.Logger
	store store.Store
}

func NewApp(ctx context.Context, cfg *config.Config, log logging.Logger) (*App, error) {
	var (
		st  store.Store
		err error
	)
	if cfg.SQLitePath != "" {
		st, err = store.NewSQLiteStore(ctx, cfg.SQLitePath)
		if err != nil {
			return nil, err
		}
		log.Info(ctx, "using sqlite store", "path", cfg.SQLitePath)
	} else {
		st = store.NewMemoryStore()
		log.Info(ctx, "using in-memory store")
	}

	return &App{cfg: cfg, log: log, store: st}, nil
}

// Run serves the emulator until the context is cancelled or an interrupt
// arrives, then shuts down gracefully and closes the store.
func (a *App) Run(ctx context.Context) error {
	defer a.store.Close()

	srv := httpapi.NewServer(
		a.store,
		accounts.NewManager(),
		httpapi.Options{
			SecretKey: []byte(a.cfg.SecretKey),
			TokenTTL:  a.cfg.TokenTTL,
			RateLimit: rate.Limit(a.cfg.RateLimit),
			RateBurst: a.cfg.RateBurst,
		},
		a.log,
		metrics.New(),
	)

	httpServer := &http.Server{Addr: a.cfg.Addr, Handler: srv.Routes()}

	errCh := make(chan error, 1)
	go func() {
		a.log.Info(ctx, "emulator listening", "addr", a.cfg.Addr)
		if err := httpServer.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- err
		}
	}()

	stop := make(chan os.Signal, 1)
	signal.Notify(stop, os.Interrupt, syscall.SIGTERM)

	select {
	case err := <-errCh:
		return err
	case <-stop:
	case <-ctx.Done():
	}

	a.log.Info(ctx, "shutting down")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	return httpServer.Shutdown(shutdownCtx)
}
