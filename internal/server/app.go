// Package server wires and runs the mock portal API: fixtures, the user
// store, per-user portal state and the HTTP router.
package server

import (
	"context"
	"errors"
	"fmt"
	"net"
	"net/http"
	"os/signal"
	"syscall"
	"time"

	"github.com/dmitrijs2005/mypage/internal/logging"
	"github.com/dmitrijs2005/mypage/internal/server/config"
	"github.com/dmitrijs2005/mypage/internal/server/fixtures"
	"github.com/dmitrijs2005/mypage/internal/server/httpapi"
	"github.com/dmitrijs2005/mypage/internal/server/mypage"
	"github.com/dmitrijs2005/mypage/internal/server/users"
	"golang.org/x/crypto/bcrypt"
	"golang.org/x/sync/errgroup"
)

const shutdownTimeout = 5 * time.Second

type App struct {
	config  *config.Config
	logger  logging.Logger
	handler http.Handler
}

func NewApp(cfg *config.Config, logger logging.Logger) (*App, error) {
	return newApp(cfg, logger, bcrypt.DefaultCost)
}

func newApp(cfg *config.Config, logger logging.Logger, cost int) (*App, error) {
	fx, err := fixtures.Load(cfg.FixturesFile)
	if err != nil {
		return nil, err
	}

	repo, err := users.NewMemoryRepository(fx.Users, cost)
	if err != nil {
		return nil, fmt.Errorf("user store: %w", err)
	}

	us, err := users.NewService(repo, cfg, cost)
	if err != nil {
		return nil, fmt.Errorf("user service: %w", err)
	}

	h := httpapi.NewHandler(us, mypage.NewService(fx), logger)
	return &App{config: cfg, logger: logger, handler: httpapi.NewRouter(h)}, nil
}

// Handler exposes the router, e.g. for httptest.
func (app *App) Handler() http.Handler {
	return app.handler
}

// Run serves until ctx is cancelled or SIGINT/SIGTERM/SIGQUIT arrives, then
// shuts the listener down gracefully.
func (app *App) Run(ctx context.Context) error {
	ctx, stop := signal.NotifyContext(ctx, syscall.SIGINT, syscall.SIGTERM, syscall.SIGQUIT)
	defer stop()

	ln, err := net.Listen("tcp", app.config.Addr)
	if err != nil {
		return fmt.Errorf("listen %s: %w", app.config.Addr, err)
	}

	srv := &http.Server{
		Handler:           app.handler,
		ReadHeaderTimeout: 10 * time.Second,
	}

	app.logger.Info(ctx, "mock api listening", "addr", ln.Addr().String())

	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		if err := srv.Serve(ln); err != nil && !errors.Is(err, http.ErrServerClosed) {
			return err
		}
		return nil
	})
	g.Go(func() error {
		<-gctx.Done()
		shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
		defer cancel()
		return srv.Shutdown(shutdownCtx)
	})

	err = g.Wait()
	app.logger.Info(context.Background(), "mock api stopped")
	return err
}
