package main

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"runtime/debug"
	"syscall"
	"time"

	"github.com/common-nighthawk/go-figure"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/rs/zerolog/log"
	"github.com/woniu9524/love-ludo-sub000/auth"
	"github.com/woniu9524/love-ludo-sub000/internal/config"
	"github.com/woniu9524/love-ludo-sub000/internal/logger"
	"github.com/woniu9524/love-ludo-sub000/internal/metrics"
	"github.com/woniu9524/love-ludo-sub000/server"
	"github.com/woniu9524/love-ludo-sub000/sessions"
	"github.com/woniu9524/love-ludo-sub000/sessions/oidcsource"
	"github.com/woniu9524/love-ludo-sub000/users"
	"github.com/woniu9524/love-ludo-sub000/users/postgres"
	fakeprofilerepo "github.com/woniu9524/love-ludo-sub000/users/repofake"
)

type ServeCmd struct {
	ShutdownTimeout time.Duration `help:"Time allowed for in-flight requests on shutdown." default:"5s"`
}

func (c *ServeCmd) Run(ctx context.Context, globals *Globals) (returnError error) {
	defer func() {
		if r := recover(); r != nil {
			log.Error().Interface("panic", r).Bytes("stack", debug.Stack()).Msg("recovered from panic")
			returnError = errors.New("panic recovered")
		}
	}()

	cfg, err := config.Load()
	if err != nil {
		return err
	}
	logger.Setup(cfg.GetEnv(), globals.Debug)
	displayAppname(cfg.GetAppName())

	ctx, stop := signal.NotifyContext(ctx, os.Interrupt, syscall.SIGTERM)
	defer stop()

	profiles, closeStore, err := openProfileRepo(ctx, cfg)
	if err != nil {
		return err
	}
	defer closeStore()

	source, err := oidcsource.New(ctx, oidcsource.Config{
		IssuerURL: cfg.GetIssuerURL(),
		ClientID:  cfg.GetClientID(),
		Cookies: sessions.CookieNames{
			Access:  cfg.GetAccessCookieName(),
			Refresh: cfg.GetRefreshCookieName(),
		},
	})
	if err != nil {
		return fmt.Errorf("[ServeCmd Run] %w", err)
	}

	deps := server.Deps{Repos: auth.Repos{Sessions: source, Profiles: profiles}}
	if cfg.GetMetricsEnabled() {
		reg := prometheus.NewRegistry()
		reg.MustRegister(collectors.NewGoCollector(), collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}))
		deps.Recorder = metrics.NewCollector(reg)
		deps.Metrics = metrics.Handler(reg)
	}

	handler, err := server.New(cfg, deps)
	if err != nil {
		return err
	}

	httpServer := &http.Server{
		Addr:              cfg.GetPort(),
		Handler:           handler,
		ReadHeaderTimeout: 5 * time.Second,
		IdleTimeout:       2 * time.Minute,
		MaxHeaderBytes:    16 * 1024,
	}

	errCh := make(chan error, 1)
	go func() { errCh <- listenAndServe(httpServer) }()

	select {
	case err := <-errCh:
		return err
	case <-ctx.Done():
	}
	returnError = shutdown(httpServer, c.ShutdownTimeout)
	log.Info().Msg("Server stopped")
	return returnError
}

func openProfileRepo(ctx context.Context, cfg config.StoreConfig) (users.ProfileRepo, func(), error) {
	if cfg.GetStoreType() != config.StorePostgres {
		log.Warn().Msg("using the in-memory profile store, every account will read as expired")
		return fakeprofilerepo.NewFakeProfileRepo(), func() {}, nil
	}

	pool, err := postgres.NewPool(ctx, &postgres.PoolConfig{
		ConnString: cfg.GetDatabaseURL(),
		MaxConns:   cfg.GetMaxConns(),
		MinConns:   cfg.GetMinConns(),
	})
	if err != nil {
		return nil, nil, fmt.Errorf("[openProfileRepo] %w", err)
	}
	return postgres.NewProfileRepo(pool), pool.Close, nil
}

func listenAndServe(server *http.Server) error {
	log.Info().Str("addr", server.Addr).Msg("Server listening")
	if err := server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
		return fmt.Errorf("server.ListenAndServe %w", err)
	}
	return nil
}

func shutdown(server *http.Server, timeout time.Duration) error {
	ctx, cancel := context.WithTimeout(context.Background(), timeout)
	defer cancel()
	if err := server.Shutdown(ctx); err != nil {
		return fmt.Errorf("server.Shutdown: %w", err)
	}
	return nil
}

func displayAppname(appname string) {
	myFigure := figure.NewFigure(appname, "cybermedium", true)
	myFigure.Print()
	fmt.Println()
}
