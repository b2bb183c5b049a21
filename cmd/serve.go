package main

import (
	"context"
	"fmt"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/urfave/cli/v2"

	apicontext "github.com/dtroode/sessiongate/internal/api/http/context"
	"github.com/dtroode/sessiongate/internal/api/http/cookie"
	"github.com/dtroode/sessiongate/internal/api/http/router"
	httpserver "github.com/dtroode/sessiongate/internal/api/http/server"
	"github.com/dtroode/sessiongate/internal/config"
	"github.com/dtroode/sessiongate/internal/logger"
	"github.com/dtroode/sessiongate/internal/password"
	"github.com/dtroode/sessiongate/internal/server"
	"github.com/dtroode/sessiongate/internal/service"
	"github.com/dtroode/sessiongate/internal/token"
)

const (
	shutdownTimeout = 10 * time.Second
	janitorInterval = 15 * time.Minute
)

func serveCmd() *cli.Command {
	return &cli.Command{
		Name:   "serve",
		Usage:  "run the HTTP API (default)",
		Action: serve,
	}
}

func serve(c *cli.Context) error {
	ctx := c.Context

	cfg, err := config.NewConfig()
	if err != nil {
		return err
	}
	log := logger.New(cfg.LogLevel, cfg.LogFormat)

	if cfg.IsProduction() {
		gin.SetMode(gin.ReleaseMode)
	}

	st, err := openStores(ctx, cfg, log)
	if err != nil {
		return fmt.Errorf("failed to initialize storage: %w", err)
	}
	defer func() {
		if err := st.Close(); err != nil {
			log.Error("failed to close storage", "error", err)
		}
	}()

	hasher, err := password.NewBcrypt(cfg.Bcrypt.Cost)
	if err != nil {
		return err
	}

	opts := service.SessionOptions{TTL: cfg.Session.TTL}
	sessions := service.NewSessions(st.sessions, opts, log)
	authService := service.NewAuth(st.users, sessions, hasher, log)
	gate := service.NewGate(st.sessions, st.users, opts, log)

	jar := cookie.NewJar(cookie.Options{
		Name:     cfg.Session.CookieName,
		Secure:   cfg.CookieSecure(),
		SameSite: cfg.CookieSameSite(),
		MaxAge:   cfg.Session.TTL,
	}, token.NewJWT(cfg.Session.Secret))

	engine := router.New(authService, gate, jar, apicontext.NewManager(), cfg.HTTP.CORSAllowedOrigins, log).Register()
	srv := httpserver.NewHTTPServer(engine, ":"+cfg.HTTP.Port)
	sl := server.NewSecurityLayer(cfg.HTTP.EnableHTTPS, cfg.HTTP.CertFileName, cfg.HTTP.PrivateKeyFileName)

	if st.pruner != nil {
		go service.NewJanitor(st.pruner, janitorInterval, cfg.Storage.Timeout, log).Run(ctx)
	}

	errCh := make(chan error, 1)
	go func() {
		log.Info("Starting server on", "address", srv.Address(), "env", cfg.AppEnv)
		errCh <- srv.Start(sl)
	}()

	logAppVersion()

	select {
	case <-ctx.Done():
		log.Info("received interruption signal, shutting down")
	case err := <-errCh:
		if err != nil {
			return fmt.Errorf("server failed: %w", err)
		}
		return nil
	}

	shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer shutdownCancel()

	if err := srv.Stop(shutdownCtx); err != nil {
		log.Error("error during server shutdown", "error", err, "address", srv.Address())
	}
	if err := <-errCh; err != nil {
		log.Error("server stopped with error", "error", err)
	}

	log.Info("shutdown complete")
	return nil
}
