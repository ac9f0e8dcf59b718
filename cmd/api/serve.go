package main

import (
	"context"
	"errors"
	"net/http"
	"os"
	"os/signal"
	"strings"
	"syscall"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/spf13/cobra"

	httphandlers "github.com/rafabene/avantpro-backoffice/internal/handlers/http"
	"github.com/rafabene/avantpro-backoffice/internal/handlers/ws"
	"github.com/rafabene/avantpro-backoffice/internal/infrastructure/i18n"
)

func newServeCommand() *cobra.Command {
	var autoMigrate bool

	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Start the HTTP server",
		RunE: func(cmd *cobra.Command, args []string) error {
			return runServe(autoMigrate)
		},
	}

	cmd.Flags().BoolVar(&autoMigrate, "auto-migrate", false, "Run database migrations before starting")
	return cmd
}

func runServe(autoMigrate bool) error {
	a, err := newApp()
	if err != nil {
		return err
	}
	defer a.close()

	a.logger.Info("starting avantpro back office",
		"env", a.cfg.Env,
		"version", "dev",
	)

	if autoMigrate {
		if err := a.migrate(); err != nil {
			return err
		}
	}

	if err := a.wire(); err != nil {
		return err
	}

	i18nService, err := i18n.NewEmbeddedService("en")
	if err != nil {
		return err
	}
	a.logger.Info("i18n initialized",
		"default_language", i18nService.GetDefaultLanguage(),
		"supported_languages", i18nService.GetSupportedLanguages(),
	)

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	hub := ws.NewEventHub(originChecker(a.cfg.CORS.AllowedOrigins), a.logger)
	unsubscribe := a.groupCache.Subscribe(hub)
	defer unsubscribe()

	if a.redisCache != nil {
		go func() {
			if err := a.redisCache.Listen(ctx); err != nil {
				a.logger.Error("redis invalidation listener stopped", "error", err)
			}
		}()
	}
	if a.grantWatcher != nil {
		go func() {
			if err := a.grantWatcher.Listen(ctx); err != nil {
				a.logger.Error("grant change listener stopped", "error", err)
			}
		}()
	} else {
		a.logger.Warn("REDIS_URL not set: grant changes from other instances only apply on periodic reload",
			"interval", a.cfg.Grants.ReloadInterval,
		)
	}
	go a.grants.ReloadEvery(ctx, a.cfg.Grants.ReloadInterval)

	if a.cfg.Env == "production" {
		gin.SetMode(gin.ReleaseMode)
	}

	router := httphandlers.NewRouter(httphandlers.RouterDeps{
		Env:               a.cfg.Env,
		BaseURL:           a.cfg.Server.BaseURL,
		AllowedOrigins:    a.cfg.CORS.AllowedOrigins,
		Logger:            a.logger,
		I18n:              i18nService,
		AuthService:       a.authService,
		UserService:       a.userService,
		PermissionService: a.permissionService,
		EventHub:          hub,
		HealthChecks:      a.healthChecks(),
	})

	srv := &http.Server{
		Addr:              a.cfg.Server.Host + ":" + a.cfg.Server.Port,
		Handler:           router,
		ReadHeaderTimeout: 10 * time.Second,
	}

	errCh := make(chan error, 1)
	go func() {
		a.logger.Info("server starting",
			"host", a.cfg.Server.Host,
			"port", a.cfg.Server.Port,
		)
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- err
		}
	}()

	select {
	case err := <-errCh:
		a.logger.Error("server failed", "error", err)
		return err
	case <-ctx.Done():
	}

	a.logger.Info("shutting down server...")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	if err := srv.Shutdown(shutdownCtx); err != nil {
		a.logger.Error("server forced to shutdown", "error", err)
		return err
	}

	a.logger.Info("server exited")
	return nil
}

func (a *app) healthChecks() map[string]httphandlers.Pinger {
	checks := map[string]httphandlers.Pinger{
		"database": func(ctx context.Context) error {
			sqlDB, err := a.db.DB()
			if err != nil {
				return err
			}
			return sqlDB.PingContext(ctx)
		},
	}
	if a.redisCache != nil {
		checks["redis"] = a.redisCache.Ping
	}
	return checks
}

// originChecker aplica a mesma lista do CORS ao upgrade do websocket
func originChecker(allowed string) func(r *http.Request) bool {
	origins := map[string]bool{}
	for _, o := range strings.Split(allowed, ",") {
		o = strings.TrimSpace(o)
		if o == "*" {
			return nil
		}
		if o != "" {
			origins[o] = true
		}
	}

	return func(r *http.Request) bool {
		origin := r.Header.Get("Origin")
		return origin == "" || origins[origin]
	}
}
