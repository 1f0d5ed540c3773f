package main

import (
	"context"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/hibiken/asynq"

	"github.com/stellar-admin/stellar-admin/internal/app"
	"github.com/stellar-admin/stellar-admin/internal/auth"
	"github.com/stellar-admin/stellar-admin/internal/menu"
	"github.com/stellar-admin/stellar-admin/internal/observability"
	"github.com/stellar-admin/stellar-admin/internal/platform/cache"
	"github.com/stellar-admin/stellar-admin/internal/platform/db"
	"github.com/stellar-admin/stellar-admin/internal/rbac"
	"github.com/stellar-admin/stellar-admin/internal/roles"
	"github.com/stellar-admin/stellar-admin/internal/session"
	"github.com/stellar-admin/stellar-admin/internal/users"
	"github.com/stellar-admin/stellar-admin/jobs"
)

func main() {
	if app.InTestMode() {
		slog.Default().Info("test mode detected, skipping runtime startup")
		return
	}

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	cfg, err := app.LoadConfig()
	if err != nil {
		slog.Default().Error("load config", slog.Any("error", err))
		os.Exit(1)
	}

	logger := app.NewLogger(cfg)

	pool, err := db.New(ctx, cfg.PGDSN)
	if err != nil {
		logger.Error("connect postgres", slog.Any("error", err))
		os.Exit(1)
	}
	defer pool.Close()

	redisClient, err := cache.New(ctx, cfg.RedisAddr)
	if err != nil {
		logger.Error("connect redis", slog.Any("error", err))
		os.Exit(1)
	}
	defer func() {
		if err := redisClient.Close(); err != nil {
			logger.Warn("redis close", slog.Any("error", err))
		}
	}()

	asynqClient := asynq.NewClient(asynq.RedisClientOpt{Addr: cfg.RedisAddr})
	defer func() {
		if err := asynqClient.Close(); err != nil {
			logger.Warn("asynq close", slog.Any("error", err))
		}
	}()

	sessions := session.NewStore(redisClient)
	codec := auth.NewTokenCodec([]byte(cfg.JWTSecret))
	captcha := auth.NewCaptchaStore(redisClient, cfg.CaptchaTTL)

	userRepo := users.NewRepository(pool)
	rbacRepo := rbac.NewRepository(pool)
	rbacService := rbac.NewService(rbacRepo)

	menuRepo := menu.NewRepository(pool)
	menuService := menu.NewService(menuRepo, rbacService)
	menuHandler := menu.NewHandler(logger, menuService)

	roleRepo := roles.NewRepository(pool)
	roleService := roles.NewService(roleRepo)
	roleHandler := roles.NewHandler(logger, roleService)

	metrics := observability.NewMetrics()

	recorder := jobs.NewLoginRecorder(asynqClient)
	authService := auth.NewService(userRepo, rbacService, codec, sessions, recorder, cfg.TokenTTL, logger)
	authHandler := auth.NewHandler(logger, authService, captcha, metrics)

	table := rbac.NewRouteTable()
	authenticator := auth.NewAuthenticator(codec, sessions, table, logger, metrics)
	guard := rbac.NewGuard(sessions, table, logger, metrics)

	router := app.NewRouter(app.RouterParams{
		Logger:        logger,
		Config:        cfg,
		Table:         table,
		Authenticator: authenticator,
		Guard:         guard,
		AuthHandler:   authHandler,
		MenuHandler:   menuHandler,
		RolesHandler:  roleHandler,
		Metrics:       metrics,
	})

	server := &http.Server{
		Addr:         cfg.AppAddr,
		Handler:      router,
		ReadTimeout:  cfg.AppReadTimeout,
		WriteTimeout: cfg.AppWriteTimeout,
	}

	go func() {
		logger.Info("starting http server", slog.String("addr", cfg.AppAddr))
		if err := server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			logger.Error("http server", slog.Any("error", err))
			stop()
		}
	}()

	<-ctx.Done()
	logger.Info("shutting down")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := server.Shutdown(shutdownCtx); err != nil {
		logger.Error("graceful shutdown", slog.Any("error", err))
	}
}
