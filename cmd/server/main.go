package main

import (
	"context"
	"errors"
	"fmt"
	"log"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/joho/godotenv"
	"github.com/labstack/echo/v4"
	"github.com/labstack/echo/v4/middleware"

	"impactAdminWs/internal/config"
	"impactAdminWs/internal/modules/admin/application/usecase"
	admininfra "impactAdminWs/internal/modules/admin/infrastructure"
	transport "impactAdminWs/internal/modules/admin/interface"
	"impactAdminWs/internal/modules/console/application/handler"
	cusecase "impactAdminWs/internal/modules/console/application/usecase"
	"impactAdminWs/internal/modules/console/infrastructure"
	"impactAdminWs/internal/platform/apiclient"
	"impactAdminWs/internal/platform/broker"
	"impactAdminWs/internal/shared/auth"
	"impactAdminWs/internal/shared/logging"
)

const shutdownTimeout = 10 * time.Second

func main() {
	// .env is optional; real deployments set the environment directly.
	if err := godotenv.Overload(); err != nil {
		if !errors.Is(err, os.ErrNotExist) {
			fmt.Fprintf(os.Stderr, ".env load warning: %v\n", err)
		}
	}
	cfg, err := config.Load()
	if err != nil {
		fmt.Fprintf(os.Stderr, "config load error: %v\n", err)
		os.Exit(1)
	}

	logger, writer, logFile, err := logging.Open(logging.Config{
		Level:     cfg.Logging.Level,
		Format:    cfg.Logging.Format,
		AddSource: true,
		Directory: cfg.Logging.Directory,
	}, time.Now())
	if err != nil {
		fmt.Fprintf(os.Stderr, "logging setup error: %v\n", err)
		os.Exit(1)
	}
	defer logFile.Close()
	slog.SetDefault(logger)
	log.SetOutput(writer)
	log.SetFlags(0)
	slog.Info("logging initialized", slog.String("directory", cfg.Logging.Directory), slog.String("level", cfg.Logging.Level), slog.String("format", cfg.Logging.Format))
	slog.Info("kafka config resolved", slog.Any("brokers", cfg.Kafka.Brokers), slog.String("group", cfg.Kafka.GroupID), slog.Any("topics", cfg.Kafka.TopicNames()))

	validator, err := auth.NewJWTValidator(cfg.Security.JWTSecret, cfg.Security.JWTPublicKey, "admin")
	if err != nil {
		slog.Error("jwt validator setup failed", slog.Any("error", err))
		os.Exit(1)
	}
	if !validator.Verifies() {
		slog.Warn("jwt signatures are not verified locally; the REST API remains the authority")
	}

	restOpts := []apiclient.Option{
		apiclient.WithTimeout(cfg.REST.Timeout),
		apiclient.WithLogger(logging.Component(logger, "apiclient")),
	}
	services := transport.NewRESTServices(cfg.REST.BaseURL, restOpts...)
	authUC := usecase.NewAuthUseCase(admininfra.NewAuthHTTPClient(apiclient.New(cfg.REST.BaseURL, nil, restOpts...)))

	hub := infrastructure.NewHub()
	sessions := transport.NewSessionRegistry()
	broadcastUC := cusecase.NewBroadcastUseCase(hub)

	// One handler per broker topic, covering every resource it feeds.
	registry := infrastructure.NewHandlerRegistry()
	for topic, resources := range cfg.Kafka.ResourcesByTopic() {
		registry.Register(handler.NewEntityChangedHandler(topic, resources, sessions, broadcastUC))
	}

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()
	broker.StartKafkaConsumers(ctx, registry, cfg.Kafka.Brokers, cfg.Kafka.GroupID)

	e := echo.New()
	e.HideBanner = true
	e.Logger.SetOutput(writer)
	e.Use(middleware.Recover())
	e.Use(middleware.RequestID())

	authHandler := transport.NewAuthHandler(authUC, validator, transport.CookieConfig{
		Name:   cfg.Security.TokenCookie,
		Secure: cfg.Security.CookieSecure,
	})
	consoleHandler := transport.NewConsoleHandler(hub, sessions, validator, services, transport.ConsoleConfig{
		TokenCookie: cfg.Security.TokenCookie,
		SendBuffer:  cfg.Console.SendBuffer,
		Session: transport.SessionConfig{
			StaleTime:       cfg.Console.StaleTime,
			SearchDebounce:  cfg.Console.SearchDebounce,
			ToastTTL:        cfg.Console.ToastTTL,
			CacheMaxEntries: cfg.Console.CacheMaxEntries,
		},
	})

	e.GET("/healthz", transport.NewHealthHandler(sessions))
	e.POST("/api/auth/login", authHandler.Login)
	e.POST("/api/auth/logout", authHandler.Logout)
	e.GET("/api/auth/session", authHandler.Session)
	e.POST("/api/uploads/avatar", transport.NewAvatarUploadHandler(sessions, validator, services, cfg.Security.TokenCookie))
	e.GET("/ws/console", consoleHandler)

	go func() {
		if err := e.Start(":" + cfg.Server.Port); err != nil && !errors.Is(err, http.ErrServerClosed) {
			slog.Error("http server stopped", slog.Any("error", err))
		}
	}()

	stop := make(chan os.Signal, 1)
	signal.Notify(stop, syscall.SIGINT, syscall.SIGTERM)
	<-stop
	slog.Info("shutting down", slog.Int("sessions", sessions.Len()))

	cancel()
	sessions.CloseAll()
	shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer shutdownCancel()
	if err := e.Shutdown(shutdownCtx); err != nil {
		slog.Warn("http shutdown incomplete", slog.Any("error", err))
	}
}
