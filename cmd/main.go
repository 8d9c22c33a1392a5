package main

import (
	"context"
	"log"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/cwrk-planet/chat-service/config"
	"github.com/cwrk-planet/chat-service/internal/hub"
	"github.com/cwrk-planet/chat-service/internal/postgres"
	httpx "github.com/cwrk-planet/chat-service/internal/transport/http"
	"github.com/cwrk-planet/chat-service/internal/transport/ws"
	"github.com/cwrk-planet/logger/pkg/logger"
)

func main() {
	// --- config ---
	cfg, err := config.LoadConfig()
	if err != nil {
		log.Fatalf("load config: %v", err)
	}

	logger.Init(logger.Config{
		Env:       logger.Env(cfg.Logging.Env),
		Service:   cfg.Logging.Service,
		Version:   cfg.Logging.Version,
		Backend:   logger.Backend(cfg.Logging.Backend),
		AddSource: cfg.Logging.AddSource,
		Debug:     cfg.Logging.Debug,
	})
	slog.Info("starting chat-service",
		"env", cfg.Logging.Env, "version", cfg.Logging.Version)

	// --- hub core ---
	registry := hub.NewRegistry()
	rooms := hub.NewRoomStore(cfg.Hub.HistoryLimit)
	bcast := hub.NewBroadcaster(rooms)
	coord := hub.NewCoordinator(registry, rooms, bcast)

	// комната по умолчанию существует до первого join
	rooms.Ensure(cfg.Hub.DefaultRoom)

	// --- optional message archive ---
	if cfg.Postgres.DSN != "" {
		ctx := context.Background()
		db, err := postgres.New(ctx, cfg.Postgres.DSN)
		if err != nil {
			log.Fatalf("postgres: %v", err)
		}
		defer db.Close()
		coord.SetArchiver(postgres.NewMessageArchive(db.Pool))
		slog.Info("message archive enabled")
	}

	// --- transports ---
	wsServer := ws.NewServer(coord, cfg.Hub.SendBuffer)
	handler := httpx.NewHandler(rooms)
	router := httpx.NewRouter(handler, wsServer, httpx.RouterConfig{
		AllowedOrigins: cfg.HTTP.AllowedOrigins,
		StaticDir:      cfg.HTTP.StaticDir,
	})

	httpSrv := &http.Server{
		Addr:         cfg.HTTP.Addr,
		Handler:      router,
		ReadTimeout:  10 * time.Second,
		IdleTimeout:  60 * time.Second,
	}

	errCh := make(chan error, 1)
	go func() {
		slog.Info("http listen", "addr", cfg.HTTP.Addr)
		if err := httpSrv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			errCh <- err
		}
	}()

	// --- graceful shutdown ---
	sigCh := make(chan os.Signal, 1)
	signal.Notify(sigCh, syscall.SIGINT, syscall.SIGTERM)

	select {
	case sig := <-sigCh:
		slog.Info("shutdown signal", "sig", sig)
	case err := <-errCh:
		slog.Error("server error", "err", err)
	}

	ctxShutdown, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	_ = httpSrv.Shutdown(ctxShutdown)
	slog.Info("stopped")
}
