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

	"spearhunt/internal/config"
	"spearhunt/internal/telemetry"
	"spearhunt/server"
	"spearhunt/server/application"
	"spearhunt/server/domain"
	"spearhunt/server/handler"
	"spearhunt/utils"
)

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	if err := config.Load("."); err != nil {
		log.Fatalf("config error: %v", err)
	}

	logger := slog.New(slog.NewTextHandler(os.Stdout, &slog.HandlerOptions{Level: parseLogLevel(config.GetString("logLevel"))}))
	slog.SetDefault(logger)

	addr := utils.GetEnvDefault("ADDR", config.GetString("server.addr"))
	port := utils.GetEnvDefault("PORT", config.GetString("server.port"))

	gameConfig, err := config.GameConfig()
	if err != nil {
		log.Fatalf("config error: %v", err)
	}

	recorder, err := telemetry.NewRecorder()
	if err != nil {
		slog.WarnContext(ctx, "telemetry disabled", "err", err)
	}

	// PubSub初期化
	pubsub := domain.NewSimplePubSub()

	// デフォルトルーム設定
	defaultRoomID := domain.RoomID("default")
	roomManager := domain.NewSimpleRoomManager(defaultRoomID)

	app := application.NewHuntApplication(gameConfig, recorder)

	room := domain.NewRoom(defaultRoomID, pubsub, app, gameConfig.TickRate)
	go func() {
		if err := room.Run(ctx); err != nil {
			slog.ErrorContext(ctx, "room error", "err", err)
		}
	}()

	controlLoop, err := handler.NewControlLoop(pubsub, defaultRoomID)
	if err != nil {
		log.Fatalf("control loop error: %v", err)
	}
	if err := controlLoop.Start(ctx); err != nil {
		log.Fatalf("control loop error: %v", err)
	}

	mux := server.Route(pubsub, roomManager, config.KeepaliveConfig(), controlLoop)
	s := server.NewServer(fmt.Sprintf("%s:%s", addr, port), mux)

	go func() {
		if err := s.Serve(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			log.Fatalf("http server error: %v", err)
		}
	}()
	slog.InfoContext(ctx, "server listening", "addr", addr+":"+port,
		"tickRate", gameConfig.TickRate,
		"firePolicy", config.GetString("game.firePolicy"),
		"arrivalPolicy", config.GetString("game.arrivalPolicy"))

	<-ctx.Done()
	slog.InfoContext(ctx, "shutdown initiated")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	if err := s.Shutdown(shutdownCtx); err != nil {
		slog.ErrorContext(ctx, "graceful shutdown failed", "error", err)
		if err := s.Close(); err != nil {
			slog.ErrorContext(ctx, "forced close failed", "error", err)
		}
	}
	if err := controlLoop.Stop(shutdownCtx); err != nil {
		slog.WarnContext(ctx, "control loop stop failed", "error", err)
	}
	slog.InfoContext(ctx, "server shutdown complete")
}

func parseLogLevel(s string) slog.Level {
	switch s {
	case "debug":
		return slog.LevelDebug
	case "warn":
		return slog.LevelWarn
	case "error":
		return slog.LevelError
	default:
		return slog.LevelInfo
	}
}
