package main

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	"os/signal"
	"strconv"
	"sync"
	"syscall"
	"time"

	"github.com/coder/websocket"

	"spearhunt/server/application"
	"spearhunt/server/domain"
	"spearhunt/utils"
)

func main() {
	logger := slog.New(slog.NewTextHandler(os.Stdout, &slog.HandlerOptions{Level: slog.LevelInfo}))
	slog.SetDefault(logger)

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	addr := utils.GetEnvDefault("ADDR", "localhost")
	port := utils.GetEnvDefault("PORT", "9090")
	botCountStr := utils.GetEnvDefault("BOT_COUNT", "1")
	botCount, err := strconv.Atoi(botCountStr)
	if err != nil {
		slog.Error("invalid BOT_COUNT", "value", botCountStr)
		os.Exit(1)
	}

	serverURL := fmt.Sprintf("ws://%s:%s/ws", addr, port)
	slog.Info("starting bots", "count", botCount, "server", serverURL)

	var wg sync.WaitGroup
	for i := range botCount {
		wg.Add(1)
		go func(id int) {
			defer wg.Done()
			runBot(ctx, serverURL, id)
		}(i)
	}

	wg.Wait()
	slog.Info("all bots stopped")
}

func runBot(ctx context.Context, serverURL string, id int) {
	logger := slog.With("botID", id)

	for {
		if ctx.Err() != nil {
			return
		}
		err := botSession(ctx, serverURL, logger)
		if err != nil && ctx.Err() == nil {
			logger.Warn("bot session ended, reconnecting", "err", err)
			time.Sleep(2 * time.Second)
		}
	}
}

func botSession(ctx context.Context, serverURL string, logger *slog.Logger) error {
	conn, _, err := websocket.Dial(ctx, serverURL, nil)
	if err != nil {
		return fmt.Errorf("dial: %w", err)
	}
	defer conn.CloseNow()

	logger.Info("connected")

	var sessionID domain.SessionID
	var assigned bool

	// 最新スナップショットを保持
	var snapshot *application.Snapshot
	var mu sync.Mutex

	// 受信ループ
	go func() {
		for {
			if ctx.Err() != nil {
				return
			}
			_, data, err := conn.Read(ctx)
			if err != nil {
				if ctx.Err() == nil {
					logger.Warn("read error", "err", err)
				}
				return
			}

			if len(data) < domain.HeaderSize+domain.PayloadHeaderSize {
				continue
			}

			payloadHeader, err := domain.ParsePayloadHeader(data[domain.HeaderSize:])
			if err != nil {
				continue
			}
			payload := data[domain.HeaderSize+domain.PayloadHeaderSize:]

			switch payloadHeader.DataType {
			case domain.DataTypeControl:
				subType := domain.ControlSubType(payloadHeader.SubType)
				switch subType {
				case domain.ControlSubTypeAssign:
					header, err := domain.ParseHeader(data)
					if err != nil {
						continue
					}
					sessionID = domain.SessionIDFromBytes(header.SessionID)
					mu.Lock()
					assigned = true
					mu.Unlock()
					logger.Info("session assigned", "sessionID", sessionID)

					joinMsg := domain.EncodeMessage(sessionID, domain.DataTypeControl, uint8(domain.ControlSubTypeJoin), nil)
					if err := conn.Write(ctx, websocket.MessageBinary, joinMsg); err != nil {
						logger.Warn("failed to send join", "err", err)
						return
					}
					logger.Info("joined room")

				case domain.ControlSubTypePing:
					pongMsg := domain.EncodeMessage(sessionID, domain.DataTypeControl, uint8(domain.ControlSubTypePong), nil)
					if err := conn.Write(ctx, websocket.MessageBinary, pongMsg); err != nil {
						logger.Warn("failed to send pong", "err", err)
						return
					}
				}

			case domain.DataTypeSnapshot:
				snap, err := application.ParseSnapshotPayload(payload)
				if err != nil {
					continue
				}
				mu.Lock()
				snapshot = snap
				mu.Unlock()

			case domain.DataTypeEvent:
				ev, err := domain.ParseEventPayload(payload)
				if err != nil {
					continue
				}
				logger.Info("event",
					"subType", domain.EventSubType(payloadHeader.SubType),
					"score", ev.Score,
					"animalID", ev.AnimalID,
					"spearID", ev.SpearID)
			}
		}
	}()

	// 判断・送信ループ (30FPS相当)
	ticker := time.NewTicker(time.Second / 30)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			conn.Close(websocket.StatusNormalClosure, "shutdown")
			return nil
		case <-ticker.C:
			mu.Lock()
			ready := assigned
			snap := snapshot
			mu.Unlock()
			if !ready || snap == nil {
				continue
			}

			gesture := decideGesture(snap)
			msg := domain.EncodeMessage(sessionID, domain.DataTypeGesture, 0, gesture.Encode())
			if err := conn.Write(ctx, websocket.MessageBinary, msg); err != nil {
				return fmt.Errorf("write: %w", err)
			}
		}
	}
}

// decideGesture は最も手前の生存中の動物に照準を合わせ、
// 状態機械が撃てるときだけfireを立てます。
func decideGesture(snap *application.Snapshot) *domain.GesturePayload {
	gesture := &domain.GesturePayload{
		AimValid: true,
		Grip:     true,
		Aim:      domain.Vec3{X: 0, Y: 1.4, Z: -0.8},
	}

	var target *application.AnimalState
	for i := range snap.Animals {
		a := &snap.Animals[i]
		if a.Lifecycle != application.LifecycleAlive {
			continue
		}
		if target == nil || a.Position.Z > target.Position.Z {
			target = a
		}
	}
	if target == nil {
		return gesture
	}

	gesture.Aim.X = target.Position.X
	// Gripped状態でのみfireが受理される。Throwing中に立てても無害
	gesture.Fire = snap.FireState != application.FireThrowing
	return gesture
}
