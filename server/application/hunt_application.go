package application

import (
	"context"
	"log/slog"
	"time"

	"spearhunt/internal/telemetry"
	"spearhunt/server/domain"
	"spearhunt/utils"
)

// HuntApplication はRoomのtickループに載るゲーム本体です。
// 受信メッセージを次tick用のジェスチャ入力へ還元し、Tickでシミュレーションを
// 進めてスナップショットとイベントのフレーム列を返します。
type HuntApplication struct {
	game     *Game
	adapter  *GestureAdapter
	recorder *telemetry.Recorder

	// input は最新のジェスチャ信号。次のフレームが届くまで保持される。
	input GestureInput

	// serverID はサーバー発信メッセージのヘッダーに載せる識別子
	serverID domain.SessionID
}

func NewHuntApplication(cfg GameConfig, recorder *telemetry.Recorder) *HuntApplication {
	return &HuntApplication{
		game:     NewGame(cfg),
		adapter:  NewGestureAdapter(cfg.FirePolicy),
		recorder: recorder,
		serverID: domain.NewSessionID(),
	}
}

// Game はテスト・観測用にゲーム本体を返します。
func (app *HuntApplication) Game() *Game {
	return app.game
}

func (app *HuntApplication) HandleMessage(ctx context.Context, sessionID domain.SessionID, data []byte) error {
	if len(data) < domain.HeaderSize+domain.PayloadHeaderSize {
		return domain.ErrInvalidHeaderSize
	}
	payloadHeader, err := domain.ParsePayloadHeader(data[domain.HeaderSize:])
	if err != nil {
		return err
	}
	payload := data[domain.HeaderSize+domain.PayloadHeaderSize:]

	switch payloadHeader.DataType {
	case domain.DataTypeGesture:
		return app.handleGesture(ctx, payload)
	case domain.DataTypeLandmark:
		return app.handleLandmark(ctx, payload)
	case domain.DataTypeControl:
		return app.handleControl(ctx, domain.ControlSubType(payloadHeader.SubType), payload)
	default:
		slog.WarnContext(ctx, "unknown data type", "dataType", payloadHeader.DataType)
		return nil
	}
}

// handleGesture はクライアント側で分類済みのジェスチャ信号を取り込みます。
func (app *HuntApplication) handleGesture(ctx context.Context, payload []byte) error {
	gesture, err := domain.ParseGesturePayload(payload)
	if err != nil {
		return err
	}

	in := GestureInput{Grip: gesture.Grip, Fire: gesture.Fire}
	if gesture.AimValid && utils.FiniteVec3(gesture.Aim) {
		aim := gesture.Aim
		in.AimPoint = &aim
	}
	app.input = in
	return nil
}

// handleLandmark は生ランドマークをアダプタで還元して取り込みます。
func (app *HuntApplication) handleLandmark(ctx context.Context, payload []byte) error {
	frame, err := domain.ParseLandmarkPayload(payload)
	if err != nil {
		return err
	}
	app.input = app.adapter.Reduce(frame.Points)
	return nil
}

func (app *HuntApplication) handleControl(ctx context.Context, subType domain.ControlSubType, payload []byte) error {
	switch subType {
	case domain.ControlSubTypePause:
		app.game.Pause()
		slog.InfoContext(ctx, "game paused")
	case domain.ControlSubTypeResume:
		app.game.Resume()
		slog.InfoContext(ctx, "game resumed")
	case domain.ControlSubTypeRestart:
		app.game.Restart()
		app.input = GestureInput{}
		slog.InfoContext(ctx, "game restarted")
	case domain.ControlSubTypeRotate:
		rotate, err := domain.ParseRotatePayload(payload)
		if err != nil {
			return err
		}
		if err := app.adapter.SetRotation(rotate.Degrees); err != nil {
			slog.WarnContext(ctx, "rejected camera rotation", "degrees", rotate.Degrees)
			return nil
		}
		slog.InfoContext(ctx, "camera rotation set", "degrees", rotate.Degrees)
	default:
		// join/leave等の接続制御はRoomが処理する
		slog.DebugContext(ctx, "ignoring control subtype", "subType", subType)
	}
	return nil
}

// Tick はシミュレーションを1tick進め、イベント通知とスナップショットを
// ブロードキャスト用フレーム列として返します。
func (app *HuntApplication) Tick(ctx context.Context) [][]byte {
	start := time.Now()

	events := app.game.Tick(app.input)

	frames := make([][]byte, 0, len(events)+1)
	for _, ev := range events {
		frames = append(frames, app.encodeEvent(ev))
		app.record(ctx, ev)
	}
	snapshot := app.game.Snapshot()
	frames = append(frames, domain.EncodeMessage(app.serverID, domain.DataTypeSnapshot, 0, snapshot.Encode()))

	app.recorder.RecordTick(ctx, time.Since(start))
	return frames
}

func (app *HuntApplication) encodeEvent(ev Event) []byte {
	payload := domain.EventPayload{
		Score:    ev.Score,
		AnimalID: ev.AnimalID,
		SpearID:  ev.SpearID,
		Damage:   ev.Damage,
	}
	return domain.EncodeEventMessage(app.serverID, eventSubType(ev.Kind), payload)
}

func eventSubType(kind EventKind) domain.EventSubType {
	switch kind {
	case EventHit:
		return domain.EventSubTypeHit
	case EventMiss:
		return domain.EventSubTypeMiss
	case EventArrival:
		return domain.EventSubTypeArrival
	case EventRespawnRequested:
		return domain.EventSubTypeRespawn
	case EventGameOver:
		return domain.EventSubTypeGameOver
	default:
		return 0
	}
}

func (app *HuntApplication) record(ctx context.Context, ev Event) {
	switch ev.Kind {
	case EventHit:
		app.recorder.RecordHit(ctx)
	case EventMiss:
		app.recorder.RecordMiss(ctx)
	case EventArrival:
		app.recorder.RecordArrival(ctx)
	case EventRespawnRequested:
		app.recorder.RecordRespawnRequest(ctx)
	}
}
