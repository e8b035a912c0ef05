package handler

import (
	"context"
	"fmt"
	"net/http"

	loophandler "spearhunt/internal/handler"
	"spearhunt/server/domain"
)

// ControlOp は管理用エンドポイントが受けるゲーム制御操作です。
type ControlOp string

const (
	ControlOpPause   ControlOp = "pause"
	ControlOpResume  ControlOp = "resume"
	ControlOpRestart ControlOp = "restart"
)

// ControlRequest は制御ループへ投入される1件の操作です。
type ControlRequest struct {
	Op ControlOp
}

// controlPublisher は制御操作をプロトコルメッセージにしてroomへ配送します。
// Loopの単一goroutineから呼ばれるため、配送順は投入順に一致します。
type controlPublisher struct {
	pubsub  domain.PubSub
	roomID  domain.RoomID
	adminID domain.SessionID
}

func (p *controlPublisher) Handle(req ControlRequest) error {
	var sub domain.ControlSubType
	switch req.Op {
	case ControlOpPause:
		sub = domain.ControlSubTypePause
	case ControlOpResume:
		sub = domain.ControlSubTypeResume
	case ControlOpRestart:
		sub = domain.ControlSubTypeRestart
	default:
		return fmt.Errorf("unknown control op: %q", req.Op)
	}

	msg := domain.EncodeMessage(p.adminID, domain.DataTypeControl, uint8(sub), nil)
	topic := domain.Topic("room:" + string(p.roomID))
	p.pubsub.Publish(context.Background(), topic, domain.Message{
		SessionID: p.adminID,
		Data:      msg,
	})
	return nil
}

// NewControlLoop は管理操作をroomへ直列配送するループを作ります。
func NewControlLoop(pubsub domain.PubSub, roomID domain.RoomID) (*loophandler.Loop[ControlRequest], error) {
	return loophandler.New(loophandler.Config[ControlRequest]{
		Handler: &controlPublisher{
			pubsub:  pubsub,
			roomID:  roomID,
			adminID: domain.NewSessionID(),
		},
		QueueSize: 16,
	})
}

// NewControlHandler は POST /control?op=pause|resume|restart を処理します。
func NewControlHandler(loop *loophandler.Loop[ControlRequest]) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if r.Method != http.MethodPost {
			w.WriteHeader(http.StatusMethodNotAllowed)
			return
		}
		op := ControlOp(r.URL.Query().Get("op"))
		switch op {
		case ControlOpPause, ControlOpResume, ControlOpRestart:
		default:
			http.Error(w, "op must be pause, resume or restart", http.StatusBadRequest)
			return
		}
		if err := loop.Submit(r.Context(), ControlRequest{Op: op}); err != nil {
			http.Error(w, err.Error(), http.StatusServiceUnavailable)
			return
		}
		w.WriteHeader(http.StatusAccepted)
	}
}
