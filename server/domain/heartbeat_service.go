package domain

import (
	"context"
	"log/slog"
	"time"
)

// HeartbeatService はプレイヤー接続へ定期的にpingを書き込む送信専門のサービスです。
// pong遅延の検出と切断判断はSessionEndpointのownerLoopがIsIdleで行います。
type HeartbeatService struct {
	interval time.Duration
	session  *Session
	writeCh  chan<- []byte
}

func NewHeartbeatService(interval time.Duration, session *Session, writeCh chan<- []byte) *HeartbeatService {
	return &HeartbeatService{
		interval: interval,
		session:  session,
		writeCh:  writeCh,
	}
}

// Run はinterval間隔でpingを送信し続けます。ctxのキャンセルまたは
// セッションのクローズで終了します。writeChが満杯のときは落として続行します。
func (h *HeartbeatService) Run(ctx context.Context) {
	ticker := time.NewTicker(h.interval)
	defer ticker.Stop()

	// セッションIDは不変なのでpingフレームは使い回す
	ping := EncodePingMessage(h.session.ID())

	drops := 0
	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			if h.session.IsClosed() {
				return
			}
			select {
			case h.writeCh <- ping:
				drops = 0
			default:
				drops++
				slog.WarnContext(ctx, "heartbeat: write queue full, ping dropped",
					"sessionID", h.session.ID(), "consecutiveDrops", drops)
			}
		}
	}
}
