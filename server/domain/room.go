package domain

import (
	"context"
	"errors"
	"log/slog"
	"time"
)

type RoomID string

var ErrRoomBusy = errors.New("room control channel is full")

// Room は1試合分のセッション集合とtickループを持ちます。
// Applicationの呼び出しはすべてRun内の単一goroutineで行われます。
type Room struct {
	ID       RoomID
	sessions map[SessionID]struct{}

	pubsub      PubSub
	application Application // 外部からアプリケーションロジックを注入できる

	tickInterval time.Duration
}

func NewRoom(id RoomID, pubsub PubSub, application Application, tickRate int) *Room {
	if tickRate <= 0 {
		tickRate = 60
	}
	return &Room{
		ID:           id,
		sessions:     make(map[SessionID]struct{}),
		pubsub:       pubsub,
		application:  application,
		tickInterval: time.Second / time.Duration(tickRate),
	}
}

func (r *Room) Broadcast(ctx context.Context, data []byte) {
	for sessionID := range r.sessions {
		topic := Topic("session:" + sessionID.String())
		r.pubsub.Publish(ctx, topic, Message{Data: data})
	}
}

func (r *Room) SendTo(ctx context.Context, sessionID SessionID, data []byte) {
	topic := Topic("session:" + sessionID.String())
	r.pubsub.Publish(ctx, topic, Message{Data: data})
}

func (r *Room) Run(ctx context.Context) error {
	// room宛のメッセージを購読
	roomTopic := Topic("room:" + string(r.ID))
	msgCh := r.pubsub.Subscribe(roomTopic)
	defer r.pubsub.Unsubscribe(roomTopic, msgCh)

	// room制御用トピックを購読（join/leave）
	ctrlTopic := Topic("room:" + string(r.ID) + ":ctrl")
	ctrlCh := r.pubsub.Subscribe(ctrlTopic)
	defer r.pubsub.Unsubscribe(ctrlTopic, ctrlCh)

	ticker := time.NewTicker(r.tickInterval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return nil
		case <-ticker.C:
			// 制御メッセージを処理（join/leave）
		CTRL_LOOP:
			for {
				select {
				case ctrl := <-ctrlCh:
					r.handleControlMessage(ctrl)
				default:
					break CTRL_LOOP
				}
			}
			// 受信メッセージを処理
		RECEIVE_LOOP:
			for {
				select {
				case msg := <-msgCh:
					// アプリケーションロジックが担当する
					if err := r.application.HandleMessage(ctx, msg.SessionID, msg.Data); err != nil {
						slog.WarnContext(ctx, "room handle message failed", "err", err)
					}
				default:
					break RECEIVE_LOOP
				}
			}
			// ApplicationのTick()を呼び出し、生成されたフレームをブロードキャスト
			for _, frame := range r.application.Tick(ctx) {
				r.Broadcast(ctx, frame)
			}
		}
	}
}

// handleControlMessage はjoin/leave制御メッセージを処理します。
// TODO: []byte("join"/"leave")をRoomMessage型に置き換え
func (r *Room) handleControlMessage(msg Message) {
	switch string(msg.Data) {
	case "join":
		r.sessions[msg.SessionID] = struct{}{}
	case "leave":
		delete(r.sessions, msg.SessionID)
	default:
	}
}
