package domain

import (
	"context"
	"errors"
	"log/slog"
	"sync/atomic"
	"time"

	"golang.org/x/sync/errgroup"
)

var (
	// ErrBackpressure は書き込みチャネルが満杯の場合に返されるエラーです。
	ErrBackpressure = errors.New("write channel is full, apply backpressure")
	// ErrInitializationFailed はセッションエンドポイントの初期化に失敗した場合に返されるエラーです。
	ErrInitializationFailed = errors.New("failed to initialize session endpoint")
)

// SessionEndpoint は1接続分の読み書きループとセッション状態を束ねます。
type SessionEndpoint struct {
	ctx    context.Context
	cancel context.CancelFunc

	session     *Session
	connection  *Connection
	pubsub      PubSub
	roomManager RoomManager
	roomID      RoomID // 実行時にRoomManagerから取得
	keepalive   Keepalive

	ctrlCh  chan endpointEvent // 制御用チャネル
	writeCh chan []byte        // 書き込み用チャネル

	// lifecycle
	closed atomic.Bool
}

func NewSessionEndpoint(ctx context.Context, session *Session, connection *Connection, pubsub PubSub, roomManager RoomManager, keepalive Keepalive) (*SessionEndpoint, error) {
	if session == nil || connection == nil || pubsub == nil || roomManager == nil {
		return nil, ErrInitializationFailed
	}
	ctx, cancel := context.WithCancel(ctx)
	se := &SessionEndpoint{
		ctx:         ctx,
		cancel:      cancel,
		session:     session,
		connection:  connection,
		pubsub:      pubsub,
		roomManager: roomManager,
		keepalive:   keepalive.withDefaults(),
		ctrlCh:      make(chan endpointEvent, 16),
		writeCh:     make(chan []byte, 1024),
	}
	return se, nil
}

func (se *SessionEndpoint) Run() error {
	// 自分宛のメッセージを購読
	sessionTopic := Topic("session:" + se.session.ID().String())
	msgCh := se.pubsub.Subscribe(sessionTopic)
	defer se.pubsub.Unsubscribe(sessionTopic, msgCh)

	heartbeat := NewHeartbeatService(se.keepalive.PingInterval, se.session, se.writeCh)

	eg, ctx := errgroup.WithContext(se.ctx)
	eg.Go(func() error {
		se.ownerLoop(ctx)
		return nil
	})
	eg.Go(func() error {
		se.readLoop(ctx)
		return nil
	})
	eg.Go(func() error {
		se.writeLoop(ctx)
		return nil
	})
	eg.Go(func() error {
		se.subscribeLoop(ctx, msgCh)
		return nil
	})
	eg.Go(func() error {
		heartbeat.Run(ctx)
		return nil
	})

	// セッションID通知を送信
	assignMsg := EncodeAssignMessage(se.session.ID())
	if err := se.Send(assignMsg); err != nil {
		return err
	}

	if err := eg.Wait(); err != nil {
		return err
	}
	return nil
}

func (se *SessionEndpoint) Send(data []byte) error {
	select {
	case se.writeCh <- data:
		return nil
	default:
		return ErrBackpressure
	}
}

func (se *SessionEndpoint) Close(ctx context.Context) {
	se.sendCtrlEvent(ctx, endpointEvent{kind: evClose, err: nil})
}

func (se *SessionEndpoint) ForceClose() {
	se.close()
}

// ownerLoop は論理セッションの状態を監視し、必要に応じて接続の管理を行います。
func (se *SessionEndpoint) ownerLoop(ctx context.Context) {
	ticker := time.NewTicker(se.keepalive.IdleCheckInterval)
	defer ticker.Stop()
	for {
		select {
		case <-ctx.Done():
			return
		case ev := <-se.ctrlCh:
			se.handleControlEvent(ctx, ev)
		case <-ticker.C:
			ok, reason := se.session.IsIdle(se.keepalive.IdleTimeout)
			if ok {
				se.handleControlEvent(ctx, endpointEvent{
					kind: evClose,
					err:  errors.New(reason.String()),
				})
			}
		}
	}
}

func (se *SessionEndpoint) readLoop(ctx context.Context) {
	for {
		select {
		case <-ctx.Done():
			return
		default:
			data, err := se.connection.Read(ctx)
			if err != nil {
				se.sendCtrlEvent(ctx, endpointEvent{kind: evReadError, err: err})
				se.sendCtrlEvent(ctx, endpointEvent{kind: evClose, err: err})
				return
			}
			se.session.TouchRead()
			se.handleData(ctx, data)
		}
	}
}

func (se *SessionEndpoint) writeLoop(ctx context.Context) {
	for {
		select {
		case <-ctx.Done():
			return
		case data := <-se.writeCh:
			err := se.connection.Write(ctx, data)
			if err != nil {
				se.sendCtrlEvent(ctx, endpointEvent{kind: evWriteError, err: err})
				continue
			}
			se.session.TouchWrite()
		}
	}
}

// subscribeLoop はpubsubからのメッセージをwriteChに転送します。
func (se *SessionEndpoint) subscribeLoop(ctx context.Context, msgCh <-chan Message) {
	for {
		select {
		case <-ctx.Done():
			return
		case msg, ok := <-msgCh:
			if !ok {
				return
			}
			select {
			case se.writeCh <- msg.Data:
				// 送信成功
			default:
				slog.Warn("subscribeLoop: writeCh full, message dropped", "sessionID", se.session.ID())
			}
		}
	}
}

func (se *SessionEndpoint) close() {
	if !se.closed.CompareAndSwap(false, true) {
		return
	}
	// 切断時はRoomから離脱させる
	if !se.isRoomEmpty() {
		ctrlTopic := Topic("room:" + string(se.roomID) + ":ctrl")
		se.pubsub.Publish(context.Background(), ctrlTopic, Message{
			SessionID: se.session.ID(),
			Data:      []byte("leave"),
		})
	}
	se.cancel()
	se.session.Close()
	se.connection.Close()
}

func (se *SessionEndpoint) isRoomEmpty() bool {
	return se.roomID == RoomID("")
}

func (se *SessionEndpoint) handleData(ctx context.Context, data []byte) {
	header, err := ParseHeader(data)
	if err != nil {
		slog.WarnContext(ctx, "failed to parse header", "err", err)
		return
	}
	expectedBytes := se.session.ID().Bytes()
	if header.SessionID != expectedBytes {
		slog.WarnContext(ctx, "session ID mismatch", "expected", se.session.ID(), "got", SessionIDFromBytes(header.SessionID))
		return
	}
	payloadHeader, err := ParsePayloadHeader(data[HeaderSize:])
	if err != nil {
		slog.WarnContext(ctx, "failed to parse payload header", "err", err)
		return
	}

	switch payloadHeader.DataType {
	case DataTypeControl:
		se.handleControlMessage(ctx, ControlSubType(payloadHeader.SubType), data)
	case DataTypeGesture, DataTypeLandmark:
		// 入力メッセージをroom topicに転送
		if se.isRoomEmpty() {
			slog.WarnContext(ctx, "received input before joining a room", "sessionID", se.session.ID())
			return
		}
		roomTopic := Topic("room:" + string(se.roomID))
		se.pubsub.Publish(ctx, roomTopic, Message{
			SessionID: se.session.ID(),
			Data:      data,
		})
	default:
		slog.WarnContext(ctx, "unknown data type", "dataType", payloadHeader.DataType)
	}
}

func (se *SessionEndpoint) handleControlMessage(ctx context.Context, subType ControlSubType, data []byte) {
	switch subType {
	case ControlSubTypeJoin:
		roomID, err := se.roomManager.GetRoom(ctx, se.session.ID())
		if err != nil {
			slog.ErrorContext(ctx, "failed to get room", "err", err)
			return
		}
		se.roomID = roomID
		slog.InfoContext(ctx, "session joined room", "sessionID", se.session.ID(), "roomID", se.roomID)
		ctrlTopic := Topic("room:" + string(se.roomID) + ":ctrl")
		se.pubsub.Publish(ctx, ctrlTopic, Message{SessionID: se.session.ID(), Data: []byte("join")})
	case ControlSubTypeLeave:
		if se.isRoomEmpty() {
			slog.WarnContext(ctx, "session not in any room, cannot leave", "sessionID", se.session.ID())
			return
		}
		ctrlTopic := Topic("room:" + string(se.roomID) + ":ctrl")
		se.pubsub.Publish(ctx, ctrlTopic, Message{SessionID: se.session.ID(), Data: []byte("leave")})
		slog.InfoContext(ctx, "session left room", "sessionID", se.session.ID(), "roomID", se.roomID)
		se.roomID = RoomID("")
	case ControlSubTypePong:
		se.sendCtrlEvent(ctx, endpointEvent{kind: evPong})
	case ControlSubTypePause, ControlSubTypeResume, ControlSubTypeRestart, ControlSubTypeRotate:
		// ゲーム制御はApplicationが処理する
		if se.isRoomEmpty() {
			slog.WarnContext(ctx, "received game control before joining a room", "sessionID", se.session.ID())
			return
		}
		roomTopic := Topic("room:" + string(se.roomID))
		se.pubsub.Publish(ctx, roomTopic, Message{SessionID: se.session.ID(), Data: data})
	default:
		slog.WarnContext(ctx, "unknown control subtype", "subType", subType)
	}
}

// handleControlEvent は制御チャネルからのイベントを処理し論理セッションの状態を更新する唯一の関数です。
func (se *SessionEndpoint) handleControlEvent(ctx context.Context, ev endpointEvent) {
	switch ev.kind {
	case evClose:
		se.close()
	case evPong:
		se.session.TouchPong()
	case evReadError:
		return
	case evWriteError:
		return
	default:
		slog.WarnContext(ctx, "unknown endpoint event kind", "kind", ev.kind)
	}
}

func (se *SessionEndpoint) sendCtrlEvent(ctx context.Context, ev endpointEvent) {
	select {
	case se.ctrlCh <- ev:
	case <-ctx.Done():
	}
}
