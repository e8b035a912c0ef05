package handler

import (
	"log/slog"
	"net/http"

	"github.com/coder/websocket"

	adapterwebsocket "spearhunt/server/adapter/websocket"
	"spearhunt/server/domain"
)

type AcceptHandler struct {
	pubsub      domain.PubSub
	roomManager domain.RoomManager
	keepalive   domain.Keepalive
}

func NewAcceptHandler(pubsub domain.PubSub, roomManager domain.RoomManager, keepalive domain.Keepalive) *AcceptHandler {
	return &AcceptHandler{pubsub: pubsub, roomManager: roomManager, keepalive: keepalive}
}

func (h *AcceptHandler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	conn, err := websocket.Accept(w, r, &websocket.AcceptOptions{
		InsecureSkipVerify: true, // 開発用: Origin チェックをスキップ
	})
	if err != nil {
		slog.ErrorContext(ctx, "failed to accept", "err", err)
		return
	}

	session := domain.NewSession()
	transport := adapterwebsocket.NewTransportFrom(conn)
	connection := domain.NewConnection(session.ID(), transport)
	endpoint, err := domain.NewSessionEndpoint(ctx, session, connection, h.pubsub, h.roomManager, h.keepalive)
	if err != nil {
		slog.ErrorContext(ctx, "failed to create session endpoint", "err", err)
		return
	}
	slog.DebugContext(ctx, "accepted new connection", "session_id", session.ID())
	err = endpoint.Run()
	if err != nil {
		slog.ErrorContext(ctx, "failed to run session endpoint", "err", err)
		return
	}
}
