package server

import (
	"net/http"

	loophandler "spearhunt/internal/handler"
	"spearhunt/server/domain"
	"spearhunt/server/handler"
)

func Route(pubsub domain.PubSub, roomManager domain.RoomManager, keepalive domain.Keepalive, controlLoop *loophandler.Loop[handler.ControlRequest]) *http.ServeMux {
	mux := http.NewServeMux()
	mux.Handle("/ws", handler.NewAcceptHandler(pubsub, roomManager, keepalive))
	mux.Handle("/health", handler.NewHealthHandler())
	mux.Handle("/control", handler.NewControlHandler(controlLoop))
	return mux
}
