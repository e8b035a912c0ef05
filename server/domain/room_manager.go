package domain

import "context"

//go:generate go tool mockgen -destination=./mocks/room_manager_mock.go -package=mocks . RoomManager

// RoomManager はセッションの参加先ルームを決定します。
type RoomManager interface {
	GetRoom(ctx context.Context, sessionID SessionID) (RoomID, error)
}

// SimpleRoomManager は全セッションを単一のデフォルトルームに割り当てます。
type SimpleRoomManager struct {
	defaultRoomID RoomID
}

func NewSimpleRoomManager(defaultRoomID RoomID) *SimpleRoomManager {
	return &SimpleRoomManager{defaultRoomID: defaultRoomID}
}

func (m *SimpleRoomManager) GetRoom(ctx context.Context, sessionID SessionID) (RoomID, error) {
	return m.defaultRoomID, nil
}
