package domain

import (
	"context"
	"sync"
	"testing"
	"time"
)

// fakeApplication はRoomのtickループ検証用の最小実装です。
type fakeApplication struct {
	mu       sync.Mutex
	messages [][]byte
	frame    []byte
}

func (f *fakeApplication) HandleMessage(ctx context.Context, sessionID SessionID, data []byte) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.messages = append(f.messages, data)
	return nil
}

func (f *fakeApplication) Tick(ctx context.Context) [][]byte {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.frame == nil {
		return nil
	}
	return [][]byte{f.frame}
}

func (f *fakeApplication) received() int {
	f.mu.Lock()
	defer f.mu.Unlock()
	return len(f.messages)
}

func TestRoom_ForwardsMessagesToApplication(t *testing.T) {
	ps := NewSimplePubSub()
	app := &fakeApplication{}
	room := NewRoom(RoomID("test"), ps, app, 1000)

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	done := make(chan struct{})
	go func() {
		room.Run(ctx)
		close(done)
	}()

	sessionID := NewSessionID()
	ps.Publish(ctx, Topic("room:test"), Message{SessionID: sessionID, Data: []byte{1, 2, 3}})

	deadline := time.After(1 * time.Second)
	for app.received() == 0 {
		select {
		case <-deadline:
			t.Fatal("application never received the message")
		case <-time.After(5 * time.Millisecond):
		}
	}

	cancel()
	select {
	case <-done:
	case <-time.After(1 * time.Second):
		t.Fatal("room did not stop after context cancel")
	}
}

func TestRoom_BroadcastsTickFramesToJoinedSessions(t *testing.T) {
	ps := NewSimplePubSub()
	app := &fakeApplication{frame: []byte("snapshot")}
	room := NewRoom(RoomID("test"), ps, app, 1000)

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	sessionID := NewSessionID()
	sessionCh := ps.Subscribe(Topic("session:" + sessionID.String()))
	defer ps.Unsubscribe(Topic("session:"+sessionID.String()), sessionCh)

	go room.Run(ctx)

	// joinしてからtickフレームが届くことを確認
	ps.Publish(ctx, Topic("room:test:ctrl"), Message{SessionID: sessionID, Data: []byte("join")})

	select {
	case msg := <-sessionCh:
		if string(msg.Data) != "snapshot" {
			t.Errorf("Data = %q, want %q", msg.Data, "snapshot")
		}
	case <-time.After(1 * time.Second):
		t.Fatal("joined session never received a tick frame")
	}
}

func TestRoom_LeaveStopsBroadcast(t *testing.T) {
	ps := NewSimplePubSub()
	app := &fakeApplication{frame: []byte("snapshot")}
	room := NewRoom(RoomID("test"), ps, app, 1000)

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	sessionID := NewSessionID()
	sessionCh := ps.Subscribe(Topic("session:" + sessionID.String()))
	defer ps.Unsubscribe(Topic("session:"+sessionID.String()), sessionCh)

	go room.Run(ctx)

	ps.Publish(ctx, Topic("room:test:ctrl"), Message{SessionID: sessionID, Data: []byte("join")})
	select {
	case <-sessionCh:
	case <-time.After(1 * time.Second):
		t.Fatal("session never joined")
	}

	ps.Publish(ctx, Topic("room:test:ctrl"), Message{SessionID: sessionID, Data: []byte("leave")})

	// leave反映後のフレームを読み捨て、配信が止まることを確認
	time.Sleep(50 * time.Millisecond)
	for len(sessionCh) > 0 {
		<-sessionCh
	}
	select {
	case msg := <-sessionCh:
		t.Fatalf("received a frame after leave: %q", msg.Data)
	case <-time.After(50 * time.Millisecond):
	}
}
