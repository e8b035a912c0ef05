package domain_test

import (
	"context"
	"testing"
	"time"

	domain "spearhunt/server/domain"
)

func startHeartbeat(t *testing.T, session *domain.Session, writeCh chan []byte) (context.CancelFunc, <-chan struct{}) {
	t.Helper()
	hb := domain.NewHeartbeatService(20*time.Millisecond, session, writeCh)
	ctx, cancel := context.WithCancel(context.Background())
	done := make(chan struct{})
	go func() {
		hb.Run(ctx)
		close(done)
	}()
	return cancel, done
}

func TestHeartbeatService_SendsPingFrames(t *testing.T) {
	session := domain.NewSession()
	writeCh := make(chan []byte, 16)
	cancel, _ := startHeartbeat(t, session, writeCh)
	defer cancel()

	select {
	case msg := <-writeCh:
		// pingはペイロードなしの制御フレーム
		if len(msg) != domain.HeaderSize+domain.PayloadHeaderSize {
			t.Fatalf("ping size = %d, want %d", len(msg), domain.HeaderSize+domain.PayloadHeaderSize)
		}
	case <-time.After(1 * time.Second):
		t.Fatal("timed out waiting for ping frame")
	}
}

func TestHeartbeatService_StopsOnContextCancel(t *testing.T) {
	session := domain.NewSession()
	cancel, done := startHeartbeat(t, session, make(chan []byte, 16))

	cancel()

	select {
	case <-done:
	case <-time.After(1 * time.Second):
		t.Fatal("heartbeat did not stop after context cancel")
	}
}

func TestHeartbeatService_StopsWhenSessionClosed(t *testing.T) {
	session := domain.NewSession()
	cancel, done := startHeartbeat(t, session, make(chan []byte, 16))
	defer cancel()

	session.Close()

	select {
	case <-done:
	case <-time.After(1 * time.Second):
		t.Fatal("heartbeat did not stop after session close")
	}
}

func TestHeartbeatService_DropsWhenWriteChFull(t *testing.T) {
	session := domain.NewSession()
	// バッファなし: 受け手がいないので常に満杯扱いになる
	cancel, done := startHeartbeat(t, session, make(chan []byte))

	// ブロックせずに動き続け、キャンセルで素直に終了することを確認
	time.Sleep(100 * time.Millisecond)
	cancel()

	select {
	case <-done:
	case <-time.After(1 * time.Second):
		t.Fatal("heartbeat blocked on full write channel")
	}
}
