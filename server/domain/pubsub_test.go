package domain

import (
	"context"
	"testing"
	"time"
)

func TestSimplePubSub_PublishToSubscriber(t *testing.T) {
	ps := NewSimplePubSub()
	ctx := context.Background()

	ch := ps.Subscribe(Topic("room:default"))
	defer ps.Unsubscribe(Topic("room:default"), ch)

	sessionID := NewSessionID()
	ps.Publish(ctx, Topic("room:default"), Message{SessionID: sessionID, Data: []byte("hello")})

	select {
	case msg := <-ch:
		if msg.SessionID != sessionID {
			t.Error("session ID mismatch")
		}
		if string(msg.Data) != "hello" {
			t.Errorf("Data = %q, want %q", msg.Data, "hello")
		}
	case <-time.After(1 * time.Second):
		t.Fatal("timed out waiting for message")
	}
}

func TestSimplePubSub_TopicsAreIsolated(t *testing.T) {
	ps := NewSimplePubSub()
	ctx := context.Background()

	ch := ps.Subscribe(Topic("room:a"))
	defer ps.Unsubscribe(Topic("room:a"), ch)

	ps.Publish(ctx, Topic("room:b"), Message{Data: []byte("other")})

	select {
	case msg := <-ch:
		t.Fatalf("unexpected message on another topic: %q", msg.Data)
	case <-time.After(50 * time.Millisecond):
	}
}

func TestSimplePubSub_FanOut(t *testing.T) {
	ps := NewSimplePubSub()
	ctx := context.Background()

	ch1 := ps.Subscribe(Topic("room:default"))
	ch2 := ps.Subscribe(Topic("room:default"))
	defer ps.Unsubscribe(Topic("room:default"), ch1)
	defer ps.Unsubscribe(Topic("room:default"), ch2)

	ps.Publish(ctx, Topic("room:default"), Message{Data: []byte("x")})

	for i, ch := range []<-chan Message{ch1, ch2} {
		select {
		case <-ch:
		case <-time.After(1 * time.Second):
			t.Fatalf("subscriber %d did not receive the message", i)
		}
	}
}

func TestSimplePubSub_UnsubscribeClosesChannel(t *testing.T) {
	ps := NewSimplePubSub()
	ctx := context.Background()

	ch := ps.Subscribe(Topic("room:default"))
	ps.Unsubscribe(Topic("room:default"), ch)

	if _, ok := <-ch; ok {
		t.Error("channel should be closed after Unsubscribe")
	}

	// 購読者のいないトピックへのPublishはno-op
	ps.Publish(ctx, Topic("room:default"), Message{Data: []byte("x")})
}

func TestSimplePubSub_DropsWhenSubscriberFull(t *testing.T) {
	ps := NewSimplePubSub()
	ctx := context.Background()

	ch := ps.Subscribe(Topic("room:default"))
	defer ps.Unsubscribe(Topic("room:default"), ch)

	// バッファを超えてもPublishはブロックしない
	for range subscriberBuffer + 10 {
		ps.Publish(ctx, Topic("room:default"), Message{Data: []byte("x")})
	}

	received := 0
	for {
		select {
		case <-ch:
			received++
		default:
			if received != subscriberBuffer {
				t.Errorf("received = %d, want %d", received, subscriberBuffer)
			}
			return
		}
	}
}
