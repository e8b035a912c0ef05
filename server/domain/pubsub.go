package domain

import (
	"context"
	"log/slog"
	"sync"
)

//go:generate go tool mockgen -destination=./mocks/pubsub_mock.go -package=mocks . PubSub

type Topic string

// Message はトピック経由で配送されるメッセージです。
type Message struct {
	SessionID SessionID
	Data      []byte
}

// PubSub はSessionEndpointとRoomの間のメッセージ配送境界です。
type PubSub interface {
	Subscribe(topic Topic) <-chan Message
	Unsubscribe(topic Topic, ch <-chan Message)
	Publish(ctx context.Context, topic Topic, msg Message)
}

const subscriberBuffer = 1024

// SimplePubSub はプロセス内のチャネルベースPubSub実装です。
// 購読チャネルが満杯の場合、メッセージは破棄されます（バックプレッシャーなし）。
type SimplePubSub struct {
	mu     sync.RWMutex
	topics map[Topic][]chan Message
}

func NewSimplePubSub() *SimplePubSub {
	return &SimplePubSub{
		topics: make(map[Topic][]chan Message),
	}
}

func (p *SimplePubSub) Subscribe(topic Topic) <-chan Message {
	p.mu.Lock()
	defer p.mu.Unlock()

	ch := make(chan Message, subscriberBuffer)
	p.topics[topic] = append(p.topics[topic], ch)
	return ch
}

func (p *SimplePubSub) Unsubscribe(topic Topic, ch <-chan Message) {
	p.mu.Lock()
	defer p.mu.Unlock()

	subs := p.topics[topic]
	for i, sub := range subs {
		if sub == ch {
			p.topics[topic] = append(subs[:i], subs[i+1:]...)
			close(sub)
			break
		}
	}
	if len(p.topics[topic]) == 0 {
		delete(p.topics, topic)
	}
}

func (p *SimplePubSub) Publish(ctx context.Context, topic Topic, msg Message) {
	p.mu.RLock()
	subs := p.topics[topic]
	p.mu.RUnlock()

	for _, sub := range subs {
		select {
		case sub <- msg:
		default:
			slog.WarnContext(ctx, "pubsub: subscriber channel full, message dropped", "topic", topic)
		}
	}
}
