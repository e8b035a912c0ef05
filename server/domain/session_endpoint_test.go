package domain_test

import (
	"context"
	"testing"

	"go.uber.org/mock/gomock"

	domain "spearhunt/server/domain"
	"spearhunt/server/domain/mocks"
)

// 初期化時にリソースが正しくセットアップされることを確認
func TestNewSessionEndpoint_InitializesDefaults(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	s := domain.NewSession()
	tr := mocks.NewMockTransport(ctrl)
	c := domain.NewConnection(s.ID(), tr)
	ps := mocks.NewMockPubSub(ctrl)
	rm := mocks.NewMockRoomManager(ctrl)

	se, err := domain.NewSessionEndpoint(context.Background(), s, c, ps, rm, domain.Keepalive{})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if se == nil {
		t.Fatalf("endpoint is nil")
	}
}

func TestNewSessionEndpoint_RejectsNilDependencies(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	s := domain.NewSession()
	tr := mocks.NewMockTransport(ctrl)
	c := domain.NewConnection(s.ID(), tr)
	ps := mocks.NewMockPubSub(ctrl)
	rm := mocks.NewMockRoomManager(ctrl)

	if _, err := domain.NewSessionEndpoint(context.Background(), nil, c, ps, rm, domain.Keepalive{}); err == nil {
		t.Error("nil session should be rejected")
	}
	if _, err := domain.NewSessionEndpoint(context.Background(), s, nil, ps, rm, domain.Keepalive{}); err == nil {
		t.Error("nil connection should be rejected")
	}
	if _, err := domain.NewSessionEndpoint(context.Background(), s, c, nil, rm, domain.Keepalive{}); err == nil {
		t.Error("nil pubsub should be rejected")
	}
	if _, err := domain.NewSessionEndpoint(context.Background(), s, c, ps, nil, domain.Keepalive{}); err == nil {
		t.Error("nil room manager should be rejected")
	}
}
