package domain

import (
	"sync/atomic"
	"time"

	"github.com/google/uuid"
)

// SessionID は1接続を識別するUUIDです。
type SessionID [16]byte

func NewSessionID() SessionID {
	return SessionID(uuid.New())
}

func SessionIDFromBytes(b [16]byte) SessionID {
	return SessionID(b)
}

func (id SessionID) Bytes() [16]byte {
	return [16]byte(id)
}

func (id SessionID) String() string {
	return uuid.UUID(id).String()
}

// Keepalive は1接続の死活監視の間隔設定です。
// ゼロ値のフィールドはデフォルト値に補正されます。無効化はIsIdle(0)で行います。
type Keepalive struct {
	PingInterval      time.Duration
	IdleCheckInterval time.Duration
	IdleTimeout       time.Duration
}

const (
	DefaultPingInterval      = 5 * time.Second
	DefaultIdleCheckInterval = 1 * time.Second
	DefaultIdleTimeout       = 30 * time.Second
)

func (k Keepalive) withDefaults() Keepalive {
	if k.PingInterval <= 0 {
		k.PingInterval = DefaultPingInterval
	}
	if k.IdleCheckInterval <= 0 {
		k.IdleCheckInterval = DefaultIdleCheckInterval
	}
	if k.IdleTimeout <= 0 {
		k.IdleTimeout = DefaultIdleTimeout
	}
	return k
}

// Session は1接続の論理的な接続状態を表す構造体です。
// ゲームの進行状態はapplication側が持ち、ここでは死活情報のみを扱います。
type Session struct {
	id SessionID

	// activity
	lastRead  atomic.Int64
	lastWrite atomic.Int64
	lastPong  atomic.Int64

	// lifecycle
	closed atomic.Bool
}

func NewSession() *Session {
	s := &Session{
		id: NewSessionID(),
	}
	now := time.Now().UnixNano()
	s.lastRead.Store(now)
	s.lastWrite.Store(now)
	s.lastPong.Store(now)
	return s
}

func (s *Session) ID() SessionID {
	return s.id
}

func (s *Session) TouchRead() {
	s.lastRead.Store(time.Now().UnixNano())
}

func (s *Session) TouchWrite() {
	s.lastWrite.Store(time.Now().UnixNano())
}

func (s *Session) TouchPong() {
	s.lastPong.Store(time.Now().UnixNano())
}

func (s *Session) Close() bool {
	return s.closed.CompareAndSwap(false, true)
}

func (s *Session) IsClosed() bool {
	return s.closed.Load()
}

// IsIdle はいずれかの活動がtimeoutを超えて停止しているかを返します。
func (s *Session) IsIdle(timeout time.Duration) (bool, IdleReason) {
	if timeout <= 0 {
		return false, IdleDisabled
	}
	var reason IdleReason
	if s.isIdleSince(s.lastRead.Load(), timeout) {
		reason |= IdleRead
	}
	if s.isIdleSince(s.lastWrite.Load(), timeout) {
		reason |= IdleWrite
	}
	if s.isIdleSince(s.lastPong.Load(), timeout) {
		reason |= IdlePong
	}
	return reason != IdleNone, reason
}

func (s *Session) isIdleSince(unixNano int64, timeout time.Duration) bool {
	return time.Since(time.Unix(0, unixNano)) > timeout
}
