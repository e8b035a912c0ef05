package domain

import "strings"

type IdleReason uint8

const (
	IdleNone     IdleReason = 0
	IdleRead     IdleReason = 1 << 0
	IdleWrite    IdleReason = 1 << 1
	IdlePong     IdleReason = 1 << 2
	IdleDisabled IdleReason = 1 << 7 // timeout<=0 のとき
)

func (r IdleReason) Has(x IdleReason) bool { return r&x != 0 }

func (r IdleReason) String() string {
	if r == IdleNone {
		return "none"
	}
	if r == IdleDisabled {
		return "disabled"
	}
	var parts []string
	if r.Has(IdleRead) {
		parts = append(parts, "read")
	}
	if r.Has(IdleWrite) {
		parts = append(parts, "write")
	}
	if r.Has(IdlePong) {
		parts = append(parts, "pong")
	}
	return strings.Join(parts, "+")
}
