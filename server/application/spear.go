package application

import "spearhunt/server/domain"

// SpearContact は投擲物の終端接触の種別です。優先順は 壁 > 地面 > 場外。
type SpearContact uint8

const (
	ContactNone SpearContact = iota
	ContactBackstop
	ContactGround
	ContactOutOfBounds
)

// Spear は投げられた槍を表す構造体です。
// Activeがfalseになるのは一度だけで、命中（collision側）か終端接触（physics側）のどちらかです。
type Spear struct {
	ID       uint32
	Position domain.Vec3
	Velocity domain.Vec3
	Active   bool
	// HitAnimal がtrueの投擲物は以後ミス扱いにならない
	HitAnimal bool

	// missTriggered はミスイベントのワンショットラッチ
	missTriggered bool
}

func newSpear(id uint32, position, velocity domain.Vec3) *Spear {
	return &Spear{
		ID:       id,
		Position: position,
		Velocity: velocity,
		Active:   true,
	}
}

// Advance は重力下で1tick分積分し、終端接触を判定します。
// 接触時は種別に応じて位置をクランプし、投擲物を非アクティブ化します。
func (s *Spear) Advance(dt float32) SpearContact {
	if !s.Active {
		return ContactNone
	}

	s.Velocity.Y -= Gravity * dt
	s.Position = s.Position.Add(s.Velocity.Scale(dt))

	// 1. 奥の壁
	if s.Position.Z <= ArenaBackstopZ {
		s.Position.Z = ArenaBackstopZ
		s.Active = false
		return ContactBackstop
	}
	// 2. 地面
	if s.Position.Y <= ArenaFloorY {
		s.Position.Y = ArenaFloorY
		s.Active = false
		return ContactGround
	}
	// 3. 場外（クランプしない）
	if s.Position.X < -ArenaHalfWidth || s.Position.X > ArenaHalfWidth || s.Position.Z > 1.0 {
		s.Active = false
		return ContactOutOfBounds
	}
	return ContactNone
}

// LatchMiss はミスイベントを発火すべきときに一度だけtrueを返します。
// 命中済みの投擲物は決してミスになりません。
func (s *Spear) LatchMiss() bool {
	if s.HitAnimal || s.missTriggered {
		return false
	}
	s.missTriggered = true
	return true
}
