package application

import "spearhunt/server/domain"

// AnimalLifecycle は動物のライフサイクル状態です。
type AnimalLifecycle uint8

const (
	LifecycleAlive AnimalLifecycle = iota
	LifecycleDying
	LifecycleRemoved
)

// Animal はアリーナ上の動物を表す構造体です。
// Healthの減算はcollision側のみが行います。
type Animal struct {
	ID        uint32
	Archetype Archetype
	Position  domain.Vec3
	Health    uint8
	MaxHealth uint8
	Lifecycle AnimalLifecycle

	// stuck は命中済み投擲物のID集合。同一投擲物の二重ヒットを防ぐ。
	stuck map[uint32]struct{}
}

func newAnimal(id uint32, archetype Archetype, position domain.Vec3) *Animal {
	params := archetype.Params()
	return &Animal{
		ID:        id,
		Archetype: archetype,
		Position:  position,
		Health:    params.MaxHealth,
		MaxHealth: params.MaxHealth,
		Lifecycle: LifecycleAlive,
		stuck:     make(map[uint32]struct{}),
	}
}

func (a *Animal) IsAlive() bool {
	return a.Lifecycle == LifecycleAlive
}

// Speed は被弾で加速する現在速度を返します。
func (a *Animal) Speed() float32 {
	params := a.Archetype.Params()
	return params.BaseSpeed + float32(a.MaxHealth-a.Health)*params.SpeedIncreasePerHit
}

// Advance は動物をプレイヤー方向（+Z）へ1tick分進めます。
// 到達ラインを越えたらtrueを返します。Dying/Removedの個体は動きません。
func (a *Animal) Advance(dt float32) (arrived bool) {
	if !a.IsAlive() {
		return false
	}
	a.Position.Z += a.Speed() * dt
	return a.Position.Z >= PlayerBoundaryZ
}

// IsStuck は指定の投擲物が既に命中済みかを返します。
func (a *Animal) IsStuck(spearID uint32) bool {
	_, ok := a.stuck[spearID]
	return ok
}

func (a *Animal) recordStuck(spearID uint32) {
	a.stuck[spearID] = struct{}{}
}
