package application

import (
	"math/rand/v2"

	"spearhunt/server/domain"
)

// Spawner は補充スポーンのスケジュールを管理します。
// Removed1回につき必ず1回の補充を発行し、要求は決して失われません。
// ポーズ中はMaterializeが呼ばれないため、要求は保留のまま持ち越されます。
type Spawner struct {
	rng     *rand.Rand
	pending []uint64 // スポーン予定tick
}

func NewSpawner(seed uint64) *Spawner {
	return &Spawner{
		rng: rand.New(rand.NewPCG(seed, seed^0x9e3779b97f4a7c15)),
	}
}

// RequestInitial はセッション開始時の初回スポーンを予約します。
func (sp *Spawner) RequestInitial(now uint64) {
	sp.pending = append(sp.pending, now+InitialSpawnTicks)
}

// Request はRemoved（キルまたは到達）による補充スポーンを予約します。
func (sp *Spawner) Request(now uint64) {
	sp.pending = append(sp.pending, now+RespawnDelayTicks)
}

// Pending は未消化のスポーン要求数を返します。
func (sp *Spawner) Pending() int {
	return len(sp.pending)
}

// Materialize は期限到達分の要求を消化し、新規個体を生成します。
func (sp *Spawner) Materialize(now uint64, arena *Arena) []*Animal {
	var spawned []*Animal
	remaining := sp.pending[:0]
	for _, due := range sp.pending {
		if due > now {
			remaining = append(remaining, due)
			continue
		}
		archetype := PickArchetype(sp.rng)
		spawned = append(spawned, arena.SpawnAnimal(archetype, sp.spawnPosition()))
	}
	sp.pending = remaining
	return spawned
}

func (sp *Spawner) spawnPosition() domain.Vec3 {
	return vec3(
		(sp.rng.Float32()*2-1)*SpawnJitterX,
		SpawnHeightY,
		SpawnDepthZ,
	)
}

// Reset は保留中の要求をすべて破棄します。
func (sp *Spawner) Reset() {
	sp.pending = sp.pending[:0]
}
