package application

import "math/rand/v2"

// Archetype は動物種別を表すタグです。
type Archetype uint8

const (
	ArchetypeAntelope Archetype = iota
	ArchetypeWarthog
	ArchetypeElephant

	archetypeCount = 3
)

// ArchetypeParams は種別ごとの不変パラメータです。
// Healthは被弾回数制（1ヒット=1減少）で、MaxHealthが必要ヒット数になります。
type ArchetypeParams struct {
	Name                string
	BaseSpeed           float32 // プレイヤーへ向かう初速 m/s
	SpeedIncreasePerHit float32 // 被弾ごとの加速
	MaxHealth           uint8
	Damage              uint8 // 到達時にプレイヤーへ与えるダメージ
	Score               uint32
	SpawnWeight         float32
	DeathAnimationTicks int // Dying→Removedまでの演出時間
}

var archetypeParams = [archetypeCount]ArchetypeParams{
	ArchetypeAntelope: {
		Name:                "antelope",
		BaseSpeed:           3.2,
		SpeedIncreasePerHit: 0,
		MaxHealth:           1,
		Damage:              10,
		Score:               10,
		SpawnWeight:         5,
		DeathAnimationTicks: 60,
	},
	ArchetypeWarthog: {
		Name:                "warthog",
		BaseSpeed:           2.4,
		SpeedIncreasePerHit: 0.8,
		MaxHealth:           2,
		Damage:              20,
		Score:               25,
		SpawnWeight:         3,
		DeathAnimationTicks: 90,
	},
	ArchetypeElephant: {
		Name:                "elephant",
		BaseSpeed:           1.5,
		SpeedIncreasePerHit: 0.6,
		MaxHealth:           3,
		Damage:              40,
		Score:               50,
		SpawnWeight:         2,
		DeathAnimationTicks: 150,
	},
}

func (a Archetype) Params() ArchetypeParams {
	return archetypeParams[a]
}

func (a Archetype) String() string {
	return archetypeParams[a].Name
}

// PickArchetype は重み付きランダムで種別を選びます。
// r = uniform(0, Σweights) から重みを引いていき、0以下になった種別を採用します。
func PickArchetype(rng *rand.Rand) Archetype {
	var total float32
	for _, p := range archetypeParams {
		total += p.SpawnWeight
	}
	r := rng.Float32() * total
	for i, p := range archetypeParams {
		r -= p.SpawnWeight
		if r <= 0 {
			return Archetype(i)
		}
	}
	return Archetype(archetypeCount - 1)
}
