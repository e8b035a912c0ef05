package application

import (
	"maps"
	"slices"

	"spearhunt/server/domain"
)

// Arena は生存中の動物と投擲物を所有するレジストリです。
// IDはセッション内で単調増加し、Restart時に0へ戻ります。
type Arena struct {
	animals map[uint32]*Animal
	spears  map[uint32]*Spear

	nextAnimalID uint32
	nextSpearID  uint32
}

func NewArena() *Arena {
	return &Arena{
		animals: make(map[uint32]*Animal),
		spears:  make(map[uint32]*Spear),
	}
}

func (ar *Arena) SpawnAnimal(archetype Archetype, position domain.Vec3) *Animal {
	ar.nextAnimalID++
	animal := newAnimal(ar.nextAnimalID, archetype, position)
	ar.animals[animal.ID] = animal
	return animal
}

func (ar *Arena) AddSpear(position, velocity domain.Vec3) *Spear {
	ar.nextSpearID++
	spear := newSpear(ar.nextSpearID, position, velocity)
	ar.spears[spear.ID] = spear
	return spear
}

func (ar *Arena) Animal(id uint32) (*Animal, bool) {
	a, ok := ar.animals[id]
	return a, ok
}

func (ar *Arena) Spear(id uint32) (*Spear, bool) {
	s, ok := ar.spears[id]
	return s, ok
}

// RemoveAnimal は動物をレジストリから削除します。
// 存在しないIDの削除はno-opです（到達とキルの競合を吸収するため）。
func (ar *Arena) RemoveAnimal(id uint32) bool {
	if _, ok := ar.animals[id]; !ok {
		return false
	}
	delete(ar.animals, id)
	return true
}

// RemoveSpear は投擲物をレジストリから削除します。存在しないIDはno-opです。
func (ar *Arena) RemoveSpear(id uint32) bool {
	if _, ok := ar.spears[id]; !ok {
		return false
	}
	delete(ar.spears, id)
	return true
}

// Animals はID昇順の動物スライスを返します。
// マップ順に依存しないことでtie-breakを決定的にします。
func (ar *Arena) Animals() []*Animal {
	ids := slices.Sorted(maps.Keys(ar.animals))
	animals := make([]*Animal, 0, len(ids))
	for _, id := range ids {
		animals = append(animals, ar.animals[id])
	}
	return animals
}

// Spears はID昇順の投擲物スライスを返します。
func (ar *Arena) Spears() []*Spear {
	ids := slices.Sorted(maps.Keys(ar.spears))
	spears := make([]*Spear, 0, len(ids))
	for _, id := range ids {
		spears = append(spears, ar.spears[id])
	}
	return spears
}

// AliveAnimals は到達・死亡を除いた生存個体数を返します。
func (ar *Arena) AliveAnimals() int {
	count := 0
	for _, a := range ar.animals {
		if a.IsAlive() {
			count++
		}
	}
	return count
}

// Reset は全エンティティを破棄しIDカウンタを初期化します。
func (ar *Arena) Reset() {
	clear(ar.animals)
	clear(ar.spears)
	ar.nextAnimalID = 0
	ar.nextSpearID = 0
}
