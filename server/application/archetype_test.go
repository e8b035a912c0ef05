package application

import (
	"math/rand/v2"
	"testing"
)

func TestArchetypeParams(t *testing.T) {
	tests := []struct {
		archetype Archetype
		name      string
		maxHealth uint8
		score     uint32
	}{
		{ArchetypeAntelope, "antelope", 1, 10},
		{ArchetypeWarthog, "warthog", 2, 25},
		{ArchetypeElephant, "elephant", 3, 50},
	}

	for _, tt := range tests {
		p := tt.archetype.Params()
		if p.Name != tt.name {
			t.Errorf("%s: Name = %s", tt.name, p.Name)
		}
		if p.MaxHealth != tt.maxHealth {
			t.Errorf("%s: MaxHealth = %d, want %d", tt.name, p.MaxHealth, tt.maxHealth)
		}
		if p.Score != tt.score {
			t.Errorf("%s: Score = %d, want %d", tt.name, p.Score, tt.score)
		}
		if tt.archetype.String() != tt.name {
			t.Errorf("String() = %s, want %s", tt.archetype.String(), tt.name)
		}
	}
}

func TestPickArchetype_CoversAllArchetypes(t *testing.T) {
	rng := rand.New(rand.NewPCG(1, 2))

	seen := make(map[Archetype]int)
	for range 1000 {
		a := PickArchetype(rng)
		if a >= archetypeCount {
			t.Fatalf("invalid archetype: %d", a)
		}
		seen[a]++
	}

	for a := Archetype(0); a < archetypeCount; a++ {
		if seen[a] == 0 {
			t.Errorf("archetype %s never picked in 1000 draws", a)
		}
	}
	// アンテロープが最頻（重み5:3:2）
	if seen[ArchetypeAntelope] <= seen[ArchetypeElephant] {
		t.Errorf("antelope (%d) should outnumber elephant (%d)", seen[ArchetypeAntelope], seen[ArchetypeElephant])
	}
}

func TestPickArchetype_DeterministicForSeed(t *testing.T) {
	a := rand.New(rand.NewPCG(42, 42))
	b := rand.New(rand.NewPCG(42, 42))

	for i := range 100 {
		if PickArchetype(a) != PickArchetype(b) {
			t.Fatalf("draw %d diverged for identical seeds", i)
		}
	}
}
