package application

import (
	"testing"

	"spearhunt/server/domain"
)

func TestSnapshotRoundTrip(t *testing.T) {
	original := &Snapshot{
		Tick:      1234,
		Score:     85,
		PlayerHP:  60,
		Paused:    true,
		GameOver:  false,
		FireState: FireGripped,
		Power:     0.75,
		Aim:       domain.Vec3{X: 1.5, Y: 2.0, Z: -0.5},
		Notice:    NoticeHit,
		Animals: []AnimalState{
			{ID: 3, Archetype: ArchetypeElephant, Lifecycle: LifecycleDying, Health: 0, MaxHealth: 3, Position: domain.Vec3{X: -2, Y: 0, Z: -12}},
			{ID: 5, Archetype: ArchetypeAntelope, Lifecycle: LifecycleAlive, Health: 1, MaxHealth: 1, Position: domain.Vec3{X: 4, Y: 0, Z: -20}},
		},
		Spears: []SpearState{
			{ID: 7, Position: domain.Vec3{X: 0, Y: 3, Z: -8}, Velocity: domain.Vec3{X: 0, Y: -2, Z: -25}, Active: true},
			{ID: 8, Position: domain.Vec3{X: -2, Y: 1, Z: -12}, Velocity: domain.Vec3{}, Active: false, HitAnimal: true},
		},
	}

	encoded := original.Encode()
	wantSize := snapshotFixedSize + 2*animalWireSize + 2*spearWireSize
	if len(encoded) != wantSize {
		t.Fatalf("encoded size = %d, want %d", len(encoded), wantSize)
	}

	decoded, err := ParseSnapshotPayload(encoded)
	if err != nil {
		t.Fatalf("ParseSnapshotPayload failed: %v", err)
	}

	if decoded.Tick != original.Tick {
		t.Errorf("Tick = %d, want %d", decoded.Tick, original.Tick)
	}
	if decoded.Score != original.Score {
		t.Errorf("Score = %d, want %d", decoded.Score, original.Score)
	}
	if decoded.PlayerHP != original.PlayerHP {
		t.Errorf("PlayerHP = %d, want %d", decoded.PlayerHP, original.PlayerHP)
	}
	if decoded.Paused != original.Paused || decoded.GameOver != original.GameOver {
		t.Errorf("flags = (%v, %v), want (%v, %v)", decoded.Paused, decoded.GameOver, original.Paused, original.GameOver)
	}
	if decoded.FireState != original.FireState {
		t.Errorf("FireState = %d, want %d", decoded.FireState, original.FireState)
	}
	if decoded.Power != original.Power {
		t.Errorf("Power = %f, want %f", decoded.Power, original.Power)
	}
	if decoded.Aim != original.Aim {
		t.Errorf("Aim = %v, want %v", decoded.Aim, original.Aim)
	}
	if decoded.Notice != original.Notice {
		t.Errorf("Notice = %d, want %d", decoded.Notice, original.Notice)
	}

	if len(decoded.Animals) != len(original.Animals) {
		t.Fatalf("animals = %d, want %d", len(decoded.Animals), len(original.Animals))
	}
	for i := range original.Animals {
		if decoded.Animals[i] != original.Animals[i] {
			t.Errorf("Animals[%d] = %+v, want %+v", i, decoded.Animals[i], original.Animals[i])
		}
	}
	if len(decoded.Spears) != len(original.Spears) {
		t.Fatalf("spears = %d, want %d", len(decoded.Spears), len(original.Spears))
	}
	for i := range original.Spears {
		if decoded.Spears[i] != original.Spears[i] {
			t.Errorf("Spears[%d] = %+v, want %+v", i, decoded.Spears[i], original.Spears[i])
		}
	}
}

func TestSnapshotRoundTrip_Empty(t *testing.T) {
	original := &Snapshot{Tick: 1, PlayerHP: PlayerMaxHP}

	decoded, err := ParseSnapshotPayload(original.Encode())
	if err != nil {
		t.Fatalf("ParseSnapshotPayload failed: %v", err)
	}
	if len(decoded.Animals) != 0 || len(decoded.Spears) != 0 {
		t.Errorf("entities = (%d, %d), want empty", len(decoded.Animals), len(decoded.Spears))
	}
}

func TestParseSnapshotPayload_RejectsUnknownArchetype(t *testing.T) {
	original := &Snapshot{
		Tick:    1,
		Animals: []AnimalState{{ID: 1, Archetype: ArchetypeWarthog, Health: 2, MaxHealth: 2, Position: domain.Vec3{Z: -10}}},
	}
	encoded := original.Encode()

	// 種別タグだけを壊す（id u32 の直後の1バイト）
	encoded[snapshotFixedSize-1+4] = archetypeCount
	if _, err := ParseSnapshotPayload(encoded); err == nil {
		t.Error("unknown archetype tag should be rejected")
	}
}

func TestParseSnapshotPayload_Truncated(t *testing.T) {
	original := &Snapshot{
		Tick:    1,
		Animals: []AnimalState{{ID: 1, Position: domain.Vec3{Z: -10}}},
	}
	encoded := original.Encode()

	for _, n := range []int{0, snapshotFixedSize - 1, len(encoded) - 1} {
		if _, err := ParseSnapshotPayload(encoded[:n]); err == nil {
			t.Errorf("ParseSnapshotPayload with %d bytes should fail", n)
		}
	}
}
