package application

import "testing"

func TestSpawner_MaterializeWaitsForDueTick(t *testing.T) {
	sp := NewSpawner(1)
	ar := NewArena()

	sp.RequestInitial(0)
	if sp.Pending() != 1 {
		t.Fatalf("Pending = %d, want 1", sp.Pending())
	}

	if got := sp.Materialize(InitialSpawnTicks-1, ar); len(got) != 0 {
		t.Errorf("spawned %d animals before due tick", len(got))
	}
	spawned := sp.Materialize(InitialSpawnTicks, ar)
	if len(spawned) != 1 {
		t.Fatalf("spawned = %d, want 1", len(spawned))
	}
	if sp.Pending() != 0 {
		t.Errorf("Pending = %d, want 0", sp.Pending())
	}
}

func TestSpawner_SpawnPositionWithinArena(t *testing.T) {
	sp := NewSpawner(7)
	ar := NewArena()

	for i := range 50 {
		sp.Request(uint64(i))
	}
	spawned := sp.Materialize(1000, ar)
	if len(spawned) != 50 {
		t.Fatalf("spawned = %d, want 50", len(spawned))
	}
	for _, a := range spawned {
		if a.Position.X < -SpawnJitterX || a.Position.X > SpawnJitterX {
			t.Errorf("X = %f, want within ±%f", a.Position.X, SpawnJitterX)
		}
		if a.Position.Z != SpawnDepthZ {
			t.Errorf("Z = %f, want %f", a.Position.Z, SpawnDepthZ)
		}
	}
}

// 要求1件につき必ず1体が生成される（ポーズ持ち越しでも失われない）
func TestSpawner_RequestsAreConserved(t *testing.T) {
	sp := NewSpawner(3)
	ar := NewArena()

	for i := range 5 {
		sp.Request(uint64(i * 10))
	}

	total := 0
	// 少しずつ期限を進めて分割消化する
	for _, now := range []uint64{25, 60, 200} {
		total += len(sp.Materialize(now, ar))
	}
	if total != 5 {
		t.Errorf("total spawned = %d, want 5", total)
	}
	if sp.Pending() != 0 {
		t.Errorf("Pending = %d, want 0", sp.Pending())
	}
}

func TestSpawner_ResetDropsPending(t *testing.T) {
	sp := NewSpawner(1)
	ar := NewArena()

	sp.Request(0)
	sp.Reset()

	if got := sp.Materialize(1000, ar); len(got) != 0 {
		t.Errorf("spawned %d animals after Reset", len(got))
	}
}
