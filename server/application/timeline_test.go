package application

import "testing"

func TestTimeline_DrainAppliesDueEffects(t *testing.T) {
	tl := NewTimeline()
	g := NewGame(GameConfig{})

	applied := 0
	tl.Schedule(5, func(g *Game) { applied++ })
	tl.Schedule(10, func(g *Game) { applied++ })

	tl.Drain(4, g)
	if applied != 0 {
		t.Errorf("applied = %d, want 0", applied)
	}

	tl.Drain(5, g)
	if applied != 1 {
		t.Errorf("applied = %d, want 1", applied)
	}
	if tl.Len() != 1 {
		t.Errorf("Len = %d, want 1", tl.Len())
	}

	tl.Drain(10, g)
	if applied != 2 {
		t.Errorf("applied = %d, want 2", applied)
	}
	if tl.Len() != 0 {
		t.Errorf("Len = %d, want 0", tl.Len())
	}
}

func TestTimeline_DrainAppliesInScheduleOrder(t *testing.T) {
	tl := NewTimeline()
	g := NewGame(GameConfig{})

	var order []int
	tl.Schedule(3, func(g *Game) { order = append(order, 1) })
	tl.Schedule(3, func(g *Game) { order = append(order, 2) })
	tl.Schedule(2, func(g *Game) { order = append(order, 3) })

	tl.Drain(3, g)
	want := []int{1, 2, 3}
	if len(order) != len(want) {
		t.Fatalf("order length = %d, want %d", len(order), len(want))
	}
	for i := range want {
		if order[i] != want[i] {
			t.Errorf("order[%d] = %d, want %d", i, order[i], want[i])
		}
	}
}

// 作用の中からのScheduleは同一Drainで実行されず、かつ失われないこと
func TestTimeline_ScheduleInsideApply(t *testing.T) {
	tl := NewTimeline()
	g := NewGame(GameConfig{})

	inner := false
	tl.Schedule(1, func(g *Game) {
		tl.Schedule(1, func(g *Game) { inner = true })
	})

	tl.Drain(1, g)
	if inner {
		t.Error("inner effect must not run in the same drain")
	}
	if tl.Len() != 1 {
		t.Fatalf("Len = %d, want 1", tl.Len())
	}

	tl.Drain(2, g)
	if !inner {
		t.Error("inner effect should run on the next drain")
	}
}

func TestTimeline_Reset(t *testing.T) {
	tl := NewTimeline()
	g := NewGame(GameConfig{})

	applied := false
	tl.Schedule(1, func(g *Game) { applied = true })
	tl.Reset()

	tl.Drain(100, g)
	if applied {
		t.Error("effect should be discarded by Reset")
	}
	if tl.Len() != 0 {
		t.Errorf("Len = %d, want 0", tl.Len())
	}
}
