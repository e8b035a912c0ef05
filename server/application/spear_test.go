package application

import "testing"

const testDT float32 = 1.0 / 60

func TestSpear_AdvanceAppliesGravity(t *testing.T) {
	s := newSpear(1, vec3(0, 2, -1), vec3(0, 0, -20))

	vy := s.Velocity.Y
	if contact := s.Advance(testDT); contact != ContactNone {
		t.Fatalf("contact = %d, want ContactNone", contact)
	}
	if s.Velocity.Y >= vy {
		t.Errorf("Velocity.Y = %f, want < %f", s.Velocity.Y, vy)
	}
	if s.Position.Z >= -1 {
		t.Errorf("Position.Z = %f, want < -1", s.Position.Z)
	}
}

func TestSpear_BackstopContactClampsZ(t *testing.T) {
	s := newSpear(1, vec3(0, 5, ArenaBackstopZ+0.1), vec3(0, 0, -40))

	if contact := s.Advance(testDT); contact != ContactBackstop {
		t.Fatalf("contact = %d, want ContactBackstop", contact)
	}
	if s.Position.Z != ArenaBackstopZ {
		t.Errorf("Position.Z = %f, want %f", s.Position.Z, ArenaBackstopZ)
	}
	if s.Active {
		t.Error("spear should be inactive after terminal contact")
	}
}

func TestSpear_GroundContactClampsY(t *testing.T) {
	s := newSpear(1, vec3(0, 0.05, -10), vec3(0, -10, 0))

	if contact := s.Advance(testDT); contact != ContactGround {
		t.Fatalf("contact = %d, want ContactGround", contact)
	}
	if s.Position.Y != ArenaFloorY {
		t.Errorf("Position.Y = %f, want %f", s.Position.Y, ArenaFloorY)
	}
}

func TestSpear_OutOfBoundsDoesNotClamp(t *testing.T) {
	s := newSpear(1, vec3(ArenaHalfWidth-0.01, 5, -10), vec3(30, 20, 0))

	if contact := s.Advance(testDT); contact != ContactOutOfBounds {
		t.Fatalf("contact = %d, want ContactOutOfBounds", contact)
	}
	if s.Position.X <= ArenaHalfWidth {
		t.Errorf("Position.X = %f, want > %f (no clamp)", s.Position.X, ArenaHalfWidth)
	}
}

func TestSpear_AdvanceInactiveIsNoop(t *testing.T) {
	s := newSpear(1, vec3(0, 2, -10), vec3(0, 0, -20))
	s.Active = false

	pos := s.Position
	if contact := s.Advance(testDT); contact != ContactNone {
		t.Fatalf("contact = %d, want ContactNone", contact)
	}
	if s.Position != pos {
		t.Error("inactive spear must not move")
	}
}

func TestSpear_LatchMissFiresOnce(t *testing.T) {
	s := newSpear(1, vec3(0, 2, -10), vec3(0, 0, -20))

	if !s.LatchMiss() {
		t.Error("first LatchMiss should return true")
	}
	if s.LatchMiss() {
		t.Error("second LatchMiss should return false")
	}
}

func TestSpear_HitSpearNeverMisses(t *testing.T) {
	s := newSpear(1, vec3(0, 2, -10), vec3(0, 0, -20))
	s.HitAnimal = true

	if s.LatchMiss() {
		t.Error("a spear that hit an animal must not produce a miss")
	}
}
