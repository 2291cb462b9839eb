package camera

import (
	"testing"

	"github.com/go-gl/mathgl/mgl32"
)

func TestBoundaryCollision(t *testing.T) {
	c := newTestController(nil)

	tests := []struct {
		name      string
		candidate mgl32.Vec3
		want      bool
	}{
		{"centre", mgl32.Vec3{0, 1.7, 0}, false},
		{"on the edge", mgl32.Vec3{30, 1.7, -30}, false},
		{"past +X", mgl32.Vec3{31, 1.7, 0}, true},
		{"past -X", mgl32.Vec3{-30.01, 1.7, 0}, true},
		{"past +Z", mgl32.Vec3{0, 1.7, 31}, true},
		{"past -Z", mgl32.Vec3{5, 1.7, -200}, true},
		{"height is not bounded", mgl32.Vec3{0, 500, 0}, false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := c.CheckCollision(tt.candidate); got != tt.want {
				t.Errorf("CheckCollision(%v) = %v, want %v", tt.candidate, got, tt.want)
			}
		})
	}
}

func TestWideBoundary(t *testing.T) {
	c := newTestController(func(cfg *Config) {
		cfg.Boundary = Rect{MinX: -200, MaxX: 200, MinZ: -200, MaxZ: 200}
	})
	if c.CheckCollision(mgl32.Vec3{150, 0, -150}) {
		t.Error("point inside the wide boundary should not collide")
	}
	if !c.CheckCollision(mgl32.Vec3{201, 0, 0}) {
		t.Error("point outside the wide boundary should collide")
	}
}

func TestObstacleCollision(t *testing.T) {
	pedestal := AABB{Min: mgl32.Vec3{2, 0, -1}, Max: mgl32.Vec3{4, 3, 1}}

	tests := []struct {
		name      string
		radius    float32
		candidate mgl32.Vec3
		want      bool
	}{
		{"inside", 0.3, mgl32.Vec3{3, 1, 0}, true},
		{"within radius of face", 0.3, mgl32.Vec3{1.8, 1, 0}, true},
		{"clear of face", 0.3, mgl32.Vec3{1.6, 1, 0}, false},
		{"near corner diagonal", 0.3, mgl32.Vec3{1.85, 1, 1.15}, true},
		{"clear of corner diagonal", 0.3, mgl32.Vec3{1.75, 1, 1.25}, false},
		{"above the box", 0.3, mgl32.Vec3{3, 3.2, 0}, true},
		{"zero radius outside", 0, mgl32.Vec3{1.99, 1, 0}, false},
		{"zero radius on face", 0, mgl32.Vec3{2, 1, 0}, true},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := DefaultConfig()
			cfg.CollisionRadius = tt.radius
			c := NewController(testProjection(), cfg, pedestal)
			if got := c.CheckCollision(tt.candidate); got != tt.want {
				t.Errorf("CheckCollision(%v) = %v, want %v", tt.candidate, got, tt.want)
			}
		})
	}
}

func TestLowObstacleBlocksBody(t *testing.T) {
	// knee-high case: below the eye but within the body span
	displayCase := AABB{Min: mgl32.Vec3{-8, 0, -1}, Max: mgl32.Vec3{-6, 1.2, 1}}
	c := NewController(testProjection(), DefaultConfig(), displayCase)

	tests := []struct {
		name      string
		candidate mgl32.Vec3
		want      bool
	}{
		{"eye above the case", mgl32.Vec3{-7, 1.7, 0}, true},
		{"within radius of the side", mgl32.Vec3{-8.2, 1.7, 0}, true},
		{"clear of the side", mgl32.Vec3{-8.4, 1.7, 0}, false},
		{"flying with feet over the top", mgl32.Vec3{-7, 3.3, 0}, false},
		{"flying with feet within radius of the top", mgl32.Vec3{-7, 3.1, 0}, true},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := c.CheckCollision(tt.candidate); got != tt.want {
				t.Errorf("CheckCollision(%v) = %v, want %v", tt.candidate, got, tt.want)
			}
		})
	}
}

func TestSpanDistanceSq(t *testing.T) {
	box := AABB{Min: mgl32.Vec3{0, 0, 0}, Max: mgl32.Vec3{1, 1, 1}}

	tests := []struct {
		name   string
		p      mgl32.Vec3
		height float32
		want   float32
	}{
		{"span crosses the box", mgl32.Vec3{0.5, 3, 0.5}, 2.5, 0},
		{"span above", mgl32.Vec3{0.5, 4, 0.5}, 2, 1},
		{"span below", mgl32.Vec3{0.5, -2, 0.5}, 1, 4},
		{"beside, overlapping in height", mgl32.Vec3{3, 0.5, 0.5}, 1.7, 4},
		{"point form", mgl32.Vec3{2, 2, 1}, 0, 2},
		{"negative height is a point", mgl32.Vec3{2, 2, 1}, -3, 2},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := box.SpanDistanceSq(tt.p, tt.height); !approx(got, tt.want) {
				t.Errorf("SpanDistanceSq(%v, %v) = %v, want %v", tt.p, tt.height, got, tt.want)
			}
		})
	}
}

func TestWalkingIntoObstacleStops(t *testing.T) {
	wall := AABB{Min: mgl32.Vec3{-5, 0, -3}, Max: mgl32.Vec3{5, 4, -2}}
	c := NewController(testProjection(), DefaultConfig(), wall)

	for i := 0; i < 300; i++ {
		c.Frame(0, 0, Keys(Forward, Sprint), 1.0/60)
		if c.Position().Z() < -2+0.3-tolerance {
			t.Fatalf("frame %d: camera passed into the wall clearance at %v", i, c.Position())
		}
	}
	if got := c.LastValidPosition(); got != c.Position() {
		t.Errorf("position %v should equal the last valid position %v", c.Position(), got)
	}
}

func TestBoundsOf(t *testing.T) {
	if _, ok := BoundsOf(nil); ok {
		t.Fatal("empty point set should not produce a box")
	}

	box, ok := BoundsOf([]mgl32.Vec3{{1, 5, -2}, {-3, 0, 4}, {2, 2, 2}})
	if !ok {
		t.Fatal("expected a box")
	}
	want := AABB{Min: mgl32.Vec3{-3, 0, -2}, Max: mgl32.Vec3{2, 5, 4}}
	if box != want {
		t.Errorf("BoundsOf: expected %+v, got %+v", want, box)
	}
	if moved := box.Translate(mgl32.Vec3{1, 1, 1}); moved.Min != (mgl32.Vec3{-2, 1, -1}) {
		t.Errorf("Translate: got %+v", moved)
	}
}

func TestKeySet(t *testing.T) {
	k := Keys(Forward, Fly)
	if !k.Held(Forward) || !k.Held(Fly) || k.Held(Backward) {
		t.Fatalf("unexpected key set %b", k)
	}
	k.Release(Fly)
	k.Press(Land)
	if k.Held(Fly) || !k.Held(Land) {
		t.Fatalf("press/release failed: %b", k)
	}

	for _, m := range Movements() {
		got, ok := ParseMovement(m.String())
		if !ok || got != m {
			t.Errorf("ParseMovement(%q) = %v, %v", m.String(), got, ok)
		}
	}
	if _, ok := ParseMovement("jump"); ok {
		t.Error("unknown movement name should not parse")
	}
	if got, ok := ParseMovement(" Sprint "); !ok || got != Sprint {
		t.Errorf("ParseMovement should ignore case and spaces, got %v", got)
	}
}
