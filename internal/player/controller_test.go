package player

import (
	"testing"

	"portalgun/internal/engine"
	"portalgun/internal/physics"

	"github.com/chewxy/math32"
	rl "github.com/gen2brain/raylib-go/raylib"
)

// flatGround reports a hit on an infinite floor at height Y for downward rays.
type flatGround struct {
	Y     float32
	casts int
}

func (g *flatGround) Raycast(origin, direction rl.Vector3, maxDistance float32, candidates []*engine.GameObject) (physics.RaycastHit, bool) {
	g.casts++
	if direction.Y >= 0 {
		return physics.RaycastHit{}, false
	}
	dist := origin.Y - g.Y
	if dist < 0 || dist > maxDistance {
		return physics.RaycastHit{}, false
	}
	return physics.RaycastHit{
		Point:    rl.Vector3{X: origin.X, Y: g.Y, Z: origin.Z},
		Normal:   rl.Vector3{Y: 1},
		Distance: dist,
	}, true
}

func TestScenarioFallingSnapsToGround(t *testing.T) {
	p := New(rl.Vector3{X: 0, Y: 0.3, Z: 0})
	p.Velocity.Y = -10
	c := NewController(p, &flatGround{Y: 0})

	c.Update(0.016)

	if p.Velocity.Y != 0 {
		t.Errorf("Expected velocity.y 0, got %v", p.Velocity.Y)
	}
	if !p.Grounded {
		t.Error("Expected grounded after landing")
	}
	if p.Position.Y != 0 {
		t.Errorf("Expected position.y snapped to 0, got %v", p.Position.Y)
	}
}

func TestGroundSnapProperty(t *testing.T) {
	heights := []float32{-3, 0, 2.5, 10}
	deltas := []float32{0.001, 0.016, 0.033, 0.05}
	for _, h := range heights {
		for _, dt := range deltas {
			p := New(rl.Vector3{X: 1, Y: h + 0.1, Z: 1})
			p.Velocity.Y = -2
			c := NewController(p, &flatGround{Y: h})

			c.Update(dt)

			if p.Position.Y != h || p.Velocity.Y != 0 || !p.Grounded {
				t.Errorf("h=%v dt=%v: got y=%v vy=%v grounded=%v", h, dt, p.Position.Y, p.Velocity.Y, p.Grounded)
			}
		}
	}
}

func TestFastFallDoesNotTunnel(t *testing.T) {
	// 60 u/s for 0.05 s moves 3 units; the look-ahead must still reach the floor.
	p := New(rl.Vector3{X: 0, Y: 1, Z: 0})
	p.Velocity.Y = -60
	c := NewController(p, &flatGround{Y: 0})

	c.Update(0.05)

	if !p.Grounded || p.Position.Y != 0 {
		t.Errorf("Expected landing on floor, got y=%v grounded=%v", p.Position.Y, p.Grounded)
	}
}

func TestRisingDoesNotSnap(t *testing.T) {
	p := New(rl.Vector3{X: 0, Y: 0.05, Z: 0})
	p.Velocity.Y = 10
	c := NewController(p, &flatGround{Y: 0})

	c.Update(0.016)

	if p.Grounded {
		t.Error("Expected not grounded while rising")
	}
	if p.Velocity.Y <= 0 {
		t.Errorf("Expected upward velocity preserved, got %v", p.Velocity.Y)
	}
}

func TestNoGroundMeansAirborne(t *testing.T) {
	p := New(rl.Vector3{X: 0, Y: 20, Z: 0})
	p.Grounded = true
	c := NewController(p, &flatGround{Y: 0})

	c.Update(0.016)

	if p.Grounded {
		t.Error("Expected airborne far above the floor")
	}
	want := float32(-30 * 0.016)
	if math32.Abs(p.Velocity.Y-want) > 1e-6 {
		t.Errorf("Expected velocity.y %v, got %v", want, p.Velocity.Y)
	}
}

func TestHorizontalDrag(t *testing.T) {
	p := New(rl.Vector3{X: 0, Y: 0, Z: 0})
	p.Grounded = true
	p.Velocity = rl.Vector3{X: 10, Z: 0.05}
	c := NewController(p, &flatGround{Y: 0})

	c.Update(0.01)

	// ground drag 5: 10 - 10*5*0.01
	if math32.Abs(p.Velocity.X-9.5) > 1e-5 {
		t.Errorf("Expected velocity.x 9.5, got %v", p.Velocity.X)
	}
	if p.Velocity.Z != 0 {
		t.Errorf("Expected tiny velocity.z snapped to 0, got %v", p.Velocity.Z)
	}
}

func TestSafetyNetRespawns(t *testing.T) {
	p := New(rl.Vector3{X: 3, Y: -49.9, Z: 3})
	p.Velocity = rl.Vector3{X: 1, Y: -20, Z: 1}
	c := NewController(p, nil)
	respawned := 0
	c.OnRespawn.AddListener(func() { respawned++ })

	c.Update(0.05)

	if p.Position != c.Respawn {
		t.Errorf("Expected respawn at %+v, got %+v", c.Respawn, p.Position)
	}
	if p.Velocity != rl.Vector3Zero() {
		t.Errorf("Expected zero velocity, got %+v", p.Velocity)
	}
	if respawned != 1 {
		t.Errorf("Expected one respawn event, got %d", respawned)
	}
}

func TestJumpOnlyWhenGrounded(t *testing.T) {
	p := New(rl.Vector3{})
	c := NewController(p, &flatGround{Y: 0})
	jumps := 0
	c.OnJump.AddListener(func() { jumps++ })

	c.ApplyIntent(Intent{Jump: true}, 0.016)
	if jumps != 0 || p.Velocity.Y != 0 {
		t.Errorf("Expected no jump while airborne, jumps=%d vy=%v", jumps, p.Velocity.Y)
	}

	p.Grounded = true
	c.ApplyIntent(Intent{Jump: true}, 0.016)
	if jumps != 1 || p.Velocity.Y != c.JumpStrength || p.Grounded {
		t.Errorf("Expected jump, jumps=%d vy=%v grounded=%v", jumps, p.Velocity.Y, p.Grounded)
	}
}

func TestWalkingTranslatesWithoutMomentum(t *testing.T) {
	p := New(rl.Vector3{})
	c := NewController(p, nil)

	c.ApplyIntent(Intent{Forward: true, Right: true}, 0.1)

	if p.Velocity != rl.Vector3Zero() {
		t.Errorf("Expected walking to leave velocity untouched, got %+v", p.Velocity)
	}
	moved := rl.Vector3Length(p.Position)
	if math32.Abs(moved-c.MoveSpeed*0.1) > 1e-5 {
		t.Errorf("Expected diagonal move of %v, got %v", c.MoveSpeed*0.1, moved)
	}
}

func TestLookClampsPitch(t *testing.T) {
	p := New(rl.Vector3{})
	c := NewController(p, nil)

	c.ApplyIntent(Intent{LookYaw: 0.5, LookPitch: 10}, 0.016)

	if p.Yaw != 0.5 {
		t.Errorf("Expected yaw 0.5, got %v", p.Yaw)
	}
	if p.Pitch != c.PitchLimit {
		t.Errorf("Expected pitch clamped to %v, got %v", c.PitchLimit, p.Pitch)
	}
}

func TestFootsteps(t *testing.T) {
	p := New(rl.Vector3{})
	p.Grounded = true
	c := NewController(p, nil)
	steps := 0
	c.OnFootstep.AddListener(func() { steps++ })

	// 8 u/s * 0.0625 s = 0.5 units per tick; 2 units per step.
	for i := 0; i < 10; i++ {
		c.ApplyIntent(Intent{Forward: true}, 0.0625)
	}

	if steps != 2 {
		t.Errorf("Expected 2 footsteps over 5 units, got %d", steps)
	}
}
