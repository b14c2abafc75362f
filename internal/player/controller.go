package player

import (
	"log"

	"portalgun/internal/camera"
	"portalgun/internal/engine"
	"portalgun/internal/physics"

	"github.com/chewxy/math32"
	rl "github.com/gen2brain/raylib-go/raylib"
)

var down = rl.Vector3{X: 0, Y: -1, Z: 0}

// Controller integrates gravity and drag, probes for ground and owns walking
// and jumping.
type Controller struct {
	Player *Player
	Ground physics.Raycaster
	Floors []*engine.GameObject // candidates for the ground probe, nil for all

	// Configuration
	Gravity       float32 // signed, negative pulls down
	MoveSpeed     float32
	JumpStrength  float32
	GroundDrag    float32
	AirDrag       float32
	StopThreshold float32 // horizontal speed components below this snap to zero
	ProbeHeight   float32 // ray origin above the feet
	ProbeDistance float32 // base ray length
	ProbeMargin   float32
	KillHeight    float32
	Respawn       rl.Vector3
	PitchLimit    float32
	StepDistance  float32 // grounded travel per footstep

	OnJump     engine.Event
	OnFootstep engine.Event
	OnRespawn  engine.Event

	stepAccum float32
}

func NewController(p *Player, ground physics.Raycaster) *Controller {
	return &Controller{
		Player:        p,
		Ground:        ground,
		Gravity:       -30,
		MoveSpeed:     8,
		JumpStrength:  10,
		GroundDrag:    5.0,
		AirDrag:       0.5,
		StopThreshold: 0.1,
		ProbeHeight:   1.0,
		ProbeDistance: 1.0,
		ProbeMargin:   0.2,
		KillHeight:    -50,
		Respawn:       rl.Vector3{X: 0, Y: 5, Z: 0},
		PitchLimit:    math32.Pi/2 - 0.05,
		StepDistance:  2.0,
	}
}

// ApplyIntent turns the head, walks and jumps. Walking translates the feet
// directly in the yaw frame and never touches Velocity, which carries only
// momentum.
func (c *Controller) ApplyIntent(in Intent, deltaTime float32) {
	p := c.Player
	p.Look(in.LookYaw, in.LookPitch, c.PitchLimit)

	forward, right := camera.FlatDirections(p.Yaw)

	var moveDir rl.Vector3
	if in.Forward {
		moveDir = rl.Vector3Add(moveDir, forward)
	}
	if in.Backward {
		moveDir = rl.Vector3Subtract(moveDir, forward)
	}
	if in.Right {
		moveDir = rl.Vector3Add(moveDir, right)
	}
	if in.Left {
		moveDir = rl.Vector3Subtract(moveDir, right)
	}

	// Normalize diagonal movement
	if moveLen := rl.Vector3Length(moveDir); moveLen > 0 {
		step := c.MoveSpeed * deltaTime
		p.Position = rl.Vector3Add(p.Position, rl.Vector3Scale(moveDir, step/moveLen))
		if p.Grounded {
			c.stepAccum += step
			if c.StepDistance > 0 && c.stepAccum >= c.StepDistance {
				c.stepAccum -= c.StepDistance
				c.OnFootstep.Invoke()
			}
		}
	}

	if in.Jump && p.Grounded {
		p.Velocity.Y = c.JumpStrength
		p.Grounded = false
		c.OnJump.Invoke()
	}
}

// Update advances the player by semi-implicit Euler integration and resolves
// ground contact.
func (c *Controller) Update(deltaTime float32) {
	p := c.Player

	p.Velocity.Y += c.Gravity * deltaTime

	drag := c.AirDrag
	if p.Grounded {
		drag = c.GroundDrag
	}
	p.Velocity.X -= p.Velocity.X * drag * deltaTime
	p.Velocity.Z -= p.Velocity.Z * drag * deltaTime

	// Clean up tiny values to stop sliding
	if math32.Abs(p.Velocity.X) < c.StopThreshold {
		p.Velocity.X = 0
	}
	if math32.Abs(p.Velocity.Z) < c.StopThreshold {
		p.Velocity.Z = 0
	}

	p.Position = rl.Vector3Add(p.Position, rl.Vector3Scale(p.Velocity, deltaTime))

	c.probeGround(deltaTime)

	// Safety net
	if p.Position.Y < c.KillHeight {
		log.Printf("Player: fell below %.1f at %+v, respawning", c.KillHeight, p.Position)
		p.Velocity = rl.Vector3Zero()
		p.Position = c.Respawn
		p.PreviousPosition = c.Respawn
		p.Grounded = false
		c.OnRespawn.Invoke()
	}
}

// probeGround casts down from above the feet. The look-ahead grows with descent
// speed so a fast fall cannot skip past a thin floor in one tick: the ray
// starts above where the feet were before this tick's fall and spans the
// whole descent plus a margin.
func (c *Controller) probeGround(deltaTime float32) {
	p := c.Player
	p.Grounded = false
	if c.Ground == nil {
		return
	}

	descent := math32.Max(0, -p.Velocity.Y*deltaTime)
	origin := rl.Vector3{X: p.Position.X, Y: p.Position.Y + descent + c.ProbeHeight, Z: p.Position.Z}
	lookAhead := descent + c.ProbeMargin

	hit, ok := c.Ground.Raycast(origin, down, c.ProbeDistance+lookAhead, c.Floors)
	if !ok || p.Velocity.Y > 0 {
		return
	}

	p.Position.Y = hit.Point.Y
	p.Velocity.Y = 0
	p.Grounded = true
}
