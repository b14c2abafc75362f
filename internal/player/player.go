package player

import (
	"portalgun/internal/camera"

	rl "github.com/gen2brain/raylib-go/raylib"
)

// Player is the kinematic body the controller, collision resolver and
// teleporter mutate once per tick. Position is the feet point.
type Player struct {
	Position         rl.Vector3
	Velocity         rl.Vector3
	Yaw              float32 // body orientation, drives movement
	Pitch            float32 // head orientation, view only
	Grounded         bool
	PreviousPosition rl.Vector3
	EyeHeight        float32
}

func New(spawn rl.Vector3) *Player {
	return &Player{
		Position:         spawn,
		PreviousPosition: spawn,
		EyeHeight:        1.6,
	}
}

// BeginTick records the rollback target for horizontal collision. It must run
// before any movement in the tick.
func (p *Player) BeginTick() {
	p.PreviousPosition = p.Position
}

func (p *Player) EyePosition() rl.Vector3 {
	return rl.Vector3{X: p.Position.X, Y: p.Position.Y + p.EyeHeight, Z: p.Position.Z}
}

// ViewDirection is the unit look vector from the head.
func (p *Player) ViewDirection() rl.Vector3 {
	return camera.LookDirection(p.Yaw, p.Pitch)
}

func (p *Player) ViewPose() camera.Pose {
	return camera.Pose{
		Position: p.EyePosition(),
		Forward:  p.ViewDirection(),
		Up:       camera.Up,
	}
}

// Look applies yaw/pitch deltas, clamping pitch to +/-pitchLimit.
func (p *Player) Look(dYaw, dPitch, pitchLimit float32) {
	p.Yaw += dYaw
	p.Pitch += dPitch
	if p.Pitch > pitchLimit {
		p.Pitch = pitchLimit
	}
	if p.Pitch < -pitchLimit {
		p.Pitch = -pitchLimit
	}
}

// Intent is one frame of movement input. Look deltas are radians.
type Intent struct {
	Forward   bool
	Backward  bool
	Left      bool
	Right     bool
	Jump      bool
	LookYaw   float32
	LookPitch float32
}
