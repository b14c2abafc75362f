package portal

import (
	"portalgun/internal/camera"
	"portalgun/internal/engine"
	"portalgun/internal/player"

	"github.com/chewxy/math32"
	rl "github.com/gen2brain/raylib-go/raylib"
)

// Teleporter moves the player through the pair when the chest point comes
// within Radius of an active anchor.
type Teleporter struct {
	Player *player.Player
	Pair   *Pair

	// Configuration
	Radius       float32
	ChestHeight  float32 // probe point above the feet
	ExitOffset   float32 // distance out of the destination surface
	Cooldown     float32
	SafetyMargin float32 // extra time before the entered color may trigger again
	MinExitSpeed float32
	ExitKick     float32 // added along the exit normal below MinExitSpeed
	PitchLimit   float32

	OnTeleport engine.EventWithArg[Color]

	cooldownRemaining float32
	clearRemaining    float32
	lastUsed          Color
}

func NewTeleporter(p *player.Player, pair *Pair) *Teleporter {
	return &Teleporter{
		Player:       p,
		Pair:         pair,
		Radius:       2.0,
		ChestHeight:  1.0,
		ExitOffset:   1.5,
		Cooldown:     0.5,
		SafetyMargin: 0.2,
		MinExitSpeed: 1.0,
		ExitKick:     2.0,
		PitchLimit:   math32.Pi/2 - 0.05,
	}
}

// CooldownRemaining is the time left before any trigger check runs again.
func (t *Teleporter) CooldownRemaining() float32 {
	return t.cooldownRemaining
}

// LastUsed is the color most recently entered, None once cleared.
func (t *Teleporter) LastUsed() Color {
	return t.lastUsed
}

// Update counts down both timers and runs the trigger check. It reports
// whether a teleport happened.
func (t *Teleporter) Update(deltaTime float32) bool {
	if t.clearRemaining > 0 {
		t.clearRemaining -= deltaTime
		if t.clearRemaining <= 0 {
			t.clearRemaining = 0
			t.lastUsed = None
		}
	}

	if t.cooldownRemaining > 0 {
		t.cooldownRemaining -= deltaTime
		if t.cooldownRemaining > 0 {
			return false
		}
		t.cooldownRemaining = 0
	}

	if !t.Pair.BothActive() {
		return false
	}

	p := t.Player
	chest := rl.Vector3{X: p.Position.X, Y: p.Position.Y + t.ChestHeight, Z: p.Position.Z}
	blue := t.Pair.Get(Blue)
	orange := t.Pair.Get(Orange)

	if t.lastUsed != Blue && rl.Vector3Distance(chest, blue.Anchor) < t.Radius {
		t.TeleportTo(orange, blue, Blue)
		return true
	}
	if t.lastUsed != Orange && rl.Vector3Distance(chest, orange.Anchor) < t.Radius {
		t.TeleportTo(blue, orange, Orange)
		return true
	}
	return false
}

// TeleportTo places the player just outside dst and carries view direction and
// velocity through the pair.
func (t *Teleporter) TeleportTo(dst, src Portal, entered Color) {
	p := t.Player
	q := Transform(src, dst)

	p.Position = rl.Vector3Add(dst.Anchor, rl.Vector3Scale(dst.Normal, t.ExitOffset))
	p.PreviousPosition = p.Position

	view := rl.Vector3RotateByQuaternion(p.ViewDirection(), q)
	p.Yaw, p.Pitch = camera.YawPitch(view, t.PitchLimit)

	velocity := rl.Vector3RotateByQuaternion(p.Velocity, q)
	if rl.Vector3Length(velocity) < t.MinExitSpeed {
		velocity = rl.Vector3Add(velocity, rl.Vector3Scale(dst.Normal, t.ExitKick))
	}
	p.Velocity = velocity
	p.Grounded = false

	t.cooldownRemaining = t.Cooldown
	t.lastUsed = entered
	t.clearRemaining = t.Cooldown + t.SafetyMargin

	t.OnTeleport.Invoke(entered)
}
