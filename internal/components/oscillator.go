package components

import (
	"portalgun/internal/engine"

	"github.com/chewxy/math32"
	rl "github.com/gen2brain/raylib-go/raylib"
)

// Oscillator slides its GameObject back and forth along Axis around
// StartPosition. Used for moving obstacles whose collision volume must be
// rebuilt every tick.
type Oscillator struct {
	engine.BaseComponent
	StartPosition rl.Vector3
	Axis          rl.Vector3
	Amplitude     float32
	Speed         float32
	Phase         float32
	time          float32
}

func NewOscillator(startPos, axis rl.Vector3, amplitude, speed, phase float32) *Oscillator {
	return &Oscillator{
		StartPosition: startPos,
		Axis:          rl.Vector3Normalize(axis),
		Amplitude:     amplitude,
		Speed:         speed,
		Phase:         phase,
	}
}

func (o *Oscillator) Start() {
	if g := o.GetGameObject(); g != nil {
		g.Transform.Position = o.positionAt(0)
	}
}

func (o *Oscillator) Update(deltaTime float32) {
	g := o.GetGameObject()
	if g == nil {
		return
	}

	o.time += deltaTime
	g.Transform.Position = o.positionAt(o.time)
}

func (o *Oscillator) positionAt(t float32) rl.Vector3 {
	offset := math32.Sin(t*o.Speed+o.Phase) * o.Amplitude
	return rl.Vector3Add(o.StartPosition, rl.Vector3Scale(o.Axis, offset))
}
