package game

import (
	"portalgun/internal/player"
	"portalgun/internal/portal"

	rl "github.com/gen2brain/raylib-go/raylib"
)

// ReadInput samples keyboard and mouse. With captured false the mouse is
// free for the debug overlay, so look and fire are suppressed.
func ReadInput(sensitivity float32, captured bool) Input {
	in := Input{
		Intent: player.Intent{
			Forward:  rl.IsKeyDown(rl.KeyW),
			Backward: rl.IsKeyDown(rl.KeyS),
			Left:     rl.IsKeyDown(rl.KeyA),
			Right:    rl.IsKeyDown(rl.KeyD),
			Jump:     rl.IsKeyPressed(rl.KeySpace),
		},
	}

	switch {
	case rl.IsKeyPressed(rl.KeyQ):
		in.Select = portal.Blue
	case rl.IsKeyPressed(rl.KeyE):
		in.Select = portal.Orange
	}

	if captured {
		in.LookYaw, in.LookPitch = LookDelta(rl.GetMouseDelta(), sensitivity)
		in.Fire = rl.IsMouseButtonPressed(rl.MouseLeftButton)
	}
	return in
}

// LookDelta converts a mouse delta in pixels to yaw and pitch in radians.
// Yaw grows to the left and pitch grows upward, screen Y grows downward.
func LookDelta(mouse rl.Vector2, sensitivity float32) (yaw, pitch float32) {
	return -mouse.X * sensitivity, -mouse.Y * sensitivity
}
