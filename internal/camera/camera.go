// Package camera holds view poses and the yaw/pitch convention shared by the
// player, the portal transforms and the renderer.
//
// Yaw 0 looks down +Z, the canonical forward axis. Positive yaw turns toward
// +X. Pitch is elevation above the horizon. Both are radians.
package camera

import (
	"github.com/chewxy/math32"
	rl "github.com/gen2brain/raylib-go/raylib"
)

var (
	Forward = rl.Vector3{X: 0, Y: 0, Z: 1}
	Up      = rl.Vector3{X: 0, Y: 1, Z: 0}
)

// Pose is a camera position plus orientation expressed as look and up vectors.
type Pose struct {
	Position rl.Vector3
	Forward  rl.Vector3
	Up       rl.Vector3
}

// LookDirection converts yaw/pitch into a unit view vector.
func LookDirection(yaw, pitch float32) rl.Vector3 {
	sy, cy := math32.Sincos(yaw)
	sp, cp := math32.Sincos(pitch)
	return rl.Vector3{
		X: sy * cp,
		Y: sp,
		Z: cy * cp,
	}
}

// FlatDirections returns the horizontal forward and right vectors for yaw.
func FlatDirections(yaw float32) (forward, right rl.Vector3) {
	sy, cy := math32.Sincos(yaw)
	forward = rl.Vector3{X: sy, Y: 0, Z: cy}
	right = rl.Vector3{X: -cy, Y: 0, Z: sy}
	return
}

// YawPitch decomposes a view vector. Pitch is asin(y) clamped to
// [-pitchLimit, pitchLimit]; yaw is atan2(x, z) to match LookDirection.
func YawPitch(dir rl.Vector3, pitchLimit float32) (yaw, pitch float32) {
	dir = rl.Vector3Normalize(dir)
	pitch = math32.Asin(clamp(dir.Y, -1, 1))
	pitch = clamp(pitch, -pitchLimit, pitchLimit)
	yaw = math32.Atan2(dir.X, dir.Z)
	return
}

// Camera3D builds the raylib camera for a pose.
func (p Pose) Camera3D(fovy float32) rl.Camera3D {
	up := p.Up
	if rl.Vector3Length(up) == 0 {
		up = Up
	}
	return rl.Camera3D{
		Position:   p.Position,
		Target:     rl.Vector3Add(p.Position, p.Forward),
		Up:         up,
		Fovy:       fovy,
		Projection: rl.CameraPerspective,
	}
}

func clamp(v, min, max float32) float32 {
	if v < min {
		return min
	}
	if v > max {
		return max
	}
	return v
}
