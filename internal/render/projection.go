package render

import (
	rl "github.com/gen2brain/raylib-go/raylib"
)

// Clip distances used for every perspective pass.
const (
	NearPlane = 0.05
	FarPlane  = 1000.0
)

// Plane is a world-space clip plane. Geometry on the side Normal points to
// is kept.
type Plane struct {
	Point  rl.Vector3
	Normal rl.Vector3
}

// Perspective builds the projection for a pass whose image is displayed at
// aspect, regardless of the size of the buffer it is drawn into.
func Perspective(fovy, aspect float32) rl.Matrix {
	return rl.MatrixPerspective(fovy*rl.Deg2rad, aspect, NearPlane, FarPlane)
}

// ObliqueClip replaces the near plane of proj with clip, given in world space
// and transformed by view. The far plane tilts accordingly. A camera on the
// kept side of the plane gets proj unchanged.
func ObliqueClip(proj, view rl.Matrix, clip Plane) rl.Matrix {
	point := rl.Vector3Transform(clip.Point, view)
	tip := rl.Vector3Transform(rl.Vector3Add(clip.Point, clip.Normal), view)
	normal := rl.Vector3Normalize(rl.Vector3Subtract(tip, point))

	// Plane in view space as (a, b, c, d).
	a, b, c := normal.X, normal.Y, normal.Z
	d := -rl.Vector3DotProduct(normal, point)
	if d >= 0 {
		return proj
	}

	// Corner of the clip-space frustum opposite the plane.
	qx := (sign(a) + proj.M8) / proj.M0
	qy := (sign(b) + proj.M9) / proj.M5
	qz := float32(-1)
	qw := (1 + proj.M10) / proj.M14

	scale := 2 / (a*qx + b*qy + c*qz + d*qw)
	proj.M2 = a * scale
	proj.M6 = b * scale
	proj.M10 = c*scale + 1
	proj.M14 = d * scale
	return proj
}

func sign(v float32) float32 {
	if v > 0 {
		return 1
	}
	if v < 0 {
		return -1
	}
	return 0
}
