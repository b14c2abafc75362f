package physics

import rl "github.com/gen2brain/raylib-go/raylib"

// AABB is an axis-aligned bounding box.
type AABB struct {
	Min rl.Vector3
	Max rl.Vector3
}

// NewAABBFromCenter creates an AABB from a center point and full size dimensions.
func NewAABBFromCenter(center, size rl.Vector3) AABB {
	half := rl.Vector3{X: abs(size.X) / 2, Y: abs(size.Y) / 2, Z: abs(size.Z) / 2}
	return AABB{
		Min: rl.Vector3Subtract(center, half),
		Max: rl.Vector3Add(center, half),
	}
}

// NewAABBFromFeet creates a box standing on feet, lifted by lift so that its
// bottom face sits at feet.Y+lift and its top at feet.Y+height.
func NewAABBFromFeet(feet rl.Vector3, width, height, lift float32) AABB {
	half := width / 2
	return AABB{
		Min: rl.Vector3{X: feet.X - half, Y: feet.Y + lift, Z: feet.Z - half},
		Max: rl.Vector3{X: feet.X + half, Y: feet.Y + height, Z: feet.Z + half},
	}
}

func (a AABB) Intersects(b AABB) bool {
	return a.Min.X <= b.Max.X && a.Max.X >= b.Min.X &&
		a.Min.Y <= b.Max.Y && a.Max.Y >= b.Min.Y &&
		a.Min.Z <= b.Max.Z && a.Max.Z >= b.Min.Z
}

func (a AABB) Center() rl.Vector3 {
	return rl.Vector3Scale(rl.Vector3Add(a.Min, a.Max), 0.5)
}

func (a AABB) Size() rl.Vector3 {
	return rl.Vector3Subtract(a.Max, a.Min)
}

// Contains reports whether p lies inside or on the box.
func (a AABB) Contains(p rl.Vector3) bool {
	return p.X >= a.Min.X && p.X <= a.Max.X &&
		p.Y >= a.Min.Y && p.Y <= a.Max.Y &&
		p.Z >= a.Min.Z && p.Z <= a.Max.Z
}
