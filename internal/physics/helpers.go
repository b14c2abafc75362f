package physics

import (
	"github.com/chewxy/math32"
	rl "github.com/gen2brain/raylib-go/raylib"
)

// clamp restricts a value to a range
func clamp(v, min, max float32) float32 {
	if v < min {
		return min
	}
	if v > max {
		return max
	}
	return v
}

// Clamp restricts a value to a range
func Clamp(v, min, max float32) float32 {
	return clamp(v, min, max)
}

func abs(x float32) float32 {
	return math32.Abs(x)
}

func isFinite(x float32) bool {
	return !math32.IsNaN(x) && !math32.IsInf(x, 0)
}

// IsFinite reports whether every component of v is a finite number.
func IsFinite(v rl.Vector3) bool {
	return isFinite(v.X) && isFinite(v.Y) && isFinite(v.Z)
}

// NearlyEqual compares vectors component-wise within eps.
func NearlyEqual(a, b rl.Vector3, eps float32) bool {
	return abs(a.X-b.X) <= eps && abs(a.Y-b.Y) <= eps && abs(a.Z-b.Z) <= eps
}
