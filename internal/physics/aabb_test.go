package physics

import (
	"testing"

	"github.com/chewxy/math32"
	rl "github.com/gen2brain/raylib-go/raylib"
)

func TestAABBIntersects(t *testing.T) {
	a := NewAABBFromCenter(rl.Vector3{}, rl.Vector3{X: 2, Y: 2, Z: 2})
	b := NewAABBFromCenter(rl.Vector3{X: 1.5}, rl.Vector3{X: 2, Y: 2, Z: 2})
	c := NewAABBFromCenter(rl.Vector3{X: 5}, rl.Vector3{X: 2, Y: 2, Z: 2})

	if !a.Intersects(b) {
		t.Error("Expected overlapping boxes to intersect")
	}
	if a.Intersects(c) {
		t.Error("Expected separated boxes not to intersect")
	}
}

func TestNewAABBFromFeet(t *testing.T) {
	box := NewAABBFromFeet(rl.Vector3{X: 1, Y: 0, Z: 1}, 1, 1.8, 0.4)

	if box.Min.Y != 0.4 || box.Max.Y != 1.8 {
		t.Errorf("Expected Y span [0.4, 1.8], got [%v, %v]", box.Min.Y, box.Max.Y)
	}
	if box.Min.X != 0.5 || box.Max.X != 1.5 {
		t.Errorf("Expected X span [0.5, 1.5], got [%v, %v]", box.Min.X, box.Max.X)
	}
}

func TestIsFinite(t *testing.T) {
	if !IsFinite(rl.Vector3{X: 1, Y: -2, Z: 3}) {
		t.Error("Expected finite vector")
	}
	if IsFinite(rl.Vector3{X: math32.Inf(1)}) {
		t.Error("Expected infinite component to be rejected")
	}
	if IsFinite(rl.Vector3{Y: math32.NaN()}) {
		t.Error("Expected NaN component to be rejected")
	}
}
