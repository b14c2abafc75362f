package portal

import (
	"testing"

	"portalgun/internal/engine"
	"portalgun/internal/physics"

	"github.com/chewxy/math32"
	rl "github.com/gen2brain/raylib-go/raylib"
)

func wallHit(x, y, z float32, normal rl.Vector3) physics.RaycastHit {
	return physics.RaycastHit{
		GameObject: engine.NewGameObject("Wall"),
		Point:      rl.Vector3{X: x, Y: y, Z: z},
		Normal:     normal,
	}
}

var (
	plusX  = rl.Vector3{X: 1, Y: 0, Z: 0}
	minusX = rl.Vector3{X: -1, Y: 0, Z: 0}
	plusY  = rl.Vector3{X: 0, Y: 1, Z: 0}
	plusZ  = rl.Vector3{X: 0, Y: 0, Z: 1}
	minusZ = rl.Vector3{X: 0, Y: 0, Z: -1}
)

func TestNewPairStartsEmpty(t *testing.T) {
	p := NewPair()

	if p.Selected() != Blue {
		t.Errorf("Expected blue selected, got %s", p.Selected())
	}
	if p.Get(Blue).Active || p.Get(Orange).Active {
		t.Error("Expected both slots inactive")
	}
	if p.BothActive() {
		t.Error("Expected BothActive false on a new pair")
	}
	if p.Get(Orange).Color != Orange {
		t.Errorf("Expected orange slot to carry its color, got %s", p.Get(Orange).Color)
	}
}

func TestPlaceWritesSelectedSlot(t *testing.T) {
	p := NewPair()
	var placed []Portal
	p.OnPlaced.AddListener(func(pt Portal) { placed = append(placed, pt) })

	color, result := p.Place(wallHit(0, 1, 0, rl.Vector3{X: 0, Y: 0, Z: 3}))
	if result != Placed || color != Blue {
		t.Fatalf("Expected blue placed, got %s %s", color, result)
	}

	blue := p.Get(Blue)
	if !blue.Active {
		t.Error("Expected blue active")
	}
	if !physics.NearlyEqual(blue.Normal, plusZ, 1e-6) {
		t.Errorf("Expected normal to be normalized to %v, got %v", plusZ, blue.Normal)
	}
	if blue.Source == nil || blue.Source.Name != "Wall" {
		t.Error("Expected source object to be kept")
	}
	if len(placed) != 1 || placed[0].ID != blue.ID {
		t.Errorf("Expected one OnPlaced with the new portal, got %d", len(placed))
	}
	if p.Get(Orange).Active {
		t.Error("Expected orange untouched")
	}
}

func TestReplacementChangesID(t *testing.T) {
	p := NewPair()
	p.Place(wallHit(0, 1, 0, plusZ))
	first := p.Get(Blue).ID

	p.Place(wallHit(4, 1, 0, plusZ))
	second := p.Get(Blue)

	if second.ID == first {
		t.Error("Expected a new ID on re-placement")
	}
	if second.Anchor.X != 4 {
		t.Errorf("Expected new anchor, got %v", second.Anchor)
	}
}

func TestSelectColor(t *testing.T) {
	p := NewPair()
	p.Place(wallHit(0, 1, 0, plusZ))
	before := p.Get(Blue)

	p.SelectColor(Orange)
	if p.Selected() != Orange {
		t.Fatalf("Expected orange selected, got %s", p.Selected())
	}
	if p.Get(Blue) != before {
		t.Error("Expected SelectColor to leave portal data alone")
	}

	p.SelectColor(None)
	if p.Selected() != Orange {
		t.Errorf("Expected None to be ignored, got %s", p.Selected())
	}

	color, _ := p.Place(wallHit(10, 1, 0, plusZ))
	if color != Orange || !p.BothActive() {
		t.Errorf("Expected orange placement to complete the pair, got %s", color)
	}
}

func TestSeparationInvariant(t *testing.T) {
	distances := []float32{0, 0.5, 1.0, 2.0, 2.49}
	for _, d := range distances {
		p := NewPair()
		p.Place(wallHit(0, 1, 0, plusZ))
		p.SelectColor(Orange)
		p.Place(wallHit(20, 1, 0, plusZ))

		slots := p.slots
		selected := p.selected

		color, result := p.Place(wallHit(d, 1, 0, plusZ))
		if result != TooClose || color != None {
			t.Errorf("d=%.2f: expected rejection, got %s %s", d, color, result)
		}
		if p.slots != slots || p.selected != selected {
			t.Errorf("d=%.2f: expected state unchanged after rejection", d)
		}
	}
}

func TestSeparationIgnoresInactiveOther(t *testing.T) {
	p := NewPair()
	p.Place(wallHit(0, 1, 0, plusZ))
	p.Reset()
	p.SelectColor(Orange)

	if _, result := p.Place(wallHit(0.5, 1, 0, plusZ)); result != Placed {
		t.Errorf("Expected placement next to an inactive slot, got %s", result)
	}
}

func TestScenarioTooClose(t *testing.T) {
	p := NewPair()
	p.Place(wallHit(0, 1, 0, plusZ))
	p.SelectColor(Orange)

	_, result := p.Place(wallHit(2, 1, 0, plusZ))

	if result != TooClose {
		t.Errorf("Expected orange 2.0 from blue to be rejected, got %s", result)
	}
	if p.Get(Orange).Active {
		t.Error("Expected orange slot to stay inactive")
	}
}

func TestPlaceRejectsMalformedHit(t *testing.T) {
	hits := []physics.RaycastHit{
		{Point: rl.Vector3{X: math32.NaN()}, Normal: plusZ},
		{Point: rl.Vector3{Y: math32.Inf(1)}, Normal: plusZ},
		{Point: rl.Vector3{}, Normal: rl.Vector3{}},
		{Point: rl.Vector3{}, Normal: rl.Vector3{Z: math32.NaN()}},
	}

	for i, hit := range hits {
		p := NewPair()
		calls := 0
		p.OnPlaced.AddListener(func(Portal) { calls++ })

		color, result := p.Place(hit)
		if result != Invalid || color != None {
			t.Errorf("hit %d: expected invalid, got %s %s", i, color, result)
		}
		if p.Get(Blue).Active || calls != 0 {
			t.Errorf("hit %d: expected no state change", i)
		}
	}
}

func TestReset(t *testing.T) {
	p := NewPair()
	p.Place(wallHit(0, 1, 0, plusZ))
	p.SelectColor(Orange)
	p.Place(wallHit(10, 1, 0, plusZ))

	p.Reset()

	if p.Get(Blue).Active || p.Get(Orange).Active {
		t.Error("Expected both slots inactive after reset")
	}
	if p.Get(Blue).Color != Blue {
		t.Error("Expected slot colors to survive reset")
	}
}

func TestColorOther(t *testing.T) {
	if Blue.Other() != Orange || Orange.Other() != Blue || None.Other() != None {
		t.Error("Expected Other to swap blue and orange")
	}
}
