package portal

import (
	"log"

	"portalgun/internal/engine"
	"portalgun/internal/physics"

	rl "github.com/gen2brain/raylib-go/raylib"
	"github.com/google/uuid"
)

// Color names one of the two portal slots.
type Color int

const (
	None Color = iota
	Blue
	Orange
)

func (c Color) String() string {
	switch c {
	case Blue:
		return "blue"
	case Orange:
		return "orange"
	default:
		return "none"
	}
}

// Other returns the paired color. None maps to None.
func (c Color) Other() Color {
	switch c {
	case Blue:
		return Orange
	case Orange:
		return Blue
	default:
		return None
	}
}

// Portal is one placed doorway. ID changes on every placement so readers can
// tell a re-placement from an unchanged slot.
type Portal struct {
	ID     uuid.UUID
	Color  Color
	Anchor rl.Vector3
	Normal rl.Vector3 // unit, outward from the surface
	Active bool
	Source *engine.GameObject
}

// PlaceResult is the outcome of a placement attempt.
type PlaceResult int

const (
	Placed PlaceResult = iota
	Invalid
	TooClose
)

func (r PlaceResult) String() string {
	switch r {
	case Placed:
		return "placed"
	case Invalid:
		return "invalid"
	case TooClose:
		return "too close"
	default:
		return "unknown"
	}
}

// Pair owns both portal slots and the selection cursor. It is the only writer
// of portal data; Get hands out copies.
type Pair struct {
	MinSeparation float32

	OnPlaced engine.EventWithArg[Portal]

	slots    [2]Portal
	selected Color
}

func NewPair() *Pair {
	p := &Pair{
		MinSeparation: 2.5,
		selected:      Blue,
	}
	p.slots[0].Color = Blue
	p.slots[1].Color = Orange
	return p
}

func slotIndex(c Color) int {
	if c == Orange {
		return 1
	}
	return 0
}

// SelectColor moves the write cursor. Existing portal data is untouched.
func (p *Pair) SelectColor(c Color) {
	if c != Blue && c != Orange {
		return
	}
	p.selected = c
}

func (p *Pair) Selected() Color {
	return p.selected
}

// Get returns a copy of the slot for c.
func (p *Pair) Get(c Color) Portal {
	return p.slots[slotIndex(c)]
}

func (p *Pair) BothActive() bool {
	return p.slots[0].Active && p.slots[1].Active
}

// Reset deactivates both slots. Selection is kept.
func (p *Pair) Reset() {
	p.slots[0] = Portal{Color: Blue}
	p.slots[1] = Portal{Color: Orange}
}

// Place writes hit into the selected slot. Malformed hits are skipped
// silently; a hit closer than MinSeparation to the other active anchor is
// rejected with a warning. Neither case changes any state.
func (p *Pair) Place(hit physics.RaycastHit) (Color, PlaceResult) {
	if !physics.IsFinite(hit.Point) || !physics.IsFinite(hit.Normal) {
		return None, Invalid
	}
	length := rl.Vector3Length(hit.Normal)
	if length < 1e-6 {
		return None, Invalid
	}

	color := p.selected
	other := p.slots[slotIndex(color.Other())]
	if other.Active {
		if d := rl.Vector3Distance(hit.Point, other.Anchor); d < p.MinSeparation {
			log.Printf("Portal: %s placement rejected, %.2f from %s (min %.2f)", color, d, other.Color, p.MinSeparation)
			return None, TooClose
		}
	}

	placed := Portal{
		ID:     uuid.New(),
		Color:  color,
		Anchor: hit.Point,
		Normal: rl.Vector3Scale(hit.Normal, 1/length),
		Active: true,
		Source: hit.GameObject,
	}
	p.slots[slotIndex(color)] = placed
	p.OnPlaced.Invoke(placed)
	return color, Placed
}
