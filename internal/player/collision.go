package player

import (
	"portalgun/internal/engine"
	"portalgun/internal/physics"
)

// Volume is anything that can report its current collision box.
type Volume interface {
	GetAABB() physics.AABB
}

// CollisionResolver rolls the player's horizontal position back when its box
// overlaps an obstacle. Static boxes are captured once at construction;
// dynamic volumes are re-queried every tick.
type CollisionResolver struct {
	Player     *Player
	Width      float32
	Height     float32
	StepHeight float32 // the box starts this far above the feet
	Dynamic    []Volume

	OnCollision engine.Event

	static []physics.AABB
}

func NewCollisionResolver(p *Player, static []Volume, dynamic []Volume) *CollisionResolver {
	boxes := make([]physics.AABB, 0, len(static))
	for _, v := range static {
		boxes = append(boxes, v.GetAABB())
	}
	return &CollisionResolver{
		Player:     p,
		Width:      1.0,
		Height:     1.8,
		StepHeight: 0.4,
		Dynamic:    dynamic,
		static:     boxes,
	}
}

// Bounds is the player's collision box at its current position.
func (r *CollisionResolver) Bounds() physics.AABB {
	return physics.NewAABBFromFeet(r.Player.Position, r.Width, r.Height, r.StepHeight)
}

// StaticBoxes exposes the cached static obstacles.
func (r *CollisionResolver) StaticBoxes() []physics.AABB {
	return r.static
}

// Update handles at most one collision per tick and reports whether it did.
// Static boxes are checked before dynamic ones.
func (r *CollisionResolver) Update() bool {
	box := r.Bounds()

	for _, s := range r.static {
		if box.Intersects(s) {
			r.handleCollision()
			return true
		}
	}

	for _, d := range r.Dynamic {
		if box.Intersects(d.GetAABB()) {
			r.handleCollision()
			return true
		}
	}

	return false
}

// handleCollision reverts X/Z only so gravity and ground snap keep working
// while the player slides along a wall.
func (r *CollisionResolver) handleCollision() {
	p := r.Player
	p.Position.X = p.PreviousPosition.X
	p.Position.Z = p.PreviousPosition.Z
	r.OnCollision.Invoke()
}
