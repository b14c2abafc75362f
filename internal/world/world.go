package world

import (
	"fmt"

	"portalgun/internal/components"
	"portalgun/internal/engine"
	"portalgun/internal/physics"
	"portalgun/internal/player"

	rl "github.com/gen2brain/raylib-go/raylib"
)

const (
	TagStatic  = "static"
	TagDynamic = "dynamic"
)

// boxDef is one axis-aligned block of the level.
type boxDef struct {
	Name     string
	Position rl.Vector3 // center
	Size     rl.Vector3
	Color    rl.Color
}

const (
	RoomSize   = 30.0
	WallHeight = 10.0
)

var roomBoxes = []boxDef{
	{"Floor", rl.Vector3{X: 0, Y: -0.5, Z: 0}, rl.Vector3{X: RoomSize, Y: 1, Z: RoomSize}, rl.LightGray},
	{"Ceiling", rl.Vector3{X: 0, Y: WallHeight + 0.5, Z: 0}, rl.Vector3{X: RoomSize, Y: 1, Z: RoomSize}, rl.Gray},
	{"WallNorth", rl.Vector3{X: 0, Y: WallHeight / 2, Z: -RoomSize/2 - 0.5}, rl.Vector3{X: RoomSize, Y: WallHeight, Z: 1}, rl.RayWhite},
	{"WallSouth", rl.Vector3{X: 0, Y: WallHeight / 2, Z: RoomSize/2 + 0.5}, rl.Vector3{X: RoomSize, Y: WallHeight, Z: 1}, rl.RayWhite},
	{"WallEast", rl.Vector3{X: RoomSize/2 + 0.5, Y: WallHeight / 2, Z: 0}, rl.Vector3{X: 1, Y: WallHeight, Z: RoomSize}, rl.RayWhite},
	{"WallWest", rl.Vector3{X: -RoomSize/2 - 0.5, Y: WallHeight / 2, Z: 0}, rl.Vector3{X: 1, Y: WallHeight, Z: RoomSize}, rl.RayWhite},
	{"Ledge", rl.Vector3{X: -10, Y: 2, Z: -10}, rl.Vector3{X: 8, Y: 4, Z: 8}, rl.DarkGray},
	{"Pillar", rl.Vector3{X: 6, Y: 3, Z: -4}, rl.Vector3{X: 2, Y: 6, Z: 2}, rl.Gray},
	{"Curb", rl.Vector3{X: 0, Y: 0.15, Z: 8}, rl.Vector3{X: 10, Y: 0.3, Z: 1}, rl.DarkGray},
}

// World is the test chamber: static blocks, one moving crate and the ray
// queries over them.
type World struct {
	Scene   *engine.Scene
	Static  []*engine.GameObject
	Dynamic []*engine.GameObject
	Spawn   rl.Vector3
}

func New() *World {
	w := &World{
		Scene: engine.NewScene("Chamber"),
		Spawn: rl.Vector3{X: 0, Y: 0, Z: 4},
	}

	for _, def := range roomBoxes {
		w.Static = append(w.Static, w.addBox(def, TagStatic))
	}

	crate := w.addBox(boxDef{
		Name:     "Crate",
		Position: rl.Vector3{X: 8, Y: 1, Z: 6},
		Size:     rl.Vector3{X: 2, Y: 2, Z: 2},
		Color:    rl.Brown,
	}, TagDynamic)
	crate.AddComponent(components.NewOscillator(crate.Transform.Position, rl.Vector3{X: 0, Y: 0, Z: 1}, 4, 0.8, 0))
	w.Dynamic = append(w.Dynamic, crate)

	return w
}

func (w *World) addBox(def boxDef, tag string) *engine.GameObject {
	g := engine.NewGameObject(def.Name)
	g.Tags = []string{tag}
	g.Transform.Position = def.Position
	g.AddComponent(components.NewBoxCollider(def.Size))
	// Model is uploaded by Renderer.Initialize once a GL context exists.
	g.AddComponent(components.NewModelRenderer(rl.Model{}, def.Color))
	w.Scene.AddGameObject(g)
	return g
}

// Start runs component Start hooks once.
func (w *World) Start() {
	w.Scene.Start()
}

// Update advances moving obstacles.
func (w *World) Update(deltaTime float32) {
	w.Scene.Update(deltaTime)
}

// StaticVolumes returns the colliders of the static blocks. The collision
// resolver reads them once.
func (w *World) StaticVolumes() []player.Volume {
	return colliders(w.Static)
}

// DynamicVolumes returns colliders that must be queried every tick.
func (w *World) DynamicVolumes() []player.Volume {
	return colliders(w.Dynamic)
}

func colliders(objects []*engine.GameObject) []player.Volume {
	volumes := make([]player.Volume, 0, len(objects))
	for _, g := range objects {
		if c := engine.GetComponent[*components.BoxCollider](g); c != nil {
			volumes = append(volumes, c)
		}
	}
	return volumes
}

// GetCollidableObjects returns all GameObjects that have BoxColliders
func (w *World) GetCollidableObjects() []*engine.GameObject {
	var result []*engine.GameObject
	for _, g := range w.Scene.GameObjects {
		if collider := engine.GetComponent[*components.BoxCollider](g); collider != nil {
			result = append(result, g)
		}
	}
	return result
}

// Raycast returns the nearest box hit along direction. A nil candidates slice
// tests every collidable object.
func (w *World) Raycast(origin, direction rl.Vector3, maxDistance float32, candidates []*engine.GameObject) (physics.RaycastHit, bool) {
	if candidates == nil {
		candidates = w.GetCollidableObjects()
	}
	direction = rl.Vector3Normalize(direction)

	var best physics.RaycastHit
	found := false
	for _, g := range candidates {
		if !g.Active {
			continue
		}
		collider := engine.GetComponent[*components.BoxCollider](g)
		if collider == nil {
			continue
		}
		hit, ok := physics.RaycastAABB(origin, direction, collider.GetAABB(), maxDistance)
		if !ok || (found && hit.Distance >= best.Distance) {
			continue
		}
		hit.GameObject = g
		best = hit
		found = true
	}
	return best, found
}

func (w *World) String() string {
	return fmt.Sprintf("World(%s: %d static, %d dynamic)", w.Scene.Name, len(w.Static), len(w.Dynamic))
}
