package world

import (
	_ "embed"

	"portalgun/internal/camera"
	"portalgun/internal/components"
	"portalgun/internal/engine"
	"portalgun/internal/portal"
	"portalgun/internal/render"

	"github.com/chewxy/math32"
	rl "github.com/gen2brain/raylib-go/raylib"
)

var (
	//go:embed shaders/lighting.vs
	lightingVS string
	//go:embed shaders/lighting.fs
	lightingFS string
	//go:embed shaders/surface.vs
	surfaceVS string
	//go:embed shaders/surface.fs
	surfaceFS string
)

var portalColors = map[portal.Color]rl.Color{
	portal.Blue:   {R: 40, G: 120, B: 255, A: 255},
	portal.Orange: {R: 255, G: 110, B: 0, A: 255},
}

// quadUpright turns a raylib plane (XZ, facing +Y) into the XY plane facing +Z.
var quadUpright = rl.MatrixRotateX(math32.Pi / 2)

type sceneNode struct {
	render.Node
	visible  bool
	model    rl.Model
	hasModel bool
}

type renderTarget struct {
	texture rl.RenderTexture2D
}

func (t *renderTarget) Size() (int, int) {
	return int(t.texture.Texture.Width), int(t.texture.Texture.Height)
}

// Renderer draws the world with raylib. It is the Scene collaborator of the
// portal render pipeline.
type Renderer struct {
	World      *World
	FOV        float32
	Brightness float32
	LightDir   rl.Vector3
	Sky        rl.Color

	lighting      rl.Shader
	surface       rl.Shader
	resolutionLoc int32
	brightnessLoc int32
	viewPosLoc    int32

	nodes  map[render.NodeID]*sceneNode
	nextID render.NodeID
	width  int
	height int
}

func NewRenderer(w *World) *Renderer {
	return &Renderer{
		World:      w,
		FOV:        75,
		Brightness: 1.0,
		LightDir:   rl.Vector3Normalize(rl.Vector3{X: 0.35, Y: -1.0, Z: -0.35}),
		Sky:        rl.Color{R: 30, G: 32, B: 40, A: 255},
		nodes:      make(map[render.NodeID]*sceneNode),
	}
}

// Initialize loads shaders and uploads a cube model for every block. It needs
// a live GL context.
func (r *Renderer) Initialize() {
	r.lighting = rl.LoadShaderFromMemory(lightingVS, lightingFS)
	r.viewPosLoc = rl.GetShaderLocation(r.lighting, "viewPos")

	lightDirLoc := rl.GetShaderLocation(r.lighting, "lightDir")
	rl.SetShaderValue(r.lighting, lightDirLoc, []float32{r.LightDir.X, r.LightDir.Y, r.LightDir.Z}, rl.ShaderUniformVec3)

	lightColorLoc := rl.GetShaderLocation(r.lighting, "lightColor")
	rl.SetShaderValue(r.lighting, lightColorLoc, []float32{0.8, 0.8, 0.8, 1.0}, rl.ShaderUniformVec4)

	ambientLoc := rl.GetShaderLocation(r.lighting, "ambient")
	rl.SetShaderValue(r.lighting, ambientLoc, []float32{0.25, 0.25, 0.28, 1.0}, rl.ShaderUniformVec4)

	r.surface = rl.LoadShaderFromMemory(surfaceVS, surfaceFS)
	r.resolutionLoc = rl.GetShaderLocation(r.surface, "resolution")
	r.brightnessLoc = rl.GetShaderLocation(r.surface, "brightness")

	for _, g := range r.World.GetCollidableObjects() {
		renderer := engine.GetComponent[*components.ModelRenderer](g)
		collider := engine.GetComponent[*components.BoxCollider](g)
		if renderer == nil || collider == nil {
			continue
		}
		size := collider.Size
		renderer.Model = rl.LoadModelFromMesh(rl.GenMeshCube(size.X, size.Y, size.Z))
		renderer.SetShader(r.lighting)
	}

	r.SetViewportSize(rl.GetRenderWidth(), rl.GetRenderHeight())
}

func (r *Renderer) AddNode(n render.Node) render.NodeID {
	r.nextID++
	node := &sceneNode{Node: n, visible: true}

	switch n.Kind {
	case render.MaskNode, render.SurfaceNode:
		node.model = rl.LoadModelFromMesh(rl.GenMeshPlane(n.Width, n.Height, 1, 1))
		node.hasModel = true
		if target, ok := n.Texture.(*renderTarget); ok && n.Kind == render.SurfaceNode {
			node.model.Materials.Shader = r.surface
			rl.SetMaterialTexture(node.model.Materials, rl.MapDiffuse, target.texture.Texture)
		}
	}

	r.nodes[r.nextID] = node
	return r.nextID
}

func (r *Renderer) RemoveNode(id render.NodeID) {
	node, ok := r.nodes[id]
	if !ok {
		return
	}
	if node.hasModel {
		rl.UnloadModel(node.model)
	}
	delete(r.nodes, id)
}

func (r *Renderer) MoveNode(id render.NodeID, t engine.Transform) {
	if node, ok := r.nodes[id]; ok {
		node.Transform = t
	}
}

func (r *Renderer) SetNodeVisible(id render.NodeID, visible bool) {
	if node, ok := r.nodes[id]; ok {
		node.visible = visible
	}
}

func (r *Renderer) NodeVisible(id render.NodeID) bool {
	node, ok := r.nodes[id]
	return ok && node.visible
}

func (r *Renderer) DrawNode(id render.NodeID) {
	node, ok := r.nodes[id]
	if !ok {
		return
	}

	switch node.Kind {
	case render.MaskNode:
		node.model.Transform = rl.MatrixMultiply(quadUpright, node.Transform.Matrix())
		rl.DrawModel(node.model, rl.Vector3Zero(), 1.0, rl.White)
	case render.SurfaceNode:
		rl.SetShaderValue(r.surface, r.brightnessLoc, []float32{r.Brightness}, rl.ShaderUniformFloat)
		node.model.Transform = rl.MatrixMultiply(quadUpright, node.Transform.Matrix())
		rl.DrawModel(node.model, rl.Vector3Zero(), 1.0, rl.White)
	case render.HaloNode:
		drawHalo(node)
	}
}

func drawHalo(node *sceneNode) {
	var axis rl.Vector3
	var angle float32
	rl.QuaternionToAxisAngle(node.Transform.Rotation, &axis, &angle)
	if rl.Vector3Length(axis) == 0 {
		axis = camera.Up
		angle = 0
	}

	color := rl.Fade(portalColors[node.Color], 0.8)
	const rings = 4
	for i := 0; i < rings; i++ {
		radius := node.Width + node.Height*float32(i)/(rings-1)
		rl.DrawCircle3D(node.Transform.Position, radius, axis, angle*rl.Rad2deg, color)
	}
}

func (r *Renderer) NewTarget(width, height int) render.Target {
	return &renderTarget{texture: rl.LoadRenderTexture(int32(width), int32(height))}
}

func (r *Renderer) ReleaseTarget(t render.Target) {
	if target, ok := t.(*renderTarget); ok {
		rl.UnloadRenderTexture(target.texture)
	}
}

// RenderView draws the world into an off-screen target using proj in place
// of the projection raylib derives from the target size.
func (r *Renderer) RenderView(target render.Target, view camera.Pose, proj rl.Matrix) {
	rt, ok := target.(*renderTarget)
	if !ok {
		return
	}

	rl.BeginTextureMode(rt.texture)
	rl.ClearBackground(r.Sky)

	rl.BeginMode3D(view.Camera3D(r.FOV))
	rl.SetMatrixProjection(proj)
	r.drawWorld(view.Position)
	rl.EndMode3D()

	rl.EndTextureMode()
}

// DrawMain renders the frame's main view to the screen. composite runs inside
// the 3D pass once the world is drawn.
func (r *Renderer) DrawMain(view camera.Pose, composite func()) {
	rl.ClearBackground(r.Sky)

	rl.BeginMode3D(view.Camera3D(r.FOV))
	rl.SetMatrixProjection(render.Perspective(r.FOV, r.aspect()))
	r.drawWorld(view.Position)
	if composite != nil {
		composite()
	}
	rl.EndMode3D()
}

func (r *Renderer) drawWorld(viewPos rl.Vector3) {
	rl.SetShaderValue(r.lighting, r.viewPosLoc, []float32{viewPos.X, viewPos.Y, viewPos.Z}, rl.ShaderUniformVec3)
	r.World.Scene.Draw()

	for id, node := range r.nodes {
		if node.visible && node.Kind != render.MaskNode {
			r.DrawNode(id)
		}
	}
}

func (r *Renderer) ViewportSize() (int, int) {
	return r.width, r.height
}

// SetViewportSize records the screen size the surface shader divides by.
func (r *Renderer) SetViewportSize(width, height int) {
	r.width, r.height = width, height
	rl.SetShaderValue(r.surface, r.resolutionLoc, []float32{float32(width), float32(height)}, rl.ShaderUniformVec2)
}

func (r *Renderer) aspect() float32 {
	if r.height == 0 {
		return 1
	}
	return float32(r.width) / float32(r.height)
}

func (r *Renderer) Unload() {
	for id := range r.nodes {
		r.RemoveNode(id)
	}
	rl.UnloadShader(r.lighting)
	rl.UnloadShader(r.surface)

	for _, g := range r.World.Scene.GameObjects {
		if renderer := engine.GetComponent[*components.ModelRenderer](g); renderer != nil {
			renderer.Unload()
		}
	}
}
