package render

import (
	"portalgun/internal/camera"
	"portalgun/internal/engine"
	"portalgun/internal/portal"

	rl "github.com/gen2brain/raylib-go/raylib"
)

// NodeID is a handle to a renderable owned by a Scene.
type NodeID int

type NodeKind int

const (
	MaskNode    NodeKind = iota // stencil shape, never drawn by a view pass
	SurfaceNode                 // textured quad showing the connected view
	HaloNode                    // colored ring around a placed or previewed portal
)

// Node describes a renderable for the scene to build. Quads lie in the local
// XY plane facing +Z.
type Node struct {
	Kind      NodeKind
	Color     portal.Color
	Transform engine.Transform
	Width     float32 // quad width, or ring inner radius
	Height    float32 // quad height, or ring thickness
	Texture   Target  // surface nodes only
}

// Target is an off-screen color buffer a view can be rendered into.
type Target interface {
	Size() (width, height int)
}

// Scene is the render collaborator. It owns node lifetime and draws the level.
type Scene interface {
	AddNode(n Node) NodeID
	RemoveNode(id NodeID)
	MoveNode(id NodeID, t engine.Transform)
	SetNodeVisible(id NodeID, visible bool)
	NodeVisible(id NodeID) bool
	// DrawNode draws one node in the current pass regardless of visibility.
	DrawNode(id NodeID)

	NewTarget(width, height int) Target
	ReleaseTarget(t Target)
	// RenderView draws the level and every visible non-mask node into target.
	RenderView(target Target, view camera.Pose, proj rl.Matrix)

	ViewportSize() (width, height int)
	SetViewportSize(width, height int)
}

// Stencil drives the per-pixel mask used to clip surfaces to their shape.
type Stencil interface {
	Supported() bool
	Clear()
	// BeginMask writes ref wherever the following draws land, leaving color
	// and depth untouched.
	BeginMask(ref uint8)
	EndMask()
	// BeginClip restricts the following draws to pixels equal to ref.
	BeginClip(ref uint8)
	EndClip()
}
