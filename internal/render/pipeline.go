package render

import (
	"log"

	"portalgun/internal/camera"
	"portalgun/internal/engine"
	"portalgun/internal/physics"
	"portalgun/internal/portal"

	rl "github.com/gen2brain/raylib-go/raylib"
	"github.com/google/uuid"
)

// PortalVisual links a placed portal to the scene nodes that draw it. The
// scene owns the nodes; the visual only holds their handles.
type PortalVisual struct {
	PortalID uuid.UUID
	Portal   portal.Portal
	Mask     NodeID
	Surface  NodeID
	Built    bool
}

var colors = [2]portal.Color{portal.Blue, portal.Orange}

// stencil reference written for each color's mask
var stencilRefs = [2]uint8{1, 2}

func colorIndex(c portal.Color) int {
	if c == portal.Orange {
		return 1
	}
	return 0
}

// Pipeline renders what each portal sees into its own off-screen target and
// composites it onto the portal surface.
type Pipeline struct {
	Scene   Scene
	Stencil Stencil

	// Configuration
	FOV           float32
	SurfaceWidth  float32
	SurfaceHeight float32
	MaskOffset    float32 // along the normal, keeps the mask above the wall
	SurfaceOffset float32
	HaloOffset    float32
	HaloRadius    float32
	HaloThickness float32
	CullRadius    float32 // bounding sphere for frustum skip

	targets    [2]Target
	visuals    [2]PortalVisual
	halos      [2]NodeID
	rendered   [2]bool
	bothActive bool
	stencilOK  bool
	clipping   bool
	viewW      int
	viewH      int
}

// NewPipeline allocates both targets at a fixed size. A missing or
// unsupported stencil disables clipping instead of failing.
func NewPipeline(scene Scene, stencil Stencil, targetSize int) *Pipeline {
	p := &Pipeline{
		Scene:         scene,
		Stencil:       stencil,
		FOV:           75,
		SurfaceWidth:  2,
		SurfaceHeight: 3,
		MaskOffset:    0.005,
		SurfaceOffset: 0.02,
		HaloOffset:    0.01,
		HaloRadius:    0.7,
		HaloThickness: 0.1,
		CullRadius:    1.8,
	}

	p.stencilOK = stencil != nil && stencil.Supported()
	p.clipping = p.stencilOK
	if !p.stencilOK {
		log.Println("Render: no stencil buffer, portal surfaces will not be clipped")
	}

	for i, c := range colors {
		p.targets[i] = scene.NewTarget(targetSize, targetSize)
		p.halos[i] = scene.AddNode(Node{
			Kind:      HaloNode,
			Color:     c,
			Transform: engine.NewTransform(),
			Width:     p.HaloRadius,
			Height:    p.HaloThickness,
		})
		scene.SetNodeVisible(p.halos[i], false)
	}

	p.viewW, p.viewH = scene.ViewportSize()
	return p
}

// Clipping reports whether surfaces are composited through the stencil.
func (p *Pipeline) Clipping() bool {
	return p.clipping
}

// SetClipping toggles stencil compositing. It cannot be enabled without
// stencil support.
func (p *Pipeline) SetClipping(enabled bool) {
	p.clipping = enabled && p.stencilOK
	p.updateSurfaceVisibility()
}

func (p *Pipeline) StencilSupported() bool {
	return p.stencilOK
}

// Visual returns the visual for c.
func (p *Pipeline) Visual(c portal.Color) PortalVisual {
	return p.visuals[colorIndex(c)]
}

// Target returns the off-screen target showing the view through c.
func (p *Pipeline) Target(c portal.Color) Target {
	return p.targets[colorIndex(c)]
}

// Rendered reports whether the pass for c ran in the last RenderPortals.
func (p *Pipeline) Rendered(c portal.Color) bool {
	return p.rendered[colorIndex(c)]
}

// Sync rebuilds the nodes of every portal whose placement changed since the
// last call and drops those of deactivated ones.
func (p *Pipeline) Sync(pair *portal.Pair) {
	for i, c := range colors {
		pt := pair.Get(c)
		v := &p.visuals[i]

		if !pt.Active {
			if v.Built {
				p.removeVisual(v)
				p.Scene.SetNodeVisible(p.halos[i], false)
			}
			continue
		}

		if v.Built && v.PortalID == pt.ID {
			continue
		}

		p.removeVisual(v)
		p.buildVisual(i, pt)
	}

	p.bothActive = pair.BothActive()
	p.updateSurfaceVisibility()
}

func (p *Pipeline) buildVisual(i int, pt portal.Portal) {
	v := &p.visuals[i]
	v.PortalID = pt.ID
	v.Portal = pt
	v.Mask = p.Scene.AddNode(Node{
		Kind:      MaskNode,
		Color:     pt.Color,
		Transform: surfaceTransform(pt, p.MaskOffset),
		Width:     p.SurfaceWidth,
		Height:    p.SurfaceHeight,
	})
	v.Surface = p.Scene.AddNode(Node{
		Kind:      SurfaceNode,
		Color:     pt.Color,
		Transform: surfaceTransform(pt, p.SurfaceOffset),
		Width:     p.SurfaceWidth,
		Height:    p.SurfaceHeight,
		Texture:   p.targets[i],
	})
	v.Built = true

	p.Scene.MoveNode(p.halos[i], surfaceTransform(pt, p.HaloOffset))
	p.Scene.SetNodeVisible(p.halos[i], true)
}

func (p *Pipeline) removeVisual(v *PortalVisual) {
	if !v.Built {
		return
	}
	p.Scene.RemoveNode(v.Mask)
	p.Scene.RemoveNode(v.Surface)
	*v = PortalVisual{}
}

// Unclipped surfaces are drawn by the scene as ordinary visible nodes.
// Clipped ones stay hidden and are drawn by Composite.
func (p *Pipeline) updateSurfaceVisibility() {
	show := p.bothActive && !p.clipping
	for i := range p.visuals {
		if p.visuals[i].Built {
			p.Scene.SetNodeVisible(p.visuals[i].Surface, show)
		}
	}
}

func surfaceTransform(pt portal.Portal, offset float32) engine.Transform {
	t := engine.NewTransform()
	t.Position = rl.Vector3Add(pt.Anchor, rl.Vector3Scale(pt.Normal, offset))
	t.Rotation = portal.SurfaceRotation(pt.Normal)
	return t
}

// UpdatePreview moves the selected color's halo to hit while that color is
// unplaced, and hides it when nothing is under the crosshair.
func (p *Pipeline) UpdatePreview(pair *portal.Pair, hit *physics.RaycastHit) {
	selected := pair.Selected()
	for i, c := range colors {
		if pair.Get(c).Active {
			continue
		}
		if c != selected || hit == nil {
			p.Scene.SetNodeVisible(p.halos[i], false)
			continue
		}
		preview := portal.Portal{Anchor: hit.Point, Normal: rl.Vector3Normalize(hit.Normal)}
		p.Scene.MoveNode(p.halos[i], surfaceTransform(preview, p.HaloOffset))
		p.Scene.SetNodeVisible(p.halos[i], true)
	}
}

// Resize forwards a new viewport size to the scene when it changed.
func (p *Pipeline) Resize(width, height int) {
	if width <= 0 || height <= 0 || (width == p.viewW && height == p.viewH) {
		return
	}
	p.viewW, p.viewH = width, height
	p.Scene.SetViewportSize(width, height)
}

func (p *Pipeline) aspect() float32 {
	if p.viewH == 0 {
		return 1
	}
	return float32(p.viewW) / float32(p.viewH)
}

// RenderPortals runs the off-screen pass for each portal the viewer can see.
// It must run before the main pass of the same frame. Both surfaces are hidden
// for the duration so no pass can see a portal quad.
func (p *Pipeline) RenderPortals(viewer camera.Pose) {
	p.rendered = [2]bool{}
	if !p.bothActive {
		return
	}

	aspect := p.aspect()
	frustum := ExtractFrustum(viewer, p.FOV, aspect)

	var wasVisible [2]bool
	for i := range p.visuals {
		wasVisible[i] = p.Scene.NodeVisible(p.visuals[i].Surface)
		p.Scene.SetNodeVisible(p.visuals[i].Surface, false)
	}

	for i := range colors {
		src := p.visuals[i].Portal
		dst := p.visuals[1-i].Portal

		if rl.Vector3DotProduct(rl.Vector3Subtract(viewer.Position, src.Anchor), src.Normal) <= 0 {
			continue
		}
		if !frustum.ContainsSphere(src.Anchor, p.CullRadius) {
			continue
		}

		virtual := portal.VirtualCamera(viewer, src, dst)
		view := rl.GetCameraMatrix(virtual.Camera3D(p.FOV))
		proj := ObliqueClip(Perspective(p.FOV, aspect), view, Plane{Point: dst.Anchor, Normal: dst.Normal})

		p.Scene.RenderView(p.targets[i], virtual, proj)
		p.rendered[i] = true
	}

	for i := range p.visuals {
		p.Scene.SetNodeVisible(p.visuals[i].Surface, wasVisible[i])
	}
}

// Composite draws each rendered surface clipped to its mask. It runs inside
// the main pass, after the level is drawn.
func (p *Pipeline) Composite() {
	if !p.bothActive || !p.clipping {
		return
	}

	p.Stencil.Clear()
	for i := range p.visuals {
		if !p.rendered[i] {
			continue
		}
		v := p.visuals[i]
		ref := stencilRefs[i]

		p.Stencil.BeginMask(ref)
		p.Scene.DrawNode(v.Mask)
		p.Stencil.EndMask()

		p.Stencil.BeginClip(ref)
		p.Scene.DrawNode(v.Surface)
		p.Stencil.EndClip()
	}
}

// Close removes every node and releases both targets.
func (p *Pipeline) Close() {
	for i := range p.visuals {
		p.removeVisual(&p.visuals[i])
		p.Scene.RemoveNode(p.halos[i])
		p.Scene.ReleaseTarget(p.targets[i])
		p.targets[i] = nil
	}
	p.bothActive = false
}
