package world

import (
	"log"

	"github.com/go-gl/gl/v3.3-core/gl"
	rl "github.com/gen2brain/raylib-go/raylib"
	"github.com/pkg/errors"
)

// GLStencil drives the default framebuffer's stencil buffer directly. raylib
// batches draws, so every state change flushes the active batch first.
type GLStencil struct {
	bits int32
}

// NewGLStencil loads GL entry points for the current context and queries the
// stencil depth of the default framebuffer. A loader failure reports no
// stencil rather than an error.
func NewGLStencil() *GLStencil {
	if err := gl.Init(); err != nil {
		log.Printf("Render: %v", errors.Wrap(err, "loading GL entry points"))
		return &GLStencil{}
	}

	var bits int32
	gl.BindFramebuffer(gl.FRAMEBUFFER, 0)
	gl.GetFramebufferAttachmentParameteriv(gl.FRAMEBUFFER, gl.STENCIL, gl.FRAMEBUFFER_ATTACHMENT_STENCIL_SIZE, &bits)
	if code := gl.GetError(); code != gl.NO_ERROR {
		log.Printf("Render: stencil query failed with GL error 0x%x", code)
		return &GLStencil{}
	}

	log.Printf("Render: %d stencil bits", bits)
	return &GLStencil{bits: bits}
}

func (s *GLStencil) Supported() bool {
	return s.bits > 0
}

func (s *GLStencil) Clear() {
	rl.DrawRenderBatchActive()
	gl.StencilMask(0xFF)
	gl.ClearStencil(0)
	gl.Clear(gl.STENCIL_BUFFER_BIT)
}

func (s *GLStencil) BeginMask(ref uint8) {
	rl.DrawRenderBatchActive()
	gl.Enable(gl.STENCIL_TEST)
	gl.StencilMask(0xFF)
	gl.StencilFunc(gl.ALWAYS, int32(ref), 0xFF)
	gl.StencilOp(gl.KEEP, gl.KEEP, gl.REPLACE)
	gl.ColorMask(false, false, false, false)
	gl.DepthMask(false)
}

func (s *GLStencil) EndMask() {
	rl.DrawRenderBatchActive()
	gl.ColorMask(true, true, true, true)
	gl.DepthMask(true)
}

func (s *GLStencil) BeginClip(ref uint8) {
	rl.DrawRenderBatchActive()
	gl.Enable(gl.STENCIL_TEST)
	gl.StencilMask(0x00)
	gl.StencilFunc(gl.EQUAL, int32(ref), 0xFF)
	gl.StencilOp(gl.KEEP, gl.KEEP, gl.KEEP)
}

func (s *GLStencil) EndClip() {
	rl.DrawRenderBatchActive()
	gl.StencilMask(0xFF)
	gl.Disable(gl.STENCIL_TEST)
}
