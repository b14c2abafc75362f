// Package audio turns gameplay cues into short synthesized tones.
package audio

import (
	"portalgun/internal/portal"
)

// Sink receives fire-and-forget gameplay cues. Calls never block the frame.
type Sink interface {
	OnJump()
	OnPortalFired(c portal.Color)
	OnTeleport()
	OnFootstep()
}

// Nop discards every cue.
type Nop struct{}

func (Nop) OnJump()                    {}
func (Nop) OnPortalFired(portal.Color) {}
func (Nop) OnTeleport()                {}
func (Nop) OnFootstep()                {}
