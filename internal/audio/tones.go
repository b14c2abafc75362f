package audio

import (
	"log"
	"sync"
	"time"

	"portalgun/internal/portal"

	"github.com/gopxl/beep/v2"
	"github.com/gopxl/beep/v2/speaker"
	"github.com/pkg/errors"
)

const sampleRate = beep.SampleRate(44100)

// Shot pitch per portal color, in Hz.
var shotPitch = map[portal.Color]float64{
	portal.Blue:   880,
	portal.Orange: 600,
}

// Tones plays each cue as a generated tone through the default output device.
type Tones struct {
	mu          sync.Mutex
	mixer       *beep.Mixer
	volume      float64
	initialized bool
}

func NewTones(volume float64) *Tones {
	return &Tones{
		mixer:  &beep.Mixer{},
		volume: volume,
	}
}

// Init opens the output device. On failure the sink stays silent.
func (t *Tones) Init() error {
	t.mu.Lock()
	defer t.mu.Unlock()

	if t.initialized {
		return nil
	}

	if err := speaker.Init(sampleRate, sampleRate.N(100*time.Millisecond)); err != nil {
		return errors.Wrap(err, "opening audio device")
	}

	speaker.Play(t.mixer)
	t.initialized = true
	log.Printf("Audio: speaker at %d Hz", sampleRate)
	return nil
}

// Close stops playback and releases the device.
func (t *Tones) Close() {
	t.mu.Lock()
	defer t.mu.Unlock()

	if !t.initialized {
		return
	}
	speaker.Clear()
	speaker.Close()
	t.initialized = false
}

func (t *Tones) play(g *ToneGenerator) {
	t.mu.Lock()
	defer t.mu.Unlock()

	if !t.initialized {
		return
	}
	speaker.Lock()
	t.mixer.Add(g)
	speaker.Unlock()
}

func (t *Tones) OnJump() {
	t.play(NewToneGenerator(sampleRate, Sine, 320, 640, 120*time.Millisecond, 0.3*t.volume))
}

func (t *Tones) OnPortalFired(c portal.Color) {
	pitch, ok := shotPitch[c]
	if !ok {
		return
	}
	t.play(NewToneGenerator(sampleRate, Square, pitch, pitch*0.5, 150*time.Millisecond, 0.2*t.volume))
}

func (t *Tones) OnTeleport() {
	t.play(NewToneGenerator(sampleRate, Sine, 1200, 200, 300*time.Millisecond, 0.35*t.volume))
}

func (t *Tones) OnFootstep() {
	t.play(NewToneGenerator(sampleRate, Noise, 0, 0, 40*time.Millisecond, 0.12*t.volume))
}
