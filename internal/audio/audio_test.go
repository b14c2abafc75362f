package audio

import (
	"math"
	"testing"
	"time"

	"portalgun/internal/portal"

	"github.com/gopxl/beep/v2"
)

func drain(t *testing.T, g *ToneGenerator) (total int, peak float64) {
	t.Helper()
	buf := make([][2]float64, 256)
	for {
		n, ok := g.Stream(buf)
		for i := 0; i < n; i++ {
			peak = math.Max(peak, math.Abs(buf[i][0]))
			if buf[i][0] != buf[i][1] {
				t.Fatalf("Expected identical channels at sample %d", total+i)
			}
		}
		total += n
		if !ok {
			return
		}
	}
}

func TestToneGeneratorLength(t *testing.T) {
	sr := beep.SampleRate(44100)
	for _, wave := range []Wave{Sine, Square, Noise} {
		g := NewToneGenerator(sr, wave, 440, 880, 100*time.Millisecond, 0.5)

		total, peak := drain(t, g)

		if total != sr.N(100*time.Millisecond) {
			t.Errorf("wave %d: expected %d samples, got %d", wave, sr.N(100*time.Millisecond), total)
		}
		if peak > 0.5+1e-9 {
			t.Errorf("wave %d: expected peak within amplitude, got %f", wave, peak)
		}
		if n, ok := g.Stream(make([][2]float64, 8)); n != 0 || ok {
			t.Errorf("wave %d: expected drained generator to report done", wave)
		}
		if g.Err() != nil {
			t.Errorf("wave %d: unexpected error %v", wave, g.Err())
		}
	}
}

func TestToneGeneratorEnvelope(t *testing.T) {
	g := NewToneGenerator(beep.SampleRate(1000), Square, 100, 100, time.Second, 1)
	buf := make([][2]float64, 1000)
	g.Stream(buf)

	if buf[0][0] != 0 {
		t.Errorf("Expected silent first sample, got %f", buf[0][0])
	}
	if math.Abs(buf[500][0]) != 1 {
		t.Errorf("Expected full amplitude mid tone, got %f", buf[500][0])
	}
	if math.Abs(buf[999][0]) > 0.011 {
		t.Errorf("Expected release near zero, got %f", buf[999][0])
	}
}

func TestUninitializedTonesAreSilent(t *testing.T) {
	tones := NewTones(1)

	// No device was opened, every cue is dropped.
	tones.OnJump()
	tones.OnPortalFired(portal.Blue)
	tones.OnPortalFired(portal.None)
	tones.OnTeleport()
	tones.OnFootstep()
	tones.Close()

	if tones.mixer.Len() != 0 {
		t.Errorf("Expected nothing queued, got %d", tones.mixer.Len())
	}
}

func TestSinks(t *testing.T) {
	var _ Sink = Nop{}
	var _ Sink = NewTones(1)
}
