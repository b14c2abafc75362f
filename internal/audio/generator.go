package audio

import (
	"math"
	"math/rand"
	"time"

	"github.com/gopxl/beep/v2"
)

// Waveform types
type Wave int

const (
	Sine Wave = iota
	Square
	Noise
)

// attack and release, as a fraction of the tone length
const envelopeFraction = 0.1

// ToneGenerator streams a single tone whose frequency sweeps linearly from
// start to end, shaped by a short attack and release.
type ToneGenerator struct {
	wave      Wave
	sr        beep.SampleRate
	start     float64
	end       float64
	amplitude float64
	samples   int
	pos       int
	phase     float64
}

func NewToneGenerator(sr beep.SampleRate, wave Wave, start, end float64, d time.Duration, amplitude float64) *ToneGenerator {
	return &ToneGenerator{
		wave:      wave,
		sr:        sr,
		start:     start,
		end:       end,
		amplitude: amplitude,
		samples:   sr.N(d),
	}
}

func (g *ToneGenerator) Stream(samples [][2]float64) (n int, ok bool) {
	if g.pos >= g.samples {
		return 0, false
	}

	for i := range samples {
		if g.pos >= g.samples {
			return i, true
		}

		progress := float64(g.pos) / float64(g.samples)
		freq := g.start + (g.end-g.start)*progress

		var v float64
		switch g.wave {
		case Sine:
			v = math.Sin(2 * math.Pi * g.phase)
		case Square:
			if g.phase < 0.5 {
				v = 1
			} else {
				v = -1
			}
		case Noise:
			v = rand.Float64()*2 - 1
		}

		v *= g.amplitude * envelope(progress)
		samples[i][0] = v
		samples[i][1] = v

		g.phase += freq / float64(g.sr)
		if g.phase >= 1 {
			g.phase -= math.Floor(g.phase)
		}
		g.pos++
	}
	return len(samples), true
}

func (g *ToneGenerator) Err() error {
	return nil
}

func envelope(progress float64) float64 {
	if progress < envelopeFraction {
		return progress / envelopeFraction
	}
	if progress > 1-envelopeFraction {
		return (1 - progress) / envelopeFraction
	}
	return 1
}
