package audio

import (
	"math"
	"time"
)

// sweepGenerator slides a sine tone from one frequency to another over
// a fixed duration with a linear fade-out. Covers lasers, warps and the
// mutation wail depending on direction and range.
type sweepGenerator struct {
	fromFreq float64
	toFreq   float64
	volume   float64
	samples  int
	pos      int
	phase    float64
}

func newSweepGenerator(from, to float64, d time.Duration, volume float64) *sweepGenerator {
	return &sweepGenerator{
		fromFreq: from,
		toFreq:   to,
		volume:   volume,
		samples:  sampleRate.N(d),
	}
}

func (g *sweepGenerator) Stream(samples [][2]float64) (n int, ok bool) {
	for i := range samples {
		progress := float64(g.pos) / float64(g.samples)
		if progress > 1 {
			progress = 1
		}
		freq := g.fromFreq + (g.toFreq-g.fromFreq)*progress
		envelope := 1.0 - progress

		sample := g.volume * envelope * math.Sin(2*math.Pi*g.phase)
		g.phase += freq / float64(sampleRate)
		if g.phase >= 1 {
			g.phase -= 1
		}

		samples[i][0] = sample
		samples[i][1] = sample
		g.pos++
	}
	return len(samples), true
}

func (g *sweepGenerator) Err() error {
	return nil
}

// noiseBurstGenerator produces filtered noise with an exponential decay
// and a low rumble underneath, for explosions.
type noiseBurstGenerator struct {
	volume float64
	pos    int
	seed   int64
	prev   float64
}

func newNoiseBurstGenerator(d time.Duration, volume float64) *noiseBurstGenerator {
	return &noiseBurstGenerator{
		volume: volume,
		seed:   1,
	}
}

func (g *noiseBurstGenerator) Stream(samples [][2]float64) (n int, ok bool) {
	for i := range samples {
		t := float64(g.pos) / float64(sampleRate)
		envelope := math.Exp(-t * 7)

		g.seed = (g.seed*1103515245 + 12345) & 0x7fffffff
		noise := float64(g.seed)/float64(0x7fffffff)*2 - 1
		// One-pole low-pass softens the hiss into a boom.
		g.prev = g.prev*0.7 + noise*0.3

		rumble := 0.4 * math.Sin(2*math.Pi*55*t)
		sample := g.volume * envelope * (0.6*g.prev + rumble)

		samples[i][0] = sample
		samples[i][1] = sample
		g.pos++
	}
	return len(samples), true
}

func (g *noiseBurstGenerator) Err() error {
	return nil
}

// chimeGenerator plays two quick ascending notes, used for rescue
// pickups and deliveries.
type chimeGenerator struct {
	freq1   float64
	freq2   float64
	samples int
	pos     int
	phase   float64
}

func newChimeGenerator(freq1, freq2 float64, d time.Duration) *chimeGenerator {
	return &chimeGenerator{
		freq1:   freq1,
		freq2:   freq2,
		samples: sampleRate.N(d),
	}
}

func (g *chimeGenerator) Stream(samples [][2]float64) (n int, ok bool) {
	half := g.samples / 2
	for i := range samples {
		freq := g.freq1
		notePos := g.pos
		if g.pos >= half {
			freq = g.freq2
			notePos = g.pos - half
		}

		noteProgress := float64(notePos) / float64(half)
		if noteProgress > 1 {
			noteProgress = 1
		}
		envelope := 1.0 - noteProgress

		sample := 0.18 * envelope * math.Sin(2*math.Pi*g.phase)
		g.phase += freq / float64(sampleRate)
		if g.phase >= 1 {
			g.phase -= 1
		}

		samples[i][0] = sample
		samples[i][1] = sample
		g.pos++
	}
	return len(samples), true
}

func (g *chimeGenerator) Err() error {
	return nil
}

// sirenGenerator wobbles between two pitches, announcing the hunter.
type sirenGenerator struct {
	samples int
	pos     int
	phase   float64
}

func newSirenGenerator(d time.Duration) *sirenGenerator {
	return &sirenGenerator{samples: sampleRate.N(d)}
}

func (g *sirenGenerator) Stream(samples [][2]float64) (n int, ok bool) {
	for i := range samples {
		t := float64(g.pos) / float64(sampleRate)
		progress := float64(g.pos) / float64(g.samples)
		if progress > 1 {
			progress = 1
		}

		freq := 440 + 220*math.Sin(2*math.Pi*6*t)
		envelope := 1.0 - progress

		sample := 0.18 * envelope * math.Sin(2*math.Pi*g.phase)
		g.phase += freq / float64(sampleRate)
		if g.phase >= 1 {
			g.phase -= 1
		}

		samples[i][0] = sample
		samples[i][1] = sample
		g.pos++
	}
	return len(samples), true
}

func (g *sirenGenerator) Err() error {
	return nil
}

// engineGenerator is the looping thruster rumble. It streams forever
// and is paused through its beep.Ctrl rather than ending.
type engineGenerator struct {
	pos   int
	seed  int64
	prev  float64
	phase float64
}

func newEngineGenerator() *engineGenerator {
	return &engineGenerator{seed: 1}
}

func (g *engineGenerator) Stream(samples [][2]float64) (n int, ok bool) {
	for i := range samples {
		t := float64(g.pos) / float64(sampleRate)

		g.seed = (g.seed*1103515245 + 12345) & 0x7fffffff
		noise := float64(g.seed)/float64(0x7fffffff)*2 - 1
		g.prev = g.prev*0.92 + noise*0.08

		// Slow amplitude wobble keeps the rumble from sounding static.
		wobble := 0.8 + 0.2*math.Sin(2*math.Pi*1.3*t)

		sample := 0.08 * wobble * (math.Sin(2*math.Pi*g.phase) + 2.5*g.prev)
		g.phase += 48 / float64(sampleRate)
		if g.phase >= 1 {
			g.phase -= 1
		}

		samples[i][0] = sample
		samples[i][1] = sample
		g.pos++
	}
	return len(samples), true
}

func (g *engineGenerator) Err() error {
	return nil
}
