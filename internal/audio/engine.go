// Package audio synthesizes the game's sound effects with beep.
// All effects are generated procedurally, no sample files are shipped.
package audio

import (
	"sync"
	"time"

	"github.com/gopxl/beep"
	"github.com/gopxl/beep/speaker"
)

const (
	sampleRate = beep.SampleRate(48000)
)

// Engine manages playback of named sound effects. One-shot effects are
// mixed on demand, looped effects (the engine rumble) are keyed by name
// so callers can stop them. Before Initialize succeeds every method is
// a no-op, which doubles as the silent fallback when no audio device is
// available.
type Engine struct {
	mu          sync.Mutex
	mixer       *beep.Mixer
	loops       map[string]*beep.Ctrl
	initialized bool
}

// NewEngine creates an engine in the silent state.
func NewEngine() *Engine {
	return &Engine{
		mixer: &beep.Mixer{},
		loops: make(map[string]*beep.Ctrl),
	}
}

// Initialize opens the speaker. A failure leaves the engine silent and
// is reported to the caller, who may choose to continue without sound.
func (e *Engine) Initialize() error {
	e.mu.Lock()
	defer e.mu.Unlock()

	if e.initialized {
		return nil
	}

	if err := speaker.Init(sampleRate, sampleRate.N(time.Millisecond*100)); err != nil {
		return err
	}

	speaker.Play(e.mixer)
	e.initialized = true
	return nil
}

// Cleanup pauses all loops and clears the mixer.
func (e *Engine) Cleanup() {
	e.mu.Lock()
	defer e.mu.Unlock()

	if !e.initialized {
		return
	}

	for _, ctrl := range e.loops {
		ctrl.Paused = true
	}
	e.mixer.Clear()
	e.initialized = false
}

// Play queues a one-shot effect by name. Unknown names are ignored.
func (e *Engine) Play(name string) {
	e.mu.Lock()
	defer e.mu.Unlock()

	if !e.initialized {
		return
	}

	streamer := oneShot(name)
	if streamer == nil {
		return
	}
	e.mixer.Add(streamer)
}

// StartLoop starts (or resumes) a looped effect by name.
func (e *Engine) StartLoop(name string) {
	e.mu.Lock()
	defer e.mu.Unlock()

	if !e.initialized {
		return
	}

	if ctrl, ok := e.loops[name]; ok {
		ctrl.Paused = false
		return
	}

	gen := loopGenerator(name)
	if gen == nil {
		return
	}
	// Loop generators stream forever, no restart logic needed.
	ctrl := &beep.Ctrl{Streamer: gen, Paused: false}
	e.loops[name] = ctrl
	e.mixer.Add(ctrl)
}

// StopLoop pauses a looped effect. Unknown names are ignored.
func (e *Engine) StopLoop(name string) {
	e.mu.Lock()
	defer e.mu.Unlock()

	if ctrl, ok := e.loops[name]; ok {
		ctrl.Paused = true
	}
}

// oneShot maps an effect name to a finite streamer.
func oneShot(name string) beep.Streamer {
	take := func(d time.Duration, gen beep.Streamer) beep.Streamer {
		return beep.Take(sampleRate.N(d), gen)
	}

	switch name {
	case "player_fire":
		return take(90*time.Millisecond, newSweepGenerator(1400, 300, 90*time.Millisecond, 0.20))
	case "enemy_fire":
		return take(110*time.Millisecond, newSweepGenerator(500, 180, 110*time.Millisecond, 0.14))
	case "explosion":
		return take(350*time.Millisecond, newNoiseBurstGenerator(350*time.Millisecond, 0.30))
	case "smart_bomb":
		return take(700*time.Millisecond, newNoiseBurstGenerator(700*time.Millisecond, 0.40))
	case "mine":
		return take(140*time.Millisecond, newSweepGenerator(240, 120, 140*time.Millisecond, 0.16))
	case "rescue_pick":
		return take(180*time.Millisecond, newChimeGenerator(660, 990, 180*time.Millisecond))
	case "rescue_drop":
		return take(220*time.Millisecond, newChimeGenerator(523.25, 784, 220*time.Millisecond))
	case "mutate":
		return take(400*time.Millisecond, newSweepGenerator(200, 900, 400*time.Millisecond, 0.22))
	case "hunter":
		return take(500*time.Millisecond, newSirenGenerator(500*time.Millisecond))
	case "warp_out":
		return take(300*time.Millisecond, newSweepGenerator(1800, 80, 300*time.Millisecond, 0.22))
	default:
		return nil
	}
}

// loopGenerator maps a loop name to its infinite generator.
func loopGenerator(name string) beep.Streamer {
	switch name {
	case "engine":
		return newEngineGenerator()
	default:
		return nil
	}
}
