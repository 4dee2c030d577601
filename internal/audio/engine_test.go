package audio

import (
	"testing"
	"time"
)

func TestEngineSilentBeforeInitialize(t *testing.T) {
	e := NewEngine()

	// Every method must be safe without a speaker.
	e.Play("explosion")
	e.StartLoop("engine")
	e.StopLoop("engine")
	e.StopLoop("never_started")
	e.Cleanup()
}

func TestOneShotKnownNames(t *testing.T) {
	names := []string{
		"player_fire", "enemy_fire", "explosion", "smart_bomb", "mine",
		"rescue_pick", "rescue_drop", "mutate", "hunter", "warp_out",
	}
	for _, name := range names {
		if oneShot(name) == nil {
			t.Errorf("oneShot(%q) returned nil", name)
		}
	}
	if oneShot("no_such_effect") != nil {
		t.Error("unknown effect name should map to nil")
	}
}

func TestLoopGeneratorNames(t *testing.T) {
	if loopGenerator("engine") == nil {
		t.Error("engine loop generator missing")
	}
	if loopGenerator("player_fire") != nil {
		t.Error("one-shot names should not resolve to loops")
	}
}

func TestGeneratorsStayInRange(t *testing.T) {
	gens := map[string]interface {
		Stream([][2]float64) (int, bool)
	}{
		"sweep":  newSweepGenerator(1400, 300, 90*time.Millisecond, 0.20),
		"noise":  newNoiseBurstGenerator(350*time.Millisecond, 0.30),
		"chime":  newChimeGenerator(660, 990, 180*time.Millisecond),
		"siren":  newSirenGenerator(500 * time.Millisecond),
		"engine": newEngineGenerator(),
	}

	buf := make([][2]float64, 2048)
	for name, gen := range gens {
		for round := 0; round < 20; round++ {
			n, ok := gen.Stream(buf)
			if !ok || n != len(buf) {
				t.Fatalf("%s: Stream returned n=%d ok=%v", name, n, ok)
			}
			for i := 0; i < n; i++ {
				l, r := buf[i][0], buf[i][1]
				if l < -1 || l > 1 || r < -1 || r > 1 {
					t.Fatalf("%s: sample out of range: %v %v", name, l, r)
				}
				if l != r {
					t.Fatalf("%s: expected mono output duplicated to both channels", name)
				}
			}
		}
	}
}

func TestSweepFadesOut(t *testing.T) {
	gen := newSweepGenerator(1000, 200, 50*time.Millisecond, 0.5)
	total := sampleRate.N(50 * time.Millisecond)

	buf := make([][2]float64, total)
	gen.Stream(buf)

	// Tail samples should be near silent once the envelope has closed.
	tail := buf[len(buf)-10:]
	for _, s := range tail {
		if s[0] < -0.01 || s[0] > 0.01 {
			t.Fatalf("sweep did not fade out, tail sample %v", s[0])
		}
	}
}
