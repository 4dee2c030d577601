package defender

import (
	"math"
	"strings"
	"testing"

	"github.com/vovakirdan/defender-tui/internal/core"
	"github.com/vovakirdan/defender-tui/internal/registry"
)

func testConfig(seed int64) core.RuntimeConfig {
	return core.RuntimeConfig{ScreenW: 80, ScreenH: 24, TickRate: 60, Seed: seed}
}

func frame(actions ...core.Action) core.InputFrame {
	in := core.NewInputFrame()
	for _, a := range actions {
		in.Set(a)
	}
	return in
}

func startPlayingGame(t *testing.T, seed int64) *Game {
	t.Helper()
	g := New()
	g.Reset(testConfig(seed))
	g.Step(frame(core.ActionConfirm))
	if g.mode != modePlaying {
		t.Fatal("confirm on the title screen should start a run")
	}
	return g
}

func stepGame(g *Game, seconds float64, in core.InputFrame) {
	steps := int(seconds * float64(g.cfg.TickRate))
	for i := 0; i < steps; i++ {
		g.Step(in)
	}
}

func TestGameRegistered(t *testing.T) {
	if !registry.Exists("defender") {
		t.Fatal("defender should self-register")
	}
	g, err := registry.Create("defender")
	if err != nil {
		t.Fatalf("Create: %v", err)
	}
	if g.ID() != "defender" || g.Title() != "Defender" {
		t.Errorf("ID/Title = %q/%q", g.ID(), g.Title())
	}
}

func TestGameStartsAtTitle(t *testing.T) {
	g := New()
	g.Reset(testConfig(1))

	if g.mode != modeTitle {
		t.Fatal("reset should land on the title screen")
	}
	if g.State().GameOver {
		t.Error("title screen must not report game over")
	}
}

func TestTitleStartsDemoWhenIdle(t *testing.T) {
	g := New()
	g.Reset(testConfig(1))

	stepGame(g, titleDemoDelay+0.1, core.NewInputFrame())
	if g.mode != modeDemo {
		t.Fatalf("mode = %v, expected demo after %vs idle", g.mode, titleDemoDelay)
	}
	if !g.noDeath {
		t.Error("demo should run with the no-death toggle on")
	}

	// Enter leaves the demo for the title screen.
	g.Step(frame(core.ActionConfirm))
	if g.mode != modeTitle {
		t.Errorf("mode = %v, expected title after confirm in demo", g.mode)
	}
}

func TestWaveOneRoster(t *testing.T) {
	g := startPlayingGame(t, 7)
	g.noDeath = true

	if got := g.queue.pending(); got != 10 {
		t.Fatalf("wave 1 pending spawns = %d, expected 10", got)
	}

	stepGame(g, 12, core.NewInputFrame())
	if got := len(g.hostiles); got != 10 {
		t.Errorf("hostiles after stagger = %d, expected 10", got)
	}
	for _, h := range g.hostiles {
		k := h.base().kind
		if k != KindCapturer && k != KindMutant {
			t.Errorf("wave 1 spawned a %v", k)
		}
	}
	if g.queue.pending() != 0 {
		t.Errorf("pending = %d, expected 0 once all arrived", g.queue.pending())
	}
}

func TestDeterministicSimulation(t *testing.T) {
	script := func(tick int) core.InputFrame {
		switch {
		case tick == 0:
			return frame(core.ActionConfirm)
		case tick%120 < 30:
			return frame(core.ActionRight, core.ActionFire)
		case tick%300 < 40:
			return frame(core.ActionLeft, core.ActionUp)
		case tick%900 == 500:
			return frame(core.ActionBomb)
		default:
			return frame(core.ActionDown, core.ActionFire)
		}
	}

	run := func() []uint64 {
		g := New()
		g.Reset(testConfig(42))
		var hashes []uint64
		for tick := 0; tick < 3600; tick++ {
			g.Step(script(tick))
			if tick%100 == 0 {
				snap := g.Snapshot()
				hashes = append(hashes, snap.Hash())
			}
		}
		return hashes
	}

	a, b := run(), run()
	for i := range a {
		if a[i] != b[i] {
			t.Fatalf("hash diverged at checkpoint %d: %x != %x", i, a[i], b[i])
		}
	}
}

func TestSmartBombIsEdgeTriggered(t *testing.T) {
	g := New()
	g.SetTunables(Tunables{StartingLives: 2, SmartBombsPerWave: 3, HunterDelay: 35})
	g.Reset(testConfig(3))
	g.Step(frame(core.ActionConfirm))

	stepGame(g, 0.5, frame(core.ActionBomb))
	if g.smartBombsLeft != 2 {
		t.Errorf("bombs left = %d, expected 2 after one held press", g.smartBombsLeft)
	}

	g.Step(core.NewInputFrame())
	g.Step(frame(core.ActionBomb))
	if g.smartBombsLeft != 1 {
		t.Errorf("bombs left = %d, expected 1 after a second press", g.smartBombsLeft)
	}
}

func TestSmartBombClearsVisibleHostiles(t *testing.T) {
	g := startPlayingGame(t, 5)
	g.noDeath = true
	stepGame(g, 6, core.NewInputFrame())
	if len(g.hostiles) == 0 {
		t.Fatal("expected hostiles on the board")
	}

	visible := 0
	for _, h := range g.hostiles {
		if h.base().hitbox(g.cameraX).onScreen(8) {
			visible++
		}
	}
	before := len(g.hostiles)
	scoreBefore := g.score

	g.Step(frame(core.ActionBomb))
	if g.smartBombsLeft != 0 {
		t.Errorf("bombs left = %d, expected 0", g.smartBombsLeft)
	}
	if visible > 0 && len(g.hostiles) >= before {
		t.Errorf("hostiles = %d, expected fewer than %d", len(g.hostiles), before)
	}
	if g.score != scoreBefore {
		t.Error("the bomb itself must not award points")
	}

	// Spent: another press does nothing.
	g.Step(core.NewInputFrame())
	remaining := len(g.hostiles)
	g.Step(frame(core.ActionBomb))
	if len(g.hostiles) < remaining {
		t.Error("a spent bomb must not clear anything")
	}
}

func TestNoDeathToggle(t *testing.T) {
	g := startPlayingGame(t, 1)

	stepGame(g, 0.2, frame(core.ActionNoDeath))
	if !g.noDeath {
		t.Fatal("no-death should toggle on")
	}
	g.Step(core.NewInputFrame())
	g.Step(frame(core.ActionNoDeath))
	if g.noDeath {
		t.Error("no-death should toggle back off")
	}
}

func TestNoDeathAbsorbsHits(t *testing.T) {
	g := startPlayingGame(t, 1)
	g.noDeath = true
	g.player.invuln = 0
	lives := g.player.lives

	g.playerHit()
	if g.player.lives != lives {
		t.Error("no-death hit must not cost a life")
	}
	if g.player.invuln < 0.5 {
		t.Errorf("invuln = %v, expected at least the grace window", g.player.invuln)
	}
}

func TestGameOverAfterLastLife(t *testing.T) {
	g := New()
	g.SetTunables(Tunables{StartingLives: 1, SmartBombsPerWave: 1, HunterDelay: 35})
	g.Reset(testConfig(1))
	g.Step(frame(core.ActionConfirm))

	for death := 0; death < 2; death++ {
		g.player.invuln = 0
		g.playerHit()
		stepGame(g, DeathRespawnDelay+0.2, core.NewInputFrame())
	}

	if g.mode != modeGameOver {
		t.Fatalf("mode = %v, expected game over", g.mode)
	}
	if !g.State().GameOver {
		t.Error("State() should report game over")
	}

	// Confirm starts a fresh run.
	g.Step(core.NewInputFrame())
	g.Step(frame(core.ActionConfirm))
	if g.mode != modePlaying || g.score != 0 {
		t.Errorf("restart: mode = %v score = %d, expected fresh run", g.mode, g.score)
	}
}

func TestPlayerDeathDropsCarriedColonist(t *testing.T) {
	g := startPlayingGame(t, 1)
	col := g.colonists[0]
	col.pickUp(g.player.id)
	g.player.carrying = col.id
	g.player.invuln = 0

	g.playerHit()
	if g.player.carrying != 0 {
		t.Error("death should release the carried colonist")
	}
	if col.state != colonistFalling {
		t.Errorf("colonist state = %v, expected falling", col.state)
	}
}

func TestWaveAdvanceRepopulatesColonists(t *testing.T) {
	g := startPlayingGame(t, 1)

	// Kill some colonists, then clear the board to end the wave.
	g.colonists[0].die()
	g.colonists[1].die()
	g.hostiles = g.hostiles[:0]
	g.queue.reset()
	g.smartBombsLeft = 0
	g.mines = append(g.mines, newMine(100, 300))

	g.Step(core.NewInputFrame())

	if g.wave != 2 {
		t.Fatalf("wave = %d, expected 2", g.wave)
	}
	if len(g.mines) != 0 {
		t.Error("leftover mines should be swept between waves")
	}
	alive := 0
	for _, c := range g.colonists {
		if c.alive() {
			alive++
		}
	}
	if alive != ColonistCount {
		t.Errorf("alive colonists = %d, expected full roster %d", alive, ColonistCount)
	}
	if g.smartBombsLeft != g.tunables.SmartBombsPerWave {
		t.Errorf("bombs = %d, expected per-wave refill", g.smartBombsLeft)
	}
	if g.queue.pending() == 0 {
		t.Error("new wave should have scheduled arrivals")
	}
	if g.message == "" {
		t.Error("wave banner should be showing")
	}
}

func TestColonistWipeoutTriggersMutantSwarm(t *testing.T) {
	g := startPlayingGame(t, 9)
	stepGame(g, 3, core.NewInputFrame())

	capturers := 0
	for _, h := range g.hostiles {
		if h.base().kind == KindCapturer {
			capturers++
		}
	}
	if capturers == 0 {
		t.Fatal("expected capturers on the board")
	}

	for _, c := range g.colonists {
		c.die()
	}
	g.Step(core.NewInputFrame())

	if !g.groundDestroyed {
		t.Fatal("losing every colonist should mark the planet destroyed")
	}
	for _, h := range g.hostiles {
		if h.base().kind == KindCapturer {
			t.Error("every capturer should have transformed into a mutant")
		}
	}
	if g.message != "Mutant swarm!" {
		t.Errorf("message = %q, expected the swarm banner", g.message)
	}
}

func TestHunterArrivesLate(t *testing.T) {
	g := New()
	g.SetTunables(Tunables{StartingLives: 2, SmartBombsPerWave: 1, HunterDelay: 2})
	g.Reset(testConfig(1))
	g.Step(frame(core.ActionConfirm))
	g.noDeath = true

	hasHunter := func() bool {
		for _, h := range g.hostiles {
			if h.base().kind == KindHunter {
				return true
			}
		}
		return false
	}

	stepGame(g, 1.5, core.NewInputFrame())
	if hasHunter() {
		t.Fatal("hunter must not arrive before its delay")
	}
	for i := 0; i < g.cfg.TickRate && !hasHunter(); i++ {
		g.Step(core.NewInputFrame())
	}
	if !hasHunter() {
		t.Fatal("hunter should arrive after its delay")
	}

	// It enters half a world out, not just off-screen.
	for _, h := range g.hostiles {
		if h.base().kind != KindHunter {
			continue
		}
		dist := math.Abs(ShortestOffset(h.base().x, g.player.x))
		if dist < WorldWidth/2-50 {
			t.Errorf("hunter spawned %v from the player, expected about %v", dist, float64(WorldWidth/2))
		}
	}
}

func TestWarpExitUnsafeFallbackCostsOneHit(t *testing.T) {
	g := startPlayingGame(t, 1)
	g.player.invuln = 0

	// Saturate the sky with mines so no candidate can be safe.
	for x := 0.0; x < WorldWidth; x += 60 {
		for y := PlayfieldTop; y < ScreenHeight; y += 60 {
			g.mines = append(g.mines, newMine(x, y))
		}
	}

	lives := g.player.lives
	if !g.player.startWarp() {
		t.Fatal("warp should start")
	}
	stepGame(g, warpVanishTime+0.05, core.NewInputFrame())

	if g.player.lives != lives-1 {
		t.Errorf("lives = %d, expected exactly one reentry hit", g.player.lives)
	}
	if !g.scannerWarning {
		t.Error("an unsafe exit should flag the scanner")
	}
}

func TestRescueCatchAndDeliver(t *testing.T) {
	g := startPlayingGame(t, 1)
	g.hostiles = g.hostiles[:0]
	g.queue.reset()
	g.queue.schedule(g.waveTimer, 1e9, func() {}) // keep the wave open

	col := g.colonists[0]
	col.x = g.player.x
	col.y = g.player.y
	col.startFalling()
	scoreBefore := g.score

	g.Step(core.NewInputFrame())
	if g.player.carrying != col.id {
		t.Fatalf("carrying = %d, expected colonist %d", g.player.carrying, col.id)
	}
	if col.state != colonistCarried {
		t.Fatalf("state = %v, expected carried", col.state)
	}
	if g.score != scoreBefore+rescueCatchBonus {
		t.Errorf("score = %d, expected catch bonus", g.score)
	}

	// Ride the ship down to the surface.
	stepGame(g, 6, frame(core.ActionDown))
	if g.player.carrying != 0 {
		t.Fatalf("colonist never delivered, state = %v", col.state)
	}
	if col.state != colonistGround {
		t.Errorf("state = %v, expected ground", col.state)
	}
	if g.score < scoreBefore+rescueCatchBonus+rescueDeliverBonus {
		t.Errorf("score = %d, expected catch and delivery bonuses", g.score)
	}
}

func TestBeamDestroysCapturerAndFreesCaptive(t *testing.T) {
	g := startPlayingGame(t, 1)
	g.hostiles = g.hostiles[:0]
	g.queue.reset()
	g.queue.schedule(g.waveTimer, 1e9, func() {})

	cap := newCapturer(g.ids.alloc(), g.rng, g.player.x+100)
	cap.y = g.player.y
	col := g.colonists[0]
	col.capture(cap.id)
	cap.captive = col.id
	cap.state = capturerAscending
	g.addHostile(cap)

	scoreBefore := g.score
	g.Step(frame(core.ActionFire))
	stepGame(g, 0.3, core.NewInputFrame())

	if len(g.hostiles) != 0 {
		t.Fatalf("hostiles = %d, expected the capturer destroyed", len(g.hostiles))
	}
	if col.state != colonistFalling {
		t.Errorf("captive state = %v, expected falling", col.state)
	}
	want := scoreBefore + CapturerPoints + captiveRescueBonus
	if g.score != want {
		t.Errorf("score = %d, expected %d", g.score, want)
	}
}

func TestRenderProducesHUD(t *testing.T) {
	g := startPlayingGame(t, 1)
	stepGame(g, 2, core.NewInputFrame())

	s := core.NewScreen(100, 30)
	g.Render(s)

	out := s.String()
	for _, want := range []string{"SCORE", "WAVE 1", "COLONISTS 10/10", "BOMBS"} {
		if !strings.Contains(out, want) {
			t.Errorf("render output missing %q", want)
		}
	}
}

func TestRenderTitleScreen(t *testing.T) {
	g := New()
	g.Reset(testConfig(1))
	s := core.NewScreen(80, 24)
	g.Render(s)

	out := s.String()
	if !strings.Contains(out, "D E F E N D E R") {
		t.Error("title banner missing")
	}
	if !strings.Contains(out, "┌") || !strings.Contains(out, "┘") {
		t.Error("title frame missing")
	}
}

func TestRenderTinyScreenDoesNotPanic(t *testing.T) {
	g := New()
	g.Reset(testConfig(1))
	s := core.NewScreen(5, 3)
	g.Render(s)
}
