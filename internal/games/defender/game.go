package defender

import (
	"fmt"
	"math"
	"math/rand"

	"github.com/vovakirdan/defender-tui/internal/config"
	"github.com/vovakirdan/defender-tui/internal/core"
	"github.com/vovakirdan/defender-tui/internal/registry"
)

func init() {
	registry.Register("defender", func() registry.Game {
		return New()
	})
}

// configPath stores the custom config path set via CLI
var configPath string
var difficultyPreset config.DifficultyPreset
var attractMode bool

// SetConfigPath sets the custom config path for loading.
func SetConfigPath(path string) {
	configPath = path
}

// SetDifficultyPreset sets the difficulty preset.
func SetDifficultyPreset(preset string) {
	switch preset {
	case "easy":
		difficultyPreset = config.DifficultyEasy
	case "normal":
		difficultyPreset = config.DifficultyNormal
	case "hard":
		difficultyPreset = config.DifficultyHard
	case "fixed":
		difficultyPreset = config.DifficultyFixed
	default:
		difficultyPreset = "" // Use config default
	}
}

// SetAttractMode makes Reset skip straight into the demo instead of
// waiting out the title screen.
func SetAttractMode(enabled bool) {
	attractMode = enabled
}

// Sound is the audio sink the simulation emits event names into. The
// platform wires a real backend; the zero default is silent.
type Sound interface {
	Play(name string)
	StartLoop(name string)
	StopLoop(name string)
}

type nopSound struct{}

func (nopSound) Play(string)      {}
func (nopSound) StartLoop(string) {}
func (nopSound) StopLoop(string)  {}

// Tunables are the difficulty-facing knobs. Everything else is fixed
// world physics.
type Tunables struct {
	StartingLives     int
	SmartBombsPerWave int
	HunterDelay       float64
}

func DefaultTunables() Tunables {
	return Tunables{
		StartingLives:     StartingLives,
		SmartBombsPerWave: 1,
		HunterDelay:       HunterSpawnDelay,
	}
}

// mode is the top-level game director state.
type mode int

const (
	modeTitle mode = iota
	modeDemo
	modePlaying
	modeGameOver
)

// Scoring bonuses.
const (
	rescueCatchBonus   = 250
	rescueDeliverBonus = 250
	softLandingBonus   = 250
)

const (
	titleDemoDelay = 15.0
	messageTime    = 3.0
)

// explosion is a transient blast effect.
type explosion struct {
	x, y float64
	ttl  float64
}

const explosionTTL = 0.5

// warpFragment is a reentry particle converging on the warp exit point.
// The ship stays hidden until every fragment has arrived.
type warpFragment struct {
	x, y   float64
	tx, ty float64
	speed  float64
}

// Game is the full planet-defense simulation. It satisfies registry.Game:
// pure logic stepped at a fixed tick, no terminal concerns.
type Game struct {
	cfg core.RuntimeConfig
	dt  float64
	rng *rand.Rand
	ids idSource

	tunables         Tunables
	tunablesOverride *Tunables
	difficulty       *config.DifficultyManager
	sound            Sound
	tick             int

	mode       mode
	titleTimer float64
	paused     bool
	score      int
	noDeath    bool

	wave           int
	waveTimer      float64
	queue          spawnQueue
	smartBombsLeft int

	player    *player
	colonists []*colonist
	hostiles  []hostile
	beams     []*beam
	shots     []*hostileShot
	mines     []*mine

	popups     []popup
	explosions []explosion
	fragments  []warpFragment

	hunterArrived   bool
	groundDestroyed bool
	scannerWarning  bool
	scannerBlink    float64

	message      string
	messageTimer float64

	cameraX    float64
	stars      starfield
	demo       *autopilot
	prevInput  core.InputFrame
	engineOn   bool
	env        hostileEnv
	newArrival []hostile
}

func New() *Game {
	return &Game{
		tunables: DefaultTunables(),
		sound:    nopSound{},
	}
}

// SetSound attaches an audio backend. Safe to call at any time; nil
// restores silence.
func (g *Game) SetSound(s Sound) {
	if s == nil {
		s = nopSound{}
	}
	g.sound = s
}

// SetTunables pins the difficulty knobs, bypassing the config file.
// Takes effect on the next Reset.
func (g *Game) SetTunables(t Tunables) {
	if t.StartingLives <= 0 {
		t.StartingLives = StartingLives
	}
	if t.HunterDelay <= 0 {
		t.HunterDelay = HunterSpawnDelay
	}
	g.tunablesOverride = &t
}

func (g *Game) ID() string    { return "defender" }
func (g *Game) Title() string { return "Defender" }

func (g *Game) Reset(cfg core.RuntimeConfig) {
	if cfg.TickRate <= 0 {
		cfg.TickRate = 60
	}
	g.cfg = cfg
	g.dt = 1.0 / float64(cfg.TickRate)
	g.rng = rand.New(rand.NewSource(cfg.Seed))
	g.ids = idSource{}
	g.tick = 0

	fileCfg, err := config.LoadDefender(configPath)
	if err != nil {
		fileCfg = config.DefaultDefenderConfig()
	}
	if difficultyPreset != "" {
		config.ApplyDefenderPreset(&fileCfg, difficultyPreset)
	}
	g.difficulty = config.NewDifficultyManager(fileCfg.Difficulty)

	if g.tunablesOverride != nil {
		g.tunables = *g.tunablesOverride
	} else {
		g.tunables = Tunables{
			StartingLives:     fileCfg.Player.Lives,
			SmartBombsPerWave: fileCfg.Player.SmartBombs,
			HunterDelay:       fileCfg.Waves.HunterDelay,
		}
		if g.tunables.StartingLives <= 0 {
			g.tunables.StartingLives = StartingLives
		}
		if g.tunables.HunterDelay <= 0 {
			g.tunables.HunterDelay = HunterSpawnDelay
		}
	}

	g.mode = modeTitle
	g.titleTimer = 0
	g.paused = false
	g.demo = nil
	g.prevInput = core.NewInputFrame()
	g.stopEngine()

	g.stars = newStarfield(g.rng)
	g.setupWorld()

	if attractMode {
		g.startDemo()
	}
}

func (g *Game) State() core.GameState {
	return core.GameState{
		Score:    g.score,
		GameOver: g.mode == modeGameOver,
		Paused:   g.paused,
	}
}

// Wave reports the wave the current or finished run reached.
func (g *Game) Wave() int {
	return g.wave
}

// setupWorld builds a fresh run: full colonist roster, wave one, zero
// score.
func (g *Game) setupWorld() {
	g.score = 0
	g.wave = 1
	g.noDeath = false
	g.groundDestroyed = false

	g.player = newPlayer(g.ids.alloc())
	g.player.lives = g.tunables.StartingLives

	g.colonists = g.colonists[:0]
	for i := 0; i < ColonistCount; i++ {
		g.colonists = append(g.colonists, newColonist(g.ids.alloc(), float64(i)*600+300))
	}

	g.hostiles = g.hostiles[:0]
	g.beams = g.beams[:0]
	g.shots = g.shots[:0]
	g.mines = g.mines[:0]
	g.popups = g.popups[:0]
	g.explosions = g.explosions[:0]
	g.fragments = g.fragments[:0]
	g.cameraX = g.player.cameraX()

	g.startWave()
}

// startWave arms the spawn schedule and per-wave resources.
func (g *Game) startWave() {
	g.waveTimer = 0
	g.queue.reset()
	g.hunterArrived = false
	g.smartBombsReset()
	g.player.warp.cooldown = 0
	g.showMessage(fmt.Sprintf("Wave %d", g.wave))

	comp := compositionFor(g.wave)
	g.scheduleGroup(comp.Capturers, capturerSpawnStart, capturerSpawnGap, func(x float64) {
		g.addHostile(newCapturer(g.ids.alloc(), g.rng, x))
	})

	bomberStart := bomberSpawnStart
	if g.wave >= 6 {
		bomberStart = bomberSpawnLate
	}
	g.scheduleGroup(comp.Bombers, bomberStart, bomberSpawnGap, func(x float64) {
		g.addHostile(newBomber(g.ids.alloc(), g.rng, x))
	})

	g.scheduleGroup(comp.Pods, podSpawnStart, podSpawnGap, func(x float64) {
		g.addHostile(newPod(g.ids.alloc(), g.rng, x))
	})
}

// scheduleGroup spreads count arrivals around the world ring with jitter
// and staggers their entry times.
func (g *Game) scheduleGroup(count int, start, gap float64, spawn func(x float64)) {
	if count <= 0 {
		return
	}
	spacing := WorldWidth / float64(count)
	for i := 0; i < count; i++ {
		x := Wrap((float64(i) + g.rng.Float64()) * spacing)
		g.queue.schedule(g.waveTimer, start+gap*float64(i), func() { spawn(x) })
	}
}

func (g *Game) addHostile(h hostile) {
	g.hostiles = append(g.hostiles, h)
}

func (g *Game) smartBombsReset() {
	g.smartBombsLeft = g.tunables.SmartBombsPerWave
}

func (g *Game) showMessage(text string) {
	g.message = text
	g.messageTimer = messageTime
}

// pressed reports a rising edge for an action between the previous and
// current input frames.
func (g *Game) pressed(in core.InputFrame, a core.Action) bool {
	return in.Has(a) && !g.prevInput.Has(a)
}

func (g *Game) Step(in core.InputFrame) core.StepResult {
	defer func() { g.prevInput = in.Clone() }()

	switch g.mode {
	case modeTitle:
		g.stepTitle(in)
	case modeDemo:
		g.stepDemo(in)
	case modePlaying:
		g.stepPlaying(in)
	case modeGameOver:
		g.stepGameOver(in)
	}
	return core.StepResult{State: g.State()}
}

func (g *Game) stepTitle(in core.InputFrame) {
	g.titleTimer += g.dt
	if g.pressed(in, core.ActionConfirm) {
		g.startPlaying()
		return
	}
	if g.titleTimer >= titleDemoDelay {
		g.startDemo()
	}
}

func (g *Game) startPlaying() {
	g.mode = modePlaying
	g.setupWorld()
}

func (g *Game) startDemo() {
	g.mode = modeDemo
	g.demo = newAutopilot()
	g.setupWorld()
	g.noDeath = true
}

func (g *Game) stopDemo() {
	g.demo = nil
	g.mode = modeTitle
	g.titleTimer = 0
	g.stopEngine()
	g.setupWorld()
}

func (g *Game) stepDemo(in core.InputFrame) {
	if g.pressed(in, core.ActionConfirm) || g.pressed(in, core.ActionBack) {
		g.stopDemo()
		return
	}
	synthetic := g.demo.frame(g)
	g.simulate(synthetic)
	if g.mode == modeGameOver {
		g.stopDemo()
	}
}

func (g *Game) stepPlaying(in core.InputFrame) {
	if g.pressed(in, core.ActionPause) {
		g.paused = !g.paused
	}
	if g.paused {
		return
	}
	g.simulate(in)
}

func (g *Game) stepGameOver(in core.InputFrame) {
	if g.pressed(in, core.ActionConfirm) || g.pressed(in, core.ActionRestart) {
		g.startPlaying()
	}
}

// simulate advances the world by one tick under the given input frame.
func (g *Game) simulate(in core.InputFrame) {
	dt := g.dt
	g.tick++
	g.waveTimer += dt
	g.queue.drain(g.waveTimer)

	if g.pressed(in, core.ActionNoDeath) {
		g.noDeath = !g.noDeath
	}
	if g.pressed(in, core.ActionReverse) && !g.player.reversing {
		g.player.beginReverse(-g.player.dir)
	}
	if g.pressed(in, core.ActionBomb) {
		g.fireSmartBomb()
	}
	if g.pressed(in, core.ActionWarp) {
		g.player.startWarp()
	}

	moveX, moveY := inputAxes(in)
	g.player.update(dt, moveX, moveY)
	g.updateEngineLoop()

	if g.player.updateRespawn(dt) {
		if g.player.lives < 0 {
			g.endRun()
			return
		}
		g.player.respawn()
	}

	switch g.player.updateWarp(dt, len(g.fragments)) {
	case warpEventJump:
		g.performWarpJump()
	case warpEventReappear:
		g.spawnWarpFragments()
		g.sound.Play("warp_out")
	}
	g.updateFragments(dt)

	if in.Has(core.ActionFire) {
		if b := g.player.fire(); b != nil {
			g.beams = append(g.beams, b)
			g.sound.Play("player_fire")
		}
	}

	g.updateHostiles(dt)
	g.updateColonists(dt)
	g.updateProjectiles(dt)
	g.resolveCollisions()
	g.updateHunter()
	g.updateWaveProgress()
	g.updateEffects(dt)

	if g.player.maybeAwardExtraLife(g.score) {
		g.addPopup(g.player.x, g.player.y-30, "EXTRA SHIP")
	}

	g.cameraX = g.player.cameraX()
}

// inputAxes flattens the directional actions into [-1, 1] axes.
func inputAxes(in core.InputFrame) (float64, float64) {
	var x, y float64
	if in.Has(core.ActionLeft) {
		x--
	}
	if in.Has(core.ActionRight) {
		x++
	}
	if in.Has(core.ActionUp) {
		y--
	}
	if in.Has(core.ActionDown) {
		y++
	}
	return x, y
}

func (g *Game) updateEngineLoop() {
	throttling := g.player.throttle && !g.player.invisible
	if throttling && !g.engineOn {
		g.sound.StartLoop("engine")
		g.engineOn = true
	} else if !throttling && g.engineOn {
		g.stopEngine()
	}
}

func (g *Game) stopEngine() {
	if g.engineOn {
		g.sound.StopLoop("engine")
	}
	g.engineOn = false
}

func (g *Game) endRun() {
	g.mode = modeGameOver
	g.stopEngine()
}

// hostileEnvFor refreshes the shared env with this tick's world view.
func (g *Game) hostileEnvFor() *hostileEnv {
	g.env = hostileEnv{
		rng:          g.rng,
		playerX:      g.player.x,
		playerY:      g.player.y,
		colonists:    g.colonists,
		colonistByID: g.colonistByID,
		fireShot: func(x, y, vx, vy float64) {
			g.shots = append(g.shots, newHostileShot(x, y, vx, vy))
		},
		dropMine: func(x, y float64) {
			g.mines = append(g.mines, newMine(x, y))
		},
		spawnMutant: func(x, y float64) {
			g.newArrival = append(g.newArrival, newMutant(g.ids.alloc(), g.rng, x, y))
		},
		playSound: g.sound.Play,
	}
	return &g.env
}

func (g *Game) colonistByID(id EntityID) *colonist {
	for _, c := range g.colonists {
		if c.id == id {
			return c
		}
	}
	return nil
}

func (g *Game) updateHostiles(dt float64) {
	env := g.hostileEnvFor()
	g.newArrival = g.newArrival[:0]

	kept := g.hostiles[:0]
	for _, h := range g.hostiles {
		if h.update(dt, env) {
			kept = append(kept, h)
		}
	}
	g.hostiles = append(kept, g.newArrival...)
	g.newArrival = g.newArrival[:0]
}

func (g *Game) updateColonists(dt float64) {
	for _, c := range g.colonists {
		switch c.state {
		case colonistCaptured:
			carrier := g.hostileByID(c.carrier)
			if carrier == nil {
				c.startFalling()
				continue
			}
			b := carrier.base()
			c.followCarrier(b.x, b.y, b.h)

		case colonistCarried:
			if g.player.carrying != c.id || g.player.invisible {
				g.player.carrying = 0
				c.startFalling()
				continue
			}
			c.followCarrier(g.player.x, g.player.y, PlayerHeight)

		case colonistFalling:
			switch c.updateFall(dt) {
			case landingRewarded:
				g.award(softLandingBonus, c.x, c.y-20)
			case landingLethal:
				g.addExplosion(c.x, c.y)
			case landingCatastrophic:
				g.addExplosion(c.x, c.y)
				g.addExplosion(c.x, c.y-10)
			}
		}
	}
	g.checkColonistsWipedOut()
}

func (g *Game) hostileByID(id EntityID) hostile {
	for _, h := range g.hostiles {
		if h.base().id == id {
			return h
		}
	}
	return nil
}

// notifyCaptiveRemoved tells any capturer holding or targeting the
// colonist that it is gone.
func (g *Game) notifyCaptiveRemoved(id EntityID) {
	for _, h := range g.hostiles {
		if c, ok := h.(*capturer); ok && (c.captive == id || c.target == id) {
			c.onCaptiveRemoved(g.rng)
		}
	}
}

func (g *Game) updateProjectiles(dt float64) {
	beams := g.beams[:0]
	for _, b := range g.beams {
		if b.update(dt) {
			beams = append(beams, b)
		}
	}
	g.beams = beams

	shots := g.shots[:0]
	for _, s := range g.shots {
		if s.update(dt) {
			shots = append(shots, s)
		}
	}
	g.shots = shots

	mines := g.mines[:0]
	for _, m := range g.mines {
		if m.update(dt) {
			mines = append(mines, m)
		}
	}
	g.mines = mines
}

func (g *Game) updateHunter() {
	delay := g.tunables.HunterDelay
	if g.difficulty != nil {
		delay = g.difficulty.Delay(delay, g.score, g.tick)
	}
	if g.hunterArrived || g.waveTimer < delay {
		return
	}
	for _, h := range g.hostiles {
		if h.base().kind == KindHunter {
			return
		}
	}
	g.hunterArrived = true

	// The hunter enters half a world away, as far from the player as the
	// ring allows.
	x := Wrap(g.player.x + WorldWidth/2)
	g.addHostile(newHunter(g.ids.alloc(), g.rng, x))
	g.sound.Play("hunter")
}

// updateWaveProgress ends the wave once every scheduled enemy has both
// arrived and been destroyed.
func (g *Game) updateWaveProgress() {
	if len(g.hostiles) > 0 || g.queue.pending() > 0 {
		return
	}
	g.beginNextWave()
}

func (g *Game) beginNextWave() {
	g.wave++
	g.beams = g.beams[:0]
	g.shots = g.shots[:0]
	g.mines = g.mines[:0]

	// Any carried colonist is set down before the board repopulates.
	g.player.carrying = 0
	g.player.invuln = math.Max(g.player.invuln, 1.0)
	g.player.vx = PlayerCruiseSpeed * float64(g.player.dir)
	g.player.pendingSpeed = 0

	g.colonists = g.colonists[:0]
	for i := 0; i < ColonistCount; i++ {
		g.colonists = append(g.colonists, newColonist(g.ids.alloc(), float64(i)*600+300))
	}
	g.groundDestroyed = false

	g.startWave()
}

// checkColonistsWipedOut turns every capturer into a mutant once the last
// colonist dies. The planet is lost for the rest of the wave.
func (g *Game) checkColonistsWipedOut() {
	if g.groundDestroyed {
		return
	}
	for _, c := range g.colonists {
		if c.alive() {
			return
		}
	}
	g.groundDestroyed = true
	g.showMessage("Mutant swarm!")
	g.scannerWarning = true

	for i, h := range g.hostiles {
		if c, ok := h.(*capturer); ok {
			g.hostiles[i] = newMutant(g.ids.alloc(), g.rng, c.x, c.y)
		}
	}
}

// fireSmartBomb clears every hostile and mine currently on screen.
func (g *Game) fireSmartBomb() {
	if g.smartBombsLeft <= 0 {
		return
	}
	g.smartBombsLeft--
	g.sound.Play("smart_bomb")

	g.newArrival = g.newArrival[:0]
	kept := g.hostiles[:0]
	for _, h := range g.hostiles {
		b := h.base()
		if b.hitbox(g.cameraX).onScreen(8) {
			g.destroyHostile(h, false)
			continue
		}
		kept = append(kept, h)
	}
	g.hostiles = append(kept, g.newArrival...)
	g.newArrival = g.newArrival[:0]

	mines := g.mines[:0]
	for _, m := range g.mines {
		if m.hitbox(g.cameraX).onScreen(12) {
			g.addExplosion(m.x, m.y)
			continue
		}
		mines = append(mines, m)
	}
	g.mines = mines
}

// destroyHostile applies the death bookkeeping shared by beams and the
// smart bomb: score, effects, captive release, pod bursts. The caller
// removes the hostile from the slice.
func (g *Game) destroyHostile(h hostile, awardPoints bool) {
	b := h.base()
	if awardPoints {
		g.award(b.points, b.x, b.y)
	}
	g.addExplosion(b.x, b.y)
	g.sound.Play("explosion")

	switch v := h.(type) {
	case *capturer:
		if v.captive != 0 {
			if col := g.colonistByID(v.captive); col != nil && col.alive() {
				col.startFalling()
				g.award(captiveRescueBonus, col.x, col.y)
			}
		}
		if v.target != 0 {
			if col := g.colonistByID(v.target); col != nil {
				col.releaseReservation(v.id)
			}
			v.target = 0
		}
	case *pod:
		g.burstPod(v)
	}
}

// burstPod stages a cluster of swarmers around the destroyed pod. They
// join the hostile list once the current pass finishes.
func (g *Game) burstPod(p *pod) {
	count := 4 + g.rng.Intn(3)
	for i := 0; i < count; i++ {
		x := Wrap(p.x + rollTimer(g.rng, -80, 80))
		y := clampf(p.y+rollTimer(g.rng, -60, 60), PlayfieldTop+20, ScreenHeight-140)
		g.newArrival = append(g.newArrival, newSwarmer(g.ids.alloc(), x, y))
	}
}

// playerHit lands one hit on the ship, honoring invulnerability and the
// practice toggle.
func (g *Game) playerHit() {
	if !g.player.vulnerable() {
		return
	}
	if g.noDeath {
		g.player.invuln = math.Max(g.player.invuln, 0.5)
		return
	}

	if g.player.carrying != 0 {
		if col := g.colonistByID(g.player.carrying); col != nil {
			col.startFalling()
		}
		g.player.carrying = 0
	}
	g.addExplosion(g.player.x, g.player.y)
	g.sound.Play("explosion")
	g.stopEngine()
	g.player.beginDeath()
}

func (g *Game) award(points int, x, y float64) {
	g.score += points
	g.addPopup(x, y, fmt.Sprintf("+%d", points))
}

func (g *Game) addPopup(x, y float64, text string) {
	g.popups = append(g.popups, popup{x: x, y: y, text: text, ttl: popupTTL})
}

func (g *Game) addExplosion(x, y float64) {
	g.explosions = append(g.explosions, explosion{x: x, y: y, ttl: explosionTTL})
}

func (g *Game) updateEffects(dt float64) {
	pops := g.popups[:0]
	for _, p := range g.popups {
		p.ttl -= dt
		p.y -= 24 * dt
		if p.ttl > 0 {
			pops = append(pops, p)
		}
	}
	g.popups = pops

	booms := g.explosions[:0]
	for _, e := range g.explosions {
		e.ttl -= dt
		if e.ttl > 0 {
			booms = append(booms, e)
		}
	}
	g.explosions = booms

	if g.messageTimer > 0 {
		g.messageTimer -= dt
		if g.messageTimer <= 0 {
			g.message = ""
		}
	}
	if g.scannerBlink > 0 {
		g.scannerBlink -= dt
		if g.scannerBlink <= 0 && !g.groundDestroyed {
			g.scannerWarning = false
		}
	}
}

// performWarpJump picks an exit point for the hyperspace jump. Three
// random candidates are tried; if none is safe the last one is used
// anyway and the ship takes a single reentry hit.
func (g *Game) performWarpJump() {
	var x, y float64
	safe := false
	for i := 0; i < 3; i++ {
		x = g.rng.Float64() * WorldWidth
		y = rollTimer(g.rng, PlayfieldTop+80, ScreenHeight-160)
		if g.warpExitSafe(x, y) {
			safe = true
			break
		}
	}

	g.player.completeJump(x, y)
	g.scannerBlink = 0.16
	g.scannerWarning = !safe
	if !safe {
		g.reentryHit()
	}
}

// reentryHit is the single hit charged for materializing in an unsafe
// spot. It bypasses the invulnerability gate and aborts the rest of the
// warp sequence.
func (g *Game) reentryHit() {
	if g.noDeath {
		g.player.invuln = math.Max(g.player.invuln, 0.5)
		return
	}
	g.player.warp.phase = warpIdle
	g.player.warp.cooldown = WarpCooldown
	g.fragments = g.fragments[:0]
	g.addExplosion(g.player.x, g.player.y)
	g.sound.Play("explosion")
	g.player.beginDeath()
}

// warpExitSafe requires terrain clearance and standoff from every
// hostile and mine.
func (g *Game) warpExitSafe(x, y float64) bool {
	if y < PlayfieldTop+80 || y > ScreenHeight-80 {
		return false
	}
	if y > TerrainY(x)-60 {
		return false
	}
	for _, h := range g.hostiles {
		b := h.base()
		if math.Hypot(ShortestOffset(b.x, x), b.y-y) < 80 {
			return false
		}
	}
	for _, m := range g.mines {
		if math.Hypot(ShortestOffset(m.x, x), m.y-y) < 70 {
			return false
		}
	}
	return true
}

// spawnWarpFragments scatters reentry particles around the exit point.
func (g *Game) spawnWarpFragments() {
	g.fragments = g.fragments[:0]
	for i := 0; i < 6; i++ {
		angle := float64(i)/6*2*math.Pi + g.rng.Float64()*0.6
		radius := 90 + g.rng.Float64()*60
		g.fragments = append(g.fragments, warpFragment{
			x:     Wrap(g.player.x + math.Cos(angle)*radius),
			y:     clampf(g.player.y+math.Sin(angle)*radius, PlayfieldTop, ScreenHeight-40),
			tx:    g.player.x,
			ty:    g.player.y,
			speed: 600 + g.rng.Float64()*200,
		})
	}
}

func (g *Game) updateFragments(dt float64) {
	kept := g.fragments[:0]
	for _, f := range g.fragments {
		dx, dy := normalize2(ShortestOffset(f.tx, f.x), f.ty-f.y)
		step := f.speed * dt
		if math.Hypot(ShortestOffset(f.tx, f.x), f.ty-f.y) <= step {
			continue
		}
		f.x = Wrap(f.x + dx*step)
		f.y += dy * step
		kept = append(kept, f)
	}
	g.fragments = kept
}
