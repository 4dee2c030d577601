package defender

import (
	"math"
	"math/rand"
)

// hostileKind tags the enemy families. Renderers and the scanner key
// colors off it; scoring and collision use the shared base.
type hostileKind int

const (
	KindCapturer hostileKind = iota
	KindMutant
	KindBomber
	KindPod
	KindSwarmer
	KindHunter
)

func (k hostileKind) String() string {
	switch k {
	case KindCapturer:
		return "capturer"
	case KindMutant:
		return "mutant"
	case KindBomber:
		return "bomber"
	case KindPod:
		return "pod"
	case KindSwarmer:
		return "swarmer"
	case KindHunter:
		return "hunter"
	default:
		return "unknown"
	}
}

// Per-kind tuning.
const (
	CapturerSpeed       = 80.0
	CapturerAscentSpeed = 90.0
	CapturerDescentRate = 110.0
	CapturerMinAltitude = 120.0
	CapturerShotSpeed   = 260.0
	CapturerPoints      = 150

	MutantSpeed     = 150.0
	MutantHomeY     = 190.0
	MutantShotSpeed = 340.0
	MutantPoints    = 300

	BomberSpeed  = 150.0
	BomberPoints = 250

	PodSpeed  = 90.0
	PodPoints = 500

	SwarmerSpeed  = 240.0
	SwarmerPoints = 150

	HunterSpeed      = 260.0
	HunterPoints     = 750
	HunterSpawnDelay = 35.0

	captiveRescueBonus = 350
)

// hostileEnv is the slice of world state a hostile may read or poke while
// updating. The simulation wires real callbacks; tests wire stubs.
type hostileEnv struct {
	rng              *rand.Rand
	playerX, playerY float64
	colonists        []*colonist
	colonistByID     func(EntityID) *colonist
	fireShot         func(x, y, vx, vy float64)
	dropMine         func(x, y float64)
	spawnMutant      func(x, y float64)
	playSound        func(name string)
}

func (e *hostileEnv) sound(name string) {
	if e.playSound != nil {
		e.playSound(name)
	}
}

// hostile is any enemy craft. update returns false when the craft removed
// itself from play without being shot down.
type hostile interface {
	base() *hostileBase
	update(dt float64, env *hostileEnv) bool
}

type hostileBase struct {
	id     EntityID
	kind   hostileKind
	x, y   float64
	w, h   float64
	health int
	points int

	fireTimer float64
	age       float64
}

func (b *hostileBase) base() *hostileBase { return b }

func (b *hostileBase) hitbox(cameraX float64) box {
	return box{X: WorldToScreen(b.x, cameraX), Y: b.y, W: b.w, H: b.h}
}

// takeDamage applies hits and reports whether the craft was destroyed.
func (b *hostileBase) takeDamage(amount int) bool {
	b.health -= amount
	return b.health <= 0
}

// aimAtPlayer fires an aimed shot at the player's current position. A
// degenerate aim vector skips this frame's shot.
func (b *hostileBase) aimAtPlayer(env *hostileEnv, speed float64) {
	dx, dy := normalize2(ShortestOffset(env.playerX, b.x), env.playerY-b.y)
	if dx == 0 && dy == 0 {
		return
	}
	env.fireShot(b.x, b.y, dx*speed, dy*speed)
	env.sound("enemy_fire")
}

func rollTimer(rng *rand.Rand, lo, hi float64) float64 {
	return lo + rng.Float64()*(hi-lo)
}

// capturerState tracks the abduction lifecycle of a capturer.
type capturerState int

const (
	capturerPatrolling capturerState = iota
	capturerDescending
	capturerAscending
)

// capturer patrols at altitude, reserves a ground colonist, descends to
// grab it and hauls it to the top of the playfield, where both mutate.
type capturer struct {
	hostileBase
	state     capturerState
	homeY     float64
	wanderDir int
	target    EntityID
	captive   EntityID
}

func newCapturer(id EntityID, rng *rand.Rand, x float64) *capturer {
	c := &capturer{
		hostileBase: hostileBase{
			id:     id,
			kind:   KindCapturer,
			x:      Wrap(x),
			w:      28,
			h:      28,
			health: 1,
			points: CapturerPoints,
		},
		state:     capturerPatrolling,
		wanderDir: 1,
	}
	c.homeY = rollTimer(rng, PlayfieldTop+40, PlayfieldTop+160)
	c.y = c.homeY
	if rng.Float64() < 0.5 {
		c.wanderDir = -1
	}
	c.fireTimer = rollTimer(rng, 2.4, 4.8)
	return c
}

func (c *capturer) update(dt float64, env *hostileEnv) bool {
	c.age += dt
	c.updateFiring(dt, env)

	switch c.state {
	case capturerPatrolling:
		c.patrol(dt, env)
	case capturerDescending:
		c.descend(dt, env)
	case capturerAscending:
		return c.ascend(dt, env)
	}
	return true
}

func (c *capturer) updateFiring(dt float64, env *hostileEnv) {
	c.fireTimer -= dt
	if c.fireTimer <= 0 {
		c.aimAtPlayer(env, CapturerShotSpeed)
		c.fireTimer = rollTimer(env.rng, 2.4, 4.8)
	}
}

// targetValid checks that the claimed colonist is still standing on the
// ground and still reserved for this capturer.
func (c *capturer) targetValid(env *hostileEnv) *colonist {
	if c.target == 0 {
		return nil
	}
	col := env.colonistByID(c.target)
	if col == nil || col.state != colonistGround {
		return nil
	}
	if col.carrier != 0 && col.carrier != c.id {
		return nil
	}
	if col.reservedBy != 0 && col.reservedBy != c.id {
		return nil
	}
	return col
}

func (c *capturer) dropTarget(env *hostileEnv) {
	if c.target != 0 {
		if col := env.colonistByID(c.target); col != nil {
			col.releaseReservation(c.id)
		}
		c.target = 0
	}
}

func (c *capturer) patrol(dt float64, env *hostileEnv) {
	// Glide back to home altitude after an interrupted grab.
	if c.y < c.homeY {
		c.y = math.Min(c.homeY, c.y+CapturerDescentRate*dt)
	} else if c.y > c.homeY {
		c.y = math.Max(c.homeY, c.y-CapturerAscentSpeed*dt)
	}

	target := c.targetValid(env)
	if target == nil {
		c.dropTarget(env)
		target = c.findTarget(env)
	}

	if target == nil {
		// Nothing to grab, wander at reduced speed.
		if env.rng.Float64() < 0.02 {
			c.wanderDir = -c.wanderDir
		}
		c.x = Wrap(c.x + float64(c.wanderDir)*CapturerSpeed*0.4*dt)
		return
	}

	off := ShortestOffset(target.x, c.x)
	if math.Abs(off) <= 6 {
		c.state = capturerDescending
		return
	}
	step := CapturerSpeed * dt
	if math.Abs(off) < step {
		step = math.Abs(off)
	}
	if off < 0 {
		step = -step
	}
	c.x = Wrap(c.x + step)
}

// findTarget reserves the nearest unclaimed ground colonist.
func (c *capturer) findTarget(env *hostileEnv) *colonist {
	var best *colonist
	bestDist := math.MaxFloat64
	for _, col := range env.colonists {
		if col.state != colonistGround || (col.reservedBy != 0 && col.reservedBy != c.id) {
			continue
		}
		if d := math.Abs(ShortestOffset(col.x, c.x)); d < bestDist {
			best, bestDist = col, d
		}
	}
	if best == nil || !best.reserve(c.id) {
		return nil
	}
	c.target = best.id
	return best
}

func (c *capturer) descend(dt float64, env *hostileEnv) {
	target := c.targetValid(env)
	if target == nil {
		c.dropTarget(env)
		c.state = capturerPatrolling
		return
	}

	hover := target.y - (c.h/2 + ColonistHeight/2 - 6)
	c.y += CapturerDescentRate * dt
	if c.y >= hover {
		c.y = hover
		target.capture(c.id)
		c.captive = c.target
		c.target = 0
		c.state = capturerAscending
	}
}

func (c *capturer) ascend(dt float64, env *hostileEnv) bool {
	c.y -= CapturerAscentSpeed * dt
	c.x = Wrap(c.x + rollTimer(env.rng, -40, 40)*dt)

	ceiling := math.Max(CapturerMinAltitude, PlayfieldTop)
	if c.y > ceiling {
		return true
	}

	// Reached the top with the captive: both transform into a mutant.
	if col := env.colonistByID(c.captive); col != nil {
		col.die()
	}
	env.spawnMutant(c.x, c.y)
	env.sound("mutate")
	return false
}

// onCaptiveRemoved reacts to the held or targeted colonist disappearing
// (rescued, shot, or dead). The capturer picks a fresh wander direction
// and glides back into the patrol band.
func (c *capturer) onCaptiveRemoved(rng *rand.Rand) {
	if c.state == capturerDescending || c.state == capturerAscending {
		c.state = capturerPatrolling
		c.homeY = clampf(c.y, PlayfieldTop+40, PlayfieldTop+160)
	}
	c.wanderDir = 1
	if rng.Float64() < 0.5 {
		c.wanderDir = -1
	}
	c.target = 0
	c.captive = 0
}

// mutant is a corrupted capturer that hounds the player directly.
type mutant struct {
	hostileBase
}

func newMutant(id EntityID, rng *rand.Rand, x, y float64) *mutant {
	m := &mutant{
		hostileBase: hostileBase{
			id:     id,
			kind:   KindMutant,
			x:      Wrap(x),
			y:      clampf(y, PlayfieldTop+20, ScreenHeight-80),
			w:      28,
			h:      28,
			health: 2,
			points: MutantPoints,
		},
	}
	m.fireTimer = rollTimer(rng, 1.2, 2.0)
	return m
}

func (m *mutant) update(dt float64, env *hostileEnv) bool {
	m.age += dt

	dx := ShortestOffset(env.playerX, m.x)
	dir := 1.0
	if dx < 0 {
		dir = -1
	}
	m.x = Wrap(m.x + dir*MutantSpeed*dt + rollTimer(env.rng, -60, 60)*dt)

	// Drift toward the player's altitude with a bias back to home height.
	targetY := env.playerY*0.7 + MutantHomeY*0.3
	if m.y < targetY {
		m.y += 90 * dt
	} else {
		m.y -= 90 * dt
	}
	m.y = clampf(m.y+rollTimer(env.rng, -40, 40)*dt, PlayfieldTop+20, ScreenHeight-80)

	m.fireTimer -= dt
	if m.fireTimer <= 0 {
		m.aimAtPlayer(env, MutantShotSpeed)
		m.fireTimer = rollTimer(env.rng, 1.2, 2.0)
	}
	return true
}

// bomber cruises horizontally and seeds the sky with drifting mines.
type bomber struct {
	hostileBase
	dir       int
	dropTimer float64
}

func newBomber(id EntityID, rng *rand.Rand, x float64) *bomber {
	b := &bomber{
		hostileBase: hostileBase{
			id:     id,
			kind:   KindBomber,
			x:      Wrap(x),
			y:      rollTimer(rng, PlayfieldTop+80, PlayfieldTop+180),
			w:      24,
			h:      24,
			health: 1,
			points: BomberPoints,
		},
		dir: 1,
	}
	if rng.Float64() < 0.5 {
		b.dir = -1
	}
	b.dropTimer = rollTimer(rng, 1.8, 3.6)
	return b
}

func (b *bomber) update(dt float64, env *hostileEnv) bool {
	b.age += dt
	b.x = Wrap(b.x + float64(b.dir)*BomberSpeed*dt)
	b.y = clampf(b.y+math.Sin(b.age*2)*20*dt, PlayfieldTop+60, ScreenHeight-140)

	b.dropTimer -= dt
	if b.dropTimer <= 0 {
		env.dropMine(b.x, b.y+20)
		env.sound("mine")
		b.dropTimer = rollTimer(env.rng, 1.8, 3.6)
	}
	return true
}

// pod is a slow carrier that bursts into a swarm when destroyed.
type pod struct {
	hostileBase
	dir int
}

func newPod(id EntityID, rng *rand.Rand, x float64) *pod {
	p := &pod{
		hostileBase: hostileBase{
			id:     id,
			kind:   KindPod,
			x:      Wrap(x),
			y:      rollTimer(rng, PlayfieldTop+100, PlayfieldTop+220),
			w:      28,
			h:      28,
			health: 1,
			points: PodPoints,
		},
		dir: 1,
	}
	if rng.Float64() < 0.5 {
		p.dir = -1
	}
	return p
}

func (p *pod) update(dt float64, env *hostileEnv) bool {
	p.age += dt
	if env.rng.Float64() < 0.01 {
		p.dir = -p.dir
	}
	p.x = Wrap(p.x + float64(p.dir)*PodSpeed*dt)
	p.y = clampf(p.y+math.Sin(p.age*2+p.x*0.01)*90*dt, PlayfieldTop+80, PlayfieldTop+240)
	return true
}

// swarmer is a fast, fragile chaser released from a destroyed pod.
type swarmer struct {
	hostileBase
}

func newSwarmer(id EntityID, x, y float64) *swarmer {
	return &swarmer{
		hostileBase: hostileBase{
			id:     id,
			kind:   KindSwarmer,
			x:      Wrap(x),
			y:      clampf(y, PlayfieldTop+20, ScreenHeight-140),
			w:      12,
			h:      16,
			health: 1,
			points: SwarmerPoints,
		},
	}
}

func (s *swarmer) update(dt float64, env *hostileEnv) bool {
	s.age += dt
	dx, dy := normalize2(ShortestOffset(env.playerX, s.x), env.playerY-s.y)
	s.x = Wrap(s.x + dx*SwarmerSpeed*dt + rollTimer(env.rng, -80, 80)*dt)
	s.y = clampf(s.y+dy*SwarmerSpeed*dt, PlayfieldTop+20, ScreenHeight-140)
	return true
}

// hunter is the late-wave pursuer that punishes slow play.
type hunter struct {
	hostileBase
}

func newHunter(id EntityID, rng *rand.Rand, x float64) *hunter {
	h := &hunter{
		hostileBase: hostileBase{
			id:     id,
			kind:   KindHunter,
			x:      Wrap(x),
			y:      rollTimer(rng, PlayfieldTop+120, PlayfieldTop+200),
			w:      28,
			h:      16,
			health: 1,
			points: HunterPoints,
		},
	}
	h.fireTimer = rollTimer(rng, 0.9, 1.6)
	return h
}

func (h *hunter) update(dt float64, env *hostileEnv) bool {
	h.age += dt
	dx, dy := normalize2(ShortestOffset(env.playerX, h.x), env.playerY-h.y)
	h.x = Wrap(h.x + dx*HunterSpeed*dt)
	h.y = clampf(h.y+dy*HunterSpeed*dt, PlayfieldTop+40, ScreenHeight-140)

	h.fireTimer -= dt
	if h.fireTimer <= 0 {
		h.aimAtPlayer(env, MutantShotSpeed)
		h.fireTimer = rollTimer(env.rng, 0.9, 1.6)
	}
	return true
}
