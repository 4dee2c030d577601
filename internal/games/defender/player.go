package defender

import "math"

// Player ship tuning, in world units and seconds.
const (
	PlayerWidth  = 58.0
	PlayerHeight = 20.0

	PlayerVerticalSpeed = 260.0
	PlayerAccel         = 520.0
	PlayerMaxSpeed      = 520.0
	PlayerCruiseSpeed   = 120.0
	PlayerEngineDamping = 320.0

	PlayerFireCooldown = 0.18
	PlayerShotSpeed    = 700.0

	RespawnInvuln     = 2.5
	DeathInvuln       = 2.0
	DeathRespawnDelay = 2.0

	StartingLives = 2
	MaxLives      = 5
	ExtraLifeStep = 10000

	reverseDuration = 1.35
	cameraLeadRatio = 0.25
)

// Warp (hyperspace) phase timings.
const (
	WarpCooldown      = 5.0
	warpControlsLock  = 0.12
	warpVanishTime    = 0.06
	warpJumpWaitTime  = 0.09
	warpReappearTime  = 0.06
	warpStabilizeTime = 0.09
)

type warpPhase int

const (
	warpIdle warpPhase = iota
	warpVanish
	warpJumpWait
	warpReappear
	warpStabilize
)

// warpEvent tells the caller what side effect the warp machine needs this
// tick. Jump placement and fragment bookkeeping live outside the ship.
type warpEvent int

const (
	warpEventNone warpEvent = iota
	warpEventJump
	warpEventReappear
	warpEventFinished
)

// warpState drives the hyperspace sequence. It snapshots the ship's motion
// on entry and restores it once the ship stabilizes at the exit point.
type warpState struct {
	phase    warpPhase
	timer    float64
	cooldown float64

	entryDir      int
	entryLead     float64
	entryVelocity float64
	entryPending  float64
	entryThrottle bool
}

func (w *warpState) active() bool {
	return w.phase != warpIdle
}

// player is the defender ship. Horizontal motion uses a cruise/boost
// model: the engine damps toward a signed cruise speed when unthrottled,
// and reversing direction runs a camera-led turn-around traverse instead
// of an instant flip.
type player struct {
	id   EntityID
	x, y float64
	dir  int
	vx   float64

	// Turn-around traverse. While reversing the hull holds position and
	// the camera lead sweeps to the other side.
	reversing    bool
	reverseTimer float64
	pendingDir   int
	pendingSpeed float64
	leadCurrent  float64
	leadStart    float64
	leadTarget   float64

	throttle     bool
	fireCooldown float64
	controlsLock float64

	invuln    float64
	invisible bool

	lives        int
	livesAwarded int

	// respawnPending is set between death and the respawn decision.
	respawnPending bool
	respawnTimer   float64

	// carrying is the colonist held under the hull, zero when empty.
	carrying EntityID

	warp warpState
}

func newPlayer(id EntityID) *player {
	p := &player{id: id, lives: StartingLives}
	p.spawnAtCenter()
	return p
}

func (p *player) spawnAtCenter() {
	p.x = WorldWidth / 2
	p.y = ScreenHeight / 2
	p.dir = 1
	p.vx = 0
	p.reversing = false
	p.pendingSpeed = 0
	p.throttle = false
	p.invisible = false
	p.leadCurrent = ScreenWidth * cameraLeadRatio
	p.leadTarget = p.leadCurrent
}

// cameraX is the wrapped camera anchor: the ship position plus the
// direction-dependent lead so most of the view faces travel.
func (p *player) cameraX() float64 {
	return Wrap(p.x + p.leadCurrent)
}

// beginReverse starts the turn-around traverse toward the target
// direction. Current speed is banked and paid back on completion.
func (p *player) beginReverse(target int) {
	if p.reversing || target == p.dir || target == 0 {
		return
	}
	p.reversing = true
	p.reverseTimer = 0
	p.pendingDir = target
	p.pendingSpeed = math.Max(math.Abs(p.vx), PlayerCruiseSpeed)
	p.vx = 0
	p.leadStart = p.leadCurrent
	p.leadTarget = ScreenWidth * cameraLeadRatio * float64(target)
}

func (p *player) updateReverse(dt float64) {
	p.reverseTimer += dt
	progress := clampf(p.reverseTimer/reverseDuration, 0, 1)
	smooth := 0.5 - 0.5*math.Cos(math.Pi*progress)
	p.leadCurrent = p.leadStart + (p.leadTarget-p.leadStart)*smooth

	if progress >= 1 {
		p.dir = p.pendingDir
		p.reversing = false
		p.vx = p.pendingSpeed * float64(p.dir)
		p.pendingSpeed = 0
		p.throttle = false
	}
}

// update advances ship motion for one tick. moveX/moveY are the raw input
// axes in [-1, 1].
func (p *player) update(dt, moveX, moveY float64) {
	if p.controlsLock > 0 {
		p.controlsLock = math.Max(0, p.controlsLock-dt)
		moveX, moveY = 0, 0
	}
	if p.respawnPending || p.warp.active() {
		moveX, moveY = 0, 0
	}

	p.y = clampf(p.y+moveY*PlayerVerticalSpeed*dt, PlayfieldTop, ScreenHeight-40)

	desired := 0
	if moveX > 0 {
		desired = 1
	} else if moveX < 0 {
		desired = -1
	}

	if desired != 0 && desired != p.dir && !p.reversing {
		p.beginReverse(desired)
	}

	if p.reversing {
		p.updateReverse(dt)
		p.pendingSpeed = math.Max(p.pendingSpeed, PlayerCruiseSpeed)
	} else {
		p.throttle = desired == p.dir && desired != 0
		if p.throttle {
			p.vx += float64(p.dir) * PlayerAccel * dt
			p.vx = clampf(p.vx, -PlayerMaxSpeed, PlayerMaxSpeed)
		} else {
			cruise := PlayerCruiseSpeed * float64(p.dir)
			if p.vx*float64(p.dir) > PlayerCruiseSpeed {
				p.vx -= float64(p.dir) * PlayerEngineDamping * dt
				if p.vx*float64(p.dir) < PlayerCruiseSpeed {
					p.vx = cruise
				}
			} else {
				p.vx = cruise
			}
		}
		p.x = Wrap(p.x + p.vx*dt)
		p.leadCurrent = ScreenWidth * cameraLeadRatio * float64(p.dir)
	}

	if p.fireCooldown > 0 {
		p.fireCooldown -= dt
	}
	if p.invuln > 0 {
		p.invuln = math.Max(0, p.invuln-dt)
	}
	if p.warp.cooldown > 0 && !p.warp.active() {
		p.warp.cooldown = math.Max(0, p.warp.cooldown-dt)
	}
}

// fire emits a laser beam from the nose if the cooldown allows it.
func (p *player) fire() *beam {
	if p.fireCooldown > 0 || p.invisible || p.warp.active() || p.respawnPending {
		return nil
	}
	p.fireCooldown = PlayerFireCooldown
	muzzle := Wrap(p.x + float64(p.dir)*(PlayerWidth/2-2))
	return newBeam(muzzle, p.y, p.dir)
}

// vulnerable reports whether a hit would land right now.
func (p *player) vulnerable() bool {
	return p.invuln <= 0 && !p.invisible && !p.warp.active()
}

// beginDeath takes a life and schedules the respawn decision. The caller
// handles dropping any carried colonist and the explosion effect first.
func (p *player) beginDeath() {
	p.lives--
	p.invisible = true
	p.respawnPending = true
	p.respawnTimer = DeathRespawnDelay
	p.invuln = math.Max(p.invuln, DeathRespawnDelay+DeathInvuln)
	p.carrying = 0
}

// updateRespawn counts down the death delay. It returns true exactly once
// when the respawn decision is due; the caller checks lives.
func (p *player) updateRespawn(dt float64) bool {
	if !p.respawnPending {
		return false
	}
	p.respawnTimer -= dt
	if p.respawnTimer > 0 {
		return false
	}
	p.respawnPending = false
	return true
}

func (p *player) respawn() {
	p.spawnAtCenter()
	p.invuln = RespawnInvuln + DeathInvuln
}

// maybeAwardExtraLife grants one reserve ship per score step, capped.
func (p *player) maybeAwardExtraLife(score int) bool {
	awarded := false
	for p.lives < MaxLives && score >= (p.livesAwarded+1)*ExtraLifeStep {
		p.lives++
		p.livesAwarded++
		awarded = true
	}
	return awarded
}

// startWarp begins the hyperspace sequence. Rejected while another warp
// is in flight, during cooldown, or mid death/turn-around.
func (p *player) startWarp() bool {
	if p.warp.active() || p.warp.cooldown > 0 || p.respawnPending || p.reversing {
		return false
	}
	p.warp.entryDir = p.dir
	p.warp.entryLead = p.leadCurrent
	p.warp.entryVelocity = p.vx
	p.warp.entryPending = p.pendingSpeed
	p.warp.entryThrottle = p.throttle
	p.warp.phase = warpVanish
	p.warp.timer = 0
	p.controlsLock = math.Max(p.controlsLock, warpControlsLock)
	p.invisible = true
	return true
}

// updateWarp advances the hyperspace machine. inboundFragments is the
// number of reentry particles still converging on the exit point; the
// ship does not reappear until they have all arrived.
func (p *player) updateWarp(dt float64, inboundFragments int) warpEvent {
	if !p.warp.active() {
		return warpEventNone
	}
	p.warp.timer += dt

	switch p.warp.phase {
	case warpVanish:
		if p.warp.timer >= warpVanishTime {
			p.warp.phase = warpJumpWait
			p.warp.timer = 0
			return warpEventJump
		}
	case warpJumpWait:
		if p.warp.timer >= warpJumpWaitTime {
			p.warp.phase = warpReappear
			p.warp.timer = 0
			return warpEventReappear
		}
	case warpReappear:
		if p.warp.timer >= warpReappearTime && inboundFragments == 0 {
			p.warp.phase = warpStabilize
			p.warp.timer = 0
			p.invisible = false
		}
	case warpStabilize:
		if p.warp.timer >= warpStabilizeTime {
			p.warp.phase = warpIdle
			p.warp.timer = 0
			p.vx = p.warp.entryVelocity
			p.pendingSpeed = p.warp.entryPending
			p.throttle = p.warp.entryThrottle
			p.warp.cooldown = WarpCooldown
			return warpEventFinished
		}
	}
	return warpEventNone
}

// completeJump moves the ship to the chosen exit point. Motion resumes at
// cruise in the entry direction; the camera lead carries over.
func (p *player) completeJump(x, y float64) {
	p.x = Wrap(x)
	p.y = clampf(y, PlayfieldTop, ScreenHeight-40)
	p.dir = p.warp.entryDir
	p.vx = PlayerCruiseSpeed * float64(p.dir)
	p.pendingSpeed = 0
	p.leadCurrent = p.warp.entryLead
	p.controlsLock = math.Max(p.controlsLock, warpControlsLock-warpVanishTime)
}

func (p *player) hitbox(cameraX float64) box {
	return box{X: WorldToScreen(p.x, cameraX), Y: p.y, W: PlayerWidth, H: PlayerHeight}
}
