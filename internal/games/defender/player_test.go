package defender

import (
	"math"
	"testing"
)

func stepPlayer(p *player, seconds, moveX, moveY float64) {
	steps := int(seconds / testDT)
	for i := 0; i < steps; i++ {
		p.update(testDT, moveX, moveY)
	}
}

func TestPlayerCruisesWithoutInput(t *testing.T) {
	p := newPlayer(1)

	stepPlayer(p, 1.0, 0, 0)
	if p.vx != PlayerCruiseSpeed {
		t.Errorf("idle vx = %v, expected cruise %v", p.vx, PlayerCruiseSpeed)
	}
	if p.dir != 1 {
		t.Errorf("dir = %d, expected 1", p.dir)
	}
}

func TestPlayerAcceleratesAndDampsBackToCruise(t *testing.T) {
	p := newPlayer(1)

	stepPlayer(p, 3.0, 1, 0)
	if math.Abs(p.vx-PlayerMaxSpeed) > 1 {
		t.Errorf("throttled vx = %v, expected near max %v", p.vx, PlayerMaxSpeed)
	}

	stepPlayer(p, 3.0, 0, 0)
	if p.vx != PlayerCruiseSpeed {
		t.Errorf("damped vx = %v, expected cruise %v", p.vx, PlayerCruiseSpeed)
	}
}

func TestPlayerVerticalClamp(t *testing.T) {
	p := newPlayer(1)

	stepPlayer(p, 10.0, 0, -1)
	if p.y != PlayfieldTop {
		t.Errorf("top clamp y = %v, expected %v", p.y, float64(PlayfieldTop))
	}

	stepPlayer(p, 10.0, 0, 1)
	if p.y != ScreenHeight-40 {
		t.Errorf("bottom clamp y = %v, expected %v", p.y, ScreenHeight-40.0)
	}
}

func TestPlayerReverseTraverse(t *testing.T) {
	p := newPlayer(1)
	stepPlayer(p, 3.0, 1, 0)
	banked := math.Abs(p.vx)
	startX := p.x

	p.update(testDT, -1, 0)
	if !p.reversing {
		t.Fatal("opposing input should start the turn-around traverse")
	}
	if p.dir != 1 {
		t.Error("direction must not flip until the traverse completes")
	}

	// Hull holds position during the traverse.
	stepPlayer(p, reverseDuration/2, -1, 0)
	if off := math.Abs(ShortestOffset(p.x, startX)); off > 25 {
		t.Errorf("hull drifted %v during traverse, expected near-zero", off)
	}
	if p.reversing && math.Abs(p.leadCurrent-p.leadStart) < 1 {
		t.Error("camera lead should be sweeping during the traverse")
	}

	stepPlayer(p, reverseDuration, -1, 0)
	if p.reversing {
		t.Fatal("traverse should be complete")
	}
	if p.dir != -1 {
		t.Errorf("dir = %d, expected -1 after traverse", p.dir)
	}
	if p.vx > 0 {
		t.Errorf("vx = %v, expected leftward motion", p.vx)
	}
	if math.Abs(p.vx) < banked-PlayerEngineDamping {
		t.Errorf("banked speed lost: |vx| = %v, banked %v", math.Abs(p.vx), banked)
	}
	wantLead := -ScreenWidth * cameraLeadRatio
	if math.Abs(p.leadCurrent-wantLead) > 1 {
		t.Errorf("lead = %v, expected %v", p.leadCurrent, wantLead)
	}
}

func TestPlayerFireCooldown(t *testing.T) {
	p := newPlayer(1)

	b := p.fire()
	if b == nil {
		t.Fatal("first shot should fire")
	}
	wantX := Wrap(p.x + PlayerWidth/2 - 2)
	if b.x != wantX {
		t.Errorf("muzzle x = %v, expected %v", b.x, wantX)
	}
	if b.vx != PlayerShotSpeed {
		t.Errorf("beam vx = %v, expected %v", b.vx, PlayerShotSpeed)
	}

	if p.fire() != nil {
		t.Error("second shot inside the cooldown window should be blocked")
	}

	stepPlayer(p, PlayerFireCooldown+testDT, 0, 0)
	if p.fire() == nil {
		t.Error("shot after cooldown should fire")
	}
}

func TestPlayerDeathAndRespawn(t *testing.T) {
	p := newPlayer(1)
	p.invuln = 0
	lives := p.lives

	p.beginDeath()
	if p.lives != lives-1 {
		t.Errorf("lives = %d, expected %d", p.lives, lives-1)
	}
	if !p.invisible || !p.respawnPending {
		t.Error("death should hide the ship and schedule a respawn")
	}
	if p.vulnerable() {
		t.Error("dead ship must not be vulnerable")
	}

	due := false
	for i := 0; i < int(DeathRespawnDelay/testDT)+2; i++ {
		p.update(testDT, 0, 0)
		if p.updateRespawn(testDT) {
			if due {
				t.Fatal("respawn decision fired twice")
			}
			due = true
		}
	}
	if !due {
		t.Fatal("respawn decision never fired")
	}

	p.respawn()
	if p.x != WorldWidth/2 || p.y != ScreenHeight/2 {
		t.Errorf("respawn position = (%v, %v), expected world center", p.x, p.y)
	}
	if p.invisible {
		t.Error("respawned ship should be visible")
	}
	if p.invuln < RespawnInvuln {
		t.Errorf("respawn invuln = %v, expected at least %v", p.invuln, float64(RespawnInvuln))
	}
}

func TestPlayerExtraLives(t *testing.T) {
	p := newPlayer(1)

	if p.maybeAwardExtraLife(9999) {
		t.Error("no award below the first step")
	}
	if !p.maybeAwardExtraLife(10000) {
		t.Error("award expected at the first step")
	}
	if p.lives != StartingLives+1 {
		t.Errorf("lives = %d, expected %d", p.lives, StartingLives+1)
	}
	if p.maybeAwardExtraLife(19999) {
		t.Error("no second award before the next step")
	}

	// A big score jump grants every step at once, up to the cap.
	p.maybeAwardExtraLife(1000000)
	if p.lives != MaxLives {
		t.Errorf("lives = %d, expected cap %d", p.lives, MaxLives)
	}
}

func TestPlayerWarpSequence(t *testing.T) {
	p := newPlayer(1)
	stepPlayer(p, 2.0, 1, 0)
	entryVX := p.vx

	if !p.startWarp() {
		t.Fatal("warp should start from level flight")
	}
	if p.startWarp() {
		t.Error("warp must not restart while in flight")
	}
	if !p.invisible {
		t.Error("ship should vanish at warp start")
	}

	step := func(fragments int) warpEvent {
		p.update(testDT, 0, 0)
		return p.updateWarp(testDT, fragments)
	}

	waitFor := func(want warpEvent, fragments, maxSteps int) {
		t.Helper()
		for i := 0; i < maxSteps; i++ {
			if ev := step(fragments); ev == want {
				return
			}
		}
		t.Fatalf("warp event %d never arrived", want)
	}

	waitFor(warpEventJump, 0, 20)
	p.completeJump(4200, 400)
	if p.x != 4200 || p.y != 400 {
		t.Errorf("jump landed at (%v, %v), expected (4200, 400)", p.x, p.y)
	}
	if p.vx != PlayerCruiseSpeed*float64(p.dir) {
		t.Errorf("post-jump vx = %v, expected cruise", p.vx)
	}

	waitFor(warpEventReappear, 0, 20)

	// Reappearance stalls while reentry fragments are still inbound.
	for i := 0; i < 30; i++ {
		step(3)
	}
	if p.warp.phase != warpReappear {
		t.Error("ship must wait for fragments before stabilizing")
	}

	waitFor(warpEventFinished, 0, 60)
	if p.warp.active() {
		t.Error("warp should be idle after finishing")
	}
	if p.invisible {
		t.Error("ship should be visible after stabilizing")
	}
	if p.warp.cooldown != WarpCooldown {
		t.Errorf("cooldown = %v, expected %v", p.warp.cooldown, float64(WarpCooldown))
	}
	if math.Abs(p.vx-entryVX) > PlayerEngineDamping {
		t.Errorf("restored vx = %v, expected near entry %v", p.vx, entryVX)
	}
	if p.pendingSpeed != 0 {
		t.Errorf("pendingSpeed = %v, expected the entry value restored", p.pendingSpeed)
	}

	if p.startWarp() {
		t.Error("warp must respect the cooldown")
	}
	stepPlayer(p, WarpCooldown+0.1, 0, 0)
	if !p.startWarp() {
		t.Error("warp should be available after the cooldown")
	}
}
