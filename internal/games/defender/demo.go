package defender

import (
	"math"

	"github.com/vovakirdan/defender-tui/internal/core"
)

// autopilotStage sequences the attract-mode script: let a capturer grab a
// colonist, shoot it down, catch the faller, return it home, then stand
// back and let one abduction complete before looping.
type autopilotStage int

const (
	stagePrimeCapture autopilotStage = iota
	stageRescue
	stagePickup
	stageDeliver
	stageAllowMutate
	stageFinished
)

const finishedStageTime = 8.0

// autopilot drives the demo by synthesizing input frames from world
// state. It only reads the simulation; all effects flow through the same
// input path a human uses.
type autopilot struct {
	stage      autopilotStage
	stageTimer float64
	ticks      int
	target     EntityID

	moveX, moveY float64
}

func newAutopilot() *autopilot {
	return &autopilot{stage: stagePrimeCapture}
}

// seek accumulates a clamped pull toward a screen-relative offset.
func (a *autopilot) seek(dx, dy, weight float64) {
	a.moveX += clampf(dx, -180, 180) / 180 * weight
	a.moveY += clampf(dy, -120, 120) / 120 * weight
}

// frame produces this tick's synthetic input.
func (a *autopilot) frame(g *Game) core.InputFrame {
	a.ticks++
	a.stageTimer += g.dt
	a.moveX, a.moveY = 0, 0
	fire := false

	switch a.stage {
	case stagePrimeCapture:
		a.primeCapture(g)
	case stageRescue:
		fire = a.rescue(g)
	case stagePickup:
		a.pickup(g)
	case stageDeliver:
		a.deliver(g)
	case stageAllowMutate:
		a.allowMutate(g)
	case stageFinished:
		if a.stageTimer >= finishedStageTime {
			a.enter(stagePrimeCapture)
		}
	}

	a.avoid(g)

	in := core.NewInputFrame()
	if a.moveX < -0.18 {
		in.Set(core.ActionLeft)
	} else if a.moveX > 0.18 {
		in.Set(core.ActionRight)
	}
	if a.moveY < -0.18 {
		in.Set(core.ActionUp)
	} else if a.moveY > 0.18 {
		in.Set(core.ActionDown)
	}
	if fire || (a.ticks/300)%3 == 0 {
		in.Set(core.ActionFire)
	}
	return in
}

func (a *autopilot) enter(s autopilotStage) {
	a.stage = s
	a.stageTimer = 0
	a.target = 0
}

// primeCapture loiters mid-field until a capturer has hauled a colonist
// off the ground.
func (a *autopilot) primeCapture(g *Game) {
	a.seek(ShortestOffset(WorldWidth/2, g.player.x)*0.2, (ScreenHeight/2)-g.player.y, 0.5)

	for _, h := range g.hostiles {
		if c, ok := h.(*capturer); ok && c.state == capturerAscending && c.captive != 0 {
			a.target = c.base().id
			a.enterKeepTarget(stageRescue, c.base().id)
			return
		}
	}
}

func (a *autopilot) enterKeepTarget(s autopilotStage, target EntityID) {
	a.stage = s
	a.stageTimer = 0
	a.target = target
}

// rescue chases the abductor and fires once lined up. Returns whether to
// hold the trigger.
func (a *autopilot) rescue(g *Game) bool {
	h := g.hostileByID(a.target)
	if h == nil {
		// Abductor gone; a faller should exist.
		a.enter(stagePickup)
		return false
	}
	b := h.base()
	dx := ShortestOffset(b.x, g.player.x)
	dy := b.y - g.player.y
	a.seek(dx, dy, 1.2)
	return math.Abs(dx) < 140 && math.Abs(dy) < 120
}

// pickup dives for the falling colonist.
func (a *autopilot) pickup(g *Game) {
	if g.player.carrying != 0 {
		a.enter(stageDeliver)
		return
	}
	var faller *colonist
	for _, c := range g.colonists {
		if c.state == colonistFalling {
			faller = c
			break
		}
	}
	if faller == nil {
		a.enter(stageAllowMutate)
		return
	}
	a.seek(ShortestOffset(faller.x, g.player.x), faller.y-g.player.y, 1.4)
}

// deliver carries the passenger down to the surface.
func (a *autopilot) deliver(g *Game) {
	if g.player.carrying == 0 {
		a.enter(stageAllowMutate)
		return
	}
	ground := TerrainY(g.player.x) - ColonistHeight - 20
	a.seek(0, ground-g.player.y, 1.2)
}

// allowMutate backs off and lets one abduction finish.
func (a *autopilot) allowMutate(g *Game) {
	a.seek(0, (PlayfieldTop+120)-g.player.y, 0.6)
	for _, h := range g.hostiles {
		if h.base().kind == KindMutant {
			a.enter(stageFinished)
			return
		}
	}
	if a.stageTimer > 20 {
		a.enter(stageFinished)
	}
}

// avoid repels the ship from incoming fire and nearby hostiles.
func (a *autopilot) avoid(g *Game) {
	px := WorldToScreen(g.player.x, g.cameraX)
	for _, s := range g.shots {
		sx := WorldToScreen(s.x, g.cameraX)
		d := math.Hypot(sx-px, s.y-g.player.y)
		if d < 180 && d > 0 {
			w := 1.4 - d/180
			a.moveX += (px - sx) / d * w
			a.moveY += (g.player.y - s.y) / d * w
		}
	}
	for _, h := range g.hostiles {
		b := h.base()
		if b.id == a.target {
			continue
		}
		hx := WorldToScreen(b.x, g.cameraX)
		d := math.Hypot(hx-px, b.y-g.player.y)
		if d < 200 && d > 0 {
			w := 1.2 - d/200
			a.moveX += (px - hx) / d * w
			a.moveY += (g.player.y - b.y) / d * w
		}
	}
}
