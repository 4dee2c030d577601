package defender

import "math"

// EntityID is a stable handle used for cross-entity references. Holding an
// ID instead of a pointer keeps back-references safe across destruction; a
// zero ID means "none".
type EntityID int

// idSource hands out unique entity IDs for one session.
type idSource struct {
	next EntityID
}

func (s *idSource) alloc() EntityID {
	s.next++
	return s.next
}

// box is an axis-aligned hitbox in screen (camera) space, centered at X, Y.
type box struct {
	X, Y float64
	W, H float64
}

func (b box) left() float64   { return b.X - b.W/2 }
func (b box) right() float64  { return b.X + b.W/2 }
func (b box) top() float64    { return b.Y - b.H/2 }
func (b box) bottom() float64 { return b.Y + b.H/2 }

func (b box) overlaps(o box) bool {
	if b.left() >= o.right() || o.left() >= b.right() {
		return false
	}
	if b.top() >= o.bottom() || o.top() >= b.bottom() {
		return false
	}
	return true
}

// onScreen reports whether the box is inside the visible playfield,
// expanded by margin on all sides.
func (b box) onScreen(margin float64) bool {
	return b.right() >= -margin &&
		b.left() <= ScreenWidth+margin &&
		b.bottom() >= HUDHeight-margin &&
		b.top() <= ScreenHeight+margin
}

// Player beam dimensions. The beam is anchored at its tip and extends
// backwards; its collision length shrinks as it fades.
const (
	beamBaseLength = ScreenWidth
	beamThickness  = 5.0
	beamTTL        = 0.48
)

// beam is a player laser streak. The tip travels at full shot speed while
// the trailing segment sweeps everything it passes through.
type beam struct {
	x, y   float64 // tip position, world coords
	vx     float64
	dir    int
	ttl    float64
	maxTTL float64
}

func newBeam(x, y float64, dir int) *beam {
	return &beam{
		x:      x,
		y:      y,
		vx:     float64(dir) * PlayerShotSpeed,
		dir:    dir,
		ttl:    beamTTL,
		maxTTL: beamTTL,
	}
}

// length returns the current collision length of the beam.
func (b *beam) length() float64 {
	life := clampf(b.ttl/b.maxTTL, 0, 1)
	return math.Max(8, beamBaseLength*(0.15+0.85*life))
}

// update advances the beam; returns false once it has expired.
func (b *beam) update(dt float64) bool {
	b.x = Wrap(b.x + b.vx*dt)
	b.ttl -= dt
	return b.ttl > 0
}

// hitbox returns the beam's screen-space box for the given camera.
func (b *beam) hitbox(cameraX float64) box {
	tip := WorldToScreen(b.x, cameraX)
	length := b.length()
	cx := tip - float64(b.dir)*length/2
	return box{X: cx, Y: b.y, W: length, H: beamThickness}
}

// hostileShot is an aimed projectile fired by hostiles.
type hostileShot struct {
	x, y   float64
	vx, vy float64
	ttl    float64
}

const hostileShotTTL = 2.0

func newHostileShot(x, y, vx, vy float64) *hostileShot {
	return &hostileShot{x: x, y: y, vx: vx, vy: vy, ttl: hostileShotTTL}
}

func (s *hostileShot) update(dt float64) bool {
	s.x = Wrap(s.x + s.vx*dt)
	s.y += s.vy * dt
	s.ttl -= dt
	return s.ttl > 0 && s.y >= 0 && s.y <= ScreenHeight
}

func (s *hostileShot) hitbox(cameraX float64) box {
	return box{X: WorldToScreen(s.x, cameraX), Y: s.y, W: 12, H: 12}
}

// mine is a stationary hazard dropped by bombers.
type mine struct {
	x, y float64
	ttl  float64
}

const MineTTL = 12.0

func newMine(x, y float64) *mine {
	return &mine{x: x, y: y, ttl: MineTTL}
}

func (m *mine) update(dt float64) bool {
	m.ttl -= dt
	return m.ttl > 0
}

func (m *mine) hitbox(cameraX float64) box {
	return box{X: WorldToScreen(m.x, cameraX), Y: m.y, W: 12, H: 12}
}

// popup is a transient score label anchored in world space.
type popup struct {
	x, y float64
	text string
	ttl  float64
}

const popupTTL = 1.1

// normalize2 returns the unit vector for (dx, dy), or (0, 0) when degenerate.
func normalize2(dx, dy float64) (float64, float64) {
	length := math.Hypot(dx, dy)
	if length == 0 {
		return 0, 0
	}
	return dx / length, dy / length
}
