package defender

import "math"

// colonistState tracks where a colonist is in the abduction lifecycle.
type colonistState int

const (
	colonistGround colonistState = iota
	colonistCaptured
	colonistCarried
	colonistFalling
	colonistDead
)

func (s colonistState) String() string {
	switch s {
	case colonistGround:
		return "ground"
	case colonistCaptured:
		return "captured"
	case colonistCarried:
		return "carried"
	case colonistFalling:
		return "falling"
	case colonistDead:
		return "dead"
	default:
		return "unknown"
	}
}

// Colonist fall physics and sizing.
const (
	ColonistWidth    = 10.0
	ColonistHeight   = 24.0
	ColonistGravity  = 168.0
	ColonistTerminal = 480.0
	ColonistCount    = 10
)

// Fall outcome thresholds as fractions of the playable vertical span.
const (
	fallSpan             = ScreenHeight - PlayfieldTop
	lethalDropHeight     = fallSpan / 3
	catastrophicDropRate = 0.75
)

// landingOutcome classifies what happened when a falling colonist touched
// the ground.
type landingOutcome int

const (
	landingNone landingOutcome = iota
	landingSafe
	landingRewarded
	landingLethal
	landingCatastrophic
)

// colonist is a ground inhabitant that capturers abduct and the player
// rescues. Cross-references to the abductor and the rescuer are held as
// entity IDs so a destroyed carrier cannot dangle.
type colonist struct {
	id    EntityID
	x, y  float64
	state colonistState

	// carrier is the capturer (while captured) or the player (while
	// carried) holding this colonist.
	carrier EntityID

	// reservedBy is the capturer that claimed this colonist as a target.
	// At most one capturer holds the reservation at a time.
	reservedBy EntityID

	fallSpeed  float64
	dropStartY float64

	// rewarded gates the soft-landing bonus so one fall pays at most once.
	rewarded bool
}

func newColonist(id EntityID, x float64) *colonist {
	c := &colonist{
		id:       id,
		x:        Wrap(x),
		state:    colonistGround,
		rewarded: true,
	}
	c.y = TerrainY(c.x) - ColonistHeight/2
	return c
}

func (c *colonist) alive() bool {
	return c.state != colonistDead
}

// reserve claims the colonist for a capturer. It succeeds only while the
// colonist stands on the ground and is unreserved or already claimed by
// the same capturer.
func (c *colonist) reserve(by EntityID) bool {
	if c.state != colonistGround {
		return false
	}
	if c.reservedBy != 0 && c.reservedBy != by {
		return false
	}
	c.reservedBy = by
	return true
}

// releaseReservation drops the claim. A zero ID force-clears; otherwise
// only the holder can release.
func (c *colonist) releaseReservation(by EntityID) {
	if by == 0 || c.reservedBy == by {
		c.reservedBy = 0
	}
}

// capture attaches the colonist to an abductor.
func (c *colonist) capture(by EntityID) {
	c.state = colonistCaptured
	c.carrier = by
	c.reservedBy = 0
}

// pickUp attaches a falling colonist to the player ship.
func (c *colonist) pickUp(player EntityID) {
	c.state = colonistCarried
	c.carrier = player
	c.fallSpeed = 0
}

// startFalling releases the colonist into free fall from its current
// position. Arms the soft-landing reward for this fall.
func (c *colonist) startFalling() {
	if c.state == colonistDead {
		return
	}
	c.state = colonistFalling
	c.carrier = 0
	c.reservedBy = 0
	c.fallSpeed = 0
	c.dropStartY = c.y
	c.rewarded = false
}

// placeOnGround settles the colonist onto the terrain under its current X.
func (c *colonist) placeOnGround() {
	c.state = colonistGround
	c.carrier = 0
	c.fallSpeed = 0
	c.y = TerrainY(c.x) - ColonistHeight/2
}

// followCarrier keeps a held colonist glued below its carrier.
func (c *colonist) followCarrier(carrierX, carrierY, carrierH float64) {
	c.x = Wrap(carrierX)
	switch c.state {
	case colonistCaptured:
		c.y = carrierY + carrierH/2 + ColonistHeight/2 - 4
	case colonistCarried:
		c.y = carrierY + carrierH/2 + ColonistHeight/2 - 6
	}
}

// updateFall advances gravity for a falling colonist and classifies the
// landing once the ground is reached. Returns landingNone while airborne.
func (c *colonist) updateFall(dt float64) landingOutcome {
	if c.state != colonistFalling {
		return landingNone
	}

	c.fallSpeed = clampf(c.fallSpeed+ColonistGravity*dt, 0, ColonistTerminal)
	c.y += c.fallSpeed * dt

	ground := TerrainY(c.x) - ColonistHeight/2
	if c.y < ground {
		return landingNone
	}
	c.y = ground

	dropHeight := math.Max(0, ground-c.dropStartY)

	if dropHeight >= fallSpan*catastrophicDropRate {
		c.die()
		return landingCatastrophic
	}
	if dropHeight > lethalDropHeight {
		c.die()
		return landingLethal
	}

	c.placeOnGround()
	if !c.rewarded {
		c.rewarded = true
		return landingRewarded
	}
	return landingSafe
}

func (c *colonist) die() {
	c.state = colonistDead
	c.carrier = 0
	c.reservedBy = 0
	c.fallSpeed = 0
}

func (c *colonist) hitbox(cameraX float64) box {
	return box{X: WorldToScreen(c.x, cameraX), Y: c.y, W: ColonistWidth, H: ColonistHeight}
}
