package defender

import "testing"

const testDT = 1.0 / 60.0

// fallUntilLanding drops the colonist from height above its landing spot
// and steps gravity until it touches down.
func fallUntilLanding(t *testing.T, c *colonist, height float64) landingOutcome {
	t.Helper()
	ground := TerrainY(c.x) - ColonistHeight/2
	c.y = ground - height
	c.startFalling()

	for i := 0; i < 100000; i++ {
		if outcome := c.updateFall(testDT); outcome != landingNone {
			return outcome
		}
	}
	t.Fatal("colonist never landed")
	return landingNone
}

func TestColonistReservationExclusive(t *testing.T) {
	c := newColonist(1, 300)

	if !c.reserve(10) {
		t.Fatal("first reservation should succeed")
	}
	if c.reserve(20) {
		t.Error("second capturer must not steal an existing reservation")
	}
	if !c.reserve(10) {
		t.Error("re-reserving by the holder should succeed")
	}

	// Only the holder can release.
	c.releaseReservation(20)
	if c.reservedBy != 10 {
		t.Error("release by a non-holder should be ignored")
	}
	c.releaseReservation(10)
	if c.reservedBy != 0 {
		t.Error("release by the holder should clear the reservation")
	}

	if !c.reserve(20) {
		t.Error("reservation should be available again after release")
	}

	// Zero force-clears regardless of holder.
	c.releaseReservation(0)
	if c.reservedBy != 0 {
		t.Error("zero ID should force-clear the reservation")
	}
}

func TestColonistReserveRequiresGround(t *testing.T) {
	c := newColonist(1, 300)
	c.startFalling()
	if c.reserve(10) {
		t.Error("falling colonist must not be reservable")
	}

	c.placeOnGround()
	c.capture(5)
	if c.reserve(10) {
		t.Error("captured colonist must not be reservable")
	}
}

func TestColonistCaptureClearsReservation(t *testing.T) {
	c := newColonist(1, 300)
	c.reserve(10)
	c.capture(10)

	if c.state != colonistCaptured {
		t.Errorf("state = %v, expected captured", c.state)
	}
	if c.carrier != 10 {
		t.Errorf("carrier = %d, expected 10", c.carrier)
	}
	if c.reservedBy != 0 {
		t.Error("capture should consume the reservation")
	}
}

func TestColonistShortFallLandsWithReward(t *testing.T) {
	c := newColonist(1, 0)

	outcome := fallUntilLanding(t, c, 100)
	if outcome != landingRewarded {
		t.Errorf("outcome = %v, expected rewarded landing", outcome)
	}
	if c.state != colonistGround {
		t.Errorf("state = %v, expected ground", c.state)
	}
	if ground := TerrainY(c.x) - ColonistHeight/2; c.y != ground {
		t.Errorf("y = %v, expected snapped to ground %v", c.y, ground)
	}
}

func TestColonistFallRewardIsOneShotPerFall(t *testing.T) {
	c := newColonist(1, 0)

	if outcome := fallUntilLanding(t, c, 80); outcome != landingRewarded {
		t.Fatalf("first fall outcome = %v, expected rewarded", outcome)
	}

	// Landing again without a fresh fall pays nothing; a new fall re-arms.
	if outcome := fallUntilLanding(t, c, 80); outcome != landingRewarded {
		t.Errorf("second distinct fall outcome = %v, expected rewarded", outcome)
	}
}

func TestColonistLethalFall(t *testing.T) {
	c := newColonist(1, 0)

	outcome := fallUntilLanding(t, c, lethalDropHeight+40)
	if outcome != landingLethal {
		t.Errorf("outcome = %v, expected lethal landing", outcome)
	}
	if c.alive() {
		t.Error("colonist should be dead after a lethal fall")
	}
}

func TestColonistCatastrophicFall(t *testing.T) {
	c := newColonist(1, 0)

	outcome := fallUntilLanding(t, c, fallSpan*catastrophicDropRate+40)
	if outcome != landingCatastrophic {
		t.Errorf("outcome = %v, expected catastrophic landing", outcome)
	}
	if c.alive() {
		t.Error("colonist should be dead after a catastrophic fall")
	}
}

func TestColonistFollowCarrierOffsets(t *testing.T) {
	c := newColonist(1, 500)
	c.capture(9)
	c.followCarrier(520, 300, 28)

	if c.x != 520 {
		t.Errorf("captured x = %v, expected 520", c.x)
	}
	wantY := 300.0 + 14 + ColonistHeight/2 - 4
	if c.y != wantY {
		t.Errorf("captured y = %v, expected %v", c.y, wantY)
	}

	c.pickUp(1)
	c.followCarrier(520, 300, 20)
	wantY = 300.0 + 10 + ColonistHeight/2 - 6
	if c.y != wantY {
		t.Errorf("carried y = %v, expected %v", c.y, wantY)
	}
}

func TestColonistDieClearsReferences(t *testing.T) {
	c := newColonist(1, 100)
	c.reserve(7)
	c.capture(7)
	c.die()

	if c.alive() {
		t.Error("die should mark the colonist dead")
	}
	if c.carrier != 0 || c.reservedBy != 0 {
		t.Error("die should clear carrier and reservation")
	}
}
