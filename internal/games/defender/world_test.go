package defender

import (
	"math"
	"testing"
)

func TestWrapRange(t *testing.T) {
	tests := []struct {
		in, expected float64
	}{
		{0, 0},
		{100, 100},
		{WorldWidth, 0},
		{WorldWidth + 250, 250},
		{-1, WorldWidth - 1},
		{-WorldWidth - 5, WorldWidth - 5},
		{3 * WorldWidth, 0},
	}

	for _, tc := range tests {
		got := Wrap(tc.in)
		if math.Abs(got-tc.expected) > 1e-9 {
			t.Errorf("Wrap(%v) = %v, expected %v", tc.in, got, tc.expected)
		}
	}
}

func TestWrapIdempotent(t *testing.T) {
	for _, x := range []float64{-12345.6, -1, 0, 17.5, 5999.9, 6000, 98765.4} {
		once := Wrap(x)
		twice := Wrap(once)
		if once < 0 || once >= WorldWidth {
			t.Errorf("Wrap(%v) = %v, outside [0, %v)", x, once, WorldWidth)
		}
		if once != twice {
			t.Errorf("Wrap not idempotent for %v: %v != %v", x, once, twice)
		}
	}
}

func TestShortestOffsetBounds(t *testing.T) {
	half := WorldWidth / 2
	for _, a := range []float64{0, 10, 2999, 3000, 3001, 5999} {
		for _, b := range []float64{0, 500, 2999, 3000, 5500} {
			off := ShortestOffset(a, b)
			if off <= -half || off > half {
				t.Errorf("ShortestOffset(%v, %v) = %v, outside (-%v, %v]", a, b, off, half, half)
			}
			// Travelling by the offset must arrive at a.
			if dest := Wrap(b + off); math.Abs(dest-Wrap(a)) > 1e-6 {
				t.Errorf("ShortestOffset(%v, %v): b+off = %v, expected %v", a, b, dest, Wrap(a))
			}
		}
	}
}

func TestShortestOffsetPicksNearSide(t *testing.T) {
	// Crossing the seam should be shorter than going the long way around.
	off := ShortestOffset(100, WorldWidth-100)
	if off != 200 {
		t.Errorf("ShortestOffset(100, %v) = %v, expected 200", WorldWidth-100, off)
	}
	off = ShortestOffset(WorldWidth-100, 100)
	if off != -200 {
		t.Errorf("ShortestOffset(%v, 100) = %v, expected -200", WorldWidth-100, off)
	}
}

func TestTerrainYPeriodicAndBounded(t *testing.T) {
	maxAmp := GroundPrimaryAmplitude + GroundSecondaryAmplitude
	for x := 0.0; x < WorldWidth; x += 97.3 {
		y := TerrainY(x)
		if y < GroundBaseline-maxAmp || y > GroundBaseline+maxAmp {
			t.Errorf("TerrainY(%v) = %v, outside baseline +/- %v", x, y, maxAmp)
		}
		if wrapped := TerrainY(x + WorldWidth); math.Abs(wrapped-y) > 1e-6 {
			t.Errorf("TerrainY not periodic at %v: %v != %v", x, y, wrapped)
		}
	}
}

func TestWorldToScreenCentersCamera(t *testing.T) {
	if got := WorldToScreen(1000, 1000); got != ScreenWidth/2 {
		t.Errorf("WorldToScreen(camera, camera) = %v, expected %v", got, ScreenWidth/2)
	}
	if got := WorldToScreen(1100, 1000); got != ScreenWidth/2+100 {
		t.Errorf("WorldToScreen(+100) = %v, expected %v", got, ScreenWidth/2+100)
	}
	// Across the seam.
	if got := WorldToScreen(50, WorldWidth-50); got != ScreenWidth/2+100 {
		t.Errorf("WorldToScreen across seam = %v, expected %v", got, ScreenWidth/2+100)
	}
}
