// Package defender implements a side-scrolling planet-rescue shooter.
// The simulation runs in a fixed world frame (1180x760 units) on a
// horizontally wrapping world line, independent of terminal size; the
// renderer projects world units onto the screen buffer.
package defender

import "math"

// World and reference-frame dimensions, in world units.
const (
	ScreenWidth  = 1180.0
	ScreenHeight = 760.0
	WorldWidth   = 6000.0
	HUDHeight    = 110.0
	PlayfieldTop = HUDHeight + 60
)

// Terrain shape parameters.
const (
	GroundBaseline           = ScreenHeight - 110
	GroundPrimaryAmplitude   = 55.0
	GroundSecondaryAmplitude = 28.0
)

// Wrap normalizes a world X coordinate into [0, WorldWidth).
func Wrap(x float64) float64 {
	x = math.Mod(x, WorldWidth)
	if x < 0 {
		x += WorldWidth
	}
	return x
}

// ShortestOffset returns the signed shortest wrapped offset from b to a.
// The result is in (-WorldWidth/2, WorldWidth/2].
func ShortestOffset(a, b float64) float64 {
	raw := math.Mod(a-b, WorldWidth)
	if raw < 0 {
		raw += WorldWidth
	}
	if raw > WorldWidth/2 {
		raw -= WorldWidth
	}
	return raw
}

// TerrainY computes the rolling landscape surface Y for a given world X.
// Larger Y is lower on screen.
func TerrainY(x float64) float64 {
	x = Wrap(x)
	primary := math.Sin(x*0.004) * GroundPrimaryAmplitude
	secondary := math.Sin(x*0.0017+1.4) * GroundSecondaryAmplitude
	return GroundBaseline + primary + secondary
}

// WorldToScreen converts a world X to a reference-frame screen X using the
// wrapped offset from the camera.
func WorldToScreen(x, cameraX float64) float64 {
	return ShortestOffset(x, cameraX) + ScreenWidth/2
}

func clampf(v, lo, hi float64) float64 {
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}
