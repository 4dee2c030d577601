package defender

import (
	"fmt"
	"math"
	"math/rand"

	"github.com/vovakirdan/defender-tui/internal/core"
)

// Starfield parallax parameters.
const (
	starLayers    = 3
	starsPerLayer = 90
)

type star struct {
	x, y  float64
	layer int
}

type starfield []star

func newStarfield(rng *rand.Rand) starfield {
	field := make(starfield, 0, starLayers*starsPerLayer)
	for layer := 0; layer < starLayers; layer++ {
		for i := 0; i < starsPerLayer; i++ {
			field = append(field, star{
				x:     rng.Float64() * WorldWidth,
				y:     PlayfieldTop + rng.Float64()*(ScreenHeight-PlayfieldTop-120),
				layer: layer,
			})
		}
	}
	return field
}

func (s star) speed() float64 {
	return 20 + float64(s.layer)*40
}

// Render projects the fixed-size world frame onto whatever cell grid the
// terminal provides.
func (g *Game) Render(dst *core.Screen) {
	w, h := dst.Width(), dst.Height()
	if w < 20 || h < 10 || g.player == nil {
		dst.DrawTextCentered(h/2, "terminal too small")
		return
	}

	px := func(worldX float64) int {
		return int(WorldToScreen(worldX, g.cameraX) / ScreenWidth * float64(w))
	}
	py := func(worldY float64) int {
		return int(worldY / ScreenHeight * float64(h))
	}

	g.drawStars(dst, w, py)
	g.drawTerrain(dst, w, h, px, py)
	g.drawMines(dst, px, py)
	g.drawColonists(dst, px, py)
	g.drawHostiles(dst, px, py)
	g.drawShots(dst, px, py)
	g.drawBeams(dst, px, py)
	g.drawFragments(dst, px, py)
	g.drawPlayer(dst, px, py)
	g.drawExplosions(dst, px, py)
	g.drawPopups(dst, px, py)
	g.drawHUD(dst, w, py)

	switch g.mode {
	case modeTitle:
		g.drawTitle(dst, h)
	case modeDemo:
		if (int(g.waveTimer*2))%2 == 0 {
			dst.DrawTextCenteredColored(h-2, "DEMO - PRESS ENTER TO PLAY", core.ColorBrightYellow)
		}
	case modeGameOver:
		g.drawGameOver(dst, h)
	}
}

func (g *Game) drawStars(dst *core.Screen, w int, py func(float64) int) {
	for _, s := range g.stars {
		sx := math.Mod(s.x-g.cameraX*(s.speed()/80), ScreenWidth)
		if sx < 0 {
			sx += ScreenWidth
		}
		cx := int(sx / ScreenWidth * float64(w))
		cy := py(s.y)
		r := '·'
		color := core.ColorGray
		if s.layer == starLayers-1 {
			r = '✦'
			color = core.ColorWhite
		}
		dst.SetCell(cx, cy, r, color)
	}
}

func (g *Game) drawTerrain(dst *core.Screen, w, h int, px func(float64) int, py func(float64) int) {
	for cx := 0; cx < w; cx++ {
		screenX := (float64(cx) + 0.5) / float64(w) * ScreenWidth
		worldX := Wrap(g.cameraX + screenX - ScreenWidth/2)
		surface := py(TerrainY(worldX))
		if surface < 0 {
			continue
		}
		color := core.ColorGreen
		if g.groundDestroyed {
			color = core.ColorRed
		}
		dst.SetCell(cx, surface, '▄', color)
		for cy := surface + 1; cy < h; cy++ {
			dst.SetCell(cx, cy, '█', color)
		}
	}
}

func (g *Game) drawMines(dst *core.Screen, px, py func(float64) int) {
	for _, m := range g.mines {
		dst.SetCell(px(m.x), py(m.y), '◆', core.ColorBrightRed)
	}
}

func (g *Game) drawColonists(dst *core.Screen, px, py func(float64) int) {
	for _, c := range g.colonists {
		if !c.alive() {
			continue
		}
		color := core.ColorBrightYellow
		if c.state == colonistFalling {
			color = core.ColorBrightWhite
		}
		dst.SetCell(px(c.x), py(c.y), 'i', color)
	}
}

func hostileGlyph(kind hostileKind) (rune, core.Color) {
	switch kind {
	case KindCapturer:
		return 'V', core.ColorBrightGreen
	case KindMutant:
		return 'M', core.ColorBrightRed
	case KindBomber:
		return 'B', core.ColorBrightMagenta
	case KindPod:
		return 'O', core.ColorMagenta
	case KindSwarmer:
		return '*', core.ColorRed
	case KindHunter:
		return 'W', core.ColorBrightCyan
	default:
		return '?', core.ColorWhite
	}
}

func (g *Game) drawHostiles(dst *core.Screen, px, py func(float64) int) {
	for _, h := range g.hostiles {
		b := h.base()
		r, color := hostileGlyph(b.kind)
		dst.SetCell(px(b.x), py(b.y), r, color)
	}
}

func (g *Game) drawShots(dst *core.Screen, px, py func(float64) int) {
	for _, s := range g.shots {
		dst.SetCell(px(s.x), py(s.y), '•', core.ColorBrightRed)
	}
}

func (g *Game) drawBeams(dst *core.Screen, px, py func(float64) int) {
	for _, b := range g.beams {
		tip := px(b.x)
		tail := px(Wrap(b.x - float64(b.dir)*b.length()))
		cy := py(b.y)
		lo, hi := tip, tail
		if lo > hi {
			lo, hi = hi, lo
		}
		for cx := lo; cx <= hi; cx++ {
			dst.SetCell(cx, cy, '─', core.ColorBrightYellow)
		}
		dst.SetCell(tip, cy, '━', core.ColorBrightWhite)
	}
}

func (g *Game) drawFragments(dst *core.Screen, px, py func(float64) int) {
	for _, f := range g.fragments {
		dst.SetCell(px(f.x), py(f.y), '+', core.ColorBrightCyan)
	}
}

func (g *Game) drawPlayer(dst *core.Screen, px, py func(float64) int) {
	p := g.player
	if p.invisible {
		return
	}
	cx, cy := px(p.x), py(p.y)

	color := core.ColorBrightCyan
	if p.invuln > 0 && (int(p.invuln*8))%2 == 0 {
		color = core.ColorGray
	}
	if p.dir >= 0 {
		dst.SetCell(cx-1, cy, '=', color)
		dst.SetCell(cx, cy, '≡', color)
		dst.SetCell(cx+1, cy, '▶', color)
	} else {
		dst.SetCell(cx-1, cy, '◀', color)
		dst.SetCell(cx, cy, '≡', color)
		dst.SetCell(cx+1, cy, '=', color)
	}
}

func (g *Game) drawExplosions(dst *core.Screen, px, py func(float64) int) {
	for _, e := range g.explosions {
		cx, cy := px(e.x), py(e.y)
		if e.ttl > explosionTTL/2 {
			dst.SetCell(cx, cy, '✶', core.ColorBrightYellow)
		} else {
			dst.SetCell(cx-1, cy, '·', core.ColorOrange)
			dst.SetCell(cx, cy, '✶', core.ColorOrange)
			dst.SetCell(cx+1, cy, '·', core.ColorOrange)
		}
	}
}

func (g *Game) drawPopups(dst *core.Screen, px, py func(float64) int) {
	for _, p := range g.popups {
		dst.DrawTextColored(px(p.x), py(p.y), p.text, core.ColorBrightWhite)
	}
}

func (g *Game) drawHUD(dst *core.Screen, w int, py func(float64) int) {
	hudBottom := py(HUDHeight)
	dst.DrawRect(core.NewRect(0, 0, w, hudBottom), ' ')

	alive := 0
	for _, c := range g.colonists {
		if c.alive() {
			alive++
		}
	}

	dst.DrawTextColored(1, 0, fmt.Sprintf("SCORE %06d", g.score), core.ColorBrightWhite)
	dst.DrawTextColored(1, 1, fmt.Sprintf("WAVE %d", g.wave), core.ColorBrightCyan)

	lives := ""
	for i := 0; i < g.player.lives; i++ {
		lives += "▲"
	}
	dst.DrawTextColored(16, 1, "SHIPS "+lives, core.ColorBrightGreen)
	dst.DrawTextColored(1, 2, fmt.Sprintf("BOMBS %d", g.smartBombsLeft), core.ColorBrightMagenta)
	dst.DrawTextColored(16, 2, fmt.Sprintf("COLONISTS %d/%d", alive, ColonistCount), core.ColorBrightYellow)

	if g.player.warp.cooldown > 0 {
		dst.DrawTextColored(w-18, 1, fmt.Sprintf("WARP %.1fs", g.player.warp.cooldown), core.ColorGray)
	} else {
		dst.DrawTextColored(w-18, 1, "WARP READY", core.ColorBrightCyan)
	}
	if g.noDeath {
		dst.DrawTextColored(w-18, 2, "NO-DEATH", core.ColorBrightRed)
	}

	g.drawScanner(dst, w)

	if g.message != "" {
		dst.DrawTextCenteredColored(hudBottom, g.message, core.ColorBrightWhite)
	}
}

// drawScanner draws the long-range minimap strip: the whole world ring
// compressed to one row of markers.
func (g *Game) drawScanner(dst *core.Screen, w int) {
	scanW := w / 2
	if scanW < 20 {
		return
	}
	row := 0
	strip := core.NewRect((w-scanW)/2, row, scanW, 1)

	border := core.ColorGray
	if g.scannerWarning {
		border = core.ColorBrightRed
	}
	dst.SetCell(strip.X-1, row, '[', border)
	dst.SetCell(strip.Right(), row, ']', border)

	mark := func(worldX float64, r rune, color core.Color) {
		cx := strip.X + int(Wrap(worldX)/WorldWidth*float64(scanW))
		if strip.Contains(cx, row) {
			dst.SetCell(cx, row, r, color)
		}
	}

	for _, c := range g.colonists {
		if c.alive() {
			mark(c.x, '.', core.ColorBrightYellow)
		}
	}
	for _, h := range g.hostiles {
		b := h.base()
		r, color := hostileGlyph(b.kind)
		mark(b.x, toLowerASCII(r), color)
	}
	if !g.player.invisible {
		mark(g.player.x, '▲', core.ColorBrightWhite)
	}
}

func toLowerASCII(r rune) rune {
	if r >= 'A' && r <= 'Z' {
		return r + ('a' - 'A')
	}
	return r
}

func (g *Game) drawTitle(dst *core.Screen, h int) {
	mid := h / 2
	boxW := core.Clamp(48, 20, dst.Width()-2)
	dst.DrawBox(core.NewRect((dst.Width()-boxW)/2, mid-6, boxW, 12), core.ColorGray)
	dst.DrawTextCenteredColored(mid-4, "D E F E N D E R", core.ColorBrightCyan)
	dst.DrawTextCenteredColored(mid-2, "defend the colonists from abduction", core.ColorWhite)
	dst.DrawTextCentered(mid, "arrows/wasd move · space fire · x reverse")
	dst.DrawTextCentered(mid+1, "b smart bomb · h hyperspace")
	if (int(g.titleTimer*2))%2 == 0 {
		dst.DrawTextCenteredColored(mid+3, "PRESS ENTER TO START", core.ColorBrightYellow)
	}
}

func (g *Game) drawGameOver(dst *core.Screen, h int) {
	mid := h / 2
	dst.DrawTextCenteredColored(mid-1, "GAME OVER", core.ColorBrightRed)
	dst.DrawTextCenteredColored(mid, fmt.Sprintf("final score %d · wave %d", g.score, g.wave), core.ColorBrightWhite)
	dst.DrawTextCenteredColored(mid+2, "PRESS ENTER TO PLAY AGAIN", core.ColorBrightYellow)
}
