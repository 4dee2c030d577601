package defender

// resolveCollisions runs the per-tick contact passes in a fixed order:
// beams against hostiles, beams against colonists, the ship against
// hostiles, shots and mines, stray shots against colonists, and finally
// rescue pickup or delivery. Hitboxes are evaluated in camera space so
// the world seam needs no special casing.
func (g *Game) resolveCollisions() {
	g.beamsVsHostiles()
	g.beamsVsColonists()
	g.shipVsHostiles()
	g.shipVsShots()
	g.shipVsMines()
	g.shotsVsColonists()
	g.rescuePass()
}

// beamsVsHostiles damages every visible hostile a beam crosses. A hostile
// takes at most one point of damage per tick no matter how many beams
// overlap it, and every overlapping beam is consumed.
func (g *Game) beamsVsHostiles() {
	if len(g.beams) == 0 || len(g.hostiles) == 0 {
		return
	}

	consumed := make(map[*beam]bool)
	g.newArrival = g.newArrival[:0]

	kept := g.hostiles[:0]
	for _, h := range g.hostiles {
		hb := h.base().hitbox(g.cameraX)
		if !hb.onScreen(8) {
			kept = append(kept, h)
			continue
		}

		hit := false
		for _, b := range g.beams {
			if b.hitbox(g.cameraX).overlaps(hb) {
				consumed[b] = true
				hit = true
			}
		}
		if !hit {
			kept = append(kept, h)
			continue
		}

		if h.base().takeDamage(1) {
			g.destroyHostile(h, true)
			continue
		}
		kept = append(kept, h)
	}
	g.hostiles = append(kept, g.newArrival...)
	g.newArrival = g.newArrival[:0]

	if len(consumed) > 0 {
		beams := g.beams[:0]
		for _, b := range g.beams {
			if !consumed[b] {
				beams = append(beams, b)
			}
		}
		g.beams = beams
	}
}

// beamsVsColonists handles friendly fire: a beamed colonist dies and the
// beam is spent.
func (g *Game) beamsVsColonists() {
	if len(g.beams) == 0 {
		return
	}

	consumed := make(map[*beam]bool)
	for _, c := range g.colonists {
		if !c.alive() {
			continue
		}
		cb := c.hitbox(g.cameraX)
		for _, b := range g.beams {
			if consumed[b] || !b.hitbox(g.cameraX).overlaps(cb) {
				continue
			}
			consumed[b] = true
			if c.alive() {
				if g.player.carrying == c.id {
					g.player.carrying = 0
				}
				c.die()
				g.notifyCaptiveRemoved(c.id)
				g.addExplosion(c.x, c.y)
				g.sound.Play("explosion")
			}
		}
	}

	if len(consumed) > 0 {
		beams := g.beams[:0]
		for _, b := range g.beams {
			if !consumed[b] {
				beams = append(beams, b)
			}
		}
		g.beams = beams
	}
}

func (g *Game) shipVsHostiles() {
	if !g.player.vulnerable() {
		return
	}
	pb := g.player.hitbox(g.cameraX)
	for _, h := range g.hostiles {
		if h.base().hitbox(g.cameraX).overlaps(pb) {
			g.playerHit()
			return
		}
	}
}

func (g *Game) shipVsShots() {
	if !g.player.vulnerable() {
		return
	}
	pb := g.player.hitbox(g.cameraX)
	shots := g.shots[:0]
	for _, s := range g.shots {
		if s.hitbox(g.cameraX).overlaps(pb) {
			g.playerHit()
			pb = g.player.hitbox(g.cameraX)
			continue
		}
		shots = append(shots, s)
	}
	g.shots = shots
}

func (g *Game) shipVsMines() {
	if !g.player.vulnerable() {
		return
	}
	pb := g.player.hitbox(g.cameraX)
	mines := g.mines[:0]
	for _, m := range g.mines {
		if m.hitbox(g.cameraX).overlaps(pb) {
			g.addExplosion(m.x, m.y)
			g.playerHit()
			pb = g.player.hitbox(g.cameraX)
			continue
		}
		mines = append(mines, m)
	}
	g.mines = mines
}

// shotsVsColonists absorbs hostile fire on colonists without harming
// them; the shot is spent shielding nothing.
func (g *Game) shotsVsColonists() {
	if len(g.shots) == 0 {
		return
	}
	shots := g.shots[:0]
	for _, s := range g.shots {
		sb := s.hitbox(g.cameraX)
		absorbed := false
		for _, c := range g.colonists {
			if c.alive() && c.hitbox(g.cameraX).overlaps(sb) {
				absorbed = true
				break
			}
		}
		if !absorbed {
			shots = append(shots, s)
		}
	}
	g.shots = shots
}

// rescuePass catches a falling colonist when empty-handed, or sets a
// carried one down once the ship skims the ground.
func (g *Game) rescuePass() {
	if g.player.invisible {
		return
	}

	if g.player.carrying == 0 {
		pb := g.player.hitbox(g.cameraX)
		for _, c := range g.colonists {
			if c.state != colonistFalling || !c.hitbox(g.cameraX).overlaps(pb) {
				continue
			}
			c.pickUp(g.player.id)
			g.player.carrying = c.id
			g.award(rescueCatchBonus, c.x, c.y)
			g.sound.Play("rescue_pick")
			break
		}
		return
	}

	c := g.colonistByID(g.player.carrying)
	if c == nil || c.state != colonistCarried {
		g.player.carrying = 0
		return
	}
	ground := TerrainY(c.x) - ColonistHeight/2
	if g.player.y >= ground-12 {
		c.placeOnGround()
		g.player.carrying = 0
		g.award(rescueDeliverBonus, c.x, c.y)
		g.sound.Play("rescue_drop")
	}
}
