package defender

// Snapshot captures the observable simulation state with primitive types
// only. Positions are quantized to milli-units so two runs of the same
// seed hash identically across platforms.
type Snapshot struct {
	Mode      int
	Score     int
	Wave      int
	Lives     int
	Bombs     int
	WaveTime  int
	PlayerX   int
	PlayerY   int
	PlayerDir int
	Carrying  int

	ColonistData []int // per colonist: state, x, y
	HostileData  []int // per hostile: kind, health, x, y
	BeamCount    int
	ShotCount    int
	MineCount    int
	Pending      int
}

func milli(v float64) int {
	return int(v * 1000)
}

// Snapshot returns the current simulation state.
func (g *Game) Snapshot() Snapshot {
	snap := Snapshot{
		Mode:      int(g.mode),
		Score:     g.score,
		Wave:      g.wave,
		Lives:     g.player.lives,
		Bombs:     g.smartBombsLeft,
		WaveTime:  milli(g.waveTimer),
		PlayerX:   milli(g.player.x),
		PlayerY:   milli(g.player.y),
		PlayerDir: g.player.dir,
		Carrying:  int(g.player.carrying),
		BeamCount: len(g.beams),
		ShotCount: len(g.shots),
		MineCount: len(g.mines),
		Pending:   g.queue.pending(),
	}

	snap.ColonistData = make([]int, 0, len(g.colonists)*3)
	for _, c := range g.colonists {
		snap.ColonistData = append(snap.ColonistData, int(c.state), milli(c.x), milli(c.y))
	}

	snap.HostileData = make([]int, 0, len(g.hostiles)*4)
	for _, h := range g.hostiles {
		b := h.base()
		snap.HostileData = append(snap.HostileData, int(b.kind), b.health, milli(b.x), milli(b.y))
	}
	return snap
}

// Hash folds the snapshot into a single word for determinism checks.
func (snap *Snapshot) Hash() uint64 {
	h := uint64(snap.Mode)
	for _, v := range []int{
		snap.Score, snap.Wave, snap.Lives, snap.Bombs, snap.WaveTime,
		snap.PlayerX, snap.PlayerY, snap.PlayerDir, snap.Carrying,
		snap.BeamCount, snap.ShotCount, snap.MineCount, snap.Pending,
	} {
		h = h*31 + uint64(int64(v)) //#nosec G115 -- hash computation
	}
	for _, v := range snap.ColonistData {
		h = h*31 + uint64(int64(v)) //#nosec G115 -- hash computation
	}
	for _, v := range snap.HostileData {
		h = h*31 + uint64(int64(v)) //#nosec G115 -- hash computation
	}
	return h
}
