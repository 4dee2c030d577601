package defender

import "container/heap"

// Wave composition caps.
const (
	maxCapturersPerWave = 24
	maxBombersPerWave   = 8
	maxPodsPerWave      = 6
)

// Spawn stagger timings, seconds into the wave.
const (
	capturerSpawnStart = 0.5
	capturerSpawnGap   = 1.0
	bomberSpawnStart   = 12.0
	bomberSpawnLate    = 8.0
	bomberSpawnGap     = 3.0
	podSpawnStart      = 24.0
	podSpawnGap        = 3.8
)

// waveComposition is the enemy roster for one wave.
type waveComposition struct {
	Capturers int
	Bombers   int
	Pods      int
}

// compositionFor returns the roster for a 1-based wave number. The counts
// grow with the wave and saturate at fixed caps.
func compositionFor(wave int) waveComposition {
	if wave < 1 {
		wave = 1
	}
	switch wave {
	case 1:
		return waveComposition{Capturers: 10}
	case 2:
		return waveComposition{Capturers: 12, Bombers: 2}
	case 3:
		return waveComposition{Capturers: 14, Bombers: 3}
	case 4:
		return waveComposition{Capturers: 16, Bombers: 4}
	case 5:
		return waveComposition{Capturers: 18, Bombers: 5, Pods: 3}
	}

	bonus := wave - 5
	comp := waveComposition{
		Capturers: 18 + bonus,
		Bombers:   5 + bonus/2,
		Pods:      3 + max(0, (bonus-1)/2),
	}
	if comp.Capturers > maxCapturersPerWave {
		comp.Capturers = maxCapturersPerWave
	}
	if comp.Bombers > maxBombersPerWave {
		comp.Bombers = maxBombersPerWave
	}
	if comp.Pods > maxPodsPerWave {
		comp.Pods = maxPodsPerWave
	}
	return comp
}

// spawnEntry is one scheduled arrival. seq breaks ties so entries queued
// for the same instant pop in the order they were queued.
type spawnEntry struct {
	due  float64
	seq  int
	emit func()
}

type spawnHeap []spawnEntry

func (h spawnHeap) Len() int { return len(h) }
func (h spawnHeap) Less(i, j int) bool {
	if h[i].due != h[j].due {
		return h[i].due < h[j].due
	}
	return h[i].seq < h[j].seq
}
func (h spawnHeap) Swap(i, j int)      { h[i], h[j] = h[j], h[i] }
func (h *spawnHeap) Push(x any)        { *h = append(*h, x.(spawnEntry)) }
func (h *spawnHeap) Pop() any {
	old := *h
	n := len(old)
	entry := old[n-1]
	*h = old[:n-1]
	return entry
}

// spawnQueue holds pending wave arrivals ordered by due time.
type spawnQueue struct {
	entries spawnHeap
	seq     int
}

func (q *spawnQueue) reset() {
	q.entries = q.entries[:0]
	q.seq = 0
}

func (q *spawnQueue) pending() int {
	return len(q.entries)
}

// schedule queues an arrival at now+delay.
func (q *spawnQueue) schedule(now, delay float64, emit func()) {
	q.seq++
	heap.Push(&q.entries, spawnEntry{due: now + delay, seq: q.seq, emit: emit})
}

// drain pops and emits every arrival whose due time has passed.
func (q *spawnQueue) drain(now float64) {
	for len(q.entries) > 0 && q.entries[0].due <= now {
		entry := heap.Pop(&q.entries).(spawnEntry)
		entry.emit()
	}
}
