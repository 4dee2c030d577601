package defender

import "testing"

func TestCompositionEarlyWaves(t *testing.T) {
	tests := []struct {
		wave int
		want waveComposition
	}{
		{1, waveComposition{Capturers: 10}},
		{2, waveComposition{Capturers: 12, Bombers: 2}},
		{3, waveComposition{Capturers: 14, Bombers: 3}},
		{4, waveComposition{Capturers: 16, Bombers: 4}},
		{5, waveComposition{Capturers: 18, Bombers: 5, Pods: 3}},
		{6, waveComposition{Capturers: 19, Bombers: 5, Pods: 3}},
		{7, waveComposition{Capturers: 20, Bombers: 6, Pods: 3}},
	}

	for _, tc := range tests {
		if got := compositionFor(tc.wave); got != tc.want {
			t.Errorf("compositionFor(%d) = %+v, expected %+v", tc.wave, got, tc.want)
		}
	}
}

func TestCompositionMonotoneAndCapped(t *testing.T) {
	prev := compositionFor(1)
	for wave := 2; wave <= 200; wave++ {
		got := compositionFor(wave)
		if got.Capturers < prev.Capturers || got.Bombers < prev.Bombers || got.Pods < prev.Pods {
			t.Fatalf("wave %d composition %+v shrank from %+v", wave, got, prev)
		}
		if got.Capturers > maxCapturersPerWave || got.Bombers > maxBombersPerWave || got.Pods > maxPodsPerWave {
			t.Fatalf("wave %d composition %+v exceeds caps", wave, got)
		}
		prev = got
	}

	late := compositionFor(200)
	want := waveComposition{
		Capturers: maxCapturersPerWave,
		Bombers:   maxBombersPerWave,
		Pods:      maxPodsPerWave,
	}
	if late != want {
		t.Errorf("late-wave composition = %+v, expected caps %+v", late, want)
	}
}

func TestSpawnQueueOrdering(t *testing.T) {
	var q spawnQueue
	var order []string

	q.schedule(0, 3.0, func() { order = append(order, "c") })
	q.schedule(0, 1.0, func() { order = append(order, "a") })
	q.schedule(0, 2.0, func() { order = append(order, "b") })

	q.drain(0.5)
	if len(order) != 0 {
		t.Fatalf("nothing should emit before its due time, got %v", order)
	}

	q.drain(2.5)
	if len(order) != 2 || order[0] != "a" || order[1] != "b" {
		t.Fatalf("drain(2.5) emitted %v, expected [a b]", order)
	}

	q.drain(10)
	if len(order) != 3 || order[2] != "c" {
		t.Fatalf("drain(10) emitted %v, expected [a b c]", order)
	}
	if q.pending() != 0 {
		t.Errorf("pending = %d, expected 0", q.pending())
	}
}

func TestSpawnQueueTieBreakIsFIFO(t *testing.T) {
	var q spawnQueue
	var order []int

	for i := 0; i < 10; i++ {
		i := i
		q.schedule(0, 5.0, func() { order = append(order, i) })
	}
	q.drain(5.0)

	if len(order) != 10 {
		t.Fatalf("emitted %d entries, expected 10", len(order))
	}
	for i, v := range order {
		if v != i {
			t.Fatalf("same-instant entries emitted out of queue order: %v", order)
		}
	}
}

func TestSpawnQueueReset(t *testing.T) {
	var q spawnQueue
	fired := false
	q.schedule(0, 1.0, func() { fired = true })
	q.reset()

	q.drain(100)
	if fired {
		t.Error("reset should discard pending arrivals")
	}
	if q.seq != 0 {
		t.Errorf("seq = %d, expected 0 after reset", q.seq)
	}
}
