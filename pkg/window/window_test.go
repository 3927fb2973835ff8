package window

import (
	"errors"
	"math"
	"testing"
	"time"
)

// ---------- helpers ----------

func baseTime() time.Time {
	return time.Date(2026, 3, 1, 12, 0, 0, 0, time.UTC)
}

// tick returns the timestamp of tick n at a 2-second cadence.
func tick(n int) time.Time {
	return baseTime().Add(time.Duration(n) * 2 * time.Second)
}

// fill advances the store through ticks [from, to) appending a sample
// for key at each.
func fill(t *testing.T, s *Store, key string, from, to int) {
	t.Helper()
	for i := from; i < to; i++ {
		s.Advance(tick(i))
		if err := s.Append(key, Sample{Value: float64(i), Time: tick(i)}); err != nil {
			t.Fatalf("append at tick %d: %v", i, err)
		}
	}
}

// ---------- global window ----------

func TestAdvanceBoundsGlobalWindow(t *testing.T) {
	s := NewStore(Config{Capacity: 30})
	for i := 0; i < 100; i++ {
		s.Advance(tick(i))
		if got := len(s.Window()); got > 30 {
			t.Fatalf("window length %d exceeds capacity after tick %d", got, i)
		}
	}
	w := s.Window()
	if len(w) != 30 {
		t.Fatalf("expected window length 30, got %d", len(w))
	}
	if !w[0].Equal(tick(70)) {
		t.Errorf("oldest = %v, want %v", w[0], tick(70))
	}
	if !w[29].Equal(tick(99)) {
		t.Errorf("newest = %v, want %v", w[29], tick(99))
	}
}

func TestWindowNonDecreasing(t *testing.T) {
	s := NewStore(Config{Capacity: 10})
	for i := 0; i < 40; i++ {
		s.Advance(tick(i))
		w := s.Window()
		for j := 1; j < len(w); j++ {
			if w[j].Before(w[j-1]) {
				t.Fatalf("window not non-decreasing at tick %d: %v before %v", i, w[j], w[j-1])
			}
		}
	}
}

func TestOldestEmptyStore(t *testing.T) {
	s := NewStore(Config{})
	if _, ok := s.Oldest(); ok {
		t.Fatal("Oldest should report false before the first tick")
	}
}

func TestDefaultCapacity(t *testing.T) {
	s := NewStore(Config{})
	if s.Capacity() != DefaultCapacity {
		t.Fatalf("capacity = %d, want %d", s.Capacity(), DefaultCapacity)
	}
}

// ---------- admission ----------

func TestAppendCreatesSeriesLazily(t *testing.T) {
	s := NewStore(Config{Capacity: 5})
	s.Advance(tick(0))

	if s.Len() != 0 {
		t.Fatalf("expected no series before first append, got %d", s.Len())
	}
	if err := s.Append("climate", Sample{Value: 3, Time: tick(0)}); err != nil {
		t.Fatalf("append: %v", err)
	}
	if s.Len() != 1 {
		t.Fatalf("expected 1 series, got %d", s.Len())
	}
}

func TestSeriesBoundedAtCapacity(t *testing.T) {
	s := NewStore(Config{Capacity: 5})
	fill(t, s, "climate", 0, 20)

	snaps := s.Snapshot()
	if len(snaps) != 1 {
		t.Fatalf("expected 1 series, got %d", len(snaps))
	}
	if got := len(snaps[0].Samples); got != 5 {
		t.Fatalf("series length = %d, want 5", got)
	}
}

func TestAppendRejectsNaNAndInf(t *testing.T) {
	s := NewStore(Config{Capacity: 5})
	s.Advance(tick(0))

	for _, v := range []float64{math.NaN(), math.Inf(1), math.Inf(-1)} {
		err := s.Append("bad", Sample{Value: v, Time: tick(0)})
		if !errors.Is(err, ErrInvalidSample) {
			t.Errorf("value %v: err = %v, want ErrInvalidSample", v, err)
		}
	}
	if s.Len() != 0 {
		t.Fatal("rejected samples must not create a series")
	}
}

func TestAppendEnforcesBounds(t *testing.T) {
	s := NewStore(Config{Capacity: 5, Bounded: true, MinValue: -1, MaxValue: 1})
	s.Advance(tick(0))

	if err := s.Append("ok", Sample{Value: 0.5, Time: tick(0)}); err != nil {
		t.Fatalf("in-range append: %v", err)
	}
	if err := s.Append("hot", Sample{Value: 1.5, Time: tick(0)}); !errors.Is(err, ErrInvalidSample) {
		t.Fatalf("out-of-range append err = %v, want ErrInvalidSample", err)
	}
	if err := s.Append("cold", Sample{Value: -1.5, Time: tick(0)}); !errors.Is(err, ErrInvalidSample) {
		t.Fatalf("out-of-range append err = %v, want ErrInvalidSample", err)
	}
}

// ---------- eviction ----------

// A full series sliding by one: samples at ticks [0..29], tick 30
// arrives, head sample falls out, length stays at capacity.
func TestFullWindowSlidesByOne(t *testing.T) {
	s := NewStore(Config{Capacity: 30})
	fill(t, s, "climate", 0, 30)

	snaps := s.Snapshot()
	if got := len(snaps[0].Samples); got != 30 {
		t.Fatalf("series length = %d, want 30", got)
	}

	s.Advance(tick(30))
	if err := s.Append("climate", Sample{Value: 30, Time: tick(30)}); err != nil {
		t.Fatalf("append: %v", err)
	}

	snaps = s.Snapshot()
	samples := snaps[0].Samples
	if len(samples) != 30 {
		t.Fatalf("series length after slide = %d, want 30", len(samples))
	}
	if !samples[0].Time.Equal(tick(1)) {
		t.Errorf("head sample at %v, want %v", samples[0].Time, tick(1))
	}
	if !samples[29].Time.Equal(tick(30)) {
		t.Errorf("tail sample at %v, want %v", samples[29].Time, tick(30))
	}
}

// A key that stops being tracked drains out of the window: its last
// sample is at tick k, and after the 30th subsequent tick the series is
// empty and removed.
func TestUntrackedKeyDrainsAndIsRemoved(t *testing.T) {
	s := NewStore(Config{Capacity: 30})
	fill(t, s, "fading", 0, 10) // samples at ticks 0..9 only

	for i := 10; i < 10+29; i++ {
		s.Advance(tick(i))
		if s.Len() != 1 {
			t.Fatalf("series removed too early at tick %d", i)
		}
	}

	s.Advance(tick(39)) // 30th tick since the last sample at tick 9
	if s.Len() != 0 {
		t.Fatalf("expected series removed after 30 absent ticks, still have %v", s.Keys())
	}
}

func TestEvictionAppliesToAllSeries(t *testing.T) {
	s := NewStore(Config{Capacity: 5})
	fill(t, s, "steady", 0, 3)

	// A second key appears at tick 2 only.
	if err := s.Append("brief", Sample{Value: 1, Time: tick(2)}); err != nil {
		t.Fatalf("append: %v", err)
	}

	// Ticks keep coming without updating either key.
	for i := 3; i < 8; i++ {
		s.Advance(tick(i))
	}

	// Window is [tick3..tick7]; both keys' samples are all older.
	if s.Len() != 0 {
		t.Fatalf("expected all series evicted, still have %v", s.Keys())
	}
}

func TestSamplesNeverOlderThanWindowOldest(t *testing.T) {
	s := NewStore(Config{Capacity: 8})
	for i := 0; i < 50; i++ {
		s.Advance(tick(i))
		if i%3 != 0 { // key tracked only some ticks
			if err := s.Append("k", Sample{Value: 1, Time: tick(i)}); err != nil {
				t.Fatalf("append: %v", err)
			}
		}

		oldest, ok := s.Oldest()
		if !ok {
			t.Fatal("expected non-empty window")
		}
		for _, snap := range s.Snapshot() {
			for _, smp := range snap.Samples {
				if smp.Time.Before(oldest) {
					t.Fatalf("tick %d: sample at %v older than window oldest %v", i, smp.Time, oldest)
				}
			}
		}
	}
}

func TestRemovedKeyRestartsFresh(t *testing.T) {
	s := NewStore(Config{Capacity: 3})
	fill(t, s, "k", 0, 2)

	for i := 2; i < 8; i++ {
		s.Advance(tick(i))
	}
	if s.Len() != 0 {
		t.Fatal("expected key evicted")
	}

	s.Advance(tick(8))
	if err := s.Append("k", Sample{Value: 9, Time: tick(8)}); err != nil {
		t.Fatalf("append: %v", err)
	}
	snaps := s.Snapshot()
	if len(snaps) != 1 || len(snaps[0].Samples) != 1 {
		t.Fatalf("expected fresh single-sample series, got %+v", snaps)
	}
	if snaps[0].Samples[0].Value != 9 {
		t.Errorf("fresh sample value = %v, want 9", snaps[0].Samples[0].Value)
	}
}

// ---------- snapshots and ordering ----------

func TestSnapshotCanonicalOrder(t *testing.T) {
	s := NewStore(Config{Capacity: 5})
	s.Advance(tick(0))
	for _, key := range []string{"charlie", "alpha", "bravo"} {
		if err := s.Append(key, Sample{Value: 1, Time: tick(0)}); err != nil {
			t.Fatalf("append: %v", err)
		}
	}

	snaps := s.Snapshot()
	want := []string{"charlie", "alpha", "bravo"}
	for i, snap := range snaps {
		if snap.Key != want[i] {
			t.Errorf("snapshot[%d].Key = %q, want %q (creation order)", i, snap.Key, want[i])
		}
	}
}

func TestSnapshotIsACopy(t *testing.T) {
	s := NewStore(Config{Capacity: 5})
	s.Advance(tick(0))
	if err := s.Append("k", Sample{Value: 1, Time: tick(0)}); err != nil {
		t.Fatalf("append: %v", err)
	}

	snap := s.Snapshot()
	snap[0].Samples[0].Value = 99

	again := s.Snapshot()
	if again[0].Samples[0].Value != 1 {
		t.Fatal("mutating a snapshot must not affect store state")
	}
}

func TestErrSampleRoundTrip(t *testing.T) {
	s := NewStore(Config{Capacity: 5, Bounded: true, MinValue: -1, MaxValue: 1})
	s.Advance(tick(0))
	if err := s.Append("k", Sample{Value: 0.25, Err: 0.1, Time: tick(0)}); err != nil {
		t.Fatalf("append: %v", err)
	}
	snap := s.Snapshot()
	if snap[0].Samples[0].Err != 0.1 {
		t.Errorf("Err = %v, want 0.1", snap[0].Samples[0].Err)
	}
}
