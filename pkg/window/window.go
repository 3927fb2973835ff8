// Package window implements the bounded sliding-window store at the heart
// of the aggregation engine. A Store owns a global time window (the last W
// tick timestamps) and, per tracked key, a bounded time-ordered series of
// samples. The store never reads the wall clock: every mutation takes its
// timestamp from the caller, so tests drive it with a fixed clock.
//
// The tick-level state machine is split across two calls:
//
//	st.Advance(now)          // extend the global window, evict stale samples
//	st.Append(key, sample)   // admit this tick's samples for tracked keys
//
// Advance appends the tick timestamp to the global window first and then
// evicts with the window's new oldest entry as the cutoff. The ordering
// matters: a key's oldest sample falls out exactly W ticks after the key
// was last tracked, and reordering the two steps shifts that by one tick.
package window

import (
	"errors"
	"math"
	"sync"
	"time"
)

// DefaultCapacity is the window size W used when Config.Capacity is zero:
// the store retains at most 30 tick timestamps and 30 samples per key.
const DefaultCapacity = 30

// ErrInvalidSample is returned by Append for samples whose value is NaN,
// infinite, or outside the store's configured bounds. The series is left
// untouched; the caller skips the key for the tick.
var ErrInvalidSample = errors.New("window: invalid sample value")

// Config controls a Store instance.
type Config struct {
	// Capacity is the window size W. Zero means DefaultCapacity.
	Capacity int

	// MinValue and MaxValue bound admissible sample values. They are
	// only enforced when Bounded is true (a sentiment store uses
	// [-1, 1]; a count store leaves Bounded false).
	Bounded  bool
	MinValue float64
	MaxValue float64
}

func (c Config) defaults() Config {
	if c.Capacity <= 0 {
		c.Capacity = DefaultCapacity
	}
	return c
}

// Sample is one (value, timestamp) observation for a key. Err carries the
// standard deviation for sentiment samples and is zero for counts.
type Sample struct {
	Value float64
	Err   float64
	Time  time.Time
}

// series is a bounded FIFO of samples for one key.
type series struct {
	key     string
	samples []Sample
}

// SeriesSnapshot is an immutable copy of one key's series, safe to hand
// to the presentation layer without further locking.
type SeriesSnapshot struct {
	Key     string
	Samples []Sample
}

// Store holds the global time window and all key series. It is safe for
// concurrent use, though the engine mutates it from a single tick loop.
type Store struct {
	mu      sync.RWMutex
	cfg     Config
	horizon []time.Time
	series  map[string]*series

	// order tracks series creation order. It is the canonical key order
	// for snapshots and color assignment; map iteration order is never
	// exposed.
	order []string
}

// NewStore creates a Store with the given configuration.
func NewStore(cfg Config) *Store {
	return &Store{
		cfg:    cfg.defaults(),
		series: make(map[string]*series),
	}
}

// Advance runs one tick of the window state machine:
//
//  1. now is appended to the global window, dropping the head when
//     capacity is exceeded.
//  2. Samples older than the window's (new) oldest timestamp are dropped
//     from the head of every series, whether or not the key is updated
//     this tick.
//  3. Series left empty are removed; the key is forgotten and a future
//     reappearance starts from zero history.
//
// Timestamps must be non-decreasing across calls; Advance does not
// reorder out-of-order input.
func (s *Store) Advance(now time.Time) {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.horizon = append(s.horizon, now)
	if len(s.horizon) > s.cfg.Capacity {
		excess := len(s.horizon) - s.cfg.Capacity
		s.horizon = append([]time.Time(nil), s.horizon[excess:]...)
	}
	s.evict(s.horizon[0])
}

// evict drops head samples older than cutoff from every series and
// removes series that end up empty. Caller holds the write lock.
func (s *Store) evict(cutoff time.Time) {
	keep := s.order[:0]
	for _, key := range s.order {
		ser := s.series[key]
		idx := 0
		for idx < len(ser.samples) && ser.samples[idx].Time.Before(cutoff) {
			idx++
		}
		if idx > 0 {
			ser.samples = append(ser.samples[:0], ser.samples[idx:]...)
		}
		if len(ser.samples) == 0 {
			delete(s.series, key)
			continue
		}
		keep = append(keep, key)
	}
	s.order = keep
}

// Append admits one sample for key, creating the series on first
// appearance. The series is FIFO-bounded at the window capacity. Samples
// with NaN, infinite, or out-of-bounds values are rejected with
// ErrInvalidSample and leave all state unchanged.
func (s *Store) Append(key string, smp Sample) error {
	if math.IsNaN(smp.Value) || math.IsInf(smp.Value, 0) {
		return ErrInvalidSample
	}
	if s.cfg.Bounded && (smp.Value < s.cfg.MinValue || smp.Value > s.cfg.MaxValue) {
		return ErrInvalidSample
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	ser, ok := s.series[key]
	if !ok {
		ser = &series{key: key}
		s.series[key] = ser
		s.order = append(s.order, key)
	}
	ser.samples = append(ser.samples, smp)
	if len(ser.samples) > s.cfg.Capacity {
		excess := len(ser.samples) - s.cfg.Capacity
		ser.samples = append(ser.samples[:0], ser.samples[excess:]...)
	}
	return nil
}

// Snapshot returns immutable copies of every series in canonical
// (creation) order.
func (s *Store) Snapshot() []SeriesSnapshot {
	s.mu.RLock()
	defer s.mu.RUnlock()

	out := make([]SeriesSnapshot, 0, len(s.order))
	for _, key := range s.order {
		ser := s.series[key]
		samples := make([]Sample, len(ser.samples))
		copy(samples, ser.samples)
		out = append(out, SeriesSnapshot{Key: key, Samples: samples})
	}
	return out
}

// Keys returns the tracked keys in canonical order.
func (s *Store) Keys() []string {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return append([]string(nil), s.order...)
}

// Len returns the number of tracked keys.
func (s *Store) Len() int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return len(s.order)
}

// Window returns a copy of the global time window, oldest first.
func (s *Store) Window() []time.Time {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return append([]time.Time(nil), s.horizon...)
}

// Oldest returns the oldest retained tick timestamp. The second return
// is false when no tick has been observed yet.
func (s *Store) Oldest() (time.Time, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	if len(s.horizon) == 0 {
		return time.Time{}, false
	}
	return s.horizon[0], true
}

// Capacity returns the window size W.
func (s *Store) Capacity() int {
	return s.cfg.Capacity
}
