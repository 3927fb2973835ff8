// Package engine drives the poll-aggregate-emit cycle. Each tick pulls
// one batch snapshot from the record source, recomputes word and watch
// keyword frequencies, scores sentiment per top key, feeds two sliding
// window stores (counts and sentiment, never merged), and emits an
// immutable Output for the presentation layer. Exactly one tick runs at
// a time; triggers arriving mid-tick are dropped, never queued.
package engine

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"sync"
	"sync/atomic"
	"time"

	"gitlab.com/tinyland/lab/trend-pulse/pkg/count"
	"gitlab.com/tinyland/lab/trend-pulse/pkg/palette"
	"gitlab.com/tinyland/lab/trend-pulse/pkg/sentiment"
	"gitlab.com/tinyland/lab/trend-pulse/pkg/source"
	"gitlab.com/tinyland/lab/trend-pulse/pkg/text"
	"gitlab.com/tinyland/lab/trend-pulse/pkg/window"
)

// ErrTickInFlight is returned when a tick trigger arrives while the
// previous tick is still executing. The trigger is dropped; the external
// timer provides the retry cadence.
var ErrTickInFlight = errors.New("engine: tick already in flight")

// topWordCount is how many words the word-count bar view shows.
const topWordCount = 10

// Config parameterizes an Engine.
type Config struct {
	// TopN is how many keys are tracked per tick. Zero means 5.
	TopN int

	// WindowSize is the sliding window capacity W. Zero means
	// window.DefaultCapacity.
	WindowSize int

	// Keywords is the watch-list counted by raw substring match.
	Keywords []string

	// Stopwords used for tokenization. Nil means text.DefaultStopwords.
	Stopwords text.Stopwords

	// Palette colors the emitted series. The zero value falls back to
	// the default palette.
	Palette palette.Palette

	// Now is the tick clock. Nil means time.Now. Tests inject a fixed
	// clock here; nothing downstream reads the wall clock.
	Now func() time.Time

	// Logger for tick-scoped warnings. Nil means slog.Default.
	Logger *slog.Logger
}

// Point is one timestamped value in an emitted series. Err carries the
// standard deviation for sentiment points, zero for counts.
type Point struct {
	Time  time.Time
	Value float64
	Err   float64
}

// KeySeries is one key's visible history with its assigned color.
type KeySeries struct {
	Key    string
	Color  string
	Points []Point
}

// Output is the result of one successful tick. All slices are copies;
// the presentation layer may hold an Output across ticks.
type Output struct {
	At           time.Time
	TotalRecords int

	// Counts and Sentiments hold every tracked key's windowed history
	// in canonical order, colored by position.
	Counts     []KeySeries
	Sentiments []KeySeries

	// TopWords is the word-count bar view for this tick.
	TopWords []count.KeyCount

	// WatchCounts is the per-watch-keyword record count for this tick.
	WatchCounts []count.KeyCount
}

// Engine owns the aggregation state between ticks.
type Engine struct {
	topN     int
	keywords []string
	stop     text.Stopwords
	pal      palette.Palette
	now      func() time.Time
	logger   *slog.Logger

	src    source.Source
	scorer sentiment.Scorer

	counts *window.Store
	scores *window.Store

	inFlight atomic.Bool

	mu   sync.RWMutex
	last *Output
}

// New creates an Engine reading from src and scoring with scorer.
func New(src source.Source, scorer sentiment.Scorer, cfg Config) *Engine {
	if cfg.TopN <= 0 {
		cfg.TopN = 5
	}
	if cfg.Stopwords == nil {
		cfg.Stopwords = text.DefaultStopwords()
	}
	if len(cfg.Palette.Colors) == 0 {
		cfg.Palette = palette.Default()
	}
	if cfg.Now == nil {
		cfg.Now = time.Now
	}
	if cfg.Logger == nil {
		cfg.Logger = slog.Default()
	}

	return &Engine{
		topN:     cfg.TopN,
		keywords: append([]string(nil), cfg.Keywords...),
		stop:     cfg.Stopwords,
		pal:      cfg.Palette,
		now:      cfg.Now,
		logger:   cfg.Logger,
		src:      src,
		scorer:   scorer,
		counts:   window.NewStore(window.Config{Capacity: cfg.WindowSize}),
		scores: window.NewStore(window.Config{
			Capacity: cfg.WindowSize,
			Bounded:  true,
			MinValue: -1,
			MaxValue: 1,
		}),
	}
}

// Tick runs one poll cycle and returns the emitted output. On a source
// failure the tick aborts without touching store state and the previous
// output stays current. A trigger overlapping a running tick gets
// ErrTickInFlight.
func (e *Engine) Tick(ctx context.Context) (*Output, error) {
	if !e.inFlight.CompareAndSwap(false, true) {
		return nil, ErrTickInFlight
	}
	defer e.inFlight.Store(false)

	batch, err := e.src.FetchBatch(ctx)
	if err != nil {
		return nil, fmt.Errorf("engine: fetch from %s: %w", e.src.Name(), err)
	}

	now := e.now()

	// Windows advance on every tick, batch or no batch, so stale
	// history keeps draining at the configured cadence.
	e.counts.Advance(now)
	e.scores.Advance(now)

	if len(batch) == 0 {
		out := &Output{At: now}
		e.setLast(out)
		return out, nil
	}

	texts := source.Texts(batch)
	bag := count.BagOfWords(texts, e.stop)
	top := bag.TopN(e.topN)

	for _, kc := range top {
		smp := window.Sample{Value: float64(kc.Count), Time: now}
		if err := e.counts.Append(kc.Key, smp); err != nil {
			e.logger.Warn("dropping count sample", "key", kc.Key, "value", kc.Count, "error", err)
		}
	}

	// Sentiment tracks the same top-N ranking, scored over cleaned
	// text. Keys matching zero records this tick are skipped.
	cleaned := make([]string, len(texts))
	for i, t := range texts {
		cleaned[i] = text.Clean(t, e.stop)
	}
	for _, kc := range top {
		sum, ok := sentiment.Summarize(e.scorer, cleaned, kc.Key)
		if !ok {
			continue
		}
		smp := window.Sample{Value: sum.Mean, Err: sum.Std, Time: now}
		if err := e.scores.Append(kc.Key, smp); err != nil {
			e.logger.Warn("dropping sentiment sample", "key", kc.Key, "mean", sum.Mean, "error", err)
		}
	}

	out := &Output{
		At:           now,
		TotalRecords: len(batch),
		Counts:       e.emit(e.counts),
		Sentiments:   e.emit(e.scores),
		TopWords:     bag.TopN(topWordCount),
		WatchCounts:  count.KeywordCounts(texts, e.keywords),
	}
	e.setLast(out)
	return out, nil
}

// emit converts a store snapshot into colored output series. Colors are
// positional over the store's canonical key order.
func (e *Engine) emit(st *window.Store) []KeySeries {
	snaps := st.Snapshot()
	colors := e.pal.Assign(len(snaps))

	out := make([]KeySeries, len(snaps))
	for i, snap := range snaps {
		ks := KeySeries{
			Key:    snap.Key,
			Color:  colors[i],
			Points: make([]Point, len(snap.Samples)),
		}
		for j, smp := range snap.Samples {
			ks.Points[j] = Point{Time: smp.Time, Value: smp.Value, Err: smp.Err}
		}
		out[i] = ks
	}
	return out
}

// LastOutput returns the most recent successful emission, or nil before
// the first successful tick. Failed ticks never replace it.
func (e *Engine) LastOutput() *Output {
	e.mu.RLock()
	defer e.mu.RUnlock()
	return e.last
}

func (e *Engine) setLast(out *Output) {
	e.mu.Lock()
	e.last = out
	e.mu.Unlock()
}

// Run ticks at the given interval until ctx is canceled, passing each
// successful output to fn. Tick errors are logged and the loop keeps
// going; the previous output remains current across failures.
func (e *Engine) Run(ctx context.Context, interval time.Duration, fn func(*Output)) error {
	ticker := time.NewTicker(interval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return ctx.Err()
		case <-ticker.C:
			out, err := e.Tick(ctx)
			if err != nil {
				if errors.Is(err, ErrTickInFlight) {
					e.logger.Debug("tick trigger dropped, previous tick still running")
					continue
				}
				e.logger.Error("tick failed", "error", err)
				continue
			}
			if fn != nil {
				fn(out)
			}
		}
	}
}
