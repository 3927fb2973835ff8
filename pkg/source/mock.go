package source

import (
	"context"
	"fmt"
	"math/rand"
	"sync"
	"time"
)

// mockOpeners and mockClosers are phrase fragments combined into
// synthetic posts. The vocabulary leans positive and negative so the
// sentiment view has signal to show.
var mockOpeners = []string{
	"I love the progress on",
	"So inspired by everyone behind",
	"Honestly furious about the inaction on",
	"We cannot keep ignoring",
	"Great news today for",
	"Terrible reporting again about",
	"Feeling hopeful about",
	"Devastated by the latest numbers on",
}

var mockClosers = []string{
	"this changes everything",
	"share if you agree",
	"the data speaks for itself",
	"politicians must act now",
	"small wins still matter",
	"what a disaster",
	"proud of this community",
	"read the full report",
}

// Mock is a seeded synthetic source. Each FetchBatch grows the simulated
// table by a few rows and returns the whole accumulated batch, the same
// shape a polled database produces. An error can be injected to exercise
// failure paths.
type Mock struct {
	mu       sync.Mutex
	rng      *rand.Rand
	keywords []string
	batch    []Record
	growth   int

	// Err, when non-nil, is returned by the next FetchBatch calls.
	Err error
}

// NewMock creates a mock source around the given watch keywords. seed 0
// derives a seed from the current time.
func NewMock(keywords []string, seed int64) *Mock {
	if seed == 0 {
		seed = time.Now().UnixNano()
	}
	return &Mock{
		rng:      rand.New(rand.NewSource(seed)),
		keywords: append([]string(nil), keywords...),
		growth:   4,
	}
}

// Name implements Source.
func (m *Mock) Name() string { return "mock" }

// FetchBatch appends a few synthetic posts and returns a copy of the
// accumulated batch.
func (m *Mock) FetchBatch(ctx context.Context) ([]Record, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	if m.Err != nil {
		return nil, m.Err
	}
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	for i := 0; i < m.growth; i++ {
		m.batch = append(m.batch, m.post())
	}

	out := make([]Record, len(m.batch))
	copy(out, m.batch)
	return out, nil
}

// post builds one synthetic record mentioning a random watch keyword.
func (m *Mock) post() Record {
	id := int64(len(m.batch) + 1)
	opener := mockOpeners[m.rng.Intn(len(mockOpeners))]
	closer := mockClosers[m.rng.Intn(len(mockClosers))]

	kw := ""
	if len(m.keywords) > 0 {
		kw = m.keywords[m.rng.Intn(len(m.keywords))]
	}

	return Record{
		ID:        id,
		Text:      fmt.Sprintf("%s %s, %s", opener, kw, closer),
		CreatedAt: time.Now(),
	}
}
