// Package count computes per-batch word and watch-keyword frequencies and
// selects the top-N keys for display. Counting always runs over the full
// batch snapshot for a tick; there is no incremental state across ticks.
package count

import (
	"sort"
	"strings"

	"gitlab.com/tinyland/lab/trend-pulse/pkg/text"
)

// KeyCount pairs a key with its occurrence count for one tick.
type KeyCount struct {
	Key   string
	Count int
}

// Counts is an insertion-ordered token counter. The first-seen order of
// keys is retained so that top-N selection can break count ties
// deterministically instead of depending on map iteration order.
type Counts struct {
	counts map[string]int
	order  []string
}

// NewCounts returns an empty counter.
func NewCounts() *Counts {
	return &Counts{counts: make(map[string]int)}
}

// Add increments the count for key, recording first-seen order.
func (c *Counts) Add(key string) {
	if _, ok := c.counts[key]; !ok {
		c.order = append(c.order, key)
	}
	c.counts[key]++
}

// Get returns the count for key, zero if absent.
func (c *Counts) Get(key string) int {
	return c.counts[key]
}

// Len returns the number of distinct keys.
func (c *Counts) Len() int {
	return len(c.order)
}

// TopN returns the n highest-count keys in descending count order. Ties
// are broken by first-seen order in the batch. If fewer than n distinct
// keys exist, all of them are returned with no padding.
func (c *Counts) TopN(n int) []KeyCount {
	ranked := make([]KeyCount, 0, len(c.order))
	for _, key := range c.order {
		ranked = append(ranked, KeyCount{Key: key, Count: c.counts[key]})
	}
	sort.SliceStable(ranked, func(i, j int) bool {
		return ranked[i].Count > ranked[j].Count
	})
	if n < len(ranked) {
		ranked = ranked[:n]
	}
	return ranked
}

// BagOfWords tokenizes every record text in the batch and counts token
// occurrences across the whole batch.
func BagOfWords(texts []string, stop text.Stopwords) *Counts {
	c := NewCounts()
	for _, t := range texts {
		for _, tok := range text.Tokenize(t, stop) {
			c.Add(tok)
		}
	}
	return c
}

// KeywordCounts counts, per watch keyword, the number of records whose
// raw text contains the keyword as a case-insensitive substring. This is
// deliberately not token-based: hashtags like "#climatechange" are not
// single alphabetic tokens after normalization, but they are still
// matchable substrings of the raw text. Result order follows keywords.
func KeywordCounts(texts, keywords []string) []KeyCount {
	lowered := make([]string, len(keywords))
	out := make([]KeyCount, len(keywords))
	for i, kw := range keywords {
		lowered[i] = strings.ToLower(kw)
		out[i] = KeyCount{Key: kw}
	}
	for _, t := range texts {
		row := strings.ToLower(t)
		for i, kw := range lowered {
			if strings.Contains(row, kw) {
				out[i].Count++
			}
		}
	}
	return out
}
