// Package sentiment integrates an external polarity scorer and aggregates
// per-keyword score summaries for one batch. The scorer is a black box
// behind the Scorer interface; the default implementation is VADER, the
// same rule-based model the data was originally scored with.
package sentiment

import (
	"math"
	"strings"

	"github.com/jonreiter/govader"
)

// Scorer computes a compound polarity score in [-1, 1] for a cleaned
// text string. Implementations must be deterministic for a given input.
type Scorer interface {
	Score(text string) float64
}

// VADER wraps a govader analyzer as a Scorer.
type VADER struct {
	analyzer *govader.SentimentIntensityAnalyzer
}

// NewVADER returns a VADER-backed Scorer.
func NewVADER() *VADER {
	return &VADER{analyzer: govader.NewSentimentIntensityAnalyzer()}
}

// Score returns the VADER compound polarity of text.
func (v *VADER) Score(text string) float64 {
	return v.analyzer.PolarityScores(text).Compound
}

// Summary is the per-tick sentiment sample for one keyword: the mean and
// population standard deviation of compound scores across the matching
// records in the batch.
type Summary struct {
	Mean float64
	Std  float64
}

// Summarize scores every text containing keyword as a case-insensitive
// substring and returns the mean/std of those scores. The second return
// is false when no text matches; the keyword must then be omitted from
// the tick's sentiment update, since the moments of an empty set are
// undefined rather than zero.
func Summarize(scorer Scorer, texts []string, keyword string) (Summary, bool) {
	kw := strings.ToLower(keyword)

	var scores []float64
	for _, t := range texts {
		if strings.Contains(strings.ToLower(t), kw) {
			scores = append(scores, scorer.Score(t))
		}
	}
	if len(scores) == 0 {
		return Summary{}, false
	}

	var sum float64
	for _, s := range scores {
		sum += s
	}
	mean := sum / float64(len(scores))

	var sq float64
	for _, s := range scores {
		d := s - mean
		sq += d * d
	}
	std := math.Sqrt(sq / float64(len(scores)))

	return Summary{Mean: mean, Std: std}, true
}
