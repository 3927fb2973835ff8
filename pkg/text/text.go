// Package text provides tokenization and normalization for short social
// posts. Tokenize lowercases input, splits on non-letter runs, keeps only
// fully alphabetic tokens, and drops stopwords. Clean rebuilds a cleaned
// document from the surviving tokens. Both are pure functions.
package text

import (
	"strings"
	"unicode"
)

// Stopwords is a set of tokens excluded from word counts.
type Stopwords map[string]struct{}

// NewStopwords builds a set from the given words, lowercasing each.
func NewStopwords(words ...string) Stopwords {
	s := make(Stopwords, len(words))
	for _, w := range words {
		s[strings.ToLower(w)] = struct{}{}
	}
	return s
}

// With returns a new set containing the receiver's words plus extra.
// The receiver is not modified.
func (s Stopwords) With(extra ...string) Stopwords {
	out := make(Stopwords, len(s)+len(extra))
	for w := range s {
		out[w] = struct{}{}
	}
	for _, w := range extra {
		out[strings.ToLower(w)] = struct{}{}
	}
	return out
}

// Contains reports whether w is in the set. A nil set contains nothing.
func (s Stopwords) Contains(w string) bool {
	_, ok := s[w]
	return ok
}

// Tokenize lowercases raw text, splits it on runs of non-letter characters,
// and returns the tokens that are fully alphabetic and not stopwords.
// Empty or whitespace-only input yields a nil slice.
//
// Hashtags and mentions do not survive as single tokens: "#climatechange"
// splits at the '#' and contributes "climatechange" instead. Watch-keyword
// counting is substring-based for exactly this reason (see pkg/count).
func Tokenize(raw string, stop Stopwords) []string {
	if raw == "" {
		return nil
	}

	fields := strings.FieldsFunc(strings.ToLower(raw), func(r rune) bool {
		return !unicode.IsLetter(r)
	})

	var tokens []string
	for _, f := range fields {
		if !alphabetic(f) {
			continue
		}
		if stop.Contains(f) {
			continue
		}
		tokens = append(tokens, f)
	}
	return tokens
}

// Clean tokenizes raw and joins the surviving tokens with single spaces,
// producing the cleaned document used for sentiment scoring.
func Clean(raw string, stop Stopwords) string {
	return strings.Join(Tokenize(raw, stop), " ")
}

// alphabetic reports whether s is non-empty and all letters.
func alphabetic(s string) bool {
	if s == "" {
		return false
	}
	for _, r := range s {
		if !unicode.IsLetter(r) {
			return false
		}
	}
	return true
}
