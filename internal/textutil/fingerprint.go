package textutil

import (
	"math"
	"regexp"
	"strings"
)

var tokenSplitPattern = regexp.MustCompile(`[^\p{L}\p{N}]+`)

// Fingerprint is a term-frequency vector used to rank lookup results.
type Fingerprint struct {
	counts map[string]float64
	norm   float64
}

// NewFingerprint builds a fingerprint from text. Returns nil if text holds no
// tokens.
func NewFingerprint(text string) *Fingerprint {
	tokens := Tokenize(text)
	if len(tokens) == 0 {
		return nil
	}
	fp := &Fingerprint{counts: make(map[string]float64, len(tokens))}
	for _, token := range tokens {
		fp.counts[token]++
	}
	var sum float64
	for _, c := range fp.counts {
		sum += c * c
	}
	fp.norm = math.Sqrt(sum)
	return fp
}

// Tokenize lowercases text and splits it on anything that is not a letter or
// digit. Single-rune tokens are dropped.
func Tokenize(text string) []string {
	raw := tokenSplitPattern.Split(strings.ToLower(text), -1)
	out := make([]string, 0, len(raw))
	for _, token := range raw {
		if len([]rune(token)) < 2 {
			continue
		}
		out = append(out, token)
	}
	return out
}

// Similarity returns the cosine similarity of two fingerprints in [0,1].
func (f *Fingerprint) Similarity(other *Fingerprint) float64 {
	if f == nil || other == nil || f.norm == 0 || other.norm == 0 {
		return 0
	}
	var dot float64
	for token, c := range f.counts {
		dot += c * other.counts[token]
	}
	return dot / (f.norm * other.norm)
}

// Similarity compares two strings by token overlap.
func Similarity(a, b string) float64 {
	return NewFingerprint(a).Similarity(NewFingerprint(b))
}
