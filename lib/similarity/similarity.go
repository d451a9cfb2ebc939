// Package similarity scores how much of the content of a file survived in
// another file, from their line hashes.
package similarity

import (
	"math"

	"github.com/pescuma/movedetect/lib/linediff"
)

const (
	MinScore = 0
	MaxScore = 100
)

// Scorer computes a similarity score between two line hash sequences. It must
// be pure and symmetric.
type Scorer interface {
	Score(a, b []string) int
}

type ScorerFunc func(a, b []string) int

func (f ScorerFunc) Score(a, b []string) int {
	return f(a, b)
}

// LCSScorer is the default Scorer.
var LCSScorer Scorer = ScorerFunc(Score)

// Score returns round(100 * 2L / (len(a) + len(b))) where L is the length of
// the longest common subsequence of both sequences. Lines that were not
// touched by an edit keep their hash and their relative order, so they stay in
// the common subsequence even when other lines were added or removed.
//
// If any of the sequences is empty the score is 0.
func Score(a, b []string) int {
	if len(a) == 0 || len(b) == 0 {
		return MinScore
	}

	common := LongestCommonSubsequence(a, b)

	return int(math.Round(MaxScore * 2 * float64(common) / float64(len(a)+len(b))))
}

// LongestCommonSubsequence returns the length of the longest common
// subsequence of both sequences.
func LongestCommonSubsequence(a, b []string) int {
	if len(a) == 0 || len(b) == 0 {
		return 0
	}

	// Without timeout the diff is minimal, so what it keeps equal is an LCS
	diffs := linediff.DiffLines(a, b, 0)

	return linediff.Count(diffs, linediff.DiffEqual)
}
