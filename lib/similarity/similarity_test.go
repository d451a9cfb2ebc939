package similarity

import (
	"fmt"
	"math/rand"
	"testing"

	"github.com/bloomberg/go-testgroup"
	"github.com/stretchr/testify/assert"
)

func TestScore(t *testing.T) {
	testgroup.RunInParallel(t, &ScoreTests{})
}

type ScoreTests struct {
}

func (g *ScoreTests) Identical(t *testgroup.T) {
	a := lines("a", "b", "c", "d", "e", "f", "g")

	t.Equal(100, Score(a, a))
}

func (g *ScoreTests) Disjoint(t *testgroup.T) {
	t.Equal(0, Score(lines("a", "b", "c"), lines("x", "y", "z")))
}

func (g *ScoreTests) EmptySides(t *testgroup.T) {
	t.Equal(0, Score(nil, lines("a")))
	t.Equal(0, Score(lines("a"), []string{}))
	t.Equal(0, Score(nil, nil))
}

func (g *ScoreTests) TwoOfSevenLinesChanged(t *testgroup.T) {
	a := lines("package a", "", "func foo() {", "  return 1", "}", "", "// end")
	b := lines("package a", "", "func bar() {", "  return 2", "}", "", "// end")

	// 2 * 5 / 14
	t.Equal(71, Score(a, b))
}

func (g *ScoreTests) InsertedLinesKeepOrder(t *testgroup.T) {
	a := lines("a", "b", "c", "d")
	b := lines("a", "x", "b", "c", "y", "d")

	// 2 * 4 / 10
	t.Equal(80, Score(a, b))
}

func (g *ScoreTests) ReorderedLinesAreNotAllCommon(t *testgroup.T) {
	a := lines("a", "b", "c", "d")
	b := lines("d", "c", "b", "a")

	// LCS is 1
	t.Equal(25, Score(a, b))
}

func (g *ScoreTests) Rounding(t *testgroup.T) {
	// 2 * 2 / 3 = 1.333
	t.Equal(67, Score(lines("a", "b"), lines("a", "b", "c")))
}

func (g *ScoreTests) DuplicatedLines(t *testgroup.T) {
	a := lines("", "", "}", "}", "")
	b := lines("", "}", "", "}", "")

	t.Equal(4, LongestCommonSubsequence(a, b))
}

func TestScoreProperties(t *testing.T) {
	t.Parallel()

	rnd := rand.New(rand.NewSource(42))

	for i := 0; i < 300; i++ {
		a := randomLines(rnd, rnd.Intn(30), 6)
		b := randomLines(rnd, rnd.Intn(30), 6)

		expected := referenceLCS(a, b)
		assert.Equal(t, expected, LongestCommonSubsequence(a, b), "lcs(%v, %v)", a, b)
		assert.Equal(t, expected, LongestCommonSubsequence(b, a), "lcs(%v, %v)", b, a)

		s := Score(a, b)
		assert.Equal(t, s, Score(b, a), "symmetry")
		assert.GreaterOrEqual(t, s, MinScore)
		assert.LessOrEqual(t, s, MaxScore)

		if len(a) > 0 {
			assert.Equal(t, MaxScore, Score(a, a))
		}
	}
}

func TestScorerFunc(t *testing.T) {
	t.Parallel()

	assert.Equal(t, 100, LCSScorer.Score(lines("a"), lines("a")))
}

func lines(ls ...string) []string {
	return ls
}

func randomLines(rnd *rand.Rand, size int, alphabet int) []string {
	result := make([]string, size)
	for i := range result {
		result[i] = fmt.Sprintf("h%v", rnd.Intn(alphabet))
	}
	return result
}

func referenceLCS(a, b []string) int {
	dp := make([][]int, len(a)+1)
	for i := range dp {
		dp[i] = make([]int, len(b)+1)
	}

	for i := 1; i <= len(a); i++ {
		for j := 1; j <= len(b); j++ {
			if a[i-1] == b[j-1] {
				dp[i][j] = dp[i-1][j-1] + 1
			} else {
				dp[i][j] = max(dp[i-1][j], dp[i][j-1])
			}
		}
	}

	return dp[len(a)][len(b)]
}
