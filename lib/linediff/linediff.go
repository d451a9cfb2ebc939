package linediff

import (
	"strings"
	"time"
	"unicode/utf8"

	"github.com/sergi/go-diff/diffmatchpatch"
)

type Diff struct {
	Type  Operation
	Lines int
}

type Operation int8

const (
	DiffDelete Operation = Operation(diffmatchpatch.DiffDelete)
	DiffInsert Operation = Operation(diffmatchpatch.DiffInsert)
	DiffEqual  Operation = Operation(diffmatchpatch.DiffEqual)
)

// DoWithTimeout diffs two texts line by line.
func DoWithTimeout(src, dst string, timeout time.Duration) []Diff {
	return DiffLines(strings.SplitAfter(src, "\n"), strings.SplitAfter(dst, "\n"), timeout)
}

// DiffLines diffs two sequences of lines (or of anything identifying a line,
// like line hashes). A timeout <= 0 means no timeout, and then the result is a
// minimal diff: the equal parts form a longest common subsequence.
func DiffLines(src, dst []string, timeout time.Duration) []Diff {
	dmp := diffmatchpatch.New()
	dmp.DiffTimeout = timeout
	wSrc, wDst := linesToIndexes(src, dst)
	dmpd := dmp.DiffMainRunes(wSrc, wDst, false)
	return indexesToDiff(dmpd)
}

// Count sums the lines of all diffs of the given type.
func Count(diffs []Diff, op Operation) int {
	result := 0
	for _, d := range diffs {
		if d.Type == op {
			result += d.Lines
		}
	}
	return result
}

func indexesToDiff(diffs []diffmatchpatch.Diff) []Diff {
	hydrated := make([]Diff, 0, len(diffs))
	for _, aDiff := range diffs {
		hydrated = append(hydrated, Diff{
			Type:  Operation(aDiff.Type),
			Lines: len([]rune(aDiff.Text)),
		})
	}
	return hydrated
}

func linesToIndexes(lines1, lines2 []string) ([]rune, []rune) {
	lineToIndex := make(map[string]int)
	indexes1 := toIndexes(lines1, lineToIndex)
	indexes2 := toIndexes(lines2, lineToIndex)
	return indexes1, indexes2
}

func toIndexes(lines []string, lineToIndex map[string]int) []rune {
	result := make([]rune, len(lines))
	for i, line := range lines {
		lineValue, ok := lineToIndex[line]

		if !ok {
			lineValue = len(lineToIndex)
			lineToIndex[line] = lineValue
		}

		result[i] = indexToRune(lineValue)
	}
	return result
}

const surrogatesSize = 0xE000 - 0xD800

// MaxDistinctLines is the number of distinct lines that can be told apart. The
// diff library handles texts as strings internally, so indexes must be valid
// runes: the surrogate range is skipped and every line past the limit shares
// the last rune.
const MaxDistinctLines = utf8.MaxRune + 1 - surrogatesSize

func indexToRune(i int) rune {
	if i >= MaxDistinctLines {
		i = MaxDistinctLines - 1
	}
	if i >= 0xD800 {
		i += surrogatesSize
	}
	return rune(i)
}
