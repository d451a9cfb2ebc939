package moves

import (
	"github.com/oleiade/lane/v2"
)

type match struct {
	removed int
	added   int
	score   int
}

// greedyMatch repeatedly picks the cell with the highest score, ties going to
// the lowest removed index and then the lowest added index, and removes its
// row and column. It stops when the best remaining cell is below minScore.
// This is not an optimal assignment.
func greedyMatch(matrix *ScoreMatrix, minScore int) []match {
	rows := matrix.Rows()
	cols := matrix.Cols()
	cells := int64(rows) * int64(cols)

	// Priority sorts by score, then by reversed linear index so that, for the
	// same score, the lowest (removed, added) pair comes first
	queue := lane.NewMaxPriorityQueue[match, int64]()
	for i := 0; i < rows; i++ {
		for j := 0; j < cols; j++ {
			score := matrix.Cell(i, j)
			if score < minScore {
				continue
			}

			linear := int64(i)*int64(cols) + int64(j)
			queue.Push(match{removed: i, added: j, score: score}, int64(score)*cells+(cells-1-linear))
		}
	}

	usedRemoved := make([]bool, rows)
	usedAdded := make([]bool, cols)

	var result []match
	for !queue.Empty() {
		m, _, ok := queue.Pop()
		if !ok {
			break
		}

		if usedRemoved[m.removed] || usedAdded[m.added] {
			continue
		}

		usedRemoved[m.removed] = true
		usedAdded[m.added] = true
		result = append(result, m)
	}

	return result
}
