package moves

import (
	"github.com/pescuma/movedetect/lib/model"
)

// ScoreMatrix holds the similarity scores of every (removed, added) pair.
// Scores are filled by the detector, one cell at a time. Cells never set are 0.
type ScoreMatrix struct {
	Removed []*model.DbFile
	Added   []*model.ReportFile

	scores   []uint8
	maxScore int
	scored   int
}

func NewScoreMatrix(removed []*model.DbFile, added []*model.ReportFile) *ScoreMatrix {
	return &ScoreMatrix{
		Removed: removed,
		Added:   added,
		scores:  make([]uint8, len(removed)*len(added)),
	}
}

func (m *ScoreMatrix) Rows() int {
	return len(m.Removed)
}

func (m *ScoreMatrix) Cols() int {
	return len(m.Added)
}

func (m *ScoreMatrix) Cell(removed, added int) int {
	return int(m.scores[m.index(removed, added)])
}

func (m *ScoreMatrix) Set(removed, added int, score int) {
	if score < 0 || score > 100 {
		panic("score out of range")
	}

	m.scores[m.index(removed, added)] = uint8(score)
	m.scored++

	if score > m.maxScore {
		m.maxScore = score
	}
}

// MaxScore returns false when the matrix has no cells.
func (m *ScoreMatrix) MaxScore() (int, bool) {
	if len(m.Removed) == 0 || len(m.Added) == 0 {
		return 0, false
	}

	return m.maxScore, true
}

// ScoredCells is the number of cells that went through the scorer.
func (m *ScoreMatrix) ScoredCells() int {
	return m.scored
}

func (m *ScoreMatrix) index(removed, added int) int {
	if removed < 0 || removed >= len(m.Removed) || added < 0 || added >= len(m.Added) {
		panic("cell out of range")
	}

	return removed*len(m.Added) + added
}

// Dump sends the matrix to a dumper. The dumper must not change it.
func (m *ScoreMatrix) Dump(dumper Dumper) error {
	return dumper.Dump(m)
}
