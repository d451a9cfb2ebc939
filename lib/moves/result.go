package moves

import (
	"github.com/pescuma/movedetect/lib/model"
	"github.com/pescuma/movedetect/lib/steps"
)

const (
	StatReportFiles = "reportFiles"
	StatDbFiles     = "dbFiles"
	StatAddedFiles  = "addedFiles"
	StatMovedFiles  = "movedFiles"
)

type Statistics struct {
	ReportFiles steps.Stat
	DbFiles     steps.Stat
	AddedFiles  steps.Stat
	MovedFiles  steps.Stat
}

func (s *Statistics) Publish(target steps.Statistics) {
	target.Add(StatReportFiles, s.ReportFiles)
	target.Add(StatDbFiles, s.DbFiles)
	target.Add(StatAddedFiles, s.AddedFiles)
	target.Add(StatMovedFiles, s.MovedFiles)
}

type Result struct {
	Moves []*model.Move

	// Added are the files of the report that are new: not known before by key
	// and not detected as moved.
	Added []*model.ReportFile

	// Matrix is nil when no matrix was built.
	Matrix *ScoreMatrix

	Statistics Statistics
}

// Register pushes the result to the repositories used by the rest of the
// pipeline.
func (r *Result) Register(moved *MemoryMovedFilesRepository, added AddedFileRepository) error {
	for _, m := range r.Moves {
		err := moved.SetOriginalFile(m.File, OriginalFile{Key: m.Original.Key, UUID: m.Original.UUID})
		if err != nil {
			return err
		}
	}

	for _, f := range r.Added {
		added.Register(f)
	}

	return nil
}
