package moves

import (
	"github.com/pkg/errors"

	"github.com/pescuma/movedetect/lib/model"
	"github.com/pescuma/movedetect/lib/steps"
)

// Inputs loads the files on both sides of the detection. For pull requests the
// db files are the files of the target branch.
type Inputs interface {
	DbFiles() ([]*model.DbFile, error)
	ReportFiles() ([]*model.ReportFile, error)
}

type StaticInputs struct {
	Db     []*model.DbFile
	Report []*model.ReportFile
}

func (s *StaticInputs) DbFiles() ([]*model.DbFile, error) {
	return s.Db, nil
}

func (s *StaticInputs) ReportFiles() ([]*model.ReportFile, error) {
	return s.Report, nil
}

// DetectionStep runs a detector as a pipeline step, pushing the results to the
// repositories and the step statistics.
type DetectionStep struct {
	description string
	detect      func(ctx *steps.AnalysisContext, db []*model.DbFile, report []*model.ReportFile) *Result
	inputs      Inputs
	moved       *MemoryMovedFilesRepository
	added       AddedFileRepository

	result *Result
}

func NewFileMoveDetectionStep(detector *Detector, inputs Inputs, moved *MemoryMovedFilesRepository, added AddedFileRepository) *DetectionStep {
	return &DetectionStep{
		description: "Detect file moves",
		detect:      detector.Detect,
		inputs:      inputs,
		moved:       moved,
		added:       added,
	}
}

func NewPullRequestFileMoveDetectionStep(detector *PullRequestDetector, inputs Inputs, moved *MemoryMovedFilesRepository, added AddedFileRepository) *DetectionStep {
	return &DetectionStep{
		description: "Detect file moves in pull request",
		detect:      detector.Detect,
		inputs:      inputs,
		moved:       moved,
		added:       added,
	}
}

func (s *DetectionStep) Description() string {
	return s.description
}

func (s *DetectionStep) Execute(ctx *steps.Context) error {
	db, err := s.inputs.DbFiles()
	if err != nil {
		return errors.Wrap(err, "error loading db files")
	}

	report, err := s.inputs.ReportFiles()
	if err != nil {
		return errors.Wrap(err, "error loading report files")
	}

	result := s.detect(ctx.Analysis, db, report)

	err = result.Register(s.moved, s.added)
	if err != nil {
		return err
	}

	result.Statistics.Publish(ctx.Statistics)

	s.result = result
	return nil
}

// Result is nil until the step is executed.
func (s *DetectionStep) Result() *Result {
	return s.result
}
