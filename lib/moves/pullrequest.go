package moves

import (
	"github.com/pescuma/movedetect/lib/consoles"
	"github.com/pescuma/movedetect/lib/model"
	"github.com/pescuma/movedetect/lib/steps"
)

// PullRequestDetector does not compare contents: it trusts the previous path
// that the scanner attached to each file and looks it up in the files of the
// target branch.
type PullRequestDetector struct {
	console consoles.Console
}

func NewPullRequestDetector(console consoles.Console) *PullRequestDetector {
	return &PullRequestDetector{
		console: console,
	}
}

// Detect returns the same kind of result as Detector.Detect. It only applies
// to pull request analyses.
func (d *PullRequestDetector) Detect(ctx *steps.AnalysisContext, targetBranchFiles []*model.DbFile, reportFiles []*model.ReportFile) *Result {
	if ctx == nil || !ctx.IsPullRequest() {
		d.console.Debugf("Pull request file move detection only applies to pull requests\n")
		return &Result{}
	}

	target := model.NewFileSet(targetBranchFiles...)
	report := model.NewFileSet(reportFiles...)

	result := &Result{
		Statistics: Statistics{
			ReportFiles: steps.Value(len(reportFiles)),
			DbFiles:     steps.Value(len(targetBranchFiles)),
		},
	}

	used := map[string]bool{}
	for _, f := range report.List() {
		if target.Contains(f.Key) {
			continue
		}

		original, ok := d.findOriginal(ctx, target, f)
		if ok && !used[original.Key] {
			used[original.Key] = true
			result.Moves = append(result.Moves, &model.Move{
				File:     f,
				Original: original,
				Score:    model.MoveScoreUnknown,
			})
			continue
		}

		result.Added = append(result.Added, f)
	}

	result.Statistics.AddedFiles = steps.Value(len(result.Added))
	result.Statistics.MovedFiles = steps.Value(len(result.Moves))

	return result
}

func (d *PullRequestDetector) findOriginal(ctx *steps.AnalysisContext, target *model.FileSet[*model.DbFile], f *model.ReportFile) (*model.DbFile, bool) {
	if f.OldRelativePath == "" {
		return nil, false
	}

	key := model.FileKey(ctx.Analysis.ProjectKey, f.OldRelativePath)

	original, ok := target.Get(key)
	if !ok {
		d.console.Debugf("Previous path of %v not found in target branch: %v\n", f.Key, f.OldRelativePath)
		return nil, false
	}

	return original, true
}
