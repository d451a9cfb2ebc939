package steps

import "github.com/pescuma/movedetect/lib/model"

// AnalysisContext describes the analysis being processed.
type AnalysisContext struct {
	Analysis *model.Analysis

	// MainBranch is the name of the main branch of the project.
	MainBranch string

	// FirstAnalysis is true when there is no previous analysis of the branch.
	FirstAnalysis bool
}

func (c *AnalysisContext) IsPullRequest() bool {
	return c.Analysis != nil && c.Analysis.IsPullRequest()
}

// SupportsFileMoveDetection tells if computing moves from content makes sense:
// pull requests rely on scanner hints instead, and the first analysis of a
// branch other than the main one has nothing to compare with.
func (c *AnalysisContext) SupportsFileMoveDetection() bool {
	if c.Analysis == nil || c.IsPullRequest() {
		return false
	}

	if c.FirstAnalysis && c.MainBranch != "" && c.Analysis.Branch != c.MainBranch {
		return false
	}

	return true
}
