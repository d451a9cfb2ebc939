package model

import "time"

type Analysis struct {
	ID         ID
	ProjectKey string
	Branch     string
	Revision   string
	Date       time.Time

	// PullRequest is empty for branch analyses.
	PullRequest  string
	TargetBranch string
}

func (a *Analysis) IsPullRequest() bool {
	return a.PullRequest != ""
}

// Snapshot is the state of the files of a project as seen by one analysis.
type Snapshot struct {
	Analysis *Analysis
	Files    *FileSet[*DbFile]
}

func NewSnapshot(analysis *Analysis) *Snapshot {
	return &Snapshot{
		Analysis: analysis,
		Files:    NewFileSet[*DbFile](),
	}
}
