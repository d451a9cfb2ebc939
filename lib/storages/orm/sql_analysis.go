package orm

import (
	"time"

	"github.com/pescuma/movedetect/lib/model"
)

type sqlAnalysis struct {
	ID           model.ID `gorm:"primaryKey"`
	ProjectKey   string   `gorm:"index:idx_analysis_branch"`
	Branch       string   `gorm:"index:idx_analysis_branch"`
	Revision     string
	Date         time.Time
	PullRequest  string
	TargetBranch string

	CreatedAt time.Time
	UpdatedAt time.Time
}

func newSqlAnalysis(a *model.Analysis) *sqlAnalysis {
	return &sqlAnalysis{
		ID:           a.ID,
		ProjectKey:   a.ProjectKey,
		Branch:       a.Branch,
		Revision:     a.Revision,
		Date:         a.Date,
		PullRequest:  a.PullRequest,
		TargetBranch: a.TargetBranch,
	}
}

func (s *sqlAnalysis) ToModel() *model.Analysis {
	return &model.Analysis{
		ID:           s.ID,
		ProjectKey:   s.ProjectKey,
		Branch:       s.Branch,
		Revision:     s.Revision,
		Date:         s.Date,
		PullRequest:  s.PullRequest,
		TargetBranch: s.TargetBranch,
	}
}

func (s *sqlAnalysis) CacheKey() string {
	return s.ID.String()
}
