package main

import (
	"fmt"
	"time"

	"github.com/pescuma/movedetect/lib/analysis"
	"github.com/pescuma/movedetect/lib/importers/common"
	"github.com/pescuma/movedetect/lib/importers/fs"
	"github.com/pescuma/movedetect/lib/importers/git"
	"github.com/pescuma/movedetect/lib/workspace"
)

type AnalyzeCmd struct {
	Path string `arg:"" help:"Root dir of the project. With --git, may also be a dir that contains only one repository." type:"existingdir"`

	Project    string    `short:"p" required:"" help:"Key of the project."`
	Branch     string    `short:"b" help:"Branch being analyzed. Defaults to the current git branch when using --git."`
	Revision   string    `short:"r" help:"Revision being analyzed. With --git, the revision to read files from."`
	Date       time.Time `help:"Date of the analysis. Defaults to now, or the commit date when using --git." format:"2006-01-02T15:04:05Z07:00"`
	MainBranch string    `help:"Main branch of the project. Defaults to the one configured, or main."`

	PullRequest  string `help:"Pull request being analyzed."`
	TargetBranch string `help:"Target branch of the pull request."`

	Git bool `help:"Read files from a git revision instead of from the working dir."`

	common.FilterOptions `embed:""`
}

func (c *AnalyzeCmd) Run(ctx *context) error {
	opts := analysis.Options{
		ProjectKey:   c.Project,
		Branch:       c.Branch,
		Date:         c.Date,
		MainBranch:   c.MainBranch,
		PullRequest:  c.PullRequest,
		TargetBranch: c.TargetBranch,
	}

	var result *analysis.Result
	var err error
	if c.Git {
		result, err = ctx.ws.AnalyzeGit(c.Path, &workspace.AnalyzeGitOptions{
			Analysis: opts,
			Revision: c.Revision,
			Import:   git.Options{FilterOptions: c.FilterOptions},
		})
	} else {
		opts.Revision = c.Revision
		result, err = ctx.ws.AnalyzeDir(c.Path, &workspace.AnalyzeDirOptions{
			Analysis: opts,
			Import:   fs.Options{FilterOptions: c.FilterOptions},
		})
	}
	if err != nil {
		return err
	}

	fmt.Printf("Analysis %v\n", result.Analysis.ID)
	fmt.Println(renderStatistics(result.Statistics))

	if len(result.Moves) > 0 {
		fmt.Println()
		fmt.Println(renderMoves(result.Moves))
	}

	return nil
}
