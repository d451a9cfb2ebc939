package main

import (
	"fmt"
	"time"

	"github.com/dustin/go-humanize"
	"github.com/samber/lo"

	"github.com/pescuma/movedetect/lib/model"
	"github.com/pescuma/movedetect/lib/storages"
)

type ShowAnalysesCmd struct {
	Project string `short:"p" required:"" help:"Key of the project."`
}

func (c *ShowAnalysesCmd) Run(ctx *context) error {
	analyses, err := ctx.ws.ListAnalyses(c.Project)
	if err != nil {
		return err
	}

	rows := lo.Map(analyses, func(a *model.Analysis, _ int) []string {
		return []string{
			a.ID.String(),
			a.Branch,
			a.PullRequest,
			a.Revision,
			a.Date.Local().Format(time.DateTime),
			humanize.Time(a.Date),
		}
	})

	fmt.Println(renderTable([]string{"ID", "Branch", "Pull request", "Revision", "Date", ""}, rows, nil))

	return nil
}

type ShowMovesCmd struct {
	Project  string `short:"p" required:"" help:"Key of the project."`
	Analysis int    `short:"a" help:"ID of the analysis. Defaults to the last one."`
}

func (c *ShowMovesCmd) Run(ctx *context) error {
	a, err := ctx.ws.FindAnalysis(c.Project, model.ID(c.Analysis))
	if err != nil {
		return err
	}

	ms, err := ctx.ws.LoadMoves(a)
	if err != nil {
		return err
	}

	if len(ms) == 0 {
		fmt.Printf("No moved files in analysis %v\n", a.ID)
		return nil
	}

	rows := lo.Map(ms, func(m *storages.FileMove, _ int) []string {
		return []string{
			formatPath(model.RelativePath(c.Project, m.FromKey), m.FromKey),
			formatPath(model.RelativePath(c.Project, m.ToKey), m.ToKey),
			formatScore(m.Score),
		}
	})

	fmt.Println(renderTable([]string{"From", "To", "Score"}, rows, []columnAlignment{alignLeft, alignLeft, alignRight}))
	fmt.Printf("%v moved files\n", formatCount(len(ms)))

	return nil
}

type ShowFilesCmd struct {
	Project  string `short:"p" required:"" help:"Key of the project."`
	Analysis int    `short:"a" help:"ID of the analysis. Defaults to the last one."`
}

func (c *ShowFilesCmd) Run(ctx *context) error {
	a, err := ctx.ws.FindAnalysis(c.Project, model.ID(c.Analysis))
	if err != nil {
		return err
	}

	snapshot, err := ctx.ws.LoadSnapshot(a)
	if err != nil {
		return err
	}

	files := snapshot.Files.List()
	total := 0

	rows := lo.Map(files, func(f *model.DbFile, _ int) []string {
		total += f.LineCount
		return []string{
			formatPath(f.Path, f.Key),
			string(f.UUID),
			formatCount(f.LineCount),
		}
	})

	fmt.Println(renderTable([]string{"Path", "UUID", "Lines"}, rows, []columnAlignment{alignLeft, alignLeft, alignRight}))
	fmt.Printf("%v files, %v lines\n", formatCount(len(files)), formatCount(total))

	return nil
}
