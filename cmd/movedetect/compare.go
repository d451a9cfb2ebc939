package main

import (
	"fmt"

	"github.com/pescuma/movedetect/lib/importers/common"
	"github.com/pescuma/movedetect/lib/importers/git"
	"github.com/pescuma/movedetect/lib/workspace"
)

type CompareCmd struct {
	Path string `arg:"" help:"Dir inside the git repository, or a dir that contains only one repository." type:"existingdir"`
	From string `arg:"" help:"Revision with the previous files."`
	To   string `arg:"" default:"HEAD" help:"Revision with the new files."`

	Project string `short:"p" default:"project" help:"Key of the project."`

	common.FilterOptions `embed:""`
}

func (c *CompareCmd) Run(ctx *context) error {
	result, err := ctx.ws.CompareGit(c.Path, c.From, c.To, &workspace.CompareOptions{
		ProjectKey: c.Project,
		Import:     git.Options{FilterOptions: c.FilterOptions},
	})
	if err != nil {
		return err
	}

	if len(result.Moves) == 0 {
		fmt.Println("No moved files found")
		return nil
	}

	fmt.Println(renderMoves(result.Moves))

	return nil
}
