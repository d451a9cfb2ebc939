package main

import (
	"github.com/alecthomas/kong"

	"github.com/pescuma/movedetect/lib/consoles"
	"github.com/pescuma/movedetect/lib/workspace"
)

var cli struct {
	Workspace string `short:"w" help:"Workspace to store data. Default is ./.movedetect or ~/.movedetect if that does not exist." type:"path"`
	Verbose   bool   `short:"v" help:"Print debug information."`

	Analyze AnalyzeCmd `cmd:"" help:"Record a new analysis of a project, detecting files moved since the previous one."`
	Compare CompareCmd `cmd:"" help:"Detect files moved between two git revisions, without storing anything."`

	Show struct {
		Analyses ShowAnalysesCmd `cmd:"" help:"Show the analyses of a project."`
		Moves    ShowMovesCmd    `cmd:"" help:"Show the files moved in an analysis."`
		Files    ShowFilesCmd    `cmd:"" help:"Show the files of an analysis."`
	} `cmd:""`

	Config struct {
		Set ConfigSetCmd `cmd:"" help:"Set configuration parameters."`
		Get ConfigGetCmd `cmd:"" help:"Show configuration parameters."`
	} `cmd:""`
}

type context struct {
	ws *workspace.Workspace
}

func main() {
	ctx := kong.Parse(&cli, kong.ShortUsageOnError())

	ws, err := workspace.NewWorkspace(cli.Workspace, consoles.NewStdOutConsole(cli.Verbose))
	ctx.FatalIfErrorf(err)

	err = ctx.Run(&context{
		ws: ws,
	})
	if err == nil {
		err = ws.Close()
	} else {
		_ = ws.Close()
	}
	ctx.FatalIfErrorf(err)
}
