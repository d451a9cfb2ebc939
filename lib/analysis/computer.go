// Package analysis records a new analysis of a project: it detects which files
// moved since the previous analysis and stores the new snapshot.
package analysis

import (
	"time"

	"github.com/hashicorp/go-set/v2"
	"github.com/pkg/errors"
	"github.com/samber/lo"

	"github.com/pescuma/movedetect/lib/consoles"
	"github.com/pescuma/movedetect/lib/linehashes"
	"github.com/pescuma/movedetect/lib/model"
	"github.com/pescuma/movedetect/lib/moves"
	"github.com/pescuma/movedetect/lib/steps"
	"github.com/pescuma/movedetect/lib/storages"
	"github.com/pescuma/movedetect/lib/utils"
)

const ConfigMainBranch = "project.mainBranch"

type Options struct {
	ProjectKey string
	Branch     string
	Revision   string
	Date       time.Time

	// MainBranch overrides the configured main branch. Defaults to "main".
	MainBranch string

	PullRequest  string
	TargetBranch string

	// Guard overrides the memory guard built from the configuration.
	Guard moves.MemoryGuard
}

type Result struct {
	Analysis   *model.Analysis
	Previous   *model.Analysis
	Snapshot   *model.Snapshot
	Moves      []*model.Move
	Added      []*model.ReportFile
	Statistics *steps.StatisticsRecorder
}

type Computer struct {
	console consoles.Console
	storage storages.Storage
}

func NewComputer(console consoles.Console, storage storages.Storage) *Computer {
	return &Computer{
		console: console,
		storage: storage,
	}
}

func (c *Computer) Compute(reportFiles []*model.ReportFile, opts *Options) (*Result, error) {
	if opts.ProjectKey == "" {
		return nil, errors.New("missing project key")
	}
	if opts.Branch == "" && opts.PullRequest == "" {
		return nil, errors.New("missing branch")
	}
	if opts.PullRequest != "" && opts.TargetBranch == "" {
		return nil, errors.New("missing target branch of pull request")
	}

	cfg, err := c.storage.LoadConfig()
	if err != nil {
		return nil, err
	}

	analysis := &model.Analysis{
		ProjectKey:   opts.ProjectKey,
		Branch:       opts.Branch,
		Revision:     opts.Revision,
		Date:         utils.IIf(opts.Date.IsZero(), time.Now(), opts.Date),
		PullRequest:  opts.PullRequest,
		TargetBranch: opts.TargetBranch,
	}

	mainBranch := opts.MainBranch
	if mainBranch == "" {
		mainBranch = lo.ValueOr(*cfg, ConfigMainBranch, "main")
	}

	previous, firstAnalysis, err := c.findPrevious(analysis, mainBranch)
	if err != nil {
		return nil, err
	}

	var previousFiles []*model.DbFile
	if previous != nil {
		snapshot, err := c.storage.LoadSnapshot(previous)
		if err != nil {
			return nil, errors.Wrapf(err, "error loading snapshot of analysis %v", previous.ID)
		}

		previousFiles = snapshot.Files.List()
		c.console.Printf("Comparing with analysis of %v at %v (%v)\n",
			previous.Branch, previous.Revision, previous.Date.Format(time.DateTime))
	} else {
		c.console.Printf("No previous analysis found\n")
	}

	ctx := &steps.AnalysisContext{
		Analysis:      analysis,
		MainBranch:    mainBranch,
		FirstAnalysis: firstAnalysis,
	}

	movedRepo := moves.NewMemoryMovedFilesRepository()
	addedRepo := moves.NewMemoryAddedFileRepository()
	inputs := &moves.StaticInputs{Db: previousFiles, Report: reportFiles}

	var step *moves.DetectionStep
	if analysis.IsPullRequest() {
		step = moves.NewPullRequestFileMoveDetectionStep(moves.NewPullRequestDetector(c.console), inputs, movedRepo, addedRepo)
	} else {
		step = moves.NewFileMoveDetectionStep(c.newDetector(*cfg, previous, opts), inputs, movedRepo, addedRepo)
	}

	results, err := steps.NewExecutor(c.console).Execute(ctx, step)
	if err != nil {
		return nil, err
	}

	snapshot := c.createSnapshot(analysis, previousFiles, reportFiles, movedRepo)

	c.console.Printf("Writing results...\n")

	err = c.storage.WriteAnalysis(analysis)
	if err != nil {
		return nil, err
	}

	err = c.storage.WriteSnapshot(snapshot)
	if err != nil {
		return nil, err
	}

	detected := step.Result()

	err = c.storage.WriteMoves(analysis, detected.Moves)
	if err != nil {
		return nil, err
	}

	err = c.storage.WriteConfig()
	if err != nil {
		return nil, err
	}

	return &Result{
		Analysis:   analysis,
		Previous:   previous,
		Snapshot:   snapshot,
		Moves:      detected.Moves,
		Added:      detected.Added,
		Statistics: results[0].Statistics,
	}, nil
}

// findPrevious returns the analysis to compare with. Pull requests compare with
// their target branch. A branch without analyses starts from the main branch.
func (c *Computer) findPrevious(analysis *model.Analysis, mainBranch string) (*model.Analysis, bool, error) {
	if analysis.IsPullRequest() {
		previous, err := c.storage.LoadLastAnalysis(analysis.ProjectKey, analysis.TargetBranch)
		return previous, previous == nil, err
	}

	previous, err := c.storage.LoadLastAnalysis(analysis.ProjectKey, analysis.Branch)
	if err != nil || previous != nil {
		return previous, false, err
	}

	if analysis.Branch == mainBranch {
		return nil, true, nil
	}

	previous, err = c.storage.LoadLastAnalysis(analysis.ProjectKey, mainBranch)
	return previous, true, err
}

func (c *Computer) newDetector(cfg map[string]string, previous *model.Analysis, opts *Options) *moves.Detector {
	var detectorOpts []moves.Option

	if opts.Guard != nil {
		detectorOpts = append(detectorOpts, moves.WithMemoryGuard(opts.Guard))
	}

	if previous != nil {
		detectorOpts = append(detectorOpts, moves.WithSource(linehashes.Funcs{
			Db: func(file *model.DbFile) ([]string, error) {
				if file.LineHashes != nil {
					return file.LineHashes, nil
				}

				return c.storage.LoadLineHashes(previous.ID, file.UUID)
			},
		}))
	}

	return moves.NewDetectorFromConfig(c.console, cfg, detectorOpts...)
}

// createSnapshot carries the UUID of files that kept their key or were moved,
// and creates new ones for the rest.
func (c *Computer) createSnapshot(analysis *model.Analysis, previousFiles []*model.DbFile, reportFiles []*model.ReportFile, moved moves.MovedFilesRepository) *model.Snapshot {
	previousByKey := lo.KeyBy(previousFiles, func(f *model.DbFile) string { return f.Key })
	usedUUIDs := set.New[model.UUID](len(reportFiles))

	result := model.NewSnapshot(analysis)

	for _, f := range model.NewFileSet(reportFiles...).List() {
		var uuid model.UUID

		if p, ok := previousByKey[f.Key]; ok {
			uuid = p.UUID
		} else if o, ok := moved.GetOriginalFile(f); ok {
			uuid = o.UUID
		}

		if uuid == "" || !usedUUIDs.Insert(uuid) {
			uuid = model.NewUUID()
			usedUUIDs.Insert(uuid)
		}

		db := model.NewDbFile(f.Key, uuid)
		db.Path = f.Path
		db.LineCount = f.LineCount
		db.LineHashes = f.LineHashes
		result.Files.Add(db)
	}

	return result
}
