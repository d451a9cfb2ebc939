package workspace

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/pkg/errors"

	"github.com/pescuma/movedetect/lib/analysis"
	"github.com/pescuma/movedetect/lib/consoles"
	"github.com/pescuma/movedetect/lib/importers/fs"
	"github.com/pescuma/movedetect/lib/importers/git"
	"github.com/pescuma/movedetect/lib/model"
	"github.com/pescuma/movedetect/lib/moves"
	"github.com/pescuma/movedetect/lib/steps"
	"github.com/pescuma/movedetect/lib/storages"
	"github.com/pescuma/movedetect/lib/storages/orm"
	"github.com/pescuma/movedetect/lib/utils"
)

type Workspace struct {
	console consoles.Console
	storage storages.Storage
}

// NewWorkspace opens the workspace at file. An empty file means
// ./.movedetect/movedetect.sqlite if that dir exists, or the same file inside
// the home dir otherwise.
func NewWorkspace(file string, console consoles.Console) (*Workspace, error) {
	if file == "" {
		if _, err := os.Stat("./.movedetect"); err == nil {
			file = "./.movedetect/movedetect.sqlite"
		} else {
			file = "~/.movedetect/movedetect.sqlite"
		}
	}

	var storage storages.Storage
	var err error
	switch {
	case file == ":memory:":
		storage, err = orm.NewGormStorage(orm.WithSqliteInMemory(), console)

	case strings.HasSuffix(file, ".sqlite"):
		file, err = utils.PathAbs(file)
		if err != nil {
			return nil, err
		}

		err = createWorkspaceDir(console, file)
		if err != nil {
			return nil, err
		}

		storage, err = orm.NewGormStorage(orm.WithSqlite(file), console)

	default:
		return nil, fmt.Errorf("unknown storage type for file %v", file)
	}
	if err != nil {
		return nil, err
	}

	return &Workspace{
		console: console,
		storage: storage,
	}, nil
}

func createWorkspaceDir(console consoles.Console, file string) error {
	path := filepath.Dir(file)

	if _, err := os.Stat(path); err != nil {
		console.Printf("Creating workspace at %v\n", path)
		err = os.MkdirAll(path, 0o700)
		if err != nil {
			return err
		}
	}

	return nil
}

func (w *Workspace) Close() error {
	return w.storage.Close()
}

func (w *Workspace) Console() consoles.Console {
	return w.console
}

func (w *Workspace) LoadConfig() (map[string]string, error) {
	cfg, err := w.storage.LoadConfig()
	if err != nil {
		return nil, err
	}

	return *cfg, nil
}

// SetConfig returns false if the value did not change.
func (w *Workspace) SetConfig(config string, value string) (bool, error) {
	cfg, err := w.storage.LoadConfig()
	if err != nil {
		return false, err
	}

	v, ok := (*cfg)[config]
	if ok && v == value {
		return false, nil
	}

	if value == "" {
		delete(*cfg, config)
	} else {
		(*cfg)[config] = value
	}

	err = w.storage.WriteConfig()
	if err != nil {
		return false, err
	}

	return true, nil
}

type AnalyzeDirOptions struct {
	Analysis analysis.Options
	Import   fs.Options
}

// AnalyzeDir imports the files of a directory and records them as a new
// analysis.
func (w *Workspace) AnalyzeDir(dir string, opts *AnalyzeDirOptions) (*analysis.Result, error) {
	w.console.PushPrefix("import: ")
	files, err := fs.NewImporter(w.console).Import(opts.Analysis.ProjectKey, dir, &opts.Import)
	w.console.PopPrefix()
	if err != nil {
		return nil, err
	}

	return analysis.NewComputer(w.console, w.storage).Compute(files, &opts.Analysis)
}

type AnalyzeGitOptions struct {
	Analysis analysis.Options
	Revision string
	Import   git.Options
}

// AnalyzeGit imports the files of a git revision and records them as a new
// analysis. Branch, revision and date default to the ones of the commit.
func (w *Workspace) AnalyzeGit(repoDir string, opts *AnalyzeGitOptions) (*analysis.Result, error) {
	w.console.PushPrefix("import: ")
	rev, err := git.NewImporter(w.console).Import(opts.Analysis.ProjectKey, repoDir, opts.Revision, &opts.Import)
	w.console.PopPrefix()
	if err != nil {
		return nil, err
	}

	analysisOpts := opts.Analysis
	if analysisOpts.Branch == "" {
		analysisOpts.Branch = rev.Branch
	}
	if analysisOpts.Revision == "" {
		analysisOpts.Revision = rev.Hash
	}
	if analysisOpts.Date.IsZero() {
		analysisOpts.Date = rev.Date
	}

	return analysis.NewComputer(w.console, w.storage).Compute(rev.Files, &analysisOpts)
}

type CompareOptions struct {
	ProjectKey string
	Import     git.Options
}

// CompareGit detects moves between two revisions of a git repository without
// storing anything.
func (w *Workspace) CompareGit(repoDir string, from string, to string, opts *CompareOptions) (*moves.Result, error) {
	cfg, err := w.LoadConfig()
	if err != nil {
		return nil, err
	}

	importer := git.NewImporter(w.console)

	w.console.PushPrefix("import: ")
	fromRev, err := importer.Import(opts.ProjectKey, repoDir, from, &opts.Import)
	if err != nil {
		w.console.PopPrefix()
		return nil, errors.Wrapf(err, "error importing %v", from)
	}

	toRev, err := importer.Import(opts.ProjectKey, repoDir, to, &opts.Import)
	w.console.PopPrefix()
	if err != nil {
		return nil, errors.Wrapf(err, "error importing %v", to)
	}

	detector := moves.NewDetectorFromConfig(w.console, cfg)

	movedRepo := moves.NewMemoryMovedFilesRepository()
	addedRepo := moves.NewMemoryAddedFileRepository()
	step := moves.NewFileMoveDetectionStep(detector,
		&moves.StaticInputs{Db: fromRev.DbFiles(), Report: toRev.Files},
		movedRepo, addedRepo)

	ctx := &steps.AnalysisContext{
		Analysis: &model.Analysis{
			ProjectKey: opts.ProjectKey,
			Branch:     toRev.Branch,
			Revision:   toRev.Hash,
			Date:       toRev.Date,
		},
	}

	_, err = steps.NewExecutor(w.console).Execute(ctx, step)
	if err != nil {
		return nil, err
	}

	return step.Result(), nil
}

func (w *Workspace) ListAnalyses(projectKey string) ([]*model.Analysis, error) {
	return w.storage.ListAnalyses(projectKey)
}

// FindAnalysis returns the analysis with the given ID, or the last analysis
// of the project when id is 0.
func (w *Workspace) FindAnalysis(projectKey string, id model.ID) (*model.Analysis, error) {
	analyses, err := w.storage.ListAnalyses(projectKey)
	if err != nil {
		return nil, err
	}

	if len(analyses) == 0 {
		return nil, errors.Errorf("no analysis found for project %v", projectKey)
	}

	if id == 0 {
		return analyses[len(analyses)-1], nil
	}

	for _, a := range analyses {
		if a.ID == id {
			return a, nil
		}
	}

	return nil, errors.Errorf("analysis %v not found for project %v", id, projectKey)
}

func (w *Workspace) LoadMoves(a *model.Analysis) ([]*storages.FileMove, error) {
	return w.storage.LoadMoves(a)
}

func (w *Workspace) LoadSnapshot(a *model.Analysis) (*model.Snapshot, error) {
	return w.storage.LoadSnapshot(a)
}
