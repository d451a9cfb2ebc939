package fs

import (
	"bytes"
	"io/fs"
	"os"
	"path/filepath"

	"github.com/gertd/go-pluralize"
	"github.com/hashicorp/go-set/v2"
	"github.com/pkg/errors"
	"github.com/samber/lo"

	"github.com/pescuma/movedetect/lib/consoles"
	"github.com/pescuma/movedetect/lib/importers/common"
	"github.com/pescuma/movedetect/lib/linehashes"
	"github.com/pescuma/movedetect/lib/model"
	"github.com/pescuma/movedetect/lib/utils"
)

type Options struct {
	common.FilterOptions
}

// Importer reads the files of a directory as the report of an analysis.
type Importer struct {
	console consoles.Console
	plurals *pluralize.Client

	readFile func(path string) ([]byte, error)
}

func NewImporter(console consoles.Console) *Importer {
	return &Importer{
		console:  console,
		plurals:  pluralize.NewClient(),
		readFile: os.ReadFile,
	}
}

func (i *Importer) Import(projectKey string, rootDir string, opts *Options) ([]*model.ReportFile, error) {
	rootDir, err := utils.PathAbs(rootDir)
	if err != nil {
		return nil, err
	}

	filter, err := common.NewFileFilter(&opts.FilterOptions)
	if err != nil {
		return nil, err
	}

	if opts.Gitignore {
		gi, err := common.LoadGitIgnore(rootDir)
		if err != nil {
			return nil, errors.Wrap(err, "error reading .gitignore")
		}
		if gi != nil {
			filter.UseGitIgnore(gi)
		}
	}

	i.console.Printf("Finding files in %v...\n", rootDir)

	paths, err := i.findFiles(rootDir, filter)
	if err != nil {
		return nil, err
	}

	i.console.Printf("Hashing %v...\n", i.plurals.Pluralize("file", len(paths), true))

	bar := utils.NewProgressBar(len(paths), "Hashing")
	files, err := utils.ParallelMap(paths, func(rel string) (*model.ReportFile, error) {
		defer func() { _ = bar.Add(1) }()
		return i.importFile(projectKey, rootDir, rel, filter)
	})
	_ = bar.Finish()
	if err != nil {
		return nil, err
	}

	files = lo.Compact(files)

	keys := set.New[string](len(files))
	result := make([]*model.ReportFile, 0, len(files))
	for _, f := range files {
		if !keys.Insert(f.Key) {
			i.console.Printf("Ignoring %v: another file has the same key (%v)\n", f.Path, f.Key)
			continue
		}

		result = append(result, f)
	}

	i.console.Printf("Imported %v\n", i.plurals.Pluralize("file", len(result), true))

	return result, nil
}

func (i *Importer) findFiles(rootDir string, filter *common.FileFilter) ([]string, error) {
	var result []string

	err := filepath.WalkDir(rootDir, func(path string, entry fs.DirEntry, err error) error {
		if err != nil {
			i.console.Debugf("Ignoring %v: %v\n", path, err)
			return nil
		}

		rel, err := filepath.Rel(rootDir, path)
		if err != nil {
			return err
		}

		if entry.IsDir() {
			return utils.IIf(filter.AcceptDir(rel), nil, filepath.SkipDir)
		}

		if !entry.Type().IsRegular() || !filter.AcceptFile(rel) {
			return nil
		}

		result = append(result, rel)
		return nil
	})
	if err != nil {
		return nil, err
	}

	return result, nil
}

// importFile returns nil for files that should not be part of the report. Files
// that can not be read are kept without content.
func (i *Importer) importFile(projectKey string, rootDir string, rel string, filter *common.FileFilter) (*model.ReportFile, error) {
	path := filepath.Join(rootDir, rel)

	stat, err := os.Stat(path)
	if err != nil {
		return i.withoutContent(projectKey, rel, err), nil
	}

	if !filter.AcceptSize(stat.Size()) {
		i.console.Debugf("Ignoring %v: too big\n", rel)
		return nil, nil
	}

	content, err := i.readFile(path)
	if err != nil {
		return i.withoutContent(projectKey, rel, err), nil
	}

	if !filter.AcceptContent(content) {
		i.console.Debugf("Ignoring %v: binary\n", rel)
		return nil, nil
	}

	hashes, err := linehashes.Read(bytes.NewReader(content))
	if err != nil {
		return i.withoutContent(projectKey, rel, errors.Wrap(err, "error hashing")), nil
	}

	return newReportFile(projectKey, rel, hashes), nil
}

func (i *Importer) withoutContent(projectKey string, rel string, err error) *model.ReportFile {
	i.console.Printf("Ignoring content of %v: %v\n", rel, err)
	return newReportFile(projectKey, rel, nil)
}

func newReportFile(projectKey string, rel string, hashes []string) *model.ReportFile {
	rel = model.NormalizePath(rel)

	result := model.NewReportFile(model.FileKey(projectKey, rel), rel)
	result.Path = rel
	result.LineCount = len(hashes)
	result.LineHashes = hashes
	return result
}
