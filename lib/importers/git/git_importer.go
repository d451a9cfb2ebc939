package git

import (
	"bytes"
	"io"
	"strings"
	"time"

	"github.com/gertd/go-pluralize"
	"github.com/go-git/go-git/v5"
	"github.com/go-git/go-git/v5/plumbing/filemode"
	"github.com/go-git/go-git/v5/plumbing/object"
	"github.com/pkg/errors"

	"github.com/pescuma/movedetect/lib/consoles"
	"github.com/pescuma/movedetect/lib/importers/common"
	"github.com/pescuma/movedetect/lib/linehashes"
	"github.com/pescuma/movedetect/lib/model"
	"github.com/pescuma/movedetect/lib/utils"
)

type Options struct {
	common.FilterOptions
}

// Revision is the content of a project at one commit.
type Revision struct {
	Name   string
	Hash   string
	Branch string
	Date   time.Time
	Files  []*model.ReportFile
}

// DbFiles converts the files of the revision to the previous side of a move
// detection, giving each one a new UUID.
func (r *Revision) DbFiles() []*model.DbFile {
	result := make([]*model.DbFile, 0, len(r.Files))

	for _, f := range r.Files {
		db := model.NewDbFile(f.Key, model.NewUUID())
		db.Path = f.Path
		db.LineCount = f.LineCount
		db.LineHashes = f.LineHashes
		result = append(result, db)
	}

	return result
}

type Importer struct {
	console consoles.Console
	plurals *pluralize.Client

	openBlob func(f *object.File) (io.ReadCloser, error)
}

func NewImporter(console consoles.Console) *Importer {
	return &Importer{
		console:  console,
		plurals:  pluralize.NewClient(),
		openBlob: func(f *object.File) (io.ReadCloser, error) { return f.Reader() },
	}
}

func (i *Importer) Import(projectKey string, repoDir string, revision string, opts *Options) (*Revision, error) {
	repoDir, err := utils.PathAbs(repoDir)
	if err != nil {
		return nil, err
	}

	gitRepo, err := i.openRepository(repoDir)
	if err != nil {
		return nil, err
	}

	return i.ImportRepository(projectKey, gitRepo, revision, opts)
}

// openRepository opens the repository that contains dir or, when there is none,
// the only repository inside dir.
func (i *Importer) openRepository(dir string) (*git.Repository, error) {
	gitRepo, err := git.PlainOpenWithOptions(dir, &git.PlainOpenOptions{DetectDotGit: true})
	if err == nil {
		return gitRepo, nil
	}
	if !errors.Is(err, git.ErrRepositoryNotExists) {
		return nil, errors.Wrapf(err, "error opening git repository at %v", dir)
	}

	rootDirs, err := FindRootDirs([]string{dir})
	if err != nil {
		return nil, err
	}

	switch len(rootDirs) {
	case 0:
		return nil, errors.Errorf("no git repository found at %v", dir)
	case 1:
		i.console.Printf("Using git repository at %v\n", rootDirs[0])
	default:
		return nil, errors.Errorf("more than one git repository found at %v: %v", dir, strings.Join(rootDirs, ", "))
	}

	gitRepo, err = git.PlainOpen(rootDirs[0])
	if err != nil {
		return nil, errors.Wrapf(err, "error opening git repository at %v", rootDirs[0])
	}

	return gitRepo, nil
}

func (i *Importer) ImportRepository(projectKey string, gitRepo *git.Repository, revision string, opts *Options) (*Revision, error) {
	name, hash, err := findRevisionHash(gitRepo, revision)
	if err != nil {
		return nil, err
	}

	commit, err := gitRepo.CommitObject(hash)
	if err != nil {
		return nil, errors.Wrapf(err, "error loading commit %v", hash)
	}

	tree, err := commit.Tree()
	if err != nil {
		return nil, err
	}

	filter, err := common.NewFileFilter(&opts.FilterOptions)
	if err != nil {
		return nil, err
	}

	if opts.Gitignore {
		gi, err := tree.File(".gitignore")
		if err == nil {
			content, err := gi.Contents()
			if err != nil {
				return nil, errors.Wrap(err, "error reading .gitignore")
			}

			filter.UseGitIgnore(common.ParseGitIgnore(content))
		} else if !errors.Is(err, object.ErrFileNotFound) {
			return nil, err
		}
	}

	i.console.Printf("Importing %v (%v)...\n", name, hash.String()[:7])

	var candidates []*object.File
	err = tree.Files().ForEach(func(f *object.File) error {
		if f.Mode != filemode.Regular && f.Mode != filemode.Executable {
			return nil
		}
		if !acceptPath(filter, f.Name) || !filter.AcceptSize(f.Size) {
			return nil
		}

		candidates = append(candidates, f)
		return nil
	})
	if err != nil {
		return nil, err
	}

	result := &Revision{
		Name:   name,
		Hash:   hash.String(),
		Branch: currentBranch(gitRepo),
		Date:   commit.Committer.When,
	}

	bar := utils.NewProgressBar(len(candidates), "Hashing")
	for _, f := range candidates {
		bar.Describe(utils.TruncateFilename(f.Name))

		file := i.importFile(projectKey, f, filter)
		if file != nil {
			result.Files = append(result.Files, file)
		}

		_ = bar.Add(1)
	}
	_ = bar.Finish()

	i.console.Printf("Imported %v\n", i.plurals.Pluralize("file", len(result.Files), true))

	return result, nil
}

// importFile returns nil for binary files. Blobs that can not be read are kept
// without content.
func (i *Importer) importFile(projectKey string, f *object.File, filter *common.FileFilter) *model.ReportFile {
	content, err := i.readBlob(f)
	if err != nil {
		i.console.Printf("Ignoring content of %v: %v\n", f.Name, err)
		return newReportFile(projectKey, f, nil)
	}

	if !filter.AcceptContent(content) {
		i.console.Debugf("Ignoring %v: binary\n", f.Name)
		return nil
	}

	hashes, err := linehashes.Read(bytes.NewReader(content))
	if err != nil {
		i.console.Printf("Ignoring content of %v: %v\n", f.Name, err)
		return newReportFile(projectKey, f, nil)
	}

	return newReportFile(projectKey, f, hashes)
}

func (i *Importer) readBlob(f *object.File) ([]byte, error) {
	reader, err := i.openBlob(f)
	if err != nil {
		return nil, err
	}
	defer reader.Close()

	return io.ReadAll(reader)
}

func newReportFile(projectKey string, f *object.File, hashes []string) *model.ReportFile {
	rel := model.NormalizePath(f.Name)

	result := model.NewReportFile(model.FileKey(projectKey, rel), f.Hash.String())
	result.Path = rel
	result.LineCount = len(hashes)
	result.LineHashes = hashes
	return result
}

// acceptPath checks the parent dirs too, because the tree is not walked dir by
// dir.
func acceptPath(filter *common.FileFilter, rel string) bool {
	for dir := parentDir(rel); dir != ""; dir = parentDir(dir) {
		if !filter.AcceptDir(dir) {
			return false
		}
	}

	return filter.AcceptFile(rel)
}

func parentDir(rel string) string {
	i := strings.LastIndexByte(rel, '/')
	if i < 0 {
		return ""
	}
	return rel[:i]
}
