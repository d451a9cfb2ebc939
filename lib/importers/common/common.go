package common

import (
	"os"
	"path"
	"path/filepath"
	"strings"

	"github.com/bmatcuk/doublestar/v4"
	"github.com/go-enry/go-enry/v2"
	"github.com/gobwas/glob"
	"github.com/pkg/errors"
	ignore "github.com/sabhiram/go-gitignore"
)

// FilterOptions selects the files an importer reads. Paths are matched relative
// to the root of the project, with forward slashes.
type FilterOptions struct {
	Gitignore    bool     `default:"true" help:"Respect .gitignore file when importing files."`
	Vendored     bool     `default:"false" help:"Also import vendored files."`
	Include      []string `help:"Only import files matching these globs."`
	Exclude      []string `help:"Do not import files matching these globs (** is supported)."`
	MaxFileBytes int64    `default:"10485760" help:"Ignore files bigger than this."`
}

type FileFilter struct {
	gitignore    *ignore.GitIgnore
	includes     []glob.Glob
	excludes     []string
	vendored     bool
	maxFileBytes int64
}

func NewFileFilter(opts *FilterOptions) (*FileFilter, error) {
	result := &FileFilter{
		vendored:     opts.Vendored,
		maxFileBytes: opts.MaxFileBytes,
	}

	for _, i := range opts.Include {
		g, err := glob.Compile(i, '/')
		if err != nil {
			return nil, errors.Wrapf(err, "invalid include glob: %v", i)
		}

		result.includes = append(result.includes, g)
	}

	for _, e := range opts.Exclude {
		if !doublestar.ValidatePattern(e) {
			return nil, errors.Errorf("invalid exclude glob: %v", e)
		}

		result.excludes = append(result.excludes, e)
	}

	return result, nil
}

// UseGitIgnore adds the rules of a .gitignore file to the filter.
func (f *FileFilter) UseGitIgnore(gi *ignore.GitIgnore) {
	f.gitignore = gi
}

func (f *FileFilter) AcceptDir(rel string) bool {
	rel = filepath.ToSlash(rel)
	if rel == "" || rel == "." {
		return true
	}

	name := path.Base(rel)
	if strings.HasPrefix(name, ".") {
		return false
	}

	if f.excluded(rel) {
		return false
	}

	if f.gitignore != nil && f.gitignore.MatchesPath(rel+"/") {
		return false
	}

	if !f.vendored && enry.IsVendor(rel+"/") {
		return false
	}

	return true
}

// AcceptFile only looks at the path. Content is checked by AcceptContent.
func (f *FileFilter) AcceptFile(rel string) bool {
	rel = filepath.ToSlash(rel)

	if strings.HasPrefix(path.Base(rel), ".") {
		return false
	}

	if f.excluded(rel) {
		return false
	}

	if f.gitignore != nil && f.gitignore.MatchesPath(rel) {
		return false
	}

	if !f.vendored && enry.IsVendor(rel) {
		return false
	}

	if len(f.includes) == 0 {
		return true
	}

	for _, g := range f.includes {
		if g.Match(rel) {
			return true
		}
	}

	return false
}

func (f *FileFilter) AcceptSize(size int64) bool {
	return f.maxFileBytes <= 0 || size <= f.maxFileBytes
}

func (f *FileFilter) AcceptContent(content []byte) bool {
	return !enry.IsBinary(content)
}

func (f *FileFilter) excluded(rel string) bool {
	for _, e := range f.excludes {
		m, err := doublestar.Match(e, rel)
		if err == nil && m {
			return true
		}
	}
	return false
}

// LoadGitIgnore returns nil if rootDir has no .gitignore file.
func LoadGitIgnore(rootDir string) (*ignore.GitIgnore, error) {
	file := filepath.Join(rootDir, ".gitignore")

	_, err := os.Stat(file)
	if os.IsNotExist(err) {
		return nil, nil
	} else if err != nil {
		return nil, err
	}

	return ignore.CompileIgnoreFile(file)
}

func ParseGitIgnore(content string) *ignore.GitIgnore {
	return ignore.CompileIgnoreLines(strings.Split(content, "\n")...)
}
