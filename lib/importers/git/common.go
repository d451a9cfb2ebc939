package git

import (
	"io/fs"
	"path/filepath"
	"sort"
	"strings"

	"github.com/go-git/go-git/v5"
	"github.com/go-git/go-git/v5/plumbing"
	"github.com/hashicorp/go-set/v2"
	"github.com/pkg/errors"

	"github.com/pescuma/movedetect/lib/utils"
)

// FindRootDirs returns the roots of all git repositories inside baseDirs.
func FindRootDirs(baseDirs []string) ([]string, error) {
	found := set.New[string](100)

	for _, baseDir := range baseDirs {
		baseDir, err := utils.PathAbs(baseDir)
		if err != nil {
			return nil, err
		}

		err = filepath.WalkDir(baseDir, func(path string, entry fs.DirEntry, err error) error {
			switch {
			case err != nil:
				return nil

			case entry.IsDir() && entry.Name() == ".git":
				rootDir, err := utils.PathAbs(filepath.Dir(path))
				if err != nil {
					return err
				}

				found.Insert(rootDir)
				return filepath.SkipDir

			case entry.IsDir() && strings.HasPrefix(entry.Name(), "."):
				return filepath.SkipDir
			}

			return nil
		})
		if err != nil {
			return nil, err
		}
	}

	result := found.Slice()
	sort.Strings(result)
	return result, nil
}

// findRevisionHash accepts a comma separated list of candidates and uses the
// first one that exists. An empty revision means HEAD.
func findRevisionHash(gitRepo *git.Repository, revision string) (string, plumbing.Hash, error) {
	if revision == "" {
		gitHead, err := gitRepo.Head()
		if err != nil {
			return "", plumbing.ZeroHash, err
		}

		return "HEAD", gitHead.Hash(), nil
	}

	for _, candidate := range strings.Split(revision, ",") {
		candidate = strings.TrimSpace(candidate)

		hash, err := gitRepo.ResolveRevision(plumbing.Revision(candidate))
		if err == nil {
			return candidate, *hash, nil
		}
	}

	return "", plumbing.ZeroHash, errors.Errorf("no revision found with name: %v", revision)
}

// currentBranch returns "" when HEAD is detached.
func currentBranch(gitRepo *git.Repository) string {
	head, err := gitRepo.Head()
	if err != nil || !head.Name().IsBranch() {
		return ""
	}

	return head.Name().Short()
}
