package workspace

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/bloomberg/go-testgroup"
	"github.com/go-git/go-git/v5"
	"github.com/go-git/go-git/v5/plumbing/object"
	"github.com/stretchr/testify/require"

	"github.com/pescuma/movedetect/lib/analysis"
	"github.com/pescuma/movedetect/lib/consoles"
	"github.com/pescuma/movedetect/lib/model"
	"github.com/pescuma/movedetect/lib/moves"
)

type WorkspaceTests struct{}

func TestWorkspace(t *testing.T) {
	testgroup.RunInParallel(t, &WorkspaceTests{})
}

func newTestWorkspace(t *testgroup.T) *Workspace {
	ws, err := NewWorkspace(":memory:", consoles.NewRecordingConsole())
	require.NoError(t.T, err)
	t.Cleanup(func() { _ = ws.Close() })
	return ws
}

func lines(name string, count int) string {
	var sb strings.Builder
	for i := 0; i < count; i++ {
		sb.WriteString(fmt.Sprintf("%v %v\n", name, i))
	}
	return sb.String()
}

func writeFile(t *testgroup.T, dir string, name string, content string) {
	path := filepath.Join(dir, filepath.FromSlash(name))
	require.NoError(t.T, os.MkdirAll(filepath.Dir(path), 0o700))
	require.NoError(t.T, os.WriteFile(path, []byte(content), 0o600))
}

func (g *WorkspaceTests) UnknownStorage(t *testgroup.T) {
	_, err := NewWorkspace(filepath.Join(t.TempDir(), "x.db"), consoles.NewRecordingConsole())
	require.Error(t.T, err)
}

func (g *WorkspaceTests) CreatesSqliteFile(t *testgroup.T) {
	file := filepath.Join(t.TempDir(), "ws", "movedetect.sqlite")

	ws, err := NewWorkspace(file, consoles.NewRecordingConsole())
	require.NoError(t.T, err)
	require.NoError(t.T, ws.Close())

	_, err = os.Stat(file)
	t.NoError(err)
}

func (g *WorkspaceTests) Config(t *testgroup.T) {
	ws := newTestWorkspace(t)

	changed, err := ws.SetConfig(moves.ConfigMinRequiredScore, "90")
	require.NoError(t.T, err)
	t.True(changed)

	changed, err = ws.SetConfig(moves.ConfigMinRequiredScore, "90")
	require.NoError(t.T, err)
	t.False(changed)

	cfg, err := ws.LoadConfig()
	require.NoError(t.T, err)
	t.Equal("90", cfg[moves.ConfigMinRequiredScore])

	_, err = ws.SetConfig(moves.ConfigMinRequiredScore, "")
	require.NoError(t.T, err)

	cfg, err = ws.LoadConfig()
	require.NoError(t.T, err)
	t.NotContains(cfg, moves.ConfigMinRequiredScore)
}

func (g *WorkspaceTests) AnalyzeDirTwice(t *testgroup.T) {
	ws := newTestWorkspace(t)

	first := t.TempDir()
	writeFile(t, first, "a.go", lines("a", 30))
	writeFile(t, first, "b.go", lines("b", 30))

	r1, err := ws.AnalyzeDir(first, &AnalyzeDirOptions{Analysis: analysis.Options{ProjectKey: "p", Branch: "main", Revision: "1"}})
	require.NoError(t.T, err)
	t.Len(r1.Added, 2)

	second := t.TempDir()
	writeFile(t, second, "pkg/a.go", lines("a", 30))
	writeFile(t, second, "b.go", lines("b", 30))

	r2, err := ws.AnalyzeDir(second, &AnalyzeDirOptions{Analysis: analysis.Options{ProjectKey: "p", Branch: "main", Revision: "2"}})
	require.NoError(t.T, err)
	require.Len(t.T, r2.Moves, 1)

	last, err := ws.FindAnalysis("p", 0)
	require.NoError(t.T, err)
	t.Equal(r2.Analysis.ID, last.ID)

	byID, err := ws.FindAnalysis("p", r1.Analysis.ID)
	require.NoError(t.T, err)
	t.Equal("1", byID.Revision)

	_, err = ws.FindAnalysis("p", 1000)
	require.Error(t.T, err)

	_, err = ws.FindAnalysis("other", 0)
	require.Error(t.T, err)

	ms, err := ws.LoadMoves(last)
	require.NoError(t.T, err)
	require.Len(t.T, ms, 1)
	t.Equal(model.FileKey("p", "a.go"), ms[0].FromKey)
	t.Equal(model.FileKey("p", "pkg/a.go"), ms[0].ToKey)
}

func commitAll(t *testgroup.T, repo *git.Repository, msg string, when time.Time) string {
	wt, err := repo.Worktree()
	require.NoError(t.T, err)

	require.NoError(t.T, wt.AddWithOptions(&git.AddOptions{All: true}))

	hash, err := wt.Commit(msg, &git.CommitOptions{
		All:    true,
		Author: &object.Signature{Name: "A", Email: "a@example.com", When: when},
	})
	require.NoError(t.T, err)

	return hash.String()
}

func (g *WorkspaceTests) GitAnalyzeAndCompare(t *testgroup.T) {
	ws := newTestWorkspace(t)
	dir := t.TempDir()

	repo, err := git.PlainInit(dir, false)
	require.NoError(t.T, err)

	when := time.Date(2024, 6, 1, 12, 0, 0, 0, time.UTC)

	writeFile(t, dir, "a.go", lines("a", 30))
	writeFile(t, dir, "b.go", lines("b", 30))
	first := commitAll(t, repo, "first", when)

	require.NoError(t.T, os.Remove(filepath.Join(dir, "a.go")))
	writeFile(t, dir, "moved/a.go", lines("a", 30)+"extra\n")
	second := commitAll(t, repo, "second", when.Add(time.Hour))

	result, err := ws.CompareGit(dir, first, second, &CompareOptions{ProjectKey: "p"})
	require.NoError(t.T, err)
	require.Len(t.T, result.Moves, 1)
	t.Equal(model.FileKey("p", "moved/a.go"), result.Moves[0].File.Key)
	t.Equal(98, result.Moves[0].Score)

	r, err := ws.AnalyzeGit(dir, &AnalyzeGitOptions{Analysis: analysis.Options{ProjectKey: "p"}, Revision: first})
	require.NoError(t.T, err)
	t.Equal("master", r.Analysis.Branch)
	t.Equal(first, r.Analysis.Revision)

	r, err = ws.AnalyzeGit(dir, &AnalyzeGitOptions{Analysis: analysis.Options{ProjectKey: "p", MainBranch: "master"}})
	require.NoError(t.T, err)
	t.Equal(second, r.Analysis.Revision)
	t.Len(r.Moves, 1)
}
