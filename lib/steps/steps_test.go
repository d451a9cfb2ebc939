package steps

import (
	"testing"

	"github.com/pkg/errors"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/pescuma/movedetect/lib/consoles"
	"github.com/pescuma/movedetect/lib/model"
)

func TestStat(t *testing.T) {
	t.Parallel()

	zero := Value(0)
	na := NotApplicable()

	v, ok := zero.Get()
	assert.Equal(t, 0, v)
	assert.True(t, ok)

	_, ok = na.Get()
	assert.False(t, ok)

	assert.NotEqual(t, zero, na)
	assert.Equal(t, "0", zero.String())
	assert.Equal(t, "n/a", na.String())
	assert.Equal(t, -1, na.Or(-1))
	assert.Equal(t, 0, zero.Or(-1))
}

func TestStatisticsRecorder(t *testing.T) {
	t.Parallel()

	r := NewStatisticsRecorder()
	r.Add("reportFiles", Value(3))
	r.Add("movedFiles", NotApplicable())
	r.Add("addedFiles", Value(0))

	assert.Equal(t, []string{"reportFiles", "movedFiles", "addedFiles"}, r.Names())
	assert.Equal(t, Value(3), r.Get("reportFiles"))
	assert.False(t, r.Get("unknown").IsApplicable())
	assert.Equal(t, "addedFiles=0 | reportFiles=3", r.String())
}

func TestSupportsFileMoveDetection(t *testing.T) {
	t.Parallel()

	main := &AnalysisContext{Analysis: &model.Analysis{Branch: "main"}, MainBranch: "main", FirstAnalysis: true}
	assert.True(t, main.SupportsFileMoveDetection())

	branch := &AnalysisContext{Analysis: &model.Analysis{Branch: "feature"}, MainBranch: "main"}
	assert.True(t, branch.SupportsFileMoveDetection())

	newBranch := &AnalysisContext{Analysis: &model.Analysis{Branch: "feature"}, MainBranch: "main", FirstAnalysis: true}
	assert.False(t, newBranch.SupportsFileMoveDetection())

	pr := &AnalysisContext{Analysis: &model.Analysis{PullRequest: "12", TargetBranch: "main"}}
	assert.False(t, pr.SupportsFileMoveDetection())
	assert.True(t, pr.IsPullRequest())

	assert.False(t, (&AnalysisContext{}).SupportsFileMoveDetection())
}

type fakeStep struct {
	err error
}

func (s *fakeStep) Description() string {
	return "Fake step"
}

func (s *fakeStep) Execute(ctx *Context) error {
	ctx.Statistics.Add("files", Value(2))
	return s.err
}

func TestExecutor(t *testing.T) {
	t.Parallel()

	console := consoles.NewRecordingConsole()

	results, err := NewExecutor(console).Execute(&AnalysisContext{}, &fakeStep{})
	require.NoError(t, err)

	require.Len(t, results, 1)
	assert.Equal(t, Value(2), results[0].Statistics.Get("files"))
	assert.True(t, console.Contains("Fake step: files=2"))
}

func TestExecutorStopsOnError(t *testing.T) {
	t.Parallel()

	boom := errors.New("boom")

	results, err := NewExecutor(consoles.NewRecordingConsole()).Execute(&AnalysisContext{}, &fakeStep{err: boom}, &fakeStep{})

	assert.ErrorIs(t, err, boom)
	assert.Empty(t, results)
}
