// Package moves detects files that were renamed or moved between two analyses
// of a project, comparing the content of the files that disappeared with the
// content of the files that showed up.
package moves

import (
	"github.com/gertd/go-pluralize"

	"github.com/pescuma/movedetect/lib/consoles"
	"github.com/pescuma/movedetect/lib/linehashes"
	"github.com/pescuma/movedetect/lib/model"
	"github.com/pescuma/movedetect/lib/similarity"
	"github.com/pescuma/movedetect/lib/steps"
	"github.com/pescuma/movedetect/lib/utils"
)

type Detector struct {
	console consoles.Console
	plurals *pluralize.Client

	scorer  similarity.Scorer
	source  linehashes.Source
	guard   MemoryGuard
	dumper  Dumper
	options Options
}

type Option func(*Detector)

func WithScorer(scorer similarity.Scorer) Option {
	return func(d *Detector) { d.scorer = scorer }
}

func WithSource(source linehashes.Source) Option {
	return func(d *Detector) { d.source = source }
}

func WithMemoryGuard(guard MemoryGuard) Option {
	return func(d *Detector) { d.guard = guard }
}

func WithDumper(dumper Dumper) Option {
	return func(d *Detector) { d.dumper = dumper }
}

func WithOptions(options Options) Option {
	return func(d *Detector) { d.options = options }
}

// NewDetector creates a detector that, unless configured otherwise, scores
// with the LCS scorer, uses the hashes already in the records, never refuses
// for memory and dumps nothing.
func NewDetector(console consoles.Console, opts ...Option) *Detector {
	result := &Detector{
		console: console,
		plurals: pluralize.NewClient(),
		scorer:  similarity.LCSScorer,
		source:  linehashes.FromRecords{},
		guard:   AlwaysAllowGuard{},
		dumper:  NoopDumper{},
		options: DefaultOptions(),
	}

	for _, o := range opts {
		o(result)
	}

	return result
}

// NewDetectorFromConfig creates a detector with the options, memory guard and
// dumper set in the workspace configuration. opts are applied last.
func NewDetectorFromConfig(console consoles.Console, cfg map[string]string, opts ...Option) *Detector {
	fraction := utils.ParseFloatOr(cfg[ConfigMemoryFraction], DefaultMemoryFraction)

	all := []Option{
		WithOptions(OptionsFromConfig(cfg)),
		WithMemoryGuard(NewSystemMemoryGuard(console, fraction)),
	}

	if dump := cfg[ConfigDumpFile]; dump != "" {
		all = append(all, WithDumper(&FileDumper{Path: dump}))
	}

	return NewDetector(console, append(all, opts...)...)
}

// Detect computes which of the files in the report were moved from files
// known in the previous analysis. Files with the same key on both sides are
// unchanged and are not part of the result.
//
// When the analysis does not support move detection nothing is computed and
// all statistics are not applicable.
func (d *Detector) Detect(ctx *steps.AnalysisContext, dbFiles []*model.DbFile, reportFiles []*model.ReportFile) *Result {
	if ctx == nil || !ctx.SupportsFileMoveDetection() {
		d.console.Debugf("File move detection does not apply to this analysis\n")
		return &Result{}
	}

	result := &Result{
		Statistics: Statistics{
			ReportFiles: steps.Value(len(reportFiles)),
			DbFiles:     steps.Value(len(dbFiles)),
		},
	}

	removed, added := partition(dbFiles, reportFiles)

	d.console.Debugf("%v removed and %v added\n", d.count(len(removed), "file"), d.count(len(added), "file"))

	if len(removed) == 0 || len(added) == 0 {
		return d.allAdded(result, added)
	}

	if !d.guard.CanProceed(len(removed)*len(added), countLines(removed)+countLines(added)) {
		d.console.Printf("Skipping file move detection\n")
		return d.allAdded(result, added)
	}

	matrix := d.computeMatrix(removed, added)
	result.Matrix = matrix

	err := matrix.Dump(d.dumper)
	if err != nil {
		d.console.Printf("Error dumping score matrix: %v\n", err)
	}

	maxScore, _ := matrix.MaxScore()
	d.console.Debugf("max score in matrix = %v\n", maxScore)

	var matches []match
	if maxScore < d.options.MinRequiredScore {
		d.console.Debugf("max score in matrix is less than min required score (%v). Do nothing.\n", d.options.MinRequiredScore)
	} else {
		matches = greedyMatch(matrix, d.options.MinRequiredScore)
	}

	matched := make([]bool, len(added))
	for _, m := range matches {
		matched[m.added] = true
		result.Moves = append(result.Moves, &model.Move{
			File:     added[m.added],
			Original: removed[m.removed],
			Score:    m.score,
		})
	}

	for j, a := range added {
		if !matched[j] {
			result.Added = append(result.Added, a)
		}
	}

	result.Statistics.AddedFiles = steps.Value(len(result.Added))
	result.Statistics.MovedFiles = steps.Value(len(result.Moves))

	if len(result.Moves) > 0 {
		d.console.Printf("Detected %v\n", d.count(len(result.Moves), "moved file"))
	}

	return result
}

func (d *Detector) allAdded(result *Result, added []*model.ReportFile) *Result {
	result.Added = added
	result.Statistics.AddedFiles = steps.Value(len(added))
	result.Statistics.MovedFiles = steps.NotApplicable()
	return result
}

func (d *Detector) computeMatrix(removed []*model.DbFile, added []*model.ReportFile) *ScoreMatrix {
	removedHashes := make([][]string, len(removed))
	for i, f := range removed {
		removedHashes[i] = d.loadDbHashes(f)
	}

	addedHashes := make([][]string, len(added))
	for j, f := range added {
		addedHashes[j] = d.loadReportHashes(f)
	}

	matrix := NewScoreMatrix(removed, added)

	bar := utils.NewProgressBar(len(removed)*len(added), "scoring")
	defer bar.Close()

	for i := range removed {
		for j := range added {
			_ = bar.Add(1)

			rh := removedHashes[i]
			ah := addedHashes[j]
			if rh == nil || ah == nil {
				continue
			}

			if !d.similarSize(lineCount(&removed[i].File, rh), lineCount(&added[j].File, ah)) {
				continue
			}

			matrix.Set(i, j, d.scorer.Score(rh, ah))
		}
	}

	return matrix
}

// similarSize is the cheap filter applied before scoring: the smaller file must
// have at least MinSizeRatio of the lines of the bigger one.
func (d *Detector) similarSize(a, b int) bool {
	smaller := utils.Min(a, b)
	bigger := utils.Max(a, b)

	if bigger == 0 {
		return false
	}

	return float64(smaller)/float64(bigger) >= d.options.MinSizeRatio
}

func (d *Detector) loadDbHashes(f *model.DbFile) []string {
	result, err := d.source.DbFileHashes(f)
	if err != nil {
		d.console.Printf("Ignoring content of %v: %v\n", f.Key, err)
		return nil
	}
	return result
}

func (d *Detector) loadReportHashes(f *model.ReportFile) []string {
	result, err := d.source.ReportFileHashes(f)
	if err != nil {
		d.console.Printf("Ignoring content of %v: %v\n", f.Key, err)
		return nil
	}
	return result
}

func (d *Detector) count(n int, word string) string {
	return d.plurals.Pluralize(word, n, true)
}

// lineCount prefers the declared line count, when there is one.
func lineCount(f *model.File, hashes []string) int {
	if f.LineCount > 0 {
		return f.LineCount
	}
	return len(hashes)
}

// countLines sums the line counts of the files, which is how many hashes are
// held while scoring them.
func countLines[F model.FileRecord](files []F) int {
	result := 0
	for _, f := range files {
		result += f.GetLineCount()
	}
	return result
}

// partition returns the db files whose key is not in the report and the report
// files whose key is not in the db, both sorted by key.
func partition(dbFiles []*model.DbFile, reportFiles []*model.ReportFile) ([]*model.DbFile, []*model.ReportFile) {
	db := model.NewFileSet(dbFiles...)
	report := model.NewFileSet(reportFiles...)

	var removed []*model.DbFile
	for _, f := range db.List() {
		if !report.Contains(f.Key) {
			removed = append(removed, f)
		}
	}

	var added []*model.ReportFile
	for _, f := range report.List() {
		if !db.Contains(f.Key) {
			added = append(added, f)
		}
	}

	return removed, added
}
