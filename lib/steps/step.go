// Package steps holds the small framework that runs analysis steps and
// collects their statistics.
package steps

import (
	"github.com/pkg/errors"

	"github.com/pescuma/movedetect/lib/consoles"
)

type Step interface {
	Description() string
	Execute(ctx *Context) error
}

// Context is what a step gets when executed.
type Context struct {
	Console    consoles.Console
	Analysis   *AnalysisContext
	Statistics Statistics
}

type Result struct {
	Step       Step
	Statistics *StatisticsRecorder
}

// Executor runs steps in order, each with its own statistics.
type Executor struct {
	console consoles.Console
}

func NewExecutor(console consoles.Console) *Executor {
	return &Executor{
		console: console,
	}
}

func (e *Executor) Execute(analysis *AnalysisContext, steps ...Step) ([]*Result, error) {
	results := make([]*Result, 0, len(steps))

	for _, step := range steps {
		stats := NewStatisticsRecorder()

		e.console.Printf("%v...\n", step.Description())

		err := step.Execute(&Context{
			Console:    e.console,
			Analysis:   analysis,
			Statistics: stats,
		})
		if err != nil {
			return results, errors.Wrapf(err, "error executing step '%v'", step.Description())
		}

		if s := stats.String(); s != "" {
			e.console.Printf("%v: %v\n", step.Description(), s)
		}

		results = append(results, &Result{
			Step:       step,
			Statistics: stats,
		})
	}

	return results, nil
}
