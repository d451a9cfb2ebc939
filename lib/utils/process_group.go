package utils

import (
	"runtime"
	"sync"
)

type ParallelOptions struct {
	Routines    int
	InputFactor int
}

// ParallelMap applies proc to every element of col using a pool of goroutines
// and returns the outputs in the same order as the inputs. The first error
// aborts the remaining work.
func ParallelMap[T, O any](col []T, proc func(T) (O, error), opts ...ParallelOptions) ([]O, error) {
	group := NewProcessGroup(func(w indexed[T]) (indexed[O], error) {
		o, err := proc(w.value)
		return indexed[O]{w.index, o}, err
	}, opts...)

	go func() {
		defer group.FinishedInput()

		for i, w := range col {
			select {
			case <-group.abort:
				return
			case group.Input <- indexed[T]{i, w}:
			}
		}
	}()

	result := make([]O, len(col))
	for o := range group.Output {
		result[o.index] = o.value
	}

	return result, group.Error()
}

type indexed[T any] struct {
	index int
	value T
}

type ProcessGroup[I, O any] struct {
	proc      func(I) (O, error)
	abort     chan struct{}
	abortOnce sync.Once
	wg        sync.WaitGroup

	mutex sync.Mutex
	err   error

	Input  chan I
	Output chan O
}

func NewProcessGroup[I, O any](proc func(I) (O, error), opts ...ParallelOptions) *ProcessGroup[I, O] {
	o := ParallelOptions{
		Routines:    Max(Min(runtime.GOMAXPROCS(-1), runtime.NumCPU()/2)-1, 1),
		InputFactor: 2,
	}
	for _, oi := range opts {
		if oi.Routines > 0 {
			o.Routines = oi.Routines
		}
		if oi.InputFactor > 0 {
			o.InputFactor = oi.InputFactor
		}
	}

	group := &ProcessGroup[I, O]{
		proc:  proc,
		abort: make(chan struct{}),

		Input:  make(chan I, o.InputFactor*o.Routines),
		Output: make(chan O, o.Routines),
	}

	for i := 0; i < o.Routines; i++ {
		group.wg.Add(1)
		go group.runProcessor()
	}

	go func() {
		group.wg.Wait()
		close(group.Output)
	}()

	return group
}

func (g *ProcessGroup[I, O]) runProcessor() {
	defer g.wg.Done()

	for {
		select {
		case <-g.abort:
			return

		case input, ok := <-g.Input:
			if !ok {
				return
			}

			output, err := g.proc(input)
			if err != nil {
				g.Abort(err)
				return
			}

			select {
			case <-g.abort:
				return
			case g.Output <- output:
			}
		}
	}
}

func (g *ProcessGroup[I, O]) FinishedInput() {
	close(g.Input)
}

func (g *ProcessGroup[I, O]) Abort(err error) {
	g.abortOnce.Do(func() {
		g.mutex.Lock()
		g.err = err
		g.mutex.Unlock()

		close(g.abort)
	})
}

// Error must only be called after Output was drained.
func (g *ProcessGroup[I, O]) Error() error {
	g.mutex.Lock()
	defer g.mutex.Unlock()

	return g.err
}
