package steps

import (
	"sort"
	"strings"
	"sync"

	"github.com/samber/lo"
)

// Statistics receives the named statistics of one step execution.
type Statistics interface {
	Add(name string, value Stat)
}

// StatisticsRecorder keeps statistics in memory, in insertion order.
type StatisticsRecorder struct {
	mutex  sync.Mutex
	names  []string
	values map[string]Stat
}

func NewStatisticsRecorder() *StatisticsRecorder {
	return &StatisticsRecorder{
		values: map[string]Stat{},
	}
}

func (r *StatisticsRecorder) Add(name string, value Stat) {
	r.mutex.Lock()
	defer r.mutex.Unlock()

	if _, ok := r.values[name]; !ok {
		r.names = append(r.names, name)
	}
	r.values[name] = value
}

// Get returns NotApplicable for unknown names.
func (r *StatisticsRecorder) Get(name string) Stat {
	r.mutex.Lock()
	defer r.mutex.Unlock()

	return r.values[name]
}

func (r *StatisticsRecorder) Names() []string {
	r.mutex.Lock()
	defer r.mutex.Unlock()

	return append([]string(nil), r.names...)
}

// String formats only applicable statistics, sorted by name, as name=value.
func (r *StatisticsRecorder) String() string {
	r.mutex.Lock()
	defer r.mutex.Unlock()

	names := lo.Filter(lo.Keys(r.values), func(n string, _ int) bool { return r.values[n].IsApplicable() })
	sort.Strings(names)

	return strings.Join(lo.Map(names, func(n string, _ int) string {
		return n + "=" + r.values[n].String()
	}), " | ")
}
