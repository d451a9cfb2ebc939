package steps

import "strconv"

// Stat is a statistic value that may be not applicable, which is different
// from zero: "no files were moved" is not the same as "move detection did not
// run".
type Stat struct {
	value int
	set   bool
}

func Value(v int) Stat {
	return Stat{value: v, set: true}
}

func NotApplicable() Stat {
	return Stat{}
}

func (s Stat) Get() (int, bool) {
	return s.value, s.set
}

func (s Stat) IsApplicable() bool {
	return s.set
}

// Or returns the value, or def when not applicable.
func (s Stat) Or(def int) int {
	if !s.set {
		return def
	}
	return s.value
}

func (s Stat) String() string {
	if !s.set {
		return "n/a"
	}
	return strconv.Itoa(s.value)
}
