package consoles

import (
	"fmt"
	"strings"
	"sync"
)

// RecordingConsole keeps every printed line in memory. Debug lines are always
// recorded.
type RecordingConsole struct {
	mutex    sync.Mutex
	prefixes []string
	lines    []string
}

func NewRecordingConsole() *RecordingConsole {
	return &RecordingConsole{}
}

func (c *RecordingConsole) Printf(format string, a ...any) {
	c.mutex.Lock()
	defer c.mutex.Unlock()

	line := strings.Join(c.prefixes, "") + fmt.Sprintf(format, a...)
	c.lines = append(c.lines, strings.TrimSuffix(line, "\n"))
}

func (c *RecordingConsole) Debugf(format string, a ...any) {
	c.Printf(format, a...)
}

func (c *RecordingConsole) PushPrefix(format string, a ...any) {
	c.mutex.Lock()
	defer c.mutex.Unlock()

	c.prefixes = append(c.prefixes, fmt.Sprintf(format, a...))
}

func (c *RecordingConsole) PopPrefix() {
	c.mutex.Lock()
	defer c.mutex.Unlock()

	if len(c.prefixes) > 0 {
		c.prefixes = c.prefixes[:len(c.prefixes)-1]
	}
}

func (c *RecordingConsole) Lines() []string {
	c.mutex.Lock()
	defer c.mutex.Unlock()

	return append([]string(nil), c.lines...)
}

func (c *RecordingConsole) Contains(text string) bool {
	for _, l := range c.Lines() {
		if strings.Contains(l, text) {
			return true
		}
	}
	return false
}
