package consoles

import (
	"fmt"
	"io"
	"os"
	"strings"
	"sync"
	"time"
)

type writerConsole struct {
	mutex    sync.Mutex
	out      io.Writer
	verbose  bool
	clock    func() time.Time
	prefixes []string
}

func NewStdOutConsole(verbose bool) Console {
	return NewWriterConsole(os.Stdout, verbose)
}

func NewWriterConsole(out io.Writer, verbose bool) Console {
	return &writerConsole{
		out:     out,
		verbose: verbose,
		clock:   time.Now,
	}
}

func (o *writerConsole) Printf(format string, a ...any) {
	o.mutex.Lock()
	defer o.mutex.Unlock()

	builder := strings.Builder{}
	builder.WriteString("[")
	builder.WriteString(o.clock().Format("15:04:05"))
	builder.WriteString("] ")
	for _, prefix := range o.prefixes {
		builder.WriteString(prefix)
	}
	builder.WriteString(fmt.Sprintf(format, a...))

	_, _ = io.WriteString(o.out, builder.String())
}

func (o *writerConsole) Debugf(format string, a ...any) {
	if !o.verbose {
		return
	}

	o.Printf(format, a...)
}

func (o *writerConsole) PushPrefix(format string, a ...any) {
	o.mutex.Lock()
	defer o.mutex.Unlock()

	o.prefixes = append(o.prefixes, fmt.Sprintf(format, a...))
}

func (o *writerConsole) PopPrefix() {
	o.mutex.Lock()
	defer o.mutex.Unlock()

	if len(o.prefixes) > 0 {
		o.prefixes = o.prefixes[:len(o.prefixes)-1]
	}
}
