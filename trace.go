package ranges

import (
	"fmt"
	"os"
	"slices"
	"strconv"
	"strings"
	"sync/atomic"
	"time"
)

// tracer is the internal interface the processing functions use to emit
// hierarchical trace messages.  Stages hand out a real tracer when tracing
// is enabled and a nullTracer otherwise.
type tracer interface {
	subTracer(description string, v ...any) tracer
	msg(format string, v ...any)
	end()
}

// TraceFunc defines the function prototype of a tracing function
// Per stage functions can be configured using WithTraceFunc
type TraceFunc func(format string, v ...any)

// DefaultTracer is the global default trace function.  It prints messages to
// stderr.  DefaultTracer can be replaced by another tracing function to effect
// all stages.
var DefaultTracer = func(format string, v ...any) {
	fmt.Fprintf(os.Stderr, "<TRACE> "+format+"\n", v...)
}

type stageTracer struct {
	begin       time.Time
	description string
	ids         []uint32
	subids      atomic.Uint32
	traceFunc   TraceFunc
}

func newTracer(id uint32, description string, f TraceFunc, v ...any) *stageTracer {
	if f == nil {
		f = DefaultTracer
	}
	now := time.Now()

	description = fmt.Sprintf(description, v...)

	t := &stageTracer{
		begin:       now,
		description: description,
		ids:         []uint32{id},
		traceFunc:   f,
	}

	t.start()
	return t
}

func (t *stageTracer) id() string {
	idStrings := make([]string, len(t.ids))
	for i, n := range t.ids {
		idStrings[i] = strconv.Itoa(int(n))
	}
	return strings.Join(idStrings, ".")
}

func (t *stageTracer) start() {
	t.begin = time.Now()
	t.traceFunc("%s: START [stage #%s] %s", t.begin.Format(time.RFC3339), t.id(), t.description)
}

func (t *stageTracer) subTracer(description string, v ...any) tracer {
	subId := t.subids.Add(1)

	t2 := &stageTracer{
		begin:       t.begin,
		description: t.description + fmt.Sprintf(" / "+description, v...),
		ids:         append(slices.Clone(t.ids), subId),
		traceFunc:   t.traceFunc,
	}

	t2.start()
	return t2
}

func (t *stageTracer) msg(format string, v ...any) {
	var args []any = []any{
		time.Now().Format(time.RFC3339), t.id(), t.description,
	}
	args = append(args, v...)
	t.traceFunc("%s: MSG [stage #%s] %s: "+format, args...)
}

func (t *stageTracer) end() {
	t.traceFunc("%s: END [stage #%s] %s", time.Now().Format(time.RFC3339), t.id(), t.description)
}

type nullTracer struct{}

func (t nullTracer) subTracer(description string, v ...any) tracer { return t }
func (t nullTracer) msg(string, ...any)                            {}
func (t nullTracer) end()                                          {}
