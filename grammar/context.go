package grammar

import (
	"log/slog"

	"github.com/google/uuid"

	"github.com/ava12/dynparse/iterator"
)

// Context is threaded through every recognize call for one parse run. It
// carries the grammar being matched against, the iterator positioned over
// the input, a per-run id for correlating log lines across a concurrent
// batch (see ParseAll), and a slot for caller-supplied state Procedure and
// Condition callbacks can read and mutate.
type Context struct {
	Grammar  *Grammar
	Iter     *iterator.Iterator
	RunID    uuid.UUID
	UserData interface{}

	err error
	log *slog.Logger
}

// newContext builds a Context for one run against g, reading from it.
func newContext(g *Grammar, it *iterator.Iterator, userData interface{}, log *slog.Logger) *Context {
	if log == nil {
		log = slog.Default()
	}
	return &Context{
		Grammar:  g,
		Iter:     it,
		RunID:    uuid.New(),
		UserData: userData,
		log:      log,
	}
}

// failed reports whether a prior callback error has aborted this run.
func (ctx *Context) failed() bool {
	return ctx.err != nil
}

// fail records err as the run's aborting error. Only the first error is
// kept; later ones are ignored, per spec.md §7's "propagation is immediate"
// requirement.
func (ctx *Context) fail(err error) {
	if ctx.err == nil {
		ctx.err = err
		ctx.log.Error("parse aborted by callback error", "run", ctx.RunID, "err", err)
	}
}

// Log returns the structured logger associated with this run, for use by
// Procedure and Condition callbacks that want to emit diagnostics tagged
// with the run id.
func (ctx *Context) Log() *slog.Logger {
	return ctx.log.With("run", ctx.RunID)
}
