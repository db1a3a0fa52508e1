package grammar

import (
	"log/slog"

	"github.com/ava12/dynparse/iterator"
	"github.com/ava12/dynparse/match"
)

// Parse recognizes it's contents against g's axiom and returns the
// resulting match tree. A returned error means a Procedure or Condition
// callback aborted the run (spec.md §7); it is never returned for an
// ordinary recognition failure — check m.IsFailure() for that instead.
func Parse(g *Grammar, it *iterator.Iterator, userData interface{}) (*match.Match, error) {
	return ParseWithLogger(g, it, userData, nil)
}

// ParseWithLogger is Parse with an explicit logger for callback
// diagnostics, instead of slog.Default().
func ParseWithLogger(g *Grammar, it *iterator.Iterator, userData interface{}, log *slog.Logger) (*match.Match, error) {
	if !g.prepared {
		if err := g.Prepare(); err != nil {
			return nil, err
		}
	}

	ctx := newContext(g, it, userData, log)
	m := g.axiom.recognize(ctx)
	if ctx.err != nil {
		match.Free(m)
		return nil, ctx.err
	}

	return m, nil
}

// ParseFromPath opens path as an Iterator, parses it against g, and closes
// the iterator before returning.
func ParseFromPath(g *Grammar, path string, userData interface{}) (*match.Match, error) {
	it, err := iterator.Open(path)
	if err != nil {
		return nil, err
	}
	defer it.Close()

	return Parse(g, it, userData)
}
