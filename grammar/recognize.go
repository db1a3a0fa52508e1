package grammar

import (
	"bytes"

	"github.com/ava12/dynparse/iterator"
	"github.com/ava12/dynparse/match"
)

// recognize dispatches to e's variant-specific recognizer, enforcing the
// rewind-on-failure invariant from spec.md §4: whatever the cursor position
// when a kind-specific recognizer is entered, a failed attempt leaves the
// cursor there, never part-way through whatever it consumed before failing.
func (e *Element) recognize(ctx *Context) *match.Match {
	if ctx.failed() {
		return match.Failure
	}

	start := ctx.Iter.Offset()

	var m *match.Match
	switch e.kind {
	case WordKind:
		m = e.recognizeWord(ctx, start)
	case TokenKind:
		m = e.recognizeToken(ctx, start)
	case GroupKind:
		m = e.recognizeGroup(ctx, start)
	case RuleKind:
		m = e.recognizeRule(ctx, start)
	case ProcedureKind:
		m = e.recognizeProcedure(ctx, start)
	case ConditionKind:
		m = e.recognizeCondition(ctx, start)
	default:
		m = match.Failure
	}

	if m.IsFailure() {
		ctx.Iter.MoveTo(start)
	}
	return m
}

func (e *Element) recognizeWord(ctx *Context, start int) *match.Match {
	n := len(e.literal)
	if n == 0 {
		return match.Empty(start)
	}

	buf := ctx.Iter.Bytes(n)
	if len(buf) < n || !bytes.Equal(buf, e.literal) {
		return match.Failure
	}

	ctx.Iter.Move(n)
	return match.New(e, start, n)
}

func (e *Element) recognizeToken(ctx *Context, start int) *match.Match {
	buf := ctx.Iter.Bytes(iterator.LookAhead)
	if len(buf) == 0 {
		return match.Failure
	}

	idx := e.re.FindSubmatchIndex(buf)
	if idx == nil || idx[0] != 0 {
		return match.Failure
	}

	length := idx[1]
	groups := make([]string, len(idx)/2)
	for i := 0; i < len(idx); i += 2 {
		if idx[i] < 0 {
			continue
		}
		groups[i/2] = string(buf[idx[i]:idx[i+1]])
	}

	ctx.Iter.Move(length)
	return match.New(e, start, length).WithData(groups, nil)
}

func (e *Element) recognizeGroup(ctx *Context, start int) *match.Match {
	for r := e.firstRef; r != nil; r = r.next {
		child := r.recognize(ctx)
		if ctx.failed() {
			return match.Failure
		}
		if !child.IsFailure() {
			end := start
			for n := child; n != nil; n = n.Next {
				if n.End() > end {
					end = n.End()
				}
			}
			m := match.New(e, start, end-start)
			m.Child = child
			return m
		}
	}
	return match.Failure
}

func (e *Element) recognizeRule(ctx *Context, start int) *match.Match {
	var head *match.Match
	first := true
	for r := e.firstRef; r != nil; r = r.next {
		if !first {
			skipConsume(ctx)
		}
		first = false

		child := r.recognize(ctx)
		if ctx.failed() || child.IsFailure() {
			return match.Failure
		}
		head = match.Append(head, child)
	}

	end := start
	if head != nil {
		for n := head; n != nil; n = n.Next {
			if n.End() > end {
				end = n.End()
			}
		}
	}

	m := match.New(e, start, end-start)
	m.Child = head
	return m
}

func (e *Element) recognizeProcedure(ctx *Context, start int) *match.Match {
	if err := e.callback(ctx); err != nil {
		ctx.fail(err)
		return match.Failure
	}
	m := match.Empty(start)
	m.Element = e
	return m
}

func (e *Element) recognizeCondition(ctx *Context, start int) *match.Match {
	ok, err := e.predicate(ctx)
	if err != nil {
		ctx.fail(err)
		return match.Failure
	}
	if !ok {
		return match.Failure
	}
	m := match.Empty(start)
	m.Element = e
	return m
}

// skipConsume consumes a single run of the grammar's skip element, if one
// is set, between two children of a Rule. Per spec.md §5, skip's own
// failure is never itself a parse failure: Element.recognize already
// rewinds the iterator to where it started, so a failed skip just leaves
// the cursor where the caller found it.
func skipConsume(ctx *Context) {
	skip := ctx.Grammar.skip
	if skip == nil || ctx.failed() {
		return
	}

	skip.recognize(ctx)
}
