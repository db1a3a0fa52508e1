package grammar

import "github.com/ava12/dynparse/match"

// Cardinality controls how many times a Reference's element may match, per
// the table in spec.md §4.8.
type Cardinality int

const (
	// One requires exactly one match; zero matches is a failure.
	One Cardinality = iota
	// Optional allows zero or one match; zero matches is an empty success.
	Optional
	// Many requires one or more matches; zero matches is a failure.
	Many
	// ManyOptional allows zero or more matches; zero matches is an empty success.
	ManyOptional
)

func (c Cardinality) String() string {
	switch c {
	case One:
		return "one"
	case Optional:
		return "optional"
	case Many:
		return "many"
	case ManyOptional:
		return "many_optional"
	default:
		return "unknown"
	}
}

// Reference is a decorated edge from a composite element (Group or Rule) to
// one child element, carrying that child's cardinality and an optional name
// consumers use to look children up by role rather than position.
type Reference struct {
	cardinality Cardinality
	name        string
	element     *Element
	next        *Reference
}

// From builds a Reference to e with the default One cardinality.
func From(e *Element) *Reference {
	return &Reference{element: e, cardinality: One}
}

// With sets r's cardinality. Returns r for chaining.
func (r *Reference) With(c Cardinality) *Reference {
	r.cardinality = c
	return r
}

// Named sets r's lookup name. Returns r for chaining.
func (r *Reference) Named(name string) *Reference {
	r.name = name
	return r
}

// Element returns the element r refers to.
func (r *Reference) Element() *Element {
	return r.element
}

// Cardinality returns r's cardinality.
func (r *Reference) Cardinality() Cardinality {
	return r.cardinality
}

// Name returns r's lookup name, or "" if unnamed.
func (r *Reference) Name() string {
	return r.name
}

// recognize applies r's cardinality policy around repeated recognition of
// r.element, per the table in spec.md §4.8.
func (r *Reference) recognize(ctx *Context) *match.Match {
	if ctx.failed() {
		return match.Failure
	}

	start := ctx.Iter.Offset()

	switch r.cardinality {
	case One:
		return r.element.recognize(ctx)

	case Optional:
		m := r.element.recognize(ctx)
		if m.IsFailure() {
			return match.Empty(start)
		}
		return m

	case Many:
		head := r.collectRepeats(ctx)
		if head == nil {
			return match.Failure
		}
		return head

	case ManyOptional:
		head := r.collectRepeats(ctx)
		if head == nil {
			return match.Empty(start)
		}
		return head

	default:
		return match.Failure
	}
}

// collectRepeats implements the many/many_optional loop: recognize
// r.element repeatedly, chaining successes via Next, until a failure (which
// leaves the iterator rewound to the position right after the last
// success, since recognize's own rewind-on-failure invariant already puts
// it there) or until a zero-width success is recorded, which terminates
// the loop immediately to avoid looping forever on an always-matching
// zero-width element (spec.md §4.8, §8 property 5).
func (r *Reference) collectRepeats(ctx *Context) *match.Match {
	var head, tail *match.Match
	for {
		if ctx.failed() {
			return head
		}

		m := r.element.recognize(ctx)
		if m.IsFailure() {
			return head
		}

		if head == nil {
			head = m
		} else {
			tail.Next = m
		}
		tail = m

		if m.Length == 0 {
			return head
		}
	}
}
