// Package match defines the result datum produced by recognition: a tree of
// Match nodes linked by Child (first sub-match of a composite) and Next
// (chained repetitions, and sibling chaining within a Rule), plus the
// statically-allocated FAILURE sentinel.
//
// The traversal helpers here mirror the walk-by-Child-then-Next idiom the
// teacher's tree package uses for its syntax trees (tree.Walk / tree.Node),
// trimmed to the one shape spec.md actually calls for: a pre-order,
// step-counting walk a caller can use to size or flatten a result.
package match

// Status reports whether a Match represents a successful recognition.
type Status int

const (
	// Failed is the status carried by the FAILURE sentinel only.
	Failed Status = iota
	// Matched is the status of every other Match value.
	Matched
)

// Producer is implemented by whatever parsing element produced a Match. It
// is declared here, not in the grammar package, so that Match can hold a
// reference to its producer without this package importing grammar (the
// grammar package imports match, not the other way around).
type Producer interface {
	// DebugName returns the element's debug name, or "" if unnamed.
	DebugName() string
	// ID returns the element's stable id, assigned by Grammar.Prepare.
	ID() int
	// Process is the user post-action associated with the element, run in
	// post-order by a consumer walking a completed match tree. A Producer
	// with no process hook returns m.Data unchanged.
	Process(m *Match) (interface{}, error)
}

// Match is a single recognition result node, or the FAILURE sentinel.
type Match struct {
	Status   Status
	Offset   int
	Length   int
	Element  Producer
	Data     interface{}
	Next     *Match
	Child    *Match
	freeData func(interface{})
}

// Failure is the statically allocated sentinel returned by a failed
// recognition attempt. It must be compared by identity (m == match.Failure)
// and must never be mutated or freed.
var Failure = &Match{Status: Failed}

// New builds a successful Match.
func New(element Producer, offset, length int) *Match {
	return &Match{Status: Matched, Offset: offset, Length: length, Element: element}
}

// Empty builds the zero-width successful match produced by an optional or
// many_optional reference that matched nothing, and by Procedure/Condition.
func Empty(offset int) *Match {
	return &Match{Status: Matched, Offset: offset, Length: 0}
}

// IsFailure reports whether m is the FAILURE sentinel.
func (m *Match) IsFailure() bool {
	return m == Failure
}

// WithData attaches a data payload and its release hook (e.g. regex capture
// groups for a Token match) and returns m for chaining.
func (m *Match) WithData(data interface{}, free func(interface{})) *Match {
	m.Data = data
	m.freeData = free
	return m
}

// End returns the offset one past the last byte this match consumed.
func (m *Match) End() int {
	return m.Offset + m.Length
}

// Append links next onto the end of head's Next chain and returns the
// chain's head (head itself, or next when head is nil), for building up a reference's repetition chain or a
// Rule's sibling chain one match at a time.
func Append(head, next *Match) *Match {
	if head == nil {
		return next
	}

	tail := head
	for tail.Next != nil {
		tail = tail.Next
	}
	tail.Next = next
	return head
}

// Visitor is called once per node during Walk, in pre-order.
type Visitor func(m *Match)

// Walk performs the pre-order depth-first traversal described in spec.md
// §4.2: visit m, then recurse into m.Child if present, then advance to
// m.Next. It returns the number of nodes visited.
func Walk(m *Match, visit Visitor) int {
	count := 0
	for n := m; n != nil; n = n.Next {
		visit(n)
		count++
		if n.Child != nil {
			count += Walk(n.Child, visit)
		}
	}
	return count
}

// Free releases m and its Child/Next chain, invoking each node's release
// hook for its Data payload. Freeing Failure is a no-op.
func Free(m *Match) {
	if m == nil || m == Failure {
		return
	}

	Walk(m, func(n *Match) {
		if n.freeData != nil && n.Data != nil {
			n.freeData(n.Data)
			n.freeData = nil
			n.Data = nil
		}
	})
}

// Process walks m in post-order (children before self, left to right),
// invoking each node's producer's Process hook and attaching the result
// back onto m.Data. Nodes with a nil Element (zero-width empty matches from
// optional references) are skipped without a Process call. The overall
// result is whatever the root node's Process call returns.
func Process(m *Match) (interface{}, error) {
	if m == nil || m == Failure {
		return nil, nil
	}

	for n := m.Child; n != nil; n = n.Next {
		if _, e := Process(n); e != nil {
			return nil, e
		}
	}

	if m.Element == nil {
		return m.Data, nil
	}

	result, e := m.Element.Process(m)
	if e != nil {
		return nil, e
	}

	m.Data = result
	return result, nil
}
