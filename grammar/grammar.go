package grammar

import (
	"github.com/ava12/dynparse/errors"
	"github.com/ava12/dynparse/internal/bmap"
	"github.com/ava12/dynparse/internal/queue"
)

// Grammar owns a parsing-element graph: one axiom element recognition
// starts from, an optional skip element run between a Rule's children, and
// the registry of named elements Prepare builds while assigning stable ids.
type Grammar struct {
	axiom    *Element
	skip     *Element
	byName   *bmap.BMap[*Element]
	prepared bool
}

// New builds an empty Grammar. Call SetAxiom (required) and optionally
// SetSkip, then Prepare, before parsing against it.
func New() *Grammar {
	return &Grammar{byName: bmap.New[*Element](16)}
}

// SetAxiom sets the element recognition starts from. Returns g for chaining.
func (g *Grammar) SetAxiom(e *Element) *Grammar {
	g.axiom = e
	g.prepared = false
	return g
}

// SetSkip sets the element recognized between a Rule's children (typically
// whitespace/comments). A nil skip, the default, disables inter-child
// skipping. Returns g for chaining.
func (g *Grammar) SetSkip(e *Element) *Grammar {
	g.skip = e
	g.prepared = false
	return g
}

// Axiom returns the grammar's axiom element.
func (g *Grammar) Axiom() *Element {
	return g.axiom
}

// Skip returns the grammar's skip element, or nil.
func (g *Grammar) Skip() *Element {
	return g.skip
}

// ByName looks up a previously Prepare'd element by its debug name.
// Unnamed elements and elements from a Grammar that has not been Prepare'd
// are not found.
func (g *Grammar) ByName(name string) (*Element, bool) {
	return g.byName.Get([]byte(name))
}

// Prepare walks the element graph reachable from the axiom (and, if set,
// from skip) and assigns each distinct element a stable, unique id in the
// order a breadth-first traversal from the axiom first reaches it (axiom 0,
// then its direct children, then their children, and so on). Elements
// reachable only from skip, not from the axiom, continue the id sequence
// after the axiom-reachable subgraph so every visited element still ends
// up with a unique id in [0, N).
//
// Prepare is idempotent: calling it again after SetAxiom/SetSkip re-walks
// the graph and reassigns ids from scratch.
func (g *Grammar) Prepare() error {
	if g.axiom == nil {
		return errors.Format(errors.GrammarErrors, "grammar has no axiom")
	}

	g.byName = bmap.New[*Element](16)
	visited := make(map[*Element]bool)
	nextID := 0

	nextID = g.bfsAssign(g.axiom, visited, nextID)
	if g.skip != nil && !visited[g.skip] {
		g.bfsAssign(g.skip, visited, nextID)
	}

	g.prepared = true
	return nil
}

// Prepared reports whether Prepare has run since the last SetAxiom/SetSkip.
func (g *Grammar) Prepared() bool {
	return g.prepared
}

func (g *Grammar) bfsAssign(root *Element, visited map[*Element]bool, nextID int) int {
	q := queue.New[*Element]()
	q.Append(root)
	visited[root] = true

	for !q.IsEmpty() {
		e, _ := q.First()
		e.id = nextID
		nextID++
		if e.name != "" {
			g.byName.Set([]byte(e.name), e)
		}

		for r := e.firstRef; r != nil; r = r.next {
			child := r.element
			if !visited[child] {
				visited[child] = true
				q.Append(child)
			}
		}
	}

	return nextID
}
