// Package grammar implements the parsing-element graph: the six element
// variants from spec.md §2–4 (Word, Token, Group, Rule, plus zero-width
// Procedure/Condition), the Reference edges that carry cardinality, and the
// Grammar that owns the graph and assigns stable ids.
//
// The element model follows a tagged-variant convention (one struct, a
// kind tag, and a payload that only the matching recognize branch touches)
// rather than six separate interface implementations, the same shape
// spec.md §9 Design Notes calls "a sum type over the six variants, each
// carrying its own config."
package grammar

import (
	"regexp"

	"github.com/ava12/dynparse/errors"
	"github.com/ava12/dynparse/match"
)

// Kind identifies which of the six parsing-element variants an Element is.
type Kind int

const (
	WordKind Kind = iota
	TokenKind
	GroupKind
	RuleKind
	ProcedureKind
	ConditionKind

	// unresolvedKind marks a Forward placeholder that Redirect has not yet
	// filled in. recognize on an unresolved element always fails.
	unresolvedKind
)

func (k Kind) String() string {
	switch k {
	case WordKind:
		return "word"
	case TokenKind:
		return "token"
	case GroupKind:
		return "group"
	case RuleKind:
		return "rule"
	case ProcedureKind:
		return "procedure"
	case ConditionKind:
		return "condition"
	case unresolvedKind:
		return "unresolved"
	default:
		return "unknown"
	}
}

// Callback is the side-effecting action run by a Procedure element.
type Callback func(ctx *Context) error

// Predicate is the gating check run by a Condition element; returning
// (false, nil) fails recognition without it being an error.
type Predicate func(ctx *Context) (bool, error)

// ProcessFunc is a user post-action invoked, in post-order, once recognition
// of the whole input has finished. It receives the match this element
// produced and returns the AST-level value a consumer wants attached there.
type ProcessFunc func(m *match.Match) (interface{}, error)

// Element is a parsing-element node in the grammar graph. Exactly one of
// the variant-specific fields below is meaningful, selected by Kind.
type Element struct {
	kind Kind
	id   int
	name string

	// Word
	literal []byte

	// Token
	pattern string
	re      *regexp.Regexp

	// Group / Rule: ordered linked list of child references.
	firstRef *Reference
	lastRef  *Reference

	// Procedure / Condition
	callback  Callback
	predicate Predicate

	process ProcessFunc
}

// Word builds a literal-byte-string matching element.
func Word(literal string) *Element {
	return &Element{kind: WordKind, literal: []byte(literal), id: -1}
}

// Token builds a regex-matching element. A malformed pattern is reported
// immediately as a GrammarBuildError, matching spec.md §4.5 ("Regex
// compilation errors at grammar-construction time are fatal").
func Token(pattern string) (*Element, error) {
	re, e := regexp.Compile(pattern)
	if e != nil {
		return nil, errors.Format(errors.GrammarErrors, "invalid token pattern %q: %s", pattern, e.Error())
	}
	return &Element{kind: TokenKind, pattern: pattern, re: re, id: -1}, nil
}

// MustToken is Token, panicking on a malformed pattern. Intended for
// grammars built from Go source (literal patterns known at compile time),
// not for patterns sourced from untrusted input.
func MustToken(pattern string) *Element {
	e, err := Token(pattern)
	if err != nil {
		panic(err)
	}
	return e
}

// Group builds an ordered-choice element: refs are tried in declaration
// order and the first to succeed wins. A nil ref is a GrammarBuildError.
func Group(refs ...*Reference) (*Element, error) {
	return newComposite(GroupKind, refs)
}

// Rule builds a concatenation element: refs must all succeed in order,
// with the grammar's skip element optionally consumed between them.
func Rule(refs ...*Reference) (*Element, error) {
	return newComposite(RuleKind, refs)
}

func newComposite(kind Kind, refs []*Reference) (*Element, error) {
	e := &Element{kind: kind, id: -1}
	for _, r := range refs {
		if r == nil || r.element == nil {
			return nil, errors.Format(errors.GrammarErrors, "%s: nil child reference", kind)
		}
		if e.firstRef == nil {
			e.firstRef = r
		} else {
			e.lastRef.next = r
		}
		e.lastRef = r
	}
	return e, nil
}

// Procedure builds a zero-width element that always succeeds after running
// cb for its side effects (e.g. pushing an indentation frame).
func Procedure(cb Callback) *Element {
	return &Element{kind: ProcedureKind, callback: cb, id: -1}
}

// Condition builds a zero-width element that succeeds or fails based on
// pred, without consuming any input.
func Condition(pred Predicate) *Element {
	return &Element{kind: ConditionKind, predicate: pred, id: -1}
}

// Forward returns a placeholder element for defining recursive grammars:
// build the recursive child's References against fwd with From(fwd), then
// once the real element exists, call Redirect(fwd, real) to make fwd behave
// as real from then on. Calling recognize on a Forward that has not been
// Redirect-ed always fails.
func Forward() *Element {
	return &Element{kind: unresolvedKind, id: -1}
}

// Redirect makes fwd, a placeholder returned by Forward, behave exactly as
// target: every Reference already pointing at fwd sees target's kind and
// children from then on, since fwd's address never changes. Redirecting
// twice, or redirecting an element that was not obtained from Forward,
// overwrites whatever fwd held before.
func Redirect(fwd, target *Element) {
	if fwd == target {
		return
	}
	*fwd = *target
}

// Name attaches a debug name to e, used by consumers to identify elements
// in error messages and match-tree dumps. Returns e for chaining.
func Name(e *Element, name string) *Element {
	e.name = name
	return e
}

// WithProcess attaches a post-order AST-building hook to e. Returns e for
// chaining.
func WithProcess(e *Element, p ProcessFunc) *Element {
	e.process = p
	return e
}

// Kind reports which of the six variants e is.
func (e *Element) Kind() Kind {
	return e.kind
}

// DebugName implements match.Producer.
func (e *Element) DebugName() string {
	return e.name
}

// ID implements match.Producer. It is -1 until the owning Grammar's
// Prepare has run.
func (e *Element) ID() int {
	return e.id
}

// Process implements match.Producer.
func (e *Element) Process(m *match.Match) (interface{}, error) {
	if e.process == nil {
		return m.Data, nil
	}
	return e.process(m)
}

// Pattern returns the source regex pattern for a Token element, or "" for
// any other kind.
func (e *Element) Pattern() string {
	return e.pattern
}
