// Package restrict builds grammar.Condition elements that narrow which of
// a Group's branches may succeed based on which named context is currently
// active, in place of an implicit nearest-special-ancestor precedence rule.
//
// dynparse has no implicit ancestor stack of its own — Group and Rule
// don't record which alternative is currently being tried anywhere a
// Condition could read it — so this package trades a full
// allow/forbid precedence (nearest special ancestor wins) for an explicit
// flat activation stack a grammar pushes onto and pops from itself with
// Enter/Leave. That is enough for the common case this package exists
// for: forbidding a branch for as long as some named ancestor rule is
// still open, e.g. keeping a keyword-like Word from matching once an
// identifier has already been committed further up the tree.
package restrict

import (
	"fmt"

	"github.com/ava12/dynparse/grammar"
)

// Stack tracks which named contexts are currently open, innermost last.
type Stack struct {
	labels []string
}

// NewStack returns an empty activation stack.
func NewStack() *Stack {
	return &Stack{}
}

func (s *Stack) push(label string) {
	s.labels = append(s.labels, label)
}

func (s *Stack) pop() {
	if n := len(s.labels); n > 0 {
		s.labels = s.labels[:n-1]
	}
}

func (s *Stack) active(label string) bool {
	for _, l := range s.labels {
		if l == label {
			return true
		}
	}
	return false
}

func stackFrom(ctx *grammar.Context) (*Stack, error) {
	s, ok := ctx.UserData.(*Stack)
	if !ok {
		return nil, fmt.Errorf("contrib/restrict: parsing context's user data is not a *restrict.Stack (got %T)", ctx.UserData)
	}
	return s, nil
}

// Enter builds a Procedure that marks label as active. Wrap it as the
// first child of the Rule whose body should carry label.
func Enter(label string) *grammar.Element {
	return grammar.Procedure(func(ctx *grammar.Context) error {
		s, e := stackFrom(ctx)
		if e != nil {
			return e
		}
		s.push(label)
		return nil
	})
}

// Leave builds a Procedure that clears the most recently entered label.
// Wrap it as the last child of the same Rule Enter was added to.
func Leave() *grammar.Element {
	return grammar.Procedure(func(ctx *grammar.Context) error {
		s, e := stackFrom(ctx)
		if e != nil {
			return e
		}
		s.pop()
		return nil
	})
}

// Forbid builds a Condition that fails recognition (not an error) while
// any of the given labels is active. Put it as the first child of the
// Group branch it should gate.
func Forbid(labels ...string) *grammar.Element {
	return grammar.Condition(func(ctx *grammar.Context) (bool, error) {
		s, e := stackFrom(ctx)
		if e != nil {
			return false, e
		}
		for _, label := range labels {
			if s.active(label) {
				return false, nil
			}
		}
		return true, nil
	})
}

// RequireActive builds a Condition that succeeds only while one of the
// given labels is active, the dual of Forbid for branches that should
// only be tried inside a specific ancestor context.
func RequireActive(labels ...string) *grammar.Element {
	return grammar.Condition(func(ctx *grammar.Context) (bool, error) {
		s, e := stackFrom(ctx)
		if e != nil {
			return false, e
		}
		for _, label := range labels {
			if s.active(label) {
				return true, nil
			}
		}
		return false, nil
	})
}
