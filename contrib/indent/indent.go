// Package indent builds grammar.Condition elements that track a column
// indentation stack in a parsing context's user data, for grammars that
// need Python-like block structure (spec.md §9 Design Notes: "current
// column equals saved indent").
//
// It trades comparing raw leading-whitespace byte slices line by line for
// a plain integer column stack: since a dynparse grammar already consumes
// the actual whitespace bytes itself (via Word/Token children or a skip
// element), Indent/Dedent/Same only need to compare the iterator's
// reported column, not re-derive it from buffered whitespace content.
package indent

import (
	"fmt"

	"github.com/ava12/dynparse/grammar"
)

// Stack holds the nested indentation levels seen so far, outermost first.
// A fresh Stack starts with a single level 0, matching a line with no
// indentation.
type Stack struct {
	levels []int
}

// NewStack returns a Stack ready to track indentation from column 0.
func NewStack() *Stack {
	return &Stack{levels: []int{0}}
}

// Top returns the innermost currently active indentation level.
func (s *Stack) Top() int {
	return s.levels[len(s.levels)-1]
}

// Depth returns how many nested indentation levels are currently open,
// not counting the base level 0.
func (s *Stack) Depth() int {
	return len(s.levels) - 1
}

func (s *Stack) push(col int) {
	s.levels = append(s.levels, col)
}

func (s *Stack) pop() {
	if len(s.levels) > 1 {
		s.levels = s.levels[:len(s.levels)-1]
	}
}

func (s *Stack) contains(col int) bool {
	for _, l := range s.levels {
		if l == col {
			return true
		}
	}
	return false
}

func stackFrom(ctx *grammar.Context) (*Stack, error) {
	s, ok := ctx.UserData.(*Stack)
	if !ok {
		return nil, fmt.Errorf("contrib/indent: parsing context's user data is not a *indent.Stack (got %T)", ctx.UserData)
	}
	return s, nil
}

func currentColumn(ctx *grammar.Context) int {
	_, col := ctx.Iter.LineCol(ctx.Iter.Offset())
	return col - 1
}

// Same builds a Condition that succeeds without changing the stack when
// the current column equals the innermost open indentation level —
// the common case of a line continuing at the same block depth.
func Same() *grammar.Element {
	return grammar.Condition(func(ctx *grammar.Context) (bool, error) {
		s, e := stackFrom(ctx)
		if e != nil {
			return false, e
		}
		return currentColumn(ctx) == s.Top(), nil
	})
}

// Indent builds a Condition that succeeds and pushes a new level only when
// the current column is strictly deeper than the innermost open level,
// signalling the start of a nested block.
func Indent() *grammar.Element {
	return grammar.Condition(func(ctx *grammar.Context) (bool, error) {
		s, e := stackFrom(ctx)
		if e != nil {
			return false, e
		}

		col := currentColumn(ctx)
		if col <= s.Top() {
			return false, nil
		}

		s.push(col)
		return true, nil
	})
}

// Dedent builds a Condition that succeeds and pops one level when the
// current column matches some shallower level already on the stack,
// signalling the end of a nested block. It fails (without touching the
// stack) if the column matches no open level, the condition spec.md's
// consumers use to report a malformed dedent.
func Dedent() *grammar.Element {
	return grammar.Condition(func(ctx *grammar.Context) (bool, error) {
		s, e := stackFrom(ctx)
		if e != nil {
			return false, e
		}

		col := currentColumn(ctx)
		if col >= s.Top() || !s.contains(col) {
			return false, nil
		}

		s.pop()
		return true, nil
	})
}
