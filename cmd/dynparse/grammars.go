package main

import (
	"fmt"

	"github.com/ava12/dynparse/contrib/convert"
	"github.com/ava12/dynparse/grammar"
	"github.com/ava12/dynparse/match"
)

// buildArith returns a grammar recognizing a left-associative chain of
// "+"/"-" over non-negative integers (e.g. "3+4-1"), with a Process chain
// that folds the chain into an int64 result.
func buildArith() *grammar.Grammar {
	num := grammar.WithProcess(grammar.MustToken(`[0-9]+`), convert.IntLiteral(0, 10))
	plus := grammar.Name(grammar.Word("+"), "plus")
	minus := grammar.Name(grammar.Word("-"), "minus")

	op := must(grammar.Group(grammar.From(plus), grammar.From(minus)))
	pair := must(grammar.Rule(grammar.From(op), grammar.From(num)))
	expr := must(grammar.Rule(grammar.From(num), grammar.From(pair).With(grammar.ManyOptional)))

	expr = grammar.WithProcess(expr, func(m *match.Match) (interface{}, error) {
		result := m.Child.Data.(int64)
		for n := m.Child.Next; n != nil; n = n.Next {
			if n.Element == nil || n.Child == nil {
				continue
			}
			opWord := n.Child.Child
			val := n.Child.Next.Data.(int64)
			switch opWord.Element.DebugName() {
			case "plus":
				result += val
			case "minus":
				result -= val
			default:
				return nil, fmt.Errorf("unrecognized operator %q", opWord.Element.DebugName())
			}
		}
		return result, nil
	})

	return grammar.New().SetAxiom(expr)
}

// buildParens returns a grammar recognizing a single letter, optionally
// wrapped in any number of matching parentheses (e.g. "((x))"), built with
// Forward/Redirect to demonstrate recursive grammars.
func buildParens() *grammar.Grammar {
	letter := grammar.MustToken(`[a-zA-Z]`)
	exprFwd := grammar.Forward()
	paren := must(grammar.Rule(
		grammar.From(grammar.Word("(")),
		grammar.From(exprFwd),
		grammar.From(grammar.Word(")")),
	))
	atom := must(grammar.Group(grammar.From(letter), grammar.From(paren)))
	grammar.Redirect(exprFwd, atom)

	return grammar.New().SetAxiom(exprFwd)
}

func must(e *grammar.Element, err error) *grammar.Element {
	if err != nil {
		panic(err)
	}
	return e
}

var demoGrammars = map[string]func() *grammar.Grammar{
	"arith":  buildArith,
	"parens": buildParens,
}
