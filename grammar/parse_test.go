package grammar

import (
	"strconv"
	"testing"

	"github.com/ava12/dynparse/match"
)

// Scenario A: arithmetic expression, with Process hooks building an int AST.
func TestScenarioArithmeticExpression(t *testing.T) {
	number := WithProcess(mustToken(t, `[0-9]+`), func(m *match.Match) (interface{}, error) {
		return strconv.Atoi(CaptureGroup(m, 0))
	})
	plus := Word("+")

	sum := mustRule(t, From(number), From(plus), From(number))
	sum = WithProcess(sum, func(m *match.Match) (interface{}, error) {
		left := m.Child.Data.(int)
		right := m.Child.Next.Next.Data.(int)
		return left + right, nil
	})

	g := New().SetAxiom(sum)
	m, err := Parse(g, newIt("12+7"), nil)
	if err != nil {
		t.Fatalf("Parse: %s", err)
	}
	if m.IsFailure() {
		t.Fatalf("Parse failed on well-formed input")
	}

	result, err := match.Process(m)
	if err != nil {
		t.Fatalf("Process: %s", err)
	}
	if result.(int) != 19 {
		t.Fatalf("result = %v, want 19", result)
	}
}

// Scenario B: many_optional with nothing to match is an empty success, not
// a failure, and does not move the cursor.
func TestScenarioManyOptionalEmptyMatch(t *testing.T) {
	g := New().SetAxiom(Word("unused"))
	if err := g.Prepare(); err != nil {
		t.Fatalf("Prepare: %s", err)
	}

	ctx := newContext(g, newIt("xyz"), nil, nil)
	ref := From(Word("a")).With(ManyOptional)

	m := ref.recognize(ctx)
	if m.IsFailure() {
		t.Fatalf("ManyOptional with zero matches reported failure")
	}
	if m.Length != 0 {
		t.Fatalf("length = %d, want 0", m.Length)
	}
	if ctx.Iter.Offset() != 0 {
		t.Fatalf("offset = %d, want 0 (unmoved)", ctx.Iter.Offset())
	}
}

// Scenario B variant: many (not optional) with zero matches is a failure.
func TestScenarioManyRequiresAtLeastOne(t *testing.T) {
	g := New().SetAxiom(Word("unused"))
	ctx := newContext(g, newIt("xyz"), nil, nil)
	ref := From(Word("a")).With(Many)

	if m := ref.recognize(ctx); !m.IsFailure() {
		t.Fatalf("Many with zero matches succeeded, want failure")
	}
}

// Scenario C: a Rule whose later child fails rewinds the cursor all the
// way back to where the rule started, undoing the earlier children's
// consumption.
func TestScenarioFailureRewindsWholeRule(t *testing.T) {
	rule := mustRule(t, From(Word("ab")), From(Word("x")))
	g := New().SetAxiom(rule)
	if err := g.Prepare(); err != nil {
		t.Fatalf("Prepare: %s", err)
	}

	ctx := newContext(g, newIt("abcd"), nil, nil)
	m := rule.recognize(ctx)
	if !m.IsFailure() {
		t.Fatalf("rule matched, want failure")
	}
	if ctx.Iter.Offset() != 0 {
		t.Fatalf("offset = %d after failed rule, want 0", ctx.Iter.Offset())
	}
}

// Scenario D: Group tries alternatives in declaration order and stops at
// the first success, even when a later alternative would also match (and
// would consume more input).
func TestScenarioGroupTriesAlternativesInOrder(t *testing.T) {
	grp := mustGroup(t, From(Word("a")), From(Word("ab")))
	g := New().SetAxiom(grp)
	if err := g.Prepare(); err != nil {
		t.Fatalf("Prepare: %s", err)
	}

	m, err := Parse(g, newIt("ab"), nil)
	if err != nil {
		t.Fatalf("Parse: %s", err)
	}
	if m.IsFailure() {
		t.Fatalf("Parse failed")
	}
	if m.Length != 1 {
		t.Fatalf("length = %d, want 1 (first alternative wins even though it matches less)", m.Length)
	}
}

// Scenario E: a recursive grammar (balanced parentheses around a single
// letter) built with Forward/Redirect.
func TestScenarioRecursiveGrammar(t *testing.T) {
	letter := mustToken(t, `[a-z]`)
	exprFwd := Forward()
	paren := mustRule(t, From(Word("(")), From(exprFwd), From(Word(")")))
	atom := mustGroup(t, From(letter), From(paren))
	Redirect(exprFwd, atom)

	g := New().SetAxiom(exprFwd)
	m, err := Parse(g, newIt("((x))"), nil)
	if err != nil {
		t.Fatalf("Parse: %s", err)
	}
	if m.IsFailure() {
		t.Fatalf("Parse failed on balanced input")
	}
	if m.End() != 5 {
		t.Fatalf("matched length = %d, want 5 (whole input)", m.End())
	}
}

// Scenario F: the grammar's skip element is consumed between a Rule's
// children without being named in the Rule itself.
func TestScenarioSkipBetweenRuleChildren(t *testing.T) {
	skip := mustToken(t, `[ \t]+`)
	rule := mustRule(t, From(Word("a")), From(Word("b")))

	g := New().SetAxiom(rule).SetSkip(skip)
	m, err := Parse(g, newIt("a   b"), nil)
	if err != nil {
		t.Fatalf("Parse: %s", err)
	}
	if m.IsFailure() {
		t.Fatalf("Parse failed with skip between children")
	}
	if m.End() != 5 {
		t.Fatalf("matched length = %d, want 5 (whole input consumed including skipped spaces)", m.End())
	}
}

// Procedure/Condition callback error propagation aborts the whole parse.
func TestCallbackErrorAbortsParse(t *testing.T) {
	boom := Procedure(func(ctx *Context) error {
		return errBoom
	})
	rule := mustRule(t, From(Word("a")), From(boom))

	g := New().SetAxiom(rule)
	m, err := Parse(g, newIt("a"), nil)
	if err == nil {
		t.Fatalf("Parse succeeded, want the callback error")
	}
	if m != nil {
		t.Fatalf("Parse returned a non-nil match alongside an error")
	}
}

var errBoom = errorString("boom")

type errorString string

func (e errorString) Error() string { return string(e) }
