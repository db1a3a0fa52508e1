package convert

import (
	"strings"
	"testing"

	"github.com/ava12/dynparse/grammar"
	"github.com/ava12/dynparse/iterator"
	"github.com/ava12/dynparse/match"
)

func parse(t *testing.T, e *grammar.Element, content string) *match.Match {
	t.Helper()

	g := grammar.New().SetAxiom(e)
	it := iterator.New("t", strings.NewReader(content))
	m, err := grammar.Parse(g, it, nil)
	if err != nil {
		t.Fatalf("Parse: %s", err)
	}
	if m.IsFailure() {
		t.Fatalf("Parse failed on %q", content)
	}
	return m
}

func TestIntLiteral(t *testing.T) {
	num := grammar.WithProcess(grammar.MustToken(`[0-9]+`), IntLiteral(0, 10))
	m := parse(t, num, "42")

	v, err := match.Process(m)
	if err != nil {
		t.Fatalf("Process: %s", err)
	}
	if v.(int64) != 42 {
		t.Fatalf("value = %v, want 42", v)
	}
}

func TestFloatLiteral(t *testing.T) {
	num := grammar.WithProcess(grammar.MustToken(`[0-9]+\.[0-9]+`), FloatLiteral(0))
	m := parse(t, num, "3.5")

	v, err := match.Process(m)
	if err != nil {
		t.Fatalf("Process: %s", err)
	}
	if v.(float64) != 3.5 {
		t.Fatalf("value = %v, want 3.5", v)
	}
}

func TestReplaceUnescapesCaptureGroup(t *testing.T) {
	str := grammar.WithProcess(grammar.MustToken(`"([^"]*)"`), Replace(1, `\n`, "\n", `\t`, "\t"))
	m := parse(t, str, `"a\nb"`)

	v, err := match.Process(m)
	if err != nil {
		t.Fatalf("Process: %s", err)
	}
	if v.(string) != "a\nb" {
		t.Fatalf("value = %q, want %q", v, "a\nb")
	}
}
