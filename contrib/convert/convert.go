// Package convert builds grammar.ProcessFunc helpers that decode a Token
// match's capture groups into typed Go values, in place of a separate
// token-replacement pass that rewrites matched text through a from/to
// table before the parser ever sees it.
//
// These helpers run where spec.md §2's "process" hook already runs: once
// per match, after recognition, with the actual capture groups to hand —
// so there is no separate text-rewrite pass, just a typed decode of the
// text the Token element already captured.
package convert

import (
	"strconv"
	"strings"

	"github.com/ava12/dynparse/grammar"
	"github.com/ava12/dynparse/match"
)

// IntLiteral returns a ProcessFunc that parses capture group `group` of a
// Token match as a base-`base` integer (base 0 means infer from a 0x/0o/0b
// prefix, per strconv.ParseInt).
func IntLiteral(group, base int) grammar.ProcessFunc {
	return func(m *match.Match) (interface{}, error) {
		return strconv.ParseInt(grammar.CaptureGroup(m, group), base, 64)
	}
}

// FloatLiteral returns a ProcessFunc that parses capture group `group` of
// a Token match as a 64-bit float.
func FloatLiteral(group int) grammar.ProcessFunc {
	return func(m *match.Match) (interface{}, error) {
		return strconv.ParseFloat(grammar.CaptureGroup(m, group), 64)
	}
}

// Replace returns a ProcessFunc that decodes capture group `group` of a
// Token match by substituting every occurrence of each pairs[i] with
// pairs[i+1] (escape-sequence unescaping via a from/to table). pairs must
// hold an even number of strings.
func Replace(group int, pairs ...string) grammar.ProcessFunc {
	replacer := strings.NewReplacer(pairs...)
	return func(m *match.Match) (interface{}, error) {
		return replacer.Replace(grammar.CaptureGroup(m, group)), nil
	}
}
