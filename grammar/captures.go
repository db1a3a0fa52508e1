package grammar

import "github.com/ava12/dynparse/match"

// CaptureGroup returns the i-th regex capture group text a Token match
// produced (group 0 is the whole match), or "" if m was not produced by a
// Token element, i is out of range, or that group did not participate in
// the match.
func CaptureGroup(m *match.Match, i int) string {
	groups, ok := m.Data.([]string)
	if !ok || i < 0 || i >= len(groups) {
		return ""
	}
	return groups[i]
}
