package gro

import (
	"context"
	"regexp"
	"strings"
)

// MockClient is a deterministic heuristic editor used when no Gro credentials
// are configured (or GRO_MOCK is set). It lets the accept/decline flow be
// exercised end to end without external calls. Not a replacement for the
// real model.
type MockClient struct{}

var _ Client = &MockClient{}

func NewMockClient() *MockClient {
	return &MockClient{}
}

// mockRule is one keyword-triggered rewrite. Rules are evaluated
// independently against the lowercased instruction; every matching rule
// applies, in order.
type mockRule struct {
	match     func(lower string) bool
	transform func(tex string) string
	note      string
}

var (
	marginRe   = regexp.MustCompile(`margin\s*=\s*[0-9.]+in`)
	boldNameRe = regexp.MustCompile(`(\\\w*\{)([^}]*John[^}]*)\}`)
	summaryRe  = regexp.MustCompile(`(\\noindent\\textbf\{Summary\}\\\\\s*)([\s\S]*?)(\\vspace\{6pt\})`)
)

var mockRules = []mockRule{
	{
		match: func(lower string) bool {
			return strings.Contains(lower, "make") && strings.Contains(lower, "name") &&
				(strings.Contains(lower, "big") || strings.Contains(lower, "huge") || strings.Contains(lower, "larg"))
		},
		transform: func(tex string) string {
			return strings.ReplaceAll(tex, `\LARGE`, `\Huge`)
		},
		note: `Increased name size (\LARGE -> \Huge)`,
	},
	{
		match: func(lower string) bool {
			return (strings.Contains(lower, "reduce") && strings.Contains(lower, "margin")) ||
				strings.Contains(lower, "smaller margin") || strings.Contains(lower, "narrow")
		},
		transform: func(tex string) string {
			return replaceFirst(marginRe, tex, "margin=0.5in")
		},
		note: "Reduced page margin to 0.5in",
	},
	{
		match: func(lower string) bool {
			return (strings.Contains(lower, "bold") && strings.Contains(lower, "header")) ||
				strings.Contains(lower, "bold name")
		},
		transform: func(tex string) string {
			loc := boldNameRe.FindStringSubmatchIndex(tex)
			if loc == nil {
				return tex
			}
			head := tex[loc[2]:loc[3]]
			name := tex[loc[4]:loc[5]]
			return tex[:loc[0]] + head + `\textbf{` + name + `}}` + tex[loc[1]:]
		},
		note: "Bolded header/name",
	},
}

func (m *MockClient) ProposeUpdate(ctx context.Context, message, currentTex string) (*Proposal, error) {
	lower := strings.ToLower(message)
	proposed := currentTex
	notes := []string{}

	for _, rule := range mockRules {
		if rule.match(lower) {
			proposed = rule.transform(proposed)
			notes = append(notes, rule.note)
		}
	}

	if len(notes) == 0 {
		// Generic fallback: leave a visible annotation in the Summary section.
		proposed = appendSummaryNote(proposed, message)
		notes = append(notes, "Applied mock edit note to Summary section")
	}

	// A rewrite that drops the documentclass marker is destructive; keep the
	// original document instead.
	if !strings.Contains(proposed, `\documentclass`) {
		proposed = currentTex
		notes = append(notes, "Mock fallback: preserved original documentclass")
	}

	return &Proposal{ProposedTex: proposed, Explanation: strings.Join(notes, "; ")}, nil
}

func appendSummaryNote(tex, message string) string {
	loc := summaryRe.FindStringSubmatchIndex(tex)
	if loc == nil {
		return tex
	}
	header := tex[loc[2]:loc[3]]
	body := strings.TrimSpace(tex[loc[4]:loc[5]])
	tail := tex[loc[6]:loc[7]]
	return tex[:loc[0]] + header + " " + body + "\n\\newline Mock edit: " + message + tail + tex[loc[1]:]
}

func replaceFirst(re *regexp.Regexp, s, repl string) string {
	loc := re.FindStringIndex(s)
	if loc == nil {
		return s
	}
	return s[:loc[0]] + repl + s[loc[1]:]
}
