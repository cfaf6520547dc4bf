package latex

import (
	"fmt"
	"regexp"
	"strings"
)

// Result holds the outcome of a structural validation pass.
// Valid is true iff Errors is empty.
type Result struct {
	Valid  bool     `json:"valid"`
	Errors []string `json:"errors"`
}

var (
	documentClassRe = regexp.MustCompile(`(?i)\\documentclass\s*\{[^}]+\}`)
	beginDocumentRe = regexp.MustCompile(`(?i)\\begin\{document\}`)
	endDocumentRe   = regexp.MustCompile(`(?i)\\end\{document\}`)

	// Known shell-escape / raw IO constructs we refuse to pass downstream.
	unsafePatterns = []*regexp.Regexp{
		regexp.MustCompile(`\\write18\b`),
		regexp.MustCompile(`\\input\s*\{.*\|.*\}`),
		regexp.MustCompile(`\\immediate\\write\b`),
		regexp.MustCompile(`\\openout\b`),
		regexp.MustCompile(`\\read\b`),
	}
)

// Validate runs lightweight structural checks against a LaTeX document:
// required markers, balanced braces and a denylist of unsafe constructs.
// Checks are independent and errors accumulate; only the empty-document
// check short-circuits. Pure function, safe for concurrent use.
func Validate(tex string) Result {
	errs := []string{}

	if strings.TrimSpace(tex) == "" {
		return Result{Valid: false, Errors: []string{"Empty LaTeX document"}}
	}

	if !documentClassRe.MatchString(tex) {
		errs = append(errs, `Missing \documentclass{...}`)
	}
	if !beginDocumentRe.MatchString(tex) {
		errs = append(errs, `Missing \begin{document}`)
	}
	if !endDocumentRe.MatchString(tex) {
		errs = append(errs, `Missing \end{document}`)
	}

	// Brace scan. A negative running depth is reported once and stops the scan.
	depth := 0
	for _, ch := range tex {
		switch ch {
		case '{':
			depth++
		case '}':
			depth--
		}
		if depth < 0 {
			errs = append(errs, "Unbalanced braces (too many })")
			break
		}
	}
	if depth > 0 {
		errs = append(errs, "Unbalanced braces (missing })")
	}

	for _, rx := range unsafePatterns {
		if rx.MatchString(tex) {
			errs = append(errs, fmt.Sprintf("Prohibited or suspicious LaTeX construct: %s", rx.String()))
		}
	}

	return Result{Valid: len(errs) == 0, Errors: errs}
}
