package gro

import (
	"context"
	"strings"
	"testing"
)

const mockSeedTex = `\documentclass[letterpaper,11pt]{article}
\usepackage[margin=1in]{geometry}
\begin{document}
{\LARGE John Doe}\\
\noindent\textbf{Summary}\\
Seasoned engineer with a focus on backend systems.
\vspace{6pt}
\end{document}
`

func TestMockClientNameSizeRule(t *testing.T) {
	p, err := NewMockClient().ProposeUpdate(context.Background(), "Please make the name bigger", mockSeedTex)
	if err != nil {
		t.Fatalf("ProposeUpdate() error = %v", err)
	}
	if strings.Contains(p.ProposedTex, `\LARGE`) {
		t.Error("expected \\LARGE to be replaced")
	}
	if !strings.Contains(p.ProposedTex, `\Huge John Doe`) {
		t.Errorf("expected \\Huge name, got:\n%s", p.ProposedTex)
	}
	if !strings.Contains(p.Explanation, "Increased name size") {
		t.Errorf("unexpected explanation: %q", p.Explanation)
	}
}

func TestMockClientMarginRule(t *testing.T) {
	p, err := NewMockClient().ProposeUpdate(context.Background(), "reduce the margins a bit", mockSeedTex)
	if err != nil {
		t.Fatalf("ProposeUpdate() error = %v", err)
	}
	if !strings.Contains(p.ProposedTex, "margin=0.5in") {
		t.Errorf("expected margin=0.5in, got:\n%s", p.ProposedTex)
	}
	if strings.Contains(p.ProposedTex, "margin=1in") {
		t.Error("original margin should have been replaced")
	}
}

func TestMockClientMarginRuleReplacesFirstOnly(t *testing.T) {
	doubled := strings.Replace(mockSeedTex, "margin=1in", "margin=1in ignore margin=2in", 1)
	p, err := NewMockClient().ProposeUpdate(context.Background(), "narrow the page", doubled)
	if err != nil {
		t.Fatalf("ProposeUpdate() error = %v", err)
	}
	if !strings.Contains(p.ProposedTex, "margin=0.5in ignore margin=2in") {
		t.Errorf("only the first margin should change, got:\n%s", p.ProposedTex)
	}
}

func TestMockClientBoldNameRule(t *testing.T) {
	tex := strings.Replace(mockSeedTex, `{\LARGE John Doe}`, `\name{John Doe}`, 1)
	p, err := NewMockClient().ProposeUpdate(context.Background(), "bold name please", tex)
	if err != nil {
		t.Fatalf("ProposeUpdate() error = %v", err)
	}
	if !strings.Contains(p.ProposedTex, `\name{\textbf{John Doe}}`) {
		t.Errorf("expected wrapped name, got:\n%s", p.ProposedTex)
	}
	if !strings.Contains(p.Explanation, "Bolded header/name") {
		t.Errorf("unexpected explanation: %q", p.Explanation)
	}
}

func TestMockClientBoldNameRuleNoTarget(t *testing.T) {
	// No \cmd{...John...} field to wrap; the document passes through
	// unchanged.
	p, err := NewMockClient().ProposeUpdate(context.Background(), "bold the header", mockSeedTex)
	if err != nil {
		t.Fatalf("ProposeUpdate() error = %v", err)
	}
	if p.ProposedTex != mockSeedTex {
		t.Errorf("document should be unchanged, got:\n%s", p.ProposedTex)
	}
}

func TestMockClientRulesCombine(t *testing.T) {
	p, err := NewMockClient().ProposeUpdate(context.Background(), "make the name bigger and reduce margins", mockSeedTex)
	if err != nil {
		t.Fatalf("ProposeUpdate() error = %v", err)
	}
	if !strings.Contains(p.ProposedTex, `\Huge`) || !strings.Contains(p.ProposedTex, "margin=0.5in") {
		t.Errorf("expected both rules to apply, got:\n%s", p.ProposedTex)
	}
	if !strings.Contains(p.Explanation, "; ") {
		t.Errorf("expected joined notes, got: %q", p.Explanation)
	}
}

func TestMockClientGenericFallback(t *testing.T) {
	msg := "translate everything to French"
	p, err := NewMockClient().ProposeUpdate(context.Background(), msg, mockSeedTex)
	if err != nil {
		t.Fatalf("ProposeUpdate() error = %v", err)
	}
	if !strings.Contains(p.ProposedTex, "Mock edit: "+msg) {
		t.Errorf("expected summary annotation, got:\n%s", p.ProposedTex)
	}
	if p.Explanation != "Applied mock edit note to Summary section" {
		t.Errorf("unexpected explanation: %q", p.Explanation)
	}
}

func TestMockClientPreservesDocumentclass(t *testing.T) {
	// No Summary section and no matching rule: the generic note cannot be
	// placed, but the document must still come back intact.
	bare := "\\documentclass{article}\n\\begin{document}\nHi\n\\end{document}\n"
	p, err := NewMockClient().ProposeUpdate(context.Background(), "do something", bare)
	if err != nil {
		t.Fatalf("ProposeUpdate() error = %v", err)
	}
	if p.ProposedTex != bare {
		t.Errorf("document should be unchanged, got:\n%s", p.ProposedTex)
	}
}
