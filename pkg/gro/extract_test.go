package gro

import "testing"

func TestExtractProposal(t *testing.T) {
	tests := []struct {
		name            string
		raw             map[string]interface{}
		wantTex         string
		wantExplanation string
		wantNil         bool
	}{
		{
			name: "top level",
			raw: map[string]interface{}{
				"proposedTex": `\documentclass{article}`,
				"explanation": "did a thing",
			},
			wantTex:         `\documentclass{article}`,
			wantExplanation: "did a thing",
		},
		{
			name: "top level without explanation",
			raw: map[string]interface{}{
				"proposedTex": "tex",
			},
			wantTex: "tex",
		},
		{
			name: "nested under output",
			raw: map[string]interface{}{
				"output": map[string]interface{}{
					"proposedTex": "nested tex",
					"explanation": "nested",
				},
			},
			wantTex:         "nested tex",
			wantExplanation: "nested",
		},
		{
			name: "nested under content",
			raw: map[string]interface{}{
				"content": map[string]interface{}{
					"proposedTex": "content tex",
				},
			},
			wantTex: "content tex",
		},
		{
			name: "top level wins over nested",
			raw: map[string]interface{}{
				"proposedTex": "outer",
				"output": map[string]interface{}{
					"proposedTex": "inner",
				},
			},
			wantTex: "outer",
		},
		{
			name: "deep scan finds documentclass string",
			raw: map[string]interface{}{
				"choices": []interface{}{
					map[string]interface{}{
						"text": `\documentclass{article} body`,
					},
				},
				"explanation": "scanned",
			},
			wantTex:         `\documentclass{article} body`,
			wantExplanation: "scanned",
		},
		{
			name: "scan ignores strings without the marker",
			raw: map[string]interface{}{
				"choices": []interface{}{"just prose", "more prose"},
			},
			wantNil: true,
		},
		{
			name: "proposedTex with wrong type falls through",
			raw: map[string]interface{}{
				"proposedTex": 42,
			},
			wantNil: true,
		},
		{
			name:    "empty response",
			raw:     map[string]interface{}{},
			wantNil: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := extractProposal(tt.raw)
			if tt.wantNil {
				if got != nil {
					t.Fatalf("extractProposal() = %+v, want nil", got)
				}
				return
			}
			if got == nil {
				t.Fatal("extractProposal() = nil, want proposal")
			}
			if got.ProposedTex != tt.wantTex {
				t.Errorf("ProposedTex = %q, want %q", got.ProposedTex, tt.wantTex)
			}
			if got.Explanation != tt.wantExplanation {
				t.Errorf("Explanation = %q, want %q", got.Explanation, tt.wantExplanation)
			}
		})
	}
}
