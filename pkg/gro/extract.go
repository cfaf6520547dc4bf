package gro

import "strings"

// extractStrategy attempts to locate a proposal in a decoded Gro response.
// Returns nil when the shape does not match, letting the next strategy run.
// Providers wrap the generated object in different envelopes, so a fixed
// ordered chain is tried instead of nested conditionals.
type extractStrategy func(raw map[string]interface{}) *Proposal

var extractStrategies = []extractStrategy{
	extractTopLevel,
	extractNested("output"),
	extractNested("content"),
	extractByScan,
}

func extractProposal(raw map[string]interface{}) *Proposal {
	for _, strategy := range extractStrategies {
		if p := strategy(raw); p != nil {
			return p
		}
	}
	return nil
}

func extractTopLevel(raw map[string]interface{}) *Proposal {
	tex, ok := raw["proposedTex"].(string)
	if !ok {
		return nil
	}
	explanation, _ := raw["explanation"].(string)
	return &Proposal{ProposedTex: tex, Explanation: explanation}
}

func extractNested(key string) extractStrategy {
	return func(raw map[string]interface{}) *Proposal {
		inner, ok := raw[key].(map[string]interface{})
		if !ok {
			return nil
		}
		return extractTopLevel(inner)
	}
}

// extractByScan walks the whole response and takes the first string value
// that contains a \documentclass marker. Last resort for unknown envelopes.
func extractByScan(raw map[string]interface{}) *Proposal {
	found := scanForTex(raw)
	if found == "" {
		return nil
	}
	explanation, _ := raw["explanation"].(string)
	return &Proposal{ProposedTex: found, Explanation: explanation}
}

func scanForTex(v interface{}) string {
	switch val := v.(type) {
	case string:
		if strings.Contains(val, `\documentclass`) {
			return val
		}
	case map[string]interface{}:
		for _, child := range val {
			if found := scanForTex(child); found != "" {
				return found
			}
		}
	case []interface{}:
		for _, child := range val {
			if found := scanForTex(child); found != "" {
				return found
			}
		}
	}
	return ""
}
