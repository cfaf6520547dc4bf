package apperr

import "fmt"

// Tagged error variants for the resume workflow. The HTTP error middleware
// and the websocket handler both switch on these concrete types, so control
// flow never depends on string matching.

// NoPendingError is returned when accept/decline is called with no pending
// proposal for the identity.
type NoPendingError struct {
	Op string // "accept" or "decline"
}

func (e *NoPendingError) Error() string {
	return fmt.Sprintf("no pending proposal to %s", e.Op)
}

// ValidationFailedError carries the ordered list of structural errors that
// blocked an accept.
type ValidationFailedError struct {
	Errors []string
}

func (e *ValidationFailedError) Error() string {
	return "pending LaTeX failed validation"
}

// GenerationServiceError wraps an upstream failure of the Gro generation
// service: transport error, non-2xx status or an unparsable response body.
type GenerationServiceError struct {
	StatusCode int    // 0 when the request never reached the service
	Message    string
	Body       string // truncated upstream body / response snapshot
}

func (e *GenerationServiceError) Error() string {
	if e.StatusCode != 0 {
		return fmt.Sprintf("gro api returned %d: %s", e.StatusCode, e.Message)
	}
	return fmt.Sprintf("gro api error: %s", e.Message)
}

// InvalidInputError rejects a request before any state is touched.
type InvalidInputError struct {
	Field  string
	Reason string
}

func (e *InvalidInputError) Error() string {
	return fmt.Sprintf("invalid %s: %s", e.Field, e.Reason)
}
