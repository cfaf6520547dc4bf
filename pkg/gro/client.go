package gro

import (
	"context"
	"fmt"
)

// Proposal is one candidate resume revision produced from a user instruction.
type Proposal struct {
	ProposedTex string
	Explanation string
}

// Client produces a proposed LaTeX revision from an instruction and the
// current document. Implemented by RemoteClient (Gro HTTP API) and MockClient.
type Client interface {
	ProposeUpdate(ctx context.Context, message, currentTex string) (*Proposal, error)
}

const systemPrompt = `You are an AI resume editor. Modify the provided LaTeX (.tex) resume based on user instructions. Output only valid LaTeX with no commentary.`

func buildUserPrompt(message, currentTex string) string {
	return fmt.Sprintf("User request:\n%s\n\nCurrent resume (.tex):\n%s", message, currentTex)
}

// New selects the implementation from configuration: the deterministic mock
// when mock mode is forced or no API key is present, the remote client
// otherwise. Both satisfy the same contract so the workflow is identical.
func New(baseURL, apiKey, model string, mock bool) Client {
	if mock || apiKey == "" {
		return NewMockClient()
	}
	return NewRemoteClient(baseURL, apiKey, model)
}
