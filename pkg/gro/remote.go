package gro

import (
	"bytes"
	"context"
	"encoding/json"
	"io"
	"net/http"
	"strings"
	"time"

	"ai-resumelab-be/internal/apperr"
)

const snapshotLimit = 1000

type RemoteClient struct {
	BaseURL string
	APIKey  string
	Model   string
	Client  *http.Client
}

// Ensure RemoteClient implements Client
var _ Client = &RemoteClient{}

func NewRemoteClient(baseURL, apiKey, model string) *RemoteClient {
	return &RemoteClient{
		BaseURL: baseURL,
		APIKey:  apiKey,
		Model:   model,
		Client: &http.Client{
			Timeout: 120 * time.Second,
		},
	}
}

// --- Request structs (Internal to this package) ---

type groMessage struct {
	Role    string `json:"role"`
	Content string `json:"content"`
}

type groGenerateRequest struct {
	Model          string                 `json:"model"`
	Messages       []groMessage           `json:"messages"`
	ResponseSchema map[string]interface{} `json:"response_schema"`
}

func (c *RemoteClient) ProposeUpdate(ctx context.Context, message, currentTex string) (*Proposal, error) {
	reqPayload := groGenerateRequest{
		Model: c.Model,
		Messages: []groMessage{
			{Role: "system", Content: systemPrompt},
			{Role: "user", Content: buildUserPrompt(message, currentTex)},
		},
		ResponseSchema: map[string]interface{}{
			"type": "object",
			"properties": map[string]interface{}{
				"proposedTex": map[string]interface{}{"type": "string"},
				"explanation": map[string]interface{}{"type": "string"},
			},
			"required": []string{"proposedTex"},
		},
	}

	payloadBytes, err := json.Marshal(reqPayload)
	if err != nil {
		return nil, &apperr.GenerationServiceError{Message: "marshal request: " + err.Error()}
	}

	url := strings.TrimRight(c.BaseURL, "/") + "/v1/generate-json"
	req, err := http.NewRequestWithContext(ctx, "POST", url, bytes.NewBuffer(payloadBytes))
	if err != nil {
		return nil, &apperr.GenerationServiceError{Message: "create request: " + err.Error()}
	}
	req.Header.Set("Authorization", "Bearer "+c.APIKey)
	req.Header.Set("Content-Type", "application/json")

	resp, err := c.Client.Do(req)
	if err != nil {
		return nil, &apperr.GenerationServiceError{Message: "gro request failed: " + err.Error()}
	}
	defer resp.Body.Close()

	bodyBytes, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, &apperr.GenerationServiceError{StatusCode: resp.StatusCode, Message: "read response: " + err.Error()}
	}

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return nil, &apperr.GenerationServiceError{
			StatusCode: resp.StatusCode,
			Message:    resp.Status,
			Body:       truncate(string(bodyBytes), snapshotLimit),
		}
	}

	var raw map[string]interface{}
	if err := json.Unmarshal(bodyBytes, &raw); err != nil {
		return nil, &apperr.GenerationServiceError{
			StatusCode: resp.StatusCode,
			Message:    "gro api returned invalid JSON",
			Body:       truncate(string(bodyBytes), snapshotLimit),
		}
	}

	proposal := extractProposal(raw)
	if proposal == nil {
		return nil, &apperr.GenerationServiceError{
			StatusCode: resp.StatusCode,
			Message:    "gro api response missing proposedTex",
			Body:       truncate(string(bodyBytes), snapshotLimit),
		}
	}

	return proposal, nil
}

func truncate(s string, limit int) string {
	if len(s) <= limit {
		return s
	}
	return s[:limit]
}
