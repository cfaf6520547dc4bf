package main

import (
	"bytes"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/http/cookiejar"
	"os"
	"time"

	"github.com/fatih/color"
)

const baseURL = "http://localhost:4000/api"

// Shared client with a cookie jar so the uid cookie persists across calls.
var client *http.Client

// Pretty print JSON helper
func prettyPrint(v interface{}) {
	b, err := json.MarshalIndent(v, "", "  ")
	if err != nil {
		fmt.Printf("%v\n", v)
		return
	}
	fmt.Println(string(b))
}

// Request helper
func sendRequest(method, url string, body interface{}) (*http.Response, []byte, error) {
	var bodyReader io.Reader
	if body != nil {
		jsonBody, _ := json.Marshal(body)
		bodyReader = bytes.NewBuffer(jsonBody)
	}

	req, err := http.NewRequest(method, baseURL+url, bodyReader)
	if err != nil {
		return nil, nil, err
	}

	req.Header.Set("Content-Type", "application/json")

	resp, err := client.Do(req)
	if err != nil {
		return nil, nil, err
	}
	defer resp.Body.Close()

	respBody, err := io.ReadAll(resp.Body)
	return resp, respBody, err
}

func step(label, method, url string, body interface{}) map[string]interface{} {
	color.Yellow("\n%s", label)
	resp, respBody, err := sendRequest(method, url, body)
	if err != nil {
		color.Red("Failed: %v", err)
		os.Exit(1)
	}
	color.Green("Status: %s", resp.Status)
	var parsed map[string]interface{}
	json.Unmarshal(respBody, &parsed)
	prettyPrint(parsed)
	return parsed
}

func main() {
	color.Cyan("🚀 Starting Resume Workflow Smoke Test\n")

	jar, _ := cookiejar.New(nil)
	client = &http.Client{Jar: jar, Timeout: 180 * time.Second}

	// 1. Health
	step("1. Health Check", "GET", "/health", nil)

	// 2. Seed from template (also assigns the uid cookie)
	step("2. Seed Session From 'modern' Template", "GET", "/resume/v1/template/modern", nil)

	// 3. Submit an instruction the mock backend understands
	step("3. Submit Instruction (make the name bigger)", "POST", "/chat/v1/send", map[string]interface{}{
		"message": "Please make the name bigger",
	})

	// 4. Inspect current state, a pending proposal should exist
	current := step("4. Current Session State", "GET", "/resume/v1/current", nil)
	if data, ok := current["data"].(map[string]interface{}); ok {
		if pending, ok := data["hasPending"].(bool); ok && !pending {
			color.Red("Expected a pending proposal after step 3")
			os.Exit(1)
		}
	}

	// 5. Accept the pending proposal
	step("5. Accept Pending Proposal", "POST", "/resume/v1/accept", nil)

	// 6. Decline should now fail with 400 (nothing pending)
	color.Yellow("\n6. Decline With Nothing Pending (expect 400)")
	resp, respBody, err := sendRequest("POST", "/resume/v1/decline", nil)
	if err != nil {
		color.Red("Failed: %v", err)
		os.Exit(1)
	}
	if resp.StatusCode != http.StatusBadRequest {
		color.Red("Expected 400, got %s", resp.Status)
		os.Exit(1)
	}
	color.Green("Status: %s (as expected)", resp.Status)
	var declineResp map[string]interface{}
	json.Unmarshal(respBody, &declineResp)
	prettyPrint(declineResp)

	// 7. History should show seed + accept
	step("7. Session History", "GET", "/resume/v1/history", nil)

	// 8. Visitor metrics
	step("8. Unique Visitors", "GET", "/metrics/v1/unique", nil)
	step("9. Active Visitors", "GET", "/metrics/v1/active", nil)

	color.Cyan("\n✅ Smoke test finished")
}
