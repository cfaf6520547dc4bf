package integration

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"ai-resumelab-be/internal/bootstrap"
	"ai-resumelab-be/internal/config"
	"ai-resumelab-be/internal/dto"
	"ai-resumelab-be/internal/pkg/serverutils"
	"ai-resumelab-be/internal/server"

	"github.com/gofiber/fiber/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestApp(t *testing.T) *fiber.App {
	t.Helper()
	tmp := t.TempDir()
	cfg := &config.Config{
		App: config.AppConfig{
			Port:               "0",
			Environment:        "test",
			LogFilePath:        filepath.Join(tmp, "app.log"),
			WsLogFilePath:      filepath.Join(tmp, "ws.log"),
			CorsAllowedOrigins: "http://localhost:5173",
			TemplatesDir:       "../../templates",
		},
		Gro: config.GroConfig{Mock: true},
	}

	container := bootstrap.NewContainer(nil, cfg)
	srv := server.New(cfg, container)
	return srv.GetApp()
}

// uidCookie extracts the identity cookie assigned by the first response.
func uidCookie(t *testing.T, resp *http.Response) *http.Cookie {
	t.Helper()
	for _, c := range resp.Cookies() {
		if c.Name == "uid" {
			return c
		}
	}
	t.Fatal("no uid cookie assigned")
	return nil
}

func TestResumeWorkflowEndToEnd(t *testing.T) {
	app := newTestApp(t)

	// Seed from template; this also assigns the uid.
	req := httptest.NewRequest("GET", "/api/resume/v1/template/modern", nil)
	resp, err := app.Test(req, -1)
	require.NoError(t, err)
	require.Equal(t, 200, resp.StatusCode)
	uid := uidCookie(t, resp)

	var seedRes serverutils.Response[dto.SeedResumeResponse]
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&seedRes))
	assert.Contains(t, seedRes.Data.CurrentTex, `\documentclass`)
	seedTex := seedRes.Data.CurrentTex

	t.Run("Submit instruction stores a pending proposal", func(t *testing.T) {
		body, _ := json.Marshal(dto.SendMessageRequest{Message: "Please make the name bigger"})
		req := httptest.NewRequest("POST", "/api/chat/v1/send", strings.NewReader(string(body)))
		req.Header.Set("Content-Type", "application/json")
		req.AddCookie(uid)

		resp, err := app.Test(req, -1)
		require.NoError(t, err)
		assert.Equal(t, 200, resp.StatusCode)

		var result serverutils.Response[dto.ProposalOutcome]
		require.NoError(t, json.NewDecoder(resp.Body).Decode(&result))
		assert.True(t, result.Data.Valid)
		require.NotNil(t, result.Data.ProposedTex)
		assert.Contains(t, *result.Data.ProposedTex, `\Huge`)
	})

	t.Run("Current reports pending", func(t *testing.T) {
		req := httptest.NewRequest("GET", "/api/resume/v1/current", nil)
		req.AddCookie(uid)

		resp, err := app.Test(req, -1)
		require.NoError(t, err)
		assert.Equal(t, 200, resp.StatusCode)

		var result serverutils.Response[dto.CurrentResumeResponse]
		require.NoError(t, json.NewDecoder(resp.Body).Decode(&result))
		assert.True(t, result.Data.HasPending)
		assert.Equal(t, seedTex, result.Data.CurrentTex)
	})

	t.Run("Accept promotes the proposal", func(t *testing.T) {
		req := httptest.NewRequest("POST", "/api/resume/v1/accept", nil)
		req.AddCookie(uid)

		resp, err := app.Test(req, -1)
		require.NoError(t, err)
		assert.Equal(t, 200, resp.StatusCode)

		var result serverutils.Response[dto.AcceptResumeResponse]
		require.NoError(t, json.NewDecoder(resp.Body).Decode(&result))
		assert.Contains(t, result.Data.CurrentTex, `\Huge`)
	})

	t.Run("Decline with nothing pending is a client error", func(t *testing.T) {
		req := httptest.NewRequest("POST", "/api/resume/v1/decline", nil)
		req.AddCookie(uid)

		resp, err := app.Test(req, -1)
		require.NoError(t, err)
		assert.Equal(t, 400, resp.StatusCode)
	})

	t.Run("History records seed and accept", func(t *testing.T) {
		req := httptest.NewRequest("GET", "/api/resume/v1/history", nil)
		req.AddCookie(uid)

		resp, err := app.Test(req, -1)
		require.NoError(t, err)
		assert.Equal(t, 200, resp.StatusCode)

		var result serverutils.Response[[]dto.HistoryEventResponse]
		require.NoError(t, json.NewDecoder(resp.Body).Decode(&result))
		require.Len(t, result.Data, 2)
		assert.Equal(t, "seed", result.Data[0].Kind)
		assert.Equal(t, "accept", result.Data[1].Kind)
	})
}

func TestChatValidation(t *testing.T) {
	app := newTestApp(t)

	req := httptest.NewRequest("POST", "/api/chat/v1/send", strings.NewReader(`{"message":""}`))
	req.Header.Set("Content-Type", "application/json")

	resp, err := app.Test(req, -1)
	require.NoError(t, err)
	assert.Equal(t, 400, resp.StatusCode)
}

func TestMalformedBodyIs400(t *testing.T) {
	app := newTestApp(t)

	for _, path := range []string{"/api/chat/v1/send", "/api/subscribe/v1"} {
		req := httptest.NewRequest("POST", path, strings.NewReader(`{not json`))
		req.Header.Set("Content-Type", "application/json")

		resp, err := app.Test(req, -1)
		require.NoError(t, err)
		assert.Equal(t, 400, resp.StatusCode, path)
	}
}

func TestUnknownTemplateIs404(t *testing.T) {
	app := newTestApp(t)

	req := httptest.NewRequest("GET", "/api/resume/v1/template/ghost", nil)
	resp, err := app.Test(req, -1)
	require.NoError(t, err)
	assert.Equal(t, 404, resp.StatusCode)
}

func TestMetricsCountUniqueVisitors(t *testing.T) {
	app := newTestApp(t)

	// Two distinct anonymous visitors.
	for i := 0; i < 2; i++ {
		req := httptest.NewRequest("GET", "/api/health", nil)
		_, err := app.Test(req, -1)
		require.NoError(t, err)
	}

	// Visit recording is asynchronous, so poll.
	require.Eventually(t, func() bool {
		req := httptest.NewRequest("GET", "/api/metrics/v1/unique", nil)
		resp, err := app.Test(req, -1)
		if err != nil || resp.StatusCode != 200 {
			return false
		}
		var result serverutils.Response[dto.UniqueVisitorsResponse]
		if err := json.NewDecoder(resp.Body).Decode(&result); err != nil {
			return false
		}
		return result.Data.Unique >= 2
	}, 2*time.Second, 20*time.Millisecond)
}

func TestSubscribe(t *testing.T) {
	app := newTestApp(t)

	body := `{"email":"jane@example.com"}`
	req := httptest.NewRequest("POST", "/api/subscribe/v1", strings.NewReader(body))
	req.Header.Set("Content-Type", "application/json")

	resp, err := app.Test(req, -1)
	require.NoError(t, err)
	assert.Equal(t, 200, resp.StatusCode)

	var result serverutils.Response[dto.SubscribeResponse]
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&result))
	assert.True(t, result.Data.Success)
	assert.Equal(t, "Email saved!", result.Data.Message)

	// Same address again, case-insensitive.
	req = httptest.NewRequest("POST", "/api/subscribe/v1", strings.NewReader(`{"email":"JANE@example.com"}`))
	req.Header.Set("Content-Type", "application/json")
	resp, err = app.Test(req, -1)
	require.NoError(t, err)
	assert.Equal(t, 200, resp.StatusCode)

	require.NoError(t, json.NewDecoder(resp.Body).Decode(&result))
	assert.True(t, result.Data.Success)
	assert.Equal(t, "Already subscribed", result.Data.Message)
}

func TestSubscribeRejectsBadEmail(t *testing.T) {
	app := newTestApp(t)

	req := httptest.NewRequest("POST", "/api/subscribe/v1", strings.NewReader(`{"email":"not-an-email"}`))
	req.Header.Set("Content-Type", "application/json")

	resp, err := app.Test(req, -1)
	require.NoError(t, err)
	assert.Equal(t, 400, resp.StatusCode)
}
