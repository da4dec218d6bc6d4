package llm

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/hearthplan/diy-backend/config"
	"github.com/hearthplan/diy-backend/internal/generation/domain"
)

func testConfig(baseURL string) config.OpenAIConfig {
	return config.OpenAIConfig{
		APIKey:      "test-key",
		BaseURL:     baseURL,
		Model:       "gpt-4o",
		Temperature: 0.7,
		Timeout:     5 * time.Second,
	}
}

func completionBody(content string) string {
	body, _ := json.Marshal(map[string]any{
		"choices": []map[string]any{
			{"message": map[string]any{"content": content}},
		},
	})
	return string(body)
}

const candidateJSON = `{
	"name": "Install Floating Shelves",
	"description": "Mount a pair of floating shelves in the living room.",
	"tools_and_materials": ["shelves", "wall anchors", "level"],
	"difficulty": "beginner",
	"estimated_hours": 2,
	"category": "storage",
	"tasks": [
		{"title": "Mark positions", "description": "Mark anchor positions with a level", "order_index": 1},
		{"title": "Mount brackets", "description": "Drill and mount the brackets", "order_index": 2}
	]
}`

func TestClient_Generate(t *testing.T) {
	var gotAuth string
	var gotReq chatRequest

	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/chat/completions", r.URL.Path)
		gotAuth = r.Header.Get("Authorization")
		require.NoError(t, json.NewDecoder(r.Body).Decode(&gotReq))

		w.Header().Set("Content-Type", "application/json")
		w.Write([]byte(completionBody(candidateJSON)))
	}))
	defer server.Close()

	client := NewClient(testConfig(server.URL))
	candidate, err := client.Generate(context.Background(), "shelves for the living room")
	require.NoError(t, err)

	assert.Equal(t, "Bearer test-key", gotAuth)
	assert.Equal(t, "gpt-4o", gotReq.Model)
	assert.InDelta(t, 0.7, gotReq.Temperature, 0.001)
	require.Len(t, gotReq.Messages, 2)
	assert.Equal(t, "system", gotReq.Messages[0].Role)
	assert.Equal(t, "shelves for the living room", gotReq.Messages[1].Content)

	assert.Equal(t, "Install Floating Shelves", candidate.Name)
	assert.Equal(t, "storage", candidate.Category)
	assert.Len(t, candidate.Tasks, 2)
}

func TestClient_Generate_DefaultPrompt(t *testing.T) {
	var gotReq chatRequest
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		json.NewDecoder(r.Body).Decode(&gotReq)
		w.Write([]byte(completionBody(candidateJSON)))
	}))
	defer server.Close()

	_, err := NewClient(testConfig(server.URL)).Generate(context.Background(), "   ")
	require.NoError(t, err)
	assert.Equal(t, "Generate a home improvement project", gotReq.Messages[1].Content)
}

func TestClient_Generate_StripsCodeFences(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(completionBody("```json\n" + candidateJSON + "\n```")))
	}))
	defer server.Close()

	candidate, err := NewClient(testConfig(server.URL)).Generate(context.Background(), "shelves")
	require.NoError(t, err)
	assert.Equal(t, "Install Floating Shelves", candidate.Name)
}

func TestClient_Generate_MissingAPIKey(t *testing.T) {
	called := false
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		called = true
	}))
	defer server.Close()

	cfg := testConfig(server.URL)
	cfg.APIKey = ""

	_, err := NewClient(cfg).Generate(context.Background(), "shelves")
	assert.ErrorIs(t, err, domain.ErrMissingAPIKey)
	assert.False(t, called, "no upstream call should happen without a key")
}

func TestClient_Generate_UpstreamStatus(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusBadGateway)
	}))
	defer server.Close()

	_, err := NewClient(testConfig(server.URL)).Generate(context.Background(), "shelves")

	var uErr *domain.UpstreamError
	require.ErrorAs(t, err, &uErr)
	assert.Contains(t, uErr.Error(), "502")
}

func TestClient_Generate_NonJSONContent(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(completionBody("Sorry, I cannot help with that.")))
	}))
	defer server.Close()

	_, err := NewClient(testConfig(server.URL)).Generate(context.Background(), "shelves")

	var uErr *domain.UpstreamError
	assert.ErrorAs(t, err, &uErr)
}

func TestClient_Generate_NoChoices(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(`{"choices": []}`))
	}))
	defer server.Close()

	_, err := NewClient(testConfig(server.URL)).Generate(context.Background(), "shelves")

	var uErr *domain.UpstreamError
	assert.ErrorAs(t, err, &uErr)
}

func TestClient_Generate_TransportError(t *testing.T) {
	cfg := testConfig("http://127.0.0.1:1")
	cfg.Timeout = time.Second

	_, err := NewClient(cfg).Generate(context.Background(), "shelves")

	var uErr *domain.UpstreamError
	assert.ErrorAs(t, err, &uErr)
}

func TestExtractJSON(t *testing.T) {
	assert.Equal(t, `{"a":1}`, extractJSON("```json\n{\"a\":1}\n```"))
	assert.Equal(t, `{"a":1}`, extractJSON("```\n{\"a\":1}\n```"))
	assert.Equal(t, `{"a":1}`, extractJSON(`{"a":1}`))
	assert.Equal(t, `{"a":1}`, extractJSON("  {\"a\":1}  "))
}

func TestMetrics(t *testing.T) {
	ResetMetrics()

	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(completionBody(candidateJSON)))
	}))
	defer server.Close()

	client := NewClient(testConfig(server.URL))
	_, err := client.Generate(context.Background(), "shelves")
	require.NoError(t, err)

	m := GetMetrics()
	assert.Equal(t, int64(1), m.Calls())
	assert.Equal(t, int64(0), m.Errors())
}
