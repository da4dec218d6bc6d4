package llm

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"golang.org/x/time/rate"

	"github.com/hearthplan/diy-backend/config"
	"github.com/hearthplan/diy-backend/internal/generation/domain"
)

const defaultPrompt = "Generate a home improvement project"

const systemPrompt = `You are a home improvement project generator. Generate a detailed project based on the user's prompt.
The response must be a valid JSON object with the following structure:
{
  "name": "Project name (3-7 words)",
  "description": "Detailed project description (100-200 words)",
  "tools_and_materials": ["item1", "item2", "item3"],
  "difficulty": "beginner" | "intermediate" | "advanced",
  "estimated_hours": number (1-48),
  "category": "appliances" | "electrical" | "floors" | "general" | "home-safety" | "kitchen" | "outdoor" | "painting" | "plumbing" | "stairs" | "storage" | "windows-and-doors",
  "tasks": [{"title": string, "description": string, "order_index": number}]
}
tasks must contain between 1 and 12 entries and order_index must run 1..N with no gaps or duplicates.`

// Client calls an OpenAI-compatible chat-completions API and parses the
// reply into a candidate project.
type Client struct {
	baseURL     string
	apiKey      string
	model       string
	temperature float64
	http        *http.Client
	limiter     *rate.Limiter
}

// NewClient builds a client from config. The rate limiter smooths bursts
// toward the upstream API; quota enforcement happens elsewhere.
func NewClient(cfg config.OpenAIConfig) *Client {
	timeout := cfg.Timeout
	if timeout == 0 {
		timeout = 90 * time.Second
	}
	return &Client{
		baseURL:     strings.TrimRight(cfg.BaseURL, "/"),
		apiKey:      cfg.APIKey,
		model:       cfg.Model,
		temperature: cfg.Temperature,
		http:        &http.Client{Timeout: timeout},
		limiter:     rate.NewLimiter(rate.Limit(2), 4),
	}
}

type chatMessage struct {
	Role    string `json:"role"`
	Content string `json:"content"`
}

type chatRequest struct {
	Model       string        `json:"model"`
	Messages    []chatMessage `json:"messages"`
	Temperature float64       `json:"temperature"`
}

type chatResponse struct {
	Choices []struct {
		Message struct {
			Content string `json:"content"`
		} `json:"message"`
	} `json:"choices"`
}

// Generate asks the model for a candidate project. One outbound call, no
// retries; every failure mode surfaces immediately.
func (c *Client) Generate(ctx context.Context, prompt string) (*domain.CandidateProject, error) {
	if c.apiKey == "" {
		return nil, domain.ErrMissingAPIKey
	}

	if strings.TrimSpace(prompt) == "" {
		prompt = defaultPrompt
	}

	if err := c.limiter.Wait(ctx); err != nil {
		return nil, &domain.UpstreamError{Msg: "rate limiter wait", Err: err}
	}

	body, _ := json.Marshal(chatRequest{
		Model: c.model,
		Messages: []chatMessage{
			{Role: "system", Content: systemPrompt},
			{Role: "user", Content: prompt},
		},
		Temperature: c.temperature,
	})

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.baseURL+"/chat/completions", bytes.NewReader(body))
	if err != nil {
		return nil, &domain.UpstreamError{Msg: "create request", Err: err}
	}
	req.Header.Set("Authorization", "Bearer "+c.apiKey)
	req.Header.Set("Content-Type", "application/json")

	start := time.Now()
	resp, err := c.http.Do(req)
	duration := time.Since(start)
	if err != nil {
		recordUpstreamCall(duration, err)
		return nil, &domain.UpstreamError{Msg: "upstream request failed", Err: err}
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		recordUpstreamCall(duration, fmt.Errorf("status %d", resp.StatusCode))
		return nil, &domain.UpstreamError{Msg: fmt.Sprintf("upstream returned status %d", resp.StatusCode)}
	}
	recordUpstreamCall(duration, nil)

	raw, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, &domain.UpstreamError{Msg: "read response", Err: err}
	}

	var completion chatResponse
	if err := json.Unmarshal(raw, &completion); err != nil {
		return nil, &domain.UpstreamError{Msg: "invalid upstream response", Err: err}
	}
	if len(completion.Choices) == 0 {
		return nil, &domain.UpstreamError{Msg: "invalid upstream response: no choices"}
	}

	content := extractJSON(completion.Choices[0].Message.Content)

	var candidate domain.CandidateProject
	if err := json.Unmarshal([]byte(content), &candidate); err != nil {
		return nil, &domain.UpstreamError{Msg: "invalid upstream response: content is not JSON", Err: err}
	}

	return &candidate, nil
}

// extractJSON strips markdown code fences that chat models often wrap
// around JSON payloads.
func extractJSON(s string) string {
	s = strings.TrimSpace(s)
	if strings.HasPrefix(s, "```") {
		s = strings.TrimPrefix(s, "```json")
		s = strings.TrimPrefix(s, "```")
		if i := strings.LastIndex(s, "```"); i >= 0 {
			s = s[:i]
		}
	}
	return strings.TrimSpace(s)
}
