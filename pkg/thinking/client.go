// Package thinking is the client for the remote reasoning service: it turns
// free-text commands the keyword dispatcher cannot handle into a structured
// action plus a spoken response, and generates ambient "thoughts" for the
// dashboard. It is an external collaborator of the locomotion core and only
// consumes its query surface.
package thinking

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"

	"github.com/heyspider/go-spider/internal/httpc"
)

const (
	// DefaultBaseURL is the OpenAI-compatible chat completions endpoint.
	DefaultBaseURL = "https://api.openai.com/v1"

	// DefaultModel is the default chat model.
	DefaultModel = "gpt-3.5-turbo"
)

// Reply is the structured action the reasoning service distills a command
// into.
type Reply struct {
	Action     string         `json:"action"`
	Parameters map[string]any `json:"parameters"`
	Response   string         `json:"response"`
}

// Steps returns the integer "steps" parameter, or def when absent.
func (r Reply) Steps(def int) int {
	v, ok := r.Parameters["steps"]
	if !ok {
		return def
	}
	// JSON numbers decode as float64
	if f, ok := v.(float64); ok && f > 0 {
		return int(f)
	}
	return def
}

// Client talks to an OpenAI-compatible chat completions API.
type Client struct {
	apiKey  string
	model   string
	baseURL string
	http    *http.Client
}

// NewClient creates a reasoning client. The returned client is nil-safe to
// skip: callers treat a nil *Client as "thinking disabled".
func NewClient(apiKey string) (*Client, error) {
	if apiKey == "" {
		return nil, ErrNoAPIKey
	}
	return &Client{
		apiKey:  apiKey,
		model:   DefaultModel,
		baseURL: DefaultBaseURL,
		http:    httpc.Client,
	}, nil
}

// SetBaseURL points the client at a different endpoint (tests, proxies).
func (c *Client) SetBaseURL(url string) { c.baseURL = strings.TrimRight(url, "/") }

// SetModel overrides the model name.
func (c *Client) SetModel(model string) { c.model = model }

const commandPrompt = `You are a spider robot AI. Parse this voice command and return a JSON response:
Command: %q

Available actions: walk_forward, turn_left, turn_right, dance, wave, stop

Return JSON like: {"action": "walk_forward", "parameters": {"steps": 3}, "response": "Moving forward!"}

If unclear, return action "unknown" and ask for clarification. Be friendly and spider-like in responses.`

// ProcessCommand asks the model to map free text onto a behavior verb.
func (c *Client) ProcessCommand(ctx context.Context, command string) (Reply, error) {
	content, err := c.complete(ctx, fmt.Sprintf(commandPrompt, command), 150, 0.7)
	if err != nil {
		return Reply{}, err
	}
	return ParseReply(content)
}

const thoughtPrompt = `You are a friendly spider robot with personality. Based on your current situation,
generate a brief thought or observation (max 50 characters for display).

Current context:
- Distance to nearest object: %.1fcm
- Currently moving: %v

Respond with just the thought, keep it short and personality-filled.`

// Thought generates a short ambient observation for the status display.
func (c *Client) Thought(ctx context.Context, distanceCm float64, moving bool) (string, error) {
	content, err := c.complete(ctx, fmt.Sprintf(thoughtPrompt, distanceCm, moving), 30, 0.8)
	if err != nil {
		return "", err
	}
	if len(content) > 50 {
		content = content[:50]
	}
	return content, nil
}

// ParseReply decodes the model's action JSON, tolerating markdown fences.
func ParseReply(content string) (Reply, error) {
	content = strings.TrimSpace(content)
	content = strings.TrimPrefix(content, "```json")
	content = strings.TrimPrefix(content, "```")
	content = strings.TrimSuffix(content, "```")
	content = strings.TrimSpace(content)

	var reply Reply
	if err := json.Unmarshal([]byte(content), &reply); err != nil {
		return Reply{}, fmt.Errorf("%w: %v", ErrBadReply, err)
	}
	if reply.Action == "" {
		return Reply{}, fmt.Errorf("%w: missing action", ErrBadReply)
	}
	return reply, nil
}

// Wire types for the chat completions API.
type chatRequest struct {
	Model       string        `json:"model"`
	Messages    []chatMessage `json:"messages"`
	MaxTokens   int           `json:"max_tokens"`
	Temperature float64       `json:"temperature"`
}

type chatMessage struct {
	Role    string `json:"role"`
	Content string `json:"content"`
}

type chatResponse struct {
	Choices []struct {
		Message chatMessage `json:"message"`
	} `json:"choices"`
	Error *struct {
		Message string `json:"message"`
	} `json:"error"`
}

func (c *Client) complete(ctx context.Context, prompt string, maxTokens int, temperature float64) (string, error) {
	body, err := json.Marshal(chatRequest{
		Model:       c.model,
		Messages:    []chatMessage{{Role: "user", Content: prompt}},
		MaxTokens:   maxTokens,
		Temperature: temperature,
	})
	if err != nil {
		return "", err
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.baseURL+"/chat/completions", bytes.NewReader(body))
	if err != nil {
		return "", err
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Authorization", "Bearer "+c.apiKey)

	resp, err := c.http.Do(req)
	if err != nil {
		return "", fmt.Errorf("thinking: request failed: %w", err)
	}
	defer resp.Body.Close()

	data, err := io.ReadAll(io.LimitReader(resp.Body, 1<<20))
	if err != nil {
		return "", fmt.Errorf("thinking: read response: %w", err)
	}

	var parsed chatResponse
	if err := json.Unmarshal(data, &parsed); err != nil {
		return "", fmt.Errorf("%w: %v", ErrBadReply, err)
	}
	if parsed.Error != nil {
		return "", fmt.Errorf("thinking: API error: %s", parsed.Error.Message)
	}
	if len(parsed.Choices) == 0 {
		return "", fmt.Errorf("%w: no choices", ErrBadReply)
	}
	return strings.TrimSpace(parsed.Choices[0].Message.Content), nil
}
