package openrouter

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"github.com/verilens/verilens/src/ai/core"
	"github.com/verilens/verilens/src/webclient"
)

const (
	defaultBaseURL   = "https://openrouter.ai/api/v1"
	defaultModelName = "google/gemini-2.0-flash-001"
	defaultMaxTokens = 2048
)

func init() {
	core.RegisterProvider("openrouter", newClient)
}

type client struct {
	apiKey     string
	baseURL    string
	httpClient *http.Client
	defaults   core.Options
}

func newClient(cfg core.FactoryConfig) (core.Client, error) {
	if strings.TrimSpace(cfg.OpenRouterKey) == "" {
		return nil, core.NewError(core.ErrConfigMissing, "openrouter: API key not configured")
	}

	model := cfg.Model
	if strings.TrimSpace(model) == "" {
		model = defaultModelName
	}

	baseURL := defaultBaseURL
	if cfg.Extra != nil && cfg.Extra["base_url"] != "" {
		baseURL = cfg.Extra["base_url"]
	}

	return &client{
		apiKey:     cfg.OpenRouterKey,
		baseURL:    strings.TrimRight(baseURL, "/"),
		httpClient: webclient.NewDefault(120 * time.Second),
		defaults: core.Options{
			Model:               model,
			Temperature:         orFloat(cfg.Temperature, 0.2),
			MaxCompletionTokens: orInt(cfg.MaxCompletionTokens, defaultMaxTokens),
		},
	}, nil
}

type chatRequest struct {
	Model       string        `json:"model"`
	Messages    []chatMessage `json:"messages"`
	Tools       []chatTool    `json:"tools,omitempty"`
	ToolChoice  interface{}   `json:"tool_choice,omitempty"`
	Temperature float64       `json:"temperature,omitempty"`
	MaxTokens   int           `json:"max_tokens,omitempty"`
}

type chatMessage struct {
	Role    string `json:"role"`
	Content string `json:"content"`
}

type chatTool struct {
	Type     string           `json:"type"`
	Function chatToolFunction `json:"function"`
}

type chatToolFunction struct {
	Name        string                 `json:"name"`
	Description string                 `json:"description,omitempty"`
	Parameters  map[string]interface{} `json:"parameters,omitempty"`
}

type chatResponse struct {
	Choices []struct {
		Message struct {
			Content   string `json:"content"`
			ToolCalls []struct {
				Function struct {
					Name string `json:"name"`
					// Gateways disagree on whether arguments arrive as a
					// JSON string or an inline object; accept both.
					Arguments json.RawMessage `json:"arguments"`
				} `json:"function"`
			} `json:"tool_calls"`
			Annotations []struct {
				Type        string `json:"type"`
				URLCitation struct {
					Title   string `json:"title"`
					URL     string `json:"url"`
					Content string `json:"content"`
				} `json:"url_citation"`
			} `json:"annotations"`
		} `json:"message"`
	} `json:"choices"`
}

func (c *client) Complete(ctx context.Context, systemPrompt, userPrompt string, opts core.Options) (*core.Completion, error) {
	merged := c.merge(opts)

	var messages []chatMessage
	if strings.TrimSpace(systemPrompt) != "" {
		messages = append(messages, chatMessage{Role: "system", Content: systemPrompt})
	}
	messages = append(messages, chatMessage{Role: "user", Content: userPrompt})

	request := chatRequest{
		Model:       merged.Model,
		Messages:    messages,
		Temperature: merged.Temperature,
		MaxTokens:   merged.MaxCompletionTokens,
	}
	for _, t := range merged.Tools {
		request.Tools = append(request.Tools, chatTool{
			Type: orString(t.Type, "function"),
			Function: chatToolFunction{
				Name:        t.Function.Name,
				Description: t.Function.Description,
				Parameters:  t.Function.Parameters,
			},
		})
	}
	if len(request.Tools) > 0 {
		request.ToolChoice = merged.ToolChoice
	}

	jsonBody, err := json.Marshal(request)
	if err != nil {
		return nil, fmt.Errorf("openrouter: marshal request: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.baseURL+"/chat/completions", bytes.NewBuffer(jsonBody))
	if err != nil {
		return nil, fmt.Errorf("openrouter: create request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Authorization", "Bearer "+c.apiKey)

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, core.NewError(core.ErrUpstreamFailure, fmt.Sprintf("model gateway request failed: %v", err))
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, core.NewError(core.ErrUpstreamFailure, fmt.Sprintf("model gateway read failed: %v", err))
	}

	if resp.StatusCode != http.StatusOK {
		return nil, core.NewError(core.ClassifyStatus(resp.StatusCode), errorMessage(resp.StatusCode, body))
	}

	var result chatResponse
	if err := json.Unmarshal(body, &result); err != nil {
		return nil, core.NewError(core.ErrMalformedResponse, "model gateway returned an unreadable response")
	}
	if len(result.Choices) == 0 {
		return nil, core.NewError(core.ErrMalformedResponse, "model gateway returned no choices")
	}

	msg := result.Choices[0].Message
	completion := &core.Completion{Content: msg.Content}

	for _, tc := range msg.ToolCalls {
		completion.ToolCalls = append(completion.ToolCalls, core.ToolCall{
			Name:      tc.Function.Name,
			Arguments: normalizeArguments(tc.Function.Arguments),
		})
	}

	for _, ann := range msg.Annotations {
		if ann.Type != "url_citation" || ann.URLCitation.URL == "" {
			continue
		}
		completion.Citations = append(completion.Citations, core.Citation{
			Title:   ann.URLCitation.Title,
			URL:     ann.URLCitation.URL,
			Snippet: ann.URLCitation.Content,
		})
	}

	if completion.Content == "" && len(completion.ToolCalls) == 0 {
		return nil, core.NewError(core.ErrMalformedResponse, "model gateway returned an empty message")
	}

	return completion, nil
}

func (c *client) merge(opts core.Options) core.Options {
	out := c.defaults
	if strings.TrimSpace(opts.Model) != "" {
		out.Model = opts.Model
	}
	if opts.Temperature != 0 {
		out.Temperature = opts.Temperature
	}
	if opts.MaxCompletionTokens != 0 {
		out.MaxCompletionTokens = opts.MaxCompletionTokens
	}
	out.Tools = opts.Tools
	out.ToolChoice = opts.ToolChoice
	return out
}

// normalizeArguments unwraps string-encoded argument payloads so callers
// always see a plain JSON object.
func normalizeArguments(raw json.RawMessage) string {
	if len(raw) == 0 {
		return ""
	}
	var asString string
	if err := json.Unmarshal(raw, &asString); err == nil {
		return asString
	}
	return string(raw)
}

func errorMessage(status int, body []byte) string {
	var errorResp struct {
		Error struct {
			Message string `json:"message"`
		} `json:"error"`
	}
	if err := json.Unmarshal(body, &errorResp); err == nil && errorResp.Error.Message != "" {
		return fmt.Sprintf("model gateway error: %s", errorResp.Error.Message)
	}

	switch status {
	case 429:
		return "model gateway rate limit exceeded, retry shortly"
	case 402:
		return "model gateway quota exhausted"
	default:
		return fmt.Sprintf("model gateway error: status %d", status)
	}
}

func orInt(v, def int) int {
	if v > 0 {
		return v
	}
	return def
}

func orFloat(v, def float64) float64 {
	if v != 0 {
		return v
	}
	return def
}

func orString(v, def string) string {
	if strings.TrimSpace(v) != "" {
		return v
	}
	return def
}
