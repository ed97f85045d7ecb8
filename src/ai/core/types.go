package core

import "context"

// ToolFunction describes a callable function exposed to the model.
type ToolFunction struct {
	Name        string
	Description string
	Parameters  map[string]interface{}
}

// Tool represents a tool capability offered to the model.
type Tool struct {
	Type     string
	Function ToolFunction
}

// ToolCall is a structured invocation the model issued in its reply.
// Arguments is the raw JSON argument payload as sent by the gateway.
type ToolCall struct {
	Name      string
	Arguments string
}

// Citation is a grounding source the provider attached while answering.
type Citation struct {
	Title   string
	URL     string
	Snippet string
}

// Options controls model behavior; fields are optional per provider.
type Options struct {
	Model               string
	Temperature         float64
	MaxCompletionTokens int
	Tools               []Tool
	// ToolChoice is the gateway tool-choice directive ("auto", "none" or a
	// provider-specific object). Ignored when Tools is empty.
	ToolChoice interface{}
}

// Completion is the model's reply. Tool invocations and grounding citations
// are surfaced separately from free-text content so callers never have to
// parse prose to recover structured arguments.
type Completion struct {
	Content   string
	ToolCalls []ToolCall
	Citations []Citation
}

// Client is a provider-agnostic interface for chat-completion gateways.
type Client interface {
	Complete(ctx context.Context, systemPrompt, userPrompt string, opts Options) (*Completion, error)
}
