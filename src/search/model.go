package search

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"

	"github.com/verilens/verilens/src/ai/core"
)

const modelMaxResults = 5

// Model is the degraded fallback provider: it asks the language model itself
// to enumerate search results. Provider-attached citations are preferred;
// otherwise a JSON list embedded in the reply is salvaged best-effort.
type Model struct {
	client core.Client
}

// NewModel wraps an AI client as a search provider. A nil client yields an
// unavailable provider.
func NewModel(client core.Client) *Model {
	return &Model{client: client}
}

func (m *Model) Mode() Mode { return ModeGrounded }

func (m *Model) Available() bool {
	return m.client != nil
}

const modelSearchSystem = `You are a web search engine. For the given query, list the most relevant real web pages you know of. Respond with a JSON array only, no prose:
[{"title": "...", "url": "https://...", "snippet": "..."}]
List at most 5 entries. Only include pages you are confident exist. If you know of none, respond with [].`

func (m *Model) Search(ctx context.Context, query string) ([]Result, error) {
	if !m.Available() {
		return nil, ErrUnavailable
	}

	completion, err := m.client.Complete(ctx, modelSearchSystem, fmt.Sprintf("Query: %s", query), core.Options{})
	if err != nil {
		return nil, fmt.Errorf("model search: %w", err)
	}

	// Citations carry higher trust than the model's own enumeration.
	if len(completion.Citations) > 0 {
		results := make([]Result, 0, len(completion.Citations))
		for _, c := range completion.Citations {
			results = append(results, Result{Title: c.Title, URL: c.URL, Snippet: c.Snippet})
			if len(results) >= modelMaxResults {
				break
			}
		}
		return results, nil
	}

	return parseResultList(completion.Content), nil
}

// parseResultList salvages a JSON array of results from free text. Absence
// or malformed output yields an empty slice, never an error.
func parseResultList(content string) []Result {
	start := strings.Index(content, "[")
	end := strings.LastIndex(content, "]")
	if start < 0 || end <= start {
		return nil
	}

	var raw []struct {
		Title   string `json:"title"`
		URL     string `json:"url"`
		Snippet string `json:"snippet"`
	}
	if err := json.Unmarshal([]byte(content[start:end+1]), &raw); err != nil {
		return nil
	}

	var results []Result
	for _, r := range raw {
		if strings.TrimSpace(r.URL) == "" {
			continue
		}
		results = append(results, Result{Title: r.Title, URL: r.URL, Snippet: r.Snippet})
		if len(results) >= modelMaxResults {
			break
		}
	}
	return results
}
