package search

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/verilens/verilens/src/webclient"
)

const serpMaxResults = 5

// SerpAPI queries the SerpAPI Google-results endpoint.
type SerpAPI struct {
	apiKey     string
	baseURL    string
	httpClient *http.Client
}

// NewSerpAPI constructs the keyed search provider. An empty key yields a
// provider that reports itself unavailable rather than failing requests.
func NewSerpAPI(apiKey string) *SerpAPI {
	return &SerpAPI{
		apiKey:     apiKey,
		baseURL:    "https://serpapi.com/search.json",
		httpClient: webclient.NewDefault(10 * time.Second),
	}
}

// NewSerpAPIWithBaseURL overrides the endpoint, for tests.
func NewSerpAPIWithBaseURL(apiKey, baseURL string) *SerpAPI {
	p := NewSerpAPI(apiKey)
	p.baseURL = baseURL
	return p
}

func (s *SerpAPI) Mode() Mode { return ModeLiveWeb }

func (s *SerpAPI) Available() bool {
	return strings.TrimSpace(s.apiKey) != ""
}

// Search returns up to five top organic results, preserving rank order.
func (s *SerpAPI) Search(ctx context.Context, query string) ([]Result, error) {
	if !s.Available() {
		return nil, ErrUnavailable
	}

	params := url.Values{}
	params.Set("q", query)
	params.Set("api_key", s.apiKey)
	params.Set("num", fmt.Sprintf("%d", serpMaxResults))

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, s.baseURL+"?"+params.Encode(), nil)
	if err != nil {
		return nil, fmt.Errorf("serpapi: create request: %w", err)
	}

	resp, err := s.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("serpapi: request failed: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("serpapi: status %d", resp.StatusCode)
	}

	var response struct {
		OrganicResults []struct {
			Title   string `json:"title"`
			Link    string `json:"link"`
			Snippet string `json:"snippet"`
		} `json:"organic_results"`
	}
	if err := json.NewDecoder(resp.Body).Decode(&response); err != nil {
		return nil, fmt.Errorf("serpapi: decode response: %w", err)
	}

	results := make([]Result, 0, len(response.OrganicResults))
	for _, r := range response.OrganicResults {
		if r.Link == "" {
			continue
		}
		results = append(results, Result{Title: r.Title, URL: r.Link, Snippet: r.Snippet})
		if len(results) >= serpMaxResults {
			break
		}
	}
	return results, nil
}
