package factcheck

import (
	"context"
	"encoding/json"
	"fmt"
	"log"
	"strings"
	"sync"

	"github.com/verilens/verilens/src/ai/core"
	"github.com/verilens/verilens/src/search"
)

const (
	maxQueries         = 3
	maxEvidenceRecords = 8
	maxClaimQueryLen   = 200
)

const queryToolName = "propose_search_queries"

const queryPlannerSystem = `You plan web searches for fact-checking. Break the claim into its distinct verifiable sub-claims and propose one focused search query per sub-claim. Call the ` + queryToolName + ` tool with your queries.`

// gatherEvidence derives search queries, fans them out to the evidence
// providers and merges the results into a prompt-ready block. Evidence
// failures never fail the request; the worst case is a static degrade.
func (c *Checker) gatherEvidence(ctx context.Context, claim string, needsLive bool) Evidence {
	if !needsLive {
		return Evidence{Mode: SourceStatic}
	}

	queries := c.proposeQueries(ctx, claim)
	if len(queries) == 0 {
		queries = []string{truncate(claim, maxClaimQueryLen)}
	}
	if len(queries) > maxQueries {
		queries = queries[:maxQueries]
	}

	results, mode := c.runQueries(ctx, queries)
	if len(results) == 0 {
		return Evidence{Mode: mode}
	}

	merged := dedupeByURL(results, maxEvidenceRecords)
	sources := make([]Source, 0, len(merged))
	for _, r := range merged {
		sources = append(sources, Source{Title: r.Title, URL: r.URL})
	}

	return Evidence{
		Mode:    mode,
		Text:    renderEvidence(merged),
		Sources: sources,
	}
}

// proposeQueries asks the model for per-sub-claim queries through the tool
// contract. Any failure here falls back to searching the raw claim.
func (c *Checker) proposeQueries(ctx context.Context, claim string) []string {
	opts := c.opts()
	opts.Tools = []core.Tool{{
		Type: "function",
		Function: core.ToolFunction{
			Name:        queryToolName,
			Description: "Propose web search queries, one per verifiable sub-claim",
			Parameters: map[string]interface{}{
				"type": "object",
				"properties": map[string]interface{}{
					"queries": map[string]interface{}{
						"type":  "array",
						"items": map[string]interface{}{"type": "string"},
					},
				},
				"required": []string{"queries"},
			},
		},
	}}
	opts.ToolChoice = "auto"

	completion, err := c.client.Complete(ctx, queryPlannerSystem, "Claim: "+claim, opts)
	if err != nil {
		log.Printf("factcheck: query planning failed, using raw claim: %v", err)
		return nil
	}

	var queries []string
	for _, call := range completion.ToolCalls {
		if call.Name != queryToolName {
			continue
		}
		var args struct {
			Queries []string `json:"queries"`
		}
		if err := json.Unmarshal([]byte(call.Arguments), &args); err != nil {
			continue
		}
		for _, q := range args.Queries {
			if strings.TrimSpace(q) != "" {
				queries = append(queries, strings.TrimSpace(q))
			}
		}
	}
	return queries
}

// runQueries executes the queries concurrently against the first provider
// that can serve each one. Results are merged by query submission order, not
// completion order, so the dedup-and-cap outcome stays deterministic.
func (c *Checker) runQueries(ctx context.Context, queries []string) ([]search.Result, SourceMode) {
	type outcome struct {
		results []search.Result
		mode    SourceMode
	}

	var wg sync.WaitGroup
	outcomes := make([]outcome, len(queries))
	semaphore := make(chan struct{}, maxQueries)

	for i, query := range queries {
		wg.Add(1)
		go func(index int, q string) {
			defer wg.Done()
			semaphore <- struct{}{}
			defer func() { <-semaphore }()

			results, mode, err := c.searchWithFallback(ctx, q)
			if err != nil {
				log.Printf("factcheck: search %q failed: %v", q, err)
				return
			}
			outcomes[index] = outcome{results: results, mode: mode}
		}(i, query)
	}
	wg.Wait()

	var merged []search.Result
	mode := SourceStatic
	for _, o := range outcomes {
		if len(o.results) == 0 {
			continue
		}
		if mode == SourceStatic {
			mode = o.mode
		}
		merged = append(merged, o.results...)
	}
	return merged, mode
}

// searchWithFallback walks the provider chain in order: the keyed API first,
// then the model-simulated path when the primary is unconfigured or failing.
func (c *Checker) searchWithFallback(ctx context.Context, query string) ([]search.Result, SourceMode, error) {
	attempted := false
	var lastErr error
	for _, p := range c.providers {
		if !p.Available() {
			continue
		}
		attempted = true
		results, err := p.Search(ctx, query)
		if err != nil {
			lastErr = err
			continue
		}
		return results, SourceMode(p.Mode()), nil
	}
	if !attempted {
		return nil, SourceStatic, search.ErrUnavailable
	}
	return nil, SourceStatic, fmt.Errorf("all providers failed: %w", lastErr)
}

func dedupeByURL(results []search.Result, limit int) []search.Result {
	seen := make(map[string]bool)
	var out []search.Result
	for _, r := range results {
		if r.URL == "" || seen[r.URL] {
			continue
		}
		seen[r.URL] = true
		out = append(out, r)
		if len(out) >= limit {
			break
		}
	}
	return out
}

func renderEvidence(results []search.Result) string {
	var b strings.Builder
	for i, r := range results {
		fmt.Fprintf(&b, "%d. %s - %s (%s)\n", i+1, r.Title, r.Snippet, r.URL)
	}
	return strings.TrimRight(b.String(), "\n")
}

func truncate(s string, max int) string {
	s = strings.TrimSpace(s)
	if len(s) <= max {
		return s
	}
	return s[:max]
}
