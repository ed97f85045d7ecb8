package factcheck

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/verilens/verilens/src/ai/core"
	"github.com/verilens/verilens/src/search"
)

// stubClient scripts Complete responses per call.
type stubClient struct {
	fn    func(call int, system, user string, opts core.Options) (*core.Completion, error)
	calls int
}

func (s *stubClient) Complete(ctx context.Context, system, user string, opts core.Options) (*core.Completion, error) {
	s.calls++
	return s.fn(s.calls, system, user, opts)
}

// stubProvider serves canned results keyed by query.
type stubProvider struct {
	mode      search.Mode
	available bool
	results   map[string][]search.Result
	err       error
}

func (p *stubProvider) Mode() search.Mode { return p.mode }
func (p *stubProvider) Available() bool   { return p.available }
func (p *stubProvider) Search(ctx context.Context, query string) ([]search.Result, error) {
	if p.err != nil {
		return nil, p.err
	}
	return p.results[query], nil
}

func textCompletion(content string) *core.Completion {
	return &core.Completion{Content: content}
}

func queryToolCompletion(queries ...string) *core.Completion {
	args, _ := json.Marshal(map[string][]string{"queries": queries})
	return &core.Completion{ToolCalls: []core.ToolCall{{Name: queryToolName, Arguments: string(args)}}}
}

func TestCheckStaticPath(t *testing.T) {
	client := &stubClient{fn: func(call int, system, user string, opts core.Options) (*core.Completion, error) {
		switch call {
		case 1:
			return textCompletion(sentinelStatic), nil
		default:
			return textCompletion(`{"verdict":"real","confidence":95,"explanation":"basic physics","redFlags":[]}`), nil
		}
	}}

	checker := NewChecker(client, nil)
	verdict, err := checker.Check(context.Background(), "Water boils at 100C at sea level")
	require.NoError(t, err)

	assert.Equal(t, VerdictReal, verdict.Verdict)
	assert.Equal(t, 95, verdict.Confidence)
	assert.Equal(t, SourceStatic, verdict.SourceMode)
	assert.Empty(t, verdict.Sources)
	// Decision + verdict only; no query planning call on the static path.
	assert.Equal(t, 2, client.calls)
}

func TestCheckLivePathGathersEvidence(t *testing.T) {
	provider := &stubProvider{
		mode:      search.ModeLiveWeb,
		available: true,
		results: map[string][]search.Result{
			"query one": {{Title: "A", URL: "https://a.example", Snippet: "first"}},
			"query two": {{Title: "B", URL: "https://b.example", Snippet: "second"}},
		},
	}

	var verdictPrompt string
	client := &stubClient{fn: func(call int, system, user string, opts core.Options) (*core.Completion, error) {
		switch call {
		case 1:
			return textCompletion(sentinelSearch), nil
		case 2:
			return queryToolCompletion("query one", "query two"), nil
		default:
			verdictPrompt = user
			return textCompletion(`{"verdict":"fake","confidence":80,"explanation":"contradicted","redFlags":["no source"]}`), nil
		}
	}}

	checker := NewChecker(client, []search.Provider{provider})
	verdict, err := checker.Check(context.Background(), "Some recent claim")
	require.NoError(t, err)

	assert.Equal(t, VerdictFake, verdict.Verdict)
	assert.Equal(t, SourceLiveWeb, verdict.SourceMode)
	require.Len(t, verdict.Sources, 2)
	assert.Equal(t, "https://a.example", verdict.Sources[0].URL)
	assert.Contains(t, verdictPrompt, "https://a.example")
	assert.Contains(t, verdictPrompt, "Ground your verdict in the evidence")
}

func TestCheckDecisionErrorFailsFast(t *testing.T) {
	client := &stubClient{fn: func(call int, system, user string, opts core.Options) (*core.Completion, error) {
		return nil, core.NewError(core.ErrRateLimited, "model gateway rate limit exceeded, retry shortly")
	}}

	checker := NewChecker(client, nil)
	_, err := checker.Check(context.Background(), "anything")
	require.Error(t, err)
	assert.Equal(t, core.ErrRateLimited, core.KindOf(err))
	// No further stage ran after the classification failure.
	assert.Equal(t, 1, client.calls)
}

func TestCheckMalformedDecisionDefaultsStatic(t *testing.T) {
	client := &stubClient{fn: func(call int, system, user string, opts core.Options) (*core.Completion, error) {
		switch call {
		case 1:
			return textCompletion("I think maybe yes?"), nil
		default:
			return textCompletion(`{"verdict":"uncertain","confidence":50,"explanation":"x","redFlags":[]}`), nil
		}
	}}

	checker := NewChecker(client, nil)
	verdict, err := checker.Check(context.Background(), "ambiguous claim")
	require.NoError(t, err)
	assert.Equal(t, SourceStatic, verdict.SourceMode)
	assert.Equal(t, 2, client.calls)
}

func TestCheckNoProvidersDegradesToStatic(t *testing.T) {
	client := &stubClient{fn: func(call int, system, user string, opts core.Options) (*core.Completion, error) {
		switch call {
		case 1:
			return textCompletion(sentinelSearch), nil
		case 2:
			return queryToolCompletion("some query"), nil
		default:
			if strings.Contains(user, "No web evidence is available") {
				return textCompletion(`{"verdict":"uncertain","confidence":40,"explanation":"cannot verify","redFlags":[]}`), nil
			}
			return nil, fmt.Errorf("unexpected prompt: %s", user)
		}
	}}

	unavailable := &stubProvider{mode: search.ModeLiveWeb, available: false}
	checker := NewChecker(client, []search.Provider{unavailable})

	verdict, err := checker.Check(context.Background(), "Live claim with no search configured")
	require.NoError(t, err)
	assert.Equal(t, SourceStatic, verdict.SourceMode)
	assert.Empty(t, verdict.Sources)
}

func TestCheckVerdictParseFailureDegrades(t *testing.T) {
	client := &stubClient{fn: func(call int, system, user string, opts core.Options) (*core.Completion, error) {
		switch call {
		case 1:
			return textCompletion(sentinelStatic), nil
		default:
			return textCompletion("I refuse to answer in JSON."), nil
		}
	}}

	checker := NewChecker(client, nil)
	verdict, err := checker.Check(context.Background(), "some claim")
	require.NoError(t, err)
	assert.Equal(t, VerdictUncertain, verdict.Verdict)
	assert.Equal(t, 50, verdict.Confidence)
	assert.Equal(t, "unable to analyze", verdict.Explanation)
}

func TestCheckDatePinnedInVerdictPrompt(t *testing.T) {
	var verdictSystem string
	client := &stubClient{fn: func(call int, system, user string, opts core.Options) (*core.Completion, error) {
		switch call {
		case 1:
			return textCompletion(sentinelStatic), nil
		default:
			verdictSystem = system
			return textCompletion(`{"verdict":"real","confidence":70,"explanation":"ok","redFlags":[]}`), nil
		}
	}}

	fixed := time.Date(2026, time.August, 30, 12, 0, 0, 0, time.UTC)
	checker := NewChecker(client, nil).WithClock(func() time.Time { return fixed })

	_, err := checker.Check(context.Background(), "claim")
	require.NoError(t, err)
	assert.Contains(t, verdictSystem, "August 30, 2026")
}
