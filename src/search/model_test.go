package search

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/verilens/verilens/src/ai/core"
)

type stubAI struct {
	completion *core.Completion
	err        error
}

func (s *stubAI) Complete(ctx context.Context, system, user string, opts core.Options) (*core.Completion, error) {
	return s.completion, s.err
}

func TestModelUnavailableWithoutClient(t *testing.T) {
	p := NewModel(nil)
	assert.False(t, p.Available())

	_, err := p.Search(context.Background(), "q")
	assert.ErrorIs(t, err, ErrUnavailable)
}

func TestModelPrefersCitations(t *testing.T) {
	p := NewModel(&stubAI{completion: &core.Completion{
		Content: `[{"title":"ignored","url":"https://text.example","snippet":"x"}]`,
		Citations: []core.Citation{
			{Title: "Cited", URL: "https://cited.example", Snippet: "from grounding"},
		},
	}})

	results, err := p.Search(context.Background(), "q")
	require.NoError(t, err)
	require.Len(t, results, 1)
	assert.Equal(t, "https://cited.example", results[0].URL)
}

func TestModelParsesEmbeddedList(t *testing.T) {
	p := NewModel(&stubAI{completion: &core.Completion{
		Content: "Here are results:\n[{\"title\":\"A\",\"url\":\"https://a.example\",\"snippet\":\"s\"},{\"title\":\"B\",\"url\":\"\"}]",
	}})

	results, err := p.Search(context.Background(), "q")
	require.NoError(t, err)
	require.Len(t, results, 1)
	assert.Equal(t, "A", results[0].Title)
}

func TestModelToleratesGarbage(t *testing.T) {
	for _, content := range []string{"", "no list here", "[not json"} {
		p := NewModel(&stubAI{completion: &core.Completion{Content: content}})
		results, err := p.Search(context.Background(), "q")
		require.NoError(t, err, "content %q", content)
		assert.Empty(t, results, "content %q", content)
	}
}
