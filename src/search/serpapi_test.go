package search

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSerpAPIUnavailableWithoutKey(t *testing.T) {
	p := NewSerpAPI("")
	assert.False(t, p.Available())

	_, err := p.Search(context.Background(), "anything")
	assert.ErrorIs(t, err, ErrUnavailable)
}

func TestSerpAPIParsesOrganicResults(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "test query", r.URL.Query().Get("q"))
		assert.Equal(t, "key123", r.URL.Query().Get("api_key"))

		_ = json.NewEncoder(w).Encode(map[string]interface{}{
			"organic_results": []map[string]string{
				{"title": "First", "link": "https://one.example", "snippet": "s1"},
				{"title": "Second", "link": "https://two.example", "snippet": "s2"},
				{"title": "No link"},
			},
		})
	}))
	defer srv.Close()

	p := NewSerpAPIWithBaseURL("key123", srv.URL)
	results, err := p.Search(context.Background(), "test query")
	require.NoError(t, err)

	require.Len(t, results, 2)
	assert.Equal(t, Result{Title: "First", URL: "https://one.example", Snippet: "s1"}, results[0])
}

func TestSerpAPICapsAtFive(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		var organic []map[string]string
		for i := 0; i < 10; i++ {
			organic = append(organic, map[string]string{
				"title": "t", "link": "https://example.com/" + r.URL.Query().Get("q") + string(rune('a'+i)), "snippet": "s",
			})
		}
		_ = json.NewEncoder(w).Encode(map[string]interface{}{"organic_results": organic})
	}))
	defer srv.Close()

	p := NewSerpAPIWithBaseURL("key", srv.URL)
	results, err := p.Search(context.Background(), "q")
	require.NoError(t, err)
	assert.Len(t, results, 5)
}

func TestSerpAPIErrorStatus(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusInternalServerError)
	}))
	defer srv.Close()

	p := NewSerpAPIWithBaseURL("key", srv.URL)
	_, err := p.Search(context.Background(), "q")
	assert.Error(t, err)
}

func TestSerpAPINoResultsIsNotAnError(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		_ = json.NewEncoder(w).Encode(map[string]interface{}{})
	}))
	defer srv.Close()

	p := NewSerpAPIWithBaseURL("key", srv.URL)
	results, err := p.Search(context.Background(), "q")
	require.NoError(t, err)
	assert.Empty(t, results)
}
