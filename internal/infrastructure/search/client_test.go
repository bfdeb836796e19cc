package search

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const ddgPage = `<html><body>
<div class="result results_links result--ad">
  <h2 class="result__title"><a class="result__a" href="https://duckduckgo.com/y.js?ad_provider=x">Sponsored thing</a></h2>
  <a class="result__snippet" href="#">Buy now</a>
</div>
<div class="result results_links">
  <h2 class="result__title"><a rel="nofollow" class="result__a" href="//duckduckgo.com/l/?uddg=https%3A%2F%2Fgo.dev%2F&amp;rut=abc">The Go <b>Programming</b> Language</a></h2>
  <a class="result__snippet" href="#">Go is an open source   programming language.</a>
</div>
<div class="result results_links">
  <h2 class="result__title"><a class="result__a" href="https://pkg.go.dev/">Go Packages</a></h2>
  <a class="result__snippet" href="#">Discover packages.</a>
</div>
</body></html>`

func TestParseDuckDuckGoHTML(t *testing.T) {
	results, err := parseDuckDuckGoHTML([]byte(ddgPage), 5)
	require.NoError(t, err)
	require.Len(t, results, 2)

	assert.Equal(t, "The Go Programming Language", results[0].Title)
	assert.Equal(t, "https://go.dev/", results[0].URL)
	assert.Equal(t, "Go is an open source programming language.", results[0].Snippet)
	assert.Equal(t, "https://pkg.go.dev/", results[1].URL)
}

func TestParseDuckDuckGoHTML_RespectsLimit(t *testing.T) {
	results, err := parseDuckDuckGoHTML([]byte(ddgPage), 1)
	require.NoError(t, err)
	require.Len(t, results, 1)
	assert.Equal(t, "https://go.dev/", results[0].URL)
}

func TestSearchClient_DuckDuckGo(t *testing.T) {
	var gotQuery string
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotQuery = r.URL.Query().Get("q")
		_, _ = w.Write([]byte(ddgPage))
	}))
	defer srv.Close()

	client := NewSearchClient(ClientConfig{DuckDuckGoURL: srv.URL, HTTPTimeout: time.Second})
	results, err := client.Search(context.Background(), "golang", 5)
	require.NoError(t, err)

	assert.Equal(t, "golang", gotQuery)
	assert.Len(t, results, 2)
}

func TestSearchClient_SerperPreferred(t *testing.T) {
	var gotKey string
	var gotBody map[string]any
	serper := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotKey = r.Header.Get("X-API-KEY")
		_ = json.NewDecoder(r.Body).Decode(&gotBody)
		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(`{"organic":[{"title":"A","link":"https://a.test","snippet":"first"},{"title":"B","link":"https://b.test","snippet":"second"}]}`))
	}))
	defer serper.Close()

	ddgHits := 0
	ddg := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		ddgHits++
	}))
	defer ddg.Close()

	client := NewSearchClient(ClientConfig{
		Engine:        EngineSerper,
		SerperAPIKey:  "key-123",
		SerperURL:     serper.URL,
		DuckDuckGoURL: ddg.URL,
	})
	results, err := client.Search(context.Background(), "weather Paris", 1)
	require.NoError(t, err)

	require.Len(t, results, 1)
	assert.Equal(t, "https://a.test", results[0].URL)
	assert.Equal(t, "key-123", gotKey)
	assert.Equal(t, "weather Paris", gotBody["q"])
	assert.Zero(t, ddgHits)
}

func TestSearchClient_EngineOrder(t *testing.T) {
	tests := []struct {
		name   string
		engine Engine
		key    string
		want   []string
	}{
		{"auto with key prefers serper", EngineAuto, "key", []string{"serper", "duckduckgo"}},
		{"unset engine with key prefers serper", "", "key", []string{"serper", "duckduckgo"}},
		{"auto without key", EngineAuto, "", []string{"duckduckgo"}},
		{"explicit duckduckgo keeps serper as fallback", EngineDuckDuckGo, "key", []string{"duckduckgo", "serper"}},
		{"serper without key", EngineSerper, "", []string{"duckduckgo"}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			client := NewSearchClient(ClientConfig{Engine: tt.engine, SerperAPIKey: tt.key})
			var got []string
			for _, p := range client.chain() {
				got = append(got, p.name)
			}
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestSearchClient_FallsBackOnFailure(t *testing.T) {
	serper := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusInternalServerError)
	}))
	defer serper.Close()
	ddg := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		_, _ = w.Write([]byte(ddgPage))
	}))
	defer ddg.Close()

	client := NewSearchClient(ClientConfig{
		Engine:        EngineSerper,
		SerperAPIKey:  "key",
		SerperURL:     serper.URL,
		DuckDuckGoURL: ddg.URL,
	})
	results, err := client.Search(context.Background(), "golang", 5)
	require.NoError(t, err)
	assert.Len(t, results, 2)
}

func TestSearchClient_AllProvidersFail(t *testing.T) {
	calls := 0
	ddg := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		calls++
		w.WriteHeader(http.StatusServiceUnavailable)
	}))
	defer ddg.Close()

	client := NewSearchClient(ClientConfig{DuckDuckGoURL: ddg.URL})
	_, err := client.Search(context.Background(), "golang", 5)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "all search providers failed")
	assert.Contains(t, err.Error(), "duckduckgo")
	assert.Equal(t, 1, calls, "providers are not retried")
}

func TestSearchClient_EmptyQuery(t *testing.T) {
	client := NewSearchClient(ClientConfig{})
	_, err := client.Search(context.Background(), "   ", 5)
	require.Error(t, err)
}
