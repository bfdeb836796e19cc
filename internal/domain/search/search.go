package search

import (
	"context"
	"fmt"
	"strings"
)

// Defaults for the search tools.
const (
	DefaultNumResults  = 5
	DefaultNewsTopic   = "technology"
	DefaultNumArticles = 3
	quickLookupResults = 3
	maxTitleChars      = 100
	maxSnippetChars    = 200
)

// Result is one organic search hit.
type Result struct {
	Title   string
	URL     string
	Snippet string
}

// Searcher runs a web query against one or more engines.
type Searcher interface {
	Search(ctx context.Context, query string, limit int) ([]Result, error)
}

// Service exposes the query shapes used by the assistant tools.
type Service struct {
	searcher Searcher
}

// NewService creates a search service.
func NewService(searcher Searcher) *Service {
	return &Service{searcher: searcher}
}

// Web runs a free-form query.
func (s *Service) Web(ctx context.Context, query string, limit int) (string, error) {
	if limit <= 0 {
		limit = DefaultNumResults
	}
	results, err := s.searcher.Search(ctx, query, limit)
	if err != nil {
		return "", err
	}
	if len(results) > limit {
		results = results[:limit]
	}
	return Format(query, results), nil
}

// News searches recent news about topic.
func (s *Service) News(ctx context.Context, topic string, limit int) (string, error) {
	if strings.TrimSpace(topic) == "" {
		topic = DefaultNewsTopic
	}
	if limit <= 0 {
		limit = DefaultNumArticles
	}
	return s.Web(ctx, topic+" news", limit)
}

// Weather searches current weather for location.
func (s *Service) Weather(ctx context.Context, location string) (string, error) {
	return s.Web(ctx, "weather "+location, quickLookupResults)
}

// StockPrice searches the current price for a ticker symbol.
func (s *Service) StockPrice(ctx context.Context, symbol string) (string, error) {
	return s.Web(ctx, strings.ToUpper(strings.TrimSpace(symbol))+" stock price", quickLookupResults)
}

// Format renders results as a numbered list.
func Format(query string, results []Result) string {
	if len(results) == 0 {
		return fmt.Sprintf("No results found for '%s'. Try a different search term.", query)
	}
	var sb strings.Builder
	fmt.Fprintf(&sb, "Search results for '%s':\n\n", query)
	for i, r := range results {
		fmt.Fprintf(&sb, "%d. %s\n", i+1, clip(r.Title, maxTitleChars))
		if r.Snippet != "" {
			fmt.Fprintf(&sb, "   %s\n", clip(r.Snippet, maxSnippetChars))
		}
		fmt.Fprintf(&sb, "   URL: %s\n\n", r.URL)
	}
	return sb.String()
}

func clip(s string, n int) string {
	s = strings.TrimSpace(s)
	runes := []rune(s)
	if len(runes) <= n {
		return s
	}
	return string(runes[:n])
}
