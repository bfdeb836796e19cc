package search

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/go-resty/resty/v2"
	"github.com/rs/zerolog/log"

	domainsearch "github.com/janhq/jan-assistant/internal/domain/search"
	"github.com/janhq/jan-assistant/internal/infrastructure/metrics"
)

const (
	serperSearchEndpoint     = "https://google.serper.dev/search"
	duckDuckGoEndpoint       = "https://html.duckduckgo.com/html/"
	browserUserAgent         = "Mozilla/5.0 (Windows NT 10.0; Win64; x64) AppleWebKit/537.36 (KHTML, like Gecko) Chrome/120.0.0.0 Safari/537.36"
	defaultSearchHTTPTimeout = 10 * time.Second
)

// Engine represents the preferred backend for search operations.
type Engine string

const (
	// EngineAuto uses Serper when a key is configured and DuckDuckGo otherwise.
	EngineAuto Engine = "auto"
	// EngineDuckDuckGo scrapes the DuckDuckGo HTML endpoint; no key required.
	EngineDuckDuckGo Engine = "duckduckgo"
	// EngineSerper routes search requests to the hosted Serper API.
	EngineSerper Engine = "serper"
)

// ClientConfig captures the knobs exposed to operators for the search client.
type ClientConfig struct {
	Engine        Engine
	SerperAPIKey  string
	SerperURL     string
	DuckDuckGoURL string
	HTTPTimeout   time.Duration
}

// SearchClient implements domainsearch.Searcher over an ordered provider chain.
// Providers are tried once each; there are no retries.
type SearchClient struct {
	cfg          ClientConfig
	serperClient *resty.Client
	ddgClient    *resty.Client
}

var _ domainsearch.Searcher = (*SearchClient)(nil)

// NewSearchClient wires HTTP clients for each supported backend.
func NewSearchClient(cfg ClientConfig) *SearchClient {
	engine := Engine(strings.ToLower(string(cfg.Engine)))
	if engine == "" {
		engine = EngineAuto
	}
	cfg.Engine = engine
	if strings.TrimSpace(cfg.SerperURL) == "" {
		cfg.SerperURL = serperSearchEndpoint
	}
	if strings.TrimSpace(cfg.DuckDuckGoURL) == "" {
		cfg.DuckDuckGoURL = duckDuckGoEndpoint
	}
	httpTimeout := defaultSearchHTTPTimeout
	if cfg.HTTPTimeout > 0 {
		httpTimeout = cfg.HTTPTimeout
	}

	serperHTTP := resty.New().
		SetHeader("User-Agent", "Jan-Assistant/1.0").
		SetTimeout(httpTimeout).
		SetRetryCount(0)

	// Browser-like headers to avoid basic bot detection
	ddgHTTP := resty.New().
		SetHeader("User-Agent", browserUserAgent).
		SetHeader("Accept", "text/html,application/xhtml+xml,application/xml;q=0.9,*/*;q=0.8").
		SetHeader("Accept-Language", "en-US,en;q=0.5").
		SetTimeout(httpTimeout).
		SetRetryCount(0)

	return &SearchClient{cfg: cfg, serperClient: serperHTTP, ddgClient: ddgHTTP}
}

type provider struct {
	name string
	run  func(ctx context.Context, query string, limit int) ([]domainsearch.Result, error)
}

func (c *SearchClient) chain() []provider {
	serper := provider{name: "serper", run: c.searchViaSerper}
	ddg := provider{name: "duckduckgo", run: c.searchViaDuckDuckGo}
	if !c.hasSerperAPIKey() {
		return []provider{ddg}
	}
	if c.cfg.Engine == EngineDuckDuckGo {
		return []provider{ddg, serper}
	}
	return []provider{serper, ddg}
}

// Search tries each provider in order and returns the first success.
func (c *SearchClient) Search(ctx context.Context, query string, limit int) ([]domainsearch.Result, error) {
	if strings.TrimSpace(query) == "" {
		return nil, fmt.Errorf("search query is empty")
	}
	if limit <= 0 {
		limit = domainsearch.DefaultNumResults
	}

	log.Debug().
		Str("operation", "search").
		Str("query", query).
		Str("engine", string(c.cfg.Engine)).
		Bool("serper_enabled", c.hasSerperAPIKey()).
		Msg("search client starting provider chain")

	var lastErr error
	providersTried := make([]string, 0, 2)
	for _, p := range c.chain() {
		providersTried = append(providersTried, p.name)
		log.Debug().Str("provider", p.name).Str("query", query).Msg("trying search provider")
		res, err := p.run(ctx, query, limit)
		if err == nil {
			log.Info().Str("engine", p.name).Str("query", query).Int("result_count", len(res)).Msg("search completed using engine")
			return res, nil
		}
		lastErr = err
		log.Warn().Err(err).Str("provider", p.name).Msg("search provider failed, trying next provider")
	}
	return nil, fmt.Errorf("all search providers failed (tried: %v): %w", strings.Join(providersTried, ", "), lastErr)
}

type serperResponse struct {
	Organic []struct {
		Title   string `json:"title"`
		Link    string `json:"link"`
		Snippet string `json:"snippet"`
	} `json:"organic"`
}

func (c *SearchClient) searchViaSerper(ctx context.Context, query string, limit int) ([]domainsearch.Result, error) {
	startTime := time.Now()
	status := "success"
	defer func() {
		metrics.RecordProviderRequest("search", "serper", status)
		metrics.RecordExternalProviderLatency("serper", time.Since(startTime).Seconds())
	}()

	var res serperResponse
	resp, err := c.serperClient.R().
		SetContext(ctx).
		SetHeader("X-API-KEY", c.cfg.SerperAPIKey).
		SetHeader("Content-Type", "application/json").
		SetBody(map[string]any{"q": query, "num": limit}).
		SetResult(&res).
		Post(c.cfg.SerperURL)
	if err != nil {
		status = "error"
		return nil, fmt.Errorf("failed to query Serper search API: %w", err)
	}
	if resp.IsError() {
		status = "error"
		return nil, fmt.Errorf("serper search API returned HTTP %d: %s", resp.StatusCode(), strings.TrimSpace(resp.String()))
	}

	results := make([]domainsearch.Result, 0, len(res.Organic))
	for _, item := range res.Organic {
		results = append(results, domainsearch.Result{Title: item.Title, URL: item.Link, Snippet: item.Snippet})
		if len(results) == limit {
			break
		}
	}
	return results, nil
}

func (c *SearchClient) searchViaDuckDuckGo(ctx context.Context, query string, limit int) ([]domainsearch.Result, error) {
	startTime := time.Now()
	status := "success"
	defer func() {
		metrics.RecordProviderRequest("search", "duckduckgo", status)
		metrics.RecordExternalProviderLatency("duckduckgo", time.Since(startTime).Seconds())
	}()

	resp, err := c.ddgClient.R().
		SetContext(ctx).
		SetQueryParam("q", query).
		Get(c.cfg.DuckDuckGoURL)
	if err != nil {
		status = "error"
		return nil, fmt.Errorf("failed to query DuckDuckGo: %w", err)
	}
	if resp.IsError() {
		status = "error"
		return nil, fmt.Errorf("duckduckgo returned HTTP %d", resp.StatusCode())
	}

	results, err := parseDuckDuckGoHTML(resp.Body(), limit)
	if err != nil {
		status = "error"
		return nil, err
	}
	return results, nil
}

func (c *SearchClient) hasSerperAPIKey() bool {
	return strings.TrimSpace(c.cfg.SerperAPIKey) != ""
}
