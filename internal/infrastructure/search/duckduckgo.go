package search

import (
	"bytes"
	"fmt"
	"net/url"
	"strings"

	"golang.org/x/net/html"

	domainsearch "github.com/janhq/jan-assistant/internal/domain/search"
)

// parseDuckDuckGoHTML extracts organic results from the DuckDuckGo HTML page.
// Titles come from "result__a" anchors and snippets from the following
// "result__snippet" element. Sponsored links are skipped.
func parseDuckDuckGoHTML(body []byte, limit int) ([]domainsearch.Result, error) {
	doc, err := html.Parse(bytes.NewReader(body))
	if err != nil {
		return nil, fmt.Errorf("parse duckduckgo html: %w", err)
	}

	var results []domainsearch.Result
	skipping := false
	var walk func(*html.Node)
	walk = func(n *html.Node) {
		if limit > 0 && len(results) >= limit && !skipping {
			return
		}
		if n.Type == html.ElementNode {
			switch {
			case hasClass(n, "result__a"):
				link := resolveResultURL(attr(n, "href"))
				if isAdLink(link) {
					skipping = true
					return
				}
				skipping = false
				if limit > 0 && len(results) >= limit {
					return
				}
				results = append(results, domainsearch.Result{
					Title: strings.TrimSpace(textContent(n)),
					URL:   link,
				})
				return
			case hasClass(n, "result__snippet"):
				if !skipping && len(results) > 0 && results[len(results)-1].Snippet == "" {
					results[len(results)-1].Snippet = strings.TrimSpace(textContent(n))
				}
				return
			}
		}
		for c := n.FirstChild; c != nil; c = c.NextSibling {
			walk(c)
		}
	}
	walk(doc)
	return results, nil
}

func hasClass(n *html.Node, class string) bool {
	for _, field := range strings.Fields(attr(n, "class")) {
		if field == class {
			return true
		}
	}
	return false
}

func attr(n *html.Node, key string) string {
	for _, a := range n.Attr {
		if a.Key == key {
			return a.Val
		}
	}
	return ""
}

func textContent(n *html.Node) string {
	var sb strings.Builder
	var walk func(*html.Node)
	walk = func(n *html.Node) {
		if n.Type == html.TextNode {
			sb.WriteString(n.Data)
		}
		for c := n.FirstChild; c != nil; c = c.NextSibling {
			walk(c)
		}
	}
	walk(n)
	return strings.Join(strings.Fields(sb.String()), " ")
}

// resolveResultURL unwraps DuckDuckGo redirect links ("/l/?uddg=<target>").
func resolveResultURL(href string) string {
	if strings.HasPrefix(href, "//") {
		href = "https:" + href
	}
	u, err := url.Parse(href)
	if err != nil {
		return href
	}
	if target := u.Query().Get("uddg"); target != "" {
		return target
	}
	return href
}

func isAdLink(link string) bool {
	return strings.Contains(link, "duckduckgo.com/y.js")
}
