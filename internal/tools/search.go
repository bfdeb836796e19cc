package tools

import (
	"context"

	"github.com/janhq/jan-assistant/internal/domain/search"
	"github.com/janhq/jan-assistant/internal/domain/tool"
)

type searchWebArgs struct {
	Query      string `json:"query" validate:"required"`
	NumResults int    `json:"num_results" validate:"gte=1,lte=20"`
}

type newsArgs struct {
	Topic       string `json:"topic"`
	NumArticles int    `json:"num_articles" validate:"gte=1,lte=20"`
}

type weatherArgs struct {
	Location string `json:"location" validate:"required"`
}

type stockArgs struct {
	Symbol string `json:"symbol" validate:"required"`
}

func searchTools(svc *search.Service) []binding {
	return []binding{
		{
			spec: tool.Spec{
				Name:        "search_web",
				Description: "Search the web for information.",
				Action:      "searching web",
				Params: []tool.Param{
					{Name: "query", Type: tool.TypeString, Description: "Search query", Required: true},
					{Name: "num_results", Type: tool.TypeInteger, Description: "Number of results to return (default 5)", Default: search.DefaultNumResults},
				},
			},
			handler: bound(func(ctx context.Context, in searchWebArgs) (string, error) {
				return svc.Web(ctx, in.Query, in.NumResults)
			}),
		},
		{
			spec: tool.Spec{
				Name:        "get_news",
				Description: "Get recent news about a topic.",
				Action:      "getting news",
				Params: []tool.Param{
					{Name: "topic", Type: tool.TypeString, Description: "News topic (default technology)", Default: search.DefaultNewsTopic},
					{Name: "num_articles", Type: tool.TypeInteger, Description: "Number of articles (default 3)", Default: search.DefaultNumArticles},
				},
			},
			handler: bound(func(ctx context.Context, in newsArgs) (string, error) {
				return svc.News(ctx, in.Topic, in.NumArticles)
			}),
		},
		{
			spec: tool.Spec{
				Name:        "get_weather",
				Description: "Get weather information for a location.",
				Action:      "getting weather",
				Params: []tool.Param{
					{Name: "location", Type: tool.TypeString, Description: "City or place name", Required: true},
				},
			},
			handler: bound(func(ctx context.Context, in weatherArgs) (string, error) {
				return svc.Weather(ctx, in.Location)
			}),
		},
		{
			spec: tool.Spec{
				Name:        "get_stock_price",
				Description: "Look up the current price of a stock.",
				Action:      "getting stock price",
				Params: []tool.Param{
					{Name: "symbol", Type: tool.TypeString, Description: "Ticker symbol, e.g. AAPL", Required: true},
				},
			},
			handler: bound(func(ctx context.Context, in stockArgs) (string, error) {
				return svc.StockPrice(ctx, in.Symbol)
			}),
		},
	}
}
