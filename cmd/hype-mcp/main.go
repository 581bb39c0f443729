// Command hype-mcp exposes the price API as MCP tools over stdio, so LLM
// agents can run product searches through a local or remote hype-api
// instance.
package main

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"os"
	"strconv"
	"time"

	"github.com/mark3labs/mcp-go/mcp"
	"github.com/mark3labs/mcp-go/server"
)

// searchResponse mirrors the price API search response model.
type searchResponse struct {
	Query             string   `json:"query"`
	Region            string   `json:"region"`
	PlatformsSearched []string `json:"platforms_searched"`
	Results           []struct {
		Platform     string   `json:"platform"`
		PlatformName string   `json:"platform_name"`
		ProductName  string   `json:"product_name"`
		Price        float64  `json:"price"`
		Currency     string   `json:"currency"`
		URL          string   `json:"url"`
		Seller       string   `json:"seller"`
		Rating       *float64 `json:"rating"`
		ReviewCount  *int     `json:"review_count"`
	} `json:"results"`
	TotalResults int   `json:"total_results"`
	SearchTimeMs int64 `json:"search_time_ms"`
	Error        *struct {
		Code    string `json:"code"`
		Message string `json:"message"`
	} `json:"error"`
}

func main() {
	apiURL := os.Getenv("HYPE_API_URL")
	if apiURL == "" {
		apiURL = "http://127.0.0.1:8000"
	}
	// Optional: the API is open unless key auth is enabled server-side.
	apiKey := os.Getenv("HYPE_API_KEY")

	s := server.NewMCPServer(
		"hype-intelligence",
		"1.0.0",
		server.WithToolCapabilities(false),
	)

	searchPricesTool := mcp.NewTool("search_prices",
		mcp.WithDescription("Search current product prices across e-commerce platforms (Amazon, Walmart, Best Buy, Trendyol, Hepsiburada). Returns normalized price listings with ratings and product links."),
		mcp.WithString("query",
			mcp.Required(),
			mcp.Description("The product to search for, e.g. 'airpods pro'"),
		),
		mcp.WithString("region",
			mcp.Description("Market region to search: 'us' (default), 'eu', or 'tr'"),
			mcp.Enum("us", "eu", "tr"),
		),
		mcp.WithString("platforms",
			mcp.Description("Comma-separated platform IDs to restrict the search, e.g. 'amazon_us,walmart'. Defaults to all platforms in the region."),
		),
		mcp.WithNumber("max_results",
			mcp.Description("Maximum results per platform, 1-20 (default: 5)"),
		),
	)
	s.AddTool(searchPricesTool, handleSearchPrices(apiURL, apiKey))

	listPlatformsTool := mcp.NewTool("list_platforms",
		mcp.WithDescription("List the supported e-commerce platforms, optionally filtered by region."),
		mcp.WithString("region",
			mcp.Description("Region to filter by: 'us', 'eu', or 'tr'. Omit for all regions."),
			mcp.Enum("us", "eu", "tr"),
		),
	)
	s.AddTool(listPlatformsTool, handleListPlatforms(apiURL, apiKey))

	priceHistoryTool := mcp.NewTool("price_history",
		mcp.WithDescription("Retrieve stored price observations from past searches. Only available when the API has history storage enabled."),
		mcp.WithString("query",
			mcp.Description("Filter by the original search query"),
		),
		mcp.WithString("platform",
			mcp.Description("Filter by platform ID, e.g. 'amazon_us'"),
		),
		mcp.WithNumber("limit",
			mcp.Description("Maximum observations to return, 1-500 (default: 100)"),
		),
	)
	s.AddTool(priceHistoryTool, handlePriceHistory(apiURL, apiKey))

	if err := server.ServeStdio(s); err != nil {
		fmt.Fprintf(os.Stderr, "server error: %v\n", err)
		os.Exit(1)
	}
}

// apiGet sends a GET request to the price API and returns the response body.
func apiGet(ctx context.Context, client *http.Client, apiURL, apiKey, path string, params url.Values) ([]byte, int, error) {
	target := apiURL + path
	if len(params) > 0 {
		target += "?" + params.Encode()
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, target, nil)
	if err != nil {
		return nil, 0, fmt.Errorf("create request: %w", err)
	}
	if apiKey != "" {
		req.Header.Set("X-API-Key", apiKey)
	}

	resp, err := client.Do(req)
	if err != nil {
		return nil, 0, fmt.Errorf("API request failed: %w", err)
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, 0, fmt.Errorf("read response: %w", err)
	}
	return body, resp.StatusCode, nil
}

func handleSearchPrices(apiURL, apiKey string) server.ToolHandlerFunc {
	client := &http.Client{Timeout: 120 * time.Second}

	return func(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
		query, err := request.RequireString("query")
		if err != nil {
			return mcp.NewToolResultError("query is required"), nil
		}

		params := url.Values{}
		params.Set("q", query)
		if region := request.GetString("region", ""); region != "" {
			params.Set("region", region)
		}
		if platforms := request.GetString("platforms", ""); platforms != "" {
			params.Set("platforms", platforms)
		}
		if maxResults := request.GetInt("max_results", 0); maxResults > 0 {
			params.Set("max_results", strconv.Itoa(maxResults))
		}

		body, status, err := apiGet(ctx, client, apiURL, apiKey, "/api/search", params)
		if err != nil {
			return mcp.NewToolResultError(err.Error()), nil
		}

		var resp searchResponse
		if err := json.Unmarshal(body, &resp); err != nil {
			return mcp.NewToolResultError(fmt.Sprintf("failed to parse response: %v", err)), nil
		}
		if status != http.StatusOK {
			if resp.Error != nil {
				return mcp.NewToolResultError(fmt.Sprintf("%s: %s", resp.Error.Code, resp.Error.Message)), nil
			}
			return mcp.NewToolResultError(fmt.Sprintf("API returned status %d", status)), nil
		}

		return mcp.NewToolResultText(string(body)), nil
	}
}

func handleListPlatforms(apiURL, apiKey string) server.ToolHandlerFunc {
	client := &http.Client{Timeout: 30 * time.Second}

	return func(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
		params := url.Values{}
		if region := request.GetString("region", ""); region != "" {
			params.Set("region", region)
		}

		body, status, err := apiGet(ctx, client, apiURL, apiKey, "/api/platforms", params)
		if err != nil {
			return mcp.NewToolResultError(err.Error()), nil
		}
		if status != http.StatusOK {
			return mcp.NewToolResultError(fmt.Sprintf("API returned status %d: %s", status, body)), nil
		}

		return mcp.NewToolResultText(string(body)), nil
	}
}

func handlePriceHistory(apiURL, apiKey string) server.ToolHandlerFunc {
	client := &http.Client{Timeout: 30 * time.Second}

	return func(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
		params := url.Values{}
		if query := request.GetString("query", ""); query != "" {
			params.Set("query", query)
		}
		if platform := request.GetString("platform", ""); platform != "" {
			params.Set("platform", platform)
		}
		if limit := request.GetInt("limit", 0); limit > 0 {
			params.Set("limit", strconv.Itoa(limit))
		}

		body, status, err := apiGet(ctx, client, apiURL, apiKey, "/api/history", params)
		if err != nil {
			return mcp.NewToolResultError(err.Error()), nil
		}
		if status != http.StatusOK {
			return mcp.NewToolResultError(fmt.Sprintf("API returned status %d: %s", status, body)), nil
		}

		return mcp.NewToolResultText(string(body)), nil
	}
}
