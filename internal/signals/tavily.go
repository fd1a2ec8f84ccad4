package signals

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"github.com/MrSnakeDoc/rolewithai/internal/logger"
	"github.com/MrSnakeDoc/rolewithai/internal/utils"
)

// maxErrorBody bounds how much of an error response is kept for the log.
const maxErrorBody = 512

// SearchResult is one hit returned by a web search.
type SearchResult struct {
	Title   string  `json:"title"`
	URL     string  `json:"url"`
	Content string  `json:"content"`
	Score   float64 `json:"score"`
}

// Searcher runs a web search.
type Searcher interface {
	Search(ctx context.Context, query string) ([]SearchResult, error)
}

type tavilyRequest struct {
	APIKey            string `json:"api_key"`
	Query             string `json:"query"`
	SearchDepth       string `json:"search_depth"`
	IncludeAnswer     bool   `json:"include_answer"`
	IncludeRawContent bool   `json:"include_raw_content"`
}

type tavilyResponse struct {
	Query        string         `json:"query"`
	ResponseTime float64        `json:"response_time"`
	Results      []SearchResult `json:"results"`
}

// TavilyClient talks to the Tavily search API.
type TavilyClient struct {
	apiKey  string
	baseURL string
	http    *http.Client
	logger  logger.Logger
}

// NewTavilyClient returns a client with its own timeout. baseURL is usually
// https://api.tavily.com.
func NewTavilyClient(apiKey, baseURL string, timeout time.Duration, log logger.Logger) *TavilyClient {
	return &TavilyClient{
		apiKey:  apiKey,
		baseURL: strings.TrimRight(baseURL, "/"),
		http:    &http.Client{Timeout: timeout},
		logger:  log,
	}
}

func (c *TavilyClient) Search(ctx context.Context, query string) ([]SearchResult, error) {
	body, err := json.Marshal(tavilyRequest{
		APIKey:      c.apiKey,
		Query:       query,
		SearchDepth: "basic",
	})
	if err != nil {
		return nil, fmt.Errorf("failed to encode search request: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.baseURL+"/search", bytes.NewReader(body))
	if err != nil {
		return nil, fmt.Errorf("failed to build search request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := c.http.Do(req)
	if err != nil {
		return nil, fmt.Errorf("search request failed: %w", err)
	}
	defer utils.MustClose(resp.Body, c.logger, "tavily response body")

	if resp.StatusCode != http.StatusOK {
		snippet, _ := io.ReadAll(io.LimitReader(resp.Body, maxErrorBody))
		return nil, fmt.Errorf("tavily returned %d: %s", resp.StatusCode, strings.TrimSpace(string(snippet)))
	}

	var out tavilyResponse
	if err := json.NewDecoder(resp.Body).Decode(&out); err != nil {
		return nil, fmt.Errorf("failed to decode search response: %w", err)
	}
	return out.Results, nil
}
