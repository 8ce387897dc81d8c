// Package newton provides an HTTP client for the Newton Analytics
// modern-portfolio API, the external mean-variance optimizer.
package newton

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/rs/zerolog"
)

// Fixed lookback window submitted with every optimization request:
// twelve monthly observations.
const (
	observationInterval = "1mo"
	observationCount    = "12"
)

// Client is an HTTP client for the Newton Analytics API.
type Client struct {
	baseURL string
	client  *http.Client
	log     zerolog.Logger
}

// NewClient creates a new Newton Analytics client.
func NewClient(baseURL string, timeout time.Duration, log zerolog.Logger) *Client {
	return &Client{
		baseURL: baseURL,
		client: &http.Client{
			Timeout: timeout,
		},
		log: log.With().Str("client", "newton").Logger(),
	}
}

// optimizeResponse mirrors the API's response envelope. Each data record is
// [expected_return, weight_1, ..., weight_N, risk].
type optimizeResponse struct {
	Data [][]float64 `json:"data"`
}

// Optimize submits the tickers, in order, and returns the candidate efficient
// portfolios. Record weights are positionally aligned to the submitted ticker
// order, so callers must not reorder the tickers between submission and
// interpretation. Zero records is a valid response.
func (c *Client) Optimize(ctx context.Context, tickers []string) ([][]float64, error) {
	if len(tickers) == 0 {
		return nil, fmt.Errorf("no tickers to optimize")
	}

	params := url.Values{}
	params.Set("tickers", strings.Join(tickers, ","))
	params.Set("interval", observationInterval)
	params.Set("observations", observationCount)

	reqURL := c.baseURL + "/modern-portfolio/?" + params.Encode()

	c.log.Debug().
		Int("tickers", len(tickers)).
		Msg("Calling portfolio analytics service")

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, reqURL, nil)
	if err != nil {
		return nil, fmt.Errorf("failed to create request: %w", err)
	}
	req.Header.Set("Accept", "application/json")

	resp, err := c.client.Do(req)
	if err != nil {
		return nil, fmt.Errorf("failed to send request: %w", err)
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("failed to read response: %w", err)
	}

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("analytics service returned status %d", resp.StatusCode)
	}

	var parsed optimizeResponse
	if err := json.Unmarshal(body, &parsed); err != nil {
		return nil, fmt.Errorf("failed to parse response: %w", err)
	}

	c.log.Debug().
		Int("portfolios", len(parsed.Data)).
		Msg("Analytics service call successful")

	return parsed.Data, nil
}
