// Package yahoo provides the Yahoo Finance client used for ESG scores,
// sector assignments and investment-universe screening.
//
// All lookups are cache-first through the clientdata repository: Yahoo rate
// limits aggressively and the underlying data changes slowly. When data is
// missing upstream the client returns the documented neutral defaults instead
// of failing, so callers must treat those defaults as "unknown" sentinels.
package yahoo

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"time"

	"github.com/rs/zerolog"
	"golang.org/x/time/rate"

	"github.com/mtahawi/esg-navigator/internal/clientdata"
)

// maxRiskScore is the top of Yahoo's ESG risk scale. Yahoo reports risk
// (lower = better); we invert by subtracting from this value so that higher
// means better everywhere downstream.
const maxRiskScore = 40.0

// Defaults substituted when Yahoo has no data for a ticker.
const (
	defaultControversies = 10.0
)

const (
	tableESG     = "yahoo_esg"
	tableProfile = "yahoo_profile"
)

// Client is an HTTP client for the Yahoo Finance API.
type Client struct {
	baseURL string
	client  *http.Client
	limiter *rate.Limiter
	cache   *clientdata.Repository
	log     zerolog.Logger
}

// NewClient creates a new Yahoo Finance client.
func NewClient(baseURL string, cache *clientdata.Repository, timeout time.Duration, log zerolog.Logger) *Client {
	return &Client{
		baseURL: baseURL,
		client: &http.Client{
			Timeout: timeout,
		},
		// 2 requests/second with a small burst keeps us under Yahoo's
		// unofficial throttling threshold.
		limiter: rate.NewLimiter(rate.Every(500*time.Millisecond), 4),
		cache:   cache,
		log:     log.With().Str("client", "yahoo").Logger(),
	}
}

// EScore returns the risk-inverted environmental score (0-40, higher = better).
func (c *Client) EScore(ctx context.Context, ticker string) (float64, error) {
	rec, err := c.esgScores(ctx, ticker)
	if err != nil {
		return 0, err
	}
	return maxRiskScore - rec.EnvironmentScore, nil
}

// SScore returns the risk-inverted social score (0-40, higher = better).
func (c *Client) SScore(ctx context.Context, ticker string) (float64, error) {
	rec, err := c.esgScores(ctx, ticker)
	if err != nil {
		return 0, err
	}
	return maxRiskScore - rec.SocialScore, nil
}

// GScore returns the risk-inverted governance score (0-40, higher = better).
func (c *Client) GScore(ctx context.Context, ticker string) (float64, error) {
	rec, err := c.esgScores(ctx, ticker)
	if err != nil {
		return 0, err
	}
	return maxRiskScore - rec.GovernanceScore, nil
}

// Controversies returns the highest controversy level for the ticker, or the
// neutral default when Yahoo has no controversy data.
func (c *Client) Controversies(ctx context.Context, ticker string) (float64, error) {
	rec, err := c.esgScores(ctx, ticker)
	if err != nil {
		return 0, err
	}
	if !rec.Found || !rec.HasControversy {
		return defaultControversies, nil
	}
	return rec.HighestControversy, nil
}

// Sector returns the company's sector, or nil when unknown.
func (c *Client) Sector(ctx context.Context, ticker string) (*string, error) {
	if cached, err := c.cache.GetIfFresh(tableProfile, ticker); err != nil {
		c.log.Warn().Err(err).Str("ticker", ticker).Msg("Profile cache read failed")
	} else if cached != nil {
		var rec profileRecord
		if err := json.Unmarshal(cached, &rec); err == nil {
			return rec.sectorOrNil(), nil
		}
	}

	var resp quoteSummaryResponse
	url := fmt.Sprintf("%s/v10/finance/quoteSummary/%s?modules=assetProfile", c.baseURL, ticker)
	if err := c.get(ctx, url, &resp); err != nil {
		return nil, err
	}

	rec := profileRecord{}
	if len(resp.QuoteSummary.Result) > 0 && resp.QuoteSummary.Result[0].AssetProfile != nil {
		profile := resp.QuoteSummary.Result[0].AssetProfile
		if profile.Sector != "" {
			rec = profileRecord{Found: true, Sector: profile.Sector}
		}
	}

	if err := c.cache.Store(tableProfile, ticker, rec, clientdata.TTLCompanyProfile); err != nil {
		c.log.Warn().Err(err).Str("ticker", ticker).Msg("Profile cache write failed")
	}

	return rec.sectorOrNil(), nil
}

func (r profileRecord) sectorOrNil() *string {
	if !r.Found {
		return nil
	}
	sector := r.Sector
	return &sector
}

// esgScores fetches the raw ESG risk scores for a ticker, cache-first.
// Negative lookups (no ESG coverage) are cached too.
func (c *Client) esgScores(ctx context.Context, ticker string) (*esgRecord, error) {
	if cached, err := c.cache.GetIfFresh(tableESG, ticker); err != nil {
		c.log.Warn().Err(err).Str("ticker", ticker).Msg("ESG cache read failed")
	} else if cached != nil {
		var rec esgRecord
		if err := json.Unmarshal(cached, &rec); err == nil {
			c.log.Debug().Str("ticker", ticker).Msg("ESG cache hit")
			return &rec, nil
		}
	}

	c.log.Info().Str("ticker", ticker).Msg("Requesting ESG scores")

	var resp quoteSummaryResponse
	url := fmt.Sprintf("%s/v10/finance/quoteSummary/%s?modules=esgScores", c.baseURL, ticker)
	if err := c.get(ctx, url, &resp); err != nil {
		return nil, err
	}

	rec := esgRecord{}
	if len(resp.QuoteSummary.Result) > 0 && resp.QuoteSummary.Result[0].ESGScores != nil {
		scores := resp.QuoteSummary.Result[0].ESGScores
		rec.Found = true
		if scores.EnvironmentScore.Raw != nil {
			rec.EnvironmentScore = *scores.EnvironmentScore.Raw
		}
		if scores.SocialScore.Raw != nil {
			rec.SocialScore = *scores.SocialScore.Raw
		}
		if scores.GovernanceScore.Raw != nil {
			rec.GovernanceScore = *scores.GovernanceScore.Raw
		}
		if scores.HighestControversy.Raw != nil {
			rec.HighestControversy = *scores.HighestControversy.Raw
			rec.HasControversy = true
		}
	} else {
		c.log.Warn().Str("ticker", ticker).Msg("No ESG data found")
	}

	if err := c.cache.Store(tableESG, ticker, rec, clientdata.TTLESGScores); err != nil {
		c.log.Warn().Err(err).Str("ticker", ticker).Msg("ESG cache write failed")
	}

	return &rec, nil
}

// get performs a rate-limited GET request and decodes the JSON response.
func (c *Client) get(ctx context.Context, url string, target interface{}) error {
	if err := c.limiter.Wait(ctx); err != nil {
		return fmt.Errorf("rate limiter wait cancelled: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return fmt.Errorf("failed to create request: %w", err)
	}
	req.Header.Set("User-Agent", userAgent)
	req.Header.Set("Accept", "application/json")

	resp, err := c.client.Do(req)
	if err != nil {
		return fmt.Errorf("failed to send request: %w", err)
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return fmt.Errorf("failed to read response: %w", err)
	}

	if resp.StatusCode != http.StatusOK {
		return fmt.Errorf("unexpected status %d from %s", resp.StatusCode, url)
	}

	if err := json.Unmarshal(body, target); err != nil {
		return fmt.Errorf("failed to parse response: %w", err)
	}

	return nil
}

// Yahoo rejects requests without a browser-like user agent.
const userAgent = "Mozilla/5.0 (X11; Linux x86_64) AppleWebKit/537.36 (KHTML, like Gecko) Chrome/120.0 Safari/537.36"
