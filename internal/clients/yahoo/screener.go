package yahoo

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"math"
	"net/http"
	"sort"
	"strings"

	"github.com/mtahawi/esg-navigator/internal/clientdata"
	"github.com/mtahawi/esg-navigator/internal/domain"
)

const tableUniverse = "yahoo_universe"

// screenerRegions limits the universe to markets we can actually trade.
var screenerRegions = []string{"us", "gr", "ch", "au", "fr"}

// universePageSize caps how many candidates one screener query returns.
const universePageSize = 200

// queryNode is one node of the screener's boolean query tree.
type queryNode struct {
	Operator string        `json:"operator"`
	Operands []interface{} `json:"operands"`
}

func eq(field string, value interface{}) queryNode {
	return queryNode{Operator: "eq", Operands: []interface{}{field, value}}
}

func lt(field string, value interface{}) queryNode {
	return queryNode{Operator: "lt", Operands: []interface{}{field, value}}
}

func gt(field string, value interface{}) queryNode {
	return queryNode{Operator: "gt", Operands: []interface{}{field, value}}
}

func or(nodes []queryNode) queryNode {
	operands := make([]interface{}, len(nodes))
	for i, n := range nodes {
		operands[i] = n
	}
	return queryNode{Operator: "or", Operands: operands}
}

func and(nodes []queryNode) queryNode {
	operands := make([]interface{}, len(nodes))
	for i, n := range nodes {
		operands[i] = n
	}
	return queryNode{Operator: "and", Operands: operands}
}

// InvestmentUniverse queries the equity screener for companies in the given
// sectors with a controversy level below maxControversies, requiring ESG
// coverage on all three pillars. Results come back sorted by aggregate ESG
// score, best first. Pass +Inf to disable the controversy filter.
func (c *Client) InvestmentUniverse(ctx context.Context, sectors []string, maxControversies float64) ([]domain.Candidate, error) {
	cacheKey := universeCacheKey(sectors, maxControversies)

	if cached, err := c.cache.GetIfFresh(tableUniverse, cacheKey); err != nil {
		c.log.Warn().Err(err).Msg("Universe cache read failed")
	} else if cached != nil {
		var candidates []domain.Candidate
		if err := json.Unmarshal(cached, &candidates); err == nil {
			c.log.Debug().Int("count", len(candidates)).Msg("Universe cache hit")
			return candidates, nil
		}
	}

	regionNodes := make([]queryNode, len(screenerRegions))
	for i, region := range screenerRegions {
		regionNodes[i] = eq("region", region)
	}

	sectorNodes := make([]queryNode, len(sectors))
	for i, sector := range sectors {
		sectorNodes[i] = eq("sector", sector)
	}

	// Companies without ESG coverage would all surface as best-case 40s
	// after inversion, so they are excluded at the screener.
	filters := []queryNode{
		or(regionNodes),
		or(sectorNodes),
		gt("esg_score", 0),
		gt("environmental_score", 0),
		gt("social_score", 0),
		gt("governance_score", 0),
	}
	if !math.IsInf(maxControversies, 1) {
		filters = append(filters, lt("highest_controversy", maxControversies))
	}

	body := map[string]interface{}{
		"offset":     0,
		"size":       universePageSize,
		"sortField":  "esg_score",
		"sortType":   "desc",
		"quoteType":  "equity",
		"query":      and(filters),
		"userId":     "",
		"userIdType": "guid",
	}

	var resp screenerResponse
	if err := c.post(ctx, c.baseURL+"/v1/finance/screener", body, &resp); err != nil {
		return nil, err
	}
	if resp.Finance.Error != nil {
		return nil, fmt.Errorf("screener error: %s", resp.Finance.Error.Description)
	}
	if len(resp.Finance.Result) == 0 {
		return nil, fmt.Errorf("screener returned no result set")
	}

	quotes := resp.Finance.Result[0].Quotes
	candidates := make([]domain.Candidate, 0, len(quotes))
	for _, q := range quotes {
		candidates = append(candidates, domain.Candidate{
			Ticker: q.Symbol,
			Name:   q.ShortName,
		})
	}

	c.log.Info().
		Int("count", len(candidates)).
		Strs("sectors", sectors).
		Msg("Screened investment universe")

	if err := c.cache.Store(tableUniverse, cacheKey, candidates, clientdata.TTLUniverse); err != nil {
		c.log.Warn().Err(err).Msg("Universe cache write failed")
	}

	return candidates, nil
}

// universeCacheKey builds a deterministic cache key from the query inputs.
func universeCacheKey(sectors []string, maxControversies float64) string {
	sorted := make([]string, len(sectors))
	copy(sorted, sectors)
	sort.Strings(sorted)

	controversy := "inf"
	if !math.IsInf(maxControversies, 1) {
		controversy = fmt.Sprintf("%g", maxControversies)
	}

	return strings.Join(sorted, ",") + "|" + controversy
}

// post performs a rate-limited POST request and decodes the JSON response.
func (c *Client) post(ctx context.Context, url string, payload, target interface{}) error {
	if err := c.limiter.Wait(ctx); err != nil {
		return fmt.Errorf("rate limiter wait cancelled: %w", err)
	}

	jsonData, err := json.Marshal(payload)
	if err != nil {
		return fmt.Errorf("failed to marshal request: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, url, bytes.NewBuffer(jsonData))
	if err != nil {
		return fmt.Errorf("failed to create request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("User-Agent", userAgent)

	resp, err := c.client.Do(req)
	if err != nil {
		return fmt.Errorf("failed to send request: %w", err)
	}
	defer resp.Body.Close()

	respBody, err := io.ReadAll(resp.Body)
	if err != nil {
		return fmt.Errorf("failed to read response: %w", err)
	}

	if resp.StatusCode != http.StatusOK {
		return fmt.Errorf("unexpected status %d from %s", resp.StatusCode, url)
	}

	if err := json.Unmarshal(respBody, target); err != nil {
		return fmt.Errorf("failed to parse response: %w", err)
	}

	return nil
}
