// Package domain provides core domain models and types.
package domain

// Candidate is a raw investment-universe entry as returned by the screener,
// before ESG enrichment.
type Candidate struct {
	Ticker string `json:"ticker"`
	Name   string `json:"name"`
}

// Company represents a candidate company with its ESG profile attached.
//
// The E/S/G sub-scores are risk-inverted (higher = better) on a 0-40 scale.
// A nil pointer means the field has not been enriched yet; a value of exactly
// 40 means the data source had no data and substituted the best case. The two
// are deliberately distinguishable: scoring requires enrichment to have
// happened, but it cannot tell a true 40 from the no-data substitute.
type Company struct {
	Ticker        string   `json:"ticker"`
	Name          string   `json:"name"`
	Sector        *string  `json:"sector,omitempty"`
	EScore        *float64 `json:"e_score,omitempty"`
	SScore        *float64 `json:"s_score,omitempty"`
	GScore        *float64 `json:"g_score,omitempty"`
	Controversies *float64 `json:"controversies,omitempty"`
	Score         float64  `json:"score"`
}

// RecommendedPortfolio is the final output of a selection run.
//
// Tickers, Proportions and Companies are positionally aligned: Proportions[i]
// is the signed weight assigned to Tickers[i], which is Companies[i].Ticker.
// All three have exactly portfolio-size entries.
type RecommendedPortfolio struct {
	ID          string    `json:"id"`
	Tickers     []string  `json:"tickers"`
	Proportions []float64 `json:"proportions"`
	Risk        float64   `json:"risk"`
	Return      float64   `json:"return"`
	Companies   []Company `json:"companies"`
}
