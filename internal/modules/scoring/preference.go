// Package scoring computes personalized preference scores used to rank the
// candidate universe.
package scoring

import (
	"github.com/mtahawi/esg-navigator/internal/domain"
)

// Weights holds the investor's 1-5 survey weights for the three ESG pillars.
type Weights struct {
	E float64
	S float64
	G float64
}

// PreferenceScore computes the weighted linear sum of the company's ESG
// sub-scores: w_e*e + w_s*s + w_g*g. No normalization is applied; the score is
// only used for relative ranking within one request.
//
// Enrichment is a precondition: a company with any missing sub-score is a
// caller bug, reported as InvalidInputError rather than silently defaulted.
func PreferenceScore(c domain.Company, w Weights) (float64, error) {
	if c.EScore == nil || c.SScore == nil || c.GScore == nil {
		return 0, domain.NewInvalidInput("company %s is missing ESG sub-scores, enrich before scoring", c.Ticker)
	}

	return w.E**c.EScore + w.S**c.SScore + w.G**c.GScore, nil
}
