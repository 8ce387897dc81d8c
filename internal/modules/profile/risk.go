package profile

import (
	"strings"

	"github.com/mtahawi/esg-navigator/internal/domain"
)

// riskCeilings maps qualitative risk tolerance to the maximum acceptable
// portfolio volatility.
var riskCeilings = map[string]float64{
	"low":      0.10,
	"moderate": 0.15,
	"high":     0.20,
}

// RiskCeiling maps a risk tolerance level (low/moderate/high, case-insensitive)
// to its fractional volatility ceiling.
func RiskCeiling(level string) (float64, error) {
	if ceiling, ok := riskCeilings[strings.ToLower(level)]; ok {
		return ceiling, nil
	}
	return 0, domain.NewInvalidInput("invalid risk level %q, must be one of low, moderate, high", level)
}
