package domain

import "context"

// ESGDataProvider defines the ESG/sector data collaborator.
//
// Implementations return neutral defaults instead of failing when data is
// unavailable: sub-scores come back as 40 (risk 0 inverted), controversy
// counts as 10, sectors as nil. Callers must treat those values as "unknown"
// sentinels rather than real observations. Errors are reserved for transport
// or decoding failures.
type ESGDataProvider interface {
	// EScore returns the risk-inverted environmental score (0-40, higher = better)
	EScore(ctx context.Context, ticker string) (float64, error)

	// SScore returns the risk-inverted social score (0-40, higher = better)
	SScore(ctx context.Context, ticker string) (float64, error)

	// GScore returns the risk-inverted governance score (0-40, higher = better)
	GScore(ctx context.Context, ticker string) (float64, error)

	// Controversies returns the company's highest controversy level (lower is better)
	Controversies(ctx context.Context, ticker string) (float64, error)

	// Sector returns the company's sector, or nil when unknown
	Sector(ctx context.Context, ticker string) (*string, error)
}

// UniverseScreener builds the raw candidate universe from investor preferences.
type UniverseScreener interface {
	// InvestmentUniverse returns ticker/name pairs for companies in the given
	// sectors whose controversy level is below maxControversies. Pass +Inf to
	// disable controversy filtering. Results are ordered by aggregate ESG
	// score, best first.
	InvestmentUniverse(ctx context.Context, sectors []string, maxControversies float64) ([]Candidate, error)
}

// PortfolioAnalytics defines the external mean-variance optimization collaborator.
//
// Optimize submits tickers in order and returns zero or more candidate
// portfolios. Each record has len(tickers)+2 elements: expected return first,
// then one signed weight per submitted ticker in submission order, then risk
// last. No ordering or count guarantee applies to the records themselves.
type PortfolioAnalytics interface {
	Optimize(ctx context.Context, tickers []string) ([][]float64, error)
}
