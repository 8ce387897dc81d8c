// Package recommendation implements portfolio selection over the ranked
// candidate universe.
package recommendation

import (
	"context"
	"time"

	"github.com/rs/zerolog"

	"github.com/mtahawi/esg-navigator/internal/domain"
)

// Default retry policy for analytics calls. A transient failure on one window
// is retried in place; once retries exhaust the whole selection aborts,
// because skipping a window would silently bias the result toward
// lower-ranked companies.
const (
	defaultMaxAttempts = 3
	defaultBackoff     = 500 * time.Millisecond
)

// Selector runs the sliding-window search for a feasible portfolio.
type Selector struct {
	analytics   domain.PortfolioAnalytics
	log         zerolog.Logger
	maxAttempts int
	backoffBase time.Duration
}

// NewSelector creates a new portfolio selector.
func NewSelector(analytics domain.PortfolioAnalytics, log zerolog.Logger) *Selector {
	return &Selector{
		analytics:   analytics,
		log:         log.With().Str("component", "selector").Logger(),
		maxAttempts: defaultMaxAttempts,
		backoffBase: defaultBackoff,
	}
}

// Select slides a fixed-size window over the companies, which must already be
// sorted by preference score descending, and returns the first window that
// yields a feasible portfolio: risk within the ceiling (inclusive) and
// strictly positive expected return.
//
// Windows are tried best-ranked first and the search stops at the first
// success; later windows are never examined, even if one of them could hold a
// globally better portfolio.
//
// Returns ErrNoPortfolioFound when no window qualifies. That is a valid
// outcome, not a failure.
func (s *Selector) Select(ctx context.Context, companies []domain.Company, size int, riskCeiling float64) (*domain.RecommendedPortfolio, error) {
	if size < 1 {
		return nil, domain.NewInvalidInput("portfolio size must be positive, got %d", size)
	}
	if len(companies) < size {
		return nil, domain.NewInvalidInput("candidate pool has %d companies, need at least %d", len(companies), size)
	}

	for i := 0; i+size <= len(companies); i++ {
		window := companies[i : i+size]

		// Ticker order must match the window order exactly: the returned
		// weights are positional.
		tickers := make([]string, size)
		for j, c := range window {
			tickers[j] = c.Ticker
		}

		candidates, err := s.optimizeWithRetry(ctx, tickers, i)
		if err != nil {
			return nil, err
		}

		best := pickBest(candidates, size, riskCeiling, s.log)
		if best == nil || best[0] <= 0 {
			s.log.Debug().
				Int("window", i).
				Int("candidates", len(candidates)).
				Msg("No feasible portfolio in window")
			continue
		}

		portfolio := &domain.RecommendedPortfolio{
			Tickers:     tickers,
			Proportions: append([]float64(nil), best[1:size+1]...),
			Risk:        best[len(best)-1],
			Return:      best[0],
			Companies:   append([]domain.Company(nil), window...),
		}

		s.log.Info().
			Int("window", i).
			Float64("return", portfolio.Return).
			Float64("risk", portfolio.Risk).
			Msg("Feasible portfolio found")

		return portfolio, nil
	}

	return nil, domain.ErrNoPortfolioFound
}

// pickBest filters the candidate records by the risk ceiling (inclusive) and
// returns the one with the highest expected return, or nil if none survive.
// Ties keep the earlier record; the collaborator's response order is otherwise
// meaningless but treated as stable.
func pickBest(candidates [][]float64, size int, riskCeiling float64, log zerolog.Logger) []float64 {
	var best []float64

	for _, record := range candidates {
		// Each record must be [return, w_1..w_size, risk]. Anything else
		// violates the collaborator contract and cannot be interpreted.
		if len(record) != size+2 {
			log.Warn().
				Int("length", len(record)).
				Int("expected", size+2).
				Msg("Discarding malformed analytics record")
			continue
		}

		risk := record[len(record)-1]
		if risk > riskCeiling {
			continue
		}

		if best == nil || record[0] > best[0] {
			best = record
		}
	}

	return best
}

// optimizeWithRetry calls the analytics collaborator for one window, retrying
// transient failures with exponential backoff before giving up on the whole
// selection.
func (s *Selector) optimizeWithRetry(ctx context.Context, tickers []string, window int) ([][]float64, error) {
	var lastErr error

	for attempt := 1; attempt <= s.maxAttempts; attempt++ {
		candidates, err := s.analytics.Optimize(ctx, tickers)
		if err == nil {
			return candidates, nil
		}
		lastErr = err

		if ctx.Err() != nil {
			break
		}
		if attempt == s.maxAttempts {
			break
		}

		backoff := s.backoffBase << (attempt - 1)
		s.log.Warn().
			Err(err).
			Int("window", window).
			Int("attempt", attempt).
			Dur("backoff", backoff).
			Msg("Analytics call failed, retrying")

		select {
		case <-ctx.Done():
			return nil, domain.SelectionError{Window: window, Err: ctx.Err()}
		case <-time.After(backoff):
		}
	}

	return nil, domain.SelectionError{Window: window, Err: lastErr}
}
