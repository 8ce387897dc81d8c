// Package universe builds the enriched candidate universe for one
// recommendation request.
package universe

import (
	"context"

	"github.com/rs/zerolog"
	"golang.org/x/sync/errgroup"

	"github.com/mtahawi/esg-navigator/internal/domain"
)

// enrichConcurrency bounds how many tickers are enriched in parallel. Each
// ticker costs several network round trips, so this dominates wall-clock time;
// companies are independent of each other, and results are written by index so
// the input order is preserved regardless of completion order.
const enrichConcurrency = 4

// Enricher attaches ESG sub-scores, controversy counts and sectors to raw
// screener candidates.
type Enricher struct {
	data domain.ESGDataProvider
	log  zerolog.Logger
}

// NewEnricher creates a new company enricher.
func NewEnricher(data domain.ESGDataProvider, log zerolog.Logger) *Enricher {
	return &Enricher{
		data: data,
		log:  log.With().Str("component", "enricher").Logger(),
	}
}

// Enrich looks up ESG data for every candidate and returns the enriched
// companies in input order.
//
// Enrichment is all-or-nothing: if any lookup fails the whole batch fails with
// an EnrichmentError and partial results are discarded. A half-enriched
// universe would silently skew the ranking, and the data provider carries no
// idempotence guarantee, so the caller decides whether to retry.
func (e *Enricher) Enrich(ctx context.Context, candidates []domain.Candidate) ([]domain.Company, error) {
	companies := make([]domain.Company, len(candidates))

	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(enrichConcurrency)

	for i, candidate := range candidates {
		i, candidate := i, candidate
		g.Go(func() error {
			company, err := e.enrichOne(gctx, candidate)
			if err != nil {
				return domain.EnrichmentError{Ticker: candidate.Ticker, Err: err}
			}
			companies[i] = company
			return nil
		})
	}

	if err := g.Wait(); err != nil {
		e.log.Error().Err(err).Msg("Universe enrichment failed, discarding partial results")
		return nil, err
	}

	return companies, nil
}

func (e *Enricher) enrichOne(ctx context.Context, candidate domain.Candidate) (domain.Company, error) {
	company := domain.Company{
		Ticker: candidate.Ticker,
		Name:   candidate.Name,
	}

	eScore, err := e.data.EScore(ctx, candidate.Ticker)
	if err != nil {
		return company, err
	}
	sScore, err := e.data.SScore(ctx, candidate.Ticker)
	if err != nil {
		return company, err
	}
	gScore, err := e.data.GScore(ctx, candidate.Ticker)
	if err != nil {
		return company, err
	}
	controversies, err := e.data.Controversies(ctx, candidate.Ticker)
	if err != nil {
		return company, err
	}
	sector, err := e.data.Sector(ctx, candidate.Ticker)
	if err != nil {
		return company, err
	}

	company.EScore = &eScore
	company.SScore = &sScore
	company.GScore = &gScore
	company.Controversies = &controversies
	company.Sector = sector

	return company, nil
}
