package recommendation

import (
	"context"
	"sort"

	"github.com/google/uuid"
	"github.com/rs/zerolog"

	"github.com/mtahawi/esg-navigator/internal/domain"
	"github.com/mtahawi/esg-navigator/internal/modules/profile"
	"github.com/mtahawi/esg-navigator/internal/modules/scoring"
	"github.com/mtahawi/esg-navigator/internal/modules/universe"
)

// Service composes the full recommendation pipeline: survey thresholds →
// universe screening → enrichment → preference ranking → window selection.
type Service struct {
	screener      domain.UniverseScreener
	enricher      *universe.Enricher
	selector      *Selector
	portfolioSize int
	log           zerolog.Logger
}

// NewService creates a new recommendation service.
func NewService(
	screener domain.UniverseScreener,
	enricher *universe.Enricher,
	selector *Selector,
	portfolioSize int,
	log zerolog.Logger,
) *Service {
	return &Service{
		screener:      screener,
		enricher:      enricher,
		selector:      selector,
		portfolioSize: portfolioSize,
		log:           log.With().Str("component", "recommendation").Logger(),
	}
}

// BuildRecommendation runs one recommendation request end to end.
//
// Returns ErrNoPortfolioFound when the universe holds no feasible portfolio
// under the investor's constraints; typed errors otherwise (InvalidInputError
// for bad answers, EnrichmentError / SelectionError for collaborator failures).
func (s *Service) BuildRecommendation(ctx context.Context, answers profile.SurveyAnswers) (*domain.RecommendedPortfolio, error) {
	if err := answers.Validate(); err != nil {
		return nil, err
	}

	maxControversies, err := profile.AcceptedControversyCount(answers.ControversyThreshold)
	if err != nil {
		return nil, err
	}

	riskCeiling, err := profile.RiskCeiling(answers.RiskTolerance)
	if err != nil {
		return nil, err
	}

	candidates, err := s.screener.InvestmentUniverse(ctx, answers.Sectors, maxControversies)
	if err != nil {
		return nil, domain.EnrichmentError{Err: err}
	}

	s.log.Info().
		Int("candidates", len(candidates)).
		Float64("risk_ceiling", riskCeiling).
		Msg("Building recommendation")

	companies, err := s.enricher.Enrich(ctx, candidates)
	if err != nil {
		return nil, err
	}

	weights := scoring.Weights{
		E: float64(answers.EWeight),
		S: float64(answers.SWeight),
		G: float64(answers.GWeight),
	}
	for i := range companies {
		score, err := scoring.PreferenceScore(companies[i], weights)
		if err != nil {
			return nil, err
		}
		companies[i].Score = score
	}

	// Stable sort keeps the screener's ESG ordering for equal preference
	// scores, so repeated runs rank identically.
	sort.SliceStable(companies, func(i, j int) bool {
		return companies[i].Score > companies[j].Score
	})

	portfolio, err := s.selector.Select(ctx, companies, s.portfolioSize, riskCeiling)
	if err != nil {
		return nil, err
	}

	portfolio.ID = uuid.NewString()

	s.log.Info().
		Str("recommendation_id", portfolio.ID).
		Strs("tickers", portfolio.Tickers).
		Float64("return", portfolio.Return).
		Float64("risk", portfolio.Risk).
		Msg("Recommendation built")

	return portfolio, nil
}
