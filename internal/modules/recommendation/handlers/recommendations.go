// Package handlers exposes the recommendation engine over HTTP.
package handlers

import (
	"encoding/json"
	"errors"
	"net/http"

	"github.com/rs/zerolog"

	"github.com/mtahawi/esg-navigator/internal/domain"
	"github.com/mtahawi/esg-navigator/internal/modules/profile"
	"github.com/mtahawi/esg-navigator/internal/modules/recommendation"
)

// RecommendationsHandler handles POST /api/recommendations.
type RecommendationsHandler struct {
	service *recommendation.Service
	log     zerolog.Logger
}

// NewRecommendationsHandler creates a new recommendations handler.
func NewRecommendationsHandler(service *recommendation.Service, log zerolog.Logger) *RecommendationsHandler {
	return &RecommendationsHandler{
		service: service,
		log:     log.With().Str("handler", "recommendations").Logger(),
	}
}

// RecommendationsResponse is the API response envelope. Found=false with a
// 200 status means the request was valid but no feasible portfolio exists;
// it is deliberately not an error.
type RecommendationsResponse struct {
	Found        bool                         `json:"found"`
	Portfolio    *domain.RecommendedPortfolio `json:"portfolio,omitempty"`
	Distribution []float64                    `json:"distribution,omitempty"`
}

type errorResponse struct {
	Error string `json:"error"`
}

func (h *RecommendationsHandler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	var answers profile.SurveyAnswers
	if err := json.NewDecoder(r.Body).Decode(&answers); err != nil {
		writeJSON(w, http.StatusBadRequest, errorResponse{Error: "invalid request body"})
		return
	}

	portfolio, err := h.service.BuildRecommendation(r.Context(), answers)
	if err != nil {
		h.writeError(w, err)
		return
	}

	writeJSON(w, http.StatusOK, RecommendationsResponse{
		Found:        true,
		Portfolio:    portfolio,
		Distribution: recommendation.Distribution(portfolio.Proportions),
	})
}

// writeError maps the domain error taxonomy onto HTTP statuses. NotFound is a
// valid outcome and stays on the success path.
func (h *RecommendationsHandler) writeError(w http.ResponseWriter, err error) {
	if errors.Is(err, domain.ErrNoPortfolioFound) {
		writeJSON(w, http.StatusOK, RecommendationsResponse{Found: false})
		return
	}

	var invalidInput domain.InvalidInputError
	if errors.As(err, &invalidInput) {
		writeJSON(w, http.StatusBadRequest, errorResponse{Error: invalidInput.Error()})
		return
	}

	var enrichment domain.EnrichmentError
	var selection domain.SelectionError
	if errors.As(err, &enrichment) || errors.As(err, &selection) {
		h.log.Error().Err(err).Msg("Upstream collaborator failure")
		writeJSON(w, http.StatusBadGateway, errorResponse{Error: "upstream data provider unavailable"})
		return
	}

	h.log.Error().Err(err).Msg("Failed to build recommendation")
	writeJSON(w, http.StatusInternalServerError, errorResponse{Error: "internal error"})
}

func writeJSON(w http.ResponseWriter, status int, payload interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(payload)
}
