package handlers

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/mtahawi/esg-navigator/internal/domain"
	"github.com/mtahawi/esg-navigator/internal/modules/recommendation"
	"github.com/mtahawi/esg-navigator/internal/modules/universe"
)

type fakeScreener struct {
	candidates []domain.Candidate
	err        error
}

func (f *fakeScreener) InvestmentUniverse(_ context.Context, _ []string, _ float64) ([]domain.Candidate, error) {
	return f.candidates, f.err
}

type fakeProvider struct{}

func (fakeProvider) EScore(_ context.Context, _ string) (float64, error)  { return 30, nil }
func (fakeProvider) SScore(_ context.Context, _ string) (float64, error)  { return 30, nil }
func (fakeProvider) GScore(_ context.Context, _ string) (float64, error)  { return 30, nil }
func (fakeProvider) Controversies(_ context.Context, _ string) (float64, error) {
	return 2, nil
}
func (fakeProvider) Sector(_ context.Context, _ string) (*string, error) { return nil, nil }

type fakeAnalytics struct {
	data [][]float64
	err  error
}

func (f *fakeAnalytics) Optimize(_ context.Context, _ []string) ([][]float64, error) {
	return f.data, f.err
}

func newHandler(screener domain.UniverseScreener, analytics domain.PortfolioAnalytics) *RecommendationsHandler {
	log := zerolog.Nop()
	enricher := universe.NewEnricher(fakeProvider{}, log)
	selector := recommendation.NewSelector(analytics, log)
	service := recommendation.NewService(screener, enricher, selector, 2, log)
	return NewRecommendationsHandler(service, log)
}

const validBody = `{
	"risk_tolerance": "moderate",
	"e_weight": 3,
	"s_weight": 3,
	"g_weight": 3,
	"controversy_threshold": 3,
	"sectors": ["Technology"]
}`

func doRequest(t *testing.T, handler http.Handler, body string) *httptest.ResponseRecorder {
	t.Helper()

	req := httptest.NewRequest(http.MethodPost, "/api/recommendations", strings.NewReader(body))
	rec := httptest.NewRecorder()
	handler.ServeHTTP(rec, req)
	return rec
}

func TestRecommendationsSuccess(t *testing.T) {
	screener := &fakeScreener{
		candidates: []domain.Candidate{{Ticker: "AAA", Name: "Alpha"}, {Ticker: "BBB", Name: "Beta"}},
	}
	analytics := &fakeAnalytics{
		data: [][]float64{{0.05, 0.6, 0.4, 0.10}},
	}
	handler := newHandler(screener, analytics)

	rec := doRequest(t, handler, validBody)
	assert.Equal(t, http.StatusOK, rec.Code)

	var resp RecommendationsResponse
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))

	assert.True(t, resp.Found)
	require.NotNil(t, resp.Portfolio)
	assert.Equal(t, []string{"AAA", "BBB"}, resp.Portfolio.Tickers)
	assert.NotEmpty(t, resp.Portfolio.ID)
	assert.InDeltaSlice(t, []float64{0.6, 0.4}, resp.Distribution, 1e-9)
}

func TestRecommendationsNoPortfolioIsNotAnError(t *testing.T) {
	screener := &fakeScreener{
		candidates: []domain.Candidate{{Ticker: "AAA"}, {Ticker: "BBB"}},
	}
	analytics := &fakeAnalytics{
		data: [][]float64{{-0.02, 0.6, 0.4, 0.10}},
	}
	handler := newHandler(screener, analytics)

	rec := doRequest(t, handler, validBody)
	assert.Equal(t, http.StatusOK, rec.Code)

	var resp RecommendationsResponse
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))

	assert.False(t, resp.Found)
	assert.Nil(t, resp.Portfolio)
}

func TestRecommendationsMalformedBody(t *testing.T) {
	handler := newHandler(&fakeScreener{}, &fakeAnalytics{})

	rec := doRequest(t, handler, `not json`)
	assert.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestRecommendationsInvalidAnswers(t *testing.T) {
	handler := newHandler(&fakeScreener{}, &fakeAnalytics{})

	rec := doRequest(t, handler, `{
		"risk_tolerance": "extreme",
		"e_weight": 3,
		"s_weight": 3,
		"g_weight": 3,
		"controversy_threshold": 3,
		"sectors": ["Technology"]
	}`)
	assert.Equal(t, http.StatusBadRequest, rec.Code)

	var resp errorResponse
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
	assert.NotEmpty(t, resp.Error)
}

func TestRecommendationsUpstreamFailure(t *testing.T) {
	screener := &fakeScreener{err: errors.New("yahoo unavailable")}
	handler := newHandler(screener, &fakeAnalytics{})

	rec := doRequest(t, handler, validBody)
	assert.Equal(t, http.StatusBadGateway, rec.Code)
}
