package profile

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/mtahawi/esg-navigator/internal/domain"
)

func validAnswers() SurveyAnswers {
	return SurveyAnswers{
		RiskTolerance:        "moderate",
		EWeight:              3,
		SWeight:              4,
		GWeight:              2,
		ControversyThreshold: 3,
		Sectors:              []string{"Technology", "Healthcare"},
	}
}

func TestSurveyAnswersValid(t *testing.T) {
	answers := validAnswers()
	require.NoError(t, answers.Validate())
}

func TestSurveyAnswersInvalid(t *testing.T) {
	tests := []struct {
		name   string
		mutate func(*SurveyAnswers)
	}{
		{"Missing risk tolerance", func(a *SurveyAnswers) { a.RiskTolerance = "" }},
		{"Unknown risk tolerance", func(a *SurveyAnswers) { a.RiskTolerance = "extreme" }},
		{"E weight too low", func(a *SurveyAnswers) { a.EWeight = 0 }},
		{"S weight too high", func(a *SurveyAnswers) { a.SWeight = 6 }},
		{"G weight negative", func(a *SurveyAnswers) { a.GWeight = -1 }},
		{"Controversy threshold out of range", func(a *SurveyAnswers) { a.ControversyThreshold = 7 }},
		{"No sectors", func(a *SurveyAnswers) { a.Sectors = nil }},
		{"Empty sector list", func(a *SurveyAnswers) { a.Sectors = []string{} }},
		{"Blank sector entry", func(a *SurveyAnswers) { a.Sectors = []string{"Technology", ""} }},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			answers := validAnswers()
			tt.mutate(&answers)

			err := answers.Validate()
			require.Error(t, err)
			assert.IsType(t, domain.InvalidInputError{}, err)
		})
	}
}

func TestSurveyAnswersCaseInsensitiveRisk(t *testing.T) {
	answers := validAnswers()
	answers.RiskTolerance = "MODERATE"
	require.NoError(t, answers.Validate())
}
