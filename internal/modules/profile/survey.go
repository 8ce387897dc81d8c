// Package profile holds the investor preference model and the mappings that
// turn qualitative survey answers into numeric thresholds.
package profile

import (
	"github.com/go-playground/validator/v10"

	"github.com/mtahawi/esg-navigator/internal/domain"
)

// validate is shared across requests; the validator is safe for concurrent use.
var validate = validator.New()

// SurveyAnswers is the closed set of investor preferences consumed by the
// recommendation engine. The survey has a fixed shape: each field is one known
// question, validated here at the input boundary rather than looked up by key
// at use sites.
type SurveyAnswers struct {
	// RiskTolerance is one of low/moderate/high, case-insensitive.
	RiskTolerance string `json:"risk_tolerance" validate:"required"`

	// EWeight/SWeight/GWeight are 1-5 survey answers weighting the three
	// ESG pillars in the preference score.
	EWeight int `json:"e_weight" validate:"min=1,max=5"`
	SWeight int `json:"s_weight" validate:"min=1,max=5"`
	GWeight int `json:"g_weight" validate:"min=1,max=5"`

	// ControversyThreshold is the 1-5 answer mapped to an accepted
	// controversy count by AcceptedControversyCount.
	ControversyThreshold int `json:"controversy_threshold" validate:"min=1,max=5"`

	// Sectors are the preferred sectors; the screener query is malformed
	// without at least one.
	Sectors []string `json:"sectors" validate:"required,min=1,dive,required"`
}

// Validate checks the answers at the input boundary. Failures are reported as
// InvalidInputError since they describe malformed caller input.
func (s *SurveyAnswers) Validate() error {
	if err := validate.Struct(s); err != nil {
		if errs, ok := err.(validator.ValidationErrors); ok && len(errs) > 0 {
			first := errs[0]
			return domain.NewInvalidInput("invalid survey answers: field %s failed %s validation", first.Field(), first.Tag())
		}
		return domain.NewInvalidInput("invalid survey answers: %v", err)
	}

	// The risk string is validated by the mapper so the error message can
	// name the accepted options.
	if _, err := RiskCeiling(s.RiskTolerance); err != nil {
		return err
	}
	if _, err := AcceptedControversyCount(s.ControversyThreshold); err != nil {
		return err
	}

	return nil
}
