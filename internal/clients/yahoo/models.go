package yahoo

import "encoding/json"

// wrappedValue handles Yahoo's habit of serializing numbers either bare or as
// {"raw": n, "fmt": "..."} objects depending on the endpoint and field.
type wrappedValue struct {
	Raw *float64
}

func (w *wrappedValue) UnmarshalJSON(b []byte) error {
	// Try bare number first
	var f float64
	if err := json.Unmarshal(b, &f); err == nil {
		w.Raw = &f
		return nil
	}

	var obj struct {
		Raw *float64 `json:"raw"`
	}
	if err := json.Unmarshal(b, &obj); err != nil {
		return err
	}
	w.Raw = obj.Raw
	return nil
}

// quoteSummaryResponse is the envelope of the v10 quoteSummary endpoint.
type quoteSummaryResponse struct {
	QuoteSummary struct {
		Result []quoteSummaryResult `json:"result"`
		Error  *apiError            `json:"error"`
	} `json:"quoteSummary"`
}

type quoteSummaryResult struct {
	ESGScores    *esgScoresModule    `json:"esgScores"`
	AssetProfile *assetProfileModule `json:"assetProfile"`
}

type esgScoresModule struct {
	EnvironmentScore   wrappedValue `json:"environmentScore"`
	SocialScore        wrappedValue `json:"socialScore"`
	GovernanceScore    wrappedValue `json:"governanceScore"`
	HighestControversy wrappedValue `json:"highestControversy"`
}

type assetProfileModule struct {
	Sector   string `json:"sector"`
	Industry string `json:"industry"`
}

type apiError struct {
	Code        string `json:"code"`
	Description string `json:"description"`
}

// screenerResponse is the envelope of the v1 screener endpoint.
type screenerResponse struct {
	Finance struct {
		Result []struct {
			Quotes []screenerQuote `json:"quotes"`
		} `json:"result"`
		Error *apiError `json:"error"`
	} `json:"finance"`
}

type screenerQuote struct {
	Symbol    string `json:"symbol"`
	ShortName string `json:"shortName"`
}

// Cached record types. These are what actually lands in the clientdata
// tables, so their shape is part of the cache format.

// esgRecord holds the raw (non-inverted) ESG risk scores for one ticker.
// Found=false marks a negative lookup, cached to avoid re-fetching tickers
// without ESG coverage.
type esgRecord struct {
	Found              bool    `json:"found"`
	EnvironmentScore   float64 `json:"environment_score"`
	SocialScore        float64 `json:"social_score"`
	GovernanceScore    float64 `json:"governance_score"`
	HighestControversy float64 `json:"highest_controversy"`
	HasControversy     bool    `json:"has_controversy"`
}

// profileRecord holds the sector assignment for one ticker.
type profileRecord struct {
	Found  bool   `json:"found"`
	Sector string `json:"sector"`
}
