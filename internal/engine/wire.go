package engine

import (
	"github.com/healthlens/healthlens-be/internal/matcher"
	"github.com/healthlens/healthlens-be/internal/risk"
	"github.com/healthlens/healthlens-be/internal/urgency"
)

// APICondition is one ranked condition in the external wire shape
type APICondition struct {
	Condition       string   `json:"condition"`
	Confidence      int      `json:"confidence"`
	MatchedSymptoms []string `json:"matched_symptoms"`
}

// APIRiskFactors is the wire shape of the derived risk labels
type APIRiskFactors struct {
	Age     string `json:"age"`
	Region  string `json:"region"`
	History string `json:"history"`
}

// APIResponse is the external wire shape produced for the presentation
// layer. Urgency and next steps use the same literal strings as the
// internal values.
type APIResponse struct {
	Results         []APICondition `json:"results"`
	UserRiskFactors APIRiskFactors `json:"user_risk_factors"`
	Urgency         string         `json:"urgency"`
	NextSteps       []string       `json:"next_steps"`
}

// ToAPI maps an analysis result to the external wire shape. Matched
// symptom lists are already sorted, so identical results map to identical
// responses.
func ToAPI(result *AnalysisResult) APIResponse {
	results := make([]APICondition, 0, len(result.PossibleConditions))
	for _, cond := range result.PossibleConditions {
		results = append(results, APICondition{
			Condition:       cond.Name,
			Confidence:      cond.Probability,
			MatchedSymptoms: cond.MatchedSymptoms,
		})
	}

	return APIResponse{
		Results: results,
		UserRiskFactors: APIRiskFactors{
			Age:     result.RiskFactors.Age,
			Region:  result.RiskFactors.Region,
			History: result.RiskFactors.MedicalHistory,
		},
		Urgency:   string(result.Urgency),
		NextSteps: result.NextSteps,
	}
}

// FromAPI maps a wire response back to an analysis result. Catalog-sourced
// fields that the wire shape does not carry (description, recommendation,
// catalog id) are left zero.
func FromAPI(resp APIResponse) *AnalysisResult {
	conditions := make([]matcher.Condition, 0, len(resp.Results))
	for _, r := range resp.Results {
		conditions = append(conditions, matcher.Condition{
			Name:            r.Condition,
			Probability:     r.Confidence,
			MatchedSymptoms: r.MatchedSymptoms,
		})
	}

	return &AnalysisResult{
		PossibleConditions: conditions,
		RiskFactors: risk.Factors{
			Age:            resp.UserRiskFactors.Age,
			Region:         resp.UserRiskFactors.Region,
			MedicalHistory: resp.UserRiskFactors.History,
		},
		Urgency:   urgency.Level(resp.Urgency),
		NextSteps: resp.NextSteps,
	}
}
