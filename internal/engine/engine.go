package engine

import (
	"errors"
	"fmt"
	"strings"

	"github.com/healthlens/healthlens-be/internal/catalog"
	"github.com/healthlens/healthlens-be/internal/matcher"
	"github.com/healthlens/healthlens-be/internal/normalizer"
	"github.com/healthlens/healthlens-be/internal/recommend"
	"github.com/healthlens/healthlens-be/internal/risk"
	"github.com/healthlens/healthlens-be/internal/urgency"
)

// ErrEmptyInput is returned when the symptom text yields no usable tokens
var ErrEmptyInput = normalizer.ErrEmptyInput

// ErrInvalidProfile is returned when the user info is malformed
var ErrInvalidProfile = errors.New("invalid user profile")

// topConditionLimit is how many ranked conditions feed risk assessment,
// urgency classification and recommendations
const topConditionLimit = 3

// UserInfo is the demographic context of an analysis request
type UserInfo struct {
	Age                  int    `json:"age"`
	Region               string `json:"region"`
	HasChronicConditions bool   `json:"has_chronic_conditions"`
}

// AnalysisRequest is one symptom analysis invocation. Immutable once created.
type AnalysisRequest struct {
	Symptoms string   `json:"symptoms" binding:"required"`
	UserInfo UserInfo `json:"user_info"`
}

// AnalysisResult is the engine's composed assessment for one request
type AnalysisResult struct {
	PossibleConditions []matcher.Condition `json:"possible_conditions"`
	RiskFactors        risk.Factors        `json:"risk_factors"`
	Urgency            urgency.Level       `json:"urgency"`
	NextSteps          []string            `json:"next_steps"`
}

// Engine runs the symptom analysis pipeline. All per-request state is
// local; the catalog store is read-only, so one Engine serves concurrent
// requests without locking.
type Engine struct {
	store      *catalog.Store
	normalizer *normalizer.Normalizer
	assessor   *risk.Assessor
	classifier *urgency.Classifier
}

// New creates an engine over a loaded catalog store
func New(store *catalog.Store) *Engine {
	return &Engine{
		store:      store,
		normalizer: normalizer.NewNormalizer(),
		assessor:   risk.NewAssessor(),
		classifier: urgency.NewClassifier(),
	}
}

// Analyze validates the request and runs the full pipeline:
// normalize -> match -> assess risk -> classify urgency -> recommend.
// No-match input is not an error: it produces an empty condition list with
// low urgency and generic guidance.
func (e *Engine) Analyze(req AnalysisRequest) (*AnalysisResult, error) {
	if err := validateProfile(req.UserInfo); err != nil {
		return nil, err
	}

	tokens, err := e.normalizer.Normalize(req.Symptoms)
	if err != nil {
		return nil, err
	}

	conditions := matcher.Match(tokens, e.store)

	top := conditions
	if len(top) > topConditionLimit {
		top = top[:topConditionLimit]
	}

	profile := risk.Profile{
		Age:                  req.UserInfo.Age,
		Region:               req.UserInfo.Region,
		HasChronicConditions: req.UserInfo.HasChronicConditions,
	}
	factors := e.assessor.Assess(profile, top, e.store)
	level := e.classifier.Classify(top, factors)
	steps := recommend.NextSteps(level, top)

	return &AnalysisResult{
		PossibleConditions: conditions,
		RiskFactors:        factors,
		Urgency:            level,
		NextSteps:          steps,
	}, nil
}

// validateProfile rejects malformed user info before the pipeline runs
func validateProfile(info UserInfo) error {
	if info.Age < 0 {
		return fmt.Errorf("%w: age must be non-negative", ErrInvalidProfile)
	}
	if strings.TrimSpace(info.Region) == "" {
		return fmt.Errorf("%w: region is required", ErrInvalidProfile)
	}
	return nil
}
