package urgency

import (
	"github.com/healthlens/healthlens-be/internal/matcher"
	"github.com/healthlens/healthlens-be/internal/risk"
)

// Level is the urgency tier of an assessment
type Level string

const (
	Low    Level = "low"
	Medium Level = "medium"
	High   Level = "high"
)

// Thresholds are the tunable probability cut-offs for classification
type Thresholds struct {
	HighProb           int // high regardless of risk labels
	HighProbWithRisk   int // high when >= 2 risk labels are elevated
	MediumProb         int // medium regardless of risk labels
	MediumProbWithRisk int // medium when >= 1 risk label is elevated
}

// DefaultThresholds is the configured classification table
var DefaultThresholds = Thresholds{
	HighProb:           70,
	HighProbWithRisk:   50,
	MediumProb:         40,
	MediumProbWithRisk: 25,
}

// Classifier maps ranked conditions and risk labels to an urgency tier
type Classifier struct {
	thresholds Thresholds
}

// NewClassifier creates a classifier with the default thresholds
func NewClassifier() *Classifier {
	return &Classifier{thresholds: DefaultThresholds}
}

// Classify returns the urgency tier for the ranked conditions and risk
// labels. It is deterministic and total: the same inputs always produce the
// same tier, and an empty condition list classifies as Low.
func (c *Classifier) Classify(conditions []matcher.Condition, factors risk.Factors) Level {
	if len(conditions) == 0 {
		return Low
	}

	topProb := conditions[0].Probability
	elevated := factors.ElevatedCount()

	switch {
	case topProb >= c.thresholds.HighProb:
		return High
	case topProb >= c.thresholds.HighProbWithRisk && elevated >= 2:
		return High
	case topProb >= c.thresholds.MediumProb:
		return Medium
	case topProb >= c.thresholds.MediumProbWithRisk && elevated >= 1:
		return Medium
	default:
		return Low
	}
}
