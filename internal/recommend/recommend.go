package recommend

import (
	"fmt"

	"github.com/healthlens/healthlens-be/internal/matcher"
	"github.com/healthlens/healthlens-be/internal/urgency"
)

// Static guidance per tier. Condition-specific recommendations from the
// catalog are appended after the tier guidance.
var (
	highGuidance   = "Seek medical care as soon as possible. Contact your healthcare provider today or visit an urgent care clinic."
	mediumGuidance = "Schedule a consultation with your healthcare provider within the next few days."
	lowGuidance    = []string{
		"Rest, stay hydrated, and monitor your symptoms at home.",
		"If symptoms persist for more than a few days or worsen, contact your healthcare provider.",
	}
)

// NextSteps maps an urgency tier and the ranked conditions to an ordered
// list of recommended actions. The list is never empty.
func NextSteps(level urgency.Level, conditions []matcher.Condition) []string {
	switch level {
	case urgency.High:
		steps := []string{highGuidance}
		for i, cond := range conditions {
			if i >= 2 {
				break
			}
			if cond.Recommendation != "" {
				steps = append(steps, fmt.Sprintf("%s: %s", cond.Name, cond.Recommendation))
			}
		}
		return steps

	case urgency.Medium:
		steps := []string{mediumGuidance}
		if len(conditions) > 0 && conditions[0].Recommendation != "" {
			steps = append(steps, fmt.Sprintf("%s: %s", conditions[0].Name, conditions[0].Recommendation))
		}
		return steps

	default:
		return lowGuidance
	}
}
