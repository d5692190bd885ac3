package matcher

import (
	"sort"

	"github.com/healthlens/healthlens-be/internal/catalog"
)

// Scoring blend: specificity rewards matching a large fraction of the
// disease's known symptoms, coverage rewards explaining a large fraction of
// what the user reported.
const (
	specificityWeight = 0.6
	coverageWeight    = 0.4
)

// Condition is one ranked candidate produced by matching. Derived per
// request and never persisted.
type Condition struct {
	ID              int      `json:"id"`
	Name            string   `json:"name"`
	Probability     int      `json:"probability"` // 0-100
	Description     string   `json:"description"`
	MatchedSymptoms []string `json:"matched_symptoms"` // sorted ascending
	Recommendation  string   `json:"recommendation"`
}

// Match scores every catalog entry against the normalized symptom set and
// returns candidates ranked by descending probability, ties broken by
// ascending catalog ID. Entries with no token overlap, or whose score
// rounds to 0, are excluded. An empty result means "no match", not an
// error.
func Match(tokens []string, store *catalog.Store) []Condition {
	if len(tokens) == 0 {
		return nil
	}

	var conditions []Condition
	for _, disease := range store.All() {
		vocab := store.VocabularyOf(disease.ID)

		// tokens is sorted, so the overlap comes out sorted too
		var overlap []string
		for _, token := range tokens {
			if vocab[token] {
				overlap = append(overlap, token)
			}
		}
		if len(overlap) == 0 {
			continue
		}

		specificity := float64(len(overlap)) / float64(len(vocab))
		coverage := float64(len(overlap)) / float64(len(tokens))
		blended := specificity*specificityWeight + coverage*coverageWeight

		probability := int(blended*100 + 0.5) // round half up
		if probability <= 0 {
			continue
		}
		if probability > 100 {
			probability = 100
		}

		conditions = append(conditions, Condition{
			ID:              disease.ID,
			Name:            disease.Name,
			Probability:     probability,
			Description:     disease.Description,
			MatchedSymptoms: overlap,
			Recommendation:  disease.Recommendation,
		})
	}

	sort.SliceStable(conditions, func(i, j int) bool {
		if conditions[i].Probability != conditions[j].Probability {
			return conditions[i].Probability > conditions[j].Probability
		}
		return conditions[i].ID < conditions[j].ID
	})

	return conditions
}
