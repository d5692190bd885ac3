package risk

import (
	"sort"
	"strings"

	"github.com/healthlens/healthlens-be/internal/catalog"
	"github.com/healthlens/healthlens-be/internal/matcher"
)

// Qualitative risk labels
const (
	LabelLow      = "low"
	LabelAverage  = "average"
	LabelElevated = "elevated"
)

// Profile is the demographic context supplied with an analysis request
type Profile struct {
	Age                  int
	Region               string
	HasChronicConditions bool
}

// Factors holds the derived qualitative risk labels for one request
type Factors struct {
	Age            string `json:"age"`
	Region         string `json:"region"`
	MedicalHistory string `json:"medical_history"`
}

// AgeBand is one configured age bucket. Min and Max are inclusive.
type AgeBand struct {
	Label string
	Min   int
	Max   int
}

// DefaultAgeBands is the configured age banding. Labels match the
// age_group labels used by the disease dataset's prevalence records.
var DefaultAgeBands = []AgeBand{
	{Label: "0-17", Min: 0, Max: 17},
	{Label: "18-40", Min: 18, Max: 40},
	{Label: "41-65", Min: 41, Max: 65},
	{Label: "65+", Min: 66, Max: 130},
}

// Assessor derives risk factor labels from a user profile and the catalog's
// prevalence data. Assessment is pure: all inputs are already materialized.
type Assessor struct {
	bands []AgeBand
}

// NewAssessor creates an assessor with the default age banding
func NewAssessor() *Assessor {
	return &Assessor{bands: DefaultAgeBands}
}

// Assess derives the age, region and medical-history labels for a request.
// The age label compares the user's band against the median prevalence of
// all bands, summed across the top conditions. The region label checks the
// top conditions' high-incidence region lists.
func (a *Assessor) Assess(profile Profile, top []matcher.Condition, store *catalog.Store) Factors {
	return Factors{
		Age:            a.ageLabel(profile.Age, top, store),
		Region:         a.regionLabel(profile.Region, top, store),
		MedicalHistory: a.historyLabel(profile.HasChronicConditions),
	}
}

func (a *Assessor) ageLabel(age int, top []matcher.Condition, store *catalog.Store) string {
	userBand := a.bandFor(age)
	if userBand == "" {
		return LabelAverage
	}

	// Sum prevalence per band across the top conditions
	sums := make(map[string]int, len(a.bands))
	for _, band := range a.bands {
		sums[band.Label] = 0
	}
	for _, cond := range top {
		disease, ok := store.ByID(cond.ID)
		if !ok {
			continue
		}
		for _, prev := range disease.AgePrevalence {
			if _, known := sums[prev.AgeGroup]; known {
				sums[prev.AgeGroup] += prev.Count
			}
		}
	}

	userSum := sums[userBand]
	if userSum == 0 {
		return LabelLow
	}
	if userSum > medianOf(sums) {
		return LabelElevated
	}
	return LabelAverage
}

func (a *Assessor) regionLabel(region string, top []matcher.Condition, store *catalog.Store) string {
	for _, cond := range top {
		disease, ok := store.ByID(cond.ID)
		if !ok {
			continue
		}
		for _, hot := range disease.HighIncidenceRegions {
			if strings.EqualFold(hot, region) {
				return LabelElevated
			}
		}
	}
	return LabelAverage
}

func (a *Assessor) historyLabel(hasChronicConditions bool) string {
	if hasChronicConditions {
		return LabelElevated
	}
	return LabelAverage
}

// bandFor returns the label of the band containing age, or "" if none does
func (a *Assessor) bandFor(age int) string {
	for _, band := range a.bands {
		if age >= band.Min && age <= band.Max {
			return band.Label
		}
	}
	return ""
}

// medianOf returns the median of the band sums (average of the two middle
// values when the count is even)
func medianOf(sums map[string]int) int {
	values := make([]int, 0, len(sums))
	for _, v := range sums {
		values = append(values, v)
	}
	sort.Ints(values)

	n := len(values)
	if n == 0 {
		return 0
	}
	if n%2 == 1 {
		return values[n/2]
	}
	return (values[n/2-1] + values[n/2]) / 2
}

// ElevatedCount returns how many of the three labels are "elevated"
func (f Factors) ElevatedCount() int {
	count := 0
	for _, label := range []string{f.Age, f.Region, f.MedicalHistory} {
		if label == LabelElevated {
			count++
		}
	}
	return count
}
