package catalog

import (
	"fmt"
	"strings"
	"sync"
)

// AgeGroupCount records observed prevalence for one age group
type AgeGroupCount struct {
	AgeGroup string `json:"age_group"`
	Count    int    `json:"count"`
}

// BloodTypeCount records observed correlation for one blood type
type BloodTypeCount struct {
	BloodType string `json:"blood_type"`
	Count     int    `json:"count"`
}

// DiseaseInfo is one catalog entry: a known condition with its symptom
// vocabulary and demographic statistics
type DiseaseInfo struct {
	ID                   int              `json:"id"`
	Name                 string           `json:"name"`
	Description          string           `json:"description"`
	Recommendation       string           `json:"recommendation"`
	Symptoms             []string         `json:"symptoms"`
	AgePrevalence        []AgeGroupCount  `json:"age_prevalence"`
	BloodTypeCorrelation []BloodTypeCount `json:"blood_type_correlation"`
	HighIncidenceRegions []string         `json:"regions"`
}

// LoadError indicates the disease dataset could not be loaded. It is fatal
// at startup; the engine must not serve requests from a partial catalog.
type LoadError struct {
	Reason string
	Err    error
}

func (e *LoadError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("disease catalog load failed: %s: %v", e.Reason, e.Err)
	}
	return fmt.Sprintf("disease catalog load failed: %s", e.Reason)
}

func (e *LoadError) Unwrap() error {
	return e.Err
}

// Store is the immutable disease reference catalog. It is built once at
// startup and never mutated afterwards, so concurrent readers need no
// locking.
type Store struct {
	diseases []DiseaseInfo
	byID     map[int]int             // disease ID -> index in diseases
	vocab    map[int]map[string]bool // disease ID -> normalized symptom token set
}

// Load validates dataset records and builds a Store. It fails when the
// dataset is empty, an ID is negative or duplicated, a name is empty or
// duplicated, or an entry has no symptom vocabulary.
func Load(records []DiseaseInfo) (*Store, error) {
	if len(records) == 0 {
		return nil, &LoadError{Reason: "dataset contains no diseases"}
	}

	s := &Store{
		diseases: make([]DiseaseInfo, 0, len(records)),
		byID:     make(map[int]int, len(records)),
		vocab:    make(map[int]map[string]bool, len(records)),
	}
	seenNames := make(map[string]bool, len(records))

	for _, rec := range records {
		if rec.ID < 0 {
			return nil, &LoadError{Reason: fmt.Sprintf("disease %q has negative id %d", rec.Name, rec.ID)}
		}
		if _, dup := s.byID[rec.ID]; dup {
			return nil, &LoadError{Reason: fmt.Sprintf("duplicate disease id %d", rec.ID)}
		}
		name := strings.TrimSpace(rec.Name)
		if name == "" {
			return nil, &LoadError{Reason: fmt.Sprintf("disease id %d has empty name", rec.ID)}
		}
		nameKey := strings.ToLower(name)
		if seenNames[nameKey] {
			return nil, &LoadError{Reason: fmt.Sprintf("duplicate disease name %q", name)}
		}
		seenNames[nameKey] = true

		tokens := make(map[string]bool, len(rec.Symptoms))
		normalized := make([]string, 0, len(rec.Symptoms))
		for _, sym := range rec.Symptoms {
			token := strings.ToLower(strings.TrimSpace(sym))
			if token == "" || tokens[token] {
				continue
			}
			tokens[token] = true
			normalized = append(normalized, token)
		}
		if len(tokens) == 0 {
			return nil, &LoadError{Reason: fmt.Sprintf("disease %q has no symptom vocabulary", name)}
		}

		rec.Name = name
		rec.Symptoms = normalized
		s.byID[rec.ID] = len(s.diseases)
		s.vocab[rec.ID] = tokens
		s.diseases = append(s.diseases, rec)
	}

	return s, nil
}

// All returns every catalog entry in dataset order. The returned slice is
// shared and must not be modified.
func (s *Store) All() []DiseaseInfo {
	return s.diseases
}

// ByID looks up a catalog entry by its disease ID
func (s *Store) ByID(id int) (DiseaseInfo, bool) {
	idx, ok := s.byID[id]
	if !ok {
		return DiseaseInfo{}, false
	}
	return s.diseases[idx], true
}

// VocabularyOf returns the precomputed symptom token set for a disease ID.
// The returned map is shared and must not be modified.
func (s *Store) VocabularyOf(id int) map[string]bool {
	return s.vocab[id]
}

// Len returns the number of catalog entries
func (s *Store) Len() int {
	return len(s.diseases)
}

var (
	initOnce  sync.Once
	initStore *Store
	initErr   error
)

// Init coalesces concurrent first loads into exactly one call of load.
// Every caller observes the same Store (or the same load failure); a failed
// load is not retried for the process lifetime.
func Init(load func() (*Store, error)) (*Store, error) {
	initOnce.Do(func() {
		initStore, initErr = load()
	})
	return initStore, initErr
}
