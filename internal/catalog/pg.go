package catalog

import (
	"context"
	"database/sql"
	"encoding/json"

	"github.com/lib/pq"
)

// diseaseQuery reads the full catalog in dataset order. symptoms and
// high_incidence_regions are text[] columns; the prevalence columns hold
// JSON documents.
const diseaseQuery = `
	SELECT id, name, description, recommendation,
	       symptoms, age_prevalence, blood_type_correlation, high_incidence_regions
	FROM diseases
	ORDER BY id`

// LoadFromDB reads the disease dataset from a Postgres database and builds
// a Store. The connection is only used during the load; the Store holds no
// reference to it afterwards.
func LoadFromDB(ctx context.Context, db *sql.DB) (*Store, error) {
	rows, err := db.QueryContext(ctx, diseaseQuery)
	if err != nil {
		return nil, &LoadError{Reason: "querying diseases table", Err: err}
	}
	defer rows.Close()

	var records []DiseaseInfo
	for rows.Next() {
		var (
			rec          DiseaseInfo
			symptoms     pq.StringArray
			regions      pq.StringArray
			agePrevRaw   []byte
			bloodTypeRaw []byte
		)
		if err := rows.Scan(
			&rec.ID, &rec.Name, &rec.Description, &rec.Recommendation,
			&symptoms, &agePrevRaw, &bloodTypeRaw, &regions,
		); err != nil {
			return nil, &LoadError{Reason: "scanning disease row", Err: err}
		}

		if len(agePrevRaw) > 0 {
			if err := json.Unmarshal(agePrevRaw, &rec.AgePrevalence); err != nil {
				return nil, &LoadError{Reason: "parsing age_prevalence column", Err: err}
			}
		}
		if len(bloodTypeRaw) > 0 {
			if err := json.Unmarshal(bloodTypeRaw, &rec.BloodTypeCorrelation); err != nil {
				return nil, &LoadError{Reason: "parsing blood_type_correlation column", Err: err}
			}
		}

		rec.Symptoms = []string(symptoms)
		rec.HighIncidenceRegions = []string(regions)
		records = append(records, rec)
	}
	if err := rows.Err(); err != nil {
		return nil, &LoadError{Reason: "iterating disease rows", Err: err}
	}

	return Load(records)
}
