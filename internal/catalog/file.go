package catalog

import (
	"encoding/json"
	"os"
)

// LoadFromFile reads a JSON disease dataset from disk and builds a Store.
// The file holds an array of DiseaseInfo records.
func LoadFromFile(path string) (*Store, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, &LoadError{Reason: "reading dataset file", Err: err}
	}

	var records []DiseaseInfo
	if err := json.Unmarshal(data, &records); err != nil {
		return nil, &LoadError{Reason: "parsing dataset file", Err: err}
	}

	return Load(records)
}
