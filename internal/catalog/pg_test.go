package catalog

import (
	"context"
	"errors"
	"fmt"
	"testing"

	"github.com/DATA-DOG/go-sqlmock"
)

var diseaseColumns = []string{
	"id", "name", "description", "recommendation",
	"symptoms", "age_prevalence", "blood_type_correlation", "high_incidence_regions",
}

func TestLoadFromDB(t *testing.T) {
	db, mock, err := sqlmock.New()
	if err != nil {
		t.Fatalf("opening sqlmock: %v", err)
	}
	defer db.Close()

	rows := sqlmock.NewRows(diseaseColumns).
		AddRow(1, "Flu", "A viral infection", "Rest and fluids",
			"{fever,cough,fatigue}",
			[]byte(`[{"age_group":"18-40","count":410}]`),
			[]byte(`[{"blood_type":"O","count":250}]`),
			"{zoneA,zoneC}").
		AddRow(2, "Cold", "A mild infection", "Self-care",
			"{cough,sneezing}", nil, nil, "{}")
	mock.ExpectQuery("SELECT id, name, description, recommendation").WillReturnRows(rows)

	store, err := LoadFromDB(context.Background(), db)
	if err != nil {
		t.Fatalf("LoadFromDB failed: %v", err)
	}

	if store.Len() != 2 {
		t.Errorf("Len() = %d, want 2", store.Len())
	}

	flu, ok := store.ByID(1)
	if !ok {
		t.Fatal("ByID(1) not found")
	}
	if len(flu.Symptoms) != 3 {
		t.Errorf("Flu symptoms = %v, want 3 tokens", flu.Symptoms)
	}
	if len(flu.AgePrevalence) != 1 || flu.AgePrevalence[0].AgeGroup != "18-40" || flu.AgePrevalence[0].Count != 410 {
		t.Errorf("Flu age prevalence = %v, want [18-40/410]", flu.AgePrevalence)
	}
	if len(flu.BloodTypeCorrelation) != 1 || flu.BloodTypeCorrelation[0].BloodType != "O" {
		t.Errorf("Flu blood type correlation = %v, want [O/250]", flu.BloodTypeCorrelation)
	}
	if len(flu.HighIncidenceRegions) != 2 {
		t.Errorf("Flu regions = %v, want [zoneA zoneC]", flu.HighIncidenceRegions)
	}

	cold, _ := store.ByID(2)
	if len(cold.AgePrevalence) != 0 || len(cold.HighIncidenceRegions) != 0 {
		t.Errorf("Cold should have empty prevalence/regions, got %v / %v",
			cold.AgePrevalence, cold.HighIncidenceRegions)
	}

	if err := mock.ExpectationsWereMet(); err != nil {
		t.Errorf("unmet sqlmock expectations: %v", err)
	}
}

func TestLoadFromDB_QueryError(t *testing.T) {
	db, mock, err := sqlmock.New()
	if err != nil {
		t.Fatalf("opening sqlmock: %v", err)
	}
	defer db.Close()

	mock.ExpectQuery("SELECT id, name").WillReturnError(fmt.Errorf("connection refused"))

	_, err = LoadFromDB(context.Background(), db)
	if err == nil {
		t.Fatal("LoadFromDB succeeded, want error")
	}
	var loadErr *LoadError
	if !errors.As(err, &loadErr) {
		t.Fatalf("error type = %T, want *LoadError", err)
	}
}

func TestLoadFromDB_DuplicateID(t *testing.T) {
	db, mock, err := sqlmock.New()
	if err != nil {
		t.Fatalf("opening sqlmock: %v", err)
	}
	defer db.Close()

	rows := sqlmock.NewRows(diseaseColumns).
		AddRow(1, "Flu", "", "", "{fever}", nil, nil, "{}").
		AddRow(1, "Cold", "", "", "{cough}", nil, nil, "{}")
	mock.ExpectQuery("SELECT id, name").WillReturnRows(rows)

	_, err = LoadFromDB(context.Background(), db)
	if err == nil {
		t.Fatal("LoadFromDB succeeded with duplicate ids, want error")
	}
}
