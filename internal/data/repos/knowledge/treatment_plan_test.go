package knowledge

import (
	"context"
	"encoding/json"
	"errors"
	"testing"

	"github.com/medibridge/medibridge-backend/internal/data/repos/testutil"
	types "github.com/medibridge/medibridge-backend/internal/domain"
	apperrors "github.com/medibridge/medibridge-backend/internal/pkg/errors"
	"gorm.io/datatypes"
)

func TestTreatmentPlanRepo(t *testing.T) {
	db := testutil.DB(t)
	ctx := context.Background()
	repo := NewTreatmentPlanRepo(db, testutil.Logger(t))

	created, err := repo.Create(ctx, nil, &types.TreatmentPlan{
		Name:              "Oseltamivir Course",
		Description:       "antiviral regimen for uncomplicated influenza",
		Medications:       datatypes.JSON([]byte(`["oseltamivir 75mg"]`)),
		Procedures:        datatypes.JSON([]byte(`[]`)),
		LifestyleFactors:  datatypes.JSON([]byte(`["rest","hydration"]`)),
		Contraindications: datatypes.JSON([]byte(`["renal impairment"]`)),
	})
	if err != nil {
		t.Fatalf("Create: %v", err)
	}
	testutil.SeedTreatmentPlan(t, ctx, db, "Supportive Care")
	testutil.SeedTreatmentPlan(t, ctx, db, "Antibiotic Course")

	got, err := repo.GetByID(ctx, nil, created.ID)
	if err != nil {
		t.Fatalf("GetByID: %v", err)
	}
	var meds []string
	if err := json.Unmarshal(got.Medications, &meds); err != nil {
		t.Fatalf("unmarshal medications: %v", err)
	}
	if len(meds) != 1 || meds[0] != "oseltamivir 75mg" {
		t.Fatalf("medications did not round trip: %+v", meds)
	}

	missing, err := repo.GetByID(ctx, nil, 999999)
	if err != nil {
		t.Fatalf("GetByID missing: %v", err)
	}
	if missing != nil {
		t.Fatalf("GetByID missing: expected nil, got %+v", missing)
	}

	total, page, err := repo.List(ctx, nil, 1, 2)
	if err != nil {
		t.Fatalf("List: %v", err)
	}
	if total != 3 || len(page) != 2 {
		t.Fatalf("List: expected total 3 page 2, got total %d page %d", total, len(page))
	}
	if _, _, err := repo.List(ctx, nil, 0, maxListLimit+1); !errors.Is(err, apperrors.ErrInvalidArgument) {
		t.Fatalf("List oversized limit: expected ErrInvalidArgument, got %v", err)
	}

	found, err := repo.SearchByName(ctx, nil, "course", 10)
	if err != nil {
		t.Fatalf("SearchByName: %v", err)
	}
	if len(found) != 2 {
		t.Fatalf("SearchByName: expected 2 matches, got %d", len(found))
	}

	updated, err := repo.UpdateFields(ctx, nil, created.ID, map[string]interface{}{
		"description":       "extended antiviral regimen",
		"contraindications": datatypes.JSON([]byte(`["renal impairment","age under 1"]`)),
	})
	if err != nil {
		t.Fatalf("UpdateFields: %v", err)
	}
	if updated.Description != "extended antiviral regimen" {
		t.Fatalf("UpdateFields: description not applied: %+v", updated)
	}
	if updated.Name != "Oseltamivir Course" {
		t.Fatalf("UpdateFields: untouched field changed: %+v", updated)
	}
	var contra []string
	if err := json.Unmarshal(updated.Contraindications, &contra); err != nil {
		t.Fatalf("unmarshal contraindications: %v", err)
	}
	if len(contra) != 2 || contra[1] != "age under 1" {
		t.Fatalf("contraindications did not update: %+v", contra)
	}

	none, err := repo.UpdateFields(ctx, nil, 999999, map[string]interface{}{"name": "x"})
	if err != nil {
		t.Fatalf("UpdateFields missing: %v", err)
	}
	if none != nil {
		t.Fatalf("UpdateFields missing: expected nil, got %+v", none)
	}

	deleted, err := repo.Delete(ctx, nil, created.ID)
	if err != nil || !deleted {
		t.Fatalf("Delete: deleted=%v err=%v", deleted, err)
	}
	deleted, err = repo.Delete(ctx, nil, created.ID)
	if err != nil {
		t.Fatalf("Delete again: %v", err)
	}
	if deleted {
		t.Fatalf("Delete again: expected false")
	}
}
