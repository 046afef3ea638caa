package taxonomy

import (
	"context"
	"testing"

	"github.com/medibridge/medibridge-backend/internal/data/repos/testutil"
)

func TestSymptomRepoGetWithDiseases(t *testing.T) {
	db := testutil.DB(t)
	ctx := context.Background()
	repo := NewSymptomRepo(db, testutil.Logger(t))
	assocRepo := NewDiseaseSymptomAssociationRepo(db, testutil.Logger(t))

	fever := testutil.SeedSymptom(t, ctx, db, "C0015967", "Fever")
	flu := testutil.SeedDisease(t, ctx, db, "C0021400", "Influenza")
	pneumonia := testutil.SeedDisease(t, ctx, db, "C0032285", "Pneumonia")

	if _, err := assocRepo.Add(ctx, nil, flu.ID, fever.ID, "sympgan"); err != nil {
		t.Fatalf("Add flu: %v", err)
	}
	if _, err := assocRepo.Add(ctx, nil, pneumonia.ID, fever.ID, "sympgan"); err != nil {
		t.Fatalf("Add pneumonia: %v", err)
	}

	got, err := repo.GetWithDiseases(ctx, nil, fever.ID)
	if err != nil {
		t.Fatalf("GetWithDiseases: %v", err)
	}
	if len(got.DiseaseAssociations) != 2 {
		t.Fatalf("expected 2 associations, got %d", len(got.DiseaseAssociations))
	}
	for _, a := range got.DiseaseAssociations {
		if a.Disease == nil {
			t.Fatalf("nested disease not loaded: %+v", a)
		}
	}
}
