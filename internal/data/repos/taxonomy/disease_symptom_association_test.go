package taxonomy

import (
	"context"
	"errors"
	"testing"

	"github.com/medibridge/medibridge-backend/internal/data/repos/testutil"
	types "github.com/medibridge/medibridge-backend/internal/domain"
	apperrors "github.com/medibridge/medibridge-backend/internal/pkg/errors"
)

func TestDiseaseSymptomAssociationRepo(t *testing.T) {
	db := testutil.DB(t)
	ctx := context.Background()
	repo := NewDiseaseSymptomAssociationRepo(db, testutil.Logger(t))

	flu := testutil.SeedDisease(t, ctx, db, "C0021400", "Influenza")
	fever := testutil.SeedSymptom(t, ctx, db, "C0015967", "Fever")
	cough := testutil.SeedSymptom(t, ctx, db, "C0010200", "Cough")

	first, err := repo.Add(ctx, nil, flu.ID, fever.ID, "sympgan")
	if err != nil {
		t.Fatalf("Add: %v", err)
	}

	// Re-adding the pair hands back the stored row instead of failing, so
	// dataset imports can be re-run.
	again, err := repo.Add(ctx, nil, flu.ID, fever.ID, "sympgan")
	if err != nil {
		t.Fatalf("Add again: %v", err)
	}
	if again.ID != first.ID {
		t.Fatalf("Add again: expected same row %d, got %d", first.ID, again.ID)
	}
	var pairCount int64
	if err := db.WithContext(ctx).
		Model(&types.DiseaseSymptomAssociation{}).
		Where("disease_id = ? AND symptom_id = ?", flu.ID, fever.ID).
		Count(&pairCount).Error; err != nil {
		t.Fatalf("count pair: %v", err)
	}
	if pairCount != 1 {
		t.Fatalf("expected a single stored pair, got %d", pairCount)
	}

	if _, err := repo.Add(ctx, nil, 999999, fever.ID, ""); !errors.Is(err, apperrors.ErrNotFound) {
		t.Fatalf("Add missing disease: expected ErrNotFound, got %v", err)
	}
	if _, err := repo.Add(ctx, nil, flu.ID, 999999, ""); !errors.Is(err, apperrors.ErrNotFound) {
		t.Fatalf("Add missing symptom: expected ErrNotFound, got %v", err)
	}

	if _, err := repo.Add(ctx, nil, flu.ID, cough.ID, "sympgan"); err != nil {
		t.Fatalf("Add cough: %v", err)
	}

	symptoms, err := repo.ListSymptomsByDisease(ctx, nil, flu.ID)
	if err != nil {
		t.Fatalf("ListSymptomsByDisease: %v", err)
	}
	if len(symptoms) != 2 {
		t.Fatalf("ListSymptomsByDisease: expected 2, got %d", len(symptoms))
	}
	if symptoms[0].ID >= symptoms[1].ID {
		t.Fatalf("ListSymptomsByDisease: expected ascending id order")
	}

	diseases, err := repo.ListDiseasesBySymptom(ctx, nil, fever.ID)
	if err != nil {
		t.Fatalf("ListDiseasesBySymptom: %v", err)
	}
	if len(diseases) != 1 || diseases[0].ID != flu.ID {
		t.Fatalf("ListDiseasesBySymptom: expected [%d], got %+v", flu.ID, diseases)
	}

	removed, err := repo.Remove(ctx, nil, first.ID)
	if err != nil || !removed {
		t.Fatalf("Remove: removed=%v err=%v", removed, err)
	}
	removed, err = repo.Remove(ctx, nil, first.ID)
	if err != nil {
		t.Fatalf("Remove again: %v", err)
	}
	if removed {
		t.Fatalf("Remove again: expected false")
	}

	// Deleting the disease cascades its remaining associations.
	diseaseRepo := NewDiseaseRepo(db, testutil.Logger(t))
	if _, err := diseaseRepo.Delete(ctx, nil, flu.ID); err != nil {
		t.Fatalf("delete disease: %v", err)
	}
	var left int64
	if err := db.WithContext(ctx).
		Model(&types.DiseaseSymptomAssociation{}).
		Count(&left).Error; err != nil {
		t.Fatalf("count associations: %v", err)
	}
	if left != 0 {
		t.Fatalf("expected cascade to clear associations, found %d", left)
	}

	symptomRepo := NewSymptomRepo(db, testutil.Logger(t))
	if got, err := symptomRepo.GetByID(ctx, nil, fever.ID); err != nil || got == nil {
		t.Fatalf("symptom should survive disease cascade: got=%v err=%v", got, err)
	}

	// Deleting a symptom cascades from the other side of the junction too.
	measles := testutil.SeedDisease(t, ctx, db, "C0025007", "Measles")
	if _, err := repo.Add(ctx, nil, measles.ID, fever.ID, "sympgan"); err != nil {
		t.Fatalf("Add measles/fever: %v", err)
	}
	if removed, err := symptomRepo.Delete(ctx, nil, fever.ID); err != nil || !removed {
		t.Fatalf("delete symptom: removed=%v err=%v", removed, err)
	}
	if err := db.WithContext(ctx).
		Model(&types.DiseaseSymptomAssociation{}).
		Count(&left).Error; err != nil {
		t.Fatalf("count associations after symptom delete: %v", err)
	}
	if left != 0 {
		t.Fatalf("expected symptom cascade to clear associations, found %d", left)
	}
	if got, err := diseaseRepo.GetByID(ctx, nil, measles.ID); err != nil || got == nil {
		t.Fatalf("disease should survive symptom cascade: got=%v err=%v", got, err)
	}
}
