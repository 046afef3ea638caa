package taxonomy

import (
	"context"
	"errors"
	"testing"

	"github.com/medibridge/medibridge-backend/internal/data/repos/testutil"
	types "github.com/medibridge/medibridge-backend/internal/domain"
	apperrors "github.com/medibridge/medibridge-backend/internal/pkg/errors"
)

func TestDiseaseRepo(t *testing.T) {
	db := testutil.DB(t)
	ctx := context.Background()
	repo := NewDiseaseRepo(db, testutil.Logger(t))

	flu, err := repo.Create(ctx, nil, &types.Disease{
		CUI:        "C0021400",
		Name:       "Influenza",
		Definition: "acute respiratory infection",
	})
	if err != nil {
		t.Fatalf("Create: %v", err)
	}

	// CUI is the dataset identity; a second row with the same code is rejected.
	if _, err := repo.Create(ctx, nil, &types.Disease{
		CUI:  "C0021400",
		Name: "Influenza (duplicate)",
	}); !errors.Is(err, apperrors.ErrDuplicate) {
		t.Fatalf("Create duplicate CUI: expected ErrDuplicate, got %v", err)
	}

	byCUI, err := repo.GetByCUI(ctx, nil, "C0021400")
	if err != nil {
		t.Fatalf("GetByCUI: %v", err)
	}
	if byCUI == nil || byCUI.ID != flu.ID {
		t.Fatalf("GetByCUI: expected %d, got %+v", flu.ID, byCUI)
	}

	missing, err := repo.GetByCUI(ctx, nil, "C9999999")
	if err != nil {
		t.Fatalf("GetByCUI missing: %v", err)
	}
	if missing != nil {
		t.Fatalf("GetByCUI missing: expected nil, got %+v", missing)
	}

	if _, err := repo.Create(ctx, nil, &types.Disease{CUI: "C0032285", Name: "Pneumonia"}); err != nil {
		t.Fatalf("Create second: %v", err)
	}

	total, page, err := repo.List(ctx, nil, 0, 500)
	if err != nil {
		t.Fatalf("List: %v", err)
	}
	if total != 2 || len(page) != 2 {
		t.Fatalf("List: expected total=2 len=2, got total=%d len=%d", total, len(page))
	}
	if _, _, err := repo.List(ctx, nil, 0, maxListLimit+1); !errors.Is(err, apperrors.ErrInvalidArgument) {
		t.Fatalf("List oversized limit: expected ErrInvalidArgument, got %v", err)
	}

	found, err := repo.SearchByName(ctx, nil, "flu", 10)
	if err != nil {
		t.Fatalf("SearchByName: %v", err)
	}
	if len(found) != 1 || found[0].ID != flu.ID {
		t.Fatalf("SearchByName: expected [Influenza], got %+v", found)
	}

	updated, err := repo.UpdateFields(ctx, nil, flu.ID, map[string]interface{}{"alias": "Flu|Grippe"})
	if err != nil {
		t.Fatalf("UpdateFields: %v", err)
	}
	if updated.Alias != "Flu|Grippe" || updated.Name != "Influenza" {
		t.Fatalf("UpdateFields: %+v", updated)
	}

	deleted, err := repo.Delete(ctx, nil, flu.ID)
	if err != nil || !deleted {
		t.Fatalf("Delete: deleted=%v err=%v", deleted, err)
	}
}
