package knowledge

import (
	"context"
	"errors"
	"testing"

	"github.com/medibridge/medibridge-backend/internal/data/repos/testutil"
	types "github.com/medibridge/medibridge-backend/internal/domain"
	apperrors "github.com/medibridge/medibridge-backend/internal/pkg/errors"
)

func TestConditionRepo(t *testing.T) {
	db := testutil.DB(t)
	ctx := context.Background()
	repo := NewConditionRepo(db, testutil.Logger(t))

	influenza := testutil.SeedCondition(t, ctx, db, "Influenza")
	testutil.SeedCondition(t, ctx, db, "Pneumonia")
	testutil.SeedCondition(t, ctx, db, "Bronchitis")

	got, err := repo.GetByID(ctx, nil, influenza.ID)
	if err != nil {
		t.Fatalf("GetByID: %v", err)
	}
	if got == nil || got.Name != "Influenza" {
		t.Fatalf("GetByID: expected Influenza, got %+v", got)
	}

	// Absent rows resolve to nil without an error.
	missing, err := repo.GetByID(ctx, nil, 999999)
	if err != nil {
		t.Fatalf("GetByID missing: %v", err)
	}
	if missing != nil {
		t.Fatalf("GetByID missing: expected nil, got %+v", missing)
	}

	total, page, err := repo.List(ctx, nil, 0, 2)
	if err != nil {
		t.Fatalf("List: %v", err)
	}
	if total != 3 || len(page) != 2 {
		t.Fatalf("List: expected total=3 len=2, got total=%d len=%d", total, len(page))
	}
	if page[0].ID >= page[1].ID {
		t.Fatalf("List: expected ascending id order, got %d then %d", page[0].ID, page[1].ID)
	}

	total, rest, err := repo.List(ctx, nil, 2, 2)
	if err != nil {
		t.Fatalf("List page 2: %v", err)
	}
	if total != 3 || len(rest) != 1 {
		t.Fatalf("List page 2: expected total=3 len=1, got total=%d len=%d", total, len(rest))
	}

	if _, _, err := repo.List(ctx, nil, -1, 10); !errors.Is(err, apperrors.ErrInvalidArgument) {
		t.Fatalf("List negative skip: expected ErrInvalidArgument, got %v", err)
	}
	if _, _, err := repo.List(ctx, nil, 0, 0); !errors.Is(err, apperrors.ErrInvalidArgument) {
		t.Fatalf("List zero limit: expected ErrInvalidArgument, got %v", err)
	}
	if _, _, err := repo.List(ctx, nil, 0, maxListLimit+1); !errors.Is(err, apperrors.ErrInvalidArgument) {
		t.Fatalf("List oversized limit: expected ErrInvalidArgument, got %v", err)
	}

	found, err := repo.SearchByName(ctx, nil, "flu", 10)
	if err != nil {
		t.Fatalf("SearchByName: %v", err)
	}
	if len(found) != 1 || found[0].Name != "Influenza" {
		t.Fatalf("SearchByName: expected [Influenza], got %+v", found)
	}

	empty, err := repo.SearchByName(ctx, nil, "  ", 10)
	if err != nil {
		t.Fatalf("SearchByName blank: %v", err)
	}
	if len(empty) != 0 {
		t.Fatalf("SearchByName blank: expected no rows, got %d", len(empty))
	}

	updated, err := repo.UpdateFields(ctx, nil, influenza.ID, map[string]interface{}{"summary": "seasonal viral infection"})
	if err != nil {
		t.Fatalf("UpdateFields: %v", err)
	}
	if updated.Summary != "seasonal viral infection" {
		t.Fatalf("UpdateFields: summary not applied: %+v", updated)
	}
	if updated.Name != "Influenza" || updated.Description != influenza.Description {
		t.Fatalf("UpdateFields: untouched fields changed: %+v", updated)
	}

	ghost, err := repo.UpdateFields(ctx, nil, 999999, map[string]interface{}{"summary": "x"})
	if err != nil {
		t.Fatalf("UpdateFields missing: %v", err)
	}
	if ghost != nil {
		t.Fatalf("UpdateFields missing: expected nil, got %+v", ghost)
	}

	deleted, err := repo.Delete(ctx, nil, influenza.ID)
	if err != nil {
		t.Fatalf("Delete: %v", err)
	}
	if !deleted {
		t.Fatalf("Delete: expected true")
	}
	deleted, err = repo.Delete(ctx, nil, influenza.ID)
	if err != nil {
		t.Fatalf("Delete again: %v", err)
	}
	if deleted {
		t.Fatalf("Delete again: expected false")
	}
}

func TestConditionRepoCallerTransaction(t *testing.T) {
	db := testutil.DB(t)
	ctx := context.Background()
	repo := NewConditionRepo(db, testutil.Logger(t))

	tx := testutil.Tx(t, db)
	created, err := repo.Create(ctx, tx, &types.Condition{
		Name:        "Appendicitis",
		Description: "inflammation of the appendix",
	})
	if err != nil {
		t.Fatalf("Create in tx: %v", err)
	}

	// Visible through the transaction it was written in.
	got, err := repo.GetByID(ctx, tx, created.ID)
	if err != nil || got == nil {
		t.Fatalf("GetByID in tx: got=%v err=%v", got, err)
	}

	// Not visible outside until the transaction commits.
	outside, err := repo.GetByID(ctx, nil, created.ID)
	if err != nil {
		t.Fatalf("GetByID outside tx: %v", err)
	}
	if outside != nil {
		t.Fatalf("GetByID outside tx: expected nil before commit, got %+v", outside)
	}
}
