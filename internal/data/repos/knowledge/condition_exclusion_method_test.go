package knowledge

import (
	"context"
	"errors"
	"testing"

	"github.com/medibridge/medibridge-backend/internal/data/repos/testutil"
	types "github.com/medibridge/medibridge-backend/internal/domain"
	apperrors "github.com/medibridge/medibridge-backend/internal/pkg/errors"
)

func TestConditionExclusionMethodRepo(t *testing.T) {
	db := testutil.DB(t)
	ctx := context.Background()
	repo := NewConditionExclusionMethodRepo(db, testutil.Logger(t))

	cond := testutil.SeedCondition(t, ctx, db, "Migraine")
	other := testutil.SeedCondition(t, ctx, db, "Tension Headache")
	mri := testutil.SeedExclusionMethod(t, ctx, db, "MRI Scan")
	bloodwork := testutil.SeedExclusionMethod(t, ctx, db, "Blood Panel")

	link, err := repo.Add(ctx, nil, cond.ID, mri.ID)
	if err != nil {
		t.Fatalf("Add: %v", err)
	}
	if link.ConditionID != cond.ID || link.ExclusionMethodID != mri.ID {
		t.Fatalf("Add: wrong endpoints: %+v", link)
	}

	// The same pair is rejected rather than duplicated.
	if _, err := repo.Add(ctx, nil, cond.ID, mri.ID); !errors.Is(err, apperrors.ErrDuplicate) {
		t.Fatalf("Add duplicate: expected ErrDuplicate, got %v", err)
	}

	if _, err := repo.Add(ctx, nil, 999999, mri.ID); !errors.Is(err, apperrors.ErrNotFound) {
		t.Fatalf("Add missing condition: expected ErrNotFound, got %v", err)
	}
	if _, err := repo.Add(ctx, nil, cond.ID, 999999); !errors.Is(err, apperrors.ErrNotFound) {
		t.Fatalf("Add missing method: expected ErrNotFound, got %v", err)
	}

	if _, err := repo.Add(ctx, nil, cond.ID, bloodwork.ID); err != nil {
		t.Fatalf("Add second method: %v", err)
	}
	if _, err := repo.Add(ctx, nil, other.ID, mri.ID); err != nil {
		t.Fatalf("Add other condition: %v", err)
	}

	methods, err := repo.ListMethodsByCondition(ctx, nil, cond.ID)
	if err != nil {
		t.Fatalf("ListMethodsByCondition: %v", err)
	}
	if len(methods) != 2 {
		t.Fatalf("ListMethodsByCondition: expected 2, got %d", len(methods))
	}
	if methods[0].ID >= methods[1].ID {
		t.Fatalf("ListMethodsByCondition: expected ascending id order")
	}

	conditions, err := repo.ListConditionsByMethod(ctx, nil, mri.ID)
	if err != nil {
		t.Fatalf("ListConditionsByMethod: %v", err)
	}
	if len(conditions) != 2 {
		t.Fatalf("ListConditionsByMethod: expected 2, got %d", len(conditions))
	}

	removed, err := repo.Remove(ctx, nil, link.ID)
	if err != nil {
		t.Fatalf("Remove: %v", err)
	}
	if !removed {
		t.Fatalf("Remove: expected true")
	}
	removed, err = repo.Remove(ctx, nil, link.ID)
	if err != nil {
		t.Fatalf("Remove again: %v", err)
	}
	if removed {
		t.Fatalf("Remove again: expected false")
	}

	// Deleting a condition cascades its links but leaves methods intact.
	condRepo := NewConditionRepo(db, testutil.Logger(t))
	if _, err := condRepo.Delete(ctx, nil, cond.ID); err != nil {
		t.Fatalf("delete condition: %v", err)
	}
	var linkCount int64
	if err := db.WithContext(ctx).
		Model(&types.ConditionExclusionMethod{}).
		Where("condition_id = ?", cond.ID).
		Count(&linkCount).Error; err != nil {
		t.Fatalf("count links: %v", err)
	}
	if linkCount != 0 {
		t.Fatalf("expected cascade to remove links, found %d", linkCount)
	}
	var methodCount int64
	if err := db.WithContext(ctx).Model(&types.ExclusionMethod{}).Count(&methodCount).Error; err != nil {
		t.Fatalf("count methods: %v", err)
	}
	if methodCount != 2 {
		t.Fatalf("expected methods to survive cascade, found %d", methodCount)
	}
}
