package consult

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/medibridge/medibridge-backend/internal/data/repos/testutil"
	types "github.com/medibridge/medibridge-backend/internal/domain"
	apperrors "github.com/medibridge/medibridge-backend/internal/pkg/errors"
	"gorm.io/datatypes"
)

func TestConversationRepo(t *testing.T) {
	db := testutil.DB(t)
	ctx := context.Background()
	repo := NewConversationRepo(db, testutil.Logger(t))

	now := time.Now().UTC()
	oldest := testutil.SeedConversation(t, ctx, db, "knee pain follow-up", now.Add(-3*time.Hour))
	middle := testutil.SeedConversation(t, ctx, db, "persistent cough", now.Add(-2*time.Hour))
	newest := testutil.SeedConversation(t, ctx, db, "annual checkup", now.Add(-1*time.Hour))

	created, err := repo.Create(ctx, nil, &types.Conversation{
		Title:    "new consult",
		Progress: datatypes.JSON([]byte(`{"stage":"intake"}`)),
	})
	if err != nil {
		t.Fatalf("Create: %v", err)
	}
	if created.StartedAt.IsZero() {
		t.Fatalf("Create: expected started_at to be stamped")
	}

	// Newest consultations come first.
	total, page, err := repo.List(ctx, nil, 0, 10)
	if err != nil {
		t.Fatalf("List: %v", err)
	}
	if total != 4 || len(page) != 4 {
		t.Fatalf("List: expected total=4 len=4, got total=%d len=%d", total, len(page))
	}
	if page[0].ID != created.ID || page[1].ID != newest.ID || page[3].ID != oldest.ID {
		t.Fatalf("List: wrong order: %d %d %d %d", page[0].ID, page[1].ID, page[2].ID, page[3].ID)
	}

	if _, _, err := repo.List(ctx, nil, 0, maxListLimit+1); !errors.Is(err, apperrors.ErrInvalidArgument) {
		t.Fatalf("List oversized limit: expected ErrInvalidArgument, got %v", err)
	}

	updated, err := repo.UpdateFields(ctx, nil, middle.ID, map[string]interface{}{"department": "pulmonology"})
	if err != nil {
		t.Fatalf("UpdateFields: %v", err)
	}
	if updated.Department != "pulmonology" || updated.Title != "persistent cough" {
		t.Fatalf("UpdateFields: %+v", updated)
	}

	// Deleting a conversation takes its messages with it.
	testutil.SeedMessage(t, ctx, db, oldest.ID, "user", "my knee still hurts", now.Add(-3*time.Hour))
	testutil.SeedMessage(t, ctx, db, oldest.ID, "assistant", "how long has it persisted?", now.Add(-3*time.Hour).Add(time.Minute))

	deleted, err := repo.Delete(ctx, nil, oldest.ID)
	if err != nil || !deleted {
		t.Fatalf("Delete: deleted=%v err=%v", deleted, err)
	}
	var orphaned int64
	if err := db.WithContext(ctx).
		Model(&types.Message{}).
		Where("conversation_id = ?", oldest.ID).
		Count(&orphaned).Error; err != nil {
		t.Fatalf("count messages: %v", err)
	}
	if orphaned != 0 {
		t.Fatalf("expected cascade to remove messages, found %d", orphaned)
	}
}

func TestConversationRepoGetWithMessages(t *testing.T) {
	db := testutil.DB(t)
	ctx := context.Background()
	repo := NewConversationRepo(db, testutil.Logger(t))

	now := time.Now().UTC()
	conv := testutil.SeedConversation(t, ctx, db, "headache consult", now)
	// Seed out of chronological order to prove the sort.
	testutil.SeedMessage(t, ctx, db, conv.ID, "assistant", "any nausea?", now.Add(2*time.Minute))
	testutil.SeedMessage(t, ctx, db, conv.ID, "user", "I have a headache", now)
	testutil.SeedMessage(t, ctx, db, conv.ID, "user", "yes, a little", now.Add(4*time.Minute))

	got, err := repo.GetWithMessages(ctx, nil, conv.ID)
	if err != nil {
		t.Fatalf("GetWithMessages: %v", err)
	}
	if len(got.Messages) != 3 {
		t.Fatalf("expected 3 messages, got %d", len(got.Messages))
	}
	if got.Messages[0].Content != "I have a headache" || got.Messages[2].Content != "yes, a little" {
		t.Fatalf("messages out of order: %q, %q, %q",
			got.Messages[0].Content, got.Messages[1].Content, got.Messages[2].Content)
	}

	missing, err := repo.GetWithMessages(ctx, nil, 999999)
	if err != nil {
		t.Fatalf("GetWithMessages missing: %v", err)
	}
	if missing != nil {
		t.Fatalf("GetWithMessages missing: expected nil, got %+v", missing)
	}
}
