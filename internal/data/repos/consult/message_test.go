package consult

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/medibridge/medibridge-backend/internal/data/repos/testutil"
	types "github.com/medibridge/medibridge-backend/internal/domain"
	apperrors "github.com/medibridge/medibridge-backend/internal/pkg/errors"
)

func TestMessageRepo(t *testing.T) {
	db := testutil.DB(t)
	ctx := context.Background()
	repo := NewMessageRepo(db, testutil.Logger(t))

	now := time.Now().UTC()
	conv := testutil.SeedConversation(t, ctx, db, "chest pain consult", now)

	created, err := repo.Create(ctx, nil, &types.Message{
		ConversationID: conv.ID,
		Role:           "user",
		Content:        "sharp pain when breathing in",
	})
	if err != nil {
		t.Fatalf("Create: %v", err)
	}
	if created.SentAt.IsZero() {
		t.Fatalf("Create: expected sent_at to be stamped")
	}

	// A message cannot land in a conversation that does not exist.
	if _, err := repo.Create(ctx, nil, &types.Message{
		ConversationID: 999999,
		Role:           "user",
		Content:        "orphan",
	}); !errors.Is(err, apperrors.ErrNotFound) {
		t.Fatalf("Create missing conversation: expected ErrNotFound, got %v", err)
	}

	testutil.SeedMessage(t, ctx, db, conv.ID, "assistant", "when did it start?", now.Add(time.Minute))
	testutil.SeedMessage(t, ctx, db, conv.ID, "user", "two days ago", now.Add(2*time.Minute))

	total, page, err := repo.ListByConversation(ctx, nil, conv.ID, 0, 2)
	if err != nil {
		t.Fatalf("ListByConversation: %v", err)
	}
	if total != 3 || len(page) != 2 {
		t.Fatalf("ListByConversation: expected total=3 len=2, got total=%d len=%d", total, len(page))
	}
	if page[0].ID != created.ID {
		t.Fatalf("ListByConversation: expected oldest first, got %d", page[0].ID)
	}

	if _, _, err := repo.ListByConversation(ctx, nil, 999999, 0, 10); !errors.Is(err, apperrors.ErrNotFound) {
		t.Fatalf("ListByConversation missing: expected ErrNotFound, got %v", err)
	}
	if _, _, err := repo.ListByConversation(ctx, nil, conv.ID, -1, 10); !errors.Is(err, apperrors.ErrInvalidArgument) {
		t.Fatalf("ListByConversation negative skip: expected ErrInvalidArgument, got %v", err)
	}

	updated, err := repo.UpdateFields(ctx, nil, created.ID, map[string]interface{}{"content": "sharp pain on inhale"})
	if err != nil {
		t.Fatalf("UpdateFields: %v", err)
	}
	if updated.Content != "sharp pain on inhale" || updated.Role != "user" {
		t.Fatalf("UpdateFields: %+v", updated)
	}

	deleted, err := repo.Delete(ctx, nil, created.ID)
	if err != nil || !deleted {
		t.Fatalf("Delete: deleted=%v err=%v", deleted, err)
	}
	total, _, err = repo.ListByConversation(ctx, nil, conv.ID, 0, 10)
	if err != nil {
		t.Fatalf("ListByConversation after delete: %v", err)
	}
	if total != 2 {
		t.Fatalf("expected 2 messages left, got %d", total)
	}
}
