package consult

import (
	"context"
	"fmt"
	"time"

	"gorm.io/gorm"

	types "github.com/medibridge/medibridge-backend/internal/domain"
	apperrors "github.com/medibridge/medibridge-backend/internal/pkg/errors"
	"github.com/medibridge/medibridge-backend/internal/pkg/logger"
)

type MessageRepo interface {
	// Create appends a message to an existing conversation. A missing
	// conversation is rejected rather than silently orphaning the row.
	Create(ctx context.Context, tx *gorm.DB, row *types.Message) (*types.Message, error)
	GetByID(ctx context.Context, tx *gorm.DB, id uint) (*types.Message, error)
	// ListByConversation returns the conversation's messages oldest first.
	ListByConversation(ctx context.Context, tx *gorm.DB, conversationID uint, skip, limit int) (int64, []*types.Message, error)
	UpdateFields(ctx context.Context, tx *gorm.DB, id uint, updates map[string]interface{}) (*types.Message, error)
	Delete(ctx context.Context, tx *gorm.DB, id uint) (bool, error)
}

type messageRepo struct {
	db  *gorm.DB
	log *logger.Logger
}

func NewMessageRepo(db *gorm.DB, baseLog *logger.Logger) MessageRepo {
	return &messageRepo{db: db, log: baseLog.With("repo", "MessageRepo")}
}

func (r *messageRepo) conversationExists(ctx context.Context, t *gorm.DB, conversationID uint) (bool, error) {
	var n int64
	if err := t.WithContext(ctx).
		Model(&types.Conversation{}).
		Where("id = ?", conversationID).
		Count(&n).Error; err != nil {
		return false, err
	}
	return n > 0, nil
}

func (r *messageRepo) Create(ctx context.Context, tx *gorm.DB, row *types.Message) (*types.Message, error) {
	t := tx
	if t == nil {
		t = r.db
	}
	if row.SentAt.IsZero() {
		row.SentAt = time.Now().UTC()
	}
	err := t.WithContext(ctx).Transaction(func(txn *gorm.DB) error {
		ok, err := r.conversationExists(ctx, txn, row.ConversationID)
		if err != nil {
			return fmt.Errorf("check conversation %d: %w", row.ConversationID, err)
		}
		if !ok {
			return fmt.Errorf("conversation %d: %w", row.ConversationID, apperrors.ErrNotFound)
		}
		if err := txn.WithContext(ctx).Create(row).Error; err != nil {
			return fmt.Errorf("create message: %w", err)
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	return row, nil
}

func (r *messageRepo) GetByID(ctx context.Context, tx *gorm.DB, id uint) (*types.Message, error) {
	t := tx
	if t == nil {
		t = r.db
	}
	var row types.Message
	if err := t.WithContext(ctx).First(&row, id).Error; err != nil {
		if err == gorm.ErrRecordNotFound {
			return nil, nil
		}
		return nil, fmt.Errorf("get message %d: %w", id, err)
	}
	return &row, nil
}

func (r *messageRepo) ListByConversation(ctx context.Context, tx *gorm.DB, conversationID uint, skip, limit int) (int64, []*types.Message, error) {
	if err := validatePage(skip, limit, maxListLimit); err != nil {
		return 0, nil, err
	}
	t := tx
	if t == nil {
		t = r.db
	}
	ok, err := r.conversationExists(ctx, t, conversationID)
	if err != nil {
		return 0, nil, fmt.Errorf("check conversation %d: %w", conversationID, err)
	}
	if !ok {
		return 0, nil, fmt.Errorf("conversation %d: %w", conversationID, apperrors.ErrNotFound)
	}
	var total int64
	if err := t.WithContext(ctx).
		Model(&types.Message{}).
		Where("conversation_id = ?", conversationID).
		Count(&total).Error; err != nil {
		return 0, nil, fmt.Errorf("count messages: %w", err)
	}
	var out []*types.Message
	if err := t.WithContext(ctx).
		Where("conversation_id = ?", conversationID).
		Order("sent_at ASC, id ASC").
		Offset(skip).
		Limit(limit).
		Find(&out).Error; err != nil {
		return 0, nil, fmt.Errorf("list messages for conversation %d: %w", conversationID, err)
	}
	return total, out, nil
}

func (r *messageRepo) UpdateFields(ctx context.Context, tx *gorm.DB, id uint, updates map[string]interface{}) (*types.Message, error) {
	t := tx
	if t == nil {
		t = r.db
	}
	existing, err := r.GetByID(ctx, t, id)
	if err != nil {
		return nil, err
	}
	if existing == nil {
		return nil, nil
	}
	if len(updates) == 0 {
		return existing, nil
	}
	if err := t.WithContext(ctx).
		Model(&types.Message{}).
		Where("id = ?", id).
		Updates(updates).Error; err != nil {
		return nil, fmt.Errorf("update message %d: %w", id, err)
	}
	return r.GetByID(ctx, t, id)
}

func (r *messageRepo) Delete(ctx context.Context, tx *gorm.DB, id uint) (bool, error) {
	t := tx
	if t == nil {
		t = r.db
	}
	res := t.WithContext(ctx).Delete(&types.Message{}, id)
	if res.Error != nil {
		return false, fmt.Errorf("delete message %d: %w", id, res.Error)
	}
	return res.RowsAffected > 0, nil
}
