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

const maxListLimit = 100

func validatePage(skip, limit, max int) error {
	if skip < 0 {
		return fmt.Errorf("skip %d must be >= 0: %w", skip, apperrors.ErrInvalidArgument)
	}
	if limit < 1 || limit > max {
		return fmt.Errorf("limit %d must be between 1 and %d: %w", limit, max, apperrors.ErrInvalidArgument)
	}
	return nil
}

type ConversationRepo interface {
	Create(ctx context.Context, tx *gorm.DB, row *types.Conversation) (*types.Conversation, error)
	GetByID(ctx context.Context, tx *gorm.DB, id uint) (*types.Conversation, error)
	// GetWithMessages loads the conversation with its messages ordered
	// oldest first.
	GetWithMessages(ctx context.Context, tx *gorm.DB, id uint) (*types.Conversation, error)
	// List returns conversations newest first by started_at.
	List(ctx context.Context, tx *gorm.DB, skip, limit int) (int64, []*types.Conversation, error)
	UpdateFields(ctx context.Context, tx *gorm.DB, id uint, updates map[string]interface{}) (*types.Conversation, error)
	// Delete removes the conversation and cascades to its messages.
	Delete(ctx context.Context, tx *gorm.DB, id uint) (bool, error)
}

type conversationRepo struct {
	db  *gorm.DB
	log *logger.Logger
}

func NewConversationRepo(db *gorm.DB, baseLog *logger.Logger) ConversationRepo {
	return &conversationRepo{db: db, log: baseLog.With("repo", "ConversationRepo")}
}

func (r *conversationRepo) Create(ctx context.Context, tx *gorm.DB, row *types.Conversation) (*types.Conversation, error) {
	t := tx
	if t == nil {
		t = r.db
	}
	if row.StartedAt.IsZero() {
		row.StartedAt = time.Now().UTC()
	}
	if err := t.WithContext(ctx).Create(row).Error; err != nil {
		return nil, fmt.Errorf("create conversation: %w", err)
	}
	return row, nil
}

func (r *conversationRepo) GetByID(ctx context.Context, tx *gorm.DB, id uint) (*types.Conversation, error) {
	t := tx
	if t == nil {
		t = r.db
	}
	var row types.Conversation
	if err := t.WithContext(ctx).First(&row, id).Error; err != nil {
		if err == gorm.ErrRecordNotFound {
			return nil, nil
		}
		return nil, fmt.Errorf("get conversation %d: %w", id, err)
	}
	return &row, nil
}

func (r *conversationRepo) GetWithMessages(ctx context.Context, tx *gorm.DB, id uint) (*types.Conversation, error) {
	t := tx
	if t == nil {
		t = r.db
	}
	var row types.Conversation
	err := t.WithContext(ctx).
		Preload("Messages", func(db *gorm.DB) *gorm.DB {
			return db.Order("sent_at ASC, id ASC")
		}).
		First(&row, id).Error
	if err != nil {
		if err == gorm.ErrRecordNotFound {
			return nil, nil
		}
		return nil, fmt.Errorf("get conversation %d with messages: %w", id, err)
	}
	return &row, nil
}

func (r *conversationRepo) List(ctx context.Context, tx *gorm.DB, skip, limit int) (int64, []*types.Conversation, error) {
	if err := validatePage(skip, limit, maxListLimit); err != nil {
		return 0, nil, err
	}
	t := tx
	if t == nil {
		t = r.db
	}
	var total int64
	if err := t.WithContext(ctx).Model(&types.Conversation{}).Count(&total).Error; err != nil {
		return 0, nil, fmt.Errorf("count conversations: %w", err)
	}
	var out []*types.Conversation
	if err := t.WithContext(ctx).
		Order("started_at DESC").
		Offset(skip).
		Limit(limit).
		Find(&out).Error; err != nil {
		return 0, nil, fmt.Errorf("list conversations: %w", err)
	}
	return total, out, nil
}

func (r *conversationRepo) UpdateFields(ctx context.Context, tx *gorm.DB, id uint, updates map[string]interface{}) (*types.Conversation, error) {
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
	updates["updated_at"] = time.Now().UTC()
	if err := t.WithContext(ctx).
		Model(&types.Conversation{}).
		Where("id = ?", id).
		Updates(updates).Error; err != nil {
		return nil, fmt.Errorf("update conversation %d: %w", id, err)
	}
	return r.GetByID(ctx, t, id)
}

func (r *conversationRepo) Delete(ctx context.Context, tx *gorm.DB, id uint) (bool, error) {
	t := tx
	if t == nil {
		t = r.db
	}
	res := t.WithContext(ctx).Delete(&types.Conversation{}, id)
	if res.Error != nil {
		return false, fmt.Errorf("delete conversation %d: %w", id, res.Error)
	}
	return res.RowsAffected > 0, nil
}
