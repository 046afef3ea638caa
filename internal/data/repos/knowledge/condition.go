package knowledge

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"gorm.io/gorm"

	types "github.com/medibridge/medibridge-backend/internal/domain"
	apperrors "github.com/medibridge/medibridge-backend/internal/pkg/errors"
	"github.com/medibridge/medibridge-backend/internal/pkg/logger"
)

const maxListLimit = 100

// validatePage rejects out-of-range pagination instead of clamping it, so
// callers see exactly the window they asked for or an explicit error.
func validatePage(skip, limit, max int) error {
	if skip < 0 {
		return fmt.Errorf("skip must be >= 0, got %d: %w", skip, apperrors.ErrInvalidArgument)
	}
	if limit < 1 || limit > max {
		return fmt.Errorf("limit must be in [1, %d], got %d: %w", max, limit, apperrors.ErrInvalidArgument)
	}
	return nil
}

type ConditionRepo interface {
	Create(ctx context.Context, tx *gorm.DB, row *types.Condition) (*types.Condition, error)
	GetByID(ctx context.Context, tx *gorm.DB, id uint) (*types.Condition, error)
	GetWithRelations(ctx context.Context, tx *gorm.DB, id uint) (*types.Condition, error)
	List(ctx context.Context, tx *gorm.DB, skip, limit int) (int64, []*types.Condition, error)
	SearchByName(ctx context.Context, tx *gorm.DB, query string, limit int) ([]*types.Condition, error)
	UpdateFields(ctx context.Context, tx *gorm.DB, id uint, updates map[string]interface{}) (*types.Condition, error)
	Delete(ctx context.Context, tx *gorm.DB, id uint) (bool, error)
}

type conditionRepo struct {
	db  *gorm.DB
	log *logger.Logger
}

func NewConditionRepo(db *gorm.DB, baseLog *logger.Logger) ConditionRepo {
	return &conditionRepo{db: db, log: baseLog.With("repo", "ConditionRepo")}
}

func (r *conditionRepo) Create(ctx context.Context, tx *gorm.DB, row *types.Condition) (*types.Condition, error) {
	t := tx
	if t == nil {
		t = r.db
	}
	if err := t.WithContext(ctx).Create(row).Error; err != nil {
		return nil, fmt.Errorf("create condition: %w", err)
	}
	return row, nil
}

func (r *conditionRepo) GetByID(ctx context.Context, tx *gorm.DB, id uint) (*types.Condition, error) {
	t := tx
	if t == nil {
		t = r.db
	}
	var row types.Condition
	if err := t.WithContext(ctx).First(&row, id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, fmt.Errorf("get condition %d: %w", id, err)
	}
	return &row, nil
}

func (r *conditionRepo) GetWithRelations(ctx context.Context, tx *gorm.DB, id uint) (*types.Condition, error) {
	t := tx
	if t == nil {
		t = r.db
	}
	var row types.Condition
	err := t.WithContext(ctx).
		Preload("ExclusionMethods.ExclusionMethod").
		Preload("TreatmentPlans", func(db *gorm.DB) *gorm.DB {
			return db.Order("priority DESC, id ASC")
		}).
		Preload("TreatmentPlans.TreatmentPlan").
		First(&row, id).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, fmt.Errorf("get condition %d with relations: %w", id, err)
	}
	return &row, nil
}

func (r *conditionRepo) List(ctx context.Context, tx *gorm.DB, skip, limit int) (int64, []*types.Condition, error) {
	if err := validatePage(skip, limit, maxListLimit); err != nil {
		return 0, nil, err
	}
	t := tx
	if t == nil {
		t = r.db
	}
	var total int64
	if err := t.WithContext(ctx).Model(&types.Condition{}).Count(&total).Error; err != nil {
		return 0, nil, fmt.Errorf("count conditions: %w", err)
	}
	var out []*types.Condition
	if err := t.WithContext(ctx).
		Order("id ASC").
		Offset(skip).
		Limit(limit).
		Find(&out).Error; err != nil {
		return 0, nil, fmt.Errorf("list conditions: %w", err)
	}
	return total, out, nil
}

func (r *conditionRepo) SearchByName(ctx context.Context, tx *gorm.DB, query string, limit int) ([]*types.Condition, error) {
	if strings.TrimSpace(query) == "" {
		return []*types.Condition{}, nil
	}
	if limit < 1 || limit > maxListLimit {
		limit = 10
	}
	t := tx
	if t == nil {
		t = r.db
	}
	var out []*types.Condition
	if err := t.WithContext(ctx).
		Where("LOWER(name) LIKE ?", "%"+strings.ToLower(query)+"%").
		Limit(limit).
		Find(&out).Error; err != nil {
		return nil, fmt.Errorf("search conditions: %w", err)
	}
	return out, nil
}

func (r *conditionRepo) UpdateFields(ctx context.Context, tx *gorm.DB, id uint, updates map[string]interface{}) (*types.Condition, error) {
	existing, err := r.GetByID(ctx, tx, id)
	if err != nil || existing == nil {
		return nil, err
	}
	if len(updates) == 0 {
		return existing, nil
	}
	t := tx
	if t == nil {
		t = r.db
	}
	updates["updated_at"] = time.Now().UTC()
	if err := t.WithContext(ctx).
		Model(&types.Condition{}).
		Where("id = ?", id).
		Updates(updates).Error; err != nil {
		return nil, fmt.Errorf("update condition %d: %w", id, err)
	}
	return r.GetByID(ctx, tx, id)
}

func (r *conditionRepo) Delete(ctx context.Context, tx *gorm.DB, id uint) (bool, error) {
	t := tx
	if t == nil {
		t = r.db
	}
	res := t.WithContext(ctx).Delete(&types.Condition{}, id)
	if res.Error != nil {
		return false, fmt.Errorf("delete condition %d: %w", id, res.Error)
	}
	return res.RowsAffected > 0, nil
}
