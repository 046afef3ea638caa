package knowledge

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"gorm.io/gorm"

	types "github.com/medibridge/medibridge-backend/internal/domain"
	"github.com/medibridge/medibridge-backend/internal/pkg/logger"
)

type ExclusionMethodRepo interface {
	Create(ctx context.Context, tx *gorm.DB, row *types.ExclusionMethod) (*types.ExclusionMethod, error)
	GetByID(ctx context.Context, tx *gorm.DB, id uint) (*types.ExclusionMethod, error)
	List(ctx context.Context, tx *gorm.DB, skip, limit int) (int64, []*types.ExclusionMethod, error)
	SearchByName(ctx context.Context, tx *gorm.DB, query string, limit int) ([]*types.ExclusionMethod, error)
	UpdateFields(ctx context.Context, tx *gorm.DB, id uint, updates map[string]interface{}) (*types.ExclusionMethod, error)
	Delete(ctx context.Context, tx *gorm.DB, id uint) (bool, error)
}

type exclusionMethodRepo struct {
	db  *gorm.DB
	log *logger.Logger
}

func NewExclusionMethodRepo(db *gorm.DB, baseLog *logger.Logger) ExclusionMethodRepo {
	return &exclusionMethodRepo{db: db, log: baseLog.With("repo", "ExclusionMethodRepo")}
}

func (r *exclusionMethodRepo) Create(ctx context.Context, tx *gorm.DB, row *types.ExclusionMethod) (*types.ExclusionMethod, error) {
	t := tx
	if t == nil {
		t = r.db
	}
	if err := t.WithContext(ctx).Create(row).Error; err != nil {
		return nil, fmt.Errorf("create exclusion method: %w", err)
	}
	return row, nil
}

func (r *exclusionMethodRepo) GetByID(ctx context.Context, tx *gorm.DB, id uint) (*types.ExclusionMethod, error) {
	t := tx
	if t == nil {
		t = r.db
	}
	var row types.ExclusionMethod
	if err := t.WithContext(ctx).First(&row, id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, fmt.Errorf("get exclusion method %d: %w", id, err)
	}
	return &row, nil
}

func (r *exclusionMethodRepo) List(ctx context.Context, tx *gorm.DB, skip, limit int) (int64, []*types.ExclusionMethod, error) {
	if err := validatePage(skip, limit, maxListLimit); err != nil {
		return 0, nil, err
	}
	t := tx
	if t == nil {
		t = r.db
	}
	var total int64
	if err := t.WithContext(ctx).Model(&types.ExclusionMethod{}).Count(&total).Error; err != nil {
		return 0, nil, fmt.Errorf("count exclusion methods: %w", err)
	}
	var out []*types.ExclusionMethod
	if err := t.WithContext(ctx).
		Order("id ASC").
		Offset(skip).
		Limit(limit).
		Find(&out).Error; err != nil {
		return 0, nil, fmt.Errorf("list exclusion methods: %w", err)
	}
	return total, out, nil
}

func (r *exclusionMethodRepo) SearchByName(ctx context.Context, tx *gorm.DB, query string, limit int) ([]*types.ExclusionMethod, error) {
	if strings.TrimSpace(query) == "" {
		return []*types.ExclusionMethod{}, nil
	}
	if limit < 1 || limit > maxListLimit {
		limit = 10
	}
	t := tx
	if t == nil {
		t = r.db
	}
	var out []*types.ExclusionMethod
	if err := t.WithContext(ctx).
		Where("LOWER(name) LIKE ?", "%"+strings.ToLower(query)+"%").
		Limit(limit).
		Find(&out).Error; err != nil {
		return nil, fmt.Errorf("search exclusion methods: %w", err)
	}
	return out, nil
}

func (r *exclusionMethodRepo) UpdateFields(ctx context.Context, tx *gorm.DB, id uint, updates map[string]interface{}) (*types.ExclusionMethod, error) {
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
		Model(&types.ExclusionMethod{}).
		Where("id = ?", id).
		Updates(updates).Error; err != nil {
		return nil, fmt.Errorf("update exclusion method %d: %w", id, err)
	}
	return r.GetByID(ctx, tx, id)
}

func (r *exclusionMethodRepo) Delete(ctx context.Context, tx *gorm.DB, id uint) (bool, error) {
	t := tx
	if t == nil {
		t = r.db
	}
	res := t.WithContext(ctx).Delete(&types.ExclusionMethod{}, id)
	if res.Error != nil {
		return false, fmt.Errorf("delete exclusion method %d: %w", id, res.Error)
	}
	return res.RowsAffected > 0, nil
}
