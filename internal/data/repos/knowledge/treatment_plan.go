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

type TreatmentPlanRepo interface {
	Create(ctx context.Context, tx *gorm.DB, row *types.TreatmentPlan) (*types.TreatmentPlan, error)
	GetByID(ctx context.Context, tx *gorm.DB, id uint) (*types.TreatmentPlan, error)
	List(ctx context.Context, tx *gorm.DB, skip, limit int) (int64, []*types.TreatmentPlan, error)
	SearchByName(ctx context.Context, tx *gorm.DB, query string, limit int) ([]*types.TreatmentPlan, error)
	UpdateFields(ctx context.Context, tx *gorm.DB, id uint, updates map[string]interface{}) (*types.TreatmentPlan, error)
	Delete(ctx context.Context, tx *gorm.DB, id uint) (bool, error)
}

type treatmentPlanRepo struct {
	db  *gorm.DB
	log *logger.Logger
}

func NewTreatmentPlanRepo(db *gorm.DB, baseLog *logger.Logger) TreatmentPlanRepo {
	return &treatmentPlanRepo{db: db, log: baseLog.With("repo", "TreatmentPlanRepo")}
}

func (r *treatmentPlanRepo) Create(ctx context.Context, tx *gorm.DB, row *types.TreatmentPlan) (*types.TreatmentPlan, error) {
	t := tx
	if t == nil {
		t = r.db
	}
	if err := t.WithContext(ctx).Create(row).Error; err != nil {
		return nil, fmt.Errorf("create treatment plan: %w", err)
	}
	return row, nil
}

func (r *treatmentPlanRepo) GetByID(ctx context.Context, tx *gorm.DB, id uint) (*types.TreatmentPlan, error) {
	t := tx
	if t == nil {
		t = r.db
	}
	var row types.TreatmentPlan
	if err := t.WithContext(ctx).First(&row, id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, fmt.Errorf("get treatment plan %d: %w", id, err)
	}
	return &row, nil
}

func (r *treatmentPlanRepo) List(ctx context.Context, tx *gorm.DB, skip, limit int) (int64, []*types.TreatmentPlan, error) {
	if err := validatePage(skip, limit, maxListLimit); err != nil {
		return 0, nil, err
	}
	t := tx
	if t == nil {
		t = r.db
	}
	var total int64
	if err := t.WithContext(ctx).Model(&types.TreatmentPlan{}).Count(&total).Error; err != nil {
		return 0, nil, fmt.Errorf("count treatment plans: %w", err)
	}
	var out []*types.TreatmentPlan
	if err := t.WithContext(ctx).
		Order("id ASC").
		Offset(skip).
		Limit(limit).
		Find(&out).Error; err != nil {
		return 0, nil, fmt.Errorf("list treatment plans: %w", err)
	}
	return total, out, nil
}

func (r *treatmentPlanRepo) SearchByName(ctx context.Context, tx *gorm.DB, query string, limit int) ([]*types.TreatmentPlan, error) {
	if strings.TrimSpace(query) == "" {
		return []*types.TreatmentPlan{}, nil
	}
	if limit < 1 || limit > maxListLimit {
		limit = 10
	}
	t := tx
	if t == nil {
		t = r.db
	}
	var out []*types.TreatmentPlan
	if err := t.WithContext(ctx).
		Where("LOWER(name) LIKE ?", "%"+strings.ToLower(query)+"%").
		Limit(limit).
		Find(&out).Error; err != nil {
		return nil, fmt.Errorf("search treatment plans: %w", err)
	}
	return out, nil
}

func (r *treatmentPlanRepo) UpdateFields(ctx context.Context, tx *gorm.DB, id uint, updates map[string]interface{}) (*types.TreatmentPlan, error) {
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
		Model(&types.TreatmentPlan{}).
		Where("id = ?", id).
		Updates(updates).Error; err != nil {
		return nil, fmt.Errorf("update treatment plan %d: %w", id, err)
	}
	return r.GetByID(ctx, tx, id)
}

func (r *treatmentPlanRepo) Delete(ctx context.Context, tx *gorm.DB, id uint) (bool, error) {
	t := tx
	if t == nil {
		t = r.db
	}
	res := t.WithContext(ctx).Delete(&types.TreatmentPlan{}, id)
	if res.Error != nil {
		return false, fmt.Errorf("delete treatment plan %d: %w", id, res.Error)
	}
	return res.RowsAffected > 0, nil
}
