package taxonomy

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

type SymptomRepo interface {
	Create(ctx context.Context, tx *gorm.DB, row *types.Symptom) (*types.Symptom, error)
	GetByID(ctx context.Context, tx *gorm.DB, id uint) (*types.Symptom, error)
	GetByCUI(ctx context.Context, tx *gorm.DB, cui string) (*types.Symptom, error)
	GetWithDiseases(ctx context.Context, tx *gorm.DB, id uint) (*types.Symptom, error)
	List(ctx context.Context, tx *gorm.DB, skip, limit int) (int64, []*types.Symptom, error)
	SearchByName(ctx context.Context, tx *gorm.DB, query string, limit int) ([]*types.Symptom, error)
	UpdateFields(ctx context.Context, tx *gorm.DB, id uint, updates map[string]interface{}) (*types.Symptom, error)
	Delete(ctx context.Context, tx *gorm.DB, id uint) (bool, error)
}

type symptomRepo struct {
	db  *gorm.DB
	log *logger.Logger
}

func NewSymptomRepo(db *gorm.DB, baseLog *logger.Logger) SymptomRepo {
	return &symptomRepo{db: db, log: baseLog.With("repo", "SymptomRepo")}
}

func (r *symptomRepo) Create(ctx context.Context, tx *gorm.DB, row *types.Symptom) (*types.Symptom, error) {
	t := tx
	if t == nil {
		t = r.db
	}
	if err := t.WithContext(ctx).Create(row).Error; err != nil {
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			return nil, fmt.Errorf("symptom cui %q: %w", row.CUI, apperrors.ErrDuplicate)
		}
		return nil, fmt.Errorf("create symptom: %w", err)
	}
	return row, nil
}

func (r *symptomRepo) GetByID(ctx context.Context, tx *gorm.DB, id uint) (*types.Symptom, error) {
	t := tx
	if t == nil {
		t = r.db
	}
	var row types.Symptom
	if err := t.WithContext(ctx).First(&row, id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, fmt.Errorf("get symptom %d: %w", id, err)
	}
	return &row, nil
}

func (r *symptomRepo) GetByCUI(ctx context.Context, tx *gorm.DB, cui string) (*types.Symptom, error) {
	t := tx
	if t == nil {
		t = r.db
	}
	var row types.Symptom
	if err := t.WithContext(ctx).Where("cui = ?", cui).First(&row).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, fmt.Errorf("get symptom by cui %q: %w", cui, err)
	}
	return &row, nil
}

func (r *symptomRepo) GetWithDiseases(ctx context.Context, tx *gorm.DB, id uint) (*types.Symptom, error) {
	t := tx
	if t == nil {
		t = r.db
	}
	var row types.Symptom
	err := t.WithContext(ctx).
		Preload("DiseaseAssociations.Disease").
		First(&row, id).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, fmt.Errorf("get symptom %d with diseases: %w", id, err)
	}
	return &row, nil
}

func (r *symptomRepo) List(ctx context.Context, tx *gorm.DB, skip, limit int) (int64, []*types.Symptom, error) {
	if err := validatePage(skip, limit, maxListLimit); err != nil {
		return 0, nil, err
	}
	t := tx
	if t == nil {
		t = r.db
	}
	var total int64
	if err := t.WithContext(ctx).Model(&types.Symptom{}).Count(&total).Error; err != nil {
		return 0, nil, fmt.Errorf("count symptoms: %w", err)
	}
	var out []*types.Symptom
	if err := t.WithContext(ctx).
		Order("id ASC").
		Offset(skip).
		Limit(limit).
		Find(&out).Error; err != nil {
		return 0, nil, fmt.Errorf("list symptoms: %w", err)
	}
	return total, out, nil
}

func (r *symptomRepo) SearchByName(ctx context.Context, tx *gorm.DB, query string, limit int) ([]*types.Symptom, error) {
	if strings.TrimSpace(query) == "" {
		return []*types.Symptom{}, nil
	}
	if limit < 1 || limit > maxListLimit {
		limit = 10
	}
	t := tx
	if t == nil {
		t = r.db
	}
	var out []*types.Symptom
	if err := t.WithContext(ctx).
		Where("LOWER(name) LIKE ?", "%"+strings.ToLower(query)+"%").
		Limit(limit).
		Find(&out).Error; err != nil {
		return nil, fmt.Errorf("search symptoms: %w", err)
	}
	return out, nil
}

func (r *symptomRepo) UpdateFields(ctx context.Context, tx *gorm.DB, id uint, updates map[string]interface{}) (*types.Symptom, error) {
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
		Model(&types.Symptom{}).
		Where("id = ?", id).
		Updates(updates).Error; err != nil {
		return nil, fmt.Errorf("update symptom %d: %w", id, err)
	}
	return r.GetByID(ctx, tx, id)
}

func (r *symptomRepo) Delete(ctx context.Context, tx *gorm.DB, id uint) (bool, error) {
	t := tx
	if t == nil {
		t = r.db
	}
	res := t.WithContext(ctx).Delete(&types.Symptom{}, id)
	if res.Error != nil {
		return false, fmt.Errorf("delete symptom %d: %w", id, res.Error)
	}
	return res.RowsAffected > 0, nil
}
