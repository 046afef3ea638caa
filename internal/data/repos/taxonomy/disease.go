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

// Taxonomy listings serve the bulk import and full-catalog sync paths, so
// the page cap is wider than for the hand-curated knowledge entities.
const maxListLimit = 1000

func validatePage(skip, limit, max int) error {
	if skip < 0 {
		return fmt.Errorf("skip must be >= 0, got %d: %w", skip, apperrors.ErrInvalidArgument)
	}
	if limit < 1 || limit > max {
		return fmt.Errorf("limit must be in [1, %d], got %d: %w", max, limit, apperrors.ErrInvalidArgument)
	}
	return nil
}

type DiseaseRepo interface {
	Create(ctx context.Context, tx *gorm.DB, row *types.Disease) (*types.Disease, error)
	GetByID(ctx context.Context, tx *gorm.DB, id uint) (*types.Disease, error)
	GetByCUI(ctx context.Context, tx *gorm.DB, cui string) (*types.Disease, error)
	GetWithSymptoms(ctx context.Context, tx *gorm.DB, id uint) (*types.Disease, error)
	List(ctx context.Context, tx *gorm.DB, skip, limit int) (int64, []*types.Disease, error)
	SearchByName(ctx context.Context, tx *gorm.DB, query string, limit int) ([]*types.Disease, error)
	UpdateFields(ctx context.Context, tx *gorm.DB, id uint, updates map[string]interface{}) (*types.Disease, error)
	Delete(ctx context.Context, tx *gorm.DB, id uint) (bool, error)
}

type diseaseRepo struct {
	db  *gorm.DB
	log *logger.Logger
}

func NewDiseaseRepo(db *gorm.DB, baseLog *logger.Logger) DiseaseRepo {
	return &diseaseRepo{db: db, log: baseLog.With("repo", "DiseaseRepo")}
}

func (r *diseaseRepo) Create(ctx context.Context, tx *gorm.DB, row *types.Disease) (*types.Disease, error) {
	t := tx
	if t == nil {
		t = r.db
	}
	if err := t.WithContext(ctx).Create(row).Error; err != nil {
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			return nil, fmt.Errorf("disease cui %q: %w", row.CUI, apperrors.ErrDuplicate)
		}
		return nil, fmt.Errorf("create disease: %w", err)
	}
	return row, nil
}

func (r *diseaseRepo) GetByID(ctx context.Context, tx *gorm.DB, id uint) (*types.Disease, error) {
	t := tx
	if t == nil {
		t = r.db
	}
	var row types.Disease
	if err := t.WithContext(ctx).First(&row, id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, fmt.Errorf("get disease %d: %w", id, err)
	}
	return &row, nil
}

func (r *diseaseRepo) GetByCUI(ctx context.Context, tx *gorm.DB, cui string) (*types.Disease, error) {
	t := tx
	if t == nil {
		t = r.db
	}
	var row types.Disease
	if err := t.WithContext(ctx).Where("cui = ?", cui).First(&row).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, fmt.Errorf("get disease by cui %q: %w", cui, err)
	}
	return &row, nil
}

func (r *diseaseRepo) GetWithSymptoms(ctx context.Context, tx *gorm.DB, id uint) (*types.Disease, error) {
	t := tx
	if t == nil {
		t = r.db
	}
	var row types.Disease
	err := t.WithContext(ctx).
		Preload("SymptomAssociations.Symptom").
		First(&row, id).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, fmt.Errorf("get disease %d with symptoms: %w", id, err)
	}
	return &row, nil
}

func (r *diseaseRepo) List(ctx context.Context, tx *gorm.DB, skip, limit int) (int64, []*types.Disease, error) {
	if err := validatePage(skip, limit, maxListLimit); err != nil {
		return 0, nil, err
	}
	t := tx
	if t == nil {
		t = r.db
	}
	var total int64
	if err := t.WithContext(ctx).Model(&types.Disease{}).Count(&total).Error; err != nil {
		return 0, nil, fmt.Errorf("count diseases: %w", err)
	}
	var out []*types.Disease
	if err := t.WithContext(ctx).
		Order("id ASC").
		Offset(skip).
		Limit(limit).
		Find(&out).Error; err != nil {
		return 0, nil, fmt.Errorf("list diseases: %w", err)
	}
	return total, out, nil
}

func (r *diseaseRepo) SearchByName(ctx context.Context, tx *gorm.DB, query string, limit int) ([]*types.Disease, error) {
	if strings.TrimSpace(query) == "" {
		return []*types.Disease{}, nil
	}
	if limit < 1 || limit > maxListLimit {
		limit = 10
	}
	t := tx
	if t == nil {
		t = r.db
	}
	var out []*types.Disease
	if err := t.WithContext(ctx).
		Where("LOWER(name) LIKE ?", "%"+strings.ToLower(query)+"%").
		Limit(limit).
		Find(&out).Error; err != nil {
		return nil, fmt.Errorf("search diseases: %w", err)
	}
	return out, nil
}

func (r *diseaseRepo) UpdateFields(ctx context.Context, tx *gorm.DB, id uint, updates map[string]interface{}) (*types.Disease, error) {
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
		Model(&types.Disease{}).
		Where("id = ?", id).
		Updates(updates).Error; err != nil {
		return nil, fmt.Errorf("update disease %d: %w", id, err)
	}
	return r.GetByID(ctx, tx, id)
}

func (r *diseaseRepo) Delete(ctx context.Context, tx *gorm.DB, id uint) (bool, error) {
	t := tx
	if t == nil {
		t = r.db
	}
	res := t.WithContext(ctx).Delete(&types.Disease{}, id)
	if res.Error != nil {
		return false, fmt.Errorf("delete disease %d: %w", id, res.Error)
	}
	return res.RowsAffected > 0, nil
}
