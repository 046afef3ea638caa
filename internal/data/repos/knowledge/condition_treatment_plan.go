package knowledge

import (
	"context"
	"errors"
	"fmt"
	"time"

	"gorm.io/gorm"

	types "github.com/medibridge/medibridge-backend/internal/domain"
	apperrors "github.com/medibridge/medibridge-backend/internal/pkg/errors"
	"github.com/medibridge/medibridge-backend/internal/pkg/logger"
)

type ConditionTreatmentPlanRepo interface {
	// Add links a condition to a treatment plan with its ranking payload.
	// Both endpoints must exist and the pair must not already be linked.
	Add(ctx context.Context, tx *gorm.DB, row *types.ConditionTreatmentPlan) (*types.ConditionTreatmentPlan, error)
	GetByID(ctx context.Context, tx *gorm.DB, associationID uint) (*types.ConditionTreatmentPlan, error)
	// UpdateFields mutates the association payload only (is_primary,
	// priority, notes); the endpoints themselves never change.
	UpdateFields(ctx context.Context, tx *gorm.DB, associationID uint, updates map[string]interface{}) (*types.ConditionTreatmentPlan, error)
	Remove(ctx context.Context, tx *gorm.DB, associationID uint) (bool, error)
	ListPlansByCondition(ctx context.Context, tx *gorm.DB, conditionID uint) ([]*types.TreatmentPlan, error)
	ListConditionsByPlan(ctx context.Context, tx *gorm.DB, treatmentPlanID uint) ([]*types.Condition, error)
}

type conditionTreatmentPlanRepo struct {
	db  *gorm.DB
	log *logger.Logger
}

func NewConditionTreatmentPlanRepo(db *gorm.DB, baseLog *logger.Logger) ConditionTreatmentPlanRepo {
	return &conditionTreatmentPlanRepo{db: db, log: baseLog.With("repo", "ConditionTreatmentPlanRepo")}
}

func (r *conditionTreatmentPlanRepo) Add(ctx context.Context, tx *gorm.DB, row *types.ConditionTreatmentPlan) (*types.ConditionTreatmentPlan, error) {
	t := tx
	if t == nil {
		t = r.db
	}
	err := t.WithContext(ctx).Transaction(func(txn *gorm.DB) error {
		ok, err := rowExists(ctx, txn, &types.Condition{}, row.ConditionID)
		if err != nil {
			return fmt.Errorf("check condition %d: %w", row.ConditionID, err)
		}
		if !ok {
			return fmt.Errorf("condition %d: %w", row.ConditionID, apperrors.ErrNotFound)
		}
		ok, err = rowExists(ctx, txn, &types.TreatmentPlan{}, row.TreatmentPlanID)
		if err != nil {
			return fmt.Errorf("check treatment plan %d: %w", row.TreatmentPlanID, err)
		}
		if !ok {
			return fmt.Errorf("treatment plan %d: %w", row.TreatmentPlanID, apperrors.ErrNotFound)
		}

		if err := txn.WithContext(ctx).Create(row).Error; err != nil {
			if errors.Is(err, gorm.ErrDuplicatedKey) {
				return fmt.Errorf("condition %d / treatment plan %d: %w", row.ConditionID, row.TreatmentPlanID, apperrors.ErrDuplicate)
			}
			return fmt.Errorf("create association: %w", err)
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	return row, nil
}

func (r *conditionTreatmentPlanRepo) GetByID(ctx context.Context, tx *gorm.DB, associationID uint) (*types.ConditionTreatmentPlan, error) {
	t := tx
	if t == nil {
		t = r.db
	}
	var row types.ConditionTreatmentPlan
	if err := t.WithContext(ctx).First(&row, associationID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, fmt.Errorf("get association %d: %w", associationID, err)
	}
	return &row, nil
}

func (r *conditionTreatmentPlanRepo) UpdateFields(ctx context.Context, tx *gorm.DB, associationID uint, updates map[string]interface{}) (*types.ConditionTreatmentPlan, error) {
	existing, err := r.GetByID(ctx, tx, associationID)
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
		Model(&types.ConditionTreatmentPlan{}).
		Where("id = ?", associationID).
		Updates(updates).Error; err != nil {
		return nil, fmt.Errorf("update association %d: %w", associationID, err)
	}
	return r.GetByID(ctx, tx, associationID)
}

func (r *conditionTreatmentPlanRepo) Remove(ctx context.Context, tx *gorm.DB, associationID uint) (bool, error) {
	t := tx
	if t == nil {
		t = r.db
	}
	res := t.WithContext(ctx).Delete(&types.ConditionTreatmentPlan{}, associationID)
	if res.Error != nil {
		return false, fmt.Errorf("remove association %d: %w", associationID, res.Error)
	}
	return res.RowsAffected > 0, nil
}

func (r *conditionTreatmentPlanRepo) ListPlansByCondition(ctx context.Context, tx *gorm.DB, conditionID uint) ([]*types.TreatmentPlan, error) {
	t := tx
	if t == nil {
		t = r.db
	}
	var out []*types.TreatmentPlan
	if err := t.WithContext(ctx).
		Model(&types.TreatmentPlan{}).
		Joins("JOIN condition_treatment_plans ON condition_treatment_plans.treatment_plan_id = treatment_plans.id").
		Where("condition_treatment_plans.condition_id = ?", conditionID).
		Order("condition_treatment_plans.priority DESC, condition_treatment_plans.id ASC").
		Find(&out).Error; err != nil {
		return nil, fmt.Errorf("list treatment plans for condition %d: %w", conditionID, err)
	}
	return out, nil
}

func (r *conditionTreatmentPlanRepo) ListConditionsByPlan(ctx context.Context, tx *gorm.DB, treatmentPlanID uint) ([]*types.Condition, error) {
	t := tx
	if t == nil {
		t = r.db
	}
	var out []*types.Condition
	if err := t.WithContext(ctx).
		Model(&types.Condition{}).
		Joins("JOIN condition_treatment_plans ON condition_treatment_plans.condition_id = conditions.id").
		Where("condition_treatment_plans.treatment_plan_id = ?", treatmentPlanID).
		Order("conditions.id ASC").
		Find(&out).Error; err != nil {
		return nil, fmt.Errorf("list conditions for treatment plan %d: %w", treatmentPlanID, err)
	}
	return out, nil
}
