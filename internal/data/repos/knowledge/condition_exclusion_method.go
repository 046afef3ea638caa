package knowledge

import (
	"context"
	"errors"
	"fmt"

	"gorm.io/gorm"

	types "github.com/medibridge/medibridge-backend/internal/domain"
	apperrors "github.com/medibridge/medibridge-backend/internal/pkg/errors"
	"github.com/medibridge/medibridge-backend/internal/pkg/logger"
)

// rowExists is the endpoint precondition check shared by the association
// repos in this package.
func rowExists(ctx context.Context, t *gorm.DB, model interface{}, id uint) (bool, error) {
	var n int64
	if err := t.WithContext(ctx).Model(model).Where("id = ?", id).Count(&n).Error; err != nil {
		return false, err
	}
	return n > 0, nil
}

type ConditionExclusionMethodRepo interface {
	// Add links a condition to an exclusion method. Both endpoints must
	// exist and the pair must not already be linked.
	Add(ctx context.Context, tx *gorm.DB, conditionID, exclusionMethodID uint) (*types.ConditionExclusionMethod, error)
	Remove(ctx context.Context, tx *gorm.DB, associationID uint) (bool, error)
	ListMethodsByCondition(ctx context.Context, tx *gorm.DB, conditionID uint) ([]*types.ExclusionMethod, error)
	ListConditionsByMethod(ctx context.Context, tx *gorm.DB, exclusionMethodID uint) ([]*types.Condition, error)
}

type conditionExclusionMethodRepo struct {
	db  *gorm.DB
	log *logger.Logger
}

func NewConditionExclusionMethodRepo(db *gorm.DB, baseLog *logger.Logger) ConditionExclusionMethodRepo {
	return &conditionExclusionMethodRepo{db: db, log: baseLog.With("repo", "ConditionExclusionMethodRepo")}
}

func (r *conditionExclusionMethodRepo) Add(ctx context.Context, tx *gorm.DB, conditionID, exclusionMethodID uint) (*types.ConditionExclusionMethod, error) {
	t := tx
	if t == nil {
		t = r.db
	}
	row := &types.ConditionExclusionMethod{
		ConditionID:       conditionID,
		ExclusionMethodID: exclusionMethodID,
	}
	err := t.WithContext(ctx).Transaction(func(txn *gorm.DB) error {
		ok, err := rowExists(ctx, txn, &types.Condition{}, conditionID)
		if err != nil {
			return fmt.Errorf("check condition %d: %w", conditionID, err)
		}
		if !ok {
			return fmt.Errorf("condition %d: %w", conditionID, apperrors.ErrNotFound)
		}
		ok, err = rowExists(ctx, txn, &types.ExclusionMethod{}, exclusionMethodID)
		if err != nil {
			return fmt.Errorf("check exclusion method %d: %w", exclusionMethodID, err)
		}
		if !ok {
			return fmt.Errorf("exclusion method %d: %w", exclusionMethodID, apperrors.ErrNotFound)
		}

		if err := txn.WithContext(ctx).Create(row).Error; err != nil {
			// The unique pair index is the last line of defense against a
			// concurrent insert of the same pair.
			if errors.Is(err, gorm.ErrDuplicatedKey) {
				return fmt.Errorf("condition %d / exclusion method %d: %w", conditionID, exclusionMethodID, apperrors.ErrDuplicate)
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

func (r *conditionExclusionMethodRepo) Remove(ctx context.Context, tx *gorm.DB, associationID uint) (bool, error) {
	t := tx
	if t == nil {
		t = r.db
	}
	res := t.WithContext(ctx).Delete(&types.ConditionExclusionMethod{}, associationID)
	if res.Error != nil {
		return false, fmt.Errorf("remove association %d: %w", associationID, res.Error)
	}
	return res.RowsAffected > 0, nil
}

func (r *conditionExclusionMethodRepo) ListMethodsByCondition(ctx context.Context, tx *gorm.DB, conditionID uint) ([]*types.ExclusionMethod, error) {
	t := tx
	if t == nil {
		t = r.db
	}
	var out []*types.ExclusionMethod
	if err := t.WithContext(ctx).
		Model(&types.ExclusionMethod{}).
		Joins("JOIN condition_exclusion_methods ON condition_exclusion_methods.exclusion_method_id = exclusion_methods.id").
		Where("condition_exclusion_methods.condition_id = ?", conditionID).
		Order("exclusion_methods.id ASC").
		Find(&out).Error; err != nil {
		return nil, fmt.Errorf("list exclusion methods for condition %d: %w", conditionID, err)
	}
	return out, nil
}

func (r *conditionExclusionMethodRepo) ListConditionsByMethod(ctx context.Context, tx *gorm.DB, exclusionMethodID uint) ([]*types.Condition, error) {
	t := tx
	if t == nil {
		t = r.db
	}
	var out []*types.Condition
	if err := t.WithContext(ctx).
		Model(&types.Condition{}).
		Joins("JOIN condition_exclusion_methods ON condition_exclusion_methods.condition_id = conditions.id").
		Where("condition_exclusion_methods.exclusion_method_id = ?", exclusionMethodID).
		Order("conditions.id ASC").
		Find(&out).Error; err != nil {
		return nil, fmt.Errorf("list conditions for exclusion method %d: %w", exclusionMethodID, err)
	}
	return out, nil
}
