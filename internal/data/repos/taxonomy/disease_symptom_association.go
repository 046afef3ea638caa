package taxonomy

import (
	"context"
	"errors"
	"fmt"

	"gorm.io/gorm"

	types "github.com/medibridge/medibridge-backend/internal/domain"
	apperrors "github.com/medibridge/medibridge-backend/internal/pkg/errors"
	"github.com/medibridge/medibridge-backend/internal/pkg/logger"
)

func rowExists(ctx context.Context, t *gorm.DB, model interface{}, id uint) (bool, error) {
	var n int64
	if err := t.WithContext(ctx).Model(model).Where("id = ?", id).Count(&n).Error; err != nil {
		return false, err
	}
	return n > 0, nil
}

type DiseaseSymptomAssociationRepo interface {
	// Add links a disease to a symptom. Both endpoints must exist.
	// Re-adding an existing pair returns the stored row unchanged, which
	// keeps dataset re-imports idempotent.
	Add(ctx context.Context, tx *gorm.DB, diseaseID, symptomID uint, source string) (*types.DiseaseSymptomAssociation, error)
	Remove(ctx context.Context, tx *gorm.DB, associationID uint) (bool, error)
	ListSymptomsByDisease(ctx context.Context, tx *gorm.DB, diseaseID uint) ([]*types.Symptom, error)
	ListDiseasesBySymptom(ctx context.Context, tx *gorm.DB, symptomID uint) ([]*types.Disease, error)
}

type diseaseSymptomAssociationRepo struct {
	db  *gorm.DB
	log *logger.Logger
}

func NewDiseaseSymptomAssociationRepo(db *gorm.DB, baseLog *logger.Logger) DiseaseSymptomAssociationRepo {
	return &diseaseSymptomAssociationRepo{db: db, log: baseLog.With("repo", "DiseaseSymptomAssociationRepo")}
}

func (r *diseaseSymptomAssociationRepo) Add(ctx context.Context, tx *gorm.DB, diseaseID, symptomID uint, source string) (*types.DiseaseSymptomAssociation, error) {
	t := tx
	if t == nil {
		t = r.db
	}
	var out *types.DiseaseSymptomAssociation
	err := t.WithContext(ctx).Transaction(func(txn *gorm.DB) error {
		ok, err := rowExists(ctx, txn, &types.Disease{}, diseaseID)
		if err != nil {
			return fmt.Errorf("check disease %d: %w", diseaseID, err)
		}
		if !ok {
			return fmt.Errorf("disease %d: %w", diseaseID, apperrors.ErrNotFound)
		}
		ok, err = rowExists(ctx, txn, &types.Symptom{}, symptomID)
		if err != nil {
			return fmt.Errorf("check symptom %d: %w", symptomID, err)
		}
		if !ok {
			return fmt.Errorf("symptom %d: %w", symptomID, apperrors.ErrNotFound)
		}

		var existing types.DiseaseSymptomAssociation
		err = txn.WithContext(ctx).
			Where("disease_id = ? AND symptom_id = ?", diseaseID, symptomID).
			First(&existing).Error
		if err == nil {
			out = &existing
			return nil
		}
		if !errors.Is(err, gorm.ErrRecordNotFound) {
			return fmt.Errorf("check association: %w", err)
		}

		row := &types.DiseaseSymptomAssociation{
			DiseaseID: diseaseID,
			SymptomID: symptomID,
			Source:    source,
		}
		if err := txn.WithContext(ctx).Create(row).Error; err != nil {
			// A concurrent insert of the same pair trips the unique index;
			// fold it into the idempotent outcome.
			if errors.Is(err, gorm.ErrDuplicatedKey) {
				var raced types.DiseaseSymptomAssociation
				if ferr := txn.WithContext(ctx).
					Where("disease_id = ? AND symptom_id = ?", diseaseID, symptomID).
					First(&raced).Error; ferr == nil {
					out = &raced
					return nil
				}
			}
			return fmt.Errorf("create association: %w", err)
		}
		out = row
		return nil
	})
	if err != nil {
		return nil, err
	}
	return out, nil
}

func (r *diseaseSymptomAssociationRepo) Remove(ctx context.Context, tx *gorm.DB, associationID uint) (bool, error) {
	t := tx
	if t == nil {
		t = r.db
	}
	res := t.WithContext(ctx).Delete(&types.DiseaseSymptomAssociation{}, associationID)
	if res.Error != nil {
		return false, fmt.Errorf("remove association %d: %w", associationID, res.Error)
	}
	return res.RowsAffected > 0, nil
}

func (r *diseaseSymptomAssociationRepo) ListSymptomsByDisease(ctx context.Context, tx *gorm.DB, diseaseID uint) ([]*types.Symptom, error) {
	t := tx
	if t == nil {
		t = r.db
	}
	var out []*types.Symptom
	if err := t.WithContext(ctx).
		Model(&types.Symptom{}).
		Joins("JOIN disease_symptom_associations ON disease_symptom_associations.symptom_id = symptoms.id").
		Where("disease_symptom_associations.disease_id = ?", diseaseID).
		Order("symptoms.id ASC").
		Find(&out).Error; err != nil {
		return nil, fmt.Errorf("list symptoms for disease %d: %w", diseaseID, err)
	}
	return out, nil
}

func (r *diseaseSymptomAssociationRepo) ListDiseasesBySymptom(ctx context.Context, tx *gorm.DB, symptomID uint) ([]*types.Disease, error) {
	t := tx
	if t == nil {
		t = r.db
	}
	var out []*types.Disease
	if err := t.WithContext(ctx).
		Model(&types.Disease{}).
		Joins("JOIN disease_symptom_associations ON disease_symptom_associations.disease_id = diseases.id").
		Where("disease_symptom_associations.symptom_id = ?", symptomID).
		Order("diseases.id ASC").
		Find(&out).Error; err != nil {
		return nil, fmt.Errorf("list diseases for symptom %d: %w", symptomID, err)
	}
	return out, nil
}
