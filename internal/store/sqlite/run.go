package sqlite

import (
	"context"
	"errors"

	"tracer/internal/store/model"

	"gorm.io/gorm"
)

// runRepository implements the store.RunRepository interface.
type runRepository struct {
	db *gorm.DB
}

// NewRunRepo creates a new runRepository.
func NewRunRepo(db *gorm.DB) *runRepository {
	return &runRepository{db: db}
}

// Save 在同一事务内写入 run 与其全部 exposure 行。
func (r *runRepository) Save(ctx context.Context, run *model.TraceRunModel, exposures []model.ExposureModel) error {
	if run == nil {
		return errors.New("run cannot be nil")
	}
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Create(run).Error; err != nil {
			return err
		}
		if len(exposures) == 0 {
			return nil
		}
		return tx.Create(&exposures).Error
	})
}

func (r *runRepository) Latest(ctx context.Context) (*model.TraceRunModel, error) {
	var run model.TraceRunModel
	err := r.db.WithContext(ctx).Order("created_at DESC, id DESC").First(&run).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &run, nil
}

func (r *runRepository) ListRecent(ctx context.Context, limit int) ([]model.TraceRunModel, error) {
	var runs []model.TraceRunModel
	q := r.db.WithContext(ctx).Order("created_at DESC, id DESC")
	if limit > 0 {
		q = q.Limit(limit)
	}
	if err := q.Find(&runs).Error; err != nil {
		return nil, err
	}
	return runs, nil
}

func (r *runRepository) Exposures(ctx context.Context, runID string) ([]model.ExposureModel, error) {
	var rows []model.ExposureModel
	if err := r.db.WithContext(ctx).
		Where("run_id = ?", runID).
		Order("infected_id, position").
		Find(&rows).Error; err != nil {
		return nil, err
	}
	return rows, nil
}
