package postgres

import (
	"context"
	"errors"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/mgiraldez/aurelia/internal/domain"
)

// resource is the shared CRUD core behind every entity repository. The
// per-entity repos embed it and add their own listing/filtering on top.
type resource[T any] struct{ db *gorm.DB }

func (r *resource[T]) FindByID(ctx context.Context, id uuid.UUID) (*T, error) {
	var rec T
	if err := r.db.WithContext(ctx).First(&rec, "id = ?", id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, domain.ErrNotFound
		}
		return nil, err
	}
	return &rec, nil
}

func (r *resource[T]) Save(ctx context.Context, rec *T) error {
	return r.db.WithContext(ctx).Save(rec).Error
}

// Update merges the given fields into the stored record and returns the
// fresh row. A missing id is reported before anything is written.
func (r *resource[T]) Update(ctx context.Context, id uuid.UUID, fields map[string]any) (*T, error) {
	var rec T
	q := r.db.WithContext(ctx)
	if err := q.First(&rec, "id = ?", id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, domain.ErrNotFound
		}
		return nil, err
	}
	if len(fields) > 0 {
		if err := q.Model(&rec).Where("id = ?", id).Updates(fields).Error; err != nil {
			return nil, err
		}
	}
	if err := q.First(&rec, "id = ?", id).Error; err != nil {
		return nil, err
	}
	return &rec, nil
}

func (r *resource[T]) Delete(ctx context.Context, id uuid.UUID) error {
	var rec T
	res := r.db.WithContext(ctx).Where("id = ?", id).Delete(&rec)
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return domain.ErrNotFound
	}
	return nil
}
