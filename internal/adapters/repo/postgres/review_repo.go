package postgres

import (
	"context"

	"gorm.io/gorm"

	"github.com/mgiraldez/aurelia/internal/domain"
)

type ReviewRepo struct{ resource[domain.Review] }

func NewReviewRepo(db *gorm.DB) *ReviewRepo {
	return &ReviewRepo{resource[domain.Review]{db: db}}
}

// List returns reviews newest first, optionally limited to one status.
func (r *ReviewRepo) List(ctx context.Context, status domain.ReviewStatus) ([]domain.Review, error) {
	var list []domain.Review
	q := r.db.WithContext(ctx).Order("created_at desc")
	if status != "" {
		q = q.Where("status = ?", status)
	}
	if err := q.Find(&list).Error; err != nil {
		return nil, err
	}
	return list, nil
}
