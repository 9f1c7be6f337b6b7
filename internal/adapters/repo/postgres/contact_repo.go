package postgres

import (
	"context"

	"gorm.io/gorm"

	"github.com/mgiraldez/aurelia/internal/domain"
)

type ContactRepo struct{ resource[domain.ContactMessage] }

func NewContactRepo(db *gorm.DB) *ContactRepo {
	return &ContactRepo{resource[domain.ContactMessage]{db: db}}
}

func (r *ContactRepo) List(ctx context.Context) ([]domain.ContactMessage, error) {
	var list []domain.ContactMessage
	if err := r.db.WithContext(ctx).Order("created_at desc").Find(&list).Error; err != nil {
		return nil, err
	}
	return list, nil
}
