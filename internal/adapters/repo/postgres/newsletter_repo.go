package postgres

import (
	"context"
	"strings"

	"gorm.io/gorm"

	"github.com/mgiraldez/aurelia/internal/domain"
)

type NewsletterRepo struct{ resource[domain.Subscriber] }

func NewNewsletterRepo(db *gorm.DB) *NewsletterRepo {
	return &NewsletterRepo{resource[domain.Subscriber]{db: db}}
}

func (r *NewsletterRepo) List(ctx context.Context) ([]domain.Subscriber, error) {
	var list []domain.Subscriber
	if err := r.db.WithContext(ctx).Order("created_at desc").Find(&list).Error; err != nil {
		return nil, err
	}
	return list, nil
}

func (r *NewsletterRepo) Save(ctx context.Context, s *domain.Subscriber) error {
	if s.Email != "" {
		s.Email = strings.ToLower(s.Email)
	}
	return r.resource.Save(ctx, s)
}
