package postgres

import (
	"context"

	"gorm.io/gorm"

	"github.com/mgiraldez/aurelia/internal/domain"
)

type ProductTypeRepo struct{ resource[domain.ProductType] }

func NewProductTypeRepo(db *gorm.DB) *ProductTypeRepo {
	return &ProductTypeRepo{resource[domain.ProductType]{db: db}}
}

func (r *ProductTypeRepo) List(ctx context.Context) ([]domain.ProductType, error) {
	var list []domain.ProductType
	if err := r.db.WithContext(ctx).Order("name asc").Find(&list).Error; err != nil {
		return nil, err
	}
	return list, nil
}
