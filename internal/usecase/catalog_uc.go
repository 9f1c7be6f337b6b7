package usecase

import (
	"context"
	"errors"
	"math"
	"strings"

	"github.com/google/uuid"

	"github.com/mgiraldez/aurelia/internal/domain"
)

// CatalogUC manages product types and products. Required-field checks
// happen here, before any repository call: a submission with a missing
// required field never reaches the database.
type CatalogUC struct {
	Types    domain.ProductTypeRepo
	Products domain.ProductRepo
}

func (uc *CatalogUC) ListTypes(ctx context.Context) ([]domain.ProductType, error) {
	return uc.Types.List(ctx)
}

func (uc *CatalogUC) CreateType(ctx context.Context, t *domain.ProductType) error {
	t.Name = strings.TrimSpace(t.Name)
	if t.Name == "" {
		return &domain.ValidationError{Field: "name"}
	}
	if t.ID == uuid.Nil {
		t.ID = uuid.New()
	}
	return uc.Types.Save(ctx, t)
}

func (uc *CatalogUC) UpdateType(ctx context.Context, id uuid.UUID, fields map[string]any) (*domain.ProductType, error) {
	if name, ok := fields["name"].(string); ok {
		name = strings.TrimSpace(name)
		if name == "" {
			return nil, &domain.ValidationError{Field: "name"}
		}
		fields["name"] = name
	}
	return uc.Types.Update(ctx, id, fields)
}

// DeleteType pre-checks for dependent products and refuses the delete
// when any exist. The check-then-delete window is racy; the database FK
// constraint installed at migration is the authoritative guard.
func (uc *CatalogUC) DeleteType(ctx context.Context, id uuid.UUID) error {
	n, err := uc.Products.CountByType(ctx, id)
	if err != nil {
		return err
	}
	if n > 0 {
		return &domain.ConflictError{Dependents: n}
	}
	return uc.Types.Delete(ctx, id)
}

func (uc *CatalogUC) ListProducts(ctx context.Context, f domain.ProductFilter) ([]domain.Product, int64, error) {
	if f.PageSize == 0 {
		f.PageSize = 24
	}
	return uc.Products.List(ctx, f)
}

func (uc *CatalogUC) GetProduct(ctx context.Context, id uuid.UUID) (*domain.Product, error) {
	return uc.Products.FindByID(ctx, id)
}

func (uc *CatalogUC) CreateProduct(ctx context.Context, p *domain.Product) error {
	p.Name = strings.TrimSpace(p.Name)
	if p.Name == "" {
		return &domain.ValidationError{Field: "name"}
	}
	if p.ProductTypeID == uuid.Nil {
		return &domain.ValidationError{Field: "product_type_id"}
	}
	if p.Price < 0 {
		return &domain.ValidationError{Field: "price"}
	}
	if _, err := uc.Types.FindByID(ctx, p.ProductTypeID); err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			return &domain.ValidationError{Field: "product_type_id"}
		}
		return err
	}
	if p.ID == uuid.Nil {
		p.ID = uuid.New()
	}
	p.Price = roundCents(p.Price)
	if strings.TrimSpace(p.ImageURL) == "" {
		p.ImageURL = domain.DefaultProductImage
	}
	return uc.Products.Save(ctx, p)
}

func (uc *CatalogUC) UpdateProduct(ctx context.Context, id uuid.UUID, fields map[string]any) (*domain.Product, error) {
	if name, ok := fields["name"].(string); ok {
		name = strings.TrimSpace(name)
		if name == "" {
			return nil, &domain.ValidationError{Field: "name"}
		}
		fields["name"] = name
	}
	if price, ok := fields["price"].(float64); ok {
		if price < 0 {
			return nil, &domain.ValidationError{Field: "price"}
		}
		fields["price"] = roundCents(price)
	}
	if tid, ok := fields["product_type_id"].(uuid.UUID); ok {
		if _, err := uc.Types.FindByID(ctx, tid); err != nil {
			if errors.Is(err, domain.ErrNotFound) {
				return nil, &domain.ValidationError{Field: "product_type_id"}
			}
			return nil, err
		}
	}
	return uc.Products.Update(ctx, id, fields)
}

func (uc *CatalogUC) DeleteProduct(ctx context.Context, id uuid.UUID) error {
	return uc.Products.Delete(ctx, id)
}

// Prices are stored with exactly two decimal places.
func roundCents(v float64) float64 {
	return math.Round(v*100) / 100
}
