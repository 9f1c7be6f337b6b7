package mocks

import (
	"context"

	"github.com/google/uuid"
	"github.com/stretchr/testify/mock"

	"github.com/mgiraldez/aurelia/internal/domain"
)

type MockProductTypeRepo struct{ mock.Mock }

func (m *MockProductTypeRepo) List(ctx context.Context) ([]domain.ProductType, error) {
	args := m.Called(ctx)
	var list []domain.ProductType
	if args.Get(0) != nil {
		list = args.Get(0).([]domain.ProductType)
	}
	return list, args.Error(1)
}

func (m *MockProductTypeRepo) FindByID(ctx context.Context, id uuid.UUID) (*domain.ProductType, error) {
	args := m.Called(ctx, id)
	var t *domain.ProductType
	if args.Get(0) != nil {
		t = args.Get(0).(*domain.ProductType)
	}
	return t, args.Error(1)
}

func (m *MockProductTypeRepo) Save(ctx context.Context, t *domain.ProductType) error {
	return m.Called(ctx, t).Error(0)
}

func (m *MockProductTypeRepo) Update(ctx context.Context, id uuid.UUID, fields map[string]any) (*domain.ProductType, error) {
	args := m.Called(ctx, id, fields)
	var t *domain.ProductType
	if args.Get(0) != nil {
		t = args.Get(0).(*domain.ProductType)
	}
	return t, args.Error(1)
}

func (m *MockProductTypeRepo) Delete(ctx context.Context, id uuid.UUID) error {
	return m.Called(ctx, id).Error(0)
}

type MockProductRepo struct{ mock.Mock }

func (m *MockProductRepo) List(ctx context.Context, f domain.ProductFilter) ([]domain.Product, int64, error) {
	args := m.Called(ctx, f)
	var list []domain.Product
	if args.Get(0) != nil {
		list = args.Get(0).([]domain.Product)
	}
	return list, args.Get(1).(int64), args.Error(2)
}

func (m *MockProductRepo) FindByID(ctx context.Context, id uuid.UUID) (*domain.Product, error) {
	args := m.Called(ctx, id)
	var p *domain.Product
	if args.Get(0) != nil {
		p = args.Get(0).(*domain.Product)
	}
	return p, args.Error(1)
}

func (m *MockProductRepo) Save(ctx context.Context, p *domain.Product) error {
	return m.Called(ctx, p).Error(0)
}

func (m *MockProductRepo) Update(ctx context.Context, id uuid.UUID, fields map[string]any) (*domain.Product, error) {
	args := m.Called(ctx, id, fields)
	var p *domain.Product
	if args.Get(0) != nil {
		p = args.Get(0).(*domain.Product)
	}
	return p, args.Error(1)
}

func (m *MockProductRepo) Delete(ctx context.Context, id uuid.UUID) error {
	return m.Called(ctx, id).Error(0)
}

func (m *MockProductRepo) CountByType(ctx context.Context, typeID uuid.UUID) (int64, error) {
	args := m.Called(ctx, typeID)
	return args.Get(0).(int64), args.Error(1)
}

type MockContactRepo struct{ mock.Mock }

func (m *MockContactRepo) List(ctx context.Context) ([]domain.ContactMessage, error) {
	args := m.Called(ctx)
	var list []domain.ContactMessage
	if args.Get(0) != nil {
		list = args.Get(0).([]domain.ContactMessage)
	}
	return list, args.Error(1)
}

func (m *MockContactRepo) FindByID(ctx context.Context, id uuid.UUID) (*domain.ContactMessage, error) {
	args := m.Called(ctx, id)
	var msg *domain.ContactMessage
	if args.Get(0) != nil {
		msg = args.Get(0).(*domain.ContactMessage)
	}
	return msg, args.Error(1)
}

func (m *MockContactRepo) Save(ctx context.Context, msg *domain.ContactMessage) error {
	return m.Called(ctx, msg).Error(0)
}

func (m *MockContactRepo) Update(ctx context.Context, id uuid.UUID, fields map[string]any) (*domain.ContactMessage, error) {
	args := m.Called(ctx, id, fields)
	var msg *domain.ContactMessage
	if args.Get(0) != nil {
		msg = args.Get(0).(*domain.ContactMessage)
	}
	return msg, args.Error(1)
}

func (m *MockContactRepo) Delete(ctx context.Context, id uuid.UUID) error {
	return m.Called(ctx, id).Error(0)
}

type MockReviewRepo struct{ mock.Mock }

func (m *MockReviewRepo) List(ctx context.Context, status domain.ReviewStatus) ([]domain.Review, error) {
	args := m.Called(ctx, status)
	var list []domain.Review
	if args.Get(0) != nil {
		list = args.Get(0).([]domain.Review)
	}
	return list, args.Error(1)
}

func (m *MockReviewRepo) FindByID(ctx context.Context, id uuid.UUID) (*domain.Review, error) {
	args := m.Called(ctx, id)
	var rv *domain.Review
	if args.Get(0) != nil {
		rv = args.Get(0).(*domain.Review)
	}
	return rv, args.Error(1)
}

func (m *MockReviewRepo) Save(ctx context.Context, rv *domain.Review) error {
	return m.Called(ctx, rv).Error(0)
}

func (m *MockReviewRepo) Update(ctx context.Context, id uuid.UUID, fields map[string]any) (*domain.Review, error) {
	args := m.Called(ctx, id, fields)
	var rv *domain.Review
	if args.Get(0) != nil {
		rv = args.Get(0).(*domain.Review)
	}
	return rv, args.Error(1)
}

func (m *MockReviewRepo) Delete(ctx context.Context, id uuid.UUID) error {
	return m.Called(ctx, id).Error(0)
}

type MockNewsletterRepo struct{ mock.Mock }

func (m *MockNewsletterRepo) List(ctx context.Context) ([]domain.Subscriber, error) {
	args := m.Called(ctx)
	var list []domain.Subscriber
	if args.Get(0) != nil {
		list = args.Get(0).([]domain.Subscriber)
	}
	return list, args.Error(1)
}

func (m *MockNewsletterRepo) Save(ctx context.Context, s *domain.Subscriber) error {
	return m.Called(ctx, s).Error(0)
}

func (m *MockNewsletterRepo) Delete(ctx context.Context, id uuid.UUID) error {
	return m.Called(ctx, id).Error(0)
}

type MockFileStorage struct{ mock.Mock }

func (m *MockFileStorage) SaveImage(ctx context.Context, filename string, data []byte) (string, error) {
	args := m.Called(ctx, filename, data)
	return args.String(0), args.Error(1)
}
