package domain

import (
	"context"

	"github.com/google/uuid"
)

type ProductTypeRepo interface {
	List(ctx context.Context) ([]ProductType, error)
	FindByID(ctx context.Context, id uuid.UUID) (*ProductType, error)
	Save(ctx context.Context, t *ProductType) error
	Update(ctx context.Context, id uuid.UUID, fields map[string]any) (*ProductType, error)
	Delete(ctx context.Context, id uuid.UUID) error
}

type ProductRepo interface {
	List(ctx context.Context, f ProductFilter) ([]Product, int64, error)
	FindByID(ctx context.Context, id uuid.UUID) (*Product, error)
	Save(ctx context.Context, p *Product) error
	Update(ctx context.Context, id uuid.UUID, fields map[string]any) (*Product, error)
	Delete(ctx context.Context, id uuid.UUID) error
	CountByType(ctx context.Context, typeID uuid.UUID) (int64, error)
}

type ContactRepo interface {
	List(ctx context.Context) ([]ContactMessage, error)
	FindByID(ctx context.Context, id uuid.UUID) (*ContactMessage, error)
	Save(ctx context.Context, m *ContactMessage) error
	Update(ctx context.Context, id uuid.UUID, fields map[string]any) (*ContactMessage, error)
	Delete(ctx context.Context, id uuid.UUID) error
}

type ReviewRepo interface {
	List(ctx context.Context, status ReviewStatus) ([]Review, error)
	FindByID(ctx context.Context, id uuid.UUID) (*Review, error)
	Save(ctx context.Context, rv *Review) error
	Update(ctx context.Context, id uuid.UUID, fields map[string]any) (*Review, error)
	Delete(ctx context.Context, id uuid.UUID) error
}

type NewsletterRepo interface {
	List(ctx context.Context) ([]Subscriber, error)
	Save(ctx context.Context, s *Subscriber) error
	Delete(ctx context.Context, id uuid.UUID) error
}

// FileStorage stores an uploaded image and returns the public URL path
// it will be served from.
type FileStorage interface {
	SaveImage(ctx context.Context, filename string, data []byte) (string, error)
}

// ContactNotifier tells the shop owner about a new contact message.
// Implementations must be safe to call with notifications unconfigured.
type ContactNotifier interface {
	NotifyContactMessage(m *ContactMessage) error
}
