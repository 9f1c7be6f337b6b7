package domain

import (
	"time"

	"github.com/google/uuid"
)

// DefaultProductImage is used when a product is created without an image.
const DefaultProductImage = "/public/assets/img/placeholder-jewel.png"

type ProductType struct {
	ID          uuid.UUID `gorm:"type:uuid;primaryKey"`
	Name        string    `gorm:"size:140;not null"`
	Description string    `gorm:"type:text"`
	ImageURL    string    `gorm:"size:255"`
	CreatedAt   time.Time
}

type Product struct {
	ID            uuid.UUID `gorm:"type:uuid;primaryKey"`
	Name          string    `gorm:"size:180;not null"`
	Description   string    `gorm:"type:text"`
	Price         float64   `gorm:"type:decimal(12,2);not null"`
	ProductTypeID uuid.UUID `gorm:"type:uuid;index"`
	ProductType   *ProductType
	ImageURL      string `gorm:"size:255"`
	CreatedAt     time.Time
	UpdatedAt     time.Time
}

type ProductFilter struct {
	Query    string
	TypeID   uuid.UUID
	Sort     string
	Page     int
	PageSize int
}
