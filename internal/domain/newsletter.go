package domain

import (
	"time"

	"github.com/google/uuid"
)

type Subscriber struct {
	ID        uuid.UUID `gorm:"type:uuid;primaryKey"`
	Email     string    `gorm:"size:140;not null;index"`
	CreatedAt time.Time
}
