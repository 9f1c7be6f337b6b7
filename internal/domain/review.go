package domain

import (
	"time"

	"github.com/google/uuid"
)

type ReviewStatus string

const (
	ReviewStatusPending  ReviewStatus = "pending"
	ReviewStatusApproved ReviewStatus = "approved"
	ReviewStatusRejected ReviewStatus = "rejected"
)

// CanTransition reports whether the status may change to the given one.
// Only pending reviews can move; approved and rejected are terminal.
func (s ReviewStatus) CanTransition(to ReviewStatus) bool {
	if s != ReviewStatusPending {
		return false
	}
	return to == ReviewStatusApproved || to == ReviewStatusRejected
}

type Review struct {
	ID        uuid.UUID    `gorm:"type:uuid;primaryKey"`
	Name      string       `gorm:"size:140;not null"`
	Email     string       `gorm:"size:140;not null"`
	Content   string       `gorm:"type:text;not null"`
	Status    ReviewStatus `gorm:"type:varchar(10);index;default:'pending'"`
	CreatedAt time.Time
	UpdatedAt time.Time
}
