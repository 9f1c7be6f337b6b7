package domain

import (
	"time"

	"github.com/google/uuid"
)

type ContactStatus string

const (
	ContactStatusNew     ContactStatus = "new"
	ContactStatusRead    ContactStatus = "read"
	ContactStatusReplied ContactStatus = "replied"
)

// CanTransition reports whether the status may move forward to the given
// one. The lifecycle is strictly forward: new -> read -> replied, with
// replied reachable directly from new. There is no way back.
func (s ContactStatus) CanTransition(to ContactStatus) bool {
	switch s {
	case ContactStatusNew:
		return to == ContactStatusRead || to == ContactStatusReplied
	case ContactStatusRead:
		return to == ContactStatusReplied
	}
	return false
}

type ContactMessage struct {
	ID        uuid.UUID     `gorm:"type:uuid;primaryKey"`
	Name      string        `gorm:"size:140;not null"`
	Email     string        `gorm:"size:140;not null"`
	Subject   string        `gorm:"size:180;not null"`
	Message   string        `gorm:"type:text;not null"`
	Status    ContactStatus `gorm:"type:varchar(10);index;default:'new'"`
	CreatedAt time.Time
	UpdatedAt time.Time
}
