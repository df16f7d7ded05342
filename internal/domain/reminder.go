package domain

import (
	"time"

	"github.com/google/uuid"
)

// Reminder is one dated note belonging to a single owner. The ID is
// assigned by the storage layer on creation and never changes.
type Reminder struct {
	ID        uuid.UUID `json:"id" gorm:"type:uuid;primary_key"`
	OwnerID   uuid.UUID `json:"ownerId" gorm:"type:uuid;index;not null"`
	Text      string    `json:"text" gorm:"not null"`
	Date      time.Time `json:"date" gorm:"index;not null"`
	CreatedAt time.Time `json:"createdAt"`
	UpdatedAt time.Time `json:"updatedAt"`
}
