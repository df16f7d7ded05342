package repository

import (
	"context"

	"github.com/google/uuid"
	"github.com/mika/reminders-web/internal/domain"
)

type UserRepository interface {
	Create(ctx context.Context, user *domain.User) error
	GetByID(ctx context.Context, id uuid.UUID) (*domain.User, error)
	GetByEmail(ctx context.Context, email string) (*domain.User, error)
	Update(ctx context.Context, user *domain.User) error
}

type SessionRepository interface {
	Create(ctx context.Context, session *domain.UserSession) error
	GetByUserID(ctx context.Context, userID uuid.UUID) (*domain.UserSession, error)
	Delete(ctx context.Context, id uuid.UUID) error
	DeleteByUserID(ctx context.Context, userID uuid.UUID) error
}

// ReminderRepository is the storage boundary for one owner's reminder
// collection. Every operation is scoped by owner; a reminder is never
// reachable through any other owner's scope.
type ReminderRepository interface {
	// Create persists the reminder and assigns its ID. The storage
	// layer is authoritative for identifiers; callers must leave
	// reminder.ID unset.
	Create(ctx context.Context, reminder *domain.Reminder) error
	// ListByOwner returns the owner's reminders ordered ascending by
	// date. Ties fall back to storage order.
	ListByOwner(ctx context.Context, ownerID uuid.UUID) ([]*domain.Reminder, error)
	GetByID(ctx context.Context, ownerID, id uuid.UUID) (*domain.Reminder, error)
	// UpdateFields writes only the given columns. Returns
	// gorm.ErrRecordNotFound when no row matches the owner/id pair.
	UpdateFields(ctx context.Context, ownerID, id uuid.UUID, fields map[string]any) error
	// Delete removes the reminder. Deleting a missing id is not an
	// error.
	Delete(ctx context.Context, ownerID, id uuid.UUID) error
}

type Repositories struct {
	User     UserRepository
	Session  SessionRepository
	Reminder ReminderRepository
}
