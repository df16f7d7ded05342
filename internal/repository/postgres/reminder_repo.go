package postgres

import (
	"context"

	"github.com/google/uuid"
	"github.com/mika/reminders-web/internal/domain"
	"gorm.io/gorm"
)

type reminderRepository struct {
	db *gorm.DB
}

func NewReminderRepository(db *gorm.DB) *reminderRepository {
	return &reminderRepository{db: db}
}

func (r *reminderRepository) Create(ctx context.Context, reminder *domain.Reminder) error {
	if reminder.ID == uuid.Nil {
		reminder.ID = uuid.New()
	}
	return r.db.WithContext(ctx).Create(reminder).Error
}

func (r *reminderRepository) ListByOwner(ctx context.Context, ownerID uuid.UUID) ([]*domain.Reminder, error) {
	var reminders []*domain.Reminder
	err := r.db.WithContext(ctx).
		Where("owner_id = ?", ownerID).
		Order("date ASC").
		Find(&reminders).Error
	if err != nil {
		return nil, err
	}
	return reminders, nil
}

func (r *reminderRepository) GetByID(ctx context.Context, ownerID, id uuid.UUID) (*domain.Reminder, error) {
	var reminder domain.Reminder
	err := r.db.WithContext(ctx).
		First(&reminder, "id = ? AND owner_id = ?", id, ownerID).Error
	if err != nil {
		return nil, err
	}
	return &reminder, nil
}

func (r *reminderRepository) UpdateFields(ctx context.Context, ownerID, id uuid.UUID, fields map[string]any) error {
	res := r.db.WithContext(ctx).
		Model(&domain.Reminder{}).
		Where("id = ? AND owner_id = ?", id, ownerID).
		Updates(fields)
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return gorm.ErrRecordNotFound
	}
	return nil
}

func (r *reminderRepository) Delete(ctx context.Context, ownerID, id uuid.UUID) error {
	// Zero rows affected is fine: deletes are idempotent.
	return r.db.WithContext(ctx).
		Delete(&domain.Reminder{}, "id = ? AND owner_id = ?", id, ownerID).Error
}
