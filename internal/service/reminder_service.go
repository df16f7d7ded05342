package service

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/mika/reminders-web/internal/dateutil"
	"github.com/mika/reminders-web/internal/domain"
	"github.com/mika/reminders-web/internal/repository"
	"go.uber.org/zap"
)

// ReminderService is the data-access layer for one owner's reminder
// collection. It validates every argument before touching storage and
// propagates storage failures unchanged; the only errors it raises
// itself wrap domain.ErrInvalidArgument.
type ReminderService struct {
	reminderRepo repository.ReminderRepository
	log          *zap.Logger
}

func NewReminderService(reminderRepo repository.ReminderRepository, log *zap.Logger) *ReminderService {
	return &ReminderService{
		reminderRepo: reminderRepo,
		log:          log,
	}
}

type CreateReminderInput struct {
	Text string
	Date time.Time
}

// UpdateReminderInput is a partial update: nil fields are left
// untouched in storage.
type UpdateReminderInput struct {
	Text *string
	Date *time.Time
}

// Create validates the input and writes a new reminder under the
// owner's scope. The assigned identifier comes from the storage layer.
func (s *ReminderService) Create(ctx context.Context, ownerID uuid.UUID, input CreateReminderInput) (uuid.UUID, error) {
	if ownerID == uuid.Nil {
		return uuid.Nil, fmt.Errorf("%w: owner id is required", domain.ErrInvalidArgument)
	}

	text := strings.TrimSpace(input.Text)
	if text == "" {
		return uuid.Nil, fmt.Errorf("%w: text must not be empty", domain.ErrInvalidArgument)
	}
	if !dateutil.Valid(input.Date) {
		return uuid.Nil, fmt.Errorf("%w: date is not a valid moment", domain.ErrInvalidArgument)
	}

	reminder := &domain.Reminder{
		OwnerID: ownerID,
		Text:    text,
		Date:    input.Date,
	}

	if err := s.reminderRepo.Create(ctx, reminder); err != nil {
		return uuid.Nil, err
	}

	return reminder.ID, nil
}

// List returns the owner's reminders ordered ascending by date.
// Records whose stored text or date is unusable are skipped with a
// warning; one corrupt record never fails the whole list.
func (s *ReminderService) List(ctx context.Context, ownerID uuid.UUID) ([]*domain.Reminder, error) {
	if ownerID == uuid.Nil {
		return nil, fmt.Errorf("%w: owner id is required", domain.ErrInvalidArgument)
	}

	records, err := s.reminderRepo.ListByOwner(ctx, ownerID)
	if err != nil {
		return nil, err
	}

	reminders := make([]*domain.Reminder, 0, len(records))
	for _, rec := range records {
		if strings.TrimSpace(rec.Text) == "" || !dateutil.Valid(rec.Date) {
			s.log.Warn("skipping malformed reminder record",
				zap.String("reminderId", rec.ID.String()),
				zap.String("ownerId", ownerID.String()))
			continue
		}
		reminders = append(reminders, rec)
	}

	return reminders, nil
}

// Update applies a partial update. At least one field must be present
// and each present field must pass the same validation as Create.
// Updating a missing reminder surfaces the storage layer's not-found
// error.
func (s *ReminderService) Update(ctx context.Context, ownerID, id uuid.UUID, input UpdateReminderInput) error {
	if ownerID == uuid.Nil {
		return fmt.Errorf("%w: owner id is required", domain.ErrInvalidArgument)
	}
	if id == uuid.Nil {
		return fmt.Errorf("%w: reminder id is required", domain.ErrInvalidArgument)
	}

	fields := make(map[string]any)
	if input.Text != nil {
		text := strings.TrimSpace(*input.Text)
		if text == "" {
			return fmt.Errorf("%w: text must not be empty", domain.ErrInvalidArgument)
		}
		fields["text"] = text
	}
	if input.Date != nil {
		if !dateutil.Valid(*input.Date) {
			return fmt.Errorf("%w: date is not a valid moment", domain.ErrInvalidArgument)
		}
		fields["date"] = *input.Date
	}
	if len(fields) == 0 {
		return fmt.Errorf("%w: update requires at least one of text or date", domain.ErrInvalidArgument)
	}

	return s.reminderRepo.UpdateFields(ctx, ownerID, id, fields)
}

// Delete removes the reminder. Deleting an id that no longer exists
// succeeds; deletes are idempotent at this layer.
func (s *ReminderService) Delete(ctx context.Context, ownerID, id uuid.UUID) error {
	if ownerID == uuid.Nil {
		return fmt.Errorf("%w: owner id is required", domain.ErrInvalidArgument)
	}
	if id == uuid.Nil {
		return fmt.Errorf("%w: reminder id is required", domain.ErrInvalidArgument)
	}

	return s.reminderRepo.Delete(ctx, ownerID, id)
}
