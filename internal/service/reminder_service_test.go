package service_test

import (
	"context"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/mika/reminders-web/internal/domain"
	"github.com/mika/reminders-web/internal/repository/postgres"
	"github.com/mika/reminders-web/internal/service"
	"github.com/mika/reminders-web/internal/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

func newReminderService(t *testing.T) (*service.ReminderService, *testutil.TestDB) {
	t.Helper()
	testDB := testutil.NewTestDB(t)
	repos := postgres.NewRepositories(testDB.DB)
	return service.NewReminderService(repos.Reminder, zap.NewNop()), testDB
}

func countReminders(t *testing.T, db *gorm.DB) int64 {
	t.Helper()
	var count int64
	require.NoError(t, db.Model(&domain.Reminder{}).Count(&count).Error)
	return count
}

func TestReminderService_Create_Validation(t *testing.T) {
	svc, testDB := newReminderService(t)
	ctx := context.Background()

	owner, _ := testutil.NewUserBuilder().Build(t, testDB.DB)
	validDate := time.Date(2025, 6, 1, 0, 0, 0, 0, time.UTC)

	tests := []struct {
		name  string
		owner uuid.UUID
		input service.CreateReminderInput
	}{
		{
			name:  "missing owner",
			owner: uuid.Nil,
			input: service.CreateReminderInput{Text: "buy flowers", Date: validDate},
		},
		{
			name:  "empty text",
			owner: owner.ID,
			input: service.CreateReminderInput{Text: "", Date: validDate},
		},
		{
			name:  "whitespace-only text",
			owner: owner.ID,
			input: service.CreateReminderInput{Text: "   ", Date: validDate},
		},
		{
			name:  "zero date",
			owner: owner.ID,
			input: service.CreateReminderInput{Text: "buy flowers"},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := svc.Create(ctx, tt.owner, tt.input)
			assert.ErrorIs(t, err, domain.ErrInvalidArgument)
			// Validation failures must not write anything.
			assert.EqualValues(t, 0, countReminders(t, testDB.DB))
		})
	}
}

func TestReminderService_Create(t *testing.T) {
	svc, testDB := newReminderService(t)
	ctx := context.Background()

	owner, _ := testutil.NewUserBuilder().Build(t, testDB.DB)
	date := time.Date(2025, 6, 1, 0, 0, 0, 0, time.UTC)

	id, err := svc.Create(ctx, owner.ID, service.CreateReminderInput{
		Text: "  buy flowers  ",
		Date: date,
	})
	require.NoError(t, err)
	assert.NotEqual(t, uuid.Nil, id, "storage must assign an id")

	var stored domain.Reminder
	require.NoError(t, testDB.DB.First(&stored, "id = ?", id).Error)
	assert.Equal(t, "buy flowers", stored.Text, "text is stored trimmed")
	assert.Equal(t, owner.ID, stored.OwnerID)
	assert.True(t, stored.Date.Equal(date))
}

func TestReminderService_List_Ordering(t *testing.T) {
	svc, testDB := newReminderService(t)
	ctx := context.Background()

	owner, _ := testutil.NewUserBuilder().Build(t, testDB.DB)

	// Inserted out of order on purpose.
	days := []int{3, 1, 2}
	for _, day := range days {
		testutil.NewReminderBuilder().
			WithOwner(owner).
			WithDate(time.Date(2025, 1, day, 0, 0, 0, 0, time.UTC)).
			Build(t, testDB.DB)
	}

	reminders, err := svc.List(ctx, owner.ID)
	require.NoError(t, err)
	require.Len(t, reminders, 3)

	assert.Equal(t, 1, reminders[0].Date.Day())
	assert.Equal(t, 2, reminders[1].Date.Day())
	assert.Equal(t, 3, reminders[2].Date.Day())
}

func TestReminderService_List_ScopedToOwner(t *testing.T) {
	svc, testDB := newReminderService(t)
	ctx := context.Background()

	owner, _ := testutil.NewUserBuilder().Build(t, testDB.DB)
	other, _ := testutil.NewUserBuilder().Build(t, testDB.DB)

	testutil.NewReminderBuilder().WithOwner(owner).WithText("mine").Build(t, testDB.DB)
	testutil.NewReminderBuilder().WithOwner(other).WithText("theirs").Build(t, testDB.DB)

	reminders, err := svc.List(ctx, owner.ID)
	require.NoError(t, err)
	require.Len(t, reminders, 1)
	assert.Equal(t, "mine", reminders[0].Text)
}

func TestReminderService_List_SkipsMalformedRecords(t *testing.T) {
	svc, testDB := newReminderService(t)
	ctx := context.Background()

	owner, _ := testutil.NewUserBuilder().Build(t, testDB.DB)
	valid := testutil.NewReminderBuilder().WithOwner(owner).WithText("still here").Build(t, testDB.DB)

	// Corrupt rows written behind the service's back: blank text and an
	// unusable date.
	insert := "INSERT INTO reminders (id, owner_id, text, date, created_at, updated_at) VALUES (?, ?, ?, ?, ?, ?)"
	now := time.Now()
	require.NoError(t, testDB.DB.Exec(insert,
		uuid.New(), owner.ID, "   ", time.Date(2025, 1, 1, 0, 0, 0, 0, time.UTC), now, now).Error)
	require.NoError(t, testDB.DB.Exec(insert,
		uuid.New(), owner.ID, "lost in time", time.Time{}, now, now).Error)

	reminders, err := svc.List(ctx, owner.ID)
	require.NoError(t, err, "corrupt records must not fail the list")
	require.Len(t, reminders, 1)
	assert.Equal(t, valid.ID, reminders[0].ID)
}

func TestReminderService_List_MissingOwner(t *testing.T) {
	svc, _ := newReminderService(t)

	_, err := svc.List(context.Background(), uuid.Nil)
	assert.ErrorIs(t, err, domain.ErrInvalidArgument)
}

func TestReminderService_Update(t *testing.T) {
	svc, testDB := newReminderService(t)
	ctx := context.Background()

	owner, _ := testutil.NewUserBuilder().Build(t, testDB.DB)
	date := time.Date(2025, 6, 1, 0, 0, 0, 0, time.UTC)
	reminder := testutil.NewReminderBuilder().
		WithOwner(owner).
		WithText("buy flowers").
		WithDate(date).
		Build(t, testDB.DB)

	t.Run("empty patch", func(t *testing.T) {
		err := svc.Update(ctx, owner.ID, reminder.ID, service.UpdateReminderInput{})
		assert.ErrorIs(t, err, domain.ErrInvalidArgument)
	})

	t.Run("invalid text in patch", func(t *testing.T) {
		text := "   "
		err := svc.Update(ctx, owner.ID, reminder.ID, service.UpdateReminderInput{Text: &text})
		assert.ErrorIs(t, err, domain.ErrInvalidArgument)
	})

	t.Run("invalid date in patch", func(t *testing.T) {
		var zero time.Time
		err := svc.Update(ctx, owner.ID, reminder.ID, service.UpdateReminderInput{Date: &zero})
		assert.ErrorIs(t, err, domain.ErrInvalidArgument)
	})

	t.Run("text-only patch leaves date untouched", func(t *testing.T) {
		text := "buy flowers + card"
		err := svc.Update(ctx, owner.ID, reminder.ID, service.UpdateReminderInput{Text: &text})
		require.NoError(t, err)

		var stored domain.Reminder
		require.NoError(t, testDB.DB.First(&stored, "id = ?", reminder.ID).Error)
		assert.Equal(t, "buy flowers + card", stored.Text)
		assert.True(t, stored.Date.Equal(date), "date must be unchanged")
	})

	t.Run("missing reminder", func(t *testing.T) {
		text := "anything"
		err := svc.Update(ctx, owner.ID, uuid.New(), service.UpdateReminderInput{Text: &text})
		assert.ErrorIs(t, err, gorm.ErrRecordNotFound)
	})

	t.Run("other owner's reminder is unreachable", func(t *testing.T) {
		other, _ := testutil.NewUserBuilder().Build(t, testDB.DB)
		text := "hijacked"
		err := svc.Update(ctx, other.ID, reminder.ID, service.UpdateReminderInput{Text: &text})
		assert.ErrorIs(t, err, gorm.ErrRecordNotFound)
	})
}

func TestReminderService_Delete(t *testing.T) {
	svc, testDB := newReminderService(t)
	ctx := context.Background()

	owner, _ := testutil.NewUserBuilder().Build(t, testDB.DB)
	reminder := testutil.NewReminderBuilder().WithOwner(owner).Build(t, testDB.DB)

	require.NoError(t, svc.Delete(ctx, owner.ID, reminder.ID))

	// Deleting an id that no longer exists succeeds: deletes are
	// idempotent at this layer.
	require.NoError(t, svc.Delete(ctx, owner.ID, reminder.ID))
	require.NoError(t, svc.Delete(ctx, owner.ID, uuid.New()))

	assert.ErrorIs(t, svc.Delete(ctx, uuid.Nil, reminder.ID), domain.ErrInvalidArgument)
	assert.ErrorIs(t, svc.Delete(ctx, owner.ID, uuid.Nil), domain.ErrInvalidArgument)
}

func TestReminderService_EndToEnd(t *testing.T) {
	svc, testDB := newReminderService(t)
	ctx := context.Background()

	owner, _ := testutil.NewUserBuilder().Build(t, testDB.DB)
	date := time.Date(2025, 6, 1, 0, 0, 0, 0, time.UTC)

	id, err := svc.Create(ctx, owner.ID, service.CreateReminderInput{
		Text: "Buy flowers",
		Date: date,
	})
	require.NoError(t, err)

	reminders, err := svc.List(ctx, owner.ID)
	require.NoError(t, err)
	require.Len(t, reminders, 1)
	assert.Equal(t, id, reminders[0].ID)
	assert.Equal(t, "Buy flowers", reminders[0].Text)
	assert.True(t, reminders[0].Date.Equal(date))

	text := "Buy flowers + card"
	require.NoError(t, svc.Update(ctx, owner.ID, id, service.UpdateReminderInput{Text: &text}))

	reminders, err = svc.List(ctx, owner.ID)
	require.NoError(t, err)
	require.Len(t, reminders, 1)
	assert.Equal(t, "Buy flowers + card", reminders[0].Text)
	assert.True(t, reminders[0].Date.Equal(date))

	require.NoError(t, svc.Delete(ctx, owner.ID, id))

	reminders, err = svc.List(ctx, owner.ID)
	require.NoError(t, err)
	assert.Empty(t, reminders)
}
