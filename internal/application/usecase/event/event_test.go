package event_test

import (
	"context"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/reimburse-desk/backend/internal/application/adapter"
	"github.com/reimburse-desk/backend/internal/application/usecase/event"
	"github.com/reimburse-desk/backend/internal/domain/entity"
	domainerror "github.com/reimburse-desk/backend/internal/domain/error"
	"github.com/reimburse-desk/backend/internal/integration/persistence"
	"github.com/reimburse-desk/backend/internal/testutil"
)

var march = time.Date(2026, 3, 15, 10, 0, 0, 0, time.UTC)

func newUseCases(t *testing.T) (*event.CreateEventUseCase, *event.ListEventsUseCase) {
	t.Helper()
	db := testutil.NewDB(t)
	repo := persistence.NewEventRepository(db)
	clock := testutil.NewFixedClock(march)
	return event.NewCreateEventUseCase(repo, clock), event.NewListEventsUseCase(repo, clock)
}

func TestCreateEvent_TypeFollowsCreatorRole(t *testing.T) {
	create, _ := newUseCases(t)
	ctx := context.Background()

	adminEvent, err := create.Execute(ctx, event.CreateEventInput{
		Actor:    entity.Actor{ID: uuid.New(), Role: entity.RoleAdmin},
		Title:    "Offsite",
		StartsAt: march.Add(48 * time.Hour),
		EndsAt:   march.Add(72 * time.Hour),
	})
	require.NoError(t, err)
	assert.Equal(t, entity.EventTypeAdmin, adminEvent.Event.Type)
	assert.True(t, adminEvent.Event.BypassesPolicy())
	assert.Equal(t, entity.EventStatusUpcoming, adminEvent.Event.Status)

	userEvent, err := create.Execute(ctx, event.CreateEventInput{
		Actor:    entity.Actor{ID: uuid.New(), Role: entity.RoleStaff},
		Title:    "Customer visit",
		StartsAt: march.Add(-time.Hour),
		EndsAt:   march.Add(time.Hour),
	})
	require.NoError(t, err)
	assert.Equal(t, entity.EventTypeUser, userEvent.Event.Type)
	assert.False(t, userEvent.Event.BypassesPolicy())
	assert.Equal(t, entity.EventStatusOngoing, userEvent.Event.Status)
}

func TestCreateEvent_Validation(t *testing.T) {
	create, _ := newUseCases(t)
	actor := entity.Actor{ID: uuid.New(), Role: entity.RoleStaff}

	_, err := create.Execute(context.Background(), event.CreateEventInput{Actor: actor, Title: "  ", StartsAt: march, EndsAt: march})
	assert.Equal(t, domainerror.KindValidation, domainerror.KindOf(err))

	_, err = create.Execute(context.Background(), event.CreateEventInput{Actor: actor, Title: "Trip", StartsAt: march, EndsAt: march.Add(-time.Minute)})
	assert.ErrorIs(t, err, domainerror.ErrInvalidEventWindow)
}

func TestListEvents_VisibilityAndStatus(t *testing.T) {
	create, list := newUseCases(t)
	ctx := context.Background()
	admin := entity.Actor{ID: uuid.New(), Role: entity.RoleAdmin}
	staffed := entity.Actor{ID: uuid.New(), Role: entity.RoleStaff}
	outsider := entity.Actor{ID: uuid.New(), Role: entity.RoleStaff}

	_, err := create.Execute(ctx, event.CreateEventInput{
		Actor:    admin,
		Title:    "Past conference",
		Staff:    []uuid.UUID{staffed.ID},
		StartsAt: march.AddDate(0, -1, 0),
		EndsAt:   march.AddDate(0, -1, 2),
	})
	require.NoError(t, err)
	_, err = create.Execute(ctx, event.CreateEventInput{
		Actor:    outsider,
		Title:    "Own trip",
		StartsAt: march.AddDate(0, 0, 5),
		EndsAt:   march.AddDate(0, 0, 6),
	})
	require.NoError(t, err)

	all, err := list.Execute(ctx, event.ListEventsInput{Actor: admin})
	require.NoError(t, err)
	assert.Equal(t, int64(2), all.Result.Total)

	mine, err := list.Execute(ctx, event.ListEventsInput{Actor: staffed})
	require.NoError(t, err)
	require.Len(t, mine.Result.Events, 1)
	assert.Equal(t, "Past conference", mine.Result.Events[0].Title)
	assert.Equal(t, entity.EventStatusCompleted, mine.Result.Events[0].Status)

	upcoming := entity.EventStatusUpcoming
	filtered, err := list.Execute(ctx, event.ListEventsInput{Actor: admin, Status: &upcoming, Filter: adapter.EventFilterUser})
	require.NoError(t, err)
	require.Len(t, filtered.Result.Events, 1)
	assert.Equal(t, "Own trip", filtered.Result.Events[0].Title)

	_, err = list.Execute(ctx, event.ListEventsInput{Actor: admin, Filter: "everyone"})
	assert.ErrorIs(t, err, domainerror.ErrInvalidEventFilter)
}
