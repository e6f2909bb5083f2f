//go:build unit

package queries_test

import (
	"context"
	"testing"
	"time"

	"workshop-booking/internal/domain/booking"
	"workshop-booking/internal/infra/store"
	"workshop-booking/internal/pkg/clock"
	"workshop-booking/internal/pkg/errs"
	"workshop-booking/internal/usecase/queries"
	"workshop-booking/tests/common/builder"

	"github.com/google/go-cmp/cmp"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestBookingQueriesDerivedFields(t *testing.T) {
	st := store.NewMemoryStore()
	mockClock := clock.NewMockClock(builder.T0)
	q := queries.NewBookingQueries(st, booking.DefaultPolicy(), mockClock)

	st.Upsert(builder.NewBookingBuilder().Build())

	view, err := q.Get(context.Background(), 101)
	require.NoError(t, err)
	if diff := cmp.Diff(builder.NewBookingBuilder().BuildView(), view); diff != "" {
		t.Errorf("view mismatch (-want +got):\n%s", diff)
	}

	mockClock.Set(builder.T0.Add(12*time.Hour + time.Second))
	view, err = q.Get(context.Background(), 101)
	require.NoError(t, err)
	assert.False(t, view.CanCancel)
	assert.False(t, view.CanRespond)
}

func TestBookingQueriesUsesLocalCreationTime(t *testing.T) {
	st := store.NewMemoryStore()
	local := builder.T0.Add(3 * time.Hour)
	mockClock := clock.NewMockClock(builder.T0.Add(14 * time.Hour))
	q := queries.NewBookingQueries(st, booking.DefaultPolicy(), mockClock)

	st.Upsert(builder.NewBookingBuilder().
		WithAppointmentAt(builder.T0.Add(48 * time.Hour)).
		WithLocalCreationTime(local).
		Build())

	view, err := q.Get(context.Background(), 101)
	require.NoError(t, err)
	assert.Equal(t, local, view.EffectiveCreatedAt)
	assert.Equal(t, local.Add(12*time.Hour), view.CancelDeadline)
	assert.True(t, view.CanCancel)
}

func TestBookingQueriesList(t *testing.T) {
	st := store.NewMemoryStore()
	q := queries.NewBookingQueries(st, booking.DefaultPolicy(), clock.NewMockClock(builder.T0))

	views, err := q.List(context.Background())
	require.NoError(t, err)
	assert.Empty(t, views)

	st.Upsert(builder.NewBookingBuilder().WithID(3).Build())
	st.Upsert(builder.NewBookingBuilder().WithID(1).Build())

	views, err = q.List(context.Background())
	require.NoError(t, err)
	require.Len(t, views, 2)
	assert.Equal(t, int64(1), views[0].ID)
	assert.Equal(t, int64(3), views[1].ID)

	_, err = q.Get(context.Background(), 2)
	assert.True(t, errs.Is(err, errs.ErrBookingNotTracked))
}
