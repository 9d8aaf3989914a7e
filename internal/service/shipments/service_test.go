package shipments

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/mamadbah2/leafline/internal/domain/models"
	"github.com/mamadbah2/leafline/internal/repository/memory"
)

var fixedNow = time.Date(2024, 5, 1, 9, 30, 0, 0, time.UTC)

func newService(t *testing.T) (*Service, string) {
	t.Helper()
	store := memory.NewTable[models.Shipment, string]()
	sh := models.ShipmentCreate{BatchID: "B-1"}.Entity()
	require.NoError(t, store.Create(context.Background(), &sh))

	svc := NewService(store, nil)
	svc.now = func() time.Time { return fixedNow }
	return svc, sh.ID
}

func TestWorkflowAppendsHistory(t *testing.T) {
	ctx := context.Background()
	svc, id := newService(t)

	sh, err := svc.Confirm(ctx, id, 120.5)
	require.NoError(t, err)
	assert.Equal(t, models.ShipmentConfirmed, sh.Status)
	require.NotNil(t, sh.Weight)
	assert.Equal(t, 120.5, *sh.Weight)

	sh, err = svc.ReportIssue(ctx, id, "two sacks torn")
	require.NoError(t, err)
	assert.Equal(t, models.ShipmentIssue, sh.Status)
	require.NotNil(t, sh.IssueDescription)
	assert.Equal(t, "two sacks torn", *sh.IssueDescription)

	sh, err = svc.Rescale(ctx, id, 118)
	require.NoError(t, err)
	assert.Equal(t, models.ShipmentRescaled, sh.Status)
	assert.Equal(t, 118.0, *sh.Weight)

	pickup := fixedNow.Add(48 * time.Hour)
	sh, err = svc.SchedulePickup(ctx, id, pickup, "Harbor 3")
	require.NoError(t, err)
	assert.Equal(t, models.ShipmentPickupScheduled, sh.Status)
	require.NotNil(t, sh.PickupTime)
	assert.True(t, pickup.Equal(*sh.PickupTime))
	assert.Equal(t, "Harbor 3", *sh.PickupLocation)

	history, err := svc.History(ctx, id)
	require.NoError(t, err)
	require.Len(t, history, 4)

	actions := make([]string, 0, len(history))
	for _, ev := range history {
		actions = append(actions, ev.Action)
		assert.True(t, fixedNow.Equal(ev.At))
	}
	assert.Equal(t, []string{"confirm", "report_issue", "rescale", "schedule_pickup"}, actions)
	assert.Equal(t, "Harbor 3", history[3].Note)
}

func TestUnknownShipmentIsNotMutated(t *testing.T) {
	ctx := context.Background()
	svc, id := newService(t)

	_, err := svc.SchedulePickup(ctx, "missing", fixedNow, "Harbor 1")
	assert.ErrorIs(t, err, models.ErrNotFound)

	_, err = svc.Confirm(ctx, "missing", 10)
	assert.ErrorIs(t, err, models.ErrNotFound)

	history, err := svc.History(ctx, id)
	require.NoError(t, err)
	assert.Empty(t, history)
}
