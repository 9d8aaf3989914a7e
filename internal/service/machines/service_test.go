package machines

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/mamadbah2/leafline/internal/domain/models"
	"github.com/mamadbah2/leafline/internal/repository/memory"
)

func newDryingService(t *testing.T) (*Service[models.DryingMachine, *models.DryingMachine], string) {
	t.Helper()
	store := memory.NewTable[models.DryingMachine, string]()
	m := models.DryingMachineCreate{MachineCreate: models.MachineCreate{CentralID: 1, Capacity: "50kg"}}.Entity()
	require.NoError(t, store.Create(context.Background(), &m))
	return NewService[models.DryingMachine](store, nil), m.MachineID
}

func TestStartStopCycle(t *testing.T) {
	ctx := context.Background()
	svc, id := newDryingService(t)

	status, err := svc.Status(ctx, id)
	require.NoError(t, err)
	assert.Equal(t, models.MachineIdle, status)

	m, err := svc.Start(ctx, id)
	require.NoError(t, err)
	assert.Equal(t, models.MachineRunning, m.Status)

	m, err = svc.Stop(ctx, id)
	require.NoError(t, err)
	assert.Equal(t, models.MachineIdle, m.Status)
}

func TestDoubleStartLeavesStatusUnchanged(t *testing.T) {
	ctx := context.Background()
	svc, id := newDryingService(t)

	_, err := svc.Start(ctx, id)
	require.NoError(t, err)

	_, err = svc.Start(ctx, id)
	require.ErrorIs(t, err, models.ErrMachineRunning)
	assert.ErrorIs(t, err, models.ErrConflict)

	status, err := svc.Status(ctx, id)
	require.NoError(t, err)
	assert.Equal(t, models.MachineRunning, status)
}

func TestStopIdleMachine(t *testing.T) {
	svc, id := newDryingService(t)

	_, err := svc.Stop(context.Background(), id)
	assert.ErrorIs(t, err, models.ErrMachineIdle)
}

func TestUnknownMachine(t *testing.T) {
	ctx := context.Background()
	svc, _ := newDryingService(t)

	_, err := svc.Start(ctx, "missing")
	assert.ErrorIs(t, err, models.ErrNotFound)

	_, err = svc.Status(ctx, "missing")
	assert.ErrorIs(t, err, models.ErrNotFound)
}
