package postgres

import (
	"context"
	"errors"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"

	"github.com/mamadbah2/leafline/internal/domain/models"
	"github.com/mamadbah2/leafline/internal/repository"
)

// newTestDB opens a private in-memory SQLite database with the full schema.
func newTestDB(t *testing.T) *gorm.DB {
	t.Helper()
	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{Logger: NewGormLogger(zap.NewNop())})
	require.NoError(t, err)

	sqlDB, err := db.DB()
	require.NoError(t, err)
	sqlDB.SetMaxOpenConns(1)
	t.Cleanup(func() { _ = sqlDB.Close() })

	require.NoError(t, Migrate(db))
	return db
}

func TestCreateAndGet(t *testing.T) {
	ctx := context.Background()
	stores := NewStores(newTestDB(t))

	c := models.CentraCreate{Address: "Jl. Teh 1", PICName: "Sari", Email: "sari@centra.id", Phone: "0812"}.Entity()
	c.CentralID = 99
	require.NoError(t, stores.Centras.Create(ctx, &c))
	assert.Equal(t, int64(1), c.CentralID)
	assert.False(t, c.CreatedAt.IsZero())

	got, err := stores.Centras.Get(ctx, c.CentralID)
	require.NoError(t, err)
	assert.Equal(t, "sari@centra.id", got.Email)

	_, err = stores.Centras.Get(ctx, 404)
	assert.ErrorIs(t, err, models.ErrNotFound)
}

func TestListOrderAndPaging(t *testing.T) {
	ctx := context.Background()
	stores := NewStores(newTestDB(t))

	for i := 0; i < 5; i++ {
		pt := models.PackageType{Description: "sack"}
		require.NoError(t, stores.PackageTypes.Create(ctx, &pt))
	}

	rows, err := stores.PackageTypes.List(ctx, repository.Page{Skip: 2, Limit: 2})
	require.NoError(t, err)
	require.Len(t, rows, 2)
	assert.Equal(t, int64(3), rows[0].PackageTypeID)
	assert.Equal(t, int64(4), rows[1].PackageTypeID)

	rows, err = stores.PackageTypes.List(ctx, repository.Page{Skip: 100})
	require.NoError(t, err)
	assert.NotNil(t, rows)
	assert.Empty(t, rows)
}

func TestUpdateRollsBackOnMutateError(t *testing.T) {
	ctx := context.Background()
	stores := NewStores(newTestDB(t))

	m := models.DryingMachineCreate{MachineCreate: models.MachineCreate{CentralID: 1, Capacity: "50kg"}}.Entity()
	require.NoError(t, stores.DryingMachines.Create(ctx, &m))
	require.Len(t, m.MachineID, 36)

	started, err := stores.DryingMachines.Update(ctx, m.MachineID, func(dm *models.DryingMachine) error {
		return dm.Start()
	})
	require.NoError(t, err)
	assert.Equal(t, models.MachineRunning, started.Status)

	_, err = stores.DryingMachines.Update(ctx, m.MachineID, func(dm *models.DryingMachine) error {
		dm.Capacity = "discarded"
		return dm.Start()
	})
	require.ErrorIs(t, err, models.ErrMachineRunning)

	got, err := stores.DryingMachines.Get(ctx, m.MachineID)
	require.NoError(t, err)
	assert.Equal(t, models.MachineRunning, got.Status)
	assert.Equal(t, "50kg", got.Capacity)

	_, err = stores.DryingMachines.Update(ctx, "missing", func(*models.DryingMachine) error { return nil })
	assert.ErrorIs(t, err, models.ErrNotFound)
}

func TestConcurrentStartsAllowOneWinner(t *testing.T) {
	ctx := context.Background()
	stores := NewStores(newTestDB(t))

	m := models.FlouringMachineCreate{MachineCreate: models.MachineCreate{CentralID: 2, Capacity: "80kg"}}.Entity()
	require.NoError(t, stores.FlouringMachines.Create(ctx, &m))

	const workers = 8
	var (
		wg       sync.WaitGroup
		mu       sync.Mutex
		ok       int
		rejected int
	)
	for i := 0; i < workers; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			_, err := stores.FlouringMachines.Update(ctx, m.MachineID, func(fm *models.FlouringMachine) error {
				return fm.Start()
			})
			mu.Lock()
			defer mu.Unlock()
			switch {
			case err == nil:
				ok++
			case errors.Is(err, models.ErrMachineRunning):
				rejected++
			}
		}()
	}
	wg.Wait()

	assert.Equal(t, 1, ok)
	assert.Equal(t, workers-1, rejected)
}

func TestShipmentHistoryRoundTrips(t *testing.T) {
	ctx := context.Background()
	stores := NewStores(newTestDB(t))

	sh := models.ShipmentCreate{BatchID: "B-9"}.Entity()
	require.NoError(t, stores.Shipments.Create(ctx, &sh))

	at := time.Date(2024, 6, 1, 8, 0, 0, 0, time.UTC)
	_, err := stores.Shipments.Update(ctx, sh.ID, func(s *models.Shipment) error {
		s.Confirm(12.5, at)
		s.SchedulePickup(at.Add(24*time.Hour), "Pier 4", at)
		return nil
	})
	require.NoError(t, err)

	got, err := stores.Shipments.Get(ctx, sh.ID)
	require.NoError(t, err)
	assert.Equal(t, models.ShipmentPickupScheduled, got.Status)
	require.Len(t, got.History, 2)
	assert.Equal(t, "confirm", got.History[0].Action)
	assert.Equal(t, "Pier 4", got.History[1].Note)
	assert.True(t, at.Equal(got.History[1].At))
}

func TestFindAndDelete(t *testing.T) {
	ctx := context.Background()
	stores := NewStores(newTestDB(t))

	loc := int64(7)
	for _, l := range []*int64{&loc, nil, &loc} {
		s := models.Stock{ProductID: 1, Weight: 5, LocationID: l}
		require.NoError(t, stores.Stocks.Create(ctx, &s))
	}

	rows, err := stores.Stocks.Find(ctx, "location_id", loc, repository.Page{})
	require.NoError(t, err)
	require.Len(t, rows, 2)
	assert.Equal(t, int64(1), rows[0].ID)
	assert.Equal(t, int64(3), rows[1].ID)

	removed, err := stores.Stocks.Delete(ctx, 1)
	require.NoError(t, err)
	assert.Equal(t, int64(1), removed.ID)

	_, err = stores.Stocks.Get(ctx, 1)
	assert.ErrorIs(t, err, models.ErrNotFound)
	_, err = stores.Stocks.Delete(ctx, 1)
	assert.ErrorIs(t, err, models.ErrNotFound)
}
