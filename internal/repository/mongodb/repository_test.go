package mongodb

import (
	"context"
	"fmt"
	"os"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/mamadbah2/leafline/internal/domain/models"
	"github.com/mamadbah2/leafline/internal/repository"
)

// newTestDatabase connects to MONGODB_TEST_URI and drops its throwaway database afterwards.
func newTestDatabase(t *testing.T) *Database {
	t.Helper()
	uri := os.Getenv("MONGODB_TEST_URI")
	if uri == "" {
		t.Skip("MONGODB_TEST_URI not set")
	}

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	db, err := Connect(ctx, uri, fmt.Sprintf("leafline_test_%d", time.Now().UnixNano()))
	require.NoError(t, err)
	t.Cleanup(func() {
		_ = db.db.Drop(context.Background())
		_ = db.Close(context.Background())
	})
	return db
}

func TestCollectionCRUD(t *testing.T) {
	ctx := context.Background()
	stores := newTestDatabase(t).NewStores()

	for i := 0; i < 3; i++ {
		c := models.Centra{PICName: "pic", Email: fmt.Sprintf("pic%d@centra.id", i)}
		require.NoError(t, stores.Centras.Create(ctx, &c))
		assert.Equal(t, int64(i+1), c.CentralID)
	}

	rows, err := stores.Centras.List(ctx, repository.Page{Skip: 1, Limit: 1})
	require.NoError(t, err)
	require.Len(t, rows, 1)
	assert.Equal(t, int64(2), rows[0].CentralID)

	updated, err := stores.Centras.Update(ctx, 2, func(c *models.Centra) error {
		c.Address = "Jl. Baru"
		return nil
	})
	require.NoError(t, err)
	assert.Equal(t, "Jl. Baru", updated.Address)

	removed, err := stores.Centras.Delete(ctx, 2)
	require.NoError(t, err)
	assert.Equal(t, "Jl. Baru", removed.Address)

	_, err = stores.Centras.Get(ctx, 2)
	assert.ErrorIs(t, err, models.ErrNotFound)
}

func TestCollectionMachineTransitions(t *testing.T) {
	ctx := context.Background()
	stores := newTestDatabase(t).NewStores()

	m := models.DryingMachineCreate{MachineCreate: models.MachineCreate{CentralID: 1, Capacity: "50kg"}}.Entity()
	require.NoError(t, stores.DryingMachines.Create(ctx, &m))

	_, err := stores.DryingMachines.Update(ctx, m.MachineID, func(dm *models.DryingMachine) error { return dm.Start() })
	require.NoError(t, err)
	_, err = stores.DryingMachines.Update(ctx, m.MachineID, func(dm *models.DryingMachine) error { return dm.Start() })
	assert.ErrorIs(t, err, models.ErrMachineRunning)

	loc := int64(4)
	s := models.Stock{ProductID: 1, Weight: 3, LocationID: &loc}
	require.NoError(t, stores.Stocks.Create(ctx, &s))
	found, err := stores.Stocks.Find(ctx, "location_id", loc, repository.Page{})
	require.NoError(t, err)
	assert.Len(t, found, 1)
}
