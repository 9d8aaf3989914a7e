// Package repository defines the persistence gateway shared by every backend.
package repository

import (
	"context"

	"github.com/mamadbah2/leafline/internal/domain/models"
)

// DefaultLimit is applied when a listing does not name a page size.
const DefaultLimit = 100

// Page selects a window of a listing in insertion order.
type Page struct {
	Skip  int
	Limit int
}

// Normalize clamps negative offsets and fills in the default page size.
func (p Page) Normalize() Page {
	if p.Skip < 0 {
		p.Skip = 0
	}
	if p.Limit <= 0 {
		p.Limit = DefaultLimit
	}
	return p
}

// Store is the CRUD contract every entity is persisted through.
//
// Get, Update and Delete return models.ErrNotFound for unknown keys. Update runs
// mutate against the current row and persists the result atomically; an error from
// mutate aborts the write and is returned unchanged. Backend failures are wrapped
// in models.ErrUnavailable.
type Store[E any, K comparable] interface {
	Create(ctx context.Context, entity *E) error
	Get(ctx context.Context, key K) (*E, error)
	List(ctx context.Context, page Page) ([]E, error)
	Find(ctx context.Context, field string, value any, page Page) ([]E, error)
	Update(ctx context.Context, key K, mutate func(*E) error) (*E, error)
	Delete(ctx context.Context, key K) (*E, error)
}

// Entity constrains a backend's type parameters to pointers of persisted records.
type Entity[E any, K comparable] interface {
	*E
	models.Record[K]
}

// Stores bundles one Store per entity.
type Stores struct {
	WetLeaves          Store[models.WetLeavesCollection, string]
	Batches            Store[models.ProcessedLeaves, int64]
	DryingMachines     Store[models.DryingMachine, string]
	DryingActivities   Store[models.DryingActivity, string]
	FlouringMachines   Store[models.FlouringMachine, string]
	FlouringActivities Store[models.FlouringActivity, string]
	Centras            Store[models.Centra, int64]
	Shipments          Store[models.Shipment, string]
	HarborGuards       Store[models.HarborGuard, int64]
	Warehouses         Store[models.Warehouse, int64]
	Users              Store[models.User, int64]
	Expeditions        Store[models.Expedition, int64]
	ReceivedPackages   Store[models.ReceivedPackage, int64]
	PackageReceipts    Store[models.PackageReceipt, int64]
	ProductReceipts    Store[models.ProductReceipt, int64]
	PackageTypes       Store[models.PackageType, int64]
	Stocks             Store[models.Stock, int64]
}

// Models lists a zero value of every persisted entity, in migration order.
func Models() []any {
	return []any{
		&models.Centra{},
		&models.User{},
		&models.HarborGuard{},
		&models.Warehouse{},
		&models.WetLeavesCollection{},
		&models.DryingMachine{},
		&models.FlouringMachine{},
		&models.DryingActivity{},
		&models.FlouringActivity{},
		&models.ProcessedLeaves{},
		&models.Shipment{},
		&models.Expedition{},
		&models.PackageType{},
		&models.ReceivedPackage{},
		&models.PackageReceipt{},
		&models.ProductReceipt{},
		&models.Stock{},
	}
}
