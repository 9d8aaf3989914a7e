// Package memory provides an in-process implementation of the persistence gateway
// used by tests and the "memory" store driver.
package memory

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"sync"
	"time"

	"github.com/mamadbah2/leafline/internal/domain/models"
	"github.com/mamadbah2/leafline/internal/repository"
)

// Table keeps the rows of one entity in insertion order.
type Table[E any, K comparable, P repository.Entity[E, K]] struct {
	mu    sync.RWMutex
	rows  map[K]E
	order []K
	seq   int64
	now   func() time.Time
}

// NewTable creates an empty table.
func NewTable[E any, K comparable, P repository.Entity[E, K]]() *Table[E, K, P] {
	return &Table[E, K, P]{
		rows: make(map[K]E),
		now:  time.Now,
	}
}

// Create assigns the next key and timestamps, then appends the row.
func (t *Table[E, K, P]) Create(_ context.Context, entity *E) error {
	t.mu.Lock()
	defer t.mu.Unlock()

	t.seq++
	rec := P(entity)
	rec.AssignKey(t.seq)
	rec.Stamp(t.now().UTC())

	key := rec.Key()
	if _, exists := t.rows[key]; exists {
		return fmt.Errorf("insert %s %v: %w", rec.TableName(), key, models.ErrConflict)
	}
	t.rows[key] = *entity
	t.order = append(t.order, key)
	return nil
}

// Get returns a copy of the row stored under key.
func (t *Table[E, K, P]) Get(_ context.Context, key K) (*E, error) {
	t.mu.RLock()
	defer t.mu.RUnlock()

	row, ok := t.rows[key]
	if !ok {
		return nil, models.ErrNotFound
	}
	return &row, nil
}

// List returns one page of rows in insertion order.
func (t *Table[E, K, P]) List(_ context.Context, page repository.Page) ([]E, error) {
	t.mu.RLock()
	defer t.mu.RUnlock()

	return t.window(page, func(E) bool { return true })
}

// Find matches field against the JSON representation of each row.
func (t *Table[E, K, P]) Find(_ context.Context, field string, value any, page repository.Page) ([]E, error) {
	want := fmt.Sprint(value)

	t.mu.RLock()
	defer t.mu.RUnlock()

	var decodeErr error
	out, err := t.window(page, func(row E) bool {
		fields, err := asFields(row)
		if err != nil {
			decodeErr = err
			return false
		}
		got, ok := fields[field]
		return ok && got != nil && fmt.Sprint(got) == want
	})
	if decodeErr != nil {
		return nil, fmt.Errorf("filter by %s: %w", field, decodeErr)
	}
	return out, err
}

// Update runs mutate on a copy of the row and stores it only if mutate succeeds.
func (t *Table[E, K, P]) Update(_ context.Context, key K, mutate func(*E) error) (*E, error) {
	t.mu.Lock()
	defer t.mu.Unlock()

	row, ok := t.rows[key]
	if !ok {
		return nil, models.ErrNotFound
	}
	if err := mutate(&row); err != nil {
		return nil, err
	}
	P(&row).Stamp(t.now().UTC())
	t.rows[key] = row
	return &row, nil
}

// Delete removes the row and returns its last state.
func (t *Table[E, K, P]) Delete(_ context.Context, key K) (*E, error) {
	t.mu.Lock()
	defer t.mu.Unlock()

	row, ok := t.rows[key]
	if !ok {
		return nil, models.ErrNotFound
	}
	delete(t.rows, key)
	for i, k := range t.order {
		if k == key {
			t.order = append(t.order[:i], t.order[i+1:]...)
			break
		}
	}
	return &row, nil
}

// window must be called with the lock held.
func (t *Table[E, K, P]) window(page repository.Page, match func(E) bool) ([]E, error) {
	page = page.Normalize()
	out := make([]E, 0)
	skipped := 0
	for _, key := range t.order {
		row := t.rows[key]
		if !match(row) {
			continue
		}
		if skipped < page.Skip {
			skipped++
			continue
		}
		out = append(out, row)
		if len(out) == page.Limit {
			break
		}
	}
	return out, nil
}

func asFields(row any) (map[string]any, error) {
	raw, err := json.Marshal(row)
	if err != nil {
		return nil, err
	}
	fields := make(map[string]any)
	dec := json.NewDecoder(bytes.NewReader(raw))
	dec.UseNumber()
	if err := dec.Decode(&fields); err != nil {
		return nil, err
	}
	return fields, nil
}

// NewStores builds an empty in-memory table for every entity.
func NewStores() *repository.Stores {
	return &repository.Stores{
		WetLeaves:          NewTable[models.WetLeavesCollection, string](),
		Batches:            NewTable[models.ProcessedLeaves, int64](),
		DryingMachines:     NewTable[models.DryingMachine, string](),
		DryingActivities:   NewTable[models.DryingActivity, string](),
		FlouringMachines:   NewTable[models.FlouringMachine, string](),
		FlouringActivities: NewTable[models.FlouringActivity, string](),
		Centras:            NewTable[models.Centra, int64](),
		Shipments:          NewTable[models.Shipment, string](),
		HarborGuards:       NewTable[models.HarborGuard, int64](),
		Warehouses:         NewTable[models.Warehouse, int64](),
		Users:              NewTable[models.User, int64](),
		Expeditions:        NewTable[models.Expedition, int64](),
		ReceivedPackages:   NewTable[models.ReceivedPackage, int64](),
		PackageReceipts:    NewTable[models.PackageReceipt, int64](),
		ProductReceipts:    NewTable[models.ProductReceipt, int64](),
		PackageTypes:       NewTable[models.PackageType, int64](),
		Stocks:             NewTable[models.Stock, int64](),
	}
}
