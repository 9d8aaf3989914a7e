// Package shipments implements the shipment workflow: confirmation, issue
// reports, re-weighing and pickup scheduling.
package shipments

import (
	"context"
	"fmt"
	"time"

	"go.uber.org/zap"

	"github.com/mamadbah2/leafline/internal/domain/models"
	"github.com/mamadbah2/leafline/internal/repository"
)

// Service applies workflow steps to shipments. Every step is one targeted
// gateway update that also appends a history event.
type Service struct {
	store  repository.Store[models.Shipment, string]
	now    func() time.Time
	logger *zap.Logger
}

// NewService wires the shipment workflow on top of store.
func NewService(store repository.Store[models.Shipment, string], logger *zap.Logger) *Service {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Service{store: store, now: time.Now, logger: logger}
}

func (s *Service) Confirm(ctx context.Context, id string, weight float64) (*models.Shipment, error) {
	return s.apply(ctx, "confirm", id, func(sh *models.Shipment, at time.Time) {
		sh.Confirm(weight, at)
	})
}

func (s *Service) ReportIssue(ctx context.Context, id, description string) (*models.Shipment, error) {
	return s.apply(ctx, "report issue on", id, func(sh *models.Shipment, at time.Time) {
		sh.ReportIssue(description, at)
	})
}

func (s *Service) Rescale(ctx context.Context, id string, weight float64) (*models.Shipment, error) {
	return s.apply(ctx, "rescale", id, func(sh *models.Shipment, at time.Time) {
		sh.Rescale(weight, at)
	})
}

func (s *Service) SchedulePickup(ctx context.Context, id string, pickupTime time.Time, location string) (*models.Shipment, error) {
	return s.apply(ctx, "schedule pickup for", id, func(sh *models.Shipment, at time.Time) {
		sh.SchedulePickup(pickupTime, location, at)
	})
}

// History returns the shipment's events, oldest first.
func (s *Service) History(ctx context.Context, id string) ([]models.ShipmentEvent, error) {
	sh, err := s.store.Get(ctx, id)
	if err != nil {
		return nil, fmt.Errorf("load shipment %s: %w", id, err)
	}
	if sh.History == nil {
		return []models.ShipmentEvent{}, nil
	}
	return sh.History, nil
}

func (s *Service) apply(ctx context.Context, op, id string, step func(*models.Shipment, time.Time)) (*models.Shipment, error) {
	at := s.now()
	sh, err := s.store.Update(ctx, id, func(sh *models.Shipment) error {
		step(sh, at)
		return nil
	})
	if err != nil {
		return nil, fmt.Errorf("%s shipment %s: %w", op, id, err)
	}
	s.logger.Info("shipment updated", zap.String("op", op), zap.String("shipment_id", id), zap.String("status", sh.Status))
	return sh, nil
}
