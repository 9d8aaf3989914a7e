// Package machines runs the start/stop toggle of drying and flouring machines.
package machines

import (
	"context"
	"errors"
	"fmt"

	"go.uber.org/zap"

	"github.com/mamadbah2/leafline/internal/domain/models"
	"github.com/mamadbah2/leafline/internal/repository"
)

// Machine is satisfied by pointers to either machine kind.
type Machine[E any] interface {
	*E
	Start() error
	Stop() error
	CurrentStatus() models.MachineStatus
}

// Service drives one machine kind. Each operation is a single gateway call.
type Service[E any, P Machine[E]] struct {
	store  repository.Store[E, string]
	logger *zap.Logger
}

// NewService wires a machine service on top of store.
func NewService[E any, P Machine[E]](store repository.Store[E, string], logger *zap.Logger) *Service[E, P] {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Service[E, P]{store: store, logger: logger}
}

// Start moves an idle machine to running. A running machine yields
// models.ErrMachineRunning and stays as it is.
func (s *Service[E, P]) Start(ctx context.Context, id string) (*E, error) {
	m, err := s.store.Update(ctx, id, func(m *E) error { return P(m).Start() })
	if err != nil {
		return nil, s.wrap("start", id, err)
	}
	s.logger.Info("machine started", zap.String("machine_id", id))
	return m, nil
}

// Stop moves a running machine back to idle.
func (s *Service[E, P]) Stop(ctx context.Context, id string) (*E, error) {
	m, err := s.store.Update(ctx, id, func(m *E) error { return P(m).Stop() })
	if err != nil {
		return nil, s.wrap("stop", id, err)
	}
	s.logger.Info("machine stopped", zap.String("machine_id", id))
	return m, nil
}

// Status reports whether the machine is idle or running.
func (s *Service[E, P]) Status(ctx context.Context, id string) (models.MachineStatus, error) {
	m, err := s.store.Get(ctx, id)
	if err != nil {
		return "", s.wrap("status", id, err)
	}
	return P(m).CurrentStatus(), nil
}

func (s *Service[E, P]) wrap(op, id string, err error) error {
	if errors.Is(err, models.ErrInvalidTransition) {
		s.logger.Warn("rejected machine transition", zap.String("op", op), zap.String("machine_id", id))
	}
	return fmt.Errorf("%s machine %s: %w", op, id, err)
}
