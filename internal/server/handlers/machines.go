package handlers

import (
	"context"
	"net/http"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"github.com/mamadbah2/leafline/internal/domain/models"
)

// MachineService is the start/stop contract of one machine kind.
type MachineService[E any] interface {
	Start(ctx context.Context, id string) (*E, error)
	Stop(ctx context.Context, id string) (*E, error)
	Status(ctx context.Context, id string) (models.MachineStatus, error)
}

// MachineHandler serves the run-state routes of drying or flouring machines.
type MachineHandler[E any] struct {
	name   string
	svc    MachineService[E]
	logger *zap.Logger
}

// NewMachineHandler builds the run-state controller. name is used in messages.
func NewMachineHandler[E any](name string, svc MachineService[E], logger *zap.Logger) *MachineHandler[E] {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &MachineHandler[E]{name: name, svc: svc, logger: logger}
}

// Register mounts /:id/start, /:id/stop and /:id/status.
func (h *MachineHandler[E]) Register(g *gin.RouterGroup) {
	g.POST("/:id/start", h.Start)
	g.POST("/:id/stop", h.Stop)
	g.GET("/:id/status", h.Status)
}

// Start responds to POST /:id/start with the machine now running.
func (h *MachineHandler[E]) Start(c *gin.Context) {
	m, err := h.svc.Start(c.Request.Context(), c.Param("id"))
	if err != nil {
		respondError(c, h.logger, h.name, err)
		return
	}
	c.JSON(http.StatusOK, m)
}

// Stop responds to POST /:id/stop with the machine now idle.
func (h *MachineHandler[E]) Stop(c *gin.Context) {
	m, err := h.svc.Stop(c.Request.Context(), c.Param("id"))
	if err != nil {
		respondError(c, h.logger, h.name, err)
		return
	}
	c.JSON(http.StatusOK, m)
}

// Status responds with the machine id and its current run state.
func (h *MachineHandler[E]) Status(c *gin.Context) {
	id := c.Param("id")
	status, err := h.svc.Status(c.Request.Context(), id)
	if err != nil {
		respondError(c, h.logger, h.name, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"machine_id": id, "status": status})
}
