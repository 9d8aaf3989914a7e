package handlers

import (
	"context"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"github.com/mamadbah2/leafline/internal/domain/models"
)

// ShipmentService is the shipment workflow consumed by ShipmentHandler.
type ShipmentService interface {
	Confirm(ctx context.Context, id string, weight float64) (*models.Shipment, error)
	ReportIssue(ctx context.Context, id, description string) (*models.Shipment, error)
	Rescale(ctx context.Context, id string, weight float64) (*models.Shipment, error)
	SchedulePickup(ctx context.Context, id string, pickupTime time.Time, location string) (*models.Shipment, error)
	History(ctx context.Context, id string) ([]models.ShipmentEvent, error)
}

// ShipmentHandler serves the shipment workflow routes.
type ShipmentHandler struct {
	svc    ShipmentService
	logger *zap.Logger
}

// NewShipmentHandler builds the workflow controller on top of svc.
func NewShipmentHandler(svc ShipmentService, logger *zap.Logger) *ShipmentHandler {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &ShipmentHandler{svc: svc, logger: logger}
}

// Register mounts the workflow routes next to the shipment CRUD routes.
func (h *ShipmentHandler) Register(g *gin.RouterGroup) {
	g.POST("/schedule-pickup", h.SchedulePickup)
	g.POST("/:id/confirm", h.Confirm)
	g.POST("/:id/report", h.ReportIssue)
	g.PUT("/:id/rescale", h.Rescale)
	g.GET("/:id/history", h.History)
}

// Confirm responds to POST /:id/confirm by recording the received weight.
func (h *ShipmentHandler) Confirm(c *gin.Context) {
	var req models.ShipmentConfirmation
	if !h.bind(c, &req) {
		return
	}
	h.reply(c)(h.svc.Confirm(c.Request.Context(), c.Param("id"), req.Weight))
}

// ReportIssue responds to POST /:id/report by flagging the shipment.
func (h *ShipmentHandler) ReportIssue(c *gin.Context) {
	var req models.ShipmentIssueReport
	if !h.bind(c, &req) {
		return
	}
	h.reply(c)(h.svc.ReportIssue(c.Request.Context(), c.Param("id"), req.Description))
}

// Rescale responds to PUT /:id/rescale with the reweighed shipment.
func (h *ShipmentHandler) Rescale(c *gin.Context) {
	var req models.ShipmentRescale
	if !h.bind(c, &req) {
		return
	}
	h.reply(c)(h.svc.Rescale(c.Request.Context(), c.Param("id"), req.NewWeight))
}

// SchedulePickup responds to POST /schedule-pickup. The shipment id travels in
// the body.
func (h *ShipmentHandler) SchedulePickup(c *gin.Context) {
	var req models.ShipmentPickupSchedule
	if !h.bind(c, &req) {
		return
	}
	h.reply(c)(h.svc.SchedulePickup(c.Request.Context(), req.ShipmentID, req.PickupTime, req.Location))
}

// History responds with the recorded events of one shipment, oldest first.
func (h *ShipmentHandler) History(c *gin.Context) {
	id := c.Param("id")
	events, err := h.svc.History(c.Request.Context(), id)
	if err != nil {
		respondError(c, h.logger, "shipment", err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"shipment_id": id, "history": events})
}

func (h *ShipmentHandler) bind(c *gin.Context, req any) bool {
	if err := bindJSON(c, req); err != nil {
		h.logger.Warn("invalid shipment request", zap.String("path", c.FullPath()), zap.Error(err))
		respondError(c, h.logger, "shipment", err)
		return false
	}
	return true
}

func (h *ShipmentHandler) reply(c *gin.Context) func(*models.Shipment, error) {
	return func(sh *models.Shipment, err error) {
		if err != nil {
			respondError(c, h.logger, "shipment", err)
			return
		}
		c.JSON(http.StatusOK, sh)
	}
}
