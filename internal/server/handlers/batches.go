package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"github.com/mamadbah2/leafline/internal/domain/models"
	"github.com/mamadbah2/leafline/internal/repository"
)

// BatchHandler serves the processing-date lookups of a batch.
type BatchHandler struct {
	store  repository.Store[models.ProcessedLeaves, int64]
	logger *zap.Logger
}

// NewBatchHandler reads from store.
func NewBatchHandler(store repository.Store[models.ProcessedLeaves, int64], logger *zap.Logger) *BatchHandler {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &BatchHandler{store: store, logger: logger}
}

// Register mounts /:id/dried_date and /:id/floured_date.
func (h *BatchHandler) Register(g *gin.RouterGroup) {
	g.GET("/:id/dried_date", h.DriedDate)
	g.GET("/:id/floured_date", h.FlouredDate)
}

// DriedDate responds with the batch id and its dried date, null when unset.
func (h *BatchHandler) DriedDate(c *gin.Context) {
	batch, ok := h.load(c)
	if !ok {
		return
	}
	c.JSON(http.StatusOK, gin.H{"product_id": batch.ProductID, "dried_date": batch.DriedDate})
}

// FlouredDate responds with the batch id and its floured date, null when unset.
func (h *BatchHandler) FlouredDate(c *gin.Context) {
	batch, ok := h.load(c)
	if !ok {
		return
	}
	c.JSON(http.StatusOK, gin.H{"product_id": batch.ProductID, "floured_date": batch.FlouredDate})
}

func (h *BatchHandler) load(c *gin.Context) (*models.ProcessedLeaves, bool) {
	id, err := IntKey(c.Param("id"))
	if err != nil {
		respondError(c, h.logger, "batch", err)
		return nil, false
	}
	batch, err := h.store.Get(c.Request.Context(), id)
	if err != nil {
		respondError(c, h.logger, "batch", err)
		return nil, false
	}
	return batch, true
}
