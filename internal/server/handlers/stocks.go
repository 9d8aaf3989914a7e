package handlers

import (
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"github.com/mamadbah2/leafline/internal/domain/models"
	"github.com/mamadbah2/leafline/internal/repository"
)

// StockHandler lists stock held at one location.
type StockHandler struct {
	store  repository.Store[models.Stock, int64]
	logger *zap.Logger
}

// NewStockHandler reads from store.
func NewStockHandler(store repository.Store[models.Stock, int64], logger *zap.Logger) *StockHandler {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &StockHandler{store: store, logger: logger}
}

// Register mounts /locations/:location_id.
func (h *StockHandler) Register(g *gin.RouterGroup) {
	g.GET("/locations/:location_id", h.ByLocation)
}

// ByLocation responds with one page of the stock rows held at :location_id.
func (h *StockHandler) ByLocation(c *gin.Context) {
	location, err := strconv.ParseInt(c.Param("location_id"), 10, 64)
	if err != nil {
		respondError(c, h.logger, "stock", invalidField("location_id", "type"))
		return
	}
	page, err := pageFrom(c)
	if err != nil {
		respondError(c, h.logger, "stock", err)
		return
	}

	rows, err := h.store.Find(c.Request.Context(), "location_id", location, page)
	if err != nil {
		respondError(c, h.logger, "stock", err)
		return
	}
	c.JSON(http.StatusOK, rows)
}
