package router

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"github.com/mamadbah2/leafline/internal/auth"
	"github.com/mamadbah2/leafline/internal/domain/models"
	"github.com/mamadbah2/leafline/internal/repository"
	"github.com/mamadbah2/leafline/internal/server/handlers"
	"github.com/mamadbah2/leafline/internal/service/machines"
	"github.com/mamadbah2/leafline/internal/service/shipments"
	"github.com/mamadbah2/leafline/pkg/clients/identity"
)

// Dependencies is everything the HTTP layer is built from. Identity may be nil,
// in which case the account routes are not mounted.
type Dependencies struct {
	Stores   *repository.Stores
	Verifier auth.Verifier
	Identity identity.Client
}

// New wires the Gin engine with required routes and middlewares.
func New(deps Dependencies, logger *zap.Logger) *gin.Engine {
	if logger == nil {
		logger = zap.NewNop()
	}
	gin.SetMode(gin.ReleaseMode)
	handlers.ConfigureValidator()

	metrics := newHTTPMetrics()

	r := gin.New()
	r.Use(gin.Recovery())
	r.Use(zapLoggerMiddleware(logger.Named("http")))
	r.Use(metrics.middleware())

	r.GET("/", handlers.Welcome)
	r.GET("/healthz", handlers.Health)
	r.GET("/metrics", metrics.handler)

	if deps.Identity != nil {
		handlers.NewAccountHandler(deps.Identity, logger.Named("accounts")).Register(r.Group("/users"))
	}

	protected := r.Group("")
	protected.Use(auth.Middleware(deps.Verifier, logger.Named("auth")))
	protected.GET("/me", handlers.Me)

	registerResources(protected, deps.Stores, logger.Named("handlers"))

	logger.Info("router initialized")
	return r
}

func registerResources(g *gin.RouterGroup, s *repository.Stores, logger *zap.Logger) {
	handlers.NewResource[models.WetLeavesCollection, string, models.WetLeavesCollectionCreate, models.WetLeavesCollectionUpdate](
		"wet leaves collection", s.WetLeaves, handlers.StringKey, logger).Register(g.Group("/wet_leaves_collections"))

	batches := g.Group("/batches")
	handlers.NewResource[models.ProcessedLeaves, int64, models.ProcessedLeavesCreate, models.ProcessedLeavesUpdate](
		"batch", s.Batches, handlers.IntKey, logger).Register(batches)
	handlers.NewBatchHandler(s.Batches, logger).Register(batches)

	drying := g.Group("/drying_machines")
	handlers.NewResource[models.DryingMachine, string, models.DryingMachineCreate, models.DryingMachineUpdate](
		"drying machine", s.DryingMachines, handlers.StringKey, logger).Register(drying)
	handlers.NewMachineHandler[models.DryingMachine]("drying machine",
		machines.NewService[models.DryingMachine](s.DryingMachines, logger), logger).Register(drying)

	flouring := g.Group("/flouring_machines")
	handlers.NewResource[models.FlouringMachine, string, models.FlouringMachineCreate, models.FlouringMachineUpdate](
		"flouring machine", s.FlouringMachines, handlers.StringKey, logger).Register(flouring)
	handlers.NewMachineHandler[models.FlouringMachine]("flouring machine",
		machines.NewService[models.FlouringMachine](s.FlouringMachines, logger), logger).Register(flouring)

	handlers.NewResource[models.DryingActivity, string, models.DryingActivityCreate, models.DryingActivityUpdate](
		"drying activity", s.DryingActivities, handlers.StringKey, logger).Register(g.Group("/drying_activities"))
	handlers.NewResource[models.FlouringActivity, string, models.FlouringActivityCreate, models.FlouringActivityUpdate](
		"flouring activity", s.FlouringActivities, handlers.StringKey, logger).Register(g.Group("/flouring_activities"))

	handlers.NewResource[models.Centra, int64, models.CentraCreate, models.CentraUpdate](
		"centra", s.Centras, handlers.IntKey, logger).Register(g.Group("/centras"))

	shipmentGroup := g.Group("/shipments")
	handlers.NewResource[models.Shipment, string, models.ShipmentCreate, models.ShipmentUpdate](
		"shipment", s.Shipments, handlers.StringKey, logger).FilterBy("status", "batch_id").Register(shipmentGroup)
	handlers.NewShipmentHandler(shipments.NewService(s.Shipments, logger), logger).Register(shipmentGroup)

	handlers.NewResource[models.HarborGuard, int64, models.HarborGuardCreate, models.HarborGuardUpdate](
		"harbor guard", s.HarborGuards, handlers.IntKey, logger).Register(g.Group("/harborguards"))
	handlers.NewResource[models.Warehouse, int64, models.WarehouseCreate, models.WarehouseUpdate](
		"warehouse", s.Warehouses, handlers.IntKey, logger).Register(g.Group("/warehouses"))
	handlers.NewResource[models.User, int64, models.UserCreate, models.UserUpdate](
		"user", s.Users, handlers.IntKey, logger).Register(g.Group("/users"))

	handlers.NewResource[models.Expedition, int64, models.ExpeditionCreate, models.ExpeditionUpdate](
		"expedition", s.Expeditions, handlers.IntKey, logger).Register(g.Group("/expeditions"))
	handlers.NewResource[models.ReceivedPackage, int64, models.ReceivedPackageCreate, models.ReceivedPackageUpdate](
		"received package", s.ReceivedPackages, handlers.IntKey, logger).Register(g.Group("/received_packages"))
	handlers.NewResource[models.PackageReceipt, int64, models.PackageReceiptCreate, models.PackageReceiptUpdate](
		"package receipt", s.PackageReceipts, handlers.IntKey, logger).Register(g.Group("/package_receipts"))
	handlers.NewResource[models.ProductReceipt, int64, models.ProductReceiptCreate, models.ProductReceiptUpdate](
		"product receipt", s.ProductReceipts, handlers.IntKey, logger).Register(g.Group("/product_receipts"))
	handlers.NewResource[models.PackageType, int64, models.PackageTypeCreate, models.PackageTypeUpdate](
		"package type", s.PackageTypes, handlers.IntKey, logger).Register(g.Group("/package_types"))

	stocks := g.Group("/stocks")
	handlers.NewResource[models.Stock, int64, models.StockCreate, models.StockUpdate](
		"stock", s.Stocks, handlers.IntKey, logger).Register(stocks)
	handlers.NewStockHandler(s.Stocks, logger).Register(stocks)
}

func zapLoggerMiddleware(logger *zap.Logger) gin.HandlerFunc {
	if logger == nil {
		logger = zap.NewNop()
	}

	return func(c *gin.Context) {
		start := time.Now()
		c.Next()

		fields := []zap.Field{
			zap.String("method", c.Request.Method),
			zap.String("path", c.Request.URL.Path),
			zap.Int("status", c.Writer.Status()),
			zap.Duration("duration", time.Since(start)),
			zap.String("client_ip", c.ClientIP()),
		}
		if c.Writer.Status() >= http.StatusInternalServerError {
			logger.Error("request completed", fields...)
			return
		}
		logger.Info("request completed", fields...)
	}
}
