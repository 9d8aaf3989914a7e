// Package postgres implements the persistence gateway on a relational database via gorm.
package postgres

import (
	"context"
	"errors"
	"fmt"
	"time"

	"go.uber.org/zap"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"
	gormlogger "gorm.io/gorm/logger"

	"github.com/mamadbah2/leafline/internal/domain/models"
	"github.com/mamadbah2/leafline/internal/repository"
)

const slowQueryThreshold = 200 * time.Millisecond

// Open connects to PostgreSQL and verifies the connection with a ping.
func Open(ctx context.Context, dsn string, logger *zap.Logger) (*gorm.DB, error) {
	db, err := gorm.Open(postgres.Open(dsn), &gorm.Config{
		Logger: NewGormLogger(logger),
	})
	if err != nil {
		return nil, fmt.Errorf("failed to connect to postgres: %w", err)
	}

	sqlDB, err := db.DB()
	if err != nil {
		return nil, fmt.Errorf("failed to access postgres pool: %w", err)
	}
	sqlDB.SetMaxOpenConns(25)
	sqlDB.SetMaxIdleConns(5)
	sqlDB.SetConnMaxLifetime(30 * time.Minute)

	if err := sqlDB.PingContext(ctx); err != nil {
		return nil, fmt.Errorf("failed to ping postgres: %w", err)
	}
	return db, nil
}

// Migrate creates or alters the tables of every entity.
func Migrate(db *gorm.DB) error {
	if err := db.AutoMigrate(repository.Models()...); err != nil {
		return fmt.Errorf("auto migrate: %w", err)
	}
	return nil
}

// Close releases the connection pool.
func Close(db *gorm.DB) error {
	sqlDB, err := db.DB()
	if err != nil {
		return err
	}
	return sqlDB.Close()
}

// NewStores binds a table-backed Store for every entity.
func NewStores(db *gorm.DB) *repository.Stores {
	return &repository.Stores{
		WetLeaves:          NewTable[models.WetLeavesCollection, string](db),
		Batches:            NewTable[models.ProcessedLeaves, int64](db),
		DryingMachines:     NewTable[models.DryingMachine, string](db),
		DryingActivities:   NewTable[models.DryingActivity, string](db),
		FlouringMachines:   NewTable[models.FlouringMachine, string](db),
		FlouringActivities: NewTable[models.FlouringActivity, string](db),
		Centras:            NewTable[models.Centra, int64](db),
		Shipments:          NewTable[models.Shipment, string](db),
		HarborGuards:       NewTable[models.HarborGuard, int64](db),
		Warehouses:         NewTable[models.Warehouse, int64](db),
		Users:              NewTable[models.User, int64](db),
		Expeditions:        NewTable[models.Expedition, int64](db),
		ReceivedPackages:   NewTable[models.ReceivedPackage, int64](db),
		PackageReceipts:    NewTable[models.PackageReceipt, int64](db),
		ProductReceipts:    NewTable[models.ProductReceipt, int64](db),
		PackageTypes:       NewTable[models.PackageType, int64](db),
		Stocks:             NewTable[models.Stock, int64](db),
	}
}

// GormLogger routes gorm's logging through zap.
type GormLogger struct {
	logger *zap.Logger
	level  gormlogger.LogLevel
}

// NewGormLogger wraps logger at warn level: slow queries and errors only.
func NewGormLogger(logger *zap.Logger) *GormLogger {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &GormLogger{logger: logger, level: gormlogger.Warn}
}

func (l *GormLogger) LogMode(level gormlogger.LogLevel) gormlogger.Interface {
	clone := *l
	clone.level = level
	return &clone
}

func (l *GormLogger) Info(_ context.Context, msg string, args ...interface{}) {
	if l.level >= gormlogger.Info {
		l.logger.Sugar().Infof(msg, args...)
	}
}

func (l *GormLogger) Warn(_ context.Context, msg string, args ...interface{}) {
	if l.level >= gormlogger.Warn {
		l.logger.Sugar().Warnf(msg, args...)
	}
}

func (l *GormLogger) Error(_ context.Context, msg string, args ...interface{}) {
	if l.level >= gormlogger.Error {
		l.logger.Sugar().Errorf(msg, args...)
	}
}

func (l *GormLogger) Trace(_ context.Context, begin time.Time, fc func() (string, int64), err error) {
	if l.level <= gormlogger.Silent {
		return
	}

	elapsed := time.Since(begin)
	switch {
	case err != nil && l.level >= gormlogger.Error && !errors.Is(err, gorm.ErrRecordNotFound):
		sql, rows := fc()
		l.logger.Error("query failed", zap.Error(err), zap.String("sql", sql), zap.Int64("rows", rows), zap.Duration("elapsed", elapsed))
	case elapsed > slowQueryThreshold && l.level >= gormlogger.Warn:
		sql, rows := fc()
		l.logger.Warn("slow query", zap.String("sql", sql), zap.Int64("rows", rows), zap.Duration("elapsed", elapsed))
	case l.level >= gormlogger.Info:
		sql, rows := fc()
		l.logger.Debug("query", zap.String("sql", sql), zap.Int64("rows", rows), zap.Duration("elapsed", elapsed))
	}
}
