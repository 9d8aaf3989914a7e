// Package mongodb implements the persistence gateway on MongoDB collections.
package mongodb

import (
	"context"
	"errors"
	"fmt"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"github.com/mamadbah2/leafline/internal/domain/models"
	"github.com/mamadbah2/leafline/internal/repository"
)

const countersCollection = "counters"

// Database holds the client and the database every collection lives in.
type Database struct {
	client *mongo.Client
	db     *mongo.Database
}

// Connect opens a client and pings the server to verify the connection.
func Connect(ctx context.Context, uri string, dbName string) (*Database, error) {
	clientOptions := options.Client().ApplyURI(uri)
	client, err := mongo.Connect(ctx, clientOptions)
	if err != nil {
		return nil, fmt.Errorf("failed to connect to mongodb: %w", err)
	}

	if err := client.Ping(ctx, nil); err != nil {
		_ = client.Disconnect(ctx)
		return nil, fmt.Errorf("failed to ping mongodb: %w", err)
	}

	return &Database{client: client, db: client.Database(dbName)}, nil
}

// Close closes the MongoDB connection.
func (d *Database) Close(ctx context.Context) error {
	return d.client.Disconnect(ctx)
}

// NewStores binds a collection-backed Store for every entity.
func (d *Database) NewStores() *repository.Stores {
	return &repository.Stores{
		WetLeaves:          NewCollection[models.WetLeavesCollection, string](d),
		Batches:            NewCollection[models.ProcessedLeaves, int64](d),
		DryingMachines:     NewCollection[models.DryingMachine, string](d),
		DryingActivities:   NewCollection[models.DryingActivity, string](d),
		FlouringMachines:   NewCollection[models.FlouringMachine, string](d),
		FlouringActivities: NewCollection[models.FlouringActivity, string](d),
		Centras:            NewCollection[models.Centra, int64](d),
		Shipments:          NewCollection[models.Shipment, string](d),
		HarborGuards:       NewCollection[models.HarborGuard, int64](d),
		Warehouses:         NewCollection[models.Warehouse, int64](d),
		Users:              NewCollection[models.User, int64](d),
		Expeditions:        NewCollection[models.Expedition, int64](d),
		ReceivedPackages:   NewCollection[models.ReceivedPackage, int64](d),
		PackageReceipts:    NewCollection[models.PackageReceipt, int64](d),
		ProductReceipts:    NewCollection[models.ProductReceipt, int64](d),
		PackageTypes:       NewCollection[models.PackageType, int64](d),
		Stocks:             NewCollection[models.Stock, int64](d),
	}
}

// Collection stores one entity per document, keyed by _id.
//
// Integer keys are drawn from a per-collection counter document. Updates are
// optimistic: the replace only matches while updated_at is unchanged, so a
// concurrent writer surfaces as models.ErrConflict.
type Collection[E any, K comparable, P repository.Entity[E, K]] struct {
	coll     *mongo.Collection
	counters *mongo.Collection
	name     string
	now      func() time.Time
}

// NewCollection binds a Store to the entity's collection.
func NewCollection[E any, K comparable, P repository.Entity[E, K]](d *Database) *Collection[E, K, P] {
	var zero E
	name := P(&zero).TableName()
	return &Collection[E, K, P]{
		coll:     d.db.Collection(name),
		counters: d.db.Collection(countersCollection),
		name:     name,
		now:      time.Now,
	}
}

func (c *Collection[E, K, P]) Create(ctx context.Context, entity *E) error {
	rec := P(entity)
	var seq int64
	if _, intKeyed := any(rec.Key()).(int64); intKeyed {
		next, err := c.nextSeq(ctx)
		if err != nil {
			return err
		}
		seq = next
	}
	rec.AssignKey(seq)
	rec.Stamp(c.now().UTC())

	if _, err := c.coll.InsertOne(ctx, entity); err != nil {
		return c.translate("insert", err)
	}
	return nil
}

func (c *Collection[E, K, P]) Get(ctx context.Context, key K) (*E, error) {
	var row E
	if err := c.coll.FindOne(ctx, bson.M{"_id": key}).Decode(&row); err != nil {
		return nil, c.translate("find", err)
	}
	return &row, nil
}

func (c *Collection[E, K, P]) List(ctx context.Context, page repository.Page) ([]E, error) {
	return c.find(ctx, bson.M{}, page)
}

func (c *Collection[E, K, P]) Find(ctx context.Context, field string, value any, page repository.Page) ([]E, error) {
	return c.find(ctx, bson.M{field: value}, page)
}

func (c *Collection[E, K, P]) Update(ctx context.Context, key K, mutate func(*E) error) (*E, error) {
	var row E
	if err := c.coll.FindOne(ctx, bson.M{"_id": key}).Decode(&row); err != nil {
		return nil, c.translate("find", err)
	}

	filter := bson.M{"_id": key}
	if stamped, ok := any(&row).(interface{ LastUpdated() time.Time }); ok {
		filter["updated_at"] = stamped.LastUpdated()
	}

	if err := mutate(&row); err != nil {
		return nil, err
	}
	P(&row).Stamp(c.now().UTC())

	res, err := c.coll.ReplaceOne(ctx, filter, &row)
	if err != nil {
		return nil, c.translate("replace", err)
	}
	if res.MatchedCount == 0 {
		if _, getErr := c.Get(ctx, key); errors.Is(getErr, models.ErrNotFound) {
			return nil, models.ErrNotFound
		}
		return nil, fmt.Errorf("replace %s %v: %w: concurrent modification", c.name, key, models.ErrConflict)
	}
	return &row, nil
}

func (c *Collection[E, K, P]) Delete(ctx context.Context, key K) (*E, error) {
	var row E
	if err := c.coll.FindOneAndDelete(ctx, bson.M{"_id": key}).Decode(&row); err != nil {
		return nil, c.translate("delete", err)
	}
	return &row, nil
}

func (c *Collection[E, K, P]) find(ctx context.Context, filter bson.M, page repository.Page) ([]E, error) {
	page = page.Normalize()
	opts := options.Find().
		SetSort(bson.D{{Key: "created_at", Value: 1}, {Key: "_id", Value: 1}}).
		SetSkip(int64(page.Skip)).
		SetLimit(int64(page.Limit))

	cursor, err := c.coll.Find(ctx, filter, opts)
	if err != nil {
		return nil, c.translate("list", err)
	}
	defer cursor.Close(ctx)

	rows := make([]E, 0)
	if err := cursor.All(ctx, &rows); err != nil {
		return nil, c.translate("decode", err)
	}
	return rows, nil
}

func (c *Collection[E, K, P]) nextSeq(ctx context.Context) (int64, error) {
	var counter struct {
		Seq int64 `bson:"seq"`
	}
	opts := options.FindOneAndUpdate().SetUpsert(true).SetReturnDocument(options.After)
	err := c.counters.FindOneAndUpdate(ctx,
		bson.M{"_id": c.name},
		bson.M{"$inc": bson.M{"seq": int64(1)}},
		opts,
	).Decode(&counter)
	if err != nil {
		return 0, c.translate("next id", err)
	}
	return counter.Seq, nil
}

func (c *Collection[E, K, P]) translate(op string, err error) error {
	switch {
	case errors.Is(err, mongo.ErrNoDocuments):
		return models.ErrNotFound
	case mongo.IsDuplicateKeyError(err):
		return fmt.Errorf("%s %s: %w", op, c.name, models.ErrConflict)
	default:
		return fmt.Errorf("%s %s: %w: %v", op, c.name, models.ErrUnavailable, err)
	}
}

var _ repository.Store[models.Shipment, string] = (*Collection[models.Shipment, string, *models.Shipment])(nil)
