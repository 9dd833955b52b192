package store

import (
	"context"
	"fmt"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"github.com/cloudscope/cloudscope/pkg/observability"
)

// MongoConfig configures a MongoDB-backed store.
type MongoConfig struct {
	URI        string
	Database   string
	Collection string
}

// MongoStore persists sources in a MongoDB collection, one document per
// source keyed by _id.
type MongoStore struct {
	client *mongo.Client
	coll   *mongo.Collection
}

// NewMongoStore connects to MongoDB and verifies the connection.
func NewMongoStore(ctx context.Context, cfg MongoConfig) (*MongoStore, error) {
	if cfg.Database == "" {
		cfg.Database = "cloudscope"
	}
	if cfg.Collection == "" {
		cfg.Collection = "sources"
	}

	client, err := mongo.Connect(ctx, options.Client().ApplyURI(cfg.URI))
	if err != nil {
		return nil, fmt.Errorf("connect to mongodb: %w", err)
	}
	if err := client.Ping(ctx, nil); err != nil {
		client.Disconnect(ctx)
		return nil, fmt.Errorf("ping mongodb: %w", err)
	}

	return &MongoStore{
		client: client,
		coll:   client.Database(cfg.Database).Collection(cfg.Collection),
	}, nil
}

func (s *MongoStore) List(ctx context.Context) (sources []Source, err error) {
	defer s.observe(ctx, "list", time.Now(), &err)

	cursor, err := s.coll.Find(ctx, bson.M{}, options.Find().SetSort(bson.D{
		{Key: "added_at", Value: 1},
		{Key: "_id", Value: 1},
	}))
	if err != nil {
		return nil, fmt.Errorf("list sources: %w", err)
	}
	defer cursor.Close(ctx)

	if err := cursor.All(ctx, &sources); err != nil {
		return nil, fmt.Errorf("decode sources: %w", err)
	}
	return sources, nil
}

func (s *MongoStore) Put(ctx context.Context, src Source) (err error) {
	defer s.observe(ctx, "put", time.Now(), &err)

	_, err = s.coll.ReplaceOne(ctx, bson.M{"_id": src.ID}, src,
		options.Replace().SetUpsert(true))
	if err != nil {
		return fmt.Errorf("store source: %w", err)
	}
	return nil
}

func (s *MongoStore) Delete(ctx context.Context, id string) (err error) {
	defer s.observe(ctx, "delete", time.Now(), &err)

	if _, err = s.coll.DeleteOne(ctx, bson.M{"_id": id}); err != nil {
		return fmt.Errorf("delete source: %w", err)
	}
	return nil
}

func (s *MongoStore) Clear(ctx context.Context) (err error) {
	defer s.observe(ctx, "clear", time.Now(), &err)

	if _, err = s.coll.DeleteMany(ctx, bson.M{}); err != nil {
		return fmt.Errorf("clear sources: %w", err)
	}
	return nil
}

func (s *MongoStore) Close(ctx context.Context) error {
	return s.client.Disconnect(ctx)
}

func (s *MongoStore) observe(ctx context.Context, op string, start time.Time, err *error) {
	observability.Store().OnStoreOp(ctx, "mongo", op, time.Since(start), *err)
}
