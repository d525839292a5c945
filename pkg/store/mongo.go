package store

import (
	"context"
	"errors"
	"fmt"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

// MongoStore persists sheets in a MongoDB collection for server
// deployments where saved sheets must survive restarts and be visible
// to every instance.
type MongoStore struct {
	client     *mongo.Client
	collection *mongo.Collection
}

// MongoConfig configures the MongoDB connection.
type MongoConfig struct {
	URI        string // e.g. "mongodb://localhost:27017"
	Database   string // defaults to "heatsheet"
	Collection string // defaults to "sheets"
}

// NewMongoStore connects to MongoDB and verifies the connection with a
// ping.
func NewMongoStore(ctx context.Context, cfg MongoConfig) (*MongoStore, error) {
	if cfg.Database == "" {
		cfg.Database = "heatsheet"
	}
	if cfg.Collection == "" {
		cfg.Collection = "sheets"
	}

	client, err := mongo.Connect(ctx, options.Client().ApplyURI(cfg.URI))
	if err != nil {
		return nil, fmt.Errorf("connect mongo: %w", err)
	}
	if err := client.Ping(ctx, nil); err != nil {
		_ = client.Disconnect(ctx)
		return nil, fmt.Errorf("ping mongo: %w", err)
	}

	return &MongoStore{
		client:     client,
		collection: client.Database(cfg.Database).Collection(cfg.Collection),
	}, nil
}

// Save upserts a sheet by ID.
func (s *MongoStore) Save(ctx context.Context, sheet *Sheet) error {
	_, err := s.collection.ReplaceOne(ctx,
		bson.M{"_id": sheet.ID},
		sheet,
		options.Replace().SetUpsert(true))
	if err != nil {
		return fmt.Errorf("save sheet %s: %w", sheet.ID, err)
	}
	return nil
}

// Get retrieves a sheet by ID.
func (s *MongoStore) Get(ctx context.Context, id string) (*Sheet, error) {
	var sheet Sheet
	err := s.collection.FindOne(ctx, bson.M{"_id": id}).Decode(&sheet)
	if errors.Is(err, mongo.ErrNoDocuments) {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("get sheet %s: %w", id, err)
	}
	return &sheet, nil
}

// List returns all sheets, newest first.
func (s *MongoStore) List(ctx context.Context) ([]*Sheet, error) {
	cursor, err := s.collection.Find(ctx, bson.M{},
		options.Find().SetSort(bson.D{{Key: "created_at", Value: -1}}))
	if err != nil {
		return nil, fmt.Errorf("list sheets: %w", err)
	}
	defer cursor.Close(ctx)

	var sheets []*Sheet
	if err := cursor.All(ctx, &sheets); err != nil {
		return nil, fmt.Errorf("decode sheets: %w", err)
	}
	return sheets, nil
}

// Delete removes a sheet.
func (s *MongoStore) Delete(ctx context.Context, id string) error {
	res, err := s.collection.DeleteOne(ctx, bson.M{"_id": id})
	if err != nil {
		return fmt.Errorf("delete sheet %s: %w", id, err)
	}
	if res.DeletedCount == 0 {
		return ErrNotFound
	}
	return nil
}

// Close disconnects from MongoDB.
func (s *MongoStore) Close(ctx context.Context) error {
	return s.client.Disconnect(ctx)
}

// Ensure MongoStore implements Store.
var _ Store = (*MongoStore)(nil)
