package store

import (
	"context"
	"fmt"

	"go.mongodb.org/mongo-driver/v2/bson"
	"go.mongodb.org/mongo-driver/v2/mongo"
	"go.mongodb.org/mongo-driver/v2/mongo/options"
	"go.mongodb.org/mongo-driver/v2/mongo/readpref"
	"go.uber.org/zap"

	"github.com/souqlens/backend/internal/domain"
)

// Config holds MongoDB connection settings.
type Config struct {
	URI        string
	Database   string
	Collection string
}

// MongoStore persists processed listings in a MongoDB collection. It
// implements domain.ProductRepository.
type MongoStore struct {
	client     *mongo.Client
	collection *mongo.Collection
	logger     *zap.Logger
}

// NewMongoStore connects to MongoDB and verifies the connection with a ping.
func NewMongoStore(ctx context.Context, cfg Config, logger *zap.Logger) (*MongoStore, error) {
	client, err := mongo.Connect(options.Client().ApplyURI(cfg.URI))
	if err != nil {
		return nil, fmt.Errorf("connecting to mongodb: %w", err)
	}

	if err := client.Ping(ctx, readpref.Primary()); err != nil {
		_ = client.Disconnect(ctx)
		return nil, fmt.Errorf("pinging mongodb: %w", err)
	}

	logger.Info("connected to mongodb",
		zap.String("database", cfg.Database),
		zap.String("collection", cfg.Collection))

	return &MongoStore{
		client:     client,
		collection: client.Database(cfg.Database).Collection(cfg.Collection),
		logger:     logger,
	}, nil
}

// EnsureIndexes creates the compound indexes the comparison queries rely on.
func (s *MongoStore) EnsureIndexes(ctx context.Context) error {
	models := []mongo.IndexModel{
		{Keys: bson.D{{Key: "date", Value: 1}, {Key: "name", Value: 1}}},
		{Keys: bson.D{{Key: "date", Value: 1}, {Key: "source", Value: 1}}},
	}

	if _, err := s.collection.Indexes().CreateMany(ctx, models); err != nil {
		return fmt.Errorf("creating indexes: %w", err)
	}
	return nil
}

// InsertBatch stores one day's processed products. An empty batch is a
// no-op; InsertMany rejects empty document lists.
func (s *MongoStore) InsertBatch(ctx context.Context, date string, products []domain.Product) error {
	if len(products) == 0 {
		s.logger.Warn("no products to insert", zap.String("date", date))
		return nil
	}

	docs := make([]productDocument, 0, len(products))
	for _, p := range products {
		docs = append(docs, newProductDocument(date, p))
	}

	result, err := s.collection.InsertMany(ctx, docs)
	if err != nil {
		return fmt.Errorf("inserting products: %w", err)
	}

	s.logger.Info("inserted products",
		zap.Int("count", len(result.InsertedIDs)),
		zap.String("date", date))
	return nil
}

// FindByName returns all listings whose name contains the given text
// (case-insensitive), optionally constrained to an inclusive date range.
// Empty bounds leave that side of the range open.
func (s *MongoStore) FindByName(ctx context.Context, name, from, to string) ([]domain.StoredProduct, error) {
	filter := bson.M{"name": bson.M{"$regex": name, "$options": "i"}}
	if bounds, ok := dateBounds(from, to); ok {
		filter["date"] = bounds
	}

	cursor, err := s.collection.Find(ctx, filter)
	if err != nil {
		return nil, fmt.Errorf("querying products: %w", err)
	}

	return decodeStoredProducts(ctx, cursor)
}

// FindPriceHistory returns listings matching name (case-insensitive
// contains) and exact unit within the inclusive date range, sorted by
// date ascending. An empty supplier matches all suppliers.
func (s *MongoStore) FindPriceHistory(ctx context.Context, name, unit, supplier, from, to string) ([]domain.StoredProduct, error) {
	filter := bson.M{
		"name": bson.M{"$regex": name, "$options": "i"},
		"unit": unit,
	}
	if bounds, ok := dateBounds(from, to); ok {
		filter["date"] = bounds
	}
	if supplier != "" {
		filter["source"] = supplier
	}

	opts := options.Find().SetSort(bson.D{{Key: "date", Value: 1}})
	cursor, err := s.collection.Find(ctx, filter, opts)
	if err != nil {
		return nil, fmt.Errorf("querying price history: %w", err)
	}

	return decodeStoredProducts(ctx, cursor)
}

// Close disconnects from MongoDB.
func (s *MongoStore) Close(ctx context.Context) error {
	if err := s.client.Disconnect(ctx); err != nil {
		return fmt.Errorf("disconnecting from mongodb: %w", err)
	}
	return nil
}

func decodeStoredProducts(ctx context.Context, cursor *mongo.Cursor) ([]domain.StoredProduct, error) {
	var docs []productDocument
	if err := cursor.All(ctx, &docs); err != nil {
		return nil, fmt.Errorf("decoding products: %w", err)
	}

	stored := make([]domain.StoredProduct, 0, len(docs))
	for _, doc := range docs {
		stored = append(stored, doc.toStoredProduct())
	}
	return stored, nil
}

func dateBounds(from, to string) (bson.M, bool) {
	if from == "" && to == "" {
		return nil, false
	}

	bounds := bson.M{}
	if from != "" {
		bounds["$gte"] = from
	}
	if to != "" {
		bounds["$lte"] = to
	}
	return bounds, true
}
