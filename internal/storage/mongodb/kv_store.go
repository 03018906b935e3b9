package mongodb

import (
	"context"
	"errors"
	"fmt"
	"time"

	"currency-converter/internal/custom_err"
	"currency-converter/internal/storage"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

type kvDocument struct {
	Key       string    `bson:"_id"`
	Value     string    `bson:"value"`
	UpdatedAt time.Time `bson:"updated_at"`
}

type MongoStorage struct {
	client     *mongo.Client
	collection *mongo.Collection
}

func NewMongoStorage(ctx context.Context, uri, database, collection string, timeout time.Duration) (*MongoStorage, error) {
	clientOpts := options.Client().
		ApplyURI(uri).
		SetConnectTimeout(timeout).
		SetServerSelectionTimeout(timeout)

	client, err := mongo.Connect(ctx, clientOpts)
	if err != nil {
		return nil, fmt.Errorf("failed to connect to MongoDB: %w", err)
	}

	ctxPing, cancel := context.WithTimeout(ctx, timeout)
	defer cancel()

	if err := client.Ping(ctxPing, nil); err != nil {
		_ = client.Disconnect(context.Background())
		return nil, fmt.Errorf("failed to ping MongoDB: %w", err)
	}

	return NewMongoStorageWithCollection(client.Database(database).Collection(collection)), nil
}

func NewMongoStorageWithCollection(collection *mongo.Collection) *MongoStorage {
	return &MongoStorage{
		client:     collection.Database().Client(),
		collection: collection,
	}
}

func (s *MongoStorage) Get(ctx context.Context, key string) (string, error) {
	var doc kvDocument

	err := s.collection.FindOne(ctx, bson.M{"_id": key}).Decode(&doc)
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return "", custom_err.ErrNotFound
		}
		return "", fmt.Errorf("failed to get value: %w", err)
	}

	return doc.Value, nil
}

// Set заменяет документ целиком, так что читатель никогда не видит частично записанный snapshot.
func (s *MongoStorage) Set(ctx context.Context, key, value string) error {
	doc := kvDocument{Key: key, Value: value, UpdatedAt: time.Now()}

	_, err := s.collection.ReplaceOne(ctx, bson.M{"_id": key}, doc, options.Replace().SetUpsert(true))
	if err != nil {
		return fmt.Errorf("failed to save value: %w", err)
	}

	return nil
}

func (s *MongoStorage) Close() error {
	if s.client == nil {
		return nil
	}

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	return s.client.Disconnect(ctx)
}

var _ storage.KeyValue = (*MongoStorage)(nil)
