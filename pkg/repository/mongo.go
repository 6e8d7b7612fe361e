package repository

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/frizzly/api/pkg/config"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
	"go.mongodb.org/mongo-driver/mongo/readpref"
)

// MongoStore is the MongoDB DocumentStore. Server timestamps come from the
// server clock ($$NOW / $currentDate).
type MongoStore struct {
	client   *mongo.Client
	database *mongo.Database
}

// NewMongoStore connects using cfg and verifies the deployment is reachable.
func NewMongoStore(ctx context.Context, cfg *config.MongoDBConfig, timeout time.Duration) (*MongoStore, error) {
	if cfg.URI == "" {
		return nil, errors.New("mongodb: no connection uri configured")
	}

	ctx, cancel := context.WithTimeout(ctx, timeout)
	defer cancel()

	opts := options.Client().
		ApplyURI(cfg.URI).
		SetServerSelectionTimeout(timeout)
	if cfg.Username != "" {
		opts.SetAuth(options.Credential{
			Username:   cfg.Username,
			Password:   cfg.Password,
			AuthSource: cfg.AuthSource,
		})
	}

	client, err := mongo.Connect(ctx, opts)
	if err != nil {
		return nil, fmt.Errorf("mongodb: connect: %w", err)
	}

	if err := client.Ping(ctx, readpref.Primary()); err != nil {
		_ = client.Disconnect(context.Background())
		return nil, fmt.Errorf("mongodb: ping: %w", err)
	}

	return NewMongoStoreFromClient(client, cfg.Database), nil
}

func NewMongoStoreFromClient(client *mongo.Client, database string) *MongoStore {
	return &MongoStore{
		client:   client,
		database: client.Database(database),
	}
}

func (m *MongoStore) Get(ctx context.Context, collection, id string, out interface{}) error {
	err := m.database.Collection(collection).FindOne(ctx, bson.M{"_id": id}).Decode(out)
	if errors.Is(err, mongo.ErrNoDocuments) {
		return ErrNotFound
	}
	return err
}

// Set replaces the document through an upserting pipeline so that stamped
// fields can be filled with $$NOW. The payload is wrapped in $literal to
// keep strings such as "$2.99/kg" from being read as field paths.
func (m *MongoStore) Set(ctx context.Context, collection, id string, doc interface{}, stamps ...string) error {
	fields, err := toDocument(doc)
	if err != nil {
		return err
	}
	delete(fields, "_id")

	server := bson.D{{Key: "_id", Value: bson.D{{Key: "$literal", Value: id}}}}
	for _, f := range stamps {
		server = append(server, bson.E{Key: f, Value: "$$NOW"})
	}

	pipeline := mongo.Pipeline{
		{{Key: "$replaceWith", Value: bson.D{{Key: "$mergeObjects", Value: bson.A{
			bson.D{{Key: "$literal", Value: fields}},
			server,
		}}}}},
	}

	_, err = m.database.Collection(collection).UpdateOne(ctx, bson.M{"_id": id}, pipeline, options.Update().SetUpsert(true))
	return err
}

func (m *MongoStore) Add(ctx context.Context, collection string, doc interface{}, stamps ...string) (string, error) {
	id := newDocumentID()
	if err := m.Set(ctx, collection, id, doc, stamps...); err != nil {
		return "", err
	}
	return id, nil
}

func (m *MongoStore) Update(ctx context.Context, collection, id string, fields map[string]interface{}, stamps ...string) error {
	update := bson.D{}
	if len(fields) > 0 {
		update = append(update, bson.E{Key: "$set", Value: bson.M(fields)})
	}
	if len(stamps) > 0 {
		current := bson.M{}
		for _, f := range stamps {
			current[f] = true
		}
		update = append(update, bson.E{Key: "$currentDate", Value: current})
	}
	if len(update) == 0 {
		return nil
	}

	_, err := m.database.Collection(collection).UpdateOne(ctx, bson.M{"_id": id}, update, options.Update().SetUpsert(true))
	return err
}

func (m *MongoStore) Delete(ctx context.Context, collection, id string) error {
	_, err := m.database.Collection(collection).DeleteOne(ctx, bson.M{"_id": id})
	return err
}

func (m *MongoStore) Find(ctx context.Context, collection string, out interface{}, filters ...Filter) error {
	filter := bson.D{}
	for _, f := range filters {
		filter = append(filter, bson.E{Key: f.Field, Value: f.Value})
	}
	opts := options.Find().SetSort(bson.D{{Key: "_id", Value: 1}})

	cursor, err := m.database.Collection(collection).Find(ctx, filter, opts)
	if err != nil {
		return err
	}
	defer cursor.Close(ctx)

	return cursor.All(ctx, out)
}

func (m *MongoStore) Ping(ctx context.Context) error {
	return m.client.Ping(ctx, readpref.Primary())
}

func (m *MongoStore) Close(ctx context.Context) error {
	return m.client.Disconnect(ctx)
}
