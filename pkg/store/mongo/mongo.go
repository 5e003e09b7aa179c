// Package mongo implements a [store.Store] on MongoDB.
//
// Graphs are documents in one collection keyed by name:
//
//	{_id: "<name>", data: BinData(...), updated_at: ISODate(...)}
package mongo

import (
	"context"
	"errors"
	"fmt"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"github.com/matzehuels/roomgraph/pkg/store"
)

// Defaults for Config.
const (
	DefaultDatabase   = "roomgraph"
	DefaultCollection = "graphs"
)

// Config holds connection settings.
type Config struct {
	URI        string
	Database   string // defaults to DefaultDatabase
	Collection string // defaults to DefaultCollection
}

// Store is a MongoDB-backed graph store.
type Store struct {
	client *mongo.Client
	coll   *mongo.Collection
}

type record struct {
	Name      string    `bson:"_id"`
	Data      []byte    `bson:"data"`
	UpdatedAt time.Time `bson:"updated_at"`
}

// New connects to MongoDB and pings the primary, retrying transient
// failures.
func New(ctx context.Context, cfg Config) (*Store, error) {
	client, err := mongo.Connect(ctx, options.Client().ApplyURI(cfg.URI))
	if err != nil {
		return nil, fmt.Errorf("connect mongo: %w", err)
	}
	err = store.RetryWithBackoff(ctx, func() error {
		return store.Retryable(client.Ping(ctx, nil))
	})
	if err != nil {
		client.Disconnect(context.Background())
		return nil, fmt.Errorf("ping mongo: %w", err)
	}
	db, coll := cfg.names()
	return &Store{client: client, coll: client.Database(db).Collection(coll)}, nil
}

func (c Config) names() (db, coll string) {
	db, coll = c.Database, c.Collection
	if db == "" {
		db = DefaultDatabase
	}
	if coll == "" {
		coll = DefaultCollection
	}
	return db, coll
}

func (s *Store) Load(ctx context.Context, name string) ([]byte, error) {
	var rec record
	err := s.coll.FindOne(ctx, bson.M{"_id": name}).Decode(&rec)
	if errors.Is(err, mongo.ErrNoDocuments) {
		return nil, store.ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("mongo find %s: %w", name, err)
	}
	return rec.Data, nil
}

func (s *Store) Save(ctx context.Context, name string, data []byte) error {
	rec := record{Name: name, Data: data, UpdatedAt: time.Now().UTC()}
	_, err := s.coll.ReplaceOne(ctx, bson.M{"_id": name}, rec, options.Replace().SetUpsert(true))
	if err != nil {
		return fmt.Errorf("mongo replace %s: %w", name, err)
	}
	return nil
}

func (s *Store) Delete(ctx context.Context, name string) error {
	if _, err := s.coll.DeleteOne(ctx, bson.M{"_id": name}); err != nil {
		return fmt.Errorf("mongo delete %s: %w", name, err)
	}
	return nil
}

func (s *Store) List(ctx context.Context) ([]string, error) {
	opts := options.Find().
		SetProjection(bson.M{"_id": 1}).
		SetSort(bson.D{{Key: "_id", Value: 1}})
	cur, err := s.coll.Find(ctx, bson.M{}, opts)
	if err != nil {
		return nil, fmt.Errorf("mongo find: %w", err)
	}
	defer cur.Close(ctx)

	var names []string
	for cur.Next(ctx) {
		var rec struct {
			Name string `bson:"_id"`
		}
		if err := cur.Decode(&rec); err != nil {
			return nil, fmt.Errorf("mongo decode: %w", err)
		}
		names = append(names, rec.Name)
	}
	if err := cur.Err(); err != nil {
		return nil, fmt.Errorf("mongo cursor: %w", err)
	}
	return names, nil
}

func (s *Store) Close() error {
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	return s.client.Disconnect(ctx)
}

var _ store.Store = (*Store)(nil)
