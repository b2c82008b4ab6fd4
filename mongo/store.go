// Package mongo provides a MongoDB-based newscrawl.RecordStore.
package mongo

import (
	"context"
	"time"

	"github.com/newsspeech/newscrawl"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
	"go.mongodb.org/mongo-driver/mongo/readpref"
)

// DefaultConnectTimeout bounds server selection during Open.
const DefaultConnectTimeout = 2 * time.Second

// Compile-time interface verification.
var _ newscrawl.RecordStore = (*Store)(nil)

// Store implements newscrawl.RecordStore on a single MongoDB collection.
type Store struct {
	client     *mongo.Client
	collection *mongo.Collection
}

// Open connects to the server at uri and pings it within timeout.
// An unreachable server returns EUNAVAILABLE.
func Open(ctx context.Context, uri, database, collection string, timeout time.Duration) (*Store, error) {
	if timeout <= 0 {
		timeout = DefaultConnectTimeout
	}

	opts := options.Client().
		ApplyURI(uri).
		SetServerSelectionTimeout(timeout).
		SetConnectTimeout(timeout)

	client, err := mongo.Connect(ctx, opts)
	if err != nil {
		return nil, newscrawl.Errorf(newscrawl.EUNAVAILABLE, "connect %s: %v", uri, err)
	}

	pingCtx, cancel := context.WithTimeout(ctx, timeout)
	defer cancel()
	if err := client.Ping(pingCtx, readpref.Primary()); err != nil {
		_ = client.Disconnect(context.Background())
		return nil, newscrawl.Errorf(newscrawl.EUNAVAILABLE, "ping %s: %v", uri, err)
	}

	return &Store{
		client:     client,
		collection: client.Database(database).Collection(collection),
	}, nil
}

// ReplaceRecords deletes every document of the collection and inserts
// records in order. The two steps are not atomic.
func (s *Store) ReplaceRecords(ctx context.Context, records []*newscrawl.NewsRecord) error {
	if _, err := s.collection.DeleteMany(ctx, bson.D{}); err != nil {
		return newscrawl.Errorf(newscrawl.ESTORE, "delete records: %v", err)
	}
	if len(records) == 0 {
		return nil
	}

	docs := make([]any, len(records))
	for i, r := range records {
		docs[i] = r
	}
	if _, err := s.collection.InsertMany(ctx, docs, options.InsertMany().SetOrdered(true)); err != nil {
		return newscrawl.Errorf(newscrawl.ESTORE, "insert records: %v", err)
	}
	return nil
}

// FindRecords returns matching documents in natural order. The
// store-assigned _id is projected out.
func (s *Store) FindRecords(ctx context.Context, filter newscrawl.RecordFilter) ([]*newscrawl.NewsRecord, error) {
	query := bson.D{}
	if filter.Source != nil {
		query = append(query, bson.E{Key: "source", Value: string(*filter.Source)})
	}
	if filter.Category != nil {
		query = append(query, bson.E{Key: "category", Value: *filter.Category})
	}

	opts := options.Find().SetProjection(bson.D{{Key: "_id", Value: 0}})
	if filter.Limit > 0 {
		opts.SetLimit(int64(filter.Limit))
	}

	cur, err := s.collection.Find(ctx, query, opts)
	if err != nil {
		return nil, newscrawl.Errorf(newscrawl.ESTORE, "find records: %v", err)
	}

	records := make([]*newscrawl.NewsRecord, 0)
	if err := cur.All(ctx, &records); err != nil {
		return nil, newscrawl.Errorf(newscrawl.ESTORE, "decode records: %v", err)
	}
	return records, nil
}

// Close disconnects from the server.
func (s *Store) Close() error {
	ctx, cancel := context.WithTimeout(context.Background(), DefaultConnectTimeout)
	defer cancel()
	return s.client.Disconnect(ctx)
}
