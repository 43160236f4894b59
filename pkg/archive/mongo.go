package archive

import (
	"context"
	"encoding/json"
	stderrors "errors"
	"fmt"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
	"go.mongodb.org/mongo-driver/mongo/readpref"

	"github.com/matzehuels/geomech/pkg/errors"
)

// Defaults for [MongoOptions].
const (
	DefaultMongoDatabase   = "geomech"
	DefaultMongoCollection = "runs"
)

// MongoOptions configures a [MongoStore].
type MongoOptions struct {
	URI        string
	Database   string
	Collection string
}

// MongoStore stores records in a MongoDB collection.
type MongoStore struct {
	client *mongo.Client
	coll   *mongo.Collection
}

// mongoRecord is the stored document. Inputs and outputs are kept as JSON
// strings so that documents stay readable in the shell.
type mongoRecord struct {
	ID         string    `bson:"_id"`
	Tool       string    `bson:"tool"`
	Input      string    `bson:"input"`
	Output     string    `bson:"output,omitempty"`
	ErrorCode  string    `bson:"error_code,omitempty"`
	Error      string    `bson:"error,omitempty"`
	Cached     bool      `bson:"cached"`
	DurationNS int64     `bson:"duration_ns"`
	CreatedAt  time.Time `bson:"created_at"`
}

func toMongo(r Record) mongoRecord {
	return mongoRecord{
		ID:         r.ID,
		Tool:       r.Tool,
		Input:      string(r.Input),
		Output:     string(r.Output),
		ErrorCode:  r.ErrorCode,
		Error:      r.Error,
		Cached:     r.Cached,
		DurationNS: int64(r.Duration),
		CreatedAt:  r.CreatedAt.UTC(),
	}
}

func (m mongoRecord) record() Record {
	r := Record{
		ID:        m.ID,
		Tool:      m.Tool,
		Input:     json.RawMessage(m.Input),
		ErrorCode: m.ErrorCode,
		Error:     m.Error,
		Cached:    m.Cached,
		Duration:  time.Duration(m.DurationNS),
		CreatedAt: m.CreatedAt,
	}
	if m.Output != "" {
		r.Output = json.RawMessage(m.Output)
	}
	return r
}

// NewMongoStore connects, pings the primary and ensures the (tool,
// created_at) index exists.
func NewMongoStore(ctx context.Context, opts MongoOptions) (*MongoStore, error) {
	if opts.Database == "" {
		opts.Database = DefaultMongoDatabase
	}
	if opts.Collection == "" {
		opts.Collection = DefaultMongoCollection
	}
	client, err := mongo.Connect(ctx, options.Client().ApplyURI(opts.URI))
	if err != nil {
		return nil, fmt.Errorf("connect mongo: %w", err)
	}
	if err := client.Ping(ctx, readpref.Primary()); err != nil {
		_ = client.Disconnect(ctx)
		return nil, fmt.Errorf("ping mongo: %w", err)
	}
	coll := client.Database(opts.Database).Collection(opts.Collection)
	_, err = coll.Indexes().CreateOne(ctx, mongo.IndexModel{
		Keys: bson.D{{Key: "tool", Value: 1}, {Key: "created_at", Value: -1}},
	})
	if err != nil {
		_ = client.Disconnect(ctx)
		return nil, fmt.Errorf("create index: %w", err)
	}
	return &MongoStore{client: client, coll: coll}, nil
}

// Save inserts rec.
func (s *MongoStore) Save(ctx context.Context, rec Record) error {
	if _, err := s.coll.InsertOne(ctx, toMongo(rec)); err != nil {
		return fmt.Errorf("insert run %s: %w", rec.ID, err)
	}
	return nil
}

// Get returns one record.
func (s *MongoStore) Get(ctx context.Context, id string) (Record, error) {
	var doc mongoRecord
	err := s.coll.FindOne(ctx, bson.M{"_id": id}).Decode(&doc)
	if stderrors.Is(err, mongo.ErrNoDocuments) {
		return Record{}, errors.New(errors.ErrCodeNotFound, "run %s not found", id)
	}
	if err != nil {
		return Record{}, fmt.Errorf("find run %s: %w", id, err)
	}
	return doc.record(), nil
}

// List returns records newest first.
func (s *MongoStore) List(ctx context.Context, opts ListOptions) ([]Record, error) {
	filter := bson.M{}
	if opts.Tool != "" {
		filter["tool"] = opts.Tool
	}
	find := options.Find().
		SetSort(bson.D{{Key: "created_at", Value: -1}}).
		SetLimit(int64(opts.limit()))

	cur, err := s.coll.Find(ctx, filter, find)
	if err != nil {
		return nil, fmt.Errorf("find runs: %w", err)
	}
	var docs []mongoRecord
	if err := cur.All(ctx, &docs); err != nil {
		return nil, fmt.Errorf("decode runs: %w", err)
	}
	out := make([]Record, len(docs))
	for i, d := range docs {
		out[i] = d.record()
	}
	return out, nil
}

// Close disconnects the client.
func (s *MongoStore) Close() error {
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	return s.client.Disconnect(ctx)
}

var _ Store = (*MongoStore)(nil)
