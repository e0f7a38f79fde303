package server

import (
	"context"
	"encoding/json"
	"net/http"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

// Record is one render job's history entry: enough to answer "what did
// this input hash to, how long did it take, did it fail" without
// storing the DDF body or rendered bytes themselves.
type Record struct {
	ID        string        `json:"id" bson:"_id"`
	InputHash string        `json:"input_hash" bson:"input_hash"`
	Format    string        `json:"format" bson:"format"`
	Duration  time.Duration `json:"duration_ns" bson:"duration_ns"`
	Cached    bool          `json:"cached" bson:"cached"`
	Error     string        `json:"error,omitempty" bson:"error,omitempty"`
	CreatedAt time.Time     `json:"created_at" bson:"created_at"`
}

// Store persists render job history in MongoDB.
type Store struct {
	client *mongo.Client
	col    *mongo.Collection
}

// NewStore connects to uri and opens dbName's "renders" collection,
// pinging once so a misconfigured URI fails fast at startup.
func NewStore(ctx context.Context, uri, dbName string) (*Store, error) {
	client, err := mongo.Connect(ctx, options.Client().ApplyURI(uri))
	if err != nil {
		return nil, err
	}
	if err := client.Ping(ctx, nil); err != nil {
		_ = client.Disconnect(ctx)
		return nil, err
	}
	return &Store{client: client, col: client.Database(dbName).Collection("renders")}, nil
}

// Close disconnects the underlying Mongo client.
func (s *Store) Close(ctx context.Context) error {
	return s.client.Disconnect(ctx)
}

// Insert records one render attempt.
func (s *Store) Insert(ctx context.Context, rec Record) error {
	_, err := s.col.InsertOne(ctx, rec)
	return err
}

// Get fetches a render record by ID.
func (s *Store) Get(ctx context.Context, id string) (Record, error) {
	var rec Record
	err := s.col.FindOne(ctx, bson.M{"_id": id}).Decode(&rec)
	return rec, err
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}
