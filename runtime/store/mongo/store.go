// Package mongo provides durable RunTranscript persistence backed by
// MongoDB. The collection dependency is narrowed to the handful of methods
// this package actually calls, so tests can substitute a fake instead of
// standing up a real server.
package mongo

import (
	"context"
	"fmt"

	"go.mongodb.org/mongo-driver/v2/bson"
	"go.mongodb.org/mongo-driver/v2/mongo"
	"go.mongodb.org/mongo-driver/v2/mongo/options"

	"github.com/crisisbench/crisisbench/runtime"
)

// singleResult narrows *mongo.SingleResult to the one method Store calls.
type singleResult = interface {
	Decode(v any) error
}

// collection is the storage dependency Store needs, narrowed down from
// *mongo.Collection so tests can substitute a fake instead of a live server.
type collection interface {
	FindOne(ctx context.Context, filter any) singleResult
	UpdateOne(ctx context.Context, filter, update any, upsert bool) error
	EnsureIndex(ctx context.Context, keys bson.D) error
}

// mongoCollection adapts a real *mongo.Collection to the collection
// interface above.
type mongoCollection struct {
	coll *mongo.Collection
}

// NewMongoCollection wraps coll for use with NewStore.
func NewMongoCollection(coll *mongo.Collection) collection {
	return &mongoCollection{coll: coll}
}

func (m *mongoCollection) FindOne(ctx context.Context, filter any) singleResult {
	return m.coll.FindOne(ctx, filter)
}

func (m *mongoCollection) UpdateOne(ctx context.Context, filter, update any, upsert bool) error {
	_, err := m.coll.UpdateOne(ctx, filter, update, options.UpdateOne().SetUpsert(upsert))
	return err
}

func (m *mongoCollection) EnsureIndex(ctx context.Context, keys bson.D) error {
	_, err := m.coll.Indexes().CreateOne(ctx, mongo.IndexModel{Keys: keys})
	return err
}

// Store persists RunTranscripts keyed by run_id.
type Store struct {
	coll collection
}

// NewStore constructs a Store over coll. Production callers wrap a real
// *mongo.Collection with NewMongoCollection; tests pass a fake satisfying
// the narrow collection interface above.
func NewStore(coll collection) *Store {
	return &Store{coll: coll}
}

// runTranscriptDoc is the on-disk document shape: the transcript plus its
// own _id so upserts are keyed on run_id without requiring RunTranscript
// itself to carry a bson tag.
type runTranscriptDoc struct {
	ID         string               `bson:"_id"`
	ScenarioID string               `bson:"scenario_id"`
	RunConfig  runtime.RunConfig    `bson:"run_config"`
	Heartbeats []runtime.HeartbeatTranscript `bson:"heartbeats"`
}

// EnsureIndexes creates the indexes this store depends on. Idempotent —
// safe to call on every process start.
func (s *Store) EnsureIndexes(ctx context.Context) error {
	if err := s.coll.EnsureIndex(ctx, bson.D{{Key: "scenario_id", Value: 1}}); err != nil {
		return fmt.Errorf("store/mongo: ensuring indexes: %w", err)
	}
	return nil
}

// Upsert persists transcript, replacing any prior transcript with the same
// RunID.
func (s *Store) Upsert(ctx context.Context, transcript *runtime.RunTranscript) error {
	if transcript.RunID == "" {
		return fmt.Errorf("store/mongo: run_id is required")
	}
	doc := runTranscriptDoc{
		ID:         transcript.RunID,
		ScenarioID: transcript.ScenarioID,
		RunConfig:  transcript.RunConfig,
		Heartbeats: transcript.Heartbeats,
	}
	err := s.coll.UpdateOne(ctx,
		bson.D{{Key: "_id", Value: transcript.RunID}},
		bson.D{{Key: "$set", Value: doc}},
		true,
	)
	if err != nil {
		return fmt.Errorf("store/mongo: upserting run %s: %w", transcript.RunID, err)
	}
	return nil
}

// Load fetches the transcript for runID. It returns the zero RunTranscript
// and no error when no document exists for runID — callers check RunID on
// the result to tell "not found" from "found".
func (s *Store) Load(ctx context.Context, runID string) (*runtime.RunTranscript, error) {
	if runID == "" {
		return nil, fmt.Errorf("store/mongo: run_id is required")
	}
	var doc runTranscriptDoc
	if err := s.coll.FindOne(ctx, bson.D{{Key: "_id", Value: runID}}).Decode(&doc); err != nil {
		if err == mongo.ErrNoDocuments {
			return &runtime.RunTranscript{}, nil
		}
		return nil, fmt.Errorf("store/mongo: loading run %s: %w", runID, err)
	}
	return &runtime.RunTranscript{
		ScenarioID: doc.ScenarioID,
		RunID:      doc.ID,
		RunConfig:  doc.RunConfig,
		Heartbeats: doc.Heartbeats,
	}, nil
}
