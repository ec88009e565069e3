package mongo_test

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/require"
	"go.mongodb.org/mongo-driver/v2/bson"
	realmongo "go.mongodb.org/mongo-driver/v2/mongo"

	"github.com/crisisbench/crisisbench/runtime"
	store "github.com/crisisbench/crisisbench/runtime/store/mongo"
)

// fakeCollection is a narrow in-memory double for the collection
// interface, keyed by the document's _id.
type fakeCollection struct {
	docs        map[string]bson.D
	indexCalls  int
	indexErr    error
	updateCalls int
}

func newFakeCollection() *fakeCollection {
	return &fakeCollection{docs: make(map[string]bson.D)}
}

func (f *fakeCollection) EnsureIndex(ctx context.Context, keys bson.D) error {
	f.indexCalls++
	return f.indexErr
}

func (f *fakeCollection) UpdateOne(ctx context.Context, filter, update any, upsert bool) error {
	f.updateCalls++
	id, ok := filterID(filter)
	if !ok {
		return errors.New("fakeCollection: unsupported filter")
	}
	set, ok := update.(bson.D)
	if !ok || len(set) != 1 || set[0].Key != "$set" {
		return errors.New("fakeCollection: unsupported update")
	}
	raw, err := bson.Marshal(set[0].Value)
	if err != nil {
		return err
	}
	var doc bson.D
	if err := bson.Unmarshal(raw, &doc); err != nil {
		return err
	}
	f.docs[id] = doc
	return nil
}

func (f *fakeCollection) FindOne(ctx context.Context, filter any) interface {
	Decode(v any) error
} {
	id, ok := filterID(filter)
	if !ok {
		return fakeSingleResult{err: errors.New("fakeCollection: unsupported filter")}
	}
	doc, ok := f.docs[id]
	if !ok {
		return fakeSingleResult{err: realmongo.ErrNoDocuments}
	}
	raw, err := bson.Marshal(doc)
	if err != nil {
		return fakeSingleResult{err: err}
	}
	return fakeSingleResult{raw: raw}
}

func filterID(filter any) (string, bool) {
	d, ok := filter.(bson.D)
	if !ok || len(d) != 1 || d[0].Key != "_id" {
		return "", false
	}
	id, ok := d[0].Value.(string)
	return id, ok
}

type fakeSingleResult struct {
	raw []byte
	err error
}

func (r fakeSingleResult) Decode(v any) error {
	if r.err != nil {
		return r.err
	}
	return bson.Unmarshal(r.raw, v)
}

func TestEnsureIndexes(t *testing.T) {
	fc := newFakeCollection()
	s := store.NewStore(fc)
	require.NoError(t, s.EnsureIndexes(context.Background()))
	require.Equal(t, 1, fc.indexCalls)
}

func TestUpsertAndLoad(t *testing.T) {
	fc := newFakeCollection()
	s := store.NewStore(fc)
	ctx := context.Background()

	transcript := &runtime.RunTranscript{
		ScenarioID: "cardiac_arrest_T4_s42",
		RunID:      "run-1",
		RunConfig:  runtime.RunConfig{AgentModel: "claude"},
		Heartbeats: []runtime.HeartbeatTranscript{{HeartbeatID: 1}},
	}
	require.NoError(t, s.Upsert(ctx, transcript))
	require.Equal(t, 1, fc.updateCalls)

	loaded, err := s.Load(ctx, "run-1")
	require.NoError(t, err)
	require.Equal(t, transcript.ScenarioID, loaded.ScenarioID)
	require.Equal(t, transcript.RunID, loaded.RunID)
	require.Len(t, loaded.Heartbeats, 1)

	// Re-upserting the same run_id replaces rather than duplicates.
	transcript.Heartbeats = append(transcript.Heartbeats, runtime.HeartbeatTranscript{HeartbeatID: 2})
	require.NoError(t, s.Upsert(ctx, transcript))
	loaded, err = s.Load(ctx, "run-1")
	require.NoError(t, err)
	require.Len(t, loaded.Heartbeats, 2)
}

func TestUpsertValidation(t *testing.T) {
	s := store.NewStore(newFakeCollection())
	err := s.Upsert(context.Background(), &runtime.RunTranscript{})
	require.Error(t, err)
}

func TestLoadMissingReturnsZero(t *testing.T) {
	fc := newFakeCollection()
	s := store.NewStore(fc)
	loaded, err := s.Load(context.Background(), "does-not-exist")
	require.NoError(t, err)
	require.Equal(t, "", loaded.RunID)
}

func TestLoadRequiresID(t *testing.T) {
	s := store.NewStore(newFakeCollection())
	_, err := s.Load(context.Background(), "")
	require.Error(t, err)
}
