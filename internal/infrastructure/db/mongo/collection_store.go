package mongo

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"github.com/chirper/chirper-api/internal/core/domain"
)

const collectionsName = "collections"

// collectionDoc holds a whole record collection in one document so that a
// replace is a single atomic write.
type collectionDoc struct {
	Name      string     `bson:"_id"`
	Records   []bson.Raw `bson:"records"`
	UpdatedAt time.Time  `bson:"updated_at"`
}

// CollectionStore keeps each named collection as one MongoDB document.
type CollectionStore struct {
	client *mongo.Client
	col    *mongo.Collection
}

func NewCollectionStore(client *mongo.Client, db *mongo.Database) *CollectionStore {
	return &CollectionStore{client: client, col: db.Collection(collectionsName)}
}

// Load returns the records of the named collection.
func (s *CollectionStore) Load(ctx context.Context, collection string) ([]json.RawMessage, error) {
	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	var doc collectionDoc
	err := s.col.FindOne(ctx, bson.M{"_id": collection}).Decode(&doc)
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, fmt.Errorf("%w: collection %s does not exist", domain.ErrStorageUnavailable, collection)
		}
		return nil, fmt.Errorf("%w: load %s: %w", domain.ErrStorageUnavailable, collection, err)
	}

	out := make([]json.RawMessage, 0, len(doc.Records))
	for i, r := range doc.Records {
		raw, err := toJSON(r)
		if err != nil {
			return nil, fmt.Errorf("%w: %s: record %d: %w", domain.ErrCorruptCollection, collection, i, err)
		}
		out = append(out, raw)
	}
	return out, nil
}

// Replace upserts the collection document with the given records.
func (s *CollectionStore) Replace(ctx context.Context, collection string, records []json.RawMessage) error {
	docs := make([]bson.Raw, 0, len(records))
	for i, r := range records {
		d, err := toBSON(r)
		if err != nil {
			return fmt.Errorf("replace %s: record %d: %w", collection, i, err)
		}
		docs = append(docs, d)
	}

	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	doc := collectionDoc{Name: collection, Records: docs, UpdatedAt: time.Now().UTC()}
	_, err := s.col.ReplaceOne(ctx, bson.M{"_id": collection}, doc, options.Replace().SetUpsert(true))
	if err != nil {
		return fmt.Errorf("%w: replace %s: %w", domain.ErrStorageUnavailable, collection, err)
	}
	return nil
}

// Ensure inserts an empty collection document unless one already exists.
func (s *CollectionStore) Ensure(ctx context.Context, collection string) error {
	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	update := bson.M{"$setOnInsert": bson.M{
		"records":    bson.A{},
		"updated_at": time.Now().UTC(),
	}}
	_, err := s.col.UpdateOne(ctx, bson.M{"_id": collection}, update, options.Update().SetUpsert(true))
	if err != nil {
		return fmt.Errorf("%w: ensure %s: %w", domain.ErrStorageUnavailable, collection, err)
	}
	return nil
}

func (s *CollectionStore) Ping(ctx context.Context) error {
	if err := s.client.Ping(ctx, nil); err != nil {
		return fmt.Errorf("%w: mongo ping: %w", domain.ErrStorageUnavailable, err)
	}
	return nil
}

// toBSON converts one JSON record into a BSON document. Records must be
// JSON objects.
func toBSON(record json.RawMessage) (bson.Raw, error) {
	trimmed := bytes.TrimSpace(record)
	if len(trimmed) == 0 || trimmed[0] != '{' {
		return nil, errors.New("record is not a JSON object")
	}

	var d bson.D
	if err := bson.UnmarshalExtJSON(trimmed, false, &d); err != nil {
		return nil, fmt.Errorf("decode json record: %w", err)
	}
	raw, err := bson.Marshal(d)
	if err != nil {
		return nil, fmt.Errorf("encode bson record: %w", err)
	}
	return raw, nil
}

func toJSON(doc bson.Raw) (json.RawMessage, error) {
	if err := doc.Validate(); err != nil {
		return nil, err
	}
	b, err := bson.MarshalExtJSON(doc, false, false)
	if err != nil {
		return nil, err
	}
	return json.RawMessage(b), nil
}
