package store

import (
	"context"
	"fmt"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	mopts "go.mongodb.org/mongo-driver/mongo/options"
	"go.mongodb.org/mongo-driver/mongo/readpref"
)

// seqField records a record's position so reads come back in saved order.
const seqField = "_seq"

// MongoBackend stores one document per record, one MongoDB collection per Collection.
// Save upserts every record by _id and only then prunes ids that are gone, so a failed
// write never leaves the collection emptier than before it.
type MongoBackend struct {
	client *mongo.Client
	db     *mongo.Database
}

func NewMongoBackend(ctx context.Context, uri, dbName string) (*MongoBackend, error) {
	client, err := mongo.Connect(ctx, mopts.Client().ApplyURI(uri))
	if err != nil {
		return nil, fmt.Errorf("mongo connect: %w", err)
	}
	if err := client.Ping(ctx, readpref.Primary()); err != nil {
		_ = client.Disconnect(context.Background())
		return nil, fmt.Errorf("mongo ping: %w", err)
	}
	return &MongoBackend{client: client, db: client.Database(dbName)}, nil
}

func (m *MongoBackend) Name() string { return "mongo" }

func (m *MongoBackend) exists(ctx context.Context, coll Collection) (bool, error) {
	names, err := m.db.ListCollectionNames(ctx, bson.M{"name": string(coll)})
	if err != nil {
		return false, err
	}
	return len(names) > 0, nil
}

func (m *MongoBackend) Load(ctx context.Context, coll Collection, out any) (bool, error) {
	ok, err := m.exists(ctx, coll)
	if err != nil {
		return false, fmt.Errorf("could not list collections: %w", err)
	}
	if !ok {
		return false, nil
	}

	opts := mopts.Find().SetSort(bson.D{{Key: seqField, Value: 1}})
	cursor, err := m.db.Collection(string(coll)).Find(ctx, bson.M{}, opts)
	if err != nil {
		return true, fmt.Errorf("could not fetch %s: %w", coll, err)
	}
	if err := cursor.All(ctx, out); err != nil {
		return true, fmt.Errorf("could not decode %s: %w", coll, err)
	}
	return true, nil
}

// sequencedDoc encodes rec as a document carrying its position.
func sequencedDoc(rec any, seq int) (bson.M, error) {
	raw, err := bson.Marshal(rec)
	if err != nil {
		return nil, err
	}
	var doc bson.M
	if err := bson.Unmarshal(raw, &doc); err != nil {
		return nil, err
	}
	if _, ok := doc["_id"]; !ok {
		return nil, fmt.Errorf("record %d has no _id", seq)
	}
	doc[seqField] = seq
	return doc, nil
}

func (m *MongoBackend) Save(ctx context.Context, coll Collection, records []any) error {
	col := m.db.Collection(string(coll))

	ids := make(bson.A, 0, len(records))
	writes := make([]mongo.WriteModel, 0, len(records))
	for i, rec := range records {
		doc, err := sequencedDoc(rec, i)
		if err != nil {
			return fmt.Errorf("could not encode %s: %w", coll, err)
		}
		ids = append(ids, doc["_id"])
		writes = append(writes, mongo.NewReplaceOneModel().
			SetFilter(bson.M{"_id": doc["_id"]}).
			SetReplacement(doc).
			SetUpsert(true))
	}

	if len(writes) > 0 {
		if _, err := col.BulkWrite(ctx, writes, mopts.BulkWrite().SetOrdered(true)); err != nil {
			return fmt.Errorf("could not write %s: %w", coll, err)
		}
	} else {
		ok, err := m.exists(ctx, coll)
		if err != nil {
			return err
		}
		if !ok {
			if err := m.db.CreateCollection(ctx, string(coll)); err != nil {
				return fmt.Errorf("could not create %s: %w", coll, err)
			}
		}
	}

	if _, err := col.DeleteMany(ctx, bson.M{"_id": bson.M{"$nin": ids}}); err != nil {
		return fmt.Errorf("could not prune %s: %w", coll, err)
	}
	return nil
}

func (m *MongoBackend) Clear(ctx context.Context, coll Collection) error {
	return m.db.Collection(string(coll)).Drop(ctx)
}

func (m *MongoBackend) Close(ctx context.Context) error {
	return m.client.Disconnect(ctx)
}
