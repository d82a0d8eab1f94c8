package store

import (
	"context"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

const stateCollection = "session_state"

type mongoRecords struct {
	db *mongo.Database
}

func NewMongo(db *mongo.Database) Records {
	return &mongoRecords{db: db}
}

func (m *mongoRecords) Load(ctx context.Context, sessionID, kind string) (Record, error) {
	ctx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()

	var record Record
	err := m.db.Collection(stateCollection).FindOne(ctx, bson.M{
		"sessionId": sessionID,
		"kind":      kind,
	}).Decode(&record)
	if err == mongo.ErrNoDocuments {
		return Record{}, ErrNotFound
	}
	if err != nil {
		return Record{}, err
	}
	return record, nil
}

func (m *mongoRecords) Save(ctx context.Context, sessionID, kind string, version int, data []byte) error {
	ctx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()

	filter := bson.M{"sessionId": sessionID, "kind": kind}
	update := bson.M{"$set": bson.M{
		"schemaVersion": version,
		"data":          data,
		"updatedAt":     time.Now(),
	}}

	_, err := m.db.Collection(stateCollection).
		UpdateOne(ctx, filter, update, options.Update().SetUpsert(true))
	return err
}

func (m *mongoRecords) Delete(ctx context.Context, sessionID, kind string) error {
	ctx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()

	_, err := m.db.Collection(stateCollection).
		DeleteOne(ctx, bson.M{"sessionId": sessionID, "kind": kind})
	return err
}

func (m *mongoRecords) PurgeKind(ctx context.Context, kind string, keepVersion int) (int64, error) {
	ctx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()

	res, err := m.db.Collection(stateCollection).DeleteMany(ctx, bson.M{
		"kind":          kind,
		"schemaVersion": bson.M{"$ne": keepVersion},
	})
	if err != nil {
		return 0, err
	}
	return res.DeletedCount, nil
}
