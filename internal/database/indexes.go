package database

import (
	"context"
	"log"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

// EnsureSessionStateIndexes creates the unique (sessionId, kind) index
// backing the per-session state records (cart, catalog snapshot,
// favorites, checkout wizard).
func EnsureSessionStateIndexes(db *mongo.Database) error {
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	indexes := db.Collection("session_state").Indexes()

	sessionKindIndex := mongo.IndexModel{
		Keys: bson.D{
			{Key: "sessionId", Value: 1},
			{Key: "kind", Value: 1},
		},
		Options: options.Index().
			SetName("session_kind_unique").
			SetUnique(true),
	}

	log.Println("EnsureSessionStateIndexes: creating session_kind_unique index")
	_, err := indexes.CreateOne(ctx, sessionKindIndex)
	if err != nil {
		log.Println("EnsureSessionStateIndexes: index error:", err)
		return err
	}
	return nil
}
