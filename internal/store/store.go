// Package store persists per-session client state: the cart, the
// catalog snapshot and the favorites list. Records are plain JSON blobs
// tagged with a schema version; a record whose version no longer
// matches is discarded and reinitialized instead of migrated.
package store

import (
	"context"
	"errors"
	"time"
)

// Record kinds.
const (
	KindCart      = "cart"
	KindCatalog   = "catalog"
	KindFavorites = "favorites"
	KindCheckout  = "checkout"
)

// GlobalSession keys process-wide records such as the catalog snapshot.
const GlobalSession = "global"

var ErrNotFound = errors.New("state record not found")

type Record struct {
	SessionID     string    `bson:"sessionId"`
	Kind          string    `bson:"kind"`
	SchemaVersion int       `bson:"schemaVersion"`
	Data          []byte    `bson:"data"`
	UpdatedAt     time.Time `bson:"updatedAt"`
}

// Records is the durable state access contract. The Mongo
// implementation backs the running service; an in-memory one backs
// tests.
type Records interface {
	Load(ctx context.Context, sessionID, kind string) (Record, error)
	Save(ctx context.Context, sessionID, kind string, version int, data []byte) error
	Delete(ctx context.Context, sessionID, kind string) error

	// PurgeKind removes every record of the kind whose schema version
	// differs from keepVersion and reports how many were dropped.
	PurgeKind(ctx context.Context, kind string, keepVersion int) (int64, error)
}

// LoadVersioned returns the record payload when its schema version
// matches. A version mismatch discards the record and reports
// ErrNotFound, the "unknown version ⇒ discard and reinitialize" rule.
func LoadVersioned(ctx context.Context, records Records, sessionID, kind string, version int) ([]byte, error) {
	record, err := records.Load(ctx, sessionID, kind)
	if err != nil {
		return nil, err
	}
	if record.SchemaVersion != version {
		_ = records.Delete(ctx, sessionID, kind)
		return nil, ErrNotFound
	}
	return record.Data, nil
}
