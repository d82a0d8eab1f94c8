package store

import (
	"context"
	"testing"
)

func TestLoadVersionedMismatchDiscardsRecord(t *testing.T) {
	ctx := context.Background()
	records := NewMemory()

	if err := records.Save(ctx, "s1", KindCart, 1, []byte(`{"old":true}`)); err != nil {
		t.Fatalf("Save returned error: %v", err)
	}

	if _, err := LoadVersioned(ctx, records, "s1", KindCart, 2); err != ErrNotFound {
		t.Fatalf("expected ErrNotFound on version mismatch, got %v", err)
	}

	// the stale record must be gone, not retried on the next load
	if _, err := records.Load(ctx, "s1", KindCart); err != ErrNotFound {
		t.Fatalf("expected record deleted after mismatch, got %v", err)
	}
}

func TestLoadVersionedMatch(t *testing.T) {
	ctx := context.Background()
	records := NewMemory()

	if err := records.Save(ctx, "s1", KindFavorites, 2, []byte(`{"productIds":[1]}`)); err != nil {
		t.Fatalf("Save returned error: %v", err)
	}

	data, err := LoadVersioned(ctx, records, "s1", KindFavorites, 2)
	if err != nil {
		t.Fatalf("LoadVersioned returned error: %v", err)
	}
	if string(data) != `{"productIds":[1]}` {
		t.Fatalf("unexpected payload %s", data)
	}
}

func TestPurgeKindKeepsCurrentVersion(t *testing.T) {
	ctx := context.Background()
	records := NewMemory()

	_ = records.Save(ctx, "s1", KindCart, 1, []byte(`{}`))
	_ = records.Save(ctx, "s2", KindCart, 2, []byte(`{}`))
	_ = records.Save(ctx, "s3", KindFavorites, 1, []byte(`{}`))

	dropped, err := records.PurgeKind(ctx, KindCart, 2)
	if err != nil {
		t.Fatalf("PurgeKind returned error: %v", err)
	}
	if dropped != 1 {
		t.Fatalf("expected 1 dropped record, got %d", dropped)
	}
	if _, err := records.Load(ctx, "s2", KindCart); err != nil {
		t.Fatalf("expected current-version cart kept, got %v", err)
	}
	if _, err := records.Load(ctx, "s3", KindFavorites); err != nil {
		t.Fatalf("expected other kinds untouched, got %v", err)
	}
}
