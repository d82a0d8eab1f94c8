package tracking

import (
	"context"
	"errors"
	"sync/atomic"
	"testing"

	"storefront/internal/models"
)

type stubBackend struct {
	tracking models.TrackingInfo
	history  []models.StatusHistoryEntry

	trackingErr error
	historyErr  error

	calls int32
}

func (s *stubBackend) GetTracking(context.Context, int64) (models.TrackingInfo, error) {
	atomic.AddInt32(&s.calls, 1)
	return s.tracking, s.trackingErr
}

func (s *stubBackend) GetHistory(context.Context, int64) ([]models.StatusHistoryEntry, error) {
	atomic.AddInt32(&s.calls, 1)
	return s.history, s.historyErr
}

func TestParseOrderID(t *testing.T) {
	id, err := ParseOrderID(" 42 ")
	if err != nil {
		t.Fatalf("ParseOrderID returned error: %v", err)
	}
	if id != 42 {
		t.Fatalf("expected 42, got %d", id)
	}

	for _, raw := range []string{"", "abc", "12abc", "0", "-3"} {
		if _, err := ParseOrderID(raw); err != ErrInvalidOrderID {
			t.Fatalf("expected ErrInvalidOrderID for %q, got %v", raw, err)
		}
	}
}

func TestLookupCombinesBothReads(t *testing.T) {
	comment := "expédiée"
	stub := &stubBackend{
		tracking: models.TrackingInfo{OrderID: 42, Status: models.StatusShipped},
		history: []models.StatusHistoryEntry{
			{ID: 1, NewStatus: models.StatusPending, ChangedAt: "2026-08-01T10:00:00"},
			{ID: 2, NewStatus: models.StatusShipped, ChangedAt: "2026-08-03T09:00:00", Comment: &comment},
		},
	}
	svc := NewService(stub)

	result, err := svc.Lookup(context.Background(), 42)
	if err != nil {
		t.Fatalf("Lookup returned error: %v", err)
	}
	if result.Step != 4 {
		t.Fatalf("expected step 4 for SHIPPED, got %d", result.Step)
	}
	if result.Progress != 0.8 {
		t.Fatalf("expected progress 0.8, got %v", result.Progress)
	}
	if len(result.History) != 2 {
		t.Fatalf("expected 2 history entries, got %d", len(result.History))
	}
	if stub.calls != 2 {
		t.Fatalf("expected both reads issued, got %d calls", stub.calls)
	}
}

func TestLookupNilHistoryBecomesEmpty(t *testing.T) {
	svc := NewService(&stubBackend{
		tracking: models.TrackingInfo{OrderID: 42, Status: models.StatusPending},
	})

	result, err := svc.Lookup(context.Background(), 42)
	if err != nil {
		t.Fatalf("Lookup returned error: %v", err)
	}
	if result.History == nil {
		t.Fatal("expected empty history slice, got nil")
	}
}

func TestLookupFailsWhenEitherReadFails(t *testing.T) {
	svc := NewService(&stubBackend{historyErr: errors.New("backend down")})

	if _, err := svc.Lookup(context.Background(), 42); err == nil {
		t.Fatal("expected lookup to fail when one read fails")
	}
}
