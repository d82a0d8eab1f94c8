package favorites

import (
	"context"
	"encoding/json"
	"testing"

	"storefront/internal/catalog"
	"storefront/internal/store"
)

type catalogFetcher struct{}

func (catalogFetcher) FetchProducts(context.Context) ([]json.RawMessage, error) {
	return []json.RawMessage{
		json.RawMessage(`{"id":1,"nom":"Casque","prix":100,"stock":3}`),
		json.RawMessage(`{"id":2,"nom":"Clavier","prix":50,"stock":10}`),
	}, nil
}

func newTestService(t *testing.T) (*Service, store.Records) {
	t.Helper()
	cache := catalog.New(catalogFetcher{}, store.NewMemory(), "")
	if _, err := cache.Load(context.Background(), false); err != nil {
		t.Fatalf("catalog load failed: %v", err)
	}
	records := store.NewMemory()
	return NewService(records, cache), records
}

func TestAddIsIdempotent(t *testing.T) {
	ctx := context.Background()
	svc, _ := newTestService(t)

	_ = svc.Add(ctx, "s1", 1)
	_ = svc.Add(ctx, "s1", 1)

	products, err := svc.List(ctx, "s1")
	if err != nil {
		t.Fatalf("List returned error: %v", err)
	}
	if len(products) != 1 {
		t.Fatalf("expected a single favorite, got %d", len(products))
	}
}

func TestListSkipsProductsGoneFromCatalog(t *testing.T) {
	ctx := context.Background()
	svc, _ := newTestService(t)

	_ = svc.Add(ctx, "s1", 1)
	_ = svc.Add(ctx, "s1", 99)

	products, err := svc.List(ctx, "s1")
	if err != nil {
		t.Fatalf("List returned error: %v", err)
	}
	if len(products) != 1 || products[0].ID != 1 {
		t.Fatalf("expected only catalog products listed, got %+v", products)
	}
}

func TestRemovingLastFavoriteDeletesRecord(t *testing.T) {
	ctx := context.Background()
	svc, records := newTestService(t)

	_ = svc.Add(ctx, "s1", 1)
	if err := svc.Remove(ctx, "s1", 1); err != nil {
		t.Fatalf("Remove returned error: %v", err)
	}

	if _, err := records.Load(ctx, "s1", store.KindFavorites); err != store.ErrNotFound {
		t.Fatalf("expected favorites record deleted, got %v", err)
	}
}
