package catalog

import (
	"context"
	"encoding/json"
	"errors"
	"testing"

	"storefront/internal/models"
	"storefront/internal/store"
)

type stubFetcher struct {
	records []json.RawMessage
	err     error
	calls   int
}

func (s *stubFetcher) FetchProducts(context.Context) ([]json.RawMessage, error) {
	s.calls++
	return s.records, s.err
}

func TestLoadDropsMalformedRecords(t *testing.T) {
	fetcher := &stubFetcher{records: []json.RawMessage{
		json.RawMessage(`{"id":1,"nom":"Casque","prix":100}`),
		json.RawMessage(`{"nom":"sans id"}`),
		json.RawMessage(`not even json`),
		json.RawMessage(`{"id":2,"nom":"Clavier","prix":45}`),
	}}
	cache := New(fetcher, store.NewMemory(), "")

	products, err := cache.Load(context.Background(), false)
	if err != nil {
		t.Fatalf("Load returned error: %v", err)
	}
	if len(products) != 2 {
		t.Fatalf("expected 2 mapped products, got %d", len(products))
	}
	if _, ok := cache.Get(2); !ok {
		t.Fatal("expected product 2 in cache")
	}
}

func TestLoadFallsBackToSnapshot(t *testing.T) {
	records := store.NewMemory()
	good := &stubFetcher{records: []json.RawMessage{
		json.RawMessage(`{"id":1,"nom":"Casque","prix":100}`),
		json.RawMessage(`{"id":2,"nom":"Clavier","prix":45}`),
		json.RawMessage(`{"id":3,"nom":"Souris","prix":25}`),
		json.RawMessage(`{"id":4,"nom":"Ecran","prix":220}`),
		json.RawMessage(`{"id":5,"nom":"Webcam","prix":60}`),
	}}
	cache := New(good, records, "")
	if _, err := cache.Load(context.Background(), false); err != nil {
		t.Fatalf("seed load failed: %v", err)
	}

	// a fresh process whose backend is down restores the snapshot
	down := &stubFetcher{err: errors.New("connection refused")}
	restarted := New(down, records, "")
	products, err := restarted.Load(context.Background(), false)
	if err == nil {
		t.Fatal("expected transport error to surface on degraded load")
	}
	if len(products) != 5 {
		t.Fatalf("expected all 5 snapshot products, got %d", len(products))
	}
	if got := restarted.Products(); len(got) != 5 {
		t.Fatalf("expected snapshot published, got %d products", len(got))
	}
}

func TestLoadPreserveExistingKeepsList(t *testing.T) {
	fetcher := &stubFetcher{records: []json.RawMessage{
		json.RawMessage(`{"id":1,"nom":"Casque","prix":100}`),
	}}
	cache := New(fetcher, store.NewMemory(), "")
	if _, err := cache.Load(context.Background(), false); err != nil {
		t.Fatalf("seed load failed: %v", err)
	}

	fetcher.err = errors.New("timeout")
	products, err := cache.Load(context.Background(), true)
	if err == nil {
		t.Fatal("expected transport error")
	}
	if len(products) != 1 {
		t.Fatalf("expected existing list preserved, got %d products", len(products))
	}
}

func TestStaleLoadDoesNotPublish(t *testing.T) {
	fetcher := &stubFetcher{records: []json.RawMessage{
		json.RawMessage(`{"id":1,"nom":"Casque","prix":100}`),
	}}
	cache := New(fetcher, store.NewMemory(), "")

	older := cache.nextGen()
	newer := cache.nextGen()

	if !cache.publish(newer, []models.Product{{ID: 2, Name: "Clavier", Price: 45}}) {
		t.Fatal("expected the newest generation to publish")
	}
	if cache.publish(older, []models.Product{{ID: 1, Name: "Casque", Price: 100}}) {
		t.Fatal("expected the stale generation to be discarded")
	}
	if _, ok := cache.Get(2); !ok {
		t.Fatal("expected the fresh list to survive the stale publish")
	}
}

func TestFilterAndCategories(t *testing.T) {
	fetcher := &stubFetcher{records: []json.RawMessage{
		json.RawMessage(`{"id":1,"nom":"Casque Gamer","prix":100,"categorie":"Audio"}`),
		json.RawMessage(`{"id":2,"nom":"Clavier","prix":45,"categorie":"Peripheriques"}`),
		json.RawMessage(`{"id":3,"nom":"Casque Studio","prix":180,"categorie":"Audio"}`),
	}}
	cache := New(fetcher, store.NewMemory(), "")
	if _, err := cache.Load(context.Background(), false); err != nil {
		t.Fatalf("Load returned error: %v", err)
	}

	if got := cache.Filter("Audio", ""); len(got) != 2 {
		t.Fatalf("expected 2 audio products, got %d", len(got))
	}
	if got := cache.Filter("", "casque"); len(got) != 2 {
		t.Fatalf("expected case-insensitive search to match 2, got %d", len(got))
	}
	if got := cache.Filter("Audio", "studio"); len(got) != 1 || got[0].ID != 3 {
		t.Fatalf("expected combined filter to match product 3, got %+v", got)
	}

	categories := cache.Categories()
	if len(categories) != 2 || categories[0] != "Audio" || categories[1] != "Peripheriques" {
		t.Fatalf("expected sorted distinct categories, got %v", categories)
	}
}
