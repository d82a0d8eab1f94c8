package catalog

import (
	"context"
	"encoding/json"
	"log"
	"sort"
	"strings"
	"sync"

	"storefront/internal/models"
	"storefront/internal/store"
)

// CatalogSchemaVersion tags the persisted snapshot record.
const CatalogSchemaVersion = 1

// Fetcher is the slice of the backend client the cache needs.
type Fetcher interface {
	FetchProducts(ctx context.Context) ([]json.RawMessage, error)
}

// Cache holds the current product list for the whole process and a
// durable snapshot used when the backend is unreachable. Reads serve
// from memory; Load refreshes from the backend.
type Cache struct {
	fetcher      Fetcher
	records      store.Records
	imageBaseURL string

	mu       sync.RWMutex
	gen      uint64
	products []models.Product
}

type snapshot struct {
	Products []models.Product `json:"produits"`
}

func New(fetcher Fetcher, records store.Records, imageBaseURL string) *Cache {
	return &Cache{fetcher: fetcher, records: records, imageBaseURL: imageBaseURL}
}

// Load refreshes the cache from the backend. Individual records that
// fail to map are dropped and logged, never failing the whole load. On
// transport failure with preserveExisting the in-memory list is left
// untouched; otherwise the persisted snapshot is restored, or an empty
// list published when there is none. The returned error is the
// transport error even when a fallback list is served, so callers can
// log degraded loads.
//
// Each Load claims a generation; a load that finishes after a newer one
// has started does not publish, so a slow response never overwrites
// fresher state.
func (c *Cache) Load(ctx context.Context, preserveExisting bool) ([]models.Product, error) {
	gen := c.nextGen()

	raw, err := c.fetcher.FetchProducts(ctx)
	if err != nil {
		log.Printf("[CATALOG] load failed: %v", err)
		if preserveExisting {
			return c.Products(), err
		}
		if cached, ok := c.loadSnapshot(ctx); ok {
			log.Printf("[CATALOG] falling back to snapshot of %d products", len(cached))
			c.publish(gen, cached)
			return cached, err
		}
		c.publish(gen, []models.Product{})
		return []models.Product{}, err
	}

	products := make([]models.Product, 0, len(raw))
	for i, record := range raw {
		product, mapErr := MapRecord(record, c.imageBaseURL)
		if mapErr != nil {
			log.Printf("[CATALOG] dropping record %d: %v", i, mapErr)
			continue
		}
		products = append(products, product)
	}

	if c.publish(gen, products) {
		c.saveSnapshot(ctx, products)
	}
	return products, nil
}

func (c *Cache) nextGen() uint64 {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.gen++
	return c.gen
}

func (c *Cache) publish(gen uint64, products []models.Product) bool {
	c.mu.Lock()
	defer c.mu.Unlock()
	if gen != c.gen {
		// a newer load has started; this result is stale
		return false
	}
	c.products = products
	return true
}

func (c *Cache) loadSnapshot(ctx context.Context) ([]models.Product, bool) {
	if c.records == nil {
		return nil, false
	}
	data, err := store.LoadVersioned(ctx, c.records, store.GlobalSession, store.KindCatalog, CatalogSchemaVersion)
	if err != nil {
		return nil, false
	}
	var snap snapshot
	if err := json.Unmarshal(data, &snap); err != nil {
		return nil, false
	}
	return snap.Products, true
}

func (c *Cache) saveSnapshot(ctx context.Context, products []models.Product) {
	if c.records == nil {
		return
	}
	data, err := json.Marshal(snapshot{Products: products})
	if err != nil {
		return
	}
	if err := c.records.Save(ctx, store.GlobalSession, store.KindCatalog, CatalogSchemaVersion, data); err != nil {
		log.Printf("[CATALOG] snapshot save failed: %v", err)
	}
}

// Products returns a copy of the current list.
func (c *Cache) Products() []models.Product {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return append([]models.Product(nil), c.products...)
}

func (c *Cache) Get(id int64) (models.Product, bool) {
	c.mu.RLock()
	defer c.mu.RUnlock()
	for _, product := range c.products {
		if product.ID == id {
			return product, true
		}
	}
	return models.Product{}, false
}

// Categories lists the distinct categories, sorted.
func (c *Cache) Categories() []string {
	c.mu.RLock()
	defer c.mu.RUnlock()

	seen := make(map[string]struct{})
	categories := make([]string, 0)
	for _, product := range c.products {
		if product.Category == "" {
			continue
		}
		if _, ok := seen[product.Category]; ok {
			continue
		}
		seen[product.Category] = struct{}{}
		categories = append(categories, product.Category)
	}
	sort.Strings(categories)
	return categories
}

// Filter returns products matching the optional category and
// case-insensitive name search.
func (c *Cache) Filter(category, search string) []models.Product {
	c.mu.RLock()
	defer c.mu.RUnlock()

	search = strings.ToLower(strings.TrimSpace(search))
	category = strings.TrimSpace(category)

	filtered := make([]models.Product, 0, len(c.products))
	for _, product := range c.products {
		if category != "" && product.Category != category {
			continue
		}
		if search != "" && !strings.Contains(strings.ToLower(product.Name), search) {
			continue
		}
		filtered = append(filtered, product)
	}
	return filtered
}
