// Package favorites keeps the session's favorite products as id
// references, joined against the catalog at read time so prices and
// stock are never stale.
package favorites

import (
	"context"
	"encoding/json"

	"storefront/internal/catalog"
	"storefront/internal/models"
	"storefront/internal/store"
)

const schemaVersion = 2

type Service struct {
	records store.Records
	catalog *catalog.Cache
}

func NewService(records store.Records, cache *catalog.Cache) *Service {
	return &Service{records: records, catalog: cache}
}

type persistedFavorites struct {
	ProductIDs []int64 `json:"productIds"`
}

func (s *Service) Add(ctx context.Context, sessionID string, productID int64) error {
	ids, err := s.ids(ctx, sessionID)
	if err != nil {
		return err
	}
	for _, id := range ids {
		if id == productID {
			return nil
		}
	}
	return s.persist(ctx, sessionID, append(ids, productID))
}

func (s *Service) Remove(ctx context.Context, sessionID string, productID int64) error {
	ids, err := s.ids(ctx, sessionID)
	if err != nil {
		return err
	}
	kept := ids[:0]
	for _, id := range ids {
		if id != productID {
			kept = append(kept, id)
		}
	}
	return s.persist(ctx, sessionID, kept)
}

// List returns the favorite products still present in the catalog.
func (s *Service) List(ctx context.Context, sessionID string) ([]models.Product, error) {
	ids, err := s.ids(ctx, sessionID)
	if err != nil {
		return nil, err
	}
	products := make([]models.Product, 0, len(ids))
	for _, id := range ids {
		if product, ok := s.catalog.Get(id); ok {
			products = append(products, product)
		}
	}
	return products, nil
}

func (s *Service) ids(ctx context.Context, sessionID string) ([]int64, error) {
	data, err := store.LoadVersioned(ctx, s.records, sessionID, store.KindFavorites, schemaVersion)
	if err == store.ErrNotFound {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	var favs persistedFavorites
	if err := json.Unmarshal(data, &favs); err != nil {
		_ = s.records.Delete(ctx, sessionID, store.KindFavorites)
		return nil, nil
	}
	return favs.ProductIDs, nil
}

func (s *Service) persist(ctx context.Context, sessionID string, ids []int64) error {
	if len(ids) == 0 {
		return s.records.Delete(ctx, sessionID, store.KindFavorites)
	}
	data, err := json.Marshal(persistedFavorites{ProductIDs: ids})
	if err != nil {
		return err
	}
	return s.records.Save(ctx, sessionID, store.KindFavorites, schemaVersion, data)
}
