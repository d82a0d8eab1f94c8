// Package cart owns the session-scoped cart: product references with
// quantities, clamped to stock and joined against the live catalog for
// prices. Storage is a cache of the session, not a source of truth.
package cart

import (
	"context"
	"encoding/json"
	"errors"
	"log"

	"storefront/internal/catalog"
	"storefront/internal/models"
	"storefront/internal/store"
)

var (
	ErrUnknownProduct = errors.New("product not found in catalog")
	ErrOutOfStock     = errors.New("product is out of stock")
)

type Service struct {
	records store.Records
	catalog *catalog.Cache
}

func NewService(records store.Records, cache *catalog.Cache) *Service {
	return &Service{records: records, catalog: cache}
}

type persistedCart struct {
	Lines []models.CartLine `json:"lignes"`
}

// PurgeLegacy drops every persisted cart whose schema version differs
// from the current one. Called once at process start; legacy carts
// stored full product snapshots and are not worth migrating.
func (s *Service) PurgeLegacy(ctx context.Context) {
	dropped, err := s.records.PurgeKind(ctx, store.KindCart, models.CartSchemaVersion)
	if err != nil {
		log.Printf("[CART] legacy purge failed: %v", err)
		return
	}
	if dropped > 0 {
		log.Printf("[CART] purged %d legacy cart records", dropped)
	}
}

// Add merges qty into an existing line or appends a new one, clamping
// the result to the product's stock.
func (s *Service) Add(ctx context.Context, sessionID string, productID int64, qty int) (models.CartView, error) {
	if qty < 1 {
		qty = 1
	}
	product, ok := s.catalog.Get(productID)
	if !ok {
		return models.CartView{}, ErrUnknownProduct
	}
	if product.Stock < 1 {
		return models.CartView{}, ErrOutOfStock
	}

	lines, err := s.lines(ctx, sessionID)
	if err != nil {
		return models.CartView{}, err
	}

	merged := false
	for i := range lines {
		if lines[i].ProductID == productID {
			lines[i].Quantity = clamp(lines[i].Quantity+qty, product.Stock)
			merged = true
			break
		}
	}
	if !merged {
		lines = append(lines, models.CartLine{ProductID: productID, Quantity: clamp(qty, product.Stock)})
	}

	if err := s.persist(ctx, sessionID, lines); err != nil {
		return models.CartView{}, err
	}
	return s.view(lines), nil
}

// SetQuantity updates a line; qty ≤ 0 removes it.
func (s *Service) SetQuantity(ctx context.Context, sessionID string, productID int64, qty int) (models.CartView, error) {
	if qty <= 0 {
		return s.Remove(ctx, sessionID, productID)
	}

	lines, err := s.lines(ctx, sessionID)
	if err != nil {
		return models.CartView{}, err
	}

	for i := range lines {
		if lines[i].ProductID != productID {
			continue
		}
		if product, ok := s.catalog.Get(productID); ok {
			qty = clamp(qty, product.Stock)
		}
		lines[i].Quantity = qty
		break
	}

	if err := s.persist(ctx, sessionID, lines); err != nil {
		return models.CartView{}, err
	}
	return s.view(lines), nil
}

func (s *Service) Remove(ctx context.Context, sessionID string, productID int64) (models.CartView, error) {
	lines, err := s.lines(ctx, sessionID)
	if err != nil {
		return models.CartView{}, err
	}

	kept := lines[:0]
	for _, line := range lines {
		if line.ProductID != productID {
			kept = append(kept, line)
		}
	}

	if err := s.persist(ctx, sessionID, kept); err != nil {
		return models.CartView{}, err
	}
	return s.view(kept), nil
}

func (s *Service) Clear(ctx context.Context, sessionID string) error {
	return s.records.Delete(ctx, sessionID, store.KindCart)
}

// View joins the stored lines against the live catalog. Lines whose
// product is gone from the catalog are skipped in the view but kept in
// storage until the next mutation.
func (s *Service) View(ctx context.Context, sessionID string) (models.CartView, error) {
	lines, err := s.lines(ctx, sessionID)
	if err != nil {
		return models.CartView{}, err
	}
	return s.view(lines), nil
}

func (s *Service) lines(ctx context.Context, sessionID string) ([]models.CartLine, error) {
	data, err := store.LoadVersioned(ctx, s.records, sessionID, store.KindCart, models.CartSchemaVersion)
	if err == store.ErrNotFound {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	var cart persistedCart
	if err := json.Unmarshal(data, &cart); err != nil {
		log.Printf("[CART] discarding unreadable cart for session %s: %v", sessionID, err)
		_ = s.records.Delete(ctx, sessionID, store.KindCart)
		return nil, nil
	}
	return cart.Lines, nil
}

// persist writes the line set, or deletes the record entirely when the
// cart is empty. The presence of a stored cart record is the signal
// that the session has items.
func (s *Service) persist(ctx context.Context, sessionID string, lines []models.CartLine) error {
	if len(lines) == 0 {
		return s.records.Delete(ctx, sessionID, store.KindCart)
	}
	data, err := json.Marshal(persistedCart{Lines: lines})
	if err != nil {
		return err
	}
	return s.records.Save(ctx, sessionID, store.KindCart, models.CartSchemaVersion, data)
}

func (s *Service) view(lines []models.CartLine) models.CartView {
	view := models.CartView{Items: make([]models.CartItemView, 0, len(lines))}
	for _, line := range lines {
		product, ok := s.catalog.Get(line.ProductID)
		if !ok {
			continue
		}
		lineTotal := product.Price * float64(line.Quantity)
		view.Items = append(view.Items, models.CartItemView{
			Product:   product,
			Quantity:  line.Quantity,
			LineTotal: lineTotal,
		})
		view.Total += lineTotal
		view.Count += line.Quantity
	}
	return view
}

func clamp(qty, stock int) int {
	if qty > stock {
		return stock
	}
	return qty
}
