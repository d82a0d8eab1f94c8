package catalog

import (
	"encoding/json"
	"errors"
	"strings"

	"storefront/internal/models"
)

// productRecord is the backend's raw product shape. Every field is
// optional so one sloppy record cannot fail an entire load.
type productRecord struct {
	ID          *int64   `json:"id"`
	LegacyID    *int64   `json:"idProd"`
	Name        string   `json:"nom"`
	Price       *float64 `json:"prix"`
	SalePrice   *float64 `json:"prixSolde"`
	SalePercent *float64 `json:"reduction"`
	Stock       *int     `json:"stock"`
	ImageURL    string   `json:"imageUrl"`
	Description string   `json:"description"`
	Category    string   `json:"categorie"`
}

var errMissingID = errors.New("product record has no id")

// MapRecord normalizes one backend record. A product is on sale iff
// both the discounted price and the percentage are present; the
// normalized price is then the discounted one and the regular price
// moves to OriginalPrice.
func MapRecord(raw json.RawMessage, imageBaseURL string) (models.Product, error) {
	var record productRecord
	if err := json.Unmarshal(raw, &record); err != nil {
		return models.Product{}, err
	}

	var id int64
	switch {
	case record.ID != nil:
		id = *record.ID
	case record.LegacyID != nil:
		id = *record.LegacyID
	default:
		return models.Product{}, errMissingID
	}

	product := models.Product{
		ID:          id,
		Name:        record.Name,
		Description: record.Description,
		Category:    record.Category,
		ImageURL:    resolveImageURL(record.ImageURL, imageBaseURL),
	}
	if product.Name == "" {
		product.Name = "Produit sans nom"
	}
	if product.Category == "" {
		product.Category = "Autres"
	}
	if record.Stock != nil && *record.Stock > 0 {
		product.Stock = *record.Stock
	}

	regular := 0.0
	if record.Price != nil {
		regular = *record.Price
	}

	if record.SalePrice != nil && record.SalePercent != nil {
		product.OnSale = true
		product.Price = *record.SalePrice
		product.OriginalPrice = &regular
		product.SalePercent = record.SalePercent
	} else {
		product.Price = regular
	}

	return product, nil
}

func resolveImageURL(imageURL, baseURL string) string {
	if imageURL == "" {
		return ""
	}
	if strings.HasPrefix(imageURL, "http") {
		return imageURL
	}
	return strings.TrimRight(baseURL, "/") + "/" + strings.TrimLeft(imageURL, "/")
}
