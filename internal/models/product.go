package models

// Product is the normalized storefront product shape. JSON field names
// follow the commerce backend's wire vocabulary so existing clients keep
// working unchanged.
//
// When the product is on sale, Price already holds the discounted price
// and OriginalPrice carries the regular one; otherwise OriginalPrice and
// SalePercent are absent.
type Product struct {
	ID            int64    `json:"idProd"`
	Name          string   `json:"nom"`
	Price         float64  `json:"prix"`
	OriginalPrice *float64 `json:"prixOriginal,omitempty"`
	OnSale        bool     `json:"enSolde"`
	SalePercent   *float64 `json:"pourcentageSolde,omitempty"`
	Stock         int      `json:"stock"`
	Category      string   `json:"categorie,omitempty"`
	Description   string   `json:"description,omitempty"`
	ImageURL      string   `json:"image,omitempty"`
}

func (p Product) InStock() bool {
	return p.Stock > 0
}
