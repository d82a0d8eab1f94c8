package catalog

import (
	"encoding/json"
	"testing"
)

func TestMapRecordOnSale(t *testing.T) {
	raw := json.RawMessage(`{"id":1,"nom":"Casque","prix":100,"prixSolde":75,"reduction":25,"stock":4}`)

	product, err := MapRecord(raw, "http://backend:8081")
	if err != nil {
		t.Fatalf("MapRecord returned error: %v", err)
	}
	if !product.OnSale {
		t.Fatal("expected product to be on sale")
	}
	if product.Price != 75 {
		t.Fatalf("expected normalized price 75, got %v", product.Price)
	}
	if product.OriginalPrice == nil || *product.OriginalPrice != 100 {
		t.Fatalf("expected original price 100, got %v", product.OriginalPrice)
	}
	if product.SalePercent == nil || *product.SalePercent != 25 {
		t.Fatalf("expected sale percent 25, got %v", product.SalePercent)
	}
}

func TestMapRecordNotOnSaleWithoutBothFields(t *testing.T) {
	// a discounted price alone does not put the product on sale
	for _, raw := range []string{
		`{"id":2,"nom":"Clavier","prix":60,"prixSolde":50}`,
		`{"id":2,"nom":"Clavier","prix":60,"reduction":10}`,
	} {
		product, err := MapRecord(json.RawMessage(raw), "")
		if err != nil {
			t.Fatalf("MapRecord returned error: %v", err)
		}
		if product.OnSale {
			t.Fatalf("expected product not on sale for %s", raw)
		}
		if product.Price != 60 {
			t.Fatalf("expected regular price 60, got %v", product.Price)
		}
		if product.OriginalPrice != nil {
			t.Fatalf("expected no original price, got %v", *product.OriginalPrice)
		}
	}
}

func TestMapRecordDefaults(t *testing.T) {
	product, err := MapRecord(json.RawMessage(`{"idProd":7}`), "")
	if err != nil {
		t.Fatalf("MapRecord returned error: %v", err)
	}
	if product.ID != 7 {
		t.Fatalf("expected legacy idProd to be used, got %d", product.ID)
	}
	if product.Name != "Produit sans nom" {
		t.Fatalf("expected placeholder name, got %q", product.Name)
	}
	if product.Category != "Autres" {
		t.Fatalf("expected fallback category, got %q", product.Category)
	}
	if product.Stock != 0 {
		t.Fatalf("expected zero stock, got %d", product.Stock)
	}
}

func TestMapRecordMissingID(t *testing.T) {
	if _, err := MapRecord(json.RawMessage(`{"nom":"Souris","prix":20}`), ""); err == nil {
		t.Fatal("expected error for record without an id")
	}
}

func TestMapRecordNegativeStockClampedToZero(t *testing.T) {
	product, err := MapRecord(json.RawMessage(`{"id":3,"nom":"Ecran","prix":200,"stock":-5}`), "")
	if err != nil {
		t.Fatalf("MapRecord returned error: %v", err)
	}
	if product.Stock != 0 {
		t.Fatalf("expected stock 0, got %d", product.Stock)
	}
	if product.InStock() {
		t.Fatal("expected product to be out of stock")
	}
}

func TestResolveImageURL(t *testing.T) {
	if got := resolveImageURL("uploads/p.jpg", "http://backend:8081/"); got != "http://backend:8081/uploads/p.jpg" {
		t.Fatalf("unexpected resolved url %q", got)
	}
	if got := resolveImageURL("https://cdn.example.com/p.jpg", "http://backend:8081"); got != "https://cdn.example.com/p.jpg" {
		t.Fatalf("expected absolute url untouched, got %q", got)
	}
	if got := resolveImageURL("", "http://backend:8081"); got != "" {
		t.Fatalf("expected empty url untouched, got %q", got)
	}
}
