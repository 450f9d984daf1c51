package openfoodfacts

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stevenmcsorley/rn-kit/internal/model"
)

func TestLookupBarcodeParsesProduct(t *testing.T) {
	t.Parallel()

	ts := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(`{
  "status": 1,
  "product": {
    "product_name": "Yogurt Cup",
    "brands": "Brand Co",
    "image_url": "https://images.example/yogurt.jpg",
    "serving_quantity": 170,
    "serving_quantity_unit": "g",
    "nutriments": {
      "energy-kcal_100g": 71,
      "proteins_100g": 5.9,
      "carbohydrates_100g": 8.8,
      "fat_100g": 1.2,
      "saturated-fat_100g": 0.8,
      "sodium_100g": 0.04,
      "sugars_100g": 8.8,
      "energy-kcal_serving": 120,
      "proteins_serving": 10,
      "carbohydrates_serving": 15,
      "fat_serving": 2
    }
  }
}`))
	}))
	defer ts.Close()

	c := &Client{BaseURL: ts.URL, HTTPClient: ts.Client()}
	product, err := c.LookupBarcode(context.Background(), "12345678")
	if err != nil {
		t.Fatalf("lookup barcode: %v", err)
	}
	if product == nil {
		t.Fatalf("expected a product")
	}
	if product.Name != "Yogurt Cup" || product.Brand != "Brand Co" {
		t.Fatalf("unexpected identity fields: %+v", product)
	}
	if product.Per100g.Calories != 71 || product.Per100g.Protein != 5.9 {
		t.Fatalf("unexpected per-100g nutrition: %+v", product.Per100g)
	}
	if product.Per100g.Sodium != 40 {
		t.Fatalf("expected sodium converted to mg (40), got %v", product.Per100g.Sodium)
	}
	if product.PerServing == nil || product.PerServing.Calories != 120 {
		t.Fatalf("expected per-serving nutrition: %+v", product.PerServing)
	}
	if product.ServingQuantity != 170 || product.ServingUnit != "g" {
		t.Fatalf("unexpected serving metadata: %+v", product)
	}
}

func TestLookupBarcodeNotFoundIsNilNotError(t *testing.T) {
	t.Parallel()

	ts := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusNotFound)
	}))
	defer ts.Close()

	c := &Client{BaseURL: ts.URL, HTTPClient: ts.Client()}
	product, err := c.LookupBarcode(context.Background(), "00000000")
	if err != nil {
		t.Fatalf("expected not-found to be nil error, got %v", err)
	}
	if product != nil {
		t.Fatalf("expected nil product, got %+v", product)
	}
}

func TestLookupBarcodeMissingProductPayloadIsNil(t *testing.T) {
	t.Parallel()

	ts := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(`{"status": 0, "product": {}}`))
	}))
	defer ts.Close()

	c := &Client{BaseURL: ts.URL, HTTPClient: ts.Client()}
	product, err := c.LookupBarcode(context.Background(), "00000001")
	if err != nil {
		t.Fatalf("expected empty payload to be nil error, got %v", err)
	}
	if product != nil {
		t.Fatalf("expected nil product, got %+v", product)
	}
}

func TestLookupBarcodeTransportFailureIsLookupError(t *testing.T) {
	t.Parallel()

	ts := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusInternalServerError)
	}))
	defer ts.Close()

	c := &Client{BaseURL: ts.URL, HTTPClient: ts.Client()}
	_, err := c.LookupBarcode(context.Background(), "12345678")
	if err == nil {
		t.Fatalf("expected transport failure")
	}
	var lookupErr *model.LookupError
	if !errors.As(err, &lookupErr) {
		t.Fatalf("expected *model.LookupError, got %T: %v", err, err)
	}
	if lookupErr.StatusCode != http.StatusInternalServerError {
		t.Fatalf("expected status 500 recorded, got %d", lookupErr.StatusCode)
	}
}

func TestSearchReturnsNormalizedProducts(t *testing.T) {
	t.Parallel()

	ts := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if got := r.URL.Query().Get("search_terms"); got != "granola" {
			t.Errorf("expected search_terms granola, got %q", got)
		}
		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(`{
  "products": [
    {"product_name": "Crunchy Granola", "brands": "OatCo", "nutriments": {"energy-kcal_100g": 450}},
    {"product_name": "", "nutriments": {}},
    {"product_name": "Granola Light", "nutriments": {"energy-kcal_100g": "380"}}
  ]
}`))
	}))
	defer ts.Close()

	c := &Client{BaseURL: ts.URL, HTTPClient: ts.Client()}
	products, err := c.Search(context.Background(), "granola", 5)
	if err != nil {
		t.Fatalf("search: %v", err)
	}
	if len(products) != 2 {
		t.Fatalf("expected 2 named products, got %d", len(products))
	}
	if products[0].Name != "Crunchy Granola" || products[0].Per100g.Calories != 450 {
		t.Fatalf("unexpected first product: %+v", products[0])
	}
	// Numeric strings in nutriments still parse.
	if products[1].Per100g.Calories != 380 {
		t.Fatalf("expected string nutriment coerced to 380, got %v", products[1].Per100g.Calories)
	}
}

func TestSearchEmptyResultIsNil(t *testing.T) {
	t.Parallel()

	ts := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(`{"products": []}`))
	}))
	defer ts.Close()

	c := &Client{BaseURL: ts.URL, HTTPClient: ts.Client()}
	products, err := c.Search(context.Background(), "nothing", 5)
	if err != nil {
		t.Fatalf("expected empty result to be nil error, got %v", err)
	}
	if products != nil {
		t.Fatalf("expected nil products, got %+v", products)
	}
}
