// Package openfoodfacts fetches product nutrition facts from the Open Food
// Facts catalog. The core consults it only for barcodes not already present
// in the diary; a miss routes the caller to manual entry.
package openfoodfacts

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strconv"
	"strings"
	"time"

	"golang.org/x/time/rate"

	"github.com/stevenmcsorley/rn-kit/internal/model"
)

const (
	defaultBaseURL = "https://world.openfoodfacts.org"
	userAgent      = "rn-kit/1.0 (+https://github.com/stevenmcsorley/rn-kit)"

	// Open Food Facts asks unauthenticated clients to stay within fair-use
	// limits and to send a descriptive User-Agent.
	defaultRatePerSec = 1
	defaultBurst      = 2
)

// Nutrition holds the nine tracked nutrient values for one reference amount.
type Nutrition struct {
	Calories     float64
	Protein      float64
	Carbs        float64
	Fat          float64
	SaturatedFat float64
	Cholesterol  float64
	Sodium       float64
	Fiber        float64
	Sugar        float64
}

// Product is a normalized catalog record. PerServing is nil when the catalog
// carries no serving-level figures for the product.
type Product struct {
	Name            string
	Brand           string
	ImageURL        string
	Per100g         Nutrition
	PerServing      *Nutrition
	ServingQuantity float64
	ServingUnit     string
}

// Client performs single-shot catalog lookups. There is no automatic retry:
// a transport failure is reported once and the caller decides whether to
// re-trigger. The zero value is usable.
type Client struct {
	BaseURL    string
	HTTPClient *http.Client

	limiter *rate.Limiter
}

func (c *Client) endpoint(path string) string {
	base := strings.TrimRight(strings.TrimSpace(c.BaseURL), "/")
	if base == "" {
		base = defaultBaseURL
	}
	return base + path
}

func (c *Client) do(ctx context.Context, u string) (*http.Response, error) {
	if c.limiter == nil {
		c.limiter = rate.NewLimiter(rate.Limit(defaultRatePerSec), defaultBurst)
	}
	if err := c.limiter.Wait(ctx); err != nil {
		return nil, err
	}
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, u, nil)
	if err != nil {
		return nil, err
	}
	req.Header.Set("User-Agent", userAgent)
	req.Header.Set("Accept", "application/json")

	httpClient := c.HTTPClient
	if httpClient == nil {
		httpClient = &http.Client{Timeout: 12 * time.Second}
	}
	return httpClient.Do(req)
}

// LookupBarcode fetches the product for a barcode. A catalog miss (HTTP 404
// or an empty product payload) returns (nil, nil); transport failures and
// malformed responses return a *model.LookupError.
func (c *Client) LookupBarcode(ctx context.Context, barcode string) (*Product, error) {
	barcode = strings.TrimSpace(barcode)
	if barcode == "" {
		return nil, &model.LookupError{Barcode: barcode, Err: fmt.Errorf("barcode is required")}
	}
	u := c.endpoint(fmt.Sprintf("/api/v2/product/%s.json", url.PathEscape(barcode)))

	resp, err := c.do(ctx, u)
	if err != nil {
		return nil, &model.LookupError{Barcode: barcode, Err: err}
	}
	defer resp.Body.Close()

	if resp.StatusCode == http.StatusNotFound {
		return nil, nil
	}
	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, &model.LookupError{Barcode: barcode, Err: fmt.Errorf("read response: %w", err)}
	}
	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return nil, &model.LookupError{Barcode: barcode, StatusCode: resp.StatusCode}
	}

	var parsed offResponse
	if err := json.Unmarshal(body, &parsed); err != nil {
		return nil, &model.LookupError{Barcode: barcode, Err: fmt.Errorf("decode response: %w", err)}
	}
	if parsed.Status != 1 || strings.TrimSpace(parsed.Product.ProductName) == "" {
		return nil, nil
	}
	p := normalizeProduct(parsed.Product)
	return &p, nil
}

// Search runs a free-text product search and returns up to limit normalized
// records. An empty result set is (nil, nil), not an error.
func (c *Client) Search(ctx context.Context, term string, limit int) ([]Product, error) {
	term = strings.TrimSpace(term)
	if term == "" {
		return nil, &model.LookupError{Err: fmt.Errorf("search term is required")}
	}
	if limit <= 0 {
		limit = 10
	}
	u := c.endpoint(fmt.Sprintf(
		"/cgi/search.pl?search_terms=%s&search_simple=1&action=process&json=1&page_size=%d",
		url.QueryEscape(term), limit,
	))

	resp, err := c.do(ctx, u)
	if err != nil {
		return nil, &model.LookupError{Err: err}
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, &model.LookupError{Err: fmt.Errorf("read search response: %w", err)}
	}
	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return nil, &model.LookupError{StatusCode: resp.StatusCode}
	}

	var parsed offSearchResponse
	if err := json.Unmarshal(body, &parsed); err != nil {
		return nil, &model.LookupError{Err: fmt.Errorf("decode search response: %w", err)}
	}
	out := make([]Product, 0, len(parsed.Products))
	for _, raw := range parsed.Products {
		if strings.TrimSpace(raw.ProductName) == "" {
			continue
		}
		out = append(out, normalizeProduct(raw))
	}
	if len(out) == 0 {
		return nil, nil
	}
	return out, nil
}

func normalizeProduct(p offProduct) Product {
	out := Product{
		Name:     strings.TrimSpace(p.ProductName),
		Brand:    strings.TrimSpace(p.Brands),
		ImageURL: strings.TrimSpace(p.ImageURL),
		Per100g:  nutritionFor(p.Nutriments, "_100g"),
	}
	if serving := nutritionFor(p.Nutriments, "_serving"); serving != (Nutrition{}) {
		out.PerServing = &serving
	}
	out.ServingQuantity, out.ServingUnit = parseServing(p)
	return out
}

func nutritionFor(n map[string]any, suffix string) Nutrition {
	return Nutrition{
		Calories:     nutrientValue(n, "energy-kcal"+suffix),
		Protein:      nutrientValue(n, "proteins"+suffix),
		Carbs:        nutrientValue(n, "carbohydrates"+suffix),
		Fat:          nutrientValue(n, "fat"+suffix),
		SaturatedFat: nutrientValue(n, "saturated-fat"+suffix),
		Cholesterol:  nutrientValue(n, "cholesterol"+suffix) * 1000, // g -> mg
		Sodium:       nutrientValue(n, "sodium"+suffix) * 1000,      // g -> mg
		Fiber:        nutrientValue(n, "fiber"+suffix),
		Sugar:        nutrientValue(n, "sugars"+suffix),
	}
}

// Nutriment values arrive as numbers or numeric strings depending on the
// product record.
func nutrientValue(n map[string]any, key string) float64 {
	switch t := n[key].(type) {
	case float64:
		return t
	case string:
		v, err := strconv.ParseFloat(strings.TrimSpace(t), 64)
		if err != nil {
			return 0
		}
		return v
	default:
		return 0
	}
}

func parseServing(p offProduct) (float64, string) {
	if p.ServingQuantity > 0 {
		unit := strings.TrimSpace(p.ServingQuantityUnit)
		if unit == "" {
			unit = "g"
		}
		return p.ServingQuantity, unit
	}
	if parts := strings.Fields(strings.TrimSpace(p.ServingSize)); len(parts) >= 2 {
		var val float64
		if _, err := fmt.Sscanf(strings.ReplaceAll(parts[0], ",", ""), "%f", &val); err == nil && val > 0 {
			return val, parts[1]
		}
	}
	return 100, "g"
}

type offResponse struct {
	Status  int        `json:"status"`
	Product offProduct `json:"product"`
}

type offProduct struct {
	ProductName         string         `json:"product_name"`
	Brands              string         `json:"brands"`
	ImageURL            string         `json:"image_url"`
	ServingSize         string         `json:"serving_size"`
	ServingQuantity     float64        `json:"serving_quantity"`
	ServingQuantityUnit string         `json:"serving_quantity_unit"`
	Nutriments          map[string]any `json:"nutriments"`
}

type offSearchResponse struct {
	Products []offProduct `json:"products"`
}
