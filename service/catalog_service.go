package service

import (
	"context"
	"log"
	"strings"
	"sync"
	"time"

	"github.com/Shooukoo/yesmos.com/models"
	"github.com/Shooukoo/yesmos.com/pricing"
)

// CatalogService holds the current priced catalog in memory. The batch is
// replaced wholesale on every refresh; individual products are never mutated.
type CatalogService struct {
	supplier SupplierServiceInterface

	mu       sync.RWMutex
	products []models.PricedProduct
	loadedAt time.Time
}

// NewCatalogService creates a new CatalogService
func NewCatalogService(supplier SupplierServiceInterface) *CatalogService {
	return &CatalogService{supplier: supplier}
}

// Refresh re-scrapes the supplier and swaps in a freshly priced batch.
// A failed scrape leaves an empty catalog, which is a valid state: the UI
// shows no products instead of an error.
func (s *CatalogService) Refresh(ctx context.Context) int {
	raw, err := s.supplier.FetchProducts(ctx)
	if err != nil {
		log.Printf("⚠️  Refresh: supplier scrape failed, keeping empty catalog: %v", err)
		raw = nil
	}

	priced := make([]models.PricedProduct, 0, len(raw))
	for _, p := range raw {
		priced = append(priced, models.PricedProduct{
			RawProduct:   p,
			SellingPrice: pricing.ComputeSellingPrice(p.Price, p.Category, p.Name),
		})
	}

	s.mu.Lock()
	s.products = priced
	s.loadedAt = time.Now()
	s.mu.Unlock()

	log.Printf("✅ Refresh: catalog loaded with %d priced products", len(priced))
	return len(priced)
}

// Products returns the priced catalog, optionally filtered by exact category
// and a case-insensitive name substring. Always returns a copy.
func (s *CatalogService) Products(category, query string) []models.PricedProduct {
	s.mu.RLock()
	defer s.mu.RUnlock()

	queryLower := strings.ToLower(strings.TrimSpace(query))
	out := make([]models.PricedProduct, 0, len(s.products))
	for _, p := range s.products {
		if category != "" && p.Category != category {
			continue
		}
		if queryLower != "" && !strings.Contains(strings.ToLower(p.Name), queryLower) {
			continue
		}
		out = append(out, p)
	}
	return out
}

// FindByID looks up a product in the current batch
func (s *CatalogService) FindByID(id int) (models.PricedProduct, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	for _, p := range s.products {
		if p.ID == id {
			return p, true
		}
	}
	return models.PricedProduct{}, false
}

// LoadedAt reports when the current batch was ingested; zero if never
func (s *CatalogService) LoadedAt() time.Time {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.loadedAt
}
