package controller

import (
	"encoding/json"
	"log"
	"net/http"

	"github.com/Shooukoo/yesmos.com/service"
)

// CatalogController handles HTTP requests for the priced catalog
type CatalogController struct {
	catalog *service.CatalogService
}

// NewCatalogController creates a new CatalogController
func NewCatalogController(catalog *service.CatalogService) *CatalogController {
	return &CatalogController{catalog: catalog}
}

// GetProducts handles GET /api/refacciones
// Returns the priced catalog, optionally filtered by ?category= and ?q=
func (c *CatalogController) GetProducts(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		http.Error(w, "Method not allowed", http.StatusMethodNotAllowed)
		return
	}

	category := r.URL.Query().Get("category")
	query := r.URL.Query().Get("q")

	products := c.catalog.Products(category, query)
	log.Printf("📦 GetProducts: returning %d products (category=%q, q=%q)", len(products), category, query)

	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusOK)
	if err := json.NewEncoder(w).Encode(products); err != nil {
		log.Printf("❌ GetProducts: Error encoding response: %v", err)
	}
}

// Refresh handles POST /api/refacciones/refresh
// Re-scrapes the supplier and replaces the catalog wholesale
func (c *CatalogController) Refresh(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		http.Error(w, "Method not allowed", http.StatusMethodNotAllowed)
		return
	}

	log.Printf("📥 Refresh: catalog refresh requested")
	count := c.catalog.Refresh(r.Context())

	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusOK)
	json.NewEncoder(w).Encode(map[string]int{"count": count})
}
