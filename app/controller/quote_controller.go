package controller

import (
	"encoding/json"
	"errors"
	"fmt"
	"log"
	"net/http"
	"strings"

	"github.com/Shooukoo/yesmos.com/models"
	"github.com/Shooukoo/yesmos.com/service"
)

// QuoteController handles HTTP requests for the quoting cart
type QuoteController struct {
	quote   *service.QuoteService
	catalog *service.CatalogService
}

// NewQuoteController creates a new QuoteController
func NewQuoteController(quote *service.QuoteService, catalog *service.CatalogService) *QuoteController {
	return &QuoteController{quote: quote, catalog: catalog}
}

func (c *QuoteController) writeCart(w http.ResponseWriter) {
	state := c.quote.State()
	response := models.CartResponse{
		Cart:        state.Cart,
		ClientName:  state.ClientName,
		ClientPhone: state.ClientPhone,
		LaborCost:   state.LaborCost,
		CompanyData: state.CompanyData,
		Totals:      c.quote.Totals(),
	}

	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusOK)
	if err := json.NewEncoder(w).Encode(response); err != nil {
		log.Printf("❌ writeCart: Error encoding response: %v", err)
	}
}

// GetCart handles GET /api/cotizador/cart
func (c *QuoteController) GetCart(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		http.Error(w, "Method not allowed", http.StatusMethodNotAllowed)
		return
	}
	c.writeCart(w)
}

// AddItem handles POST /api/cotizador/cart/items
// Accepts a catalog product id or an inline priced product
func (c *QuoteController) AddItem(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		http.Error(w, "Method not allowed", http.StatusMethodNotAllowed)
		return
	}

	var req models.AddItemRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		log.Printf("❌ AddItem: Failed to decode request body: %v", err)
		http.Error(w, fmt.Sprintf("Invalid request body: %v", err), http.StatusBadRequest)
		return
	}

	var product models.PricedProduct
	if req.Product != nil {
		product = *req.Product
	} else {
		found, ok := c.catalog.FindByID(req.ProductID)
		if !ok {
			log.Printf("❌ AddItem: product %d not in catalog", req.ProductID)
			http.Error(w, "Product not found", http.StatusNotFound)
			return
		}
		product = found
	}

	c.quote.AddItem(product)
	c.writeCart(w)
}

// RemoveItem handles DELETE /api/cotizador/cart/items/{lineId}
func (c *QuoteController) RemoveItem(w http.ResponseWriter, r *http.Request, lineID string) {
	c.quote.RemoveItem(lineID)
	c.writeCart(w)
}

// UpdateItemPrice handles PUT /api/cotizador/cart/items/{lineId}/price
// Invalid prices are coerced to 0, never rejected
func (c *QuoteController) UpdateItemPrice(w http.ResponseWriter, r *http.Request, lineID string) {
	var req models.UpdatePriceRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		log.Printf("❌ UpdateItemPrice: Failed to decode request body: %v", err)
		http.Error(w, fmt.Sprintf("Invalid request body: %v", err), http.StatusBadRequest)
		return
	}

	c.quote.UpdatePrice(lineID, priceAsString(req.Price))
	c.writeCart(w)
}

// priceAsString flattens whatever JSON value the client sent into text for
// the coercing parser
func priceAsString(v interface{}) string {
	switch val := v.(type) {
	case string:
		return val
	case float64:
		return strings.TrimSpace(fmt.Sprintf("%v", val))
	case nil:
		return ""
	default:
		return fmt.Sprintf("%v", val)
	}
}

// ClearCart handles POST /api/cotizador/cart/clear
func (c *QuoteController) ClearCart(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		http.Error(w, "Method not allowed", http.StatusMethodNotAllowed)
		return
	}
	c.quote.Clear()
	c.writeCart(w)
}

// UpdateClient handles PUT /api/cotizador/cart/client
func (c *QuoteController) UpdateClient(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPut {
		http.Error(w, "Method not allowed", http.StatusMethodNotAllowed)
		return
	}

	var req models.UpdateClientRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		log.Printf("❌ UpdateClient: Failed to decode request body: %v", err)
		http.Error(w, fmt.Sprintf("Invalid request body: %v", err), http.StatusBadRequest)
		return
	}

	c.quote.UpdateClient(req.ClientName, req.ClientPhone, req.LaborCost)
	c.writeCart(w)
}

// UpdateCompany handles PUT /api/cotizador/company
func (c *QuoteController) UpdateCompany(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPut {
		http.Error(w, "Method not allowed", http.StatusMethodNotAllowed)
		return
	}

	var company models.CompanyData
	if err := json.NewDecoder(r.Body).Decode(&company); err != nil {
		log.Printf("❌ UpdateCompany: Failed to decode request body: %v", err)
		http.Error(w, fmt.Sprintf("Invalid request body: %v", err), http.StatusBadRequest)
		return
	}

	logo, err := service.OptimizeLogo(company.Logo)
	if err != nil {
		if errors.Is(err, service.ErrLogoTooLarge) {
			http.Error(w, err.Error(), http.StatusRequestEntityTooLarge)
			return
		}
		log.Printf("❌ UpdateCompany: logo optimization failed: %v", err)
		http.Error(w, "Failed to process logo", http.StatusInternalServerError)
		return
	}
	company.Logo = logo

	c.quote.UpdateCompany(company)
	c.writeCart(w)
}
