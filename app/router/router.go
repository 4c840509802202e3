package router

import (
	"net/http"
	"strings"

	"github.com/Shooukoo/yesmos.com/app/controller"
)

type Controllers struct {
	Catalog *controller.CatalogController
	Quote   *controller.QuoteController
	Ticket  *controller.TicketController
}

// pingHandler handles GET /ping
func pingHandler(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		http.Error(w, "Method not allowed", http.StatusMethodNotAllowed)
		return
	}
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusOK)
	w.Write([]byte(`{"status":"ok"}`))
}

func SetupRoutes(controllers *Controllers) {
	// Ping endpoint
	http.HandleFunc("/ping", pingHandler)

	// Catalog routes
	http.HandleFunc("/api/refacciones", controllers.Catalog.GetProducts)
	http.HandleFunc("/api/refacciones/refresh", controllers.Catalog.Refresh)

	// Cart routes
	http.HandleFunc("/api/cotizador/cart", controllers.Quote.GetCart)
	http.HandleFunc("/api/cotizador/cart/clear", controllers.Quote.ClearCart)
	http.HandleFunc("/api/cotizador/cart/client", controllers.Quote.UpdateClient)

	// Line item routes - POST /items plus DELETE/PUT on /items/{lineId}
	http.HandleFunc("/api/cotizador/cart/items", controllers.Quote.AddItem)
	http.HandleFunc("/api/cotizador/cart/items/", func(w http.ResponseWriter, r *http.Request) {
		path := strings.TrimPrefix(r.URL.Path, "/api/cotizador/cart/items/")

		// PUT /api/cotizador/cart/items/{lineId}/price
		if strings.HasSuffix(path, "/price") && r.Method == http.MethodPut {
			lineID := strings.TrimSuffix(path, "/price")
			controllers.Quote.UpdateItemPrice(w, r, lineID)
			return
		}

		// DELETE /api/cotizador/cart/items/{lineId}
		if r.Method == http.MethodDelete && !strings.Contains(path, "/") {
			controllers.Quote.RemoveItem(w, r, path)
			return
		}

		http.Error(w, "Method not allowed", http.StatusMethodNotAllowed)
	})

	// Company profile
	http.HandleFunc("/api/cotizador/company", controllers.Quote.UpdateCompany)

	// Ticket exports
	http.HandleFunc("/api/cotizador/ticket/whatsapp", controllers.Ticket.GetWhatsApp)
	http.HandleFunc("/api/cotizador/ticket/render", controllers.Ticket.Render)
	http.HandleFunc("/api/cotizador/ticket/pdf", controllers.Ticket.GetPDF)
}
