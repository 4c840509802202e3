package controller

import (
	"encoding/json"
	"errors"
	"log"
	"net/http"

	"github.com/Shooukoo/yesmos.com/models"
	"github.com/Shooukoo/yesmos.com/service"
)

// TicketController handles HTTP requests for ticket exports
type TicketController struct {
	ticket *service.TicketService
}

// NewTicketController creates a new TicketController
func NewTicketController(ticket *service.TicketService) *TicketController {
	return &TicketController{ticket: ticket}
}

// writeValidationError maps the two recoverable export validations to a 400
// with a JSON body the UI can show directly
func writeValidationError(w http.ResponseWriter, err error) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusBadRequest)
	json.NewEncoder(w).Encode(map[string]string{"error": err.Error()})
}

// GetWhatsApp handles GET /api/cotizador/ticket/whatsapp
// Returns the wa.me deep link plus the raw message, or a recoverable 400
func (c *TicketController) GetWhatsApp(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		http.Error(w, "Method not allowed", http.StatusMethodNotAllowed)
		return
	}

	link, message, err := c.ticket.WhatsAppLink()
	if err != nil {
		if errors.Is(err, service.ErrEmptyCart) || errors.Is(err, service.ErrMissingPhone) {
			log.Printf("⚠️  GetWhatsApp: rejected: %v", err)
			writeValidationError(w, err)
			return
		}
		log.Printf("❌ GetWhatsApp: %v", err)
		http.Error(w, "Failed to build message", http.StatusInternalServerError)
		return
	}

	log.Printf("✅ GetWhatsApp: link generated")
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusOK)
	json.NewEncoder(w).Encode(models.WhatsAppResponse{URL: link, Message: message})
}

// Render handles GET /api/cotizador/ticket/render
// Serves the printable HTML that the PDF pipeline screenshots
func (c *TicketController) Render(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		http.Error(w, "Method not allowed", http.StatusMethodNotAllowed)
		return
	}

	html, err := c.ticket.RenderHTML()
	if err != nil {
		if errors.Is(err, service.ErrEmptyCart) {
			writeValidationError(w, err)
			return
		}
		log.Printf("❌ Render: %v", err)
		http.Error(w, "Failed to render ticket", http.StatusInternalServerError)
		return
	}

	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	w.WriteHeader(http.StatusOK)
	w.Write([]byte(html))
}

// GetPDF handles GET /api/cotizador/ticket/pdf
func (c *TicketController) GetPDF(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		http.Error(w, "Method not allowed", http.StatusMethodNotAllowed)
		return
	}

	pdf, err := c.ticket.GeneratePDF(r.Context())
	if err != nil {
		if errors.Is(err, service.ErrEmptyCart) {
			writeValidationError(w, err)
			return
		}
		log.Printf("❌ GetPDF: %v", err)
		http.Error(w, "Failed to generate PDF", http.StatusInternalServerError)
		return
	}

	log.Printf("✅ GetPDF: generated %d bytes", len(pdf))
	w.Header().Set("Content-Type", "application/pdf")
	w.Header().Set("Content-Disposition", `attachment; filename="cotizacion.pdf"`)
	w.WriteHeader(http.StatusOK)
	w.Write(pdf)
}
