package models

// AddItemRequest represents the request body for adding a product to the ticket.
// Either ProductID (catalog lookup) or an inline Product must be provided.
type AddItemRequest struct {
	ProductID int            `json:"productId"`
	Product   *PricedProduct `json:"product,omitempty"`
}

// UpdatePriceRequest represents the request body for a per-line price override.
// Price is untyped on purpose: whatever the client sends is coerced, never rejected.
type UpdatePriceRequest struct {
	Price interface{} `json:"price"`
}

// UpdateClientRequest represents the request body for the client/labor fields
type UpdateClientRequest struct {
	ClientName  string `json:"clientName"`
	ClientPhone string `json:"clientPhone"`
	LaborCost   string `json:"laborCost"`
}

// CartResponse is the cart state plus derived totals returned to the UI
type CartResponse struct {
	Cart        []LineItem  `json:"cart"`
	ClientName  string      `json:"clientName"`
	ClientPhone string      `json:"clientPhone"`
	LaborCost   string      `json:"laborCost"`
	CompanyData CompanyData `json:"companyData"`
	Totals      Totals      `json:"totals"`
}

// WhatsAppResponse carries the generated deep link and the raw message text
type WhatsAppResponse struct {
	URL     string `json:"url"`
	Message string `json:"message"`
}
