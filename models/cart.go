package models

// LineItem is one entry in the quote ticket. The line gets its own id so the
// same product can appear more than once, and its selling price can be edited
// independently of the catalog price.
type LineItem struct {
	PricedProduct
	LineID string `json:"cartId"`
}

// CompanyData holds the business profile printed on tickets. It survives
// Clear() on purpose: the shop identity outlives individual tickets.
type CompanyData struct {
	Name     string `json:"name"`
	Address  string `json:"address"`
	Phone    string `json:"phone"`
	Repairer string `json:"repairer"`
	Logo     string `json:"logo"`
}

// Totals is derived from the cart on every read, never stored
type Totals struct {
	Subtotal float64 `json:"subtotal"`
	Labor    float64 `json:"labor"`
	Total    float64 `json:"total"`
}

// CartSnapshot is the persisted shape of a quoting session. It carries no
// schema version; readers must tolerate missing or extra fields.
type CartSnapshot struct {
	Cart        []LineItem  `json:"cart"`
	ClientName  string      `json:"clientName"`
	ClientPhone string      `json:"clientPhone"`
	LaborCost   string      `json:"laborCost"`
	CompanyData CompanyData `json:"companyData"`
}
