package models

// RawProduct represents a single supplier item as scraped, before resale pricing
type RawProduct struct {
	ID        int     `json:"id"`
	Name      string  `json:"name"`
	Price     float64 `json:"price"`
	Category  string  `json:"category"`
	Image     string  `json:"image"`
	URL       string  `json:"url"`
	Available bool    `json:"available"`
}

// PricedProduct is a RawProduct augmented with the computed resale price
type PricedProduct struct {
	RawProduct
	SellingPrice float64 `json:"sellingPrice"`
}
