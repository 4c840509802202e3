package service

import (
	"context"
	"encoding/json"
	"log"
	"strconv"
	"strings"
	"sync"

	"github.com/Shooukoo/yesmos.com/models"
	"github.com/Shooukoo/yesmos.com/repository"

	"github.com/google/uuid"
)

// QuoteService is the single cart aggregator for the quoting tool. One
// instance is built per process and threaded through the controllers; there
// are no hidden globals. The mutex exists because HTTP handlers run
// concurrently, even though the product assumes one active session.
type QuoteService struct {
	store repository.SnapshotStore

	mu          sync.Mutex
	initialized bool
	lines       []models.LineItem
	clientName  string
	clientPhone string
	laborCost   string
	company     models.CompanyData
}

// NewQuoteService creates a new QuoteService. The service starts
// uninitialized: persistence writes are suppressed until Restore runs, so a
// fresh process can never clobber the stored snapshot with its empty state.
func NewQuoteService(store repository.SnapshotStore) *QuoteService {
	return &QuoteService{store: store}
}

// Restore rehydrates the session from the persisted snapshot, field by field.
// Missing or malformed fields keep their defaults; nothing here ever aborts
// startup. Restore always leaves the service initialized.
func (s *QuoteService) Restore(ctx context.Context) {
	s.mu.Lock()
	defer s.mu.Unlock()
	defer func() { s.initialized = true }()

	data, err := s.store.Load(ctx)
	if err != nil {
		if err != repository.ErrSnapshotNotFound {
			log.Printf("⚠️  Restore: failed to load snapshot, starting empty: %v", err)
		}
		return
	}

	// Field-level decoding: one bad field must not take the others down
	var envelope struct {
		Cart        json.RawMessage `json:"cart"`
		ClientName  json.RawMessage `json:"clientName"`
		ClientPhone json.RawMessage `json:"clientPhone"`
		LaborCost   json.RawMessage `json:"laborCost"`
		CompanyData json.RawMessage `json:"companyData"`
	}
	if err := json.Unmarshal(data, &envelope); err != nil {
		log.Printf("⚠️  Restore: malformed snapshot, starting empty: %v", err)
		return
	}

	if len(envelope.Cart) > 0 {
		var lines []models.LineItem
		if err := json.Unmarshal(envelope.Cart, &lines); err == nil {
			s.lines = lines
		}
	}
	if len(envelope.ClientName) > 0 {
		_ = json.Unmarshal(envelope.ClientName, &s.clientName)
	}
	if len(envelope.ClientPhone) > 0 {
		_ = json.Unmarshal(envelope.ClientPhone, &s.clientPhone)
	}
	if len(envelope.LaborCost) > 0 {
		_ = json.Unmarshal(envelope.LaborCost, &s.laborCost)
	}
	if len(envelope.CompanyData) > 0 {
		_ = json.Unmarshal(envelope.CompanyData, &s.company)
	}

	log.Printf("✅ Restore: session recovered (%d line items)", len(s.lines))
}

// AddItem appends a new line for the given product and returns it. Line ids
// are random so removed-and-re-added products never collide. Never fails.
func (s *QuoteService) AddItem(p models.PricedProduct) models.LineItem {
	s.mu.Lock()
	defer s.mu.Unlock()

	line := models.LineItem{
		PricedProduct: p,
		LineID:        uuid.NewString(),
	}
	s.lines = append(s.lines, line)
	s.persistLocked()

	log.Printf("🛒 AddItem: %q added (line %s, %d items)", p.Name, line.LineID, len(s.lines))
	return line
}

// RemoveItem removes the matching line; removing an unknown id is a no-op
func (s *QuoteService) RemoveItem(lineID string) {
	s.mu.Lock()
	defer s.mu.Unlock()

	for i, line := range s.lines {
		if line.LineID == lineID {
			s.lines = append(s.lines[:i], s.lines[i+1:]...)
			s.persistLocked()
			log.Printf("🛒 RemoveItem: line %s removed (%d items left)", lineID, len(s.lines))
			return
		}
	}
}

// Clear empties the ticket: lines, client fields and labor cost. Company data
// survives on purpose, the business profile outlives individual tickets.
func (s *QuoteService) Clear() {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.lines = nil
	s.clientName = ""
	s.clientPhone = ""
	s.laborCost = ""
	s.persistLocked()

	log.Printf("🛒 Clear: ticket emptied")
}

// UpdatePrice overrides a line's selling price. Anything that doesn't parse
// to a non-negative number is coerced to 0; price edits never error.
func (s *QuoteService) UpdatePrice(lineID string, raw string) {
	price, err := strconv.ParseFloat(strings.TrimSpace(raw), 64)
	if err != nil || price < 0 {
		price = 0
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	for i := range s.lines {
		if s.lines[i].LineID == lineID {
			s.lines[i].SellingPrice = price
			s.persistLocked()
			return
		}
	}
}

// UpdateClient sets the client name, phone and labor cost fields
func (s *QuoteService) UpdateClient(name, phone, laborCost string) {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.clientName = name
	s.clientPhone = phone
	s.laborCost = laborCost
	s.persistLocked()
}

// UpdateCompany replaces the business profile
func (s *QuoteService) UpdateCompany(company models.CompanyData) {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.company = company
	s.persistLocked()
}

// Totals recomputes the derived figures on every call, never cached
func (s *QuoteService) Totals() models.Totals {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.totalsLocked()
}

func (s *QuoteService) totalsLocked() models.Totals {
	var subtotal float64
	for _, line := range s.lines {
		subtotal += line.SellingPrice
	}
	labor := parseLabor(s.laborCost)
	return models.Totals{
		Subtotal: subtotal,
		Labor:    labor,
		Total:    subtotal + labor,
	}
}

// parseLabor turns the free-text labor field into a non-negative number;
// empty or unparseable input counts as 0
func parseLabor(raw string) float64 {
	v, err := strconv.ParseFloat(strings.TrimSpace(raw), 64)
	if err != nil || v < 0 {
		return 0
	}
	return v
}

// State returns a copy of the full session for responses and exports
func (s *QuoteService) State() models.CartSnapshot {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.stateLocked()
}

func (s *QuoteService) stateLocked() models.CartSnapshot {
	lines := make([]models.LineItem, len(s.lines))
	copy(lines, s.lines)
	return models.CartSnapshot{
		Cart:        lines,
		ClientName:  s.clientName,
		ClientPhone: s.clientPhone,
		LaborCost:   s.laborCost,
		CompanyData: s.company,
	}
}

// persistLocked writes the snapshot after a mutation. Fire-and-forget: a
// store failure is logged and swallowed, it is not part of the cart contract.
// Writes are suppressed while uninitialized so the empty boot state can never
// overwrite a stored session before Restore has run.
func (s *QuoteService) persistLocked() {
	if !s.initialized {
		return
	}

	data, err := json.Marshal(s.stateLocked())
	if err != nil {
		log.Printf("⚠️  persist: failed to marshal snapshot: %v", err)
		return
	}
	if err := s.store.Save(context.Background(), data); err != nil {
		log.Printf("⚠️  persist: failed to save snapshot: %v", err)
	}
}
