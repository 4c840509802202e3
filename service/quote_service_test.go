package service

import (
	"context"
	"testing"

	"github.com/Shooukoo/yesmos.com/models"
	"github.com/Shooukoo/yesmos.com/repository"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// memoryStore is an in-memory SnapshotStore that records every save
type memoryStore struct {
	data  []byte
	saves int
}

var _ repository.SnapshotStore = (*memoryStore)(nil)

func (m *memoryStore) Load(ctx context.Context) ([]byte, error) {
	if m.data == nil {
		return nil, repository.ErrSnapshotNotFound
	}
	return m.data, nil
}

func (m *memoryStore) Save(ctx context.Context, data []byte) error {
	m.data = append([]byte(nil), data...)
	m.saves++
	return nil
}

func newTestQuote(t *testing.T) (*QuoteService, *memoryStore) {
	t.Helper()
	store := &memoryStore{}
	quote := NewQuoteService(store)
	quote.Restore(context.Background())
	return quote, store
}

func product(name string, selling float64) models.PricedProduct {
	return models.PricedProduct{
		RawProduct: models.RawProduct{
			ID:        1,
			Name:      name,
			Price:     selling / 2,
			Category:  "Otros",
			Available: true,
		},
		SellingPrice: selling,
	}
}

func TestQuoteServicePersistSuppressedBeforeRestore(t *testing.T) {
	store := &memoryStore{}
	quote := NewQuoteService(store)

	// Mutations before Restore must not touch the store
	quote.AddItem(product("DISPLAY IP 11", 900))
	quote.UpdateClient("Juan", "5512345678", "200")
	assert.Equal(t, 0, store.saves)

	quote.Restore(context.Background())
	quote.AddItem(product("BATERIA IP 12", 600))
	assert.Equal(t, 1, store.saves)
}

func TestQuoteServiceAddRemovePreservesOrder(t *testing.T) {
	quote, _ := newTestQuote(t)

	a := quote.AddItem(product("A", 100))
	b := quote.AddItem(product("B", 200))
	c := quote.AddItem(product("C", 300))

	quote.RemoveItem(b.LineID)

	state := quote.State()
	require.Len(t, state.Cart, 2)
	assert.Equal(t, a.LineID, state.Cart[0].LineID)
	assert.Equal(t, c.LineID, state.Cart[1].LineID)
}

func TestQuoteServiceRemoveUnknownIsNoop(t *testing.T) {
	quote, store := newTestQuote(t)
	quote.AddItem(product("A", 100))
	saves := store.saves

	quote.RemoveItem("no-such-line")

	assert.Len(t, quote.State().Cart, 1)
	assert.Equal(t, saves, store.saves, "a no-op removal should not persist")
}

func TestQuoteServiceDuplicateProductGetsDistinctLines(t *testing.T) {
	quote, _ := newTestQuote(t)

	a := quote.AddItem(product("DISPLAY IP 11", 900))
	b := quote.AddItem(product("DISPLAY IP 11", 900))

	assert.NotEqual(t, a.LineID, b.LineID)
	assert.Len(t, quote.State().Cart, 2)
}

func TestQuoteServiceTotals(t *testing.T) {
	quote, _ := newTestQuote(t)
	quote.AddItem(product("A", 900))
	quote.AddItem(product("B", 350))
	quote.UpdateClient("Juan", "5512345678", "150")

	totals := quote.Totals()
	assert.Equal(t, 1250.0, totals.Subtotal)
	assert.Equal(t, 150.0, totals.Labor)
	assert.Equal(t, 1400.0, totals.Total)

	// Derived on every call, identical without mutations
	assert.Equal(t, totals, quote.Totals())
}

func TestQuoteServiceLaborCoercion(t *testing.T) {
	quote, _ := newTestQuote(t)
	quote.AddItem(product("A", 100))

	for _, raw := range []string{"", "abc", "-50"} {
		quote.UpdateClient("", "", raw)
		totals := quote.Totals()
		assert.Equal(t, 0.0, totals.Labor, "labor %q should coerce to 0", raw)
		assert.Equal(t, 100.0, totals.Total)
	}
}

func TestQuoteServiceUpdatePriceCoercion(t *testing.T) {
	quote, _ := newTestQuote(t)
	line := quote.AddItem(product("A", 900))

	quote.UpdatePrice(line.LineID, "750.50")
	assert.Equal(t, 750.50, quote.State().Cart[0].SellingPrice)

	quote.UpdatePrice(line.LineID, "not a number")
	assert.Equal(t, 0.0, quote.State().Cart[0].SellingPrice)

	quote.UpdatePrice(line.LineID, "-20")
	assert.Equal(t, 0.0, quote.State().Cart[0].SellingPrice)

	// Totals reflect the override immediately
	assert.Equal(t, 0.0, quote.Totals().Subtotal)
}

func TestQuoteServiceClearPreservesCompany(t *testing.T) {
	quote, _ := newTestQuote(t)
	company := models.CompanyData{Name: "Yesmos", Phone: "5512345678", Repairer: "Luis"}

	quote.AddItem(product("A", 100))
	quote.UpdateClient("Juan", "5587654321", "50")
	quote.UpdateCompany(company)

	quote.Clear()

	state := quote.State()
	assert.Empty(t, state.Cart)
	assert.Empty(t, state.ClientName)
	assert.Empty(t, state.ClientPhone)
	assert.Empty(t, state.LaborCost)
	assert.Equal(t, company, state.CompanyData)
}

func TestQuoteServiceRestoreRoundTrip(t *testing.T) {
	store := &memoryStore{}

	first := NewQuoteService(store)
	first.Restore(context.Background())
	first.AddItem(product("DISPLAY IP 11", 900))
	first.AddItem(product("BATERIA IP 12", 600))
	first.UpdateClient("Juan", "5512345678", "150")
	first.UpdateCompany(models.CompanyData{Name: "Yesmos"})

	// A fresh process against the same store sees the identical session
	second := NewQuoteService(store)
	second.Restore(context.Background())

	assert.Equal(t, first.State(), second.State())
	assert.Equal(t, first.Totals(), second.Totals())
}

func TestQuoteServiceRestoreMissingSnapshot(t *testing.T) {
	quote, _ := newTestQuote(t)

	state := quote.State()
	assert.Empty(t, state.Cart)
	assert.Equal(t, models.Totals{}, quote.Totals())
}

func TestQuoteServiceRestoreMalformedSnapshot(t *testing.T) {
	store := &memoryStore{data: []byte(`{{{not json`)}
	quote := NewQuoteService(store)
	quote.Restore(context.Background())

	// Starts empty but initialized: new mutations persist normally
	assert.Empty(t, quote.State().Cart)
	quote.AddItem(product("A", 100))
	assert.Equal(t, 1, store.saves)
}

func TestQuoteServiceRestoreTolerantOfMissingFields(t *testing.T) {
	store := &memoryStore{data: []byte(`{"cart":[],"clientName":"Juan"}`)}
	quote := NewQuoteService(store)
	quote.Restore(context.Background())

	state := quote.State()
	assert.Equal(t, "Juan", state.ClientName)
	assert.Equal(t, models.CompanyData{}, state.CompanyData)
}

func TestQuoteServiceRestoreTolerantOfBadField(t *testing.T) {
	store := &memoryStore{data: []byte(`{"cart":"not an array","clientName":"Juan","laborCost":"80"}`)}
	quote := NewQuoteService(store)
	quote.Restore(context.Background())

	state := quote.State()
	assert.Empty(t, state.Cart)
	assert.Equal(t, "Juan", state.ClientName)
	assert.Equal(t, 80.0, quote.Totals().Labor)
}
