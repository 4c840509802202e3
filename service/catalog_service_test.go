package service

import (
	"context"
	"errors"
	"testing"

	"github.com/Shooukoo/yesmos.com/models"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// stubSupplier returns a canned batch or a canned error
type stubSupplier struct {
	products []models.RawProduct
	err      error
}

var _ SupplierServiceInterface = (*stubSupplier)(nil)

func (s *stubSupplier) FetchProducts(ctx context.Context) ([]models.RawProduct, error) {
	return s.products, s.err
}

func rawProduct(id int, name, category string, price float64) models.RawProduct {
	return models.RawProduct{ID: id, Name: name, Price: price, Category: category, Available: true}
}

func TestCatalogRefreshAppliesPricing(t *testing.T) {
	catalog := NewCatalogService(&stubSupplier{products: []models.RawProduct{
		rawProduct(1, "TAPA IPHONE 12", "Tapas", 300),
		rawProduct(2, "BANDEJA SIM A54", "Bandejas SIM", 80),
		rawProduct(3, "MICA 9H", "Accesorios", 110),
	}})

	count := catalog.Refresh(context.Background())
	assert.Equal(t, 3, count)

	products := catalog.Products("", "")
	require.Len(t, products, 3)
	assert.Equal(t, 900.0, products[0].SellingPrice)
	assert.Equal(t, 350.0, products[1].SellingPrice)
	assert.Equal(t, 250.0, products[2].SellingPrice)

	// Supplier cost stays untouched next to the computed price
	assert.Equal(t, 300.0, products[0].Price)
}

func TestCatalogRefreshFailureYieldsEmptyCatalog(t *testing.T) {
	supplier := &stubSupplier{products: []models.RawProduct{
		rawProduct(1, "DISPLAY IP 11", "Pantallas", 400),
	}}
	catalog := NewCatalogService(supplier)

	require.Equal(t, 1, catalog.Refresh(context.Background()))

	// A later failed scrape replaces the batch with nothing rather than erroring
	supplier.err = errors.New("supplier page down")
	assert.Equal(t, 0, catalog.Refresh(context.Background()))
	assert.Empty(t, catalog.Products("", ""))
	assert.False(t, catalog.LoadedAt().IsZero())
}

func TestCatalogProductsFilters(t *testing.T) {
	catalog := NewCatalogService(&stubSupplier{products: []models.RawProduct{
		rawProduct(1, "DISPLAY IP 11", "Pantallas", 400),
		rawProduct(2, "DISPLAY SAMSUNG A54", "Pantallas", 350),
		rawProduct(3, "TAPA IPHONE 12", "Tapas", 300),
	}})
	catalog.Refresh(context.Background())

	byCategory := catalog.Products("Pantallas", "")
	require.Len(t, byCategory, 2)

	byQuery := catalog.Products("", "samsung")
	require.Len(t, byQuery, 1)
	assert.Equal(t, "DISPLAY SAMSUNG A54", byQuery[0].Name)

	both := catalog.Products("Pantallas", "IP 11")
	require.Len(t, both, 1)
	assert.Equal(t, 1, both[0].ID)

	assert.Empty(t, catalog.Products("Baterías", ""))
}

func TestCatalogFindByID(t *testing.T) {
	catalog := NewCatalogService(&stubSupplier{products: []models.RawProduct{
		rawProduct(1, "DISPLAY IP 11", "Pantallas", 400),
	}})
	catalog.Refresh(context.Background())

	found, ok := catalog.FindByID(1)
	assert.True(t, ok)
	assert.Equal(t, "DISPLAY IP 11", found.Name)

	_, ok = catalog.FindByID(99)
	assert.False(t, ok)
}
