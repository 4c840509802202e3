package service

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestBuildProducts(t *testing.T) {
	cards := []supplierCard{
		{Name: "DISPLAY IP 11", Price: "$ 450.00", Image: "img/display.jpg", URL: "detalle?id=7"},
		{Name: "Sin nombre", Price: "$ 100.00"},
		{Name: "BATERIA IP 12", Price: "gratis"},
		{Name: "TAPA SAMSUNG A54", Price: "$ 275", Image: "https://cdn.example.com/tapa.jpg"},
		{Name: "  ", Price: "$ 80"},
	}

	products := buildProducts(cards, "https://anegocios.com.mx")

	// Placeholder names, blank names and unparseable prices are dropped
	require.Len(t, products, 2)

	first := products[0]
	assert.Equal(t, 1, first.ID)
	assert.Equal(t, "DISPLAY IP 11", first.Name)
	assert.Equal(t, 450.0, first.Price)
	assert.Equal(t, "Pantallas", first.Category)
	assert.Equal(t, "https://anegocios.com.mx/img/display.jpg", first.Image)
	assert.Equal(t, "https://anegocios.com.mx/detalle?id=7", first.URL)
	assert.True(t, first.Available)

	second := products[1]
	assert.Equal(t, 2, second.ID, "ids are sequential over kept products only")
	assert.Equal(t, "Tapas", second.Category)
	assert.Equal(t, "https://cdn.example.com/tapa.jpg", second.Image, "absolute image URLs pass through")
}

func TestBuildProductsMissingURL(t *testing.T) {
	products := buildProducts([]supplierCard{
		{Name: "FLEX DE CARGA IP X", Price: "$ 120"},
	}, "https://anegocios.com.mx")

	require.Len(t, products, 1)
	assert.Equal(t, "#", products[0].URL)
	assert.Equal(t, "", products[0].Image)
}

func TestParsePrice(t *testing.T) {
	cases := []struct {
		raw  string
		want float64
	}{
		{"$ 1,234.50 MXN", 1234.50},
		{"450", 450},
		{"$0", 0},
		{"precio a tratar", 0},
		{"", 0},
	}
	for _, tc := range cases {
		assert.Equal(t, tc.want, parsePrice(tc.raw), "parsePrice(%q)", tc.raw)
	}
}

func TestSupplierOrigin(t *testing.T) {
	assert.Equal(t, "https://anegocios.com.mx", supplierOrigin("https://anegocios.com.mx/productos?cat=1"))
	assert.Equal(t, "", supplierOrigin("not a url"))
	assert.Equal(t, "", supplierOrigin("/relative/only"))
}
