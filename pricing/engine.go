package pricing

import (
	"math"
	"strings"
)

// fixedCategoryPrices are resale prices decoupled from the supplier cost.
// Keys are normalized category labels (uppercased, trimmed, accents folded).
var fixedCategoryPrices = map[string]float64{
	"BANDEJAS SIM":    350,
	"LENTES":          350,
	"CENTRO DE CARGA": 350,
	"FLEX DE CARGA":   550,
}

// Back cover prices by brand
const (
	tapaPriceApple   = 900
	tapaPriceGeneric = 550
)

// Non-Apple battery floor and markup
const (
	batteryFloor  = 450
	batteryMarkup = 100
)

var accentReplacer = strings.NewReplacer("Á", "A", "É", "E", "Í", "I", "Ó", "O", "Ú", "U", "Ü", "U")

// normalizeCategory uppercases, trims and folds accented vowels so that
// "Baterías", "BATERIAS" and " baterias " all compare equal
func normalizeCategory(category string) string {
	return accentReplacer.Replace(strings.ToUpper(strings.TrimSpace(category)))
}

// isAppleName reports whether the product name signals an Apple-device part.
// The supplier abbreviates iPhone models as "IP 13", "IP13 PRO", etc.
func isAppleName(nameLower string) bool {
	return strings.Contains(nameLower, "iphone") || strings.Contains(nameLower, "ip")
}

// ceilToMultiple rounds v up to the next multiple of step
func ceilToMultiple(v, step float64) float64 {
	return math.Ceil(v/step) * step
}

// ComputeSellingPrice maps a supplier price to the resale price. Pure and
// total: any input in the declared domain (price >= 0, arbitrary text for
// category and name) produces a non-negative price; unknown categories fall
// through to the general rule.
//
// The rules form a priority cascade, first hit wins:
//
//	A. Tapas: fixed by brand, supplier price ignored.
//	B. Fixed-price categories, supplier price ignored.
//	C. Baterías: double, ceil to 50; non-Apple gets max(450, rounded+100).
//	D. General: double, then snap to the nearer ...50 / ...00 boundary above.
func ComputeSellingPrice(originalPrice float64, category, name string) float64 {
	nameLower := strings.ToLower(name)
	cat := normalizeCategory(category)

	// A. Back covers are priced by brand only
	if cat == "TAPAS" {
		if isAppleName(nameLower) {
			return tapaPriceApple
		}
		return tapaPriceGeneric
	}

	// B. Fixed-price categories
	if price, ok := fixedCategoryPrices[cat]; ok {
		return price
	}

	// C. Batteries, matched by category or by name
	if cat == "BATERIAS" || cat == "BATERIA" || strings.Contains(nameLower, "bat") {
		rounded := ceilToMultiple(originalPrice*2, 50)
		if isAppleName(nameLower) {
			return rounded
		}
		return math.Max(batteryFloor, rounded+batteryMarkup)
	}

	// D. General rule: double and round based on the remainder mod 100.
	// Remainder 0-50 snaps to the ...50 mark, 51-99 to the next ...00 mark.
	doubled := originalPrice * 2
	remainder := math.Mod(doubled, 100)
	if remainder <= 50 {
		return doubled - remainder + 50
	}
	return doubled - remainder + 100
}
