package pricing

import "strings"

// CategoryOther is assigned when no keyword rule matches
const CategoryOther = "Otros"

// CategoryRule maps a set of name keywords to a category label
type CategoryRule struct {
	Category string
	Keywords []string
}

// categoryRules is evaluated top to bottom, first match wins. The order is a
// business contract, not an accident: "FUNDA CON FLEX" must land in Flexores,
// not Accesorios, because flex repairs are priced differently.
var categoryRules = []CategoryRule{
	{Category: "Pantallas", Keywords: []string{"DIS", "LCD", "PANTALLA", "DISPLAY"}},
	{Category: "Baterías", Keywords: []string{"BAT", "PILA", "BATERIA"}},
	{Category: "Tapas", Keywords: []string{"TAPA", "TRASERA"}},
	{Category: "Flexores", Keywords: []string{"FLEX", "CENTRO", "CARGA", "PUERTO", "MICROFONO"}},
	{Category: "Touch", Keywords: []string{"TOUCH"}},
	{Category: "Cámaras", Keywords: []string{"LENTE", "CRISTAL", "CAMARA"}},
	{Category: "Bandejas SIM", Keywords: []string{"SIM", "BANDEJA", "PORTA"}},
	{Category: "Accesorios", Keywords: []string{"ACCESORIO", "CABLE", "FUNDA", "MICA"}},
}

// Categorize resolves a product name to exactly one category label by
// evaluating the ordered keyword rules against the uppercased name
func Categorize(name string) string {
	n := strings.ToUpper(name)
	for _, rule := range categoryRules {
		for _, kw := range rule.Keywords {
			if strings.Contains(n, kw) {
				return rule.Category
			}
		}
	}
	return CategoryOther
}

// Categories returns the known category labels in rule order, without the
// fallback. Useful for building UI filters.
func Categories() []string {
	out := make([]string, 0, len(categoryRules))
	for _, rule := range categoryRules {
		out = append(out, rule.Category)
	}
	return out
}
