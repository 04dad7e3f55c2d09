package services

import (
	"fmt"
	"strings"

	"github.com/t4thick/cs120-food-truck/models"
)

// AllergenCatalog maps a lowercased menu item name to its allergen tags.
type AllergenCatalog map[string][]string

// BuildAllergenCatalog snapshots the menu collection into a lookup map for
// order screening.
func BuildAllergenCatalog(items []models.Menu) AllergenCatalog {
	catalog := make(AllergenCatalog, len(items))
	for _, item := range items {
		if item.Name == nil {
			continue
		}
		catalog[strings.ToLower(strings.TrimSpace(*item.Name))] = item.Allergens
	}
	return catalog
}

// IsOrderSafe checks whether an order is safe given the customer's free-text
// allergy disclosure. An empty disclosure means the customer reported no
// allergies, so the order is safe.
//
// Matching is substring-based on both sides: catalog item names are matched
// by containment inside itemsText (the human-readable summary may carry
// quantities and delivery notes), and allergen tags are matched by
// containment inside the disclosure. Known limitation: "egg" also matches a
// disclosure that says "eggplant".
func IsOrderSafe(itemsText string, allergyText string, catalog AllergenCatalog) bool {
	allergyText = strings.ToLower(strings.TrimSpace(allergyText))
	if allergyText == "" {
		return true
	}

	loweredItems := strings.ToLower(itemsText)

	var candidates []string
	matched := false
	for name, allergens := range catalog {
		if strings.Contains(loweredItems, name) {
			matched = true
			candidates = append(candidates, allergens...)
		}
	}
	if !matched {
		// legacy call shape: the whole items text is exactly one item name
		if allergens, ok := catalog[strings.TrimSpace(loweredItems)]; ok {
			candidates = append(candidates, allergens...)
		}
	}

	for _, allergen := range candidates {
		if strings.Contains(allergyText, strings.ToLower(allergen)) {
			return false
		}
	}
	return true
}

// RenderItemsText turns structured order lines into the readable summary
// stored alongside them, e.g. "Burger x2, Fries x1".
func RenderItemsText(lines []models.OrderLine) string {
	parts := make([]string, 0, len(lines))
	for _, line := range lines {
		parts = append(parts, fmt.Sprintf("%s x%d", line.Item_name, line.Quantity))
	}
	return strings.Join(parts, ", ")
}
