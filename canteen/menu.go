package canteen

import (
	"strings"

	"go-canteen-ordering/models"
)

// MenuFilter narrows a menu listing for the customer view.
type MenuFilter struct {
	Query         string
	Category      string
	AvailableOnly bool
}

// FilterMenu returns the items matching the filter, preserving menu order.
// The query matches name or description, case-insensitive; an empty category
// (or "all") matches every category.
func FilterMenu(menu []models.MenuItem, f MenuFilter) []models.MenuItem {
	query := strings.ToLower(f.Query)
	var out []models.MenuItem
	for _, item := range menu {
		if f.AvailableOnly && (item.Available == nil || !*item.Available) {
			continue
		}
		if f.Category != "" && f.Category != "all" {
			if item.Category == nil || *item.Category != f.Category {
				continue
			}
		}
		if query != "" && !matchesQuery(item, query) {
			continue
		}
		out = append(out, item)
	}
	return out
}

func matchesQuery(item models.MenuItem, query string) bool {
	if item.Name != nil && strings.Contains(strings.ToLower(*item.Name), query) {
		return true
	}
	if item.Description != nil && strings.Contains(strings.ToLower(*item.Description), query) {
		return true
	}
	return false
}

// Categories lists the distinct categories in menu order, prefixed with "all".
func Categories(menu []models.MenuItem) []string {
	categories := []string{"all"}
	seen := make(map[string]bool)
	for _, item := range menu {
		if item.Category == nil || seen[*item.Category] {
			continue
		}
		seen[*item.Category] = true
		categories = append(categories, *item.Category)
	}
	return categories
}
