package canteen

import (
	"sort"
	"time"

	"go-canteen-ordering/models"
)

type PopularItem struct {
	Name  string `json:"name"`
	Count int    `json:"count"`
}

// SalesData is derived from the visible order set and holds no state of its
// own; it is recomputed whenever orders are loaded or placed.
type SalesData struct {
	Today        float64       `json:"today"`
	Transactions int           `json:"transactions"`
	PopularItems []PopularItem `json:"popular_items"`
}

// ComputeSales tallies today's revenue and transaction count against the
// calendar day of now, and ranks items by cumulative quantity across the full
// order set. Ties keep the order in which a name was first seen.
func ComputeSales(orders []models.Order, now time.Time) SalesData {
	sales := SalesData{}
	for _, order := range orders {
		if sameDay(order.Created_at, now) {
			sales.Today += order.Total
			sales.Transactions++
		}
	}

	index := make(map[string]int)
	for _, order := range orders {
		for _, item := range order.Items {
			if item.Name == nil || item.Quantity == nil {
				continue
			}
			i, seen := index[*item.Name]
			if !seen {
				i = len(sales.PopularItems)
				index[*item.Name] = i
				sales.PopularItems = append(sales.PopularItems, PopularItem{Name: *item.Name})
			}
			sales.PopularItems[i].Count += *item.Quantity
		}
	}
	sort.SliceStable(sales.PopularItems, func(i, j int) bool {
		return sales.PopularItems[i].Count > sales.PopularItems[j].Count
	})
	return sales
}

func sameDay(a, b time.Time) bool {
	ay, am, ad := a.Date()
	by, bm, bd := b.Date()
	return ay == by && am == bm && ad == bd
}
