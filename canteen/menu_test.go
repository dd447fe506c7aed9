package canteen

import (
	"testing"

	"go-canteen-ordering/models"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func filterFixture() []models.MenuItem {
	available := true
	unavailable := false
	items := []models.MenuItem{
		testMenuItem("1", "Vegetable Sandwich", 60),
		testMenuItem("2", "Chicken Burger", 120),
		testMenuItem("3", "Cold Coffee", 80),
	}
	categories := []string{"Sandwiches", "Burgers", "Beverages"}
	descriptions := []string{
		"Fresh vegetables with cheese in toasted bread",
		"Grilled chicken patty with lettuce and mayo",
		"Chilled coffee with ice cream",
	}
	for i := range items {
		items[i].Category = &categories[i]
		items[i].Description = &descriptions[i]
		items[i].Available = &available
	}
	items[1].Available = &unavailable
	return items
}

func TestFilterMenuByQueryMatchesNameAndDescription(t *testing.T) {
	items := filterFixture()

	byName := FilterMenu(items, MenuFilter{Query: "coffee"})
	require.Len(t, byName, 1)
	assert.Equal(t, "Cold Coffee", *byName[0].Name)

	byDescription := FilterMenu(items, MenuFilter{Query: "cheese"})
	require.Len(t, byDescription, 1)
	assert.Equal(t, "Vegetable Sandwich", *byDescription[0].Name)
}

func TestFilterMenuByCategory(t *testing.T) {
	items := filterFixture()

	assert.Len(t, FilterMenu(items, MenuFilter{Category: "Burgers"}), 1)
	assert.Len(t, FilterMenu(items, MenuFilter{Category: "all"}), 3)
	assert.Empty(t, FilterMenu(items, MenuFilter{Category: "Desserts"}))
}

func TestFilterMenuAvailableOnly(t *testing.T) {
	items := filterFixture()

	filtered := FilterMenu(items, MenuFilter{AvailableOnly: true})
	require.Len(t, filtered, 2)
	for _, item := range filtered {
		assert.True(t, *item.Available)
	}
}

func TestCategoriesKeepMenuOrder(t *testing.T) {
	items := filterFixture()
	items = append(items, items[0]) // duplicate category

	assert.Equal(t, []string{"all", "Sandwiches", "Burgers", "Beverages"}, Categories(items))
}
