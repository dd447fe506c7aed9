package cart_test

import (
	"testing"

	"go-canteen-ordering/cart"
	"go-canteen-ordering/models"
	"go-canteen-ordering/notify"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func menuItem(id, name string, price float64) models.MenuItem {
	item := models.MenuItem{Menu_item_id: id}
	item.Name = &name
	item.Price = &price
	return item
}

func TestAddIncrementsExistingLine(t *testing.T) {
	c := cart.New(notify.Discard{})
	sandwich := menuItem("1", "Vegetable Sandwich", 60)

	c.Add(sandwich)
	c.Add(sandwich)

	lines := c.Lines()
	require.Len(t, lines, 1)
	assert.Equal(t, 2, lines[0].Quantity)
	assert.Equal(t, 120.0, c.Total())
}

func TestAddAppendsNewLines(t *testing.T) {
	c := cart.New(notify.Discard{})
	c.Add(menuItem("1", "Vegetable Sandwich", 60))
	c.Add(menuItem("2", "Cold Coffee", 80))

	lines := c.Lines()
	require.Len(t, lines, 2)
	assert.Equal(t, "1", lines[0].Item.Menu_item_id)
	assert.Equal(t, "2", lines[1].Item.Menu_item_id)
}

func TestSetQuantityReplacesAndRemoves(t *testing.T) {
	c := cart.New(notify.Discard{})
	c.Add(menuItem("1", "Vegetable Sandwich", 60))
	c.Add(menuItem("2", "Cold Coffee", 80))

	c.SetQuantity("1", 3)
	assert.Equal(t, 3*60.0+80.0, c.Total())

	// Repeating the same call changes nothing.
	c.SetQuantity("1", 3)
	assert.Equal(t, 3*60.0+80.0, c.Total())

	c.SetQuantity("2", 0)
	lines := c.Lines()
	require.Len(t, lines, 1)
	assert.Equal(t, "1", lines[0].Item.Menu_item_id)

	c.SetQuantity("1", -2)
	assert.Equal(t, 0, c.Len())
}

func TestNoLineEverHoldsNonPositiveQuantity(t *testing.T) {
	c := cart.New(notify.Discard{})
	items := []models.MenuItem{
		menuItem("1", "Vegetable Sandwich", 60),
		menuItem("2", "Cold Coffee", 80),
		menuItem("3", "Masala Dosa", 90),
	}
	ops := []func(){
		func() { c.Add(items[0]) },
		func() { c.Add(items[1]) },
		func() { c.SetQuantity("1", 5) },
		func() { c.Add(items[2]) },
		func() { c.SetQuantity("2", 0) },
		func() { c.Add(items[1]) },
		func() { c.SetQuantity("3", -1) },
		func() { c.SetQuantity("1", 2) },
	}
	for _, op := range ops {
		op()
		var want float64
		for _, line := range c.Lines() {
			require.GreaterOrEqual(t, line.Quantity, 1)
			want += *line.Item.Price * float64(line.Quantity)
		}
		assert.Equal(t, want, c.Total())
	}
}

func TestClearEmptiesCart(t *testing.T) {
	c := cart.New(notify.Discard{})
	c.Add(menuItem("1", "Vegetable Sandwich", 60))
	c.Clear()
	assert.Equal(t, 0, c.Len())
	assert.Equal(t, 0.0, c.Total())
}

func TestTotalOfUnknownItemUpdateIsUnchanged(t *testing.T) {
	c := cart.New(notify.Discard{})
	c.Add(menuItem("1", "Vegetable Sandwich", 60))
	c.SetQuantity("nope", 4)
	assert.Equal(t, 60.0, c.Total())
}
