package cart

import (
	"fmt"
	"sync"

	"go-canteen-ordering/models"
	"go-canteen-ordering/notify"
)

// Line pairs a menu item with a positive quantity. Lines live only inside a
// Cart; a quantity driven to zero removes the line.
type Line struct {
	Item     models.MenuItem
	Quantity int
}

// Cart is the purely local, per-session item list. Every mutation replaces
// the whole line slice under the lock, so a reader never observes a partial
// update even under rapid repeated clicks.
type Cart struct {
	mu       sync.Mutex
	lines    []Line
	notifier notify.Notifier
}

func New(n notify.Notifier) *Cart {
	return &Cart{notifier: n}
}

// Add puts one more of item in the cart, inserting a new line at the end if
// the item is not present yet.
func (c *Cart) Add(item models.MenuItem) {
	c.mu.Lock()
	next := make([]Line, 0, len(c.lines)+1)
	found := false
	for _, line := range c.lines {
		if line.Item.Menu_item_id == item.Menu_item_id {
			line.Quantity++
			found = true
		}
		next = append(next, line)
	}
	if !found {
		next = append(next, Line{Item: item, Quantity: 1})
	}
	c.lines = next
	c.mu.Unlock()

	if item.Name != nil {
		c.notifier.Success(fmt.Sprintf("Added %s to cart", *item.Name))
	}
}

// SetQuantity replaces the quantity of the line for itemID. A quantity of
// zero or less removes the line. Unknown ids are ignored.
func (c *Cart) SetQuantity(itemID string, quantity int) {
	c.mu.Lock()
	defer c.mu.Unlock()
	next := make([]Line, 0, len(c.lines))
	for _, line := range c.lines {
		if line.Item.Menu_item_id == itemID {
			if quantity <= 0 {
				continue
			}
			line.Quantity = quantity
		}
		next = append(next, line)
	}
	c.lines = next
}

// Lines returns a copy of the current lines.
func (c *Cart) Lines() []Line {
	c.mu.Lock()
	defer c.mu.Unlock()
	return append([]Line(nil), c.lines...)
}

// Total recomputes the cart subtotal on every call.
func (c *Cart) Total() float64 {
	c.mu.Lock()
	defer c.mu.Unlock()
	var total float64
	for _, line := range c.lines {
		if line.Item.Price != nil {
			total += *line.Item.Price * float64(line.Quantity)
		}
	}
	return total
}

func (c *Cart) Len() int {
	c.mu.Lock()
	defer c.mu.Unlock()
	return len(c.lines)
}

// Clear empties the cart, called after a successful checkout.
func (c *Cart) Clear() {
	c.mu.Lock()
	c.lines = nil
	c.mu.Unlock()
}
