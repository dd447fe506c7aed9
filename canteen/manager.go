package canteen

import (
	"context"
	"fmt"
	"sync"
	"time"

	"go-canteen-ordering/models"
	"go-canteen-ordering/notify"
	"go-canteen-ordering/store"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// Manager mirrors the remote menu and the current user's orders, mediates all
// writes to them, and recomputes the sales aggregate after each order load.
//
// Menu writes are write-through: the remote write happens first and the cache
// is only patched on success. Order placement instead reloads the full order
// set afterwards, so the cached totals are exactly what the store persisted.
type Manager struct {
	store    store.Store
	notifier notify.Notifier
	now      func() time.Time

	mu     sync.Mutex
	menu   []models.MenuItem
	orders []models.Order
	sales  SalesData

	writes orderLocks
}

func NewManager(s store.Store, n notify.Notifier) *Manager {
	return &Manager{store: s, notifier: n, now: time.Now}
}

// orderLocks serializes writes per order id, so two rapid updates to the same
// order apply in the order they were initiated rather than the order their
// responses arrive.
type orderLocks struct {
	mu    sync.Mutex
	locks map[string]*sync.Mutex
}

func (l *orderLocks) get(id string) *sync.Mutex {
	l.mu.Lock()
	defer l.mu.Unlock()
	if l.locks == nil {
		l.locks = make(map[string]*sync.Mutex)
	}
	lock, ok := l.locks[id]
	if !ok {
		lock = &sync.Mutex{}
		l.locks[id] = lock
	}
	return lock
}

// Menu returns a copy of the cached menu.
func (m *Manager) Menu() []models.MenuItem {
	m.mu.Lock()
	defer m.mu.Unlock()
	return append([]models.MenuItem(nil), m.menu...)
}

// Orders returns a copy of the cached order list, newest first.
func (m *Manager) Orders() []models.Order {
	m.mu.Lock()
	defer m.mu.Unlock()
	return append([]models.Order(nil), m.orders...)
}

func (m *Manager) Sales() SalesData {
	m.mu.Lock()
	defer m.mu.Unlock()
	sales := m.sales
	sales.PopularItems = append([]PopularItem(nil), m.sales.PopularItems...)
	return sales
}

// LoadMenu refreshes the cached menu. On failure the previous cache is kept,
// stale but available.
func (m *Manager) LoadMenu(ctx context.Context) error {
	items, err := m.store.MenuItems(ctx)
	if err != nil {
		ferr := &FetchError{Op: "load menu", Err: err}
		m.notifier.Error("could not load the menu, showing the last known one")
		return ferr
	}
	m.mu.Lock()
	m.menu = items
	m.mu.Unlock()
	return nil
}

// LoadOrders refreshes the cached orders for userID and recomputes the sales
// aggregate. An empty userID means anonymous: no remote call is made and the
// cache is left untouched.
func (m *Manager) LoadOrders(ctx context.Context, userID string) error {
	if userID == "" {
		return ErrUnauthorized
	}
	orders, err := m.store.OrdersByUser(ctx, userID)
	if err != nil {
		ferr := &FetchError{Op: "load orders", Err: err}
		m.notifier.Error("could not load your orders")
		return ferr
	}
	m.mu.Lock()
	m.orders = orders
	m.sales = ComputeSales(orders, m.now())
	m.mu.Unlock()
	return nil
}

// LoadAllOrders mirrors the complete order set for staff dashboards. Like
// LoadOrders it refuses anonymous callers before touching the store.
func (m *Manager) LoadAllOrders(ctx context.Context, userID string) error {
	if userID == "" {
		return ErrUnauthorized
	}
	orders, err := m.store.Orders(ctx)
	if err != nil {
		ferr := &FetchError{Op: "load all orders", Err: err}
		m.notifier.Error("could not load orders")
		return ferr
	}
	m.mu.Lock()
	m.orders = orders
	m.sales = ComputeSales(orders, m.now())
	m.mu.Unlock()
	return nil
}

func (m *Manager) AddMenuItem(ctx context.Context, draft models.MenuItem) error {
	draft.ID = primitive.NewObjectID()
	draft.Menu_item_id = draft.ID.Hex()
	draft.Created_at, _ = time.Parse(time.RFC3339, m.now().Format(time.RFC3339))
	draft.Updated_at = draft.Created_at

	if err := m.store.InsertMenuItem(ctx, draft); err != nil {
		m.notifier.Error("menu item was not created")
		return &PersistenceError{Op: "add menu item", Err: err}
	}
	m.mu.Lock()
	m.menu = append(m.menu, draft)
	m.mu.Unlock()
	if draft.Name != nil {
		m.notifier.Success(fmt.Sprintf("%s added to menu", *draft.Name))
	}
	return nil
}

func (m *Manager) UpdateMenuItem(ctx context.Context, id string, patch models.MenuItem) error {
	if err := m.store.UpdateMenuItem(ctx, id, patch); err != nil {
		m.notifier.Error("menu item update failed")
		return &PersistenceError{Op: "update menu item", Err: err}
	}
	m.mu.Lock()
	for i := range m.menu {
		if m.menu[i].Menu_item_id == id {
			applyMenuPatch(&m.menu[i], patch)
			break
		}
	}
	m.mu.Unlock()
	m.notifier.Success("Menu item updated")
	return nil
}

func (m *Manager) DeleteMenuItem(ctx context.Context, id string) error {
	if err := m.store.DeleteMenuItem(ctx, id); err != nil {
		m.notifier.Error("menu item delete failed")
		return &PersistenceError{Op: "delete menu item", Err: err}
	}
	m.mu.Lock()
	kept := m.menu[:0]
	for _, item := range m.menu {
		if item.Menu_item_id != id {
			kept = append(kept, item)
		}
	}
	m.menu = kept
	m.mu.Unlock()
	m.notifier.Success("Menu item deleted")
	return nil
}

// PlaceOrder persists a draft order for userID. Both guards run before any
// remote call. On success the order list is reloaded from the store rather
// than appended optimistically.
func (m *Manager) PlaceOrder(ctx context.Context, userID string, draft models.Order) error {
	if userID == "" {
		m.notifier.Error("please sign in to place an order")
		return ErrUnauthorized
	}
	if len(draft.Items) == 0 {
		m.notifier.Error("your cart is empty")
		return ErrEmptyCart
	}
	draft.User_id = &userID
	if draft.Status == "" {
		draft.Status = "pending"
	}
	if draft.Payment_status == "" {
		draft.Payment_status = "pending"
	}
	if _, err := m.store.InsertOrder(ctx, draft); err != nil {
		m.notifier.Error("order could not be placed, please try again")
		return &PersistenceError{Op: "place order", Err: err}
	}
	if err := m.LoadOrders(ctx, userID); err != nil {
		return err
	}
	m.notifier.Success("Order placed successfully")
	return nil
}

func (m *Manager) UpdateOrderStatus(ctx context.Context, id string, status string) error {
	lock := m.writes.get(id)
	lock.Lock()
	defer lock.Unlock()

	if err := m.store.UpdateOrderStatus(ctx, id, status); err != nil {
		m.notifier.Error("order status update failed")
		return &PersistenceError{Op: "update order status", Err: err}
	}
	m.mu.Lock()
	for i := range m.orders {
		if m.orders[i].Order_id == id {
			m.orders[i].Status = status
			break
		}
	}
	m.mu.Unlock()
	m.notifier.Success(fmt.Sprintf("Order status updated to %s", status))
	return nil
}

func (m *Manager) UpdatePaymentStatus(ctx context.Context, id string, status string, method *string) error {
	lock := m.writes.get(id)
	lock.Lock()
	defer lock.Unlock()

	if err := m.store.UpdatePaymentStatus(ctx, id, status, method); err != nil {
		m.notifier.Error("payment status update failed")
		return &PersistenceError{Op: "update payment status", Err: err}
	}
	m.mu.Lock()
	for i := range m.orders {
		if m.orders[i].Order_id == id {
			m.orders[i].Payment_status = status
			if method != nil {
				m.orders[i].Payment_method = method
			}
			break
		}
	}
	m.mu.Unlock()
	m.notifier.Success(fmt.Sprintf("Payment status updated to %s", status))
	return nil
}

func applyMenuPatch(item *models.MenuItem, patch models.MenuItem) {
	if patch.Name != nil {
		item.Name = patch.Name
	}
	if patch.Price != nil {
		item.Price = patch.Price
	}
	if patch.Category != nil {
		item.Category = patch.Category
	}
	if patch.Description != nil {
		item.Description = patch.Description
	}
	if patch.Image != nil {
		item.Image = patch.Image
	}
	if patch.Available != nil {
		item.Available = patch.Available
	}
	if patch.Vegetarian != nil {
		item.Vegetarian = patch.Vegetarian
	}
	item.Updated_at, _ = time.Parse(time.RFC3339, time.Now().Format(time.RFC3339))
}
