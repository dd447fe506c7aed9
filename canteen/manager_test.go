package canteen

import (
	"context"
	"errors"
	"sync"
	"testing"
	"time"

	"go-canteen-ordering/models"
	"go-canteen-ordering/notify"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// spyStore records every call and serves canned data, so tests can assert
// that guarded operations never reach the remote store.
type spyStore struct {
	calls []string

	menu   []models.MenuItem
	orders []models.Order

	menuErr   error
	ordersErr error
	writeErr  error
}

func (s *spyStore) MenuItems(ctx context.Context) ([]models.MenuItem, error) {
	s.calls = append(s.calls, "MenuItems")
	return s.menu, s.menuErr
}

func (s *spyStore) InsertMenuItem(ctx context.Context, item models.MenuItem) error {
	s.calls = append(s.calls, "InsertMenuItem")
	if s.writeErr != nil {
		return s.writeErr
	}
	s.menu = append(s.menu, item)
	return nil
}

func (s *spyStore) UpdateMenuItem(ctx context.Context, id string, patch models.MenuItem) error {
	s.calls = append(s.calls, "UpdateMenuItem")
	return s.writeErr
}

func (s *spyStore) DeleteMenuItem(ctx context.Context, id string) error {
	s.calls = append(s.calls, "DeleteMenuItem")
	return s.writeErr
}

func (s *spyStore) Orders(ctx context.Context) ([]models.Order, error) {
	s.calls = append(s.calls, "Orders")
	return s.orders, s.ordersErr
}

func (s *spyStore) OrdersByUser(ctx context.Context, userID string) ([]models.Order, error) {
	s.calls = append(s.calls, "OrdersByUser")
	if s.ordersErr != nil {
		return nil, s.ordersErr
	}
	var out []models.Order
	for _, order := range s.orders {
		if order.User_id != nil && *order.User_id == userID {
			out = append(out, order)
		}
	}
	return out, nil
}

func (s *spyStore) InsertOrder(ctx context.Context, order models.Order) (string, error) {
	s.calls = append(s.calls, "InsertOrder")
	if s.writeErr != nil {
		return "", s.writeErr
	}
	order.Order_id = "order-1"
	order.Created_at = time.Now()
	s.orders = append(s.orders, order)
	return order.Order_id, nil
}

func (s *spyStore) UpdateOrderStatus(ctx context.Context, orderID string, status string) error {
	s.calls = append(s.calls, "UpdateOrderStatus")
	return s.writeErr
}

func (s *spyStore) UpdatePaymentStatus(ctx context.Context, orderID string, status string, method *string) error {
	s.calls = append(s.calls, "UpdatePaymentStatus")
	return s.writeErr
}

func strPtr(s string) *string     { return &s }
func intPtr(i int) *int           { return &i }
func floatPtr(f float64) *float64 { return &f }

func testMenuItem(id, name string, price float64) models.MenuItem {
	return models.MenuItem{Menu_item_id: id, Name: &name, Price: &price}
}

func testOrder(userID string, createdAt time.Time, total float64, items ...models.OrderItem) models.Order {
	return models.Order{
		Order_id:   "o-" + createdAt.Format("150405.000"),
		User_id:    &userID,
		Total:      total,
		Status:     "pending",
		Created_at: createdAt,
		Items:      items,
	}
}

func orderItem(name string, qty int, price float64) models.OrderItem {
	return models.OrderItem{
		Menu_item_id: strPtr(name),
		Name:         strPtr(name),
		Quantity:     intPtr(qty),
		Unit_price:   floatPtr(price),
	}
}

func TestLoadMenuKeepsStaleCacheOnFailure(t *testing.T) {
	s := &spyStore{menu: []models.MenuItem{testMenuItem("1", "Cold Coffee", 80)}}
	m := NewManager(s, notify.Discard{})

	require.NoError(t, m.LoadMenu(context.Background()))
	require.Len(t, m.Menu(), 1)

	s.menuErr = errors.New("network down")
	err := m.LoadMenu(context.Background())

	var ferr *FetchError
	require.ErrorAs(t, err, &ferr)
	assert.Len(t, m.Menu(), 1, "stale menu must survive a failed refresh")
}

func TestLoadOrdersAnonymousMakesNoRemoteCall(t *testing.T) {
	s := &spyStore{}
	m := NewManager(s, notify.Discard{})

	err := m.LoadOrders(context.Background(), "")

	assert.ErrorIs(t, err, ErrUnauthorized)
	assert.Empty(t, s.calls)
	assert.Empty(t, m.Orders())
}

func TestLoadOrdersRecomputesSalesForToday(t *testing.T) {
	now := time.Date(2025, 6, 2, 13, 0, 0, 0, time.UTC)
	s := &spyStore{orders: []models.Order{
		testOrder("u1", now.Add(-time.Hour), 200, orderItem("Cold Coffee", 1, 80)),
		testOrder("u1", now.AddDate(0, 0, -1), 150, orderItem("Chicken Biryani", 1, 150)),
	}}
	m := NewManager(s, notify.Discard{})
	m.now = func() time.Time { return now }

	require.NoError(t, m.LoadOrders(context.Background(), "u1"))

	sales := m.Sales()
	assert.Equal(t, 200.0, sales.Today, "yesterday's order must not count")
	assert.Equal(t, 1, sales.Transactions)
	// Popularity still spans the full order set.
	assert.Len(t, sales.PopularItems, 2)
}

func TestPlaceOrderGuestIsRejectedBeforeAnyCall(t *testing.T) {
	s := &spyStore{}
	m := NewManager(s, notify.Discard{})

	err := m.PlaceOrder(context.Background(), "", models.Order{
		Items: []models.OrderItem{orderItem("Cold Coffee", 1, 80)},
	})

	assert.ErrorIs(t, err, ErrUnauthorized)
	assert.Empty(t, s.calls)
}

func TestPlaceOrderEmptyIsRejectedBeforeAnyCall(t *testing.T) {
	s := &spyStore{}
	m := NewManager(s, notify.Discard{})

	err := m.PlaceOrder(context.Background(), "u1", models.Order{})

	assert.ErrorIs(t, err, ErrEmptyCart)
	assert.Empty(t, s.calls)
}

func TestPlaceOrderReloadsAuthoritatively(t *testing.T) {
	s := &spyStore{}
	m := NewManager(s, notify.Discard{})

	draft := models.Order{
		Total: 94.5,
		Items: []models.OrderItem{orderItem("Cold Coffee", 1, 80)},
	}
	require.NoError(t, m.PlaceOrder(context.Background(), "u1", draft))

	assert.Equal(t, []string{"InsertOrder", "OrdersByUser"}, s.calls)
	orders := m.Orders()
	require.Len(t, orders, 1)
	assert.Equal(t, "order-1", orders[0].Order_id)
	assert.Equal(t, 1, m.Sales().Transactions)
}

func TestPlaceOrderFailureLeavesCacheUnchanged(t *testing.T) {
	s := &spyStore{writeErr: errors.New("insert refused")}
	m := NewManager(s, notify.Discard{})

	err := m.PlaceOrder(context.Background(), "u1", models.Order{
		Items: []models.OrderItem{orderItem("Cold Coffee", 1, 80)},
	})

	var perr *PersistenceError
	require.ErrorAs(t, err, &perr)
	assert.Empty(t, m.Orders())
	assert.Equal(t, []string{"InsertOrder"}, s.calls)
}

func TestMenuWriteThroughFailureKeepsCache(t *testing.T) {
	s := &spyStore{menu: []models.MenuItem{testMenuItem("1", "Cold Coffee", 80)}}
	m := NewManager(s, notify.Discard{})
	require.NoError(t, m.LoadMenu(context.Background()))

	s.writeErr = errors.New("write refused")

	err := m.UpdateMenuItem(context.Background(), "1", models.MenuItem{Name: strPtr("Iced Coffee")})
	var perr *PersistenceError
	require.ErrorAs(t, err, &perr)
	assert.Equal(t, "Cold Coffee", *m.Menu()[0].Name)

	err = m.DeleteMenuItem(context.Background(), "1")
	require.ErrorAs(t, err, &perr)
	assert.Len(t, m.Menu(), 1)
}

func TestMenuWriteThroughSuccessPatchesCache(t *testing.T) {
	s := &spyStore{menu: []models.MenuItem{testMenuItem("1", "Cold Coffee", 80)}}
	m := NewManager(s, notify.Discard{})
	require.NoError(t, m.LoadMenu(context.Background()))

	require.NoError(t, m.UpdateMenuItem(context.Background(), "1", models.MenuItem{Price: floatPtr(90)}))
	menu := m.Menu()
	assert.Equal(t, 90.0, *menu[0].Price)
	assert.Equal(t, "Cold Coffee", *menu[0].Name, "unpatched fields stay put")

	require.NoError(t, m.AddMenuItem(context.Background(), testMenuItem("", "Masala Dosa", 90)))
	assert.Len(t, m.Menu(), 2)

	require.NoError(t, m.DeleteMenuItem(context.Background(), "1"))
	menu = m.Menu()
	require.Len(t, menu, 1)
	assert.Equal(t, "Masala Dosa", *menu[0].Name)
}

func TestUpdateOrderStatusPatchesMatchingOrderOnly(t *testing.T) {
	now := time.Now()
	s := &spyStore{orders: []models.Order{testOrder("u1", now, 100)}}
	m := NewManager(s, notify.Discard{})
	require.NoError(t, m.LoadOrders(context.Background(), "u1"))
	orderID := m.Orders()[0].Order_id

	require.NoError(t, m.UpdateOrderStatus(context.Background(), orderID, "preparing"))
	assert.Equal(t, "preparing", m.Orders()[0].Status)

	// Unknown ids are a local no-op; the remote write already happened.
	require.NoError(t, m.UpdateOrderStatus(context.Background(), "missing", "ready"))
	assert.Equal(t, "preparing", m.Orders()[0].Status)
}

// stallingStore holds the first status write open until released, so a write
// initiated later can try to overtake it.
type stallingStore struct {
	*spyStore
	stall   chan struct{}
	entered chan string

	mu      sync.Mutex
	stalled bool
	applied []string
}

func (s *stallingStore) UpdateOrderStatus(ctx context.Context, orderID string, status string) error {
	s.mu.Lock()
	first := !s.stalled
	s.stalled = true
	s.mu.Unlock()

	s.entered <- status
	if first {
		<-s.stall
	}

	s.mu.Lock()
	s.applied = append(s.applied, status)
	s.mu.Unlock()
	return nil
}

func TestOrderStatusWritesApplyInInitiationOrder(t *testing.T) {
	spy := &spyStore{orders: []models.Order{testOrder("u1", time.Now(), 100)}}
	s := &stallingStore{spyStore: spy, stall: make(chan struct{}), entered: make(chan string, 2)}
	m := NewManager(s, notify.Discard{})
	require.NoError(t, m.LoadOrders(context.Background(), "u1"))
	orderID := m.Orders()[0].Order_id

	done := make(chan error, 2)
	go func() { done <- m.UpdateOrderStatus(context.Background(), orderID, "preparing") }()
	require.Equal(t, "preparing", <-s.entered, "first write must be in flight")

	// Initiated second, while the first response is still outstanding.
	go func() { done <- m.UpdateOrderStatus(context.Background(), orderID, "ready") }()
	close(s.stall)

	require.NoError(t, <-done)
	require.NoError(t, <-done)

	assert.Equal(t, []string{"preparing", "ready"}, s.applied)
	assert.Equal(t, "ready", m.Orders()[0].Status, "later-initiated write must win")
}

func TestUpdatePaymentStatusSetsMethodWhenGiven(t *testing.T) {
	now := time.Now()
	s := &spyStore{orders: []models.Order{testOrder("u1", now, 100)}}
	m := NewManager(s, notify.Discard{})
	require.NoError(t, m.LoadOrders(context.Background(), "u1"))
	orderID := m.Orders()[0].Order_id

	require.NoError(t, m.UpdatePaymentStatus(context.Background(), orderID, "completed", strPtr("upi")))
	order := m.Orders()[0]
	assert.Equal(t, "completed", order.Payment_status)
	require.NotNil(t, order.Payment_method)
	assert.Equal(t, "upi", *order.Payment_method)
}
