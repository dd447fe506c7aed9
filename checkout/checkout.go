package checkout

import (
	"context"
	"errors"
	"math"
	"sync"

	"go-canteen-ordering/canteen"
	"go-canteen-ordering/cart"
	"go-canteen-ordering/models"
)

// Billing constants applied on top of the cart subtotal.
const (
	TaxRate       = 0.05
	PackingCharge = 10.0
)

type Stage string

const (
	StageMenu     Stage = "menu"
	StageCart     Stage = "cart"
	StagePayment  Stage = "payment"
	StageTracking Stage = "tracking"
	StageHistory  Stage = "history"
)

// ErrInvalidStage is returned when an operation is invoked from a stage it
// cannot legally follow.
var ErrInvalidStage = errors.New("not available at this stage")

// Flow drives one session's cart from browsing through payment into order
// tracking. The stage only advances past payment after the store acknowledges
// the order; on failure the stage and the cart are left as they were.
type Flow struct {
	mu     sync.Mutex
	stage  Stage
	cart   *cart.Cart
	orders *canteen.Manager
}

func NewFlow(c *cart.Cart, orders *canteen.Manager) *Flow {
	return &Flow{stage: StageMenu, cart: c, orders: orders}
}

func (f *Flow) Stage() Stage {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.stage
}

func (f *Flow) ViewCart() {
	f.mu.Lock()
	f.stage = StageCart
	f.mu.Unlock()
}

// ProceedToPayment moves cart -> payment, refusing an empty cart.
func (f *Flow) ProceedToPayment() error {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.stage != StageCart {
		return ErrInvalidStage
	}
	if f.cart.Len() == 0 {
		return canteen.ErrEmptyCart
	}
	f.stage = StagePayment
	return nil
}

// Pay builds an order draft from the current cart, submits it, and on success
// clears the cart and advances to tracking.
func (f *Flow) Pay(ctx context.Context, userID string, method string, orderType string, customerName string) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.stage != StagePayment {
		return ErrInvalidStage
	}

	draft := models.Order{
		Status:         "pending",
		Total:          Bill(f.cart.Total()),
		Order_type:     orderType,
		Payment_status: "pending",
		Payment_method: &method,
	}
	if customerName != "" {
		draft.Customer_name = &customerName
	}
	for _, line := range f.cart.Lines() {
		quantity := line.Quantity
		draft.Items = append(draft.Items, models.OrderItem{
			Menu_item_id: &line.Item.Menu_item_id,
			Name:         line.Item.Name,
			Quantity:     &quantity,
			Unit_price:   line.Item.Price,
		})
	}

	if err := f.orders.PlaceOrder(ctx, userID, draft); err != nil {
		return err
	}
	f.cart.Clear()
	f.stage = StageTracking
	return nil
}

// ContinueBrowsing returns to the menu after tracking.
func (f *Flow) ContinueBrowsing() {
	f.mu.Lock()
	f.stage = StageMenu
	f.mu.Unlock()
}

// ViewHistory is reachable from any stage but only for a signed-in user.
func (f *Flow) ViewHistory(userID string) error {
	if userID == "" {
		return canteen.ErrUnauthorized
	}
	f.mu.Lock()
	f.stage = StageHistory
	f.mu.Unlock()
	return nil
}

// Bill is the billed order total: subtotal plus tax plus packing charge,
// rounded to two decimals.
func Bill(subtotal float64) float64 {
	return toFixed(subtotal+toFixed(subtotal*TaxRate, 2)+PackingCharge, 2)
}

func toFixed(num float64, precision int) float64 {
	output := math.Pow(10, float64(precision))
	return math.Round(num*output) / output
}
