package main

import (
	"context"
	"flag"
	"fmt"
	"log"
	"os"
	"strings"
	"time"

	"go-canteen-ordering/canteen"
	"go-canteen-ordering/cart"
	"go-canteen-ordering/checkout"
	"go-canteen-ordering/database"
	"go-canteen-ordering/notify"
	"go-canteen-ordering/session"
	"go-canteen-ordering/store"
)

// canteen-client is a terminal front end over the same data store the server
// uses: it signs in, shows the menu, and can place an order end to end.
func main() {
	email := flag.String("email", "customer@canteen.com", "account email")
	password := flag.String("password", "customer123", "account password")
	items := flag.String("items", "", "comma separated menu item ids to order")
	method := flag.String("method", "cash", "payment method: cash, card or upi")
	orderType := flag.String("type", "takeaway", "order type: dine-in, takeaway or scheduled")
	flag.Parse()

	sessionFile := os.Getenv("CANTEEN_SESSION_FILE")
	if sessionFile == "" {
		sessionFile = ".canteen_session.json"
	}
	kv, err := session.NewFileStore(sessionFile)
	if err != nil {
		log.Fatal(err)
	}

	notifier := notify.LogNotifier{}
	remote := store.NewMongoStore(database.Client)

	// The remote store is authoritative; the fixed list keeps the demo
	// accounts working when it has not been seeded.
	sess := session.NewManager(kv, notifier,
		session.NewRemoteBackend(remote),
		session.NewFixedListBackend(session.DemoIdentities()))

	ctx, cancel := context.WithTimeout(context.Background(), 100*time.Second)
	defer cancel()

	if sess.State() != session.StateAuthenticated {
		destination, err := sess.Login(ctx, *email, *password)
		if err != nil {
			log.Fatal(err)
		}
		log.Printf("signed in, landing at %s", destination)
	}
	identity := sess.Identity()
	if identity == nil {
		log.Fatal("no active session")
	}
	log.Printf("session: %s (%s)", identity.Name, identity.Role)

	orders := canteen.NewManager(remote, notifier)
	if err := orders.LoadMenu(ctx); err != nil {
		log.Fatal(err)
	}
	menu := orders.Menu()
	fmt.Println("Menu:")
	for _, item := range menu {
		if item.Name == nil || item.Price == nil {
			continue
		}
		fmt.Printf("  %-26s ₹%.2f  [%s]\n", *item.Name, *item.Price, item.Menu_item_id)
	}

	basket := cart.New(notifier)
	flow := checkout.NewFlow(basket, orders)

	if *items != "" {
		for _, id := range strings.Split(*items, ",") {
			id = strings.TrimSpace(id)
			for _, entry := range menu {
				if entry.Menu_item_id == id {
					basket.Add(entry)
				}
			}
		}
		flow.ViewCart()
		fmt.Printf("Cart subtotal ₹%.2f, billed total ₹%.2f\n", basket.Total(), checkout.Bill(basket.Total()))
		if err := flow.ProceedToPayment(); err != nil {
			log.Fatal(err)
		}
		if err := flow.Pay(ctx, sess.UserID(), *method, *orderType, identity.Name); err != nil {
			log.Fatal(err)
		}
	}

	if err := orders.LoadOrders(ctx, sess.UserID()); err != nil {
		log.Fatal(err)
	}
	fmt.Println("Your orders:")
	for _, order := range orders.Orders() {
		fmt.Printf("  %s  %-9s  ₹%.2f  payment %s\n", order.Order_id, order.Status, order.Total, order.Payment_status)
	}
	sales := orders.Sales()
	fmt.Printf("Today: ₹%.2f over %d transactions\n", sales.Today, sales.Transactions)
}
