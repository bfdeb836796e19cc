package pizza

import (
	"errors"
	"fmt"
	"sync"
	"time"

	"github.com/shopspring/decimal"
)

// StatusPending is the only order status; orders never transition.
const StatusPending = "pending"

// Order defaults.
const (
	DefaultSize         = "large"
	DefaultQuantity     = 1
	DefaultRestaurant   = "dominos"
	DefaultCustomerName = "Customer"
)

// ErrOrderNotFound is returned for unknown order ids.
var ErrOrderNotFound = errors.New("order not found")

// OrderRequest carries the inputs of a new order.
type OrderRequest struct {
	PizzaType           string
	Size                string
	Quantity            int
	Restaurant          string
	CustomerName        string
	CustomerPhone       string
	DeliveryAddress     string
	SpecialInstructions string
}

// Quote is the price breakdown of an order.
type Quote struct {
	UnitPrice   decimal.Decimal
	Subtotal    decimal.Decimal
	DeliveryFee decimal.Decimal
	Total       decimal.Decimal
}

// Order is a placed order.
type Order struct {
	ID                  int
	Pizza               Pizza
	Size                string
	Quantity            int
	Restaurant          Restaurant
	CustomerName        string
	CustomerPhone       string
	DeliveryAddress     string
	SpecialInstructions string
	Quote               Quote
	Status              string
	OrderedAt           time.Time
}

// Price computes base * size multiplier * quantity + delivery fee, rounded to
// cents.
func (c *Catalogue) Price(pizzaType, size string, quantity int, restaurant string) (Quote, error) {
	p, err := c.Pizza(pizzaType)
	if err != nil {
		return Quote{}, err
	}
	r, err := c.Restaurant(restaurant)
	if err != nil {
		return Quote{}, err
	}
	unit := p.Price.Mul(c.SizeMultiplier(size))
	subtotal := unit.Mul(decimal.NewFromInt(int64(quantity)))
	return Quote{
		UnitPrice:   unit.Round(2),
		Subtotal:    subtotal.Round(2),
		DeliveryFee: r.DeliveryFee,
		Total:       subtotal.Add(r.DeliveryFee).Round(2),
	}, nil
}

// OrderBook stores placed orders in memory with sequential 1-based ids.
type OrderBook struct {
	mu        sync.Mutex
	catalogue *Catalogue
	orders    []Order
	nextID    int
	now       func() time.Time
}

// NewOrderBook creates an empty order book over catalogue.
func NewOrderBook(catalogue *Catalogue) *OrderBook {
	return &OrderBook{catalogue: catalogue, nextID: 1, now: time.Now}
}

// Catalogue returns the tables orders are priced from.
func (b *OrderBook) Catalogue() *Catalogue {
	return b.catalogue
}

// Place validates and prices req, then records the order as pending.
func (b *OrderBook) Place(req OrderRequest) (*Order, error) {
	if req.Size == "" {
		req.Size = DefaultSize
	}
	if req.Quantity <= 0 {
		req.Quantity = DefaultQuantity
	}
	if req.Restaurant == "" {
		req.Restaurant = DefaultRestaurant
	}
	if req.CustomerName == "" {
		req.CustomerName = DefaultCustomerName
	}

	quote, err := b.catalogue.Price(req.PizzaType, req.Size, req.Quantity, req.Restaurant)
	if err != nil {
		return nil, err
	}
	p, _ := b.catalogue.Pizza(req.PizzaType)
	r, _ := b.catalogue.Restaurant(req.Restaurant)

	b.mu.Lock()
	defer b.mu.Unlock()
	order := Order{
		ID:                  b.nextID,
		Pizza:               p,
		Size:                req.Size,
		Quantity:            req.Quantity,
		Restaurant:          r,
		CustomerName:        req.CustomerName,
		CustomerPhone:       req.CustomerPhone,
		DeliveryAddress:     req.DeliveryAddress,
		SpecialInstructions: req.SpecialInstructions,
		Quote:               quote,
		Status:              StatusPending,
		OrderedAt:           b.now(),
	}
	b.nextID++
	b.orders = append(b.orders, order)
	return &order, nil
}

// Get returns the order with id.
func (b *OrderBook) Get(id int) (*Order, error) {
	b.mu.Lock()
	defer b.mu.Unlock()
	for _, o := range b.orders {
		if o.ID == id {
			return &o, nil
		}
	}
	return nil, fmt.Errorf("%w: #%d", ErrOrderNotFound, id)
}

// List returns all orders in placement order.
func (b *OrderBook) List() []Order {
	b.mu.Lock()
	defer b.mu.Unlock()
	return append([]Order(nil), b.orders...)
}

// Cancel removes an order. Unknown ids leave the book unchanged.
func (b *OrderBook) Cancel(id int) (*Order, error) {
	b.mu.Lock()
	defer b.mu.Unlock()
	for i, o := range b.orders {
		if o.ID == id {
			b.orders = append(b.orders[:i], b.orders[i+1:]...)
			return &o, nil
		}
	}
	return nil, fmt.Errorf("%w: #%d", ErrOrderNotFound, id)
}
