// Package cart implements the shopping cart: an ordered set of products with
// quantities, stock-aware mutation, exact totals, and checkout submission.
// Stock checks here are advisory UX only; the backend performs the
// authoritative check at checkout time.
package cart

import (
	"context"
	"errors"
	"fmt"
	"sync"

	"github.com/shopspring/decimal"

	"storefront/internal/domain"
)

var (
	// ErrSignInRequired: adding to the cart needs a logged-in user. The
	// view turns this into a login prompt; cart state is untouched.
	ErrSignInRequired = errors.New("sign in required")
	// ErrStockLimit: the requested quantity exceeds the product's stock as
	// known at add time.
	ErrStockLimit = errors.New("not enough stock")
	// ErrOutOfStock: the product cannot be added at all.
	ErrOutOfStock = errors.New("out of stock")
	// ErrEmptyCart: checkout needs at least one item.
	ErrEmptyCart = errors.New("cart is empty")
	// ErrCheckoutInFlight: a checkout is already being submitted.
	ErrCheckoutInFlight = errors.New("checkout already in progress")
)

type signedInChecker interface {
	SignedIn() bool
}

type orderPlacer interface {
	PlaceOrder(ctx context.Context, in domain.OrderRequest) (*domain.OrderConfirmation, error)
}

// Item is a cart line: the product snapshot taken at add time plus the
// selected quantity.
type Item struct {
	Product  domain.Product `json:"product"`
	Quantity int            `json:"quantity"`
}

// Subtotal is the item's exact price contribution.
func (i Item) Subtotal() decimal.Decimal {
	return i.Product.Price.Mul(decimal.NewFromInt(int64(i.Quantity)))
}

// Engine owns the cart state. Items are ordered by insertion and unique by
// product ID.
type Engine struct {
	session signedInChecker
	orders  orderPlacer

	mu       sync.Mutex
	items    []Item
	inflight bool
	gen      uint64
}

// New builds an Engine. session gates Add; orders submits checkouts.
func New(session signedInChecker, orders orderPlacer) *Engine {
	return &Engine{session: session, orders: orders}
}

// Add puts one unit of product in the cart. A repeated add increments the
// quantity, capped at the product's stock. Out-of-stock products are never
// inserted. Every rejection leaves the cart unchanged.
func (e *Engine) Add(product domain.Product) error {
	if e.session != nil && !e.session.SignedIn() {
		return ErrSignInRequired
	}

	e.mu.Lock()
	defer e.mu.Unlock()

	for idx, item := range e.items {
		if item.Product.ID == product.ID {
			if item.Quantity+1 > item.Product.Stock {
				return fmt.Errorf("%s: %w", item.Product.Name, ErrStockLimit)
			}
			e.items[idx].Quantity++
			e.gen++
			return nil
		}
	}

	if product.Stock <= 0 {
		return fmt.Errorf("%s: %w", product.Name, ErrOutOfStock)
	}
	e.items = append(e.items, Item{Product: product, Quantity: 1})
	e.gen++
	return nil
}

// UpdateQuantity sets an item's quantity directly. A quantity of zero or
// less removes the item. Quantities above the add-time stock are rejected;
// the view additionally disables the increment control at the limit.
func (e *Engine) UpdateQuantity(productID string, quantity int) error {
	if quantity <= 0 {
		e.Remove(productID)
		return nil
	}

	e.mu.Lock()
	defer e.mu.Unlock()

	for idx, item := range e.items {
		if item.Product.ID == productID {
			if quantity > item.Product.Stock {
				return fmt.Errorf("%s: %w", item.Product.Name, ErrStockLimit)
			}
			e.items[idx].Quantity = quantity
			e.gen++
			return nil
		}
	}
	return nil
}

// Remove deletes the item from the cart. Absent items are a no-op.
func (e *Engine) Remove(productID string) {
	e.mu.Lock()
	defer e.mu.Unlock()

	for idx, item := range e.items {
		if item.Product.ID == productID {
			e.items = append(e.items[:idx], e.items[idx+1:]...)
			e.gen++
			return
		}
	}
}

// Items returns a copy of the cart lines in insertion order.
func (e *Engine) Items() []Item {
	e.mu.Lock()
	defer e.mu.Unlock()
	out := make([]Item, len(e.items))
	copy(out, e.items)
	return out
}

// Len returns the number of distinct products in the cart.
func (e *Engine) Len() int {
	e.mu.Lock()
	defer e.mu.Unlock()
	return len(e.items)
}

// Total is the exact sum of price times quantity over all items.
func (e *Engine) Total() decimal.Decimal {
	e.mu.Lock()
	defer e.mu.Unlock()

	total := decimal.Zero
	for _, item := range e.items {
		total = total.Add(item.Subtotal())
	}
	return total
}

// Clear empties the cart. Called on logout and after a completed checkout.
func (e *Engine) Clear() {
	e.mu.Lock()
	defer e.mu.Unlock()
	e.items = nil
	e.gen++
}

// Checkout submits the cart as a single atomic order. On success the cart is
// emptied, unless it changed while the request was in flight (a logout mid
// checkout must not be overwritten by a late response). On failure the cart
// is left exactly as it was, so the user can retry; retries are never
// automatic. Re-entrant calls are rejected while one is pending.
func (e *Engine) Checkout(ctx context.Context) (*domain.OrderConfirmation, error) {
	e.mu.Lock()
	if e.inflight {
		e.mu.Unlock()
		return nil, ErrCheckoutInFlight
	}
	if len(e.items) == 0 {
		e.mu.Unlock()
		return nil, ErrEmptyCart
	}
	req := domain.OrderRequest{Items: make([]domain.OrderItem, 0, len(e.items))}
	for _, item := range e.items {
		req.Items = append(req.Items, domain.OrderItem{ProductID: item.Product.ID, Quantity: item.Quantity})
	}
	gen := e.gen
	e.inflight = true
	e.mu.Unlock()

	conf, err := e.orders.PlaceOrder(ctx, req)

	e.mu.Lock()
	e.inflight = false
	if err == nil && e.gen == gen {
		e.items = nil
		e.gen++
	}
	e.mu.Unlock()

	if err != nil {
		return nil, err
	}
	return conf, nil
}
