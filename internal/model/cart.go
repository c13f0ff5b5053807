package model

import (
	"sync"

	"github.com/google/uuid"
)

// CartLine is one handset picked for checkout, tagged with the sale price
// the cashier agreed on.
type CartLine struct {
	ProductID uuid.UUID `json:"product_id"`
	Name      string    `json:"name"`
	IMEI      string    `json:"imei"`
	CostPrice float64   `json:"cost_price"`
	SalePrice float64   `json:"sale_price"`
}

// Profit is the margin this line will realize at checkout.
func (l CartLine) Profit() float64 {
	return l.SalePrice - l.CostPrice
}

// Cart is the transient, in-memory checkout session for one cashier.
// It is never persisted and is discarded after a successful or abandoned
// checkout. The in-flight flag serializes checkout: a second attempt while
// one is running is rejected.
type Cart struct {
	mu       sync.Mutex
	lines    []CartLine
	inFlight bool
}

// Add appends a line. An IMEI may appear at most once per cart.
func (c *Cart) Add(line CartLine) error {
	c.mu.Lock()
	defer c.mu.Unlock()

	for _, existing := range c.lines {
		if existing.IMEI == line.IMEI {
			return NewConflictError("IMEI already in cart")
		}
	}
	c.lines = append(c.lines, line)
	return nil
}

// Remove drops the line with the given IMEI, if present.
func (c *Cart) Remove(imei string) {
	c.mu.Lock()
	defer c.mu.Unlock()

	kept := c.lines[:0]
	for _, line := range c.lines {
		if line.IMEI != imei {
			kept = append(kept, line)
		}
	}
	c.lines = kept
}

// Lines returns a snapshot of the current cart contents.
func (c *Cart) Lines() []CartLine {
	c.mu.Lock()
	defer c.mu.Unlock()

	snapshot := make([]CartLine, len(c.lines))
	copy(snapshot, c.lines)
	return snapshot
}

// Clear empties the cart.
func (c *Cart) Clear() {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.lines = nil
}

// BeginCheckout marks the cart as checking out and returns a snapshot of
// its lines. Returns ErrCheckoutInFlight if a checkout is already running.
func (c *Cart) BeginCheckout() ([]CartLine, error) {
	c.mu.Lock()
	defer c.mu.Unlock()

	if c.inFlight {
		return nil, ErrCheckoutInFlight
	}
	c.inFlight = true

	snapshot := make([]CartLine, len(c.lines))
	copy(snapshot, c.lines)
	return snapshot, nil
}

// EndCheckout releases the in-flight flag.
func (c *Cart) EndCheckout() {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.inFlight = false
}

// TotalSale sums the sale prices of all lines.
func (c *Cart) TotalSale() float64 {
	c.mu.Lock()
	defer c.mu.Unlock()

	var total float64
	for _, line := range c.lines {
		total += line.SalePrice
	}
	return total
}

// TotalProfit sums the margins of all lines.
func (c *Cart) TotalProfit() float64 {
	c.mu.Lock()
	defer c.mu.Unlock()

	var total float64
	for _, line := range c.lines {
		total += line.Profit()
	}
	return total
}
