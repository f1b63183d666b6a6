// Package store holds the source side of the analyzer fixtures: record types
// that expose their state through methods.
package store

import (
	"time"
)

// OrderStatus is a custom type for type-safe status handling.
type OrderStatus string

const (
	StatusPending   OrderStatus = "PENDING"
	StatusPaid      OrderStatus = "PAID"
	StatusShipped   OrderStatus = "SHIPPED"
	StatusCancelled OrderStatus = "CANCELLED"
)

// OrderItem represents a specific product line within an order.
// It snapshots the price at the time of purchase.
type OrderItem struct {
	ProductID int64
	Name      string
	Quantity  int
	UnitPrice int64
}

// Order represents a transaction made by a customer.
type Order struct {
	id         int64
	customerID int64
	status     OrderStatus
	totalCents int64
	items      []OrderItem
	orderedAt  time.Time
}

// NewOrder creates a pending order.
func NewOrder(id, customerID int64) *Order {
	return &Order{id: id, customerID: customerID, status: StatusPending, orderedAt: time.Now()}
}

func (o *Order) ID() int64 { return o.id }
func (o *Order) SetID(id int64) { o.id = id }
func (o *Order) CustomerID() int64 { return o.customerID }
func (o *Order) Status() OrderStatus { return o.status }
func (o *Order) SetStatus(s OrderStatus) { o.status = s }
func (o *Order) TotalCents() int64 { return o.totalCents }
func (o *Order) Items() []OrderItem { return o.items }
func (o *Order) OrderedAt() time.Time { return o.orderedAt }
func (o *Order) Lines() map[int64]int { return o.lines() }
func (o *Order) Notify(ch chan<- string) { ch <- string(o.status) }
func (o *Order) Matches(f func(int64) bool) bool { return f(o.id) }

// AddItem appends items and returns the new line count.
func (o *Order) AddItem(items ...OrderItem) int {
	o.items = append(o.items, items...)
	o.recalc()

	return len(o.items)
}

// Reprice changes the price of every line.
//
//accessor:volatile
func (o *Order) Reprice(factor float64) {
	for i := range o.items {
		o.items[i].UnitPrice = int64(float64(o.items[i].UnitPrice) * factor)
	}

	o.recalc()
}

func (o *Order) recalc() {
	o.totalCents = 0
	for _, it := range o.items {
		o.totalCents += it.UnitPrice * int64(it.Quantity)
	}
}

func (o *Order) lines() map[int64]int {
	out := make(map[int64]int, len(o.items))
	for _, it := range o.items {
		out[it.ProductID] += it.Quantity
	}

	return out
}

// Audited is implemented by records that keep a change log.
type Audited interface {
	AuditTrail() []string
}

// Timestamps tracks creation and modification times.
type Timestamps struct {
	created time.Time
	updated time.Time
}

func (t Timestamps) CreatedAt() time.Time { return t.created }
func (t Timestamps) UpdatedAt() time.Time { return t.updated }
func (t Timestamps) Revision() string { return t.updated.Format(time.RFC3339) }

// Versioned tracks optimistic-locking versions.
type Versioned struct {
	version int
	updated time.Time
}

func (v Versioned) UpdatedAt() time.Time { return v.updated }
func (v *Versioned) Version() int { return v.version }
func (v Versioned) Revision() int { return v.version }

// Customer represents the user placing orders. UpdatedAt and Revision are
// promoted from both Timestamps and Versioned; the two Revision methods
// disagree on their result.
type Customer struct {
	Timestamps
	Versioned
	Audited

	id    int64
	email string
}

func (c *Customer) ID() int64 { return c.id }
func (c *Customer) Email() string { return c.email }
func (c *Customer) SetEmail(e string) { c.email = e }
