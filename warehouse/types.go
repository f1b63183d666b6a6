// Package warehouse holds the destination side of the analyzer fixtures:
// the shapes the warehouse expects, plus delegators that sit between them and
// the store records.
package warehouse

import (
	"strings"
	"time"

	"accessor-generator/store"
)

// Order is the warehouse view of a store order.
type Order interface {
	ID() int64
	SetID(id int64)
	Status() store.OrderStatus
	SetStatus(s store.OrderStatus)
	TotalCents() int64
	Items() []store.OrderItem
	AddItem(items ...store.OrderItem) int
	Reprice(factor float64)
	// Total has no store counterpart.
	Total() int64
}

// Customer is the warehouse view of a store customer.
type Customer interface {
	ID() int64
	Email() string
	SetEmail(e string)
	UpdatedAt() time.Time
	AuditTrail() []string
}

// Revisioned exposes the revision of a record.
type Revisioned interface {
	ID() int64
	Revision() string
}

// Shipment is a concrete destination. Methods without a source counterpart
// keep their own behaviour.
type Shipment struct {
	carrier string
}

func (s *Shipment) ID() int64 { return 0 }
func (s *Shipment) Status() store.OrderStatus { return store.StatusPending }
func (s *Shipment) Carrier() string { return s.carrier }

// OrderAudit records status changes made through the warehouse.
//
//accessor:delegator source=store.Order destination=warehouse.Order constructor=NewOrderAudit initialize=Open terminate=Close key=audited-order
type OrderAudit struct {
	order *store.Order
	log   []string
	open  bool
}

// NewOrderAudit creates the delegator of order.
func NewOrderAudit(order *store.Order) *OrderAudit {
	return &OrderAudit{order: order}
}

// SetStatus records the change before applying it.
func (a *OrderAudit) SetStatus(s store.OrderStatus) {
	a.log = append(a.log, string(a.order.Status())+"->"+string(s))
	a.order.SetStatus(s)
}

// Status reports the status in lower case.
func (a *OrderAudit) Status() store.OrderStatus {
	return store.OrderStatus(strings.ToLower(string(a.order.Status())))
}

func (a *OrderAudit) Open() { a.open = true }
func (a *OrderAudit) Close() { a.open = false }
func (a *OrderAudit) IsOpen() bool { return a.open }
func (a *OrderAudit) Log() []string { return a.log }

// CustomerMirror answers every warehouse customer call without a source
// fallback.
//
//accessor:delegator source=store.Customer destination=warehouse.Customer transparent priority=10
type CustomerMirror struct {
	customer *store.Customer
}

// NewCustomerMirror creates the delegator of customer.
func NewCustomerMirror(customer *store.Customer) *CustomerMirror {
	return &CustomerMirror{customer: customer}
}

func (m *CustomerMirror) ID() int64 { return m.customer.ID() }
func (m *CustomerMirror) Email() string { return m.customer.Email() }
func (m *CustomerMirror) SetEmail(e string) { m.customer.SetEmail(e) }
func (m *CustomerMirror) UpdatedAt() time.Time { return m.customer.Timestamps.UpdatedAt() }
