// Package domain defines the persistent entities, status enumerations, and
// error taxonomy shared by the shopcore administration core.
package domain

import "time"

// EntityType identifies the kind of record stored in a persistence bucket.
type EntityType string

// Supported entity type identifiers used in persistence buckets and errors.
const (
	// EntityOrder identifies a storefront order record.
	EntityOrder EntityType = "order"
	// EntityReturnRequest identifies a customer return request record.
	EntityReturnRequest EntityType = "return_request"
	// EntityCustomer identifies a customer account record.
	EntityCustomer EntityType = "customer"
	// EntitySettings identifies the store configuration document.
	EntitySettings EntityType = "settings"
)

// OrderStatus represents the fulfilment state of an order.
type OrderStatus string

// Canonical order statuses. Delivered and cancelled are terminal; cancellation
// is a status, not a deletion.
const (
	OrderPending    OrderStatus = "pending"
	OrderProcessing OrderStatus = "processing"
	OrderShipped    OrderStatus = "shipped"
	OrderDelivered  OrderStatus = "delivered"
	OrderCancelled  OrderStatus = "cancelled"
)

// Valid reports whether s is a recognised order status.
func (s OrderStatus) Valid() bool {
	switch s {
	case OrderPending, OrderProcessing, OrderShipped, OrderDelivered, OrderCancelled:
		return true
	}
	return false
}

// Terminal reports whether no further progression is possible from s.
func (s OrderStatus) Terminal() bool {
	return s == OrderDelivered || s == OrderCancelled
}

// PaymentStatus represents the settlement state of an order payment.
type PaymentStatus string

const (
	PaymentPending  PaymentStatus = "pending"
	PaymentPaid     PaymentStatus = "paid"
	PaymentRefunded PaymentStatus = "refunded"
	PaymentFailed   PaymentStatus = "failed"
)

// ReturnStatus represents the review state of a return request.
type ReturnStatus string

// Canonical return request statuses. Completed and rejected are terminal.
const (
	ReturnPending    ReturnStatus = "pending"
	ReturnApproved   ReturnStatus = "approved"
	ReturnProcessing ReturnStatus = "processing"
	ReturnCompleted  ReturnStatus = "completed"
	ReturnRejected   ReturnStatus = "rejected"
)

// Valid reports whether s is a recognised return status.
func (s ReturnStatus) Valid() bool {
	switch s {
	case ReturnPending, ReturnApproved, ReturnProcessing, ReturnCompleted, ReturnRejected:
		return true
	}
	return false
}

// Terminal reports whether s ends the return workflow.
func (s ReturnStatus) Terminal() bool {
	return s == ReturnCompleted || s == ReturnRejected
}

// RefundStatus represents the settlement state of a return refund.
type RefundStatus string

const (
	RefundPending   RefundStatus = "pending"
	RefundProcessed RefundStatus = "processed"
	RefundFailed    RefundStatus = "failed"
)

// CustomerStatus represents the account state of a customer.
type CustomerStatus string

const (
	CustomerActive  CustomerStatus = "active"
	CustomerBlocked CustomerStatus = "blocked"
)

// LineItem is a single ordered product position.
type LineItem struct {
	ProductID string  `json:"product_id"`
	Name      string  `json:"name"`
	Quantity  int     `json:"quantity"`
	UnitPrice float64 `json:"unit_price"`
}

// Order is a storefront order as displayed and mutated by the admin console.
// Orders are never hard-deleted; cancellation is a terminal status.
type Order struct {
	ID                string        `json:"id"`
	CustomerName      string        `json:"customer_name"`
	CustomerEmail     string        `json:"customer_email"`
	CreatedAt         time.Time     `json:"created_at"`
	Items             OrderItems    `json:"items"`
	Subtotal          float64       `json:"subtotal"`
	Tax               float64       `json:"tax"`
	Shipping          float64       `json:"shipping"`
	Discount          float64       `json:"discount"`
	Total             float64       `json:"total"`
	Status            OrderStatus   `json:"status"`
	PaymentMethod     string        `json:"payment_method"`
	PaymentStatus     PaymentStatus `json:"payment_status"`
	TrackingNumber    string        `json:"tracking_number,omitempty"`
	EstimatedDelivery *time.Time    `json:"estimated_delivery,omitempty"`
	DeliveredDate     *time.Time    `json:"delivered_date,omitempty"`
	CancelledDate     *time.Time    `json:"cancelled_date,omitempty"`
	UpdatedAt         time.Time     `json:"updated_at"`
}

// ReturnItem is a returned product position with the customer's stated reason.
type ReturnItem struct {
	ProductID string `json:"product_id"`
	Name      string `json:"name"`
	Quantity  int    `json:"quantity"`
	Reason    string `json:"reason"`
}

// ReturnRequest tracks a customer return and its coupled refund settlement.
//
// Coupling invariants maintained by the lifecycle engine:
//
//	RefundStatus == processed  ⇔ Status == completed
//	Status == approved         ⇒ RefundStatus == pending
//	Status ∈ {pending,rejected} ⇒ RefundStatus == pending
type ReturnRequest struct {
	ID            string       `json:"id"`
	OrderID       string       `json:"order_id"`
	CustomerName  string       `json:"customer_name"`
	CustomerEmail string       `json:"customer_email"`
	RequestedAt   time.Time    `json:"requested_at"`
	Items         []ReturnItem `json:"items"`
	RefundAmount  float64      `json:"refund_amount"`
	Status        ReturnStatus `json:"status"`
	RefundStatus  RefundStatus `json:"refund_status"`
	UpdatedAt     time.Time    `json:"updated_at"`
}

// ActivityEntry is one element of a customer's append-only activity history.
type ActivityEntry struct {
	Type        string    `json:"type"`
	Description string    `json:"description"`
	Timestamp   time.Time `json:"timestamp"`
}

// Customer is a storefront customer account. OrdersCount and TotalSpent are
// derived counters: they can drift in the stored record and must be recomputed
// from order history before being trusted.
type Customer struct {
	ID          string          `json:"id"`
	Name        string          `json:"name"`
	Email       string          `json:"email"`
	Phone       string          `json:"phone"`
	Status      CustomerStatus  `json:"status"`
	OrdersCount int             `json:"orders_count"`
	TotalSpent  float64         `json:"total_spent"`
	Activity    []ActivityEntry `json:"activity,omitempty"`
	CreatedAt   time.Time       `json:"created_at"`
	UpdatedAt   time.Time       `json:"updated_at"`
}

// SettingsSection is one named configuration section. Fields are free-form;
// updates are shallow merges, never full replacement.
type SettingsSection map[string]any

// Settings is the nested store configuration document keyed by section name.
type Settings map[string]SettingsSection

// Clone returns a deep copy of the settings document one section level down.
// Section values themselves are treated as opaque.
func (s Settings) Clone() Settings {
	out := make(Settings, len(s))
	for name, section := range s {
		cp := make(SettingsSection, len(section))
		for k, v := range section {
			cp[k] = v
		}
		out[name] = cp
	}
	return out
}

// Clock supplies the current time. Production code uses UTCNow; tests inject
// fixed instants.
type Clock func() time.Time

// UTCNow is the default Clock.
func UTCNow() time.Time { return time.Now().UTC() }

// IDGenerator supplies identifiers for created entities.
type IDGenerator func() string
