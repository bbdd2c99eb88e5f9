package repo

import (
	"shopcore/internal/kv"
	"shopcore/internal/seed"
	"shopcore/pkg/domain"
)

// BucketOrders is the persistence key holding the order collection.
const BucketOrders = "orders"

// Orders is the order repository.
type Orders struct {
	*Collection[domain.Order]
}

// NewOrders constructs the order repository over store.
func NewOrders(store kv.Store, opts ...Option) *Orders {
	o := buildOptions(opts)
	c := &Collection[domain.Order]{
		store:  store,
		bucket: BucketOrders,
		entity: domain.EntityOrder,
		seed:   seed.Orders,
		id:     func(order domain.Order) string { return order.ID },
		setID:  func(order *domain.Order, id string) { order.ID = id },
		clock:  o.clock,
		newID:  o.newID,
	}
	c.normalize = func(order *domain.Order) {
		if order.Status == "" {
			order.Status = domain.OrderPending
		}
		if order.PaymentStatus == "" {
			order.PaymentStatus = domain.PaymentPending
		}
		if order.CreatedAt.IsZero() {
			order.CreatedAt = c.clock()
		}
		if order.UpdatedAt.IsZero() {
			order.UpdatedAt = order.CreatedAt
		}
	}
	c.validate = validateOrder
	return &Orders{Collection: c}
}

func validateOrder(order domain.Order) error {
	if !order.Status.Valid() {
		return domain.ValidationError{Entity: domain.EntityOrder, Field: "status", Reason: string(order.Status)}
	}
	if lines, ok := order.Items.Lines(); ok {
		for _, line := range lines {
			if line.Quantity < 1 {
				return domain.ValidationError{Entity: domain.EntityOrder, Field: "items", Reason: "quantity must be at least 1"}
			}
			if line.UnitPrice < 0 {
				return domain.ValidationError{Entity: domain.EntityOrder, Field: "items", Reason: "unit price must not be negative"}
			}
		}
	} else if order.Items.UnitCount() < 0 {
		return domain.ValidationError{Entity: domain.EntityOrder, Field: "items", Reason: "item count must not be negative"}
	}
	for field, amount := range map[string]float64{
		"subtotal": order.Subtotal,
		"tax":      order.Tax,
		"shipping": order.Shipping,
		"discount": order.Discount,
		"total":    order.Total,
	} {
		if amount < 0 {
			return domain.ValidationError{Entity: domain.EntityOrder, Field: field, Reason: "must not be negative"}
		}
	}
	return nil
}
