package repo

import (
	"shopcore/internal/kv"
	"shopcore/internal/seed"
	"shopcore/pkg/domain"
)

// BucketReturns is the persistence key holding the return request collection.
const BucketReturns = "return_requests"

// Returns is the return request repository.
type Returns struct {
	*Collection[domain.ReturnRequest]
}

// NewReturns constructs the return request repository over store.
func NewReturns(store kv.Store, opts ...Option) *Returns {
	o := buildOptions(opts)
	c := &Collection[domain.ReturnRequest]{
		store:  store,
		bucket: BucketReturns,
		entity: domain.EntityReturnRequest,
		seed:   seed.ReturnRequests,
		id:     func(request domain.ReturnRequest) string { return request.ID },
		setID:  func(request *domain.ReturnRequest, id string) { request.ID = id },
		clock:  o.clock,
		newID:  o.newID,
	}
	c.normalize = func(request *domain.ReturnRequest) {
		if request.Status == "" {
			request.Status = domain.ReturnPending
		}
		if request.RefundStatus == "" {
			request.RefundStatus = domain.RefundPending
		}
		if request.RequestedAt.IsZero() {
			request.RequestedAt = c.clock()
		}
		if request.UpdatedAt.IsZero() {
			request.UpdatedAt = request.RequestedAt
		}
	}
	c.validate = validateReturn
	return &Returns{Collection: c}
}

func validateReturn(request domain.ReturnRequest) error {
	if !request.Status.Valid() {
		return domain.ValidationError{Entity: domain.EntityReturnRequest, Field: "status", Reason: string(request.Status)}
	}
	if request.OrderID == "" {
		return domain.ValidationError{Entity: domain.EntityReturnRequest, Field: "order_id", Reason: "required"}
	}
	if request.RefundAmount < 0 {
		return domain.ValidationError{Entity: domain.EntityReturnRequest, Field: "refund_amount", Reason: "must not be negative"}
	}
	for _, item := range request.Items {
		if item.Quantity < 1 {
			return domain.ValidationError{Entity: domain.EntityReturnRequest, Field: "items", Reason: "quantity must be at least 1"}
		}
	}
	return nil
}
