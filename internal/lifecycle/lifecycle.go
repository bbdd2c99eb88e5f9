// Package lifecycle implements the state machines governing order and return
// request status changes. All functions are pure with respect to storage:
// they take an entity, validate the requested change against the current
// state, and return the updated entity together with the side effects that
// were applied. Callers persist the result through the repositories.
//
// Two distinct mutation paths exist on purpose. The event functions
// (AdvanceOrder, ApproveReturn, RejectReturn, ProcessRefund) enforce the
// strict transition graphs and are the path for automated processes. The
// override functions accept any recognised status and exist solely for manual
// admin correction; they still apply the refund coupling rules so the stored
// record never violates the invariants.
package lifecycle

import (
	"time"

	"shopcore/internal/metrics"
	"shopcore/pkg/domain"
)

// Effect describes one coupled field change applied alongside a transition,
// for audit trails and user-facing messaging.
type Effect struct {
	Field string
	Value string
}

// Engine validates and applies lifecycle transitions.
type Engine struct {
	clock domain.Clock
}

// Option configures an Engine.
type Option func(*Engine)

// WithClock overrides the time source (tests).
func WithClock(clock domain.Clock) Option {
	return func(e *Engine) { e.clock = clock }
}

// NewEngine constructs a lifecycle engine.
func NewEngine(opts ...Option) *Engine {
	e := &Engine{clock: domain.UTCNow}
	for _, opt := range opts {
		opt(e)
	}
	return e
}

// orderGraph is the customer-facing forward-only progression. Any non-terminal
// state may cancel.
var orderGraph = map[domain.OrderStatus][]domain.OrderStatus{
	domain.OrderPending:    {domain.OrderProcessing, domain.OrderCancelled},
	domain.OrderProcessing: {domain.OrderShipped, domain.OrderCancelled},
	domain.OrderShipped:    {domain.OrderDelivered, domain.OrderCancelled},
	domain.OrderDelivered:  {},
	domain.OrderCancelled:  {},
}

// AdvanceOrder applies the strict progression graph. Backward moves, skips,
// and transitions out of a terminal state are rejected.
func (e *Engine) AdvanceOrder(order domain.Order, next domain.OrderStatus) (domain.Order, []Effect, error) {
	event := "advance:" + string(next)
	allowed := false
	for _, candidate := range orderGraph[order.Status] {
		if candidate == next {
			allowed = true
			break
		}
	}
	if !allowed {
		metrics.TransitionsRejected.WithLabelValues(string(domain.EntityOrder), event).Inc()
		return domain.Order{}, nil, domain.InvalidTransitionError{
			Entity: domain.EntityOrder, ID: order.ID, From: string(order.Status), Event: event,
		}
	}
	metrics.TransitionsApplied.WithLabelValues(string(domain.EntityOrder), event).Inc()
	return e.applyOrderStatus(order, next)
}

// OverrideOrderStatus sets any recognised status directly, bypassing the
// progression graph. This is the manual admin correction path; automated
// processes must use AdvanceOrder.
func (e *Engine) OverrideOrderStatus(order domain.Order, status domain.OrderStatus) (domain.Order, []Effect, error) {
	event := "override:" + string(status)
	if !status.Valid() {
		metrics.TransitionsRejected.WithLabelValues(string(domain.EntityOrder), event).Inc()
		return domain.Order{}, nil, domain.InvalidTransitionError{
			Entity: domain.EntityOrder, ID: order.ID, From: string(order.Status), Event: event,
		}
	}
	metrics.TransitionsApplied.WithLabelValues(string(domain.EntityOrder), event).Inc()
	return e.applyOrderStatus(order, status)
}

func (e *Engine) applyOrderStatus(order domain.Order, status domain.OrderStatus) (domain.Order, []Effect, error) {
	now := e.clock()
	var effects []Effect
	order.Status = status
	order.UpdatedAt = now
	switch status {
	case domain.OrderDelivered:
		if order.DeliveredDate == nil {
			stamped := now
			order.DeliveredDate = &stamped
			effects = append(effects, Effect{Field: "delivered_date", Value: stamped.Format(time.RFC3339)})
		}
	case domain.OrderCancelled:
		if order.CancelledDate == nil {
			stamped := now
			order.CancelledDate = &stamped
			effects = append(effects, Effect{Field: "cancelled_date", Value: stamped.Format(time.RFC3339)})
		}
	}
	return order, effects, nil
}

// ApproveReturn moves a pending request to approved. The refund stays pending
// until ProcessRefund settles it.
func (e *Engine) ApproveReturn(request domain.ReturnRequest) (domain.ReturnRequest, []Effect, error) {
	if request.Status != domain.ReturnPending {
		return e.rejectReturnEvent(request, "approve")
	}
	metrics.TransitionsApplied.WithLabelValues(string(domain.EntityReturnRequest), "approve").Inc()
	request.Status = domain.ReturnApproved
	request.RefundStatus = domain.RefundPending
	request.UpdatedAt = e.clock()
	return request, []Effect{{Field: "refund_status", Value: string(domain.RefundPending)}}, nil
}

// RejectReturn moves a pending request to the terminal rejected state. The
// refund status is left pending; no refund exists to settle.
func (e *Engine) RejectReturn(request domain.ReturnRequest) (domain.ReturnRequest, []Effect, error) {
	if request.Status != domain.ReturnPending {
		return e.rejectReturnEvent(request, "reject")
	}
	metrics.TransitionsApplied.WithLabelValues(string(domain.EntityReturnRequest), "reject").Inc()
	request.Status = domain.ReturnRejected
	request.UpdatedAt = e.clock()
	return request, nil, nil
}

// ProcessRefund settles an approved request: status completes and the refund
// is marked processed in the same step, keeping the coupling invariant intact.
func (e *Engine) ProcessRefund(request domain.ReturnRequest) (domain.ReturnRequest, []Effect, error) {
	if request.Status != domain.ReturnApproved || request.RefundStatus != domain.RefundPending {
		return e.rejectReturnEvent(request, "process_refund")
	}
	metrics.TransitionsApplied.WithLabelValues(string(domain.EntityReturnRequest), "process_refund").Inc()
	request.Status = domain.ReturnCompleted
	request.RefundStatus = domain.RefundProcessed
	request.UpdatedAt = e.clock()
	return request, []Effect{{Field: "refund_status", Value: string(domain.RefundProcessed)}}, nil
}

// OverrideReturnStatus sets any recognised status directly (manual admin
// edit) and applies the coupling rules: completed forces the refund to
// processed, approved forces it back to pending unless already processed.
func (e *Engine) OverrideReturnStatus(request domain.ReturnRequest, status domain.ReturnStatus) (domain.ReturnRequest, []Effect, error) {
	event := "override:" + string(status)
	if !status.Valid() {
		metrics.TransitionsRejected.WithLabelValues(string(domain.EntityReturnRequest), event).Inc()
		return domain.ReturnRequest{}, nil, domain.InvalidTransitionError{
			Entity: domain.EntityReturnRequest, ID: request.ID, From: string(request.Status), Event: event,
		}
	}
	metrics.TransitionsApplied.WithLabelValues(string(domain.EntityReturnRequest), event).Inc()
	var effects []Effect
	request.Status = status
	switch status {
	case domain.ReturnCompleted:
		if request.RefundStatus != domain.RefundProcessed {
			request.RefundStatus = domain.RefundProcessed
			effects = append(effects, Effect{Field: "refund_status", Value: string(domain.RefundProcessed)})
		}
	case domain.ReturnApproved:
		if request.RefundStatus != domain.RefundProcessed {
			request.RefundStatus = domain.RefundPending
			effects = append(effects, Effect{Field: "refund_status", Value: string(domain.RefundPending)})
		}
	}
	request.UpdatedAt = e.clock()
	return request, effects, nil
}

func (e *Engine) rejectReturnEvent(request domain.ReturnRequest, event string) (domain.ReturnRequest, []Effect, error) {
	metrics.TransitionsRejected.WithLabelValues(string(domain.EntityReturnRequest), event).Inc()
	return domain.ReturnRequest{}, nil, domain.InvalidTransitionError{
		Entity: domain.EntityReturnRequest, ID: request.ID, From: string(request.Status), Event: event,
	}
}
