package repo

import (
	"context"

	"shopcore/internal/kv"
	"shopcore/internal/seed"
	"shopcore/pkg/domain"
)

// BucketCustomers is the persistence key holding the customer collection.
const BucketCustomers = "customers"

// Customers is the customer repository.
type Customers struct {
	*Collection[domain.Customer]
}

// NewCustomers constructs the customer repository over store.
func NewCustomers(store kv.Store, opts ...Option) *Customers {
	o := buildOptions(opts)
	c := &Collection[domain.Customer]{
		store:  store,
		bucket: BucketCustomers,
		entity: domain.EntityCustomer,
		seed:   seed.Customers,
		id:     func(customer domain.Customer) string { return customer.ID },
		setID:  func(customer *domain.Customer, id string) { customer.ID = id },
		clock:  o.clock,
		newID:  o.newID,
	}
	c.normalize = func(customer *domain.Customer) {
		if customer.Status == "" {
			customer.Status = domain.CustomerActive
		}
		if customer.CreatedAt.IsZero() {
			customer.CreatedAt = c.clock()
		}
		if customer.UpdatedAt.IsZero() {
			customer.UpdatedAt = customer.CreatedAt
		}
	}
	c.validate = validateCustomer
	return &Customers{Collection: c}
}

func validateCustomer(customer domain.Customer) error {
	if customer.Name == "" {
		return domain.ValidationError{Entity: domain.EntityCustomer, Field: "name", Reason: "required"}
	}
	if customer.Email == "" {
		return domain.ValidationError{Entity: domain.EntityCustomer, Field: "email", Reason: "required"}
	}
	switch customer.Status {
	case domain.CustomerActive, domain.CustomerBlocked:
	default:
		return domain.ValidationError{Entity: domain.EntityCustomer, Field: "status", Reason: string(customer.Status)}
	}
	return nil
}

// Create additionally enforces email uniqueness within the store.
func (r *Customers) Create(ctx context.Context, draft domain.Customer) (domain.Customer, error) {
	all, err := r.LoadAll(ctx)
	if err != nil {
		return domain.Customer{}, err
	}
	for _, existing := range all {
		if existing.Email == draft.Email {
			return domain.Customer{}, domain.ValidationError{Entity: domain.EntityCustomer, Field: "email", Reason: "already in use"}
		}
	}
	return r.Collection.Create(ctx, draft)
}

// RecomputeAggregates rebuilds the derived OrdersCount and TotalSpent
// counters for every customer from the authoritative order history. Stored
// counters can drift and must never be trusted without this pass. Cancelled
// orders do not contribute.
func (r *Customers) RecomputeAggregates(ctx context.Context, orders []domain.Order) ([]domain.Customer, error) {
	all, err := r.LoadAll(ctx)
	if err != nil {
		return nil, err
	}
	type rollup struct {
		count int
		spent float64
	}
	byEmail := make(map[string]rollup)
	for _, order := range orders {
		if order.Status == domain.OrderCancelled {
			continue
		}
		agg := byEmail[order.CustomerEmail]
		agg.count++
		agg.spent += order.Total
		byEmail[order.CustomerEmail] = agg
	}
	for i := range all {
		agg := byEmail[all[i].Email]
		all[i].OrdersCount = agg.count
		all[i].TotalSpent = agg.spent
	}
	if err := r.writeAll(ctx, all); err != nil {
		return nil, err
	}
	return all, nil
}

// AppendActivity appends one entry to a customer's activity history. History
// is append-only; existing entries are never rewritten.
func (r *Customers) AppendActivity(ctx context.Context, id string, entry domain.ActivityEntry) (domain.Customer, error) {
	customer, err := r.LoadByID(ctx, id)
	if err != nil {
		return domain.Customer{}, err
	}
	if entry.Timestamp.IsZero() {
		entry.Timestamp = r.clock()
	}
	customer.Activity = append(customer.Activity, entry)
	customer.UpdatedAt = r.clock()
	return r.Save(ctx, customer)
}
