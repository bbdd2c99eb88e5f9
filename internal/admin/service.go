// Package admin exposes the operations the console surfaces call: list
// queries, lifecycle transitions, settings updates, report rollups, and CSV
// exports. It owns one repository instance per entity kind, constructed once
// and passed by injection; there is no hidden global store state.
package admin

import (
	"context"
	"time"

	"shopcore/internal/blob"
	"shopcore/internal/export"
	"shopcore/internal/kv"
	"shopcore/internal/lifecycle"
	"shopcore/internal/query"
	"shopcore/internal/repo"
	"shopcore/internal/report"
	"shopcore/pkg/domain"
)

// Service is the façade over the entity store and derived computation layers.
type Service struct {
	orders    *repo.Orders
	returns   *repo.Returns
	customers *repo.Customers
	settings  *repo.SettingsRepo
	engine    *lifecycle.Engine
	exports   *export.Writer
	clock     domain.Clock
}

// Option configures a Service.
type Option func(*serviceOptions)

type serviceOptions struct {
	clock domain.Clock
	newID domain.IDGenerator
}

// WithClock overrides the time source for the service and everything it
// constructs (tests).
func WithClock(clock domain.Clock) Option {
	return func(o *serviceOptions) { o.clock = clock }
}

// WithIDGenerator overrides the identifier generator (tests).
func WithIDGenerator(gen domain.IDGenerator) Option {
	return func(o *serviceOptions) { o.newID = gen }
}

// NewService constructs the service over a persistent store and an export
// sink.
func NewService(store kv.Store, sink blob.Store, opts ...Option) *Service {
	o := serviceOptions{clock: domain.UTCNow, newID: repo.UUIDGenerator}
	for _, opt := range opts {
		opt(&o)
	}
	repoOpts := []repo.Option{repo.WithClock(o.clock), repo.WithIDGenerator(o.newID)}
	return &Service{
		orders:    repo.NewOrders(store, repoOpts...),
		returns:   repo.NewReturns(store, repoOpts...),
		customers: repo.NewCustomers(store, repoOpts...),
		settings:  repo.NewSettings(store),
		engine:    lifecycle.NewEngine(lifecycle.WithClock(o.clock)),
		exports:   export.NewWriter(sink, o.clock),
		clock:     o.clock,
	}
}

// Orders returns the order repository for direct CRUD access.
func (s *Service) Orders() *repo.Orders { return s.orders }

// Returns returns the return request repository.
func (s *Service) Returns() *repo.Returns { return s.returns }

// Customers returns the customer repository.
func (s *Service) Customers() *repo.Customers { return s.customers }

// Settings returns the settings repository.
func (s *Service) Settings() *repo.SettingsRepo { return s.settings }

// OrderQuery describes one order list screen request.
type OrderQuery struct {
	Search    string
	Status    domain.OrderStatus
	From, To  time.Time
	SortField string // id|created_at|total (default created_at)
	Desc      bool
	Page      int
	PageSize  int
}

// ListOrders runs the filter → sort → paginate pipeline for the orders list.
func (s *Service) ListOrders(ctx context.Context, q OrderQuery) (query.Page[domain.Order], error) {
	all, err := s.orders.LoadAll(ctx)
	if err != nil {
		return query.Page[domain.Order]{}, err
	}
	preds := []query.Predicate[domain.Order]{
		query.TextSearch(q.Search,
			func(o domain.Order) string { return o.ID },
			func(o domain.Order) string { return o.CustomerName },
			func(o domain.Order) string { return o.CustomerEmail },
		),
	}
	if q.Status != "" {
		preds = append(preds, func(o domain.Order) bool { return o.Status == q.Status })
	}
	if !q.From.IsZero() || !q.To.IsZero() {
		preds = append(preds, func(o domain.Order) bool {
			if !q.From.IsZero() && o.CreatedAt.Before(q.From) {
				return false
			}
			return q.To.IsZero() || !o.CreatedAt.After(q.To)
		})
	}
	filtered := query.Filter(all, preds...)
	sorted := query.SortBy(filtered, orderLess(q.SortField), q.Desc)
	return paginate(sorted, q.Page, q.PageSize)
}

func orderLess(field string) func(a, b domain.Order) bool {
	switch field {
	case "id":
		return func(a, b domain.Order) bool { return a.ID < b.ID }
	case "total":
		return func(a, b domain.Order) bool { return a.Total < b.Total }
	default:
		return func(a, b domain.Order) bool { return a.CreatedAt.Before(b.CreatedAt) }
	}
}

// ReturnQuery describes one return request list screen request.
type ReturnQuery struct {
	Search   string
	Status   domain.ReturnStatus
	Desc     bool
	Page     int
	PageSize int
}

// ListReturns runs the pipeline for the return requests list, sorted by
// request date.
func (s *Service) ListReturns(ctx context.Context, q ReturnQuery) (query.Page[domain.ReturnRequest], error) {
	all, err := s.returns.LoadAll(ctx)
	if err != nil {
		return query.Page[domain.ReturnRequest]{}, err
	}
	preds := []query.Predicate[domain.ReturnRequest]{
		query.TextSearch(q.Search,
			func(r domain.ReturnRequest) string { return r.ID },
			func(r domain.ReturnRequest) string { return r.OrderID },
			func(r domain.ReturnRequest) string { return r.CustomerName },
			func(r domain.ReturnRequest) string { return r.CustomerEmail },
		),
	}
	if q.Status != "" {
		preds = append(preds, func(r domain.ReturnRequest) bool { return r.Status == q.Status })
	}
	filtered := query.Filter(all, preds...)
	sorted := query.SortBy(filtered, func(a, b domain.ReturnRequest) bool {
		return a.RequestedAt.Before(b.RequestedAt)
	}, q.Desc)
	return paginate(sorted, q.Page, q.PageSize)
}

// CustomerQuery describes one customer list screen request.
type CustomerQuery struct {
	Search   string
	Status   domain.CustomerStatus
	Desc     bool
	Page     int
	PageSize int
}

// ListCustomers runs the pipeline for the customers list, sorted by name.
func (s *Service) ListCustomers(ctx context.Context, q CustomerQuery) (query.Page[domain.Customer], error) {
	all, err := s.customers.LoadAll(ctx)
	if err != nil {
		return query.Page[domain.Customer]{}, err
	}
	preds := []query.Predicate[domain.Customer]{
		query.TextSearch(q.Search,
			func(c domain.Customer) string { return c.Name },
			func(c domain.Customer) string { return c.Email },
			func(c domain.Customer) string { return c.Phone },
		),
	}
	if q.Status != "" {
		preds = append(preds, func(c domain.Customer) bool { return c.Status == q.Status })
	}
	filtered := query.Filter(all, preds...)
	sorted := query.SortBy(filtered, func(a, b domain.Customer) bool { return a.Name < b.Name }, q.Desc)
	return paginate(sorted, q.Page, q.PageSize)
}

func paginate[T any](items []T, page, size int) (query.Page[T], error) {
	if page == 0 {
		page = 1
	}
	if size == 0 {
		size = 20
	}
	return query.Paginate(items, page, size)
}

// AdvanceOrderStatus applies a strict customer-facing progression and
// persists the result.
func (s *Service) AdvanceOrderStatus(ctx context.Context, id string, next domain.OrderStatus) (domain.Order, []lifecycle.Effect, error) {
	order, err := s.orders.LoadByID(ctx, id)
	if err != nil {
		return domain.Order{}, nil, err
	}
	updated, effects, err := s.engine.AdvanceOrder(order, next)
	if err != nil {
		return domain.Order{}, nil, err
	}
	saved, err := s.orders.Save(ctx, updated)
	return saved, effects, err
}

// OverrideOrderStatus applies a manual admin correction and persists the
// result.
func (s *Service) OverrideOrderStatus(ctx context.Context, id string, status domain.OrderStatus) (domain.Order, []lifecycle.Effect, error) {
	order, err := s.orders.LoadByID(ctx, id)
	if err != nil {
		return domain.Order{}, nil, err
	}
	updated, effects, err := s.engine.OverrideOrderStatus(order, status)
	if err != nil {
		return domain.Order{}, nil, err
	}
	saved, err := s.orders.Save(ctx, updated)
	return saved, effects, err
}

// ApproveReturn applies the approve event and persists the result.
func (s *Service) ApproveReturn(ctx context.Context, id string) (domain.ReturnRequest, []lifecycle.Effect, error) {
	return s.transitionReturn(ctx, id, s.engine.ApproveReturn)
}

// RejectReturn applies the reject event and persists the result.
func (s *Service) RejectReturn(ctx context.Context, id string) (domain.ReturnRequest, []lifecycle.Effect, error) {
	return s.transitionReturn(ctx, id, s.engine.RejectReturn)
}

// ProcessRefund settles an approved return and persists the result.
func (s *Service) ProcessRefund(ctx context.Context, id string) (domain.ReturnRequest, []lifecycle.Effect, error) {
	return s.transitionReturn(ctx, id, s.engine.ProcessRefund)
}

// OverrideReturnStatus applies a manual admin status edit with the refund
// coupling rules and persists the result.
func (s *Service) OverrideReturnStatus(ctx context.Context, id string, status domain.ReturnStatus) (domain.ReturnRequest, []lifecycle.Effect, error) {
	return s.transitionReturn(ctx, id, func(r domain.ReturnRequest) (domain.ReturnRequest, []lifecycle.Effect, error) {
		return s.engine.OverrideReturnStatus(r, status)
	})
}

func (s *Service) transitionReturn(ctx context.Context, id string, apply func(domain.ReturnRequest) (domain.ReturnRequest, []lifecycle.Effect, error)) (domain.ReturnRequest, []lifecycle.Effect, error) {
	request, err := s.returns.LoadByID(ctx, id)
	if err != nil {
		return domain.ReturnRequest{}, nil, err
	}
	updated, effects, err := apply(request)
	if err != nil {
		return domain.ReturnRequest{}, nil, err
	}
	saved, err := s.returns.Save(ctx, updated)
	return saved, effects, err
}

// UpdateSettings shallow-merges partial into the named settings section.
func (s *Service) UpdateSettings(ctx context.Context, section string, partial domain.SettingsSection) (domain.SettingsSection, error) {
	return s.settings.UpdateSection(ctx, section, partial)
}

// Dashboard bundles the report rollups one dashboard render needs.
type Dashboard struct {
	Trend      []report.TrendPoint        `json:"trend"`
	ProfitLoss report.ProfitLossStatement `json:"profit_loss"`
	Tax        report.TaxReport           `json:"tax"`
	Payments   []report.PaymentSlice      `json:"payments"`
}

// BuildDashboard computes every rollup from the orders created in [from, to].
func (s *Service) BuildDashboard(ctx context.Context, from, to time.Time) (Dashboard, error) {
	all, err := s.orders.LoadAll(ctx)
	if err != nil {
		return Dashboard{}, err
	}
	scoped := report.InRange(all, from, to)
	return Dashboard{
		Trend:      report.RevenueTrend(scoped),
		ProfitLoss: report.ProfitLoss(scoped),
		Tax:        report.Tax(scoped),
		Payments:   report.PaymentBreakdown(scoped),
	}, nil
}
