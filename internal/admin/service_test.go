package admin

import (
	"context"
	"errors"
	"io"
	"strings"
	"testing"
	"time"

	"shopcore/internal/blob/memory"
	"shopcore/internal/kv"
	"shopcore/pkg/domain"
)

var serviceNow = time.Date(2026, time.August, 3, 9, 0, 0, 0, time.UTC)

func newTestService() (*Service, *memory.Store) {
	sink := memory.New()
	service := NewService(kv.NewMemoryStore(), sink,
		WithClock(func() time.Time { return serviceNow }),
		WithIDGenerator(func() string { return "GEN-1" }),
	)
	return service, sink
}

func TestListOrdersPipeline(t *testing.T) {
	ctx := context.Background()
	service, _ := newTestService()

	page, err := service.ListOrders(ctx, OrderQuery{Search: "ben"})
	if err != nil {
		t.Fatalf("list: %v", err)
	}
	if page.TotalItems != 2 {
		t.Fatalf("expected Ben's 2 orders, got %d", page.TotalItems)
	}
	// default sort is created_at ascending
	if page.Items[0].ID != "ORD-002" || page.Items[1].ID != "ORD-004" {
		t.Fatalf("sort order: %s, %s", page.Items[0].ID, page.Items[1].ID)
	}

	page, err = service.ListOrders(ctx, OrderQuery{Status: domain.OrderPending})
	if err != nil {
		t.Fatalf("list by status: %v", err)
	}
	if page.TotalItems != 1 || page.Items[0].ID != "ORD-003" {
		t.Fatalf("status filter: %+v", page.Items)
	}

	page, err = service.ListOrders(ctx, OrderQuery{SortField: "total", Desc: true})
	if err != nil {
		t.Fatalf("list by total: %v", err)
	}
	if page.Items[0].ID != "ORD-003" {
		t.Fatalf("expected highest total first, got %s", page.Items[0].ID)
	}
	// zero page/size fall back to page 1, size 20
	if page.PageIndex != 1 || page.PageSize != 20 || page.TotalPages != 1 {
		t.Fatalf("default pagination: %+v", page)
	}
}

func TestListOrdersDateRange(t *testing.T) {
	ctx := context.Background()
	service, _ := newTestService()

	from := time.Date(2026, time.July, 20, 0, 0, 0, 0, time.UTC)
	page, err := service.ListOrders(ctx, OrderQuery{From: from})
	if err != nil {
		t.Fatalf("list: %v", err)
	}
	if page.TotalItems != 2 {
		t.Fatalf("expected orders from Jul 20 on, got %+v", page.Items)
	}
}

func TestAdvanceOrderStatusPersists(t *testing.T) {
	ctx := context.Background()
	service, _ := newTestService()

	order, effects, err := service.AdvanceOrderStatus(ctx, "ORD-003", domain.OrderProcessing)
	if err != nil {
		t.Fatalf("advance: %v", err)
	}
	if order.Status != domain.OrderProcessing || len(effects) != 0 {
		t.Fatalf("advance result: %+v effects=%+v", order, effects)
	}
	reloaded, err := service.Orders().LoadByID(ctx, "ORD-003")
	if err != nil {
		t.Fatalf("reload: %v", err)
	}
	if reloaded.Status != domain.OrderProcessing {
		t.Fatalf("transition was not persisted: %s", reloaded.Status)
	}
}

func TestAdvanceOrderStatusRejectionLeavesStoreUntouched(t *testing.T) {
	ctx := context.Background()
	service, _ := newTestService()

	_, _, err := service.AdvanceOrderStatus(ctx, "ORD-003", domain.OrderDelivered)
	var invalid domain.InvalidTransitionError
	if !errors.As(err, &invalid) {
		t.Fatalf("expected InvalidTransitionError, got %v", err)
	}
	reloaded, _ := service.Orders().LoadByID(ctx, "ORD-003")
	if reloaded.Status != domain.OrderPending {
		t.Fatalf("rejected transition must not persist, got %s", reloaded.Status)
	}
}

func TestOverrideOrderStatusPersistsSideEffects(t *testing.T) {
	ctx := context.Background()
	service, _ := newTestService()

	order, _, err := service.OverrideOrderStatus(ctx, "ORD-003", domain.OrderDelivered)
	if err != nil {
		t.Fatalf("override: %v", err)
	}
	if order.DeliveredDate == nil || !order.DeliveredDate.Equal(serviceNow) {
		t.Fatalf("expected delivered date stamp, got %v", order.DeliveredDate)
	}
}

func TestReturnLifecycleThroughService(t *testing.T) {
	ctx := context.Background()
	service, _ := newTestService()

	approved, _, err := service.ApproveReturn(ctx, "RET-001")
	if err != nil {
		t.Fatalf("approve: %v", err)
	}
	if approved.Status != domain.ReturnApproved || approved.RefundStatus != domain.RefundPending {
		t.Fatalf("approve result: {%s, %s}", approved.Status, approved.RefundStatus)
	}

	completed, _, err := service.ProcessRefund(ctx, "RET-001")
	if err != nil {
		t.Fatalf("process refund: %v", err)
	}
	if completed.Status != domain.ReturnCompleted || completed.RefundStatus != domain.RefundProcessed {
		t.Fatalf("refund result: {%s, %s}", completed.Status, completed.RefundStatus)
	}

	if _, _, err := service.ApproveReturn(ctx, "RET-001"); err == nil {
		t.Fatalf("completed request must not be approvable")
	}

	if _, _, err := service.RejectReturn(ctx, "RET-404"); err == nil {
		t.Fatalf("unknown id must fail")
	}
}

func TestUpdateSettingsThroughService(t *testing.T) {
	ctx := context.Background()
	service, _ := newTestService()

	merged, err := service.UpdateSettings(ctx, "tax", domain.SettingsSection{"invoice_numbers": false})
	if err != nil {
		t.Fatalf("update: %v", err)
	}
	if merged["invoice_numbers"] != false {
		t.Fatalf("updated field: %v", merged["invoice_numbers"])
	}
	if rate, ok := merged["rate"].(float64); !ok || rate != 0.18 {
		t.Fatalf("sibling field must survive, got %v", merged["rate"])
	}
}

func TestBuildDashboard(t *testing.T) {
	ctx := context.Background()
	service, _ := newTestService()

	dashboard, err := service.BuildDashboard(ctx, time.Time{}, time.Time{})
	if err != nil {
		t.Fatalf("dashboard: %v", err)
	}
	wantRevenue := 155.50 + 76.52 + 227.80 + 100.40
	if dashboard.ProfitLoss.Revenue != wantRevenue {
		t.Fatalf("revenue: %v", dashboard.ProfitLoss.Revenue)
	}
	if len(dashboard.Trend) != 4 {
		t.Fatalf("expected 4 trend days, got %+v", dashboard.Trend)
	}
	if len(dashboard.Payments) != 3 {
		t.Fatalf("expected 3 payment methods, got %+v", dashboard.Payments)
	}
	if len(dashboard.Tax.Rows) != 4 {
		t.Fatalf("expected 4 tax rows, got %+v", dashboard.Tax.Rows)
	}

	// range scoping drops orders outside [from, to]
	from := time.Date(2026, time.July, 19, 0, 0, 0, 0, time.UTC)
	to := time.Date(2026, time.July, 19, 23, 59, 59, 0, time.UTC)
	scoped, err := service.BuildDashboard(ctx, from, to)
	if err != nil {
		t.Fatalf("scoped dashboard: %v", err)
	}
	if scoped.ProfitLoss.Revenue != 76.52 {
		t.Fatalf("scoped revenue: %v", scoped.ProfitLoss.Revenue)
	}
}

func TestExportOrdersWritesArtifact(t *testing.T) {
	ctx := context.Background()
	service, sink := newTestService()

	orders, err := service.Orders().LoadAll(ctx)
	if err != nil {
		t.Fatalf("load: %v", err)
	}
	info, err := service.ExportOrders(ctx, orders)
	if err != nil {
		t.Fatalf("export: %v", err)
	}
	if info.Key != "orders_2026-08-03.csv" || info.ContentType != "text/csv" {
		t.Fatalf("artifact info: %+v", info)
	}

	_, body, err := sink.Get(ctx, info.Key)
	if err != nil {
		t.Fatalf("get artifact: %v", err)
	}
	defer func() { _ = body.Close() }()
	content, err := io.ReadAll(body)
	if err != nil {
		t.Fatalf("read artifact: %v", err)
	}
	lines := strings.Split(string(content), "\n")
	if len(lines) != 5 {
		t.Fatalf("expected header plus 4 rows, got %d lines", len(lines))
	}
	if lines[0] != `"ID","Customer","Email","Date","Items","Total","Status","Payment Method","Payment Status"` {
		t.Fatalf("header: %s", lines[0])
	}
	if !strings.HasPrefix(lines[1], `"ORD-001","Amelia Hart",`) {
		t.Fatalf("first row: %s", lines[1])
	}
	// the legacy count-only order serializes its unit count
	if !strings.Contains(lines[3], `"3"`) {
		t.Fatalf("legacy item count missing: %s", lines[3])
	}
}
