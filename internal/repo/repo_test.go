package repo

import (
	"context"
	"errors"
	"testing"
	"time"

	"shopcore/internal/kv"
	"shopcore/pkg/domain"
)

var fixedNow = time.Date(2026, time.August, 2, 8, 0, 0, 0, time.UTC)

func fixedClock() time.Time { return fixedNow }

func TestOrdersLoadAllSeedsEmptyStore(t *testing.T) {
	ctx := context.Background()
	store := kv.NewMemoryStore()
	orders := NewOrders(store)

	all, err := orders.LoadAll(ctx)
	if err != nil {
		t.Fatalf("load all: %v", err)
	}
	if len(all) != 4 {
		t.Fatalf("expected 4 seed orders, got %d", len(all))
	}
	// seed order is preserved on every load
	want := []string{"ORD-001", "ORD-002", "ORD-003", "ORD-004"}
	for i, order := range all {
		if order.ID != want[i] {
			t.Fatalf("position %d: expected %s, got %s", i, want[i], order.ID)
		}
	}
	if _, found, _ := store.Read(ctx, BucketOrders); !found {
		t.Fatalf("seed must be written back to the store")
	}
}

func TestOrdersLoadByID(t *testing.T) {
	ctx := context.Background()
	orders := NewOrders(kv.NewMemoryStore())

	order, err := orders.LoadByID(ctx, "ORD-002")
	if err != nil {
		t.Fatalf("load by id: %v", err)
	}
	if order.CustomerName != "Ben Okafor" || order.TrackingNumber != "TRK-558201" {
		t.Fatalf("unexpected order: %+v", order)
	}

	_, err = orders.LoadByID(ctx, "ORD-999")
	var notFound domain.ErrNotFound
	if !errors.As(err, &notFound) {
		t.Fatalf("expected ErrNotFound, got %v", err)
	}
	if notFound.Entity != domain.EntityOrder || notFound.ID != "ORD-999" {
		t.Fatalf("error must identify entity and id, got %+v", notFound)
	}
}

func TestOrdersSaveUpserts(t *testing.T) {
	ctx := context.Background()
	orders := NewOrders(kv.NewMemoryStore(), WithClock(fixedClock))

	order, err := orders.LoadByID(ctx, "ORD-003")
	if err != nil {
		t.Fatalf("load: %v", err)
	}
	order.Status = domain.OrderProcessing
	if _, err := orders.Save(ctx, order); err != nil {
		t.Fatalf("save: %v", err)
	}

	reloaded, err := orders.LoadByID(ctx, "ORD-003")
	if err != nil {
		t.Fatalf("reload: %v", err)
	}
	if reloaded.Status != domain.OrderProcessing {
		t.Fatalf("save did not persist, status=%s", reloaded.Status)
	}
	all, _ := orders.LoadAll(ctx)
	if len(all) != 4 {
		t.Fatalf("upsert must not duplicate, got %d orders", len(all))
	}
}

func TestOrdersSaveRequiresID(t *testing.T) {
	ctx := context.Background()
	orders := NewOrders(kv.NewMemoryStore())

	_, err := orders.Save(ctx, domain.Order{CustomerName: "No ID"})
	var invalid domain.ValidationError
	if !errors.As(err, &invalid) || invalid.Field != "id" {
		t.Fatalf("expected id validation error, got %v", err)
	}
}

func TestOrdersSaveLastWriteWins(t *testing.T) {
	ctx := context.Background()
	orders := NewOrders(kv.NewMemoryStore())

	base, _ := orders.LoadByID(ctx, "ORD-001")

	first := base
	first.CustomerName = "First Writer"
	second := base
	second.CustomerName = "Second Writer"

	if _, err := orders.Save(ctx, first); err != nil {
		t.Fatalf("first save: %v", err)
	}
	if _, err := orders.Save(ctx, second); err != nil {
		t.Fatalf("second save: %v", err)
	}
	reloaded, _ := orders.LoadByID(ctx, "ORD-001")
	if reloaded.CustomerName != "Second Writer" {
		t.Fatalf("expected the later write to win, got %q", reloaded.CustomerName)
	}
}

func TestOrdersCreateAssignsIDAndDefaults(t *testing.T) {
	ctx := context.Background()
	orders := NewOrders(kv.NewMemoryStore(),
		WithClock(fixedClock),
		WithIDGenerator(func() string { return "ORD-GEN-1" }),
	)

	created, err := orders.Create(ctx, domain.Order{
		CustomerName:  "Dana Iqbal",
		CustomerEmail: "dana.iqbal@example.com",
		Items:         domain.ItemCount(1),
		Total:         42,
	})
	if err != nil {
		t.Fatalf("create: %v", err)
	}
	if created.ID != "ORD-GEN-1" {
		t.Fatalf("expected generated id, got %q", created.ID)
	}
	if created.Status != domain.OrderPending || created.PaymentStatus != domain.PaymentPending {
		t.Fatalf("expected default statuses, got %s/%s", created.Status, created.PaymentStatus)
	}
	if !created.CreatedAt.Equal(fixedNow) || !created.UpdatedAt.Equal(fixedNow) {
		t.Fatalf("expected clock-stamped timestamps, got %v/%v", created.CreatedAt, created.UpdatedAt)
	}

	_, err = orders.Create(ctx, domain.Order{
		ID:            "ORD-001",
		CustomerName:  "Dup",
		CustomerEmail: "dup@example.com",
		Items:         domain.ItemCount(1),
	})
	var invalid domain.ValidationError
	if !errors.As(err, &invalid) || invalid.Field != "id" {
		t.Fatalf("expected duplicate id error, got %v", err)
	}
}

func TestOrdersValidation(t *testing.T) {
	ctx := context.Background()
	orders := NewOrders(kv.NewMemoryStore())

	cases := []struct {
		name  string
		order domain.Order
		field string
	}{
		{
			"bad status",
			domain.Order{ID: "X", Status: "mystery", Items: domain.ItemCount(1)},
			"status",
		},
		{
			"zero quantity line",
			domain.Order{ID: "X", Items: domain.ItemList([]domain.LineItem{{ProductID: "P", Quantity: 0, UnitPrice: 5}})},
			"items",
		},
		{
			"negative unit price",
			domain.Order{ID: "X", Items: domain.ItemList([]domain.LineItem{{ProductID: "P", Quantity: 1, UnitPrice: -1}})},
			"items",
		},
		{
			"negative total",
			domain.Order{ID: "X", Items: domain.ItemCount(1), Total: -10},
			"total",
		},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			_, err := orders.Save(ctx, tc.order)
			var invalid domain.ValidationError
			if !errors.As(err, &invalid) {
				t.Fatalf("expected ValidationError, got %v", err)
			}
			if invalid.Field != tc.field {
				t.Fatalf("expected field %q, got %+v", tc.field, invalid)
			}
		})
	}
}

func TestReturnsValidation(t *testing.T) {
	ctx := context.Background()
	returns := NewReturns(kv.NewMemoryStore())

	_, err := returns.Save(ctx, domain.ReturnRequest{ID: "RET-X", RefundAmount: 10})
	var invalid domain.ValidationError
	if !errors.As(err, &invalid) || invalid.Field != "order_id" {
		t.Fatalf("expected order_id validation error, got %v", err)
	}

	_, err = returns.Save(ctx, domain.ReturnRequest{ID: "RET-X", OrderID: "ORD-001", RefundAmount: -1})
	if !errors.As(err, &invalid) || invalid.Field != "refund_amount" {
		t.Fatalf("expected refund_amount validation error, got %v", err)
	}
}
