package repo

import (
	"context"
	"errors"
	"testing"

	"shopcore/internal/kv"
	"shopcore/internal/seed"
	"shopcore/pkg/domain"
)

func TestCustomersCreateRejectsDuplicateEmail(t *testing.T) {
	ctx := context.Background()
	customers := NewCustomers(kv.NewMemoryStore())

	_, err := customers.Create(ctx, domain.Customer{
		Name:  "Another Amelia",
		Email: "amelia.hart@example.com",
	})
	var invalid domain.ValidationError
	if !errors.As(err, &invalid) || invalid.Field != "email" {
		t.Fatalf("expected email uniqueness error, got %v", err)
	}

	created, err := customers.Create(ctx, domain.Customer{
		Name:  "Dana Iqbal",
		Email: "dana.iqbal@example.com",
	})
	if err != nil {
		t.Fatalf("create: %v", err)
	}
	if created.ID == "" || created.Status != domain.CustomerActive {
		t.Fatalf("expected generated id and active default, got %+v", created)
	}
}

func TestCustomersRecomputeAggregates(t *testing.T) {
	ctx := context.Background()
	customers := NewCustomers(kv.NewMemoryStore())

	orders := seed.Orders()
	// cancel Carla's only order; her counters must drop to zero
	for i := range orders {
		if orders[i].ID == "ORD-003" {
			orders[i].Status = domain.OrderCancelled
		}
	}

	all, err := customers.RecomputeAggregates(ctx, orders)
	if err != nil {
		t.Fatalf("recompute: %v", err)
	}
	byID := make(map[string]domain.Customer, len(all))
	for _, customer := range all {
		byID[customer.ID] = customer
	}

	if got := byID["CUS-001"]; got.OrdersCount != 1 || got.TotalSpent != 155.50 {
		t.Fatalf("CUS-001: %+v", got)
	}
	if got := byID["CUS-002"]; got.OrdersCount != 2 || got.TotalSpent != 76.52+100.40 {
		t.Fatalf("CUS-002: %+v", got)
	}
	if got := byID["CUS-003"]; got.OrdersCount != 0 || got.TotalSpent != 0 {
		t.Fatalf("cancelled orders must not contribute: %+v", got)
	}

	// the recomputed counters are persisted, not just returned
	reloaded, err := customers.LoadByID(ctx, "CUS-003")
	if err != nil {
		t.Fatalf("reload: %v", err)
	}
	if reloaded.OrdersCount != 0 || reloaded.TotalSpent != 0 {
		t.Fatalf("recompute must persist, got %+v", reloaded)
	}
}

func TestCustomersAppendActivity(t *testing.T) {
	ctx := context.Background()
	customers := NewCustomers(kv.NewMemoryStore(), WithClock(fixedClock))

	updated, err := customers.AppendActivity(ctx, "CUS-001", domain.ActivityEntry{
		Type:        "note",
		Description: "Called about RET-001",
	})
	if err != nil {
		t.Fatalf("append: %v", err)
	}
	if len(updated.Activity) != 2 {
		t.Fatalf("expected 2 activity entries, got %d", len(updated.Activity))
	}
	last := updated.Activity[len(updated.Activity)-1]
	if last.Type != "note" || !last.Timestamp.Equal(fixedNow) {
		t.Fatalf("expected stamped entry, got %+v", last)
	}
	// earlier entries are untouched
	if updated.Activity[0].Description != "Placed order ORD-001" {
		t.Fatalf("history must be append-only, got %+v", updated.Activity[0])
	}

	_, err = customers.AppendActivity(ctx, "CUS-999", domain.ActivityEntry{Type: "note"})
	var notFound domain.ErrNotFound
	if !errors.As(err, &notFound) {
		t.Fatalf("expected ErrNotFound, got %v", err)
	}
}
