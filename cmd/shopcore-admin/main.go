// Command shopcore-admin drives the administration core from a terminal: it
// opens the persistent store and export sink from the environment, then runs
// one operation per invocation. It exists for operators and smoke tests; the
// console UI talks to the same admin.Service.
package main

import (
	"context"
	"encoding/json"
	"flag"
	"fmt"
	"os"
	"time"

	"shopcore/internal/admin"
	"shopcore/internal/export"
	"shopcore/internal/kv"
	"shopcore/pkg/domain"
)

func main() {
	if err := run(os.Args[1:]); err != nil {
		fmt.Fprintln(os.Stderr, "shopcore-admin:", err)
		os.Exit(1)
	}
}

func run(args []string) error {
	if len(args) == 0 {
		return fmt.Errorf("usage: shopcore-admin <orders|returns|customers|dashboard|order-status|return-event|update-settings|export-orders> [flags]")
	}
	ctx := context.Background()
	store, err := kv.Open(ctx)
	if err != nil {
		return err
	}
	sink, err := export.OpenSink(ctx)
	if err != nil {
		return err
	}
	service := admin.NewService(store, sink)

	switch args[0] {
	case "orders":
		return listOrders(ctx, service, args[1:])
	case "returns":
		return listReturns(ctx, service, args[1:])
	case "customers":
		return listCustomers(ctx, service, args[1:])
	case "dashboard":
		return dashboard(ctx, service, args[1:])
	case "order-status":
		return orderStatus(ctx, service, args[1:])
	case "return-event":
		return returnEvent(ctx, service, args[1:])
	case "update-settings":
		return updateSettings(ctx, service, args[1:])
	case "export-orders":
		return exportOrders(ctx, service, args[1:])
	default:
		return fmt.Errorf("unknown command %q", args[0])
	}
}

func emit(v any) error {
	enc := json.NewEncoder(os.Stdout)
	enc.SetIndent("", "  ")
	return enc.Encode(v)
}

func listOrders(ctx context.Context, service *admin.Service, args []string) error {
	fs := flag.NewFlagSet("orders", flag.ContinueOnError)
	search := fs.String("search", "", "case-insensitive text search")
	status := fs.String("status", "", "filter by status")
	sortField := fs.String("sort", "created_at", "sort column: id|created_at|total")
	desc := fs.Bool("desc", false, "sort descending")
	page := fs.Int("page", 1, "1-based page index")
	size := fs.Int("size", 20, "page size")
	if err := fs.Parse(args); err != nil {
		return err
	}
	result, err := service.ListOrders(ctx, admin.OrderQuery{
		Search:    *search,
		Status:    domain.OrderStatus(*status),
		SortField: *sortField,
		Desc:      *desc,
		Page:      *page,
		PageSize:  *size,
	})
	if err != nil {
		return err
	}
	return emit(result)
}

func listReturns(ctx context.Context, service *admin.Service, args []string) error {
	fs := flag.NewFlagSet("returns", flag.ContinueOnError)
	search := fs.String("search", "", "case-insensitive text search")
	status := fs.String("status", "", "filter by status")
	page := fs.Int("page", 1, "1-based page index")
	size := fs.Int("size", 20, "page size")
	if err := fs.Parse(args); err != nil {
		return err
	}
	result, err := service.ListReturns(ctx, admin.ReturnQuery{
		Search:   *search,
		Status:   domain.ReturnStatus(*status),
		Page:     *page,
		PageSize: *size,
	})
	if err != nil {
		return err
	}
	return emit(result)
}

func listCustomers(ctx context.Context, service *admin.Service, args []string) error {
	fs := flag.NewFlagSet("customers", flag.ContinueOnError)
	search := fs.String("search", "", "case-insensitive text search")
	status := fs.String("status", "", "filter by status")
	page := fs.Int("page", 1, "1-based page index")
	size := fs.Int("size", 20, "page size")
	recompute := fs.Bool("recompute", false, "rebuild derived counters from order history first")
	if err := fs.Parse(args); err != nil {
		return err
	}
	if *recompute {
		orders, err := service.Orders().LoadAll(ctx)
		if err != nil {
			return err
		}
		if _, err := service.Customers().RecomputeAggregates(ctx, orders); err != nil {
			return err
		}
	}
	result, err := service.ListCustomers(ctx, admin.CustomerQuery{
		Search:   *search,
		Status:   domain.CustomerStatus(*status),
		Page:     *page,
		PageSize: *size,
	})
	if err != nil {
		return err
	}
	return emit(result)
}

func dashboard(ctx context.Context, service *admin.Service, args []string) error {
	fs := flag.NewFlagSet("dashboard", flag.ContinueOnError)
	from := fs.String("from", "", "start date (2006-01-02, inclusive)")
	to := fs.String("to", "", "end date (2006-01-02, inclusive)")
	if err := fs.Parse(args); err != nil {
		return err
	}
	var fromT, toT time.Time
	var err error
	if *from != "" {
		if fromT, err = time.Parse("2006-01-02", *from); err != nil {
			return fmt.Errorf("parse -from: %w", err)
		}
	}
	if *to != "" {
		if toT, err = time.Parse("2006-01-02", *to); err != nil {
			return fmt.Errorf("parse -to: %w", err)
		}
		toT = toT.Add(24*time.Hour - time.Nanosecond)
	}
	result, err := service.BuildDashboard(ctx, fromT, toT)
	if err != nil {
		return err
	}
	return emit(result)
}

func orderStatus(ctx context.Context, service *admin.Service, args []string) error {
	fs := flag.NewFlagSet("order-status", flag.ContinueOnError)
	id := fs.String("id", "", "order identifier")
	status := fs.String("status", "", "target status")
	override := fs.Bool("override", false, "admin correction: bypass the progression graph")
	if err := fs.Parse(args); err != nil {
		return err
	}
	if *id == "" || *status == "" {
		return fmt.Errorf("-id and -status are required")
	}
	var (
		order   domain.Order
		effects any
		err     error
	)
	if *override {
		order, effects, err = service.OverrideOrderStatus(ctx, *id, domain.OrderStatus(*status))
	} else {
		order, effects, err = service.AdvanceOrderStatus(ctx, *id, domain.OrderStatus(*status))
	}
	if err != nil {
		return err
	}
	return emit(map[string]any{"order": order, "effects": effects})
}

func returnEvent(ctx context.Context, service *admin.Service, args []string) error {
	fs := flag.NewFlagSet("return-event", flag.ContinueOnError)
	id := fs.String("id", "", "return request identifier")
	event := fs.String("event", "", "approve|reject|process-refund")
	status := fs.String("status", "", "override: set status directly instead of an event")
	if err := fs.Parse(args); err != nil {
		return err
	}
	if *id == "" {
		return fmt.Errorf("-id is required")
	}
	var (
		request domain.ReturnRequest
		effects any
		err     error
	)
	switch {
	case *status != "":
		request, effects, err = service.OverrideReturnStatus(ctx, *id, domain.ReturnStatus(*status))
	case *event == "approve":
		request, effects, err = service.ApproveReturn(ctx, *id)
	case *event == "reject":
		request, effects, err = service.RejectReturn(ctx, *id)
	case *event == "process-refund":
		request, effects, err = service.ProcessRefund(ctx, *id)
	default:
		return fmt.Errorf("-event must be approve|reject|process-refund, or pass -status for an override")
	}
	if err != nil {
		return err
	}
	return emit(map[string]any{"return_request": request, "effects": effects})
}

func updateSettings(ctx context.Context, service *admin.Service, args []string) error {
	fs := flag.NewFlagSet("update-settings", flag.ContinueOnError)
	section := fs.String("section", "", "section name")
	fields := fs.String("fields", "", "partial section as a JSON object")
	if err := fs.Parse(args); err != nil {
		return err
	}
	if *section == "" || *fields == "" {
		return fmt.Errorf("-section and -fields are required")
	}
	var partial domain.SettingsSection
	if err := json.Unmarshal([]byte(*fields), &partial); err != nil {
		return fmt.Errorf("parse -fields: %w", err)
	}
	merged, err := service.UpdateSettings(ctx, *section, partial)
	if err != nil {
		return err
	}
	return emit(merged)
}

func exportOrders(ctx context.Context, service *admin.Service, args []string) error {
	fs := flag.NewFlagSet("export-orders", flag.ContinueOnError)
	search := fs.String("search", "", "case-insensitive text search")
	status := fs.String("status", "", "filter by status")
	if err := fs.Parse(args); err != nil {
		return err
	}
	all, err := service.Orders().LoadAll(ctx)
	if err != nil {
		return err
	}
	page, err := service.ListOrders(ctx, admin.OrderQuery{
		Search:   *search,
		Status:   domain.OrderStatus(*status),
		Page:     1,
		PageSize: len(all) + 1,
	})
	if err != nil {
		return err
	}
	info, err := service.ExportOrders(ctx, page.Items)
	if err != nil {
		return err
	}
	return emit(info)
}
