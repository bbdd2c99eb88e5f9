package admin

import (
	"context"
	"strconv"

	"shopcore/internal/blob"
	"shopcore/internal/export"
	"shopcore/internal/report"
	"shopcore/pkg/domain"
)

// orderColumns is the column set every orders export shares with the list
// screen.
func orderColumns() []export.Column[domain.Order] {
	return []export.Column[domain.Order]{
		{Label: "ID", Accessor: func(o domain.Order) any { return o.ID }},
		{Label: "Customer", Accessor: func(o domain.Order) any { return o.CustomerName }},
		{Label: "Email", Accessor: func(o domain.Order) any { return o.CustomerEmail }},
		{Label: "Date", Accessor: func(o domain.Order) any { return o.CreatedAt.Format("2006-01-02") }},
		{Label: "Items", Accessor: func(o domain.Order) any { return strconv.Itoa(o.Items.UnitCount()) }},
		{Label: "Total", Accessor: func(o domain.Order) any { return o.Total }},
		{Label: "Status", Accessor: func(o domain.Order) any { return string(o.Status) }},
		{Label: "Payment Method", Accessor: func(o domain.Order) any { return o.PaymentMethod }},
		{Label: "Payment Status", Accessor: func(o domain.Order) any { return string(o.PaymentStatus) }},
	}
}

// ExportOrders serializes the given orders (typically a filtered query
// result) and stores the artifact as orders_{date}.csv.
func (s *Service) ExportOrders(ctx context.Context, orders []domain.Order) (blob.Info, error) {
	text := export.ToDelimitedText(orders, orderColumns())
	return s.exports.WriteCSV(ctx, "orders", text)
}

// ExportTaxReport serializes the per-order tax rows for the orders created in
// the dashboard range and stores the artifact as tax_report_{date}.csv.
func (s *Service) ExportTaxReport(ctx context.Context, rows []report.TaxRow) (blob.Info, error) {
	columns := []export.Column[report.TaxRow]{
		{Label: "Order ID", Accessor: func(r report.TaxRow) any { return r.OrderID }},
		{Label: "Date", Accessor: func(r report.TaxRow) any { return r.Date }},
		{Label: "Order Total", Accessor: func(r report.TaxRow) any { return r.OrderTotal }},
		{Label: "Tax Amount", Accessor: func(r report.TaxRow) any { return r.TaxAmount }},
	}
	text := export.ToDelimitedText(rows, columns)
	return s.exports.WriteCSV(ctx, "tax_report", text)
}

// ExportCustomers serializes the given customers and stores the artifact as
// customers_{date}.csv.
func (s *Service) ExportCustomers(ctx context.Context, customers []domain.Customer) (blob.Info, error) {
	columns := []export.Column[domain.Customer]{
		{Label: "ID", Accessor: func(c domain.Customer) any { return c.ID }},
		{Label: "Name", Accessor: func(c domain.Customer) any { return c.Name }},
		{Label: "Email", Accessor: func(c domain.Customer) any { return c.Email }},
		{Label: "Phone", Accessor: func(c domain.Customer) any { return c.Phone }},
		{Label: "Status", Accessor: func(c domain.Customer) any { return string(c.Status) }},
		{Label: "Orders", Accessor: func(c domain.Customer) any { return strconv.Itoa(c.OrdersCount) }},
		{Label: "Total Spent", Accessor: func(c domain.Customer) any { return c.TotalSpent }},
	}
	text := export.ToDelimitedText(customers, columns)
	return s.exports.WriteCSV(ctx, "customers", text)
}
