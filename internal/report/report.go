// Package report derives the analytics rollups rendered by the dashboard
// charts from an order collection. Functions depend only on the order shape;
// callers may pre-filter by date range with InRange.
package report

import (
	"sort"
	"time"

	"shopcore/pkg/domain"
)

// Fixed business ratios. These are deliberate design simplifications carried
// over from the stakeholder model, not configuration.
const (
	CostOfGoodsRatio      = 0.60
	OperatingExpenseRatio = 0.20
	TaxRate               = 0.18
)

const dayFormat = "2006-01-02"

// InRange returns the orders created within [from, to]. A zero bound is open.
func InRange(orders []domain.Order, from, to time.Time) []domain.Order {
	out := make([]domain.Order, 0, len(orders))
	for _, order := range orders {
		if !from.IsZero() && order.CreatedAt.Before(from) {
			continue
		}
		if !to.IsZero() && order.CreatedAt.After(to) {
			continue
		}
		out = append(out, order)
	}
	return out
}

// revenue orders: cancelled orders carry no revenue.
func counted(order domain.Order) bool {
	return order.Status != domain.OrderCancelled
}

// TrendPoint is one day of revenue history.
type TrendPoint struct {
	Date    string  `json:"date"`
	Revenue float64 `json:"revenue"`
	Orders  int     `json:"orders"`
}

// RevenueTrend sums revenue and order count per day, in date order.
func RevenueTrend(orders []domain.Order) []TrendPoint {
	byDay := make(map[string]TrendPoint)
	for _, order := range orders {
		if !counted(order) {
			continue
		}
		day := order.CreatedAt.Format(dayFormat)
		point := byDay[day]
		point.Date = day
		point.Revenue += order.Total
		point.Orders++
		byDay[day] = point
	}
	out := make([]TrendPoint, 0, len(byDay))
	for _, point := range byDay {
		out = append(out, point)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Date < out[j].Date })
	return out
}

// ProfitLossStatement is the derived profit and loss rollup.
type ProfitLossStatement struct {
	Revenue           float64 `json:"revenue"`
	CostOfGoods       float64 `json:"cost_of_goods"`
	OperatingExpenses float64 `json:"operating_expenses"`
	GrossProfit       float64 `json:"gross_profit"`
	NetProfit         float64 `json:"net_profit"`
	ProfitMarginPct   float64 `json:"profit_margin_pct"`
}

// ProfitLoss derives the statement from total revenue using the fixed ratios.
// The margin is 0 when revenue is 0.
func ProfitLoss(orders []domain.Order) ProfitLossStatement {
	var revenue float64
	for _, order := range orders {
		if counted(order) {
			revenue += order.Total
		}
	}
	stmt := ProfitLossStatement{
		Revenue:           revenue,
		CostOfGoods:       revenue * CostOfGoodsRatio,
		OperatingExpenses: revenue * OperatingExpenseRatio,
	}
	stmt.GrossProfit = stmt.Revenue - stmt.CostOfGoods
	stmt.NetProfit = stmt.GrossProfit - stmt.OperatingExpenses
	if revenue != 0 {
		stmt.ProfitMarginPct = stmt.NetProfit / revenue * 100
	}
	return stmt
}

// TaxRow is one order's flat-rate tax line for tabular reports.
type TaxRow struct {
	OrderID    string  `json:"order_id"`
	Date       string  `json:"date"`
	OrderTotal float64 `json:"order_total"`
	TaxAmount  float64 `json:"tax_amount"`
}

// TaxTrendPoint is one day of collected tax for trend charts.
type TaxTrendPoint struct {
	Date      string  `json:"date"`
	TaxAmount float64 `json:"tax_amount"`
}

// TaxReport carries both the per-order explosion and the per-day grouping.
type TaxReport struct {
	Rows     []TaxRow        `json:"rows"`
	Trend    []TaxTrendPoint `json:"trend"`
	TotalTax float64         `json:"total_tax"`
}

// Tax applies the flat rate to every counted order.
func Tax(orders []domain.Order) TaxReport {
	var report TaxReport
	byDay := make(map[string]float64)
	for _, order := range orders {
		if !counted(order) {
			continue
		}
		amount := order.Total * TaxRate
		day := order.CreatedAt.Format(dayFormat)
		report.Rows = append(report.Rows, TaxRow{
			OrderID:    order.ID,
			Date:       day,
			OrderTotal: order.Total,
			TaxAmount:  amount,
		})
		byDay[day] += amount
		report.TotalTax += amount
	}
	for day, amount := range byDay {
		report.Trend = append(report.Trend, TaxTrendPoint{Date: day, TaxAmount: amount})
	}
	sort.Slice(report.Trend, func(i, j int) bool { return report.Trend[i].Date < report.Trend[j].Date })
	return report
}

// PaymentSlice is one payment method's share of the order volume. The
// percentage of total is computed at presentation time, not stored.
type PaymentSlice struct {
	Method string  `json:"method"`
	Count  int     `json:"count"`
	Total  float64 `json:"total"`
}

// PaymentBreakdown groups counted orders by payment method, sorted by method
// name for deterministic chart ordering.
func PaymentBreakdown(orders []domain.Order) []PaymentSlice {
	byMethod := make(map[string]PaymentSlice)
	for _, order := range orders {
		if !counted(order) {
			continue
		}
		slice := byMethod[order.PaymentMethod]
		slice.Method = order.PaymentMethod
		slice.Count++
		slice.Total += order.Total
		byMethod[order.PaymentMethod] = slice
	}
	out := make([]PaymentSlice, 0, len(byMethod))
	for _, slice := range byMethod {
		out = append(out, slice)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Method < out[j].Method })
	return out
}
