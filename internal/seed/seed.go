// Package seed holds the built-in sample dataset used to initialize an empty
// store and to recover a bucket whose payload turned out corrupt. The records
// are deliberately small but shaped exactly like production data, including
// one legacy order that carries a bare item count instead of line items.
package seed

import (
	"time"

	"shopcore/pkg/domain"
)

func date(day int, hour int) time.Time {
	return time.Date(2026, time.July, day, hour, 0, 0, 0, time.UTC)
}

// Orders returns the built-in sample orders in seed order.
func Orders() []domain.Order {
	est := date(24, 9)
	delivered := date(21, 16)
	return []domain.Order{
		{
			ID:            "ORD-001",
			CustomerName:  "Amelia Hart",
			CustomerEmail: "amelia.hart@example.com",
			CreatedAt:     date(18, 10),
			Items: domain.ItemList([]domain.LineItem{
				{ProductID: "PRD-101", Name: "Walnut Desk Organizer", Quantity: 1, UnitPrice: 89.00},
				{ProductID: "PRD-114", Name: "Brass Pen Stand", Quantity: 2, UnitPrice: 18.00},
			}),
			Subtotal: 125.00, Tax: 22.50, Shipping: 8.00, Discount: 0,
			Total:         155.50,
			Status:        domain.OrderDelivered,
			PaymentMethod: "credit_card",
			PaymentStatus: domain.PaymentPaid,
			DeliveredDate: &delivered,
			UpdatedAt:     date(21, 16),
		},
		{
			ID:            "ORD-002",
			CustomerName:  "Ben Okafor",
			CustomerEmail: "ben.okafor@example.com",
			CreatedAt:     date(19, 14),
			Items: domain.ItemList([]domain.LineItem{
				{ProductID: "PRD-207", Name: "Linen Throw Blanket", Quantity: 1, UnitPrice: 64.00},
			}),
			Subtotal: 64.00, Tax: 11.52, Shipping: 6.00, Discount: 5.00,
			Total:             76.52,
			Status:            domain.OrderShipped,
			PaymentMethod:     "paypal",
			PaymentStatus:     domain.PaymentPaid,
			TrackingNumber:    "TRK-558201",
			EstimatedDelivery: &est,
			UpdatedAt:         date(20, 11),
		},
		{
			ID:            "ORD-003",
			CustomerName:  "Carla Mendes",
			CustomerEmail: "carla.mendes@example.com",
			CreatedAt:     date(20, 9),
			// Legacy record shape: only a unit count survived the last import.
			Items:    domain.ItemCount(3),
			Subtotal: 210.00, Tax: 37.80, Shipping: 0, Discount: 20.00,
			Total:         227.80,
			Status:        domain.OrderPending,
			PaymentMethod: "credit_card",
			PaymentStatus: domain.PaymentPending,
			UpdatedAt:     date(20, 9),
		},
		{
			ID:            "ORD-004",
			CustomerName:  "Ben Okafor",
			CustomerEmail: "ben.okafor@example.com",
			CreatedAt:     date(21, 17),
			Items: domain.ItemList([]domain.LineItem{
				{ProductID: "PRD-310", Name: "Ceramic Pour-Over Set", Quantity: 1, UnitPrice: 48.00},
				{ProductID: "PRD-311", Name: "Coffee Bean Sampler", Quantity: 1, UnitPrice: 32.00},
			}),
			Subtotal: 80.00, Tax: 14.40, Shipping: 6.00, Discount: 0,
			Total:         100.40,
			Status:        domain.OrderProcessing,
			PaymentMethod: "bank_transfer",
			PaymentStatus: domain.PaymentPaid,
			UpdatedAt:     date(22, 8),
		},
	}
}

// ReturnRequests returns the built-in sample return requests.
func ReturnRequests() []domain.ReturnRequest {
	return []domain.ReturnRequest{
		{
			ID:            "RET-001",
			OrderID:       "ORD-001",
			CustomerName:  "Amelia Hart",
			CustomerEmail: "amelia.hart@example.com",
			RequestedAt:   date(22, 12),
			Items: []domain.ReturnItem{
				{ProductID: "PRD-114", Name: "Brass Pen Stand", Quantity: 1, Reason: "arrived scratched"},
			},
			RefundAmount: 18.00,
			Status:       domain.ReturnPending,
			RefundStatus: domain.RefundPending,
			UpdatedAt:    date(22, 12),
		},
		{
			ID:            "RET-002",
			OrderID:       "ORD-002",
			CustomerName:  "Ben Okafor",
			CustomerEmail: "ben.okafor@example.com",
			RequestedAt:   date(23, 10),
			Items: []domain.ReturnItem{
				{ProductID: "PRD-207", Name: "Linen Throw Blanket", Quantity: 1, Reason: "wrong colour"},
			},
			RefundAmount: 64.00,
			Status:       domain.ReturnCompleted,
			RefundStatus: domain.RefundProcessed,
			UpdatedAt:    date(24, 15),
		},
	}
}

// Customers returns the built-in sample customers.
func Customers() []domain.Customer {
	return []domain.Customer{
		{
			ID: "CUS-001", Name: "Amelia Hart", Email: "amelia.hart@example.com",
			Phone: "+44 20 7946 0810", Status: domain.CustomerActive,
			OrdersCount: 1, TotalSpent: 155.50,
			Activity: []domain.ActivityEntry{
				{Type: "order", Description: "Placed order ORD-001", Timestamp: date(18, 10)},
			},
			CreatedAt: date(2, 9), UpdatedAt: date(21, 16),
		},
		{
			ID: "CUS-002", Name: "Ben Okafor", Email: "ben.okafor@example.com",
			Phone: "+234 803 555 0172", Status: domain.CustomerActive,
			OrdersCount: 2, TotalSpent: 176.92,
			Activity: []domain.ActivityEntry{
				{Type: "order", Description: "Placed order ORD-002", Timestamp: date(19, 14)},
				{Type: "order", Description: "Placed order ORD-004", Timestamp: date(21, 17)},
			},
			CreatedAt: date(5, 13), UpdatedAt: date(22, 8),
		},
		{
			ID: "CUS-003", Name: "Carla Mendes", Email: "carla.mendes@example.com",
			Phone: "+351 21 555 0143", Status: domain.CustomerBlocked,
			OrdersCount: 1, TotalSpent: 227.80,
			CreatedAt: date(11, 18), UpdatedAt: date(20, 9),
		},
	}
}

// Settings returns the default store configuration document. Every section a
// UI surface can edit is present so partial merges always have a base.
func Settings() domain.Settings {
	return domain.Settings{
		"general": {
			"store_name":  "Shopcore Demo Store",
			"store_email": "support@shopcore.example",
			"currency":    "USD",
			"timezone":    "UTC",
		},
		"payment": {
			"methods":         []any{"credit_card", "paypal", "bank_transfer"},
			"capture_on_ship": true,
		},
		"shipping": {
			"flat_rate":           6.00,
			"free_over":           150.00,
			"handling_days":       2,
			"carriers":            []any{"ups", "dhl"},
			"tracking_url_format": "https://track.example/%s",
		},
		"orders": {
			"auto_archive_days": 90,
			"id_prefix":         "ORD-",
		},
		"customers": {
			"allow_guest_checkout": true,
			"block_after_disputes": 3,
		},
		"products": {
			"low_stock_threshold": 5,
			"show_out_of_stock":   true,
		},
		"tax": {
			"rate":            0.18,
			"prices_include":  false,
			"invoice_numbers": true,
		},
		"content": {
			"banner_text": "",
			"footer_note": "Thanks for shopping with us.",
		},
		"features": {
			"wishlists": true,
			"reviews":   true,
			"gift_wrap": false,
		},
		"homepage": {
			"hero_title":    "New season arrivals",
			"hero_cta":      "Shop now",
			"featured_rows": 3,
		},
		"reviews": {
			"moderation": "manual",
			"min_rating": 1,
		},
		"email": {
			"sender":           "orders@shopcore.example",
			"order_confirm":    true,
			"shipping_updates": true,
			"marketing_opt_in": false,
			"reply_to_support": true,
		},
		"notifications": {
			"low_stock":     true,
			"new_order":     true,
			"return_opened": true,
		},
		"seo": {
			"meta_title":       "Shopcore Demo Store",
			"meta_description": "Curated goods for home and desk.",
			"sitemap":          true,
		},
	}
}
