package domain

import "time"

// Product is an item listed in a vendor's store
type Product struct {
	ID          string    `json:"id"`
	VendorID    string    `json:"vendorId"`
	Name        string    `json:"name"`
	Description string    `json:"description"`
	Price       float64   `json:"price"`
	Stock       int       `json:"stock"`
	CategoryID  int       `json:"categoryId"`
	Images      []string  `json:"images"`
	CreatedAt   time.Time `json:"createdAt"`
	UpdatedAt   time.Time `json:"updatedAt"`
}

// OrderStatus is the fulfilment state of an order
type OrderStatus string

const (
	OrderPending   OrderStatus = "pending"
	OrderConfirmed OrderStatus = "confirmed"
	OrderShipped   OrderStatus = "shipped"
	OrderDelivered OrderStatus = "delivered"
	OrderCancelled OrderStatus = "cancelled"
)

// Valid reports whether s is one of the known statuses
func (s OrderStatus) Valid() bool {
	switch s {
	case OrderPending, OrderConfirmed, OrderShipped, OrderDelivered, OrderCancelled:
		return true
	}
	return false
}

// OrderItem is a single line of an order
type OrderItem struct {
	ProductID string  `json:"productId"`
	Name      string  `json:"name"`
	Quantity  int     `json:"quantity"`
	UnitPrice float64 `json:"unitPrice"`
}

// Order is a customer purchase routed to a vendor
type Order struct {
	ID           string      `json:"id"`
	VendorID     string      `json:"vendorId"`
	CustomerName string      `json:"customerName"`
	Items        []OrderItem `json:"items"`
	Total        float64     `json:"total"`
	Status       OrderStatus `json:"status"`
	CreatedAt    time.Time   `json:"createdAt"`
}

// Storefront holds the public-facing store settings
type Storefront struct {
	VendorID    string `json:"vendorId"`
	StoreName   string `json:"storeName"`
	Description string `json:"description"`
	BannerURL   string `json:"bannerUrl"`
	LogoURL     string `json:"logoUrl"`
	Published   bool   `json:"published"`
}

// DashboardSummary aggregates headline numbers for the dashboard
type DashboardSummary struct {
	TotalProducts int     `json:"totalProducts"`
	TotalOrders   int     `json:"totalOrders"`
	PendingOrders int     `json:"pendingOrders"`
	Revenue       float64 `json:"revenue"`
}

// AnalyticsPoint is one bucket of a sales time series
type AnalyticsPoint struct {
	Date    string  `json:"date"`
	Orders  int     `json:"orders"`
	Revenue float64 `json:"revenue"`
}

// Analytics is a sales time series over a period
type Analytics struct {
	Period string           `json:"period"`
	Points []AnalyticsPoint `json:"points"`
}
