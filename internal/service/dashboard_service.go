package service

import (
	"context"
	"fmt"
	"time"

	"github.com/prperemyshlev/seller-portal/internal/domain"
	"github.com/prperemyshlev/seller-portal/internal/repository"
)

// DefaultAnalyticsPeriod is used when no period is requested
const DefaultAnalyticsPeriod = "7d"

var analyticsPeriods = map[string]int{
	"7d":  7,
	"30d": 30,
	"90d": 90,
}

type dashboardService struct {
	products repository.ProductRepository
	orders   repository.OrderRepository
	now      func() time.Time
}

// NewDashboardService creates a new dashboard service
func NewDashboardService(products repository.ProductRepository, orders repository.OrderRepository) DashboardService {
	return &dashboardService{products: products, orders: orders, now: time.Now}
}

// Summary counts products and orders. Cancelled orders do not add to revenue.
func (s *dashboardService) Summary(ctx context.Context, vendorID string) (*domain.DashboardSummary, error) {
	_, totalProducts, err := s.products.List(ctx, vendorID, 0, 1)
	if err != nil {
		return nil, fmt.Errorf("failed to count products: %w", err)
	}

	orders, totalOrders, err := s.orders.List(ctx, vendorID, "", 0, 0)
	if err != nil {
		return nil, fmt.Errorf("failed to list orders: %w", err)
	}

	summary := &domain.DashboardSummary{
		TotalProducts: totalProducts,
		TotalOrders:   totalOrders,
	}
	for _, o := range orders {
		switch o.Status {
		case domain.OrderPending:
			summary.PendingOrders++
			summary.Revenue += o.Total
		case domain.OrderCancelled:
		default:
			summary.Revenue += o.Total
		}
	}
	return summary, nil
}

// Analytics buckets non-cancelled orders per day, oldest first, ending today
func (s *dashboardService) Analytics(ctx context.Context, vendorID, period string) (*domain.Analytics, error) {
	if period == "" {
		period = DefaultAnalyticsPeriod
	}
	days, ok := analyticsPeriods[period]
	if !ok {
		return nil, newValidationError("period", MsgPeriodInvalid)
	}

	orders, _, err := s.orders.List(ctx, vendorID, "", 0, 0)
	if err != nil {
		return nil, fmt.Errorf("failed to list orders: %w", err)
	}

	now := s.now().UTC()
	today := time.Date(now.Year(), now.Month(), now.Day(), 0, 0, 0, 0, time.UTC)
	first := today.AddDate(0, 0, -(days - 1))

	points := make([]domain.AnalyticsPoint, days)
	index := make(map[string]int, days)
	for i := range points {
		date := first.AddDate(0, 0, i).Format(time.DateOnly)
		points[i].Date = date
		index[date] = i
	}

	for _, o := range orders {
		if o.Status == domain.OrderCancelled {
			continue
		}
		i, ok := index[o.CreatedAt.UTC().Format(time.DateOnly)]
		if !ok {
			continue
		}
		points[i].Orders++
		points[i].Revenue += o.Total
	}

	return &domain.Analytics{Period: period, Points: points}, nil
}
