package service

import (
	"context"
	"fmt"
	"time"

	"github.com/prperemyshlev/seller-portal/internal/domain"
	"github.com/prperemyshlev/seller-portal/internal/repository"
)

type orderService struct {
	orders repository.OrderRepository
	now    func() time.Time
}

// NewOrderService creates a new order service
func NewOrderService(orders repository.OrderRepository) OrderService {
	return &orderService{orders: orders, now: time.Now}
}

func (s *orderService) List(ctx context.Context, vendorID string, status domain.OrderStatus, page PageRequest) (*Paged[*domain.Order], error) {
	if status != "" && !status.Valid() {
		return nil, newValidationError("status", MsgOrderStatusInvalid)
	}

	page = page.normalize()
	items, total, err := s.orders.List(ctx, vendorID, status, page.offset(), page.Limit)
	if err != nil {
		return nil, fmt.Errorf("failed to list orders: %w", err)
	}
	return newPaged(items, page, total), nil
}

func (s *orderService) Get(ctx context.Context, vendorID, id string) (*domain.Order, error) {
	order, err := s.orders.GetByID(ctx, vendorID, id)
	if err != nil {
		return nil, notFound(err, "get order")
	}
	return order, nil
}

func (s *orderService) UpdateStatus(ctx context.Context, vendorID, id string, status domain.OrderStatus) (*domain.Order, error) {
	if !status.Valid() {
		return nil, newValidationError("status", MsgOrderStatusInvalid)
	}

	order, err := s.orders.UpdateStatus(ctx, vendorID, id, status)
	if err != nil {
		return nil, notFound(err, "update order status")
	}
	return order, nil
}

// demoOrders are copied to every new vendor so the dashboard has something to show
var demoOrders = []struct {
	customer string
	item     domain.OrderItem
	status   domain.OrderStatus
	daysAgo  int
}{
	{"Chioma Okafor", domain.OrderItem{Name: "Ankara tote bag", Quantity: 2, UnitPrice: 7500}, domain.OrderDelivered, 6},
	{"Tunde Bakare", domain.OrderItem{Name: "Shea butter 250ml", Quantity: 3, UnitPrice: 2500}, domain.OrderShipped, 4},
	{"Aisha Bello", domain.OrderItem{Name: "Zobo drink pack", Quantity: 5, UnitPrice: 1200}, domain.OrderConfirmed, 2},
	{"Emeka Nwosu", domain.OrderItem{Name: "Phone case", Quantity: 1, UnitPrice: 4000}, domain.OrderPending, 1},
	{"Funke Adeyemi", domain.OrderItem{Name: "Adire scarf", Quantity: 1, UnitPrice: 9000}, domain.OrderCancelled, 0},
}

// SeedDemoOrders creates a fixed set of sample orders for vendorID
func (s *orderService) SeedDemoOrders(ctx context.Context, vendorID string) error {
	now := s.now().UTC()
	for _, d := range demoOrders {
		order := &domain.Order{
			VendorID:     vendorID,
			CustomerName: d.customer,
			Items:        []domain.OrderItem{d.item},
			Total:        float64(d.item.Quantity) * d.item.UnitPrice,
			Status:       d.status,
			CreatedAt:    now.AddDate(0, 0, -d.daysAgo),
		}
		if err := s.orders.Create(ctx, order); err != nil {
			return fmt.Errorf("failed to seed order: %w", err)
		}
	}
	return nil
}
