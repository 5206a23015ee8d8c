package portal

import (
	"context"

	"github.com/prperemyshlev/seller-portal/internal/apiclient"
	"github.com/prperemyshlev/seller-portal/internal/domain"
	"github.com/prperemyshlev/seller-portal/internal/dto"
)

// Orders reads and updates orders routed to the vendor
type Orders struct {
	client *apiclient.Client
}

func NewOrders(client *apiclient.Client) *Orders {
	return &Orders{client: client}
}

// List returns one page of orders, optionally filtered by status
func (o *Orders) List(ctx context.Context, status domain.OrderStatus, page, limit int) (*Page[domain.Order], error) {
	opts := pageOptions(page, limit)
	if status != "" {
		opts = append(opts, apiclient.WithQuery("status", string(status)))
	}

	env, err := o.client.Get(ctx, "/orders", opts...)
	if err != nil {
		return nil, err
	}
	return decodePage[domain.Order](env)
}

func (o *Orders) Get(ctx context.Context, id string) (*domain.Order, error) {
	env, err := o.client.Get(ctx, resourcePath("orders", id))
	if err != nil {
		return nil, err
	}
	order, err := apiclient.DecodeData[domain.Order](env)
	if err != nil {
		return nil, err
	}
	return &order, nil
}

func (o *Orders) UpdateStatus(ctx context.Context, id string, status domain.OrderStatus) (*domain.Order, error) {
	env, err := o.client.Patch(ctx, resourcePath("orders", id, "status"), dto.OrderStatusRequest{Status: status})
	if err != nil {
		return nil, err
	}
	order, err := apiclient.DecodeData[domain.Order](env)
	if err != nil {
		return nil, err
	}
	return &order, nil
}
