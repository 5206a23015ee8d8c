package portal

import (
	"context"

	"github.com/prperemyshlev/seller-portal/internal/apiclient"
	"github.com/prperemyshlev/seller-portal/internal/domain"
	"golang.org/x/sync/errgroup"
)

// RecentOrdersLimit is how many orders Overview fetches
const RecentOrdersLimit = 5

// Dashboard reads headline numbers and sales analytics
type Dashboard struct {
	client  *apiclient.Client
	orders  *Orders
	catalog *Catalog
}

func NewDashboard(client *apiclient.Client, orders *Orders, catalog *Catalog) *Dashboard {
	return &Dashboard{client: client, orders: orders, catalog: catalog}
}

func (d *Dashboard) Summary(ctx context.Context) (*domain.DashboardSummary, error) {
	env, err := d.client.Get(ctx, "/dashboard/summary")
	if err != nil {
		return nil, err
	}
	summary, err := apiclient.DecodeData[domain.DashboardSummary](env)
	if err != nil {
		return nil, err
	}
	return &summary, nil
}

// Analytics returns the sales series for period (e.g. "7d", "30d"); empty uses the server default
func (d *Dashboard) Analytics(ctx context.Context, period string) (*domain.Analytics, error) {
	var opts []apiclient.RequestOption
	if period != "" {
		opts = append(opts, apiclient.WithQuery("period", period))
	}

	env, err := d.client.Get(ctx, "/analytics", opts...)
	if err != nil {
		return nil, err
	}
	analytics, err := apiclient.DecodeData[domain.Analytics](env)
	if err != nil {
		return nil, err
	}
	return &analytics, nil
}

// Overview is everything the dashboard landing page shows
type Overview struct {
	Summary      *domain.DashboardSummary
	RecentOrders []domain.Order
	Categories   []domain.Category
}

// Overview fetches the summary, recent orders and categories concurrently.
// The first failure is returned.
func (d *Dashboard) Overview(ctx context.Context) (*Overview, error) {
	var overview Overview
	g, ctx := errgroup.WithContext(ctx)

	g.Go(func() error {
		summary, err := d.Summary(ctx)
		overview.Summary = summary
		return err
	})
	g.Go(func() error {
		page, err := d.orders.List(ctx, "", 1, RecentOrdersLimit)
		if err != nil {
			return err
		}
		overview.RecentOrders = page.Items
		return nil
	})
	g.Go(func() error {
		categories, err := d.catalog.Categories(ctx)
		overview.Categories = categories
		return err
	})

	if err := g.Wait(); err != nil {
		return nil, err
	}
	return &overview, nil
}
