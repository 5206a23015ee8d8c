package portal

import (
	"context"

	"github.com/prperemyshlev/seller-portal/internal/apiclient"
	"github.com/prperemyshlev/seller-portal/internal/domain"
)

// Catalog reads marketplace reference data
type Catalog struct {
	client *apiclient.Client
}

func NewCatalog(client *apiclient.Client) *Catalog {
	return &Catalog{client: client}
}

// Categories lists business categories. The endpoint is public.
func (c *Catalog) Categories(ctx context.Context) ([]domain.Category, error) {
	env, err := c.client.Get(ctx, "/categories", apiclient.WithoutAuth())
	if err != nil {
		return nil, err
	}
	return apiclient.DecodeData[[]domain.Category](env)
}
