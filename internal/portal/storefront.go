package portal

import (
	"context"

	"github.com/prperemyshlev/seller-portal/internal/apiclient"
	"github.com/prperemyshlev/seller-portal/internal/domain"
	"github.com/prperemyshlev/seller-portal/internal/dto"
)

// Storefront reads and edits the public store settings
type Storefront struct {
	client *apiclient.Client
}

func NewStorefront(client *apiclient.Client) *Storefront {
	return &Storefront{client: client}
}

func (s *Storefront) Get(ctx context.Context) (*domain.Storefront, error) {
	env, err := s.client.Get(ctx, "/storefront")
	if err != nil {
		return nil, err
	}
	return decodeStorefront(env)
}

func (s *Storefront) Update(ctx context.Context, req dto.StorefrontRequest) (*domain.Storefront, error) {
	env, err := s.client.Put(ctx, "/storefront", req)
	if err != nil {
		return nil, err
	}
	return decodeStorefront(env)
}

func decodeStorefront(env *apiclient.Envelope) (*domain.Storefront, error) {
	sf, err := apiclient.DecodeData[domain.Storefront](env)
	if err != nil {
		return nil, err
	}
	return &sf, nil
}
