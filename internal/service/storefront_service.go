package service

import (
	"context"
	"fmt"
	"strings"

	"github.com/prperemyshlev/seller-portal/internal/domain"
	"github.com/prperemyshlev/seller-portal/internal/dto"
	"github.com/prperemyshlev/seller-portal/internal/repository"
)

type storefrontService struct {
	storefronts repository.StorefrontRepository
}

// NewStorefrontService creates a new storefront service
func NewStorefrontService(storefronts repository.StorefrontRepository) StorefrontService {
	return &storefrontService{storefronts: storefronts}
}

func (s *storefrontService) Get(ctx context.Context, vendorID string) (*domain.Storefront, error) {
	storefront, err := s.storefronts.Get(ctx, vendorID)
	if err != nil {
		return nil, notFound(err, "get storefront")
	}
	return storefront, nil
}

func (s *storefrontService) Update(ctx context.Context, vendorID string, req *dto.StorefrontRequest) (*domain.Storefront, error) {
	name := strings.TrimSpace(req.StoreName)
	if name == "" {
		return nil, newValidationError("storeName", "Store name is required")
	}

	storefront := &domain.Storefront{
		VendorID:    vendorID,
		StoreName:   name,
		Description: req.Description,
		BannerURL:   req.BannerURL,
		LogoURL:     req.LogoURL,
		Published:   req.Published,
	}
	if err := s.storefronts.Save(ctx, storefront); err != nil {
		return nil, fmt.Errorf("failed to save storefront: %w", err)
	}
	return storefront, nil
}

type catalogService struct {
	categories repository.CategoryRepository
}

// NewCatalogService creates a new catalog service
func NewCatalogService(categories repository.CategoryRepository) CatalogService {
	return &catalogService{categories: categories}
}

func (s *catalogService) Categories(ctx context.Context) ([]domain.Category, error) {
	categories, err := s.categories.List(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to list categories: %w", err)
	}
	return categories, nil
}
