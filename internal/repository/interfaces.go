package repository

import (
	"context"

	"github.com/prperemyshlev/seller-portal/internal/domain"
)

// VendorRepository defines methods for vendor accounts
type VendorRepository interface {
	Create(ctx context.Context, vendor *domain.Vendor) error
	GetByEmail(ctx context.Context, email string) (*domain.Vendor, error)
	GetByID(ctx context.Context, id string) (*domain.Vendor, error)
	Update(ctx context.Context, vendor *domain.Vendor) error
	Delete(ctx context.Context, id string) error
}

// DocumentRepository stores verification document metadata
type DocumentRepository interface {
	Create(ctx context.Context, doc *domain.Document) error
	ListByVendor(ctx context.Context, vendorID string) ([]*domain.Document, error)
	DeleteByVendor(ctx context.Context, vendorID string) error
}

// ProductRepository defines methods for a vendor's products.
// List with limit 0 returns everything from offset.
type ProductRepository interface {
	Create(ctx context.Context, product *domain.Product) error
	GetByID(ctx context.Context, vendorID, id string) (*domain.Product, error)
	List(ctx context.Context, vendorID string, offset, limit int) ([]*domain.Product, int, error)
	Update(ctx context.Context, product *domain.Product) error
	Delete(ctx context.Context, vendorID, id string) error
}

// OrderRepository defines methods for a vendor's orders.
// An empty status matches every order; limit 0 returns everything from offset.
type OrderRepository interface {
	Create(ctx context.Context, order *domain.Order) error
	GetByID(ctx context.Context, vendorID, id string) (*domain.Order, error)
	List(ctx context.Context, vendorID string, status domain.OrderStatus, offset, limit int) ([]*domain.Order, int, error)
	UpdateStatus(ctx context.Context, vendorID, id string, status domain.OrderStatus) (*domain.Order, error)
}

// StorefrontRepository stores one storefront per vendor
type StorefrontRepository interface {
	Get(ctx context.Context, vendorID string) (*domain.Storefront, error)
	Save(ctx context.Context, storefront *domain.Storefront) error
}

// CategoryRepository lists the marketplace categories
type CategoryRepository interface {
	List(ctx context.Context) ([]domain.Category, error)
}
